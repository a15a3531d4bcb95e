package records

import (
	"sort"

	"github.com/masaki/asset-collector/internal/parsing"
	"github.com/masaki/asset-collector/internal/payroll"
)

// SourcePayroll tags records assembled from payroll statement PDFs.
const SourcePayroll = "payroll"

// FromPayroll turns a parsed payroll document into one record per line item,
// dated to the statement period. A document without a recognizable period is
// rejected outright: dating payroll items to the parse day would silently
// file them under the wrong month. Zero-amount line items are dropped (the
// positive-amount invariant holds for every persisted record); the document
// fails only when no line item survives.
func FromPayroll(doc *payroll.Document) ([]Record, error) {
	if doc.Month == "" {
		return nil, &ExtractionError{
			Source:  SourcePayroll,
			Field:   "month",
			Message: "no year-month token found on the page",
		}
	}

	labels := make([]string, 0, len(doc.Details))
	for label := range doc.Details {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	recs := make([]Record, 0, len(labels))
	for _, label := range labels {
		amount := parsing.ParseAmount(doc.Details[label])
		if amount <= 0 {
			continue
		}
		rec, err := Assemble(doc.Month, doc.Kind, label, amount, 0, SourcePayroll)
		if err != nil {
			continue
		}
		recs = append(recs, rec)
	}

	if len(recs) == 0 {
		return nil, &ExtractionError{
			Source:  SourcePayroll,
			Field:   "details",
			Message: "no positive line items extracted; layout likely changed",
		}
	}
	return recs, nil
}
