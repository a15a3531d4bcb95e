// Package payroll parses scanned payroll and bonus statement PDFs into a
// label/amount mapping plus the statement period.
package payroll

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/masaki/asset-collector/internal/layout"
)

// Document kinds, taken from the filename convention used by the payroll
// provider: bonus statements are distributed with an "SYO" basename prefix.
const (
	KindSalary = "給与"
	KindBonus  = "賞与"
)

// Document is one parsed payroll statement.
type Document struct {
	// Month is the statement period as "YYYY-MM-01", or empty when no
	// year-month token was found anywhere on the page.
	Month string `json:"month"`
	// Kind is KindSalary or KindBonus.
	Kind string `json:"type"`
	// Details maps each sanitized line-item label to its normalized amount
	// string.
	Details map[string]string `json:"details"`
}

// ParseError reports a failure to read or interpret a PDF.
type ParseError struct {
	Message string
	Cause   error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("payroll parse error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("payroll parse error: %s", e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

// KindFromFilename derives the document kind from the file's basename prefix.
func KindFromFilename(path string) string {
	base := filepath.Base(path)
	if len(base) >= 3 && strings.EqualFold(base[:3], "SYO") {
		return KindBonus
	}
	return KindSalary
}

// Parse reads the first page of the PDF at path and extracts its field map
// and period. The page count is verified up front so a truncated or
// non-PDF file fails with a clear error rather than an empty document.
func Parse(path string) (*Document, error) {
	pages, err := api.PageCountFile(path)
	if err != nil {
		return nil, &ParseError{Message: fmt.Sprintf("failed to inspect %s", path), Cause: err}
	}
	if pages == 0 {
		return nil, &ParseError{Message: "document has no pages"}
	}

	blocks, err := ReadBlocks(path)
	if err != nil {
		return nil, err
	}
	return buildDocument(blocks, path), nil
}

func buildDocument(blocks []layout.Block, path string) *Document {
	res := layout.Extract(blocks)
	return &Document{
		Month:   res.Period,
		Kind:    KindFromFilename(path),
		Details: res.Fields,
	}
}
