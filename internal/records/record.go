// Package records defines the canonical observation record and its assembly
// from extracted field values.
package records

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Record is one persisted observation of an account's value. The natural key
// (record_date, institution, name, source) is the idempotency boundary:
// re-running extraction for the same period overwrites, never duplicates.
type Record struct {
	RecordDate     string `json:"record_date" validate:"required,datetime=2006-01-02"`
	Institution    string `json:"institution" validate:"required"`
	Name           string `json:"name" validate:"required"`
	MarketValue    int64  `json:"market_value" validate:"required,gt=0"`
	InvestedAmount int64  `json:"invested_amount,omitempty" validate:"gte=0"`
	Source         string `json:"source" validate:"required"`
}

// Key returns the natural-key tuple as a single string, usable as a map key.
func (r Record) Key() string {
	return fmt.Sprintf("%s|%s|%s|%s", r.RecordDate, r.Institution, r.Name, r.Source)
}

var validate = validator.New()

// ExtractionError reports that a field could not be extracted, or extracted
// to a value the zero-means-failure policy rejects. A zero amount after all
// fallbacks is treated as a broken selector, not a zero balance; a genuinely
// empty account is indistinguishable and will be reported as a failure.
type ExtractionError struct {
	Source  string
	Field   string
	Message string
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extraction error [%s/%s]: %s", e.Source, e.Field, e.Message)
}

// Validate checks the record's shape and the positive-amount invariant.
func (r Record) Validate() error {
	if err := validate.Struct(r); err != nil {
		if _, ok := err.(validator.ValidationErrors); ok {
			return &ExtractionError{
				Source:  r.Source,
				Field:   r.Name,
				Message: fmt.Sprintf("invalid record: %v", err),
			}
		}
		return err
	}
	return nil
}

// Assemble builds one validated record. A non-positive marketValue fails
// assembly; the caller marks the run failed rather than persisting a zero
// observation.
func Assemble(recordDate, institution, name string, marketValue, investedAmount int64, source string) (Record, error) {
	if marketValue <= 0 {
		return Record{}, &ExtractionError{
			Source:  source,
			Field:   name,
			Message: fmt.Sprintf("amount is %d after all fallbacks; layout likely changed", marketValue),
		}
	}
	r := Record{
		RecordDate:     recordDate,
		Institution:    institution,
		Name:           name,
		MarketValue:    marketValue,
		InvestedAmount: investedAmount,
		Source:         source,
	}
	if err := r.Validate(); err != nil {
		return Record{}, err
	}
	return r, nil
}
