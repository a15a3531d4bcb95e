// Package parsing converts noisy numeric and date tokens from financial pages
// and payroll documents into machine-usable values. Parsers here are lenient:
// malformed input degrades to a defined fallback instead of an error, and the
// zero-value policy at the run boundary guards against bad data slipping
// through.
package parsing

import (
	"regexp"
	"strconv"

	"github.com/masaki/asset-collector/internal/textnorm"
)

var nonNumeric = regexp.MustCompile(`[^0-9.\-]`)

// ParseAmount extracts an integer amount from a noisy string such as
// "１２３，４５６円" or "¥1,234.00". Full-width characters are folded first,
// then everything except digits, '.' and '-' is dropped. Returns 0 when no
// parseable number remains. A result of 0 is ambiguous between "absent" and
// "zero"; callers apply the zero-means-failure policy where it matters.
func ParseAmount(s string) int64 {
	clean := nonNumeric.ReplaceAllString(textnorm.Normalize(s), "")
	if clean == "" {
		return 0
	}
	if n, err := strconv.ParseInt(clean, 10, 64); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(clean, 64); err == nil {
		return int64(f)
	}
	return 0
}
