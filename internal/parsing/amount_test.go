package parsing

import (
	"fmt"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected int64
	}{
		{"Plain integer", "1234", 1234},
		{"Thousands separators", "123,456", 123456},
		{"Full-width digits with yen", "１２３，４５６円", 123456},
		{"Half-width yen prefix", "¥8,000", 8000},
		{"Negative", "-1,000", -1000},
		{"Full-width minus", "−１００", -100},
		{"Decimal truncated", "1,234.56", 1234},
		{"Empty", "", 0},
		{"Whitespace only", "   ", 0},
		{"Symbols only", "¥￥---", 0},
		{"No digits", "合計", 0},
		{"Zero", "0", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseAmount(tt.input))
		})
	}
}

// formatWithCommas renders n with thousands separators, e.g. 1234567 -> "1,234,567".
func formatWithCommas(n int64) string {
	s := strconv.FormatInt(n, 10)
	out := ""
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			out += ","
		}
		out += string(r)
	}
	return out
}

func TestParseAmountRoundTrip(t *testing.T) {
	for _, n := range []int64{0, 1, 42, 999, 1000, 12345, 250000, 8000000, 1000000000} {
		t.Run(fmt.Sprintf("n=%d", n), func(t *testing.T) {
			assert.Equal(t, n, ParseAmount(formatWithCommas(n)))
		})
	}
}
