package parsing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func fixedClock() time.Time {
	return time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
}

func TestParseJapaneseDate(t *testing.T) {
	p := DateParser{Now: fixedClock}

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"Standard date", "2024年3月15日", "2024-03-15"},
		{"Two-digit month and day", "2023年12月01日", "2023-12-01"},
		{"Whitespace between parts", "2024年 3月 5日", "2024-03-05"},
		{"Full-width space between parts", "2024年　3月　15日", "2024-03-15"},
		{"Full-width digits", "２０２４年３月１５日", "2024-03-15"},
		{"Embedded in sentence", "基準日: 2024年3月15日 現在", "2024-03-15"},
		{"Malformed falls back to today", "不明な日付", "2024-06-01"},
		{"Empty falls back to today", "", "2024-06-01"},
		{"Month-only falls back to today", "2024年3月", "2024-06-01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, p.ParseJapaneseDate(tt.input))
		})
	}
}

func TestParseYearMonth(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
		found    bool
	}{
		{"Year and month", "2024年3月", "2024-03-01", true},
		{"Two-digit month", "2024年12月", "2024-12-01", true},
		{"Full-width space", "2024年　7月", "2024-07-01", true},
		{"Full-width digits", "２０２４年７月", "2024-07-01", true},
		{"Embedded in text", "給与明細 2024年3月分", "2024-03-01", true},
		{"No token", "給与明細", "", false},
		{"Month zero rejected", "2024年0月", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseYearMonth(tt.input)
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.expected, got)
		})
	}
}
