package layout

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractInlinePairs(t *testing.T) {
	res := Extract([]Block{{Index: 0, Text: "基本給:250,000\n交通費:8,000"}})

	assert.Equal(t, map[string]string{
		"基本給": "250000",
		"交通費": "8000",
	}, res.Fields)
}

func TestExtractPendingLabel(t *testing.T) {
	res := Extract([]Block{{Index: 0, Text: "総支給額:\n320,000"}})

	assert.Equal(t, map[string]string{"総支給額": "320000"}, res.Fields)
}

func TestExtractPendingLabelWithRemainder(t *testing.T) {
	// The number consumes the pending label; the rest of the line is still
	// scanned for inline pairs.
	res := Extract([]Block{{Index: 0, Text: "総支給額:\n320,000 控除額:45,000"}})

	assert.Equal(t, map[string]string{
		"総支給額": "320000",
		"控除額":  "45000",
	}, res.Fields)
}

func TestExtractSkipsHeadings(t *testing.T) {
	res := Extract([]Block{{Index: 0, Text: "●支給項目●\n基本給:250,000\n【控除項目】\n健康保険:12,000"}})

	assert.Equal(t, map[string]string{
		"基本給":  "250000",
		"健康保険": "12000",
	}, res.Fields)
	assert.NotContains(t, res.Fields, "●支給項目●")
}

func TestExtractRejectsInvalidLabels(t *testing.T) {
	long := strings.Repeat("給", 41)
	res := Extract([]Block{{Index: 0, Text: long + ":100\n説明、注記:200"}})

	assert.Empty(t, res.Fields)
}

func TestExtractFullWidthInput(t *testing.T) {
	res := Extract([]Block{{Index: 0, Text: "基本給：２５０，０００"}})

	assert.Equal(t, map[string]string{"基本給": "250000"}, res.Fields)
}

func TestExtractLaterOccurrenceWins(t *testing.T) {
	res := Extract([]Block{
		{Index: 0, Text: "基本給:1"},
		{Index: 1, Text: "基本給:250,000"},
	})

	assert.Equal(t, "250000", res.Fields["基本給"])
}

func TestExtractPeriod(t *testing.T) {
	res := Extract([]Block{
		{Index: 0, Text: "給与明細"},
		{Index: 1, Text: "2024年3月分"},
		{Index: 2, Text: "2024年4月分"}, // first match in block order wins
	})

	assert.Equal(t, "2024-03-01", res.Period)
}

func TestExtractNoPeriod(t *testing.T) {
	res := Extract([]Block{{Index: 0, Text: "基本給:250,000"}})

	assert.Equal(t, "", res.Period)
}

func TestExtractPendingClearedAtBlockEnd(t *testing.T) {
	// A label left pending when its block ends must not bind to the next
	// block's leading number.
	res := Extract([]Block{
		{Index: 0, Text: "総支給額:"},
		{Index: 1, Text: "999 口座番号:123"},
	})

	assert.NotContains(t, res.Fields, "総支給額")
}
