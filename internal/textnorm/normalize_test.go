package textnorm

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"Full-width digits", "１２３４５６７８９０", "1234567890"},
		{"Full-width comma and yen", "１２３，４５６円", "123,456"},
		{"Half-width yen stripped", "¥1,000", "1,000"},
		{"Full-width yen stripped", "￥２５０", "250"},
		{"Full-width colon", "基本給：２５０", "基本給:250"},
		{"Full-width space trimmed", "　２５０　", "250"},
		{"Full-width parens", "（控除）", "(控除)"},
		{"Full-width minus variants", "−１００―２", "-100-2"},
		{"Plain ASCII untouched", "abc 123", "abc 123"},
		{"Empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Normalize(tt.input))
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"１２３，４５６円",
		"￥９８７．６５",
		"基本給：２５０，０００",
		"　（−１０）　",
	}
	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), "Normalize must be idempotent for %q", in)
	}
}

func TestSanitizeLabel(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"Decorative brackets stripped", "【基本給】", "基本給"},
		{"Square brackets stripped", "［交通費］", "交通費"},
		{"Bullet stripped", "●支給額", "支給額"},
		{"Whitespace collapsed", "基本  \t 給", "基本 給"},
		{"Full-width digits folded", "第１項", "第1項"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SanitizeLabel(tt.input))
		})
	}
}

func TestIsValidLabel(t *testing.T) {
	tests := []struct {
		name  string
		input string
		valid bool
	}{
		{"Simple kanji label", "基本給", true},
		{"Katakana label", "ボーナス", true},
		{"Mixed label with parens", "支給額(税込)", true},
		{"ASCII label", "Total-Pay", true},
		{"Empty", "", false},
		{"Ideographic comma rejected", "基本給、手当", false},
		{"Ideographic period rejected", "支給します。", false},
		{"Over 40 runes rejected", strings.Repeat("給", 41), false},
		{"Exactly 40 runes accepted", strings.Repeat("給", 40), true},
		{"Disallowed symbol", "支給額@会社", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, IsValidLabel(tt.input))
		})
	}
}

func TestIsHeadingLine(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		heading bool
	}{
		{"Bullet heading", "●支給項目●", true},
		{"Bracket heading", "【控除項目】", true},
		{"Diamond heading", "◆明細◆", true},
		{"Marker-only line", "《》●", true},
		{"Plain label line", "基本給:250,000", false},
		{"Empty line", "", false},
		{"Indented heading", "  ●支給項目", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.heading, IsHeadingLine(tt.input))
		})
	}
}
