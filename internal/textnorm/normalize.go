// Package textnorm cleans noisy Japanese financial text: full-width digits and
// punctuation are folded to their half-width counterparts, currency symbols are
// stripped, and candidate field labels are sanitized and validated.
package textnorm

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// MaxLabelLength is the longest label (in runes) accepted as a field key.
// Anything longer is almost certainly prose, not a label.
const MaxLabelLength = 40

// fullwidthReplacer folds full-width digits and punctuation to half-width and
// drops currency marks. The table is fixed and order-independent.
var fullwidthReplacer = strings.NewReplacer(
	"０", "0", "１", "1", "２", "2", "３", "3", "４", "4",
	"５", "5", "６", "6", "７", "7", "８", "8", "９", "9",
	"，", ",", "．", ".", "：", ":", "　", " ",
	"（", "(", "）", ")",
	"￥", "", "¥", "", "円", "",
	"−", "-", "―", "-",
)

// decorativeReplacer strips bracket and bullet glyphs used as section markers.
var decorativeReplacer = strings.NewReplacer(
	"［", "", "］", "", "[", "", "]", "",
	"【", "", "】", "", "《", "", "》", "", "●", "",
)

var (
	whitespaceRuns = regexp.MustCompile(`\s+`)
	labelAllowed   = regexp.MustCompile(`^[\wぁ-んァ-ヶ一-龠\[\]［］（）()・\-＋~\sA-Za-z0-9【】《》●]+$`)
)

// headingMarkers are glyphs that introduce (or entirely compose) a section
// heading line in payroll-style documents.
const headingMarkers = "《》◆【】●"

// Normalize applies the full-width folding table and trims surrounding
// whitespace. It is pure and idempotent.
func Normalize(s string) string {
	return strings.TrimSpace(fullwidthReplacer.Replace(s))
}

// SanitizeLabel normalizes a label candidate, strips decorative glyphs, and
// collapses internal whitespace runs to a single space.
func SanitizeLabel(s string) string {
	t := strings.TrimSpace(decorativeReplacer.Replace(Normalize(s)))
	return whitespaceRuns.ReplaceAllString(t, " ")
}

// IsValidLabel reports whether s sanitizes to an acceptable field label.
// Empty strings, overlong strings, strings containing an ideographic comma or
// period (prose markers), and strings outside the allowed character classes
// are rejected.
func IsValidLabel(s string) bool {
	t := SanitizeLabel(s)
	if t == "" || utf8.RuneCountInString(t) > MaxLabelLength {
		return false
	}
	if strings.ContainsAny(t, "、。") {
		return false
	}
	return labelAllowed.MatchString(t)
}

// IsHeadingLine reports whether a raw line is a decorative section heading:
// it starts with a heading marker, or consists of nothing but markers.
func IsHeadingLine(s string) bool {
	t := strings.TrimLeft(Normalize(s), " \t")
	if t == "" {
		return false
	}
	if strings.HasPrefix(t, "《") || strings.HasPrefix(t, "◆") ||
		strings.HasPrefix(t, "【") || strings.HasPrefix(t, "●") {
		return true
	}
	for _, r := range t {
		if !strings.ContainsRune(headingMarkers, r) {
			return false
		}
	}
	return true
}
