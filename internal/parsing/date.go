package parsing

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/masaki/asset-collector/internal/textnorm"
)

var (
	fullDatePattern  = regexp.MustCompile(`(20\d{2})年[\s\x{3000}]*([01]?\d)月[\s\x{3000}]*([0-3]?\d)日`)
	yearMonthPattern = regexp.MustCompile(`(20\d{2})年[ \x{3000}]*([01]?\d)月`)
)

// DateParser recognizes Japanese calendar dates and emits ISO-8601 strings.
// Now is injectable so the today-fallback is testable; the zero value uses
// the system clock.
type DateParser struct {
	Now func() time.Time
}

func (p DateParser) today() string {
	now := time.Now
	if p.Now != nil {
		now = p.Now
	}
	return now().Format("2006-01-02")
}

// ParseJapaneseDate converts "YYYY年MM月DD日" (full-width digits and spacing
// between parts tolerated) to "YYYY-MM-DD". When the pattern is absent
// it falls back to today's date; the caller's zero-value policy catches the
// cases where that would mis-date a broken extraction.
func (p DateParser) ParseJapaneseDate(s string) string {
	m := fullDatePattern.FindStringSubmatch(textnorm.Normalize(s))
	if m == nil {
		return p.today()
	}
	year, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	day, _ := strconv.Atoi(m[3])
	return fmt.Sprintf("%04d-%02d-%02d", year, month, day)
}

// ParseYearMonth finds the first "YYYY年MM月" token in s and returns it as
// the first day of that month ("YYYY-MM-01"). The boolean reports whether a
// plausible token was found; months outside 1..12 do not match.
func ParseYearMonth(s string) (string, bool) {
	m := yearMonthPattern.FindStringSubmatch(textnorm.Normalize(s))
	if m == nil {
		return "", false
	}
	year, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	if month < 1 || month > 12 {
		return "", false
	}
	return fmt.Sprintf("%04d-%02d-01", year, month), true
}
