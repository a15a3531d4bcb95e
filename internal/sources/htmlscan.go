package sources

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var amountToken = regexp.MustCompile(`[+-]?[0-9][0-9,]*`)

// scanForLabeledAmount is the secondary extraction strategy: when a stable
// selector misses, scan the rendered markup for a leaf element whose text
// contains label and read the first numeric token that follows it in the
// enclosing element's text. Returns "" when the label cannot be found.
func scanForLabeledAmount(html, label string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}

	var found string
	doc.Find("*").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if s.Children().Length() > 0 {
			return true
		}
		text := strings.TrimSpace(s.Text())
		if text == "" || !strings.Contains(text, label) {
			return true
		}

		// Prefer a number on the label's own line, then the parent's text.
		for _, scope := range []string{text, s.Parent().Text()} {
			idx := strings.Index(scope, label)
			if idx < 0 {
				continue
			}
			if tok := amountToken.FindString(scope[idx+len(label):]); tok != "" {
				found = tok
				return false
			}
		}
		return true
	})
	return found
}
