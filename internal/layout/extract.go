// Package layout pairs textual labels with numeric values inside unstructured
// blocks of page text. Payroll and benefit documents mix inline "label: value"
// pairs with stacked label/value pairs on adjacent lines, separated by
// decorative section headings; the extractor resolves both without a
// geometric layout model.
package layout

import (
	"regexp"
	"strings"

	"github.com/masaki/asset-collector/internal/parsing"
	"github.com/masaki/asset-collector/internal/textnorm"
)

// Block is one source-ordered chunk of text: a PDF text block or a rendered
// table row. Index preserves page order.
type Block struct {
	Index int
	Text  string
}

// Result is the outcome of one extraction pass over a page's blocks.
// Fields maps sanitized labels to normalized numeric strings; within one
// pass, a recurring label is overwritten by its later occurrence. Period is
// the document-level "YYYY-MM-01" date derived from the first year-month
// token found in block order, or empty when the page carries none.
type Result struct {
	Fields map[string]string
	Period string
}

var (
	numberToken = regexp.MustCompile(`^[+-]?[0-9][0-9,]*(?:\.[0-9]+)?`)
	labelNumber = regexp.MustCompile(`([^:\s][^:]*?)\s*:\s*([+-]?[0-9][0-9,]*(?:\.[0-9]+)?)`)
	plainNumber = regexp.MustCompile(`^[+-]?[0-9]+(?:\.[0-9]+)?$`)
)

// Extract runs the full pass over a page's ordered blocks.
func Extract(blocks []Block) Result {
	res := Result{Fields: make(map[string]string)}
	for _, b := range blocks {
		if res.Period == "" {
			if period, ok := parsing.ParseYearMonth(b.Text); ok {
				res.Period = period
			}
		}
		extractBlock(b.Text, res.Fields)
	}
	return res
}

// extractBlock scans one block line by line. The pending label is a
// single-slot state local to this block: a line ending in a bare colon parks
// its label here, and the next line's leading number consumes it.
func extractBlock(text string, fields map[string]string) {
	var pending string

	for _, raw := range strings.Split(text, "\n") {
		if textnorm.IsHeadingLine(raw) {
			continue
		}
		line := textnorm.Normalize(raw)

		if pending != "" {
			if tok := numberToken.FindString(line); tok != "" {
				fields[pending] = strings.ReplaceAll(textnorm.Normalize(tok), ",", "")
				pending = ""
				line = strings.TrimLeft(line[len(tok):], " \t")
			}
		}

		for _, m := range labelNumber.FindAllStringSubmatch(line, -1) {
			label := textnorm.SanitizeLabel(m[1])
			num := strings.ReplaceAll(textnorm.Normalize(m[2]), ",", "")
			if plainNumber.MatchString(num) && textnorm.IsValidLabel(label) {
				fields[label] = num
			}
		}

		if strings.HasSuffix(line, ":") {
			candidate := strings.TrimSpace(line[:strings.LastIndex(line, ":")])
			if candidate != "" && textnorm.IsValidLabel(candidate) {
				pending = textnorm.SanitizeLabel(candidate)
			}
		}
	}
}
