package payroll

import (
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/masaki/asset-collector/internal/layout"
)

// ReadBlocks extracts the first page's text layer as ordered blocks, one per
// text row. Only the text layer is read; rasterized content is not OCRed.
func ReadBlocks(path string) ([]layout.Block, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return nil, &ParseError{Message: fmt.Sprintf("failed to open %s", path), Cause: err}
	}
	defer f.Close()

	if reader.NumPage() == 0 {
		return nil, &ParseError{Message: "document has no pages"}
	}

	page := reader.Page(1)
	if page.V.IsNull() {
		return nil, &ParseError{Message: "first page has no content"}
	}

	rows, err := page.GetTextByRow()
	if err != nil {
		return nil, &ParseError{Message: "failed to read text rows", Cause: err}
	}

	blocks := make([]layout.Block, 0, len(rows))
	for i, row := range rows {
		var sb strings.Builder
		for _, word := range row.Content {
			sb.WriteString(word.S)
		}
		text := strings.TrimSpace(sb.String())
		if text == "" {
			continue
		}
		blocks = append(blocks, layout.Block{Index: i, Text: text})
	}
	return blocks, nil
}
