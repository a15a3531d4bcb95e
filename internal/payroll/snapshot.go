package payroll

import (
	"fmt"
	"os"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// ExtractSnapshot extracts the first page's embedded images into outDir so a
// visual copy of the statement can be kept next to the parsed data. Callers
// treat failure as non-fatal; not every statement embeds an image.
func ExtractSnapshot(path, outDir string) error {
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return fmt.Errorf("failed to create snapshot directory %s: %w", outDir, err)
	}

	conf := model.NewDefaultConfiguration()
	if err := api.ExtractImagesFile(path, outDir, []string{"1"}, conf); err != nil {
		return fmt.Errorf("failed to extract page snapshot: %w", err)
	}
	return nil
}
