// Package pdf assembles one card into a single-page A4 portrait PDF.
// It reuses the layout package's geometry in millimetres, so the print
// output matches the on-screen preview cell for cell.
package pdf

import (
	"bytes"
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/go-pdf/fpdf"

	"pasport/internal/layout"
	"pasport/internal/slots"
	"pasport/pkg/geometry"
)

const (
	titleFontPt = 16
	labelFontPt = 8
)

// Generate writes the card page to path. Slot blobs that fail to
// decode leave their cell blank; the rest of the page still renders.
func Generate(path, cardName string, images map[string][]byte) error {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}

	doc := fpdf.New("P", "mm", "A4", "")
	// Core fonts are cp1252; route the Czech labels through cp1250.
	tr := doc.UnicodeTranslatorFromDescriptor("cp1250")
	doc.AddPage()

	page := layout.Compute(layout.PageAspectW, layout.PageAspectH)

	doc.SetFont("Helvetica", "B", titleFontPt)
	doc.Text(page.Title.X, page.Title.Y+page.Title.Height*0.7, tr(cardName))

	doc.SetLineWidth(0.3)
	doc.SetFont("Helvetica", "", labelFontPt)

	for i, cell := range page.Cells {
		doc.Rect(cell.Rect.X, cell.Rect.Y, cell.Rect.Width, cell.Rect.Height, "D")
		doc.SetFillColor(247, 247, 247)
		doc.Rect(cell.Label.X, cell.Label.Y, cell.Label.Width, cell.Label.Height, "F")
		doc.Text(cell.Label.X+1.5, cell.Label.Y+cell.Label.Height*0.7, tr(slots.Label(cell.Key)))

		data, ok := images[cell.Key]
		if !ok {
			continue
		}
		cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
		if err != nil {
			continue
		}
		name := fmt.Sprintf("slot-%d", i)
		doc.RegisterImageOptionsReader(name,
			fpdf.ImageOptions{ImageType: "PNG"},
			bytes.NewReader(data))
		if doc.Err() {
			// Undecodable blob: clear the error and leave the cell blank.
			doc.ClearError()
			continue
		}
		fit := geometry.FitRect(cell.Image, cfg.Width, cfg.Height)
		doc.ImageOptions(name, fit.X, fit.Y, fit.Width, fit.Height, false,
			fpdf.ImageOptions{ImageType: "PNG"}, 0, "")
	}

	if err := doc.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}
