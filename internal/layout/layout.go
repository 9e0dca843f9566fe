// Package layout computes the printed-page geometry shared by the
// on-screen preview and the PDF export: an A4 portrait page with a
// title band and a 4x4 grid of labeled image cells. Both renderers
// consume the same numbers, so what the user sees is what prints.
package layout

import (
	"pasport/internal/slots"
	"pasport/pkg/geometry"
)

// A4 portrait proportions (width:height = 210:297).
const (
	PageAspectW = 210.0
	PageAspectH = 297.0
)

// Proportional constants, expressed against the page size so the same
// geometry holds in preview pixels and in PDF millimetres.
const (
	marginFrac = 0.025 // page margin, fraction of page width
	gapFrac    = 0.012 // gap between cells, fraction of page width
	titleFrac  = 0.055 // title band, fraction of page height
	labelFrac  = 0.16  // label strip, fraction of cell height
	padFrac    = 0.006 // image inset inside a cell, fraction of page width
)

// Cell is one slot's position on the page.
type Cell struct {
	Key   string
	Rect  geometry.Rect // full cell, including the border
	Label geometry.Rect // label strip along the bottom edge
	Image geometry.Rect // image area above the label
}

// Page is the computed geometry for a page of a particular size.
type Page struct {
	Width, Height float64
	Margin        float64
	Title         geometry.Rect // title band at the top of the content area
	Cells         []Cell
}

// Compute lays out the grid for a page of the given size. Units are
// whatever the caller renders in.
func Compute(pageW, pageH float64) Page {
	margin := marginFrac * pageW
	gap := gapFrac * pageW
	pad := padFrac * pageW
	titleH := titleFrac * pageH

	content := geometry.NewRect(margin, margin, pageW-2*margin, pageH-2*margin)
	title := geometry.NewRect(content.X, content.Y, content.Width, titleH)

	gridTop := content.Y + titleH
	gridH := content.Height - titleH
	cols := float64(slots.GridCols)
	rows := float64(slots.GridRows)
	cellW := (content.Width - gap*(cols-1)) / cols
	cellH := (gridH - gap*(rows-1)) / rows
	labelH := labelFrac * cellH

	cells := make([]Cell, 0, slots.Count)
	for i, slot := range slots.All() {
		col := float64(i % slots.GridCols)
		row := float64(i / slots.GridCols)
		rect := geometry.NewRect(
			content.X+col*(cellW+gap),
			gridTop+row*(cellH+gap),
			cellW, cellH,
		)
		label := geometry.NewRect(rect.X, rect.Y+rect.Height-labelH, rect.Width, labelH)
		img := geometry.NewRect(
			rect.X+pad,
			rect.Y+pad,
			rect.Width-2*pad,
			rect.Height-labelH-2*pad,
		)
		cells = append(cells, Cell{Key: slot.Key, Rect: rect, Label: label, Image: img})
	}

	return Page{
		Width:  pageW,
		Height: pageH,
		Margin: margin,
		Title:  title,
		Cells:  cells,
	}
}

// FitPage returns the largest A4-portrait rectangle that fits in a
// viewport with the given padding, centered.
func FitPage(viewW, viewH, pad float64) geometry.Rect {
	avail := geometry.NewRect(0, 0, viewW, viewH).Inset(pad)
	return geometry.AspectRect(avail, PageAspectW, PageAspectH)
}

// CellAt returns the key of the cell containing the point, if any.
func (p Page) CellAt(pt geometry.Point2D) (string, bool) {
	for _, c := range p.Cells {
		if c.Rect.Contains(pt) {
			return c.Key, true
		}
	}
	return "", false
}
