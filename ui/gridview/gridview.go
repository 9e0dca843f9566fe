// Package gridview provides the interactive page preview: the card's
// 4x4 slot grid drawn as a simulated printed page. Left-clicking a
// cell asks the owner to assign an image, right-clicking asks to clear
// it; the drawing itself is shared with the PDF export through the
// layout package.
package gridview

import (
	"image"
	"image/color"
	"image/draw"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"

	"pasport/internal/layout"
	"pasport/pkg/geometry"
)

const pagePad = 20

var backdropColor = color.NRGBA{R: 236, G: 236, B: 236, A: 255}

// GridView displays one card as a page preview.
type GridView struct {
	widget.BaseWidget

	raster *fynecanvas.Raster

	title   string
	images  map[string][]byte
	hasCard bool

	// Geometry of the last draw, for hit testing. The raster generator
	// works in physical pixels while pointer events arrive in logical
	// units, so the draw-time scale factor is kept alongside.
	pageRect geometry.Rect
	page     layout.Page
	scale    float64

	onSelectSlot func(key string)
	onClearSlot  func(key string)
}

// New creates an empty grid view.
func New() *GridView {
	g := &GridView{scale: 1}
	g.raster = fynecanvas.NewRaster(g.draw)
	g.raster.ScaleMode = fynecanvas.ImageScaleSmooth
	g.ExtendBaseWidget(g)
	return g
}

// SetCard updates the displayed card; a nil images map with hasCard
// false shows the empty-state backdrop.
func (g *GridView) SetCard(title string, images map[string][]byte) {
	g.title = title
	g.images = images
	g.hasCard = true
	g.Refresh()
}

// Clear shows the no-card state.
func (g *GridView) Clear() {
	g.title = ""
	g.images = nil
	g.hasCard = false
	g.Refresh()
}

// OnSelectSlot sets the handler for a left click on a cell.
func (g *GridView) OnSelectSlot(fn func(key string)) { g.onSelectSlot = fn }

// OnClearSlot sets the handler for a right click on a cell.
func (g *GridView) OnClearSlot(fn func(key string)) { g.onClearSlot = fn }

func (g *GridView) draw(w, h int) image.Image {
	if lw := g.Size().Width; lw > 0 {
		g.scale = float64(w) / float64(lw)
	}

	out := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.Draw(out, out.Bounds(), &image.Uniform{C: backdropColor}, image.Point{}, draw.Src)

	if !g.hasCard || w < 2*pagePad || h < 2*pagePad {
		g.pageRect = geometry.Rect{}
		return out
	}

	g.pageRect = layout.FitPage(float64(w), float64(h), pagePad)
	pw := int(g.pageRect.Width)
	ph := int(g.pageRect.Height)
	if pw < 1 || ph < 1 {
		return out
	}
	g.page = layout.Compute(float64(pw), float64(ph))

	rendered := layout.RenderPage(pw, ph, g.title, g.images)
	origin := image.Pt(int(g.pageRect.X), int(g.pageRect.Y))
	draw.Draw(out,
		image.Rectangle{Min: origin, Max: origin.Add(image.Pt(pw, ph))},
		rendered, image.Point{}, draw.Src)

	return out
}

// slotAt maps a logical widget position to the slot cell under it, if
// any. Positions are converted into the raster's pixel domain first.
func (g *GridView) slotAt(pos fyne.Position) (string, bool) {
	if g.pageRect.Width <= 0 || g.scale <= 0 {
		return "", false
	}
	pt := geometry.NewPoint2D(
		float64(pos.X)*g.scale-g.pageRect.X,
		float64(pos.Y)*g.scale-g.pageRect.Y,
	)
	return g.page.CellAt(pt)
}

// Tapped opens the slot under the pointer for editing.
func (g *GridView) Tapped(ev *fyne.PointEvent) {
	if g.onSelectSlot == nil {
		return
	}
	if key, ok := g.slotAt(ev.Position); ok {
		g.onSelectSlot(key)
	}
}

// TappedSecondary asks to clear the slot under the pointer.
func (g *GridView) TappedSecondary(ev *fyne.PointEvent) {
	if g.onClearSlot == nil {
		return
	}
	if key, ok := g.slotAt(ev.Position); ok {
		g.onClearSlot(key)
	}
}

// Refresh redraws the raster.
func (g *GridView) Refresh() {
	g.raster.Refresh()
	g.BaseWidget.Refresh()
}

// CreateRenderer implements fyne.Widget.
func (g *GridView) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(g.raster)
}

// MinSize keeps the preview usable.
func (g *GridView) MinSize() fyne.Size {
	return fyne.NewSize(420, 594)
}
