// Package editorview is the Fyne front end for an image-edit session:
// a modal dialog with a live crop preview, drag to pan, wheel to zoom,
// rotation buttons and a zoom slider. The transform logic itself lives
// in internal/editor; this package only translates gestures and blits
// previews.
package editorview

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"pasport/internal/compositor"
	"pasport/internal/editor"
	"pasport/internal/transform"
)

var (
	surroundColor = color.NRGBA{R: 60, G: 60, B: 60, A: 255}
	borderColor   = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
)

// Editor is one open edit dialog.
type Editor struct {
	mu      sync.Mutex
	session *editor.Session
	preview editor.Preview

	canvas    *editCanvas
	slider    *widget.Slider
	zoomLabel *widget.Label
	dlg       dialog.Dialog
	parent    fyne.Window

	// Guards against slider feedback loops when the wheel moves it.
	settingSlider bool

	onSave func(png []byte) error
}

// Show opens the edit dialog for one source image. onSave receives the
// finalized PNG; returning an error keeps the dialog open so the user
// can retry or cancel.
func Show(parent fyne.Window, title string, src image.Image, spec compositor.OutputSpec, onSave func(png []byte) error) error {
	e := &Editor{parent: parent, onSave: onSave}

	sess, err := editor.NewSession(src, spec, e, e.handlePreview)
	if err != nil {
		return err
	}
	e.session = sess

	e.canvas = newEditCanvas(e)

	e.slider = widget.NewSlider(transform.ZoomMin, transform.ZoomMax)
	e.slider.Step = 0.05
	e.slider.Value = 1.0
	e.slider.OnChanged = func(v float64) {
		if e.settingSlider {
			return
		}
		e.withSession(func(s *editor.Session) { s.ZoomTo(v) })
		e.updateZoomLabel(v)
	}
	e.zoomLabel = widget.NewLabel("100 %")

	rotateRow := container.NewHBox(
		widget.NewButton("⟲ 90°", func() { e.rotate(90) }),
		widget.NewButton("⟳ 90°", func() { e.rotate(-90) }),
		widget.NewButton("+5°", func() { e.rotate(5) }),
		widget.NewButton("-5°", func() { e.rotate(-5) }),
		widget.NewButton("Reset", e.reset),
	)
	zoomRow := container.NewBorder(nil, nil, widget.NewLabel("Zoom"), e.zoomLabel, e.slider)

	buttons := container.NewHBox(
		widget.NewButton("Uložit", e.save),
		widget.NewButton("Zrušit", func() { e.dlg.Hide() }),
	)

	content := container.NewBorder(nil,
		container.NewVBox(rotateRow, zoomRow, container.NewCenter(buttons)),
		nil, nil,
		e.canvas,
	)

	e.dlg = dialog.NewCustomWithoutButtons(title, content, parent)
	e.dlg.Resize(fyne.NewSize(860, 720))
	e.dlg.Show()
	return nil
}

// Schedule implements editor.Scheduler on a plain timer. Debounced
// renders fire on the timer goroutine, so the callback reacquires the
// session lock; session access is serialized by the mutex rather than
// by a single thread.
func (e *Editor) Schedule(d time.Duration, fn func()) {
	time.AfterFunc(d, func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		fn()
	})
}

// withSession runs fn while holding the session lock.
func (e *Editor) withSession(fn func(*editor.Session)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	fn(e.session)
}

func (e *Editor) rotate(deltaDeg int) {
	e.withSession(func(s *editor.Session) { s.Rotate(deltaDeg) })
}

func (e *Editor) reset() {
	e.withSession(func(s *editor.Session) { s.Reset() })
	e.setSlider(1.0)
}

func (e *Editor) save() {
	e.mu.Lock()
	data, err := e.session.Finalize()
	e.mu.Unlock()
	if err != nil {
		dialog.ShowError(fmt.Errorf("uložení obrázku: %w", err), e.parent)
		return
	}
	if err := e.onSave(data); err != nil {
		dialog.ShowError(err, e.parent)
		return
	}
	e.dlg.Hide()
}

// handlePreview is called by the session with the lock held.
func (e *Editor) handlePreview(p editor.Preview) {
	e.preview = p
	e.canvas.Refresh()
}

func (e *Editor) setSlider(v float64) {
	e.settingSlider = true
	e.slider.SetValue(v)
	e.settingSlider = false
	e.updateZoomLabel(v)
}

func (e *Editor) updateZoomLabel(v float64) {
	e.zoomLabel.SetText(fmt.Sprintf("%.0f %%", v*100))
}

// editCanvas is the draggable, scrollable preview surface.
type editCanvas struct {
	widget.BaseWidget

	owner  *Editor
	raster *fynecanvas.Raster

	viewW, viewH int

	// Pixels per logical unit at the last draw. The session works in
	// raster pixels, pointer events in logical units.
	scale float32
}

func newEditCanvas(owner *Editor) *editCanvas {
	c := &editCanvas{owner: owner, scale: 1}
	c.raster = fynecanvas.NewRaster(c.draw)
	c.raster.ScaleMode = fynecanvas.ImageScaleSmooth
	c.ExtendBaseWidget(c)
	return c
}

func (c *editCanvas) draw(w, h int) image.Image {
	if lw := c.Size().Width; lw > 0 {
		c.scale = float32(w) / lw
	}
	if w != c.viewW || h != c.viewH {
		c.viewW, c.viewH = w, h
		c.owner.withSession(func(s *editor.Session) { s.SetViewport(w, h) })
	}

	out := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.Draw(out, out.Bounds(), &image.Uniform{C: surroundColor}, image.Point{}, draw.Src)

	c.owner.mu.Lock()
	p := c.owner.preview
	c.owner.mu.Unlock()

	if p.Image == nil {
		return out
	}
	origin := image.Pt(p.Crop.X, p.Crop.Y)
	target := image.Rectangle{
		Min: origin,
		Max: origin.Add(image.Pt(p.Crop.Width, p.Crop.Height)),
	}
	draw.Draw(out, target, p.Image, image.Point{}, draw.Src)
	strokeBorder(out, target.Inset(-1))
	return out
}

func strokeBorder(img *image.NRGBA, r image.Rectangle) {
	r = r.Intersect(img.Bounds())
	for x := r.Min.X; x < r.Max.X; x++ {
		img.SetNRGBA(x, r.Min.Y, borderColor)
		img.SetNRGBA(x, r.Max.Y-1, borderColor)
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		img.SetNRGBA(r.Min.X, y, borderColor)
		img.SetNRGBA(r.Max.X-1, y, borderColor)
	}
}

// Dragged pans the image. Fyne reports no press event before the first
// drag tick, so the gesture origin is reconstructed from the delta.
// Event positions are logical units and the session works in raster
// pixels, so both are converted through the draw-time scale.
func (c *editCanvas) Dragged(ev *fyne.DragEvent) {
	x := ev.Position.X * c.scale
	y := ev.Position.Y * c.scale
	c.owner.withSession(func(s *editor.Session) {
		if !s.Dragging() {
			s.DragStart(x-ev.Dragged.DX*c.scale, y-ev.Dragged.DY*c.scale)
		}
		s.DragMove(x, y)
	})
}

// DragEnd finishes the pan gesture.
func (c *editCanvas) DragEnd() {
	c.owner.withSession(func(s *editor.Session) { s.DragEnd() })
}

// Scrolled zooms around the wheel convention: one notch in either
// direction changes the zoom by a factor of 1.1.
func (c *editCanvas) Scrolled(ev *fyne.ScrollEvent) {
	var delta float32
	switch {
	case ev.Scrolled.DY > 0:
		delta = 120
	case ev.Scrolled.DY < 0:
		delta = -120
	default:
		return
	}
	var zoom float64
	c.owner.withSession(func(s *editor.Session) {
		s.Scroll(delta)
		zoom = s.State().Zoom
	})
	c.owner.setSlider(zoom)
}

// Refresh redraws the raster.
func (c *editCanvas) Refresh() {
	c.raster.Refresh()
	c.BaseWidget.Refresh()
}

// CreateRenderer implements fyne.Widget.
func (c *editCanvas) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(c.raster)
}

// MinSize keeps the crop rectangle workable.
func (c *editCanvas) MinSize() fyne.Size {
	return fyne.NewSize(640, 480)
}
