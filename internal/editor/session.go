// Package editor drives one image-edit session: it owns the transform
// state, translates pointer and wheel gestures into mutations, and
// schedules debounced preview renders. It knows nothing about any GUI
// toolkit; a front end supplies gestures and blits the previews it is
// handed back.
package editor

import (
	"image"
	"math"
	"time"

	"github.com/disintegration/imaging"

	"pasport/internal/compositor"
	"pasport/internal/transform"
	"pasport/pkg/geometry"
)

// DebounceInterval is how long after the first unrendered mutation the
// coalesced preview render fires.
const DebounceInterval = 30 * time.Millisecond

// viewportPad keeps the crop rectangle away from the dialog edges.
const viewportPad = 20

// wheelStepUnits is the notional scroll magnitude of one wheel notch.
const wheelStepUnits = 120

// Scheduler defers a callback once. The session keeps a single-slot
// pending flag, so at most one callback is outstanding at a time.
type Scheduler interface {
	Schedule(d time.Duration, fn func())
}

// SchedulerFunc adapts a function to the Scheduler interface.
type SchedulerFunc func(d time.Duration, fn func())

func (f SchedulerFunc) Schedule(d time.Duration, fn func()) { f(d, fn) }

// Preview is a downscaled composite sized to the on-screen crop
// rectangle, plus where that rectangle sits in the viewport.
type Preview struct {
	Image image.Image
	Crop  geometry.RectInt
}

type dragOrigin struct {
	x, y             float32
	offsetX, offsetY float64
}

// Session is an in-progress edit of one source image. All methods must
// be called from a single goroutine (the UI thread); the scheduler is
// expected to deliver its callback on that same goroutine.
type Session struct {
	src   image.Image
	spec  compositor.OutputSpec
	state transform.State

	sched     Scheduler
	onPreview func(Preview)

	viewW, viewH int
	crop         geometry.RectInt

	pending bool
	drag    *dragOrigin
}

// NewSession validates the source against the output spec and returns
// a session with the identity transform. The first preview is rendered
// once a viewport size is known.
func NewSession(src image.Image, spec compositor.OutputSpec, sched Scheduler, onPreview func(Preview)) (*Session, error) {
	if _, err := compositor.BaseScale(src, spec); err != nil {
		return nil, err
	}
	return &Session{
		src:       src,
		spec:      spec,
		state:     transform.NewState(),
		sched:     sched,
		onPreview: onPreview,
	}, nil
}

// State returns a copy of the current transform state.
func (s *Session) State() transform.State { return s.state }

// OutputSpec returns the target render size.
func (s *Session) OutputSpec() compositor.OutputSpec { return s.spec }

// CropRect returns the current on-screen crop rectangle.
func (s *Session) CropRect() geometry.RectInt { return s.crop }

// SetViewport tells the session how large the editing canvas is, in
// preview pixels. The crop rectangle is the largest output-aspect
// rectangle that fits inside it, minus padding, centered.
func (s *Session) SetViewport(w, h int) {
	s.viewW, s.viewH = w, h
	s.recomputeCrop()
	s.scheduleRender()
}

func (s *Session) recomputeCrop() {
	avail := geometry.NewRect(0, 0, float64(s.viewW), float64(s.viewH)).Inset(viewportPad)
	s.crop = geometry.AspectRect(avail, float64(s.spec.Width), float64(s.spec.Height)).ToInt()
}

// DragStart begins a pan gesture, capturing the pointer position and
// the offsets at gesture start.
func (s *Session) DragStart(x, y float32) {
	s.drag = &dragOrigin{x: x, y: y, offsetX: s.state.OffsetX, offsetY: s.state.OffsetY}
}

// Dragging reports whether a pan gesture is in progress.
func (s *Session) Dragging() bool { return s.drag != nil }

// DragMove updates the pan from the current pointer position. Preview
// pixel deltas are rescaled into output pixel units by the ratio of
// output size to crop-rectangle size, so drag sensitivity does not
// depend on the window size.
func (s *Session) DragMove(x, y float32) {
	if s.drag == nil {
		return
	}
	cw := s.crop.Width
	ch := s.crop.Height
	if cw < 1 {
		cw = 1
	}
	if ch < 1 {
		ch = 1
	}
	dx := float64(x-s.drag.x) * float64(s.spec.Width) / float64(cw)
	dy := float64(y-s.drag.y) * float64(s.spec.Height) / float64(ch)
	s.state.OffsetX = s.drag.offsetX + dx
	s.state.OffsetY = s.drag.offsetY + dy
	s.scheduleRender()
}

// DragEnd finishes a pan gesture, discarding the captured origin.
// Pointer-leave is treated the same way.
func (s *Session) DragEnd() { s.drag = nil }

// Scroll applies wheel or trackpad zoom. deltaY follows the 120-units
// per notch convention; each notch multiplies the zoom by 1.1.
func (s *Session) Scroll(deltaY float32) {
	if deltaY == 0 {
		return
	}
	steps := float64(deltaY) / wheelStepUnits
	s.ZoomBy(math.Pow(1.1, steps))
}

// ZoomBy multiplies the zoom by a factor, clamped.
func (s *Session) ZoomBy(factor float64) {
	s.state.ZoomBy(factor)
	s.scheduleRender()
}

// ZoomTo sets the zoom directly (slider / direct entry), clamped.
func (s *Session) ZoomTo(value float64) {
	s.state.ZoomTo(value)
	s.scheduleRender()
}

// Rotate adds a rotation delta in degrees.
func (s *Session) Rotate(deltaDeg int) {
	s.state.Rotate(deltaDeg)
	s.scheduleRender()
}

// Reset restores the identity transform.
func (s *Session) Reset() {
	s.state.Reset()
	s.scheduleRender()
}

// scheduleRender coalesces rapid mutations: if a render is already
// pending nothing new is scheduled, and the pending render reads the
// latest state when it fires. No render is left stale longer than one
// debounce interval.
func (s *Session) scheduleRender() {
	if s.pending {
		return
	}
	s.pending = true
	s.sched.Schedule(DebounceInterval, s.renderNow)
}

func (s *Session) renderNow() {
	s.pending = false
	if s.crop.Width < 1 || s.crop.Height < 1 || s.onPreview == nil {
		return
	}
	out, err := compositor.Render(s.src, s.state, s.spec)
	if err != nil {
		// The source and output spec were validated at construction,
		// so a render failure here cannot happen.
		return
	}
	preview := imaging.Resize(out, s.crop.Width, s.crop.Height, imaging.Lanczos)
	s.onPreview(Preview{Image: preview, Crop: s.crop})
}

// Finalize renders the composite at full output resolution and encodes
// it to PNG. On failure the session state is untouched so the caller
// can report the error and let the user retry.
func (s *Session) Finalize() ([]byte, error) {
	out, err := compositor.Render(s.src, s.state, s.spec)
	if err != nil {
		return nil, err
	}
	return compositor.EncodePNG(out)
}
