package editor_test

import (
	"bytes"
	"image"
	"image/color"
	"math"
	"testing"
	"time"

	"pasport/internal/compositor"
	"pasport/internal/editor"
	"pasport/internal/transform"
)

// manualScheduler records scheduled callbacks and fires them only when
// the test says so, standing in for the UI timer.
type manualScheduler struct {
	queue []func()
}

func (m *manualScheduler) Schedule(d time.Duration, fn func()) {
	m.queue = append(m.queue, fn)
}

func (m *manualScheduler) fire() {
	q := m.queue
	m.queue = nil
	for _, fn := range q {
		fn()
	}
}

func redSource(w, h int) image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: 255, A: 255})
		}
	}
	return img
}

func newSession(t *testing.T, sched editor.Scheduler, onPreview func(editor.Preview)) *editor.Session {
	t.Helper()
	s, err := editor.NewSession(redSource(200, 300), compositor.OutputSpec{Width: 400, Height: 600}, sched, onPreview)
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}
	return s
}

func TestNewSessionRejectsInvalidSource(t *testing.T) {
	sched := &manualScheduler{}
	empty := image.NewNRGBA(image.Rect(0, 0, 0, 0))
	if _, err := editor.NewSession(empty, compositor.OutputSpec{Width: 10, Height: 10}, sched, nil); err == nil {
		t.Fatal("expected error for zero-sized source")
	}
}

func TestDebounceCoalescesMutations(t *testing.T) {
	sched := &manualScheduler{}
	renders := 0
	var last editor.Preview
	s := newSession(t, sched, func(p editor.Preview) {
		renders++
		last = p
	})
	s.SetViewport(960, 640)
	sched.fire()
	renders = 0

	// Many rapid mutations inside one debounce window.
	for i := 0; i < 10; i++ {
		s.Rotate(5)
	}
	s.ZoomTo(2.0)
	if got := len(sched.queue); got != 1 {
		t.Fatalf("expected exactly one pending render, have %d", got)
	}
	sched.fire()
	if renders != 1 {
		t.Fatalf("expected one coalesced render, got %d", renders)
	}
	// The render reflects the latest state, not the state at schedule time.
	if st := s.State(); st.AngleDeg != 50 || st.Zoom != 2.0 {
		t.Fatalf("unexpected state at render time: %+v", st)
	}
	if last.Image == nil {
		t.Fatal("preview not delivered")
	}

	// A mutation after the window schedules again.
	s.Rotate(5)
	if got := len(sched.queue); got != 1 {
		t.Fatalf("expected a new pending render, have %d", got)
	}
}

func TestPreviewMatchesCropRect(t *testing.T) {
	sched := &manualScheduler{}
	var got editor.Preview
	s := newSession(t, sched, func(p editor.Preview) { got = p })
	s.SetViewport(960, 640)
	sched.fire()

	crop := s.CropRect()
	if crop.Width < 1 || crop.Height < 1 {
		t.Fatalf("degenerate crop rect: %+v", crop)
	}
	// Output aspect is 400:600; crop must match it and fit the padded viewport.
	ratio := float64(crop.Width) / float64(crop.Height)
	if math.Abs(ratio-400.0/600.0) > 0.01 {
		t.Errorf("crop aspect %v, want %v", ratio, 400.0/600.0)
	}
	if crop.Width > 960-2*19 || crop.Height > 640-2*19 {
		t.Errorf("crop rect %+v exceeds padded viewport", crop)
	}
	b := got.Image.Bounds()
	if b.Dx() != crop.Width || b.Dy() != crop.Height {
		t.Errorf("preview %dx%d, want crop size %dx%d", b.Dx(), b.Dy(), crop.Width, crop.Height)
	}
}

func TestDragRescalesToOutputUnits(t *testing.T) {
	sched := &manualScheduler{}
	s := newSession(t, sched, func(editor.Preview) {})
	s.SetViewport(960, 640)
	sched.fire()

	crop := s.CropRect()
	s.DragStart(100, 100)
	if !s.Dragging() {
		t.Fatal("expected drag in progress")
	}
	s.DragMove(100+float32(crop.Width), 100) // one crop-width to the right
	s.DragEnd()
	if s.Dragging() {
		t.Fatal("expected drag finished")
	}

	st := s.State()
	if math.Abs(st.OffsetX-400) > 1.0 {
		t.Errorf("OffsetX = %v, want one output width (400)", st.OffsetX)
	}
	if st.OffsetY != 0 {
		t.Errorf("OffsetY = %v, want 0", st.OffsetY)
	}
}

func TestDragMoveWithoutStartIsIgnored(t *testing.T) {
	sched := &manualScheduler{}
	s := newSession(t, sched, func(editor.Preview) {})
	s.SetViewport(960, 640)
	s.DragMove(50, 50)
	if st := s.State(); st.OffsetX != 0 || st.OffsetY != 0 {
		t.Fatalf("offsets changed without a drag: %+v", st)
	}
}

func TestScrollFollowsWheelConvention(t *testing.T) {
	sched := &manualScheduler{}
	s := newSession(t, sched, func(editor.Preview) {})
	s.Scroll(120) // one notch up
	if got := s.State().Zoom; math.Abs(got-1.1) > 1e-9 {
		t.Errorf("one notch: zoom %v, want 1.1", got)
	}
	s.Scroll(-120)
	if got := s.State().Zoom; math.Abs(got-1.0) > 1e-9 {
		t.Errorf("back down: zoom %v, want 1.0", got)
	}
	s.Scroll(0)
	if got := s.State().Zoom; math.Abs(got-1.0) > 1e-9 {
		t.Errorf("zero delta mutated zoom to %v", got)
	}
}

func TestResetRestoresIdentity(t *testing.T) {
	sched := &manualScheduler{}
	s := newSession(t, sched, func(editor.Preview) {})
	s.Rotate(90)
	s.ZoomTo(3)
	s.DragStart(0, 0)
	s.DragMove(10, 10)
	s.DragEnd()
	s.Reset()
	if st := s.State(); st != transform.NewState() {
		t.Fatalf("Reset left state %+v", st)
	}
}

func TestFinalizeRendersFullResolutionPNG(t *testing.T) {
	sched := &manualScheduler{}
	s := newSession(t, sched, func(editor.Preview) {})
	s.Rotate(90)
	data, err := s.Finalize()
	if err != nil {
		t.Fatalf("Finalize failed: %v", err)
	}
	img, err := compositor.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("result not decodable: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 400 || b.Dy() != 600 {
		t.Fatalf("final size %dx%d, want full output 400x600", b.Dx(), b.Dy())
	}
	// Session survives finalize; a retry must be possible.
	if st := s.State(); st.AngleDeg != 90 {
		t.Fatalf("state lost after Finalize: %+v", st)
	}
}
