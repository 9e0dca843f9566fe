// Package transform holds the zoom/rotation/pan state for a single
// image-edit session. It is pure data: no rendering, no failure modes.
package transform

// Zoom limits shared by every zoom path (wheel, buttons, slider).
const (
	ZoomMin = 0.2
	ZoomMax = 8.0
)

// State describes how a source image maps onto the output canvas.
// Offsets are in output-canvas pixel units, so the same state produces
// identical output regardless of preview size.
type State struct {
	Zoom     float64
	AngleDeg int
	OffsetX  float64
	OffsetY  float64
}

// NewState returns the identity state (zoom 1, no rotation, centered).
func NewState() State {
	return State{Zoom: 1.0}
}

// Reset restores the identity state.
func (s *State) Reset() {
	*s = NewState()
}

// Rotate adds a delta in degrees, keeping the angle in [0, 360).
func (s *State) Rotate(deltaDeg int) {
	a := (s.AngleDeg + deltaDeg) % 360
	if a < 0 {
		a += 360
	}
	s.AngleDeg = a
}

// ZoomBy multiplies the zoom by a factor, then clamps.
func (s *State) ZoomBy(factor float64) {
	s.ZoomTo(s.Zoom * factor)
}

// ZoomTo sets the zoom to an absolute value, clamped to the allowed
// range. Out-of-range values are clamped, never rejected.
func (s *State) ZoomTo(value float64) {
	if value < ZoomMin {
		value = ZoomMin
	}
	if value > ZoomMax {
		value = ZoomMax
	}
	s.Zoom = value
}

// PanBy moves the image center by a delta in output pixel units.
func (s *State) PanBy(dxOutput, dyOutput float64) {
	s.OffsetX += dxOutput
	s.OffsetY += dyOutput
}
