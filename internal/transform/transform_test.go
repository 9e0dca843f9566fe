package transform_test

import (
	"testing"

	"pasport/internal/transform"
)

func TestNewStateIsIdentity(t *testing.T) {
	st := transform.NewState()
	if st.Zoom != 1.0 || st.AngleDeg != 0 || st.OffsetX != 0 || st.OffsetY != 0 {
		t.Fatalf("unexpected identity state: %+v", st)
	}
}

func TestRotateNormalizesIntoRange(t *testing.T) {
	deltas := []int{90, -90, 5, -5, 360, -360, 725, -725, 180}
	for _, d := range deltas {
		st := transform.NewState()
		for i := 0; i < 13; i++ {
			st.Rotate(d)
			if st.AngleDeg < 0 || st.AngleDeg >= 360 {
				t.Fatalf("Rotate(%d) iteration %d left angle %d outside [0,360)", d, i, st.AngleDeg)
			}
		}
	}
}

func TestRotateFullTurnIsNoOp(t *testing.T) {
	st := transform.NewState()
	st.Rotate(45)
	st.Rotate(360)
	if st.AngleDeg != 45 {
		t.Fatalf("Rotate(360) changed angle: got %d, want 45", st.AngleDeg)
	}
}

func TestZoomToClamps(t *testing.T) {
	cases := []struct {
		in, want float64
	}{
		{0.0, transform.ZoomMin},
		{-3.5, transform.ZoomMin},
		{0.2, 0.2},
		{1.0, 1.0},
		{8.0, 8.0},
		{100.0, transform.ZoomMax},
	}
	for _, tc := range cases {
		st := transform.NewState()
		st.ZoomTo(tc.in)
		if st.Zoom != tc.want {
			t.Errorf("ZoomTo(%v) = %v, want %v", tc.in, st.Zoom, tc.want)
		}
	}
}

func TestZoomByComposesThenClamps(t *testing.T) {
	st := transform.NewState()
	st.ZoomBy(2.0)
	st.ZoomBy(2.0)
	if st.Zoom != 4.0 {
		t.Fatalf("ZoomBy(2);ZoomBy(2) = %v, want 4", st.Zoom)
	}

	// Once clamping is hit at either step the composition is not
	// equivalent to a single multiplied ZoomBy.
	a := transform.NewState()
	a.ZoomBy(100.0) // clamps to max
	a.ZoomBy(0.01)
	b := transform.NewState()
	b.ZoomBy(100.0 * 0.01)
	if a.Zoom == b.Zoom {
		t.Fatalf("expected clamped composition to differ: both %v", a.Zoom)
	}
	// 8.0 * 0.01 lands below the minimum, so the second step clamps too.
	if a.Zoom != transform.ZoomMin {
		t.Errorf("stepwise zoom = %v, want %v", a.Zoom, transform.ZoomMin)
	}
	if b.Zoom != 1.0 {
		t.Errorf("single-step zoom = %v, want 1.0", b.Zoom)
	}
}

func TestPanByAccumulates(t *testing.T) {
	st := transform.NewState()
	st.PanBy(10, -4)
	st.PanBy(-2.5, 1)
	if st.OffsetX != 7.5 || st.OffsetY != -3 {
		t.Fatalf("unexpected offsets: %+v", st)
	}
}

func TestResetRestoresIdentity(t *testing.T) {
	st := transform.NewState()
	st.Rotate(95)
	st.ZoomTo(3.3)
	st.PanBy(12, 34)
	st.Reset()
	if st != transform.NewState() {
		t.Fatalf("Reset left state %+v", st)
	}
}
