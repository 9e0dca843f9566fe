package layout_test

import (
	"image/color"
	"math"
	"testing"

	"pasport/internal/layout"
	"pasport/internal/slots"
	"pasport/internal/testsupport"
	"pasport/pkg/geometry"
)

func TestComputeProducesSixteenCellsInsidePage(t *testing.T) {
	page := layout.Compute(210, 297)
	if len(page.Cells) != slots.Count {
		t.Fatalf("got %d cells, want %d", len(page.Cells), slots.Count)
	}
	for _, c := range page.Cells {
		if c.Rect.X < 0 || c.Rect.Y < 0 ||
			c.Rect.X+c.Rect.Width > 210+1e-9 || c.Rect.Y+c.Rect.Height > 297+1e-9 {
			t.Errorf("cell %s escapes the page: %+v", c.Key, c.Rect)
		}
		if c.Image.Y+c.Image.Height > c.Label.Y+1e-9 {
			t.Errorf("cell %s image area overlaps its label strip", c.Key)
		}
	}
}

func TestComputeCellsDoNotOverlap(t *testing.T) {
	page := layout.Compute(210, 297)
	for i, a := range page.Cells {
		for _, b := range page.Cells[i+1:] {
			ax2 := a.Rect.X + a.Rect.Width
			ay2 := a.Rect.Y + a.Rect.Height
			if b.Rect.X < ax2 && b.Rect.X+b.Rect.Width > a.Rect.X &&
				b.Rect.Y < ay2 && b.Rect.Y+b.Rect.Height > a.Rect.Y {
				t.Fatalf("cells %s and %s overlap", a.Key, b.Key)
			}
		}
	}
}

func TestGeometryScalesProportionally(t *testing.T) {
	small := layout.Compute(210, 297)
	big := layout.Compute(840, 1188)
	for i := range small.Cells {
		s, b := small.Cells[i].Rect, big.Cells[i].Rect
		if math.Abs(b.X/s.X-4) > 0.01 {
			t.Fatalf("cell %d X did not scale: %v vs %v", i, s.X, b.X)
		}
		if math.Abs(b.Width/s.Width-4) > 0.01 {
			t.Fatalf("cell %d width did not scale: %v vs %v", i, s.Width, b.Width)
		}
	}
}

func TestFitPageKeepsA4Aspect(t *testing.T) {
	r := layout.FitPage(1000, 700, 20)
	ratio := r.Width / r.Height
	want := layout.PageAspectW / layout.PageAspectH
	if math.Abs(ratio-want) > 0.001 {
		t.Fatalf("fitted page ratio %v, want %v", ratio, want)
	}
	if r.Height > 700-2*20+1e-9 {
		t.Fatalf("page taller than padded viewport: %v", r.Height)
	}
}

func TestCellAtHitTest(t *testing.T) {
	page := layout.Compute(420, 594)
	first := page.Cells[0]
	key, ok := page.CellAt(first.Rect.Center())
	if !ok || key != "skrin" {
		t.Fatalf("CellAt(first center) = %q, %v", key, ok)
	}
	if _, ok := page.CellAt(geometry.NewPoint2D(1, 1)); ok {
		t.Fatal("page margin reported as a cell")
	}
}

// End-to-end: a card with a red square in slot wc renders with red
// pixels centered in the wc image area and nowhere else.
func TestRenderPagePlacesRedSquareInWcCell(t *testing.T) {
	images := map[string][]byte{
		"wc": testsupport.RedSquarePNG(t, 100, 100),
	}
	const w, h = 420, 594
	out := layout.RenderPage(w, h, "Bytová jednotka 3", images)

	page := layout.Compute(float64(w), float64(h))
	isRed := func(c color.NRGBA) bool {
		return c.R > 200 && c.G < 60 && c.B < 60
	}

	for _, cell := range page.Cells {
		center := cell.Image.Center()
		c := out.NRGBAAt(int(center.X), int(center.Y))
		if cell.Key == "wc" {
			if !isRed(c) {
				t.Errorf("wc cell center %v not red: %v", center, c)
			}
			// Aspect preserved: the square stays square after fitting.
			fit := geometry.FitRect(cell.Image, 100, 100)
			if math.Abs(fit.Width-fit.Height) > 1 {
				t.Errorf("fit not square: %+v", fit)
			}
			// The image area is taller than the fitted square, so
			// centering leaves a blank band at its top edge.
			top := out.NRGBAAt(int(center.X), int(cell.Image.Y)+2)
			if isRed(top) {
				t.Errorf("square not centered: red at top of image area")
			}
		} else if isRed(c) {
			t.Errorf("cell %s unexpectedly shows an image", cell.Key)
		}
	}
}

func TestRenderPageSwallowsCorruptBlobs(t *testing.T) {
	images := map[string][]byte{
		"tv": []byte("definitely not a png"),
		"wc": testsupport.RedSquarePNG(t, 10, 10),
	}
	out := layout.RenderPage(420, 594, "karta", images)
	if out == nil {
		t.Fatal("render failed entirely on a corrupt blob")
	}
	page := layout.Compute(420, 594)
	for _, cell := range page.Cells {
		if cell.Key != "tv" {
			continue
		}
		center := cell.Image.Center()
		c := out.NRGBAAt(int(center.X), int(center.Y))
		if c.R != 255 || c.G != 255 || c.B != 255 {
			t.Fatalf("corrupt cell not blank: %v", c)
		}
	}
}
