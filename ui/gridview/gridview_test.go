package gridview

import (
	"testing"

	"fyne.io/fyne/v2"

	"pasport/internal/layout"
)

// prime puts the widget into the state a draw at the given raster size
// and display scale would leave behind.
func prime(g *GridView, rasterW, rasterH float64, scale float64) {
	g.hasCard = true
	g.scale = scale
	g.pageRect = layout.FitPage(rasterW, rasterH, pagePad)
	g.page = layout.Compute(g.pageRect.Width, g.pageRect.Height)
}

func TestTapHitTestAccountsForDisplayScale(t *testing.T) {
	g := New()
	prime(g, 1000, 1200, 2)

	var selected string
	g.OnSelectSlot(func(key string) { selected = key })

	// Center of the first cell, in raster pixels, converted back to the
	// logical units that pointer events arrive in.
	first := g.page.Cells[0]
	center := first.Rect.Center()
	g.Tapped(&fyne.PointEvent{Position: fyne.NewPos(
		float32((g.pageRect.X+center.X)/2),
		float32((g.pageRect.Y+center.Y)/2),
	)})
	if selected != first.Key {
		t.Fatalf("tap at scale 2 selected %q, want %q", selected, first.Key)
	}

	// At scale 1 logical and raster units coincide.
	prime(g, 1000, 1200, 1)
	selected = ""
	g.Tapped(&fyne.PointEvent{Position: fyne.NewPos(
		float32(g.pageRect.X+center.X),
		float32(g.pageRect.Y+center.Y),
	)})
	if selected != first.Key {
		t.Fatalf("tap at scale 1 selected %q, want %q", selected, first.Key)
	}
}

func TestTapOutsidePageSelectsNothing(t *testing.T) {
	g := New()
	prime(g, 1000, 1200, 2)

	var cleared string
	g.OnClearSlot(func(key string) { cleared = key })

	g.TappedSecondary(&fyne.PointEvent{Position: fyne.NewPos(1, 1)})
	if cleared != "" {
		t.Fatalf("tap in the backdrop cleared %q", cleared)
	}
}

func TestTapBeforeFirstDrawIsIgnored(t *testing.T) {
	g := New()
	fired := false
	g.OnSelectSlot(func(string) { fired = true })
	g.Tapped(&fyne.PointEvent{Position: fyne.NewPos(50, 50)})
	if fired {
		t.Fatal("tap with no page geometry fired the slot callback")
	}
}
