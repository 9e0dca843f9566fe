package slots_test

import (
	"testing"

	"pasport/internal/slots"
)

func TestAllReturnsFixedGrid(t *testing.T) {
	all := slots.All()
	if len(all) != slots.Count {
		t.Fatalf("got %d slots, want %d", len(all), slots.Count)
	}
	if slots.GridCols*slots.GridRows != slots.Count {
		t.Fatalf("grid %dx%d does not cover %d slots",
			slots.GridCols, slots.GridRows, slots.Count)
	}
	if all[0].Key != "skrin" {
		t.Errorf("first slot is %q, want skrin", all[0].Key)
	}
	if all[len(all)-1].Key != "dvere_koupelna" {
		t.Errorf("last slot is %q, want dvere_koupelna", all[len(all)-1].Key)
	}

	seen := make(map[string]bool, len(all))
	for _, s := range all {
		if s.Key == "" || s.Label == "" {
			t.Errorf("slot with empty key or label: %+v", s)
		}
		if seen[s.Key] {
			t.Errorf("duplicate key %q", s.Key)
		}
		seen[s.Key] = true
	}
}

func TestValid(t *testing.T) {
	for _, s := range slots.All() {
		if !slots.Valid(s.Key) {
			t.Errorf("Valid(%q) = false", s.Key)
		}
	}
	for _, bad := range []string{"", "skrín", "SKRIN", "garaz"} {
		if slots.Valid(bad) {
			t.Errorf("Valid(%q) = true", bad)
		}
	}
}

func TestLabel(t *testing.T) {
	if got := slots.Label("okno_obyvak"); got != "okno obývák" {
		t.Errorf("Label(okno_obyvak) = %q", got)
	}
	// Unknown keys fall back to the key itself.
	if got := slots.Label("neznamy"); got != "neznamy" {
		t.Errorf("Label(neznamy) = %q", got)
	}
}
