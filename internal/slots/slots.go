// Package slots defines the fixed set of image slots on a passport
// card. The set is not user-extensible; every card has exactly these
// sixteen positions, filled or empty.
package slots

// Slot is one named image placeholder.
type Slot struct {
	Key   string
	Label string
}

// Count is the number of slots on a card, matching the 4x4 page grid.
const Count = 16

// Grid dimensions of the printed page.
const (
	GridCols = 4
	GridRows = 4
)

var all = [Count]Slot{
	{"skrin", "skříň"},
	{"satna", "šatna"},
	{"stolek", "stolek"},
	{"okno_obyvak", "okno obývák"},
	{"tv", "tv"},
	{"svetla_obyvak", "světla obývák"},
	{"postel_1", "postel 1"},
	{"postel_2", "postel 2"},
	{"postel_3", "postel 3"},
	{"okno_koupelna", "okno koupelna"},
	{"wc", "wc"},
	{"umyvadlo", "umyvadlo"},
	{"sprcha", "sprcha"},
	{"koupelna_svetla", "koupelna světla"},
	{"dvere_vchod", "dveře vchod"},
	{"dvere_koupelna", "dveře koupelna"},
}

var byKey = func() map[string]Slot {
	m := make(map[string]Slot, Count)
	for _, s := range all {
		m[s.Key] = s
	}
	return m
}()

// All returns the slots in page order (left to right, top to bottom).
func All() []Slot {
	out := make([]Slot, Count)
	copy(out, all[:])
	return out
}

// Valid reports whether key names one of the fixed slots.
func Valid(key string) bool {
	_, ok := byKey[key]
	return ok
}

// Label returns the display label for a slot key, or the key itself if
// it is unknown.
func Label(key string) string {
	if s, ok := byKey[key]; ok {
		return s.Label
	}
	return key
}
