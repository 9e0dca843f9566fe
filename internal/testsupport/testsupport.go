// Package testsupport provides helpers shared by package tests.
package testsupport

import (
	"image"
	"image/color"
	"path/filepath"
	"testing"

	"pasport/internal/compositor"
	"pasport/internal/store"
)

// MustOpenStore opens a throwaway store in a temp directory and closes
// it when the test finishes.
func MustOpenStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "pasport.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Errorf("close store: %v", err)
		}
	})
	return s
}

// SolidImage returns an opaque single-color test image.
func SolidImage(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

// RedSquarePNG returns an opaque red w×h square encoded as PNG.
func RedSquarePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	data, err := compositor.EncodePNG(SolidImage(w, h, color.NRGBA{R: 255, A: 255}))
	if err != nil {
		t.Fatalf("encode test image: %v", err)
	}
	return data
}
