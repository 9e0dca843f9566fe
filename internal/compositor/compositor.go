// Package compositor renders a source photograph into a fixed-size
// output canvas according to a transform state. Rendering is a pure
// function of its inputs; the preview and the persisted image go
// through the same path.
package compositor

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"

	"pasport/internal/transform"
)

// ErrInvalidImage indicates a source that cannot be used: undecodable
// bytes or zero/invalid dimensions.
var ErrInvalidImage = errors.New("invalid source image")

// ErrEncode indicates that serializing a rendered image failed.
var ErrEncode = errors.New("image encode failed")

// OutputSpec is the target pixel size of the composited image.
type OutputSpec struct {
	Width  int
	Height int
}

// Valid reports whether the spec has positive dimensions.
func (o OutputSpec) Valid() bool {
	return o.Width > 0 && o.Height > 0
}

// BaseScale returns the minimal uniform scale at which the source
// covers the whole output rectangle (a "cover" fit, not "fit").
func BaseScale(src image.Image, spec OutputSpec) (float64, error) {
	if !spec.Valid() {
		return 0, fmt.Errorf("%w: output spec %dx%d", ErrInvalidImage, spec.Width, spec.Height)
	}
	b := src.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return 0, fmt.Errorf("%w: source %dx%d", ErrInvalidImage, b.Dx(), b.Dy())
	}
	return math.Max(
		float64(spec.Width)/float64(b.Dx()),
		float64(spec.Height)/float64(b.Dy()),
	), nil
}

// Render composites src onto an opaque white canvas of exactly
// spec.Width×spec.Height:
//
//  1. scale by baseScale*st.Zoom with a Lanczos filter,
//  2. rotate counter-clockwise about the center with expand semantics
//     (skipped entirely at angle 0 to avoid a pointless resample),
//  3. paste centered at (W/2+OffsetX, H/2+OffsetY), clipped to the
//     canvas, alpha-blended over white.
//
// The result never has transparency even if the source did.
func Render(src image.Image, st transform.State, spec OutputSpec) (*image.NRGBA, error) {
	base, err := BaseScale(src, spec)
	if err != nil {
		return nil, err
	}

	b := src.Bounds()
	total := base * st.Zoom
	sw := int(math.Round(float64(b.Dx()) * total))
	sh := int(math.Round(float64(b.Dy()) * total))
	if sw < 1 {
		sw = 1
	}
	if sh < 1 {
		sh = 1
	}
	scaled := imaging.Resize(src, sw, sh, imaging.Lanczos)

	rotated := scaled
	if angle := ((st.AngleDeg % 360) + 360) % 360; angle != 0 {
		rotated = imaging.Rotate(scaled, float64(angle), color.NRGBA{})
	}

	canvas := imaging.New(spec.Width, spec.Height, color.NRGBA{R: 255, G: 255, B: 255, A: 255})

	rb := rotated.Bounds()
	cx := float64(spec.Width)/2 + st.OffsetX
	cy := float64(spec.Height)/2 + st.OffsetY
	left := int(math.Round(cx - float64(rb.Dx())/2))
	top := int(math.Round(cy - float64(rb.Dy())/2))

	return imaging.Overlay(canvas, rotated, image.Pt(left, top), 1.0), nil
}
