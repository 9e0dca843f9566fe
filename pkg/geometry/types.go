// Package geometry provides basic geometric types shared by the
// layout and editor code.
package geometry

import "math"

// Point2D represents a 2D point with floating-point coordinates.
type Point2D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// NewPoint2D creates a new Point2D.
func NewPoint2D(x, y float64) Point2D {
	return Point2D{X: x, Y: y}
}

// Add returns the sum of two points.
func (p Point2D) Add(other Point2D) Point2D {
	return Point2D{X: p.X + other.X, Y: p.Y + other.Y}
}

// Sub returns the difference of two points.
func (p Point2D) Sub(other Point2D) Point2D {
	return Point2D{X: p.X - other.X, Y: p.Y - other.Y}
}

// Scale returns the point scaled by a factor.
func (p Point2D) Scale(factor float64) Point2D {
	return Point2D{X: p.X * factor, Y: p.Y * factor}
}

// Rect represents a rectangle with floating-point coordinates.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// NewRect creates a new Rect.
func NewRect(x, y, width, height float64) Rect {
	return Rect{X: x, Y: y, Width: width, Height: height}
}

// Contains returns true if the point is inside the rectangle.
func (r Rect) Contains(p Point2D) bool {
	return p.X >= r.X && p.X <= r.X+r.Width &&
		p.Y >= r.Y && p.Y <= r.Y+r.Height
}

// Center returns the center point of the rectangle.
func (r Rect) Center() Point2D {
	return Point2D{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// Inset returns the rectangle shrunk by the given amount on every side.
// The result collapses to an empty rectangle rather than inverting.
func (r Rect) Inset(amount float64) Rect {
	w := math.Max(0, r.Width-2*amount)
	h := math.Max(0, r.Height-2*amount)
	return Rect{X: r.X + amount, Y: r.Y + amount, Width: w, Height: h}
}

// ToInt converts to RectInt, rounding the origin and size.
func (r Rect) ToInt() RectInt {
	return RectInt{
		X:      int(math.Round(r.X)),
		Y:      int(math.Round(r.Y)),
		Width:  int(math.Round(r.Width)),
		Height: int(math.Round(r.Height)),
	}
}

// RectInt represents a rectangle with integer coordinates.
type RectInt struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// ToFloat converts to Rect.
func (r RectInt) ToFloat() Rect {
	return Rect{X: float64(r.X), Y: float64(r.Y), Width: float64(r.Width), Height: float64(r.Height)}
}

// FitRect scales a w×h item to fit inside outer while preserving its
// aspect ratio, and centers it. Used by both the screen and the PDF
// renderer so slot images land identically in either output.
func FitRect(outer Rect, w, h int) Rect {
	if w <= 0 || h <= 0 || outer.Width <= 0 || outer.Height <= 0 {
		return Rect{X: outer.X, Y: outer.Y}
	}
	scale := math.Min(outer.Width/float64(w), outer.Height/float64(h))
	fw := float64(w) * scale
	fh := float64(h) * scale
	return Rect{
		X:      outer.X + (outer.Width-fw)/2,
		Y:      outer.Y + (outer.Height-fh)/2,
		Width:  fw,
		Height: fh,
	}
}

// AspectRect returns the largest rectangle with the given w:h aspect
// ratio that fits inside outer, centered.
func AspectRect(outer Rect, aspectW, aspectH float64) Rect {
	if aspectW <= 0 || aspectH <= 0 || outer.Width <= 0 || outer.Height <= 0 {
		return Rect{X: outer.X, Y: outer.Y}
	}
	target := aspectW / aspectH
	w := outer.Width
	h := w / target
	if h > outer.Height {
		h = outer.Height
		w = h * target
	}
	return Rect{
		X:      outer.X + (outer.Width-w)/2,
		Y:      outer.Y + (outer.Height-h)/2,
		Width:  w,
		Height: h,
	}
}
