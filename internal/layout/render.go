package layout

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"sync"

	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"pasport/internal/compositor"
	"pasport/internal/slots"
	"pasport/pkg/geometry"
)

var (
	pageColor   = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	borderColor = color.NRGBA{R: 153, G: 153, B: 153, A: 255}
	stripColor  = color.NRGBA{R: 247, G: 247, B: 247, A: 255}
	frameColor  = color.NRGBA{R: 204, G: 204, B: 204, A: 255}
	textColor   = color.NRGBA{A: 255}
)

var (
	fontOnce sync.Once
	regular  *opentype.Font
	fontErr  error
)

func typeface(sizePx float64) font.Face {
	fontOnce.Do(func() {
		regular, fontErr = opentype.Parse(goregular.TTF)
	})
	if fontErr != nil {
		return nil
	}
	face, err := opentype.NewFace(regular, &opentype.FaceOptions{
		Size:    sizePx,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil
	}
	return face
}

// RenderPage rasterizes one card page at the given pixel size: white
// background, title, bordered cells with label strips, and each stored
// slot image scaled to fit its cell's image area, centered. Slot blobs
// that fail to decode are skipped so one corrupt image never takes the
// whole page down.
func RenderPage(w, h int, title string, images map[string][]byte) *image.NRGBA {
	out := image.NewNRGBA(image.Rect(0, 0, w, h))
	fillRect(out, geometry.NewRect(0, 0, float64(w), float64(h)), pageColor)

	page := Compute(float64(w), float64(h))

	if face := typeface(page.Title.Height * 0.55); face != nil {
		drawText(out, face, title, page.Title.X, page.Title.Y+page.Title.Height*0.7)
	}

	for _, cell := range page.Cells {
		strokeRect(out, cell.Rect, borderColor)
		fillRect(out, cell.Label, stripColor)
		strokeRect(out, cell.Image, frameColor)

		if face := typeface(cell.Label.Height * 0.6); face != nil {
			drawText(out, face, slots.Label(cell.Key),
				cell.Label.X+cell.Label.Height*0.3,
				cell.Label.Y+cell.Label.Height*0.75)
		}

		data, ok := images[cell.Key]
		if !ok {
			continue
		}
		img, err := compositor.Decode(bytes.NewReader(data))
		if err != nil {
			continue // corrupt blob: cell stays blank
		}
		target := geometry.FitRect(cell.Image, img.Bounds().Dx(), img.Bounds().Dy()).ToInt()
		if target.Width < 1 || target.Height < 1 {
			continue
		}
		thumb := imaging.Resize(img, target.Width, target.Height, imaging.Lanczos)
		draw.Draw(out,
			image.Rect(target.X, target.Y, target.X+target.Width, target.Y+target.Height),
			thumb, image.Point{}, draw.Over)
	}

	return out
}

func fillRect(dst *image.NRGBA, r geometry.Rect, c color.NRGBA) {
	ri := r.ToInt()
	draw.Draw(dst,
		image.Rect(ri.X, ri.Y, ri.X+ri.Width, ri.Y+ri.Height),
		&image.Uniform{C: c}, image.Point{}, draw.Src)
}

func strokeRect(dst *image.NRGBA, r geometry.Rect, c color.NRGBA) {
	ri := r.ToInt()
	x0, y0 := ri.X, ri.Y
	x1, y1 := ri.X+ri.Width-1, ri.Y+ri.Height-1
	for x := x0; x <= x1; x++ {
		setPix(dst, x, y0, c)
		setPix(dst, x, y1, c)
	}
	for y := y0; y <= y1; y++ {
		setPix(dst, x0, y, c)
		setPix(dst, x1, y, c)
	}
}

func setPix(dst *image.NRGBA, x, y int, c color.NRGBA) {
	if image.Pt(x, y).In(dst.Bounds()) {
		dst.SetNRGBA(x, y, c)
	}
}

func drawText(dst *image.NRGBA, face font.Face, text string, x, y float64) {
	d := font.Drawer{
		Dst:  dst,
		Src:  &image.Uniform{C: textColor},
		Face: face,
		Dot:  fixed.Point26_6{X: fixed.Int26_6(x * 64), Y: fixed.Int26_6(y * 64)},
	}
	d.DrawString(text)
}
