package images

import (
	"fmt"
	"image"
	"image/color"

	"golang.org/x/image/colornames"
	"golang.org/x/image/draw"
)

// MinCanvasSide is the smallest canvas edge regardless of image size.
const MinCanvasSide = 400

const strokeWidth = 2

var (
	canvasBackground = color.RGBA{R: 0x30, G: 0x30, B: 0x30, A: 0xff}
	crosshairColor   = color.Black
)

// Overlay is everything drawn on top of the displayed image, in display
// coordinates.
type Overlay struct {
	Boxes      []image.Rectangle
	Preview    image.Rectangle // rubber-band box, drawn when HasPreview
	HasPreview bool
	Pointer    image.Point // crosshair position, drawn when HasPointer
	HasPointer bool
	Color      color.Color // box outline; red when nil
}

// CanvasSize returns the canvas dimensions for a base image of w x h.
func CanvasSize(w, h int) (int, int) {
	return max(w, MinCanvasSide), max(h, MinCanvasSide)
}

// BoxColor resolves an SVG color name, falling back to red.
func BoxColor(name string) color.Color {
	if c, ok := colornames.Map[name]; ok {
		return c
	}
	return colornames.Red
}

// Compose renders base with the overlay onto a new canvas of at least
// MinCanvasSide on each side. base may be nil, producing an empty canvas.
func Compose(base image.Image, o Overlay) *image.RGBA {
	w, h := 0, 0
	if base != nil {
		w, h = base.Bounds().Dx(), base.Bounds().Dy()
	}
	cw, ch := CanvasSize(w, h)
	dst := image.NewRGBA(image.Rect(0, 0, cw, ch))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(canvasBackground), image.Point{}, draw.Src)
	if base != nil {
		draw.Copy(dst, image.Point{}, base, base.Bounds(), draw.Src, nil)
	}

	stroke := o.Color
	if stroke == nil {
		stroke = colornames.Red
	}
	for _, r := range o.Boxes {
		strokeRect(dst, r, stroke)
	}
	if o.HasPreview {
		strokeRect(dst, o.Preview, stroke)
	}
	if o.HasPointer {
		p := o.Pointer
		fillRect(dst, image.Rect(0, p.Y, cw, p.Y+strokeWidth), crosshairColor)
		fillRect(dst, image.Rect(p.X, 0, p.X+strokeWidth, ch), crosshairColor)
	}
	return dst
}

// strokeRect outlines r with strokeWidth pixels drawn inward from its edges.
func strokeRect(dst draw.Image, r image.Rectangle, c color.Color) {
	r = r.Canon()
	fillRect(dst, image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+strokeWidth), c)
	fillRect(dst, image.Rect(r.Min.X, r.Max.Y-strokeWidth, r.Max.X, r.Max.Y), c)
	fillRect(dst, image.Rect(r.Min.X, r.Min.Y, r.Min.X+strokeWidth, r.Max.Y), c)
	fillRect(dst, image.Rect(r.Max.X-strokeWidth, r.Min.Y, r.Max.X, r.Max.Y), c)
}

func fillRect(dst draw.Image, r image.Rectangle, c color.Color) {
	r = r.Intersect(dst.Bounds())
	if r.Empty() {
		return
	}
	draw.Draw(dst, r, image.NewUniform(c), image.Point{}, draw.Src)
}

// HexColor formats c as a Tk "#rrggbb" color.
func HexColor(c color.Color) string {
	r, g, b, _ := c.RGBA()
	return fmt.Sprintf("#%02x%02x%02x", r>>8, g>>8, b>>8)
}
