package view

import (
	"image"

	"github.com/soocke/bbox-annotator-go/ui/images"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// CanvasHandlers receive pointer events in display coordinates.
type CanvasHandlers struct {
	Click  func(x, y int)
	Motion func(x, y int)
	Leave  func()
}

// CanvasView shows the composed annotation canvas inside a label photo.
type CanvasView interface {
	SetCanvas(img image.Image)
}

type canvasView struct {
	label     *LabelWidget
	prevPhoto *Img // last Tk photo, deleted before replacement
}

// The previous photo is disposed before each replacement so paging through a
// directory does not accumulate off-screen image data inside Tk.

// NewCanvasView creates the canvas label at (row, col) spanning rowspan rows
// and binds its pointer events.
func NewCanvasView(row, col, rowspan int, h CanvasHandlers) CanvasView {
	placeholder := images.Compose(nil, images.Overlay{})
	photo := NewPhoto(Data(images.EncodePNG(placeholder)))
	label := Label(Image(photo), Borderwidth(0), Cursor("tcross"))
	Grid(label, Row(row), Column(col), Rowspan(rowspan), Sticky("nw"), Padx("0.4m"), Pady("0.4m"))
	v := &canvasView{label: label, prevPhoto: photo}

	if h.Click != nil {
		Bind(label, "<Button-1>", Command(func(e *Event) { h.Click(e.X, e.Y) }))
	}
	if h.Motion != nil {
		Bind(label, "<Motion>", Command(func(e *Event) { h.Motion(e.X, e.Y) }))
	}
	if h.Leave != nil {
		Bind(label, "<Leave>", Command(h.Leave))
	}
	return v
}

func (v *canvasView) SetCanvas(img image.Image) {
	if v == nil || v.label == nil || img == nil {
		return
	}
	pngBytes := images.EncodePNG(img)
	if v.prevPhoto != nil {
		v.prevPhoto.Delete()
	}
	v.prevPhoto = NewPhoto(Data(pngBytes))
	v.label.Configure(Image(v.prevPhoto))
}
