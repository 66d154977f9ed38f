package presenter

import (
	"fmt"
	"image"
	"image/color"

	"github.com/soocke/bbox-annotator-go/domain/annotate"
	"github.com/soocke/bbox-annotator-go/ui/images"
	"github.com/soocke/bbox-annotator-go/ui/model"
)

// CanvasSession is the slice of the annotation session the canvas drives.
type CanvasSession interface {
	annotate.BoxSource
	annotate.GestureSource
	annotate.GestureInput
}

// CanvasView shows the composed canvas and the pointer coordinates.
type CanvasView interface {
	SetCanvas(img image.Image)
	SetPointerLabel(text string)
}

// CanvasPresenter turns pointer events into gesture input and recomposes the
// canvas at most once per tick.
type CanvasPresenter struct {
	session CanvasSession
	canvas  *model.CanvasModel
	pointer *model.PointerModel
	view    CanvasView
	color   color.Color

	preview    annotate.Box
	hasPreview bool

	// OnBoxesChanged runs after a click commits a box.
	OnBoxesChanged func()
}

func NewCanvasPresenter(session CanvasSession, canvas *model.CanvasModel, pointer *model.PointerModel, view CanvasView, boxColor color.Color) *CanvasPresenter {
	return &CanvasPresenter{session: session, canvas: canvas, pointer: pointer, view: view, color: boxColor}
}

// Click feeds a canvas click at display coordinates.
func (p *CanvasPresenter) Click(x, y int) {
	if p == nil || p.session == nil {
		return
	}
	if _, committed := p.session.Click(x, y); committed {
		p.hasPreview = false
		if p.OnBoxesChanged != nil {
			p.OnBoxesChanged()
		}
	}
	p.canvas.Invalidate()
}

// Motion updates the crosshair, the coordinate label and the preview box.
func (p *CanvasPresenter) Motion(x, y int) {
	if p == nil || p.session == nil {
		return
	}
	if !p.pointer.Move(x, y) {
		return
	}
	if p.view != nil {
		p.view.SetPointerLabel(fmt.Sprintf("x: %d, y: %d", x, y))
	}
	p.preview, p.hasPreview = p.session.Move(x, y)
	p.canvas.Invalidate()
}

// Leave hides the crosshair when the pointer exits the canvas.
func (p *CanvasPresenter) Leave() {
	if p == nil {
		return
	}
	p.pointer.Leave()
	p.canvas.Invalidate()
}

// Cancel discards an armed box gesture.
func (p *CanvasPresenter) Cancel() {
	if p == nil || p.session == nil {
		return
	}
	if p.session.Cancel() {
		p.hasPreview = false
		p.canvas.Invalidate()
	}
}

// Invalidate requests a redraw, e.g. after the box list changed elsewhere.
func (p *CanvasPresenter) Invalidate() {
	if p == nil {
		return
	}
	if p.session != nil && p.session.GestureState() != annotate.StateArmed {
		p.hasPreview = false
	}
	p.canvas.Invalidate()
}

// Tick recomposes the canvas if anything changed since the last tick.
func (p *CanvasPresenter) Tick() {
	if p == nil || p.session == nil || p.view == nil || !p.canvas.TakeDirty() {
		return
	}
	base, _ := p.canvas.Base()
	o := images.Overlay{Color: p.color}
	for _, b := range p.session.Boxes() {
		o.Boxes = append(o.Boxes, b.Rect())
	}
	if p.hasPreview && p.session.GestureState() == annotate.StateArmed {
		o.Preview, o.HasPreview = p.preview.Rect(), true
	}
	o.Pointer, o.HasPointer = p.pointer.Position()
	p.view.SetCanvas(images.Compose(base, o))
}
