package view

import (
	"github.com/soocke/bbox-annotator-go/ui/theme"

	//lint:ignore ST1001 Dot import for concise Tk widget DSL.
	. "modernc.org/tk9.0"
)

// ControlHandlers are the navigation actions of the bottom panel.
type ControlHandlers struct {
	Previous   func()
	Next       func()
	GoTo       func(text string)
	// FieldFocus is told when the go-to field gains or loses focus.
	FieldFocus func(focused bool)
}

// ControlPanel shows navigation buttons, progress and pointer coordinates.
type ControlPanel interface {
	SetProgress(text string)
	SetPointer(text string)
}

type controlPanel struct {
	progressLbl *LabelWidget
	pointerLbl  *LabelWidget
}

// NewControlPanel lays the panel out in its own frame at (row, 0) spanning columns.
func NewControlPanel(row, columns int, h ControlHandlers) ControlPanel {
	frame := Frame()
	Grid(frame, Row(row), Column(0), Columnspan(columns), Sticky("we"), Padx("0.4m"), Pady("0.4m"))

	prev := TButton(Txt("<< Prev"), Style(theme.StylePrimaryButton), Command(h.Previous))
	Grid(prev, In(frame), Row(0), Column(0), Padx("0.2m"))
	next := TButton(Txt("Next >>"), Style(theme.StylePrimaryButton), Command(h.Next))
	Grid(next, In(frame), Row(0), Column(1), Padx("0.2m"))

	c := &controlPanel{progressLbl: Label(Width(12)), pointerLbl: Label(Width(18))}
	Grid(c.progressLbl, In(frame), Row(0), Column(2), Padx("1m"))

	goLbl := Label(Txt("Go to image No."))
	Grid(goLbl, In(frame), Row(0), Column(3), Padx("0.2m"))
	idx := Text(Height(1), Width(6))
	Grid(idx, In(frame), Row(0), Column(4), Padx("0.2m"))
	watchFocus(idx, h.FieldFocus)
	goBtn := Button(Txt("Go"), Command(func() {
		if h.GoTo != nil {
			h.GoTo(textOf(idx))
		}
	}))
	Grid(goBtn, In(frame), Row(0), Column(5), Padx("0.2m"))
	Grid(c.pointerLbl, In(frame), Row(0), Column(6), Sticky("e"), Padx("1m"))

	c.progressLbl.Configure(Txt("0000/0000"))
	c.pointerLbl.Configure(Txt(""))
	return c
}

func (c *controlPanel) SetProgress(text string) {
	if c == nil || c.progressLbl == nil {
		return
	}
	c.progressLbl.Configure(Txt(text))
}

func (c *controlPanel) SetPointer(text string) {
	if c == nil || c.pointerLbl == nil {
		return
	}
	c.pointerLbl.Configure(Txt(text))
}
