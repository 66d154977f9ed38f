package model

import "image"

// PointerModel tracks the last pointer position over the canvas in display
// coordinates. The zero value means the pointer is outside.
type PointerModel struct {
	pos    image.Point
	inside bool
}

func NewPointerModel() *PointerModel { return &PointerModel{} }

// Move records a pointer position. Reports whether it changed.
func (m *PointerModel) Move(x, y int) bool {
	if m == nil {
		return false
	}
	p := image.Pt(x, y)
	if m.inside && m.pos == p {
		return false
	}
	m.pos, m.inside = p, true
	return true
}

// Leave marks the pointer as outside the canvas.
func (m *PointerModel) Leave() {
	if m != nil {
		m.inside = false
	}
}

// Position returns the last position and whether the pointer is over the canvas.
func (m *PointerModel) Position() (image.Point, bool) {
	if m == nil {
		return image.Point{}, false
	}
	return m.pos, m.inside
}
