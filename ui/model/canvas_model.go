package model

import (
	"image"
)

// CanvasModel holds the displayed base image and a dirty flag telling the
// canvas presenter to recompose on its next tick. The zero value is usable.
// No synchronization needed: updates occur on the UI thread tick.
type CanvasModel struct {
	base  image.Image
	path  string
	dirty bool
}

func NewCanvasModel() *CanvasModel { return &CanvasModel{} }

// SetBase replaces the displayed image. A nil image clears the canvas.
func (m *CanvasModel) SetBase(path string, img image.Image) {
	if m == nil {
		return
	}
	m.base, m.path = img, path
	m.dirty = true
}

// Base returns the displayed image and the path it was loaded from.
func (m *CanvasModel) Base() (image.Image, string) {
	if m == nil {
		return nil, ""
	}
	return m.base, m.path
}

// Invalidate requests a redraw.
func (m *CanvasModel) Invalidate() {
	if m != nil {
		m.dirty = true
	}
}

// TakeDirty reports whether a redraw was requested and clears the request.
func (m *CanvasModel) TakeDirty() bool {
	if m == nil || !m.dirty {
		return false
	}
	m.dirty = false
	return true
}
