package model

import (
	"image"
	"testing"
)

func TestCanvasModel_DirtyLifecycle(t *testing.T) {
	m := NewCanvasModel()
	if m.TakeDirty() {
		t.Fatalf("new model must be clean")
	}
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	m.SetBase("a.png", img)
	if !m.TakeDirty() {
		t.Fatalf("SetBase must mark dirty")
	}
	if m.TakeDirty() {
		t.Fatalf("TakeDirty must clear the flag")
	}
	if base, path := m.Base(); base != image.Image(img) || path != "a.png" {
		t.Fatalf("unexpected base %v %q", base, path)
	}
	m.Invalidate()
	if !m.TakeDirty() {
		t.Fatalf("Invalidate must mark dirty")
	}
}

func TestCanvasModel_NilSafe(t *testing.T) {
	var m *CanvasModel
	m.SetBase("x", nil)
	m.Invalidate()
	if m.TakeDirty() {
		t.Fatalf("nil model is never dirty")
	}
	if base, _ := m.Base(); base != nil {
		t.Fatalf("nil model has no base")
	}
}

func TestPointerModel(t *testing.T) {
	m := NewPointerModel()
	if _, ok := m.Position(); ok {
		t.Fatalf("zero pointer must be outside")
	}
	if !m.Move(3, 4) {
		t.Fatalf("first move must report a change")
	}
	if m.Move(3, 4) {
		t.Fatalf("same position must not report a change")
	}
	if p, ok := m.Position(); !ok || p != image.Pt(3, 4) {
		t.Fatalf("unexpected position %v %v", p, ok)
	}
	m.Leave()
	if _, ok := m.Position(); ok {
		t.Fatalf("expected outside after Leave")
	}
	if !m.Move(3, 4) {
		t.Fatalf("re-entering at the same point must report a change")
	}
}
