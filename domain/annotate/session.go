package annotate

import (
	"fmt"
	"image"
	"log/slog"
	"strconv"
)

// Session owns the annotation state of the image currently displayed: its box
// list in display coordinates, its scale factor, the active class and the
// box gesture. It is built once per run and handed to the navigation layer;
// it is not safe for concurrent use.
type Session struct {
	logger   *slog.Logger
	classes  []string
	active   int
	factor   float64
	boxes    []Box
	gesture  Gesture
	revision uint64
}

// NewSession returns a Session for the given class names. With no classes the
// active class is 0 and stays 0.
func NewSession(classes []string, logger *slog.Logger) *Session {
	s := &Session{logger: logger, classes: append([]string(nil), classes...), factor: 1}
	s.gesture.logger = logger
	return s
}

// Boxes returns a copy of the current box list in display coordinates.
func (s *Session) Boxes() []Box {
	out := make([]Box, len(s.boxes))
	copy(out, s.boxes)
	return out
}

// OriginalBoxes returns the current boxes mapped to original image coordinates.
func (s *Session) OriginalBoxes() []Box {
	out := make([]Box, len(s.boxes))
	for i, b := range s.boxes {
		out[i] = b.ToOriginal(s.factor)
	}
	return out
}

// Factor returns the scale factor of the current image.
func (s *Session) Factor() float64 { return s.factor }

// Replace swaps in the state for a newly loaded image. The previous box list
// is discarded, not merged, and any armed gesture is cancelled.
func (s *Session) Replace(factor float64, boxes []Box) {
	if factor < 1 {
		factor = 1
	}
	s.gesture.Cancel()
	s.factor = factor
	s.boxes = append(s.boxes[:0:0], boxes...)
	s.revision++
}

// Revision changes whenever the box list is replaced or edited.
func (s *Session) Revision() uint64 { return s.revision }

// CommitBox appends a box spanning the two corners, tagged with classID.
func (s *Session) CommitBox(x1, y1, x2, y2, classID int) Box {
	b := NewBox(x1, y1, x2, y2, classID)
	s.boxes = append(s.boxes, b)
	s.revision++
	if s.logger != nil {
		s.logger.Debug("box committed", "box", b.String(), "count", len(s.boxes))
	}
	return b
}

// DeleteBox removes the box at index, keeping the order of the rest.
func (s *Session) DeleteBox(index int) error {
	if index < 0 || index >= len(s.boxes) {
		return &SelectionError{Selected: []int{index}}
	}
	s.boxes = append(s.boxes[:index], s.boxes[index+1:]...)
	s.revision++
	return nil
}

// DeleteSelected removes the single selected box. Any selection that is not
// exactly one valid index leaves the list untouched.
func (s *Session) DeleteSelected(selection []int) error {
	if len(selection) != 1 {
		return &SelectionError{Selected: append([]int(nil), selection...)}
	}
	return s.DeleteBox(selection[0])
}

// ClearBoxes empties the box list. Calling it on an empty list is a no-op.
func (s *Session) ClearBoxes() {
	if len(s.boxes) == 0 {
		return
	}
	s.boxes = s.boxes[:0]
	s.revision++
}

// Classes returns the loaded class names.
func (s *Session) Classes() []string { return append([]string(nil), s.classes...) }

// ActiveClass returns the class id new boxes are tagged with.
func (s *Session) ActiveClass() int { return s.active }

// SetActiveClass changes the active class. It persists across image changes.
func (s *Session) SetActiveClass(id int) error {
	limit := len(s.classes)
	if limit == 0 {
		limit = 1
	}
	if id < 0 || id >= limit {
		return fmt.Errorf("class %d of %d: %w", id, len(s.classes), ErrUnknownClass)
	}
	s.active = id
	if s.logger != nil {
		s.logger.Info("label class set", "class", id, "name", s.ClassName(id))
	}
	return nil
}

// ClassName returns the name of class id, or its decimal id when no name is known.
func (s *Session) ClassName(id int) string {
	if id >= 0 && id < len(s.classes) {
		return s.classes[id]
	}
	return strconv.Itoa(id)
}

// GestureState reports the box gesture state.
func (s *Session) GestureState() GestureState { return s.gesture.State() }

// Anchor returns the first corner of an armed gesture.
func (s *Session) Anchor() (x, y int, ok bool) {
	p, ok := s.gesture.Anchor()
	return p.X, p.Y, ok
}

// AddGestureListener registers l for gesture transitions.
func (s *Session) AddGestureListener(l GestureListener) { s.gesture.AddListener(l) }

// Click feeds a canvas click into the gesture. On the completing click the
// new box, tagged with the active class, is appended and returned.
func (s *Session) Click(x, y int) (Box, bool) {
	a, b, done := s.gesture.Click(image.Pt(x, y))
	if !done {
		return Box{}, false
	}
	return s.CommitBox(a.X, a.Y, b.X, b.Y, s.active), true
}

// Move feeds a pointer move and returns the transient preview while armed.
func (s *Session) Move(x, y int) (Box, bool) {
	r, ok := s.gesture.Move(image.Pt(x, y))
	if !ok {
		return Box{}, false
	}
	return Box{XMin: r.Min.X, YMin: r.Min.Y, XMax: r.Max.X, YMax: r.Max.Y, ClassID: s.active}, true
}

// Cancel discards an armed gesture without committing a box.
func (s *Session) Cancel() bool {
	ok := s.gesture.Cancel()
	if ok && s.logger != nil {
		s.logger.Debug("box gesture cancelled")
	}
	return ok
}

// Ensure contract satisfaction
var (
	_ BoxSource     = (*Session)(nil)
	_ BoxEditor     = (*Session)(nil)
	_ GestureSource = (*Session)(nil)
	_ GestureInput  = (*Session)(nil)
	_ ClassSelector = (*Session)(nil)
)
