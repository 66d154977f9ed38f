package annotate

import (
	"errors"
	"fmt"
)

// GestureState enumerates the states of the two-click box gesture.
type GestureState int

const (
	StateIdle GestureState = iota
	StateArmed
)

func (s GestureState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateArmed:
		return "armed"
	default:
		return "unknown"
	}
}

// GestureListener is called on each gesture state transition.
type GestureListener func(prev, next GestureState)

var (
	// ErrInvalidSelection is matched by every *SelectionError.
	ErrInvalidSelection = errors.New("exactly one box must be selected")
	// ErrUnknownClass is returned when a class id is outside the loaded class list.
	ErrUnknownClass = errors.New("unknown class id")
)

// SelectionError reports a delete request with a selection that does not name
// exactly one existing box.
type SelectionError struct {
	Selected []int
}

func (e *SelectionError) Error() string {
	return fmt.Sprintf("invalid box selection %v: %v", e.Selected, ErrInvalidSelection)
}

func (e *SelectionError) Is(target error) bool { return target == ErrInvalidSelection }

// Interface slices for consumers (presenters).
type BoxSource interface{ Boxes() []Box }
type BoxEditor interface {
	DeleteSelected(selection []int) error
	ClearBoxes()
}
type GestureSource interface {
	GestureState() GestureState
	Anchor() (x, y int, ok bool)
}
type GestureInput interface {
	Click(x, y int) (Box, bool)
	Move(x, y int) (preview Box, ok bool)
	Cancel() bool
}
type ClassSelector interface {
	Classes() []string
	ActiveClass() int
	SetActiveClass(id int) error
	ClassName(id int) string
}
