package navigation

import (
	"errors"
	"fmt"
)

// Direction selects a relative navigation step.
type Direction int

const (
	DirNext Direction = iota
	DirPrevious
)

func (d Direction) String() string {
	switch d {
	case DirNext:
		return "next"
	case DirPrevious:
		return "previous"
	default:
		return "unknown"
	}
}

var (
	// ErrOutOfRange is matched by every *NavigationError.
	ErrOutOfRange = errors.New("image index out of range")
	// ErrNoDirectory is returned when navigating before a directory is loaded.
	ErrNoDirectory = errors.New("no image directory loaded")
)

// NavigationError reports a go-to request outside [1, Total]. No state changes.
type NavigationError struct {
	Target int
	Total  int
}

func (e *NavigationError) Error() string {
	return fmt.Sprintf("image %d not in [1, %d]: %v", e.Target, e.Total, ErrOutOfRange)
}

func (e *NavigationError) Is(target error) bool { return target == ErrOutOfRange }

// Sizer returns the pixel dimensions of an image file.
type Sizer func(path string) (width, height int, err error)
