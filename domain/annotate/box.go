package annotate

import (
	"fmt"
	"image"
)

// Box is a labeled axis-aligned rectangle. XMin <= XMax and YMin <= YMax
// always hold for values built with NewBox.
type Box struct {
	XMin, YMin int
	XMax, YMax int
	ClassID    int
}

// NewBox builds a Box from two arbitrary corners.
func NewBox(x1, y1, x2, y2, classID int) Box {
	return Box{
		XMin:    min(x1, x2),
		YMin:    min(y1, y2),
		XMax:    max(x1, x2),
		YMax:    max(y1, y2),
		ClassID: classID,
	}
}

// Rect returns the box as an image.Rectangle.
func (b Box) Rect() image.Rectangle {
	return image.Rect(b.XMin, b.YMin, b.XMax, b.YMax)
}

// ToOriginal converts a display-space box to original image coordinates.
func (b Box) ToOriginal(factor float64) Box {
	return Box{
		XMin:    ToOriginal(b.XMin, factor),
		YMin:    ToOriginal(b.YMin, factor),
		XMax:    ToOriginal(b.XMax, factor),
		YMax:    ToOriginal(b.YMax, factor),
		ClassID: b.ClassID,
	}
}

// ToDisplay converts an original-space box to display coordinates.
func (b Box) ToDisplay(factor float64) Box {
	return Box{
		XMin:    ToDisplay(b.XMin, factor),
		YMin:    ToDisplay(b.YMin, factor),
		XMax:    ToDisplay(b.XMax, factor),
		YMax:    ToDisplay(b.YMax, factor),
		ClassID: b.ClassID,
	}
}

func (b Box) String() string {
	return fmt.Sprintf("%d : (%d, %d) -> (%d, %d)", b.ClassID, b.XMin, b.YMin, b.XMax, b.YMax)
}
