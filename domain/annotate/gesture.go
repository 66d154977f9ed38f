package annotate

import (
	"image"
	"log/slog"
)

// Gesture is the two-click box drawing state machine. The first click arms it
// with an anchor corner, the second click completes a rectangle and returns
// to idle. The zero value is idle and usable.
type Gesture struct {
	state     GestureState
	anchor    image.Point
	logger    *slog.Logger
	listeners []GestureListener
}

// AddListener registers l for every state transition.
func (g *Gesture) AddListener(l GestureListener) {
	if l != nil {
		g.listeners = append(g.listeners, l)
	}
}

// State reports the current gesture state.
func (g *Gesture) State() GestureState { return g.state }

// Anchor returns the first corner while armed.
func (g *Gesture) Anchor() (image.Point, bool) {
	if g.state != StateArmed {
		return image.Point{}, false
	}
	return g.anchor, true
}

// Click feeds a pointer click. It returns the two corners and true only on the
// click that completes an armed gesture.
func (g *Gesture) Click(p image.Point) (a, b image.Point, done bool) {
	switch g.state {
	case StateIdle:
		g.anchor = p
		g.transition(StateArmed)
		return image.Point{}, image.Point{}, false
	case StateArmed:
		a = g.anchor
		g.anchor = image.Point{}
		g.transition(StateIdle)
		return a, p, true
	}
	return image.Point{}, image.Point{}, false
}

// Move feeds a pointer move. While armed it returns the rectangle stretched
// from the anchor to p; it never commits anything.
func (g *Gesture) Move(p image.Point) (image.Rectangle, bool) {
	if g.state != StateArmed {
		return image.Rectangle{}, false
	}
	return image.Rectangle{Min: g.anchor, Max: p}.Canon(), true
}

// Cancel discards an armed gesture. Reports whether anything was discarded.
func (g *Gesture) Cancel() bool {
	if g.state != StateArmed {
		return false
	}
	g.anchor = image.Point{}
	g.transition(StateIdle)
	return true
}

func (g *Gesture) transition(next GestureState) {
	prev := g.state
	if prev == next {
		return
	}
	g.state = next
	if g.logger != nil {
		g.logger.Debug("gesture state transition", "from", prev.String(), "to", next.String())
	}
	for _, l := range g.listeners {
		l(prev, next)
	}
}
