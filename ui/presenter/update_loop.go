package presenter

// Loop aggregates feature presenters and drives periodic updates.
//
// It applies finished image decodes, redraws the canvas when dirty and
// invokes a scheduler callback. The zero value is usable (methods are nil-safe).
type Loop struct {
	Display  *DisplayPresenter
	Canvas   *CanvasPresenter
	Schedule func()
}

func NewLoop(display *DisplayPresenter, canvas *CanvasPresenter, schedule func()) *Loop {
	return &Loop{Display: display, Canvas: canvas, Schedule: schedule}
}

func (l *Loop) Tick() {
	if l == nil {
		return
	}
	// Decoded images land in the canvas model first so the redraw below sees them.
	if l.Display != nil {
		l.Display.Tick()
	}
	if l.Canvas != nil {
		l.Canvas.Tick()
	}
	if l.Schedule != nil {
		l.Schedule()
	}
}
