package presenter

// ShortcutGate suppresses single-key shortcuts while a text field has the
// keyboard focus, so typing a path or an index does not navigate.
type ShortcutGate struct {
	focused int
}

func NewShortcutGate() *ShortcutGate { return &ShortcutGate{} }

// FieldFocus records a text field gaining (true) or losing (false) focus.
func (g *ShortcutGate) FieldFocus(focused bool) {
	if g == nil {
		return
	}
	if focused {
		g.focused++
		return
	}
	if g.focused > 0 {
		g.focused--
	}
}

// Typing reports whether a text field currently has the focus.
func (g *ShortcutGate) Typing() bool { return g != nil && g.focused > 0 }

// Guard returns fn wrapped so it only runs while no text field is focused.
func (g *ShortcutGate) Guard(fn func()) func() {
	return func() {
		if fn == nil || g.Typing() {
			return
		}
		fn()
	}
}
