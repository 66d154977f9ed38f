package view

import (
	"image"
	"log/slog"
	"strconv"

	"github.com/soocke/bbox-annotator-go/config"
	"github.com/soocke/bbox-annotator-go/ui/images"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// ShortcutHandlers are the single-key bindings of the main window.
type ShortcutHandlers struct {
	Cancel   func()
	Previous func()
	Next     func()
}

// Handlers are the user actions the root view forwards to presenters.
type Handlers struct {
	Load         func()
	Canvas       CanvasHandlers
	Delete       func()
	Clear        func()
	ConfirmClass func(index int)
	Controls     ControlHandlers
	Keys         ShortcutHandlers
	// FieldFocus is told when any text field gains or loses focus.
	FieldFocus   func(focused bool)
}

// RootView composes the top-level application layout and wires UI callbacks.
// It owns high-level subviews but exposes minimal exported fields for presenters.
type RootView struct {
	cfg     *config.Config
	cfgPath string
	logger  *slog.Logger

	// Subviews
	DirPanel DirectoryPanel
	Canvas   CanvasView
	Boxes    BoxList
	Controls ControlPanel

	// Widgets
	ClassSelect *TComboboxWidget
	classCount  int
}

// UI abstracts the subset of view operations needed by presenters, enabling decoupling
// from the concrete RootView implementation.
type UI interface {
	SetCanvas(img image.Image)
	SetPointerLabel(text string)
	SetBoxRows(rows []string)
	SelectedBoxes() []int
	SetClassOptions(names []string, current int)
	Directories() (src, dst string)
	SetProgress(text string)
	ShowError(title, message string)
}

func NewRootView(cfg *config.Config, cfgPath string, logger *slog.Logger) *RootView {
	return &RootView{cfg: cfg, cfgPath: cfgPath, logger: logger}
}

// Build constructs the layout and binds the keyboard shortcuts.
// Handlers are invoked on user actions.
func (rv *RootView) Build(h Handlers) {
	if rv == nil {
		return
	}
	// Rows 0-1: directory fields
	rv.DirPanel = NewDirectoryPanel(rv.cfg, rv.cfgPath, rv.logger)
	row := rv.DirPanel.Build(0, h.Load, h.FieldFocus)

	// Canvas on the left, class selector and box list on the right
	side := 4
	rv.Canvas = NewCanvasView(row, 0, 6, h.Canvas)
	Grid(Label(Txt("Label class:"), Anchor("w")), Row(row), Column(side), Columnspan(2), Sticky("w"), Padx("0.4m"))
	rv.ClassSelect = TCombobox(Values([]string{"0"}), State("readonly"), Width(24))
	Grid(rv.ClassSelect, Row(row+1), Column(side), Sticky("we"), Padx("0.4m"), Pady("0.2m"))
	confirm := Button(Txt("Confirm"), Command(func() {
		if rv.ClassSelect == nil || h.ConfirmClass == nil {
			return
		}
		idxStr := rv.ClassSelect.Current(nil)
		idx, err := strconv.Atoi(idxStr)
		if err == nil && idx >= 0 && idx < rv.classCount {
			h.ConfirmClass(idx)
		} else {
			if rv.logger != nil {
				rv.logger.Error("class selection parse error", "error", err)
			}
		}
	}))
	Grid(confirm, Row(row+1), Column(side+1), Sticky("we"), Padx("0.4m"), Pady("0.2m"))

	color := images.HexColor(images.BoxColor(rv.cfg.BoxColor))
	rv.Boxes, _ = NewBoxList(row+2, side, color, h.Delete, h.Clear)
	GridRowConfigure(App, row+3, Weight(1))

	controls := h.Controls
	controls.FieldFocus = h.FieldFocus
	rv.Controls = NewControlPanel(row+6, side+2, controls)

	// Shortcuts: Escape and s cancel the box in progress, p and n navigate.
	// Handlers in h.Keys are expected to ignore keys typed into text fields.
	for _, key := range []string{"<Escape>", "<KeyPress-s>"} {
		Bind(App, key, Command(h.Keys.Cancel))
	}
	Bind(App, "<KeyPress-p>", Command(h.Keys.Previous))
	Bind(App, "<KeyPress-n>", Command(h.Keys.Next))
}

// SetCanvas proxies to the canvas view.
func (rv *RootView) SetCanvas(img image.Image) {
	if rv != nil && rv.Canvas != nil {
		rv.Canvas.SetCanvas(img)
	}
}

// SetPointerLabel shows the pointer coordinates.
func (rv *RootView) SetPointerLabel(text string) {
	if rv != nil && rv.Controls != nil {
		rv.Controls.SetPointer(text)
	}
}

// SetProgress updates the "current/total" label.
func (rv *RootView) SetProgress(text string) {
	if rv != nil && rv.Controls != nil {
		rv.Controls.SetProgress(text)
	}
}

// SetBoxRows replaces the box list rows.
func (rv *RootView) SetBoxRows(rows []string) {
	if rv != nil && rv.Boxes != nil {
		rv.Boxes.SetRows(rows)
	}
}

// SelectedBoxes returns the selected box list indices.
func (rv *RootView) SelectedBoxes() []int {
	if rv == nil || rv.Boxes == nil {
		return nil
	}
	return rv.Boxes.Selection()
}

// SetClassOptions fills the class combobox and selects current.
func (rv *RootView) SetClassOptions(names []string, current int) {
	if rv == nil || rv.ClassSelect == nil || len(names) == 0 {
		return
	}
	rv.classCount = len(names)
	rv.ClassSelect.Configure(Values(names))
	if current < 0 || current >= len(names) {
		current = 0
	}
	rv.ClassSelect.Current(current)
}

// Directories returns the entered source and destination directories.
func (rv *RootView) Directories() (string, string) {
	if rv == nil || rv.DirPanel == nil {
		return "", ""
	}
	return rv.DirPanel.Directories()
}

// ShowError reports an error in a modal dialog.
func (rv *RootView) ShowError(title, message string) {
	MessageBox(Icon("error"), Title(title), Msg(message))
}

var _ UI = (*RootView)(nil)
