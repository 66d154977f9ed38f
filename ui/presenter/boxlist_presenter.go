package presenter

import (
	"errors"
	"log/slog"

	"github.com/soocke/bbox-annotator-go/domain/annotate"
)

// BoxListView renders the box rows and reports the listbox selection.
type BoxListView interface {
	SetBoxRows(rows []string)
	SelectedBoxes() []int
}

// BoxListPresenter keeps the box listbox in step with the session.
type BoxListPresenter struct {
	source annotate.BoxSource
	editor annotate.BoxEditor
	view   BoxListView
	logger *slog.Logger

	// OnChanged runs after a delete or clear changed the box list.
	OnChanged func()
}

func NewBoxListPresenter(source annotate.BoxSource, editor annotate.BoxEditor, view BoxListView, logger *slog.Logger) *BoxListPresenter {
	return &BoxListPresenter{source: source, editor: editor, view: view, logger: logger}
}

// Refresh rewrites every row from the current box list.
func (p *BoxListPresenter) Refresh() {
	if p == nil || p.source == nil || p.view == nil {
		return
	}
	boxes := p.source.Boxes()
	rows := make([]string, len(boxes))
	for i, b := range boxes {
		rows[i] = b.String()
	}
	p.view.SetBoxRows(rows)
}

// Delete removes the selected box. Anything but a single selection is ignored.
func (p *BoxListPresenter) Delete() {
	if p == nil || p.editor == nil || p.view == nil {
		return
	}
	if err := p.editor.DeleteSelected(p.view.SelectedBoxes()); err != nil {
		if errors.Is(err, annotate.ErrInvalidSelection) && p.logger != nil {
			p.logger.Debug("delete ignored", "error", err)
		}
		return
	}
	p.changed()
}

// Clear removes every box of the current image.
func (p *BoxListPresenter) Clear() {
	if p == nil || p.editor == nil {
		return
	}
	p.editor.ClearBoxes()
	p.changed()
}

func (p *BoxListPresenter) changed() {
	p.Refresh()
	if p.OnChanged != nil {
		p.OnChanged()
	}
}
