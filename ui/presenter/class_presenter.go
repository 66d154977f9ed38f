package presenter

import (
	"log/slog"

	"github.com/soocke/bbox-annotator-go/domain/annotate"
)

// ClassView fills the class combobox.
type ClassView interface {
	SetClassOptions(names []string, current int)
}

// ClassPresenter maps combobox confirmations onto the active class.
type ClassPresenter struct {
	classes annotate.ClassSelector
	view    ClassView
	logger  *slog.Logger
}

func NewClassPresenter(classes annotate.ClassSelector, view ClassView, logger *slog.Logger) *ClassPresenter {
	return &ClassPresenter{classes: classes, view: view, logger: logger}
}

// Init pushes the class names to the view. With no classes file the only
// option is class 0.
func (p *ClassPresenter) Init() {
	if p == nil || p.classes == nil || p.view == nil {
		return
	}
	names := p.classes.Classes()
	if len(names) == 0 {
		names = []string{p.classes.ClassName(0)}
	}
	p.view.SetClassOptions(names, p.classes.ActiveClass())
}

// Confirm makes the combobox entry at index the active class.
func (p *ClassPresenter) Confirm(index int) {
	if p == nil || p.classes == nil {
		return
	}
	if err := p.classes.SetActiveClass(index); err != nil && p.logger != nil {
		p.logger.Warn("class not set", "index", index, "error", err)
	}
}
