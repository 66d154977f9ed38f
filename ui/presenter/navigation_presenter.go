package presenter

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/soocke/bbox-annotator-go/domain/dataset"
	"github.com/soocke/bbox-annotator-go/domain/labels"
	"github.com/soocke/bbox-annotator-go/domain/navigation"
)

// Navigator narrows what the presenter needs from navigation.Controller.
type Navigator interface {
	LoadDirectory(src, dst string) (int, error)
	Next() (int, error)
	Previous() (int, error)
	GoTo(target int) (int, error)
	Save() error
	Current() int
	Total() int
	CurrentImage() (dataset.ImageEntry, bool)
	Factor() float64
}

// DisplayRequester schedules an image for display.
type DisplayRequester interface {
	Request(path string, factor float64)
}

// NavigationView is the UI surface touched by navigation.
type NavigationView interface {
	Directories() (src, dst string)
	SetProgress(text string)
	ShowError(title, message string)
}

// NavigationPresenter runs directory loads and image navigation, then
// refreshes everything that depends on the current image.
type NavigationPresenter struct {
	nav     Navigator
	view    NavigationView
	display DisplayRequester
	logger  *slog.Logger

	// OnNavigated runs after the current image changed or was reloaded.
	OnNavigated func()
}

func NewNavigationPresenter(nav Navigator, view NavigationView, display DisplayRequester, logger *slog.Logger) *NavigationPresenter {
	return &NavigationPresenter{nav: nav, view: view, display: display, logger: logger}
}

// Load scans the source directory entered in the view.
func (p *NavigationPresenter) Load() {
	if p == nil || p.nav == nil || p.view == nil {
		return
	}
	src, dst := p.view.Directories()
	src, dst = strings.TrimSpace(src), strings.TrimSpace(dst)
	_, err := p.nav.LoadDirectory(src, dst)
	p.after(err)
}

// Next saves and advances one image.
func (p *NavigationPresenter) Next() {
	if p == nil || p.nav == nil {
		return
	}
	_, err := p.nav.Next()
	p.after(err)
}

// Previous saves and goes back one image.
func (p *NavigationPresenter) Previous() {
	if p == nil || p.nav == nil {
		return
	}
	_, err := p.nav.Previous()
	p.after(err)
}

// GoTo jumps to the 1-based index typed by the user. Non-numeric input is ignored.
func (p *NavigationPresenter) GoTo(text string) {
	if p == nil || p.nav == nil {
		return
	}
	target, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		if p.logger != nil {
			p.logger.Debug("go-to ignored", "input", text)
		}
		return
	}
	_, err = p.nav.GoTo(target)
	p.after(err)
}

// Save flushes the current image, used on exit.
func (p *NavigationPresenter) Save() {
	if p == nil || p.nav == nil {
		return
	}
	if err := p.nav.Save(); err != nil {
		p.showError("Save failed", err)
	}
}

// Progress formats the "current/total" label.
func Progress(current, total int) string {
	return fmt.Sprintf("%04d/%04d", current, total)
}

func (p *NavigationPresenter) after(err error) {
	switch {
	case err == nil:
	case errors.Is(err, navigation.ErrOutOfRange), errors.Is(err, navigation.ErrNoDirectory):
		if p.logger != nil {
			p.logger.Debug("navigation ignored", "error", err)
		}
		return
	default:
		var de *dataset.DirectoryError
		if errors.As(err, &de) {
			p.showError("Cannot load directory", err)
			return
		}
		var pe *labels.ParseError
		if errors.As(err, &pe) {
			p.showError("Malformed label file", err)
		} else {
			p.showError("Error", err)
		}
	}
	p.refresh()
}

func (p *NavigationPresenter) refresh() {
	if p.view != nil {
		p.view.SetProgress(Progress(p.nav.Current(), p.nav.Total()))
	}
	if p.display != nil {
		entry, _ := p.nav.CurrentImage()
		p.display.Request(entry.Path, p.nav.Factor())
	}
	if p.OnNavigated != nil {
		p.OnNavigated()
	}
}

func (p *NavigationPresenter) showError(title string, err error) {
	if p.logger != nil {
		p.logger.Error("user-visible error", "title", title, "error", err)
	}
	if p.view != nil {
		p.view.ShowError(title, err.Error())
	}
}
