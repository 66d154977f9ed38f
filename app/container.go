package app

import (
	"log/slog"
	"path/filepath"

	"github.com/soocke/bbox-annotator-go/config"
	"github.com/soocke/bbox-annotator-go/domain/annotate"
	"github.com/soocke/bbox-annotator-go/domain/labels"
	"github.com/soocke/bbox-annotator-go/domain/navigation"
	"github.com/soocke/bbox-annotator-go/ui/images"
	"github.com/soocke/bbox-annotator-go/ui/model"
	"github.com/soocke/bbox-annotator-go/ui/presenter"
	"github.com/soocke/bbox-annotator-go/ui/view"
)

// AppContainer assembles models, domain services, presenters and the root view.
type AppContainer struct {
	Config     *config.Config
	ConfigPath string
	Logger     *slog.Logger
	Classes    []string
	Session    *annotate.Session
	Controller *navigation.Controller
	Canvas     *model.CanvasModel
	Pointer    *model.PointerModel
	RootView   *view.RootView
	UI         view.UI

	// Presenters
	DisplayPresenter    *presenter.DisplayPresenter
	CanvasPresenter     *presenter.CanvasPresenter
	BoxListPresenter    *presenter.BoxListPresenter
	ClassPresenter      *presenter.ClassPresenter
	NavigationPresenter *presenter.NavigationPresenter
	Loop                *presenter.Loop
	Shortcuts           *presenter.ShortcutGate
}

// BuildContainer constructs all components. Side-effects limited to reading the classes file.
// Widgets are created later by RootView.Build on the Tk thread.
func BuildContainer(cfg *config.Config, cfgPath string, logger *slog.Logger) *AppContainer {
	c := &AppContainer{Config: cfg, ConfigPath: cfgPath, Logger: logger}

	classes, err := labels.ReadClasses(cfg.ClassesFile)
	if err != nil {
		logger.Warn("classes file unreadable, using class 0 only", "path", cfg.ClassesFile, "error", err)
	}
	c.Classes = classes
	logger.Info("classes loaded", "path", cfg.ClassesFile, "count", len(classes))

	// Domain
	c.Session = annotate.NewSession(classes, logger)
	c.Controller = navigation.NewController(c.Session, navigation.Options{
		ManifestFile:        filepath.Base(cfg.ManifestFile),
		TinyManifestFile:    filepath.Base(cfg.TinyManifestFile),
		ManifestImagePrefix: cfg.ManifestImagePrefix,
		TinyClassID:         cfg.TinyClassID,
	}, logger)

	// Models & view
	c.Canvas = model.NewCanvasModel()
	c.Pointer = model.NewPointerModel()
	c.RootView = view.NewRootView(cfg, cfgPath, logger)
	c.UI = c.RootView

	// Presenters
	c.DisplayPresenter = presenter.NewDisplayPresenter(images.LoadDisplay, c.Canvas, logger)
	c.CanvasPresenter = presenter.NewCanvasPresenter(c.Session, c.Canvas, c.Pointer, c.UI, images.BoxColor(cfg.BoxColor))
	c.BoxListPresenter = presenter.NewBoxListPresenter(c.Session, c.Session, c.UI, logger)
	c.ClassPresenter = presenter.NewClassPresenter(c.Session, c.UI, logger)
	c.NavigationPresenter = presenter.NewNavigationPresenter(c.Controller, c.UI, c.DisplayPresenter, logger)

	c.CanvasPresenter.OnBoxesChanged = c.BoxListPresenter.Refresh
	c.BoxListPresenter.OnChanged = c.CanvasPresenter.Invalidate
	c.NavigationPresenter.OnNavigated = func() {
		c.BoxListPresenter.Refresh()
		c.CanvasPresenter.Invalidate()
	}
	// Loop schedule is attached by the app once the Tk loop runs.
	c.Loop = presenter.NewLoop(c.DisplayPresenter, c.CanvasPresenter, nil)
	c.Shortcuts = presenter.NewShortcutGate()
	return c
}

// Handlers maps root view actions onto the presenters.
func (c *AppContainer) Handlers() view.Handlers {
	return view.Handlers{
		Load: c.NavigationPresenter.Load,
		Canvas: view.CanvasHandlers{
			Click:  c.CanvasPresenter.Click,
			Motion: c.CanvasPresenter.Motion,
			Leave:  c.CanvasPresenter.Leave,
		},
		Delete:       c.BoxListPresenter.Delete,
		Clear:        c.BoxListPresenter.Clear,
		ConfirmClass: c.ClassPresenter.Confirm,
		Controls: view.ControlHandlers{
			Previous: c.NavigationPresenter.Previous,
			Next:     c.NavigationPresenter.Next,
			GoTo:     c.NavigationPresenter.GoTo,
		},
		Keys: view.ShortcutHandlers{
			Cancel:   c.Shortcuts.Guard(c.CanvasPresenter.Cancel),
			Previous: c.Shortcuts.Guard(c.NavigationPresenter.Previous),
			Next:     c.Shortcuts.Guard(c.NavigationPresenter.Next),
		},
		FieldFocus: c.Shortcuts.FieldFocus,
	}
}
