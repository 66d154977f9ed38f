package app

import (
	"context"
	"log/slog"
	"time"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"

	"github.com/soocke/bbox-annotator-go/config"
	"github.com/soocke/bbox-annotator-go/debug"
	"github.com/soocke/bbox-annotator-go/ui/theme"
)

const (
	tick = 30 * time.Millisecond
)

type app struct {
	c       *AppContainer
	afterID string
	stop    context.CancelFunc
}

// NewApp prepares the main window; widgets are built in Start.
func NewApp(title string, cfg *config.Config, cfgPath string, logger *slog.Logger) *app {
	a := &app{c: BuildContainer(cfg, cfgPath, logger), stop: func() {}}
	App.WmTitle(title)
	WmProtocol(App, "WM_DELETE_WINDOW", a.exitHandler)
	theme.Apply(cfg.DarkMode)
	return a
}

// Start builds the UI, kicks off the update loop and blocks in the Tk event loop.
func (a *app) Start() {
	c := a.c
	c.RootView.Build(c.Handlers())
	c.ClassPresenter.Init()
	c.CanvasPresenter.Invalidate()

	if c.Config.Debug {
		ctx, cancel := context.WithCancel(context.Background())
		a.stop = cancel
		debug.StartRuntimeLogger(ctx, 2*time.Second, c.Logger)
	}

	c.Loop.Schedule = a.scheduleUpdate
	a.scheduleUpdate()

	App.Wait()
}

func (a *app) scheduleUpdate() {
	// Schedule the next update using TclAfter to stay on Tk's event loop thread.
	a.afterID = TclAfter(tick, func() { a.c.Loop.Tick() })
}

func (a *app) exitHandler() {
	// The current image is saved the same way a navigation would save it.
	a.c.NavigationPresenter.Save()
	if a.afterID != "" {
		TclAfterCancel(a.afterID)
	}
	a.stop()
	a.c.Logger.Info("annotator exiting")
	Destroy(App)
}
