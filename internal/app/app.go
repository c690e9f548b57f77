// Package app provides the main application structure of the loupe
// magnifier. It owns all mutable state, wires the capture source, the
// pixel pipeline and the terminal display together, and runs the single
// event loop that serializes key handling with render ticks.
package app

import (
	"context"
	"fmt"
	"image"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/dshills/loupe/internal/capture"
	"github.com/dshills/loupe/internal/config"
	"github.com/dshills/loupe/internal/input"
	"github.com/dshills/loupe/internal/pixel"
	"github.com/dshills/loupe/internal/renderer"
	"github.com/dshills/loupe/internal/renderer/backend"
	"github.com/dshills/loupe/internal/transform"
	"github.com/dshills/loupe/internal/viewport"
)

// DefaultName is the program name shown in titles and the status line.
const DefaultName = "loupe"

// reloader is implemented by sources that can change underneath the loop.
type reloader interface {
	Changes() <-chan struct{}
	Errors() <-chan error
	Reload() error
}

// Application is the magnifier state. Everything except the metrics and
// the running flag is touched only by the event loop goroutine.
type Application struct {
	cfg       *config.Config
	name      string
	transform transform.Transform

	// Collaborators
	backend backend.Backend
	source  capture.Source
	watched reloader

	// Display
	desk    *renderer.Desk
	window  *renderer.Window
	status  *renderer.StatusLine
	surface *renderer.Surface
	pointer *renderer.PointerTracker

	// Geometry and input
	screen image.Point
	view   *viewport.Viewport
	input  *input.State

	// Reused per-tick buffers
	frame    *pixel.Frame
	snapshot *image.RGBA

	logger  *Logger
	metrics *Metrics

	running  atomic.Bool
	quitting bool
	ticks    atomic.Uint64
	done     chan struct{}
	doneOnce sync.Once
}

// Options configures the application.
type Options struct {
	// Config is the validated startup configuration. Required.
	Config *config.Config

	// Backend is the terminal backend. Required.
	Backend backend.Backend

	// Source overrides the capture source derived from Config.
	Source capture.Source

	// Registry resolves the transform name. Defaults to transform.Default().
	Registry *transform.Registry

	// Logger receives the application log. Defaults to NullLogger.
	Logger *Logger

	// Name is used in titles. Defaults to DefaultName.
	Name string
}

// New creates an Application. The backend is not touched until Run.
func New(opts Options) (*Application, error) {
	if opts.Config == nil {
		return nil, &InitError{Component: "config", Err: fmt.Errorf("no configuration")}
	}
	if opts.Backend == nil {
		return nil, &InitError{Component: "backend", Err: fmt.Errorf("no backend")}
	}
	if opts.Registry == nil {
		opts.Registry = transform.Default()
	}
	if opts.Logger == nil {
		opts.Logger = NullLogger
	}
	if opts.Name == "" {
		opts.Name = DefaultName
	}

	tf, err := opts.Registry.Lookup(opts.Config.Transform)
	if err != nil {
		return nil, &config.Error{Field: "transform", Value: opts.Config.Transform, Reason: "not registered", Err: err}
	}

	app := &Application{
		cfg:       opts.Config,
		name:      opts.Name,
		transform: tf,
		backend:   opts.Backend,
		source:    opts.Source,
		logger:    opts.Logger.WithField("session", uuid.NewString()),
		metrics:   NewMetrics(),
		input:     input.NewState(nil),
		done:      make(chan struct{}),
	}

	if app.source == nil {
		if err := app.openSource(); err != nil {
			return nil, err
		}
	}
	if r, ok := app.source.(reloader); ok {
		app.watched = r
	}

	app.bootstrap()
	return app, nil
}

// openSource creates the capture source named by the configuration: an
// image file, or the synthetic pattern when no file is set.
func (app *Application) openSource() error {
	if app.cfg.Source == "" {
		app.source = capture.NewPatternSource(app.cfg.ScreenWidth, app.cfg.ScreenHeight)
		return nil
	}

	src, err := capture.OpenFile(app.cfg.Source)
	if err != nil {
		return &InitError{Component: "capture", Err: err}
	}
	if app.cfg.Watch {
		if err := src.Watch(capture.DefaultDebounce); err != nil {
			// Magnifying a static image still works
			app.logger.WithComponent("capture").Warn("watch %s: %v", app.cfg.Source, err)
		}
	}
	app.source = src
	return nil
}

// bootstrap builds the viewport and display state from the configuration.
func (app *Application) bootstrap() {
	app.screen = app.source.Bounds().Size()

	app.view = viewport.New(app.cfg.HalfExtent(), app.screen)
	app.view.SetZoom(app.cfg.Zoom)

	app.window = renderer.NewWindow(app.backend, app.view.WindowSize())
	app.window.SetTitle(app.name)
	app.window.SetDecorated(!app.cfg.Mobile)

	app.status = renderer.NewStatusLine(app.name)
	app.status.SetZoom(app.view.Zoom)
	app.status.SetTransform(app.transform.Name)
	app.status.SetMobile(app.cfg.Mobile)

	app.desk = renderer.NewDesk(app.screen, 1, 1)
	app.surface = renderer.NewSurface(app.backend, app.desk, app.window, app.status)
	app.pointer = renderer.NewPointerTracker(app.desk)

	size := app.view.WindowSize()
	app.frame = pixel.NewFrame(size, size)
}

// Run initializes the backend and runs the event loop until the window
// is closed, Quit is invoked, ctx is cancelled or Shutdown is called.
// A quit key or close notification returns ErrQuit.
func (app *Application) Run(ctx context.Context) error {
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer app.running.Store(false)

	if err := app.backend.Init(); err != nil {
		return &InitError{Component: "backend", Err: err}
	}
	defer app.backend.Shutdown()
	defer app.stop()

	app.backend.HideCursor()
	if !app.backend.HasTrueColor() {
		app.logger.WithComponent("render").Warn("terminal lacks 24-bit colour, pixels use the nearest palette colour")
	}
	cols, rows := app.backend.Size()
	app.resizeTerminal(cols, rows)
	app.renderBackdrop(ctx)
	app.tick(ctx)

	app.logger.Info("started: screen %dx%d, window %v, zoom %.3f, transform %s, mobile %t",
		app.screen.X, app.screen.Y, app.window.Size(), app.view.Zoom, app.transform.Name, app.cfg.Mobile)

	err := app.eventLoop(ctx)

	app.logger.Info("stopped: %s", app.metrics.Snapshot())
	return err
}

// Shutdown ends the event loop. It is safe to call from any goroutine and
// more than once.
func (app *Application) Shutdown() error {
	if !app.running.Load() {
		return ErrNotRunning
	}
	app.stop()
	return nil
}

func (app *Application) stop() {
	app.doneOnce.Do(func() { close(app.done) })
}

// Close releases the capture source.
func (app *Application) Close() error {
	return app.source.Close()
}

// IsRunning returns true if the application is running.
func (app *Application) IsRunning() bool {
	return app.running.Load()
}

// Ticks returns the number of render ticks processed.
func (app *Application) Ticks() uint64 {
	return app.ticks.Load()
}

// Metrics returns the application's metrics.
func (app *Application) Metrics() *Metrics {
	return app.metrics
}

// Logger returns the application's logger.
func (app *Application) Logger() *Logger {
	return app.logger
}

// Viewport returns the capture geometry.
func (app *Application) Viewport() *viewport.Viewport {
	return app.view
}

// Window returns the magnifier window.
func (app *Application) Window() *renderer.Window {
	return app.window
}

// Surface returns the display surface.
func (app *Application) Surface() *renderer.Surface {
	return app.surface
}

// Input returns the input state.
func (app *Application) Input() *input.State {
	return app.input
}

// Screen returns the size of the screen being magnified.
func (app *Application) Screen() image.Point {
	return app.screen
}
