package app

import (
	"fmt"
	"image"

	"github.com/dshills/loupe/internal/input"
)

// Quit ends the event loop after the current key is handled.
func (app *Application) Quit() {
	app.quitting = true
	app.logger.Info("quit requested")
}

// SetZoom selects a zoom level and shows the factor in the title.
func (app *Application) SetZoom(level int) {
	app.view.SetZoom(level)
	app.window.SetTitle(fmt.Sprintf("%s: %f", app.name, app.view.Zoom))
	app.status.SetZoom(app.view.Zoom)
}

// ShowHelp lists the key bindings and the effective configuration in an
// overlay and in the log.
func (app *Application) ShowHelp() {
	lines := app.helpLines()

	log := app.logger.WithComponent("help")
	for _, line := range lines {
		log.Info("%s", line)
	}

	app.surface.SetOverlay(lines)
	app.surface.Show()
}

func (app *Application) helpLines() []string {
	lines := []string{"Key bindings:"}
	lines = append(lines, app.input.Table().Help()...)
	lines = append(lines, "", "Configuration:")
	lines = append(lines, app.cfg.Dump()...)
	return lines
}

// ResizeWindow changes the half extent by (dx, dy).
func (app *Application) ResizeWindow(dx, dy int) {
	app.applyResize(image.Pt(dx, dy))
}

// applyResize updates the half extent and sizes the window to match.
func (app *Application) applyResize(delta image.Point) {
	app.view.Resize(delta, 1, app.screen)
	size := app.view.WindowSize()
	app.window.Resize(size.X, size.Y)
}

// MoveWindow moves the window by (dx, dy) desktop pixels.
func (app *Application) MoveWindow(dx, dy int) {
	offset := app.view.Move(image.Pt(dx, dy), 1)
	app.window.Move(offset.X, offset.Y)
}

var _ input.Handler = (*Application)(nil)
