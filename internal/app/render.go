package app

import (
	"context"
	"errors"
	"image"

	"github.com/dshills/loupe/internal/capture"
	"github.com/dshills/loupe/internal/pixel"
	"github.com/dshills/loupe/internal/renderer"
)

// tick runs one pass of the render loop. A failed pass leaves the
// previous frame on screen and is retried by the next tick.
func (app *Application) tick(ctx context.Context) {
	app.ticks.Add(1)
	timer := StartTimer()

	app.view.Offset = app.window.Position()
	p := app.pointer.Position()
	app.input.SetPointer(p)
	app.status.SetPointer(p)

	if err := app.renderFrame(ctx, p); err != nil {
		app.metrics.RecordSkippedFrame()
		log := app.logger.WithComponent("render")
		if errors.Is(err, capture.ErrOutOfBounds) {
			log.Error("frame skipped: %v", err)
		} else {
			log.Warn("frame skipped: %v", err)
		}
		cause := err
		if inner := errors.Unwrap(err); inner != nil {
			cause = inner
		}
		app.status.SetMessage("frame skipped: "+cause.Error(), renderer.MessageWarning)
		app.surface.Show()
		return
	}
	app.metrics.RecordFrame(timer.Elapsed())
}

// captureRect returns the rectangle to capture for pointer p. In mobile
// mode the window is moved onto the pointer first. A rectangle outside
// the screen means the clamping is broken and fails with ErrOutOfBounds.
func (app *Application) captureRect(p image.Point) (image.Rectangle, error) {
	if app.cfg.Mobile {
		app.window.Move(p.X, p.Y)
		app.view.Offset = p
		r := app.view.FollowRect(p, app.screen)
		if !r.In(image.Rectangle{Max: app.screen}) {
			return r, NewOperationError("viewport", r.String(), capture.ErrOutOfBounds).WithContext("follow")
		}
		return r, nil
	}
	app.view.Recenter(p, app.screen)
	r := app.view.CaptureRect()
	if !app.view.Contains(app.screen) {
		return r, NewOperationError("viewport", r.String(), capture.ErrOutOfBounds)
	}
	return r, nil
}

// renderFrame captures, scales, transforms and paints one frame.
func (app *Application) renderFrame(ctx context.Context, p image.Point) error {
	r, err := app.captureRect(p)
	if err != nil {
		return err
	}

	f := app.frame
	f.Prepare(r.Size(), app.view.ScaledSize(r))
	if err := app.source.CaptureInto(ctx, f.Grab, r); err != nil {
		opErr := NewOperationError("capture", r.String(), err)
		if app.cfg.Mobile {
			opErr = opErr.WithContext("follow")
		}
		return opErr
	}

	pixel.ScaleNearest(f.Scaled, f.Grab)
	f.Planes.Normalize(f.Scaled)
	app.transform.Apply(f.Planes)
	f.Planes.Denormalize(f.Out)

	app.status.ClearMessage()
	app.surface.Clear()
	app.surface.Paint(f.Out, image.Point{})
	app.surface.Show()
	return nil
}

// resizeTerminal adapts the display to a terminal of cols×rows cells and
// re-applies the window size.
func (app *Application) resizeTerminal(cols, rows int) {
	app.surface.Resize(cols, rows)
	app.applyResize(image.Point{})
}

// renderBackdrop captures the whole screen for the desk overview.
func (app *Application) renderBackdrop(ctx context.Context) {
	bounds := app.source.Bounds()
	app.snapshot = pixel.Resize(app.snapshot, bounds.Dx(), bounds.Dy())
	if err := app.source.CaptureInto(ctx, app.snapshot, bounds); err != nil {
		app.logger.WithComponent("render").Warn("backdrop: %v", err)
		return
	}
	app.surface.RenderBackdrop(app.snapshot)
}

// reloadSource swaps in a changed source image.
func (app *Application) reloadSource(ctx context.Context) {
	err := app.watched.Reload()
	app.metrics.RecordReload(err)

	log := app.logger.WithComponent("capture")
	if err != nil {
		log.Warn("reload failed, keeping previous image: %v", err)
		return
	}

	app.screen = app.source.Bounds().Size()
	app.surface.Desk().SetScreen(app.screen)
	app.applyResize(image.Point{})
	app.renderBackdrop(ctx)
	log.Info("source reloaded: %dx%d", app.screen.X, app.screen.Y)
}
