package app

import (
	"context"
	"time"

	"github.com/dshills/loupe/internal/input/key"
	"github.com/dshills/loupe/internal/renderer/backend"
)

// eventLoop multiplexes render ticks, terminal events and source changes
// onto the calling goroutine. Handlers run to completion one at a time.
func (app *Application) eventLoop(ctx context.Context) error {
	events := app.startInputPolling()

	ticker := time.NewTicker(app.cfg.RefreshInterval())
	defer ticker.Stop()

	var changes <-chan struct{}
	var watchErrors <-chan error
	if app.watched != nil {
		changes = app.watched.Changes()
		watchErrors = app.watched.Errors()
	}

	for {
		select {
		case <-ctx.Done():
			app.logger.Info("context done: %v", ctx.Err())
			return nil

		case <-app.done:
			return nil

		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if err := app.handleBackendEvent(ctx, ev); err != nil {
				return err
			}

		case <-ticker.C:
			app.tick(ctx)

		case <-changes:
			app.reloadSource(ctx)

		case err, ok := <-watchErrors:
			if !ok {
				watchErrors = nil
				continue
			}
			app.logger.WithComponent("watch").Warn("%v", err)
		}
	}
}

// handleBackendEvent processes a backend event and routes it appropriately.
// Returns ErrQuit if the application should exit.
func (app *Application) handleBackendEvent(ctx context.Context, ev backend.Event) error {
	switch ev.Type {
	case backend.EventKey:
		return app.handleKeyEvent(ev)
	case backend.EventMouse:
		app.pointer.Observe(ev)
		return nil
	case backend.EventResize:
		app.resizeTerminal(ev.Width, ev.Height)
		app.renderBackdrop(ctx)
		app.surface.Show()
		return nil
	case backend.EventClose:
		app.logger.Info("window closed")
		return ErrQuit
	default:
		return nil
	}
}

// handleKeyEvent dispatches a key through the input state.
// Any key dismisses the help overlay before it is dispatched.
func (app *Application) handleKeyEvent(ev backend.Event) error {
	timer := StartTimer()
	keyEv := convertToKeyEvent(ev)

	if app.surface.ClearOverlay() {
		app.surface.Show()
	}

	action := app.input.OnKeyPress(keyEv, app)
	app.metrics.RecordInput(timer.Elapsed())
	app.logger.Debug("key %s -> %s", keyEv, action)

	if app.quitting {
		return ErrQuit
	}
	return nil
}

// convertToKeyEvent converts a backend.Event to a key.Event.
func convertToKeyEvent(ev backend.Event) key.Event {
	k := mapBackendKey(ev.Key, ev.Rune)

	mods := key.ModNone
	if ev.Mod.Has(backend.ModCtrl) {
		mods = mods.With(key.ModCtrl)
	}
	if ev.Mod.Has(backend.ModAlt) {
		mods = mods.With(key.ModAlt)
	}
	if ev.Mod.Has(backend.ModShift) {
		mods = mods.With(key.ModShift)
	}
	if ev.Mod.Has(backend.ModMeta) {
		mods = mods.With(key.ModMeta)
	}

	if k == key.KeyRune {
		return key.NewRuneEvent(ev.Rune, mods)
	}
	return key.NewSpecialEvent(k, mods)
}

var backendKeys = map[backend.Key]key.Key{
	backend.KeyEscape:    key.KeyEscape,
	backend.KeyEnter:     key.KeyEnter,
	backend.KeyTab:       key.KeyTab,
	backend.KeyBackspace: key.KeyBackspace,
	backend.KeyDelete:    key.KeyDelete,
	backend.KeyInsert:    key.KeyInsert,
	backend.KeyHome:      key.KeyHome,
	backend.KeyEnd:       key.KeyEnd,
	backend.KeyPageUp:    key.KeyPageUp,
	backend.KeyPageDown:  key.KeyPageDown,
	backend.KeyUp:        key.KeyUp,
	backend.KeyDown:      key.KeyDown,
	backend.KeyLeft:      key.KeyLeft,
	backend.KeyRight:     key.KeyRight,
	backend.KeyF1:        key.KeyF1,
	backend.KeyF2:        key.KeyF2,
	backend.KeyF3:        key.KeyF3,
	backend.KeyF4:        key.KeyF4,
	backend.KeyF5:        key.KeyF5,
	backend.KeyF6:        key.KeyF6,
	backend.KeyF7:        key.KeyF7,
	backend.KeyF8:        key.KeyF8,
	backend.KeyF9:        key.KeyF9,
	backend.KeyF10:       key.KeyF10,
	backend.KeyF11:       key.KeyF11,
	backend.KeyF12:       key.KeyF12,
}

// mapBackendKey maps a backend.Key to a key.Key.
func mapBackendKey(bk backend.Key, r rune) key.Key {
	if bk == backend.KeyRune {
		return key.KeyRune
	}
	if k, ok := backendKeys[bk]; ok {
		return k
	}
	if r != 0 {
		return key.KeyRune
	}
	return key.KeyNone
}

// startInputPolling starts a goroutine that polls for input events.
// Events are sent to the returned channel, which is closed when the
// backend stops delivering events.
//
// PollEvent is blocking; Run shuts the backend down on exit, which
// unblocks it.
func (app *Application) startInputPolling() <-chan backend.Event {
	events := make(chan backend.Event, 100)

	go func() {
		defer close(events)

		for {
			ev := app.backend.PollEvent()
			if ev.Type == backend.EventNone {
				return
			}

			select {
			case events <- ev:
			case <-app.done:
				return
			}
		}
	}()

	return events
}
