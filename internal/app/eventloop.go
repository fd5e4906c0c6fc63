package app

import (
	"errors"

	"github.com/dshills/sudoku/internal/game"
	"github.com/dshills/sudoku/internal/input/key"
	"github.com/dshills/sudoku/internal/renderer/backend"
	"github.com/dshills/sudoku/internal/sound"
)

// eventLoop draws the board and processes events until quit.
func (app *Application) eventLoop() error {
	app.draw()

	events := app.startInputPolling()
	for {
		select {
		case <-app.done:
			return nil

		case ev, ok := <-events:
			if !ok {
				return nil
			}
			err := app.handleBackendEvent(ev)
			if errors.Is(err, ErrQuit) {
				app.logger.Debug("quit requested")
				return nil
			}
			if err != nil {
				return err
			}
			app.draw()
		}
	}
}

func (app *Application) draw() {
	if app.renderer != nil {
		app.renderer.Draw(app.controller)
	}
}

// handleBackendEvent processes a backend event and routes it appropriately.
// Returns ErrQuit if the application should exit.
func (app *Application) handleBackendEvent(ev backend.Event) error {
	switch ev.Type {
	case backend.EventKey:
		return app.handleKeyEvent(ev)
	case backend.EventMouse:
		return app.handleMouseEvent(ev)
	case backend.EventInterrupt:
		return app.handleInterrupt(ev)
	default:
		// Resize and unknown events only need a redraw.
		return nil
	}
}

// handleKeyEvent handles navigation and quit keys, and passes every
// other key to the dispatcher.
func (app *Application) handleKeyEvent(ev backend.Event) error {
	switch ev.Key {
	case backend.KeyEscape, backend.KeyCtrlC:
		return ErrQuit
	case backend.KeyUp:
		app.grid.Move(-1, 0)
		return nil
	case backend.KeyDown:
		app.grid.Move(1, 0)
		return nil
	case backend.KeyLeft:
		app.grid.Move(0, -1)
		return nil
	case backend.KeyRight:
		app.grid.Move(0, 1)
		return nil
	}

	if ev.Key == backend.KeyRune && ev.Mod&(backend.ModCtrl|backend.ModAlt|backend.ModMeta) == 0 {
		switch ev.Rune {
		case 'q', 'Q':
			return ErrQuit
		case 'h':
			app.grid.Move(0, -1)
			return nil
		case 'j':
			app.grid.Move(1, 0)
			return nil
		case 'k':
			app.grid.Move(-1, 0)
			return nil
		case 'l':
			app.grid.Move(0, 1)
			return nil
		}
	}

	keyEv := convertToKeyEvent(ev)
	if keyEv.IsInterrupt() {
		return ErrQuit
	}
	app.dispatch(keyEv)
	return nil
}

// dispatch clears the message line and sends a key to the dispatcher.
func (app *Application) dispatch(ev key.Event) {
	app.status.SetMessage("")
	app.dispatcher.Handle(ev)
}

// onGameChange runs after every change the controller accepts. It plays
// the outcome tone when the change cost a mistake or ended the game.
func (app *Application) onGameChange() {
	c := app.controller
	state, mistakes := c.State(), c.Mistakes()

	switch {
	case state != app.lastState && state == game.StateWon:
		app.sound.Play(sound.ToneWin)
		app.logger.Info("puzzle solved in %s", c.Elapsed())
	case state != app.lastState && state == game.StateLost:
		app.sound.Play(sound.ToneLose)
		app.logger.Info("game lost after %d mistakes", mistakes)
	case mistakes > app.lastMistakes:
		app.sound.Play(sound.ToneMistake)
	}

	app.lastState, app.lastMistakes = state, mistakes
}

// handleMouseEvent selects cells and presses the pause button.
func (app *Application) handleMouseEvent(ev backend.Event) error {
	if ev.MouseButton != backend.MouseLeft || app.controller.IsGameOver() {
		return nil
	}

	if app.status.PauseButtonAt(ev.MouseX, ev.MouseY) {
		app.status.SetMessage("")
		app.dispatcher.TogglePause()
		return nil
	}

	if row, col, ok := app.grid.HitTest(ev.MouseX, ev.MouseY); ok {
		app.grid.Select(row, col)
	}
	return nil
}

// handleInterrupt processes events posted from other goroutines.
func (app *Application) handleInterrupt(ev backend.Event) error {
	switch ev.Data.(type) {
	case reloadEvent:
		_ = app.reload()
	case tickEvent:
		// Redraw only.
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

	if k == key.KeyRune && ev.Rune == ' ' {
		return key.NewSpecialEvent(key.KeySpace, mods)
	}
	if k != key.KeyRune {
		return key.NewSpecialEvent(k, mods)
	}
	return key.NewEvent(k, ev.Rune, mods)
}

// mapBackendKey maps a backend.Key to a key.Key.
func mapBackendKey(bk backend.Key, r rune) key.Key {
	switch bk {
	case backend.KeyRune:
		if r == 0 {
			return key.KeyNone
		}
		return key.KeyRune
	case backend.KeyEscape:
		return key.KeyEscape
	case backend.KeyEnter:
		return key.KeyEnter
	case backend.KeyTab:
		return key.KeyTab
	case backend.KeyBackspace:
		return key.KeyBackspace
	case backend.KeyDelete:
		return key.KeyDelete
	case backend.KeyInsert:
		return key.KeyInsert
	case backend.KeyHome:
		return key.KeyHome
	case backend.KeyEnd:
		return key.KeyEnd
	case backend.KeyPageUp:
		return key.KeyPageUp
	case backend.KeyPageDown:
		return key.KeyPageDown
	case backend.KeyUp:
		return key.KeyUp
	case backend.KeyDown:
		return key.KeyDown
	case backend.KeyLeft:
		return key.KeyLeft
	case backend.KeyRight:
		return key.KeyRight
	case backend.KeyPause:
		return key.KeyPause
	}

	if bk >= backend.KeyF1 && bk <= backend.KeyF12 {
		return key.KeyF1 + key.Key(bk-backend.KeyF1)
	}
	return key.KeyNone
}

// startInputPolling starts a goroutine that polls for input events.
// Events are sent to the returned channel.
//
// PollEvent blocks, so the goroutine may outlive the loop until the
// backend is shut down.
func (app *Application) startInputPolling() <-chan backend.Event {
	events := make(chan backend.Event, 100)
	b := app.backend

	go func() {
		defer close(events)

		for app.running.Load() {
			ev := b.PollEvent()

			if !app.running.Load() {
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
