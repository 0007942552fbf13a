package app

import (
	"context"
	"errors"
	"syscall"

	"github.com/dshills/jot/internal/input/key"
	"github.com/dshills/jot/internal/integration/terminal"
	"github.com/dshills/jot/internal/renderer"
	"github.com/dshills/jot/internal/renderer/backend"
)

// Run takes over the display, edits until the buffer is accepted or the
// session ends, restores the terminal and, on accept, saves the document.
//
// A session ended by SIGINT or SIGTERM returns a *SignalError after the
// terminal is restored; nothing is saved.
func (app *Application) Run() error {
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer app.running.Store(false)
	defer app.Close()

	app.mu.RLock()
	b := app.backend
	app.mu.RUnlock()
	if b == nil {
		return ErrNoBackend
	}

	// Every way out of Run, including a panic, restores the terminal.
	defer app.release()

	if app.signals == nil {
		app.signals = terminal.WatchSignals(b.Interrupt)
	} else {
		app.signals.SetWake(b.Interrupt)
	}
	defer app.signals.Stop()

	if err := b.Init(); err != nil {
		return &SetupError{Component: "display", Err: err}
	}

	r := renderer.New(b, renderer.Options{Banner: app.opts.Banner})
	r.SetBuffer(app.document.Buffer)
	app.mu.Lock()
	app.renderer = r
	app.mu.Unlock()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	app.dispatcher.SetContext(ctx)
	app.dispatcher.SetDisplay(r)

	r.Redisplay()
	app.logger.Debug("session started in %s scope", app.input.Scope())

	loopErr := app.eventLoop()
	restoreErr := app.release()
	app.logger.Info("session ended: %s", app.metrics.Snapshot())
	app.logCommandStats()

	if loopErr != nil {
		return errors.Join(loopErr, restoreErr)
	}

	var saveErr error
	if app.accepted {
		saveErr = app.document.Save(app.opts.Stdout)
	}
	return errors.Join(restoreErr, saveErr)
}

// eventLoop reads one event at a time until the session ends.
func (app *Application) eventLoop() error {
	for {
		if err := app.pendingSignal(); err != nil {
			return err
		}

		ev := app.backend.PollEvent()
		done, err := app.handleBackendEvent(ev)
		if err != nil || done {
			return err
		}
	}
}

// handleBackendEvent processes a backend event and routes it appropriately.
// It returns true once the buffer is accepted.
func (app *Application) handleBackendEvent(ev backend.Event) (bool, error) {
	switch ev.Type {
	case backend.EventKey:
		return app.handleKeyEvent(ev.Key)
	case backend.EventResize:
		app.renderer.Redisplay()
	case backend.EventInterrupt:
		// Woken by the signal watcher; the loop checks the flag.
	}
	return false, nil
}

// handleKeyEvent resolves a key and runs the commands it produced.
func (app *Application) handleKeyEvent(ev key.Event) (bool, error) {
	timer := StartTimer()
	defer func() { app.metrics.RecordKey(timer.Elapsed()) }()

	out := app.input.HandleKeyEvent(ev)
	if out.Bell {
		app.metrics.RecordBell()
		app.renderer.Bell()
	}

	for _, action := range out.Actions {
		result := app.dispatcher.Dispatch(action)
		if result.Bell {
			app.metrics.RecordBell()
		}

		switch {
		case result.IsFatal():
			app.logger.Error("%s: %v", action.Name, result.Error)
			return false, result.Error
		case result.IsError():
			app.logger.Warn("%s: %v", action.Name, result.Error)
		}

		// A signal may have arrived while the external editor ran.
		if err := app.pendingSignal(); err != nil {
			return false, err
		}
		if result.Interrupt {
			app.logger.Info("interrupted from the keyboard")
			return false, &SignalError{Signal: syscall.SIGINT}
		}
		if result.Accept {
			app.accepted = true
			return true, nil
		}
	}
	return false, nil
}

// pendingSignal returns a *SignalError once a termination signal arrived.
func (app *Application) pendingSignal() error {
	if app.signals == nil {
		return nil
	}
	if sig, ok := app.signals.Pending(); ok {
		app.logger.Info("received %s", sig)
		return &SignalError{Signal: sig}
	}
	return nil
}

// release gives the display back and restores the terminal. Only the
// first call does anything.
func (app *Application) release() error {
	if !app.released.CompareAndSwap(false, true) {
		return nil
	}

	app.mu.RLock()
	b, g := app.backend, app.guardian
	app.mu.RUnlock()

	if b != nil {
		b.Shutdown()
	}
	if g == nil {
		return nil
	}
	if err := g.Restore(); err != nil {
		app.logger.Error("%v", err)
		return err
	}
	return nil
}

// logCommandStats logs the most used commands when dispatch metrics are on.
func (app *Application) logCommandStats() {
	m := app.dispatcher.Metrics()
	if m == nil {
		return
	}
	for _, c := range m.TopCommands(10) {
		app.logger.Debug("command %s: %d runs, %d errors, max %s", c.Name, c.DispatchCount, c.ErrorCount, c.MaxDuration)
	}
}
