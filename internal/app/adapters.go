package app

import (
	"context"

	"github.com/dshills/jot/internal/dispatcher/execctx"
	"github.com/dshills/jot/internal/integration/handoff"
)

// Compile-time interface checks.
var (
	_ handoff.Terminal        = (*sessionTerminal)(nil)
	_ execctx.EditorInterface = timedEditor{}
)

// sessionTerminal hands the terminal to the external editor and takes it
// back. The screen is suspended before the original attributes are put
// back, and resumed after the line-kill character is disabled again.
type sessionTerminal struct {
	app *Application
}

// Release implements handoff.Terminal.
func (t *sessionTerminal) Release() error {
	t.app.mu.RLock()
	b, g := t.app.backend, t.app.guardian
	t.app.mu.RUnlock()

	if b != nil {
		if err := b.Suspend(); err != nil {
			return err
		}
	}
	if g != nil {
		return g.Release()
	}
	return nil
}

// Reacquire implements handoff.Terminal.
func (t *sessionTerminal) Reacquire() error {
	t.app.mu.RLock()
	b, g := t.app.backend, t.app.guardian
	t.app.mu.RUnlock()

	if g != nil {
		if err := g.Reacquire(); err != nil {
			return err
		}
	}
	if b != nil {
		return b.Resume()
	}
	return nil
}

// timedEditor records time spent in the external editor.
type timedEditor struct {
	app *Application
}

// Edit implements execctx.EditorInterface.
func (e timedEditor) Edit(ctx context.Context, text string) (string, error) {
	timer := StartTimer()
	edited, err := e.app.editor.Edit(ctx, text)
	e.app.metrics.RecordHandoff(timer.Elapsed())
	return edited, err
}
