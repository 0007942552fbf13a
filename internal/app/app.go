// Package app wires a jot session together: configuration, the document
// buffer, the key tables, the command dispatcher, the external editor
// hand-off, the terminal guardian and the display. It owns the event loop
// and the single exit path that restores the terminal.
package app

import (
	"io"
	"os"
	"sync"
	"sync/atomic"

	"github.com/dshills/jot/internal/config"
	"github.com/dshills/jot/internal/dispatcher"
	"github.com/dshills/jot/internal/input"
	"github.com/dshills/jot/internal/input/keymap"
	"github.com/dshills/jot/internal/integration/handoff"
	"github.com/dshills/jot/internal/integration/terminal"
	"github.com/dshills/jot/internal/plugin/lua"
	"github.com/dshills/jot/internal/renderer"
	"github.com/dshills/jot/internal/renderer/backend"
)

// Application is one jot session.
type Application struct {
	mu sync.RWMutex

	// Core infrastructure
	config    *config.Config
	logger    *Logger
	logCloser io.Closer
	metrics   *Metrics

	// Editing components
	document   *Document
	keymaps    *keymap.Registry
	input      *input.Handler
	dispatcher *dispatcher.Dispatcher
	editor     *handoff.Editor
	script     *lua.Script

	// Terminal components, set before Run
	backend  backend.Backend
	renderer *renderer.Renderer
	guardian *terminal.Guardian
	signals  *terminal.SignalWatcher

	// State
	running  atomic.Bool
	released atomic.Bool
	accepted bool

	opts Options
}

// Options configures the application.
type Options struct {
	// ConfigPath is an explicit configuration file.
	ConfigPath string

	// File is the target file. Empty means write the result to Stdout.
	File string

	// Empty starts with an empty buffer even if File exists.
	Empty bool

	// FromStdin reads the initial text from Stdin.
	FromStdin bool

	// Banner is drawn above the buffer.
	Banner string

	// LogLevel and LogFile override the configuration when set.
	LogLevel string
	LogFile  string

	// Stdin and Stdout default to the process streams.
	Stdin  io.Reader
	Stdout io.Writer

	// EditorDevice is the terminal the external editor runs on. Empty
	// means the controlling terminal.
	EditorDevice string

	// Logger replaces the configured logger.
	Logger *Logger

	// LookupEnv reads the environment. Nil means os.LookupEnv.
	LookupEnv func(string) (string, bool)
}

// New creates an Application. Configuration, document and script errors
// are returned before any terminal state is touched.
func New(opts Options) (*Application, error) {
	if opts.Stdin == nil {
		opts.Stdin = os.Stdin
	}
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}

	app := &Application{
		opts:    opts,
		metrics: NewMetrics(),
	}
	if err := newBootstrapper(app, opts).bootstrap(); err != nil {
		return nil, err
	}
	return app, nil
}

// SetBackend sets the display backend.
// Must be called before Run().
func (app *Application) SetBackend(b backend.Backend) error {
	app.mu.Lock()
	defer app.mu.Unlock()

	if app.running.Load() {
		return ErrAlreadyRunning
	}
	app.backend = b
	return nil
}

// SetGuardian sets the terminal guardian restored on exit.
// Must be called before Run().
func (app *Application) SetGuardian(g *terminal.Guardian) error {
	app.mu.Lock()
	defer app.mu.Unlock()

	if app.running.Load() {
		return ErrAlreadyRunning
	}
	app.guardian = g
	return nil
}

// SetSignals sets the termination signal watcher. Run wakes its event
// loop through it and stops it on return. Without one, Run starts its own.
// Must be called before Run().
func (app *Application) SetSignals(w *terminal.SignalWatcher) error {
	app.mu.Lock()
	defer app.mu.Unlock()

	if app.running.Load() {
		return ErrAlreadyRunning
	}
	app.signals = w
	return nil
}

// IsRunning returns true if the application is running.
func (app *Application) IsRunning() bool {
	return app.running.Load()
}

// Accepted returns true if the session ended by accepting the buffer.
func (app *Application) Accepted() bool {
	return app.accepted
}

// Config returns the configuration.
func (app *Application) Config() *config.Config {
	return app.config
}

// Document returns the document being edited.
func (app *Application) Document() *Document {
	return app.document
}

// Dispatcher returns the dispatcher.
func (app *Application) Dispatcher() *dispatcher.Dispatcher {
	return app.dispatcher
}

// Input returns the key handler.
func (app *Application) Input() *input.Handler {
	return app.input
}

// Editor returns the external editor hand-off.
func (app *Application) Editor() *handoff.Editor {
	return app.editor
}

// Renderer returns the renderer (nil before Run).
func (app *Application) Renderer() *renderer.Renderer {
	app.mu.RLock()
	defer app.mu.RUnlock()
	return app.renderer
}

// Close releases resources held outside the terminal: a still running
// editor child, the Lua state and the log file. Run calls it on return.
func (app *Application) Close() {
	if app.editor != nil {
		app.editor.Close()
	}
	if app.script != nil {
		_ = app.script.Close()
		app.script = nil
	}
	if app.logCloser != nil {
		_ = app.logCloser.Close()
		app.logCloser = nil
	}
}
