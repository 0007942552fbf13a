package handoff

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/dshills/jot/internal/integration/process"
)

// DefaultProgram is the editor used when none is configured.
const DefaultProgram = "vi"

// TempPrefix starts the name of every hand-off temp file.
const TempPrefix = "jot_edit_"

// closeGrace is how long Close waits for the editor after SIGTERM.
const closeGrace = 2 * time.Second

// Terminal is the interactive terminal session the hand-off suspends.
type Terminal interface {
	// Release returns the terminal to its original state for the editor.
	Release() error

	// Reacquire takes the terminal back for the interactive session.
	Reacquire() error
}

// Logger receives diagnostics. *app.Logger satisfies it.
type Logger interface {
	Debug(msg string, args ...any)
	Warn(msg string, args ...any)
}

// Config configures the hand-off.
type Config struct {
	// Program is the editor command line. It is split on whitespace so it
	// may carry arguments; the temp file path is appended.
	Program string

	// TempDir holds the temp file. Empty means os.TempDir().
	TempDir string

	// Device is the terminal the editor reads from and draws on. It is
	// opened for each run and given as all three standard streams, so a
	// redirected stdin or stdout never reaches the editor.
	Device string

	// Stdin, Stdout and Stderr are given to the editor when Device is
	// empty. Nil means the process's own streams.
	Stdin  *os.File
	Stdout *os.File
	Stderr *os.File
}

// Editor runs the external editor hand-off.
type Editor struct {
	config     Config
	term       Terminal
	supervisor *process.Supervisor
	logger     Logger
	onChange   func(from, to State)

	state atomic.Int32
}

// Option configures an Editor.
type Option func(*Editor)

// WithTerminal sets the terminal released around the editor run.
func WithTerminal(t Terminal) Option {
	return func(e *Editor) { e.term = t }
}

// WithLogger sets the diagnostics logger.
func WithLogger(l Logger) Option {
	return func(e *Editor) { e.logger = l }
}

// WithTransitionHook sets a function called on every state change.
func WithTransitionHook(fn func(from, to State)) Option {
	return func(e *Editor) { e.onChange = fn }
}

// New creates an Editor.
func New(cfg Config, opts ...Option) *Editor {
	if strings.TrimSpace(cfg.Program) == "" {
		cfg.Program = DefaultProgram
	}
	e := &Editor{config: cfg}
	for _, opt := range opts {
		opt(e)
	}
	if e.supervisor == nil {
		e.supervisor = process.NewSupervisor()
	}
	if e.logger == nil {
		e.logger = nopLogger{}
	}
	return e
}

// State returns the current state.
func (e *Editor) State() State {
	return State(e.state.Load())
}

// Program returns the configured editor command line.
func (e *Editor) Program() string {
	return e.config.Program
}

// Edit hands text to the external editor and returns the edited text.
// Any error leaves the Editor in StateFailed and is an *Error.
func (e *Editor) Edit(ctx context.Context, text string) (string, error) {
	switch e.State() {
	case StateInteractive:
	case StateFailed:
		return "", ErrFailed
	default:
		return "", ErrBusy
	}

	if err := e.transition(StateSuspending); err != nil {
		return "", err
	}

	path, err := e.writeTemp(text)
	if err != nil {
		return "", e.fail("create temp file", err)
	}
	defer e.removeTemp(path)

	if e.term != nil {
		if err := e.term.Release(); err != nil {
			return "", e.fail("release terminal", err)
		}
	}

	if err := e.transition(StateDelegated); err != nil {
		return "", err
	}
	if err := e.run(ctx, path); err != nil {
		return "", e.fail("run editor", err)
	}

	if err := e.transition(StateResuming); err != nil {
		return "", err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", e.fail("read temp file", err)
	}
	if e.term != nil {
		if err := e.term.Reacquire(); err != nil {
			return "", e.fail("reacquire terminal", err)
		}
	}

	if err := e.transition(StateInteractive); err != nil {
		return "", err
	}
	return string(data), nil
}

// writeTemp stores text in a new private file. os.CreateTemp opens with
// O_EXCL and mode 0600, so an existing path or symlink is never reused.
func (e *Editor) writeTemp(text string) (string, error) {
	f, err := os.CreateTemp(e.config.TempDir, TempPrefix+"*")
	if err != nil {
		return "", err
	}
	path := f.Name()

	_, werr := io.WriteString(f, text)
	cerr := f.Close()
	if err := errors.Join(werr, cerr); err != nil {
		e.removeTemp(path)
		return "", err
	}
	return path, nil
}

// removeTemp deletes the temp file. Failure is logged, never fatal.
func (e *Editor) removeTemp(path string) {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		e.logger.Warn("remove temp file %s: %v", path, err)
	}
}

// run starts the editor on path and blocks until it exits.
func (e *Editor) run(ctx context.Context, path string) error {
	args := strings.Fields(e.config.Program)
	if len(args) == 0 {
		return ErrEmptyProgram
	}

	cmd := exec.Command(args[0], append(args[1:], path)...)
	if dev := e.config.Device; dev != "" {
		tty, err := os.OpenFile(dev, os.O_RDWR, 0)
		if err != nil {
			return fmt.Errorf("open %s: %w", dev, err)
		}
		defer tty.Close()
		cmd.Stdin, cmd.Stdout, cmd.Stderr = tty, tty, tty
	} else {
		cmd.Stdin = orStd(e.config.Stdin, os.Stdin)
		cmd.Stdout = orStd(e.config.Stdout, os.Stdout)
		cmd.Stderr = orStd(e.config.Stderr, os.Stderr)
	}

	proc, err := e.supervisor.Start("editor", cmd)
	if err != nil {
		return err
	}
	e.logger.Debug("editor %s started: %s (pid %d)", proc.ID, e.config.Program, proc.PID())

	var x process.Exit
	select {
	case <-proc.Done():
		x = proc.Wait()
	case <-ctx.Done():
		_ = proc.Signal(syscall.SIGTERM)
		proc.Wait()
		return ctx.Err()
	}
	e.logger.Debug("editor %s finished: %s after %s", proc.ID, x, proc.Duration())

	switch {
	case x.Signaled():
		return fmt.Errorf("%w: %v", ErrEditorSignaled, x.Signal)
	case !x.OK():
		return fmt.Errorf("%w: %s", ErrEditorFailed, x)
	}
	return nil
}

// Close ends an editor child that is still running, as after a signal.
func (e *Editor) Close() {
	e.supervisor.Shutdown(closeGrace)
}

func (e *Editor) transition(to State) error {
	from := e.State()
	if !next(from, to) {
		return fmt.Errorf("%w: %s -> %s", ErrBadTransition, from, to)
	}
	e.state.Store(int32(to))
	if e.onChange != nil {
		e.onChange(from, to)
	}
	return nil
}

func (e *Editor) fail(step string, err error) error {
	herr := &Error{Step: step, State: e.State(), Err: err}
	_ = e.transition(StateFailed)
	return herr
}

func orStd(f, std *os.File) *os.File {
	if f != nil {
		return f
	}
	return std
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Warn(string, ...any)  {}
