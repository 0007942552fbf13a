package terminal

import (
	"fmt"
	"os"
	"sync"
	"sync/atomic"

	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// DevicePath is the controlling terminal.
const DevicePath = "/dev/tty"

// Attributes reads and writes the attributes of one terminal.
type Attributes interface {
	Get() (*unix.Termios, error)
	Set(t *unix.Termios) error
}

// Logger receives diagnostics. *app.Logger satisfies it.
type Logger interface {
	Debug(msg string, args ...any)
	Warn(msg string, args ...any)
}

// fdAttributes reads and writes attributes through ioctl on a descriptor.
type fdAttributes struct {
	fd int
}

func (a fdAttributes) Get() (*unix.Termios, error) {
	return unix.IoctlGetTermios(a.fd, ioctlGetTermios)
}

func (a fdAttributes) Set(t *unix.Termios) error {
	return unix.IoctlSetTermios(a.fd, ioctlSetTermios, t)
}

// Guardian owns the original terminal attributes for a session.
type Guardian struct {
	mu sync.Mutex

	attrs  Attributes
	tty    *os.File
	saved  unix.Termios
	logger Logger

	restored atomic.Bool
}

// Option configures a Guardian.
type Option func(*Guardian)

// WithLogger sets the diagnostics logger.
func WithLogger(l Logger) Option {
	return func(g *Guardian) { g.logger = l }
}

// Open opens the controlling terminal, captures its attributes and
// disables the line-kill character.
func Open(opts ...Option) (*Guardian, error) {
	tty, err := os.OpenFile(DevicePath, os.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", DevicePath, err)
	}
	if !term.IsTerminal(int(tty.Fd())) {
		tty.Close()
		return nil, fmt.Errorf("%s: %w", DevicePath, ErrNotTerminal)
	}

	g, err := New(fdAttributes{fd: int(tty.Fd())}, opts...)
	if err != nil {
		tty.Close()
		return nil, err
	}
	g.tty = tty
	return g, nil
}

// New captures the attributes of a terminal and disables its line-kill
// character.
func New(attrs Attributes, opts ...Option) (*Guardian, error) {
	if attrs == nil {
		return nil, ErrNoAttributes
	}

	g := &Guardian{attrs: attrs}
	for _, opt := range opts {
		opt(g)
	}

	saved, err := attrs.Get()
	if err != nil {
		return nil, fmt.Errorf("capture terminal attributes: %w", err)
	}
	g.saved = *saved

	if err := g.disableKill(); err != nil {
		return nil, err
	}
	return g, nil
}

// disableKill applies the saved attributes with VKILL disabled.
func (g *Guardian) disableKill() error {
	t := g.saved
	t.Cc[unix.VKILL] = vdisable
	if err := g.attrs.Set(&t); err != nil {
		return fmt.Errorf("disable line-kill character: %w", err)
	}
	g.debug("line-kill character disabled")
	return nil
}

// Saved returns a copy of the captured attributes.
func (g *Guardian) Saved() unix.Termios {
	return g.saved
}

// Release puts the original attributes back without consuming the
// restore guard.
func (g *Guardian) Release() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.restored.Load() {
		return ErrRestored
	}
	t := g.saved
	if err := g.attrs.Set(&t); err != nil {
		return fmt.Errorf("release terminal: %w", err)
	}
	g.debug("terminal released")
	return nil
}

// Reacquire disables the line-kill character again after Release.
func (g *Guardian) Reacquire() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.restored.Load() {
		return ErrRestored
	}
	return g.disableKill()
}

// Restore puts the original attributes back and closes the terminal.
// Only the first call does anything; later calls return nil.
func (g *Guardian) Restore() error {
	if !g.restored.CompareAndSwap(false, true) {
		return nil
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	t := g.saved
	err := g.attrs.Set(&t)
	if err != nil {
		err = fmt.Errorf("restore terminal: %w", err)
	}
	if g.tty != nil {
		if cerr := g.tty.Close(); cerr != nil && g.logger != nil {
			g.logger.Warn("close terminal: %v", cerr)
		}
		g.tty = nil
	}
	g.debug("terminal restored")
	return err
}

// Restored reports whether Restore has run.
func (g *Guardian) Restored() bool {
	return g.restored.Load()
}

func (g *Guardian) debug(msg string) {
	if g.logger != nil {
		g.logger.Debug(msg)
	}
}
