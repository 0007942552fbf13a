package lua

import (
	"fmt"
	"sort"
	"strings"
	"time"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/jot/internal/dispatcher/execctx"
	"github.com/dshills/jot/internal/dispatcher/handler"
	"github.com/dshills/jot/internal/input"
	"github.com/dshills/jot/internal/input/keymap"
)

// GroupName names the script's command group in logs.
const GroupName = "lua"

// Logger receives diagnostics. *app.Logger satisfies it.
type Logger interface {
	Debug(msg string, args ...any)
	Warn(msg string, args ...any)
}

// Script is a loaded user script and the commands it defined. It
// implements handler.Group.
type Script struct {
	state    *State
	name     string
	logger   Logger
	timeout  time.Duration
	commands map[string]*lua.LFunction

	// Set while a command runs.
	engine execctx.EngineInterface
	bell   bool
}

// Option configures a Script.
type Option func(*Script)

// WithLogger sets the diagnostics logger.
func WithLogger(l Logger) Option {
	return func(s *Script) { s.logger = l }
}

// WithTimeout bounds the script load and each command run.
func WithTimeout(d time.Duration) Option {
	return func(s *Script) { s.timeout = d }
}

func newScript(name string, opts []Option) *Script {
	s := &Script{
		name:     name,
		commands: make(map[string]*lua.LFunction),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.state = NewState(s.timeout)
	s.installAPI()
	return s
}

// Load runs the script at path and collects its commands.
func Load(path string, opts ...Option) (*Script, error) {
	s := newScript(path, opts)
	if err := s.state.DoFile(path); err != nil {
		s.Close()
		return nil, fmt.Errorf("load script %s: %w", path, err)
	}
	s.debug("script %s loaded: %d commands", path, len(s.commands))
	return s, nil
}

// LoadString runs Lua source and collects its commands. name is used in
// messages.
func LoadString(name, code string, opts ...Option) (*Script, error) {
	s := newScript(name, opts)
	if err := s.state.DoString(code); err != nil {
		s.Close()
		return nil, fmt.Errorf("load script %s: %w", name, err)
	}
	return s, nil
}

// Close releases the Lua state.
func (s *Script) Close() error {
	return s.state.Close()
}

// Name implements handler.Group.
func (s *Script) Name() string {
	return GroupName
}

// Commands implements handler.Group. Names are sorted.
func (s *Script) Commands() []string {
	names := make([]string, 0, len(s.commands))
	for name := range s.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CanHandle implements handler.Handler.
func (s *Script) CanHandle(name string) bool {
	_, ok := s.commands[name]
	return ok
}

// Handle implements handler.Handler. It calls the command's function
// with the repeat count.
func (s *Script) Handle(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
	fn, ok := s.commands[action.Name]
	if !ok {
		return handler.Errorf("unknown script command: %s", action.Name)
	}
	if err := ctx.Validate(); err != nil {
		return handler.Error(err)
	}

	s.engine, s.bell = ctx.Engine, false
	defer func() { s.engine = nil }()

	if err := s.state.CallFunction(fn, lua.LNumber(ctx.GetCount())); err != nil {
		s.warn("script command %s failed: %v", action.Name, err)
		return handler.Error(fmt.Errorf("%s: %w", action.Name, err))
	}

	result := handler.Success()
	if s.bell {
		result = result.WithBell()
	}
	return result
}

// register records a command defined by the script.
func (s *Script) register(name string, fn *lua.LFunction) error {
	name = strings.TrimSpace(name)
	switch {
	case name == "":
		return fmt.Errorf("%w: empty name", ErrInvalidCommand)
	case keymap.IsSuppressed(name):
		return fmt.Errorf("%w: %q: %w", ErrInvalidCommand, name, keymap.ErrSuppressed)
	}
	if _, dup := s.commands[name]; dup {
		return fmt.Errorf("%w: %q defined twice", ErrInvalidCommand, name)
	}
	s.commands[name] = fn
	s.debug("script command %s registered", name)
	return nil
}

func (s *Script) debug(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Debug(msg, args...)
	}
}

func (s *Script) warn(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Warn(msg, args...)
	}
}
