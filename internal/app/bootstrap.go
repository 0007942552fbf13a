package app

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/dshills/jot/internal/config"
	"github.com/dshills/jot/internal/dispatcher"
	"github.com/dshills/jot/internal/dispatcher/execctx"
	"github.com/dshills/jot/internal/dispatcher/handler"
	"github.com/dshills/jot/internal/input"
	"github.com/dshills/jot/internal/input/keymap"
	"github.com/dshills/jot/internal/integration/handoff"
	"github.com/dshills/jot/internal/integration/terminal"
	"github.com/dshills/jot/internal/plugin/lua"
)

// KeymapDir is the directory, next to the config file, holding extra
// keymap files.
const KeymapDir = "keymaps"

// bootstrapper handles component initialization with proper cleanup on failure.
type bootstrapper struct {
	app       *Application
	opts      Options
	initOrder []string
}

// newBootstrapper creates a new bootstrapper for the application.
func newBootstrapper(app *Application, opts Options) *bootstrapper {
	return &bootstrapper{
		app:       app,
		opts:      opts,
		initOrder: make([]string, 0, 8),
	}
}

// bootstrap initializes all components in dependency order.
// On failure, it cleans up already-initialized components.
func (b *bootstrapper) bootstrap() error {
	steps := []func() error{
		b.initConfig,     // 1. Config: defaults, file, environment, flags
		b.initLogger,     // 2. Logger
		b.initDocument,   // 3. Initial text
		b.initKeymaps,    // 4. Binding table
		b.initInput,      // 5. Key handler
		b.initEditor,     // 6. External editor hand-off
		b.initDispatcher, // 7. Command registry
		b.initScript,     // 8. Lua commands
	}
	for _, step := range steps {
		if err := step(); err != nil {
			b.cleanup()
			return err
		}
	}
	b.checkBindings()
	return nil
}

// initConfig loads and validates the configuration.
func (b *bootstrapper) initConfig() error {
	cfg, err := config.Load(config.LoadOptions{
		Path:      b.opts.ConfigPath,
		LookupEnv: b.opts.LookupEnv,
	})
	if err != nil {
		return &SetupError{Component: "config", Err: err}
	}

	if b.opts.LogLevel != "" {
		cfg.Log.Level = b.opts.LogLevel
	}
	if b.opts.LogFile != "" {
		cfg.Log.File = b.opts.LogFile
	}
	if err := cfg.Validate(); err != nil {
		return &SetupError{Component: "config", Err: err}
	}

	b.app.config = cfg
	b.initOrder = append(b.initOrder, "config")
	return nil
}

// initLogger opens the log target.
func (b *bootstrapper) initLogger() error {
	if b.opts.Logger != nil {
		b.app.logger = b.opts.Logger
	} else {
		logger, closer, err := OpenLogger(b.app.config.Log.Level, b.app.config.Log.File)
		if err != nil {
			return &SetupError{Component: "logger", Err: err}
		}
		b.app.logger, b.app.logCloser = logger, closer
	}

	if path := b.app.config.Path; path != "" {
		b.app.logger.Info("config loaded from %s", path)
	}
	b.initOrder = append(b.initOrder, "logger")
	return nil
}

// initDocument reads the initial text.
func (b *bootstrapper) initDocument() error {
	doc, err := LoadDocument(DocumentOptions{
		Path:      b.opts.File,
		Empty:     b.opts.Empty,
		FromStdin: b.opts.FromStdin,
		Stdin:     b.opts.Stdin,
	})
	if err != nil {
		return err
	}
	b.app.document = doc
	b.app.logger.Debug("document %s: %d runes", doc.Name, doc.Buffer.Len())
	b.initOrder = append(b.initOrder, "document")
	return nil
}

// initKeymaps builds the binding table from the defaults, keymap files
// and the config overrides.
func (b *bootstrapper) initKeymaps() error {
	cfg := b.app.config
	r := keymap.NewRegistry()
	if err := keymap.LoadDefaults(r, cfg.KeymapMode()); err != nil {
		return &SetupError{Component: "keymap", Err: err}
	}

	if cfg.Path != "" {
		loader := keymap.NewLoader()
		loader.AddSearchPath(filepath.Join(filepath.Dir(cfg.Path), KeymapDir))
		if err := loader.LoadAndRegister(r); err != nil {
			return &SetupError{Component: "keymap", Err: err}
		}
	}

	if err := cfg.ApplyKeymap(r); err != nil {
		return &SetupError{Component: "keymap", Err: err}
	}
	for _, o := range cfg.Bind {
		b.app.logger.Debug("bind %s in %s to %s", o.Keys, scopeName(o.Scope), o.Command)
	}
	for _, u := range cfg.Unbind {
		b.app.logger.Debug("unbind %s in %s", u.Keys, scopeName(u.Scope))
	}

	b.app.keymaps = r
	b.initOrder = append(b.initOrder, "keymaps")
	return nil
}

// initInput creates the key handler.
func (b *bootstrapper) initInput() error {
	cfg := input.DefaultConfig()
	cfg.EditingMode = b.app.config.KeymapMode()
	b.app.input = input.NewHandler(cfg, b.app.keymaps)
	b.initOrder = append(b.initOrder, "input")
	return nil
}

// initEditor creates the external editor hand-off.
func (b *bootstrapper) initEditor() error {
	cfg := b.app.config.Editor
	logger := b.app.logger.WithComponent("handoff")

	device := b.opts.EditorDevice
	if device == "" {
		device = terminal.DevicePath
	}

	b.app.editor = handoff.New(
		handoff.Config{
			Program: cfg.Program,
			TempDir: cfg.TempDir,
			Device:  device,
		},
		handoff.WithTerminal(&sessionTerminal{app: b.app}),
		handoff.WithLogger(logger),
		handoff.WithTransitionHook(func(from, to handoff.State) {
			logger.Debug("%s -> %s", from, to)
		}),
	)
	b.initOrder = append(b.initOrder, "editor")
	return nil
}

// initDispatcher creates the dispatcher and registers the built-in
// commands.
func (b *bootstrapper) initDispatcher() error {
	cfg := dispatcher.DefaultConfig()
	if b.app.logger.Enabled(LogLevelDebug) {
		cfg = cfg.WithMetrics()
	}
	d := dispatcher.New(cfg)
	if err := RegisterHandlers(d); err != nil {
		return &SetupError{Component: "dispatcher", Err: err}
	}

	d.SetEngine(b.app.document.Buffer)
	d.SetModeManager(b.app.input)
	d.SetEditor(timedEditor{app: b.app})

	logger := b.app.logger
	if logger.Enabled(LogLevelDebug) {
		d.RegisterPreHook(dispatcher.PreDispatchFunc(
			func(action *input.Action, _ *execctx.ExecutionContext) bool {
				if action.Explicit {
					logger.Debug("run %s (count %d) from %s", action.Name, action.Count, action.Key)
				} else {
					logger.Debug("run %s from %s", action.Name, action.Key)
				}
				return true
			}))
	}

	metrics := b.app.metrics
	d.RegisterPostHook(dispatcher.PostDispatchFunc(
		func(_ *input.Action, _ *execctx.ExecutionContext, result *handler.Result) {
			metrics.RecordCommand(result.IsError())
		}))

	b.app.dispatcher = d
	b.initOrder = append(b.initOrder, "dispatcher")
	return nil
}

// initScript loads the Lua command script, if configured.
func (b *bootstrapper) initScript() error {
	path := b.app.config.Script.Path
	if path == "" {
		return nil
	}
	path = expandHome(path, b.opts.LookupEnv)

	script, err := lua.Load(path, lua.WithLogger(b.app.logger.WithComponent("lua")))
	if err != nil {
		return &SetupError{Component: "script", Err: err}
	}
	if err := b.app.dispatcher.RegisterGroup(script); err != nil {
		_ = script.Close()
		return &SetupError{Component: "script", Err: err}
	}

	b.app.script = script
	b.app.logger.Info("script %s: %s", path, strings.Join(script.Commands(), ", "))
	b.initOrder = append(b.initOrder, "script")
	return nil
}

// checkBindings logs bindings whose command nothing implements.
func (b *bootstrapper) checkBindings() {
	reg := b.app.dispatcher.Registry()
	for _, scope := range []keymap.Scope{keymap.ScopeGlobal, keymap.ScopeInsert, keymap.ScopeNormal} {
		for _, pb := range b.app.keymaps.Bindings(scope) {
			if !reg.Has(pb.Command) {
				b.app.logger.Warn("%s in %s is bound to unknown command %s", pb.Sequence, scope, pb.Command)
			}
		}
	}
}

// cleanup performs cleanup in reverse initialization order.
// Called when bootstrap fails partway through.
func (b *bootstrapper) cleanup() {
	for i := len(b.initOrder) - 1; i >= 0; i-- {
		b.cleanupComponent(b.initOrder[i])
	}
}

// cleanupComponent cleans up a single component.
func (b *bootstrapper) cleanupComponent(component string) {
	switch component {
	case "script":
		if b.app.script != nil {
			_ = b.app.script.Close()
			b.app.script = nil
		}
	case "logger":
		if b.app.logCloser != nil {
			_ = b.app.logCloser.Close()
			b.app.logCloser = nil
		}
	}
}

func scopeName(s string) string {
	if s == "" {
		return string(keymap.ScopeGlobal)
	}
	return s
}

// expandHome replaces a leading ~/ with $HOME.
func expandHome(path string, lookup func(string) (string, bool)) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	if lookup == nil {
		lookup = os.LookupEnv
	}
	home, ok := lookup("HOME")
	if !ok || home == "" {
		return path
	}
	return filepath.Join(home, path[2:])
}
