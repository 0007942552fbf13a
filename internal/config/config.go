package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/dshills/jot/internal/config/loader"
	"github.com/dshills/jot/internal/input/key"
	"github.com/dshills/jot/internal/input/keymap"
)

// Environment variables read by Load.
const (
	EnvConfig   = "JOT_CONFIG"
	EnvEditor   = "JOT_EDITOR"
	EnvTempDir  = "TMPDIR"
	EnvLogLevel = "JOT_LOG_LEVEL"
)

// Config holds every jot setting.
type Config struct {
	// EditingMode is "emacs" or "vi".
	EditingMode string `toml:"editing_mode"`

	Editor EditorConfig `toml:"editor"`
	Log    LogConfig    `toml:"log"`
	Script ScriptConfig `toml:"script"`

	// Bind and Unbind adjust the default key bindings.
	Bind   []keymap.Override `toml:"bind"`
	Unbind []keymap.Removal  `toml:"unbind"`

	// Path is the file the configuration was read from, empty if none.
	Path string `toml:"-"`
}

// EditorConfig configures the external editor hand-off.
type EditorConfig struct {
	// Program is the editor command line; it may carry arguments.
	Program string `toml:"program"`

	// TempDir holds hand-off temp files.
	TempDir string `toml:"temp_dir"`
}

// LogConfig configures logging.
type LogConfig struct {
	// Level is debug, info, warn or error.
	Level string `toml:"level"`

	// File receives log output. Empty discards logs.
	File string `toml:"file"`
}

// ScriptConfig configures the Lua command script.
type ScriptConfig struct {
	// Path is a Lua file defining extra commands. Empty means none.
	Path string `toml:"path"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		EditingMode: string(keymap.EditingEmacs),
		Editor: EditorConfig{
			Program: "vi",
			TempDir: "/tmp",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// LoadOptions controls where Load looks.
type LoadOptions struct {
	// Path is an explicit config file. A missing explicit file is an error.
	// Empty means $JOT_CONFIG, then DefaultPath.
	Path string

	// FS reads config files. Nil means the OS file system.
	FS loader.FileSystem

	// LookupEnv reads the environment. Nil means os.LookupEnv.
	LookupEnv func(string) (string, bool)
}

// Load builds the configuration from defaults, the config file and the
// environment. It does not validate; call Validate after applying flags.
func Load(opts LoadOptions) (*Config, error) {
	lookup := opts.LookupEnv
	if lookup == nil {
		lookup = os.LookupEnv
	}

	cfg := Default()

	path, explicit := opts.Path, opts.Path != ""
	if !explicit {
		if p, ok := lookup(EnvConfig); ok && p != "" {
			path, explicit = p, true
		} else {
			path = DefaultPath(lookup)
		}
	}

	if path != "" {
		l := loader.NewTOMLLoaderWithFS(opts.FS)
		err := l.DecodeFile(path, cfg)
		switch {
		case err == nil:
			cfg.Path = path
		case errors.Is(err, fs.ErrNotExist) && !explicit:
		case errors.Is(err, fs.ErrNotExist):
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		default:
			return nil, err
		}
	}

	cfg.applyEnv(lookup)
	return cfg, nil
}

// DefaultPath returns $XDG_CONFIG_HOME/jot/config.toml, falling back to
// ~/.config/jot/config.toml. It returns "" when neither can be found.
func DefaultPath(lookup func(string) (string, bool)) string {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	if dir, ok := lookup("XDG_CONFIG_HOME"); ok && dir != "" {
		return filepath.Join(dir, "jot", "config.toml")
	}
	if home, ok := lookup("HOME"); ok && home != "" {
		return filepath.Join(home, ".config", "jot", "config.toml")
	}
	return ""
}

// applyEnv overrides settings from the environment. Empty values are
// ignored.
func (c *Config) applyEnv(lookup func(string) (string, bool)) {
	if v, ok := lookup(EnvEditor); ok && strings.TrimSpace(v) != "" {
		c.Editor.Program = v
	}
	if v, ok := lookup(EnvTempDir); ok && v != "" {
		c.Editor.TempDir = v
	}
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		c.Log.Level = v
	}
}

// Validate checks every setting and the key binding overrides.
func (c *Config) Validate() error {
	var errs []error

	switch keymap.EditingMode(strings.ToLower(c.EditingMode)) {
	case keymap.EditingEmacs, keymap.EditingVi:
	default:
		errs = append(errs, fmt.Errorf("%w: editing_mode %q (want emacs or vi)", ErrValidationFailed, c.EditingMode))
	}

	if strings.TrimSpace(c.Editor.Program) == "" {
		errs = append(errs, fmt.Errorf("%w: editor.program is empty", ErrValidationFailed))
	}
	if c.Editor.TempDir == "" {
		errs = append(errs, fmt.Errorf("%w: editor.temp_dir is empty", ErrValidationFailed))
	}

	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		errs = append(errs, fmt.Errorf("%w: log.level %q", ErrValidationFailed, c.Log.Level))
	}

	for _, b := range c.Bind {
		if _, err := keymap.ParseScope(b.Scope); err != nil {
			errs = append(errs, fmt.Errorf("%w: bind %q: %v", ErrValidationFailed, b.Keys, err))
		}
		if keymap.IsSuppressed(b.Command) {
			errs = append(errs, fmt.Errorf("%w: bind %q: %w", ErrValidationFailed, b.Keys, keymap.ErrSuppressed))
		}
		if _, err := key.ParseSequence(b.Keys); err != nil {
			errs = append(errs, fmt.Errorf("%w: bind: %w", ErrValidationFailed, err))
		}
		if b.Command == "" {
			errs = append(errs, fmt.Errorf("%w: bind %q: command is empty", ErrValidationFailed, b.Keys))
		}
	}
	for _, u := range c.Unbind {
		if _, err := key.ParseSequence(u.Keys); err != nil {
			errs = append(errs, fmt.Errorf("%w: unbind: %w", ErrValidationFailed, err))
		}
		if _, err := keymap.ParseScope(u.Scope); err != nil {
			errs = append(errs, fmt.Errorf("%w: unbind %q: %v", ErrValidationFailed, u.Keys, err))
		}
	}

	return errors.Join(errs...)
}

// KeymapMode returns the editing mode for the keymap.
func (c *Config) KeymapMode() keymap.EditingMode {
	if keymap.EditingMode(strings.ToLower(c.EditingMode)) == keymap.EditingVi {
		return keymap.EditingVi
	}
	return keymap.EditingEmacs
}

// ApplyKeymap applies the Bind and Unbind overrides to a binding table.
func (c *Config) ApplyKeymap(r *keymap.Registry) error {
	return keymap.ApplyOverrides(r, c.Bind, c.Unbind)
}
