package keymap

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/pelletier/go-toml/v2"
)

// Override binds keys to a command in a scope. Scope names are parsed with
// ParseScope, so an empty scope means global.
type Override struct {
	Keys    string `toml:"keys"`
	Command string `toml:"command"`
	Scope   string `toml:"scope"`
}

// Removal removes the binding for keys in a scope.
type Removal struct {
	Keys  string `toml:"keys"`
	Scope string `toml:"scope"`
}

// ApplyOverrides applies removals first, then bindings, so a configuration
// can move a key to a different command. It stops at the first error.
func ApplyOverrides(r *Registry, binds []Override, unbinds []Removal) error {
	for _, u := range unbinds {
		scope, err := ParseScope(u.Scope)
		if err != nil {
			return fmt.Errorf("unbind %q: %w", u.Keys, err)
		}
		if err := r.Unbind(scope, u.Keys); err != nil && !errors.Is(err, ErrBindingNotFound) {
			return err
		}
	}

	for _, b := range binds {
		scope, err := ParseScope(b.Scope)
		if err != nil {
			return fmt.Errorf("bind %q: %w", b.Keys, err)
		}
		if err := r.Bind(scope, b.Keys, b.Command); err != nil {
			return err
		}
	}
	return nil
}

// Loader loads keymaps from TOML files.
type Loader struct {
	// searchPaths are directories to search for keymap files.
	searchPaths []string
}

// NewLoader creates a new keymap loader.
func NewLoader() *Loader {
	return &Loader{
		searchPaths: make([]string, 0),
	}
}

// AddSearchPath adds a directory to search for keymap files.
func (l *Loader) AddSearchPath(path string) {
	l.searchPaths = append(l.searchPaths, path)
}

// LoadFile loads a keymap from a TOML file.
func (l *Loader) LoadFile(path string) (*Keymap, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening keymap file: %w", err)
	}
	defer f.Close()

	km, err := l.LoadReader(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if km.Name == "" {
		km.Name = filepath.Base(path)
	}
	return km, nil
}

// LoadReader loads a keymap from a reader.
func (l *Loader) LoadReader(r io.Reader) (*Keymap, error) {
	var config keymapConfig
	if err := toml.NewDecoder(r).DisallowUnknownFields().Decode(&config); err != nil {
		return nil, fmt.Errorf("decoding keymap: %w", err)
	}

	scope, err := ParseScope(config.Scope)
	if err != nil {
		return nil, err
	}

	km := &Keymap{
		Name:     config.Name,
		Scope:    scope,
		Source:   "file",
		Bindings: make([]Binding, 0, len(config.Bindings)),
	}
	for _, bc := range config.Bindings {
		km.Bindings = append(km.Bindings, Binding(bc))
	}
	return km, nil
}

// LoadAll loads all *.toml keymaps from the search paths in name order.
// A missing directory is skipped; a malformed file is an error.
func (l *Loader) LoadAll() ([]*Keymap, error) {
	keymaps := make([]*Keymap, 0)

	for _, dir := range l.searchPaths {
		matches, err := filepath.Glob(filepath.Join(dir, "*.toml"))
		if err != nil {
			return nil, fmt.Errorf("searching %s: %w", dir, err)
		}
		sort.Strings(matches)

		for _, path := range matches {
			km, err := l.LoadFile(path)
			if err != nil {
				return nil, err
			}
			keymaps = append(keymaps, km)
		}
	}

	return keymaps, nil
}

// LoadAndRegister loads all keymaps and registers them.
func (l *Loader) LoadAndRegister(registry *Registry) error {
	keymaps, err := l.LoadAll()
	if err != nil {
		return err
	}

	for _, km := range keymaps {
		if err := registry.Register(km); err != nil {
			return fmt.Errorf("registering keymap %q: %w", km.Name, err)
		}
	}

	return nil
}

// keymapConfig is the TOML structure for keymap files.
type keymapConfig struct {
	Name     string          `toml:"name"`
	Scope    string          `toml:"scope"`
	Bindings []bindingConfig `toml:"bindings"`
}

type bindingConfig struct {
	Keys        string `toml:"keys"`
	Command     string `toml:"command"`
	Description string `toml:"description"`
	Category    string `toml:"category"`
}

// MarshalTOML converts a keymap to TOML.
func (k *Keymap) MarshalTOML() ([]byte, error) {
	config := keymapConfig{
		Name:     k.Name,
		Scope:    k.Scope.String(),
		Bindings: make([]bindingConfig, 0, len(k.Bindings)),
	}
	for _, b := range k.Bindings {
		config.Bindings = append(config.Bindings, bindingConfig(b))
	}
	return toml.Marshal(config)
}
