package keymap

import (
	"fmt"

	"github.com/dshills/jot/internal/input/key"
)

// Keymap holds key bindings for one scope.
type Keymap struct {
	// Name is the keymap identifier.
	Name string

	// Scope is the scope these bindings apply to.
	Scope Scope

	// Bindings are the key-to-command mappings.
	Bindings []Binding

	// Source indicates where this keymap was defined.
	// Examples: "default", "config"
	Source string
}

// NewKeymap creates a new global keymap with the given name.
func NewKeymap(name string) *Keymap {
	return &Keymap{
		Name:     name,
		Scope:    ScopeGlobal,
		Bindings: make([]Binding, 0),
	}
}

// ForScope sets the scope for this keymap.
func (k *Keymap) ForScope(scope Scope) *Keymap {
	k.Scope = scope
	return k
}

// WithSource sets the source for this keymap.
func (k *Keymap) WithSource(source string) *Keymap {
	k.Source = source
	return k
}

// Add adds a binding to this keymap.
func (k *Keymap) Add(keys, command string) *Keymap {
	k.Bindings = append(k.Bindings, Binding{
		Keys:    keys,
		Command: command,
	})
	return k
}

// AddBinding adds a fully configured binding to this keymap.
func (k *Keymap) AddBinding(binding Binding) *Keymap {
	k.Bindings = append(k.Bindings, binding)
	return k
}

// Validate checks that all bindings in the keymap are valid.
func (k *Keymap) Validate() error {
	if !k.Scope.IsValid() {
		return fmt.Errorf("keymap %q: %w: %q", k.Name, ErrUnknownScope, k.Scope)
	}
	for i, b := range k.Bindings {
		if err := validateBinding(b); err != nil {
			return fmt.Errorf("binding %d (%s): %w", i, b.Keys, err)
		}
	}
	return nil
}

func validateBinding(b Binding) error {
	if b.Keys == "" {
		return ErrEmptyKeys
	}
	if b.Command == "" {
		return ErrEmptyCommand
	}
	if IsSuppressed(b.Command) {
		return fmt.Errorf("%w: %s", ErrSuppressed, b.Command)
	}
	if _, err := key.ParseSequence(b.Keys); err != nil {
		return err
	}
	return nil
}

// ParsedKeymap is a keymap with pre-parsed key sequences.
type ParsedKeymap struct {
	*Keymap
	ParsedBindings []ParsedBinding
}

// Parse validates and parses all bindings in the keymap.
func (k *Keymap) Parse() (*ParsedKeymap, error) {
	if err := k.Validate(); err != nil {
		return nil, err
	}

	parsed := &ParsedKeymap{
		Keymap:         k,
		ParsedBindings: make([]ParsedBinding, 0, len(k.Bindings)),
	}

	for _, b := range k.Bindings {
		seq, err := key.ParseSequence(b.Keys)
		if err != nil {
			return nil, fmt.Errorf("parsing %q: %w", b.Keys, err)
		}
		parsed.ParsedBindings = append(parsed.ParsedBindings, ParsedBinding{
			Binding:  b,
			Sequence: seq,
			Scope:    k.Scope,
		})
	}

	return parsed, nil
}

// Clone creates a deep copy of the keymap.
func (k *Keymap) Clone() *Keymap {
	clone := &Keymap{
		Name:     k.Name,
		Scope:    k.Scope,
		Source:   k.Source,
		Bindings: make([]Binding, len(k.Bindings)),
	}
	copy(clone.Bindings, k.Bindings)
	return clone
}
