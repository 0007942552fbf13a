package dispatcher

import (
	"fmt"
	"sort"
	"sync"

	"github.com/dshills/jot/internal/dispatcher/handler"
	"github.com/dshills/jot/internal/input/keymap"
)

// Registry maps command names to handlers.
type Registry struct {
	mu       sync.RWMutex
	handlers map[string]handler.Handler
}

// NewRegistry creates a new command registry.
func NewRegistry() *Registry {
	return &Registry{
		handlers: make(map[string]handler.Handler),
	}
}

// Register adds a handler under a command name.
// Suppressed names and names already taken are refused.
func (r *Registry) Register(name string, h handler.Handler) error {
	if name == "" || h == nil {
		return ErrInvalidAction
	}
	if keymap.IsSuppressed(name) {
		return fmt.Errorf("register %q: %w", name, keymap.ErrSuppressed)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.handlers[name]; ok {
		return fmt.Errorf("register %q: %w", name, ErrDuplicateCommand)
	}
	r.handlers[name] = h
	return nil
}

// RegisterGroup registers every command of a group. Registration stops at
// the first refused name.
func (r *Registry) RegisterGroup(g handler.Group) error {
	for _, name := range g.Commands() {
		if err := r.Register(name, g); err != nil {
			return fmt.Errorf("group %s: %w", g.Name(), err)
		}
	}
	return nil
}

// Unregister removes the handler for a command name.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.handlers, name)
}

// Get returns the handler for a command, or nil if none is registered.
func (r *Registry) Get(name string) handler.Handler {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.handlers[name]
}

// Has returns true if a handler is registered for the command.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.handlers[name]
	return ok
}

// List returns all registered command names, sorted.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.handlers))
	for name := range r.handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Count returns the number of registered commands.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.handlers)
}
