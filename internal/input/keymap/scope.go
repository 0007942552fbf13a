package keymap

import (
	"fmt"
	"strings"
)

// Scope identifies which bindings are active.
type Scope string

const (
	// ScopeGlobal bindings apply in every scope.
	ScopeGlobal Scope = "global"

	// ScopeInsert is the text-entry scope. Emacs editing mode stays here.
	ScopeInsert Scope = "insert"

	// ScopeNormal is the vi movement scope.
	ScopeNormal Scope = "normal"
)

// String returns the scope name.
func (s Scope) String() string {
	return string(s)
}

// IsValid returns true for the three known scopes.
func (s Scope) IsValid() bool {
	switch s {
	case ScopeGlobal, ScopeInsert, ScopeNormal:
		return true
	}
	return false
}

// ParseScope parses a scope name. Empty means global; "emacs" is accepted
// as an alias for insert and "vi"/"command" for normal.
func ParseScope(name string) (Scope, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "global", "all":
		return ScopeGlobal, nil
	case "insert", "emacs":
		return ScopeInsert, nil
	case "normal", "vi", "command", "movement":
		return ScopeNormal, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownScope, name)
}
