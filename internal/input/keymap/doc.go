// Package keymap provides key binding management for jot.
//
// The keymap system maps key sequences to command names. It is pure data:
// commands are looked up by name in the dispatcher's registry at execution
// time, so a binding may name a command registered later (for example by a
// user script).
//
// # Key Concepts
//
// Scope: the input scope a binding applies to. Global bindings apply in
// every scope; insert and normal bindings apply only while that scope is
// active.
//
// Keymap: A named collection of bindings for one scope.
//
// Registry: The binding table with prefix lookup and the suppression list.
//
// # Binding Precedence
//
// When a sequence is bound in both the active scope and the global scope,
// the scope-specific binding wins. Binding a sequence again in the same
// scope replaces the earlier binding.
//
// # Suppressed Commands
//
// Completion, history-search and incremental-search commands are suppressed
// in every scope. The registry refuses to bind them.
//
// # Usage
//
//	registry := keymap.NewRegistry()
//	if err := keymap.LoadDefaults(registry); err != nil {
//	    return err
//	}
//
//	seq := key.MustParseSequence("C-x C-e")
//	switch m := registry.Resolve(seq, keymap.ScopeInsert); m.Kind {
//	case keymap.MatchExact:
//	    // execute m.Binding.Command
//	case keymap.MatchPrefix:
//	    // wait for more keys
//	}
package keymap
