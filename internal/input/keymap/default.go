package keymap

// EditingMode selects the default key layout.
type EditingMode string

const (
	// EditingEmacs keeps the session in insert scope.
	EditingEmacs EditingMode = "emacs"

	// EditingVi adds the vi movement scope, entered with Esc.
	EditingVi EditingMode = "vi"
)

// LoadDefaults loads the default keymaps for an editing mode into the registry.
func LoadDefaults(r *Registry, mode EditingMode) error {
	keymaps := []*Keymap{
		DefaultGlobalKeymap(),
		DefaultInsertKeymap(),
		DefaultNormalKeymap(),
	}
	if mode == EditingVi {
		keymaps = append(keymaps, DefaultViInsertKeymap())
	}

	for _, km := range keymaps {
		if err := r.Register(km); err != nil {
			return err
		}
	}
	return nil
}

// DefaultGlobalKeymap returns bindings active in every scope.
func DefaultGlobalKeymap() *Keymap {
	return &Keymap{
		Name:   "default-global",
		Scope:  ScopeGlobal,
		Source: "default",
		Bindings: []Binding{
			{Keys: "C-n", Command: "accept-line", Description: "Finish editing", Category: "Session"},
			{Keys: "C-d", Command: "accept-or-delete", Description: "Finish at end, else delete character", Category: "Session"},
			{Keys: "C-c", Command: "interrupt", Description: "Abandon the session", Category: "Session"},
			{Keys: "Up", Command: "move-up", Description: "Move to previous line", Category: "Movement"},
			{Keys: "Down", Command: "move-down", Description: "Move to next line", Category: "Movement"},
		},
	}
}

// DefaultInsertKeymap returns text-entry bindings. Emacs editing mode uses
// these exclusively.
func DefaultInsertKeymap() *Keymap {
	return &Keymap{
		Name:   "default-insert",
		Scope:  ScopeInsert,
		Source: "default",
		Bindings: []Binding{
			// Editing
			{Keys: "Enter", Command: "insert-newline", Description: "Insert newline", Category: "Editing"},
			{Keys: "Tab", Command: "self-insert", Description: "Insert tab", Category: "Editing"},
			{Keys: "Backspace", Command: "backward-delete-char", Description: "Delete previous character", Category: "Editing"},
			{Keys: "Delete", Command: "delete-char", Description: "Delete character", Category: "Editing"},
			{Keys: "C-y", Command: "yank", Description: "Insert last kill", Category: "Editing"},

			// Kill
			{Keys: "C-k", Command: "kill-line", Description: "Kill to end of line", Category: "Kill"},
			{Keys: "C-u", Command: "kill-backward-line", Description: "Kill to start of line", Category: "Kill"},

			// Movement - line
			{Keys: "C-a", Command: "beginning-of-line", Description: "Move to line start", Category: "Movement"},
			{Keys: "Home", Command: "beginning-of-line", Description: "Move to line start", Category: "Movement"},
			{Keys: "C-e", Command: "end-of-line", Description: "Move to line end", Category: "Movement"},
			{Keys: "End", Command: "end-of-line", Description: "Move to line end", Category: "Movement"},
			{Keys: "C-b", Command: "backward-char", Description: "Move left", Category: "Movement"},
			{Keys: "Left", Command: "backward-char", Description: "Move left", Category: "Movement"},
			{Keys: "C-f", Command: "forward-char", Description: "Move right", Category: "Movement"},
			{Keys: "Right", Command: "forward-char", Description: "Move right", Category: "Movement"},

			// Movement - buffer
			{Keys: "M-<", Command: "beginning-of-buffer", Description: "Move to buffer start", Category: "Movement"},
			{Keys: "M->", Command: "end-of-buffer", Description: "Move to buffer end", Category: "Movement"},

			// External editor
			{Keys: "C-x C-e", Command: "external-editor", Description: "Edit in external editor", Category: "Session"},
		},
	}
}

// DefaultViInsertKeymap returns the insert-scope bindings added in vi
// editing mode.
func DefaultViInsertKeymap() *Keymap {
	return &Keymap{
		Name:   "default-vi-insert",
		Scope:  ScopeInsert,
		Source: "default",
		Bindings: []Binding{
			{Keys: "Esc", Command: "vi-movement-mode", Description: "Enter normal scope", Category: "Mode"},
		},
	}
}

// DefaultNormalKeymap returns vi movement bindings.
func DefaultNormalKeymap() *Keymap {
	return &Keymap{
		Name:   "default-normal",
		Scope:  ScopeNormal,
		Source: "default",
		Bindings: []Binding{
			// Movement - basic
			{Keys: "h", Command: "backward-char", Description: "Move left", Category: "Movement"},
			{Keys: "j", Command: "move-down", Description: "Move down", Category: "Movement"},
			{Keys: "k", Command: "move-up", Description: "Move up", Category: "Movement"},
			{Keys: "l", Command: "forward-char", Description: "Move right", Category: "Movement"},

			// Movement - line
			{Keys: "0", Command: "beginning-of-line", Description: "Move to line start", Category: "Movement"},
			{Keys: "^", Command: "beginning-of-line", Description: "Move to line start", Category: "Movement"},
			{Keys: "$", Command: "end-of-line", Description: "Move to line end", Category: "Movement"},
			{Keys: "Enter", Command: "first-nonblank-next-line", Description: "Move to first non-blank of next line", Category: "Movement"},

			// Movement - buffer
			{Keys: "G", Command: "goto-line", Description: "Go to line (default last)", Category: "Movement"},
			{Keys: "g g", Command: "goto-first-line", Description: "Go to line (default first)", Category: "Movement"},

			// Editing
			{Keys: "x", Command: "delete-char", Description: "Delete character", Category: "Editing"},
			{Keys: "d d", Command: "vi-delete-lines", Description: "Delete lines", Category: "Editing"},
			{Keys: "D", Command: "vi-delete-to-end-of-line", Description: "Delete to end of line", Category: "Editing"},
			{Keys: "J", Command: "vi-join-lines", Description: "Join lines", Category: "Editing"},
			{Keys: "o", Command: "vi-insert-line-below", Description: "Open line below", Category: "Editing"},
			{Keys: "O", Command: "vi-insert-line-above", Description: "Open line above", Category: "Editing"},

			// Mode switching
			{Keys: "i", Command: "vi-insertion-mode", Description: "Insert before cursor", Category: "Mode"},
			{Keys: "a", Command: "vi-append-mode", Description: "Insert after cursor", Category: "Mode"},
			{Keys: "I", Command: "vi-insert-beginning", Description: "Insert at line start", Category: "Mode"},
			{Keys: "A", Command: "vi-append-eol", Description: "Insert at line end", Category: "Mode"},

			// External editor
			{Keys: "v", Command: "external-editor", Description: "Edit in external editor", Category: "Session"},
		},
	}
}
