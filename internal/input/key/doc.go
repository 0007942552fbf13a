// Package key provides key event types and parsing for the input system.
//
// This package defines the fundamental types for representing keyboard input:
//
//   - Key: Identifies a keyboard key (special keys or runes)
//   - Modifier: Represents modifier keys (Ctrl, Alt/Meta, Shift)
//   - Event: A single key press with modifiers
//   - Sequence: A series of key events forming a command
//
// # Key Specifications
//
// Key specifications can be written in multiple formats:
//
//   - Simple keys: "a", "G", "$", "Enter", "Esc"
//   - Emacs style: "C-a", "M-<", "C-M-f"
//   - Readline style: "\C-a", "\M->", "\e"
//   - Vim style: "<C-a>", "<CR>", "<Esc>"
//   - Readable: "Ctrl+A", "Alt+<"
//
// # Key Sequences
//
// Multi-key sequences like "g g" or "C-x C-e" are represented as Sequence
// values. FromTcell converts terminal events into Events for matching.
package key
