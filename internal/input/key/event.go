package key

import (
	"fmt"
	"strings"
	"unicode"
)

// Event represents a single key press.
type Event struct {
	// Key identifies the key pressed.
	Key Key

	// Rune is the character for KeyRune events.
	Rune rune

	// Modifiers contains the active modifier keys.
	Modifiers Modifier
}

// NewRuneEvent creates a key event for a character.
//
// Shift is dropped because it is already part of the character, and
// Control combinations are folded to lower case so "C-X" and "C-x" match.
func NewRuneEvent(r rune, mods Modifier) Event {
	mods = mods.Without(ModShift)
	if mods.HasCtrl() {
		r = unicode.ToLower(r)
	}
	return Event{Key: KeyRune, Rune: r, Modifiers: mods}
}

// NewSpecialEvent creates a key event for a special key.
func NewSpecialEvent(key Key, mods Modifier) Event {
	return Event{Key: key, Modifiers: mods}
}

// IsRune returns true if this is a character key event.
func (e Event) IsRune() bool {
	return e.Key == KeyRune && e.Rune != 0
}

// IsChar returns true if this is an unmodified printable character, the
// kind of key that self-inserts.
func (e Event) IsChar() bool {
	return e.IsRune() && !e.IsModified() && unicode.IsPrint(e.Rune)
}

// IsModified returns true if Control or Alt is pressed.
func (e Event) IsModified() bool {
	return e.Modifiers&(ModCtrl|ModAlt) != 0
}

// Digit returns the decimal value of a digit key and true, or -1 and false.
// Modifiers are ignored so both "5" and "M-5" report 5.
func (e Event) Digit() (int, bool) {
	if e.Key != KeyRune || e.Rune < '0' || e.Rune > '9' {
		return -1, false
	}
	return int(e.Rune - '0'), true
}

// IsEscape returns true if this is the Escape key (with no modifiers).
func (e Event) IsEscape() bool {
	return e.Key == KeyEscape && e.Modifiers == ModNone
}

// Equals returns true if two events represent the same key press.
func (e Event) Equals(other Event) bool {
	return e.Key == other.Key &&
		e.Rune == other.Rune &&
		e.Modifiers == other.Modifiers
}

// String returns the canonical emacs-style spelling, which Parse accepts.
// Examples: "a", "C-x", "M-<", "Enter", "S-Up", "Space".
func (e Event) String() string {
	var sb strings.Builder
	if e.Modifiers.HasCtrl() {
		sb.WriteString("C-")
	}
	if e.Modifiers.HasAlt() {
		sb.WriteString("M-")
	}
	if e.Modifiers.HasShift() && e.Key != KeyRune {
		sb.WriteString("S-")
	}

	switch e.Key {
	case KeyRune:
		if e.Rune == ' ' {
			sb.WriteString("Space")
		} else {
			sb.WriteRune(e.Rune)
		}
	default:
		sb.WriteString(e.Key.String())
	}
	return sb.String()
}

// GoString implements fmt.GoStringer for debugging.
func (e Event) GoString() string {
	return fmt.Sprintf("Event{Key: %s, Rune: %q, Modifiers: %q}",
		e.Key.String(), e.Rune, e.Modifiers.String())
}
