package input

import "github.com/dshills/jot/internal/input/key"

// ActionSource indicates the origin of an action.
type ActionSource uint8

const (
	// SourceKeyboard indicates the action originated from keyboard input.
	SourceKeyboard ActionSource = iota
	// SourceScript indicates the action originated from a user script.
	SourceScript
	// SourceAPI indicates the action originated from an API call.
	SourceAPI
)

// String returns a string representation of the action source.
func (s ActionSource) String() string {
	switch s {
	case SourceKeyboard:
		return "keyboard"
	case SourceScript:
		return "script"
	case SourceAPI:
		return "api"
	default:
		return "unknown"
	}
}

// Action represents a command to be executed by the dispatcher.
type Action struct {
	// Name is the registered command name (e.g., "kill-line", "goto-line").
	Name string

	// Source indicates where this action originated.
	Source ActionSource

	// Count is the repeat count, 1 if none was typed.
	Count int

	// Explicit is true when the count was typed by the user.
	Explicit bool

	// Key is the last key of the sequence that produced the action.
	Key key.Event

	// Text is the text the key inserts, for self-insert.
	Text string
}

// NewAction creates an action with a count of 1.
func NewAction(name string) Action {
	return Action{Name: name, Count: 1}
}

// WithCount returns a copy of the action with an explicit count.
func (a Action) WithCount(count int) Action {
	a.Count = count
	a.Explicit = true
	return a
}

// WithText returns a copy of the action with insert text.
func (a Action) WithText(text string) Action {
	a.Text = text
	return a
}

// GetCount returns the repeat count, defaulting to 1.
func (a Action) GetCount() int {
	if a.Count <= 0 {
		return 1
	}
	return a.Count
}

// insertText returns the text a key inserts when it self-inserts.
func insertText(ev key.Event) string {
	switch {
	case ev.Key == key.KeyTab:
		return "\t"
	case ev.Key == key.KeyEnter:
		return "\n"
	case ev.IsRune() && !ev.IsModified():
		return string(ev.Rune)
	}
	return ""
}
