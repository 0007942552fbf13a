package key

import (
	"fmt"
	"strings"
)

// Sequence represents a series of key events forming a command.
// Examples: "g g" (first line), "d d" (delete line), "C-x C-e" (external editor)
type Sequence struct {
	// Events contains the key events in order.
	Events []Event
}

// NewSequence creates an empty key sequence.
func NewSequence() *Sequence {
	return &Sequence{
		Events: make([]Event, 0, 4),
	}
}

// NewSequenceFrom creates a sequence from the given events.
func NewSequenceFrom(events ...Event) *Sequence {
	return &Sequence{
		Events: events,
	}
}

// Len returns the number of events in the sequence.
func (s *Sequence) Len() int {
	return len(s.Events)
}

// IsEmpty returns true if the sequence has no events.
func (s *Sequence) IsEmpty() bool {
	return len(s.Events) == 0
}

// Add appends an event to the sequence.
func (s *Sequence) Add(event Event) {
	s.Events = append(s.Events, event)
}

// Clear removes all events from the sequence.
func (s *Sequence) Clear() {
	s.Events = s.Events[:0]
}

// First returns the first event, or nil if empty.
func (s *Sequence) First() *Event {
	if len(s.Events) == 0 {
		return nil
	}
	return &s.Events[0]
}

// String returns the canonical space-separated spelling, which
// ParseSequence accepts. Examples: "g g", "C-x C-e".
func (s *Sequence) String() string {
	if s == nil || len(s.Events) == 0 {
		return ""
	}

	parts := make([]string, len(s.Events))
	for i, e := range s.Events {
		parts[i] = e.String()
	}
	return strings.Join(parts, " ")
}

// Equals returns true if two sequences are identical.
func (s *Sequence) Equals(other *Sequence) bool {
	if s == nil || other == nil {
		return s == other
	}
	if len(s.Events) != len(other.Events) {
		return false
	}
	for i, e := range s.Events {
		if !e.Equals(other.Events[i]) {
			return false
		}
	}
	return true
}

// HasPrefix returns true if this sequence starts with the given prefix.
func (s *Sequence) HasPrefix(prefix *Sequence) bool {
	if prefix == nil || prefix.IsEmpty() {
		return true
	}
	if len(prefix.Events) > len(s.Events) {
		return false
	}
	for i, e := range prefix.Events {
		if !e.Equals(s.Events[i]) {
			return false
		}
	}
	return true
}

// Clone returns a copy of the sequence.
func (s *Sequence) Clone() *Sequence {
	if s == nil {
		return nil
	}
	events := make([]Event, len(s.Events))
	copy(events, s.Events)
	return &Sequence{Events: events}
}

// ParseSequence parses a key sequence specification.
//
// Space-separated fields are parsed one event each: "C-x C-e", "g g", "d d".
// Without spaces the whole string is tried as a single key first, then
// scanned event by event, so "gg", "C-xC-e", "<C-x><C-e>" and "\C-x\C-e"
// also work.
func ParseSequence(spec string) (*Sequence, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return nil, ErrEmptySpec
	}

	if fields := strings.Fields(spec); len(fields) > 1 {
		seq := NewSequence()
		for _, f := range fields {
			ev, err := Parse(f)
			if err != nil {
				return nil, fmt.Errorf("parse %q: %w", spec, err)
			}
			seq.Add(ev)
		}
		return seq, nil
	}

	ev, err := Parse(spec)
	if err == nil {
		return NewSequenceFrom(ev), nil
	}
	if strings.Contains(spec, "+") || looksLikeKeyName(spec) {
		return nil, fmt.Errorf("parse %q: %w", spec, err)
	}

	seq := NewSequence()
	for rest := spec; rest != ""; {
		ev, n, err := scanEvent(rest)
		if err != nil {
			return nil, fmt.Errorf("parse %q: %w", spec, err)
		}
		seq.Add(ev)
		rest = rest[n:]
	}
	return seq, nil
}

// looksLikeKeyName reports whether s is a word of three or more ASCII
// letters, which is far more likely a misspelt key name than a sequence.
func looksLikeKeyName(s string) bool {
	if len(s) < 3 {
		return false
	}
	for _, c := range s {
		if (c < 'a' || c > 'z') && (c < 'A' || c > 'Z') {
			return false
		}
	}
	return true
}

// scanEvent reads one event from the front of s for compact sequences.
func scanEvent(s string) (Event, int, error) {
	switch {
	case s[0] == '<':
		end := strings.IndexByte(s, '>')
		if end < 2 {
			return Event{}, 0, fmt.Errorf("%w: unterminated %q", ErrInvalidSpec, s)
		}
		ev, err := parsePrefixed(s[1:end])
		return ev, end + 1, err

	case s[0] == '\\' && len(s) > 1:
		return scanEscape(s)

	case hasModifierPrefix(s):
		var mods Modifier
		i := 0
		for hasModifierPrefix(s[i:]) {
			mods = mods.With(ModifierFromName(s[i : i+1]))
			i += 2
		}
		r := []rune(s[i:])[0]
		return NewRuneEvent(r, mods), i + len(string(r)), nil
	}

	r := []rune(s)[0]
	return NewRuneEvent(r, ModNone), len(string(r)), nil
}

// MustParseSequence parses a key sequence and panics on error.
// Use only for known-valid specs in initialization code.
func MustParseSequence(spec string) *Sequence {
	seq, err := ParseSequence(spec)
	if err != nil {
		panic("invalid key sequence: " + spec + ": " + err.Error())
	}
	return seq
}
