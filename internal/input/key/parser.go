package key

import (
	"errors"
	"fmt"
	"strings"
)

// Parse errors
var (
	ErrEmptySpec   = errors.New("empty key specification")
	ErrInvalidSpec = errors.New("invalid key specification")
)

// Parse parses a single key specification into an Event.
//
// Supported formats:
//   - Single character: "a", "G", "$", "^"
//   - Key names: "Enter", "Esc", "Tab", "Backspace", "Space", "Up", "Home"
//   - Emacs style: "C-a", "M-<", "C-M-f", "S-Up"
//   - Readline style: "\C-a", "\M-<", "\e"
//   - Vim style: "<C-a>", "<CR>", "<Esc>"
//   - Readable: "Ctrl+A", "Alt+<"
func Parse(spec string) (Event, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return Event{}, ErrEmptySpec
	}

	// Vim-style <...>
	if len(spec) > 2 && strings.HasPrefix(spec, "<") && strings.HasSuffix(spec, ">") {
		return parsePrefixed(spec[1 : len(spec)-1])
	}

	// Readline escapes
	if strings.HasPrefix(spec, `\`) && len(spec) > 1 {
		return parseEscape(spec)
	}

	// Ctrl+X style; a lone "+" is a character.
	if len(spec) > 1 && strings.Contains(spec[1:], "+") {
		return parsePlus(spec)
	}

	if hasModifierPrefix(spec) {
		return parsePrefixed(spec)
	}

	return parseKeyWithModifiers(spec, ModNone)
}

// hasModifierPrefix reports whether spec starts with "C-", "M-", "A-" or "S-"
// followed by at least one further character.
func hasModifierPrefix(spec string) bool {
	if len(spec) < 3 || spec[1] != '-' {
		return false
	}
	switch spec[0] {
	case 'C', 'c', 'M', 'm', 'A', 'a', 'S', 's':
		return true
	}
	return false
}

// parsePrefixed parses emacs/vim notation like "C-x", "M-<", "C-M-f", "CR".
func parsePrefixed(spec string) (Event, error) {
	var mods Modifier
	for hasModifierPrefix(spec) {
		mods = mods.With(ModifierFromName(spec[:1]))
		spec = spec[2:]
	}
	return parseKeyWithModifiers(spec, mods)
}

// parsePlus parses "Ctrl+S" style notation.
func parsePlus(spec string) (Event, error) {
	// A trailing "++" means the key itself is '+'.
	keyPart := spec[strings.LastIndex(spec[:len(spec)-1], "+")+1:]
	modPart := strings.TrimSuffix(spec[:len(spec)-len(keyPart)], "+")

	var mods Modifier
	for _, p := range strings.Split(modPart, "+") {
		mod := ModifierFromName(p)
		if mod == ModNone {
			return Event{}, fmt.Errorf("%w: unknown modifier %q", ErrInvalidSpec, p)
		}
		mods = mods.With(mod)
	}
	return parseKeyWithModifiers(keyPart, mods)
}

// parseEscape parses one readline escape such as "\C-x", "\M-<" or "\e".
func parseEscape(spec string) (Event, error) {
	ev, n, err := scanEscape(spec)
	if err != nil {
		return Event{}, err
	}
	if n != len(spec) {
		return Event{}, fmt.Errorf("%w: trailing text in %q", ErrInvalidSpec, spec)
	}
	return ev, nil
}

// scanEscape reads one readline escape from the front of s and returns the
// event and the number of bytes consumed.
func scanEscape(s string) (Event, int, error) {
	if len(s) < 2 || s[0] != '\\' {
		return Event{}, 0, fmt.Errorf("%w: %q", ErrInvalidSpec, s)
	}

	var mods Modifier
	i := 1
	for i+1 < len(s) && s[i+1] == '-' && (s[i] == 'C' || s[i] == 'M') {
		if s[i] == 'C' {
			mods = mods.With(ModCtrl)
		} else {
			mods = mods.With(ModAlt)
		}
		i += 2
		if i < len(s) && s[i] == '\\' && i+1 < len(s) && (s[i+1] == 'C' || s[i+1] == 'M') {
			i++
		}
	}
	if i >= len(s) {
		return Event{}, 0, fmt.Errorf("%w: incomplete escape %q", ErrInvalidSpec, s)
	}

	if mods == ModNone {
		switch s[i] {
		case 'e':
			return NewSpecialEvent(KeyEscape, ModNone), i + 1, nil
		case 'r', 'n':
			return NewSpecialEvent(KeyEnter, ModNone), i + 1, nil
		case 't':
			return NewSpecialEvent(KeyTab, ModNone), i + 1, nil
		}
	}

	r := []rune(s[i:])[0]
	ev, err := parseKeyWithModifiers(string(r), mods)
	return ev, i + len(string(r)), err
}

// parseKeyWithModifiers parses a key part with already-known modifiers.
func parseKeyWithModifiers(keyPart string, mods Modifier) (Event, error) {
	if keyPart == "" {
		return Event{}, fmt.Errorf("%w: missing key", ErrInvalidSpec)
	}

	runes := []rune(keyPart)
	if len(runes) == 1 {
		return NewRuneEvent(runes[0], mods), nil
	}

	switch strings.ToLower(keyPart) {
	case "space", "spc":
		return NewRuneEvent(' ', mods), nil
	case "lt":
		return NewRuneEvent('<', mods), nil
	case "gt":
		return NewRuneEvent('>', mods), nil
	case "bslash":
		return NewRuneEvent('\\', mods), nil
	}

	if k := KeyFromName(keyPart); k != KeyNone {
		return NewSpecialEvent(k, mods), nil
	}

	return Event{}, fmt.Errorf("%w: unknown key %q", ErrInvalidSpec, keyPart)
}

// MustParse parses a key specification and panics on error.
// Use only for known-valid specs in initialization code.
func MustParse(spec string) Event {
	event, err := Parse(spec)
	if err != nil {
		panic("invalid key specification: " + spec + ": " + err.Error())
	}
	return event
}
