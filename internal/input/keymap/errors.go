package keymap

import "errors"

// Keymap errors
var (
	ErrNilKeymap       = errors.New("nil keymap")
	ErrEmptyKeys       = errors.New("empty key sequence")
	ErrEmptyCommand    = errors.New("empty command name")
	ErrUnknownScope    = errors.New("unknown scope")
	ErrSuppressed      = errors.New("command is suppressed")
	ErrBindingNotFound = errors.New("binding not found")
)
