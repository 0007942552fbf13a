package lua

import "errors"

// Errors for Lua state operations.
var (
	// ErrStateClosed is returned when operating on a closed state.
	ErrStateClosed = errors.New("lua state is closed")

	// ErrExecutionTimeout is returned when execution times out.
	ErrExecutionTimeout = errors.New("lua execution timeout")

	// ErrInvalidCommand is returned for a command name a script may not use.
	ErrInvalidCommand = errors.New("invalid command name")

	// ErrNoBuffer is returned when the buffer API is used outside a command.
	ErrNoBuffer = errors.New("no buffer outside a command")
)
