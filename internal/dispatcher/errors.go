package dispatcher

import "errors"

// Dispatcher errors.
var (
	// ErrNoHandler indicates no command is registered under a name.
	ErrNoHandler = errors.New("dispatcher: no handler for command")

	// ErrDuplicateCommand indicates a command name is already registered.
	ErrDuplicateCommand = errors.New("dispatcher: command already registered")

	// ErrActionCancelled indicates the action was cancelled by a hook.
	ErrActionCancelled = errors.New("dispatcher: action cancelled by hook")

	// ErrPanic indicates the handler panicked.
	ErrPanic = errors.New("dispatcher: handler panic")

	// ErrInvalidAction indicates the action or command name is empty.
	ErrInvalidAction = errors.New("dispatcher: invalid action")
)
