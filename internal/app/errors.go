package app

import (
	"errors"
	"fmt"
	"syscall"
)

// Application errors.
var (
	// ErrAlreadyRunning indicates the application is already running.
	ErrAlreadyRunning = errors.New("application already running")

	// ErrNoBackend indicates Run was called without a display backend.
	ErrNoBackend = errors.New("no display backend")

	// ErrNoInput indicates -p was given without a readable input stream.
	ErrNoInput = errors.New("no input stream")
)

// SetupError reports a failure before the interactive session starts.
type SetupError struct {
	Component string // Component name (e.g., "config", "terminal", "script")
	Err       error  // Underlying error
}

func (e *SetupError) Error() string {
	if e == nil {
		return ""
	}
	if e.Err == nil {
		return "setup " + e.Component
	}
	return fmt.Sprintf("setup %s: %v", e.Component, e.Err)
}

func (e *SetupError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// FileError reports a failed read or write of the target document.
type FileError struct {
	Op   string // "read" or "write"
	Path string // Empty for stdin/stdout
	Err  error
}

func (e *FileError) Error() string {
	if e == nil {
		return ""
	}
	target := e.Path
	if target == "" {
		target = "standard stream"
	}
	if e.Err == nil {
		return e.Op + " " + target
	}
	return e.Op + " " + target + ": " + e.Err.Error()
}

func (e *FileError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// SignalError reports a session ended by a termination signal. The caller
// should re-raise Signal once the terminal is restored.
type SignalError struct {
	Signal syscall.Signal
}

func (e *SignalError) Error() string {
	return "terminated by " + e.Signal.String()
}
