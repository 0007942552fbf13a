package handler

import (
	"fmt"

	"github.com/dshills/jot/internal/input/keymap"
)

// ResultStatus indicates the outcome of a command.
type ResultStatus uint8

const (
	// StatusOK indicates successful execution.
	StatusOK ResultStatus = iota
	// StatusNoOp indicates the command had no effect.
	StatusNoOp
	// StatusError indicates a recoverable error; the session continues.
	StatusError
	// StatusFatal indicates an error that ends the session.
	StatusFatal
)

// String returns a string representation of the status.
func (s ResultStatus) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusNoOp:
		return "no-op"
	case StatusError:
		return "error"
	case StatusFatal:
		return "fatal"
	default:
		return "unknown"
	}
}

// Result represents the outcome of handling a command.
type Result struct {
	// Status indicates the result status.
	Status ResultStatus

	// Error contains any error that occurred.
	Error error

	// Message is an optional status message for logs.
	Message string

	// ModeChange is the scope to switch to (empty if no change).
	ModeChange keymap.Scope

	// Redraw requests a redisplay of the buffer.
	Redraw bool

	// Bell requests an audible bell.
	Bell bool

	// Accept ends the session normally.
	Accept bool

	// Interrupt ends the session as an interrupt from the keyboard would.
	Interrupt bool

	// Data holds handler-specific return data.
	Data map[string]interface{}
}

// IsOK returns true if the result indicates success.
func (r Result) IsOK() bool {
	return r.Status == StatusOK
}

// IsError returns true if the result carries a recoverable or fatal error.
func (r Result) IsError() bool {
	return r.Status == StatusError || r.Status == StatusFatal
}

// IsFatal returns true if the result ends the session with an error.
func (r Result) IsFatal() bool {
	return r.Status == StatusFatal
}

// Success creates a successful result that requests a redisplay.
func Success() Result {
	return Result{Status: StatusOK, Redraw: true}
}

// SuccessWithMessage creates a successful result with a message.
func SuccessWithMessage(msg string) Result {
	return Success().WithMessage(msg)
}

// NoOp creates a no-operation result.
func NoOp() Result {
	return Result{Status: StatusNoOp}
}

// Bell creates a no-op result that rings the bell.
func Bell() Result {
	return Result{Status: StatusNoOp, Bell: true}
}

// Accepted creates a successful result that ends the session.
func Accepted() Result {
	return Result{Status: StatusOK, Accept: true}
}

// Interrupted creates a result that ends the session without saving.
func Interrupted() Result {
	return Result{Status: StatusOK, Interrupt: true}
}

// Error creates an error result. The bell is rung so the user notices.
func Error(err error) Result {
	return Result{Status: StatusError, Error: err, Bell: true}
}

// Errorf creates an error result with a formatted message.
func Errorf(format string, args ...interface{}) Result {
	return Error(fmt.Errorf(format, args...))
}

// Fatal creates a result that ends the session with err.
func Fatal(err error) Result {
	return Result{Status: StatusFatal, Error: err}
}

// WithMessage returns a copy of the result with the specified message.
func (r Result) WithMessage(msg string) Result {
	r.Message = msg
	return r
}

// WithModeChange returns a copy of the result with a scope change.
func (r Result) WithModeChange(scope keymap.Scope) Result {
	r.ModeChange = scope
	return r
}

// WithRedraw returns a copy of the result requesting a redisplay.
func (r Result) WithRedraw() Result {
	r.Redraw = true
	return r
}

// WithBell returns a copy of the result that rings the bell.
func (r Result) WithBell() Result {
	r.Bell = true
	return r
}

// WithData returns a copy of the result with data added.
func (r Result) WithData(key string, value interface{}) Result {
	if r.Data == nil {
		r.Data = make(map[string]interface{})
	}
	r.Data[key] = value
	return r
}

// GetData retrieves a value from the result data.
func (r Result) GetData(key string) (interface{}, bool) {
	if r.Data == nil {
		return nil, false
	}
	v, ok := r.Data[key]
	return v, ok
}

// GetDataString retrieves a string value from the result data.
func (r Result) GetDataString(key string) string {
	if v, ok := r.GetData(key); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
