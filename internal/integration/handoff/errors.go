package handoff

import (
	"errors"
	"fmt"
)

// Sentinel errors for the hand-off.
var (
	// ErrEmptyProgram indicates no editor program is configured.
	ErrEmptyProgram = errors.New("handoff: editor program is empty")

	// ErrEditorFailed indicates the editor exited with a non-zero status.
	ErrEditorFailed = errors.New("handoff: editor exited with non-zero status")

	// ErrEditorSignaled indicates the editor was terminated by a signal.
	ErrEditorSignaled = errors.New("handoff: editor terminated by signal")

	// ErrBusy indicates an Edit call while another is in progress.
	ErrBusy = errors.New("handoff: edit already in progress")

	// ErrFailed indicates the hand-off already failed; no further edits run.
	ErrFailed = errors.New("handoff: previous hand-off failed")

	// ErrBadTransition indicates an illegal state transition.
	ErrBadTransition = errors.New("handoff: illegal state transition")
)

// Error records the step of a failed hand-off.
type Error struct {
	// Step names the failing operation, such as "create temp file".
	Step string
	// State is the state the hand-off was in.
	State State
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("external editor: %s (%s): %v", e.Step, e.State, e.Err)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}
