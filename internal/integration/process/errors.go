package process

import "errors"

// Sentinel errors for the process package.
var (
	// ErrNotStarted indicates an operation on a process that is not running.
	ErrNotStarted = errors.New("process: not running")

	// ErrStarted indicates a second start of the same process.
	ErrStarted = errors.New("process: already started")

	// ErrNotFound indicates an unknown process id.
	ErrNotFound = errors.New("process: not found")

	// ErrDuplicateID indicates an id already in use.
	ErrDuplicateID = errors.New("process: duplicate id")

	// ErrShutdown indicates a start after Shutdown.
	ErrShutdown = errors.New("process: supervisor shut down")
)
