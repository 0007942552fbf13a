package terminal

import "errors"

// Sentinel errors for the terminal package.
var (
	// ErrNotTerminal is returned when the device is not a terminal.
	ErrNotTerminal = errors.New("terminal: not a terminal")

	// ErrRestored is returned when the terminal is used after Restore.
	ErrRestored = errors.New("terminal: already restored")

	// ErrNoAttributes is returned when a Guardian has no attribute device.
	ErrNoAttributes = errors.New("terminal: no attribute device")
)
