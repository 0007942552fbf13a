package handoff

// State is a step of the hand-off state machine.
type State int32

const (
	// StateInteractive is the resting state: the session owns the terminal.
	StateInteractive State = iota
	// StateSuspending writes the temp file and releases the terminal.
	StateSuspending
	// StateDelegated waits for the external editor.
	StateDelegated
	// StateResuming reads the result back and reacquires the terminal.
	StateResuming
	// StateFailed is terminal; the session must end.
	StateFailed
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateInteractive:
		return "interactive"
	case StateSuspending:
		return "suspending"
	case StateDelegated:
		return "delegated"
	case StateResuming:
		return "resuming"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// next reports whether from -> to is a legal transition.
func next(from, to State) bool {
	if to == StateFailed {
		return from != StateFailed
	}
	switch from {
	case StateInteractive:
		return to == StateSuspending
	case StateSuspending:
		return to == StateDelegated
	case StateDelegated:
		return to == StateResuming
	case StateResuming:
		return to == StateInteractive
	}
	return false
}
