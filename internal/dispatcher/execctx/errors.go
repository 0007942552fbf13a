package execctx

import "errors"

// Context validation errors.
var (
	// ErrMissingEngine indicates the engine is required but not set.
	ErrMissingEngine = errors.New("execution context: engine is required")

	// ErrMissingModeManager indicates mode manager is required but not set.
	ErrMissingModeManager = errors.New("execution context: mode manager is required")

	// ErrMissingEditor indicates the external editor is required but not set.
	ErrMissingEditor = errors.New("execution context: external editor is required")
)
