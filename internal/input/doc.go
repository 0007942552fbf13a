// Package input turns key events into actions for jot.
//
// The Handler accumulates key events into a pending sequence, resolves it
// against the keymap registry for the active scope, and returns the actions
// to execute. It runs synchronously: each call to HandleKeyEvent reports
// what the event produced, and nothing waits on timers.
//
// # Repeat Counts
//
// In normal scope the digits 1-9 start a count and 0 extends one; a lone 0
// is an ordinary key (beginning-of-line). In any scope Meta plus a digit
// accumulates a count. A typed count marks the action's argument as
// explicit, which goto-line and goto-first-line use to pick their default.
//
// # Unbound Keys
//
// A single printable key with no binding self-inserts in insert scope. Any
// other unbound sequence rings the bell and is discarded.
//
// # Usage
//
//	h := input.NewHandler(input.DefaultConfig(), registry)
//	for {
//	    out := h.HandleKeyEvent(key.FromTcell(ev))
//	    for _, action := range out.Actions {
//	        dispatcher.Dispatch(action)
//	    }
//	}
package input
