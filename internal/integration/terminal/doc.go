// Package terminal guards the state of the controlling terminal for a jot
// session.
//
// A Guardian opens /dev/tty directly, so it works when standard input and
// output are redirected. It captures the terminal attributes once, disables
// the driver's line-kill character (the same key is bound to
// kill-backward-line) and restores the original attributes exactly once,
// whichever exit path gets there first.
//
// Release and Reacquire bracket an external program that needs the
// terminal in its original state; they do not consume the restore guard.
//
// SignalWatcher turns SIGINT and SIGTERM into a flag the event loop polls.
// After restoring, the loop calls Reraise so the process dies of the
// original signal with the default disposition.
package terminal
