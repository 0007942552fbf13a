// Package handoff suspends the interactive session and hands the buffer to
// an external editor.
//
// An Edit call walks the state machine
//
//	INTERACTIVE -> SUSPENDING -> DELEGATED -> RESUMING -> INTERACTIVE
//
// and lands in FAILED from any step. The buffer is written to a private
// temporary file, the terminal is released, the editor runs on the
// controlling terminal until it exits, the file is read back and the
// terminal is reacquired. The temporary file is removed on every path.
//
// A non-zero exit or a death by signal is a failure; the caller treats
// every failure as fatal to the session.
package handoff
