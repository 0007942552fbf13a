// Package integration provides the command that hands the buffer to an
// external editor.
package integration
