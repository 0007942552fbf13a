// Package editor provides the buffer mutation commands: insertion, deletion,
// the kill family, yank, line joining and opening, and accepting input.
//
// Kill commands store the removed text in the buffer's kill ring so yank
// can restore it. Line boundaries are computed on demand; a kill never
// leaves the point past the end of the buffer.
package editor
