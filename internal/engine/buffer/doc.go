// Package buffer provides the single flat text buffer edited by a jot session.
//
// A Buffer is a rune sequence plus a cursor offset (the point). Logical lines
// are the runs of text between newlines or the buffer boundaries. No line
// index is kept: line boundaries are recomputed by scanning from an offset,
// which is cheap at interactive sizes and keeps every edit trivially
// consistent.
//
// # Addressing
//
//	b := buffer.New("one\ntwo\nthree")
//	b.LineStart(5) // 4
//	b.LineEnd(5)   // 7
//	b.Column(5)    // 1
//
// Offsets handed to the addressing helpers are clamped to [0, Len()].
package buffer
