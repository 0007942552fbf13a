// Package renderer draws the jot buffer on a terminal backend.
//
// The screen shows an optional banner on the first row, then the buffer
// laid out with tabs expanded and long lines wrapped at the screen width.
// Rune widths come from go-runewidth so East Asian wide characters take
// two columns. The view scrolls just far enough to keep the cursor row
// visible.
//
// Usage:
//
//	term, _ := backend.NewTerminal("/dev/tty")
//	r := renderer.New(term, renderer.DefaultOptions())
//	r.SetBuffer(buf)
//	r.Redisplay()
package renderer
