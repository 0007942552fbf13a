package buffer

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Buffer is a mutable rune sequence with a cursor offset. Text that is not
// valid UTF-8 is kept byte for byte; each undecodable byte is one rune.
//
// The point always satisfies 0 <= point <= Len(). A Buffer has exactly one
// owner, the active session, and is not safe for concurrent use.
type Buffer struct {
	text  []rune
	point int
	kills *KillRing
}

// New creates a buffer holding text with the point at offset 0.
func New(text string) *Buffer {
	return &Buffer{
		text:  decode(text),
		kills: NewKillRing(DefaultKillRingSize),
	}
}

// Text returns the buffer content. Bytes that were not valid UTF-8 when
// inserted come back unchanged.
func (b *Buffer) Text() string {
	return encode(b.text)
}

// Runes returns a copy of the content for display. Raw bytes show as
// utf8.RuneError, one per byte, so offsets still line up.
func (b *Buffer) Runes() []rune {
	out := make([]rune, len(b.text))
	for i, r := range b.text {
		if isRaw(r) {
			r = utf8.RuneError
		}
		out[i] = r
	}
	return out
}

// Len returns the buffer length in runes.
func (b *Buffer) Len() int {
	return len(b.text)
}

// IsEmpty returns true if the buffer holds no text.
func (b *Buffer) IsEmpty() bool {
	return len(b.text) == 0
}

// Point returns the cursor offset.
func (b *Buffer) Point() int {
	return b.point
}

// SetPoint moves the cursor, clamping to [0, Len()].
func (b *Buffer) SetPoint(offset int) {
	b.point = b.clamp(offset)
}

// AtEnd returns true if the point is at the end of the buffer.
func (b *Buffer) AtEnd() bool {
	return b.point >= len(b.text)
}

// RuneAt returns the rune at offset. The second result is false when the
// offset does not address a rune. A raw byte reads as utf8.RuneError.
func (b *Buffer) RuneAt(offset int) (rune, bool) {
	if offset < 0 || offset >= len(b.text) {
		return 0, false
	}
	if r := b.text[offset]; !isRaw(r) {
		return r, true
	}
	return utf8.RuneError, true
}

// Slice returns the text in [start, end).
func (b *Buffer) Slice(start, end int) string {
	start, end = b.clamp(start), b.clamp(end)
	if start >= end {
		return ""
	}
	return encode(b.text[start:end])
}

// Insert inserts text at the point and moves the point past it.
func (b *Buffer) Insert(text string) {
	if text == "" {
		return
	}
	b.InsertAt(b.point, text)
}

// InsertAt inserts text at offset. A point at or after offset shifts right
// by the inserted length.
func (b *Buffer) InsertAt(offset int, text string) {
	if text == "" {
		return
	}
	offset = b.clamp(offset)
	ins := decode(text)

	grown := make([]rune, 0, len(b.text)+len(ins))
	grown = append(grown, b.text[:offset]...)
	grown = append(grown, ins...)
	grown = append(grown, b.text[offset:]...)
	b.text = grown

	if b.point >= offset {
		b.point += len(ins)
	}
}

// Delete removes [start, end) and returns the removed text.
//
// A point inside the range collapses to start; a point after it shifts left.
func (b *Buffer) Delete(start, end int) (string, error) {
	if start < 0 || end > len(b.text) {
		return "", fmt.Errorf("delete [%d, %d) of %d: %w", start, end, len(b.text), ErrOffsetOutOfRange)
	}
	if start > end {
		return "", fmt.Errorf("delete [%d, %d): %w", start, end, ErrRangeInvalid)
	}
	if start == end {
		return "", nil
	}

	removed := encode(b.text[start:end])
	b.text = append(b.text[:start], b.text[end:]...)

	switch {
	case b.point >= end:
		b.point -= end - start
	case b.point > start:
		b.point = start
	}
	return removed, nil
}

// Kill removes [start, end), records the removed text in the kill ring and
// leaves the point at start.
func (b *Buffer) Kill(start, end int) (string, error) {
	removed, err := b.Delete(start, end)
	if err != nil {
		return "", err
	}
	b.kills.Push(removed)
	b.point = b.clamp(start)
	return removed, nil
}

// Replace swaps the whole content for text and moves the point to the end.
func (b *Buffer) Replace(text string) {
	b.text = decode(text)
	b.point = len(b.text)
}

// Kills returns the buffer's kill ring.
func (b *Buffer) Kills() *KillRing {
	return b.kills
}

// String renders the buffer with a '|' marking the point. Used in tests and
// debug logging.
func (b *Buffer) String() string {
	var sb strings.Builder
	sb.WriteString(encode(b.text[:b.point]))
	sb.WriteByte('|')
	sb.WriteString(encode(b.text[b.point:]))
	return sb.String()
}

func (b *Buffer) clamp(offset int) int {
	if offset < 0 {
		return 0
	}
	if offset > len(b.text) {
		return len(b.text)
	}
	return offset
}
