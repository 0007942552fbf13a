package buffer

// IsBlank reports whether r is a space or a tab.
func IsBlank(r rune) bool {
	return r == ' ' || r == '\t'
}

// LineStart returns the offset of the first rune of the line containing
// offset. It scans backward while the preceding rune is not a newline.
func (b *Buffer) LineStart(offset int) int {
	pos := b.clamp(offset)
	for pos > 0 && b.text[pos-1] != '\n' {
		pos--
	}
	return pos
}

// LineEnd returns the offset of the newline terminating the line containing
// offset, or Len() on the last line.
func (b *Buffer) LineEnd(offset int) int {
	pos := b.clamp(offset)
	for pos < len(b.text) && b.text[pos] != '\n' {
		pos++
	}
	return pos
}

// Column returns the distance from the start of offset's line to offset.
func (b *Buffer) Column(offset int) int {
	offset = b.clamp(offset)
	return offset - b.LineStart(offset)
}

// FirstNonBlank returns the offset of the first rune that is not a space or
// tab, scanning forward from offset. The scan never crosses a newline.
func (b *Buffer) FirstNonBlank(offset int) int {
	pos := b.clamp(offset)
	for pos < len(b.text) && IsBlank(b.text[pos]) {
		pos++
	}
	return pos
}

// HasNextLine reports whether a newline follows offset's line.
func (b *Buffer) HasNextLine(offset int) bool {
	return b.LineEnd(offset) < len(b.text)
}

// LineCount returns the number of content lines. An empty buffer has one
// line. A trailing newline does not start a further line.
func (b *Buffer) LineCount() int {
	count := 1
	for i, r := range b.text {
		if r == '\n' && i < len(b.text)-1 {
			count++
		}
	}
	return count
}

// LineOffset returns the start offset of the 1-indexed line n. Values below 1
// address the first line and values past LineCount() address the last
// content line.
func (b *Buffer) LineOffset(n int) int {
	pos := 0
	line := 1
	for pos < len(b.text) && line <= n {
		if b.text[pos] == '\n' {
			line++
		}
		pos++
	}
	// pos overshoots by the newline that ended the scan, or stops at the end.
	if pos > 0 && b.text[pos-1] == '\n' {
		pos--
	}
	return b.LineStart(pos)
}
