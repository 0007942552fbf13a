package buffer

import (
	"strings"
	"unicode/utf8"
)

// Bytes that are not valid UTF-8 are kept as runes in
// [rawBase, rawBase+0xff] so the text written out is byte-for-byte what was
// read in. A valid encoding of a rune in that range is kept the same way,
// one raw rune per byte, so it cannot be confused with an escaped byte.
const rawBase = 0x10ff00

// isRaw reports whether r stands for a single raw byte.
func isRaw(r rune) bool {
	return r >= rawBase && r <= rawBase+0xff
}

// decode splits s into runes, escaping bytes that do not decode.
func decode(s string) []rune {
	out := make([]rune, 0, len(s))
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		switch {
		case r == utf8.RuneError && size <= 1:
			out = append(out, rawBase+rune(s[i]))
			i++
		case isRaw(r):
			for j := 0; j < size; j++ {
				out = append(out, rawBase+rune(s[i+j]))
			}
			i += size
		default:
			out = append(out, r)
			i += size
		}
	}
	return out
}

// encode joins runes back into the original bytes.
func encode(runes []rune) string {
	var sb strings.Builder
	sb.Grow(len(runes))
	for _, r := range runes {
		if isRaw(r) {
			sb.WriteByte(byte(r - rawBase))
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}
