package normalize

import (
	"strings"
	"unicode/utf8"
)

// Sanitize drops bytes that should never reach a stored row or key:
// NUL, ASCII controls other than tab/CR/LF, DEL, C1 controls and invalid UTF-8
// clean input is returned unchanged
func Sanitize(s string) string {
	if clean(s) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if keep(r, size) {
			b.WriteString(s[i : i+size])
		}
		i += size
	}
	return b.String()
}

func clean(s string) bool {
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if !keep(r, size) {
			return false
		}
		i += size
	}
	return true
}

func keep(r rune, size int) bool {
	switch {
	case r == utf8.RuneError && size == 1:
		return false
	case r == '\n' || r == '\r' || r == '\t':
		return true
	case r < 0x20 || r == 0x7F:
		return false
	case r >= 0x80 && r <= 0x9F:
		return false
	}
	return true
}
