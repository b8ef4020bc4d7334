// Package normalize cleans text coming from uploaded sheets and file names
// Cell pipeline
// 1 drop control bytes and invalid UTF-8
// 2 Unicode NFC composition
// 3 trim surrounding whitespace
//
// Slug pipeline
// 1 Unicode NFKD decomposition
// 2 remove combining marks so accented letters keep their base
// 3 replace anything outside [A-Za-z0-9_-] with '_'
package normalize

import (
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// pool of fresh fold chains; transformers carry state so each use gets its own
var foldPool = sync.Pool{
	New: func() any {
		return transform.Chain(
			norm.NFKD,
			runes.Remove(runes.In(unicode.Mn)), // strip combining marks
			runes.Remove(runes.In(unicode.Cf)), // strip format chars ZWJ ZWNJ FEFF etc
		)
	},
}

// Cell returns the trimmed, composed form of a sheet cell or header
func Cell(s string) string {
	if s == "" {
		return ""
	}
	s = strings.ToValidUTF8(Sanitize(s), "")
	return strings.TrimSpace(norm.NFC.String(s))
}

// Slug folds s to an ASCII-safe object key segment
// an input with nothing usable yields "file"
func Slug(s string) string {
	s = strings.ToValidUTF8(Sanitize(s), "")
	if s == "" {
		return "file"
	}

	tr := foldPool.Get().(transform.Transformer)
	folded, _, err := transform.String(tr, s)
	tr.Reset()
	foldPool.Put(tr)
	if err != nil {
		folded = s
	}

	var b strings.Builder
	b.Grow(len(folded))
	useful := false
	for _, r := range folded {
		switch {
		case r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)):
			b.WriteRune(r)
			useful = true
		case r == '-' || r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	if !useful {
		return "file"
	}
	return b.String()
}

// BaseName strips any directory part and the last extension from a file name
func BaseName(name string) string {
	if i := strings.LastIndexAny(name, `/\`); i >= 0 {
		name = name[i+1:]
	}
	if i := strings.LastIndexByte(name, '.'); i > 0 {
		name = name[:i]
	}
	return name
}
