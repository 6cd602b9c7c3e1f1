package decode

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// normalizeText produces valid UTF-8 with invalid byte sequences replaced,
// folds the result to NFC (so a file with decomposed accents, e.g. "e" +
// combining acute, matches one with precomposed "é" during search and
// entity extraction), then strips control bytes other than LF, CR, and TAB
// (per the decoder contract: decoders must not embed other binary control
// codes).
func normalizeText(raw []byte) string {
	s := string(raw)
	if !utf8.ValidString(s) {
		s = strings.ToValidUTF8(s, "�")
	}
	s = norm.NFC.String(s)

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r == '\n' || r == '\r' || r == '\t' {
			b.WriteRune(r)
			continue
		}
		if r < 0x20 || r == 0x7f {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
