package domain

import (
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/transform"
)

// whitespaceFolder removes leading and trailing whitespace and replaces every
// internal whitespace span with a single ASCII space.
type whitespaceFolder struct {
	started bool
	inSpan  bool
}

// Transform implements transform.Transformer.
func (w *whitespaceFolder) Transform(dst, src []byte, atEOF bool) (int, int, error) {
	var nDst, nSrc int
	for nSrc < len(src) {
		if !atEOF && !utf8.FullRune(src[nSrc:]) {
			return nDst, nSrc, transform.ErrShortSrc
		}
		c, size := utf8.DecodeRune(src[nSrc:])

		if unicode.IsSpace(c) {
			nSrc += size
			if w.started {
				w.inSpan = true
			}
			continue
		}

		if w.inSpan {
			if nDst+1 > len(dst) {
				return nDst, nSrc, transform.ErrShortDst
			}
			dst[nDst] = ' '
			nDst++
			w.inSpan = false
		}

		// c may be utf8.RuneError with size 1; copy the source bytes as they are.
		if nDst+size > len(dst) {
			return nDst, nSrc, transform.ErrShortDst
		}
		w.started = true
		nDst += copy(dst[nDst:], src[nSrc:nSrc+size])
		nSrc += size
	}
	return nDst, nSrc, nil
}

// Reset implements transform.Transformer.
func (w *whitespaceFolder) Reset() {
	*w = whitespaceFolder{}
}
