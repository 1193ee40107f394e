// Package sanitize repairs untrusted byte streams into valid UTF-8 text.
package sanitize

import (
	"strings"
	"unicode/utf8"
)

// UTF8 returns b as a valid UTF-8 string. Well-formed sequences are copied as is,
// a lead byte which is invalid or not followed by enough continuation bytes is
// dropped alone, and scanning resumes at the next byte. The function never fails.
func UTF8(b []byte) string {
	var out strings.Builder
	out.Grow(len(b))

	for i := 0; i < len(b); {
		n := seqLen(b[i])
		if n == 0 || !continued(b, i, n) {
			i++ // drop the lead byte only
			continue
		}
		out.Write(b[i : i+n])
		i += n
	}
	return out.String()
}

// String is UTF8 for string input
func String(s string) string {
	return UTF8([]byte(s))
}

// seqLen classifies a lead byte and returns the expected sequence length, 0 for invalid leads
func seqLen(c byte) int {
	switch {
	case c < 0x80:
		return 1
	case c&0xE0 == 0xC0:
		return 2
	case c&0xF0 == 0xE0:
		return 3
	case c&0xF8 == 0xF0:
		return 4
	}
	return 0
}

// continued checks that the n-1 bytes after the lead at i are all 10xxxxxx
// and that the sequence decodes to a scalar value (no overlongs, surrogates or values above U+10FFFF)
func continued(b []byte, i, n int) bool {
	if i+n > len(b) {
		return false
	}
	for j := i + 1; j < i+n; j++ {
		if b[j]&0xC0 != 0x80 {
			return false
		}
	}
	if n == 1 {
		return true
	}
	_, size := utf8.DecodeRune(b[i : i+n])
	return size == n
}
