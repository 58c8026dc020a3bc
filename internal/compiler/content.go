package compiler

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf16"

	"github.com/roach88/jasmir/internal/syntax"
)

// Content returns the node text with Java escape sequences decoded.
func Content(n syntax.Node) (string, error) {
	if syntax.IsNil(n) {
		return "", nilNode("node")
	}
	return Unescape(n.Text()), nil
}

var simpleEscapes = map[byte]byte{
	'b':  '\b',
	't':  '\t',
	'n':  '\n',
	'f':  '\f',
	'r':  '\r',
	'"':  '"',
	'\'': '\'',
	'\\': '\\',
}

// Unescape decodes the escapes of a Java string literal: the single
// character forms, octal escapes up to \377, and unicode escapes with any
// number of u's. Surrogate pairs written as two unicode escapes are joined.
// Malformed escapes are kept as written.
func Unescape(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' || i+1 >= len(s) {
			b.WriteByte(c)
			continue
		}

		next := s[i+1]
		if r, ok := simpleEscapes[next]; ok {
			b.WriteByte(r)
			i++
			continue
		}
		if next >= '0' && next <= '7' {
			r, end := octalEscape(s, i+1)
			b.WriteRune(r)
			i = end - 1
			continue
		}
		if next == 'u' {
			if r, end, ok := unicodeEscape(s, i+1); ok {
				if utf16.IsSurrogate(r) && strings.HasPrefix(s[end:], `\u`) {
					if low, lowEnd, ok := unicodeEscape(s, end+1); ok {
						if pair := utf16.DecodeRune(r, low); pair != unicode.ReplacementChar {
							b.WriteRune(pair)
							i = lowEnd - 1
							continue
						}
					}
				}
				b.WriteRune(r)
				i = end - 1
				continue
			}
		}
		b.WriteByte(c)
	}
	return b.String()
}

// octalEscape reads up to three octal digits starting at i; a leading digit
// above 3 limits it to two so the value stays within a byte.
func octalEscape(s string, i int) (rune, int) {
	limit := 3
	if s[i] > '3' {
		limit = 2
	}
	v, j := 0, i
	for j < len(s) && j-i < limit && s[j] >= '0' && s[j] <= '7' {
		v = v*8 + int(s[j]-'0')
		j++
	}
	return rune(v), j
}

// unicodeEscape reads u+XXXX starting at the first u. It returns the index
// just past the hex digits.
func unicodeEscape(s string, i int) (rune, int, bool) {
	j := i
	for j < len(s) && s[j] == 'u' {
		j++
	}
	if j+4 > len(s) {
		return 0, 0, false
	}
	v, err := strconv.ParseUint(s[j:j+4], 16, 16)
	if err != nil {
		return 0, 0, false
	}
	return rune(v), j + 4, true
}
