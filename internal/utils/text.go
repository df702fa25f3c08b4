package utils

import (
	"strings"
	"unicode/utf8"
)

// CleanText strips NUL bytes and invalid UTF-8 from operator input and trims
// surrounding whitespace. Interior whitespace is kept as typed.
func CleanText(input string) string {
	if strings.Contains(input, "\x00") || !utf8.ValidString(input) {
		input = strings.ReplaceAll(strings.ToValidUTF8(input, ""), "\x00", "")
	}
	return strings.TrimSpace(input)
}
