package util

import (
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// ToValidUTF8 ensures a string is valid UTF-8.
// If the string contains invalid UTF-8 sequences it is decoded as Latin-1
// (ISO-8859-1), the usual encoding of CSV exports from older spreadsheet
// tools. Characters like ä, ö, ü, é survive instead of becoming U+FFFD.
func ToValidUTF8(s string) string {
	if utf8.ValidString(s) {
		return s
	}

	decoded, err := charmap.ISO8859_1.NewDecoder().String(s)
	if err == nil {
		return decoded
	}

	// Latin-1 maps 1:1 to Unicode codepoints 0-255
	runes := make([]rune, len(s))
	for i := 0; i < len(s); i++ {
		runes[i] = rune(s[i])
	}
	return string(runes)
}

// ToValidUTF8Fields repairs every field of a record in place.
func ToValidUTF8Fields(fields []string) []string {
	for i, f := range fields {
		fields[i] = ToValidUTF8(f)
	}
	return fields
}
