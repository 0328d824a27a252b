package tokenizer

import (
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Turkish casing is the one place standard Unicode lowercasing is wrong
// for this tokenizer: dotted uppercase İ must become i and dotless
// uppercase I must become ı. The x/text Turkish caser implements both.
// A cases.Caser is not safe for concurrent use, so each call builds its
// own; construction is cheap next to the transform itself.

// lowerTurkish lowercases s with Turkish casing rules. Dictionary lookups
// only ever see lowercased text.
func lowerTurkish(s string) string {
	return cases.Lower(language.Turkish).String(s)
}

// upperFirstTurkish uppercases the first rune of s with Turkish casing
// rules (i becomes İ, ı becomes I). Used by the decoder to re-apply the
// casing recorded by an uppercase marker.
func upperFirstTurkish(s string) string {
	if s == "" {
		return s
	}
	_, size := utf8.DecodeRuneInString(s)
	return cases.Upper(language.Turkish).String(s[:size]) + s[size:]
}
