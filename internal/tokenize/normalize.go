package tokenize

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// Normalize applies NFKC and lowercasing. PDF extraction often emits ligatures
// such as "ﬁ", which NFKC expands so "ﬁnancial" matches "financial".
// Lexicon entries and document text must both go through this function.
func Normalize(s string) string {
	// A Caser holds state and must not be shared between goroutines.
	return cases.Lower(language.Und).String(norm.NFKC.String(s))
}

// NormalizeWord is Normalize plus surrounding whitespace removal, for word-list entries.
func NormalizeWord(s string) string {
	return strings.TrimSpace(Normalize(s))
}
