package source

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	upper = cases.Upper(language.Und)
	lower = cases.Lower(language.Und)
)

// TitleWords upper-cases the first letter of every space-separated word and
// lower-cases the rest. Blank input yields "".
func TitleWords(filter string) string {
	if strings.TrimSpace(filter) == "" {
		return ""
	}
	words := strings.Split(filter, " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		_, size := utf8.DecodeRuneInString(w)
		words[i] = upper.String(w[:size]) + lower.String(w[size:])
	}
	return strings.Join(words, " ")
}

// quoteLiteral escapes s for use inside a single-quoted OData string literal.
func quoteLiteral(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
