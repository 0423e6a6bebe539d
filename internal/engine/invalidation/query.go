package invalidation

import (
	"strings"
	"unicode"
)

// ParseQuery splits query into terms on whitespace. Single- or double-quoted spans
// keep their whitespace and lose their quotes; an unclosed quote runs to the end.
func ParseQuery(query string) []string {
	terms := []string{}
	var (
		current strings.Builder
		quote   rune
		inTerm  bool
	)

	flush := func() {
		if inTerm {
			terms = append(terms, current.String())
		}
		current.Reset()
		inTerm = false
	}

	for _, r := range query {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
				continue
			}
			current.WriteRune(r)
		case r == '"' || r == '\'':
			quote = r
			inTerm = true
		case unicode.IsSpace(r):
			flush()
		default:
			current.WriteRune(r)
			inTerm = true
		}
	}
	flush()

	return terms
}
