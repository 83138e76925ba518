package lexical

import (
	"strings"
	"unicode"
)

// Clause is one unit of a parsed query.
type Clause struct {
	// Text is lowercased. For terms it is a single token.
	Text   string
	Phrase bool
}

// Tokenize lowercases s and splits it on every rune that is not a letter or
// a digit.
func Tokenize(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// Normalize lowercases a whole value for phrase comparison and collapses
// inner whitespace.
func Normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// ParseClauses splits a query into term and phrase clauses. Empty phrases
// are dropped; an unterminated quote runs to the end of the query.
func ParseClauses(query string) []Clause {
	var clauses []Clause
	rest := query
	for rest != "" {
		before, after, found := strings.Cut(rest, `"`)
		for _, tok := range Tokenize(before) {
			clauses = append(clauses, Clause{Text: tok})
		}
		if !found {
			break
		}
		phrase, tail, _ := strings.Cut(after, `"`)
		if p := Normalize(phrase); p != "" {
			clauses = append(clauses, Clause{Text: p, Phrase: true})
		}
		rest = tail
	}
	return clauses
}
