package relevance

import (
	"strings"
	"unicode"
)

// Tokenize splits text on whitespace, trims leading and trailing
// punctuation from each piece, lower-cases it and drops empty and repeated
// tokens. First-seen order is kept.
func Tokenize(text string) []string {
	var tokens []string
	seen := make(map[string]bool)
	for _, field := range strings.Fields(text) {
		tok := strings.ToLower(strings.TrimFunc(field, notAlphanumeric))
		if tok == "" || seen[tok] {
			continue
		}
		seen[tok] = true
		tokens = append(tokens, tok)
	}
	return tokens
}

// Phrase returns the whole search text as matched by the phrase tiers:
// lower-cased, trimmed, with internal whitespace collapsed to single spaces.
// Punctuation inside the phrase is kept.
func Phrase(text string) string {
	return strings.ToLower(strings.Join(strings.Fields(text), " "))
}

func notAlphanumeric(r rune) bool {
	return !unicode.IsLetter(r) && !unicode.IsDigit(r)
}

// likeEscape is the escape character declared on every LIKE predicate.
const likeEscape = `\`

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike escapes LIKE metacharacters so s matches literally.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
