package chunker

import (
	"unicode"
	"unicode/utf8"
)

// Token is a whitespace-delimited word with its byte offsets in the source text
type Token struct {
	Start int
	End   int
}

// Tokenize splits text on Unicode whitespace, keeping byte offsets so chunks
// can be cut from the original text without re-joining words.
func Tokenize(text string) []Token {
	var tokens []Token
	start := -1

	for i := 0; i < len(text); {
		r, size := utf8.DecodeRuneInString(text[i:])
		if unicode.IsSpace(r) {
			if start >= 0 {
				tokens = append(tokens, Token{Start: start, End: i})
				start = -1
			}
		} else if start < 0 {
			start = i
		}
		i += size
	}
	if start >= 0 {
		tokens = append(tokens, Token{Start: start, End: len(text)})
	}

	return tokens
}
