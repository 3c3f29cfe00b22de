// Package extract derives candidate specification values from OCR text.
//
// The classification is a deliberate heuristic, not language understanding:
// it is a single left-to-right pass with a fixed rule priority per token and
// first-match-wins per output field. It is pure and terminates on any input.
package extract

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Fields holds the candidate values derived from an OCR token stream.
// Unresolved fields stay empty.
type Fields struct {
	Brand     string
	ModelName string
	Price     string
}

// FromText splits text on whitespace and classifies the resulting tokens.
func FromText(text string) Fields {
	return FromTokens(strings.Fields(text))
}

// FromTokens classifies tokens in order. Per token the rules are tried in
// priority order and the first matching rule consumes it; per field only the
// first match across the whole pass is kept.
func FromTokens(tokens []string) Fields {
	var f Fields

	for _, token := range tokens {
		switch {
		case strings.HasPrefix(strings.ToLower(token), "model"):
			if f.ModelName == "" {
				f.ModelName = token
			}
		case looksLikePrice(token):
			if f.Price == "" {
				f.Price = token
			}
		case f.Brand == "" && isAlphabetic(token) && utf8.RuneCountInString(token) > 3:
			f.Brand = token
		}
	}

	return f
}

// looksLikePrice accepts tokens carrying a currency marker, or tokens that
// are purely digits once commas and periods are stripped (e.g. "1,299.00").
func looksLikePrice(token string) bool {
	if strings.Contains(token, "$") {
		return true
	}
	stripped := strings.Map(func(r rune) rune {
		if r == ',' || r == '.' {
			return -1
		}
		return r
	}, token)
	if stripped == "" {
		return false
	}
	for _, r := range stripped {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func isAlphabetic(token string) bool {
	if token == "" {
		return false
	}
	for _, r := range token {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}
