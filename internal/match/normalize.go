package match

import (
	"strings"
	"unicode"
)

// span is a half-open byte range [start, end) of one token.
type span struct {
	start, end int
}

// NormalizeIdent normalizes an identifier for fuzzy matching.
// The normalization pipeline:
// 1. Split into camel-case tokens, dropping separators (_, -, ., /, :, space).
// 2. Join and case-fold to lower.
func NormalizeIdent(s string) string {
	return strings.Join(TokenizeIdent(s), "")
}

// TokenizeIdent splits an identifier into normalized lowercase tokens.
func TokenizeIdent(s string) []string {
	tokens := tokenizeCamelCase(s)
	for i, t := range tokens {
		tokens[i] = strings.ToLower(t)
	}

	return tokens
}

// tokenizeCamelCase splits a CamelCase or camelCase string into tokens.
// Examples:
//   - "valueQuantity" -> ["value", "Quantity"]
//   - "onsetDateTime" -> ["onset", "Date", "Time"]
//   - "XMLParser" -> ["XML", "Parser"]
//   - "us-core_patient" -> ["us", "core", "patient"]
func tokenizeCamelCase(s string) []string {
	spans := scanTokens(s)
	if len(spans) == 0 {
		return nil
	}

	tokens := make([]string, len(spans))
	for i, sp := range spans {
		tokens[i] = s[sp.start:sp.end]
	}

	return tokens
}

// startsToken reports whether a token of s begins at byte offset off.
func startsToken(s string, off int) bool {
	for _, sp := range scanTokens(s) {
		if sp.start == off {
			return true
		}
	}

	return false
}

// scanTokens returns the byte spans of the camel-case tokens of s.
func scanTokens(s string) []span {
	var (
		runes   []rune
		offsets []int
	)

	for off, r := range s {
		runes = append(runes, r)
		offsets = append(offsets, off)
	}

	var spans []span

	start := -1

	for i, r := range runes {
		if isSeparator(r) {
			if start >= 0 {
				spans = append(spans, span{start, offsets[i]})
				start = -1
			}

			continue
		}

		if start < 0 {
			start = offsets[i]
			continue
		}

		if shouldStartNewToken(runes, i) {
			spans = append(spans, span{start, offsets[i]})
			start = offsets[i]
		}
	}

	if start >= 0 {
		spans = append(spans, span{start, len(s)})
	}

	return spans
}

// isSeparator returns true if the rune separates identifier words.
func isSeparator(r rune) bool {
	switch r {
	case '_', '-', ' ', '.', '/', ':':
		return true
	default:
		return false
	}
}

// shouldStartNewToken determines if a new token should start at position i.
func shouldStartNewToken(runes []rune, i int) bool {
	r := runes[i]
	isUpper := unicode.IsUpper(r)
	isPrevUpper := unicode.IsUpper(runes[i-1])

	// "valueQuantity": split before 'Q'
	if isUpper && !isPrevUpper {
		return true
	}

	// "XMLParser": split before 'P' at the end of an acronym
	hasNextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])

	return isUpper && isPrevUpper && hasNextLower
}
