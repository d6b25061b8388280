package services

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// NormalizeText prepares free text for vectorisation:
//   - full Unicode lowercasing
//   - every rune that is not a letter, number, underscore or space becomes a space
//   - markdown emphasis markers (* and #) are dropped
//   - whitespace runs collapse to a single space, ends trimmed
func NormalizeText(text string) string {
	if text == "" {
		return ""
	}

	// A Caser keeps state, so one per call.
	text = cases.Lower(language.Und).String(text)

	text = strings.Map(func(r rune) rune {
		if isWordRune(r) || unicode.IsSpace(r) {
			return r
		}
		return ' '
	}, text)

	text = strings.Map(func(r rune) rune {
		if r == '*' || r == '#' {
			return -1
		}
		return r
	}, text)

	return strings.Join(strings.Fields(text), " ")
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r)
}
