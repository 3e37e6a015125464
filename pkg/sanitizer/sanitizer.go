// Package sanitizer normalizes free-text input (passenger names, city
// names, phone numbers) before validation and storage so lookups and
// comparisons see one canonical form.
package sanitizer

import (
	"strings"
	"unicode"
)

type Strategy func(string) string

type Pipeline []Strategy

func (p Pipeline) Apply(s string) string {
	for _, fn := range p {
		s = fn(s)
	}
	return s
}

// TrimAndNormalize trims the string and collapses internal whitespace runs
// to a single space.
func TrimAndNormalize(s string) string {
	s = strings.TrimSpace(s)

	if s == "" {
		return ""
	}

	var result strings.Builder
	var lastWasSpace bool

	for _, r := range s {
		if unicode.IsSpace(r) {
			if !lastWasSpace {
				result.WriteRune(' ')
				lastWasSpace = true
			}
		} else {
			result.WriteRune(r)
			lastWasSpace = false
		}
	}

	return result.String()
}

// NormalizeName keeps the original casing; Arabic and Latin names both pass
// through untouched apart from whitespace.
func NormalizeName(name string) string {
	return TrimAndNormalize(name)
}

// NormalizeCity lowercases so "Algiers", "ALGIERS" and "algiers" match the
// same routes.
func NormalizeCity(city string) string {
	p := Pipeline{
		TrimAndNormalize,
		strings.ToLower,
	}
	return p.Apply(city)
}
