package utils

import (
	"unicode"
	"unicode/utf8"
)

// IsOnlyNumbers reports whether s is non-empty and made of digits only.
func IsOnlyNumbers(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// IsRepetitive reports whether s is one rune repeated three or more times.
func IsRepetitive(s string) bool {
	if utf8.RuneCountInString(s) <= 2 {
		return false
	}
	first, _ := utf8.DecodeRuneInString(s)
	for _, r := range s {
		if r != first {
			return false
		}
	}
	return true
}

// ContainsControl reports whether s holds a control character.
func ContainsControl(s string) bool {
	for _, r := range s {
		if unicode.IsControl(r) {
			return true
		}
	}
	return false
}

// IsValidQuery filters out lookups that are not worth running:
// empty or malformed input, bare numbers and runs like "zzzz".
func IsValidQuery(s string) bool {
	switch {
	case s == "", !utf8.ValidString(s):
		return false
	case ContainsControl(s):
		return false
	case IsOnlyNumbers(s), IsRepetitive(s):
		return false
	}
	return true
}
