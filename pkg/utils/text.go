package utils

import (
	"strings"
	"unicode"
)

// ContainsString reports whether slice contains s.
func ContainsString(slice []string, s string) bool {
	for _, item := range slice {
		if item == s {
			return true
		}
	}
	return false
}

// CleanToValidUTF8 removes invalid UTF-8 sequences from s.
func CleanToValidUTF8(s string) string {
	return strings.ToValidUTF8(s, "")
}

// CapitalizeSentence upper-cases the first letter of s.
func CapitalizeSentence(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

// TruncateWithEllipsis shortens s to at most max characters, replacing the
// tail with "..." when truncation happens.
func TruncateWithEllipsis(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return strings.TrimRight(string(runes[:max-3]), " \t\n\r") + "..."
}
