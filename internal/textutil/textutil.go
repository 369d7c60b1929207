package textutil

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"unicode"
)

// Hash computes a SHA-256 hex hash of a string for change detection.
func Hash(s string) string {
	h := sha256.Sum256([]byte(s))
	return hex.EncodeToString(h[:])
}

// Truncate shortens a string to maxLen, appending "..." if truncated.
func Truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}

// TitleCase upper-cases the first letter of every run of letters and
// lower-cases the rest. Digits and punctuation start a new word, so
// "PORYGON_2ND" becomes "Porygon_2Nd".
func TitleCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	prevLetter := false
	for _, r := range s {
		if unicode.IsLetter(r) {
			if prevLetter {
				b.WriteRune(unicode.ToLower(r))
			} else {
				b.WriteRune(unicode.ToUpper(r))
			}
			prevLetter = true
			continue
		}
		prevLetter = false
		b.WriteRune(r)
	}
	return b.String()
}

// CleanConstant turns an enum constant such as "TYPE_FIGHTING" into a display
// label ("Fighting") by dropping every occurrence of prefix, replacing
// underscores with spaces and title-casing the result.
func CleanConstant(value, prefix string) string {
	if prefix != "" {
		value = strings.ReplaceAll(value, prefix, "")
	}
	return TitleCase(strings.ReplaceAll(value, "_", " "))
}

// SplitLines normalises line endings and a leading BOM, then splits raw text
// into lines without their terminators.
func SplitLines(raw string) []string {
	raw = strings.TrimPrefix(raw, "\uFEFF")
	raw = strings.ReplaceAll(raw, "\r\n", "\n")
	raw = strings.ReplaceAll(raw, "\r", "\n")
	raw = strings.TrimSuffix(raw, "\n")
	if raw == "" {
		return nil
	}
	return strings.Split(raw, "\n")
}
