package rules

import "strings"

// LineAt returns the 1-based line of the byte at offset in text.
// Offsets past the end are clamped.
func LineAt(text string, offset int) int {
	if offset <= 0 {
		return 1
	}
	if offset > len(text) {
		offset = len(text)
	}
	return strings.Count(text[:offset], "\n") + 1
}
