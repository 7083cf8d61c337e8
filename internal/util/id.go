package util

import (
	"strings"

	"github.com/google/uuid"
)

// NewID returns a new unique identifier string (UUID v4).
func NewID() string { return uuid.NewString() }

// Slug lowercases s and collapses every run of non-alphanumeric characters
// into a single hyphen. Leading and trailing hyphens are trimmed, so
// Slug("G/FORE ") == "g-fore".
func Slug(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	lastHyphen := false
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen && b.Len() > 0 {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}
