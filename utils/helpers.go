package utils

import (
	"strings"
)

// TruncateString shortens s for activity log descriptions
func TruncateString(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}

// NormalizeTitle trims surrounding whitespace from a user-supplied title
func NormalizeTitle(s string) string {
	return strings.TrimSpace(s)
}
