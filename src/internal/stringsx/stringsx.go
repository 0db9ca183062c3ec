// Package stringsx holds small string helpers shared across packages.
package stringsx

import "strings"

// FirstNonEmpty returns the first string in vals that is non-empty when
// trimmed, trimmed.
func FirstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}

// Squash collapses every whitespace run (including line breaks) to a single
// space and trims the ends.
func Squash(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
