// Package isbn cleans and detects ISBN identifiers.
package isbn

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	isbn13 = regexp.MustCompile(`(?i)(?:ISBN(?:-13)?:?\s*)?97[89][-\s]?(?:\d[-\s]?){9}\d`)
	isbn10 = regexp.MustCompile(`(?i)(?:ISBN(?:-10)?:?\s*)?(?:\d[-\s]?){9}[\dX]`)
)

// Clean keeps only digits and X (upper-cased).
func Clean(s string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(s) {
		if r >= '0' && r <= '9' || r == 'X' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Normalize cleans input and, if a 9-digit core is provided, appends the ISBN-10 check digit.
func Normalize(s string) string {
	core := Clean(s)
	if len(core) == 9 && !strings.Contains(core, "X") {
		return core + CheckDigit10(core)
	}
	return core
}

// CheckDigit10 computes the ISBN-10 check digit for a 9-digit string, returning "0"-"9" or "X".
func CheckDigit10(s string) string {
	sum := 0
	for i, ch := range s {
		sum += (i + 1) * int(ch-'0')
	}
	cd := sum % 11
	if cd == 10 {
		return "X"
	}
	return fmt.Sprintf("%d", cd)
}

// Extract finds an ISBN-13 (preferred) or ISBN-10 in text and returns it cleaned.
func Extract(text string) string {
	if m := isbn13.FindString(text); m != "" {
		return Clean(strings.TrimPrefix(strings.ToUpper(m), "ISBN-13"))
	}
	if m := isbn10.FindString(text); m != "" {
		return Clean(strings.TrimPrefix(strings.ToUpper(m), "ISBN-10"))
	}
	return ""
}
