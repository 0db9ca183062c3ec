package names

import (
	"strings"
	"unicode"
)

// Initials converts a given name string into spaced initials: "Jane Q" -> "J. Q.".
func Initials(given string) string {
	return strings.Join(initials(given, "."), " ")
}

// CompactInitials converts a given name string into unpunctuated initials: "Jane Q" -> "JQ".
func CompactInitials(given string) string {
	return strings.Join(initials(given, ""), "")
}

func initials(given, suffix string) []string {
	var out []string
	for _, w := range strings.Fields(given) {
		w = strings.TrimLeftFunc(w, func(r rune) bool { return !unicode.IsLetter(r) && !unicode.IsDigit(r) })
		r := []rune(w)
		if len(r) == 0 {
			continue
		}
		out = append(out, strings.ToUpper(string(r[0]))+suffix)
	}
	return out
}

// Split splits a free-text name into (first, last). It accepts either
// "Last, First Names" or "First Names Last"; in the second form the last
// whitespace-separated token is the last name and everything before it the
// first name.
func Split(name string) (first, last string) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ""
	}
	if i := strings.Index(name, ","); i >= 0 {
		last = strings.TrimSpace(name[:i])
		first = strings.Join(strings.Fields(name[i+1:]), " ")
		if last != "" {
			return first, last
		}
		name = first
	}
	parts := strings.Fields(name)
	if len(parts) == 0 {
		return "", ""
	}
	last = parts[len(parts)-1]
	first = strings.Join(parts[:len(parts)-1], " ")
	return first, last
}

// Full joins first and last name with a single space, skipping empties.
func Full(first, last string) string {
	return strings.TrimSpace(strings.TrimSpace(first) + " " + strings.TrimSpace(last))
}
