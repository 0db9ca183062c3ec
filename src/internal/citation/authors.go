package citation

import (
	"strings"

	"refgen/src/internal/names"
	"refgen/src/internal/schema"
)

// apaListLimit is the number of authors APA lists before "et al.".
const apaListLimit = 19

// FormatAuthors renders an author list as one string following the style's
// name and separator rules. Trivial entries are skipped; no authors yields "".
func FormatAuthors(authors []schema.Author, style Style) string {
	as := usable(authors)
	if len(as) == 0 {
		return ""
	}
	switch style {
	case ABNT:
		return joinNames(as, abntName, "; ")
	case Vancouver:
		return joinNames(as, vancouverName, ", ")
	case IEEE:
		return joinNames(as, ieeeName, ", ")
	case Chicago:
		return firstWithEtAl(as, " et al.")
	case MLA:
		return firstWithEtAl(as, ", et al.")
	default:
		return apaAuthors(as)
	}
}

// usable drops trivial authors and splits any free-text names still present.
func usable(authors []schema.Author) []schema.Author {
	out := make([]schema.Author, 0, len(authors))
	for _, a := range authors {
		if a.IsZero() {
			continue
		}
		if !a.IsStructured() {
			a.FirstName, a.LastName = names.Split(a.Raw)
		}
		a.FirstName, a.LastName = strings.TrimSpace(a.FirstName), strings.TrimSpace(a.LastName)
		if a.LastName == "" {
			a.FirstName, a.LastName = "", a.FirstName
		}
		if a.LastName == "" {
			continue
		}
		out = append(out, a)
	}
	return out
}

func joinNames(as []schema.Author, name func(schema.Author) string, sep string) string {
	parts := make([]string, len(as))
	for i, a := range as {
		parts[i] = name(a)
	}
	return strings.Join(parts, sep)
}

func apaAuthors(as []schema.Author) string {
	switch n := len(as); {
	case n == 1:
		return apaName(as[0])
	case n == 2:
		return apaName(as[0]) + " & " + apaName(as[1])
	case n <= apaListLimit:
		return joinNames(as, apaName, ", ")
	default:
		return joinNames(as[:apaListLimit], apaName, ", ") + ", et al."
	}
}

func firstWithEtAl(as []schema.Author, etAl string) string {
	first := names.Full(as[0].FirstName, as[0].LastName)
	if len(as) > 1 {
		return first + etAl
	}
	return first
}

// apaName renders "Last, F. M.".
func apaName(a schema.Author) string {
	if in := names.Initials(a.FirstName); in != "" {
		return a.LastName + ", " + in
	}
	return a.LastName
}

// abntName renders "LAST, F. M.".
func abntName(a schema.Author) string {
	last := strings.ToUpper(a.LastName)
	if in := names.Initials(a.FirstName); in != "" {
		return last + ", " + in
	}
	return last
}

// vancouverName renders "Last FM".
func vancouverName(a schema.Author) string {
	if in := names.CompactInitials(a.FirstName); in != "" {
		return a.LastName + " " + in
	}
	return a.LastName
}

// ieeeName renders "F. M. Last".
func ieeeName(a schema.Author) string {
	if in := names.Initials(a.FirstName); in != "" {
		return in + " " + a.LastName
	}
	return a.LastName
}
