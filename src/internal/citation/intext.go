package citation

import (
	"fmt"
	"strings"

	"refgen/src/internal/schema"
	"refgen/src/internal/stringsx"
)

// InText renders the parenthetical citation used in running text. Numeric
// styles (Vancouver, IEEE) refer to position n in the reference list.
func InText(r schema.Record, style Style, n int) string {
	switch style {
	case Vancouver:
		return fmt.Sprintf("(%d)", n)
	case IEEE:
		return fmt.Sprintf("[%d]", n)
	}

	fams := make([]string, 0, len(r.Authors))
	for _, a := range usable(r.Authors) {
		fams = append(fams, a.LastName)
	}
	if len(fams) == 0 {
		name := stringsx.FirstNonEmpty(r.Site, r.Publisher, r.Journal, r.Title)
		if name == "" {
			name = "Anon"
		}
		fams = []string{name}
	}
	if style == ABNT {
		for i, f := range fams {
			fams[i] = strings.ToUpper(f)
		}
	}

	var who string
	switch {
	case len(fams) == 1:
		who = fams[0]
	case len(fams) == 2 && style == ABNT:
		who = fams[0] + "; " + fams[1]
	case len(fams) == 2 && style == Chicago:
		who = fams[0] + " and " + fams[1]
	case len(fams) == 2:
		who = fams[0] + " & " + fams[1]
	default:
		who = fams[0] + " et al."
	}
	switch style {
	case MLA:
		return "(" + who + ")"
	case Chicago:
		return fmt.Sprintf("(%s %s)", who, orElse(r.Year, "n.d."))
	case ABNT:
		return fmt.Sprintf("(%s, %s)", who, orElse(r.Year, "s.d."))
	default:
		return fmt.Sprintf("(%s, %s)", who, orElse(r.Year, "n.d."))
	}
}
