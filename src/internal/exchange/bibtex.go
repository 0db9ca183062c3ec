package exchange

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"refgen/src/internal/dates"
	"refgen/src/internal/schema"
	"refgen/src/internal/stringsx"
)

type bibField struct{ key, value string }

// ToBibTeX renders r as a single BibTeX entry. Every field of the entry type
// is written, with empty values as {}.
func ToBibTeX(r schema.Record) string {
	typ, fields := bibFields(r)
	var b strings.Builder
	fmt.Fprintf(&b, "@%s{%s,\n", typ, bibKey(r))
	for i, f := range fields {
		b.WriteString("  " + f.key + " = " + f.value)
		if i < len(fields)-1 {
			b.WriteString(",")
		}
		b.WriteString("\n")
	}
	b.WriteString("}\n")
	return b.String()
}

func bibFields(r schema.Record) (string, []bibField) {
	author := bibValue(strings.Join(lastFirst(r.Authors), " and "))
	title := "{" + bibValue(r.Title) + "}"
	switch r.Type {
	case schema.TypeArticle:
		return "article", []bibField{
			{"author", author},
			{"title", title},
			{"journal", bibValue(r.Journal)},
			{"year", bibValue(r.Year)},
			{"volume", bibValue(r.Volume)},
			{"number", bibValue(r.Issue)},
			{"pages", bibValue(r.Pages)},
			{"doi", bibValue(r.DOI)},
			{"url", bibValue(r.URL)},
		}
	case schema.TypeBook:
		return "book", []bibField{
			{"author", author},
			{"title", title},
			{"publisher", bibValue(r.Publisher)},
			{"address", bibValue(r.City)},
			{"edition", bibValue(r.Edition)},
			{"year", bibValue(r.Year)},
			{"isbn", bibValue(r.ISBN)},
			{"url", bibValue(r.URL)},
		}
	default:
		url := ""
		if u := stripBraces(r.URL); u != "" {
			url = `\url{` + u + `}`
		}
		note := ""
		if d := dates.FormatABNT(r.AccessDate); d != "" {
			note = "Acessado em " + d
		}
		return "misc", []bibField{
			{"author", author},
			{"title", title},
			{"howpublished", "{" + url + "}"},
			{"year", bibValue(r.Year)},
			{"note", bibValue(note)},
		}
	}
}

// bibValue wraps v in braces after removing any braces and line breaks it
// carries.
func bibValue(v string) string {
	return "{" + stripBraces(v) + "}"
}

func stripBraces(v string) string {
	return stringsx.Squash(strings.NewReplacer("{", "", "}", "").Replace(v))
}

// bibKey builds the citation key from the first available of site,
// publisher, journal and first author's last name, followed by the year.
func bibKey(r schema.Record) string {
	var last string
	if as := lastFirst(r.Authors); len(as) > 0 {
		last, _, _ = strings.Cut(as[0], ",")
	}
	token := stringsx.FirstNonEmpty(keyToken(r.Site), keyToken(r.Publisher), keyToken(r.Journal), keyToken(last), "ref")
	return token + keyToken(r.Year)
}

// keyToken strips accents and drops everything that is not an ASCII letter
// or digit.
func keyToken(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	if out, _, err := transform.String(t, s); err == nil {
		s = out
	}
	return strings.Map(func(r rune) rune {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			return r
		}
		return -1
	}, s)
}
