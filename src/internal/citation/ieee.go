package citation

import (
	"strings"
	"unicode/utf8"

	"refgen/src/internal/doi"
	"refgen/src/internal/schema"
)

// ieeeItem is one comma-separated element of an IEEE reference body.
type ieeeItem struct {
	text   string
	quoted bool
}

// ieeeBody joins items with commas and ends the last one with a period.
// Quoted items keep their punctuation inside the quotes.
func ieeeBody(items ...ieeeItem) string {
	var kept []ieeeItem
	for _, it := range items {
		if it.text = strings.TrimSpace(it.text); it.text != "" {
			kept = append(kept, it)
		}
	}
	parts := make([]string, len(kept))
	for i, it := range kept {
		last := i == len(kept)-1
		var s string
		switch {
		case last:
			s = period(it.text)
		case endsSentence(it.text):
			s = it.text
		default:
			s = it.text + ","
		}
		if it.quoted {
			s = `"` + s + `"`
		}
		parts[i] = s
	}
	return strings.Join(parts, " ")
}

func endsSentence(s string) bool {
	r, _ := utf8.DecodeLastRuneInString(s)
	return strings.ContainsRune(".?!", r)
}

func ieeeLink(r schema.Record) string {
	if u := doi.URL(r.DOI); u != "" {
		return "doi: " + period(u)
	}
	return prefix("[Online]. Available: ", r.URL)
}

func ieeeArticle(r schema.Record) []string {
	return []string{
		ieeeBody(
			ieeeItem{text: FormatAuthors(r.Authors, IEEE)},
			ieeeItem{text: r.Title, quoted: true},
			ieeeItem{text: r.Journal},
			ieeeItem{text: prefix("vol. ", r.Volume)},
			ieeeItem{text: prefix("no. ", r.Issue)},
			ieeeItem{text: prefix("pp. ", r.Pages)},
			ieeeItem{text: r.Year},
		),
		ieeeLink(r),
	}
}

func ieeeBook(r schema.Record) []string {
	return []string{
		ieeeBody(
			ieeeItem{text: FormatAuthors(r.Authors, IEEE)},
			ieeeItem{text: r.Title},
			ieeeItem{text: suffix(r.Edition, " ed")},
			ieeeItem{text: join(": ", r.City, r.Publisher)},
			ieeeItem{text: r.Year},
		),
		ieeeLink(r),
	}
}

func ieeeWebpage(r schema.Record) []string {
	return []string{
		ieeeBody(
			ieeeItem{text: FormatAuthors(r.Authors, IEEE)},
			ieeeItem{text: r.Title, quoted: true},
			ieeeItem{text: r.Site},
			ieeeItem{text: r.Year},
		),
		prefix("[Online]. Available: ", r.URL),
	}
}
