package exchange

import (
	"strings"

	"refgen/src/internal/schema"
	"refgen/src/internal/stringsx"
)

// ToRIS renders r as one RIS record. Tag order is fixed and every tag line
// is written even when its value is empty.
func ToRIS(r schema.Record) string {
	var lines []string
	tag := func(t, v string) {
		lines = append(lines, t+"  - "+stringsx.Squash(v))
	}

	tag("TY", risType(r.Type))
	tag("TI", r.Title)
	authors := lastFirst(r.Authors)
	if len(authors) == 0 {
		tag("AU", "")
	}
	for _, a := range authors {
		tag("AU", a)
	}
	tag("PY", r.Year)
	if r.Type == schema.TypeArticle {
		tag("JO", r.Journal)
	} else {
		pub := r.Publisher
		if strings.TrimSpace(pub) == "" {
			pub = r.Site
		}
		tag("PB", pub)
	}
	tag("VL", r.Volume)
	tag("IS", r.Issue)
	tag("SP", r.Pages)
	tag("DO", r.DOI)
	tag("UR", r.URL)
	tag("ER", "")
	return strings.Join(lines, "\n") + "\n"
}

func risType(t schema.Type) string {
	switch t {
	case schema.TypeBook:
		return "BOOK"
	case schema.TypeArticle:
		return "JOUR"
	default:
		return "ELEC"
	}
}
