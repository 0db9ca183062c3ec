package metadata

import (
	"strings"

	"refgen/src/internal/dates"
	"refgen/src/internal/doi"
	"refgen/src/internal/isbn"
	"refgen/src/internal/names"
	"refgen/src/internal/schema"
)

// Normalize fills in derived fields and coerces malformed ones. It never
// fails: anything it cannot interpret degrades to an empty value.
func Normalize(r schema.Record) schema.Record {
	for _, f := range stringFields(&r) {
		*f = strings.TrimSpace(*f)
	}
	// the type follows the fields as delivered, before identifiers are cleaned
	if r.Type == "" {
		r.Type = InferType(r)
	} else if t := schema.ParseType(string(r.Type)); t != "" {
		r.Type = t
	}
	r.Authors = normalizeAuthors(r.Authors)
	r.Year = dates.ExtractYear(r.Year)
	r.DOI = doi.Clean(r.DOI)
	r.ISBN = isbn.Clean(r.ISBN)
	return r
}

// InferType applies the type priority: ISBN, then journal or DOI, then URL.
func InferType(r schema.Record) schema.Type {
	switch {
	case strings.TrimSpace(r.ISBN) != "":
		return schema.TypeBook
	case strings.TrimSpace(r.Journal) != "" || strings.TrimSpace(r.DOI) != "":
		return schema.TypeArticle
	case strings.TrimSpace(r.URL) != "":
		return schema.TypeWebpage
	default:
		return schema.TypeMisc
	}
}

func normalizeAuthors(in schema.Authors) schema.Authors {
	if len(in) == 0 {
		return nil
	}
	out := make(schema.Authors, 0, len(in))
	for _, a := range in {
		if a.IsZero() {
			continue
		}
		if a.IsStructured() {
			if strings.TrimSpace(a.LastName) == "" {
				// a lone given name is all we have; it becomes the last name
				a.FirstName, a.LastName = "", a.FirstName
			}
			out = append(out, schema.Author{FirstName: a.FirstName, LastName: a.LastName})
			continue
		}
		first, last := names.Split(a.Raw)
		if last == "" {
			continue
		}
		out = append(out, schema.Author{FirstName: first, LastName: last})
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
