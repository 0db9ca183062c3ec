// Package metadata reconciles source records into one canonical record.
package metadata

import (
	"strings"

	"refgen/src/internal/schema"
)

// stringFields lists every string-valued field of a record so the merge
// visits them uniformly.
func stringFields(r *schema.Record) []*string {
	return []*string{
		(*string)(&r.Type),
		&r.Title, &r.Year,
		&r.Journal, &r.Volume, &r.Issue, &r.Pages, &r.DOI, &r.ISSN,
		&r.Publisher, &r.City, &r.Edition, &r.ISBN,
		&r.Site, &r.URL, &r.AccessDate,
	}
}

// Merge folds records left to right into the first one. A field of the
// accumulator is replaced when it is empty and the candidate's is not;
// author lists are replaced when the candidate's list is strictly longer.
// A single record is returned unchanged.
func Merge(records []schema.Record) schema.Record {
	switch len(records) {
	case 0:
		return schema.Record{}
	case 1:
		return records[0]
	}
	acc := records[0]
	acc.Authors = append(schema.Authors(nil), acc.Authors...)
	for _, cand := range records[1:] {
		dst, src := stringFields(&acc), stringFields(&cand)
		for i := range dst {
			if strings.TrimSpace(*dst[i]) == "" && strings.TrimSpace(*src[i]) != "" {
				*dst[i] = *src[i]
			}
		}
		if len(cand.Authors) > len(acc.Authors) {
			acc.Authors = append(schema.Authors(nil), cand.Authors...)
		}
		if !acc.IsOpenAccess && cand.IsOpenAccess {
			acc.IsOpenAccess = true
		}
	}
	acc.Source = joinSources(records)
	return acc
}

func joinSources(records []schema.Record) string {
	var out []string
	seen := map[string]bool{}
	for _, r := range records {
		s := strings.TrimSpace(r.Source)
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return strings.Join(out, "+")
}
