package citation

import (
	"strings"

	"refgen/src/internal/dates"
	"refgen/src/internal/doi"
	"refgen/src/internal/schema"
)

func abntYear(r schema.Record) string { return period(orElse(r.Year, "s.d.")) }

// abntAccess renders "Disponível em: <url>. Acesso em: DD mon. YYYY."
func abntAccess(r schema.Record) []string {
	return []string{
		prefix("Disponível em: ", period(r.URL)),
		prefix("Acesso em: ", period(dates.FormatABNT(r.AccessDate))),
	}
}

func abntArticle(r schema.Record) []string {
	parts := []string{
		period(FormatAuthors(r.Authors, ABNT)),
		period(r.Title),
		suffix(r.Journal, ","),
		prefix("v. ", suffix(r.Volume, ",")),
		prefix("n. ", suffix(r.Issue, ",")),
		prefix("p. ", suffix(r.Pages, ",")),
		abntYear(r),
	}
	if u := doi.URL(r.DOI); u != "" {
		return append(parts, "DOI: "+period(u))
	}
	return append(parts, prefix("Disponível em: ", period(r.URL)))
}

func abntBook(r schema.Record) []string {
	return []string{
		period(FormatAuthors(r.Authors, ABNT)),
		period(r.Title),
		suffix(strings.TrimSuffix(strings.TrimSpace(r.Edition), "."), ". ed."),
		abntImprint(r),
		abntYear(r),
		suffix(r.Pages, " p."),
		prefix("ISBN ", period(r.ISBN)),
	}
}

// abntImprint renders "City: Publisher," with the [S.l.]/[s.n.] markers
// standing in for whichever half is missing.
func abntImprint(r schema.Record) string {
	city, pub := strings.TrimSpace(r.City), strings.TrimSpace(r.Publisher)
	if city == "" && pub == "" {
		return ""
	}
	return orElse(city, "[S.l.]") + ": " + orElse(pub, "[s.n.]") + ","
}

func abntWebpage(r schema.Record) []string {
	parts := []string{
		period(FormatAuthors(r.Authors, ABNT)),
		period(r.Title),
		suffix(r.Site, ","),
		abntYear(r),
	}
	return append(parts, abntAccess(r)...)
}
