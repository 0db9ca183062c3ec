package citation

import "refgen/src/internal/schema"

func apaHead(r schema.Record) []string {
	return []string{
		period(FormatAuthors(r.Authors, APA)),
		"(" + orElse(r.Year, "n.d.") + ").",
	}
}

func apaArticle(r schema.Record) []string {
	cont := join(", ", r.Journal, volIssue(r.Volume, r.Issue), r.Pages)
	return append(apaHead(r), period(r.Title), period(cont), link(r))
}

func apaBook(r schema.Record) []string {
	title := join(" ", r.Title, prefix("(", suffix(r.Edition, " ed.)")))
	parts := append(apaHead(r), period(title), period(r.Publisher))
	switch {
	case r.DOI != "":
		return append(parts, link(r))
	case r.ISBN != "":
		return append(parts, "ISBN: "+period(r.ISBN))
	default:
		return append(parts, r.URL)
	}
}

func apaWebpage(r schema.Record) []string {
	parts := append(apaHead(r), period(r.Title), period(r.Site))
	if r.AccessDate != "" && r.URL != "" {
		return append(parts, "Retrieved "+longDate(r.AccessDate, layoutAPA)+", from "+r.URL)
	}
	return append(parts, r.URL)
}
