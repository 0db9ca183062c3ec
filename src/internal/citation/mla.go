package citation

import "refgen/src/internal/schema"

func mlaArticle(r schema.Record) []string {
	cont := join(", ", r.Journal, prefix("vol. ", r.Volume), prefix("no. ", r.Issue), r.Year, prefix("pp. ", r.Pages))
	return []string{
		period(FormatAuthors(r.Authors, MLA)),
		quoted(r.Title),
		period(cont),
		period(link(r)),
	}
}

func mlaBook(r schema.Record) []string {
	return []string{
		period(FormatAuthors(r.Authors, MLA)),
		period(r.Title),
		period(join(", ", suffix(r.Edition, " ed."), r.Publisher, r.Year)),
		period(link(r)),
	}
}

func mlaWebpage(r schema.Record) []string {
	return []string{
		period(FormatAuthors(r.Authors, MLA)),
		quoted(r.Title),
		period(join(", ", r.Site, r.Year, r.URL)),
		prefix("Accessed ", period(longDate(r.AccessDate, layoutMLA))),
	}
}
