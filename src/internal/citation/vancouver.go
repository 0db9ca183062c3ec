package citation

import "refgen/src/internal/schema"

func vancouverAvailable(r schema.Record) string { return prefix("Available from: ", link(r)) }

func vancouverArticle(r schema.Record) []string {
	date := r.Year
	if r.Volume != "" {
		date = join(";", date, r.Volume)
	}
	if r.Issue != "" {
		date += "(" + r.Issue + ")"
	}
	date = join(":", date, r.Pages)
	return []string{
		period(FormatAuthors(r.Authors, Vancouver)),
		period(r.Title),
		period(r.Journal),
		period(date),
		vancouverAvailable(r),
	}
}

func vancouverBook(r schema.Record) []string {
	return []string{
		period(FormatAuthors(r.Authors, Vancouver)),
		period(r.Title),
		period(suffix(r.Edition, " ed")),
		period(join("; ", join(": ", r.City, r.Publisher), r.Year)),
		vancouverAvailable(r),
	}
}

func vancouverWebpage(r schema.Record) []string {
	return []string{
		period(FormatAuthors(r.Authors, Vancouver)),
		period(suffix(r.Title, " [Internet]")),
		period(join(" ", join("; ", r.Site, r.Year), prefix("[cited ", suffix(r.AccessDate, "]")))),
		prefix("Available from: ", r.URL),
	}
}
