package citation

import "refgen/src/internal/schema"

func chicagoArticle(r schema.Record) []string {
	cont := join(", ", join(" ", r.Journal, r.Volume), prefix("no. ", r.Issue))
	cont = join(" ", cont, "("+orElse(r.Year, "n.d.")+")")
	cont = join(": ", cont, r.Pages)
	return []string{
		period(FormatAuthors(r.Authors, Chicago)),
		quoted(r.Title),
		period(cont),
		period(link(r)),
	}
}

func chicagoBook(r schema.Record) []string {
	imprint := join(", ", join(": ", r.City, r.Publisher), orElse(r.Year, "n.d."))
	return []string{
		period(FormatAuthors(r.Authors, Chicago)),
		period(r.Title),
		suffix(r.Edition, " ed."),
		period(imprint),
		period(link(r)),
	}
}

func chicagoWebpage(r schema.Record) []string {
	return []string{
		period(FormatAuthors(r.Authors, Chicago)),
		quoted(r.Title),
		period(join(", ", r.Site, orElse(r.Year, "n.d."))),
		prefix("Accessed ", period(longDate(r.AccessDate, layoutAPA))),
		period(r.URL),
	}
}
