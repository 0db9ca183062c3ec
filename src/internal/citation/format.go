package citation

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"refgen/src/internal/dates"
	"refgen/src/internal/doi"
	"refgen/src/internal/metadata"
	"refgen/src/internal/schema"
)

// template assembles the ordered fragments of one (style, type) citation.
// Fragments carry their own punctuation; empty fragments are dropped.
type template func(r schema.Record) []string

var templates = map[Style]map[schema.Type]template{
	ABNT:      {schema.TypeArticle: abntArticle, schema.TypeBook: abntBook, schema.TypeWebpage: abntWebpage},
	APA:       {schema.TypeArticle: apaArticle, schema.TypeBook: apaBook, schema.TypeWebpage: apaWebpage},
	MLA:       {schema.TypeArticle: mlaArticle, schema.TypeBook: mlaBook, schema.TypeWebpage: mlaWebpage},
	Chicago:   {schema.TypeArticle: chicagoArticle, schema.TypeBook: chicagoBook, schema.TypeWebpage: chicagoWebpage},
	Vancouver: {schema.TypeArticle: vancouverArticle, schema.TypeBook: vancouverBook, schema.TypeWebpage: vancouverWebpage},
	IEEE:      {schema.TypeArticle: ieeeArticle, schema.TypeBook: ieeeBook, schema.TypeWebpage: ieeeWebpage},
}

// Format renders r in the given style. The template is chosen by the record
// type; misc and unrecognized types use the style's webpage template, and an
// absent type is inferred first. Missing fields shorten the result.
func Format(r schema.Record, style Style) string {
	if r.Type == "" {
		r.Type = metadata.InferType(r)
	}
	family, ok := templates[style]
	if !ok {
		family = templates[APA]
	}
	tpl, ok := family[r.Type]
	if !ok {
		tpl = family[schema.TypeWebpage]
	}
	return finish(tpl(r))
}

var (
	spaceRun         = regexp.MustCompile(`\s+`)
	spaceBeforePunct = regexp.MustCompile(`\s+([.,;:])`)
)

// finish joins fragments with single spaces and removes whitespace left in
// front of punctuation.
func finish(parts []string) string {
	out := strings.Join(compact(parts...), " ")
	out = spaceRun.ReplaceAllString(out, " ")
	out = spaceBeforePunct.ReplaceAllString(out, "$1")
	return strings.TrimSpace(out)
}

func compact(vals ...string) []string {
	var out []string
	for _, v := range vals {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// join joins the non-empty values with sep.
func join(sep string, vals ...string) string { return strings.Join(compact(vals...), sep) }

// period terminates s with a period unless it already ends a sentence.
func period(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	if r, _ := utf8.DecodeLastRuneInString(s); strings.ContainsRune(".?!", r) {
		return s
	}
	return s + "."
}

// suffix appends sfx to s when s is non-empty.
func suffix(s, sfx string) string {
	if s = strings.TrimSpace(s); s == "" {
		return ""
	}
	return s + sfx
}

// prefix prepends pfx to s when s is non-empty.
func prefix(pfx, s string) string {
	if s = strings.TrimSpace(s); s == "" {
		return ""
	}
	return pfx + s
}

// quoted renders "Title." with the terminal period inside the quotes.
func quoted(title string) string {
	if t := period(title); t != "" {
		return `"` + t + `"`
	}
	return ""
}

// orElse returns s, or the placeholder when s is blank.
func orElse(year, placeholder string) string {
	if y := strings.TrimSpace(year); y != "" {
		return y
	}
	return placeholder
}

// link is the DOI as a resolver URL, or the URL when there is no DOI.
func link(r schema.Record) string {
	if u := doi.URL(r.DOI); u != "" {
		return u
	}
	return strings.TrimSpace(r.URL)
}

// volIssue renders "12(3)"; without a volume the issue is dropped.
func volIssue(vol, iss string) string {
	vol, iss = strings.TrimSpace(vol), strings.TrimSpace(iss)
	if vol == "" {
		return ""
	}
	if iss == "" {
		return vol
	}
	return vol + "(" + iss + ")"
}

// longDate renders an access date with the given layout, or verbatim when unparseable.
func longDate(s, layout string) string {
	if t, ok := dates.Parse(s); ok {
		return t.Format(layout)
	}
	return strings.TrimSpace(s)
}

const (
	layoutAPA = "January 2, 2006"
	layoutMLA = "2 Jan. 2006"
)
