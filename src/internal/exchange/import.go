package exchange

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/nickng/bibtex"

	"refgen/src/internal/dates"
	"refgen/src/internal/names"
	"refgen/src/internal/schema"
	"refgen/src/internal/stringsx"
)

var (
	urlMacro   = regexp.MustCompile(`\\url\{?([^{}\s]+)\}?`)
	authorSep  = regexp.MustCompile(`(?i)\s+and\s+`)
	accessNote = regexp.MustCompile(`(?i)^(?:acessado em|accessed:?)\s*`)
)

// ParseBibTeX reads every entry of a BibTeX library into records, in file
// order. Records are returned as read; callers normalize them.
func ParseBibTeX(r io.Reader) ([]schema.Record, error) {
	lib, err := bibtex.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse bibtex: %w", err)
	}
	out := make([]schema.Record, 0, len(lib.Entries))
	for _, e := range lib.Entries {
		out = append(out, fromEntry(e))
	}
	return out, nil
}

func fromEntry(e *bibtex.BibEntry) schema.Record {
	fields := make(map[string]string, len(e.Fields))
	for k, v := range e.Fields {
		if v != nil {
			fields[strings.ToLower(k)] = stripBraces(v.String())
		}
	}
	get := func(keys ...string) string {
		vals := make([]string, len(keys))
		for i, k := range keys {
			vals[i] = fields[k]
		}
		return stringsx.FirstNonEmpty(vals...)
	}

	url := get("url")
	if url == "" {
		if m := urlMacro.FindStringSubmatch(fields["howpublished"]); m != nil {
			url = m[1]
		}
	}
	access := get("urldate")
	if access == "" && accessNote.MatchString(fields["note"]) {
		access = accessNote.ReplaceAllString(fields["note"], "")
	}
	rec := schema.Record{
		Type:       entryType(e.Type, url),
		Title:      get("title"),
		Authors:    parseAuthors(get("author", "editor")),
		Year:       stringsx.FirstNonEmpty(get("year"), dates.ExtractYear(get("date"))),
		Journal:    get("journal", "journaltitle", "booktitle"),
		Volume:     get("volume"),
		Issue:      get("number", "issue"),
		Pages:      strings.ReplaceAll(get("pages"), "--", "-"),
		DOI:        get("doi"),
		ISSN:       get("issn"),
		Publisher:  get("publisher", "organization", "institution"),
		City:       get("address", "location"),
		Edition:    get("edition"),
		ISBN:       get("isbn"),
		URL:        url,
		AccessDate: access,
		Source:     "bibtex",
	}
	if rec.Type == schema.TypeWebpage && rec.Publisher == "" {
		rec.Site = get("howpublished")
		if urlMacro.MatchString(rec.Site) {
			rec.Site = ""
		}
	}
	return rec
}

func entryType(t, url string) schema.Type {
	switch strings.ToLower(strings.TrimSpace(t)) {
	case "article":
		return schema.TypeArticle
	case "book", "inbook", "incollection", "booklet":
		return schema.TypeBook
	case "online", "electronic", "webpage", "www":
		return schema.TypeWebpage
	}
	if url != "" {
		return schema.TypeWebpage
	}
	return schema.TypeMisc
}

func parseAuthors(s string) schema.Authors {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	var out schema.Authors
	for _, part := range authorSep.Split(s, -1) {
		first, last := names.Split(part)
		if first == "" && last == "" {
			continue
		}
		out = append(out, schema.Author{FirstName: first, LastName: last})
	}
	return out
}
