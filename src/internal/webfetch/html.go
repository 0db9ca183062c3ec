package webfetch

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"refgen/src/internal/dates"
	"refgen/src/internal/doi"
	"refgen/src/internal/sanitize"
	"refgen/src/internal/schema"
	"refgen/src/internal/stringsx"
)

// ParseHTML reads citation metadata from an HTML document: Highwire
// citation_* tags, Dublin Core, OpenGraph and JSON-LD, falling back to the
// <title> element and the page text. selection is the user's highlighted
// text, consulted for a DOI and as a last-resort title. The record has no
// access date; callers stamp it.
func ParseHTML(r io.Reader, pageURL, selection string) (schema.Record, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return schema.Record{}, fmt.Errorf("parse html: %w", err)
	}
	meta := func(selectors ...string) string {
		for _, sel := range selectors {
			if v := strings.TrimSpace(doc.Find(sel).First().AttrOr("content", "")); v != "" {
				return v
			}
		}
		return ""
	}
	ld := parseJSONLD(doc)

	rec := schema.Record{
		Type: schema.TypeWebpage,
		Title: stringsx.FirstNonEmpty(
			meta(`meta[name="citation_title"]`, `meta[property="og:title"]`, `meta[name="twitter:title"]`, `meta[name="title"]`, `meta[name="dc.title"]`, `meta[name="DC.title"]`),
			ld.headline, ld.name,
			doc.Find("title").First().Text(),
			selection,
		),
		Year: dates.ExtractYear(stringsx.FirstNonEmpty(
			meta(`meta[name="citation_publication_date"]`, `meta[name="citation_date"]`, `meta[name="dc.date"]`, `meta[name="DC.date"]`, `meta[name="DC.Date"]`, `meta[property="article:published_time"]`, `meta[name="date"]`),
			ld.datePublished,
		)),
		Journal:   meta(`meta[name="citation_journal_title"]`),
		Volume:    meta(`meta[name="citation_volume"]`),
		Issue:     meta(`meta[name="citation_issue"]`),
		Pages:     pageRange(meta(`meta[name="citation_firstpage"]`), meta(`meta[name="citation_lastpage"]`)),
		ISSN:      meta(`meta[name="citation_issn"]`),
		ISBN:      meta(`meta[name="citation_isbn"]`),
		Publisher: meta(`meta[name="citation_publisher"]`, `meta[name="dc.publisher"]`, `meta[name="DC.publisher"]`),
		Site:      stringsx.FirstNonEmpty(meta(`meta[property="og:site_name"]`), ld.publisher, hostOf(pageURL)),
		URL:       strings.TrimSpace(pageURL),
		Source:    "page",
	}
	if rec.Journal != "" {
		rec.Type = schema.TypeArticle
	}

	rec.DOI = doi.Extract(meta(`meta[name="citation_doi"]`, `meta[name="dc.identifier"]`, `meta[name="DC.identifier"]`, `meta[name="dc.Identifier"]`, `meta[name="DOI"]`))
	if rec.DOI == "" {
		rec.DOI = doi.Extract(selection)
	}
	if rec.DOI == "" {
		rec.DOI = doi.Extract(doc.Find("body").Text())
	}

	doc.Find(`meta[name="citation_author"], meta[name="author"], meta[property="article:author"], meta[name="dc.creator"], meta[name="DC.creator"]`).Each(func(_ int, s *goquery.Selection) {
		for _, name := range splitAuthors(s.AttrOr("content", "")) {
			rec.Authors = append(rec.Authors, schema.Author{Raw: name})
		}
	})
	if len(rec.Authors) == 0 {
		for _, name := range ld.authors {
			rec.Authors = append(rec.Authors, schema.Author{Raw: name})
		}
	}
	sanitize.CleanRecord(&rec)
	return rec, nil
}

func pageRange(first, last string) string {
	switch {
	case first == "":
		return ""
	case last == "" || last == first:
		return first
	default:
		return first + "-" + last
	}
}

// splitAuthors splits a ";"-separated author list, dropping profile URLs.
func splitAuthors(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ";") {
		p = strings.TrimSpace(p)
		if p == "" || strings.HasPrefix(p, "http://") || strings.HasPrefix(p, "https://") {
			continue
		}
		out = append(out, p)
	}
	return out
}

type linkedData struct {
	headline, name, datePublished, publisher string
	authors                                  []string
}

// parseJSONLD returns the first JSON-LD object typed as an article, or the
// first object when none is.
func parseJSONLD(doc *goquery.Document) linkedData {
	var obj map[string]any
	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		var v any
		if err := json.Unmarshal([]byte(s.Text()), &v); err != nil {
			return true
		}
		switch t := v.(type) {
		case []any:
			for _, it := range t {
				if o, ok := it.(map[string]any); ok && hasArticleType(o["@type"]) {
					obj = o
					return false
				}
			}
		case map[string]any:
			if g, ok := t["@graph"].([]any); ok {
				for _, it := range g {
					if o, ok := it.(map[string]any); ok && hasArticleType(o["@type"]) {
						obj = o
						return false
					}
				}
			}
			obj = t
			return false
		}
		return true
	})
	if obj == nil {
		return linkedData{}
	}
	var out linkedData
	out.headline, _ = obj["headline"].(string)
	out.name, _ = obj["name"].(string)
	out.datePublished, _ = obj["datePublished"].(string)
	out.publisher = pickName(obj["publisher"])
	out.authors = pickNames(obj["author"])
	return out
}

func hasArticleType(v any) bool {
	switch t := v.(type) {
	case string:
		return strings.Contains(strings.ToLower(t), "article")
	case []any:
		for _, it := range t {
			if hasArticleType(it) {
				return true
			}
		}
	}
	return false
}

func pickName(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case map[string]any:
		n, _ := t["name"].(string)
		return n
	}
	return ""
}

func pickNames(v any) []string {
	var out []string
	switch t := v.(type) {
	case []any:
		for _, it := range t {
			if n := pickName(it); n != "" {
				out = append(out, n)
			}
		}
	default:
		if n := pickName(t); n != "" {
			out = append(out, n)
		}
	}
	return out
}
