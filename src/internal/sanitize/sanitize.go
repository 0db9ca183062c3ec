package sanitize

import (
	"net/url"
	"strings"

	"refgen/src/internal/schema"
)

// CleanString trims and removes ASCII control characters except tab/newline/carriage
// return up to limit bytes (if limit <= 0, no truncation).
func CleanString(s string, limit int) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return s
	}
	var b strings.Builder
	for _, r := range s {
		if r == '\n' || r == '\t' || r == '\r' || (r >= 0x20 && r != 0x7f) {
			b.WriteRune(r)
			if limit > 0 && b.Len() >= limit {
				break
			}
		}
	}
	return strings.TrimSpace(b.String())
}

// CleanLine is CleanString with inner whitespace runs collapsed to one space.
func CleanLine(s string, limit int) string {
	return strings.Join(strings.Fields(CleanString(s, limit)), " ")
}

// CleanURL returns a validated http/https URL or empty string.
func CleanURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return ""
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return ""
	}
	u.Path = strings.ReplaceAll(u.Path, " ", "%20")
	return u.String()
}

// CleanAuthors sanitizes author names and drops trivial entries.
func CleanAuthors(authors schema.Authors) schema.Authors {
	if len(authors) == 0 {
		return nil
	}
	const limit = 256
	out := make(schema.Authors, 0, len(authors))
	for _, a := range authors {
		c := schema.Author{
			FirstName: CleanLine(a.FirstName, limit),
			LastName:  CleanLine(a.LastName, limit),
			Raw:       CleanLine(a.Raw, limit),
		}
		if c.IsZero() {
			continue
		}
		out = append(out, c)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// CleanRecord applies conservative sanitization to every string in a provider record.
func CleanRecord(r *schema.Record) {
	if r == nil {
		return
	}
	r.Title = CleanLine(r.Title, 1024)
	r.Year = CleanString(r.Year, 64)
	r.Journal = CleanLine(r.Journal, 512)
	r.Volume = CleanString(r.Volume, 64)
	r.Issue = CleanString(r.Issue, 64)
	r.Pages = CleanString(r.Pages, 64)
	r.DOI = CleanString(r.DOI, 256)
	r.ISSN = CleanString(r.ISSN, 32)
	r.Publisher = CleanLine(r.Publisher, 512)
	r.City = CleanLine(r.City, 256)
	r.Edition = CleanString(r.Edition, 64)
	r.ISBN = CleanString(r.ISBN, 32)
	r.Site = CleanLine(r.Site, 256)
	r.URL = CleanURL(r.URL)
	r.AccessDate = CleanString(r.AccessDate, 32)
	r.Authors = CleanAuthors(r.Authors)
}
