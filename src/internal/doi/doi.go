package doi

import (
	"regexp"
	"strings"
)

// Resolver is the base used to reconstitute a DOI as a link.
const Resolver = "https://doi.org/"

var (
	prefix  = regexp.MustCompile(`(?i)^(?:https?://)?(?:dx\.)?doi\.org/`)
	label   = regexp.MustCompile(`(?i)^doi:\s*`)
	pattern = regexp.MustCompile(`(?i)10\.\d{4,9}/[-._;()/:A-Z0-9]+`)
)

// Clean strips any resolver prefix (http(s)://, dx., doi.org/) and a leading
// "doi:" label from a DOI.
func Clean(s string) string {
	s = strings.TrimSpace(s)
	s = label.ReplaceAllString(s, "")
	s = prefix.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

// URL renders a DOI as https://doi.org/<doi>, or "" for an empty DOI.
func URL(s string) string {
	s = Clean(s)
	if s == "" {
		return ""
	}
	return Resolver + s
}

// Extract finds a DOI-like token inside arbitrary text (a URL, a page body).
func Extract(s string) string {
	m := pattern.FindString(s)
	return strings.TrimRight(m, ".,;:)")
}
