// Package exchange converts records to and from reference-manager
// interchange formats (BibTeX and RIS).
package exchange

import (
	"errors"
	"fmt"
	"strings"

	"refgen/src/internal/names"
	"refgen/src/internal/schema"
)

// Format names an interchange format.
type Format string

const (
	BibTeX Format = "bibtex"
	RIS    Format = "ris"
)

// Formats lists the supported formats.
var Formats = []Format{BibTeX, RIS}

var ErrUnknownFormat = errors.New("unknown export format")

// ParseFormat resolves a format name case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case BibTeX, RIS:
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// Extension is the conventional file extension for f, without the dot.
func (f Format) Extension() string {
	if f == BibTeX {
		return "bib"
	}
	return string(f)
}

// Export renders r in the given format.
func Export(r schema.Record, f Format) (string, error) {
	switch f {
	case BibTeX:
		return ToBibTeX(r), nil
	case RIS:
		return ToRIS(r), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, string(f))
}

// lastFirst renders the non-trivial authors as "Last, First", splitting
// free-text names as needed.
func lastFirst(as schema.Authors) []string {
	out := make([]string, 0, len(as))
	for _, a := range as {
		if a.IsZero() {
			continue
		}
		first, last := strings.TrimSpace(a.FirstName), strings.TrimSpace(a.LastName)
		if !a.IsStructured() {
			first, last = names.Split(a.Raw)
		}
		switch {
		case last == "" && first == "":
			continue
		case last == "":
			out = append(out, first)
		case first == "":
			out = append(out, last)
		default:
			out = append(out, last+", "+first)
		}
	}
	return out
}
