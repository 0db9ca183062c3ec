package app

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"refgen/src/internal/dates"
	"refgen/src/internal/enrich"
	"refgen/src/internal/schema"
	"refgen/src/internal/stringsx"
	"refgen/src/internal/webfetch"
)

// ErrNoInput is returned when a command is given nothing to build a record from.
var ErrNoInput = errors.New("nothing to cite: pass text, record flags, --file, --page or --pdf")

// Inputs are the record sources a command accepts. Collect returns them in
// merge order: flags, file, lookup, page, pdf.
type Inputs struct {
	Manual    schema.Record
	Authors   []string
	Type      string
	File      string
	Page      string
	Selection string
	PDF       string
	Lookup    bool
}

// Bind registers the input flags on cmd.
func (in *Inputs) Bind(cmd *cobra.Command) {
	f := cmd.Flags()
	r := &in.Manual
	f.StringVar(&in.Type, "type", "", "Record type: article, book, webpage, misc")
	f.StringVar(&r.Title, "title", "", "Title")
	f.StringArrayVarP(&in.Authors, "author", "a", nil, `Author, "Last, First" or "First Last" (repeatable)`)
	f.StringVar(&r.Year, "year", "", "Publication year")
	f.StringVar(&r.Journal, "journal", "", "Journal")
	f.StringVar(&r.Volume, "volume", "", "Volume")
	f.StringVar(&r.Issue, "issue", "", "Issue")
	f.StringVar(&r.Pages, "pages", "", "Pages, e.g. 436-444")
	f.StringVar(&r.DOI, "doi", "", "DOI")
	f.StringVar(&r.ISSN, "issn", "", "ISSN")
	f.StringVar(&r.ISBN, "isbn", "", "ISBN")
	f.StringVar(&r.Publisher, "publisher", "", "Publisher")
	f.StringVar(&r.City, "city", "", "Place of publication")
	f.StringVar(&r.Edition, "edition", "", "Edition")
	f.StringVar(&r.Site, "site", "", "Site name")
	f.StringVar(&r.URL, "url", "", "URL")
	f.StringVar(&r.AccessDate, "access-date", "", "Access date (YYYY-MM-DD)")
	f.StringVarP(&in.File, "file", "f", "", "YAML file holding a record")
	f.StringVar(&in.Page, "page", "", "Fetch metadata from a web page")
	f.StringVar(&in.Selection, "selection", "", "Selected text on the page, used when it names a DOI")
	f.StringVar(&in.PDF, "pdf", "", "Read metadata from a local PDF")
	f.BoolVar(&in.Lookup, "lookup", false, "Enrich the record flags through the lookup APIs")
}

func (in *Inputs) manual() schema.Record {
	r := in.Manual
	r.Type = schema.ParseType(in.Type)
	for _, a := range in.Authors {
		if strings.TrimSpace(a) != "" {
			r.Authors = append(r.Authors, parseAuthor(a))
		}
	}
	if !r.IsEmpty() {
		r.Source = "manual"
	}
	return r
}

// parseAuthor accepts "Last, First" as structured and anything else as raw.
func parseAuthor(s string) schema.Author {
	if last, first, ok := strings.Cut(s, ","); ok {
		return schema.Author{FirstName: strings.TrimSpace(first), LastName: strings.TrimSpace(last)}
	}
	return schema.Author{Raw: strings.TrimSpace(s)}
}

// ReadRecords loads one record, or a list of records, from a YAML file.
func ReadRecords(path string) ([]schema.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var list []schema.Record
	if err := yaml.Unmarshal(data, &list); err == nil {
		return tag(list, "file"), nil
	}
	var one schema.Record
	if err := yaml.Unmarshal(data, &one); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return tag([]schema.Record{one}, "file"), nil
}

func tag(rs []schema.Record, source string) []schema.Record {
	for i := range rs {
		if rs[i].Source == "" {
			rs[i].Source = source
		}
	}
	return rs
}

// lookupText picks the identifier to enrich from: positional text first, then
// the DOI, ISBN or title flags.
func (in *Inputs) lookupText(args []string) string {
	if text := strings.TrimSpace(strings.Join(args, " ")); text != "" {
		return text
	}
	if !in.Lookup {
		return ""
	}
	return stringsx.FirstNonEmpty(in.Manual.DOI, in.Manual.ISBN, in.Manual.Title)
}

func isWebURL(s string) bool {
	u, err := url.Parse(strings.TrimSpace(s))
	return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// hasScheme reports whether text reads as a single URL-like token with a
// scheme, such as "about:blank".
func hasScheme(text string) bool {
	text = strings.TrimSpace(text)
	if strings.ContainsAny(text, " \t\n") {
		return false
	}
	u, err := url.Parse(text)
	return err == nil && u.Scheme != ""
}

// Collect gathers the source records for one generation. A failing lookup or
// page fetch is logged and skipped while other sources remain.
func (a *App) Collect(cmd *cobra.Command, in *Inputs, args []string) ([]schema.Record, []enrich.Attempt, error) {
	ctx := Context(cmd)
	var (
		records  []schema.Record
		attempts []enrich.Attempt
		errs     []error
	)
	if m := in.manual(); !m.IsEmpty() {
		records = append(records, m)
	}
	if in.File != "" {
		rs, err := ReadRecords(in.File)
		if err != nil {
			return nil, nil, err
		}
		records = append(records, rs...)
	}

	page := in.Page
	if text := in.lookupText(args); text != "" {
		q := enrich.Detect(text)
		if q.Kind == enrich.KindTitle && hasScheme(text) {
			if err := webfetch.Eligible(text); errors.Is(err, webfetch.ErrRestricted) {
				return nil, nil, err
			}
		}
		if q.Kind == enrich.KindTitle && isWebURL(text) && page == "" {
			page = text
		} else {
			rs, at, err := a.Enricher().Lookup(ctx, q)
			attempts = at
			if err != nil {
				errs = append(errs, err)
			}
			records = append(records, rs...)
		}
	}

	if page != "" {
		r, err := a.Fetcher().FetchSelection(ctx, page, in.Selection)
		switch {
		case err == nil:
			records = append(records, r)
		case errors.Is(err, webfetch.ErrRestricted):
			return nil, attempts, err
		default:
			errs = append(errs, err)
		}
	}
	if in.PDF != "" {
		r, err := webfetch.ExtractPDF(in.PDF)
		if err != nil {
			errs = append(errs, err)
		} else {
			records = append(records, r)
		}
	}

	if len(records) == 0 {
		if len(errs) > 0 {
			return nil, attempts, errors.Join(errs...)
		}
		return nil, attempts, ErrNoInput
	}
	for _, err := range errs {
		a.Log.Warn("source skipped", "err", err)
	}
	return records, attempts, nil
}

// Stamp appends a record carrying today's access date, the lowest-priority
// source, so a record with a URL always reports when it was read.
func Stamp(records []schema.Record) []schema.Record {
	return append(records, schema.Record{AccessDate: dates.ISO(Now())})
}
