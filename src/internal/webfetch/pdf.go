package webfetch

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"

	"refgen/src/internal/dates"
	"refgen/src/internal/doi"
	"refgen/src/internal/sanitize"
	"refgen/src/internal/schema"
)

// ErrNoPDFMetadata is returned when a PDF yields neither text nor an info
// dictionary.
var ErrNoPDFMetadata = errors.New("no metadata found in pdf")

// pdfScanPages is how many leading pages are searched for a DOI.
const pdfScanPages = 3

var (
	rePDFTitle    = regexp.MustCompile(`(?s)/Title\s*\((.*?[^\\])\)`)
	rePDFAuthor   = regexp.MustCompile(`(?s)/Author\s*\((.*?[^\\])\)`)
	rePDFCreation = regexp.MustCompile(`/CreationDate\s*\(D:(\d{4})`)
)

// ExtractPDF reads metadata from a PDF file on disk.
func ExtractPDF(path string) (schema.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return schema.Record{}, err
	}
	return ExtractPDFBytes(data, "")
}

// ExtractPDFBytes reads metadata from PDF bytes. The DOI comes from the text
// of the first pages or the raw bytes; the title from the info dictionary or
// the first substantial line of page one.
func ExtractPDFBytes(data []byte, sourceURL string) (schema.Record, error) {
	pages, textErr := pdfPages(data, pdfScanPages)
	raw := string(data)

	rec := schema.Record{
		Type:   schema.TypeArticle,
		Title:  pdfUnescape(matchFirst(rePDFTitle, raw)),
		Year:   matchFirst(rePDFCreation, raw),
		URL:    sourceURL,
		Site:   hostOf(sourceURL),
		Source: "pdf",
	}
	if a := pdfUnescape(matchFirst(rePDFAuthor, raw)); a != "" {
		for _, name := range splitAuthors(strings.ReplaceAll(a, " and ", ";")) {
			rec.Authors = append(rec.Authors, schema.Author{Raw: name})
		}
	}
	for _, p := range pages {
		if rec.DOI = doi.Extract(p); rec.DOI != "" {
			break
		}
	}
	if rec.DOI == "" {
		rec.DOI = doi.Extract(raw)
	}
	if rec.Title == "" && len(pages) > 0 {
		rec.Title = firstSubstantialLine(pages[0])
	}
	if rec.Year == "" && len(pages) > 0 {
		rec.Year = dates.ExtractYear(pages[0])
	}

	if textErr != nil && rec.Title == "" && rec.DOI == "" && len(rec.Authors) == 0 {
		return schema.Record{}, fmt.Errorf("%w: %v", ErrNoPDFMetadata, textErr)
	}
	if rec.Title == "" && rec.DOI == "" {
		return schema.Record{}, ErrNoPDFMetadata
	}
	sanitize.CleanRecord(&rec)
	return rec, nil
}

// pdfPages returns the plain text of up to limit leading pages.
func pdfPages(data []byte, limit int) (out []string, err error) {
	defer func() {
		// the pdf reader panics on some malformed streams
		if p := recover(); p != nil {
			out, err = nil, fmt.Errorf("read pdf: %v", p)
		}
	}()
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, err
	}
	if limit > r.NumPage() {
		limit = r.NumPage()
	}
	for i := 1; i <= limit; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		out = append(out, text)
	}
	return out, nil
}

// firstSubstantialLine picks the first line long enough to be a title.
func firstSubstantialLine(text string) string {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if len(line) > 20 && !isHeaderLine(line) {
			return line
		}
	}
	return ""
}

func isHeaderLine(line string) bool {
	lower := strings.ToLower(line)
	for _, p := range []string{"arxiv:", "preprint", "journal of", "vol.", "volume", "doi:", "http", "copyright", "©"} {
		if strings.HasPrefix(lower, p) {
			return true
		}
	}
	return false
}

func matchFirst(re *regexp.Regexp, s string) string {
	if m := re.FindStringSubmatch(s); len(m) >= 2 {
		return strings.TrimSpace(m[1])
	}
	return ""
}

func pdfUnescape(s string) string {
	s = strings.NewReplacer(`\(`, "(", `\)`, ")", `\\`, `\`, "\r", " ", "\n", " ").Replace(s)
	return strings.TrimSpace(s)
}
