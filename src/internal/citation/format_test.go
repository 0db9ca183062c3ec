package citation

import (
	"errors"
	"strings"
	"testing"

	"refgen/src/internal/schema"
)

func lecun() schema.Record {
	return schema.Record{
		Type:    schema.TypeArticle,
		Title:   "Deep Learning",
		Authors: schema.Authors{{FirstName: "Yann", LastName: "LeCun"}},
		Year:    "2015",
		Journal: "Nature",
		DOI:     "10.1038/x",
	}
}

func TestFormat_ArticleAcrossStyles(t *testing.T) {
	cases := []struct {
		style Style
		want  string
	}{
		{APA, "LeCun, Y. (2015). Deep Learning. Nature. https://doi.org/10.1038/x"},
		{ABNT, "LECUN, Y. Deep Learning. Nature, 2015. DOI: https://doi.org/10.1038/x."},
		{MLA, `Yann LeCun. "Deep Learning." Nature, 2015. https://doi.org/10.1038/x.`},
		{Chicago, `Yann LeCun. "Deep Learning." Nature (2015). https://doi.org/10.1038/x.`},
		{Vancouver, "LeCun Y. Deep Learning. Nature. 2015. Available from: https://doi.org/10.1038/x"},
		{IEEE, `Y. LeCun, "Deep Learning," Nature, 2015. doi: https://doi.org/10.1038/x.`},
	}
	for _, c := range cases {
		if got := Format(lecun(), c.style); got != c.want {
			t.Fatalf("%s:\nwant %q\n got %q", c.style, c.want, got)
		}
	}
}

func TestFormat_FullArticleAPA(t *testing.T) {
	r := lecun()
	r.Volume, r.Issue, r.Pages = "521", "7553", "436-444"
	want := "LeCun, Y. (2015). Deep Learning. Nature, 521(7553), 436-444. https://doi.org/10.1038/x"
	if got := Format(r, APA); got != want {
		t.Fatalf("want %q, got %q", want, got)
	}
	want = "LECUN, Y. Deep Learning. Nature, v. 521, n. 7553, p. 436-444, 2015. DOI: https://doi.org/10.1038/x."
	if got := Format(r, ABNT); got != want {
		t.Fatalf("want %q, got %q", want, got)
	}
	want = "LeCun Y. Deep Learning. Nature. 2015;521(7553):436-444. Available from: https://doi.org/10.1038/x"
	if got := Format(r, Vancouver); got != want {
		t.Fatalf("want %q, got %q", want, got)
	}
}

func TestFormat_DOIIsReconstituted(t *testing.T) {
	r := lecun()
	r.DOI = "https://dx.doi.org/10.1038/x"
	if got := Format(r, APA); !strings.HasSuffix(got, " https://doi.org/10.1038/x") {
		t.Fatalf("doi link: %q", got)
	}
}

func TestFormat_ABNTWebpageAccessDate(t *testing.T) {
	r := schema.Record{
		Type:       schema.TypeWebpage,
		Title:      "The Go Programming Language",
		Site:       "go.dev",
		URL:        "https://go.dev",
		AccessDate: "2024-05-07",
	}
	want := "The Go Programming Language. go.dev, s.d. Disponível em: https://go.dev. Acesso em: 07 mai. 2024."
	if got := Format(r, ABNT); got != want {
		t.Fatalf("want %q, got %q", want, got)
	}
}

func TestFormat_NullDatePlaceholders(t *testing.T) {
	r := schema.Record{Type: schema.TypeWebpage, Title: "Page", URL: "https://example.org"}
	if got := Format(r, APA); !strings.Contains(got, "(n.d.).") {
		t.Fatalf("apa null date: %q", got)
	}
	if got := Format(r, ABNT); !strings.Contains(got, "s.d.") {
		t.Fatalf("abnt null date: %q", got)
	}
	if got := Format(r, MLA); strings.Contains(got, "n.d.") {
		t.Fatalf("mla should omit missing dates: %q", got)
	}
}

func TestFormat_APAWebpageRetrieved(t *testing.T) {
	r := schema.Record{Type: schema.TypeWebpage, Title: "Page", Site: "Example", URL: "https://example.org", Year: "2023", AccessDate: "2024-01-02"}
	want := "(2023). Page. Example. Retrieved January 2, 2024, from https://example.org"
	if got := Format(r, APA); got != want {
		t.Fatalf("want %q, got %q", want, got)
	}
}

func TestFormat_BookTemplates(t *testing.T) {
	r := schema.Record{
		Type:      schema.TypeBook,
		Title:     "The Go Programming Language",
		Authors:   schema.Authors{{FirstName: "Alan", LastName: "Donovan"}, {FirstName: "Brian", LastName: "Kernighan"}},
		Year:      "2015",
		Publisher: "Addison-Wesley",
		City:      "New York",
		ISBN:      "9780134190440",
	}
	cases := []struct {
		style Style
		want  string
	}{
		{APA, "Donovan, A. & Kernighan, B. (2015). The Go Programming Language. Addison-Wesley. ISBN: 9780134190440."},
		{ABNT, "DONOVAN, A.; KERNIGHAN, B. The Go Programming Language. New York: Addison-Wesley, 2015. ISBN 9780134190440."},
		{Chicago, "Alan Donovan et al. The Go Programming Language. New York: Addison-Wesley, 2015."},
		{IEEE, "A. Donovan, B. Kernighan, The Go Programming Language, New York: Addison-Wesley, 2015."},
	}
	for _, c := range cases {
		if got := Format(r, c.style); got != c.want {
			t.Fatalf("%s:\nwant %q\n got %q", c.style, c.want, got)
		}
	}

	r.City = ""
	if got := Format(r, ABNT); !strings.Contains(got, "[S.l.]: Addison-Wesley,") {
		t.Fatalf("abnt missing city: %q", got)
	}
	r.City, r.Publisher = "Boston", ""
	if got := Format(r, ABNT); !strings.Contains(got, "Boston: [s.n.],") {
		t.Fatalf("abnt missing publisher: %q", got)
	}
}

func TestFormat_MiscFallsBackToWebpage(t *testing.T) {
	r := schema.Record{Type: schema.TypeMisc, Title: "Something", URL: "https://example.org", Site: "Example"}
	web := r
	web.Type = schema.TypeWebpage
	for _, st := range Styles {
		if got, want := Format(r, st), Format(web, st); got != want {
			t.Fatalf("%s: misc %q != webpage %q", st, got, want)
		}
	}
}

func TestFormat_InfersAbsentType(t *testing.T) {
	r := lecun()
	r.Type = ""
	if got, want := Format(r, APA), Format(lecun(), APA); got != want {
		t.Fatalf("inferred type: %q != %q", got, want)
	}
}

func TestFormat_UnknownStyleUsesAPA(t *testing.T) {
	if got, want := Format(lecun(), Style("Harvard")), Format(lecun(), APA); got != want {
		t.Fatalf("unknown style: %q != %q", got, want)
	}
}

// Every subset of populated fields must render without stray spacing.
func TestFormat_NoStrayPunctuationAcrossFieldSubsets(t *testing.T) {
	full := schema.Record{
		Title:      "A Title",
		Authors:    schema.Authors{{FirstName: "Ada", LastName: "Lovelace"}, {FirstName: "Alan", LastName: "Turing"}},
		Year:       "1950",
		Journal:    "Mind",
		Volume:     "59",
		Issue:      "236",
		Pages:      "433-460",
		DOI:        "10.1093/mind/LIX.236.433",
		Publisher:  "OUP",
		City:       "Oxford",
		Edition:    "2",
		ISBN:       "9780198250791",
		Site:       "Example",
		URL:        "https://example.org/a",
		AccessDate: "2024-05-07",
	}
	setters := []func(r *schema.Record){
		func(r *schema.Record) { r.Title = full.Title },
		func(r *schema.Record) { r.Authors = full.Authors },
		func(r *schema.Record) { r.Year = full.Year },
		func(r *schema.Record) { r.Journal = full.Journal },
		func(r *schema.Record) { r.Volume = full.Volume },
		func(r *schema.Record) { r.Issue = full.Issue },
		func(r *schema.Record) { r.Pages = full.Pages },
		func(r *schema.Record) { r.DOI = full.DOI },
		func(r *schema.Record) { r.Publisher = full.Publisher },
		func(r *schema.Record) { r.City = full.City },
		func(r *schema.Record) { r.Edition = full.Edition },
		func(r *schema.Record) { r.ISBN = full.ISBN },
		func(r *schema.Record) { r.Site = full.Site },
		func(r *schema.Record) { r.URL = full.URL },
		func(r *schema.Record) { r.AccessDate = full.AccessDate },
	}
	types := []schema.Type{schema.TypeArticle, schema.TypeBook, schema.TypeWebpage, schema.TypeMisc}
	for mask := 0; mask < 1<<len(setters); mask += 7 {
		var r schema.Record
		for i, set := range setters {
			if mask&(1<<i) != 0 {
				set(&r)
			}
		}
		for _, typ := range types {
			r.Type = typ
			for _, st := range Styles {
				got := Format(r, st)
				for _, bad := range []string{" .", " ,", "  ", ",.", ",,"} {
					if strings.Contains(got, bad) {
						t.Fatalf("%s/%s mask %b: %q contains %q", st, typ, mask, got, bad)
					}
				}
				if got != strings.TrimSpace(got) {
					t.Fatalf("%s/%s: untrimmed %q", st, typ, got)
				}
			}
		}
	}
}

func TestParseStyle(t *testing.T) {
	for _, name := range []string{"apa", "APA", " Apa "} {
		if s, err := ParseStyle(name); err != nil || s != APA {
			t.Fatalf("ParseStyle(%q) = %v, %v", name, s, err)
		}
	}
	if s, err := ParseStyle("vancouver"); err != nil || s != Vancouver {
		t.Fatalf("vancouver: %v %v", s, err)
	}
	if _, err := ParseStyle("harvard"); !errors.Is(err, ErrUnknownStyle) {
		t.Fatalf("want ErrUnknownStyle, got %v", err)
	}
	if got := Names(); len(got) != 6 || got[0] != "ABNT" {
		t.Fatalf("names: %v", got)
	}
}

func TestFormat_ABNTAccessDateOnlyOnWebpages(t *testing.T) {
	book := schema.Record{
		Type:       schema.TypeBook,
		Title:      "Dom Casmurro",
		Authors:    schema.Authors{{FirstName: "Machado", LastName: "Assis"}},
		Year:       "1899",
		Publisher:  "Garnier",
		City:       "Rio de Janeiro",
		AccessDate: "2026-10-19",
	}
	want := "ASSIS, M. Dom Casmurro. Rio de Janeiro: Garnier, 1899."
	if got := Format(book, ABNT); got != want {
		t.Fatalf("book: want %q, got %q", want, got)
	}

	article := schema.Record{Type: schema.TypeArticle, Title: "T", Journal: "J", Year: "2020", AccessDate: "2026-10-19"}
	want = "T. J, 2020."
	if got := Format(article, ABNT); got != want {
		t.Fatalf("article: want %q, got %q", want, got)
	}

	article.URL = "https://example.org/t"
	want = "T. J, 2020. Disponível em: https://example.org/t."
	if got := Format(article, ABNT); got != want {
		t.Fatalf("online article: want %q, got %q", want, got)
	}
}

func TestFinish_RemovesSpaceBeforeColon(t *testing.T) {
	if got := finish([]string{"Title", ": Subtitle", " ;", "end ."}); got != "Title: Subtitle; end." {
		t.Fatalf("finish: %q", got)
	}
}
