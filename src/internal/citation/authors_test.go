package citation

import (
	"fmt"
	"strings"
	"testing"

	"refgen/src/internal/schema"
)

func TestFormatAuthors_PerStyle(t *testing.T) {
	as := []schema.Author{
		{FirstName: "Yann André", LastName: "LeCun"},
		{FirstName: "Yoshua", LastName: "Bengio"},
	}
	cases := []struct {
		style Style
		want  string
	}{
		{APA, "LeCun, Y. A. & Bengio, Y."},
		{ABNT, "LECUN, Y. A.; BENGIO, Y."},
		{Vancouver, "LeCun YA, Bengio Y"},
		{IEEE, "Y. A. LeCun, Y. Bengio"},
		{Chicago, "Yann André LeCun et al."},
		{MLA, "Yann André LeCun, et al."},
	}
	for _, c := range cases {
		if got := FormatAuthors(as, c.style); got != c.want {
			t.Fatalf("%s: want %q, got %q", c.style, c.want, got)
		}
	}
}

func TestFormatAuthors_SingleAndEmpty(t *testing.T) {
	one := []schema.Author{{FirstName: "Yann", LastName: "LeCun"}}
	if got := FormatAuthors(one, APA); got != "LeCun, Y." {
		t.Fatalf("apa single: %q", got)
	}
	if got := FormatAuthors(one, MLA); got != "Yann LeCun" {
		t.Fatalf("mla single: %q", got)
	}
	for _, st := range Styles {
		if got := FormatAuthors(nil, st); got != "" {
			t.Fatalf("%s: empty list should render empty, got %q", st, got)
		}
		if got := FormatAuthors([]schema.Author{{}, {Raw: "  "}}, st); got != "" {
			t.Fatalf("%s: trivial authors should be skipped, got %q", st, got)
		}
	}
}

func TestFormatAuthors_RawNamesAreSplit(t *testing.T) {
	got := FormatAuthors([]schema.Author{{Raw: "Ada Lovelace"}, {Raw: "Turing, Alan M."}}, ABNT)
	if got != "LOVELACE, A.; TURING, A. M." {
		t.Fatalf("raw names: %q", got)
	}
}

func TestFormatAuthors_MononymHasNoInitials(t *testing.T) {
	got := FormatAuthors([]schema.Author{{FirstName: "Plato"}}, APA)
	if got != "Plato" {
		t.Fatalf("mononym: %q", got)
	}
}

func authorsN(n int) []schema.Author {
	out := make([]schema.Author, n)
	for i := range out {
		out[i] = schema.Author{FirstName: "Xavier", LastName: fmt.Sprintf("L%d", i+1)}
	}
	return out
}

func TestFormatAuthors_APAListBoundary(t *testing.T) {
	got := FormatAuthors(authorsN(19), APA)
	if strings.Contains(got, "et al.") || !strings.HasSuffix(got, "L19, X.") {
		t.Fatalf("19 authors should all be listed: %q", got)
	}
	if strings.Contains(got, "&") {
		t.Fatalf("long lists are comma separated: %q", got)
	}

	got = FormatAuthors(authorsN(20), APA)
	if !strings.HasSuffix(got, "L19, X., et al.") {
		t.Fatalf("20 authors should truncate after 19: %q", got)
	}
	if strings.Contains(got, "L20") {
		t.Fatalf("20th author leaked: %q", got)
	}

	got = FormatAuthors(authorsN(3), APA)
	if got != "L1, X., L2, X., L3, X." {
		t.Fatalf("3 authors: %q", got)
	}
}
