package app_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"

	"refgen/src/cmd/refgen/app"
	"refgen/src/cmd/refgen/app/apptest"
	"refgen/src/internal/citation"
	"refgen/src/internal/schema"
	"refgen/src/internal/webfetch"
)

func newCmd(t *testing.T, in *app.Inputs, args ...string) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{Use: "t", RunE: func(*cobra.Command, []string) error { return nil }}
	in.Bind(cmd)
	if err := cmd.ParseFlags(args); err != nil {
		t.Fatalf("flags: %v", err)
	}
	return cmd
}

func TestLoadUsesConfigFile(t *testing.T) {
	dir := apptest.Setup(t, nil)
	a, err := app.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if a.Config.HistoryPath != filepath.Join(dir, "history.db") || a.Config.CitationStyle() != citation.ABNT {
		t.Fatalf("config: %+v", a.Config)
	}
	if a.Config.HistoryLimit != 20 {
		t.Fatalf("limit = %d", a.Config.HistoryLimit)
	}
	h, err := a.History()
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	h.Close()
}

func TestLoadRejectsBadLogLevel(t *testing.T) {
	apptest.Setup(t, nil)
	app.LogLevel = "shouting"
	if _, err := app.Load(); err == nil {
		t.Fatal("expected log level error")
	}
}

func TestCollectManualFlags(t *testing.T) {
	apptest.Setup(t, nil)
	a, err := app.Load()
	if err != nil {
		t.Fatal(err)
	}
	var in app.Inputs
	cmd := newCmd(t, &in, "--title", "Deep Learning", "-a", "LeCun, Yann", "-a", "Yoshua Bengio", "--year", "2015", "--type", "journal")
	recs, attempts, err := a.Collect(cmd, &in, nil)
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if len(recs) != 1 || len(attempts) != 0 {
		t.Fatalf("records=%d attempts=%d", len(recs), len(attempts))
	}
	r := recs[0]
	if r.Type != schema.TypeArticle || r.Source != "manual" || r.Title != "Deep Learning" {
		t.Fatalf("record: %+v", r)
	}
	if r.Authors[0].LastName != "LeCun" || r.Authors[0].FirstName != "Yann" || r.Authors[1].Raw != "Yoshua Bengio" {
		t.Fatalf("authors: %+v", r.Authors)
	}
}

func TestCollectNothing(t *testing.T) {
	apptest.Setup(t, nil)
	a, _ := app.Load()
	var in app.Inputs
	if _, _, err := a.Collect(newCmd(t, &in), &in, nil); !errors.Is(err, app.ErrNoInput) {
		t.Fatalf("err = %v", err)
	}
}

func TestCollectLookupOrder(t *testing.T) {
	apptest.Setup(t, apptest.DeepLearning())
	a, _ := app.Load()
	var in app.Inputs
	cmd := newCmd(t, &in, "--title", "My own title")
	recs, attempts, err := a.Collect(cmd, &in, []string{"doi:10.1038/nature14539"})
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if len(recs) != 3 {
		t.Fatalf("want manual+crossref+unpaywall, got %d", len(recs))
	}
	if recs[0].Source != "manual" || recs[1].Source != "crossref" || recs[2].Source != "unpaywall" {
		t.Fatalf("order: %s %s %s", recs[0].Source, recs[1].Source, recs[2].Source)
	}
	if len(attempts) != 2 || !attempts[0].Success || !attempts[1].Success {
		t.Fatalf("attempts: %+v", attempts)
	}
}

func TestCollectLookupFailureIsSkipped(t *testing.T) {
	apptest.Setup(t, nil)
	a, _ := app.Load()
	var in app.Inputs
	cmd := newCmd(t, &in, "--doi", "10.1000/missing", "--title", "Kept", "--lookup")
	recs, attempts, err := a.Collect(cmd, &in, nil)
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if len(recs) != 1 || recs[0].Title != "Kept" {
		t.Fatalf("records: %+v", recs)
	}
	if len(attempts) != 2 || attempts[0].Success {
		t.Fatalf("attempts: %+v", attempts)
	}
}

func TestCollectLookupOnlyFails(t *testing.T) {
	apptest.Setup(t, nil)
	a, _ := app.Load()
	var in app.Inputs
	if _, _, err := a.Collect(newCmd(t, &in), &in, []string{"10.1000/missing"}); err == nil {
		t.Fatal("expected lookup error")
	}
}

func TestCollectURLArgumentFetchesPage(t *testing.T) {
	apptest.Setup(t, map[string]apptest.Response{
		"go.dev/": {Type: "text/html", Body: `<html><head><title>The Go Programming Language</title></head><body></body></html>`},
	})
	a, _ := app.Load()
	var in app.Inputs
	recs, attempts, err := a.Collect(newCmd(t, &in), &in, []string{"https://go.dev/"})
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if len(attempts) != 0 || len(recs) != 1 {
		t.Fatalf("records=%d attempts=%d", len(recs), len(attempts))
	}
	if recs[0].Title != "The Go Programming Language" || recs[0].Site != "go.dev" || recs[0].Source != "page" {
		t.Fatalf("page record: %+v", recs[0])
	}
}

func TestCollectRestrictedPage(t *testing.T) {
	apptest.Setup(t, nil)
	a, _ := app.Load()
	var in app.Inputs
	cmd := newCmd(t, &in, "--title", "x", "--page", "chrome://settings")
	if _, _, err := a.Collect(cmd, &in, nil); !errors.Is(err, webfetch.ErrRestricted) {
		t.Fatalf("err = %v", err)
	}
}

func TestReadRecords(t *testing.T) {
	dir := t.TempDir()
	one := filepath.Join(dir, "one.yml")
	list := filepath.Join(dir, "list.yml")
	if err := os.WriteFile(one, []byte("title: Solo\nauthors:\n  - Ada Lovelace\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(list, []byte("- title: A\n- title: B\n  source: zotero\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	rs, err := app.ReadRecords(one)
	if err != nil || len(rs) != 1 || rs[0].Title != "Solo" || rs[0].Source != "file" {
		t.Fatalf("one: %+v %v", rs, err)
	}
	rs, err = app.ReadRecords(list)
	if err != nil || len(rs) != 2 || rs[1].Source != "zotero" || rs[0].Source != "file" {
		t.Fatalf("list: %+v %v", rs, err)
	}
}

func TestStamp(t *testing.T) {
	apptest.Setup(t, nil)
	rs := app.Stamp([]schema.Record{{Title: "x"}})
	if len(rs) != 2 || rs[1].AccessDate != "2024-05-07" {
		t.Fatalf("stamp: %+v", rs)
	}
}

func TestCollectRestrictedArgument(t *testing.T) {
	apptest.Setup(t, nil)
	a, _ := app.Load()
	for _, arg := range []string{"chrome://settings", "about:blank", "moz-extension://abc/page.html"} {
		var in app.Inputs
		recs, attempts, err := a.Collect(newCmd(t, &in, "--title", "kept"), &in, []string{arg})
		if !errors.Is(err, webfetch.ErrRestricted) {
			t.Fatalf("%s: err = %v", arg, err)
		}
		if len(recs) != 0 || len(attempts) != 0 {
			t.Fatalf("%s: no lookup expected, got %d records %d attempts", arg, len(recs), len(attempts))
		}
	}
}

func TestCollectColonTitleIsSearched(t *testing.T) {
	apptest.Setup(t, nil)
	a, _ := app.Load()
	var in app.Inputs
	_, attempts, _ := a.Collect(newCmd(t, &in, "--title", "kept"), &in, []string{"Go:Intro"})
	if len(attempts) != 2 {
		t.Fatalf("title search expected, attempts: %+v", attempts)
	}
}
