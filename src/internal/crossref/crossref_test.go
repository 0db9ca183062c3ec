package crossref

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/carlmjohnson/requests"

	"refgen/src/internal/httpx"
	"refgen/src/internal/schema"
)

const message = `{
  "DOI":"10.1038/nature14539",
  "URL":"https://doi.org/10.1038/nature14539",
  "title":["Deep learning"],
  "container-title":["Nature"],
  "volume":"521","issue":"7553","page":"436-444",
  "publisher":"Springer Science and Business Media LLC",
  "ISSN":["0028-0836","1476-4687"],
  "published":{"date-parts":[[2015,5,27]]},
  "author":[{"given":"Yann","family":"LeCun"},{"given":"Yoshua","family":"Bengio"},{"name":"Deep Learning Consortium"}]
}`

const work = `{"status":"ok","message":` + message + `}`

func fake(t *testing.T, status int, body string, check func(*http.Request)) httpx.Option {
	t.Helper()
	return httpx.WithTransport(requests.RoundTripFunc(func(req *http.Request) (*http.Response, error) {
		if check != nil {
			check(req)
		}
		return &http.Response{
			StatusCode: status,
			Header:     http.Header{"Content-Type": []string{"application/json"}},
			Body:       io.NopCloser(strings.NewReader(body)),
			Request:    req,
		}, nil
	}))
}

func TestByDOI(t *testing.T) {
	c := New(fake(t, http.StatusOK, work, func(req *http.Request) {
		if req.URL.Path != "/works/10.1038/nature14539" {
			t.Errorf("path: %s", req.URL.Path)
		}
	}))
	r, err := c.ByDOI(context.Background(), "https://doi.org/10.1038/nature14539")
	if err != nil {
		t.Fatalf("ByDOI: %v", err)
	}
	if r.Type != schema.TypeArticle || r.Title != "Deep learning" || r.Journal != "Nature" || r.Year != "2015" {
		t.Fatalf("record: %+v", r)
	}
	if r.Volume != "521" || r.Issue != "7553" || r.Pages != "436-444" || r.ISSN != "0028-0836" {
		t.Fatalf("details: %+v", r)
	}
	if len(r.Authors) != 3 || r.Authors[0].LastName != "LeCun" || r.Authors[2].Raw != "Deep Learning Consortium" {
		t.Fatalf("authors: %+v", r.Authors)
	}
	if r.Source != "crossref" {
		t.Fatalf("source: %q", r.Source)
	}
}

func TestByDOI_NotFound(t *testing.T) {
	c := New(fake(t, http.StatusNotFound, "Resource not found.", nil))
	if _, err := c.ByDOI(context.Background(), "10.1/missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
	if _, err := c.ByDOI(context.Background(), " "); !errors.Is(err, ErrNotFound) {
		t.Fatalf("empty doi: want ErrNotFound, got %v", err)
	}
}

func TestSearchTitle(t *testing.T) {
	body := `{"message":{"items":[` + message + `]}}`
	c := New(fake(t, http.StatusOK, body, func(req *http.Request) {
		q := req.URL.Query()
		if q.Get("query.title") != "deep learning" || q.Get("rows") != "1" {
			t.Errorf("query: %s", req.URL.RawQuery)
		}
	}))
	r, err := c.SearchTitle(context.Background(), "deep learning")
	if err != nil {
		t.Fatalf("SearchTitle: %v", err)
	}
	if r.DOI != "10.1038/nature14539" {
		t.Fatalf("record: %+v", r)
	}

	c = New(fake(t, http.StatusOK, `{"message":{"items":[]}}`, nil))
	if _, err := c.SearchTitle(context.Background(), "nothing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestParseWork_YearFallsBackToCreated(t *testing.T) {
	c := New(fake(t, http.StatusOK, `{"message":{"title":["T"],"created":{"date-parts":[[2019,1,1]]}}}`, nil))
	r, err := c.ByDOI(context.Background(), "10.1/x")
	if err != nil {
		t.Fatalf("ByDOI: %v", err)
	}
	if r.Year != "2019" {
		t.Fatalf("year: %q", r.Year)
	}
}
