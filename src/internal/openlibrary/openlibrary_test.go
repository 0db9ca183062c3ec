package openlibrary

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

// fakeDoer serves canned bodies and records the last request.
type fakeDoer struct {
	status int
	body   string
	last   *http.Request
}

func (f *fakeDoer) option() httpx.Option {
	return httpx.WithTransport(requests.RoundTripFunc(func(req *http.Request) (*http.Response, error) {
		f.last = req
		return &http.Response{
			StatusCode: f.status,
			Header:     http.Header{"Content-Type": []string{"application/json"}},
			Body:       io.NopCloser(strings.NewReader(f.body)),
			Request:    req,
		}, nil
	}))
}

func TestByISBN(t *testing.T) {
	f := &fakeDoer{status: http.StatusOK, body: `{"ISBN:9780134190440":{
		"title":"The Go Programming Language",
		"authors":[{"name":"Alan A. A. Donovan"},{"name":"Brian W. Kernighan"}],
		"publishers":[{"name":"Addison-Wesley"}],
		"publish_places":[{"name":"New York"}],
		"publish_date":"Nov 20, 2015",
		"number_of_pages":380,
		"identifiers":{"isbn_10":["0134190440"],"isbn_13":["9780134190440"]},
		"url":"https://openlibrary.org/books/OL1M/the-go-programming-language"
	}}`}
	c := New(f.option())
	r, err := c.ByISBN(context.Background(), "978-0-13-419044-0")
	if err != nil {
		t.Fatalf("ByISBN: %v", err)
	}
	q := f.last.URL.Query()
	if q.Get("bibkeys") != "ISBN:9780134190440" || q.Get("jscmd") != "data" || f.last.URL.Path != "/api/books" {
		t.Fatalf("request: %s", f.last.URL)
	}
	if r.Type != schema.TypeBook || r.Title != "The Go Programming Language" || r.Year != "2015" {
		t.Fatalf("record: %+v", r)
	}
	if r.Publisher != "Addison-Wesley" || r.City != "New York" || r.Pages != "380" || r.ISBN != "9780134190440" {
		t.Fatalf("imprint: %+v", r)
	}
	if len(r.Authors) != 2 || r.Authors[0].Raw != "Alan A. A. Donovan" {
		t.Fatalf("authors: %+v", r.Authors)
	}
}

func TestByISBN_NoData(t *testing.T) {
	c := New((&fakeDoer{status: http.StatusOK, body: `{}`}).option())
	if _, err := c.ByISBN(context.Background(), "9780000000002"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestByISBN_HTTPError(t *testing.T) {
	c := New((&fakeDoer{status: http.StatusBadGateway, body: "bad gateway"}).option())
	_, err := c.ByISBN(context.Background(), "9780134190440")
	if err == nil || errors.Is(err, ErrNotFound) {
		t.Fatalf("want upstream error, got %v", err)
	}
}
