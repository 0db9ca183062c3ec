// Package openlibrary looks up books by ISBN in the Open Library Books API.
package openlibrary

import (
	"context"
	"fmt"

	"github.com/tidwall/gjson"

	"refgen/src/internal/dates"
	"refgen/src/internal/httpx"
	"refgen/src/internal/isbn"
	"refgen/src/internal/schema"
)

const BaseURL = "https://openlibrary.org"

var ErrNotFound = httpx.ErrNotFound

type Client struct {
	api httpx.API
}

func New(opts ...httpx.Option) *Client {
	return &Client{api: httpx.NewAPI(BaseURL, opts...)}
}

// ByISBN queries the Books API (jscmd=data) for a single ISBN.
func (c *Client) ByISBN(ctx context.Context, id string) (schema.Record, error) {
	norm := isbn.Normalize(id)
	if norm == "" {
		return schema.Record{}, fmt.Errorf("openlibrary: empty isbn: %w", ErrNotFound)
	}
	b := c.api.Get("/api/books").
		Param("bibkeys", "ISBN:"+norm).
		Param("format", "json").
		Param("jscmd", "data")
	body, err := httpx.FetchString(ctx, b)
	if err != nil {
		return schema.Record{}, fmt.Errorf("openlibrary %s: %w", norm, err)
	}
	// the response is keyed by the bibkey we sent; there is only one
	var data gjson.Result
	gjson.Parse(body).ForEach(func(_, v gjson.Result) bool {
		data = v
		return false
	})
	if !data.IsObject() {
		return schema.Record{}, fmt.Errorf("openlibrary %s: %w", norm, ErrNotFound)
	}
	return parseBook(data, norm), nil
}

func parseBook(d gjson.Result, norm string) schema.Record {
	r := schema.Record{
		Type:      schema.TypeBook,
		Title:     d.Get("title").String(),
		Year:      dates.ExtractYear(d.Get("publish_date").String()),
		Publisher: d.Get("publishers.0.name").String(),
		City:      d.Get("publish_places.0.name").String(),
		URL:       d.Get("url").String(),
		Source:    "openlibrary",
	}
	if sub := d.Get("subtitle").String(); sub != "" && r.Title != "" {
		r.Title += ": " + sub
	}
	if n := d.Get("number_of_pages").Int(); n > 0 {
		r.Pages = fmt.Sprint(n)
	}
	for _, path := range []string{"identifiers.isbn_13.0", "identifiers.isbn_10.0"} {
		if v := d.Get(path).String(); v != "" {
			r.ISBN = v
			break
		}
	}
	if r.ISBN == "" {
		r.ISBN = norm
	}
	d.Get("authors").ForEach(func(_, a gjson.Result) bool {
		if name := a.Get("name").String(); name != "" {
			r.Authors = append(r.Authors, schema.Author{Raw: name})
		}
		return true
	})
	return r
}
