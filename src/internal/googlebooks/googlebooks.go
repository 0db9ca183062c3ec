// Package googlebooks looks up books in the Google Books volumes API.
package googlebooks

import (
	"context"
	"fmt"
	"strings"

	"github.com/carlmjohnson/requests"
	"github.com/tidwall/gjson"

	"refgen/src/internal/dates"
	"refgen/src/internal/httpx"
	"refgen/src/internal/isbn"
	"refgen/src/internal/schema"
)

const BaseURL = "https://www.googleapis.com/books/v1"

var ErrNotFound = httpx.ErrNotFound

type Client struct {
	api httpx.API
}

func New(opts ...httpx.Option) *Client {
	return &Client{api: httpx.NewAPI(BaseURL, opts...)}
}

// ByISBN returns the first volume indexed under the ISBN.
func (c *Client) ByISBN(ctx context.Context, id string) (schema.Record, error) {
	id = isbn.Clean(id)
	if id == "" {
		return schema.Record{}, fmt.Errorf("googlebooks: empty isbn: %w", ErrNotFound)
	}
	return c.first(ctx, c.api.Get("/volumes").Param("q", "isbn:"+id), id)
}

// SearchTitle returns the best title match.
func (c *Client) SearchTitle(ctx context.Context, title string) (schema.Record, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return schema.Record{}, fmt.Errorf("googlebooks: empty title: %w", ErrNotFound)
	}
	b := c.api.Get("/volumes").Param("q", "intitle:"+title).ParamInt("maxResults", 1)
	return c.first(ctx, b, title)
}

func (c *Client) first(ctx context.Context, b *requests.Builder, query string) (schema.Record, error) {
	body, err := httpx.FetchString(ctx, b)
	if err != nil {
		return schema.Record{}, fmt.Errorf("googlebooks %s: %w", query, err)
	}
	vol := gjson.Get(body, "items.0.volumeInfo")
	if !vol.IsObject() {
		return schema.Record{}, fmt.Errorf("googlebooks %s: %w", query, ErrNotFound)
	}
	return parseVolume(vol), nil
}

func parseVolume(v gjson.Result) schema.Record {
	r := schema.Record{
		Type:      schema.TypeBook,
		Title:     v.Get("title").String(),
		Year:      dates.ExtractYear(v.Get("publishedDate").String()),
		Publisher: v.Get("publisher").String(),
		URL:       v.Get("infoLink").String(),
		Source:    "googlebooks",
	}
	if sub := v.Get("subtitle").String(); sub != "" && r.Title != "" {
		r.Title += ": " + sub
	}
	if n := v.Get("pageCount").Int(); n > 0 {
		r.Pages = fmt.Sprint(n)
	}
	var isbn10 string
	v.Get("industryIdentifiers").ForEach(func(_, id gjson.Result) bool {
		switch id.Get("type").String() {
		case "ISBN_13":
			r.ISBN = id.Get("identifier").String()
			return false
		case "ISBN_10":
			isbn10 = id.Get("identifier").String()
		}
		return true
	})
	if r.ISBN == "" {
		r.ISBN = isbn10
	}
	v.Get("authors").ForEach(func(_, a gjson.Result) bool {
		if name := strings.TrimSpace(a.String()); name != "" {
			r.Authors = append(r.Authors, schema.Author{Raw: name})
		}
		return true
	})
	return r
}
