// Package crossref looks up scholarly works in the CrossRef REST API.
package crossref

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/tidwall/gjson"

	"refgen/src/internal/doi"
	"refgen/src/internal/httpx"
	"refgen/src/internal/schema"
)

// BaseURL is the public CrossRef API.
const BaseURL = "https://api.crossref.org"

// ErrNotFound is returned when CrossRef has no matching work.
var ErrNotFound = httpx.ErrNotFound

// Client queries CrossRef.
type Client struct {
	api httpx.API
}

// New returns a client for BaseURL with opts applied.
func New(opts ...httpx.Option) *Client {
	return &Client{api: httpx.NewAPI(BaseURL, opts...)}
}

// ByDOI fetches the work registered under id.
func (c *Client) ByDOI(ctx context.Context, id string) (schema.Record, error) {
	id = doi.Clean(id)
	if id == "" {
		return schema.Record{}, fmt.Errorf("crossref: empty doi: %w", ErrNotFound)
	}
	body, err := httpx.FetchString(ctx, c.api.Get("/works/"+url.PathEscape(id)))
	if err != nil {
		return schema.Record{}, fmt.Errorf("crossref %s: %w", id, err)
	}
	msg := gjson.Get(body, "message")
	if !msg.IsObject() {
		return schema.Record{}, fmt.Errorf("crossref %s: %w", id, ErrNotFound)
	}
	return parseWork(msg), nil
}

// SearchTitle returns the best match for a free-text title.
func (c *Client) SearchTitle(ctx context.Context, title string) (schema.Record, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return schema.Record{}, fmt.Errorf("crossref: empty title: %w", ErrNotFound)
	}
	b := c.api.Get("/works").
		Param("query.title", title).
		ParamInt("rows", 1)
	body, err := httpx.FetchString(ctx, b)
	if err != nil {
		return schema.Record{}, fmt.Errorf("crossref search: %w", err)
	}
	item := gjson.Get(body, "message.items.0")
	if !item.IsObject() {
		return schema.Record{}, fmt.Errorf("crossref search %q: %w", title, ErrNotFound)
	}
	return parseWork(item), nil
}

func parseWork(w gjson.Result) schema.Record {
	r := schema.Record{
		Type:      schema.TypeArticle,
		Title:     w.Get("title.0").String(),
		Journal:   w.Get("container-title.0").String(),
		Volume:    w.Get("volume").String(),
		Issue:     w.Get("issue").String(),
		Pages:     w.Get("page").String(),
		DOI:       w.Get("DOI").String(),
		URL:       w.Get("URL").String(),
		Publisher: w.Get("publisher").String(),
		ISSN:      w.Get("ISSN.0").String(),
		Source:    "crossref",
	}
	for _, path := range []string{"published", "published-print", "issued", "created"} {
		if y := w.Get(path + ".date-parts.0.0"); y.Exists() && y.Int() > 0 {
			r.Year = y.String()
			break
		}
	}
	w.Get("author").ForEach(func(_, a gjson.Result) bool {
		au := schema.Author{FirstName: a.Get("given").String(), LastName: a.Get("family").String()}
		if au.IsZero() {
			au.Raw = a.Get("name").String()
		}
		if !au.IsZero() {
			r.Authors = append(r.Authors, au)
		}
		return true
	})
	return r
}
