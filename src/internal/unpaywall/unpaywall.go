// Package unpaywall reports open-access status and basic metadata for DOIs.
package unpaywall

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/tidwall/gjson"

	"refgen/src/internal/doi"
	"refgen/src/internal/httpx"
	"refgen/src/internal/schema"
)

const BaseURL = "https://api.unpaywall.org/v2"

var (
	ErrNotFound = httpx.ErrNotFound
	// ErrNoEmail is returned when no contact email is configured; Unpaywall
	// rejects anonymous requests.
	ErrNoEmail = errors.New("unpaywall: contact email required")
)

type Client struct {
	api   httpx.API
	email string
}

// New returns a client that identifies itself with email.
func New(email string, opts ...httpx.Option) *Client {
	return &Client{api: httpx.NewAPI(BaseURL, opts...), email: strings.TrimSpace(email)}
}

// ByDOI fetches the Unpaywall record for id.
func (c *Client) ByDOI(ctx context.Context, id string) (schema.Record, error) {
	if c.email == "" {
		return schema.Record{}, ErrNoEmail
	}
	id = doi.Clean(id)
	if id == "" {
		return schema.Record{}, fmt.Errorf("unpaywall: empty doi: %w", ErrNotFound)
	}
	body, err := httpx.FetchString(ctx, c.api.Get("/"+url.PathEscape(id)).Param("email", c.email))
	if err != nil {
		return schema.Record{}, fmt.Errorf("unpaywall %s: %w", id, err)
	}
	res := gjson.Parse(body)
	if !res.IsObject() {
		return schema.Record{}, fmt.Errorf("unpaywall %s: %w", id, ErrNotFound)
	}
	r := schema.Record{
		Type:         schema.TypeArticle,
		Title:        res.Get("title").String(),
		Journal:      res.Get("journal_name").String(),
		DOI:          res.Get("doi").String(),
		Publisher:    res.Get("publisher").String(),
		IsOpenAccess: res.Get("is_oa").Bool(),
		Source:       "unpaywall",
	}
	if y := res.Get("year"); y.Int() > 0 {
		r.Year = y.String()
	}
	r.URL = res.Get("best_oa_location.url").String()
	if r.URL == "" {
		r.URL = res.Get("doi_url").String()
	}
	res.Get("z_authors").ForEach(func(_, a gjson.Result) bool {
		au := schema.Author{FirstName: a.Get("given").String(), LastName: a.Get("family").String()}
		if !au.IsZero() {
			r.Authors = append(r.Authors, au)
		}
		return true
	})
	return r, nil
}
