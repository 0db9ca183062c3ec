package webfetch

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"refgen/src/internal/httpx"
	"refgen/src/internal/schema"
)

// maxBody caps how much of a page is read.
const maxBody = 8 << 20

// Client fetches pages and extracts their metadata.
type Client struct {
	api httpx.API
}

// New returns a page client. Pages are requested with a browser User-Agent
// unless overridden.
func New(opts ...httpx.Option) *Client {
	opts = append([]httpx.Option{httpx.WithUserAgent(httpx.ChromeUA)}, opts...)
	return &Client{api: httpx.NewAPI("", opts...)}
}

// FetchPage downloads rawURL and extracts a record from it. PDF responses are
// routed to the PDF extractor; everything else is parsed as HTML.
func (c *Client) FetchPage(ctx context.Context, rawURL string) (schema.Record, error) {
	return c.FetchSelection(ctx, rawURL, "")
}

// FetchSelection is FetchPage with the text the user selected on the page.
func (c *Client) FetchSelection(ctx context.Context, rawURL, selection string) (schema.Record, error) {
	rawURL = strings.TrimSpace(rawURL)
	if err := Eligible(rawURL); err != nil {
		return schema.Record{}, err
	}
	var (
		body        []byte
		contentType string
	)
	err := c.api.Get(rawURL).
		Accept("text/html,application/xhtml+xml,application/pdf;q=0.9,*/*;q=0.8").
		Handle(func(res *http.Response) error {
			defer res.Body.Close()
			contentType = strings.ToLower(res.Header.Get("Content-Type"))
			var err error
			body, err = io.ReadAll(io.LimitReader(res.Body, maxBody))
			return err
		}).
		Fetch(ctx)
	if err != nil {
		return schema.Record{}, fmt.Errorf("fetch %s: %w", rawURL, err)
	}
	if strings.Contains(contentType, "pdf") || strings.HasSuffix(strings.ToLower(rawURL), ".pdf") {
		return ExtractPDFBytes(body, rawURL)
	}
	return ParseHTML(bytes.NewReader(body), rawURL, selection)
}
