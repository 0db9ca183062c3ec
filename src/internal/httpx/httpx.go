// Package httpx holds the outbound HTTP plumbing shared by the metadata API
// clients: user agents, rate limiting and not-found mapping.
package httpx

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/carlmjohnson/requests"
	"golang.org/x/time/rate"
)

// UserAgent identifies refgen to metadata APIs.
const UserAgent = "refgen/1.0 (reference generator)"

// ChromeUA is a modern desktop Chrome User-Agent, used for page fetches where
// sites reject non-browser agents.
const ChromeUA = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/122.0.0.0 Safari/537.36"

// ErrNotFound reports that a provider has no record for the query.
var ErrNotFound = errors.New("not found")

// API is the shared configuration of one JSON API client.
type API struct {
	BaseURL   string
	Transport http.RoundTripper
	Limiter   *rate.Limiter
	UserAgent string
}

// Option configures an API.
type Option func(*API)

// WithBaseURL overrides the provider base URL (for testing or mirrors).
func WithBaseURL(u string) Option {
	return func(a *API) { a.BaseURL = strings.TrimRight(u, "/") }
}

// WithTransport sets the RoundTripper requests are sent through.
func WithTransport(rt http.RoundTripper) Option {
	return func(a *API) { a.Transport = rt }
}

// WithLimiter sets the rate limiter; nil disables limiting.
func WithLimiter(l *rate.Limiter) Option {
	return func(a *API) { a.Limiter = l }
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(a *API) {
		if strings.TrimSpace(ua) != "" {
			a.UserAgent = ua
		}
	}
}

// NewAPI returns an API rooted at baseURL with opts applied.
func NewAPI(baseURL string, opts ...Option) API {
	a := API{BaseURL: strings.TrimRight(baseURL, "/"), UserAgent: UserAgent}
	for _, opt := range opts {
		opt(&a)
	}
	return a
}

// Get starts a JSON GET request for BaseURL + path.
func (a API) Get(path string) *requests.Builder {
	return requests.
		URL(a.BaseURL + path).
		Transport(RateLimited(a.Limiter, a.Transport)).
		UserAgent(a.UserAgent).
		Accept("application/json")
}

// FetchString runs b and returns the response body. A 404 becomes ErrNotFound.
func FetchString(ctx context.Context, b *requests.Builder) (string, error) {
	var body string
	err := b.ToString(&body).Fetch(ctx)
	switch {
	case requests.HasStatusErr(err, http.StatusNotFound):
		return "", ErrNotFound
	case err != nil:
		return "", err
	}
	return body, nil
}

// NewLimiter returns a limiter allowing rps requests per second, or nil when
// rps is not positive.
func NewLimiter(rps float64, burst int) *rate.Limiter {
	if rps <= 0 {
		return nil
	}
	if burst < 1 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(rps), burst)
}

// RateLimited waits on l before every request sent through rt. A nil rt
// means http.DefaultTransport; a nil l disables limiting.
func RateLimited(l *rate.Limiter, rt http.RoundTripper) http.RoundTripper {
	if rt == nil {
		rt = http.DefaultTransport
	}
	if l == nil {
		return rt
	}
	return requests.RoundTripFunc(func(req *http.Request) (*http.Response, error) {
		if err := l.Wait(req.Context()); err != nil {
			return nil, fmt.Errorf("rate limit: %w", err)
		}
		return rt.RoundTrip(req)
	})
}
