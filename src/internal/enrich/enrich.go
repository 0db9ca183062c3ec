// Package enrich fetches source records for a DOI, ISBN or title from the
// metadata providers and returns them in a fixed provider order.
package enrich

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/sourcegraph/conc/stream"

	"refgen/src/internal/schema"
)

// ErrNoRecord is returned when no provider produced a record.
var ErrNoRecord = errors.New("no provider returned a record")

// ErrEmptyQuery is returned for a blank query.
var ErrEmptyQuery = errors.New("empty lookup query")

type DOIResolver interface {
	ByDOI(ctx context.Context, doi string) (schema.Record, error)
}

type ISBNResolver interface {
	ByISBN(ctx context.Context, isbn string) (schema.Record, error)
}

type TitleSearcher interface {
	SearchTitle(ctx context.Context, title string) (schema.Record, error)
}

// Providers are the metadata sources a Service consults. Nil providers are
// skipped.
type Providers struct {
	CrossRef interface {
		DOIResolver
		TitleSearcher
	}
	Unpaywall   DOIResolver
	GoogleBooks interface {
		ISBNResolver
		TitleSearcher
	}
	OpenLibrary ISBNResolver
}

// Attempt captures a single provider attempt outcome.
type Attempt struct {
	Provider string        `yaml:"provider" json:"provider"`
	Success  bool          `yaml:"success" json:"success"`
	Error    string        `yaml:"error,omitempty" json:"error,omitempty"`
	Took     time.Duration `yaml:"took" json:"took"`
}

type source struct {
	name  string
	fetch func(ctx context.Context, value string) (schema.Record, error)
}

// Service runs lookups against Providers.
type Service struct {
	providers Providers
	log       *log.Logger
	timeout   time.Duration
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger provider failures are reported to.
func WithLogger(l *log.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.log = l
		}
	}
}

// WithTimeout bounds a whole lookup; zero means no bound beyond ctx.
func WithTimeout(d time.Duration) Option {
	return func(s *Service) { s.timeout = d }
}

func New(p Providers, opts ...Option) *Service {
	s := &Service{providers: p, log: log.New(io.Discard)}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// sources lists, in merge order, the providers consulted for q.
func (s *Service) sources(q Query) []source {
	p := s.providers
	var out []source
	add := func(name string, ok bool, fetch func(context.Context, string) (schema.Record, error)) {
		if ok {
			out = append(out, source{name: name, fetch: fetch})
		}
	}
	switch q.Kind {
	case KindDOI:
		add("crossref", p.CrossRef != nil, func(ctx context.Context, v string) (schema.Record, error) { return p.CrossRef.ByDOI(ctx, v) })
		add("unpaywall", p.Unpaywall != nil, func(ctx context.Context, v string) (schema.Record, error) { return p.Unpaywall.ByDOI(ctx, v) })
	case KindISBN:
		add("googlebooks", p.GoogleBooks != nil, func(ctx context.Context, v string) (schema.Record, error) { return p.GoogleBooks.ByISBN(ctx, v) })
		add("openlibrary", p.OpenLibrary != nil, func(ctx context.Context, v string) (schema.Record, error) { return p.OpenLibrary.ByISBN(ctx, v) })
	case KindTitle:
		add("crossref", p.CrossRef != nil, func(ctx context.Context, v string) (schema.Record, error) { return p.CrossRef.SearchTitle(ctx, v) })
		add("googlebooks", p.GoogleBooks != nil, func(ctx context.Context, v string) (schema.Record, error) { return p.GoogleBooks.SearchTitle(ctx, v) })
	}
	return out
}

// Lookup queries every provider relevant to q concurrently. Records come back
// in provider order whatever order the responses arrive in, ready for
// metadata.Merge. A failing provider is logged, recorded in the attempts and
// skipped; only when none succeeds does Lookup return ErrNoRecord.
func (s *Service) Lookup(ctx context.Context, q Query) ([]schema.Record, []Attempt, error) {
	if q.Kind == "" || q.Value == "" {
		return nil, nil, ErrEmptyQuery
	}
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	var (
		records  []schema.Record
		attempts []Attempt
	)
	st := stream.New()
	for _, src := range s.sources(q) {
		st.Go(func() stream.Callback {
			start := time.Now()
			rec, err := src.fetch(ctx, q.Value)
			if err == nil && rec.IsEmpty() {
				err = fmt.Errorf("%s: empty record", src.name)
			}
			took := time.Since(start)
			// callbacks run serially, in submission order
			return func() {
				logger := s.log.WithPrefix(src.name)
				if err != nil {
					logger.Warn("lookup failed", "query", q.Value, "err", err)
					attempts = append(attempts, Attempt{Provider: src.name, Error: err.Error(), Took: took})
					return
				}
				logger.Debug("lookup ok", "query", q.Value, "took", took)
				attempts = append(attempts, Attempt{Provider: src.name, Success: true, Took: took})
				records = append(records, rec)
			}
		})
	}
	st.Wait()

	if len(records) == 0 {
		return nil, attempts, fmt.Errorf("%s %q: %w", q.Kind, q.Value, ErrNoRecord)
	}
	return records, attempts, nil
}
