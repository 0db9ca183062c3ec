// Package reference runs the merge, normalize and format pipeline that turns
// collected source records into a citation.
package reference

import (
	"errors"
	"time"

	"refgen/src/internal/citation"
	"refgen/src/internal/exchange"
	"refgen/src/internal/history"
	"refgen/src/internal/metadata"
	"refgen/src/internal/schema"
)

// ErrNoRecords reports that no source record was available to cite.
var ErrNoRecords = errors.New("no source records to generate a reference from")

// Result is the outcome of one generation. It is the value callers thread
// into exporting, copying and history.
type Result struct {
	Record   schema.Record
	Style    citation.Style
	Citation string
}

// Generate merges records in order (earlier records win conflicts), normalizes
// the merged record and formats it in style.
func Generate(records []schema.Record, style citation.Style) (Result, error) {
	if len(records) == 0 {
		return Result{}, ErrNoRecords
	}
	rec := metadata.Normalize(metadata.Merge(records))
	return Result{
		Record:   rec,
		Style:    style,
		Citation: citation.Format(rec, style),
	}, nil
}

// Export renders the result's record in an interchange format.
func (r Result) Export(f exchange.Format) (string, error) {
	return exchange.Export(r.Record, f)
}

// HistoryEntry is the history payload for the result, stamped at.
func (r Result) HistoryEntry(at time.Time) history.Entry {
	return history.Entry{
		Style:     string(r.Style),
		Text:      r.Citation,
		Record:    r.Record,
		CreatedAt: at,
	}
}
