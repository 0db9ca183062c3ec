package enrich

import (
	"strings"

	"refgen/src/internal/doi"
	"refgen/src/internal/isbn"
)

// Kind is the identifier class of a lookup query.
type Kind string

const (
	KindDOI   Kind = "doi"
	KindISBN  Kind = "isbn"
	KindTitle Kind = "title"
)

// Query is a classified lookup input.
type Query struct {
	Kind  Kind
	Value string
}

// Detect classifies free text: a DOI anywhere in it wins, then an ISBN-13 or
// ISBN-10, and otherwise the whole text is treated as a title.
func Detect(text string) Query {
	text = strings.TrimSpace(text)
	if text == "" {
		return Query{}
	}
	if d := doi.Extract(text); d != "" {
		return Query{Kind: KindDOI, Value: d}
	}
	if i := isbn.Extract(text); i != "" {
		return Query{Kind: KindISBN, Value: i}
	}
	return Query{Kind: KindTitle, Value: text}
}
