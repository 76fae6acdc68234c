package searchstore

import (
	"context"

	"github.com/hupe1980/photosearch/label"
	"github.com/hupe1980/photosearch/model"
)

// FieldLabels is the multi-valued document field holding photo labels.
const FieldLabels = "labels"

// Store is an abstraction over the external document index.
//
// Upsert is insert-or-replace keyed by the document's ObjectKey and must be
// atomic per document: either the full document is stored or the prior
// state is retained.
type Store interface {
	// Upsert stores doc, replacing any prior document with the same
	// ObjectKey wholesale.
	Upsert(ctx context.Context, doc model.PhotoDocument) error

	// Search returns every document whose multi-valued q.Field intersects
	// q.AnyOf. Zero matches yield an empty slice and no error. An empty
	// q.AnyOf matches nothing.
	Search(ctx context.Context, q Query) ([]model.PhotoDocument, error)
}

// Query is a disjunctive multi-value match: a document matches when any
// one of AnyOf is present in its Field.
type Query struct {
	Field string
	AnyOf []string
}

// LabelQuery builds the disjunctive labels query for a keyword set.
// Keywords are normalized the same way stored labels are, so matching is
// case-insensitive by construction.
func LabelQuery(keywords []string) Query {
	return Query{
		Field: FieldLabels,
		AnyOf: label.NormalizeSet(keywords),
	}
}
