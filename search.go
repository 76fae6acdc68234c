package photosearch

import (
	"context"
	"strings"

	"github.com/hupe1980/photosearch/interpret"
	"github.com/hupe1980/photosearch/label"
	"github.com/hupe1980/photosearch/model"
	"github.com/hupe1980/photosearch/searchstore"
)

// URLResolver maps a stored object to its publicly resolvable URL.
// objectstore.Store satisfies it.
type URLResolver interface {
	PublicURL(bucket, key string) string
}

// Searcher translates free-text queries into label matches against the
// search store. It is stateless; a single Searcher may serve any number of
// concurrent searches.
type Searcher struct {
	interpreter interpret.Interpreter
	index       searchstore.Store
	urls        URLResolver
	logger      *Logger
}

// NewSearcher creates a new Searcher over the given collaborators.
func NewSearcher(interpreter interpret.Interpreter, index searchstore.Store, urls URLResolver, optFns ...Option) *Searcher {
	opts := defaultOptions()
	for _, fn := range optFns {
		fn(opts)
	}

	return &Searcher{
		interpreter: interpreter,
		index:       index,
		urls:        urls,
		logger:      opts.logger,
	}
}

// Search interprets q into a keyword set and returns every photo whose
// labels intersect it, in the store's own ordering.
//
// A blank q returns ErrQueryMissing. A query that yields no keywords
// returns an empty result list rather than the whole collection.
// Interpreter and store failures are returned as UpstreamError, distinct
// from a legitimate empty result.
func (s *Searcher) Search(ctx context.Context, q string) ([]model.SearchResult, error) {
	if strings.TrimSpace(q) == "" {
		return nil, ErrQueryMissing
	}

	keywords, err := s.interpreter.Keywords(ctx, q)
	if err != nil {
		err = upstream("interpreter", err)
		s.logger.LogSearch(ctx, 0, 0, err)
		return nil, err
	}

	keywords = label.NormalizeSet(keywords)
	if len(keywords) == 0 {
		s.logger.LogSearch(ctx, 0, 0, nil)
		return []model.SearchResult{}, nil
	}

	docs, err := s.index.Search(ctx, searchstore.LabelQuery(keywords))
	if err != nil {
		err = upstream("searchstore", err)
		s.logger.LogSearch(ctx, len(keywords), 0, err)
		return nil, err
	}

	results := make([]model.SearchResult, 0, len(docs))
	for _, doc := range docs {
		results = append(results, model.SearchResult{
			ObjectKey: doc.ObjectKey,
			Bucket:    doc.Bucket,
			URL:       s.urls.PublicURL(doc.Bucket, doc.ObjectKey),
			Labels:    doc.Labels,
		})
	}

	s.logger.LogSearch(ctx, len(keywords), len(results), nil)
	return results, nil
}
