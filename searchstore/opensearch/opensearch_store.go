package opensearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/opensearch-project/opensearch-go/v2"
	"github.com/opensearch-project/opensearch-go/v2/opensearchapi"

	"github.com/hupe1980/photosearch/model"
	"github.com/hupe1980/photosearch/searchstore"
)

// DefaultIndex is the index holding one document per photo object key.
const DefaultIndex = "photos"

// Store implements searchstore.Store for OpenSearch and
// Elasticsearch-compatible engines.
type Store struct {
	client *opensearch.Client
	index  string
}

// NewStore creates a new OpenSearch-backed document store.
// The client carries endpoint, transport and request signing; for
// AWS-managed domains configure it with the signer/awsv2 package.
// An empty index falls back to DefaultIndex.
func NewStore(client *opensearch.Client, index string) *Store {
	if index == "" {
		index = DefaultIndex
	}
	return &Store{
		client: client,
		index:  index,
	}
}

// Upsert indexes doc under its ObjectKey. OpenSearch's index operation is
// insert-or-replace per document id, which gives the required wholesale
// replace semantics.
func (s *Store) Upsert(ctx context.Context, doc model.PhotoDocument) error {
	body, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal document %q: %w", doc.ObjectKey, err)
	}

	req := opensearchapi.IndexRequest{
		Index:      s.index,
		DocumentID: doc.ObjectKey,
		Body:       bytes.NewReader(body),
	}

	res, err := req.Do(ctx, s.client)
	if err != nil {
		return fmt.Errorf("index document %q: %w", doc.ObjectKey, err)
	}
	defer func() { _ = res.Body.Close() }()

	if res.IsError() {
		return fmt.Errorf("index document %q: %s", doc.ObjectKey, res.String())
	}

	return nil
}

// Search executes the disjunctive multi-value query and returns the source
// documents of all hits, in the engine's own relevance order. Result size
// is bounded by the engine's default page size.
func (s *Store) Search(ctx context.Context, q searchstore.Query) ([]model.PhotoDocument, error) {
	if len(q.AnyOf) == 0 {
		return []model.PhotoDocument{}, nil
	}

	body, err := json.Marshal(buildQuery(q))
	if err != nil {
		return nil, fmt.Errorf("marshal query: %w", err)
	}

	req := opensearchapi.SearchRequest{
		Index: []string{s.index},
		Body:  bytes.NewReader(body),
	}

	res, err := req.Do(ctx, s.client)
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", s.index, err)
	}
	defer func() { _ = res.Body.Close() }()

	if res.IsError() {
		return nil, fmt.Errorf("search %q: %s", s.index, res.String())
	}

	var envelope struct {
		Hits struct {
			Hits []struct {
				Source model.PhotoDocument `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	docs := make([]model.PhotoDocument, 0, len(envelope.Hits.Hits))
	for _, hit := range envelope.Hits.Hits {
		docs = append(docs, hit.Source)
	}
	return docs, nil
}

// buildQuery translates a disjunctive multi-value query into the engine
// DSL: one should-clause per value, minimum_should_match 1. Each clause
// matches the analyzed field and its keyword sub-field so exact label
// values hit regardless of the index mapping.
func buildQuery(q searchstore.Query) map[string]any {
	should := make([]any, 0, len(q.AnyOf))
	for _, v := range q.AnyOf {
		should = append(should, map[string]any{
			"multi_match": map[string]any{
				"query":  v,
				"fields": []string{q.Field, q.Field + ".keyword"},
			},
		})
	}

	return map[string]any{
		"query": map[string]any{
			"bool": map[string]any{
				"should":               should,
				"minimum_should_match": 1,
			},
		},
	}
}
