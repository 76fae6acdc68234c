// Package opensearch implements searchstore.Store for OpenSearch and
// Elasticsearch-compatible engines.
//
// Documents are indexed under their object key, so re-ingesting the same
// object replaces its document. The OR-match is expressed as a bool query
// with one should-clause per value and minimum_should_match 1.
//
// For AWS-managed domains, construct the client with request signing:
//
//	cfg, _ := config.LoadDefaultConfig(ctx)
//	signer, _ := requestsigner.NewSignerWithService(cfg, "es")
//	client, _ := opensearch.NewClient(opensearch.Config{
//	    Addresses: []string{endpoint},
//	    Signer:    signer,
//	})
//	store := opensearch.NewStore(client, "photos")
package opensearch
