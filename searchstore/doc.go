// Package searchstore abstracts the document index holding photo metadata.
//
// The Store interface covers the two operations the pipelines need: an
// atomic per-document upsert and a disjunctive (OR) search over a
// multi-valued field. Backends live in subpackages:
//
//   - searchstore/opensearch: OpenSearch / Elasticsearch-compatible engines
//   - searchstore/dynamo: DynamoDB table with an OR contains() scan filter
//
// MemoryStore is an in-process implementation for tests.
package searchstore
