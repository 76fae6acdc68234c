// Package model defines the core types shared by the ingestion and search
// paths.
//
//   - PhotoDocument: the per-object document persisted in the search store
//   - SearchResult: the public, URL-bearing shape of a search hit
//   - ObjectRef: an object reference as delivered by a storage event
//
// PhotoDocument carries both JSON and DynamoDB attribute tags so the same
// type serves every search store backend.
package model
