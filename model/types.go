package model

import (
	"time"
)

// PhotoDocument is the indexed representation of a stored photo.
// One document exists per object key; re-indexing the same key replaces
// the prior document wholesale.
type PhotoDocument struct {
	// ObjectKey is the object's key within its bucket and acts as the
	// document id in the search store.
	ObjectKey string `json:"objectKey" dynamodbav:"objectKey"`

	// Bucket is the name of the bucket holding the object.
	Bucket string `json:"bucket" dynamodbav:"bucket"`

	// CreatedTimestamp is the time the document was indexed, not the time
	// the object was uploaded. It is reassigned on every index write.
	CreatedTimestamp time.Time `json:"createdTimestamp" dynamodbav:"createdTimestamp"`

	// Labels is the union of recognition labels and user-supplied custom
	// labels, lower-cased, deduplicated and sorted.
	Labels []string `json:"labels" dynamodbav:"labels"`
}

// SearchResult is a single search hit, shaped for the API response.
type SearchResult struct {
	ObjectKey string   `json:"objectKey"`
	Bucket    string   `json:"bucket"`
	URL       string   `json:"url"`
	Labels    []string `json:"labels"`
}

// ObjectRef identifies an object in a storage event record.
type ObjectRef struct {
	Bucket string
	// Key is the object key as delivered by the event, possibly still
	// URL-encoded.
	Key string
	// Size is the object size in bytes as reported by the event.
	Size int64
}
