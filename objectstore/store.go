package objectstore

import (
	"context"
	"errors"
)

// ErrNotFound is returned when an object does not exist.
//
// Implementations should return an error that satisfies
// errors.Is(err, ErrNotFound).
var ErrNotFound = errors.New("object not found")

// MetadataKeyCustomLabels is the default user-metadata key carrying the
// comma-delimited custom label list (the x-amz-meta-customlabels header).
const MetadataKeyCustomLabels = "customlabels"

// Store is an abstraction over the bucket storage holding the photos.
// It is the source of object bytes, user-defined metadata headers and
// public URLs.
type Store interface {
	// Get reads the full object content.
	Get(ctx context.Context, bucket, key string) ([]byte, error)

	// UserMetadata returns the object's user-defined metadata with
	// lower-cased keys. A missing object returns ErrNotFound; an object
	// without user metadata returns an empty map.
	UserMetadata(ctx context.Context, bucket, key string) (map[string]string, error)

	// PublicURL returns the publicly resolvable URL for an object,
	// following the storage layer's URL convention. It does not verify
	// that the object exists.
	PublicURL(bucket, key string) string
}
