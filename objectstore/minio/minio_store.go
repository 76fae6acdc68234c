package minio

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/minio/minio-go/v7"

	"github.com/hupe1980/photosearch/objectstore"
)

// Store implements objectstore.Store for MinIO and S3-compatible storage.
type Store struct {
	client *minio.Client
}

// NewStore creates a new MinIO object store.
func NewStore(client *minio.Client) *Store {
	return &Store{client: client}
}

// Get reads the full object content.
func (s *Store) Get(ctx context.Context, bucket, key string) ([]byte, error) {
	obj, err := s.client.GetObject(ctx, bucket, key, minio.GetObjectOptions{})
	if err != nil {
		if isNotFound(err) {
			return nil, objectstore.ErrNotFound
		}
		return nil, err
	}
	defer func() { _ = obj.Close() }()

	data, err := io.ReadAll(obj)
	if err != nil {
		if isNotFound(err) {
			return nil, objectstore.ErrNotFound
		}
		return nil, err
	}
	return data, nil
}

// UserMetadata returns the object's user-defined metadata with lower-cased
// keys. MinIO canonicalizes metadata keys on the wire, so lookups must not
// depend on the stored casing.
func (s *Store) UserMetadata(ctx context.Context, bucket, key string) (map[string]string, error) {
	info, err := s.client.StatObject(ctx, bucket, key, minio.StatObjectOptions{})
	if err != nil {
		if isNotFound(err) {
			return nil, objectstore.ErrNotFound
		}
		return nil, err
	}

	meta := make(map[string]string, len(info.UserMetadata))
	for k, v := range info.UserMetadata {
		meta[strings.ToLower(k)] = v
	}
	return meta, nil
}

// PublicURL joins the client endpoint with the path-style object address.
func (s *Store) PublicURL(bucket, key string) string {
	endpoint := strings.TrimRight(s.client.EndpointURL().String(), "/")
	return fmt.Sprintf("%s/%s/%s", endpoint, bucket, escapeKey(key))
}

func escapeKey(key string) string {
	u := url.URL{Path: key}
	return strings.TrimPrefix(u.EscapedPath(), "/")
}

func isNotFound(err error) bool {
	errResp := minio.ToErrorResponse(err)
	return errResp.Code == "NoSuchKey" || errResp.Code == "NotFound"
}
