package s3

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/hupe1980/photosearch/objectstore"
)

// Store implements objectstore.Store for AWS S3.
type Store struct {
	client     *s3.Client
	downloader *manager.Downloader
	region     string
}

// NewStore creates a new S3 object store.
// region is used for the public URL convention
// (https://<bucket>.s3.<region>.amazonaws.com/<key>).
func NewStore(client *s3.Client, region string) *Store {
	return &Store{
		client:     client,
		downloader: manager.NewDownloader(client),
		region:     region,
	}
}

// Get reads the full object content using the chunked download manager.
func (s *Store) Get(ctx context.Context, bucket, key string) ([]byte, error) {
	buf := manager.NewWriteAtBuffer(nil)

	_, err := s.downloader.Download(ctx, buf, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if isNotFound(err) {
			return nil, objectstore.ErrNotFound
		}
		return nil, err
	}

	return buf.Bytes(), nil
}

// UserMetadata returns the object's user-defined metadata via HeadObject.
// The SDK already strips the x-amz-meta- prefix; keys are lower-cased for
// a stable lookup.
func (s *Store) UserMetadata(ctx context.Context, bucket, key string) (map[string]string, error) {
	head, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if isNotFound(err) {
			return nil, objectstore.ErrNotFound
		}
		return nil, err
	}

	meta := make(map[string]string, len(head.Metadata))
	for k, v := range head.Metadata {
		meta[strings.ToLower(k)] = v
	}
	return meta, nil
}

// PublicURL returns the virtual-hosted-style URL for an object.
func (s *Store) PublicURL(bucket, key string) string {
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", bucket, s.region, escapeKey(key))
}

func escapeKey(key string) string {
	u := url.URL{Path: key}
	return strings.TrimPrefix(u.EscapedPath(), "/")
}

func isNotFound(err error) bool {
	var nf *types.NotFound
	if errors.As(err, &nf) {
		return true
	}
	var nsk *types.NoSuchKey
	return errors.As(err, &nsk)
}
