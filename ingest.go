package photosearch

import (
	"context"
	"errors"
	"net/url"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/photosearch/label"
	"github.com/hupe1980/photosearch/model"
	"github.com/hupe1980/photosearch/objectstore"
	"github.com/hupe1980/photosearch/recognition"
	"github.com/hupe1980/photosearch/searchstore"
)

// Ingestor builds photo documents from stored objects and upserts them
// into the search store. It is stateless; a single Ingestor may serve any
// number of concurrent ingestions.
type Ingestor struct {
	objects          objectstore.Store
	extractor        *recognition.Extractor
	index            searchstore.Store
	logger           *Logger
	metadataKey      string
	clock            func() time.Time
	batchConcurrency int
}

// NewIngestor creates a new Ingestor over the given collaborators.
func NewIngestor(objects objectstore.Store, extractor *recognition.Extractor, index searchstore.Store, optFns ...Option) *Ingestor {
	opts := defaultOptions()
	for _, fn := range optFns {
		fn(opts)
	}

	return &Ingestor{
		objects:          objects,
		extractor:        extractor,
		index:            index,
		logger:           opts.logger,
		metadataKey:      opts.metadataKey,
		clock:            opts.clock,
		batchConcurrency: opts.batchConcurrency,
	}
}

// Ingest processes one storage event record: it reads the object, derives
// its label set and upserts the document keyed by the object key.
//
// Recognition and metadata failures degrade to empty label sets so the
// photo stays searchable by whatever labels could be derived. Object-read
// and index-write failures are returned to the invoking trigger, which
// owns the retry policy.
//
// Re-ingesting the same key replaces the prior document wholesale.
func (in *Ingestor) Ingest(ctx context.Context, bucket, rawKey string) error {
	key := decodeEventKey(rawKey)

	img, err := in.objects.Get(ctx, bucket, key)
	if err != nil {
		err = upstream("objectstore", err)
		in.logger.LogIngest(ctx, bucket, key, 0, err)
		return err
	}

	if len(img) == 0 {
		in.logger.InfoContext(ctx, "object is empty, skipping",
			"bucket", bucket,
			"object_key", key,
		)
		return nil
	}

	extracted, err := in.extractor.Extract(ctx, img)
	if err != nil {
		in.logger.LogExtract(ctx, bucket, key, 0, err)
		extracted = nil
	} else {
		in.logger.LogExtract(ctx, bucket, key, len(extracted), nil)
	}

	custom := in.customLabels(ctx, bucket, key)

	doc := model.PhotoDocument{
		ObjectKey:        key,
		Bucket:           bucket,
		CreatedTimestamp: in.clock().UTC(),
		Labels:           label.Union(extracted, custom),
	}

	if err := in.index.Upsert(ctx, doc); err != nil {
		err = upstream("searchstore", err)
		in.logger.LogIngest(ctx, bucket, key, 0, err)
		return err
	}

	in.logger.LogIngest(ctx, bucket, key, len(doc.Labels), nil)
	return nil
}

// IngestBatch processes a multi-record storage event with bounded
// concurrency. Records reported as empty are skipped up front. Every
// record is attempted regardless of earlier failures, and all failures
// are joined into the returned error so the invoking trigger can redrive
// each failed record.
func (in *Ingestor) IngestBatch(ctx context.Context, refs []model.ObjectRef) error {
	var (
		mu   sync.Mutex
		errs []error
	)

	var g errgroup.Group
	g.SetLimit(in.batchConcurrency)

	for _, ref := range refs {
		if ref.Size == 0 {
			in.logger.InfoContext(ctx, "object is empty, skipping",
				"bucket", ref.Bucket,
				"object_key", ref.Key,
			)
			continue
		}

		g.Go(func() error {
			if err := in.Ingest(ctx, ref.Bucket, ref.Key); err != nil {
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
			}
			return nil
		})
	}

	_ = g.Wait()
	return errors.Join(errs...)
}

// customLabels reads the custom-labels metadata header, degrading to an
// empty set on any failure. Malformed header values are parsed
// best-effort.
func (in *Ingestor) customLabels(ctx context.Context, bucket, key string) []string {
	meta, err := in.objects.UserMetadata(ctx, bucket, key)
	if err != nil {
		in.logger.WarnContext(ctx, "reading object metadata failed, continuing without custom labels",
			"bucket", bucket,
			"object_key", key,
			"error", err,
		)
		return nil
	}
	return label.ParseList(meta[in.metadataKey])
}

// decodeEventKey reverses the URL encoding storage events apply to object
// keys ('+' for space, percent escapes). Keys that do not decode cleanly
// are used as delivered.
func decodeEventKey(raw string) string {
	key, err := url.QueryUnescape(raw)
	if err != nil {
		return raw
	}
	return key
}
