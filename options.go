package photosearch

import (
	"time"

	"github.com/hupe1980/photosearch/objectstore"
)

const defaultBatchConcurrency = 4

type options struct {
	logger           *Logger
	metadataKey      string
	clock            func() time.Time
	batchConcurrency int
}

// Option configures Ingestor and Searcher construction.
type Option func(*options)

func defaultOptions() *options {
	return &options{
		logger:           NoopLogger(),
		metadataKey:      objectstore.MetadataKeyCustomLabels,
		clock:            time.Now,
		batchConcurrency: defaultBatchConcurrency,
	}
}

// WithLogger configures structured logging. Pass nil to disable.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l == nil {
			l = NoopLogger()
		}
		o.logger = l
	}
}

// WithMetadataKey overrides the user-metadata key holding the
// comma-delimited custom label list.
func WithMetadataKey(key string) Option {
	return func(o *options) {
		if key != "" {
			o.metadataKey = key
		}
	}
}

// WithClock overrides the time source used for document timestamps.
// Intended for tests.
func WithClock(fn func() time.Time) Option {
	return func(o *options) {
		if fn != nil {
			o.clock = fn
		}
	}
}

// WithBatchConcurrency bounds how many records IngestBatch processes in
// parallel. Values below 1 fall back to serial processing.
func WithBatchConcurrency(n int) Option {
	return func(o *options) {
		if n < 1 {
			n = 1
		}
		o.batchConcurrency = n
	}
}
