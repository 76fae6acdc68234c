package photosearch_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/photosearch"
	"github.com/hupe1980/photosearch/model"
	"github.com/hupe1980/photosearch/objectstore"
	"github.com/hupe1980/photosearch/recognition"
	"github.com/hupe1980/photosearch/searchstore"
)

type fakeDetector struct {
	labels []recognition.Label
	err    error
	calls  int
}

func (f *fakeDetector) DetectLabels(_ context.Context, _ []byte) ([]recognition.Label, error) {
	f.calls++
	return f.labels, f.err
}

type failingIndex struct {
	err error
}

// keyedFailingIndex fails upserts with a per-key error and counts attempts.
type keyedFailingIndex struct {
	mu       sync.Mutex
	errs     map[string]error
	attempts int
}

func (k *keyedFailingIndex) Upsert(_ context.Context, doc model.PhotoDocument) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.attempts++
	return k.errs[doc.ObjectKey]
}

func (k *keyedFailingIndex) Search(_ context.Context, _ searchstore.Query) ([]model.PhotoDocument, error) {
	return nil, nil
}

func (f *failingIndex) Upsert(_ context.Context, _ model.PhotoDocument) error {
	return f.err
}

func (f *failingIndex) Search(_ context.Context, _ searchstore.Query) ([]model.PhotoDocument, error) {
	return nil, f.err
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func newIngestor(objects *objectstore.MemoryStore, detector recognition.Detector, index searchstore.Store, now time.Time) *photosearch.Ingestor {
	return photosearch.NewIngestor(
		objects,
		recognition.NewExtractor(detector),
		index,
		photosearch.WithClock(fixedClock(now)),
	)
}

func TestIngestor_MergesAndNormalizesLabels(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	objects := objectstore.NewMemoryStore()
	objects.Put("photos-bucket", "img1.jpg", []byte{0xFF, 0xD8}, map[string]string{
		"customlabels": "Bird,Park",
	})

	detector := &fakeDetector{labels: []recognition.Label{
		{Name: "Dog", Confidence: 98},
	}}
	index := searchstore.NewMemoryStore()

	ingestor := newIngestor(objects, detector, index, now)
	require.NoError(t, ingestor.Ingest(ctx, "photos-bucket", "img1.jpg"))

	doc, ok := index.Get("img1.jpg")
	require.True(t, ok)

	assert.Equal(t, "img1.jpg", doc.ObjectKey)
	assert.Equal(t, "photos-bucket", doc.Bucket)
	assert.Equal(t, now, doc.CreatedTimestamp)
	assert.Equal(t, []string{"bird", "dog", "park"}, doc.Labels)
}

func TestIngestor_Idempotent(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	objects := objectstore.NewMemoryStore()
	objects.Put("photos-bucket", "img1.jpg", []byte{0x01}, map[string]string{
		"customlabels": "Bird",
	})

	detector := &fakeDetector{labels: []recognition.Label{
		{Name: "Dog", Confidence: 98},
	}}
	index := searchstore.NewMemoryStore()

	ingestor := newIngestor(objects, detector, index, now)

	require.NoError(t, ingestor.Ingest(ctx, "photos-bucket", "img1.jpg"))
	first, ok := index.Get("img1.jpg")
	require.True(t, ok)

	for range 3 {
		require.NoError(t, ingestor.Ingest(ctx, "photos-bucket", "img1.jpg"))
	}

	assert.Equal(t, 1, index.Len())

	after, ok := index.Get("img1.jpg")
	require.True(t, ok)
	assert.Equal(t, first, after)
}

func TestIngestor_EmptyCustomHeader(t *testing.T) {
	ctx := context.Background()

	objects := objectstore.NewMemoryStore()
	objects.Put("photos-bucket", "img1.jpg", []byte{0x01}, nil)

	detector := &fakeDetector{labels: []recognition.Label{
		{Name: "Cat", Confidence: 91},
		{Name: "Pet", Confidence: 88},
	}}
	index := searchstore.NewMemoryStore()

	ingestor := newIngestor(objects, detector, index, time.Now())
	require.NoError(t, ingestor.Ingest(ctx, "photos-bucket", "img1.jpg"))

	doc, ok := index.Get("img1.jpg")
	require.True(t, ok)

	// Exactly the normalized recognition label set.
	assert.Equal(t, []string{"cat", "pet"}, doc.Labels)
}

func TestIngestor_RecognitionFailureDegrades(t *testing.T) {
	ctx := context.Background()

	objects := objectstore.NewMemoryStore()
	objects.Put("photos-bucket", "img1.jpg", []byte{0x01}, map[string]string{
		"customlabels": "Bird,Park",
	})

	detector := &fakeDetector{err: errors.New("engine unavailable")}
	index := searchstore.NewMemoryStore()

	ingestor := newIngestor(objects, detector, index, time.Now())

	// Ingestion succeeds: the photo stays searchable by custom labels.
	require.NoError(t, ingestor.Ingest(ctx, "photos-bucket", "img1.jpg"))

	doc, ok := index.Get("img1.jpg")
	require.True(t, ok)
	assert.Equal(t, []string{"bird", "park"}, doc.Labels)
}

func TestIngestor_NoLabelsAtAll(t *testing.T) {
	ctx := context.Background()

	objects := objectstore.NewMemoryStore()
	objects.Put("photos-bucket", "img1.jpg", []byte{0x01}, nil)

	detector := &fakeDetector{err: errors.New("engine unavailable")}
	index := searchstore.NewMemoryStore()

	ingestor := newIngestor(objects, detector, index, time.Now())
	require.NoError(t, ingestor.Ingest(ctx, "photos-bucket", "img1.jpg"))

	// An empty label set is permitted.
	doc, ok := index.Get("img1.jpg")
	require.True(t, ok)
	assert.Empty(t, doc.Labels)
}

func TestIngestor_SkipsEmptyObject(t *testing.T) {
	ctx := context.Background()

	objects := objectstore.NewMemoryStore()
	objects.Put("photos-bucket", "empty.jpg", nil, nil)

	detector := &fakeDetector{}
	index := searchstore.NewMemoryStore()

	ingestor := newIngestor(objects, detector, index, time.Now())
	require.NoError(t, ingestor.Ingest(ctx, "photos-bucket", "empty.jpg"))

	assert.Equal(t, 0, index.Len())
	assert.Equal(t, 0, detector.calls)
}

func TestIngestor_DecodesEventKey(t *testing.T) {
	ctx := context.Background()

	objects := objectstore.NewMemoryStore()
	objects.Put("photos-bucket", "my photo 1.jpg", []byte{0x01}, nil)

	detector := &fakeDetector{labels: []recognition.Label{
		{Name: "Dog", Confidence: 98},
	}}
	index := searchstore.NewMemoryStore()

	ingestor := newIngestor(objects, detector, index, time.Now())

	// Storage events deliver '+' for space and percent escapes.
	require.NoError(t, ingestor.Ingest(ctx, "photos-bucket", "my+photo%201.jpg"))

	doc, ok := index.Get("my photo 1.jpg")
	require.True(t, ok)
	assert.Equal(t, "my photo 1.jpg", doc.ObjectKey)
}

func TestIngestor_MissingObject(t *testing.T) {
	ctx := context.Background()

	ingestor := newIngestor(objectstore.NewMemoryStore(), &fakeDetector{}, searchstore.NewMemoryStore(), time.Now())

	err := ingestor.Ingest(ctx, "photos-bucket", "missing.jpg")
	require.Error(t, err)

	var ue *photosearch.UpstreamError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, "objectstore", ue.Service)
	assert.ErrorIs(t, err, objectstore.ErrNotFound)
}

func TestIngestor_IndexWriteErrorPropagates(t *testing.T) {
	ctx := context.Background()

	objects := objectstore.NewMemoryStore()
	objects.Put("photos-bucket", "img1.jpg", []byte{0x01}, nil)

	detector := &fakeDetector{labels: []recognition.Label{
		{Name: "Dog", Confidence: 98},
	}}
	index := &failingIndex{err: errors.New("cluster red")}

	ingestor := photosearch.NewIngestor(objects, recognition.NewExtractor(detector), index)

	err := ingestor.Ingest(ctx, "photos-bucket", "img1.jpg")
	require.Error(t, err)

	var ue *photosearch.UpstreamError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, "searchstore", ue.Service)
}

func TestIngestor_IngestBatch(t *testing.T) {
	ctx := context.Background()

	objects := objectstore.NewMemoryStore()
	objects.Put("photos-bucket", "a.jpg", []byte{0x01}, nil)
	objects.Put("photos-bucket", "b.jpg", []byte{0x02}, map[string]string{
		"customlabels": "Park",
	})

	detector := &fakeDetector{labels: []recognition.Label{
		{Name: "Dog", Confidence: 98},
	}}
	index := searchstore.NewMemoryStore()

	ingestor := newIngestor(objects, detector, index, time.Now())

	refs := []model.ObjectRef{
		{Bucket: "photos-bucket", Key: "a.jpg", Size: 1},
		{Bucket: "photos-bucket", Key: "b.jpg", Size: 1},
		{Bucket: "photos-bucket", Key: "zero.jpg", Size: 0}, // skipped
	}
	require.NoError(t, ingestor.IngestBatch(ctx, refs))

	assert.Equal(t, 2, index.Len())

	doc, ok := index.Get("b.jpg")
	require.True(t, ok)
	assert.Equal(t, []string{"dog", "park"}, doc.Labels)
}

func TestIngestor_IngestBatchJoinsAllFailures(t *testing.T) {
	ctx := context.Background()

	objects := objectstore.NewMemoryStore()
	objects.Put("photos-bucket", "a.jpg", []byte{0x01}, nil)
	objects.Put("photos-bucket", "b.jpg", []byte{0x02}, nil)
	objects.Put("photos-bucket", "c.jpg", []byte{0x03}, nil)

	errA := errors.New("write rejected: a.jpg")
	errC := errors.New("write rejected: c.jpg")
	index := &keyedFailingIndex{errs: map[string]error{
		"a.jpg": errA,
		"c.jpg": errC,
	}}

	ingestor := photosearch.NewIngestor(
		objects,
		recognition.NewExtractor(&fakeDetector{}),
		index,
		photosearch.WithBatchConcurrency(1),
	)

	refs := []model.ObjectRef{
		{Bucket: "photos-bucket", Key: "a.jpg", Size: 1},
		{Bucket: "photos-bucket", Key: "b.jpg", Size: 1},
		{Bucket: "photos-bucket", Key: "c.jpg", Size: 1},
	}
	err := ingestor.IngestBatch(ctx, refs)
	require.Error(t, err)

	// Every record is attempted; an early failure neither cancels nor
	// masks the later ones.
	assert.Equal(t, 3, index.attempts)
	assert.ErrorIs(t, err, errA)
	assert.ErrorIs(t, err, errC)
}
