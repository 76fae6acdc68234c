// Package recognition abstracts the image-recognition engine behind a
// narrow interface and applies the confidence gate that turns raw engine
// output into a normalized label set.
package recognition

import (
	"context"

	"golang.org/x/time/rate"

	"github.com/hupe1980/photosearch/label"
)

// DefaultMinConfidence is the minimum confidence (percent) a detected
// label must reach to be kept.
const DefaultMinConfidence float32 = 75

// Label is a single recognition result before normalization.
type Label struct {
	Name       string
	Confidence float32
}

// Detector extracts labels from raw image bytes.
type Detector interface {
	DetectLabels(ctx context.Context, image []byte) ([]Label, error)
}

// Extractor wraps a Detector with the confidence gate and label
// normalization. It is the ingestion path's "labels from bytes" step.
type Extractor struct {
	detector      Detector
	minConfidence float32
	limiter       *rate.Limiter
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithMinConfidence overrides the minimum confidence gate.
func WithMinConfidence(c float32) Option {
	return func(e *Extractor) {
		e.minConfidence = c
	}
}

// WithRateLimiter gates detect calls with the given limiter. Useful when
// the recognition engine throttles aggressively. Pass nil to disable.
func WithRateLimiter(l *rate.Limiter) Option {
	return func(e *Extractor) {
		e.limiter = l
	}
}

// NewExtractor creates a new Extractor around detector.
func NewExtractor(detector Detector, optFns ...Option) *Extractor {
	e := &Extractor{
		detector:      detector,
		minConfidence: DefaultMinConfidence,
	}
	for _, fn := range optFns {
		fn(e)
	}
	return e
}

// Extract detects labels in image, keeps those at or above the confidence
// gate and returns them normalized (lower-cased, trimmed, deduplicated,
// sorted). A failing engine call returns the error; degrading to an empty
// set is the caller's policy.
func (e *Extractor) Extract(ctx context.Context, image []byte) ([]string, error) {
	if e.limiter != nil {
		if err := e.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	detected, err := e.detector.DetectLabels(ctx, image)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(detected))
	for _, l := range detected {
		if l.Confidence < e.minConfidence {
			continue
		}
		names = append(names, l.Name)
	}

	return label.NormalizeSet(names), nil
}
