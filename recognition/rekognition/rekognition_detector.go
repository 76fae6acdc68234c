// Package rekognition implements recognition.Detector with AWS
// Rekognition's DetectLabels API.
package rekognition

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/rekognition"
	"github.com/aws/aws-sdk-go-v2/service/rekognition/types"

	"github.com/hupe1980/photosearch/recognition"
)

// DefaultMaxLabels caps how many labels a single detect call returns.
const DefaultMaxLabels int32 = 10

// Client is the subset of the Rekognition API the detector uses.
type Client interface {
	DetectLabels(ctx context.Context, params *rekognition.DetectLabelsInput, optFns ...func(*rekognition.Options)) (*rekognition.DetectLabelsOutput, error)
}

// Detector calls Rekognition DetectLabels on raw image bytes.
type Detector struct {
	client        Client
	maxLabels     int32
	minConfidence float32
}

// Option configures a Detector.
type Option func(*Detector)

// WithMaxLabels overrides the per-call label cap.
func WithMaxLabels(n int32) Option {
	return func(d *Detector) {
		d.maxLabels = n
	}
}

// WithMinConfidence pushes the confidence gate down to the service so
// low-confidence labels never cross the wire. The Extractor applies the
// same gate again locally, so the two thresholds should match.
func WithMinConfidence(c float32) Option {
	return func(d *Detector) {
		d.minConfidence = c
	}
}

// NewDetector creates a new Rekognition-backed detector.
func NewDetector(client Client, optFns ...Option) *Detector {
	d := &Detector{
		client:        client,
		maxLabels:     DefaultMaxLabels,
		minConfidence: recognition.DefaultMinConfidence,
	}
	for _, fn := range optFns {
		fn(d)
	}
	return d
}

// DetectLabels implements recognition.Detector.
func (d *Detector) DetectLabels(ctx context.Context, image []byte) ([]recognition.Label, error) {
	out, err := d.client.DetectLabels(ctx, &rekognition.DetectLabelsInput{
		Image: &types.Image{
			Bytes: image,
		},
		MaxLabels:     aws.Int32(d.maxLabels),
		MinConfidence: aws.Float32(d.minConfidence),
	})
	if err != nil {
		return nil, err
	}

	labels := make([]recognition.Label, 0, len(out.Labels))
	for _, l := range out.Labels {
		labels = append(labels, recognition.Label{
			Name:       aws.ToString(l.Name),
			Confidence: aws.ToFloat32(l.Confidence),
		})
	}
	return labels, nil
}
