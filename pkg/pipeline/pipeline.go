// Package pipeline orchestrates the per-frame flow from raw detection to
// renderable output: extract metrics, classify status, smooth, and map
// overlay geometry.
package pipeline

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/teslashibe/go-facemetrics/pkg/detect"
	"github.com/teslashibe/go-facemetrics/pkg/face"
	"github.com/teslashibe/go-facemetrics/pkg/overlay"
)

// Frame is one processed pipeline tick, ready for publication.
type Frame struct {
	Seq        uint64    `json:"seq"`
	CapturedAt time.Time `json:"captured_at"`

	// Raw is the per-frame metrics record; Smoothed is the jitter-damped
	// view that drives the overlay.
	Raw      face.Metrics `json:"raw"`
	Smoothed face.Metrics `json:"smoothed"`

	// Status and range are classified from the raw record so guidance
	// reacts immediately, not after the smoothing window catches up.
	Status  face.Status `json:"status"`
	RangeCm float64     `json:"range_cm,omitempty"`

	Overlay overlay.Geometry `json:"overlay"`
}

// Pipeline turns detections into Frames. Process is single-goroutine;
// the mutex exists so threshold tuning and config reads from the
// dashboard land atomically between frames.
type Pipeline struct {
	mu         sync.Mutex
	cfg        face.Config
	extractor  *face.Extractor
	classifier *face.Classifier
	smoother   *face.Smoother
	mapper     *overlay.Mapper
	seq        uint64
}

// New builds a pipeline from cfg. A nil mapper gets the identity
// transform. Invalid configs are rejected up front rather than
// producing garbage metrics later.
func New(cfg face.Config, mapper *overlay.Mapper) (*Pipeline, error) {
	if problems := cfg.Validate(); len(problems) > 0 {
		return nil, fmt.Errorf("%w: %s", face.ErrInvalidConfig, strings.Join(problems, "; "))
	}
	if mapper == nil {
		mapper = overlay.NewMapper()
	}

	return &Pipeline{
		cfg:        cfg,
		extractor:  face.NewExtractor(cfg),
		classifier: face.NewClassifier(cfg.Thresholds, cfg.Range),
		smoother:   face.NewSmoother(cfg),
		mapper:     mapper,
	}, nil
}

// Process runs one detection through the pipeline. A nil detection is
// the explicit no-detection signal for this tick and produces a no-face
// frame; it still advances the smoothing window so stale faces age out.
func (p *Pipeline) Process(d *detect.Detection) (Frame, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	raw := face.NoFace()
	if d != nil {
		m, err := p.extractor.Extract(*d)
		if err != nil {
			return Frame{}, fmt.Errorf("pipeline: extract: %w", err)
		}
		raw = m
	}

	status := p.classifier.Classify(raw)
	rangeCm := p.classifier.EstimateRange(raw)
	smoothed := p.smoother.Push(raw)

	p.seq++
	return Frame{
		Seq:        p.seq,
		CapturedAt: time.Now().UTC(),
		Raw:        raw,
		Smoothed:   smoothed,
		Status:     status,
		RangeCm:    rangeCm,
		Overlay:    p.mapper.MapMetrics(smoothed),
	}, nil
}

// SetThresholds merges the positive fields of t into the current
// classifier thresholds, leaving zero fields untouched, and returns the
// effective result. A merge that leaves the far threshold at or below
// the close one is rejected whole.
func (p *Pipeline) SetThresholds(t face.StatusThresholds) (face.StatusThresholds, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	merged := p.cfg.Thresholds
	if t.TooFarCm > 0 {
		merged.TooFarCm = t.TooFarCm
	}
	if t.TooCloseCm > 0 {
		merged.TooCloseCm = t.TooCloseCm
	}
	if t.MaxHeadAngle > 0 {
		merged.MaxHeadAngle = t.MaxHeadAngle
	}

	if merged.TooFarCm <= merged.TooCloseCm {
		return p.cfg.Thresholds, fmt.Errorf("%w: too_far_cm must exceed too_close_cm", face.ErrInvalidConfig)
	}

	p.cfg.Thresholds = merged
	p.classifier.SetThresholds(merged)
	return merged, nil
}

// Thresholds returns the current classifier thresholds.
func (p *Pipeline) Thresholds() face.StatusThresholds {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cfg.Thresholds
}

// Config returns the current pipeline configuration.
func (p *Pipeline) Config() face.Config {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cfg
}

// Mapper exposes the overlay mapper so transport layers can apply
// orientation updates.
func (p *Pipeline) Mapper() *overlay.Mapper {
	return p.mapper
}

// Seq returns the number of frames processed so far.
func (p *Pipeline) Seq() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.seq
}

// Reset clears the smoothing window. The frame sequence keeps counting
// so consumers can still order frames across a reset.
func (p *Pipeline) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.smoother.Reset()
}
