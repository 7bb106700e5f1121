package pipeline

import (
	"context"
	"errors"
	"time"

	"github.com/teslashibe/go-facemetrics/internal/log"
	"github.com/teslashibe/go-facemetrics/pkg/detect"
)

// DetectionSource supplies the detections for one tick. Sources return
// detect.ErrNoFrame when nothing new is available yet.
type DetectionSource interface {
	Capture(ctx context.Context) ([]detect.Detection, error)
}

// Publisher receives processed frames, typically the dashboard server.
type Publisher interface {
	PublishFrame(Frame)
}

// DefaultFrameInterval paces the pipeline at 10 frames per second,
// plenty for guidance UX without saturating a Pi-class CPU.
const DefaultFrameInterval = 100 * time.Millisecond

// Runner drives a Pipeline from a DetectionSource at a fixed frame
// rate and publishes the results.
type Runner struct {
	pipeline *Pipeline
	source   DetectionSource
	pub      Publisher
	interval time.Duration
}

// NewRunner wires a pipeline to its source and publisher. A
// non-positive interval falls back to DefaultFrameInterval.
func NewRunner(p *Pipeline, source DetectionSource, pub Publisher, interval time.Duration) *Runner {
	if interval <= 0 {
		interval = DefaultFrameInterval
	}
	return &Runner{
		pipeline: p,
		source:   source,
		pub:      pub,
		interval: interval,
	}
}

// Run processes frames until the context is cancelled. Ticks where the
// source has no new frame are skipped; source errors are logged and the
// loop keeps going, since detector hiccups are routine during camera
// warmup and reconnects.
func (r *Runner) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	log.Info("pipeline runner started", "interval", r.interval.String())

	for {
		select {
		case <-ctx.Done():
			log.Info("pipeline runner stopped", "frames", r.pipeline.Seq())
			return
		case <-ticker.C:
			r.step(ctx)
		}
	}
}

func (r *Runner) step(ctx context.Context) {
	dets, err := r.source.Capture(ctx)
	if err != nil {
		if errors.Is(err, detect.ErrNoFrame) {
			return
		}
		log.Warn("detection capture failed", "error", err)
		return
	}

	frame, err := r.pipeline.Process(detect.SelectPrimary(dets))
	if err != nil {
		log.Warn("frame processing failed", "error", err)
		return
	}

	if r.pub != nil {
		r.pub.PublishFrame(frame)
	}
}
