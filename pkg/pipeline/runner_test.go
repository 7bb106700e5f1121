package pipeline

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/teslashibe/go-facemetrics/pkg/detect"
)

// scriptedSource returns canned results per Capture call, repeating the
// last entry once the script runs out.
type scriptedSource struct {
	mu     sync.Mutex
	script []func() ([]detect.Detection, error)
	calls  int
}

func (s *scriptedSource) Capture(ctx context.Context) ([]detect.Detection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.calls
	if i >= len(s.script) {
		i = len(s.script) - 1
	}
	s.calls++
	return s.script[i]()
}

type collectingPublisher struct {
	mu     sync.Mutex
	frames []Frame
}

func (p *collectingPublisher) PublishFrame(f Frame) {
	p.mu.Lock()
	p.frames = append(p.frames, f)
	p.mu.Unlock()
}

func (p *collectingPublisher) snapshot() []Frame {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]Frame(nil), p.frames...)
}

// waitForFrames polls until the publisher has seen at least n frames.
func waitForFrames(t *testing.T, p *collectingPublisher, n int) []Frame {
	t.Helper()

	deadline := time.After(5 * time.Second)
	for {
		if frames := p.snapshot(); len(frames) >= n {
			return frames
		}
		select {
		case <-deadline:
			t.Fatalf("timed out waiting for %d frames, have %d", n, len(p.snapshot()))
		case <-time.After(time.Millisecond):
		}
	}
}

func detections() []detect.Detection {
	return []detect.Detection{frontalDetection()}
}

func TestRunnerPublishesFrames(t *testing.T) {
	src := &scriptedSource{script: []func() ([]detect.Detection, error){
		func() ([]detect.Detection, error) { return detections(), nil },
	}}
	pub := &collectingPublisher{}

	runner := NewRunner(newPipeline(t), src, pub, time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		runner.Run(ctx)
		close(done)
	}()

	frames := waitForFrames(t, pub, 3)
	cancel()
	<-done

	for i, f := range frames[:3] {
		if f.Seq != uint64(i+1) {
			t.Errorf("frame %d: Seq = %d, want %d", i, f.Seq, i+1)
		}
		if !f.Raw.HasFace() {
			t.Errorf("frame %d: expected a detected face", i)
		}
	}
}

func TestRunnerSkipsEmptyTicks(t *testing.T) {
	noFrame := func() ([]detect.Detection, error) { return nil, detect.ErrNoFrame }
	src := &scriptedSource{script: []func() ([]detect.Detection, error){
		noFrame,
		noFrame,
		noFrame,
		func() ([]detect.Detection, error) { return detections(), nil },
	}}
	pub := &collectingPublisher{}

	runner := NewRunner(newPipeline(t), src, pub, time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		runner.Run(ctx)
		close(done)
	}()

	frames := waitForFrames(t, pub, 1)
	cancel()
	<-done

	// Empty ticks never reached the pipeline
	if frames[0].Seq != 1 {
		t.Errorf("first frame Seq = %d, want 1", frames[0].Seq)
	}
}

func TestRunnerSurvivesSourceErrors(t *testing.T) {
	src := &scriptedSource{script: []func() ([]detect.Detection, error){
		func() ([]detect.Detection, error) { return nil, errors.New("camera unplugged") },
		func() ([]detect.Detection, error) { return detections(), nil },
	}}
	pub := &collectingPublisher{}

	runner := NewRunner(newPipeline(t), src, pub, time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		runner.Run(ctx)
		close(done)
	}()

	frames := waitForFrames(t, pub, 1)
	cancel()
	<-done

	if !frames[0].Raw.HasFace() {
		t.Error("expected the runner to keep going after a source error")
	}
}

func TestNewRunnerDefaultsInterval(t *testing.T) {
	r := NewRunner(newPipeline(t), &scriptedSource{script: []func() ([]detect.Detection, error){
		func() ([]detect.Detection, error) { return nil, detect.ErrNoFrame },
	}}, nil, 0)

	if r.interval != DefaultFrameInterval {
		t.Errorf("interval = %v, want %v", r.interval, DefaultFrameInterval)
	}
}
