package face

import (
	"sync"

	"github.com/teslashibe/go-facemetrics/pkg/geom"
)

// Smoother damps frame-to-frame jitter by averaging recent metrics over
// a bounded FIFO window. Pushes happen from the pipeline goroutine; the
// mutex makes Len and Reset safe from the dashboard.
type Smoother struct {
	mu       sync.Mutex
	window   []Metrics // oldest first
	capacity int

	smileThreshold   float64
	eyeOpenThreshold float64
	boxBlend         float64
}

// NewSmoother returns a smoother configured from cfg.
func NewSmoother(cfg Config) *Smoother {
	capacity := cfg.WindowSize
	if capacity < 1 {
		capacity = DefaultWindowSize
	}
	return &Smoother{
		capacity:         capacity,
		smileThreshold:   cfg.SmileThreshold,
		eyeOpenThreshold: cfg.EyeOpenThreshold,
		boxBlend:         cfg.BoxBlend,
	}
}

// Push records m into the window and returns the current smoothed
// estimate. A no-face sentinel or a window with fewer than 2 valid
// frames passes m through unchanged; sentinels are still recorded but
// never contribute to averages.
func (s *Smoother) Push(m Metrics) Metrics {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.window = append(s.window, m.Clone())
	if len(s.window) > s.capacity {
		s.window = s.window[1:]
	}

	if m.Confidence == 0 {
		return m
	}

	var sum Metrics
	valid := 0
	for _, f := range s.window {
		if f.Confidence == 0 {
			continue
		}
		valid++
		sum.InterocularDistance += f.InterocularDistance
		sum.FaceWidth += f.FaceWidth
		sum.FaceHeight += f.FaceHeight
		sum.Position.X += f.Position.X
		sum.Position.Y += f.Position.Y
		sum.Pitch += f.Pitch
		sum.Roll += f.Roll
		sum.Yaw += f.Yaw
		sum.Quality += f.Quality
		sum.SmileConfidence += f.SmileConfidence
		sum.LeftEyeOpen += f.LeftEyeOpen
		sum.RightEyeOpen += f.RightEyeOpen
	}

	if valid < 2 {
		return m
	}

	n := float64(valid)

	// Glasses, landmarks, and confidence carry over verbatim from the
	// newest frame: discrete signals, not noisy continuous ones.
	out := m.Clone()
	out.InterocularDistance = sum.InterocularDistance / n
	out.FaceWidth = sum.FaceWidth / n
	out.FaceHeight = sum.FaceHeight / n
	out.Position = geom.Point{X: sum.Position.X / n, Y: sum.Position.Y / n}
	out.Pitch = sum.Pitch / n
	out.Roll = sum.Roll / n
	out.Yaw = sum.Yaw / n
	out.Quality = sum.Quality / n
	out.SmileConfidence = sum.SmileConfidence / n
	out.LeftEyeOpen = sum.LeftEyeOpen / n
	out.RightEyeOpen = sum.RightEyeOpen / n

	out.Smiling = out.SmileConfidence > s.smileThreshold
	out.EyesOpen = (out.LeftEyeOpen+out.RightEyeOpen)/2 > s.eyeOpenThreshold

	out.Box = s.blendBox(m.Box, out)

	return out
}

// blendBox mixes the newest raw box with a box reconstructed from the
// averaged center and size, weighting the raw box by boxBlend so the
// overlay tracks fast motion while the average damps jitter.
func (s *Smoother) blendBox(newest geom.Rect, avg Metrics) geom.Rect {
	center := avg.Position.Add(geom.Point{X: 0.5, Y: 0.5})
	reconstructed := geom.RectFromCenter(center, avg.FaceWidth, avg.FaceHeight)

	b := s.boxBlend
	blended := geom.Rect{
		Left:   b*newest.Left + (1-b)*reconstructed.Left,
		Top:    b*newest.Top + (1-b)*reconstructed.Top,
		Right:  b*newest.Right + (1-b)*reconstructed.Right,
		Bottom: b*newest.Bottom + (1-b)*reconstructed.Bottom,
	}
	return blended.Clamp01()
}

// Reset clears the smoothing window.
func (s *Smoother) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.window = s.window[:0]
}

// Len reports the current window occupancy.
func (s *Smoother) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.window)
}

// Cap reports the window capacity.
func (s *Smoother) Cap() int {
	return s.capacity
}
