package face

import (
	"fmt"

	"github.com/teslashibe/go-facemetrics/pkg/detect"
	"github.com/teslashibe/go-facemetrics/pkg/geom"
)

// Extractor converts raw pixel-space detections into normalized metrics.
type Extractor struct {
	cfg Config
}

// NewExtractor returns an extractor using the given config.
func NewExtractor(cfg Config) *Extractor {
	return &Extractor{cfg: cfg}
}

// Extract normalizes a detection into resolution-independent metrics.
// Missing optional inputs (pose, probabilities, landmarks) degrade to
// zero values; only non-positive image dimensions are an error.
func (e *Extractor) Extract(d detect.Detection) (Metrics, error) {
	if d.ImageWidth <= 0 || d.ImageHeight <= 0 {
		return Metrics{}, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, d.ImageWidth, d.ImageHeight)
	}

	w := float64(d.ImageWidth)
	h := float64(d.ImageHeight)

	box := geom.Rect{
		Left:   d.Box.Left / w,
		Top:    d.Box.Top / h,
		Right:  d.Box.Right / w,
		Bottom: d.Box.Bottom / h,
	}.Clamp01()

	m := Metrics{
		FaceDetected: true,
		Box:          box,
		Position:     box.Center().Sub(geom.Point{X: 0.5, Y: 0.5}),
		FaceWidth:    box.Width(),
		FaceHeight:   box.Height(),
		Pitch:        d.Pitch,
		Roll:         d.Roll,
		Yaw:          d.Yaw,
	}

	if left, ok := d.Landmark(detect.LeftEye); ok {
		if right, ok := d.Landmark(detect.RightEye); ok {
			m.InterocularDistance = left.Dist(right) / w
		}
	}

	m.SmileConfidence = defaultProb(d.SmileProb)
	m.LeftEyeOpen = defaultProb(d.LeftEyeOpenProb)
	m.RightEyeOpen = defaultProb(d.RightEyeOpenProb)

	m.Smiling = m.SmileConfidence > e.cfg.SmileThreshold
	m.EyesOpen = (m.LeftEyeOpen+m.RightEyeOpen)/2 > e.cfg.EyeOpenThreshold
	m.Glasses = e.glassesHeuristic(d, m)

	m.Landmarks = normalizedLandmarks(d, w, h)

	// A detection the detector bothered to deliver is a face even when
	// the backend reports no score.
	if d.Score > 0 {
		m.Confidence = d.Score
	} else {
		m.Confidence = 1
	}

	m.Quality = Score(m, e.cfg.Weights)

	return m, nil
}

// glassesHeuristic guesses eyewear from landmark visibility: ears located
// while both eyes read open suggests frames occluding the eye region
// outline. A coarse proxy, not a classifier; expect false negatives for
// rimless glasses.
func (e *Extractor) glassesHeuristic(d detect.Detection, m Metrics) bool {
	_, leftEar := d.Landmark(detect.LeftEar)
	_, rightEar := d.Landmark(detect.RightEar)
	if !leftEar && !rightEar {
		return false
	}
	return m.LeftEyeOpen > e.cfg.EyeOpenThreshold && m.RightEyeOpen > e.cfg.EyeOpenThreshold
}

// normalizedLandmarks converts present landmarks to unit coordinates in
// canonical kind order.
func normalizedLandmarks(d detect.Detection, w, h float64) []Landmark {
	if len(d.Landmarks) == 0 {
		return nil
	}
	out := make([]Landmark, 0, len(d.Landmarks))
	for _, kind := range detect.AllKinds {
		p, ok := d.Landmark(kind)
		if !ok {
			continue
		}
		out = append(out, Landmark{
			Kind:     kind,
			Position: geom.Point{X: p.X / w, Y: p.Y / h},
		})
	}
	return out
}

// defaultProb maps the unknown-probability sentinel to 0.
func defaultProb(p float64) float64 {
	if p < 0 {
		return 0
	}
	return p
}
