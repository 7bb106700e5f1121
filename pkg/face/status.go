package face

import (
	"fmt"
	"math"
)

// Status is the discrete operational state derived from a metrics
// record. It is recomputed on demand, never stored.
type Status int

// Detection statuses, in classification precedence order.
const (
	StatusNoFace Status = iota
	StatusDetected
	StatusTooFar
	StatusTooClose
	StatusMisaligned
)

var statusNames = [...]string{
	"no-face", "detected", "too-far", "too-close", "misaligned",
}

// String returns the kebab-case name of the status.
func (s Status) String() string {
	if s < 0 || int(s) >= len(statusNames) {
		return fmt.Sprintf("status(%d)", int(s))
	}
	return statusNames[s]
}

// MarshalText implements encoding.TextMarshaler.
func (s Status) MarshalText() ([]byte, error) {
	if s < 0 || int(s) >= len(statusNames) {
		return nil, fmt.Errorf("face: unknown status %d", int(s))
	}
	return []byte(statusNames[s]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Status) UnmarshalText(text []byte) error {
	name := string(text)
	for i, n := range statusNames {
		if n == name {
			*s = Status(i)
			return nil
		}
	}
	return fmt.Errorf("face: unknown status %q", name)
}

// Guidance returns a short user-facing hint for the status, suitable for
// display next to the camera preview.
func (s Status) Guidance() string {
	switch s {
	case StatusNoFace:
		return "No face detected"
	case StatusDetected:
		return "Looking good"
	case StatusTooFar:
		return "Move closer to the camera"
	case StatusTooClose:
		return "Move back from the camera"
	case StatusMisaligned:
		return "Face the camera directly"
	default:
		return ""
	}
}

// Classifier derives a Status from a metrics record using threshold
// rules. Classification is pure: the same metrics and thresholds always
// produce the same status.
type Classifier struct {
	thresholds StatusThresholds
	estimator  RangeEstimator
}

// NewClassifier returns a classifier with the given thresholds and range
// estimator.
func NewClassifier(thresholds StatusThresholds, estimator RangeEstimator) *Classifier {
	return &Classifier{thresholds: thresholds, estimator: estimator}
}

// Classify derives the detection status for m. Precedence, first match
// wins: no face, too far, too close, misaligned, detected. An unknown
// range (0) skips the distance checks.
func (c *Classifier) Classify(m Metrics) Status {
	if m.Confidence == 0 {
		return StatusNoFace
	}

	if cm := c.estimator.EstimateCm(m); cm > 0 {
		if cm > c.thresholds.TooFarCm {
			return StatusTooFar
		}
		if cm < c.thresholds.TooCloseCm {
			return StatusTooClose
		}
	}

	if math.Abs(m.Pitch) > c.thresholds.MaxHeadAngle ||
		math.Abs(m.Roll) > c.thresholds.MaxHeadAngle ||
		math.Abs(m.Yaw) > c.thresholds.MaxHeadAngle {
		return StatusMisaligned
	}

	return StatusDetected
}

// EstimateRange returns the estimated subject distance in centimeters,
// 0 when unknown.
func (c *Classifier) EstimateRange(m Metrics) float64 {
	return c.estimator.EstimateCm(m)
}

// SetThresholds replaces the classifier thresholds.
func (c *Classifier) SetThresholds(t StatusThresholds) {
	c.thresholds = t
}

// Thresholds returns the current thresholds.
func (c *Classifier) Thresholds() StatusThresholds {
	return c.thresholds
}
