package face

import (
	"fmt"
	"math"
)

// Calibration defaults. All of these are acknowledged-approximate: they
// were tuned against the reference detector, so they live in Config as
// named tunables rather than inline literals.
const (
	DefaultSmileThreshold   = 0.7 // Smiling above this confidence
	DefaultEyeOpenThreshold = 0.5 // Eyes open above this mean confidence

	DefaultWindowSize = 5   // Smoothing window capacity in frames
	DefaultBoxBlend   = 0.7 // Newest-box share in the smoothed box

	DefaultTooFarCm     = 150.0 // Estimated range beyond this reads as too far
	DefaultTooCloseCm   = 50.0  // Estimated range under this reads as too close
	DefaultMaxHeadAngle = 20.0  // Degrees of pitch/roll/yaw before misaligned
)

// weightTolerance bounds the float error allowed when checking that
// weight groups sum to 1.
const weightTolerance = 1e-9

// QualityWeights holds the composite quality score weights. The four
// component weights sum to 1, as do the three orientation shares;
// Validate enforces both.
type QualityWeights struct {
	Orientation      float64 `json:"orientation"`       // Head pose component
	EyeOpenness      float64 `json:"eye_openness"`      // Mean eye-open confidence component
	SmileNeutrality  float64 `json:"smile_neutrality"`  // Neutral-expression component
	LandmarkCoverage float64 `json:"landmark_coverage"` // Landmark count component

	// Per-axis shares of the orientation penalty
	PitchShare float64 `json:"pitch_share"`
	RollShare  float64 `json:"roll_share"`
	YawShare   float64 `json:"yaw_share"`

	// FullPenaltyAngle is the angle in degrees at which an axis
	// contributes its full share of penalty.
	FullPenaltyAngle float64 `json:"full_penalty_angle"`

	// FullCoverageCount is the landmark count that earns full coverage.
	FullCoverageCount int `json:"full_coverage_count"`
}

// DefaultQualityWeights returns the calibrated scoring weights.
func DefaultQualityWeights() QualityWeights {
	return QualityWeights{
		Orientation:      0.4,
		EyeOpenness:      0.3,
		SmileNeutrality:  0.1,
		LandmarkCoverage: 0.2,

		PitchShare: 0.4,
		RollShare:  0.3,
		YawShare:   0.3,

		FullPenaltyAngle:  45,
		FullCoverageCount: 5,
	}
}

// StatusThresholds holds the detection-status classifier thresholds.
type StatusThresholds struct {
	TooFarCm     float64 `json:"too_far_cm"`     // Range above this is too far
	TooCloseCm   float64 `json:"too_close_cm"`   // Range below this is too close
	MaxHeadAngle float64 `json:"max_head_angle"` // Max |pitch|/|roll|/|yaw| in degrees
}

// DefaultStatusThresholds returns thresholds calibrated against the
// default range estimator.
func DefaultStatusThresholds() StatusThresholds {
	return StatusThresholds{
		TooFarCm:     DefaultTooFarCm,
		TooCloseCm:   DefaultTooCloseCm,
		MaxHeadAngle: DefaultMaxHeadAngle,
	}
}

// Config holds all tunable parameters for the metrics pipeline.
type Config struct {
	// Booleans derived from classifier confidences
	SmileThreshold   float64 `json:"smile_threshold"`    // Smiling when confidence exceeds this
	EyeOpenThreshold float64 `json:"eye_open_threshold"` // Eyes open when mean confidence exceeds this

	// Quality scoring
	Weights QualityWeights `json:"weights"`

	// Status classification
	Thresholds StatusThresholds `json:"thresholds"`
	Range      RangeEstimator   `json:"range"`

	// Temporal smoothing
	WindowSize int     `json:"window_size"` // Smoothing window capacity in frames
	BoxBlend   float64 `json:"box_blend"`   // Newest-box share in the smoothed box, 0-1
}

// DefaultConfig returns the recommended pipeline configuration.
func DefaultConfig() Config {
	return Config{
		SmileThreshold:   DefaultSmileThreshold,
		EyeOpenThreshold: DefaultEyeOpenThreshold,
		Weights:          DefaultQualityWeights(),
		Thresholds:       DefaultStatusThresholds(),
		Range:            DefaultRangeEstimator(),
		WindowSize:       DefaultWindowSize,
		BoxBlend:         DefaultBoxBlend,
	}
}

// ResponsiveConfig favors latency over stability: a shorter window and a
// heavier newest-frame bias.
func ResponsiveConfig() Config {
	cfg := DefaultConfig()
	cfg.WindowSize = 3
	cfg.BoxBlend = 0.85
	return cfg
}

// SteadyConfig favors stability over latency: a longer window and a
// lighter newest-frame bias.
func SteadyConfig() Config {
	cfg := DefaultConfig()
	cfg.WindowSize = 8
	cfg.BoxBlend = 0.5
	return cfg
}

// Validate checks that the config values are usable.
// Returns a list of problems, or nil if the config is valid.
func (c *Config) Validate() []string {
	var problems []string

	if c.SmileThreshold < 0 || c.SmileThreshold > 1 {
		problems = append(problems, "smile_threshold must be between 0 and 1")
	}
	if c.EyeOpenThreshold < 0 || c.EyeOpenThreshold > 1 {
		problems = append(problems, "eye_open_threshold must be between 0 and 1")
	}

	w := c.Weights
	if w.Orientation < 0 || w.EyeOpenness < 0 || w.SmileNeutrality < 0 || w.LandmarkCoverage < 0 {
		problems = append(problems, "quality weights must be non-negative")
	}
	if sum := w.Orientation + w.EyeOpenness + w.SmileNeutrality + w.LandmarkCoverage; math.Abs(sum-1) > weightTolerance {
		problems = append(problems, fmt.Sprintf("quality weights must sum to 1, got %v", sum))
	}
	if w.PitchShare < 0 || w.RollShare < 0 || w.YawShare < 0 {
		problems = append(problems, "orientation shares must be non-negative")
	}
	if sum := w.PitchShare + w.RollShare + w.YawShare; math.Abs(sum-1) > weightTolerance {
		problems = append(problems, fmt.Sprintf("orientation shares must sum to 1, got %v", sum))
	}
	if w.FullPenaltyAngle <= 0 {
		problems = append(problems, "full_penalty_angle must be positive")
	}
	if w.FullCoverageCount <= 0 {
		problems = append(problems, "full_coverage_count must be positive")
	}

	t := c.Thresholds
	if t.TooCloseCm <= 0 {
		problems = append(problems, "too_close_cm must be positive")
	}
	if t.TooFarCm <= t.TooCloseCm {
		problems = append(problems, "too_far_cm must exceed too_close_cm")
	}
	if t.MaxHeadAngle <= 0 {
		problems = append(problems, "max_head_angle must be positive")
	}

	r := c.Range
	if r.CalibrationCm <= 0 {
		problems = append(problems, "range calibration_cm must be positive")
	}
	if r.MinCm <= 0 || r.MaxCm <= r.MinCm {
		problems = append(problems, "range clamp must satisfy 0 < min_cm < max_cm")
	}

	if c.WindowSize < 1 {
		problems = append(problems, "window_size must be at least 1")
	}
	if c.BoxBlend < 0 || c.BoxBlend > 1 {
		problems = append(problems, "box_blend must be between 0 and 1")
	}

	return problems
}
