package face

// RangeEstimator estimates subject distance from apparent face size.
// An adult face spanning the full frame width sits roughly CalibrationCm
// from the lens, so range falls off as the reciprocal of face width.
// Accuracy is about ±30%: good enough for too-far/too-close guidance,
// not for measurement.
type RangeEstimator struct {
	CalibrationCm float64 `json:"calibration_cm"` // Range in cm at full-width face
	MinCm         float64 `json:"min_cm"`         // Clamp floor
	MaxCm         float64 `json:"max_cm"`         // Clamp ceiling
}

// DefaultRangeEstimator returns the estimator calibrated for a typical
// webcam field of view: a face spanning 20% of the frame width reads as
// roughly one meter.
func DefaultRangeEstimator() RangeEstimator {
	return RangeEstimator{
		CalibrationCm: 20,
		MinCm:         10,
		MaxCm:         500,
	}
}

// EstimateCm returns the estimated subject distance in centimeters,
// clamped to [MinCm, MaxCm]. Returns 0 (unknown) when the metrics carry
// no positive face width.
func (r RangeEstimator) EstimateCm(m Metrics) float64 {
	if !m.HasFace() || m.FaceWidth <= 0 {
		return 0
	}

	cm := r.CalibrationCm / m.FaceWidth
	if cm < r.MinCm {
		return r.MinCm
	}
	if cm > r.MaxCm {
		return r.MaxCm
	}
	return cm
}
