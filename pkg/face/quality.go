package face

import "math"

// Score computes the composite capture-quality score for m: a weighted
// sum of head orientation, eye openness, expression neutrality, and
// landmark coverage, clamped to [0,1]. The sentinel metrics score 0.
func Score(m Metrics, w QualityWeights) float64 {
	if !m.HasFace() {
		return 0
	}

	score := w.Orientation*orientationScore(m, w) +
		w.EyeOpenness*eyeScore(m) +
		w.SmileNeutrality*neutralityScore(m) +
		w.LandmarkCoverage*coverageScore(m, w)

	return clamp01(score)
}

// orientationScore rewards a frontal pose. Each axis contributes a
// penalty proportional to its angle, saturating at FullPenaltyAngle.
func orientationScore(m Metrics, w QualityWeights) float64 {
	penalty := w.PitchShare*anglePenalty(m.Pitch, w.FullPenaltyAngle) +
		w.RollShare*anglePenalty(m.Roll, w.FullPenaltyAngle) +
		w.YawShare*anglePenalty(m.Yaw, w.FullPenaltyAngle)
	return 1 - penalty
}

func anglePenalty(angle, fullAngle float64) float64 {
	return math.Min(math.Abs(angle)/fullAngle, 1)
}

// eyeScore is the mean eye-open confidence.
func eyeScore(m Metrics) float64 {
	return (m.LeftEyeOpen + m.RightEyeOpen) / 2
}

// neutralityScore peaks at 1 for a neutral expression (smile confidence
// 0.5) and falls linearly to 0 at either extreme.
func neutralityScore(m Metrics) float64 {
	return 1 - 2*math.Abs(m.SmileConfidence-0.5)
}

// coverageScore rewards landmark count, saturating at FullCoverageCount.
func coverageScore(m Metrics, w QualityWeights) float64 {
	return math.Min(float64(len(m.Landmarks))/float64(w.FullCoverageCount), 1)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
