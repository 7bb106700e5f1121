package face

import "testing"

func TestClassifyPrecedence(t *testing.T) {
	c := NewClassifier(DefaultStatusThresholds(), DefaultRangeEstimator())

	tests := []struct {
		name string
		m    Metrics
		want Status
	}{
		{
			// Confidence 0 wins no matter how extreme the other fields
			"sentinel always no-face",
			Metrics{FaceWidth: 0.9, Pitch: 90, Roll: 90, Yaw: 90},
			StatusNoFace,
		},
		{
			"centered frontal face",
			Metrics{FaceDetected: true, FaceWidth: 0.3125, Confidence: 1},
			StatusDetected,
		},
		{
			// width 0.1 -> 200cm
			"small face is too far",
			Metrics{FaceDetected: true, FaceWidth: 0.1, Confidence: 1},
			StatusTooFar,
		},
		{
			// width 0.5 -> 40cm
			"large face is too close",
			Metrics{FaceDetected: true, FaceWidth: 0.5, Confidence: 1},
			StatusTooClose,
		},
		{
			"turned head is misaligned",
			Metrics{FaceDetected: true, FaceWidth: 0.3125, Yaw: 50, Confidence: 1},
			StatusMisaligned,
		},
		{
			"tilted head is misaligned",
			Metrics{FaceDetected: true, FaceWidth: 0.3125, Roll: -25, Confidence: 1},
			StatusMisaligned,
		},
		{
			"nodded head is misaligned",
			Metrics{FaceDetected: true, FaceWidth: 0.3125, Pitch: 20.5, Confidence: 1},
			StatusMisaligned,
		},
		{
			// Distance outranks orientation
			"far and turned resolves to too far",
			Metrics{FaceDetected: true, FaceWidth: 0.1, Yaw: 50, Confidence: 1},
			StatusTooFar,
		},
		{
			"close and turned resolves to too close",
			Metrics{FaceDetected: true, FaceWidth: 0.5, Pitch: 45, Confidence: 1},
			StatusTooClose,
		},
		{
			// Unknown range skips the distance checks
			"unknown range frontal",
			Metrics{FaceDetected: true, Confidence: 1},
			StatusDetected,
		},
		{
			"unknown range turned",
			Metrics{FaceDetected: true, Yaw: 30, Confidence: 1},
			StatusMisaligned,
		},
		{
			// The angle threshold is strict: exactly 20 degrees passes
			"at the angle threshold",
			Metrics{FaceDetected: true, FaceWidth: 0.3125, Yaw: 20, Confidence: 1},
			StatusDetected,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.Classify(tt.m); got != tt.want {
				t.Errorf("Classify = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestClassifierThresholdTuning(t *testing.T) {
	c := NewClassifier(DefaultStatusThresholds(), DefaultRangeEstimator())
	m := Metrics{FaceDetected: true, FaceWidth: 0.3125, Yaw: 15, Confidence: 1}

	if got := c.Classify(m); got != StatusDetected {
		t.Fatalf("Classify = %v, want detected before tuning", got)
	}

	th := c.Thresholds()
	th.MaxHeadAngle = 10
	c.SetThresholds(th)

	if got := c.Classify(m); got != StatusMisaligned {
		t.Errorf("Classify = %v, want misaligned after tightening the angle", got)
	}
}

func TestClassifierEstimateRange(t *testing.T) {
	c := NewClassifier(DefaultStatusThresholds(), DefaultRangeEstimator())

	m := Metrics{FaceDetected: true, FaceWidth: 0.3125, Confidence: 1}
	if got := c.EstimateRange(m); !floatEquals(got, 64) {
		t.Errorf("EstimateRange = %v, want 64", got)
	}
	if got := c.EstimateRange(NoFace()); got != 0 {
		t.Errorf("EstimateRange(sentinel) = %v, want 0", got)
	}
}

func TestStatusText(t *testing.T) {
	tests := []struct {
		status Status
		want   string
	}{
		{StatusNoFace, "no-face"},
		{StatusDetected, "detected"},
		{StatusTooFar, "too-far"},
		{StatusTooClose, "too-close"},
		{StatusMisaligned, "misaligned"},
	}

	for _, tt := range tests {
		if got := tt.status.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}

		text, err := tt.status.MarshalText()
		if err != nil {
			t.Fatalf("MarshalText(%v): %v", tt.status, err)
		}
		var back Status
		if err := back.UnmarshalText(text); err != nil {
			t.Fatalf("UnmarshalText(%q): %v", text, err)
		}
		if back != tt.status {
			t.Errorf("round trip = %v, want %v", back, tt.status)
		}

		if tt.status.Guidance() == "" {
			t.Errorf("Guidance(%v) is empty", tt.status)
		}
	}

	var s Status
	if err := s.UnmarshalText([]byte("bogus")); err == nil {
		t.Error("UnmarshalText should reject unknown names")
	}
}
