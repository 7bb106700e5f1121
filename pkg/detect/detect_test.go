package detect

import (
	"math"
	"testing"

	"github.com/teslashibe/go-facemetrics/pkg/geom"
	"github.com/teslashibe/go-facemetrics/pkg/protocol"
)

func TestLandmarkKindText(t *testing.T) {
	for _, k := range AllKinds {
		text, err := k.MarshalText()
		if err != nil {
			t.Fatalf("MarshalText(%v) error = %v", k, err)
		}

		var back LandmarkKind
		if err := back.UnmarshalText(text); err != nil {
			t.Fatalf("UnmarshalText(%q) error = %v", text, err)
		}
		if back != k {
			t.Errorf("round trip %v -> %q -> %v", k, text, back)
		}
	}

	var k LandmarkKind
	if err := k.UnmarshalText([]byte("third-eye")); err == nil {
		t.Error("UnmarshalText should reject unknown kinds")
	}
}

func TestNewDetectionDefaults(t *testing.T) {
	d := NewDetection(geom.Rect{Left: 10, Top: 10, Right: 50, Bottom: 50}, 640, 480)

	if d.SmileProb != ProbUnknown {
		t.Errorf("SmileProb = %v, want ProbUnknown", d.SmileProb)
	}
	if d.LeftEyeOpenProb != ProbUnknown || d.RightEyeOpenProb != ProbUnknown {
		t.Error("eye probabilities should default to ProbUnknown")
	}
	if d.TrackingID >= 0 {
		t.Errorf("TrackingID = %v, want negative", d.TrackingID)
	}
	if d.Pitch != 0 || d.Roll != 0 || d.Yaw != 0 {
		t.Error("pose should default to frontal")
	}
}

func TestSelectPrimary(t *testing.T) {
	det := func(l, t, r, b, score float64) Detection {
		d := NewDetection(geom.Rect{Left: l, Top: t, Right: r, Bottom: b}, 640, 480)
		d.Score = score
		return d
	}

	tests := []struct {
		name       string
		detections []Detection
		expectNil  bool
		expectIdx  int // Expected index of primary detection
	}{
		{
			name:       "empty list",
			detections: []Detection{},
			expectNil:  true,
		},
		{
			name: "single detection",
			detections: []Detection{
				det(100, 100, 200, 200, 0.9),
			},
			expectNil: false,
			expectIdx: 0,
		},
		{
			name: "high confidence beats larger area",
			detections: []Detection{
				det(0, 0, 400, 400, 0.5),      // Larger but low conf
				det(300, 300, 500, 500, 0.95), // Smaller but high conf
			},
			expectNil: false,
			expectIdx: 1, // 0.95*0.7 + 0.25*0.3 = 0.74 vs 0.5*0.7 + 1.0*0.3 = 0.65
		},
		{
			name: "similar confidence picks larger",
			detections: []Detection{
				det(0, 0, 300, 300, 0.8), // Larger
				det(0, 0, 100, 100, 0.8), // Smaller
			},
			expectNil: false,
			expectIdx: 0,
		},
		{
			name: "unscored detections fall back to area",
			detections: []Detection{
				det(0, 0, 100, 100, 0),
				det(0, 0, 300, 300, 0),
			},
			expectNil: false,
			expectIdx: 1,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			primary := SelectPrimary(tc.detections)
			if tc.expectNil {
				if primary != nil {
					t.Errorf("SelectPrimary: expected nil, got %+v", primary)
				}
				return
			}

			if primary == nil {
				t.Error("SelectPrimary: expected non-nil, got nil")
				return
			}

			expected := &tc.detections[tc.expectIdx]
			if primary.Box != expected.Box {
				t.Errorf("SelectPrimary: got box %+v, want %+v", primary.Box, expected.Box)
			}
		})
	}
}

func TestEstimatePose(t *testing.T) {
	// Frontal reference: eyes level 100px apart, nose at the neutral
	// ratio between eye line (y=160) and mouth line (y=250).
	frontal := map[LandmarkKind]geom.Point{
		LeftEye:    {X: 250, Y: 160},
		RightEye:   {X: 150, Y: 160},
		NoseBase:   {X: 200, Y: 209.5},
		MouthLeft:  {X: 230, Y: 250},
		MouthRight: {X: 170, Y: 250},
	}

	pitch, roll, yaw := estimatePose(frontal)
	if math.Abs(pitch) > 0.5 || math.Abs(roll) > 0.5 || math.Abs(yaw) > 0.5 {
		t.Errorf("frontal pose = (%.2f, %.2f, %.2f), want ~(0, 0, 0)", pitch, roll, yaw)
	}

	t.Run("tilted head reads as roll", func(t *testing.T) {
		tilted := map[LandmarkKind]geom.Point{
			LeftEye:  {X: 250, Y: 180},
			RightEye: {X: 150, Y: 140},
		}
		_, roll, _ := estimatePose(tilted)
		// atan2(40, 100) ≈ 21.8°
		if math.Abs(roll-21.8) > 0.1 {
			t.Errorf("roll = %.2f, want ~21.8", roll)
		}
	})

	t.Run("turned head reads as yaw", func(t *testing.T) {
		turned := map[LandmarkKind]geom.Point{
			LeftEye:  {X: 250, Y: 160},
			RightEye: {X: 150, Y: 160},
			NoseBase: {X: 240, Y: 209.5},
		}
		_, _, yaw := estimatePose(turned)
		// Offset of 0.4 eye spans scales to 36°
		if math.Abs(yaw-36) > 0.1 {
			t.Errorf("yaw = %.2f, want ~36", yaw)
		}
	})

	t.Run("raised nose reads as positive pitch", func(t *testing.T) {
		up := map[LandmarkKind]geom.Point{
			LeftEye:    {X: 250, Y: 160},
			RightEye:   {X: 150, Y: 160},
			NoseBase:   {X: 200, Y: 196},
			MouthLeft:  {X: 230, Y: 250},
			MouthRight: {X: 170, Y: 250},
		}
		pitch, _, _ := estimatePose(up)
		// Ratio 0.4 vs neutral 0.55 scales to 13.5°
		if math.Abs(pitch-13.5) > 0.1 {
			t.Errorf("pitch = %.2f, want ~13.5", pitch)
		}
	})

	t.Run("missing eyes means frontal", func(t *testing.T) {
		pitch, roll, yaw := estimatePose(map[LandmarkKind]geom.Point{
			NoseBase: {X: 200, Y: 200},
		})
		if pitch != 0 || roll != 0 || yaw != 0 {
			t.Errorf("pose = (%v, %v, %v), want zeros", pitch, roll, yaw)
		}
	})

	t.Run("missing nose still yields roll", func(t *testing.T) {
		pitch, roll, yaw := estimatePose(map[LandmarkKind]geom.Point{
			LeftEye:  {X: 250, Y: 180},
			RightEye: {X: 150, Y: 140},
		})
		if roll == 0 {
			t.Error("roll should be estimated from the eye line")
		}
		if pitch != 0 || yaw != 0 {
			t.Errorf("pitch/yaw = %v/%v, want zeros without a nose", pitch, yaw)
		}
	})
}

func TestFromWire(t *testing.T) {
	smile := 0.8
	tracking := 3
	f := protocol.FaceData{
		Box:   geom.Rect{Left: 100, Top: 100, Right: 300, Bottom: 300},
		Pitch: 5,
		Landmarks: map[string]geom.Point{
			"left-eye":  {X: 250, Y: 160},
			"third-eye": {X: 200, Y: 100}, // Unknown kinds are skipped
		},
		SmileProb:  &smile,
		Score:      0.9,
		TrackingID: &tracking,
	}

	d := FromWire(f, 640, 480)

	if d.ImageWidth != 640 || d.ImageHeight != 480 {
		t.Errorf("dimensions = %dx%d, want 640x480", d.ImageWidth, d.ImageHeight)
	}
	if d.SmileProb != 0.8 {
		t.Errorf("SmileProb = %v, want 0.8", d.SmileProb)
	}
	if d.LeftEyeOpenProb != ProbUnknown {
		t.Errorf("LeftEyeOpenProb = %v, want ProbUnknown", d.LeftEyeOpenProb)
	}
	if d.TrackingID != 3 {
		t.Errorf("TrackingID = %v, want 3", d.TrackingID)
	}
	if len(d.Landmarks) != 1 {
		t.Fatalf("landmark count = %d, want 1", len(d.Landmarks))
	}
	if _, ok := d.Landmark(LeftEye); !ok {
		t.Error("left-eye landmark should survive conversion")
	}
}

func TestToWireOmitsUnknowns(t *testing.T) {
	d := NewDetection(geom.Rect{Left: 10, Top: 10, Right: 90, Bottom: 90}, 640, 480)
	d.Score = 0.7

	f := ToWire(d)

	if f.SmileProb != nil || f.LeftEyeOpenProb != nil || f.RightEyeOpenProb != nil {
		t.Error("unknown probabilities should be omitted from the wire form")
	}
	if f.TrackingID != nil {
		t.Error("untracked detections should omit tracking_id")
	}

	// Round trip preserves the sentinels
	back := FromWire(f, d.ImageWidth, d.ImageHeight)
	if back.SmileProb != ProbUnknown || back.TrackingID != -1 {
		t.Errorf("round trip lost sentinels: %+v", back)
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.ModelPath == "" {
		t.Error("DefaultConfig: ModelPath should not be empty")
	}

	if cfg.ConfidenceThresh <= 0 || cfg.ConfidenceThresh > 1 {
		t.Errorf("DefaultConfig: ConfidenceThresh should be 0-1, got %f", cfg.ConfidenceThresh)
	}

	if cfg.InputWidth <= 0 {
		t.Errorf("DefaultConfig: InputWidth should be positive, got %d", cfg.InputWidth)
	}

	if cfg.InputHeight <= 0 {
		t.Errorf("DefaultConfig: InputHeight should be positive, got %d", cfg.InputHeight)
	}
}
