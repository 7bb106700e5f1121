// Package face turns raw detector output into normalized, resolution
// independent face metrics: a quality score, a detection status with
// user-facing guidance, and temporally smoothed geometry suitable for
// rendering overlays.
//
// All geometry in this package lives in unit space: coordinates are
// fractions of the source image width and height, so downstream
// consumers never see pixels.
package face

import (
	"github.com/teslashibe/go-facemetrics/pkg/detect"
	"github.com/teslashibe/go-facemetrics/pkg/geom"
)

// Landmark is a named facial point in unit coordinates.
type Landmark struct {
	Kind     detect.LandmarkKind `json:"kind"`
	Position geom.Point          `json:"position"`
}

// Metrics is a normalized snapshot of a single detected face. A frame
// with no face is represented by the sentinel from NoFace, never by a
// nil pointer.
type Metrics struct {
	FaceDetected bool `json:"face_detected"`

	// Box is the face bounding box in unit coordinates.
	Box geom.Rect `json:"box"`

	// Position is the face center relative to the image center, so
	// (0,0) means perfectly centered and each axis spans -0.5 to 0.5.
	Position geom.Point `json:"position"`

	// FaceWidth and FaceHeight are the box dimensions as fractions of
	// the image dimensions.
	FaceWidth  float64 `json:"face_width"`
	FaceHeight float64 `json:"face_height"`

	// InterocularDistance is the eye-to-eye distance as a fraction of
	// the image width; 0 when either eye landmark is missing.
	InterocularDistance float64 `json:"interocular_distance"`

	// Head pose in degrees.
	Pitch float64 `json:"pitch"`
	Roll  float64 `json:"roll"`
	Yaw   float64 `json:"yaw"`

	// Expression state and the confidences behind it.
	Smiling         bool    `json:"smiling"`
	SmileConfidence float64 `json:"smile_confidence"`
	EyesOpen        bool    `json:"eyes_open"`
	LeftEyeOpen     float64 `json:"left_eye_open"`
	RightEyeOpen    float64 `json:"right_eye_open"`
	Glasses         bool    `json:"glasses"`

	// Landmarks in canonical order; absent points are omitted.
	Landmarks []Landmark `json:"landmarks,omitempty"`

	// Quality is the composite capture-quality score in [0,1].
	Quality float64 `json:"quality"`

	// Confidence is the detector's confidence for this face.
	Confidence float64 `json:"confidence"`
}

// NoFace returns the sentinel metrics for a frame with no detected face.
func NoFace() Metrics {
	return Metrics{}
}

// HasFace reports whether m describes a detected face.
func (m Metrics) HasFace() bool {
	return m.FaceDetected
}

// Landmark returns the landmark of the given kind and whether it is
// present.
func (m Metrics) Landmark(kind detect.LandmarkKind) (Landmark, bool) {
	for _, lm := range m.Landmarks {
		if lm.Kind == kind {
			return lm, true
		}
	}
	return Landmark{}, false
}

// Clone returns a deep copy of m. The landmark slice is copied, so
// mutating the clone never aliases the original.
func (m Metrics) Clone() Metrics {
	out := m
	if m.Landmarks != nil {
		out.Landmarks = append([]Landmark(nil), m.Landmarks...)
	}
	return out
}
