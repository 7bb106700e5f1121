// Package detect defines the raw face-detection model and detector sources.
// Detections are expressed in pixel coordinates of the source frame; the
// face package converts them into normalized, resolution-independent
// metrics.
package detect

import (
	"errors"
	"fmt"

	"github.com/teslashibe/go-facemetrics/pkg/geom"
)

// ErrNoFrame signals that a source has no new frame for this tick.
var ErrNoFrame = errors.New("detect: no frame available")

// LandmarkKind identifies a facial landmark.
type LandmarkKind int

// Facial landmark kinds. Sides are subject-relative: the subject's left
// eye appears on the right half of an unmirrored camera frame.
const (
	LeftEye LandmarkKind = iota
	RightEye
	LeftEar
	RightEar
	LeftCheek
	RightCheek
	NoseBase
	MouthLeft
	MouthRight
	MouthBottom
)

// AllKinds lists every landmark kind in canonical order.
var AllKinds = [...]LandmarkKind{
	LeftEye, RightEye, LeftEar, RightEar, LeftCheek,
	RightCheek, NoseBase, MouthLeft, MouthRight, MouthBottom,
}

var kindNames = [...]string{
	"left-eye", "right-eye", "left-ear", "right-ear", "left-cheek",
	"right-cheek", "nose-base", "mouth-left", "mouth-right", "mouth-bottom",
}

// String returns the kebab-case name of the landmark kind.
func (k LandmarkKind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("landmark(%d)", int(k))
	}
	return kindNames[k]
}

// MarshalText implements encoding.TextMarshaler so landmark maps use
// readable JSON keys.
func (k LandmarkKind) MarshalText() ([]byte, error) {
	if k < 0 || int(k) >= len(kindNames) {
		return nil, fmt.Errorf("detect: unknown landmark kind %d", int(k))
	}
	return []byte(kindNames[k]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *LandmarkKind) UnmarshalText(text []byte) error {
	name := string(text)
	for i, n := range kindNames {
		if n == name {
			*k = LandmarkKind(i)
			return nil
		}
	}
	return fmt.Errorf("detect: unknown landmark kind %q", name)
}

// ProbUnknown marks a classifier probability the detector could not
// estimate. Valid probabilities are in [0, 1].
const ProbUnknown = -1.0

// Detection represents a single detected face, in pixel coordinates.
type Detection struct {
	Box         geom.Rect // Bounding box in pixels
	ImageWidth  int       // Source frame width in pixels
	ImageHeight int       // Source frame height in pixels

	// Head pose Euler angles in degrees, 0 = frontal
	Pitch float64
	Roll  float64
	Yaw   float64

	// Pixel positions of the landmarks the detector located.
	// Absent kinds are simply missing from the map.
	Landmarks map[LandmarkKind]geom.Point

	// Classifier probabilities in [0, 1], ProbUnknown when unavailable
	SmileProb        float64
	LeftEyeOpenProb  float64
	RightEyeOpenProb float64

	Score      float64 // Detector confidence, <= 0 when unreported
	TrackingID int     // Tracking identity across frames, negative when untracked
}

// NewDetection returns a Detection with the optional fields preset to
// their "unavailable" sentinels.
func NewDetection(box geom.Rect, imageWidth, imageHeight int) Detection {
	return Detection{
		Box:              box,
		ImageWidth:       imageWidth,
		ImageHeight:      imageHeight,
		SmileProb:        ProbUnknown,
		LeftEyeOpenProb:  ProbUnknown,
		RightEyeOpenProb: ProbUnknown,
		TrackingID:       -1,
	}
}

// Area returns the bounding box area in square pixels.
func (d Detection) Area() float64 {
	return d.Box.Area()
}

// Landmark returns the pixel position of a landmark and whether the
// detector located it.
func (d Detection) Landmark(k LandmarkKind) (geom.Point, bool) {
	p, ok := d.Landmarks[k]
	return p, ok
}

// Detector is the interface for face detection backends.
type Detector interface {
	// Detect finds faces in the JPEG image and returns them in pixel
	// coordinates.
	Detect(jpeg []byte) ([]Detection, error)

	// Close releases resources.
	Close() error
}

// Config holds detector configuration.
type Config struct {
	ModelPath        string  // Path to ONNX model
	ConfidenceThresh float64 // Minimum confidence (default 0.5)
	InputWidth       int     // Model input width
	InputHeight      int     // Model input height
}

// DefaultConfig returns production defaults for YuNet.
func DefaultConfig() Config {
	return Config{
		ModelPath:        "models/face_detection_yunet.onnx",
		ConfidenceThresh: 0.5,
		InputWidth:       320,
		InputHeight:      320,
	}
}

// SelectPrimary picks the primary face from multiple detections.
// Priority: confidence * 0.7 + relative area * 0.3, so a slightly less
// confident but much closer face wins over a distant one.
func SelectPrimary(dets []Detection) *Detection {
	if len(dets) == 0 {
		return nil
	}

	if len(dets) == 1 {
		return &dets[0]
	}

	// Find max area for normalization
	maxArea := 0.0
	for _, d := range dets {
		if d.Area() > maxArea {
			maxArea = d.Area()
		}
	}

	bestScore := -1.0
	var best *Detection

	for i := range dets {
		conf := dets[i].Score
		if conf <= 0 {
			conf = 1 // unreported score still counts as a detection
		}
		relArea := 0.0
		if maxArea > 0 {
			relArea = dets[i].Area() / maxArea
		}
		score := conf*0.7 + relArea*0.3
		if score > bestScore {
			bestScore = score
			best = &dets[i]
		}
	}

	return best
}
