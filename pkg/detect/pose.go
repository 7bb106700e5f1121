package detect

import (
	"math"

	"github.com/teslashibe/go-facemetrics/pkg/geom"
)

// Pose estimation from landmark geometry. These are coarse estimates for
// detectors that report landmarks but no head pose; accuracy is on the
// order of ±10° which is enough for alignment guidance.
const (
	// yawScaleDeg converts nose offset (fraction of the eye span) to
	// degrees. A nose sitting directly above one eye reads as ~45°.
	yawScaleDeg = 90.0

	// neutralNoseRatio is where the nose tip sits between the eye line
	// (0.0) and the mouth line (1.0) on a frontal face.
	neutralNoseRatio = 0.55

	// pitchScaleDeg converts nose-ratio deviation to degrees.
	pitchScaleDeg = 90.0
)

// estimatePose derives head pose angles from landmark geometry.
// Requires both eyes; yaw additionally needs the nose, pitch needs the
// nose and at least one mouth corner. Anything missing estimates as 0
// (frontal).
func estimatePose(landmarks map[LandmarkKind]geom.Point) (pitch, roll, yaw float64) {
	le, leftOK := landmarks[LeftEye]
	re, rightOK := landmarks[RightEye]
	if !leftOK || !rightOK {
		return 0, 0, 0
	}

	// Roll: angle of the eye line against the image horizontal.
	// The subject's left eye sits on the image right on an unmirrored frame.
	roll = math.Atan2(le.Y-re.Y, le.X-re.X) * 180 / math.Pi

	eyeSpan := le.Dist(re)
	if eyeSpan < 1 { // degenerate: eyes collapsed to a point
		return 0, roll, 0
	}

	nose, noseOK := landmarks[NoseBase]
	if !noseOK {
		return 0, roll, 0
	}

	// Yaw: horizontal nose offset from the eye midpoint. The nose drifts
	// toward the trailing eye as the head turns.
	eyeMid := geom.Point{X: (le.X + re.X) / 2, Y: (le.Y + re.Y) / 2}
	yaw = (nose.X - eyeMid.X) / eyeSpan * yawScaleDeg

	// Pitch: where the nose sits between the eye line and the mouth line.
	// It rises toward the eyes as the head tips back.
	ml, mlOK := landmarks[MouthLeft]
	mr, mrOK := landmarks[MouthRight]
	var mouthY float64
	switch {
	case mlOK && mrOK:
		mouthY = (ml.Y + mr.Y) / 2
	case mlOK:
		mouthY = ml.Y
	case mrOK:
		mouthY = mr.Y
	default:
		return 0, roll, yaw
	}

	span := mouthY - eyeMid.Y
	if math.Abs(span) < 1 {
		return 0, roll, yaw
	}
	ratio := (nose.Y - eyeMid.Y) / span
	pitch = (neutralNoseRatio - ratio) * pitchScaleDeg

	return pitch, roll, yaw
}
