// Package overlay maps normalized face geometry into display space,
// compensating for sensor rotation and preview mirroring so rendered
// overlays land on the face the user sees.
package overlay

import (
	"fmt"
	"sync"

	"github.com/teslashibe/go-facemetrics/pkg/face"
	"github.com/teslashibe/go-facemetrics/pkg/geom"
)

// ErrInvalidRotation indicates a rotation that is not a right angle.
// Sensors report orientation in 90-degree steps; anything else is a bug
// at the call site, rejected rather than rounded.
var ErrInvalidRotation = fmt.Errorf("%w: rotation must be a multiple of 90 degrees", face.ErrContractViolation)

// Transform describes the sensor-to-display orientation.
type Transform struct {
	Mirrored bool `json:"mirrored"` // Front-camera preview mirroring
	Rotation int  `json:"rotation"` // Sensor rotation in degrees: 0, 90, 180 or 270
}

// Mapper converts unit-space face geometry into display coordinates.
// Transform updates and per-frame reads may come from different
// goroutines; the mapper snapshots its affine under a read lock.
type Mapper struct {
	mu  sync.RWMutex
	tf  Transform
	fwd geom.Affine
}

// NewMapper returns a mapper with the identity transform.
func NewMapper() *Mapper {
	return &Mapper{fwd: geom.Identity()}
}

// SetTransform updates the orientation state. Rotation is normalized
// into [0, 360); values that are not a multiple of 90 are rejected with
// ErrInvalidRotation and leave the current transform in place.
func (mp *Mapper) SetTransform(mirrored bool, rotationDegrees int) error {
	rotation := ((rotationDegrees % 360) + 360) % 360
	if rotation%90 != 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidRotation, rotationDegrees)
	}

	tf := Transform{Mirrored: mirrored, Rotation: rotation}

	mp.mu.Lock()
	mp.tf = tf
	mp.fwd = buildAffine(tf)
	mp.mu.Unlock()
	return nil
}

// Transform returns the current orientation state.
func (mp *Mapper) Transform() Transform {
	mp.mu.RLock()
	defer mp.mu.RUnlock()
	return mp.tf
}

// affine snapshots the forward transform for one frame.
func (mp *Mapper) affine() geom.Affine {
	mp.mu.RLock()
	defer mp.mu.RUnlock()
	return mp.fwd
}

// buildAffine composes the display mapping about the frame center:
// mirror in sensor space first, then undo the sensor rotation. Composing
// primitives keeps one code path for all eight orientation states
// instead of hand-derived per-case formulas.
func buildAffine(tf Transform) geom.Affine {
	m := geom.Translate(-0.5, -0.5)
	if tf.Mirrored {
		m = geom.Scale(-1, 1).Mul(m)
	}
	m = geom.RotateDeg(-float64(tf.Rotation)).Mul(m)
	return geom.Translate(0.5, 0.5).Mul(m)
}

// MapPoint maps a unit-space point into display space.
func (mp *Mapper) MapPoint(p geom.Point) geom.Point {
	return mp.affine().Apply(p)
}

// MapRect maps a unit-space rectangle into display space: the four
// corners are mapped and re-boxed, so width and height swap under
// quarter-turn rotations.
func (mp *Mapper) MapRect(r geom.Rect) geom.Rect {
	return mapRect(mp.affine(), r)
}

func mapRect(a geom.Affine, r geom.Rect) geom.Rect {
	c := r.Corners()
	return geom.BoundingRect(a.Apply(c[0]), a.Apply(c[1]), a.Apply(c[2]), a.Apply(c[3]))
}

// Geometry is renderable overlay geometry in display space.
type Geometry struct {
	HasFace   bool            `json:"has_face"`
	Box       geom.Rect       `json:"box"`
	Landmarks []face.Landmark `json:"landmarks,omitempty"`
}

// MapMetrics maps a metrics record into display space. The whole record
// is mapped under a single transform snapshot so a concurrent
// SetTransform can never split one face across two orientations. The
// no-face sentinel maps to the zero Geometry.
func (mp *Mapper) MapMetrics(m face.Metrics) Geometry {
	if !m.HasFace() {
		return Geometry{}
	}

	a := mp.affine()
	g := Geometry{
		HasFace: true,
		Box:     mapRect(a, m.Box),
	}
	if len(m.Landmarks) > 0 {
		g.Landmarks = make([]face.Landmark, len(m.Landmarks))
		for i, lm := range m.Landmarks {
			g.Landmarks[i] = face.Landmark{Kind: lm.Kind, Position: a.Apply(lm.Position)}
		}
	}
	return g
}
