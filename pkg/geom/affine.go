package geom

import "math"

// Affine is a 2D affine transform:
//
//	x' = A*x + B*y + Tx
//	y' = C*x + D*y + Ty
//
// Transforms compose with Mul and apply to points with Apply. Complex
// mappings (mirror-then-rotate around an arbitrary origin) are built by
// composing the Translate/Scale/Rotate primitives instead of hand-deriving
// per-case coordinate formulas.
type Affine struct {
	A, B, Tx float64
	C, D, Ty float64
}

// Identity returns the identity transform.
func Identity() Affine {
	return Affine{A: 1, D: 1}
}

// Translate returns a transform that shifts points by (dx, dy).
func Translate(dx, dy float64) Affine {
	return Affine{A: 1, D: 1, Tx: dx, Ty: dy}
}

// Scale returns a transform that scales points by (sx, sy) about the origin.
// Scale(-1, 1) is a horizontal mirror.
func Scale(sx, sy float64) Affine {
	return Affine{A: sx, D: sy}
}

// RotateDeg returns a counter-clockwise rotation about the origin.
// The four quadrant angles use exact coefficients so that right-angle
// mappings round-trip without floating-point drift.
func RotateDeg(deg float64) Affine {
	cos, sin := cosSinDeg(deg)
	return Affine{
		A: cos, B: -sin,
		C: sin, D: cos,
	}
}

// Mul returns the composition m∘n: n is applied first, then m.
func (m Affine) Mul(n Affine) Affine {
	return Affine{
		A:  m.A*n.A + m.B*n.C,
		B:  m.A*n.B + m.B*n.D,
		Tx: m.A*n.Tx + m.B*n.Ty + m.Tx,
		C:  m.C*n.A + m.D*n.C,
		D:  m.C*n.B + m.D*n.D,
		Ty: m.C*n.Tx + m.D*n.Ty + m.Ty,
	}
}

// Apply transforms a point.
func (m Affine) Apply(p Point) Point {
	return Point{
		X: m.A*p.X + m.B*p.Y + m.Tx,
		Y: m.C*p.X + m.D*p.Y + m.Ty,
	}
}

// cosSinDeg returns cos/sin for an angle in degrees, with exact values at
// the quadrant angles.
func cosSinDeg(deg float64) (float64, float64) {
	norm := math.Mod(deg, 360)
	if norm < 0 {
		norm += 360
	}
	switch norm {
	case 0:
		return 1, 0
	case 90:
		return 0, 1
	case 180:
		return -1, 0
	case 270:
		return 0, -1
	}
	rad := deg * math.Pi / 180
	return math.Cos(rad), math.Sin(rad)
}
