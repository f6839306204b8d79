package combat

import "math"

const vecEpsilon = 1e-9

// Vec3 is a 3D vector in world units. Y is up.
type Vec3 struct {
	X, Y, Z float64
}

// Point2 is a 2D screen-space point in pixels.
type Point2 struct {
	X, Y float64
}

// Viewport describes the screen area a reticle is projected onto.
type Viewport struct {
	Width, Height float64
}

// Center returns the midpoint of the viewport.
func (vp Viewport) Center() Point2 {
	return Point2{X: vp.Width / 2, Y: vp.Height / 2}
}

func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

func (v Vec3) Dot(o Vec3) float64 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{
		X: v.Y*o.Z - v.Z*o.Y,
		Y: v.Z*o.X - v.X*o.Z,
		Z: v.X*o.Y - v.Y*o.X,
	}
}

func (v Vec3) Len() float64 {
	return math.Sqrt(v.Dot(v))
}

func (v Vec3) LenSq() float64 {
	return v.Dot(v)
}

// Dist returns the distance between two points.
func (v Vec3) Dist(o Vec3) float64 {
	return v.Sub(o).Len()
}

// IsZero reports whether the vector is too short to carry a direction.
func (v Vec3) IsZero() bool {
	return v.LenSq() < vecEpsilon*vecEpsilon
}

// IsFinite reports whether every component is a real number.
func (v Vec3) IsFinite() bool {
	return !math.IsNaN(v.X) && !math.IsInf(v.X, 0) &&
		!math.IsNaN(v.Y) && !math.IsInf(v.Y, 0) &&
		!math.IsNaN(v.Z) && !math.IsInf(v.Z, 0)
}

// Normalized returns the unit vector in v's direction. The bool is false
// when v is degenerate (zero-length or non-finite), in which case the zero
// vector is returned.
func (v Vec3) Normalized() (Vec3, bool) {
	if !v.IsFinite() || v.IsZero() {
		return Vec3{}, false
	}
	return v.Scale(1.0 / v.Len()), true
}

// Lerp linearly interpolates from v to o. t is clamped to [0,1].
func (v Vec3) Lerp(o Vec3, t float64) Vec3 {
	t = clamp01(t)
	return v.Add(o.Sub(v).Scale(t))
}

// AngleTo returns the angle in radians between v and o, in [0, pi].
// Degenerate inputs yield 0.
func (v Vec3) AngleTo(o Vec3) float64 {
	a, okA := v.Normalized()
	b, okB := o.Normalized()
	if !okA || !okB {
		return 0
	}
	d := a.Dot(b)
	if d > 1 {
		d = 1
	} else if d < -1 {
		d = -1
	}
	return math.Acos(d)
}

// RotatedAbout rotates v around the unit axis by angle radians (Rodrigues).
func (v Vec3) RotatedAbout(axis Vec3, angle float64) Vec3 {
	u, ok := axis.Normalized()
	if !ok {
		return v
	}
	cos := math.Cos(angle)
	sin := math.Sin(angle)
	return v.Scale(cos).
		Add(u.Cross(v).Scale(sin)).
		Add(u.Scale(u.Dot(v) * (1 - cos)))
}

// AnyPerpendicular returns a unit vector perpendicular to v.
// v must be non-degenerate; callers normalize first.
func (v Vec3) AnyPerpendicular() Vec3 {
	// Cross with whichever world axis is least aligned with v.
	ref := Vec3{X: 1}
	if math.Abs(v.X) > math.Abs(v.Y) {
		ref = Vec3{Y: 1}
	}
	p, ok := v.Cross(ref).Normalized()
	if !ok {
		return Vec3{Z: 1}
	}
	return p
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

func clampRange(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
