package combat

import (
	"math"
	"testing"
)

func TestVec3_Normalized_Degenerate(t *testing.T) {
	if _, ok := (Vec3{}).Normalized(); ok {
		t.Fatal("zero vector must not normalize")
	}
	if _, ok := (Vec3{X: math.NaN()}).Normalized(); ok {
		t.Fatal("NaN vector must not normalize")
	}
	if _, ok := (Vec3{X: math.Inf(1)}).Normalized(); ok {
		t.Fatal("infinite vector must not normalize")
	}
	n, ok := (Vec3{X: 3, Y: 4}).Normalized()
	if !ok || math.Abs(n.Len()-1.0) > 1e-9 {
		t.Fatalf("expected unit vector, got %+v", n)
	}
}

func TestVec3_AngleTo(t *testing.T) {
	x := Vec3{X: 1}
	if got := x.AngleTo(Vec3{X: 5}); got > 1e-9 {
		t.Fatalf("parallel vectors should be 0 rad apart, got %.6f", got)
	}
	if got := x.AngleTo(Vec3{Z: 2}); math.Abs(got-math.Pi/2) > 1e-9 {
		t.Fatalf("perpendicular vectors should be pi/2 apart, got %.6f", got)
	}
	if got := x.AngleTo(Vec3{X: -1}); math.Abs(got-math.Pi) > 1e-9 {
		t.Fatalf("opposed vectors should be pi apart, got %.6f", got)
	}
	if got := x.AngleTo(Vec3{}); got != 0 {
		t.Fatalf("degenerate input must yield 0, got %.6f", got)
	}
}

func TestVec3_RotatedAbout(t *testing.T) {
	// Quarter turn of +X around +Y lands on -Z (right-handed, Y up).
	got := (Vec3{X: 1}).RotatedAbout(Vec3{Y: 1}, math.Pi/2)
	if got.Sub(Vec3{Z: -1}).Len() > 1e-9 {
		t.Fatalf("expected -Z, got %+v", got)
	}
	// Rotation preserves length for arbitrary axes.
	v := Vec3{X: 2, Y: -1, Z: 3}
	r := v.RotatedAbout(Vec3{X: 1, Y: 1, Z: -1}, 1.234)
	if math.Abs(r.Len()-v.Len()) > 1e-9 {
		t.Fatalf("rotation must preserve length: %.6f vs %.6f", r.Len(), v.Len())
	}
	// Degenerate axis leaves the vector untouched.
	if got := v.RotatedAbout(Vec3{}, 1.0); got != v {
		t.Fatalf("zero axis must be a no-op, got %+v", got)
	}
}

func TestVec3_AnyPerpendicular(t *testing.T) {
	for _, v := range []Vec3{
		{X: 1}, {Y: 1}, {Z: 1}, {X: -1}, {Y: -1},
		{X: 0.3, Y: 0.9, Z: -0.2}, {X: 1e-3, Y: 1, Z: 1e-3},
	} {
		n, _ := v.Normalized()
		p := n.AnyPerpendicular()
		if math.Abs(p.Len()-1.0) > 1e-9 {
			t.Fatalf("perpendicular of %+v is not unit length: %+v", v, p)
		}
		if math.Abs(n.Dot(p)) > 1e-9 {
			t.Fatalf("perpendicular of %+v is not orthogonal: dot=%.9f", v, n.Dot(p))
		}
	}
}

func TestVec3_Lerp_Clamps(t *testing.T) {
	a := Vec3{X: 1}
	b := Vec3{X: 3}
	if got := a.Lerp(b, 0.5); got.Sub(Vec3{X: 2}).Len() > 1e-9 {
		t.Fatalf("midpoint lerp wrong: %+v", got)
	}
	if got := a.Lerp(b, -1); got != a {
		t.Fatalf("t below 0 must clamp to start, got %+v", got)
	}
	if got := a.Lerp(b, 7); got != b {
		t.Fatalf("t above 1 must clamp to end, got %+v", got)
	}
}
