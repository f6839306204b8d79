package combat

import (
	"math"

	"github.com/solarlune/resolv"
)

const (
	tagOccluder = "occluder"
	tagBody     = "body"
)

// GroundPlane is a World backend for flat, top-down scenes, backed by a
// resolv.Space. World X/Z map onto the space's X/Y axes; Y (height) is
// ignored except for straight-down rays, which resolve against whatever the
// reticle sits over. Region classification is unavailable in 2D, so actor
// hits report the default region.
type GroundPlane struct {
	space  *resolv.Space
	bodies map[*Actor]*resolv.Object
}

// NewGroundPlane builds a ground-plane world of the given extent, bucketed
// into cellSize collision cells.
func NewGroundPlane(width, height, cellSize int) *GroundPlane {
	return &GroundPlane{
		space:  resolv.NewSpace(width, height, cellSize, cellSize),
		bodies: map[*Actor]*resolv.Object{},
	}
}

// Space exposes the underlying resolv space for host-side movement code.
func (g *GroundPlane) Space() *resolv.Space { return g.space }

// AddOccluder registers a static blocking box. Only the X/Z extents matter
// on the plane.
func (g *GroundPlane) AddOccluder(box AABB) {
	obj := resolv.NewObject(box.Min.X, box.Min.Z, box.Max.X-box.Min.X, box.Max.Z-box.Min.Z, tagOccluder)
	g.space.Add(obj)
}

// AddActor registers an actor's body footprint, sized from its hitboxes.
func (g *GroundPlane) AddActor(a *Actor) {
	if a == nil || g.bodies[a] != nil {
		return
	}
	r := a.footprintRadius()
	p := a.Position()
	obj := resolv.NewObject(p.X-r, p.Z-r, r*2, r*2, tagBody)
	obj.Data = a
	g.space.Add(obj)
	g.bodies[a] = obj
}

// RemoveActor unregisters a despawned actor's footprint.
func (g *GroundPlane) RemoveActor(a *Actor) {
	obj := g.bodies[a]
	if obj == nil {
		return
	}
	g.space.Remove(obj)
	delete(g.bodies, a)
}

// SyncActor moves an actor's footprint to its current position. Hosts call
// this after every position change.
func (g *GroundPlane) SyncActor(a *Actor) {
	obj := g.bodies[a]
	if obj == nil {
		return
	}
	p := a.Position()
	obj.X = p.X - obj.W/2
	obj.Y = p.Z - obj.H/2
	obj.Update()
}

// NearestHit implements SpatialQuery over the ground plane.
func (g *GroundPlane) NearestHit(origin, dir Vec3, maxDist float64, mask Mask) (Hit, bool) {
	n, ok := dir.Normalized()
	if !ok || maxDist <= 0 || !origin.IsFinite() {
		return Hit{}, false
	}

	planar := math.Hypot(n.X, n.Z)
	if planar < 1e-9 {
		if n.Y >= 0 {
			return Hit{}, false
		}
		return g.verticalHit(origin, maxDist, mask)
	}

	// Project the segment onto the plane. Distances along the ray scale by
	// the planar fraction of the direction.
	dx := n.X * maxDist
	dz := n.Z * maxDist

	best := Hit{Distance: math.MaxFloat64}
	found := false
	for _, obj := range g.space.Objects() {
		if !g.matches(obj, mask) {
			continue
		}
		a, _ := obj.Data.(*Actor)
		if a != nil && a.Downed() {
			continue
		}
		if a != nil && pointInRect(origin.X, origin.Z, obj) {
			continue // ray starts inside this body
		}
		t, nx, nz, hit := segmentRect(origin.X, origin.Z, dx, dz, obj)
		if !hit {
			continue
		}
		d := t * maxDist
		if d >= best.Distance {
			continue
		}
		best = Hit{
			Position: origin.Add(n.Scale(d)),
			Normal:   Vec3{X: nx, Z: nz},
			Distance: d,
			Actor:    a,
		}
		found = true
	}
	if !found {
		return Hit{}, false
	}
	return best, true
}

// verticalHit resolves a straight-down ray by point containment. When
// several objects share the point, occluders shade everything beneath them;
// among overlapping bodies the lowest actor id wins, so the outcome never
// depends on registration order. A body whose volume contains the origin is
// skipped, matching the planar self-origin rule.
func (g *GroundPlane) verticalHit(origin Vec3, maxDist float64, mask Mask) (Hit, bool) {
	if origin.Y < 0 || origin.Y > maxDist {
		return Hit{}, false
	}
	occluded := false
	var body *Actor
	for _, obj := range g.space.Objects() {
		if !g.matches(obj, mask) || !pointInRect(origin.X, origin.Z, obj) {
			continue
		}
		if obj.HasTags(tagOccluder) {
			occluded = true
			continue
		}
		a, _ := obj.Data.(*Actor)
		if a == nil || a.Downed() || a.containsPoint(origin) {
			continue
		}
		if body == nil || a.ID() < body.ID() {
			body = a
		}
	}
	if !occluded && body == nil {
		return Hit{}, false
	}
	hit := Hit{
		Position: Vec3{X: origin.X, Z: origin.Z},
		Normal:   Vec3{Y: 1},
		Distance: origin.Y,
	}
	if !occluded {
		hit.Actor = body
	}
	return hit, true
}

func (g *GroundPlane) matches(obj *resolv.Object, mask Mask) bool {
	if mask&MaskWorld != 0 && obj.HasTags(tagOccluder) {
		return true
	}
	if mask&MaskActors != 0 && obj.HasTags(tagBody) {
		return true
	}
	return false
}

func pointInRect(x, y float64, obj *resolv.Object) bool {
	return x >= obj.X && x <= obj.X+obj.W && y >= obj.Y && y <= obj.Y+obj.H
}

// segmentRect returns the entry parameter t in [0,1] where the 2D segment
// (ox,oy)+(dx,dy) enters the object's rectangle, plus the entry normal.
func segmentRect(ox, oy, dx, dy float64, obj *resolv.Object) (float64, float64, float64, bool) {
	tMin := 0.0
	tMax := 1.0
	var nx, nz float64

	for axis := 0; axis < 2; axis++ {
		o, d, lo, hi := ox, dx, obj.X, obj.X+obj.W
		if axis == 1 {
			o, d, lo, hi = oy, dy, obj.Y, obj.Y+obj.H
		}
		if math.Abs(d) < 1e-12 {
			if o < lo || o > hi {
				return 0, 0, 0, false
			}
			continue
		}
		invD := 1.0 / d
		t1 := (lo - o) * invD
		t2 := (hi - o) * invD
		sign := -1.0
		if t1 > t2 {
			t1, t2 = t2, t1
			sign = 1.0
		}
		if t1 > tMin {
			tMin = t1
			if axis == 0 {
				nx, nz = sign, 0
			} else {
				nx, nz = 0, sign
			}
		}
		if t2 < tMax {
			tMax = t2
		}
		if tMin > tMax {
			return 0, 0, 0, false
		}
	}
	if tMax < 0 || tMin > 1 {
		return 0, 0, 0, false
	}
	return tMin, nx, nz, true
}
