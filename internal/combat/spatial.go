package combat

import "math"

// Mask selects which collider categories a spatial query may strike.
type Mask uint32

const (
	MaskWorld  Mask = 1 << 0 // static occluders (walls, wrecks, terrain)
	MaskActors Mask = 1 << 1 // actor body hitboxes

	MaskAll = MaskWorld | MaskActors
)

// AABB is an axis-aligned box between Min and Max.
type AABB struct {
	Min, Max Vec3
}

// Translated returns the box shifted by offset.
func (b AABB) Translated(offset Vec3) AABB {
	return AABB{Min: b.Min.Add(offset), Max: b.Max.Add(offset)}
}

// Contains reports whether p lies inside or on the box.
func (b AABB) Contains(p Vec3) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y &&
		p.Z >= b.Min.Z && p.Z <= b.Max.Z
}

// Center returns the box midpoint.
func (b AABB) Center() Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Hit describes the nearest collider struck by a spatial query.
type Hit struct {
	Position Vec3
	Normal   Vec3
	Distance float64
	Actor    *Actor     // nil for world geometry
	Region   BodyRegion // empty for world geometry
}

// SpatialQuery is the read-only spatial backend shared by ballistics
// hit-testing and vision occlusion. Implementations query world state but
// never mutate it.
type SpatialQuery interface {
	// NearestHit casts a ray from origin along dir (unit vector) up to
	// maxDist and returns the closest collider matching mask. The bool is
	// false on a clean miss.
	NearestHit(origin, dir Vec3, maxDist float64, mask Mask) (Hit, bool)
}

// World is a mutable spatial backend: a SpatialQuery the host also
// populates with occluders and actor bodies. BoxWorld and GroundPlane both
// satisfy it.
type World interface {
	SpatialQuery
	AddOccluder(AABB)
	AddActor(*Actor)
	RemoveActor(*Actor)
	SyncActor(*Actor)
}

// segmentAABB returns the entry parameter t in [0,1] where the segment
// origin→origin+delta enters the box, plus the entry face normal. The bool
// is false when the segment misses. A segment starting inside the box
// reports t=0 with a zero normal.
func segmentAABB(origin, delta Vec3, box AABB) (float64, Vec3, bool) {
	tMin := 0.0
	tMax := 1.0
	var normal Vec3

	axes := [3]struct {
		o, d, lo, hi float64
		axis         Vec3
	}{
		{origin.X, delta.X, box.Min.X, box.Max.X, Vec3{X: 1}},
		{origin.Y, delta.Y, box.Min.Y, box.Max.Y, Vec3{Y: 1}},
		{origin.Z, delta.Z, box.Min.Z, box.Max.Z, Vec3{Z: 1}},
	}

	for _, s := range axes {
		if math.Abs(s.d) < 1e-12 {
			if s.o < s.lo || s.o > s.hi {
				return 0, Vec3{}, false
			}
			continue
		}
		invD := 1.0 / s.d
		t1 := (s.lo - s.o) * invD
		t2 := (s.hi - s.o) * invD
		n := s.axis.Scale(-1)
		if t1 > t2 {
			t1, t2 = t2, t1
			n = s.axis
		}
		if t1 > tMin {
			tMin = t1
			normal = n
		}
		if t2 < tMax {
			tMax = t2
		}
		if tMin > tMax {
			return 0, Vec3{}, false
		}
	}

	if tMax < 0 || tMin > 1 {
		return 0, Vec3{}, false
	}
	if tMin < 0 {
		tMin = 0
	}
	return tMin, normal, true
}

// worldBox is a static occluder registered with a BoxWorld.
type worldBox struct {
	box  AABB
	mask Mask
}

// BoxWorld is the default spatial backend: static AABB occluders plus the
// per-region hitboxes of registered actors. It is the backend used by the
// headless simulation and tests.
type BoxWorld struct {
	occluders []worldBox
	actors    []*Actor
}

// NewBoxWorld creates an empty box world.
func NewBoxWorld() *BoxWorld {
	return &BoxWorld{}
}

// AddOccluder registers a static blocking box under MaskWorld.
func (w *BoxWorld) AddOccluder(box AABB) {
	w.occluders = append(w.occluders, worldBox{box: box, mask: MaskWorld})
}

// AddActor registers an actor's hitboxes for hit-testing.
func (w *BoxWorld) AddActor(a *Actor) {
	if a == nil {
		return
	}
	w.actors = append(w.actors, a)
}

// RemoveActor unregisters a despawned actor.
func (w *BoxWorld) RemoveActor(a *Actor) {
	for i, other := range w.actors {
		if other == a {
			w.actors = append(w.actors[:i], w.actors[i+1:]...)
			return
		}
	}
}

// SyncActor is a no-op: hitboxes derive from the actor's live position at
// query time, so there is nothing to refresh.
func (w *BoxWorld) SyncActor(*Actor) {}

// Actors returns the registered actor list.
func (w *BoxWorld) Actors() []*Actor {
	return w.actors
}

// NearestHit implements SpatialQuery. Downed actors no longer block rays,
// and a ray whose origin lies inside an actor's own hitbox ignores that
// actor (an eye or muzzle inside a body cannot strike it).
func (w *BoxWorld) NearestHit(origin, dir Vec3, maxDist float64, mask Mask) (Hit, bool) {
	n, ok := dir.Normalized()
	if !ok || maxDist <= 0 || !origin.IsFinite() {
		return Hit{}, false
	}
	delta := n.Scale(maxDist)

	best := Hit{Distance: math.MaxFloat64}
	found := false

	if mask&MaskWorld != 0 {
		for _, wb := range w.occluders {
			t, normal, hit := segmentAABB(origin, delta, wb.box)
			if !hit {
				continue
			}
			d := t * maxDist
			if d < best.Distance {
				best = Hit{
					Position: origin.Add(delta.Scale(t)),
					Normal:   normal,
					Distance: d,
				}
				found = true
			}
		}
	}

	if mask&MaskActors != 0 {
		for _, a := range w.actors {
			if a.Downed() {
				continue
			}
			if a.containsPoint(origin) {
				continue
			}
			for _, hb := range a.worldHitboxes() {
				t, normal, hit := segmentAABB(origin, delta, hb.Box)
				if !hit {
					continue
				}
				d := t * maxDist
				if d < best.Distance {
					best = Hit{
						Position: origin.Add(delta.Scale(t)),
						Normal:   normal,
						Distance: d,
						Actor:    a,
						Region:   hb.Region,
					}
					found = true
				}
			}
		}
	}

	if !found {
		return Hit{}, false
	}
	return best, true
}
