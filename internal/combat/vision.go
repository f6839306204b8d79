package combat

import "math"

const (
	defaultVisionFOVDeg = 120.0 // field of view in degrees
	defaultVisionRange  = 60.0  // max sight range in world units
)

// VisionSense answers sight queries: a range gate, a half-FOV angle gate,
// then an occlusion ray accepted only when unobstructed or when the first
// obstruction is the target itself.
type VisionSense struct {
	FOVDegrees  float64
	MaxDistance float64

	world SpatialQuery
}

// NewVisionSense creates a vision sense with default cone parameters.
func NewVisionSense(world SpatialQuery) *VisionSense {
	return &VisionSense{
		FOVDegrees:  defaultVisionFOVDeg,
		MaxDistance: defaultVisionRange,
		world:       world,
	}
}

// Sees reports whether observer currently sees target. Missing references
// degrade to false, never an error.
func (v *VisionSense) Sees(observer, target *Actor) bool {
	if v == nil || observer == nil || target == nil || observer == target {
		return false
	}
	if observer.Downed() || target.Downed() {
		return false
	}

	eye := observer.EyePosition()
	to := target.EyePosition().Sub(eye)
	dist := to.Len()
	if dist > v.MaxDistance {
		return false
	}

	dir, ok := to.Normalized()
	if !ok {
		return false
	}
	halfFOV := v.FOVDegrees / 2 * math.Pi / 180
	if observer.Facing().AngleTo(dir) > halfFOV {
		return false
	}

	if v.world == nil {
		return true
	}
	hit, found := v.world.NearestHit(eye, dir, dist, MaskAll)
	if !found {
		return true
	}
	return hit.Actor == target
}

// VisibleContacts returns every opposing actor the observer currently sees.
func (v *VisionSense) VisibleContacts(observer *Actor, candidates []*Actor) []*Actor {
	if v == nil || observer == nil {
		return nil
	}
	var out []*Actor
	for _, c := range candidates {
		if c == nil || c.Team() == observer.Team() {
			continue
		}
		if v.Sees(observer, c) {
			out = append(out, c)
		}
	}
	return out
}
