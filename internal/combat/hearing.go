package combat

import "math"

const (
	// Occluders muffle noise strongly but never fully block it.
	hearingOccludedMul = 0.40
	// Distance attenuation floors at this factor inside the audible radius,
	// so every in-range listener receives a non-zero signal.
	hearingDistanceFloor = 0.10
)

// NoiseHandler receives a heard-noise callback with the source position and
// the attenuated intensity at the listener.
type NoiseHandler func(source Vec3, intensity float64)

type hearingListener struct {
	actor   *Actor
	radius  float64
	handler NoiseHandler
}

// HearingField is the event-driven hearing sense. There is no polling;
// listeners react only to discrete noise events fanned out by EmitNoise.
type HearingField struct {
	listeners []hearingListener
	world     SpatialQuery // occlusion muffling; nil disables the check
}

// NewHearingField creates a hearing field. world may be nil for free-field
// propagation.
func NewHearingField(world SpatialQuery) *HearingField {
	return &HearingField{world: world}
}

// Register adds a listener. A non-positive radius uses the actor's own
// hearing radius; a nil handler or actor is ignored.
func (h *HearingField) Register(a *Actor, radius float64, fn NoiseHandler) {
	if a == nil || fn == nil {
		return
	}
	if radius <= 0 {
		radius = a.HearingRadius()
	}
	h.listeners = append(h.listeners, hearingListener{actor: a, radius: radius, handler: fn})
}

// EmitNoise fans a noise event out to every registered listener within
// max(listenerRadius, eventRadius) of the source. Delivered intensity is
// attenuated by distance and muffled by occluders between source and
// listener; every in-range listener receives a callback, however faint.
// Downed listeners never hear.
func (h *HearingField) EmitNoise(source Vec3, intensity, radius float64) {
	if !source.IsFinite() || intensity <= 0 {
		return
	}
	for _, l := range h.listeners {
		if l.actor.Downed() {
			continue
		}
		dist := l.actor.Position().Dist(source)
		audible := math.Max(l.radius, radius)
		if dist > audible {
			continue
		}

		factor := 1.0 - dist/audible
		if factor < hearingDistanceFloor {
			factor = hearingDistanceFloor
		}
		if h.occluded(source, l.actor) {
			factor *= hearingOccludedMul
		}

		l.handler(source, intensity*factor)
	}
}

func (h *HearingField) occluded(source Vec3, listener *Actor) bool {
	if h.world == nil {
		return false
	}
	to := listener.EyePosition().Sub(source)
	dist := to.Len()
	dir, ok := to.Normalized()
	if !ok {
		return false
	}
	hit, found := h.world.NearestHit(source, dir, dist, MaskWorld)
	return found && hit.Distance < dist-vecEpsilon
}
