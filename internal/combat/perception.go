package combat

const (
	// Confidence gain per sighting tick and decay per unseen second.
	confidenceGain  = 0.25
	confidenceDecay = 0.10
)

// PerceptionState is the per-actor mutable record fed to the external AI
// decision layer: last-known target position, detection confidence, and the
// actor's own scent trail lives on the Actor.
type PerceptionState struct {
	LastKnown    Vec3
	HasLastKnown bool
	Confidence   float64 // 0-1 detection intensity
}

// NewPerceptionState creates an empty perception record.
func NewPerceptionState() *PerceptionState {
	return &PerceptionState{}
}

// RecordSighting stamps a confirmed visual contact position and raises
// confidence.
func (p *PerceptionState) RecordSighting(pos Vec3) {
	p.LastKnown = pos
	p.HasLastKnown = true
	p.Confidence = clamp01(p.Confidence + confidenceGain)
}

// RecordHint stamps a non-visual cue (heard noise, scent) without the full
// confidence boost of a sighting.
func (p *PerceptionState) RecordHint(pos Vec3, intensity float64) {
	p.LastKnown = pos
	p.HasLastKnown = true
	p.Confidence = clamp01(p.Confidence + intensity*confidenceGain*0.5)
}

// Decay reduces confidence over dt seconds with no new contact. The
// last-known position is retained until confidence fully drains.
func (p *PerceptionState) Decay(dt float64) {
	if dt <= 0 {
		return
	}
	p.Confidence = clamp01(p.Confidence - confidenceDecay*dt)
	if p.Confidence == 0 {
		p.HasLastKnown = false
	}
}

// PerceptionPoll runs one perception tick for an observer against a
// candidate set: vision scan first, then confidence decay when nothing is
// seen. Hearing is event-driven and lands through RecordHint callbacks;
// scent marks are laid by the host movement code.
func PerceptionPoll(observer *Actor, candidates []*Actor, vision *VisionSense, dt float64) {
	if observer == nil || observer.Downed() || observer.Perception() == nil {
		return
	}
	seen := vision.VisibleContacts(observer, candidates)
	if len(seen) == 0 {
		observer.Perception().Decay(dt)
		return
	}
	// Track the nearest visible contact.
	nearest := seen[0]
	bestD := observer.Position().Dist(nearest.Position())
	for _, c := range seen[1:] {
		if d := observer.Position().Dist(c.Position()); d < bestD {
			bestD = d
			nearest = c
		}
	}
	observer.Perception().RecordSighting(nearest.Position())
}
