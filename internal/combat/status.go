package combat

// StatusTemplate describes a transient modifier a weapon or projectile can
// attach on hit: a movement slow and damage over time, both active for
// Duration seconds.
type StatusTemplate struct {
	Name            string
	Duration        float64 // seconds
	DamagePerSecond float64
	SlowFactor      float64 // 0-1 movement reduction while active
}

// StatusEffect is a live instance attached to exactly one actor.
type StatusEffect struct {
	StatusTemplate
	remaining float64
}

// Remaining returns the seconds left before the effect expires.
func (e *StatusEffect) Remaining() float64 { return e.remaining }

// ApplyStatus attaches a status effect to the actor. Reapplying an effect
// with the same name refreshes its duration instead of stacking.
func (a *Actor) ApplyStatus(tpl StatusTemplate, events Publisher) {
	if a == nil || tpl.Duration <= 0 {
		return
	}
	for _, e := range a.effects {
		if e.Name == tpl.Name {
			e.StatusTemplate = tpl
			e.remaining = tpl.Duration
			return
		}
	}
	a.effects = append(a.effects, &StatusEffect{StatusTemplate: tpl, remaining: tpl.Duration})
	publish(events, StatusApplied{Actor: a, Name: tpl.Name})
}

// ClearStatus removes the named effect immediately.
func (a *Actor) ClearStatus(name string, events Publisher) {
	for i, e := range a.effects {
		if e.Name == name {
			a.effects = append(a.effects[:i], a.effects[i+1:]...)
			publish(events, StatusExpired{Actor: a, Name: name})
			return
		}
	}
}

// ActiveEffects returns the live status effects on the actor.
func (a *Actor) ActiveEffects() []*StatusEffect {
	return a.effects
}

// TickStatusEffects advances every effect on the actor by dt seconds,
// applying damage-over-time through the pipeline (so death stays
// idempotent) and removing expired effects.
func TickStatusEffects(a *Actor, dt float64, pipeline *DamagePipeline, events Publisher) {
	if a == nil || dt <= 0 || len(a.effects) == 0 {
		return
	}
	kept := a.effects[:0]
	for _, e := range a.effects {
		if e.DamagePerSecond > 0 && pipeline != nil && !a.Downed() {
			pipeline.ApplyDamage(a, e.DamagePerSecond*dt, RegionTorso)
		}
		e.remaining -= dt
		if e.remaining > 0 {
			kept = append(kept, e)
			continue
		}
		publish(events, StatusExpired{Actor: a, Name: e.Name})
	}
	a.effects = kept
}
