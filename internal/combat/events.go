package combat

// EventKind identifies a combat notification type.
type EventKind string

const (
	EventWeaponFired   EventKind = "weapon_fired"
	EventActorDowned   EventKind = "actor_downed"
	EventNoiseEmitted  EventKind = "noise_emitted"
	EventProjectileHit EventKind = "projectile_hit"
	EventStatusApplied EventKind = "status_applied"
	EventStatusExpired EventKind = "status_expired"
)

// Event is a combat notification delivered synchronously with the emitting
// call. Subscribers (HUD, economy, AI) live outside this package.
type Event interface {
	Kind() EventKind
}

// WeaponFired is emitted once per fire call, hit or miss — it represents
// weapon discharge, not impact.
type WeaponFired struct {
	Shooter   *Actor // may be nil for unattributed fire
	Origin    Vec3
	Direction Vec3
	Profile   WeaponProfile
}

func (WeaponFired) Kind() EventKind { return EventWeaponFired }

// ActorDowned is emitted exactly once when an actor's health reaches zero.
type ActorDowned struct {
	Actor  *Actor
	Region BodyRegion // region of the killing blow
}

func (ActorDowned) Kind() EventKind { return EventActorDowned }

// NoiseEmitted records a discrete noise for the hearing sense.
type NoiseEmitted struct {
	Source    Vec3
	Intensity float64
	Radius    float64
}

func (NoiseEmitted) Kind() EventKind { return EventNoiseEmitted }

// ProjectileHit is emitted when a lifetime-bound projectile strikes a
// collider.
type ProjectileHit struct {
	Shooter  *Actor
	Target   *Actor // nil for world geometry
	Position Vec3
	Damage   float64
}

func (ProjectileHit) Kind() EventKind { return EventProjectileHit }

// StatusApplied is emitted when a status effect attaches to an actor.
type StatusApplied struct {
	Actor *Actor
	Name  string
}

func (StatusApplied) Kind() EventKind { return EventStatusApplied }

// StatusExpired is emitted when a status effect runs out or is cleared.
type StatusExpired struct {
	Actor *Actor
	Name  string
}

func (StatusExpired) Kind() EventKind { return EventStatusExpired }

// Publisher is the narrow sink combat components emit through. It is
// injected at construction time; there is no global dispatcher.
type Publisher interface {
	Publish(ev Event)
}

// Bus fans events out to subscribers, synchronously and in subscription
// order.
type Bus struct {
	subs []func(Event)
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers fn for every subsequent event.
func (b *Bus) Subscribe(fn func(Event)) {
	if fn == nil {
		return
	}
	b.subs = append(b.subs, fn)
}

// Publish delivers ev to every subscriber before returning.
func (b *Bus) Publish(ev Event) {
	for _, fn := range b.subs {
		fn(ev)
	}
}

// Recorder captures published events for assertions in tests and reports.
type Recorder struct {
	Events []Event
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Publish appends ev to the captured list.
func (r *Recorder) Publish(ev Event) {
	r.Events = append(r.Events, ev)
}

// Count returns how many captured events have the given kind.
func (r *Recorder) Count(kind EventKind) int {
	n := 0
	for _, ev := range r.Events {
		if ev.Kind() == kind {
			n++
		}
	}
	return n
}

// Last returns the most recent event of the given kind, or nil.
func (r *Recorder) Last(kind EventKind) Event {
	for i := len(r.Events) - 1; i >= 0; i-- {
		if r.Events[i].Kind() == kind {
			return r.Events[i]
		}
	}
	return nil
}

// publish is a nil-safe emit helper shared by combat components.
func publish(p Publisher, ev Event) {
	if p == nil {
		return
	}
	p.Publish(ev)
}
