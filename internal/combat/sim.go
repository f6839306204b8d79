package combat

import (
	"fmt"
	"math/rand"
)

const (
	defaultTickRate   = 30.0 // simulation ticks per second
	scentMarkInterval = 1.0  // seconds between automatic trail marks
)

// Arena is a headless, deterministic simulation harness. It owns the world,
// the actors and the per-tick ordering guarantee: aim resolution precedes
// fire resolution precedes damage application, then projectiles, status
// effects and perception, all on one synchronous tick.
type Arena struct {
	World       World
	Actors      []*Actor
	Projectiles []*Projectile

	Bus      *Bus
	SimLog   *SimLog
	Resolver *Resolver
	Pipeline *DamagePipeline
	Vision   *VisionSense
	Hearing  *HearingField

	Tick     int
	TickRate float64

	rng           *rand.Rand
	seed          int64
	difficulty    DifficultyProvider
	lastScentMark float64
	lastScentPos  map[*Actor]Vec3
}

// arenaOptionKind controls the pass in which an option is applied.
type arenaOptionKind int

const (
	arenaOptWorld arenaOptionKind = iota // spatial backend swap, applied first
	arenaOptInfra                        // seed, world geometry, tuning
	arenaOptActor                        // spawns — applied after the world exists
)

// ArenaOption is a builder function applied during construction.
type ArenaOption struct {
	kind arenaOptionKind
	fn   func(*Arena)
}

// WithWorld swaps the spatial backend for the whole run. The default is a
// fresh BoxWorld; viewers running flat scenes pass a GroundPlane.
func WithWorld(w World) ArenaOption {
	return ArenaOption{arenaOptWorld, func(ar *Arena) {
		if w != nil {
			ar.World = w
		}
	}}
}

// WithSeed sets the RNG seed for deterministic runs.
func WithSeed(seed int64) ArenaOption {
	return ArenaOption{arenaOptInfra, func(ar *Arena) {
		ar.seed = seed
	}}
}

// WithVerbose enables per-tick verbose logging.
func WithVerbose(v bool) ArenaOption {
	return ArenaOption{arenaOptInfra, func(ar *Arena) {
		ar.SimLog = NewSimLog(v)
	}}
}

// WithOccluder adds a static blocking box.
func WithOccluder(box AABB) ArenaOption {
	return ArenaOption{arenaOptInfra, func(ar *Arena) {
		ar.World.AddOccluder(box)
	}}
}

// WithDifficulty sets the damage scalar for the whole run.
func WithDifficulty(scalar float64) ArenaOption {
	return ArenaOption{arenaOptInfra, func(ar *Arena) {
		ar.difficulty = FixedDifficulty(scalar)
	}}
}

// WithTickRate overrides the simulation tick rate.
func WithTickRate(ticksPerSecond float64) ArenaOption {
	return ArenaOption{arenaOptInfra, func(ar *Arena) {
		if ticksPerSecond > 0 {
			ar.TickRate = ticksPerSecond
		}
	}}
}

// WithVisionParams overrides the vision cone for every actor in the run.
func WithVisionParams(fovDegrees, maxDistance float64) ArenaOption {
	return ArenaOption{arenaOptInfra, func(ar *Arena) {
		ar.Vision.FOVDegrees = fovDegrees
		ar.Vision.MaxDistance = maxDistance
	}}
}

// WithActor spawns an actor and registers it with the world, the hearing
// field and the log.
func WithActor(cfg ActorConfig) ArenaOption {
	return ArenaOption{arenaOptActor, func(ar *Arena) {
		ar.AddActor(NewActor(cfg))
	}}
}

// WithSurvivor spawns a survivor at (x,z) facing the given direction.
func WithSurvivor(label string, x, z float64, facing Vec3) ArenaOption {
	return WithActor(ActorConfig{
		Label:    label,
		Team:     TeamSurvivor,
		Position: Vec3{X: x, Z: z},
		Facing:   facing,
	})
}

// WithInfected spawns an infected at (x,z) facing the given direction.
func WithInfected(label string, x, z float64, facing Vec3) ArenaOption {
	return WithActor(ActorConfig{
		Label:    label,
		Team:     TeamInfected,
		Position: Vec3{X: x, Z: z},
		Facing:   facing,
	})
}

// NewArena constructs an arena in two ordered passes: infrastructure first,
// then actor spawns.
func NewArena(opts ...ArenaOption) *Arena {
	ar := &Arena{
		World:        NewBoxWorld(),
		Bus:          NewBus(),
		SimLog:       NewSimLog(false),
		TickRate:     defaultTickRate,
		seed:         1,
		lastScentPos: map[*Actor]Vec3{},
	}
	for _, o := range opts {
		if o.kind == arenaOptWorld {
			o.fn(ar)
		}
	}
	ar.Vision = NewVisionSense(ar.World)
	ar.Hearing = NewHearingField(ar.World)

	for _, o := range opts {
		if o.kind == arenaOptInfra {
			o.fn(ar)
		}
	}

	ar.rng = rand.New(rand.NewSource(ar.seed)) // #nosec G404 -- simulation only
	ar.Pipeline = NewDamagePipeline(ar.difficulty, ar.Bus)
	ar.Resolver = NewResolver(ar.World, ar.Pipeline, ar.Bus, ar.rng.Int63())
	ar.Bus.Subscribe(ar.logEvent)
	ar.Bus.Subscribe(ar.noiseFromGunfire)

	for _, o := range opts {
		if o.kind == arenaOptActor {
			o.fn(ar)
		}
	}
	return ar
}

// AddActor registers a spawned actor with the world and the hearing field.
// Heard noises land in the actor's perception state as positional hints.
func (ar *Arena) AddActor(a *Actor) {
	if a == nil {
		return
	}
	ar.Actors = append(ar.Actors, a)
	ar.World.AddActor(a)
	ar.lastScentPos[a] = a.Position()
	ar.Hearing.Register(a, 0, func(source Vec3, intensity float64) {
		a.Perception().RecordHint(source, intensity)
		ar.SimLog.AddVerbose(ar.Tick, a.Label(), a.Team().String(),
			"noise", "heard", fmt.Sprintf("intensity %.2f", intensity), intensity)
	})
}

// Now returns the current simulation time in seconds.
func (ar *Arena) Now() float64 {
	return float64(ar.Tick) / ar.TickRate
}

// ByTeam returns all actors on a team.
func (ar *Arena) ByTeam(team Team) []*Actor {
	var out []*Actor
	for _, a := range ar.Actors {
		if a.Team() == team {
			out = append(out, a)
		}
	}
	return out
}

// AliveByTeam returns all non-downed actors on a team.
func (ar *Arena) AliveByTeam(team Team) []*Actor {
	var out []*Actor
	for _, a := range ar.ByTeam(team) {
		if !a.Downed() {
			out = append(out, a)
		}
	}
	return out
}

// EngageVisible turns the shooter toward its nearest visible opponent and
// fires one shot with the given profile. It returns the shot result and
// false when no opponent is visible. This is a scenario driver, not an AI:
// the behavior layer proper lives outside this package.
func (ar *Arena) EngageVisible(shooter *Actor, profile *WeaponProfile) (ShotResult, bool) {
	if shooter == nil || shooter.Downed() {
		return ShotResult{}, false
	}
	contacts := ar.Vision.VisibleContacts(shooter, ar.Actors)
	if len(contacts) == 0 {
		return ShotResult{}, false
	}
	target := contacts[0]
	bestD := shooter.Position().Dist(target.Position())
	for _, c := range contacts[1:] {
		if d := shooter.Position().Dist(c.Position()); d < bestD {
			bestD = d
			target = c
		}
	}
	if dir, ok := target.EyePosition().Sub(shooter.EyePosition()).Normalized(); ok {
		shooter.SetFacing(dir)
	}
	return ar.Resolver.FireWeapon(shooter, MaskAll, profile), true
}

// Step advances the simulation one tick: launched projectiles are adopted
// and advanced, status effects tick, scent marks are laid, and every
// actor's perception is polled.
func (ar *Arena) Step() {
	ar.Tick++
	dt := 1.0 / ar.TickRate
	now := ar.Now()

	ar.Projectiles = append(ar.Projectiles, ar.Resolver.DrainLaunched()...)
	kept := ar.Projectiles[:0]
	for _, p := range ar.Projectiles {
		p.Advance(dt, ar.World, ar.Pipeline, ar.Bus)
		if !p.Done() {
			kept = append(kept, p)
		}
	}
	ar.Projectiles = kept

	for _, a := range ar.Actors {
		TickStatusEffects(a, dt, ar.Pipeline, ar.Bus)
	}

	if now-ar.lastScentMark >= scentMarkInterval {
		ar.lastScentMark = now
		for _, a := range ar.Actors {
			if a.Downed() || a.Position() == ar.lastScentPos[a] {
				continue // only moving actors lay trail
			}
			ar.lastScentPos[a] = a.Position()
			a.Scent().AddMark(a.Position(), now)
		}
	}

	for _, a := range ar.Actors {
		PerceptionPoll(a, ar.Actors, ar.Vision, dt)
	}
}

// RunTicks advances the simulation n ticks.
func (ar *Arena) RunTicks(n int) {
	for i := 0; i < n; i++ {
		ar.Step()
	}
}

// RunUntil advances up to maxTicks, stopping early when predicate returns
// true. Returns the tick at which it was satisfied, or -1.
func (ar *Arena) RunUntil(predicate func(*Arena) bool, maxTicks int) int {
	for i := 0; i < maxTicks; i++ {
		ar.Step()
		if predicate(ar) {
			return ar.Tick
		}
	}
	return -1
}

// noiseFromGunfire forwards weapon discharges to the hearing field as
// gunshot noise. Delivery is synchronous with the emitting fire call.
func (ar *Arena) noiseFromGunfire(ev Event) {
	wf, ok := ev.(WeaponFired)
	if !ok {
		return
	}
	ar.Bus.Publish(NoiseEmitted{
		Source:    wf.Origin,
		Intensity: GunshotNoiseIntensity,
		Radius:    GunshotNoiseRadius,
	})
	ar.Hearing.EmitNoise(wf.Origin, GunshotNoiseIntensity, GunshotNoiseRadius)
}

// logEvent mirrors bus traffic into the structured sim log.
func (ar *Arena) logEvent(ev Event) {
	switch e := ev.(type) {
	case WeaponFired:
		label, team := actorLabel(e.Shooter)
		ar.SimLog.Add(ar.Tick, label, team, "fire", "shot",
			fmt.Sprintf("%s from (%.1f,%.1f,%.1f)", e.Profile.Name, e.Origin.X, e.Origin.Y, e.Origin.Z), 0)
	case ActorDowned:
		label, team := actorLabel(e.Actor)
		ar.SimLog.Add(ar.Tick, label, team, "state", "downed",
			fmt.Sprintf("killing blow to %s", e.Region), 0)
	case NoiseEmitted:
		ar.SimLog.AddVerbose(ar.Tick, "--", "--", "noise", "emit",
			fmt.Sprintf("intensity %.2f radius %.0f", e.Intensity, e.Radius), e.Intensity)
	case ProjectileHit:
		label, team := actorLabel(e.Shooter)
		detail := "world impact"
		if e.Target != nil {
			detail = fmt.Sprintf("hit %s for %.1f", e.Target.Label(), e.Damage)
		}
		ar.SimLog.Add(ar.Tick, label, team, "projectile", "impact", detail, e.Damage)
	case StatusApplied:
		label, team := actorLabel(e.Actor)
		ar.SimLog.Add(ar.Tick, label, team, "status", "applied", e.Name, 0)
	case StatusExpired:
		label, team := actorLabel(e.Actor)
		ar.SimLog.Add(ar.Tick, label, team, "status", "expired", e.Name, 0)
	}
}

func actorLabel(a *Actor) (string, string) {
	if a == nil {
		return "--", "--"
	}
	return a.Label(), a.Team().String()
}
