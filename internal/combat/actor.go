package combat

const (
	defaultMaxHealth     = 100.0 // starting health
	defaultBodyRadius    = 0.4   // metres, standing humanoid half-width
	defaultBodyHeight    = 1.8   // metres
	defaultHearingRadius = 30.0  // metres, baseline listener radius

	// Armor can reduce damage by at most 90%. Full immunity is disallowed.
	maxArmorReduction = 0.9
)

// Team distinguishes the living from the infected.
type Team int

const (
	TeamSurvivor Team = iota
	TeamInfected
)

func (t Team) String() string {
	switch t {
	case TeamSurvivor:
		return "survivor"
	case TeamInfected:
		return "infected"
	default:
		return "unknown"
	}
}

// LifeState is the actor's coarse health state.
type LifeState int

const (
	StateAlive LifeState = iota
	StateDowned
)

func (ls LifeState) String() string {
	switch ls {
	case StateAlive:
		return "alive"
	case StateDowned:
		return "downed"
	default:
		return "unknown"
	}
}

// BodyRegion is a coarse hit-location classification used to scale damage.
type BodyRegion string

const (
	RegionHead  BodyRegion = "head"
	RegionTorso BodyRegion = "torso"
	RegionLimb  BodyRegion = "limb"
)

// Hitbox binds a body region to a box positioned relative to the actor's
// ground-center origin.
type Hitbox struct {
	Region BodyRegion
	Box    AABB // offsets from actor position
}

// HumanoidHitboxes returns the standard three-region hitbox set for a
// standing actor of the given radius and height: limbs in the lower band,
// torso in the middle, head on top.
func HumanoidHitboxes(radius, height float64) []Hitbox {
	return []Hitbox{
		{Region: RegionLimb, Box: AABB{
			Min: Vec3{-radius, 0, -radius},
			Max: Vec3{radius, height * 0.40, radius},
		}},
		{Region: RegionTorso, Box: AABB{
			Min: Vec3{-radius, height * 0.40, -radius},
			Max: Vec3{radius, height * 0.83, radius},
		}},
		{Region: RegionHead, Box: AABB{
			Min: Vec3{-radius * 0.6, height * 0.83, -radius * 0.6},
			Max: Vec3{radius * 0.6, height, radius * 0.6},
		}},
	}
}

// Actor is any entity that can deal or receive damage. The world owns all
// actors; combat components hold only transient references during a single
// resolution call.
type Actor struct {
	id    int
	label string // short log label, e.g. "S0", "I3"
	team  Team

	pos        Vec3
	facing     Vec3 // unit vector, current look direction
	lastFacing Vec3 // last valid facing, fallback for degenerate aim

	health    float64
	maxHealth float64
	armor     float64 // damage reduction factor, clamped to [0, 0.9]

	state    LifeState
	hitboxes []Hitbox

	hearingRadius float64
	scent         *ScentTrail
	perception    *PerceptionState
	effects       []*StatusEffect

	aim AimProvider
}

// ActorConfig carries spawn-time actor parameters. Zero fields fall back to
// sensible defaults.
type ActorConfig struct {
	ID            int // 0 assigns the next free id
	Label         string
	Team          Team
	Position      Vec3
	Facing        Vec3
	MaxHealth     float64
	Armor         float64
	Hitboxes      []Hitbox
	HearingRadius float64
	Aim           AimProvider
}

var nextActorID = 1

// NewActor spawns an actor from cfg.
func NewActor(cfg ActorConfig) *Actor {
	maxHP := cfg.MaxHealth
	if maxHP <= 0 {
		maxHP = defaultMaxHealth
	}
	facing, ok := cfg.Facing.Normalized()
	if !ok {
		facing = Vec3{X: 1}
	}
	boxes := cfg.Hitboxes
	if boxes == nil {
		boxes = HumanoidHitboxes(defaultBodyRadius, defaultBodyHeight)
	}
	hearing := cfg.HearingRadius
	if hearing <= 0 {
		hearing = defaultHearingRadius
	}
	aim := cfg.Aim
	if aim == nil {
		aim = ForwardAim{}
	}
	id := cfg.ID
	if id == 0 {
		id = nextActorID
		nextActorID++
	}
	a := &Actor{
		id:            id,
		label:         cfg.Label,
		team:          cfg.Team,
		pos:           cfg.Position,
		facing:        facing,
		lastFacing:    facing,
		health:        maxHP,
		maxHealth:     maxHP,
		armor:         clampRange(cfg.Armor, 0, maxArmorReduction),
		state:         StateAlive,
		hitboxes:      boxes,
		hearingRadius: hearing,
		scent:         NewScentTrail(defaultScentDecay),
		perception:    NewPerceptionState(),
		aim:           aim,
	}
	return a
}

func (a *Actor) ID() int            { return a.id }
func (a *Actor) Label() string      { return a.label }
func (a *Actor) Team() Team         { return a.team }
func (a *Actor) Position() Vec3     { return a.pos }
func (a *Actor) Facing() Vec3       { return a.facing }
func (a *Actor) LastFacing() Vec3   { return a.lastFacing }
func (a *Actor) Health() float64    { return a.health }
func (a *Actor) MaxHealth() float64 { return a.maxHealth }
func (a *Actor) Armor() float64     { return a.armor }
func (a *Actor) State() LifeState   { return a.state }
func (a *Actor) Downed() bool       { return a.state == StateDowned }

func (a *Actor) Scent() *ScentTrail           { return a.scent }
func (a *Actor) Perception() *PerceptionState { return a.perception }
func (a *Actor) HearingRadius() float64       { return a.hearingRadius }

func (a *Actor) SetPosition(p Vec3) {
	if !p.IsFinite() {
		return
	}
	a.pos = p
}

// SetFacing updates the look direction. Degenerate vectors are ignored and
// the previous facing is retained.
func (a *Actor) SetFacing(dir Vec3) {
	n, ok := dir.Normalized()
	if !ok {
		return
	}
	a.facing = n
	a.lastFacing = n
}

// SetArmor sets the damage reduction factor, clamped to [0, 0.9].
func (a *Actor) SetArmor(reduction float64) {
	a.armor = clampRange(reduction, 0, maxArmorReduction)
}

// AimProvider returns the actor's bound aim provider.
func (a *Actor) AimProvider() AimProvider { return a.aim }

// SetAimProvider swaps the bound aim provider at runtime. A nil provider is
// ignored so the actor always has a valid aim source.
func (a *Actor) SetAimProvider(p AimProvider) {
	if p == nil {
		return
	}
	a.aim = p
}

// AimVector resolves the actor's current firing direction through the bound
// provider.
func (a *Actor) AimVector() Vec3 {
	return a.aim.AimVector(a)
}

// EyePosition is the origin used for vision and hitscan rays: chest-high,
// so straight shots land in the torso band.
func (a *Actor) EyePosition() Vec3 {
	return a.pos.Add(Vec3{Y: defaultBodyHeight * 0.8})
}

// worldHitboxes returns the hitbox set translated to world space.
func (a *Actor) worldHitboxes() []Hitbox {
	out := make([]Hitbox, len(a.hitboxes))
	for i, hb := range a.hitboxes {
		out[i] = Hitbox{Region: hb.Region, Box: hb.Box.Translated(a.pos)}
	}
	return out
}

// footprintRadius is the actor's widest planar hitbox extent, used by
// ground-plane backends to size the body footprint.
func (a *Actor) footprintRadius() float64 {
	r := 0.0
	for _, hb := range a.hitboxes {
		for _, v := range []float64{-hb.Box.Min.X, hb.Box.Max.X, -hb.Box.Min.Z, hb.Box.Max.Z} {
			if v > r {
				r = v
			}
		}
	}
	if r <= 0 {
		r = defaultBodyRadius
	}
	return r
}

// containsPoint reports whether p lies inside any of the actor's world-space
// hitboxes.
func (a *Actor) containsPoint(p Vec3) bool {
	for _, hb := range a.worldHitboxes() {
		if hb.Box.Contains(p) {
			return true
		}
	}
	return false
}

// SpeedMultiplier folds active slow effects into a movement factor in (0,1].
func (a *Actor) SpeedMultiplier() float64 {
	mul := 1.0
	for _, e := range a.effects {
		mul *= 1.0 - clamp01(e.SlowFactor)
	}
	if mul < 0.05 {
		mul = 0.05
	}
	return mul
}
