package combat

import (
	"math"
	"math/rand"
)

const (
	// Gunshot noise parameters handed to the hearing sense by the host loop.
	GunshotNoiseIntensity = 1.0
	GunshotNoiseRadius    = 140.0
)

// ShotResult is the ephemeral record of one fire call. It exists only for
// the duration of a single resolution and is never persisted.
type ShotResult struct {
	Hit            bool
	HitPosition    Vec3
	HitNormal      Vec3
	Target         *Actor // nil on a miss or world-geometry impact
	Region         BodyRegion
	FinalDamage    float64
	TravelDistance float64
}

// Resolver performs hitscan and projectile fire resolution: spread, nearest
// hit, falloff, then delegation to the damage pipeline. The spatial backend
// and event publisher are injected at construction.
type Resolver struct {
	world    SpatialQuery
	pipeline *DamagePipeline
	events   Publisher
	rng      *rand.Rand

	launched []*Projectile // projectiles fired this tick, drained by the host loop
}

// NewResolver creates a resolver with its own seeded RNG. Tests inject a
// known seed for deterministic spread.
func NewResolver(world SpatialQuery, pipeline *DamagePipeline, events Publisher, seed int64) *Resolver {
	return &Resolver{
		world:    world,
		pipeline: pipeline,
		events:   events,
		rng:      rand.New(rand.NewSource(seed)), // #nosec G404 -- simulation only
	}
}

// perturbDirection deflects dir by a uniformly sampled angle within
// [-spread/2, +spread/2] about the shot axis, at a uniform azimuth. The
// angular deviation from dir therefore never exceeds spread/2.
func (r *Resolver) perturbDirection(dir Vec3, spreadDegrees float64) Vec3 {
	if spreadDegrees <= 0 {
		return dir
	}
	half := spreadDegrees / 2 * math.Pi / 180
	theta := (r.rng.Float64()*2 - 1) * half
	azimuth := r.rng.Float64() * 2 * math.Pi
	tilt := dir.AnyPerpendicular().RotatedAbout(dir, azimuth)
	out := dir.RotatedAbout(tilt, theta)
	n, ok := out.Normalized()
	if !ok {
		return dir
	}
	return n
}

// Fire resolves a single weapon discharge from origin along direction.
// shooter may be nil for unattributed fire; profile may be nil to use the
// default parameter set. The WeaponFired notification is emitted exactly
// once per call — including misses and degenerate input, since it
// represents discharge, not impact.
func (r *Resolver) Fire(shooter *Actor, origin, direction Vec3, baseDamage float64, mask Mask, profile *WeaponProfile) ShotResult {
	prof := DefaultWeaponProfile()
	if profile != nil {
		prof = profile.normalized()
	}
	if baseDamage < 0 {
		baseDamage = 0
	}

	dir, ok := direction.Normalized()
	if !ok || !origin.IsFinite() {
		// Zero-length or NaN input degrades to a miss rather than
		// propagating NaN through the falloff and region math.
		publish(r.events, WeaponFired{Shooter: shooter, Origin: origin, Direction: direction, Profile: prof})
		return ShotResult{}
	}

	// Spread applies to the discharge itself, before the mode branch picks
	// how the shot travels.
	dir = r.perturbDirection(dir, prof.SpreadDegrees)
	publish(r.events, WeaponFired{Shooter: shooter, Origin: origin, Direction: dir, Profile: prof})

	if prof.Mode == FireModeProjectile {
		r.launched = append(r.launched, newProjectile(shooter, origin, dir, baseDamage, mask, prof))
		return ShotResult{}
	}

	hit, found := r.world.NearestHit(origin, dir, prof.MaxRange, mask)
	if !found {
		return ShotResult{}
	}

	res := ShotResult{
		Hit:            true,
		HitPosition:    hit.Position,
		HitNormal:      hit.Normal,
		TravelDistance: hit.Distance,
	}
	if hit.Actor == nil {
		// World geometry: impact recorded, no damage pipeline involvement.
		return res
	}

	region := hit.Region
	if region == "" {
		region = RegionTorso
	}
	damage := damageAfterFalloff(baseDamage, hit.Distance, prof)
	final := r.pipeline.Compute(damage, region, hit.Actor)
	r.pipeline.ApplyDamage(hit.Actor, final, region)

	res.Target = hit.Actor
	res.Region = region
	res.FinalDamage = final
	return res
}

// FireWeapon is the common host-loop entry point: resolves the shooter's
// aim through its bound provider and fires from the eye position with the
// profile's own base damage.
func (r *Resolver) FireWeapon(shooter *Actor, mask Mask, profile *WeaponProfile) ShotResult {
	if shooter == nil || shooter.Downed() {
		return ShotResult{}
	}
	prof := DefaultWeaponProfile()
	if profile != nil {
		prof = profile.normalized()
	}
	return r.Fire(shooter, shooter.EyePosition(), shooter.AimVector(), prof.BaseDamage, mask, &prof)
}

// DrainLaunched hands ownership of this tick's projectiles to the caller.
// The resolver retains no reference after the drain.
func (r *Resolver) DrainLaunched() []*Projectile {
	out := r.launched
	r.launched = nil
	return out
}

// SimulateRecoil interpolates the current aim vector toward a vertically
// offset vector by recoveryRate*dt, clamped to a [0,1] interpolation
// factor, always renormalized.
func SimulateRecoil(currentAim Vec3, recoilStrength, recoveryRate, dt float64) Vec3 {
	cur, ok := currentAim.Normalized()
	if !ok {
		return currentAim
	}
	kicked, ok := cur.Add(Vec3{Y: recoilStrength}).Normalized()
	if !ok {
		return cur
	}
	t := clamp01(recoveryRate * dt)
	out, ok := cur.Lerp(kicked, t).Normalized()
	if !ok {
		return cur
	}
	return out
}
