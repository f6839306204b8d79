package combat

// Projectile is a lifetime-bound shot advanced every tick by the host
// simulation. The world owns it exclusively after launch; the resolver
// retains no reference.
type Projectile struct {
	shooter *Actor
	pos     Vec3
	vel     Vec3 // units per second
	mask    Mask
	profile WeaponProfile

	baseDamage float64
	lifetime   float64 // seconds remaining
	traveled   float64
	done       bool
}

func newProjectile(shooter *Actor, origin, dir Vec3, baseDamage float64, mask Mask, prof WeaponProfile) *Projectile {
	return &Projectile{
		shooter:    shooter,
		pos:        origin,
		vel:        dir.Scale(prof.ProjectileSpeed),
		mask:       mask,
		profile:    prof,
		baseDamage: baseDamage,
		lifetime:   prof.ProjectileLifetime,
	}
}

func (p *Projectile) Position() Vec3 { return p.pos }
func (p *Projectile) Done() bool     { return p.done }

// Advance moves the projectile by dt seconds, sweeping the travel segment
// through the spatial backend. The first collision applies damage (and the
// profile's status payload) and destroys the projectile; expiry of the
// remaining lifetime destroys it quietly.
func (p *Projectile) Advance(dt float64, world SpatialQuery, pipeline *DamagePipeline, events Publisher) {
	if p.done || dt <= 0 {
		return
	}

	step := p.vel.Scale(dt)
	stepLen := step.Len()
	if stepLen > 0 {
		dir := step.Scale(1 / stepLen)
		if hit, found := world.NearestHit(p.pos, dir, stepLen, p.mask); found {
			p.traveled += hit.Distance
			p.impact(hit, pipeline, events)
			return
		}
		p.pos = p.pos.Add(step)
		p.traveled += stepLen
	}

	p.lifetime -= dt
	if p.lifetime <= 0 {
		p.done = true
	}
}

func (p *Projectile) impact(hit Hit, pipeline *DamagePipeline, events Publisher) {
	p.done = true
	p.pos = hit.Position

	if hit.Actor == nil {
		publish(events, ProjectileHit{Shooter: p.shooter, Position: hit.Position})
		return
	}

	region := hit.Region
	if region == "" {
		region = RegionTorso
	}
	damage := damageAfterFalloff(p.baseDamage, p.traveled, p.profile)
	final := 0.0
	if pipeline != nil {
		final = pipeline.Compute(damage, region, hit.Actor)
		pipeline.ApplyDamage(hit.Actor, final, region)
	}
	if p.profile.Status != nil {
		hit.Actor.ApplyStatus(*p.profile.Status, events)
	}
	publish(events, ProjectileHit{
		Shooter:  p.shooter,
		Target:   hit.Actor,
		Position: hit.Position,
		Damage:   final,
	})
}
