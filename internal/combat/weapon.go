package combat

import "fmt"

const (
	defaultMaxRange   = 1200.0 // world units, hitscan bound
	defaultFalloffMin = 0.4    // damage floor multiplier beyond falloff end

	// FalloffToZero marks a profile whose damage falls all the way to zero
	// at the falloff end. A zero FalloffMin means "unset" and takes the
	// default floor, so a true zero floor needs this sentinel.
	FalloffToZero = -1.0
)

// FireMode selects how a weapon resolves its shots.
type FireMode int

const (
	FireModeHitscan    FireMode = iota // instant ray resolution
	FireModeProjectile                 // lifetime-bound projectile actor
)

func (fm FireMode) String() string {
	switch fm {
	case FireModeHitscan:
		return "hitscan"
	case FireModeProjectile:
		return "projectile"
	default:
		return "unknown"
	}
}

// WeaponProfile is the immutable-per-shot parameter set for one weapon.
// Profiles are validated once at catalog load, never per shot.
type WeaponProfile struct {
	Name          string
	BaseDamage    float64
	SpreadDegrees float64 // total cone width; half-angle each side of the axis
	FalloffStart  float64 // distance where damage starts dropping
	FalloffEnd    float64 // distance where damage bottoms out
	FalloffMin    float64 // damage floor as a fraction of base; 0 is unset, FalloffToZero for a zero floor
	MaxRange      float64
	Mode          FireMode

	// Projectile-mode parameters, ignored for hitscan.
	ProjectileSpeed    float64 // units per second
	ProjectileLifetime float64 // seconds
	Status             *StatusTemplate
}

// DefaultWeaponProfile returns the baseline hitscan profile used when a fire
// call supplies no parameter set.
func DefaultWeaponProfile() WeaponProfile {
	return WeaponProfile{
		Name:       "default",
		BaseDamage: 20,
		MaxRange:   defaultMaxRange,
		FalloffMin: defaultFalloffMin,
	}
}

// normalized fills zero-value fields with their named defaults.
func (p WeaponProfile) normalized() WeaponProfile {
	if p.MaxRange <= 0 {
		p.MaxRange = defaultMaxRange
	}
	switch p.FalloffMin {
	case 0:
		p.FalloffMin = defaultFalloffMin
	case FalloffToZero:
		p.FalloffMin = 0
	}
	return p
}

// FalloffDisabled reports whether the profile's falloff window is inert.
// An end at or below the start disables falloff entirely; this is a
// deliberate catalog convention, not an error.
func (p WeaponProfile) FalloffDisabled() bool {
	return p.FalloffEnd <= p.FalloffStart
}

// Validate checks catalog-supplied values. It is called at load time so
// per-shot code never revalidates.
func (p WeaponProfile) Validate() error {
	if p.BaseDamage < 0 {
		return fmt.Errorf("weapon %q: negative base damage %.2f", p.Name, p.BaseDamage)
	}
	if p.SpreadDegrees < 0 || p.SpreadDegrees > 360 {
		return fmt.Errorf("weapon %q: spread %.2f out of range [0,360]", p.Name, p.SpreadDegrees)
	}
	if p.FalloffMin != FalloffToZero && (p.FalloffMin < 0 || p.FalloffMin > 1) {
		return fmt.Errorf("weapon %q: falloff min %.2f out of range [0,1]", p.Name, p.FalloffMin)
	}
	if p.MaxRange < 0 {
		return fmt.Errorf("weapon %q: negative max range %.2f", p.Name, p.MaxRange)
	}
	if p.Mode == FireModeProjectile {
		if p.ProjectileSpeed <= 0 {
			return fmt.Errorf("weapon %q: projectile speed must be positive", p.Name)
		}
		if p.ProjectileLifetime <= 0 {
			return fmt.Errorf("weapon %q: projectile lifetime must be positive", p.Name)
		}
	}
	return nil
}

// damageAfterFalloff applies distance falloff to base damage. Damage is
// unchanged below the start distance, interpolates linearly toward
// base*FalloffMin across the window, and clamps to that floor beyond the
// end. A window with end <= start disables falloff.
func damageAfterFalloff(base, dist float64, p WeaponProfile) float64 {
	if p.FalloffDisabled() {
		return base
	}
	if dist <= p.FalloffStart {
		return base
	}
	floor := base * p.FalloffMin
	if dist >= p.FalloffEnd {
		return floor
	}
	t := (dist - p.FalloffStart) / (p.FalloffEnd - p.FalloffStart)
	return base + (floor-base)*t
}

// WeaponCatalog is a read-only lookup of validated weapon profiles.
type WeaponCatalog struct {
	profiles map[string]WeaponProfile
}

// NewWeaponCatalog validates and normalizes every entry. The first invalid
// profile aborts the load.
func NewWeaponCatalog(entries []WeaponProfile) (*WeaponCatalog, error) {
	c := &WeaponCatalog{profiles: make(map[string]WeaponProfile, len(entries))}
	for _, p := range entries {
		if p.Name == "" {
			return nil, fmt.Errorf("weapon catalog: entry with empty name")
		}
		if _, dup := c.profiles[p.Name]; dup {
			return nil, fmt.Errorf("weapon catalog: duplicate entry %q", p.Name)
		}
		if err := p.Validate(); err != nil {
			return nil, err
		}
		c.profiles[p.Name] = p.normalized()
	}
	return c, nil
}

// Lookup returns the profile by name. The bool is false for unknown names.
func (c *WeaponCatalog) Lookup(name string) (WeaponProfile, bool) {
	p, ok := c.profiles[name]
	return p, ok
}

// ArmorCatalog is a read-only lookup of armor damage-reduction factors by
// identifier, clamped to [0, 0.9] at load.
type ArmorCatalog struct {
	reductions map[string]float64
}

// NewArmorCatalog validates raw reduction values. Values outside [0,1] are
// a load error; values in (0.9, 1] are clamped to the 0.9 cap since full
// immunity is disallowed.
func NewArmorCatalog(entries map[string]float64) (*ArmorCatalog, error) {
	c := &ArmorCatalog{reductions: make(map[string]float64, len(entries))}
	for name, r := range entries {
		if r < 0 || r > 1 {
			return nil, fmt.Errorf("armor %q: reduction %.2f out of range [0,1]", name, r)
		}
		c.reductions[name] = clampRange(r, 0, maxArmorReduction)
	}
	return c, nil
}

// Lookup returns the reduction factor by name, defaulting to 0 (no armor).
func (c *ArmorCatalog) Lookup(name string) float64 {
	return c.reductions[name]
}
