package combat

import "math"

// Region damage multipliers. Unrecognized regions fall back to 1.0.
var regionMultipliers = map[BodyRegion]float64{
	RegionHead:  1.5,
	RegionTorso: 1.0,
	RegionLimb:  0.7,
}

// RegionMultiplier returns the damage multiplier for a body region.
func RegionMultiplier(region BodyRegion) float64 {
	if m, ok := regionMultipliers[region]; ok {
		return m
	}
	return 1.0
}

// DifficultyProvider supplies the externally configured damage scalar. The
// pipeline consults it once per computation and never mutates it.
type DifficultyProvider interface {
	DamageScalar() float64
}

// FixedDifficulty is a constant damage scalar.
type FixedDifficulty float64

func (f FixedDifficulty) DamageScalar() float64 { return float64(f) }

// ComputeDamage resolves final damage from base weapon damage, a body-region
// multiplier, an armor reduction factor and a difficulty scalar:
//
//	max(0, base * regionMult * (1 - clamp(armor, 0, 0.9)) * difficulty)
//
// Armor is clamped at the point of use because it originates from
// externally configured catalogs.
func ComputeDamage(base float64, region BodyRegion, armorReduction, difficulty float64) float64 {
	armor := clampRange(armorReduction, 0, maxArmorReduction)
	dmg := base * RegionMultiplier(region) * (1 - armor) * difficulty
	return math.Max(0, dmg)
}

// DamagePipeline computes and applies damage to actors. It is the sole
// authorized mutator of actor health.
type DamagePipeline struct {
	difficulty DifficultyProvider
	events     Publisher
}

// NewDamagePipeline creates a pipeline. A nil difficulty provider defaults
// the scalar to 1.0; a nil publisher drops notifications.
func NewDamagePipeline(difficulty DifficultyProvider, events Publisher) *DamagePipeline {
	return &DamagePipeline{difficulty: difficulty, events: events}
}

// damageScalar reads the current difficulty scalar, defaulting to 1.0.
func (dp *DamagePipeline) damageScalar() float64 {
	if dp.difficulty == nil {
		return 1.0
	}
	return dp.difficulty.DamageScalar()
}

// Compute resolves final damage against a target using the target's own
// armor and the current difficulty scalar. A nil target takes no armor into
// account.
func (dp *DamagePipeline) Compute(base float64, region BodyRegion, target *Actor) float64 {
	armor := 0.0
	if target != nil {
		armor = target.Armor()
	}
	return ComputeDamage(base, region, armor, dp.damageScalar())
}

// ApplyDamage subtracts amount from the target's health, floored at zero.
// Reaching zero transitions the actor to the terminal downed state and
// emits ActorDowned exactly once; applying damage to an already-downed
// actor is a no-op. Invalid targets degrade to a no-op, never an error.
func (dp *DamagePipeline) ApplyDamage(target *Actor, amount float64, region BodyRegion) {
	if target == nil || target.Downed() {
		return
	}
	if math.IsNaN(amount) || amount < 0 {
		amount = 0
	}
	target.health -= amount
	if target.health > 0 {
		return
	}
	target.health = 0
	target.state = StateDowned
	publish(dp.events, ActorDowned{Actor: target, Region: region})
}
