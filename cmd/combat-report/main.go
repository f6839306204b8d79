package main

import (
	"flag"
	"fmt"

	"github.com/dizzygames/dizzy-combat/internal/combat"
)

const (
	rifleInterval = 20 // ticks between survivor trigger pulls
	bileInterval  = 75 // ticks between infected globs
	bileRange     = 25.0
	infectedSpeed = 3.0 // units per second
)

func main() {
	var runs int
	var ticks int
	var seedBase int64
	var seedStep int64
	var scenario string
	var difficulty float64

	flag.IntVar(&runs, "runs", 5, "number of headless simulation runs")
	flag.IntVar(&ticks, "ticks", 1800, "ticks per run")
	flag.Int64Var(&seedBase, "seed-base", 42, "base RNG seed for run 1")
	flag.Int64Var(&seedStep, "seed-step", 1, "seed increment between runs")
	flag.StringVar(&scenario, "scenario", "holdout", "scenario name")
	flag.Float64Var(&difficulty, "difficulty", 1.0, "incoming damage scalar")
	flag.Parse()

	if runs <= 0 {
		fmt.Println("error: -runs must be > 0")
		return
	}
	if ticks <= 0 {
		fmt.Println("error: -ticks must be > 0")
		return
	}
	if scenario != "holdout" {
		fmt.Printf("error: unsupported scenario %q (supported: holdout)\n", scenario)
		return
	}

	fmt.Printf("=== Headless Combat Report ===\n")
	fmt.Printf("scenario=%s runs=%d ticks=%d seed_base=%d seed_step=%d difficulty=%.2f\n\n",
		scenario, runs, ticks, seedBase, seedStep, difficulty)

	reports := make([]combat.Report, 0, runs)
	outcomes := map[string]int{}
	for i := 0; i < runs; i++ {
		seed := seedBase + int64(i)*seedStep
		rep := runHoldout(seed, ticks, difficulty)
		reports = append(reports, rep)
		outcome := classifyOutcome(rep)
		outcomes[outcome]++
		fmt.Printf("--- Run %d ---\n%soutcome=%s\n\n", i+1, rep, outcome)
	}

	fmt.Println("=== Aggregate ===")
	fmt.Print(combat.Aggregate(reports))
	fmt.Printf("  outcomes: holdout=%d overrun=%d contested=%d\n",
		outcomes["holdout"], outcomes["overrun"], outcomes["contested"])
}

// runHoldout plays the stock scene: two survivors hold a wall gap while a
// pack of infected advances and lobs bile.
func runHoldout(seed int64, ticks int, difficulty float64) combat.Report {
	ar := combat.NewArena(
		combat.WithSeed(seed),
		combat.WithDifficulty(difficulty),
		combat.WithOccluder(combat.AABB{
			Min: combat.Vec3{X: -5, Y: 0, Z: -18},
			Max: combat.Vec3{X: -3, Y: 3, Z: -6},
		}),
		combat.WithOccluder(combat.AABB{
			Min: combat.Vec3{X: -5, Y: 0, Z: 6},
			Max: combat.Vec3{X: -3, Y: 3, Z: 18},
		}),
		combat.WithSurvivor("S0", -25, -4, combat.Vec3{X: 1}),
		combat.WithSurvivor("S1", -25, 4, combat.Vec3{X: 1}),
		combat.WithInfected("I0", 30, -12, combat.Vec3{X: -1}),
		combat.WithInfected("I1", 34, 0, combat.Vec3{X: -1}),
		combat.WithInfected("I2", 30, 12, combat.Vec3{X: -1}),
		combat.WithInfected("I3", 40, -6, combat.Vec3{X: -1}),
		combat.WithInfected("I4", 40, 6, combat.Vec3{X: -1}),
	)

	rifle := combat.WeaponProfile{
		Name:          "rifle",
		BaseDamage:    20,
		SpreadDegrees: 2,
		FalloffStart:  30,
		FalloffEnd:    80,
		FalloffMin:    0.5,
		MaxRange:      200,
	}
	bile := combat.WeaponProfile{
		Name:               "bile-lobber",
		BaseDamage:         8,
		Mode:               combat.FireModeProjectile,
		ProjectileSpeed:    18,
		ProjectileLifetime: 3,
		MaxRange:           200,
		Status: &combat.StatusTemplate{
			Name:            "bile",
			Duration:        4,
			DamagePerSecond: 1.5,
			SlowFactor:      0.35,
		},
	}

	lastFire := map[*combat.Actor]int{}
	for i := 0; i < ticks; i++ {
		for _, s := range ar.AliveByTeam(combat.TeamSurvivor) {
			if ar.Tick-lastFire[s] < rifleInterval {
				continue
			}
			if _, ok := ar.EngageVisible(s, &rifle); ok {
				lastFire[s] = ar.Tick
			}
		}
		driveInfected(ar, &bile, lastFire, 1.0/ar.TickRate)
		ar.Step()

		if len(ar.AliveByTeam(combat.TeamSurvivor)) == 0 ||
			len(ar.AliveByTeam(combat.TeamInfected)) == 0 {
			break
		}
	}
	return combat.BuildReport(ar)
}

// driveInfected shambles each standing infected toward the nearest standing
// survivor, lobbing bile when in range with line of sight.
func driveInfected(ar *combat.Arena, bile *combat.WeaponProfile, lastFire map[*combat.Actor]int, dt float64) {
	survivors := ar.AliveByTeam(combat.TeamSurvivor)
	if len(survivors) == 0 {
		return
	}
	for _, z := range ar.AliveByTeam(combat.TeamInfected) {
		target := survivors[0]
		bestD := z.Position().Dist(target.Position())
		for _, s := range survivors[1:] {
			if d := z.Position().Dist(s.Position()); d < bestD {
				bestD = d
				target = s
			}
		}
		dir, ok := target.Position().Sub(z.Position()).Normalized()
		if !ok {
			continue
		}
		z.SetFacing(dir)

		if bestD <= bileRange && ar.Tick-lastFire[z] >= bileInterval && ar.Vision.Sees(z, target) {
			ar.Resolver.FireWeapon(z, combat.MaskAll, bile)
			lastFire[z] = ar.Tick
			continue
		}
		step := infectedSpeed * z.SpeedMultiplier() * dt
		if step > bestD {
			step = bestD
		}
		z.SetPosition(z.Position().Add(dir.Scale(step)))
		ar.World.SyncActor(z)
	}
}

// classifyOutcome buckets a finished run.
func classifyOutcome(rep combat.Report) string {
	switch {
	case rep.SurvivorsAlive > 0 && rep.InfectedAlive == 0:
		return "holdout"
	case rep.SurvivorsAlive == 0:
		return "overrun"
	default:
		return "contested"
	}
}
