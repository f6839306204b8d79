package combat

import (
	"math"
	"testing"
)

// Scenario tests drive the full harness: world, resolver, pipeline, events,
// hearing and perception on the synchronous tick.

func rifleProfile() WeaponProfile {
	return WeaponProfile{
		Name:       "rifle",
		BaseDamage: 25,
		MaxRange:   100,
	}
}

func TestScenario_Survivor_Downs_Infected(t *testing.T) {
	ar := NewArena(
		WithSeed(7),
		WithSurvivor("S0", 0, 0, Vec3{X: 1}),
		WithInfected("I0", 10.4, 0, Vec3{X: -1}),
	)
	rifle := rifleProfile()

	shooter := ar.ByTeam(TeamSurvivor)[0]
	for i := 0; i < 10 && len(ar.AliveByTeam(TeamInfected)) > 0; i++ {
		if _, ok := ar.EngageVisible(shooter, &rifle); !ok {
			t.Fatalf("tick %d: shooter lost sight of a standing target", ar.Tick)
		}
		ar.Step()
	}

	if len(ar.AliveByTeam(TeamInfected)) != 0 {
		t.Fatalf("infected should be down\n%s", ar.SimLog.Format())
	}
	// 25 per torso hit against 100 health: exactly four shots.
	rep := BuildReport(ar)
	if rep.ShotsFired != 4 {
		t.Fatalf("expected 4 shots, got %d\n%s", rep.ShotsFired, ar.SimLog.Format())
	}
	if rep.Downed != 1 {
		t.Fatalf("expected exactly one downed entry, got %d", rep.Downed)
	}
	if rep.SurvivorsAlive != 1 || rep.InfectedAlive != 0 {
		t.Fatalf("roster mismatch: %d survivors, %d infected alive",
			rep.SurvivorsAlive, rep.InfectedAlive)
	}
	if rep.FirstShotTick < 0 || rep.FirstDownTick < rep.FirstShotTick {
		t.Fatalf("report tick ordering wrong: first_shot=%d first_down=%d",
			rep.FirstShotTick, rep.FirstDownTick)
	}
}

func TestScenario_Same_Seed_Same_Outcome(t *testing.T) {
	run := func(seed int64) (*Arena, Report) {
		ar := NewArena(
			WithSeed(seed),
			WithSurvivor("S0", 0, 0, Vec3{X: 1}),
			WithInfected("I0", 30, 2, Vec3{X: -1}),
			WithInfected("I1", 35, -4, Vec3{X: -1}),
		)
		shaky := WeaponProfile{
			Name:          "shaky-rifle",
			BaseDamage:    18,
			SpreadDegrees: 6,
			MaxRange:      100,
		}
		shooter := ar.ByTeam(TeamSurvivor)[0]
		for i := 0; i < 60; i++ {
			ar.EngageVisible(shooter, &shaky)
			ar.Step()
		}
		return ar, BuildReport(ar)
	}

	arA, repA := run(99)
	arB, repB := run(99)
	if arA.SimLog.Format() != arB.SimLog.Format() {
		t.Fatalf("same seed must replay the identical log\n--- A ---\n%s--- B ---\n%s",
			arA.SimLog.Format(), arB.SimLog.Format())
	}
	if repA != repB {
		t.Fatalf("same seed must produce the identical report:\n%s\nvs\n%s", repA, repB)
	}
	for i := range arA.Actors {
		if arA.Actors[i].Health() != arB.Actors[i].Health() {
			t.Fatalf("actor %s health diverged: %.2f vs %.2f",
				arA.Actors[i].Label(), arA.Actors[i].Health(), arB.Actors[i].Health())
		}
	}

	// A different seed is allowed to match by chance on coarse metrics, so
	// only assert the run does something, not that it differs.
	if _, repC := run(100); repC.ShotsFired == 0 {
		t.Fatal("second seed fired nothing; scenario setup is broken")
	}
}

func TestScenario_Gunfire_Behind_Wall_Leaves_Hint(t *testing.T) {
	wall := AABB{Min: Vec3{8, 0, -3}, Max: Vec3{9, 3, 3}}
	ar := NewArena(
		WithSeed(3),
		WithOccluder(wall),
		WithSurvivor("S0", 0, 0, Vec3{X: 1}),
		WithInfected("I0", 20, 0, Vec3{X: -1}),
	)
	shooter := ar.ByTeam(TeamSurvivor)[0]
	infected := ar.ByTeam(TeamInfected)[0]

	if ar.Vision.Sees(infected, shooter) {
		t.Fatal("wall must break line of sight before the test means anything")
	}
	if infected.Perception().HasLastKnown {
		t.Fatal("perception must start empty")
	}

	// Shot thuds into the wall; the report still carries across it, muffled.
	rifle := rifleProfile()
	res := ar.Resolver.FireWeapon(shooter, MaskAll, &rifle)
	if !res.Hit || res.Target != nil {
		t.Fatal("expected the shot to stop in the wall")
	}

	p := infected.Perception()
	if !p.HasLastKnown {
		t.Fatalf("gunshot noise must leave a positional hint\n%s", ar.SimLog.Format())
	}
	if p.LastKnown.Sub(shooter.EyePosition()).Len() > 1e-9 {
		t.Fatalf("hint must point at the muzzle, got %+v", p.LastKnown)
	}
	if p.Confidence <= 0 || p.Confidence >= 0.25 {
		t.Fatalf("muffled hint confidence should sit between 0 and a sighting, got %.3f", p.Confidence)
	}
	if infected.Health() != infected.MaxHealth() {
		t.Fatal("a wall hit must not damage anyone")
	}
}

func TestScenario_Bile_Projectile_Slows_Survivor(t *testing.T) {
	ar := NewArena(
		WithSeed(11),
		WithSurvivor("S0", 12, 0, Vec3{X: -1}),
		WithInfected("I0", 0, 0, Vec3{X: 1}),
	)
	survivor := ar.ByTeam(TeamSurvivor)[0]
	lobber := ar.ByTeam(TeamInfected)[0]

	bile := WeaponProfile{
		Name:               "bile-lobber",
		BaseDamage:         10,
		Mode:               FireModeProjectile,
		ProjectileSpeed:    20,
		ProjectileLifetime: 2,
		MaxRange:           100,
		Status: &StatusTemplate{
			Name:            "bile",
			Duration:        3,
			DamagePerSecond: 2,
			SlowFactor:      0.4,
		},
	}
	ar.Resolver.FireWeapon(lobber, MaskAll, &bile)

	hitTick := ar.RunUntil(func(a *Arena) bool {
		return a.SimLog.CountCategory("projectile", "impact") > 0
	}, 60)
	if hitTick < 0 {
		t.Fatalf("glob never landed\n%s", ar.SimLog.Format())
	}
	if !ar.SimLog.HasEntry("projectile", "impact", "hit S0") {
		t.Fatalf("impact entry must name the survivor\n%s", ar.SimLog.Format())
	}
	if ar.SimLog.CountCategory("status", "applied") != 1 {
		t.Fatal("bile must attach its status on impact")
	}
	if m := survivor.SpeedMultiplier(); math.Abs(m-0.6) > 1e-9 {
		t.Fatalf("bile slow should leave a 0.6 speed multiplier, got %.2f", m)
	}

	// Ride out the status: the slow lifts and the expiry is logged.
	ar.RunTicks(int(ar.TickRate*3) + 2)
	if survivor.SpeedMultiplier() != 1.0 {
		t.Fatalf("expired status must restore full speed, got %.2f", survivor.SpeedMultiplier())
	}
	if ar.SimLog.CountCategory("status", "expired") != 1 {
		t.Fatalf("expected one expiry entry\n%s", ar.SimLog.Format())
	}
}

func TestScenario_Scent_Trail_Laid_While_Moving(t *testing.T) {
	ar := NewArena(
		WithSeed(5),
		WithSurvivor("S0", 0, 0, Vec3{X: 1}),
	)
	runner := ar.ByTeam(TeamSurvivor)[0]

	// Jog +X for three seconds of simulation.
	for i := 0; i < int(ar.TickRate)*3; i++ {
		p := runner.Position()
		runner.SetPosition(Vec3{X: p.X + 2.0/ar.TickRate})
		ar.Step()
	}

	marks := runner.Scent().RecentPositions(30, ar.Now())
	if len(marks) != 3 {
		t.Fatalf("expected one mark per second over 3s, got %d", len(marks))
	}
	for i := 1; i < len(marks); i++ {
		if marks[i].X <= marks[i-1].X {
			t.Fatalf("marks must trace the movement path in order: %+v", marks)
		}
	}
}

func TestScenario_Stationary_Actor_Leaves_No_Scent(t *testing.T) {
	ar := NewArena(
		WithSeed(5),
		WithSurvivor("S0", 0, 0, Vec3{X: 1}),
	)
	idler := ar.ByTeam(TeamSurvivor)[0]

	// Four seconds of standing still: no trail to follow.
	ar.RunTicks(int(ar.TickRate) * 4)
	if n := idler.Scent().Len(); n != 0 {
		t.Fatalf("an idle actor must lay no trail, got %d marks", n)
	}

	// One step is enough to start the trail again.
	idler.SetPosition(Vec3{X: 2})
	ar.RunTicks(int(ar.TickRate) + 1)
	if n := idler.Scent().Len(); n != 1 {
		t.Fatalf("a single move should lay exactly one mark, got %d", n)
	}
}

func TestScenario_Difficulty_Scales_Damage(t *testing.T) {
	build := func(scalar float64) *Arena {
		return NewArena(
			WithSeed(2),
			WithDifficulty(scalar),
			WithSurvivor("S0", 0, 0, Vec3{X: 1}),
			WithInfected("I0", 10.4, 0, Vec3{X: -1}),
		)
	}
	rifle := rifleProfile()

	easy := build(0.5)
	easy.EngageVisible(easy.ByTeam(TeamSurvivor)[0], &rifle)
	hard := build(2.0)
	hard.EngageVisible(hard.ByTeam(TeamSurvivor)[0], &rifle)

	easyHP := easy.ByTeam(TeamInfected)[0].Health()
	hardHP := hard.ByTeam(TeamInfected)[0].Health()
	if math.Abs(easyHP-87.5) > 1e-9 {
		t.Fatalf("half-difficulty torso hit should deal 12.5, leaving 87.5, got %.2f", easyHP)
	}
	if math.Abs(hardHP-50.0) > 1e-9 {
		t.Fatalf("double-difficulty torso hit should deal 50, leaving 50.0, got %.2f", hardHP)
	}
}
