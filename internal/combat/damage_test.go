package combat

import (
	"math"
	"testing"
)

func TestComputeDamage_Headshot_With_Armor(t *testing.T) {
	// base=20, head, armor=0.3, difficulty=1.0 -> 20*1.5*0.7 = 21.0
	got := ComputeDamage(20, RegionHead, 0.3, 1.0)
	if math.Abs(got-21.0) > 1e-9 {
		t.Fatalf("expected 21.0, got %.6f", got)
	}
}

func TestComputeDamage_Armored_Headshot(t *testing.T) {
	// base=30, head, armor=0.4 -> 30*1.5*0.6 = 27.0
	got := ComputeDamage(30, RegionHead, 0.4, 1.0)
	if math.Abs(got-27.0) > 1e-9 {
		t.Fatalf("expected 27.0, got %.6f", got)
	}
}

func TestComputeDamage_Region_Multipliers(t *testing.T) {
	if m := RegionMultiplier(RegionHead); m != 1.5 {
		t.Fatalf("head multiplier should be 1.5, got %.2f", m)
	}
	if m := RegionMultiplier(RegionTorso); m != 1.0 {
		t.Fatalf("torso multiplier should be 1.0, got %.2f", m)
	}
	if m := RegionMultiplier(RegionLimb); m != 0.7 {
		t.Fatalf("limb multiplier should be 0.7, got %.2f", m)
	}
	if m := RegionMultiplier(BodyRegion("tail")); m != 1.0 {
		t.Fatalf("unrecognized region should default to 1.0, got %.2f", m)
	}
}

func TestComputeDamage_Armor_Clamped_To_Point_Nine(t *testing.T) {
	// Full immunity is disallowed: armor 1.0 clamps to 0.9, leaving 10%.
	got := ComputeDamage(100, RegionTorso, 1.0, 1.0)
	if math.Abs(got-10.0) > 1e-9 {
		t.Fatalf("armor 1.0 should clamp to 0.9 (10 damage), got %.6f", got)
	}
}

func TestComputeDamage_Never_Negative(t *testing.T) {
	if got := ComputeDamage(-5, RegionTorso, 0, 1.0); got != 0 {
		t.Fatalf("negative base damage should floor at 0, got %.6f", got)
	}
	if got := ComputeDamage(10, RegionTorso, 0, -2.0); got != 0 {
		t.Fatalf("negative difficulty product should floor at 0, got %.6f", got)
	}
}

func TestComputeDamage_Difficulty_Scalar(t *testing.T) {
	got := ComputeDamage(20, RegionTorso, 0, 1.5)
	if math.Abs(got-30.0) > 1e-9 {
		t.Fatalf("expected 30.0 at difficulty 1.5, got %.6f", got)
	}
}

func TestPipeline_Compute_Defaults_Difficulty(t *testing.T) {
	dp := NewDamagePipeline(nil, nil)
	target := NewActor(ActorConfig{Armor: 0.3})
	got := dp.Compute(20, RegionHead, target)
	if math.Abs(got-21.0) > 1e-9 {
		t.Fatalf("nil difficulty provider should default to 1.0, got %.6f", got)
	}
}

func TestApplyDamage_Floors_At_Zero(t *testing.T) {
	dp := NewDamagePipeline(nil, nil)
	a := NewActor(ActorConfig{MaxHealth: 50})
	dp.ApplyDamage(a, 80, RegionTorso)
	if a.Health() != 0 {
		t.Fatalf("health should floor at 0, got %.2f", a.Health())
	}
	if !a.Downed() {
		t.Fatal("actor at 0 health should be downed")
	}
}

func TestApplyDamage_Idempotent_Death(t *testing.T) {
	rec := NewRecorder()
	dp := NewDamagePipeline(nil, rec)
	a := NewActor(ActorConfig{MaxHealth: 30})

	dp.ApplyDamage(a, 30, RegionHead)
	dp.ApplyDamage(a, 10, RegionTorso)
	dp.ApplyDamage(a, 999, RegionHead)

	if a.Health() != 0 {
		t.Fatalf("health must stay at 0, got %.2f", a.Health())
	}
	if n := rec.Count(EventActorDowned); n != 1 {
		t.Fatalf("ActorDowned must fire exactly once, got %d", n)
	}
}

func TestApplyDamage_Downed_Region_Recorded(t *testing.T) {
	rec := NewRecorder()
	dp := NewDamagePipeline(nil, rec)
	a := NewActor(ActorConfig{MaxHealth: 10})
	dp.ApplyDamage(a, 10, RegionHead)

	ev, ok := rec.Last(EventActorDowned).(ActorDowned)
	if !ok {
		t.Fatal("expected an ActorDowned event")
	}
	if ev.Region != RegionHead {
		t.Fatalf("expected killing-blow region head, got %q", ev.Region)
	}
}

func TestApplyDamage_Nil_Target_NoOp(t *testing.T) {
	dp := NewDamagePipeline(nil, nil)
	dp.ApplyDamage(nil, 10, RegionTorso) // must not panic
}

func TestApplyDamage_NaN_Amount_NoOp(t *testing.T) {
	dp := NewDamagePipeline(nil, nil)
	a := NewActor(ActorConfig{MaxHealth: 50})
	dp.ApplyDamage(a, math.NaN(), RegionTorso)
	if a.Health() != 50 {
		t.Fatalf("NaN damage should leave health unchanged, got %.2f", a.Health())
	}
}
