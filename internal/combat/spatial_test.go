package combat

import (
	"math"
	"testing"
)

func TestSegmentAABB_Entry_And_Normal(t *testing.T) {
	box := AABB{Min: Vec3{4, 0, -1}, Max: Vec3{5, 2, 1}}
	tHit, normal, ok := segmentAABB(Vec3{0, 1, 0}, Vec3{X: 10}, box)
	if !ok {
		t.Fatal("segment through the box must hit")
	}
	if math.Abs(tHit-0.4) > 1e-9 {
		t.Fatalf("expected entry at t=0.4, got %.4f", tHit)
	}
	if normal != (Vec3{X: -1}) {
		t.Fatalf("entry normal should face the ray, got %+v", normal)
	}
}

func TestSegmentAABB_Miss(t *testing.T) {
	box := AABB{Min: Vec3{4, 0, -1}, Max: Vec3{5, 2, 1}}
	if _, _, ok := segmentAABB(Vec3{0, 5, 0}, Vec3{X: 10}, box); ok {
		t.Fatal("segment passing above the box must miss")
	}
	if _, _, ok := segmentAABB(Vec3{0, 1, 0}, Vec3{X: 3}, box); ok {
		t.Fatal("segment ending short of the box must miss")
	}
	if _, _, ok := segmentAABB(Vec3{6, 1, 0}, Vec3{X: 10}, box); ok {
		t.Fatal("segment starting past the box must miss")
	}
}

func TestSegmentAABB_Origin_Inside(t *testing.T) {
	box := AABB{Min: Vec3{-1, -1, -1}, Max: Vec3{1, 1, 1}}
	tHit, normal, ok := segmentAABB(Vec3{}, Vec3{X: 10}, box)
	if !ok {
		t.Fatal("segment starting inside must report a hit")
	}
	if tHit != 0 {
		t.Fatalf("inside origin should report t=0, got %.4f", tHit)
	}
	if normal != (Vec3{}) {
		t.Fatalf("inside origin has no entry face, got normal %+v", normal)
	}
}

func TestBoxWorld_Nearest_Of_Several(t *testing.T) {
	w := NewBoxWorld()
	w.AddOccluder(AABB{Min: Vec3{8, 0, -1}, Max: Vec3{9, 3, 1}})
	w.AddOccluder(AABB{Min: Vec3{4, 0, -1}, Max: Vec3{5, 3, 1}})

	hit, ok := w.NearestHit(Vec3{0, 1, 0}, Vec3{X: 1}, 50, MaskWorld)
	if !ok {
		t.Fatal("expected a hit")
	}
	if math.Abs(hit.Distance-4.0) > 1e-9 {
		t.Fatalf("must return the closest occluder, got distance %.3f", hit.Distance)
	}
	if hit.Actor != nil {
		t.Fatal("world geometry hits carry no actor")
	}
}

func TestBoxWorld_Mask_Filtering(t *testing.T) {
	w := NewBoxWorld()
	w.AddOccluder(AABB{Min: Vec3{4, 0, -1}, Max: Vec3{5, 3, 1}})
	target := NewActor(ActorConfig{ID: 1, Team: TeamInfected, Position: Vec3{X: 10}})
	w.AddActor(target)

	hit, ok := w.NearestHit(Vec3{0, 1, 0}, Vec3{X: 1}, 50, MaskActors)
	if !ok || hit.Actor != target {
		t.Fatal("actor-only mask must skip the wall and strike the actor")
	}

	hit, ok = w.NearestHit(Vec3{0, 1, 0}, Vec3{X: 1}, 50, MaskWorld)
	if !ok || hit.Actor != nil {
		t.Fatal("world-only mask must strike the wall, not the actor")
	}
}

func TestBoxWorld_Region_By_Ray_Height(t *testing.T) {
	w := NewBoxWorld()
	target := NewActor(ActorConfig{ID: 1, Team: TeamInfected, Position: Vec3{X: 10}})
	w.AddActor(target)

	cases := []struct {
		name   string
		height float64
		region BodyRegion
	}{
		{"head", 1.6, RegionHead},
		{"torso", 1.0, RegionTorso},
		{"limb", 0.3, RegionLimb},
	}
	for _, tc := range cases {
		hit, ok := w.NearestHit(Vec3{0, tc.height, 0}, Vec3{X: 1}, 50, MaskActors)
		if !ok {
			t.Fatalf("%s: expected a hit", tc.name)
		}
		if hit.Region != tc.region {
			t.Fatalf("%s: ray at height %.2f should strike %s, got %s",
				tc.name, tc.height, tc.region, hit.Region)
		}
	}
}

func TestBoxWorld_Downed_Actors_Transparent(t *testing.T) {
	w := NewBoxWorld()
	blocker := NewActor(ActorConfig{ID: 1, Team: TeamInfected, Position: Vec3{X: 5}})
	behind := NewActor(ActorConfig{ID: 2, Team: TeamInfected, Position: Vec3{X: 10}})
	w.AddActor(blocker)
	w.AddActor(behind)

	hit, _ := w.NearestHit(Vec3{0, 1, 0}, Vec3{X: 1}, 50, MaskActors)
	if hit.Actor != blocker {
		t.Fatal("standing actor should block the ray first")
	}

	pipe := NewDamagePipeline(nil, nil)
	pipe.ApplyDamage(blocker, 1000, RegionTorso)

	hit, ok := w.NearestHit(Vec3{0, 1, 0}, Vec3{X: 1}, 50, MaskActors)
	if !ok || hit.Actor != behind {
		t.Fatal("downed actor must no longer block rays")
	}
}

func TestBoxWorld_Self_Origin_Ignored(t *testing.T) {
	w := NewBoxWorld()
	shooter := NewActor(ActorConfig{ID: 1, Team: TeamSurvivor, Position: Vec3{}})
	target := NewActor(ActorConfig{ID: 2, Team: TeamInfected, Position: Vec3{X: 10}})
	w.AddActor(shooter)
	w.AddActor(target)

	// Eye point sits inside the shooter's own torso box.
	hit, ok := w.NearestHit(shooter.EyePosition(), Vec3{X: 1}, 50, MaskActors)
	if !ok || hit.Actor != target {
		t.Fatal("a ray starting inside an actor must ignore that actor")
	}
}

func TestBoxWorld_Degenerate_Inputs(t *testing.T) {
	w := NewBoxWorld()
	w.AddOccluder(AABB{Min: Vec3{4, 0, -1}, Max: Vec3{5, 3, 1}})

	if _, ok := w.NearestHit(Vec3{0, 1, 0}, Vec3{}, 50, MaskAll); ok {
		t.Fatal("zero direction must miss cleanly")
	}
	if _, ok := w.NearestHit(Vec3{0, 1, 0}, Vec3{X: 1}, 0, MaskAll); ok {
		t.Fatal("non-positive range must miss cleanly")
	}
	if _, ok := w.NearestHit(Vec3{X: math.NaN()}, Vec3{X: 1}, 50, MaskAll); ok {
		t.Fatal("non-finite origin must miss cleanly")
	}
}

func TestBoxWorld_RemoveActor(t *testing.T) {
	w := NewBoxWorld()
	a := NewActor(ActorConfig{ID: 1, Team: TeamInfected, Position: Vec3{X: 5}})
	w.AddActor(a)
	w.RemoveActor(a)
	if _, ok := w.NearestHit(Vec3{0, 1, 0}, Vec3{X: 1}, 50, MaskActors); ok {
		t.Fatal("removed actor must not be hit-testable")
	}
	if len(w.Actors()) != 0 {
		t.Fatalf("expected empty actor list, got %d", len(w.Actors()))
	}
}
