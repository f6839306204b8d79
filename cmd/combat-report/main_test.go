package main

import (
	"testing"

	"github.com/dizzygames/dizzy-combat/internal/combat"
)

func TestClassifyOutcome(t *testing.T) {
	cases := []struct {
		name      string
		survivors int
		infected  int
		want      string
	}{
		{"clean holdout", 2, 0, "holdout"},
		{"costly holdout", 1, 0, "holdout"},
		{"overrun", 0, 3, "overrun"},
		{"mutual destruction", 0, 0, "overrun"},
		{"timed out", 1, 2, "contested"},
	}
	for _, tc := range cases {
		rep := combat.Report{SurvivorsAlive: tc.survivors, InfectedAlive: tc.infected}
		if got := classifyOutcome(rep); got != tc.want {
			t.Errorf("%s: expected %q, got %q", tc.name, tc.want, got)
		}
	}
}

func TestRunHoldout_Deterministic(t *testing.T) {
	a := runHoldout(42, 600, 1.0)
	b := runHoldout(42, 600, 1.0)
	if a != b {
		t.Fatalf("same seed must reproduce the run:\n%s\nvs\n%s", a, b)
	}
}

func TestRunHoldout_Produces_Combat(t *testing.T) {
	rep := runHoldout(42, 1800, 1.0)
	if rep.ShotsFired == 0 {
		t.Fatalf("holdout scenario fired nothing:\n%s", rep)
	}
	if rep.Downed == 0 {
		t.Fatalf("holdout scenario downed nobody across 1800 ticks:\n%s", rep)
	}
}
