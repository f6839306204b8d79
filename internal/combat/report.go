package combat

import (
	"fmt"
	"strings"
)

// Report summarizes one headless simulation run for the CLI and tests.
type Report struct {
	Seed  int64
	Ticks int

	ShotsFired        int
	ProjectileImpacts int
	Downed            int
	StatusApplied     int

	SurvivorsAlive int
	InfectedAlive  int

	FirstShotTick int // -1 when nothing fired
	FirstDownTick int // -1 when nobody went down
}

// BuildReport derives a run summary from the arena's log and roster.
func BuildReport(ar *Arena) Report {
	r := Report{
		Seed:          ar.seed,
		Ticks:         ar.Tick,
		FirstShotTick: -1,
		FirstDownTick: -1,
	}
	r.ShotsFired = ar.SimLog.CountCategory("fire", "shot")
	r.ProjectileImpacts = ar.SimLog.CountCategory("projectile", "impact")
	r.Downed = ar.SimLog.CountCategory("state", "downed")
	r.StatusApplied = ar.SimLog.CountCategory("status", "applied")
	if e, ok := ar.SimLog.FirstOf("fire", "shot"); ok {
		r.FirstShotTick = e.Tick
	}
	if e, ok := ar.SimLog.FirstOf("state", "downed"); ok {
		r.FirstDownTick = e.Tick
	}
	r.SurvivorsAlive = len(ar.AliveByTeam(TeamSurvivor))
	r.InfectedAlive = len(ar.AliveByTeam(TeamInfected))
	return r
}

// String formats the report for terminal output.
func (r Report) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "seed=%d ticks=%d\n", r.Seed, r.Ticks)
	fmt.Fprintf(&sb, "  shots=%d projectile_impacts=%d downed=%d status=%d\n",
		r.ShotsFired, r.ProjectileImpacts, r.Downed, r.StatusApplied)
	fmt.Fprintf(&sb, "  alive: survivors=%d infected=%d\n", r.SurvivorsAlive, r.InfectedAlive)
	fmt.Fprintf(&sb, "  first_shot=T%d first_down=T%d\n", r.FirstShotTick, r.FirstDownTick)
	return sb.String()
}

// Aggregate condenses several runs into min/mean/max lines per metric.
func Aggregate(reports []Report) string {
	if len(reports) == 0 {
		return "no runs\n"
	}
	var sb strings.Builder
	metric := func(name string, get func(Report) int) {
		lo, hi, sum := get(reports[0]), get(reports[0]), 0
		for _, r := range reports {
			v := get(r)
			if v < lo {
				lo = v
			}
			if v > hi {
				hi = v
			}
			sum += v
		}
		fmt.Fprintf(&sb, "  %-20s min=%d mean=%.1f max=%d\n",
			name, lo, float64(sum)/float64(len(reports)), hi)
	}
	metric("shots_fired", func(r Report) int { return r.ShotsFired })
	metric("downed", func(r Report) int { return r.Downed })
	metric("survivors_alive", func(r Report) int { return r.SurvivorsAlive })
	metric("infected_alive", func(r Report) int { return r.InfectedAlive })
	metric("first_down_tick", func(r Report) int { return r.FirstDownTick })
	return sb.String()
}
