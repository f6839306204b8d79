package combat

const defaultScentDecay = 30.0 // seconds a mark stays queryable

// ScentMark is one timestamped position on a trail.
type ScentMark struct {
	Position Vec3
	Time     float64 // simulation seconds when the mark was laid
}

// ScentTrail is an append-only, periodically pruned log of positions an
// actor has passed through. Marks older than the trail's decay window are
// never returned by queries.
type ScentTrail struct {
	decay float64
	marks []ScentMark
}

// NewScentTrail creates a trail with the given decay window in seconds.
// Non-positive values use the default.
func NewScentTrail(decaySeconds float64) *ScentTrail {
	if decaySeconds <= 0 {
		decaySeconds = defaultScentDecay
	}
	return &ScentTrail{decay: decaySeconds}
}

// DecayTime returns the trail's decay window in seconds.
func (t *ScentTrail) DecayTime() float64 { return t.decay }

// AddMark appends a timestamped mark and prunes entries that have fully
// decayed. Marks are laid in time order; out-of-order timestamps are
// ignored.
func (t *ScentTrail) AddMark(pos Vec3, now float64) {
	if !pos.IsFinite() {
		return
	}
	if n := len(t.marks); n > 0 && now < t.marks[n-1].Time {
		return
	}
	t.marks = append(t.marks, ScentMark{Position: pos, Time: now})
	t.prune(now)
}

// RecentPositions returns every mark younger than min(window, decayTime)
// seconds before now, oldest first.
func (t *ScentTrail) RecentPositions(window, now float64) []Vec3 {
	if window > t.decay {
		window = t.decay
	}
	if window <= 0 {
		return nil
	}
	t.prune(now)
	var out []Vec3
	for _, m := range t.marks {
		if now-m.Time < window {
			out = append(out, m.Position)
		}
	}
	return out
}

// Len returns the number of retained marks.
func (t *ScentTrail) Len() int { return len(t.marks) }

func (t *ScentTrail) prune(now float64) {
	cut := 0
	for cut < len(t.marks) && now-t.marks[cut].Time >= t.decay {
		cut++
	}
	if cut > 0 {
		t.marks = append(t.marks[:0], t.marks[cut:]...)
	}
}
