package combat

// AimProvider converts an actor's current state into a firing direction and
// a reticle position. The four perspective rigs are interchangeable at
// runtime by rebinding the actor's provider; no other component branches on
// which perspective is active.
//
// A provider that cannot resolve a valid direction returns the actor's last
// known facing rather than failing — combat resolution runs every frame and
// must never crash the surrounding simulation.
type AimProvider interface {
	AimVector(a *Actor) Vec3
	ReticleScreenPosition(vp Viewport) Point2
}

// aimFallback resolves the canonical fallback direction for degenerate aim
// input: the actor's last known facing, or world +X with no actor at all.
func aimFallback(a *Actor) Vec3 {
	if a == nil {
		return Vec3{X: 1}
	}
	if f, ok := a.LastFacing().Normalized(); ok {
		return f
	}
	return Vec3{X: 1}
}

// ForwardAim fires along the actor's forward basis vector. Used by the
// first-person and chase-camera rigs.
type ForwardAim struct{}

func (ForwardAim) AimVector(a *Actor) Vec3 {
	if a == nil {
		return aimFallback(a)
	}
	if f, ok := a.Facing().Normalized(); ok {
		return f
	}
	return aimFallback(a)
}

func (ForwardAim) ReticleScreenPosition(vp Viewport) Point2 {
	return vp.Center()
}

// ShoulderAim fires from a laterally offset shoulder position, converging
// on the point the actor is looking at. Used by the over-the-shoulder rig.
type ShoulderAim struct {
	Offset        float64 // lateral shoulder offset, world units
	FocusDistance float64 // convergence distance; <=0 uses a default
}

const defaultFocusDistance = 40.0

func (s ShoulderAim) AimVector(a *Actor) Vec3 {
	if a == nil {
		return aimFallback(a)
	}
	forward, ok := a.Facing().Normalized()
	if !ok {
		return aimFallback(a)
	}
	focus := s.FocusDistance
	if focus <= 0 {
		focus = defaultFocusDistance
	}
	right, ok := forward.Cross(Vec3{Y: 1}).Normalized()
	if !ok {
		// Looking straight up or down: no lateral basis, fall back to forward.
		return forward
	}
	muzzle := a.Position().Add(right.Scale(s.Offset))
	focusPoint := a.Position().Add(forward.Scale(focus))
	dir, ok := focusPoint.Sub(muzzle).Normalized()
	if !ok {
		return aimFallback(a)
	}
	return dir
}

func (s ShoulderAim) ReticleScreenPosition(vp Viewport) Point2 {
	c := vp.Center()
	// Reticle tracks the shoulder side slightly.
	c.X += s.Offset * 8
	return c
}

// TopDownAim fires straight down into the ground plane; the reticle sits at
// screen center. Used by the overhead rig.
type TopDownAim struct{}

func (TopDownAim) AimVector(a *Actor) Vec3 {
	return Vec3{Y: -1}
}

func (TopDownAim) ReticleScreenPosition(vp Viewport) Point2 {
	return vp.Center()
}

// PlanarAim constrains fire to a single horizontal axis; the sign follows
// the actor's facing. Used by the side-view rig.
type PlanarAim struct{}

func (PlanarAim) AimVector(a *Actor) Vec3 {
	if a == nil {
		return aimFallback(a)
	}
	f, ok := a.Facing().Normalized()
	if !ok {
		f = aimFallback(a)
	}
	if f.X < 0 {
		return Vec3{X: -1}
	}
	return Vec3{X: 1}
}

func (PlanarAim) ReticleScreenPosition(vp Viewport) Point2 {
	return vp.Center()
}
