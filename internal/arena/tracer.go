package arena

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/dizzygames/dizzy-combat/internal/combat"
)

const (
	tracerSeconds = 0.18 // lifetime of a shot line
	flashSeconds  = 0.10 // lifetime of a muzzle burst
)

// Tracer is a short-lived line from muzzle to impact point.
type Tracer struct {
	from, to combat.Vec3
	team     combat.Team
	hit      bool
	fade     *gween.Tween
	alpha    float32
	done     bool
}

func newTracer(from, to combat.Vec3, team combat.Team, hit bool) *Tracer {
	return &Tracer{
		from:  from,
		to:    to,
		team:  team,
		hit:   hit,
		fade:  gween.New(1, 0, tracerSeconds, ease.OutQuad),
		alpha: 1,
	}
}

func (t *Tracer) update(dt float64) {
	t.alpha, t.done = t.fade.Update(float32(dt))
}

// draw renders the tracer as a thin team-tinted line with a hot tip. Hits
// get a small impact flare while the line is still young.
func (t *Tracer) draw(screen *ebiten.Image, cam camera) {
	if t.done {
		return
	}
	x0, y0 := cam.toScreen(t.from)
	x1, y1 := cam.toScreen(t.to)

	var r, g, b uint8
	if t.team == combat.TeamSurvivor {
		r, g, b = 255, 220, 120
	} else {
		r, g, b = 150, 255, 130
	}
	a := uint8(210 * t.alpha)
	vector.StrokeLine(screen, x0, y0, x1, y1, 1.0,
		color.RGBA{R: r, G: g, B: b, A: a}, false)
	vector.FillCircle(screen, x1, y1, 1.2,
		color.RGBA{R: 255, G: 255, B: 230, A: uint8(230 * t.alpha)}, false)

	if t.hit && t.alpha > 0.7 {
		vector.FillCircle(screen, x1, y1, 3.0,
			color.RGBA{R: 255, G: 240, B: 180, A: 180}, false)
	}
}

// MuzzleFlash is a short burst at a firing actor's muzzle.
type MuzzleFlash struct {
	pos   combat.Vec3
	fade  *gween.Tween
	alpha float32
	done  bool
}

func newMuzzleFlash(pos combat.Vec3) *MuzzleFlash {
	return &MuzzleFlash{
		pos:   pos,
		fade:  gween.New(1, 0, flashSeconds, ease.Linear),
		alpha: 1,
	}
}

func (f *MuzzleFlash) update(dt float64) {
	f.alpha, f.done = f.fade.Update(float32(dt))
}

func (f *MuzzleFlash) draw(screen *ebiten.Image, cam camera) {
	if f.done {
		return
	}
	x, y := cam.toScreen(f.pos)
	vector.FillCircle(screen, x, y, 2.5+3.0*f.alpha,
		color.RGBA{R: 255, G: 230, B: 150, A: uint8(200 * f.alpha)}, false)
}
