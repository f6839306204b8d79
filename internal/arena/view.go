package arena

import (
	"image/color"
	"log"

	"github.com/atotto/clipboard"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/dizzygames/dizzy-combat/internal/combat"
)

const (
	screenWidth  = 1280
	screenHeight = 720

	pixelsPerUnit = 8.0
	worldCenter   = 100.0 // scene midpoint; plane coordinates stay positive

	rifleInterval = 20 // ticks between survivor trigger pulls
	bileInterval  = 75 // ticks between infected globs
	bileRange     = 25.0
	infectedSpeed = 3.0 // units per second
)

// camera projects world X/Z onto the screen.
type camera struct {
	offX, offY float64
	scale      float64
}

func (c camera) toScreen(v combat.Vec3) (float32, float32) {
	return float32(c.offX + v.X*c.scale), float32(c.offY + v.Z*c.scale)
}

// View is the interactive viewer: a scripted holdout scene rendered on top
// of the headless simulation. Survivors hold a line while infected advance;
// keys 1-4 swap the survivors' aim rig live.
type View struct {
	sim *combat.Arena
	cam camera

	seed     int64
	paused   bool
	showHUD  bool
	hudNote  string
	prevKeys map[ebiten.Key]bool

	rifle combat.WeaponProfile
	bile  combat.WeaponProfile

	walls   []combat.AABB
	tracers []*Tracer
	flashes []*MuzzleFlash

	lastFire map[*combat.Actor]int
}

// New builds the viewer with its default scene.
func New() *View {
	v := &View{
		seed:     42,
		showHUD:  true,
		prevKeys: map[ebiten.Key]bool{},
		rifle: combat.WeaponProfile{
			Name:          "rifle",
			BaseDamage:    20,
			SpreadDegrees: 2,
			FalloffStart:  30,
			FalloffEnd:    80,
			FalloffMin:    0.5,
			MaxRange:      200,
		},
		bile: combat.WeaponProfile{
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
		},
	}
	v.reset()
	return v
}

// reset rebuilds the scene from the current seed. The viewer is a flat
// top-down world, so it runs the simulation on a resolv-backed GroundPlane
// instead of the default box world.
func (v *View) reset() {
	v.walls = []combat.AABB{
		{Min: combat.Vec3{X: 95, Y: 0, Z: 82}, Max: combat.Vec3{X: 97, Y: 3, Z: 94}},
		{Min: combat.Vec3{X: 95, Y: 0, Z: 106}, Max: combat.Vec3{X: 97, Y: 3, Z: 118}},
	}
	v.sim = combat.NewArena(
		combat.WithWorld(combat.NewGroundPlane(200, 200, 16)),
		combat.WithSeed(v.seed),
		combat.WithOccluder(v.walls[0]),
		combat.WithOccluder(v.walls[1]),
		combat.WithSurvivor("S0", 75, 96, combat.Vec3{X: 1}),
		combat.WithSurvivor("S1", 75, 104, combat.Vec3{X: 1}),
		combat.WithInfected("I0", 130, 88, combat.Vec3{X: -1}),
		combat.WithInfected("I1", 134, 100, combat.Vec3{X: -1}),
		combat.WithInfected("I2", 130, 112, combat.Vec3{X: -1}),
		combat.WithInfected("I3", 140, 94, combat.Vec3{X: -1}),
		combat.WithInfected("I4", 140, 106, combat.Vec3{X: -1}),
	)
	v.cam = camera{
		offX:  screenWidth/2 - worldCenter*pixelsPerUnit,
		offY:  screenHeight/2 - worldCenter*pixelsPerUnit,
		scale: pixelsPerUnit,
	}
	v.tracers = nil
	v.flashes = nil
	v.lastFire = map[*combat.Actor]int{}
	v.hudNote = ""

	v.sim.Bus.Subscribe(func(ev combat.Event) {
		switch e := ev.(type) {
		case combat.WeaponFired:
			v.flashes = append(v.flashes, newMuzzleFlash(e.Origin))
		case combat.ProjectileHit:
			v.tracers = append(v.tracers, newTracer(e.Position, e.Position, combat.TeamInfected, true))
		}
	})
}

// Update implements ebiten.Game. One display frame is one simulation tick
// while unpaused.
func (v *View) Update() error {
	v.handleInput()
	dt := 1.0 / v.sim.TickRate

	kept := v.tracers[:0]
	for _, t := range v.tracers {
		t.update(dt)
		if !t.done {
			kept = append(kept, t)
		}
	}
	v.tracers = kept
	keptF := v.flashes[:0]
	for _, f := range v.flashes {
		f.update(dt)
		if !f.done {
			keptF = append(keptF, f)
		}
	}
	v.flashes = keptF

	if v.paused {
		return nil
	}

	v.driveSurvivors()
	v.driveInfected(dt)
	v.sim.Step()
	return nil
}

// driveSurvivors pulls the trigger on a fixed cadence against whatever is
// visible.
func (v *View) driveSurvivors() {
	for _, s := range v.sim.AliveByTeam(combat.TeamSurvivor) {
		if v.sim.Tick-v.lastFire[s] < rifleInterval {
			continue
		}
		res, ok := v.sim.EngageVisible(s, &v.rifle)
		if !ok {
			continue
		}
		v.lastFire[s] = v.sim.Tick
		end := res.HitPosition
		if !res.Hit {
			end = s.EyePosition().Add(s.AimVector().Scale(v.rifle.MaxRange))
		}
		v.tracers = append(v.tracers, newTracer(s.EyePosition(), end, s.Team(), res.Hit))
	}
}

// driveInfected shambles the horde toward the nearest standing survivor and
// lobs bile when close enough.
func (v *View) driveInfected(dt float64) {
	survivors := v.sim.AliveByTeam(combat.TeamSurvivor)
	if len(survivors) == 0 {
		return
	}
	for _, z := range v.sim.AliveByTeam(combat.TeamInfected) {
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

		if bestD <= bileRange && v.sim.Tick-v.lastFire[z] >= bileInterval {
			if v.sim.Vision.Sees(z, target) {
				v.sim.Resolver.FireWeapon(z, combat.MaskAll, &v.bile)
				v.lastFire[z] = v.sim.Tick
				continue
			}
		}
		step := infectedSpeed * z.SpeedMultiplier() * dt
		if step > bestD {
			step = bestD
		}
		z.SetPosition(z.Position().Add(dir.Scale(step)))
		v.sim.World.SyncActor(z)
	}
}

// handleInput processes edge-triggered key presses.
func (v *View) handleInput() {
	pressed := func(k ebiten.Key) bool {
		cur := ebiten.IsKeyPressed(k)
		fired := cur && !v.prevKeys[k]
		v.prevKeys[k] = cur
		return fired
	}

	if pressed(ebiten.KeySpace) {
		v.paused = !v.paused
	}
	if pressed(ebiten.KeyH) {
		v.showHUD = !v.showHUD
	}
	if pressed(ebiten.KeyR) {
		v.seed++
		v.reset()
	}
	if pressed(ebiten.KeyC) {
		rep := combat.BuildReport(v.sim)
		if err := clipboard.WriteAll(rep.String() + v.sim.SimLog.Format()); err != nil {
			log.Printf("clipboard: %v", err)
			v.hudNote = "clipboard copy failed"
		} else {
			v.hudNote = "report copied to clipboard"
		}
	}

	// Aim rig swap for the whole survivor line.
	rigs := map[ebiten.Key]combat.AimProvider{
		ebiten.Key1: combat.ForwardAim{},
		ebiten.Key2: combat.ShoulderAim{Offset: 0.4},
		ebiten.Key3: combat.TopDownAim{},
		ebiten.Key4: combat.PlanarAim{},
	}
	for k, rig := range rigs {
		if pressed(k) {
			for _, s := range v.sim.ByTeam(combat.TeamSurvivor) {
				s.SetAimProvider(rig)
			}
		}
	}
}

// Draw implements ebiten.Game.
func (v *View) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 16, G: 18, B: 16, A: 255})

	v.drawOccluders(screen)
	for _, t := range v.tracers {
		t.draw(screen, v.cam)
	}
	for _, f := range v.flashes {
		f.draw(screen, v.cam)
	}
	v.drawActors(screen)

	if v.showHUD {
		v.drawHUD(screen)
	}
}

func (v *View) drawOccluders(screen *ebiten.Image) {
	for _, w := range v.walls {
		x0, y0 := v.cam.toScreen(w.Min)
		x1, y1 := v.cam.toScreen(w.Max)
		vector.FillRect(screen, x0, y0, x1-x0, y1-y0,
			color.RGBA{R: 70, G: 70, B: 78, A: 255}, false)
	}
}

func (v *View) drawActors(screen *ebiten.Image) {
	for _, a := range v.sim.Actors {
		x, y := v.cam.toScreen(a.Position())
		var col color.RGBA
		switch {
		case a.Downed():
			col = color.RGBA{R: 70, G: 70, B: 70, A: 255}
		case a.Team() == combat.TeamSurvivor:
			col = color.RGBA{R: 120, G: 180, B: 255, A: 255}
		default:
			col = color.RGBA{R: 120, G: 220, B: 90, A: 255}
		}
		vector.FillCircle(screen, x, y, 4, col, false)

		if a.Downed() {
			continue
		}
		// Facing tick.
		f := a.Facing()
		vector.StrokeLine(screen, x, y,
			x+float32(f.X*8), y+float32(f.Z*8), 1.0,
			color.RGBA{R: 255, G: 255, B: 255, A: 150}, false)
		// Health bar.
		frac := float32(a.Health() / a.MaxHealth())
		vector.FillRect(screen, x-6, y-9, 12, 2,
			color.RGBA{R: 40, G: 40, B: 40, A: 220}, false)
		vector.FillRect(screen, x-6, y-9, 12*frac, 2,
			color.RGBA{R: 90, G: 220, B: 90, A: 220}, false)
		// Status marker.
		if len(a.ActiveEffects()) > 0 {
			vector.FillCircle(screen, x+6, y-6, 2,
				color.RGBA{R: 170, G: 255, B: 60, A: 255}, false)
		}
	}
}

// Layout implements ebiten.Game.
func (v *View) Layout(_, _ int) (int, int) {
	return screenWidth, screenHeight
}
