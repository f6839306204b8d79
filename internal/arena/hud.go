package arena

import (
	"bytes"
	"fmt"
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/dizzygames/dizzy-combat/internal/combat"
)

const (
	hudPanelWidth = 330
	hudLineHeight = 14
	hudLogLines   = 12
)

var hudFace text.Face

func init() {
	src, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		log.Fatalf("hud font: %v", err)
	}
	hudFace = &text.GoTextFace{Source: src, Size: 11}
}

func drawText(screen *ebiten.Image, s string, x, y float64, col color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(col)
	text.Draw(screen, s, hudFace, op)
}

// drawHUD renders the side panel: run state, roster, controls and the tail
// of the sim log.
func (v *View) drawHUD(screen *ebiten.Image) {
	panelX := screenWidth - hudPanelWidth
	vector.FillRect(screen, float32(panelX), 0, hudPanelWidth, screenHeight,
		color.RGBA{R: 10, G: 12, B: 10, A: 240}, false)
	vector.StrokeLine(screen, float32(panelX), 0, float32(panelX), screenHeight, 1.0,
		color.RGBA{R: 50, G: 70, B: 50, A: 255}, false)

	white := color.RGBA{R: 230, G: 230, B: 230, A: 255}
	dim := color.RGBA{R: 150, G: 160, B: 150, A: 255}
	x := float64(panelX + 10)
	y := 10.0

	line := func(s string, col color.Color) {
		drawText(screen, s, x, y, col)
		y += hudLineHeight
	}

	state := "running"
	if v.paused {
		state = "paused"
	}
	line(fmt.Sprintf("seed %d  tick %d  %s", v.seed, v.sim.Tick, state), white)
	line(fmt.Sprintf("survivors %d/%d   infected %d/%d",
		len(v.sim.AliveByTeam(combat.TeamSurvivor)), len(v.sim.ByTeam(combat.TeamSurvivor)),
		len(v.sim.AliveByTeam(combat.TeamInfected)), len(v.sim.ByTeam(combat.TeamInfected))), white)
	line(fmt.Sprintf("shots %d   downed %d   projectiles %d",
		v.sim.SimLog.CountCategory("fire", "shot"),
		v.sim.SimLog.CountCategory("state", "downed"),
		len(v.sim.Projectiles)), white)
	y += 6

	line("[space] pause  [r] reseed  [c] copy report", dim)
	line("[1] forward [2] shoulder [3] overhead [4] planar", dim)
	line("[h] hide panel", dim)
	if v.hudNote != "" {
		line(v.hudNote, color.RGBA{R: 255, G: 220, B: 120, A: 255})
	}
	y += 6

	line("-- log --", dim)
	entries := v.sim.SimLog.Entries()
	start := len(entries) - hudLogLines
	if start < 0 {
		start = 0
	}
	for _, e := range entries[start:] {
		line(e.String(), dim)
	}

	// Per-actor rows at the bottom of the panel.
	y = screenHeight - float64(len(v.sim.Actors)+2)*hudLineHeight
	line("-- roster --", dim)
	for _, a := range v.sim.Actors {
		col := white
		if a.Downed() {
			col = dim
		}
		status := ""
		for _, e := range a.ActiveEffects() {
			status += " " + e.Name
		}
		line(fmt.Sprintf("%-4s %-9s hp %5.1f%s", a.Label(), a.Team(), a.Health(), status), col)
	}
}
