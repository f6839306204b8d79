package main

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/dizzygames/dizzy-combat/internal/arena"
)

func main() {
	ebiten.SetWindowTitle("Dizzy Combat Arena")
	ebiten.SetWindowSize(1280, 720)
	if err := ebiten.RunGame(arena.New()); err != nil {
		log.Fatal(err)
	}
}
