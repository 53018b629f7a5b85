package main

import (
	"log"
	"os"

	"github.com/Garsondee/Star-Warp/internal/config"
	"github.com/Garsondee/Star-Warp/internal/game"
	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}
	ebiten.SetWindowTitle("Star Warp")
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetRunnableOnUnfocused(true)
	if err := ebiten.RunGame(game.New(cfg)); err != nil {
		log.Fatal(err)
	}
}
