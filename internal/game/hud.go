package game

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// hudScale is the integer upscale factor applied to HUD text.
const hudScale = 2

// drawHUD renders the key legend into hudBuf at 1x, then blits it scaled.
func (g *Game) drawHUD(screen *ebiten.Image) {
	w := g.starfield.Warp()
	state := "running"
	if g.starPaused {
		state = "PAUSED"
	}
	lines := []string{
		fmt.Sprintf("quality: %s  stars: %d  [Q] toggle", g.quality, len(g.starfield.Stars())),
		fmt.Sprintf("warp: %.2fx -> %.0fx  (%d ticks)  [Space]", w.Speed, w.Target, w.TicksRemaining),
		fmt.Sprintf("confetti: %d live  [click]", g.bursts.Live()),
		fmt.Sprintf("starfield: %s  [P]", state),
		"[C] copy frame report  [H] hide HUD",
		fmt.Sprintf("tps %.0f  fps %.0f", ebiten.ActualTPS(), ebiten.ActualFPS()),
	}
	if g.status != "" {
		lines = append(lines, g.status)
	}

	const lineH = 12 // debug font line height at 1x
	const charW = 6  // debug font char width at 1x
	const padX = 5
	const padY = 4

	maxLen := 0
	for _, l := range lines {
		if len(l) > maxLen {
			maxLen = len(l)
		}
	}
	boxW := float32(maxLen*charW + padX*2)
	boxH := float32(len(lines)*lineH + padY*2)
	bx := float32(4)
	by := float32(g.hudBuf.Bounds().Dy()) - boxH - 4

	g.hudBuf.Clear()
	vector.FillRect(g.hudBuf, bx, by, boxW, boxH, color.RGBA{R: 4, G: 6, B: 16, A: 190}, false)
	vector.StrokeRect(g.hudBuf, bx, by, boxW, boxH, 1.0, color.RGBA{R: 90, G: 110, B: 180, A: 160}, false)
	for i, line := range lines {
		ebitenutil.DebugPrintAt(g.hudBuf, line, int(bx)+padX, int(by)+padY+i*lineH)
	}

	opts := &ebiten.DrawImageOptions{}
	opts.GeoM.Scale(hudScale, hudScale)
	screen.DrawImage(g.hudBuf, opts)
}
