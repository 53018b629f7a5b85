package game

import (
	"image/color"
	"log"
	"os"

	"github.com/Garsondee/Star-Warp/internal/assets"
	"github.com/Garsondee/Star-Warp/internal/config"
	"github.com/Garsondee/Star-Warp/internal/fx"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Demo trigger parameters, matching a correct-answer celebration.
const (
	warpDurationMs = 800
	warpIntensity  = 8
	statusTicks    = 180 // how long a status line stays on the HUD
)

// Game hosts both engines on one ebiten window. It owns the frame queue
// that stands in for the display-refresh scheduler.
type Game struct {
	frames    *fx.FrameQueue
	backend   *backend
	starfield *fx.Starfield
	bursts    *fx.BurstEngine
	quality   fx.Quality

	// Viewport in logical pixels, and the size LayoutF last reported.
	vp     fx.Viewport
	layout fx.Viewport

	hidden     bool
	starPaused bool // user pause (P), independent of visibility
	showHUD    bool
	hudBuf     *ebiten.Image

	status      string
	statusTicks int
}

// New builds the host from configuration. Optional images are loaded from
// cfg.AssetDir in high quality only; any that fail are skipped.
func New(cfg config.Config) *Game {
	g := &Game{
		frames:  fx.NewFrameQueue(),
		backend: newBackend(),
		quality: cfg.Quality,
		showHUD: cfg.ShowHUD,
	}
	g.vp = fx.Viewport{
		Width:       float64(cfg.Width),
		Height:      float64(cfg.Height),
		DeviceScale: ebiten.Monitor().DeviceScaleFactor(),
	}
	g.layout = g.vp

	var starOpts []fx.StarfieldOption
	var burstOpts []fx.BurstOption
	if cfg.Seed != 0 {
		starOpts = append(starOpts, fx.WithStarfieldSeed(cfg.Seed))
		burstOpts = append(burstOpts, fx.WithBurstSeed(cfg.Seed+1))
	}
	if cfg.Quality == fx.QualityHigh {
		starOpts = append(starOpts, loadSprites(cfg.AssetDir)...)
	}

	g.starfield = fx.NewStarfield(g.vp, g.quality, g.backend, g.frames, starOpts...)
	g.bursts = fx.NewBurstEngine(g.vp, g.quality, g.backend, g.frames, burstOpts...)
	g.resizeHUD()
	return g
}

// loadSprites turns whatever decorative images decode into starfield options.
func loadSprites(dir string) []fx.StarfieldOption {
	fsys := os.DirFS(dir)
	var opts []fx.StarfieldOption
	if nebulae := assets.Load(fsys, assets.NebulaCandidates); len(nebulae) > 0 {
		sprites := make([]fx.Sprite, len(nebulae))
		for i, img := range nebulae {
			sprites[i] = ebiten.NewImageFromImage(img)
		}
		opts = append(opts, fx.WithNebulae(sprites))
	}
	if flare := assets.First(fsys, assets.FlareCandidates); flare != nil {
		opts = append(opts, fx.WithFlare(ebiten.NewImageFromImage(flare)))
	}
	log.Printf("assets: %d decorative option(s) loaded from %s", len(opts), dir)
	return opts
}

// Update applies visibility and size changes at the frame boundary, maps
// input to triggers, then runs one frame of engine callbacks.
func (g *Game) Update() error {
	g.syncVisibility()
	g.syncViewport()
	g.handleInput()
	g.frames.RunFrame()

	if g.statusTicks > 0 {
		g.statusTicks--
		if g.statusTicks == 0 {
			g.status = ""
		}
	}
	return nil
}

// syncVisibility cancels both engines' callbacks while the window is
// minimised and restores them afterwards.
func (g *Game) syncVisibility() {
	hidden := ebiten.IsWindowMinimized()
	if hidden == g.hidden {
		return
	}
	g.hidden = hidden
	if hidden {
		g.starfield.Pause()
		g.bursts.Pause()
		return
	}
	if !g.starPaused {
		g.starfield.Resume()
	}
	g.bursts.Resume()
}

func (g *Game) syncViewport() {
	if g.layout == g.vp {
		return
	}
	g.vp = g.layout
	g.starfield.Resize(g.vp, g.quality)
	g.bursts.Resize(g.vp, g.quality)
	g.resizeHUD()
}

func (g *Game) resizeHUD() {
	w, h := fx.PhysicalSize(int(g.vp.Width), int(g.vp.Height), g.vp.DeviceScale)
	w, h = max(w/hudScale, 1), max(h/hudScale, 1)
	if g.hudBuf != nil {
		if b := g.hudBuf.Bounds(); b.Dx() == w && b.Dy() == h {
			return
		}
		g.hudBuf.Deallocate()
	}
	g.hudBuf = ebiten.NewImage(w, h)
}

// handleInput is the demo trigger surface.
func (g *Game) handleInput() {
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.starfield.TriggerWarp(warpDurationMs, warpIntensity)
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		mx, my := ebiten.CursorPosition()
		x := float64(mx) / g.vp.DeviceScale
		y := float64(my) / g.vp.DeviceScale
		g.bursts.SpawnBurst(x, y, fx.BurstOptions{})
		g.bursts.PoofAt(x, y)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		g.toggleQuality()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.starPaused = !g.starPaused
		if g.starPaused {
			g.starfield.Pause()
		} else if !g.hidden {
			g.starfield.Resume()
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		g.showHUD = !g.showHUD
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		g.copyReport()
	}
}

func (g *Game) toggleQuality() {
	if g.quality == fx.QualityHigh {
		g.quality = fx.QualityLow
	} else {
		g.quality = fx.QualityHigh
	}
	g.starfield.SetQuality(g.quality)
	g.bursts.SetQuality(g.quality)
	g.setStatus("quality: " + g.quality.String())
}

func (g *Game) copyReport() {
	if err := setClipboardText(fx.Report(g.starfield, g.bursts)); err != nil {
		log.Printf("clipboard: %v", err)
		g.setStatus("clipboard unavailable")
		return
	}
	g.setStatus("frame report copied")
}

func (g *Game) setStatus(s string) {
	g.status = s
	g.statusTicks = statusTicks
}

// Draw presents the starfield output, then the confetti layer, then the HUD.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.Black)
	g.present(screen, g.starfield.Output())
	g.present(screen, g.bursts.Canvas())
	if g.showHUD {
		g.drawHUD(screen)
	}
}

// present blits an engine surface to the device-scaled screen.
func (g *Game) present(screen *ebiten.Image, c fx.Canvas) {
	src, ok := c.(*canvas)
	if !ok {
		return
	}
	k := g.vp.DeviceScale / src.scale
	opts := &ebiten.DrawImageOptions{Filter: ebiten.FilterLinear}
	opts.GeoM.Scale(k, k)
	screen.DrawImage(src.img, opts)
}

// Layout implements ebiten.Game.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	w, h := g.LayoutF(float64(outsideWidth), float64(outsideHeight))
	return int(w), int(h)
}

// LayoutF reports a device-scaled screen and records the logical size for
// the next Update to apply.
func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	s := ebiten.Monitor().DeviceScaleFactor()
	g.layout = fx.Viewport{Width: outsideWidth, Height: outsideHeight, DeviceScale: s}
	return outsideWidth * s, outsideHeight * s
}
