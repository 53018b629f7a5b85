package fx

import (
	"image/color"
	"math"
	"math/rand"
	"time"
)

const (
	defaultSpread  = math.Pi / 2
	defaultGravity = 0.35
	minBurstLife   = 120.0
	burstLifeRange = 40.0
	fadeTicks      = 140.0 // particles fade linearly over their last fadeTicks
	maxBurstCount  = 2000
)

// BurstParticle is a confetti piece. It lives until Life reaches zero.
type BurstParticle struct {
	X, Y     float64
	VX, VY   float64
	Gravity  float64
	Life     float64
	Color    color.NRGBA
	Size     float64
	Rotation float64
	Spin     float64
}

// BurstOptions tunes a burst. Zero fields take defaults.
type BurstOptions struct {
	Count   int     // default 30 in low quality, 80 in high
	Spread  float64 // emission half-angle around straight up, radians
	Gravity float64 // downward acceleration per tick
	Power   float64 // initial speed scale; default 6 low, 9 high
}

// BurstEngine owns the confetti particles and one-shot poof markers. It
// schedules frames only while it has something to draw.
type BurstEngine struct {
	backend Backend
	frames  Scheduler
	rng     *rand.Rand

	vp      Viewport
	quality Quality
	canvas  Canvas

	particles []BurstParticle
	poofs     []poof

	frameID FrameID
	hidden  bool

	stats FrameStats
}

// BurstOption configures a BurstEngine at construction.
type BurstOption func(*BurstEngine)

// WithBurstSeed makes bursts deterministic.
func WithBurstSeed(seed int64) BurstOption {
	return func(b *BurstEngine) {
		b.rng = rand.New(rand.NewSource(seed)) // #nosec G404 -- cosmetic only
	}
}

// NewBurstEngine creates an idle engine sized for vp.
func NewBurstEngine(vp Viewport, q Quality, backend Backend, frames Scheduler, opts ...BurstOption) *BurstEngine {
	b := &BurstEngine{backend: backend, frames: frames}
	for _, o := range opts {
		o(b)
	}
	if b.rng == nil {
		b.rng = rand.New(rand.NewSource(time.Now().UnixNano())) // #nosec G404 -- cosmetic only
	}
	b.Resize(vp, q)
	return b
}

// Resize reallocates the drawing surface. The burst canvas always uses up
// to 2x device scale, independent of quality.
func (b *BurstEngine) Resize(vp Viewport, q Quality) {
	vp = vp.sanitize()
	b.vp = vp
	b.quality = q
	w, h := int(vp.Width), int(vp.Height)
	scale := math.Min(2, vp.DeviceScale)
	if b.canvas != nil {
		cw, ch := b.canvas.Size()
		if cw == w && ch == h && b.canvas.Scale() == scale {
			return
		}
		b.canvas.Dispose()
	}
	b.canvas = b.backend.NewCanvas(w, h, scale)
}

// SetQuality changes burst defaults for subsequent spawns.
func (b *BurstEngine) SetQuality(q Quality) {
	b.quality = q
}

func (b *BurstEngine) randRange(lo, hi float64) float64 {
	return lo + b.rng.Float64()*(hi-lo)
}

// SpawnBurst emits particles from (x, y) in a cone around straight up and
// makes sure the loop is running.
func (b *BurstEngine) SpawnBurst(x, y float64, opts BurstOptions) {
	p := profileFor(b.quality)
	count := opts.Count
	if count <= 0 {
		count = p.burstCount
	}
	if count > maxBurstCount {
		count = maxBurstCount
	}
	spread := opts.Spread
	if !(spread > 0) {
		spread = defaultSpread
	}
	gravity := opts.Gravity
	if gravity == 0 || math.IsNaN(gravity) {
		gravity = defaultGravity
	}
	power := opts.Power
	if !(power > 0) {
		power = p.burstPower
	}

	for i := 0; i < count; i++ {
		angle := -math.Pi/2 + (b.rng.Float64()-0.5)*spread*2
		speed := power * b.randRange(0.4, 1.2)
		b.particles = append(b.particles, BurstParticle{
			X:        x,
			Y:        y,
			VX:       math.Cos(angle) * speed,
			VY:       math.Sin(angle) * speed,
			Gravity:  gravity * b.randRange(0.8, 1.2),
			Life:     minBurstLife + b.rng.Float64()*burstLifeRange,
			Color:    burstPalette[b.rng.Intn(len(burstPalette))],
			Size:     b.randRange(3, 7),
			Rotation: b.rng.Float64() * math.Pi,
			Spin:     (b.rng.Float64() - 0.5) * 0.3,
		})
	}
	b.stats.Bursts++
	b.ensureRunning()
}

// ensureRunning registers the frame callback unless one is pending or the
// surface is hidden.
func (b *BurstEngine) ensureRunning() {
	if b.frameID != 0 || b.hidden {
		return
	}
	b.frameID = b.frames.RequestFrame(b.step)
}

func (b *BurstEngine) hasWork() bool {
	return len(b.particles) > 0 || len(b.poofs) > 0
}

// Pause cancels the pending callback and clears the canvas so no stale
// confetti reappears later. Particles are kept.
func (b *BurstEngine) Pause() {
	b.hidden = true
	b.frames.CancelFrame(b.frameID)
	b.frameID = 0
	b.canvas.Clear()
}

// Resume restarts the loop only if particles or poofs remain.
func (b *BurstEngine) Resume() {
	b.hidden = false
	if b.hasWork() {
		b.ensureRunning()
	}
}

// SetVisible pauses while the host surface is hidden.
func (b *BurstEngine) SetVisible(visible bool) {
	if visible {
		b.Resume()
	} else {
		b.Pause()
	}
}

// Live returns the number of live particles.
func (b *BurstEngine) Live() int { return len(b.particles) }

// Particles exposes the live list for inspection. Callers must not retain it.
func (b *BurstEngine) Particles() []BurstParticle { return b.particles }

// Running reports whether a frame callback is pending.
func (b *BurstEngine) Running() bool { return b.frameID != 0 }

// Canvas is the burst drawing surface, presented above the starfield.
func (b *BurstEngine) Canvas() Canvas { return b.canvas }

// Stats returns frame counters.
func (b *BurstEngine) Stats() FrameStats { return b.stats }

// step is the frame callback: drop dead particles, integrate and draw the
// rest, stop when nothing is left.
func (b *BurstEngine) step() {
	b.frameID = 0
	b.stats.Scheduled++
	b.canvas.Clear()

	live := b.particles[:0]
	for _, p := range b.particles {
		if p.Life > 0 {
			live = append(live, p)
		} else {
			b.stats.Retired++
		}
	}
	b.particles = live

	for i := range b.particles {
		p := &b.particles[i]
		p.VY += p.Gravity
		p.X += p.VX
		p.Y += p.VY
		p.Rotation += p.Spin
		p.Life--
		b.drawParticle(p)
	}
	b.stepPoofs()
	b.stats.Rendered++

	if !b.hasWork() {
		return
	}
	b.frameID = b.frames.RequestFrame(b.step)
}

// drawParticle draws a rotated 2:1 rectangle fading over its last ticks.
func (b *BurstEngine) drawParticle(p *BurstParticle) {
	alpha := clamp01(p.Life / fadeTicks)
	if alpha == 0 {
		return
	}
	cr, sr := math.Cos(p.Rotation), math.Sin(p.Rotation)
	hw, hh := p.Size, p.Size*0.5
	corners := [4]Point{{-hw, -hh}, {hw, -hh}, {hw, hh}, {-hw, hh}}
	var pts [4]Point
	for i, c := range corners {
		pts[i] = Point{
			X: p.X + c.X*cr - c.Y*sr,
			Y: p.Y + c.X*sr + c.Y*cr,
		}
	}
	b.canvas.FillPolygon(pts[:], withAlpha(p.Color, alpha), BlendSourceOver)
}
