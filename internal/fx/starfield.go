package fx

import (
	"math/rand"
	"time"
)

// compositorLayers are the starfield's owned surfaces.
type compositorLayers struct {
	output   Canvas // presented
	stars    Canvas // additive star marks, rebuilt every rendered tick
	feedback Canvas // previous presented frame, high quality only
}

// Starfield is the perspective starfield engine. One instance per surface;
// all state is mutated from its own frame callback or between frames.
type Starfield struct {
	backend Backend
	frames  Scheduler
	rng     *rand.Rand

	vp      Viewport
	quality Quality
	profile qualityProfile
	cx, cy  float64 // viewport half-size in logical pixels
	scale   float64 // canvas device scale

	stars       []StarParticle
	camera      CameraState
	warp        WarpState
	nebulaAngle float64

	layers  compositorLayers
	flare   Sprite
	nebulae []Sprite

	// renderParity flips on every callback in throttled mode; frames render
	// only when it is true.
	renderParity bool

	frameID FrameID
	paused  bool
	inTick  bool
	pending *resizeRequest

	stats FrameStats
}

type resizeRequest struct {
	vp      Viewport
	quality Quality
}

// StarfieldOption configures a Starfield at construction.
type StarfieldOption func(*Starfield)

// WithStarfieldSeed makes star placement deterministic.
func WithStarfieldSeed(seed int64) StarfieldOption {
	return func(s *Starfield) {
		s.rng = rand.New(rand.NewSource(seed)) // #nosec G404 -- cosmetic only
	}
}

// WithFlare supplies the optional lens-flare sprite.
func WithFlare(flare Sprite) StarfieldOption {
	return func(s *Starfield) { s.flare = flare }
}

// WithNebulae supplies optional nebula textures, in preference order.
func WithNebulae(imgs []Sprite) StarfieldOption {
	return func(s *Starfield) { s.nebulae = compactSprites(imgs) }
}

// NewStarfield builds the engine, sizes it for vp and starts its frame chain.
func NewStarfield(vp Viewport, q Quality, backend Backend, frames Scheduler, opts ...StarfieldOption) *Starfield {
	s := &Starfield{
		backend: backend,
		frames:  frames,
		camera:  CameraState{RollSpeed: baseRollSpeed},
		warp:    newWarpState(),
	}
	for _, o := range opts {
		o(s)
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(time.Now().UnixNano())) // #nosec G404 -- cosmetic only
	}
	s.applyResize(vp, q)
	s.frameID = s.frames.RequestFrame(s.tick)
	return s
}

// Resize reallocates buffers and particle density for a new viewport or
// quality mode. It is idempotent. A resize requested from inside a frame
// callback takes effect at the end of that tick.
func (s *Starfield) Resize(vp Viewport, q Quality) {
	if s.inTick {
		s.pending = &resizeRequest{vp: vp, quality: q}
		return
	}
	s.applyResize(vp, q)
}

// SetQuality switches mode, keeping the current viewport.
func (s *Starfield) SetQuality(q Quality) {
	s.Resize(s.vp, q)
}

func (s *Starfield) applyResize(vp Viewport, q Quality) {
	vp = vp.sanitize()
	s.vp = vp
	s.quality = q
	s.profile = profileFor(q)
	s.cx, s.cy = vp.Width/2, vp.Height/2
	s.camera.FieldOfView = s.profile.fieldOfView
	s.scale = s.profile.canvasScale(vp)

	w, h := int(vp.Width), int(vp.Height)
	s.layers.output = s.ensureCanvas(s.layers.output, w, h)
	s.layers.stars = s.ensureCanvas(s.layers.stars, w, h)
	if s.profile.keepFeedback {
		s.layers.feedback = s.ensureCanvas(s.layers.feedback, w, h)
	} else if s.layers.feedback != nil {
		s.layers.feedback.Dispose()
		s.layers.feedback = nil
	}
	s.rebuild(TargetStarCount(vp.Width, vp.Height, q))
}

// ensureCanvas reuses c when its size and scale already match.
func (s *Starfield) ensureCanvas(c Canvas, w, h int) Canvas {
	if c != nil {
		cw, ch := c.Size()
		if cw == w && ch == h && c.Scale() == s.scale {
			return c
		}
		c.Dispose()
	}
	return s.backend.NewCanvas(w, h, s.scale)
}

// TriggerWarp boosts speed to intensity for durationMs, replacing any warp
// in progress. A non-positive duration resets to cruising speed.
func (s *Starfield) TriggerWarp(durationMs, intensity float64) {
	s.warp.trigger(durationMs, intensity)
}

// Pause cancels the pending frame callback.
func (s *Starfield) Pause() {
	s.paused = true
	s.frames.CancelFrame(s.frameID)
	s.frameID = 0
}

// Resume restarts the frame chain if it is not already scheduled.
func (s *Starfield) Resume() {
	s.paused = false
	if s.frameID == 0 {
		s.frameID = s.frames.RequestFrame(s.tick)
	}
}

// SetVisible pauses while the host surface is hidden.
func (s *Starfield) SetVisible(visible bool) {
	if visible {
		s.Resume()
	} else {
		s.Pause()
	}
}

// SetFlare replaces the lens-flare sprite; nil disables it.
func (s *Starfield) SetFlare(flare Sprite) { s.flare = flare }

// SetNebulae replaces the nebula textures.
func (s *Starfield) SetNebulae(imgs []Sprite) { s.nebulae = compactSprites(imgs) }

// Stars exposes the particle store for inspection. Callers must not retain it.
func (s *Starfield) Stars() []StarParticle { return s.stars }

// Camera returns the camera state.
func (s *Starfield) Camera() CameraState { return s.camera }

// Warp returns the warp state.
func (s *Starfield) Warp() WarpState { return s.warp }

// Quality returns the active mode.
func (s *Starfield) Quality() Quality { return s.quality }

// Viewport returns the sanitized viewport.
func (s *Starfield) Viewport() Viewport { return s.vp }

// Stats returns frame counters.
func (s *Starfield) Stats() FrameStats { return s.stats }

// Output is the presented surface.
func (s *Starfield) Output() Canvas { return s.layers.output }

// Scheduled reports whether a frame callback is pending.
func (s *Starfield) Scheduled() bool { return s.frameID != 0 }

// tick is the frame callback. Camera and warp advance every callback; star
// update and compositing run every callback in high quality and every other
// callback in low quality.
func (s *Starfield) tick() {
	s.frameID = 0
	s.inTick = true
	s.stats.Scheduled++

	s.step()
	if s.shouldRender() {
		s.updateStars()
		s.composite()
		s.stats.Rendered++
	}

	s.inTick = false
	if s.pending != nil {
		r := *s.pending
		s.pending = nil
		s.applyResize(r.vp, r.quality)
	}
	if !s.paused {
		s.frameID = s.frames.RequestFrame(s.tick)
	}
}

// step advances warp easing, camera roll and the nebula angle.
func (s *Starfield) step() {
	s.warp.ease()
	s.camera.advance(s.warp.Speed)
	s.nebulaAngle += nebulaRate * (0.6 + (s.warp.Speed-1)*0.2)
}

func (s *Starfield) shouldRender() bool {
	if !s.profile.throttle {
		return true
	}
	s.renderParity = !s.renderParity
	return s.renderParity
}

func compactSprites(imgs []Sprite) []Sprite {
	out := make([]Sprite, 0, len(imgs))
	for _, img := range imgs {
		if img != nil {
			out = append(out, img)
		}
	}
	return out
}
