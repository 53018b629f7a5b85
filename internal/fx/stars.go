package fx

import "math"

// Depth bounds. A star at or beyond recycleDepth is respawned in the same tick.
const (
	minDepth        = 0.05
	spawnMaxDepth   = 1.3
	recycleMaxDepth = 1.0
	recycleDepth    = 1.5
)

// StarParticle is one persistent star. X and Y live in a viewport-centred
// frame; HasPrev is false right after (re)spawn.
type StarParticle struct {
	X, Y    float64
	Z       float64
	PrevX   float64
	PrevY   float64
	HasPrev bool
	Hue     float64
}

func (s *Starfield) randRange(a, b float64) float64 {
	return a + s.rng.Float64()*(b-a)
}

// newStar places a star anywhere in the viewport, some already deep so the
// first frames are not empty in the middle.
func (s *Starfield) newStar() StarParticle {
	return StarParticle{
		X:   s.randRange(-s.cx, s.cx),
		Y:   s.randRange(-s.cy, s.cy),
		Z:   s.randRange(minDepth, spawnMaxDepth),
		Hue: s.randRange(210, 260) + s.randRange(-12, 12),
	}
}

// recycle respawns a star that crossed recycleDepth.
func (s *Starfield) recycle(st *StarParticle) {
	st.X = s.randRange(-s.cx, s.cx)
	st.Y = s.randRange(-s.cy, s.cy)
	st.Z = s.randRange(minDepth, recycleMaxDepth)
	st.HasPrev = false
	s.stats.Recycled++
}

// rebuild grows or shrinks the store, keeping as many stars as possible.
func (s *Starfield) rebuild(n int) {
	if n <= len(s.stars) {
		s.stars = s.stars[:n]
		return
	}
	for len(s.stars) < n {
		s.stars = append(s.stars, s.newStar())
	}
}

// updateStars advances every star and redraws the star layer.
func (s *Starfield) updateStars() {
	layer := s.layers.stars
	layer.Clear()
	speed := s.warp.Speed
	for i := range s.stars {
		st := &s.stars[i]
		st.Z += baseDepthRate * speed
		if st.Z >= recycleDepth {
			s.recycle(st)
			continue
		}
		sx, sy := Project(st.X, st.Y, st.Z, s.camera.Roll, s.camera.FieldOfView, s.cx, s.cy)
		if s.profile.postEffects {
			s.drawStreak(layer, st, sx, sy, speed)
		} else {
			s.drawDot(layer, st, sx, sy)
		}
		st.PrevX, st.PrevY, st.HasPrev = sx, sy, true
		s.stats.StarsDrawn++
	}
}

// starBrightness grows with depth.
func starBrightness(z float64) float64 {
	return math.Max(0.25, 0.45+z*0.35)
}

// drawDot is the cheap low-quality mark: a small square plus a short trail
// back to last frame's position.
func (s *Starfield) drawDot(layer Canvas, st *StarParticle, sx, sy float64) {
	b := starBrightness(st.Z)
	size := clamp(0.9+st.Z*1.2, 1.4, 3.0)
	layer.FillRect(sx, sy, size, size, withAlpha(starWhite, math.Min(1, b+0.2)), BlendLighter)
	if st.HasPrev {
		layer.StrokeLine(sx, sy, st.PrevX, st.PrevY, math.Max(0.7, size*0.5),
			withAlpha(starWhite, math.Min(0.8, 0.25+b*0.4)), BlendLighter)
	}
}

// drawStreak is the high-quality mark: a tinted streak whose length grows
// with warp speed and depth.
func (s *Starfield) drawStreak(layer Canvas, st *StarParticle, sx, sy, speed float64) {
	b := starBrightness(st.Z)
	if !st.HasPrev {
		layer.FillRect(sx, sy, 1.4, 1.4, withAlpha(starCore, math.Min(1, b+0.1)), BlendLighter)
		return
	}
	boost := math.Min(2.2, 1.0+(speed-1)*0.9)
	width := clamp(st.Z*(1.2+boost*0.9), 0.9, 3.5)
	tx, ty := trailEnd(sx, sy, st.PrevX, st.PrevY, speed, st.Z)
	layer.StrokeLine(sx, sy, tx, ty, width, hsla(st.Hue, 0.9, 0.7*b, 0.95), BlendLighter)
}

// trailEnd extends the last frame's motion vector ahead of the star.
// The multiplier is capped at 4.5 so fast warps cannot produce runaway
// geometry.
func trailEnd(sx, sy, px, py, speed, z float64) (float64, float64) {
	k := TrailFactor(speed, z)
	return sx + (sx-px)*k, sy + (sy-py)*k
}

// TrailFactor is the streak length multiplier for a speed and depth.
func TrailFactor(speed, z float64) float64 {
	return math.Min(4.5, 0.9+speed*0.9+0.4+z*0.8)
}
