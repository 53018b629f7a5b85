package fx

import (
	"image/color"
	"math"
)

// planet is a large decorative gradient blob orbiting the viewport centre.
type planet struct {
	tint   color.NRGBA
	radius float64 // orbit radius as a fraction of the viewport
	size   float64 // blob radius as a fraction of the longest edge
	offset float64 // phase
	spin   float64 // orbit rate relative to the nebula angle
}

var planets = [...]planet{
	{tint: planetBlue, radius: 0.42, size: 0.36, offset: 0.2, spin: 0.08},
	{tint: planetGold, radius: 0.25, size: 0.22, offset: 2.1, spin: -0.06},
	{tint: planetMint, radius: 0.55, size: 0.28, offset: 4.0, spin: 0.04},
}

const chromaHueShift = 24 * math.Pi / 180

// composite builds the presented frame from the star layer.
func (s *Starfield) composite() {
	out := s.layers.output
	out.Clear()

	if s.profile.postEffects {
		s.drawNebulae(out)
	}
	s.drawPlanets(out)
	out.DrawCanvas(s.layers.stars, LayerOp{Alpha: 1, Blend: BlendLighter})

	if s.profile.postEffects {
		s.drawChromaticSpread(out)
		s.drawMotionSmear(out)
		if s.warp.Speed > bloomThreshold {
			s.drawBloom(out)
		}
	}

	s.drawVignette(out)

	if s.profile.keepFeedback && s.layers.feedback != nil {
		s.layers.feedback.Clear()
		s.layers.feedback.DrawCanvas(out, LayerOp{Alpha: 1, Blend: BlendSourceOver})
	}
}

func (s *Starfield) longEdge() float64 {
	return math.Max(s.vp.Width, s.vp.Height)
}

func (s *Starfield) drawPlanets(out Canvas) {
	a := s.profile.planetAlpha
	w, h := s.vp.Width, s.vp.Height
	for _, p := range planets {
		ang := s.nebulaAngle*p.spin + p.offset
		bx := s.cx + math.Cos(ang)*p.radius*w
		by := s.cy + math.Sin(ang)*p.radius*h
		r := s.longEdge() * p.size
		out.FillRadial(Radial{
			X:     bx - r*0.25,
			Y:     by - r*0.25,
			R0:    r * 0.1,
			R1:    r,
			Inner: withAlpha(p.tint, a*2),
			Outer: withAlpha(p.tint, 0),
			ClipX: bx,
			ClipY: by,
			ClipR: r,
			Blend: BlendScreen,
		})
	}
}

// drawNebulae lays the first nebula texture behind everything, slowly
// turning with the nebula angle.
func (s *Starfield) drawNebulae(out Canvas) {
	if len(s.nebulae) == 0 {
		return
	}
	out.DrawSprite(s.nebulae[0], SpriteOp{
		X:        s.cx,
		Y:        s.cy,
		Size:     s.longEdge() * 1.3,
		Rotation: s.nebulaAngle * 0.05,
		Alpha:    0.12,
		Blend:    BlendScreen,
	})
}

// drawChromaticSpread adds two hue-shifted copies of the star layer,
// pushed apart horizontally as speed rises.
func (s *Starfield) drawChromaticSpread(out Canvas) {
	shift := math.Min(5, 0.5+(s.warp.Speed-1)*1.0)
	for _, side := range [2]float64{1, -1} {
		out.DrawCanvas(s.layers.stars, LayerOp{
			OffsetX:   shift * side,
			Alpha:     0.15,
			HueRotate: chromaHueShift * side,
			Saturate:  1.2,
			Blend:     BlendLighter,
		})
	}
}

// drawMotionSmear screens last frame's output back in, slightly enlarged.
func (s *Starfield) drawMotionSmear(out Canvas) {
	if s.layers.feedback == nil {
		return
	}
	over := s.warp.Speed - 1
	alpha := clamp(over*0.04, 0, 0.22)
	if alpha == 0 {
		return
	}
	out.DrawCanvas(s.layers.feedback, LayerOp{
		Scale: 1 + math.Min(0.08, over*0.015),
		Alpha: alpha,
		Blend: BlendScreen,
	})
}

// drawBloom washes the centre with light and spins the optional flare,
// both growing with how far speed is past bloomThreshold.
func (s *Starfield) drawBloom(out Canvas) {
	over := s.warp.Speed - 1
	a := math.Min(0.35, over*0.04)
	edge := s.longEdge()
	out.FillRadial(Radial{
		X:     s.cx,
		Y:     s.cy,
		R0:    10,
		R1:    edge * 0.4,
		Inner: withAlpha(color.NRGBA{R: 255, G: 255, B: 255}, 0.15+a),
		Outer: transparent,
		ClipX: s.cx,
		ClipY: s.cy,
		ClipR: edge * 0.5,
		Blend: BlendLighter,
	})
	if s.flare == nil {
		return
	}
	k := 0.7 + math.Min(1.2, over*0.15)
	out.DrawSprite(s.flare, SpriteOp{
		X:        s.cx,
		Y:        s.cy,
		Size:     edge * 0.6 * k,
		Rotation: s.nebulaAngle * 0.2,
		Alpha:    math.Min(0.6, 0.25+over*0.08),
		Blend:    BlendLighter,
	})
}

func (s *Starfield) drawVignette(out Canvas) {
	edge := s.longEdge()
	out.FillRadial(Radial{
		X:     s.cx,
		Y:     s.cy,
		R0:    edge * 0.2,
		R1:    edge * 0.92,
		Inner: transparent,
		Outer: color.NRGBA{A: alphaByte(0.35)},
		Blend: BlendSourceOver,
	})
}
