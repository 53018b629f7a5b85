// Package fx holds the starfield and burst animation engines. Engines draw
// through the Canvas interface and are driven by a Scheduler.
package fx

import (
	"image"
	"image/color"
)

// Blend selects how a draw operation is composited onto its destination.
type Blend int

const (
	BlendSourceOver Blend = iota
	BlendLighter          // additive
	BlendScreen           // 1 - (1-src)(1-dst)
)

// Point is a position in logical (pre device-scale) pixels.
type Point struct {
	X, Y float64
}

// Radial describes a radial gradient fill. Distances below R0 take Inner,
// beyond R1 take Outer, linear in between. When ClipR > 0 the fill is
// restricted to the circle (ClipX, ClipY, ClipR); otherwise the whole
// canvas is covered.
type Radial struct {
	X, Y   float64
	R0, R1 float64
	Inner  color.NRGBA
	Outer  color.NRGBA
	ClipX  float64
	ClipY  float64
	ClipR  float64
	Blend  Blend
}

// LayerOp controls how one canvas is composited onto another.
// Scale is applied about the destination centre; zero means 1.
type LayerOp struct {
	OffsetX   float64
	OffsetY   float64
	Scale     float64
	Alpha     float64
	HueRotate float64 // radians
	Saturate  float64 // multiplier; zero means unchanged
	Blend     Blend
}

// SpriteOp places a decorative sprite centred on (X, Y), scaled so its
// longest edge spans Size logical pixels.
type SpriteOp struct {
	X, Y     float64
	Size     float64
	Rotation float64
	Alpha    float64
	Blend    Blend
}

// Sprite is an opaque decorative image handle supplied by an external loader.
// *ebiten.Image satisfies it.
type Sprite interface {
	Bounds() image.Rectangle
}

// Canvas is a drawable surface. Coordinates are logical pixels; the
// implementation applies its device scale.
type Canvas interface {
	Size() (w, h int)
	Scale() float64
	Clear()
	FillRect(x, y, w, h float64, c color.NRGBA, blend Blend)
	StrokeLine(x0, y0, x1, y1, width float64, c color.NRGBA, blend Blend)
	FillPolygon(pts []Point, c color.NRGBA, blend Blend)
	FillRadial(r Radial)
	DrawCanvas(src Canvas, op LayerOp)
	DrawSprite(s Sprite, op SpriteOp)
	Dispose()
}

// Backend allocates canvases. w and h are logical sizes; the physical
// backing store is floor(w*scale) x floor(h*scale).
type Backend interface {
	NewCanvas(w, h int, scale float64) Canvas
}

// PhysicalSize returns the backing-store dimensions for a logical size.
func PhysicalSize(w, h int, scale float64) (int, int) {
	pw := int(float64(w) * scale)
	ph := int(float64(h) * scale)
	if pw < 1 {
		pw = 1
	}
	if ph < 1 {
		ph = 1
	}
	return pw, ph
}
