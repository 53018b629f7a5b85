package game

import (
	"image/color"
	"log"
	"math"

	"github.com/Garsondee/Star-Warp/internal/fx"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/colorm"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// blendScreen is 1 - (1-src)(1-dst) on premultiplied colour.
var blendScreen = ebiten.Blend{
	BlendFactorSourceRGB:        ebiten.BlendFactorOne,
	BlendFactorSourceAlpha:      ebiten.BlendFactorOne,
	BlendFactorDestinationRGB:   ebiten.BlendFactorOneMinusSourceColor,
	BlendFactorDestinationAlpha: ebiten.BlendFactorOneMinusSourceAlpha,
	BlendOperationRGB:           ebiten.BlendOperationAdd,
	BlendOperationAlpha:         ebiten.BlendOperationAdd,
}

func toEbitenBlend(b fx.Blend) ebiten.Blend {
	switch b {
	case fx.BlendLighter:
		return ebiten.BlendLighter
	case fx.BlendScreen:
		return blendScreen
	}
	return ebiten.BlendSourceOver
}

// backend allocates ebiten-backed canvases. The radial-gradient shader is
// compiled once; if compilation fails radials fall back to stacked circles.
type backend struct {
	radial *ebiten.Shader
}

func newBackend() *backend {
	b := &backend{}
	sh, err := ebiten.NewShader([]byte(radialShaderSrc))
	if err != nil {
		log.Printf("radial shader unavailable, using circle fallback: %v", err)
		return b
	}
	b.radial = sh
	return b
}

// NewCanvas implements fx.Backend.
func (b *backend) NewCanvas(w, h int, scale float64) fx.Canvas {
	pw, ph := fx.PhysicalSize(w, h, scale)
	return &canvas{
		img:     ebiten.NewImage(pw, ph),
		w:       w,
		h:       h,
		scale:   scale,
		backend: b,
	}
}

// canvas is an fx.Canvas over an offscreen ebiten image. All logical
// coordinates are multiplied by scale before drawing.
type canvas struct {
	img     *ebiten.Image
	w, h    int
	scale   float64
	backend *backend
	path    vector.Path
}

func (c *canvas) Size() (int, int) { return c.w, c.h }
func (c *canvas) Scale() float64   { return c.scale }
func (c *canvas) Clear()           { c.img.Clear() }

func (c *canvas) Dispose() {
	c.img.Deallocate()
}

func (c *canvas) px(v float64) float32 { return float32(v * c.scale) }

func (c *canvas) fillPath(col color.NRGBA, blend fx.Blend) {
	op := &vector.DrawPathOptions{AntiAlias: true, Blend: toEbitenBlend(blend)}
	op.ColorScale.ScaleWithColor(col)
	vector.FillPath(c.img, &c.path, &vector.FillOptions{}, op)
}

func (c *canvas) FillRect(x, y, w, h float64, col color.NRGBA, blend fx.Blend) {
	c.path = vector.Path{}
	c.path.MoveTo(c.px(x), c.px(y))
	c.path.LineTo(c.px(x+w), c.px(y))
	c.path.LineTo(c.px(x+w), c.px(y+h))
	c.path.LineTo(c.px(x), c.px(y+h))
	c.path.Close()
	c.fillPath(col, blend)
}

func (c *canvas) StrokeLine(x0, y0, x1, y1, width float64, col color.NRGBA, blend fx.Blend) {
	c.path = vector.Path{}
	c.path.MoveTo(c.px(x0), c.px(y0))
	c.path.LineTo(c.px(x1), c.px(y1))
	op := &vector.DrawPathOptions{AntiAlias: true, Blend: toEbitenBlend(blend)}
	op.ColorScale.ScaleWithColor(col)
	vector.StrokePath(c.img, &c.path, &vector.StrokeOptions{Width: c.px(width), LineCap: vector.LineCapRound}, op)
}

func (c *canvas) FillPolygon(pts []fx.Point, col color.NRGBA, blend fx.Blend) {
	if len(pts) < 3 {
		return
	}
	c.path = vector.Path{}
	c.path.MoveTo(c.px(pts[0].X), c.px(pts[0].Y))
	for _, p := range pts[1:] {
		c.path.LineTo(c.px(p.X), c.px(p.Y))
	}
	c.path.Close()
	c.fillPath(col, blend)
}

func (c *canvas) FillRadial(r fx.Radial) {
	if c.backend.radial == nil {
		c.fillRadialCircles(r)
		return
	}
	pw, ph := c.img.Bounds().Dx(), c.img.Bounds().Dy()
	op := &ebiten.DrawRectShaderOptions{Blend: toEbitenBlend(r.Blend)}
	op.Uniforms = map[string]any{
		"Center": []float32{c.px(r.X), c.px(r.Y)},
		"Radii":  []float32{c.px(r.R0), c.px(r.R1)},
		"Inner":  premultiplied(r.Inner),
		"Outer":  premultiplied(r.Outer),
		"Clip":   []float32{c.px(r.ClipX), c.px(r.ClipY), c.px(r.ClipR)},
	}
	c.img.DrawRectShader(pw, ph, c.backend.radial, op)
}

// fillRadialCircles approximates a clipped radial gradient with
// concentric translucent circles, outermost first.
func (c *canvas) fillRadialCircles(r fx.Radial) {
	radius := r.ClipR
	if radius <= 0 {
		radius = r.R1
	}
	const rings = 8
	blend := toEbitenBlend(r.Blend)
	for i := 0; i < rings; i++ {
		t := float64(i) / rings
		rr := radius * (1 - t)
		col := lerpNRGBA(r.Outer, r.Inner, t)
		col.A /= rings / 2
		c.path = vector.Path{}
		c.path.Arc(c.px(r.X), c.px(r.Y), c.px(rr), 0, 2*math.Pi, vector.Clockwise)
		c.path.Close()
		op := &vector.DrawPathOptions{AntiAlias: true, Blend: blend}
		op.ColorScale.ScaleWithColor(col)
		vector.FillPath(c.img, &c.path, &vector.FillOptions{}, op)
	}
}

func (c *canvas) DrawCanvas(src fx.Canvas, op fx.LayerOp) {
	sc, ok := src.(*canvas)
	if !ok {
		return
	}
	var geo ebiten.GeoM
	if op.Scale != 0 && op.Scale != 1 {
		cx := float64(c.img.Bounds().Dx()) / 2
		cy := float64(c.img.Bounds().Dy()) / 2
		geo.Translate(-cx, -cy)
		geo.Scale(op.Scale, op.Scale)
		geo.Translate(cx, cy)
	}
	geo.Translate(op.OffsetX*c.scale, op.OffsetY*c.scale)

	if op.HueRotate != 0 || (op.Saturate != 0 && op.Saturate != 1) {
		sat := op.Saturate
		if sat == 0 {
			sat = 1
		}
		var cm colorm.ColorM
		cm.ChangeHSV(op.HueRotate, sat, 1)
		cm.Scale(1, 1, 1, op.Alpha)
		colorm.DrawImage(c.img, sc.img, cm, &colorm.DrawImageOptions{
			GeoM:  geo,
			Blend: toEbitenBlend(op.Blend),
		})
		return
	}

	dio := &ebiten.DrawImageOptions{GeoM: geo, Blend: toEbitenBlend(op.Blend)}
	dio.ColorScale.ScaleAlpha(float32(op.Alpha))
	c.img.DrawImage(sc.img, dio)
}

func (c *canvas) DrawSprite(s fx.Sprite, op fx.SpriteOp) {
	img, ok := s.(*ebiten.Image)
	if !ok || img == nil {
		return
	}
	b := img.Bounds()
	long := math.Max(float64(b.Dx()), float64(b.Dy()))
	if long <= 0 {
		return
	}
	k := op.Size * c.scale / long
	dio := &ebiten.DrawImageOptions{Blend: toEbitenBlend(op.Blend)}
	dio.GeoM.Translate(-float64(b.Dx())/2, -float64(b.Dy())/2)
	dio.GeoM.Scale(k, k)
	dio.GeoM.Rotate(op.Rotation)
	dio.GeoM.Translate(op.X*c.scale, op.Y*c.scale)
	dio.ColorScale.ScaleAlpha(float32(op.Alpha))
	dio.Filter = ebiten.FilterLinear
	c.img.DrawImage(img, dio)
}

func premultiplied(c color.NRGBA) []float32 {
	a := float32(c.A) / 255
	return []float32{float32(c.R) / 255 * a, float32(c.G) / 255 * a, float32(c.B) / 255 * a, a}
}

func lerpNRGBA(a, b color.NRGBA, t float64) color.NRGBA {
	l := func(x, y uint8) uint8 { return uint8(float64(x) + (float64(y)-float64(x))*t) }
	return color.NRGBA{R: l(a.R, b.R), G: l(a.G, b.G), B: l(a.B, b.B), A: l(a.A, b.A)}
}
