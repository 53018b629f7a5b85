package fx

import "image/color"

// CountingCanvas is a headless Canvas that records how many operations of
// each kind were issued. It is used by tests and the headless report.
type CountingCanvas struct {
	W, H  int
	scale float64

	Clears   int
	Rects    int
	Lines    int
	Polygons int
	Radials  int
	Layers   int
	Sprites  int
	Disposed bool

	LastLayer  LayerOp
	LastSprite SpriteOp
	LastRadial Radial
}

// Size implements Canvas.
func (c *CountingCanvas) Size() (int, int) { return c.W, c.H }

// Scale implements Canvas.
func (c *CountingCanvas) Scale() float64 { return c.scale }

// Clear implements Canvas.
func (c *CountingCanvas) Clear() { c.Clears++ }

// FillRect implements Canvas.
func (c *CountingCanvas) FillRect(_, _, _, _ float64, _ color.NRGBA, _ Blend) { c.Rects++ }

// StrokeLine implements Canvas.
func (c *CountingCanvas) StrokeLine(_, _, _, _, _ float64, _ color.NRGBA, _ Blend) { c.Lines++ }

// FillPolygon implements Canvas.
func (c *CountingCanvas) FillPolygon(_ []Point, _ color.NRGBA, _ Blend) { c.Polygons++ }

// FillRadial implements Canvas.
func (c *CountingCanvas) FillRadial(r Radial) {
	c.Radials++
	c.LastRadial = r
}

// DrawCanvas implements Canvas.
func (c *CountingCanvas) DrawCanvas(_ Canvas, op LayerOp) {
	c.Layers++
	c.LastLayer = op
}

// DrawSprite implements Canvas.
func (c *CountingCanvas) DrawSprite(_ Sprite, op SpriteOp) {
	c.Sprites++
	c.LastSprite = op
}

// Dispose implements Canvas.
func (c *CountingCanvas) Dispose() { c.Disposed = true }

// DrawCalls is the total number of drawing operations (clears excluded).
func (c *CountingCanvas) DrawCalls() int {
	return c.Rects + c.Lines + c.Polygons + c.Radials + c.Layers + c.Sprites
}

// CountingBackend allocates CountingCanvases and remembers them.
type CountingBackend struct {
	Canvases []*CountingCanvas
}

// NewCanvas implements Backend.
func (b *CountingBackend) NewCanvas(w, h int, scale float64) Canvas {
	c := &CountingCanvas{W: w, H: h, scale: scale}
	b.Canvases = append(b.Canvases, c)
	return c
}

// Live returns canvases that have not been disposed.
func (b *CountingBackend) Live() []*CountingCanvas {
	var out []*CountingCanvas
	for _, c := range b.Canvases {
		if !c.Disposed {
			out = append(out, c)
		}
	}
	return out
}
