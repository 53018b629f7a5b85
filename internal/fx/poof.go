package fx

import "image/color"

// poofTicks is the marker lifetime (~520 ms at 60 Hz).
var poofTicks = WarpTicks(520)

// poof is a one-shot expanding ring; no physics.
type poof struct {
	x, y float64
	age  int
}

var poofTint = color.NRGBA{R: 200, G: 230, B: 255, A: 255}

// PoofAt shows a short fading ring at (x, y).
func (b *BurstEngine) PoofAt(x, y float64) {
	b.poofs = append(b.poofs, poof{x: x, y: y})
	b.ensureRunning()
}

// Poofs returns the number of active markers.
func (b *BurstEngine) Poofs() int { return len(b.poofs) }

func (b *BurstEngine) stepPoofs() {
	live := b.poofs[:0]
	for _, p := range b.poofs {
		p.age++
		if p.age > poofTicks {
			continue
		}
		t := float64(p.age) / float64(poofTicks)
		r := 5 + 13*t
		b.canvas.FillRadial(Radial{
			X:     p.x,
			Y:     p.y,
			R0:    r * 0.55,
			R1:    r,
			Inner: withAlpha(poofTint, 0),
			Outer: withAlpha(poofTint, 0.9*(1-t)),
			ClipX: p.x,
			ClipY: p.y,
			ClipR: r,
			Blend: BlendSourceOver,
		})
		live = append(live, p)
	}
	b.poofs = live
}
