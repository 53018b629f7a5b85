package fx

import (
	"image/color"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// burstPalette is the fixed confetti palette.
var burstPalette = mustPalette("#ffd166", "#73ffd2", "#a0c4ff", "#ffadad", "#fdffb6", "#caffbf")

// Planet tints, drawn as slow-orbiting gradient blobs behind the stars.
var (
	planetBlue  = mustHex("#66c2ff")
	planetGold  = mustHex("#ffd166")
	planetMint  = mustHex("#a0ffcf")
	starWhite   = color.NRGBA{R: 240, G: 245, B: 255, A: 255}
	starCore    = color.NRGBA{R: 235, G: 240, B: 255, A: 255}
	transparent = color.NRGBA{}
)

func mustHex(s string) color.NRGBA {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(err)
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 255}
}

func mustPalette(hex ...string) []color.NRGBA {
	out := make([]color.NRGBA, len(hex))
	for i, h := range hex {
		out[i] = mustHex(h)
	}
	return out
}

// hsla converts hue (degrees), saturation and lightness (0..1) plus alpha
// into a non-premultiplied colour.
func hsla(h, s, l, a float64) color.NRGBA {
	c := colorful.Hsl(math.Mod(h, 360), clamp01(s), clamp01(l)).Clamped()
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: alphaByte(a)}
}

// withAlpha returns c with alpha a in 0..1.
func withAlpha(c color.NRGBA, a float64) color.NRGBA {
	c.A = alphaByte(a)
	return c
}

func alphaByte(a float64) uint8 {
	return uint8(math.Round(clamp01(a) * 255))
}

func clamp01(v float64) float64 {
	return clamp(v, 0, 1)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo || math.IsNaN(v) {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
