// Package assets loads optional decorative images. Every failure is logged
// and skipped; callers always get whatever did decode.
package assets

import (
	"fmt"
	"image"
	_ "image/jpeg" // register decoder
	_ "image/png"  // register decoder
	"io/fs"
	"log"

	_ "golang.org/x/image/bmp" // register decoder
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // register decoder
)

// MaxEdge caps the longest edge of a loaded texture.
const MaxEdge = 1024

// NebulaCandidates are tried in order; every one that decodes is kept.
var NebulaCandidates = []string{
	"nebula-1.jpg",
	"nebula-2.jpg",
	"nebula-3.jpg",
	"nebula-1.png",
	"nebula-2.png",
	"nebula-3.png",
	"galaxy-1.jpg",
	"galaxy-2.jpg",
}

// FlareCandidates are tried in order; the first that decodes wins.
var FlareCandidates = []string{
	"flare.png",
	"lensflare.png",
}

// Decode reads and decodes one image, downscaling it to MaxEdge.
func Decode(fsys fs.FS, name string) (image.Image, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", name, err)
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", name, err)
	}
	return fit(img, MaxEdge), nil
}

// Load decodes every candidate it can, preserving order.
func Load(fsys fs.FS, candidates []string) []image.Image {
	var out []image.Image
	for _, name := range candidates {
		img, err := Decode(fsys, name)
		if err != nil {
			log.Printf("assets: skipping %v", err)
			continue
		}
		out = append(out, img)
	}
	return out
}

// First returns the first candidate that decodes, or nil.
func First(fsys fs.FS, candidates []string) image.Image {
	for _, name := range candidates {
		img, err := Decode(fsys, name)
		if err != nil {
			log.Printf("assets: skipping %v", err)
			continue
		}
		return img
	}
	return nil
}

// fit scales img down so its longest edge is at most maxEdge.
func fit(img image.Image, maxEdge int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	long := w
	if h > long {
		long = h
	}
	if long <= maxEdge {
		return img
	}
	nw := w * maxEdge / long
	nh := h * maxEdge / long
	if nw < 1 {
		nw = 1
	}
	if nh < 1 {
		nh = 1
	}
	dst := image.NewNRGBA(image.Rect(0, 0, nw, nh))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}
