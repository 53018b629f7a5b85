package assets

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
	"testing/fstest"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.NRGBA{R: uint8(x), G: uint8(y), B: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode: %v", err)
	}
	return buf.Bytes()
}

func TestLoad_SkipsMissingAndBroken(t *testing.T) {
	fsys := fstest.MapFS{
		"nebula-2.jpg": {Data: []byte("not a jpeg")},
		"nebula-1.png": {Data: pngBytes(t, 8, 4)},
		"galaxy-2.jpg": {Data: []byte{}},
	}
	imgs := Load(fsys, NebulaCandidates)
	if len(imgs) != 1 {
		t.Fatalf("expected 1 decodable image, got %d", len(imgs))
	}
	if b := imgs[0].Bounds(); b.Dx() != 8 || b.Dy() != 4 {
		t.Fatalf("unexpected bounds %v", b)
	}
}

func TestLoad_NothingAvailable(t *testing.T) {
	if imgs := Load(fstest.MapFS{}, NebulaCandidates); len(imgs) != 0 {
		t.Fatalf("expected no images, got %d", len(imgs))
	}
	if img := First(fstest.MapFS{}, FlareCandidates); img != nil {
		t.Fatal("expected nil flare from empty fs")
	}
}

func TestFirst_FallsThroughToLaterCandidate(t *testing.T) {
	fsys := fstest.MapFS{
		"flare.png":     {Data: []byte("garbage")},
		"lensflare.png": {Data: pngBytes(t, 16, 16)},
	}
	img := First(fsys, FlareCandidates)
	if img == nil {
		t.Fatal("expected lensflare.png to load")
	}
}

func TestDecode_DownscalesLargeImages(t *testing.T) {
	fsys := fstest.MapFS{"big.png": {Data: pngBytes(t, MaxEdge*2, MaxEdge/2)}}
	img, err := Decode(fsys, "big.png")
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	b := img.Bounds()
	if b.Dx() != MaxEdge || b.Dy() != MaxEdge/4 {
		t.Fatalf("expected %dx%d, got %dx%d", MaxEdge, MaxEdge/4, b.Dx(), b.Dy())
	}
}

func TestDecode_ErrorNamesFile(t *testing.T) {
	_, err := Decode(fstest.MapFS{}, "flare.png")
	if err == nil || !bytes.Contains([]byte(err.Error()), []byte("flare.png")) {
		t.Fatalf("expected error naming the file, got %v", err)
	}
}
