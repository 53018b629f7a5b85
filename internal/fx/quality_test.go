package fx

import (
	"strings"
	"testing"
)

func TestTargetStarCount(t *testing.T) {
	cases := []struct {
		w, h float64
		q    Quality
		want int
	}{
		{320, 240, QualityLow, 220},   // floor
		{1920, 1080, QualityLow, 230}, // 2073600/9000
		{7680, 4320, QualityLow, 600}, // cap
		{320, 240, QualityHigh, 85},
		{1280, 720, QualityHigh, 1024},
		{3840, 2160, QualityHigh, 2400}, // cap
		{1, 1, QualityHigh, 0},
	}
	for _, tc := range cases {
		if got := TargetStarCount(tc.w, tc.h, tc.q); got != tc.want {
			t.Fatalf("TargetStarCount(%v, %v, %s) = %d, want %d", tc.w, tc.h, tc.q, got, tc.want)
		}
	}
}

func TestParseQuality(t *testing.T) {
	for in, want := range map[string]Quality{"low": QualityLow, "HIGH": QualityHigh, " high ": QualityHigh} {
		got, err := ParseQuality(in)
		if err != nil || got != want {
			t.Fatalf("ParseQuality(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseQuality("ultra"); err == nil || !strings.Contains(err.Error(), "ultra") {
		t.Fatalf("expected error naming the bad value, got %v", err)
	}
}

func TestWarpTicks(t *testing.T) {
	if got := WarpTicks(800); got != 48 {
		t.Fatalf("800ms should be 48 ticks, got %d", got)
	}
	if got := WarpTicks(-5); got != 0 {
		t.Fatalf("negative duration should be 0 ticks, got %d", got)
	}
}

func TestTrailFactorCapped(t *testing.T) {
	if got := TrailFactor(1, 0.05); got >= 4.5 {
		t.Fatalf("cruising trail should be below cap, got %.2f", got)
	}
	if got := TrailFactor(50, 1.4); got != 4.5 {
		t.Fatalf("fast trail should cap at 4.5, got %.2f", got)
	}
	if TrailFactor(2, 0.5) <= TrailFactor(1, 0.5) || TrailFactor(1, 1) <= TrailFactor(1, 0.5) {
		t.Fatal("trail factor should grow with speed and depth")
	}
}

func TestReportMentionsBothEngines(t *testing.T) {
	sf, fq, _ := newTestStarfield(t, QualityLow)
	b := NewBurstEngine(testViewport, QualityLow, &CountingBackend{}, fq)
	runFrames(fq, 4)
	r := Report(sf, b)
	for _, want := range []string{"starfield: quality=low", "frames scheduled=4 rendered=2", "burst: live=0"} {
		if !strings.Contains(r, want) {
			t.Fatalf("report missing %q:\n%s", want, r)
		}
	}
}
