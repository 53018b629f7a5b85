package main

import (
	"strings"
	"testing"

	"github.com/Garsondee/Star-Warp/internal/fx"
)

func TestBurstTicks_SpreadOverFirstHalf(t *testing.T) {
	got := burstTicks(3, 600)
	if len(got) != 3 {
		t.Fatalf("expected 3 burst ticks, got %d", len(got))
	}
	for tick := range got {
		if tick < 0 || tick >= 300 {
			t.Fatalf("burst tick %d outside first half", tick)
		}
	}
	if len(burstTicks(0, 600)) != 0 {
		t.Fatal("expected no bursts when n=0")
	}
}

func TestRunScenario_DeterministicForSeed(t *testing.T) {
	cfg := runConfig{ticks: 200, quality: fx.QualityHigh, width: 320, height: 240, scale: 1, warpEvery: 100, bursts: 2}
	a := runScenario(1, 7, cfg)
	b := runScenario(1, 7, cfg)
	if a.report != b.report {
		t.Fatalf("same seed produced different reports:\n%s\n---\n%s", a.report, b.report)
	}
	if a.star.Rendered != 200 {
		t.Fatalf("expected 200 rendered frames in high quality, got %d", a.star.Rendered)
	}
	if a.burst.Bursts != 2 {
		t.Fatalf("expected 2 bursts, got %d", a.burst.Bursts)
	}
	if !a.scheduled {
		t.Fatal("starfield should still be scheduled after the run")
	}
}

func TestRunScenario_LowQualityHalvesRenders(t *testing.T) {
	cfg := runConfig{ticks: 100, quality: fx.QualityLow, width: 320, height: 240, scale: 1}
	rs := runScenario(1, 3, cfg)
	if rs.star.Scheduled != 100 || rs.star.Rendered != 50 {
		t.Fatalf("expected 100 scheduled / 50 rendered, got %d / %d", rs.star.Scheduled, rs.star.Rendered)
	}
	if _, ok := rs.drawCalls["feedback"]; ok {
		t.Fatal("low quality should not allocate a feedback buffer")
	}
	if rs.warpTicks != 0 {
		t.Fatalf("expected no warp with warpEvery=0, got %d ticks", rs.warpTicks)
	}
}

func TestRunScenario_ConfettiDrains(t *testing.T) {
	cfg := runConfig{ticks: 600, quality: fx.QualityHigh, width: 320, height: 240, scale: 1, bursts: 1}
	rs := runScenario(1, 11, cfg)
	if rs.drainedTick < 0 {
		t.Fatal("expected confetti to drain before the run ended")
	}
	if rs.burst.Retired != rs.peakLive {
		t.Fatalf("expected every particle retired, retired=%d peak=%d", rs.burst.Retired, rs.peakLive)
	}
}

func TestJoinCounts_Sorted(t *testing.T) {
	got := joinCounts(map[string]int{"stars": 2, "confetti": 1, "output": 3})
	if got != "confetti=1 output=3 stars=2" {
		t.Fatalf("unexpected join: %s", got)
	}
	if !strings.HasPrefix(avgTickString(nil), "n/a") {
		t.Fatal("expected n/a for empty ticks")
	}
}
