package fx

import (
	"math"
	"testing"
)

func newTestBurst(t *testing.T, q Quality) (*BurstEngine, *FrameQueue, *CountingBackend) {
	t.Helper()
	be := &CountingBackend{}
	fq := NewFrameQueue()
	b := NewBurstEngine(testViewport, q, be, fq, WithBurstSeed(7))
	return b, fq, be
}

func TestBurst_IdleUntilSpawn(t *testing.T) {
	b, fq, _ := newTestBurst(t, QualityHigh)
	if b.Running() || fq.Pending() != 0 {
		t.Fatal("new burst engine should not schedule frames")
	}
}

func TestBurst_SpawnExactCount(t *testing.T) {
	b, fq, _ := newTestBurst(t, QualityHigh)
	b.SpawnBurst(400, 300, BurstOptions{Count: 50})
	if b.Live() != 50 {
		t.Fatalf("expected 50 live particles, got %d", b.Live())
	}
	if fq.Pending() != 1 {
		t.Fatalf("spawn should start the loop once, got %d pending", fq.Pending())
	}
	b.SpawnBurst(400, 300, BurstOptions{Count: 50})
	if b.Live() != 100 || fq.Pending() != 1 {
		t.Fatalf("second spawn: live=%d pending=%d, want 100 and 1", b.Live(), fq.Pending())
	}
}

func TestBurst_DefaultsFollowQuality(t *testing.T) {
	for _, tc := range []struct {
		q     Quality
		count int
		power float64
	}{
		{QualityLow, 30, 6},
		{QualityHigh, 80, 9},
	} {
		b, _, _ := newTestBurst(t, tc.q)
		b.SpawnBurst(0, 0, BurstOptions{})
		if b.Live() != tc.count {
			t.Fatalf("%s: default count %d, got %d", tc.q, tc.count, b.Live())
		}
		for _, p := range b.Particles() {
			speed := math.Hypot(p.VX, p.VY)
			if speed < tc.power*0.4-1e-9 || speed > tc.power*1.2+1e-9 {
				t.Fatalf("%s: speed %.3f outside power range", tc.q, speed)
			}
			if p.Gravity < defaultGravity*0.8-1e-9 || p.Gravity > defaultGravity*1.2+1e-9 {
				t.Fatalf("%s: gravity %.3f outside default range", tc.q, p.Gravity)
			}
		}
	}
}

func TestBurst_EmitsUpwardWithinSpread(t *testing.T) {
	b, _, _ := newTestBurst(t, QualityHigh)
	spread := 0.3
	b.SpawnBurst(0, 0, BurstOptions{Count: 200, Spread: spread})
	for i, p := range b.Particles() {
		angle := math.Atan2(p.VY, p.VX)
		if d := math.Abs(angle + math.Pi/2); d > spread+1e-9 {
			t.Fatalf("particle %d angle off vertical by %.3f > %.3f", i, d, spread)
		}
		if p.Life < minBurstLife || p.Life >= minBurstLife+burstLifeRange {
			t.Fatalf("particle %d life %.1f out of range", i, p.Life)
		}
	}
}

func TestBurst_CountCapped(t *testing.T) {
	b, _, _ := newTestBurst(t, QualityLow)
	b.SpawnBurst(0, 0, BurstOptions{Count: 1 << 20})
	if b.Live() != maxBurstCount {
		t.Fatalf("expected count capped at %d, got %d", maxBurstCount, b.Live())
	}
}

func TestBurst_DrainsToZeroAndStops(t *testing.T) {
	b, fq, _ := newTestBurst(t, QualityHigh)
	b.SpawnBurst(400, 300, BurstOptions{Count: 50})
	prev := b.Live()
	frames := 0
	for b.Running() {
		fq.RunFrame()
		frames++
		if b.Live() > prev {
			t.Fatalf("frame %d: live count rose from %d to %d", frames, prev, b.Live())
		}
		prev = b.Live()
		if frames > int(minBurstLife+burstLifeRange)+2 {
			t.Fatalf("particles still live after %d frames", frames)
		}
	}
	if b.Live() != 0 {
		t.Fatalf("loop stopped with %d live particles", b.Live())
	}
	if fq.Pending() != 0 {
		t.Fatal("idle burst engine left a callback registered")
	}
	if frames < int(minBurstLife) {
		t.Fatalf("particles died too early: %d frames", frames)
	}
	if got := b.Stats().Retired; got != 50 {
		t.Fatalf("expected 50 retired particles, got %d", got)
	}
}

func TestBurst_Integration(t *testing.T) {
	b, fq, _ := newTestBurst(t, QualityHigh)
	b.SpawnBurst(100, 100, BurstOptions{Count: 1, Gravity: 0.5})
	p0 := b.Particles()[0]
	fq.RunFrame()
	p1 := b.Particles()[0]
	if math.Abs(p1.VY-(p0.VY+p0.Gravity)) > 1e-9 {
		t.Fatalf("vy should gain gravity: %.3f -> %.3f", p0.VY, p1.VY)
	}
	if math.Abs(p1.X-(p0.X+p0.VX)) > 1e-9 || math.Abs(p1.Y-(p0.Y+p1.VY)) > 1e-9 {
		t.Fatal("position should integrate the updated velocity")
	}
	if p1.Life != p0.Life-1 {
		t.Fatalf("life should drop by one tick: %.2f -> %.2f", p0.Life, p1.Life)
	}
	if math.Abs(p1.Rotation-(p0.Rotation+p0.Spin)) > 1e-9 {
		t.Fatal("rotation should advance by spin")
	}
}

func TestBurst_DrawsOneQuadPerParticle(t *testing.T) {
	b, fq, be := newTestBurst(t, QualityHigh)
	c := be.Canvases[0]
	b.SpawnBurst(100, 100, BurstOptions{Count: 12})
	fq.RunFrame()
	if c.Polygons != 12 {
		t.Fatalf("expected 12 quads, got %d", c.Polygons)
	}
	if c.Clears != 1 {
		t.Fatalf("expected the canvas cleared once per frame, got %d", c.Clears)
	}
}

func TestBurst_PauseResumeKeepsParticles(t *testing.T) {
	b, fq, be := newTestBurst(t, QualityHigh)
	c := be.Canvases[0]
	b.SpawnBurst(400, 300, BurstOptions{Count: 50})
	runFrames(fq, 10)
	clears := c.Clears

	b.Pause()
	if fq.Pending() != 0 || b.Running() {
		t.Fatal("pause must cancel the pending callback")
	}
	if c.Clears != clears+1 {
		t.Fatal("pause must clear the canvas")
	}
	runFrames(fq, 20)
	if b.Live() != 50 {
		t.Fatalf("paused engine lost particles: %d", b.Live())
	}

	b.Resume()
	b.Resume()
	if fq.Pending() != 1 {
		t.Fatalf("resume should register exactly one callback, got %d", fq.Pending())
	}
	if b.Live() != 50 {
		t.Fatalf("resume changed particle count: %d", b.Live())
	}
}

func TestBurst_ResumeWithoutWorkStaysIdle(t *testing.T) {
	b, fq, _ := newTestBurst(t, QualityLow)
	b.Pause()
	b.Resume()
	if fq.Pending() != 0 {
		t.Fatal("resume with nothing live must not schedule")
	}
}

func TestBurst_SpawnWhileHiddenWaitsForResume(t *testing.T) {
	b, fq, _ := newTestBurst(t, QualityLow)
	b.SetVisible(false)
	b.SpawnBurst(10, 10, BurstOptions{Count: 5})
	if fq.Pending() != 0 {
		t.Fatal("hidden engine must not schedule")
	}
	b.SetVisible(true)
	if fq.Pending() != 1 {
		t.Fatalf("expected one callback after becoming visible, got %d", fq.Pending())
	}
}

func TestBurst_PoofFadesAndStops(t *testing.T) {
	b, fq, be := newTestBurst(t, QualityLow)
	c := be.Canvases[0]
	b.PoofAt(50, 50)
	if !b.Running() {
		t.Fatal("poof should start the loop")
	}
	frames := 0
	for b.Running() {
		fq.RunFrame()
		frames++
		if frames > 100 {
			t.Fatal("poof never finished")
		}
	}
	if frames != poofTicks+1 {
		t.Fatalf("expected %d frames, got %d", poofTicks+1, frames)
	}
	if c.Radials != poofTicks {
		t.Fatalf("expected %d ring draws, got %d", poofTicks, c.Radials)
	}
	if b.Poofs() != 0 {
		t.Fatal("poof not removed")
	}
}

func TestBurst_ResizeReusesCanvas(t *testing.T) {
	b, _, be := newTestBurst(t, QualityLow)
	b.Resize(testViewport, QualityHigh)
	b.Resize(testViewport, QualityHigh)
	if len(be.Canvases) != 1 {
		t.Fatalf("same-size resize reallocated: %d canvases", len(be.Canvases))
	}
	if got := b.Canvas().Scale(); got != 2 {
		t.Fatalf("burst canvas should use device scale up to 2, got %.1f", got)
	}
}
