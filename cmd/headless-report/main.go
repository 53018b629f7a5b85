package main

import (
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/Garsondee/Star-Warp/internal/fx"
)

type runStats struct {
	runIndex int
	seed     int64

	star  fx.FrameStats
	burst fx.FrameStats

	drawCalls   map[string]int // per canvas role
	warpTicks   int            // ticks spent above nominal speed
	peakSpeed   float64
	peakLive    int
	drainedTick int // first tick after the last burst with nothing live, or -1
	scheduled   bool
	report      string
}

type runConfig struct {
	ticks     int
	quality   fx.Quality
	width     int
	height    int
	scale     float64
	warpEvery int
	bursts    int
}

func main() {
	var runs int
	var seedBase int64
	var seedStep int64
	var quality string
	var verbose bool
	var cfg runConfig

	flag.IntVar(&runs, "runs", 3, "number of headless runs")
	flag.IntVar(&cfg.ticks, "ticks", 600, "frames per run")
	flag.Int64Var(&seedBase, "seed-base", 42, "base RNG seed for run 1")
	flag.Int64Var(&seedStep, "seed-step", 1, "seed increment between runs")
	flag.StringVar(&quality, "quality", "high", "rendering quality: low or high")
	flag.IntVar(&cfg.width, "width", 1280, "viewport width")
	flag.IntVar(&cfg.height, "height", 720, "viewport height")
	flag.Float64Var(&cfg.scale, "scale", 1, "device pixel ratio")
	flag.IntVar(&cfg.warpEvery, "warp-every", 120, "trigger a warp every N frames (0 disables)")
	flag.IntVar(&cfg.bursts, "bursts", 3, "confetti bursts spawned over the run")
	flag.BoolVar(&verbose, "v", false, "print the full frame report for every run")
	flag.Parse()

	q, err := fx.ParseQuality(quality)
	if err != nil {
		fmt.Println("error:", err)
		os.Exit(2)
	}
	cfg.quality = q
	if runs <= 0 {
		fmt.Println("error: -runs must be > 0")
		os.Exit(2)
	}
	if cfg.ticks <= 0 {
		fmt.Println("error: -ticks must be > 0")
		os.Exit(2)
	}

	fmt.Printf("=== Headless Star-Warp Report ===\n")
	fmt.Printf("quality=%s viewport=%dx%d@%.1f runs=%d ticks=%d seed_base=%d seed_step=%d\n\n",
		cfg.quality, cfg.width, cfg.height, cfg.scale, runs, cfg.ticks, seedBase, seedStep)

	all := make([]runStats, 0, runs)
	for i := 0; i < runs; i++ {
		seed := seedBase + int64(i)*seedStep
		rs := runScenario(i+1, seed, cfg)
		all = append(all, rs)
		printRun(rs, verbose)
	}
	printAggregate(all)
}

// burstTicks spreads n bursts evenly over the first half of the run.
func burstTicks(n, ticks int) map[int]bool {
	out := make(map[int]bool, n)
	if n <= 0 {
		return out
	}
	span := ticks / 2
	for i := 0; i < n; i++ {
		out[span*i/n] = true
	}
	return out
}

func runScenario(runIndex int, seed int64, cfg runConfig) runStats {
	backend := &fx.CountingBackend{}
	frames := fx.NewFrameQueue()
	vp := fx.Viewport{Width: float64(cfg.width), Height: float64(cfg.height), DeviceScale: cfg.scale}

	sf := fx.NewStarfield(vp, cfg.quality, backend, frames, fx.WithStarfieldSeed(seed))
	be := fx.NewBurstEngine(vp, cfg.quality, backend, frames, fx.WithBurstSeed(seed+1))
	spawnAt := burstTicks(cfg.bursts, cfg.ticks)
	lastBurst := -1
	for t := range spawnAt {
		lastBurst = max(lastBurst, t)
	}

	rs := runStats{runIndex: runIndex, seed: seed, drainedTick: -1}
	for tick := 0; tick < cfg.ticks; tick++ {
		if cfg.warpEvery > 0 && tick%cfg.warpEvery == 0 {
			sf.TriggerWarp(800, 8)
		}
		if spawnAt[tick] {
			x := float64(cfg.width) * (0.25 + 0.5*float64(tick%7)/6)
			be.SpawnBurst(x, float64(cfg.height)*0.6, fx.BurstOptions{})
			be.PoofAt(x, float64(cfg.height)*0.6)
		}
		frames.RunFrame()

		w := sf.Warp()
		if w.Speed > 1.01 {
			rs.warpTicks++
		}
		rs.peakSpeed = max(rs.peakSpeed, w.Speed)
		rs.peakLive = max(rs.peakLive, be.Live())
		if rs.drainedTick < 0 && tick > lastBurst && lastBurst >= 0 && !be.Running() {
			rs.drainedTick = tick
		}
	}

	rs.star = sf.Stats()
	rs.burst = be.Stats()
	rs.scheduled = sf.Scheduled()
	rs.drawCalls = drawCallsByRole(backend.Live())
	rs.report = fx.Report(sf, be)
	return rs
}

// drawCallsByRole labels canvases in allocation order: starfield output,
// star layer, optional feedback buffer, then the confetti canvas last.
func drawCallsByRole(canvases []*fx.CountingCanvas) map[string]int {
	out := map[string]int{}
	for i, c := range canvases {
		role := fmt.Sprintf("canvas%d", i)
		switch {
		case i == len(canvases)-1:
			role = "confetti"
		case i == 0:
			role = "output"
		case i == 1:
			role = "stars"
		case i == 2:
			role = "feedback"
		}
		out[role] += c.DrawCalls()
	}
	return out
}

func printRun(rs runStats, verbose bool) {
	fmt.Printf("--- Run %d (seed=%d) ---\n", rs.runIndex, rs.seed)
	fmt.Printf("starfield: scheduled=%d rendered=%d stars_drawn=%d recycled=%d still_scheduled=%t\n",
		rs.star.Scheduled, rs.star.Rendered, rs.star.StarsDrawn, rs.star.Recycled, rs.scheduled)
	fmt.Printf("warp: ticks_above_nominal=%d peak_speed=%.2f\n", rs.warpTicks, rs.peakSpeed)
	fmt.Printf("confetti: bursts=%d retired=%d peak_live=%d drained_at=%d\n",
		rs.burst.Bursts, rs.burst.Retired, rs.peakLive, rs.drainedTick)
	fmt.Printf("draw_calls: %s\n", joinCounts(rs.drawCalls))
	if verbose {
		fmt.Println(rs.report)
	}
	fmt.Println()
}

func printAggregate(all []runStats) {
	n := len(all)
	var rendered, recycled, warp, retired int
	drained := make([]int, 0, n)
	for _, rs := range all {
		rendered += rs.star.Rendered
		recycled += rs.star.Recycled
		warp += rs.warpTicks
		retired += rs.burst.Retired
		if rs.drainedTick >= 0 {
			drained = append(drained, rs.drainedTick)
		}
	}
	fmt.Printf("=== Aggregate (%d runs) ===\n", n)
	fmt.Printf("avg_rendered=%.1f avg_recycled=%.1f avg_warp_ticks=%.1f avg_retired=%.1f\n",
		avg(rendered, n), avg(recycled, n), avg(warp, n), avg(retired, n))
	fmt.Printf("drained_at: %s\n", avgTickString(drained))
}

func avg(sum int, n int) float64 {
	if n == 0 {
		return 0
	}
	return float64(sum) / float64(n)
}

func avgTickString(vals []int) string {
	if len(vals) == 0 {
		return "n/a"
	}
	sum := 0
	for _, v := range vals {
		sum += v
	}
	return fmt.Sprintf("%.1f (n=%d)", avg(sum, len(vals)), len(vals))
}

func joinCounts(m map[string]int) string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%d", k, m[k]))
	}
	return strings.Join(parts, " ")
}
