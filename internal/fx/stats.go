package fx

import (
	"fmt"
	"math"
	"strings"
)

// FrameStats counts per-engine work.
type FrameStats struct {
	Scheduled  int // frame callbacks run
	Rendered   int // frames composited
	StarsDrawn int
	Recycled   int
	Bursts     int
	Retired    int // burst particles removed
}

// DepthRange returns the minimum and maximum star depth, or (0, 0) when
// the store is empty.
func (s *Starfield) DepthRange() (float64, float64) {
	if len(s.stars) == 0 {
		return 0, 0
	}
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, st := range s.stars {
		lo = math.Min(lo, st.Z)
		hi = math.Max(hi, st.Z)
	}
	return lo, hi
}

// Report formats a plain-text summary of both engines, suitable for
// pasting into a bug report.
func Report(sf *Starfield, be *BurstEngine) string {
	var b strings.Builder
	fmt.Fprintf(&b, "--- Star-Warp frame report ---\n")
	if sf != nil {
		st := sf.Stats()
		w := sf.Warp()
		cam := sf.Camera()
		lo, hi := sf.DepthRange()
		fmt.Fprintf(&b, "starfield: quality=%s viewport=%.0fx%.0f scale=%.2f stars=%d\n",
			sf.Quality(), sf.vp.Width, sf.vp.Height, sf.scale, len(sf.stars))
		fmt.Fprintf(&b, "  frames scheduled=%d rendered=%d starsDrawn=%d recycled=%d\n",
			st.Scheduled, st.Rendered, st.StarsDrawn, st.Recycled)
		fmt.Fprintf(&b, "  warp speed=%.3f target=%.2f ticksLeft=%d roll=%.4f fov=%.0f\n",
			w.Speed, w.Target, w.TicksRemaining, cam.Roll, cam.FieldOfView)
		fmt.Fprintf(&b, "  depth[min/max]=%.3f/%.3f paused=%v flare=%v nebulae=%d\n",
			lo, hi, sf.paused, sf.flare != nil, len(sf.nebulae))
	}
	if be != nil {
		st := be.Stats()
		fmt.Fprintf(&b, "burst: live=%d poofs=%d running=%v hidden=%v\n",
			be.Live(), be.Poofs(), be.Running(), be.hidden)
		fmt.Fprintf(&b, "  frames=%d bursts=%d retired=%d\n", st.Scheduled, st.Bursts, st.Retired)
	}
	return b.String()
}
