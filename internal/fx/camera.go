package fx

import "math"

// Tuned constants. Kept exactly for visual parity.
const (
	nominalFrameMs  = 1000.0 / 60.0
	speedEasing     = 0.08 // fraction of the residual speed gap closed per tick
	baseDepthRate   = 0.02 // depth units per tick at cruising speed
	baseRollSpeed   = 0.0016
	nebulaRate      = 0.001
	bloomThreshold  = 1.8
	maxWarpStrength = 50.0
)

// CameraState is the starfield camera: a perspective projection with a
// slowly advancing roll.
type CameraState struct {
	FieldOfView float64
	Roll        float64
	RollSpeed   float64
}

// WarpState tracks the eased speed multiplier and the tick-counted warp
// deadline. Speed only changes through ease.
type WarpState struct {
	Speed          float64
	Target         float64
	TicksRemaining int
}

func newWarpState() WarpState {
	return WarpState{Speed: 1, Target: 1}
}

// ease moves Speed 8% of the way to Target, counts down the warp timer and
// falls back to cruising speed when the timer expires.
func (w *WarpState) ease() {
	w.Speed += (w.Target - w.Speed) * speedEasing
	if w.TicksRemaining > 0 {
		w.TicksRemaining--
	}
	if w.TicksRemaining == 0 && w.Target > 1 {
		w.Target = 1
	}
}

// trigger overwrites any running warp. A non-positive duration cancels it.
func (w *WarpState) trigger(durationMs, intensity float64) {
	if !(durationMs > 0) {
		w.Target = 1
		w.TicksRemaining = 0
		return
	}
	if !(intensity >= 1) {
		intensity = 1
	}
	if intensity > maxWarpStrength {
		intensity = maxWarpStrength
	}
	w.Target = intensity
	w.TicksRemaining = WarpTicks(durationMs)
}

// WarpTicks converts a warp duration to whole ticks at the nominal 60 Hz.
func WarpTicks(durationMs float64) int {
	if !(durationMs > 0) {
		return 0
	}
	return int(math.Round(durationMs / nominalFrameMs))
}

// advance rolls the camera; faster warps spin it harder.
func (c *CameraState) advance(speed float64) {
	c.Roll += c.RollSpeed * (0.6 + (speed-1)*0.15)
}

// Project maps a viewport-centred star position at depth z to screen space:
// rotate by roll, apply the perspective divide, translate to (cx, cy).
func Project(x, y, z, roll, fov, cx, cy float64) (float64, float64) {
	cr, sr := math.Cos(roll), math.Sin(roll)
	rx := x*cr - y*sr
	ry := x*sr + y*cr
	s := ProjectionScale(z, fov)
	return cx + rx*s, cy + ry*s
}

// ProjectionScale is fov / (fov + (1-z)*fov). It grows with z.
func ProjectionScale(z, fov float64) float64 {
	return fov / (fov + (1-z)*fov)
}
