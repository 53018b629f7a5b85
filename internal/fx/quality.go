package fx

import (
	"fmt"
	"math"
	"strings"
)

// Quality is the coarse low/high rendering toggle.
type Quality int

const (
	QualityLow Quality = iota
	QualityHigh
)

// ParseQuality accepts "low" or "high" (case-insensitive).
func ParseQuality(s string) (Quality, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low":
		return QualityLow, nil
	case "high":
		return QualityHigh, nil
	}
	return QualityLow, fmt.Errorf("unknown quality %q (want low or high)", s)
}

func (q Quality) String() string {
	if q == QualityHigh {
		return "high"
	}
	return "low"
}

// Viewport is the host surface size in logical pixels plus the host's
// device pixel ratio.
type Viewport struct {
	Width       float64
	Height      float64
	DeviceScale float64
}

// sanitize floors NaN, negative and zero dimensions to safe minimums.
func (v Viewport) sanitize() Viewport {
	if !(v.Width >= 1) || math.IsInf(v.Width, 0) {
		v.Width = 1
	}
	if !(v.Height >= 1) || math.IsInf(v.Height, 0) {
		v.Height = 1
	}
	if !(v.DeviceScale > 0) || math.IsInf(v.DeviceScale, 0) {
		v.DeviceScale = 1
	}
	v.Width = math.Floor(v.Width)
	v.Height = math.Floor(v.Height)
	return v
}

// qualityProfile holds every per-mode tuning constant.
type qualityProfile struct {
	maxScale     float64 // device-scale cap
	areaPerStar  float64
	minStars     int
	maxStars     int
	fieldOfView  float64
	burstCount   int
	burstPower   float64
	planetAlpha  float64
	throttle     bool // render on alternating callbacks
	postEffects  bool // chromatic spread, smear, bloom, flare, nebula textures
	keepFeedback bool
}

var profiles = [...]qualityProfile{
	QualityLow: {
		maxScale:    1,
		areaPerStar: 9000,
		minStars:    220,
		maxStars:    600,
		fieldOfView: 220,
		burstCount:  30,
		burstPower:  6,
		planetAlpha: 0.05,
		throttle:    true,
	},
	QualityHigh: {
		maxScale:     2,
		areaPerStar:  900,
		minStars:     0,
		maxStars:     2400,
		fieldOfView:  220,
		burstCount:   80,
		burstPower:   9,
		planetAlpha:  0.08,
		postEffects:  true,
		keepFeedback: true,
	},
}

func profileFor(q Quality) qualityProfile {
	if q == QualityHigh {
		return profiles[QualityHigh]
	}
	return profiles[QualityLow]
}

// canvasScale caps the device scale for the given mode.
func (p qualityProfile) canvasScale(v Viewport) float64 {
	return math.Min(p.maxScale, v.DeviceScale)
}

// TargetStarCount returns the particle count for a viewport area.
func TargetStarCount(width, height float64, q Quality) int {
	p := profileFor(q)
	n := int(math.Floor(width * height / p.areaPerStar))
	if n < p.minStars {
		n = p.minStars
	}
	if n > p.maxStars {
		n = p.maxStars
	}
	return n
}
