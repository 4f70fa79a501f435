package sound

import "math"

// Vec2 is a position in game units.
type Vec2 struct {
	X, Y float64
}

// SpatialConfig controls distance attenuation.
type SpatialConfig struct {
	RefDistance float64
	MaxDistance float64
	Rolloff     float64
}

func DefaultSpatial() SpatialConfig {
	return SpatialConfig{RefDistance: 100, MaxDistance: 1000, Rolloff: 1}
}

// Panner holds the per-side gains for one positioned voice.
type Panner struct {
	Distance float64
	Pan      float64
	Left     float64
	Right    float64
}

// NewPanner applies inverse-distance attenuation and an equal-power pan
// derived from the emitter's horizontal offset from the listener.
func NewPanner(emitter, listener Vec2, cfg SpatialConfig) *Panner {
	dx, dy := emitter.X-listener.X, emitter.Y-listener.Y
	dist := math.Hypot(dx, dy)

	ref := max(cfg.RefDistance, 1e-6)
	d := min(max(dist, ref), max(cfg.MaxDistance, ref))
	att := ref / (ref + cfg.Rolloff*(d-ref))

	pan := dx / max(dist, ref)
	pan = min(max(pan, -1), 1)
	angle := (pan + 1) * math.Pi / 4

	return &Panner{
		Distance: dist,
		Pan:      pan,
		Left:     math.Cos(angle) * att,
		Right:    math.Sin(angle) * att,
	}
}
