package synth

import "math"

const twoPi = 2 * math.Pi

// osc is a phase-accumulating sine oscillator. Swept frequencies stay
// continuous because the phase, not t*f, is integrated.
type osc struct {
	phase float64
	dt    float64
}

func newOsc(sampleRate int) osc {
	return osc{dt: 1 / float64(sampleRate)}
}

// next returns the current phase in cycles and advances by freq.
func (o *osc) next(freq float64) float64 {
	p := o.phase
	o.phase += freq * o.dt
	if o.phase >= 1 {
		o.phase -= math.Floor(o.phase)
	}
	return p
}

func (o *osc) sine(freq float64) float64 {
	return math.Sin(twoPi * o.next(freq))
}

func tone(freq, t float64) float64 {
	return math.Sin(twoPi * freq * t)
}

// hump rises and falls once over the duration.
func hump(t, d float64) float64 {
	return math.Sin(math.Pi * t / d)
}

func noise(p Params) float64 {
	return p.Rand.Float64() - 0.5
}
