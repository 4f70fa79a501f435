package sound

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Ramp is a linear gain automation advanced by the audio clock. The value is
// exactly To once the ramp has run its duration.
type Ramp struct {
	From, To float64
	Start    float64

	tween *gween.Tween
	value float64
	done  bool
}

// NewRamp starts a ramp from -> to over duration seconds at audio time start.
// A non-positive duration jumps straight to the target.
func NewRamp(from, to, duration, start float64) *Ramp {
	r := &Ramp{From: from, To: to, Start: start, value: from}
	if duration <= 0 {
		r.value, r.done = to, true
		return r
	}
	r.tween = gween.New(float32(from), float32(to), float32(duration), ease.Linear)
	return r
}

// Hold is a finished ramp parked at v.
func Hold(v float64) *Ramp {
	return NewRamp(v, v, 0, 0)
}

// Advance moves the ramp forward dt seconds and returns the new value.
func (r *Ramp) Advance(dt float64) float64 {
	if r.done {
		return r.value
	}
	cur, finished := r.tween.Update(float32(dt))
	if finished {
		r.value, r.done = r.To, true
	} else {
		r.value = float64(cur)
	}
	return r.value
}

func (r *Ramp) Value() float64 { return r.value }

func (r *Ramp) Done() bool { return r.done }
