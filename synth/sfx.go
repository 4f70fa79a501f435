package synth

import "math"

// Built-in sound effect ids.
const (
	Flap        = "flap"
	Coin        = "coin"
	PowerUp     = "powerup"
	Collision   = "collision"
	ThemeChange = "theme-change"
	UIClick     = "ui-click"
	UIHover     = "ui-hover"
	Achievement = "achievement"
)

var soundAlgorithms = map[string]Algorithm{
	Flap:        flap,
	Coin:        coin,
	PowerUp:     powerUp,
	Collision:   collision,
	ThemeChange: themeChange,
	UIClick:     uiClick,
	UIHover:     uiHover,
	Achievement: achievement,
}

// DefaultTone is a decaying 440 Hz tone used for unknown sound ids.
func DefaultTone(p Params, out *Buffer) {
	sr := float64(p.SampleRate)
	for i := 0; i < out.Frames(); i++ {
		t := float64(i) / sr
		env := math.Exp(-5*t) * hump(t, p.Duration)
		out.set(i, tone(440, t)*env*0.3)
	}
}

// flap is a short downward chirp with a breath of noise.
func flap(p Params, out *Buffer) {
	sr := float64(p.SampleRate)
	o := newOsc(p.SampleRate)
	for i := 0; i < out.Frames(); i++ {
		t := float64(i) / sr
		env := math.Exp(-8*t) * (1 - t/p.Duration)
		freq := 200 + 100*math.Exp(-10*t)
		v := o.sine(freq)*0.7 + noise(p)*0.3
		out.set(i, v*env*0.3)
	}
}

// coin is two vibrato partials at 800 and 1200 Hz.
func coin(p Params, out *Buffer) {
	sr := float64(p.SampleRate)
	o1, o2 := newOsc(p.SampleRate), newOsc(p.SampleRate)
	for i := 0; i < out.Frames(); i++ {
		t := float64(i) / sr
		env := math.Exp(-3*t) * hump(t, p.Duration)
		f1 := 800 * (1 + 0.1*tone(5, t))
		f2 := 1200 * (1 + 0.1*tone(7, t))
		v := o1.sine(f1) + 0.5*o2.sine(f2)
		out.set(i, v*env*0.4)
	}
}

// powerUp is a rising sweep from 400 to 1000 Hz with three harmonics.
func powerUp(p Params, out *Buffer) {
	sr := float64(p.SampleRate)
	o := newOsc(p.SampleRate)
	for i := 0; i < out.Frames(); i++ {
		t := float64(i) / sr
		env := hump(t, p.Duration) * math.Exp(-2*t)
		ph := twoPi * o.next(400+600*t/p.Duration)
		v := math.Sin(ph) + 0.5*math.Sin(2*ph) + 0.25*math.Sin(3*ph)
		out.set(i, v*env*0.35)
	}
}

// collision is a noise burst over an 80 Hz thump.
func collision(p Params, out *Buffer) {
	sr := float64(p.SampleRate)
	for i := 0; i < out.Frames(); i++ {
		t := float64(i) / sr
		r := t / p.Duration
		env := math.Exp(-15*t) * (1 - r*r)
		v := noise(p)*2*0.7 + tone(80, t)*0.5
		out.set(i, v*env*0.6)
	}
}

func themeChange(p Params, out *Buffer) {
	sr := float64(p.SampleRate)
	o := newOsc(p.SampleRate)
	for i := 0; i < out.Frames(); i++ {
		t := float64(i) / sr
		h := hump(t, p.Duration)
		env := h * math.Exp(-t)
		v := o.sine(200+400*h)*0.6 + noise(p)*0.4
		out.set(i, v*env*0.4)
	}
}

func uiClick(p Params, out *Buffer) {
	sr := float64(p.SampleRate)
	for i := 0; i < out.Frames(); i++ {
		t := float64(i) / sr
		out.set(i, tone(1000, t)*math.Exp(-20*t)*0.2)
	}
}

func uiHover(p Params, out *Buffer) {
	sr := float64(p.SampleRate)
	for i := 0; i < out.Frames(); i++ {
		t := float64(i) / sr
		env := math.Exp(-10*t) * hump(t, p.Duration)
		out.set(i, tone(600, t)*env*0.1)
	}
}

// achievement is a C major triad.
func achievement(p Params, out *Buffer) {
	sr := float64(p.SampleRate)
	for i := 0; i < out.Frames(); i++ {
		t := float64(i) / sr
		env := hump(t, p.Duration) * math.Exp(-1.5*t)
		v := tone(523.25, t) + tone(659.25, t) + tone(783.99, t)
		out.set(i, v*env*0.25)
	}
}
