package synth

import "math"

// Built-in music ids, one per theme.
const (
	PastelClouds     = "pastel-clouds"
	NeonCyberpunk    = "neon-cyberpunk"
	EgyptianDusk     = "egyptian-dusk"
	WatercolorForest = "watercolor-forest"
)

var musicAlgorithms = map[string]Algorithm{
	PastelClouds:     pastelClouds,
	NeonCyberpunk:    neonCyberpunk,
	EgyptianDusk:     egyptianDusk,
	WatercolorForest: watercolorForest,
}

var duskScale = [...]float64{220, 246.94, 277.18, 329.63, 369.99}

// DefaultPad is a quiet two-partial drone used for unknown music ids.
func DefaultPad(p Params, out *Buffer) {
	sr := float64(p.SampleRate)
	for i := 0; i < out.Frames(); i++ {
		t := float64(i) / sr
		v := tone(440, t)*0.1 + tone(554.37, t)*0.08
		out.setStereo(i, v, v)
	}
}

func progress(t, d float64) float64 {
	return math.Mod(t, d) / d
}

// pastelClouds: a C major chord under a slowly wandering melody.
func pastelClouds(p Params, out *Buffer) {
	sr := float64(p.SampleRate)
	mel := newOsc(p.SampleRate)
	for i := 0; i < out.Frames(); i++ {
		t := float64(i) / sr
		pr := progress(t, p.Duration)
		chord := tone(261.63, t)*0.3 + tone(329.63, t)*0.25 + tone(392, t)*0.2
		melody := mel.sine(523.25+100*math.Sin(twoPi*pr*0.5)) * 0.15
		v := (chord + melody + noise(p)*0.05) * 0.4
		out.setStereo(i, v, v*0.9)
	}
}

func neonCyberpunk(p Params, out *Buffer) {
	sr := float64(p.SampleRate)
	lead := newOsc(p.SampleRate)
	for i := 0; i < out.Frames(); i++ {
		t := float64(i) / sr
		pr := progress(t, p.Duration)
		v := tone(65.41, t) * 0.4
		v += lead.sine(523.25+200*math.Sin(twoPi*pr*2)) * 0.3
		// 4 Hz square pulse centered on zero
		if tone(4, t) > 0 {
			v += 0.1
		} else {
			v -= 0.1
		}
		v += noise(p) * 0.1
		out.setStereo(i, v*0.5, v*0.5)
	}
}

// duskPulseDuty is the share of each cycle a sine spends above 0.8. The
// pulse is offset by it so it averages to zero.
var duskPulseDuty = 0.5 - math.Asin(0.8)/math.Pi

// egyptianDusk steps through a pentatonic scale over a 110 Hz drone.
func egyptianDusk(p Params, out *Buffer) {
	sr := float64(p.SampleRate)
	mel := newOsc(p.SampleRate)
	for i := 0; i < out.Frames(); i++ {
		t := float64(i) / sr
		pr := progress(t, p.Duration)
		note := duskScale[int(math.Floor(pr*float64(len(duskScale))*4))%len(duskScale)]
		v := mel.sine(note)*0.3 + tone(110, t)*0.2
		if tone(2, t) > 0.8 {
			v += 0.1
		}
		v -= 0.1 * duskPulseDuty
		out.setStereo(i, v*0.6, v*0.55)
	}
}

func watercolorForest(p Params, out *Buffer) {
	sr := float64(p.SampleRate)
	o1, o2 := newOsc(p.SampleRate), newOsc(p.SampleRate)
	for i := 0; i < out.Frames(); i++ {
		t := float64(i) / sr
		pr := progress(t, p.Duration)
		v := o1.sine(174.61+50*math.Sin(twoPi*pr*0.3))*0.25 +
			o2.sine(220+30*math.Sin(twoPi*pr*0.5))*0.2
		v += noise(p) * 0.1 * tone(0.1, t)
		if p.Rand.Float64() < 0.001 {
			v += tone(1000, t) * 0.1
		}
		out.setStereo(i, v*0.5, v*0.45)
	}
}
