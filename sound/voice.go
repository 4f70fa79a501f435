package sound

import (
	"math"
	"sync"

	"github.com/automoto/butterfly-flight/synth"
)

// VoiceState is the lifecycle of a Voice.
type VoiceState int

const (
	VoiceIdle VoiceState = iota
	VoicePlaying
	VoiceStopped
	VoiceCompleted
)

func (s VoiceState) String() string {
	switch s {
	case VoiceIdle:
		return "idle"
	case VoicePlaying:
		return "playing"
	case VoiceStopped:
		return "stopped"
	case VoiceCompleted:
		return "completed"
	}
	return "unknown"
}

// Voice is one playing instance of a buffer. Voices are single-use: once
// stopped or completed they are never restarted.
type Voice struct {
	id     string
	buffer *synth.Buffer
	loop   bool
	rate   float64
	pos    float64

	gain   *Ramp
	panner *Panner
	bus    *Bus
	send   bool

	state   VoiceState
	onEnded func(*Voice)
	ended   bool

	// mu is the owning engine's lock; nil for detached voices.
	mu *sync.Mutex
}

// minRate is the slowest playback rate a voice accepts. Anything lower,
// including zero, negative and NaN rates, is raised to it so every voice
// moves forward and eventually ends.
const minRate = 0.05

func newVoice(id string, buf *synth.Buffer, loop bool, rate, gain float64, bus *Bus) *Voice {
	if !(rate >= minRate) {
		rate = minRate
	}
	return &Voice{
		id:     id,
		buffer: buf,
		loop:   loop,
		rate:   rate,
		gain:   Hold(gain),
		bus:    bus,
		state:  VoiceIdle,
	}
}

func (v *Voice) lock() {
	if v.mu != nil {
		v.mu.Lock()
	}
}

func (v *Voice) unlock() {
	if v.mu != nil {
		v.mu.Unlock()
	}
}

func (v *Voice) ID() string { return v.id }

func (v *Voice) State() VoiceState {
	v.lock()
	defer v.unlock()
	return v.state
}

// Gain is the current instance gain.
func (v *Voice) Gain() float64 {
	v.lock()
	defer v.unlock()
	return v.gain.Value()
}

// Rate is the playback rate; 1 is the original pitch.
func (v *Voice) Rate() float64 { return v.rate }

// Panner returns the spatial gains, or nil for a direct voice.
func (v *Voice) Panner() *Panner { return v.panner }

// Bus is the bus the voice feeds.
func (v *Voice) Bus() *Bus { return v.bus }

// Stop halts the voice. Stopping twice is harmless.
func (v *Voice) Stop() {
	v.lock()
	defer v.unlock()
	v.stop()
}

func (v *Voice) start() {
	if v.state == VoiceIdle {
		v.state = VoicePlaying
	}
}

func (v *Voice) stop() {
	if v.state == VoicePlaying || v.state == VoiceIdle {
		v.state = VoiceStopped
	}
}

// disconnect detaches the voice from the graph.
func (v *Voice) disconnect() {
	v.bus = nil
	v.send = false
}

func (v *Voice) finished() bool {
	return v.state == VoiceStopped || v.state == VoiceCompleted
}

// fireEnded runs the completion callback exactly once.
func (v *Voice) fireEnded() {
	if v.ended {
		return
	}
	v.ended = true
	if v.onEnded != nil {
		v.onEnded(v)
	}
}

// render mixes n frames into the voice's bus and, if enabled, the reverb
// send. Gain is interpolated linearly across the block.
func (v *Voice) render(n int, dt float64, g *Graph) {
	if v.bus == nil || v.state != VoicePlaying {
		return
	}
	frames := v.buffer.Frames()
	if frames == 0 {
		v.state = VoiceCompleted
		return
	}

	g0 := v.gain.Value()
	g1 := v.gain.Advance(dt)
	pl, pr := 1.0, 1.0
	if v.panner != nil {
		pl, pr = v.panner.Left, v.panner.Right
	}
	chL := v.buffer.Channels[0]
	chR := chL
	if len(v.buffer.Channels) > 1 {
		chR = v.buffer.Channels[1]
	}
	outL, outR := v.bus.left, v.bus.right
	send := v.send && g.reverb != nil
	end := float64(frames)

	for i := 0; i < n; i++ {
		if v.pos < 0 || math.IsNaN(v.pos) {
			v.state = VoiceCompleted
			return
		}
		if v.pos >= end {
			if !v.loop {
				v.state = VoiceCompleted
				return
			}
			v.pos = math.Mod(v.pos, end)
		}
		i0 := int(v.pos)
		frac := v.pos - float64(i0)
		i1 := i0 + 1
		if i1 >= frames {
			if v.loop {
				i1 = 0
			} else {
				i1 = i0
			}
		}
		l := float64(chL[i0]) + (float64(chL[i1])-float64(chL[i0]))*frac
		r := float64(chR[i0]) + (float64(chR[i1])-float64(chR[i0]))*frac

		gain := g0 + (g1-g0)*float64(i)/float64(n)
		l *= gain * pl
		r *= gain * pr
		outL[i] += l
		outR[i] += r
		if send {
			g.sendL[i] += l
			g.sendR[i] += r
		}
		v.pos += v.rate
	}
	if !v.loop && v.pos >= end {
		v.state = VoiceCompleted
	}
}
