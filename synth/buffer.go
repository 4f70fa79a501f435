package synth

// Buffer holds decoded or synthesized PCM as one float32 slice per channel.
// Samples are nominally in [-1, 1].
type Buffer struct {
	SampleRate int
	Channels   [][]float32
}

// NewBuffer allocates a silent buffer.
func NewBuffer(sampleRate, channels, frames int) *Buffer {
	if channels < 1 {
		channels = 1
	}
	if frames < 0 {
		frames = 0
	}
	b := &Buffer{
		SampleRate: sampleRate,
		Channels:   make([][]float32, channels),
	}
	for c := range b.Channels {
		b.Channels[c] = make([]float32, frames)
	}
	return b
}

// Frames returns the number of sample frames per channel.
func (b *Buffer) Frames() int {
	if b == nil || len(b.Channels) == 0 {
		return 0
	}
	return len(b.Channels[0])
}

// ChannelCount returns the number of channels.
func (b *Buffer) ChannelCount() int {
	if b == nil {
		return 0
	}
	return len(b.Channels)
}

// Duration returns the length of the buffer in seconds.
func (b *Buffer) Duration() float64 {
	if b == nil || b.SampleRate <= 0 {
		return 0
	}
	return float64(b.Frames()) / float64(b.SampleRate)
}

// InRange reports the fraction of frames whose samples all lie in [-1, 1].
func (b *Buffer) InRange() float64 {
	n := b.Frames()
	if n == 0 {
		return 1
	}
	ok := 0
	for i := 0; i < n; i++ {
		in := true
		for _, ch := range b.Channels {
			if ch[i] > 1 || ch[i] < -1 {
				in = false
				break
			}
		}
		if in {
			ok++
		}
	}
	return float64(ok) / float64(n)
}

// Stereo returns b if it already has two channels, otherwise a copy with the
// first channel duplicated into both sides.
func (b *Buffer) Stereo() *Buffer {
	if b.ChannelCount() == 2 {
		return b
	}
	out := NewBuffer(b.SampleRate, 2, b.Frames())
	if b.ChannelCount() > 0 {
		copy(out.Channels[0], b.Channels[0])
		copy(out.Channels[1], b.Channels[0])
	}
	return out
}

// set writes v to frame i of every channel.
func (b *Buffer) set(i int, v float64) {
	s := float32(v)
	for _, ch := range b.Channels {
		ch[i] = s
	}
}

// setStereo writes independent left/right values. Mono buffers receive the
// average; extra channels repeat the right side.
func (b *Buffer) setStereo(i int, l, r float64) {
	switch len(b.Channels) {
	case 1:
		b.Channels[0][i] = float32((l + r) / 2)
	default:
		b.Channels[0][i] = float32(l)
		for _, ch := range b.Channels[1:] {
			ch[i] = float32(r)
		}
	}
}
