package synth

import (
	"math"
	"math/rand/v2"
	"sync"
)

const (
	// DefaultSoundDuration is used when a sound is synthesized with a
	// non-positive duration.
	DefaultSoundDuration = 0.5
	// DefaultMusicDuration is used when a music loop is synthesized with a
	// non-positive duration.
	DefaultMusicDuration = 30.0
	// SeamSeconds is the tail-into-head blend applied to music loops.
	SeamSeconds = 0.05
)

// Params is passed to every Algorithm.
type Params struct {
	Duration   float64
	SampleRate int
	Rand       *rand.Rand
}

// Algorithm fills out with a waveform. out is already sized to Duration.
type Algorithm func(p Params, out *Buffer)

// Registry maps sound ids to synthesis algorithms. Unknown ids fall back to
// the registry's fallback algorithm.
type Registry struct {
	mu       sync.Mutex
	algs     map[string]Algorithm
	fallback Algorithm
	duration float64
	loop     bool
	rng      *rand.Rand
}

// NewRegistry creates an empty registry. seed drives all noise produced by
// the registered algorithms.
func NewRegistry(fallback Algorithm, defaultDuration float64, loop bool, seed uint64) *Registry {
	return &Registry{
		algs:     make(map[string]Algorithm),
		fallback: fallback,
		duration: defaultDuration,
		loop:     loop,
		rng:      rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

// NewSoundRegistry returns a registry with every built-in sound effect.
func NewSoundRegistry(seed uint64) *Registry {
	r := NewRegistry(DefaultTone, DefaultSoundDuration, false, seed)
	for id, alg := range soundAlgorithms {
		r.Register(id, alg)
	}
	return r
}

// NewMusicRegistry returns a registry with every built-in music loop.
func NewMusicRegistry(seed uint64) *Registry {
	r := NewRegistry(DefaultPad, DefaultMusicDuration, true, seed)
	for id, alg := range musicAlgorithms {
		r.Register(id, alg)
	}
	return r
}

// Register binds id to alg, replacing any previous binding.
func (r *Registry) Register(id string, alg Algorithm) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.algs[id] = alg
}

// Has reports whether id has a dedicated algorithm.
func (r *Registry) Has(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.algs[id]
	return ok
}

// Synthesize renders id into a new buffer. It never fails: unknown ids use the
// fallback algorithm.
func (r *Registry) Synthesize(id string, duration float64, sampleRate, channels int) *Buffer {
	if duration <= 0 {
		duration = r.duration
	}
	frames := int(math.Ceil(duration * float64(sampleRate)))

	r.mu.Lock()
	defer r.mu.Unlock()

	alg, ok := r.algs[id]
	if !ok {
		alg = r.fallback
	}

	buf := NewBuffer(sampleRate, channels, frames)
	alg(Params{Duration: duration, SampleRate: sampleRate, Rand: r.rng}, buf)

	if r.loop {
		blendSeam(buf, int(math.Round(SeamSeconds*float64(sampleRate))))
	}
	return buf
}

// blendSeam crossfades the last n frames into the first n and then drops
// them, so the final kept frame leads continuously into frame 0.
func blendSeam(b *Buffer, n int) {
	frames := b.Frames()
	if n <= 0 || frames < 4*n {
		return
	}
	tail := frames - n
	for _, ch := range b.Channels {
		for i := 0; i < n; i++ {
			w := float32(i) / float32(n)
			ch[i] = ch[tail+i]*(1-w) + ch[i]*w
		}
	}
	for c := range b.Channels {
		b.Channels[c] = b.Channels[c][:tail]
	}
}
