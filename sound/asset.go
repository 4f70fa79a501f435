package sound

import (
	"math/rand/v2"

	"github.com/automoto/butterfly-flight/synth"
)

// Category decides where a sound is routed.
type Category string

const (
	// CategorySFX routes through the sfx bus.
	CategorySFX Category = "sfx"
	// CategoryUI bypasses the sfx bus and feeds master directly.
	CategoryUI Category = "ui"
)

// SoundAsset is a loaded sound effect. It is immutable after load.
type SoundAsset struct {
	ID       string
	Buffers  []*synth.Buffer
	Volume   float64
	Loop     bool
	Spatial  bool
	Category Category

	pool *Pool
}

// Pool returns the voice pool, or nil for unpooled sounds.
func (a *SoundAsset) Pool() *Pool { return a.pool }

func (a *SoundAsset) pick(rng *rand.Rand) *synth.Buffer {
	if len(a.Buffers) == 1 {
		return a.Buffers[0]
	}
	return a.Buffers[rng.IntN(len(a.Buffers))]
}

// MusicAsset is a loaded, always-looping stereo track.
type MusicAsset struct {
	ID      string
	Buffer  *synth.Buffer
	Volume  float64
	FadeIn  float64
	FadeOut float64
}

// SoundOptions configure LoadSound. Zero values take the engine defaults.
type SoundOptions struct {
	Duration   float64
	Volume     float64
	Loop       bool
	Spatial    bool
	Category   Category
	Pooled     bool
	PoolSize   int
	Variations int
}

// MusicOptions configure LoadMusic. Zero values take the engine defaults.
type MusicOptions struct {
	URL      string
	Duration float64
	Volume   float64
	FadeIn   float64
	FadeOut  float64
}

// PlayOptions configure a single PlaySound call. A zero Volume keeps the
// asset volume.
type PlayOptions struct {
	Volume         float64
	PitchVariation float64
	Category       Category
	Position       *Vec2
	Listener       *Vec2
}

// MusicPlayOptions configure PlayMusic. Non-positive fades use the asset's
// FadeIn and the engine's replacement fade-out.
type MusicPlayOptions struct {
	FadeIn   float64
	FadeOut  float64
	NoReverb bool
}
