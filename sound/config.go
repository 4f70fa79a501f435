package sound

import (
	"log"
	"time"
)

// Config holds the engine's tunables.
type Config struct {
	SampleRate int
	BufferSize time.Duration

	MaxPoolSize          int
	DefaultSoundDuration float64
	DefaultMusicDuration float64

	Compression bool
	Compressor  CompressorConfig
	Reverb      bool
	ReverbSpec  ReverbConfig
	Spatial     SpatialConfig

	MusicVolume    float64
	MusicFadeIn    float64
	MusicFadeOut   float64
	ReplaceFadeOut float64

	SettingsKey string
}

func DefaultConfig() Config {
	return Config{
		SampleRate:           44100,
		BufferSize:           50 * time.Millisecond,
		MaxPoolSize:          5,
		DefaultSoundDuration: 0.5,
		DefaultMusicDuration: 30,
		Compression:          true,
		Compressor:           DefaultCompressor(),
		Reverb:               true,
		ReverbSpec:           DefaultReverb(),
		Spatial:              DefaultSpatial(),
		MusicVolume:          0.5,
		MusicFadeIn:          2.0,
		MusicFadeOut:         1.5,
		ReplaceFadeOut:       1.0,
		SettingsKey:          SettingsKey,
	}
}

// Option overrides an engine collaborator.
type Option func(*Engine)

// WithDevice sets the output device.
func WithDevice(d Device) Option {
	return func(e *Engine) { e.device = d }
}

// WithLoader sets the asset loader used for sounds with a URL.
func WithLoader(l Loader) Option {
	return func(e *Engine) { e.loader = l }
}

// WithStore sets where settings are persisted.
func WithStore(s SettingsStore) Option {
	return func(e *Engine) { e.store = s }
}

func WithLogger(l *log.Logger) Option {
	return func(e *Engine) { e.log = l }
}

// WithSeed makes synthesis noise, variation picks and pitch jitter
// reproducible.
func WithSeed(seed uint64) Option {
	return func(e *Engine) { e.seed = seed }
}
