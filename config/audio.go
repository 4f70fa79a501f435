package config

import (
	"time"

	"github.com/automoto/butterfly-flight/sound"
	"github.com/automoto/butterfly-flight/synth"
)

// AudioConfig contains audio-related configuration values
type AudioConfig struct {
	SampleRate int
	BufferSize time.Duration
	PoolSize   int

	Compression bool
	Reverb      bool
	ReverbTail  float64 // seconds of generated impulse
	ReverbSend  float64

	MusicVolume     float64
	MusicFadeIn     float64 // seconds
	MusicFadeOut    float64
	ThemeFadeOut    float64
	ThemeFadeIn     float64
	ThemeMusicDelay float64 // gap between the theme-change cue and the new track

	SpatialRefDistance float64
	SpatialMaxDistance float64
}

// SoundEntry describes one sound to load at startup
type SoundEntry struct {
	ID      string
	URL     string // empty synthesizes
	Options sound.SoundOptions
}

// MusicEntry describes one music track to load at startup
type MusicEntry struct {
	ID      string
	Options sound.MusicOptions
}

// SoundConfig is the startup sound catalog
type SoundConfig struct {
	Entries []SoundEntry
}

// MusicConfig is the startup music catalog. Tracks are looked up as
// BaseURL + id + Ext and synthesized when the file is missing.
type MusicConfig struct {
	BaseURL string
	Ext     string
	Entries []MusicEntry
}

var Audio AudioConfig
var Sound SoundConfig
var Music MusicConfig

// EngineConfig converts the audio settings into the engine's config.
func (a AudioConfig) EngineConfig() sound.Config {
	c := sound.DefaultConfig()
	c.SampleRate = a.SampleRate
	c.BufferSize = a.BufferSize
	c.MaxPoolSize = a.PoolSize
	c.Compression = a.Compression
	c.Reverb = a.Reverb
	c.ReverbSpec.Seconds = a.ReverbTail
	c.ReverbSpec.ReturnGain = a.ReverbSend
	c.MusicVolume = a.MusicVolume
	c.MusicFadeIn = a.MusicFadeIn
	c.MusicFadeOut = a.MusicFadeOut
	c.ReplaceFadeOut = a.ThemeFadeOut
	c.Spatial.RefDistance = a.SpatialRefDistance
	c.Spatial.MaxDistance = a.SpatialMaxDistance
	return c
}

func init() {
	Audio = AudioConfig{
		SampleRate:         44100,
		BufferSize:         50 * time.Millisecond,
		PoolSize:           5,
		Compression:        true,
		Reverb:             true,
		ReverbTail:         2,
		ReverbSend:         0.2,
		MusicVolume:        0.5,
		MusicFadeIn:        2.0,
		MusicFadeOut:       1.5,
		ThemeFadeOut:       1.0,
		ThemeFadeIn:        2.0,
		ThemeMusicDelay:    1.0,
		SpatialRefDistance: 100,
		SpatialMaxDistance: 1000,
	}

	Sound = SoundConfig{
		Entries: []SoundEntry{
			{ID: synth.Flap, Options: sound.SoundOptions{Duration: 0.2, Pooled: true}},
			{ID: synth.Coin, Options: sound.SoundOptions{Duration: 0.4, Pooled: true, Spatial: true}},
			{ID: synth.PowerUp, Options: sound.SoundOptions{Duration: 0.8, Spatial: true}},
			{ID: synth.Collision, Options: sound.SoundOptions{Duration: 0.6}},
			{ID: synth.ThemeChange, Options: sound.SoundOptions{Duration: 1.0}},
			{ID: synth.UIClick, Options: sound.SoundOptions{Duration: 0.1, Category: sound.CategoryUI, Pooled: true}},
			{ID: synth.UIHover, Options: sound.SoundOptions{Duration: 0.1, Category: sound.CategoryUI, Pooled: true}},
			{ID: synth.Achievement, Options: sound.SoundOptions{Duration: 1.5}},
		},
	}

	Music = MusicConfig{
		BaseURL: "music/",
		Ext:     ".mp3",
		Entries: []MusicEntry{
			{ID: synth.PastelClouds, Options: sound.MusicOptions{Duration: 30, Volume: 0.4}},
			{ID: synth.NeonCyberpunk, Options: sound.MusicOptions{Duration: 30, Volume: 0.5}},
			{ID: synth.EgyptianDusk, Options: sound.MusicOptions{Duration: 30, Volume: 0.45}},
			{ID: synth.WatercolorForest, Options: sound.MusicOptions{Duration: 30, Volume: 0.4}},
		},
	}
}
