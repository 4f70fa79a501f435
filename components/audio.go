package components

import (
	"github.com/automoto/butterfly-flight/sound"
	"github.com/yohamta/donburi"
)

// SoundRequest is a queued sound effect
type SoundRequest struct {
	ID      string
	Options sound.PlayOptions
}

// AudioData carries the shared audio engine into a world (singleton component).
// Sound effects are queued by gameplay systems and drained once per frame.
type AudioData struct {
	Engine     *sound.Engine
	PendingSFX []SoundRequest

	// Theme music waiting for the theme-change cue to finish
	PendingMusic string
	MusicDelay   float64
}

var Audio = donburi.NewComponentType[AudioData]()
