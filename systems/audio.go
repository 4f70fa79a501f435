package systems

import (
	"log"

	"github.com/automoto/butterfly-flight/components"
	cfg "github.com/automoto/butterfly-flight/config"
	"github.com/automoto/butterfly-flight/sound"
	"github.com/automoto/butterfly-flight/synth"
	"github.com/yohamta/donburi/ecs"
)

// LoadAudioCatalog loads every configured sound and music track into engine.
// Music files are looked up under cfg.Music.BaseURL and synthesized when
// missing.
func LoadAudioCatalog(engine *sound.Engine) {
	for _, s := range cfg.Sound.Entries {
		if engine.LoadSound(s.ID, s.URL, s.Options) == nil {
			log.Printf("Warning: Could not load sound %s", s.ID)
		}
	}
	for _, m := range cfg.Music.Entries {
		opts := m.Options
		if opts.URL == "" && cfg.Music.BaseURL != "" {
			opts.URL = cfg.Music.BaseURL + m.ID + cfg.Music.Ext
		}
		if engine.LoadMusic(m.ID, opts) == nil {
			log.Printf("Warning: Could not load music %s", m.ID)
		}
	}
}

// AttachAudio stores the shared engine in this world's Audio singleton.
func AttachAudio(e *ecs.ECS, engine *sound.Engine) {
	GetOrCreateAudio(e).Engine = engine
}

// GetOrCreateAudio returns the singleton Audio component for this ECS, creating it if needed
func GetOrCreateAudio(e *ecs.ECS) *components.AudioData {
	entry, ok := components.Audio.First(e.World)
	if !ok {
		entry = e.World.Entry(e.World.Create(components.Audio))
		components.Audio.SetValue(entry, components.AudioData{
			PendingSFX: make([]components.SoundRequest, 0, 8),
		})
	}
	return components.Audio.Get(entry)
}

// Engine returns the world's audio engine, or nil when none is attached.
func Engine(e *ecs.ECS) *sound.Engine {
	return GetOrCreateAudio(e).Engine
}

// UpdateAudio plays queued sound effects and starts delayed theme music.
func UpdateAudio(e *ecs.ECS) {
	audio := GetOrCreateAudio(e)
	if audio.Engine == nil {
		audio.PendingSFX = audio.PendingSFX[:0]
		return
	}

	for _, req := range audio.PendingSFX {
		playRequest(audio.Engine, req)
	}
	audio.PendingSFX = audio.PendingSFX[:0]

	if audio.PendingMusic != "" {
		audio.MusicDelay -= frameTime()
		if audio.MusicDelay <= 0 {
			audio.Engine.PlayMusic(audio.PendingMusic, sound.MusicPlayOptions{FadeIn: cfg.Audio.ThemeFadeIn})
			audio.PendingMusic = ""
		}
	}
}

// playRequest routes a queued request through the engine's named helpers so
// each sound gets its usual pitch and routing.
func playRequest(engine *sound.Engine, req components.SoundRequest) {
	switch req.ID {
	case synth.Flap:
		engine.PlayFlap(req.Options)
	case synth.Coin:
		engine.PlayCoin(req.Options)
	case synth.PowerUp:
		engine.PlayPowerUp(req.Options)
	case synth.Collision:
		engine.PlayCollision(req.Options)
	case synth.UIClick:
		engine.PlayUIClick()
	case synth.UIHover:
		engine.PlayUIHover()
	case synth.Achievement:
		engine.PlayAchievement()
	default:
		engine.PlaySound(req.ID, req.Options)
	}
}

// PlaySFX queues a sound effect to be played
func PlaySFX(e *ecs.ECS, id string) {
	PlaySFXWith(e, id, sound.PlayOptions{})
}

// PlaySFXWith queues a sound effect with per-play options
func PlaySFXWith(e *ecs.ECS, id string, opts sound.PlayOptions) {
	audio := GetOrCreateAudio(e)
	audio.PendingSFX = append(audio.PendingSFX, components.SoundRequest{ID: id, Options: opts})
}

// PlayMusic starts a music track, cancelling any delayed theme track.
func PlayMusic(e *ecs.ECS, id string) {
	audio := GetOrCreateAudio(e)
	audio.PendingMusic = ""
	if audio.Engine == nil {
		return
	}
	audio.Engine.PlayMusic(id, sound.MusicPlayOptions{})
}

// PlayMusicAfter starts id once delay seconds have passed.
func PlayMusicAfter(e *ecs.ECS, id string, delay float64) {
	audio := GetOrCreateAudio(e)
	audio.PendingMusic = id
	audio.MusicDelay = delay
}

// StopMusic fades the current track out; a negative fadeOut uses the
// track's own fade-out.
func StopMusic(e *ecs.ECS, fadeOut float64) {
	audio := GetOrCreateAudio(e)
	audio.PendingMusic = ""
	if audio.Engine == nil {
		return
	}
	audio.Engine.StopMusic(fadeOut)
}

// ResumeAudio restarts output after the first user interaction.
func ResumeAudio(e *ecs.ECS) {
	engine := Engine(e)
	if engine == nil {
		return
	}
	if err := engine.ResumeAudioContext(); err != nil {
		log.Printf("Warning: Could not resume audio: %v", err)
	}
}

// AudioSettings returns the engine's current settings, or defaults when no
// engine is attached.
func AudioSettings(e *ecs.ECS) sound.Settings {
	engine := Engine(e)
	if engine == nil {
		return sound.DefaultSettings()
	}
	return engine.Settings()
}

// SwitchTheme changes the active theme from "from" to "to" and returns the
// theme now in effect. The current track fades out and the theme-change cue
// plays. During a flight the new theme's track follows after a short delay.
func SwitchTheme(e *ecs.ECS, from, to string, playing bool) string {
	if from == to {
		return from
	}

	theme := cfg.ThemeByID(to)
	StopMusic(e, cfg.Audio.ThemeFadeOut)
	PlaySFX(e, synth.ThemeChange)
	if playing {
		PlayMusicAfter(e, theme.Music, cfg.Audio.ThemeMusicDelay)
	}
	SaveTheme(theme.ID)
	return theme.ID
}

func frameTime() float64 {
	return 1 / float64(cfg.C.TPS)
}
