package systems

import (
	"github.com/automoto/butterfly-flight/components"
	cfg "github.com/automoto/butterfly-flight/config"
	"github.com/automoto/butterfly-flight/synth"
	"github.com/yohamta/donburi/ecs"
)

// GetRun returns the flight state, or nil outside a flight.
func GetRun(e *ecs.ECS) *components.RunData {
	entry, ok := components.Run.First(e.World)
	if !ok {
		return nil
	}
	return components.Run.Get(entry)
}

// UpdateRun advances the flight clock and counts down timed power-ups.
func UpdateRun(e *ecs.ECS) {
	run := GetRun(e)
	if run == nil || run.State != cfg.RunPlaying {
		return
	}
	dt := frameTime()
	run.Elapsed += dt
	run.SlowTime = max(run.SlowTime-dt, 0)
	run.DoubleScore = max(run.DoubleScore-dt, 0)
	run.Magnet = max(run.Magnet-dt, 0)
}

// StartRun leaves the ready phase on the first flap and starts the theme's
// music.
func StartRun(e *ecs.ECS, run *components.RunData) {
	run.State = cfg.RunPlaying
	PlayMusic(e, cfg.ThemeByID(run.Theme).Music)
}

// EndRun finishes the flight: the crash sound plays, music fades, and
// progress is saved. A new high score earns the achievement cue.
func EndRun(e *ecs.ECS, run *components.RunData) {
	if run.State == cfg.RunOver {
		return
	}
	run.State = cfg.RunOver
	PlaySFX(e, synth.Collision)
	StopMusic(e, -1)

	newHigh := SaveRunResult(run.Score, run.Coins)
	if newHigh && run.Score > 0 {
		PlaySFX(e, synth.Achievement)
	}
	over := GetOrCreateGameOver(e)
	over.SelectedOption = components.GameOverRetry
	over.NewHighScore = newHigh && run.Score > 0
	over.InputDelay = cfg.GameOver.InputDelay
}

// speedFactor slows the world while Slow Time is active.
func speedFactor(run *components.RunData) float64 {
	if run.SlowTime > 0 {
		return cfg.Obstacles.SlowTimeFactor
	}
	return 1
}

// scoreMultiplier doubles points and coins while Double Score is active.
func scoreMultiplier(run *components.RunData) int {
	if run.DoubleScore > 0 {
		return 2
	}
	return 1
}
