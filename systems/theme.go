package systems

import (
	"github.com/automoto/butterfly-flight/components"
	cfg "github.com/automoto/butterfly-flight/config"
	"github.com/automoto/butterfly-flight/systems/factory"
	"github.com/yohamta/donburi/ecs"
)

// UpdateTheme cycles to the next unlocked theme during a flight.
func UpdateTheme(e *ecs.ECS) {
	run := GetRun(e)
	if run == nil || run.State == cfg.RunPaused || run.State == cfg.RunOver {
		return
	}
	input := getOrCreateInput(e)
	if !GetAction(input, cfg.ActionTheme).JustPressed {
		return
	}
	next := nextOwnedTheme(run.Theme)
	if next.ID == run.Theme {
		return
	}
	run.Theme = SwitchTheme(e, run.Theme, next.ID, run.State == cfg.RunPlaying)
	themeBurst(e)
}

// nextOwnedTheme returns the first unlocked theme after id in cycling
// order, or id's theme when nothing else is unlocked.
func nextOwnedTheme(id string) cfg.Theme {
	inv := LoadInventory()
	next := cfg.NextTheme(id)
	for next.ID != id && !inv.OwnsTheme(next.ID) {
		next = cfg.NextTheme(next.ID)
	}
	return next
}

// currentTheme returns the theme the world is painted with.
func currentTheme(e *ecs.ECS) cfg.Theme {
	if run := GetRun(e); run != nil {
		return cfg.ThemeByID(run.Theme)
	}
	if entry, ok := components.Menu.First(e.World); ok {
		return cfg.ThemeByID(components.Menu.Get(entry).Theme)
	}
	return cfg.ThemeByID(cfg.Themes.Default)
}

// themeBurst sparkles across the middle of the screen.
func themeBurst(e *ecs.ECS) {
	factory.SpawnParticles(e, float64(cfg.C.Width)/2, float64(cfg.C.Height)/2, cfg.ParticleThemeChange, cfg.Particles.ThemeChangeCount)
}
