package factory

import (
	"github.com/automoto/butterfly-flight/archetypes"
	"github.com/automoto/butterfly-flight/components"
	cfg "github.com/automoto/butterfly-flight/config"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// CreateRun spawns the flight state singleton in the ready phase.
func CreateRun(ecs *ecs.ECS, theme, skin string) *donburi.Entry {
	run := archetypes.Run.Spawn(ecs)
	components.Run.SetValue(run, components.RunData{
		State:      cfg.RunReady,
		SpawnTimer: cfg.Obstacles.SpawnInterval,
		LastCoinAt: -cfg.CoinStreak.Window,
		Theme:      theme,
		Skin:       skin,
	})
	return run
}
