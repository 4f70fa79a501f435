package archetypes

import (
	"github.com/automoto/butterfly-flight/components"
	cfg "github.com/automoto/butterfly-flight/config"
	"github.com/automoto/butterfly-flight/tags"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

var (
	Butterfly = newArchetype(
		tags.Butterfly,
		components.Butterfly,
		components.Object,
		components.Physics,
	)
	Pipe = newArchetype(
		tags.Pipe,
		components.Pipe,
		components.Object,
	)
	Ground = newArchetype(
		tags.Ground,
		components.Object,
	)
	Coin = newArchetype(
		tags.Coin,
		components.Coin,
		components.Object,
		components.Tween,
	)
	PowerUp = newArchetype(
		tags.PowerUp,
		components.PowerUp,
		components.Object,
	)
	Space = newArchetype(
		components.Space,
	)
	Run = newArchetype(
		components.Run,
	)
	Camera = newArchetype(
		components.Camera,
	)
	Particle = newArchetype(
		components.Particle,
	)
	FloatingText = newArchetype(
		components.FloatingText,
	)
)

type archetype struct {
	components []donburi.IComponentType
}

func newArchetype(cs ...donburi.IComponentType) *archetype {
	return &archetype{
		components: cs,
	}
}

func (a *archetype) Spawn(ecs *ecs.ECS, cs ...donburi.IComponentType) *donburi.Entry {
	e := ecs.World.Entry(ecs.Create(
		cfg.Default,
		append(a.components, cs...)...,
	))
	return e
}
