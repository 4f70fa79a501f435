package factory

import (
	"github.com/automoto/butterfly-flight/archetypes"
	"github.com/automoto/butterfly-flight/components"
	cfg "github.com/automoto/butterfly-flight/config"
	"github.com/automoto/butterfly-flight/tags"
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// CreateButterfly spawns the player centered on (x, y).
func CreateButterfly(ecs *ecs.ECS, x, y float64) *donburi.Entry {
	butterfly := archetypes.Butterfly.Spawn(ecs)

	size := cfg.Player.Size
	obj := resolv.NewObject(x-size/2, y-size/2, size, size)
	obj.AddTags(tags.ResolvButterfly)
	obj.SetShape(resolv.NewRectangle(0, 0, size, size))
	addToSpace(ecs, butterfly, obj)

	components.Butterfly.SetValue(butterfly, components.ButterflyData{})
	components.Physics.SetValue(butterfly, components.PhysicsData{
		Gravity:  cfg.Physics.Gravity,
		MaxSpeed: cfg.Physics.TerminalVelocity,
	})

	return butterfly
}
