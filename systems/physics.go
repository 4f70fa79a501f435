package systems

import (
	"github.com/automoto/butterfly-flight/components"
	cfg "github.com/automoto/butterfly-flight/config"
	"github.com/automoto/butterfly-flight/gamemath"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// UpdatePhysics integrates gravity for every body while a run is playing.
// Bodies stop at the top of the screen.
func UpdatePhysics(ecs *ecs.ECS) {
	run := GetRun(ecs)
	if run == nil || run.State != cfg.RunPlaying {
		return
	}
	dt := frameTime()

	components.Physics.Each(ecs.World, func(e *donburi.Entry) {
		physics := components.Physics.Get(e)
		obj := components.Object.Get(e)

		physics.SpeedY = gamemath.StepFall(physics.SpeedY, physics.Gravity, physics.MaxSpeed, dt)
		obj.Y += physics.SpeedY * dt
		if obj.Y < 0 {
			obj.Y = 0
			physics.SpeedY = 0
		}
	})
}
