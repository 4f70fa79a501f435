package systems

import (
	"math"

	"github.com/automoto/butterfly-flight/components"
	cfg "github.com/automoto/butterfly-flight/config"
	"github.com/automoto/butterfly-flight/gamemath"
	"github.com/automoto/butterfly-flight/synth"
	"github.com/automoto/butterfly-flight/systems/factory"
	"github.com/automoto/butterfly-flight/tags"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// UpdateButterfly applies flaps and sets the body tilt. Gravity is
// integrated by UpdatePhysics.
func UpdateButterfly(e *ecs.ECS) {
	run := GetRun(e)
	if run == nil {
		return
	}
	input := getOrCreateInput(e)
	flap := GetAction(input, cfg.ActionFlap).JustPressed

	tags.Butterfly.Each(e.World, func(entry *donburi.Entry) {
		b := components.Butterfly.Get(entry)
		physics := components.Physics.Get(entry)
		obj := components.Object.Get(entry)

		switch run.State {
		case cfg.RunReady:
			// Hover in place until the first flap
			b.WingPhase += frameTime() * 4
			if !flap {
				return
			}
			StartRun(e, run)
		case cfg.RunPlaying:
		default:
			return
		}

		dt := frameTime()
		if flap {
			physics.SpeedY = cfg.Physics.FlapImpulse
			b.Flaps++
			PlaySFX(e, synth.Flap)
			c := center(obj.Object)
			factory.SpawnParticles(e, c.X, c.Y, cfg.ParticleFlap, cfg.Particles.FlapCount)
		}

		b.Rotation = gamemath.Tilt(physics.SpeedY, cfg.Physics.TiltPerSpeed, -0.5, 1.2)
		b.WingPhase += dt * (8 + math.Max(0, -physics.SpeedY)/40)
	})
}
