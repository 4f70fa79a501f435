package factory

import (
	"image/color"
	"math"
	"math/rand/v2"

	"github.com/automoto/butterfly-flight/archetypes"
	"github.com/automoto/butterfly-flight/components"
	cfg "github.com/automoto/butterfly-flight/config"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
	dmath "github.com/yohamta/donburi/features/math"
	"github.com/yohamta/donburi/filter"
)

var particleQuery = donburi.NewQuery(filter.Contains(components.Particle))

// SpawnParticles bursts count particles of kind from (x, y). Bursts stop
// early once the world holds cfg.Particles.MaxParticles.
func SpawnParticles(ecs *ecs.ECS, x, y float64, kind cfg.ParticleKind, count int) {
	style, ok := cfg.Particles.Styles[kind]
	if !ok {
		return
	}
	live := particleQuery.Count(ecs.World)
	for i := 0; i < count && live < cfg.Particles.MaxParticles; i++ {
		spread := cfg.Particles.Spread * style.SpeedScale
		entry := archetypes.Particle.Spawn(ecs)
		components.Particle.Set(entry, &components.ParticleData{
			Kind:     kind,
			Position: dmath.NewVec2(x, y),
			Velocity: dmath.NewVec2((rand.Float64()-0.5)*spread, (rand.Float64()-0.5)*spread),
			Life:     style.Life,
			MaxLife:  style.Life,
			Size:     style.MinSize + rand.Float64()*style.SizeRange,
			Color:    style.Color,
		})
		live++
	}
}

// SpawnRing places count particles of kind evenly on a circle around (x, y).
func SpawnRing(ecs *ecs.ECS, x, y, radius float64, kind cfg.ParticleKind, count int) {
	for i := 0; i < count; i++ {
		a := 2 * math.Pi * float64(i) / float64(count)
		SpawnParticles(ecs, x+math.Cos(a)*radius, y+math.Sin(a)*radius, kind, 1)
	}
}

// SpawnFloatingText shows a popup at (x, y).
func SpawnFloatingText(ecs *ecs.ECS, x, y float64, text string, clr color.RGBA) {
	entry := archetypes.FloatingText.Spawn(ecs)
	components.FloatingText.Set(entry, &components.FloatingTextData{
		Text:     text,
		Position: dmath.NewVec2(x, y),
		Color:    clr,
		Life:     cfg.FloatingText.Life,
		MaxLife:  cfg.FloatingText.Life,
	})
}
