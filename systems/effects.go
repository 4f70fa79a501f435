package systems

import (
	"github.com/automoto/butterfly-flight/components"
	cfg "github.com/automoto/butterfly-flight/config"
	"github.com/automoto/butterfly-flight/fonts"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text" //nolint:staticcheck // TODO: migrate to text/v2
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// UpdateEffects moves particles and floating text and removes expired ones.
// Effects keep moving on the game over screen but freeze while paused.
func UpdateEffects(e *ecs.ECS) {
	if run := GetRun(e); run != nil && run.State == cfg.RunPaused {
		return
	}
	dt := frameTime()
	var toRemove []*donburi.Entry

	components.Particle.Each(e.World, func(entry *donburi.Entry) {
		p := components.Particle.Get(entry)
		stepParticle(p, dt)
		if p.Life <= 0 {
			toRemove = append(toRemove, entry)
		}
	})

	components.FloatingText.Each(e.World, func(entry *donburi.Entry) {
		t := components.FloatingText.Get(entry)
		t.Position.Y -= cfg.FloatingText.Speed * dt
		t.Life -= dt
		if t.Life <= 0 {
			toRemove = append(toRemove, entry)
		}
	})

	for _, entry := range toRemove {
		entry.Remove()
	}
}

// stepParticle advances one particle by dt seconds. Life drains two units
// per second.
func stepParticle(p *components.ParticleData, dt float64) {
	p.Position.X += p.Velocity.X * dt
	p.Position.Y += p.Velocity.Y * dt
	p.Velocity.Y += cfg.Particles.Gravity * dt
	p.Life -= dt * 2
	p.Velocity.X *= cfg.Particles.Drag
	p.Velocity.Y *= cfg.Particles.Drag
}

// DrawEffects renders particles and floating text.
func DrawEffects(e *ecs.ECS, screen *ebiten.Image) {
	ox, oy := cameraOffset(e)

	components.Particle.Each(e.World, func(entry *donburi.Entry) {
		p := components.Particle.Get(entry)
		alpha := p.Life / p.MaxLife
		if alpha <= 0 {
			return
		}
		x, y := float32(p.Position.X)+ox, float32(p.Position.Y)+oy
		r := float32(p.Size * alpha)
		a := uint8(255 * alpha)
		vector.DrawFilledCircle(screen, x, y, r, withAlpha(p.Color, a), true)
		if p.Kind == cfg.ParticleCoin {
			// Inner sparkle
			vector.DrawFilledCircle(screen, x, y, r/2, withAlpha(cfg.White, a), true)
		}
	})

	face := fonts.Bold.Get()
	components.FloatingText.Each(e.World, func(entry *donburi.Entry) {
		t := components.FloatingText.Get(entry)
		alpha := t.Life / t.MaxLife
		if alpha <= 0 {
			return
		}
		w := text.BoundString(face, t.Text).Dx()
		text.Draw(screen, t.Text, face, int(t.Position.X)-w/2, int(t.Position.Y), withAlpha(t.Color, uint8(255*alpha)))
	})
}
