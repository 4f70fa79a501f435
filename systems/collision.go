package systems

import (
	"fmt"

	"github.com/automoto/butterfly-flight/components"
	cfg "github.com/automoto/butterfly-flight/config"
	"github.com/automoto/butterfly-flight/gamemath"
	"github.com/automoto/butterfly-flight/sound"
	"github.com/automoto/butterfly-flight/synth"
	"github.com/automoto/butterfly-flight/systems/factory"
	"github.com/automoto/butterfly-flight/tags"
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// shieldGrace is how long a spent shield keeps the butterfly safe so the
// same pipe cannot hit twice.
const shieldGrace = 0.5

// CheckCollisions resolves butterfly hits against pipes, the ground and
// collectibles.
func CheckCollisions(e *ecs.ECS) {
	run := GetRun(e)
	if run == nil || run.State != cfg.RunPlaying {
		return
	}
	entry, ok := tags.Butterfly.First(e.World)
	if !ok {
		return
	}
	butterfly := components.Butterfly.Get(entry)
	obj := components.Object.Get(entry).Object

	butterfly.Grace = max(butterfly.Grace-frameTime(), 0)

	if hitSolid(obj) && butterfly.Grace == 0 {
		if butterfly.Shield > 0 {
			butterfly.Shield--
			butterfly.Grace = shieldGrace
			PlaySFX(e, synth.PowerUp)
			c := center(obj)
			factory.SpawnRing(e, c.X, c.Y, cfg.Player.Size*0.7, cfg.ParticleShield, cfg.Particles.CollisionCount)
			TriggerScreenShake(e, cfg.ScreenShake.ShieldIntensity, cfg.ScreenShake.ShieldDuration)
		} else {
			c := center(obj)
			factory.SpawnParticles(e, c.X, c.Y, cfg.ParticleCollision, cfg.Particles.CollisionCount)
			TriggerScreenShake(e, cfg.ScreenShake.CollisionIntensity, cfg.ScreenShake.CollisionDuration)
			EndRun(e, run)
			return
		}
	}

	for _, coin := range touching(obj, tags.ResolvCoin) {
		collectCoin(e, run, obj, coin)
	}
	for _, p := range touching(obj, tags.ResolvPowerUp) {
		collectPowerUp(e, run, butterfly, obj, p)
	}
}

func hitSolid(obj *resolv.Object) bool {
	if obj.Y+obj.H >= float64(cfg.C.Height)-cfg.Obstacles.GroundHeight {
		return true
	}
	return len(touching(obj, tags.ResolvSolid)) > 0
}

// touching returns the entries tagged tag whose boxes overlap obj.
func touching(obj *resolv.Object, tag string) []*donburi.Entry {
	check := obj.Check(0, 0, tag)
	if check == nil {
		return nil
	}
	var out []*donburi.Entry
	for _, other := range check.Objects {
		if !overlaps(obj, other) {
			continue
		}
		if entry, ok := other.Data.(*donburi.Entry); ok && entry.Valid() {
			out = append(out, entry)
		}
	}
	return out
}

// soundAt positions a spatial sound at emitter heard from listener.
func soundAt(emitter, listener *resolv.Object) sound.PlayOptions {
	pos, at := center(emitter), center(listener)
	return sound.PlayOptions{Position: &pos, Listener: &at}
}

// collectCoin banks a coin with the streak bonus. Coins collected within the
// streak window raise the pitch of the pickup sound.
func collectCoin(e *ecs.ECS, run *components.RunData, butterfly *resolv.Object, entry *donburi.Entry) {
	coin := components.Coin.Get(entry)
	obj := components.Object.Get(entry).Object

	if run.Elapsed-run.LastCoinAt < cfg.CoinStreak.Window {
		run.Streak++
	} else {
		run.Streak = 1
	}
	run.LastCoinAt = run.Elapsed
	value := coinValue(coin.Value, run.Streak, scoreMultiplier(run))
	run.Coins += value

	c := center(obj)
	factory.SpawnParticles(e, c.X, c.Y, cfg.ParticleCoin, cfg.Particles.CoinCount)
	factory.SpawnFloatingText(e, c.X, c.Y-10, fmt.Sprintf("+%d", value), cfg.HUD.CoinColor)

	opts := soundAt(obj, butterfly)
	opts.PitchVariation = streakPitch(run.Streak)
	PlaySFXWith(e, synth.Coin, opts)

	factory.Destroy(e, entry)
}

// coinValue applies the streak bonus and the score multiplier, rounding up.
func coinValue(base, streak, multiplier int) int {
	bonus := gamemath.StreakBonus(streak, cfg.CoinStreak.BonusPerCoin, cfg.CoinStreak.MaxBonus)
	return gamemath.CoinValue(base, bonus, multiplier)
}

// streakPitch is the coin pitch variation for a streak of n coins.
func streakPitch(n int) float64 {
	return min(cfg.CoinStreak.PitchBase+float64(n)*cfg.CoinStreak.PitchStep, cfg.CoinStreak.PitchMax)
}

func collectPowerUp(e *ecs.ECS, run *components.RunData, butterfly *components.ButterflyData, bobj *resolv.Object, entry *donburi.Entry) {
	p := components.PowerUp.Get(entry)
	obj := components.Object.Get(entry).Object

	run.PowerUps++
	activatePowerUp(run, butterfly, p.Kind)
	PlaySFXWith(e, synth.PowerUp, soundAt(obj, bobj))
	powerUpBurst(e, obj, bobj, p.Kind)

	factory.Destroy(e, entry)
}

func activatePowerUp(run *components.RunData, butterfly *components.ButterflyData, kind cfg.PowerUpKind) {
	switch kind {
	case cfg.PowerUpShield:
		butterfly.Shield = 1
	case cfg.PowerUpSlowTime:
		run.SlowTime = cfg.PowerUps.SlowTime
	case cfg.PowerUpDoubleScore:
		run.DoubleScore = cfg.PowerUps.DoubleScore
	case cfg.PowerUpMagnet:
		run.Magnet = cfg.PowerUps.Magnet
	}
}

// powerUpBurst shows the pickup and the effect that just started.
func powerUpBurst(e *ecs.ECS, pickup, butterfly *resolv.Object, kind cfg.PowerUpKind) {
	c, at := center(pickup), center(butterfly)
	factory.SpawnParticles(e, c.X, c.Y, cfg.ParticlePowerUp, cfg.Particles.PowerUpCount)
	factory.SpawnFloatingText(e, c.X, c.Y-14, kind.String(), powerUpColor(kind))

	switch kind {
	case cfg.PowerUpShield:
		factory.SpawnRing(e, at.X, at.Y, cfg.Player.Size*0.7, cfg.ParticleShield, 12)
	case cfg.PowerUpSlowTime:
		factory.SpawnParticles(e, float64(cfg.C.Width)/2, float64(cfg.C.Height)/2, cfg.ParticleSlowTime, 30)
	case cfg.PowerUpDoubleScore:
		factory.SpawnParticles(e, at.X, at.Y, cfg.ParticleDoubleScore, 20)
	case cfg.PowerUpMagnet:
		factory.SpawnParticles(e, at.X, at.Y, cfg.ParticleMagnet, 25)
	}
}
