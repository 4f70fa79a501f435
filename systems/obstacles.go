package systems

import (
	"math"
	"math/rand/v2"

	"github.com/automoto/butterfly-flight/components"
	cfg "github.com/automoto/butterfly-flight/config"
	"github.com/automoto/butterfly-flight/gamemath"
	"github.com/automoto/butterfly-flight/systems/factory"
	"github.com/automoto/butterfly-flight/tags"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// spawnRand drives pipe gaps and collectible rolls.
var spawnRand = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))

// UpdateObstacles spawns pipe pairs on a timer, scrolls everything left,
// scores passed pipes and removes what has left the screen.
func UpdateObstacles(e *ecs.ECS) {
	run := GetRun(e)
	if run == nil || run.State != cfg.RunPlaying {
		return
	}
	dt := frameTime()
	speed := cfg.Obstacles.PipeSpeed * speedFactor(run)

	run.SpawnTimer -= dt
	if run.SpawnTimer <= 0 {
		run.SpawnTimer += cfg.Obstacles.SpawnInterval
		spawnObstacle(e)
	}

	butterflyX := cfg.Player.StartX
	var target *components.Vector
	if b, ok := tags.Butterfly.First(e.World); ok {
		obj := components.Object.Get(b)
		butterflyX = obj.X
		c := center(obj.Object)
		target = &components.Vector{X: c.X, Y: c.Y}
	}

	var gone []*donburi.Entry
	tags.Pipe.Each(e.World, func(entry *donburi.Entry) {
		obj := components.Object.Get(entry)
		pipe := components.Pipe.Get(entry)
		obj.X -= speed * dt

		// Each pair scores once, on its top half
		if pipe.Top && !pipe.Scored && obj.X+obj.W < butterflyX {
			pipe.Scored = true
			run.Score += scoreMultiplier(run)
		}
		if obj.X+obj.W < 0 {
			gone = append(gone, entry)
		}
	})

	tags.Coin.Each(e.World, func(entry *donburi.Entry) {
		obj := components.Object.Get(entry)
		coin := components.Coin.Get(entry)
		obj.X -= speed * dt
		if run.Magnet > 0 && target != nil {
			pullCoin(obj.X+obj.W/2, coin.BaseY+obj.H/2, *target, dt, &obj.X, &coin.BaseY)
		}

		tw := components.Tween.Get(entry)
		// The third result reports the whole sequence finishing
		offset, _, done := tw.Update(float32(dt))
		if done {
			tw.Reset()
		}
		obj.Y = coin.BaseY + float64(offset)

		if obj.X+obj.W < 0 {
			gone = append(gone, entry)
		}
	})

	tags.PowerUp.Each(e.World, func(entry *donburi.Entry) {
		obj := components.Object.Get(entry)
		p := components.PowerUp.Get(entry)
		obj.X -= speed * dt
		p.Phase += 3 * dt
		obj.Y = p.BaseY + math.Sin(p.Phase)*8

		if obj.X+obj.W < 0 {
			gone = append(gone, entry)
		}
	})

	for _, entry := range gone {
		factory.Destroy(e, entry)
	}
}

// pullCoin moves a coin toward target when it is within magnet range.
func pullCoin(cx, cy float64, target components.Vector, dt float64, x, baseY *float64) {
	dx, dy := gamemath.HomingStep(cx, cy, target.X, target.Y, cfg.PowerUps.MagnetPull, cfg.PowerUps.MagnetRange, dt)
	*x += dx
	*baseY += dy
}

// spawnObstacle places a pipe pair just off the right edge with a random
// gap, and sometimes a coin or power-up inside the gap.
func spawnObstacle(e *ecs.ECS) {
	x := float64(cfg.C.Width)
	gapY := randomGapY(spawnRand.Float64())
	factory.CreatePipePair(e, x, gapY)

	mid := x + cfg.Obstacles.PipeWidth/2
	if spawnRand.Float64() < cfg.Obstacles.CoinChance {
		factory.CreateCoin(e, mid+(spawnRand.Float64()-0.5)*60, gapY+(spawnRand.Float64()-0.5)*80)
	} else if spawnRand.Float64() < cfg.Obstacles.PowerUpChance {
		kind := cfg.PowerUpKind(spawnRand.IntN(int(cfg.PowerUpKindCount)))
		factory.CreatePowerUp(e, mid, gapY+(spawnRand.Float64()-0.5)*60, kind, spawnRand.Float64()*2*math.Pi)
	}
}

// randomGapY maps r in [0,1) to a gap center that keeps both pipes at
// least TopMargin tall.
func randomGapY(r float64) float64 {
	half := cfg.Obstacles.PipeGap / 2
	lo := cfg.Obstacles.TopMargin + half
	hi := float64(cfg.C.Height) - cfg.Obstacles.GroundHeight - cfg.Obstacles.TopMargin - half
	return lo + r*(hi-lo)
}
