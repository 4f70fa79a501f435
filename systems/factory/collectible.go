package factory

import (
	"github.com/automoto/butterfly-flight/archetypes"
	"github.com/automoto/butterfly-flight/components"
	cfg "github.com/automoto/butterfly-flight/config"
	"github.com/automoto/butterfly-flight/tags"
	"github.com/solarlune/resolv"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// CreateCoin spawns a coin centered on (x, y).
func CreateCoin(ecs *ecs.ECS, x, y float64) *donburi.Entry {
	coin := archetypes.Coin.Spawn(ecs)

	size := cfg.Obstacles.CoinSize
	obj := resolv.NewObject(x-size/2, y-size/2, size, size)
	obj.AddTags(tags.ResolvCoin)
	obj.SetShape(resolv.NewRectangle(0, 0, size, size))
	addToSpace(ecs, coin, obj)

	components.Coin.SetValue(coin, components.CoinData{
		Value: cfg.Obstacles.CoinValue,
		BaseY: obj.Y,
	})

	// The coin bobs using a *gween.Sequence of offsets around BaseY, reset
	// each time it finishes.
	bob := cfg.Obstacles.CoinBob
	period := float32(cfg.Obstacles.CoinBobPeriod)
	tw := gween.NewSequence()
	tw.Add(
		gween.New(float32(-bob), float32(bob), period, ease.InOutSine),
		gween.New(float32(bob), float32(-bob), period, ease.InOutSine),
	)
	components.Tween.Set(coin, tw)

	return coin
}

// CreatePowerUp spawns a power-up of kind centered on (x, y).
func CreatePowerUp(ecs *ecs.ECS, x, y float64, kind cfg.PowerUpKind, phase float64) *donburi.Entry {
	powerUp := archetypes.PowerUp.Spawn(ecs)

	size := cfg.Obstacles.PowerUpSize
	obj := resolv.NewObject(x-size/2, y-size/2, size, size)
	obj.AddTags(tags.ResolvPowerUp)
	obj.SetShape(resolv.NewRectangle(0, 0, size, size))
	addToSpace(ecs, powerUp, obj)

	components.PowerUp.SetValue(powerUp, components.PowerUpData{
		Kind:  kind,
		BaseY: obj.Y,
		Phase: phase,
	})

	return powerUp
}
