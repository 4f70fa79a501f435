package components

import (
	cfg "github.com/automoto/butterfly-flight/config"
	"github.com/yohamta/donburi"
)

// PipeData marks one half of a pipe pair
type PipeData struct {
	Top    bool
	Scored bool
}

var Pipe = donburi.NewComponentType[PipeData]()

// CoinData is a collectible coin. BaseY is the resting height the bob
// tween oscillates around.
type CoinData struct {
	Value int
	BaseY float64
}

var Coin = donburi.NewComponentType[CoinData]()

// PowerUpData is a collectible power-up
type PowerUpData struct {
	Kind  cfg.PowerUpKind
	BaseY float64
	Phase float64
}

var PowerUp = donburi.NewComponentType[PowerUpData]()
