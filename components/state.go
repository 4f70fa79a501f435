package components

import (
	cfg "github.com/automoto/butterfly-flight/config"
	"github.com/yohamta/donburi"
)

// RunData is the state of the current flight (singleton component)
type RunData struct {
	State   cfg.RunStateID
	Elapsed float64

	Score      int
	Coins      int
	Streak     int
	LastCoinAt float64
	PowerUps   int

	SpawnTimer float64

	// Remaining seconds for timed power-ups
	SlowTime    float64
	DoubleScore float64
	Magnet      float64

	Theme string
	Skin  string
}

var Run = donburi.NewComponentType[RunData]()
