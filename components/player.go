package components

import "github.com/yohamta/donburi"

// ButterflyData is the player's visual and defensive state
type ButterflyData struct {
	Rotation  float64
	WingPhase float64
	Shield    int     // hits absorbed before a collision ends the run
	Grace     float64 // seconds of immunity after the shield is spent
	Flaps     int
}

var Butterfly = donburi.NewComponentType[ButterflyData]()
