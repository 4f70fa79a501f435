package components

import (
	"github.com/yohamta/donburi"
)

// Vector represents a 2D vector.
type Vector struct {
	X, Y float64
}

// PhysicsData is the butterfly's vertical motion in px/s
type PhysicsData struct {
	SpeedY   float64
	Gravity  float64
	MaxSpeed float64
}

var Physics = donburi.NewComponentType[PhysicsData]()
