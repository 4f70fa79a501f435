package tags

import "github.com/yohamta/donburi"

var (
	Butterfly = donburi.NewTag().SetName("Butterfly")
	Pipe      = donburi.NewTag().SetName("Pipe")
	Coin      = donburi.NewTag().SetName("Coin")
	PowerUp   = donburi.NewTag().SetName("PowerUp")
	Ground    = donburi.NewTag().SetName("Ground")
)

// Resolv tags for collision checks
const (
	ResolvButterfly = "Butterfly"
	ResolvSolid     = "solid"
	ResolvPipe      = "pipe"
	ResolvGround    = "ground"
	ResolvCoin      = "coin"
	ResolvPowerUp   = "powerup"
)
