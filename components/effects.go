package components

import (
	"image/color"

	cfg "github.com/automoto/butterfly-flight/config"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/math"
)

// ScreenShakeData tracks active screen shake effect on the camera
type ScreenShakeData struct {
	Intensity float64 // max offset in pixels
	Duration  int     // total frames
	Elapsed   int     // frames elapsed (for oscillation)
}

var ScreenShake = donburi.NewComponentType[ScreenShakeData]()

// ParticleData is one short-lived spark. Life counts down to zero.
type ParticleData struct {
	Kind     cfg.ParticleKind
	Position math.Vec2
	Velocity math.Vec2
	Life     float64
	MaxLife  float64
	Size     float64
	Color    color.RGBA
}

var Particle = donburi.NewComponentType[ParticleData]()

// FloatingTextData is a popup such as "+2" that drifts up and fades.
type FloatingTextData struct {
	Text     string
	Position math.Vec2
	Color    color.RGBA
	Life     float64
	MaxLife  float64
}

var FloatingText = donburi.NewComponentType[FloatingTextData]()
