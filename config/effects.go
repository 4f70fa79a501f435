package config

import "image/color"

// ParticleKind selects the color, size and lifetime of a burst
type ParticleKind int

const (
	ParticleFlap ParticleKind = iota
	ParticleCoin
	ParticlePowerUp
	ParticleCollision
	ParticleShield
	ParticleMagnet
	ParticleSlowTime
	ParticleDoubleScore
	ParticleThemeChange
)

// ParticleStyle describes one kind of particle
type ParticleStyle struct {
	Color      color.RGBA
	MinSize    float64
	SizeRange  float64
	Life       float64 // seconds
	SpeedScale float64
}

// ParticleConfig contains particle burst values
type ParticleConfig struct {
	MaxParticles int
	Spread       float64 // initial speed range in px/s
	Gravity      float64 // px/s²
	Drag         float64 // velocity kept per frame
	Styles       map[ParticleKind]ParticleStyle

	FlapCount        int
	CoinCount        int
	PowerUpCount     int
	CollisionCount   int
	ThemeChangeCount int
}

// ScreenShakeConfig contains screen shake effect configuration
type ScreenShakeConfig struct {
	CollisionIntensity float64 // pixels
	CollisionDuration  int     // frames
	ShieldIntensity    float64
	ShieldDuration     int
}

// FloatingTextConfig controls score popups
type FloatingTextConfig struct {
	Life  float64 // seconds
	Speed float64 // px/s upward
}

var Particles ParticleConfig
var ScreenShake ScreenShakeConfig
var FloatingText FloatingTextConfig

func init() {
	Particles = ParticleConfig{
		MaxParticles: 100,
		Spread:       200,
		Gravity:      300,
		Drag:         0.98,
		Styles: map[ParticleKind]ParticleStyle{
			ParticleFlap:        {Color: rgb(0x87, 0xCE, 0xEB), MinSize: 2, SizeRange: 6, Life: 1, SpeedScale: 1},
			ParticleCoin:        {Color: Gold, MinSize: 3, SizeRange: 4, Life: 1.5, SpeedScale: 1},
			ParticlePowerUp:     {Color: HotPink, MinSize: 4, SizeRange: 8, Life: 2, SpeedScale: 1},
			ParticleCollision:   {Color: rgb(0xFF, 0x45, 0x00), MinSize: 2, SizeRange: 6, Life: 1, SpeedScale: 1},
			ParticleShield:      {Color: rgb(0x87, 0xCE, 0xEB), MinSize: 4, SizeRange: 6, Life: 1, SpeedScale: 0.5},
			ParticleMagnet:      {Color: Tomato, MinSize: 3, SizeRange: 5, Life: 1, SpeedScale: 1},
			ParticleSlowTime:    {Color: rgb(0xDD, 0xA0, 0xDD), MinSize: 2, SizeRange: 6, Life: 3, SpeedScale: 0.3},
			ParticleDoubleScore: {Color: rgb(0xFF, 0xFF, 0x99), MinSize: 3, SizeRange: 7, Life: 1, SpeedScale: 1},
			ParticleThemeChange: {Color: White, MinSize: 2, SizeRange: 6, Life: 1, SpeedScale: 1.5},
		},
		FlapCount:        8,
		CoinCount:        12,
		PowerUpCount:     20,
		CollisionCount:   25,
		ThemeChangeCount: 20,
	}

	ScreenShake = ScreenShakeConfig{
		CollisionIntensity: 5,
		CollisionDuration:  12,
		ShieldIntensity:    3,
		ShieldDuration:     8,
	}

	FloatingText = FloatingTextConfig{
		Life:  0.8,
		Speed: 60,
	}
}
