package config

import (
	"image/color"

	"github.com/yohamta/donburi/ecs"
)

// Default is the single ECS layer every system and renderer runs on.
const Default ecs.LayerID = 0

// Config holds general game configuration
type Config struct {
	Width  int
	Height int
	TPS    int
}

// PhysicsConfig contains butterfly physics values in pixels and seconds
type PhysicsConfig struct {
	Gravity          float64 // px/s²
	FlapImpulse      float64 // px/s, negative is upward
	TerminalVelocity float64 // maximum fall speed
	MaxDeltaTime     float64 // cap per update
	TiltPerSpeed     float64 // radians of body tilt per px/s of vertical speed
}

// PlayerConfig contains butterfly placement and size
type PlayerConfig struct {
	Size   float64
	StartX float64
	StartY float64
}

// ObstacleConfig contains pipe and collectible spawning values
type ObstacleConfig struct {
	PipeSpeed      float64 // px/s
	SpawnInterval  float64 // seconds
	PipeGap        float64
	PipeWidth      float64
	GroundHeight   float64
	TopMargin      float64 // minimum pipe height above the gap
	CoinChance     float64
	CoinSize       float64
	CoinValue      int
	CoinBob        float64 // pixels
	CoinBobPeriod  float64 // seconds per half cycle
	PowerUpChance  float64
	PowerUpSize    float64
	SlowTimeFactor float64
}

// CoinStreakConfig controls the streak bonus and pitch rise
type CoinStreakConfig struct {
	Window       float64 // seconds between coins that keep a streak alive
	BonusPerCoin float64
	MaxBonus     float64
	PitchBase    float64
	PitchStep    float64
	PitchMax     float64 // ceiling for long streaks
}

// PowerUpConfig contains power-up durations in seconds
type PowerUpConfig struct {
	SlowTime    float64
	DoubleScore float64
	Magnet      float64
	MagnetRange float64
	MagnetPull  float64 // px/s toward the butterfly
}

// MenuConfig contains main menu configuration values
type MenuConfig struct {
	BackgroundColor   color.RGBA
	TitleColor        color.RGBA
	TextColorNormal   color.RGBA
	TextColorSelected color.RGBA
	TitleY            float64
	MenuStartY        float64
	MenuItemHeight    float64
	MenuItemGap       float64
	MenuOptions       []string
}

// GameOverConfig contains game over overlay configuration values
type GameOverConfig struct {
	OverlayColor      color.RGBA
	TitleColor        color.RGBA
	TextColorNormal   color.RGBA
	TextColorSelected color.RGBA
	TitleY            float64
	MenuStartY        float64
	MenuItemHeight    float64
	MenuItemGap       float64
	MenuOptions       []string
	InputDelay        float64 // seconds
}

// PauseConfig contains pause overlay configuration values
type PauseConfig struct {
	OverlayColor      color.RGBA
	TextColorNormal   color.RGBA
	TextColorSelected color.RGBA
	MenuItemHeight    float64
	MenuItemGap       float64
	MenuOptions       []string
}

// HUDConfig contains in-game overlay values
type HUDConfig struct {
	Margin       float64
	LineHeight   float64
	ShieldColor  color.RGBA
	CoinColor    color.RGBA
	PowerUpColor color.RGBA
}

// Global configuration instances
var C *Config
var Physics PhysicsConfig
var Player PlayerConfig
var Obstacles ObstacleConfig
var CoinStreak CoinStreakConfig
var PowerUps PowerUpConfig
var Menu MenuConfig
var GameOver GameOverConfig
var Pause PauseConfig
var HUD HUDConfig

// Shared RGBA color constants
var (
	White        = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	Gold         = color.RGBA{R: 255, G: 215, B: 0, A: 255}
	Tomato       = color.RGBA{R: 255, G: 99, B: 71, A: 255}
	BrightOrange = color.RGBA{R: 255, G: 180, B: 50, A: 255}
	LightBlue    = color.RGBA{R: 100, G: 180, B: 255, A: 255}
	HotPink      = color.RGBA{R: 255, G: 105, B: 180, A: 255}
	BlackOverlay = color.RGBA{R: 0, G: 0, B: 0, A: 180}
)

func init() {
	C = &Config{
		Width:  800,
		Height: 600,
		TPS:    60,
	}

	Physics = PhysicsConfig{
		Gravity:          1500,
		FlapImpulse:      -420,
		TerminalVelocity: 800,
		MaxDeltaTime:     1.0 / 30,
		TiltPerSpeed:     0.001,
	}

	Player = PlayerConfig{
		Size:   40,
		StartX: 150,
		StartY: 300,
	}

	Obstacles = ObstacleConfig{
		PipeSpeed:      220,
		SpawnInterval:  1.4,
		PipeGap:        150,
		PipeWidth:      80,
		GroundHeight:   100,
		TopMargin:      50,
		CoinChance:     0.3,
		CoinSize:       25,
		CoinValue:      1,
		CoinBob:        6,
		CoinBobPeriod:  0.6,
		PowerUpChance:  0.15,
		PowerUpSize:    35,
		SlowTimeFactor: 0.5,
	}

	CoinStreak = CoinStreakConfig{
		Window:       2.0,
		BonusPerCoin: 0.1,
		MaxBonus:     1.0,
		PitchBase:    0.1,
		PitchStep:    0.02,
		PitchMax:     0.5,
	}

	PowerUps = PowerUpConfig{
		SlowTime:    3,
		DoubleScore: 10,
		Magnet:      5,
		MagnetRange: 150,
		MagnetPull:  300,
	}

	Menu = MenuConfig{
		BackgroundColor:   color.RGBA{R: 30, G: 20, B: 60, A: 255},
		TitleColor:        HotPink,
		TextColorNormal:   White,
		TextColorSelected: BrightOrange,
		TitleY:            140,
		MenuStartY:        260,
		MenuItemHeight:    30,
		MenuItemGap:       14,
		MenuOptions:       []string{"Play", "Theme", "Shop", "Settings", "Exit"},
	}

	GameOver = GameOverConfig{
		OverlayColor:      BlackOverlay,
		TitleColor:        Tomato,
		TextColorNormal:   White,
		TextColorSelected: BrightOrange,
		TitleY:            180,
		MenuStartY:        320,
		MenuItemHeight:    30,
		MenuItemGap:       15,
		MenuOptions:       []string{"Retry", "Main Menu"},
		InputDelay:        0.6,
	}

	Pause = PauseConfig{
		OverlayColor:      BlackOverlay,
		TextColorNormal:   White,
		TextColorSelected: BrightOrange,
		MenuItemHeight:    30,
		MenuItemGap:       15,
		MenuOptions:       []string{"Resume", "Settings", "Main Menu"},
	}

	HUD = HUDConfig{
		Margin:       16,
		LineHeight:   22,
		ShieldColor:  LightBlue,
		CoinColor:    Gold,
		PowerUpColor: color.RGBA{R: 152, G: 251, B: 152, A: 255},
	}
}
