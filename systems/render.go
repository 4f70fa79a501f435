package systems

import (
	"image/color"
	"math"

	"github.com/automoto/butterfly-flight/components"
	cfg "github.com/automoto/butterfly-flight/config"
	"github.com/automoto/butterfly-flight/tags"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// DrawBackground fills the sky with the theme palette and a slow band of
// parallax hills.
func DrawBackground(e *ecs.ECS, screen *ebiten.Image) {
	theme := currentTheme(e)
	screen.Fill(theme.Colors.Background)

	var scroll float64
	if run := GetRun(e); run != nil {
		scroll = run.Elapsed * cfg.Obstacles.PipeSpeed * 0.2
	}
	w := float64(screen.Bounds().Dx())
	groundY := float64(cfg.C.Height) - cfg.Obstacles.GroundHeight
	hill := withAlpha(theme.Colors.Secondary, 160)
	const spacing = 160.0
	offset := math.Mod(scroll, spacing)
	for x := -offset; x < w+spacing; x += spacing {
		vector.DrawFilledCircle(screen, float32(x), float32(groundY+20), 90, hill, true)
	}
}

// DrawWorld renders ground, pipes and collectibles.
func DrawWorld(e *ecs.ECS, screen *ebiten.Image) {
	theme := currentTheme(e)
	ox, oy := cameraOffset(e)

	tags.Ground.Each(e.World, func(entry *donburi.Entry) {
		obj := components.Object.Get(entry)
		x, y := float32(obj.X)+ox, float32(obj.Y)+oy
		vector.DrawFilledRect(screen, x, y, float32(obj.W), float32(obj.H), theme.Colors.Secondary, false)
		vector.DrawFilledRect(screen, x, y, float32(obj.W), 6, theme.Colors.Primary, false)
	})

	tags.Pipe.Each(e.World, func(entry *donburi.Entry) {
		obj := components.Object.Get(entry)
		pipe := components.Pipe.Get(entry)
		x, y := float32(obj.X)+ox, float32(obj.Y)+oy
		vector.DrawFilledRect(screen, x, y, float32(obj.W), float32(obj.H), theme.Colors.Primary, false)

		// Lip at the open end
		lipY := y + float32(obj.H) - 20
		if !pipe.Top {
			lipY = y
		}
		vector.DrawFilledRect(screen, x-4, lipY, float32(obj.W+8), 20, theme.Colors.Accent, false)
	})

	tags.Coin.Each(e.World, func(entry *donburi.Entry) {
		c := center(components.Object.Get(entry).Object)
		x, y := float32(c.X)+ox, float32(c.Y)+oy
		r := float32(cfg.Obstacles.CoinSize / 2)
		vector.DrawFilledCircle(screen, x, y, r, cfg.Gold, true)
		vector.DrawFilledCircle(screen, x, y, r*0.6, color.RGBA{255, 240, 120, 255}, true)
	})

	tags.PowerUp.Each(e.World, func(entry *donburi.Entry) {
		c := center(components.Object.Get(entry).Object)
		p := components.PowerUp.Get(entry)
		r := float32(cfg.Obstacles.PowerUpSize/2) * float32(0.9+0.1*math.Sin(p.Phase*2))
		vector.DrawFilledCircle(screen, float32(c.X)+ox, float32(c.Y)+oy, r, powerUpColor(p.Kind), true)
	})
}

// DrawButterfly renders the player with flapping wings.
func DrawButterfly(e *ecs.ECS, screen *ebiten.Image) {
	skin := currentSkin(e)
	ox, oy := cameraOffset(e)
	tags.Butterfly.Each(e.World, func(entry *donburi.Entry) {
		obj := components.Object.Get(entry)
		b := components.Butterfly.Get(entry)
		c := center(obj.Object)
		c.X += float64(ox)
		c.Y += float64(oy)
		size := cfg.Player.Size

		drawButterflyShape(screen, c.X, c.Y, size, b.Rotation, b.WingPhase, skin.Colors)

		if b.Shield > 0 {
			vector.StrokeCircle(screen, float32(c.X), float32(c.Y), float32(size*0.7), 2, cfg.HUD.ShieldColor, true)
		}
	})
}

// drawButterflyShape paints wings and body centered on x, y.
func drawButterflyShape(screen *ebiten.Image, x, y, size, rotation, wingPhase float64, colors cfg.SkinColors) {
	spread := 0.4 + 0.6*math.Abs(math.Sin(wingPhase))
	dx := math.Cos(rotation) * size * 0.25
	dy := math.Sin(rotation) * size * 0.25

	wing := float32(size * 0.3 * spread)
	vector.DrawFilledCircle(screen, float32(x-dy), float32(y-size*0.15+dx*0.2), wing, colors.Primary, true)
	vector.DrawFilledCircle(screen, float32(x+dy*0.5), float32(y+size*0.15), wing*0.8, colors.Secondary, true)
	vector.StrokeLine(screen, float32(x-dx), float32(y-dy), float32(x+dx), float32(y+dy), 5, colors.Body, true)
}

// currentSkin returns the skin the butterfly flies with.
func currentSkin(e *ecs.ECS) cfg.Skin {
	if run := GetRun(e); run != nil {
		return cfg.SkinByID(run.Skin)
	}
	return cfg.SkinByID(cfg.Shop.DefaultSkin)
}

func powerUpColor(kind cfg.PowerUpKind) color.RGBA {
	switch kind {
	case cfg.PowerUpShield:
		return cfg.HUD.ShieldColor
	case cfg.PowerUpSlowTime:
		return color.RGBA{186, 85, 211, 255}
	case cfg.PowerUpDoubleScore:
		return cfg.Tomato
	}
	return cfg.HUD.PowerUpColor
}

func withAlpha(c color.RGBA, a uint8) color.RGBA {
	// premultiplied
	f := float64(a) / 255
	return color.RGBA{uint8(float64(c.R) * f), uint8(float64(c.G) * f), uint8(float64(c.B) * f), a}
}
