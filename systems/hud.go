package systems

import (
	"fmt"
	"image/color"

	cfg "github.com/automoto/butterfly-flight/config"
	"github.com/automoto/butterfly-flight/fonts"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text" //nolint:staticcheck // TODO: migrate to text/v2
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/yohamta/donburi/ecs"
	"golang.org/x/image/font"
)

const (
	hudBarWidth  = 90
	hudBarHeight = 6
)

// DrawHUD renders score, coins, streak and active power-up timers.
func DrawHUD(e *ecs.ECS, screen *ebiten.Image) {
	run := GetRun(e)
	if run == nil {
		return
	}
	theme := cfg.ThemeByID(run.Theme)
	width := float64(screen.Bounds().Dx())
	margin := cfg.HUD.Margin

	drawCentered(screen, fmt.Sprint(run.Score), fonts.Title.Get(), width, 60, theme.Colors.Text)

	bold := fonts.Bold.Get()
	text.Draw(screen, fmt.Sprintf("Coins %d", run.Coins), bold, int(margin), int(margin+20), cfg.HUD.CoinColor)
	if run.Streak > 1 && run.Elapsed-run.LastCoinAt < cfg.CoinStreak.Window {
		text.Draw(screen, fmt.Sprintf("%dx Streak!", run.Streak), fonts.Regular.Get(), int(margin), int(margin+20+cfg.HUD.LineHeight), cfg.Tomato)
	}

	y := margin + 10
	x := width - margin - hudBarWidth
	small := fonts.Small.Get()
	for _, t := range []struct {
		label     string
		remaining float64
		total     float64
	}{
		{"Slow", run.SlowTime, cfg.PowerUps.SlowTime},
		{"x2", run.DoubleScore, cfg.PowerUps.DoubleScore},
		{"Magnet", run.Magnet, cfg.PowerUps.Magnet},
	} {
		if t.remaining <= 0 {
			continue
		}
		text.Draw(screen, t.label, small, int(x), int(y), cfg.HUD.PowerUpColor)
		drawBar(screen, x, y+4, t.remaining/t.total, cfg.HUD.PowerUpColor)
		y += cfg.HUD.LineHeight
	}

	if run.State == cfg.RunReady {
		hint := "Press Space or click to flap"
		drawCentered(screen, hint, bold, width, float64(cfg.C.Height)/2-80, theme.Colors.Text)
		drawCentered(screen, "T: change theme   Esc: pause", small, width, float64(cfg.C.Height)/2-55, theme.Colors.Text)
	}
	text.Draw(screen, theme.Name, small, int(margin), int(float64(cfg.C.Height)-margin), theme.Colors.Text)
}

func drawBar(screen *ebiten.Image, x, y, ratio float64, clr color.Color) {
	ratio = min(max(ratio, 0), 1)
	vector.DrawFilledRect(screen, float32(x), float32(y), hudBarWidth, hudBarHeight, color.RGBA{40, 40, 40, 200}, false)
	vector.DrawFilledRect(screen, float32(x), float32(y), float32(hudBarWidth*ratio), hudBarHeight, clr, false)
}

// drawCentered draws s horizontally centered on a screen width wide with its
// baseline at y.
func drawCentered(screen *ebiten.Image, s string, face font.Face, width, y float64, clr color.Color) {
	w := text.BoundString(face, s).Dx()
	text.Draw(screen, s, face, int((width-float64(w))/2), int(y), clr)
}
