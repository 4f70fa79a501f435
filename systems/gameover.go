package systems

import (
	"fmt"

	"github.com/automoto/butterfly-flight/components"
	cfg "github.com/automoto/butterfly-flight/config"
	"github.com/automoto/butterfly-flight/fonts"
	"github.com/automoto/butterfly-flight/synth"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/yohamta/donburi/ecs"
)

// NewUpdateGameOver creates the game over menu system. It only reacts once
// the flight has ended.
func NewUpdateGameOver(sceneChanger SceneChanger, createFlightScene func() interface{}, createMenuScene func() interface{}) ecs.System {
	return func(e *ecs.ECS) {
		run := GetRun(e)
		if run == nil || run.State != cfg.RunOver {
			return
		}
		gameOver := GetOrCreateGameOver(e)
		if gameOver.InputDelay > 0 {
			gameOver.InputDelay -= frameTime()
			return
		}
		input := getOrCreateInput(e)

		// Navigate menu with wrap-around using modulo arithmetic
		numOptions := int(components.GameOverMenu) + 1
		if GetAction(input, cfg.ActionMenuUp).JustPressed {
			gameOver.SelectedOption = components.GameOverOption(
				(int(gameOver.SelectedOption) - 1 + numOptions) % numOptions,
			)
			PlaySFX(e, synth.UIHover)
		}
		if GetAction(input, cfg.ActionMenuDown).JustPressed {
			gameOver.SelectedOption = components.GameOverOption(
				(int(gameOver.SelectedOption) + 1) % numOptions,
			)
			PlaySFX(e, synth.UIHover)
		}

		if GetAction(input, cfg.ActionMenuSelect).JustPressed {
			PlaySFX(e, synth.UIClick)
			switch gameOver.SelectedOption {
			case components.GameOverRetry:
				sceneChanger.ChangeScene(createFlightScene())
			case components.GameOverMenu:
				sceneChanger.ChangeScene(createMenuScene())
			}
		}
	}
}

// DrawGameOver renders the game over overlay
func DrawGameOver(e *ecs.ECS, screen *ebiten.Image) {
	run := GetRun(e)
	if run == nil || run.State != cfg.RunOver {
		return
	}
	gameOver := GetOrCreateGameOver(e)

	width := float64(screen.Bounds().Dx())

	vector.FillRect(
		screen,
		0, 0,
		float32(width), float32(screen.Bounds().Dy()),
		cfg.GameOver.OverlayColor,
		false,
	)

	titleFont := fonts.Title.Get()
	drawCentered(screen, "GAME OVER", titleFont, width, cfg.GameOver.TitleY, cfg.GameOver.TitleColor)

	bodyFont := fonts.Bold.Get()
	summary := fmt.Sprintf("Score %d   Coins %d", run.Score, run.Coins)
	drawCentered(screen, summary, bodyFont, width, cfg.GameOver.TitleY+50, cfg.GameOver.TextColorNormal)
	if gameOver.NewHighScore {
		drawCentered(screen, "New High Score!", bodyFont, width, cfg.GameOver.TitleY+80, cfg.Gold)
	}

	for i, option := range cfg.GameOver.MenuOptions {
		y := cfg.GameOver.MenuStartY + float64(i)*(cfg.GameOver.MenuItemHeight+cfg.GameOver.MenuItemGap)

		textColor := cfg.GameOver.TextColorNormal
		if components.GameOverOption(i) == gameOver.SelectedOption {
			textColor = cfg.GameOver.TextColorSelected
		}
		drawCentered(screen, option, bodyFont, width, y+cfg.GameOver.MenuItemHeight, textColor)
	}
}

// GetOrCreateGameOver returns the singleton GameOver component, creating if needed
func GetOrCreateGameOver(e *ecs.ECS) *components.GameOverData {
	entry, ok := components.GameOver.First(e.World)
	if !ok {
		entry = e.World.Entry(e.World.Create(components.GameOver))
	}
	return components.GameOver.Get(entry)
}
