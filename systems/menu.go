package systems

import (
	"fmt"
	"os"

	"github.com/automoto/butterfly-flight/components"
	cfg "github.com/automoto/butterfly-flight/config"
	"github.com/automoto/butterfly-flight/fonts"
	"github.com/automoto/butterfly-flight/synth"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/yohamta/donburi/ecs"
)

// SceneChanger allows systems to trigger scene transitions
type SceneChanger interface {
	ChangeScene(scene interface{})
}

const numMenuOptions = int(components.MainMenuExit) + 1

// NewUpdateMenu creates an UpdateMenu system with scene transition capability
func NewUpdateMenu(sceneChanger SceneChanger, createFlightScene func() interface{}) ecs.System {
	return func(e *ecs.ECS) {
		// Skip menu input while an overlay is open
		if IsSettingsOpen(e) || IsShopOpen(e) {
			return
		}

		menu := GetOrCreateMenu(e)
		input := getOrCreateInput(e)

		if GetAction(input, cfg.ActionMenuUp).JustPressed {
			PlaySFX(e, synth.UIHover)
			menu.SelectedOption = components.MainMenuOption((int(menu.SelectedOption) - 1 + numMenuOptions) % numMenuOptions)
		}
		if GetAction(input, cfg.ActionMenuDown).JustPressed {
			PlaySFX(e, synth.UIHover)
			menu.SelectedOption = components.MainMenuOption((int(menu.SelectedOption) + 1) % numMenuOptions)
		}

		if GetAction(input, cfg.ActionTheme).JustPressed {
			cycleMenuTheme(e, menu)
		}

		if GetAction(input, cfg.ActionMenuSelect).JustPressed {
			PlaySFX(e, synth.UIClick)

			switch menu.SelectedOption {
			case components.MainMenuPlay:
				StopMusic(e, -1)
				sceneChanger.ChangeScene(createFlightScene())
			case components.MainMenuTheme:
				cycleMenuTheme(e, menu)
			case components.MainMenuShop:
				OpenShop(e)
			case components.MainMenuSettings:
				OpenSettings(e, false)
			case components.MainMenuExit:
				os.Exit(0)
			}
		}

		// Allow back/escape to exit
		if GetAction(input, cfg.ActionMenuBack).JustPressed {
			os.Exit(0)
		}
	}
}

// cycleMenuTheme moves to the next unlocked theme and previews its track.
func cycleMenuTheme(e *ecs.ECS, menu *components.MenuData) {
	previewMenuTheme(e, menu, nextOwnedTheme(menu.Theme).ID)
}

// previewMenuTheme switches the menu to theme id and plays its track.
func previewMenuTheme(e *ecs.ECS, menu *components.MenuData, id string) {
	if id == menu.Theme {
		return
	}
	menu.Theme = SwitchTheme(e, menu.Theme, id, false)
	PlayMusicAfter(e, cfg.ThemeByID(id).Music, cfg.Audio.ThemeMusicDelay)
	themeBurst(e)
}

// DrawMenu renders the main menu screen
func DrawMenu(e *ecs.ECS, screen *ebiten.Image) {
	menu := GetOrCreateMenu(e)
	theme := cfg.ThemeByID(menu.Theme)

	width := float64(screen.Bounds().Dx())
	height := float64(screen.Bounds().Dy())

	drawCentered(screen, "BUTTERFLY FLIGHT", fonts.Title.Get(), width, cfg.Menu.TitleY, theme.Colors.Accent)

	menuFont := fonts.Bold.Get()
	for i := 0; i < numMenuOptions; i++ {
		opt := components.MainMenuOption(i)
		y := cfg.Menu.MenuStartY + float64(i)*(cfg.Menu.MenuItemHeight+cfg.Menu.MenuItemGap)

		textColor := theme.Colors.Text
		if opt == menu.SelectedOption {
			textColor = cfg.Menu.TextColorSelected
		}

		label := cfg.Menu.MenuOptions[i]
		if opt == components.MainMenuTheme {
			label = fmt.Sprintf("Theme: %s", theme.Name)
		}
		drawCentered(screen, label, menuFont, width, y+cfg.Menu.MenuItemHeight, textColor)
	}

	stats := fmt.Sprintf("Best %d   Coins %d", menu.HighScore, menu.TotalCoins)
	drawCentered(screen, stats, fonts.Regular.Get(), width, height-48, cfg.HUD.CoinColor)

	input := getOrCreateInput(e)
	drawCentered(screen, getMenuHint(input.LastInputMethod), fonts.Small.Get(), width, height-12, theme.Colors.Text)
}

// getMenuHint returns the appropriate hint for menu navigation
func getMenuHint(method components.InputMethod) string {
	switch method {
	case components.InputPlayStation:
		return "D-Pad: Navigate   Cross: Select   Triangle: Theme"
	case components.InputXbox:
		return "D-Pad: Navigate   A: Select   Y: Theme"
	}
	return "Arrows: Navigate   Enter: Select   T: Theme"
}

// GetOrCreateMenu returns the singleton Menu component, creating if needed.
// Saved progress is read once on creation.
func GetOrCreateMenu(e *ecs.ECS) *components.MenuData {
	if _, ok := components.Menu.First(e.World); !ok {
		progress := LoadProgress()
		ent := e.World.Entry(e.World.Create(components.Menu))
		components.Menu.SetValue(ent, components.MenuData{
			SelectedOption: components.MainMenuPlay,
			HighScore:      progress.HighScore,
			TotalCoins:     progress.TotalCoins,
			Theme:          cfg.ThemeByID(progress.Theme).ID,
		})
	}

	ent, _ := components.Menu.First(e.World)
	return components.Menu.Get(ent)
}
