package systems

import (
	"github.com/automoto/butterfly-flight/components"
	cfg "github.com/automoto/butterfly-flight/config"
	"github.com/automoto/butterfly-flight/fonts"
	"github.com/automoto/butterfly-flight/synth"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/yohamta/donburi/ecs"
)

// NewUpdatePause creates the pause system. It toggles the pause overlay and
// runs its menu. Should run after UpdateInput but before gameplay systems.
func NewUpdatePause(sceneChanger SceneChanger, createMenuScene func() interface{}) ecs.System {
	return func(e *ecs.ECS) {
		run := GetRun(e)
		if run == nil || run.State == cfg.RunOver || run.State == cfg.RunReady {
			return
		}
		pause := GetOrCreatePause(e)
		input := getOrCreateInput(e)

		if IsSettingsOpen(e) {
			return
		}

		if GetAction(input, cfg.ActionPause).JustPressed {
			if run.State == cfg.RunPaused {
				run.State = cfg.RunPlaying
			} else {
				run.State = cfg.RunPaused
				pause.SelectedOption = components.MenuResume
			}
			PlaySFX(e, synth.UIClick)
			return
		}

		if run.State != cfg.RunPaused {
			return
		}

		numOptions := int(components.MenuExit) + 1
		if GetAction(input, cfg.ActionMenuUp).JustPressed {
			pause.SelectedOption = components.PauseMenuOption(
				(int(pause.SelectedOption) - 1 + numOptions) % numOptions,
			)
			PlaySFX(e, synth.UIHover)
		}
		if GetAction(input, cfg.ActionMenuDown).JustPressed {
			pause.SelectedOption = components.PauseMenuOption(
				(int(pause.SelectedOption) + 1) % numOptions,
			)
			PlaySFX(e, synth.UIHover)
		}

		if GetAction(input, cfg.ActionMenuSelect).JustPressed {
			PlaySFX(e, synth.UIClick)
			switch pause.SelectedOption {
			case components.MenuResume:
				run.State = cfg.RunPlaying
			case components.MenuSettings:
				OpenSettings(e, true)
			case components.MenuExit:
				StopMusic(e, -1)
				sceneChanger.ChangeScene(createMenuScene())
			}
		}
	}
}

// DrawPause renders the pause overlay and menu.
func DrawPause(e *ecs.ECS, screen *ebiten.Image) {
	run := GetRun(e)
	if run == nil || run.State != cfg.RunPaused || IsSettingsOpen(e) {
		return
	}
	pause := GetOrCreatePause(e)

	width := float64(screen.Bounds().Dx())
	height := float64(screen.Bounds().Dy())

	vector.FillRect(
		screen,
		0, 0,
		float32(width), float32(height),
		cfg.Pause.OverlayColor,
		false,
	)

	menuOptions := cfg.Pause.MenuOptions
	totalMenuHeight := float64(len(menuOptions)) * (cfg.Pause.MenuItemHeight + cfg.Pause.MenuItemGap)
	startY := (height - totalMenuHeight) / 2

	fontFace := fonts.Bold.Get()
	for i, option := range menuOptions {
		y := startY + float64(i)*(cfg.Pause.MenuItemHeight+cfg.Pause.MenuItemGap)

		textColor := cfg.Pause.TextColorNormal
		if components.PauseMenuOption(i) == pause.SelectedOption {
			textColor = cfg.Pause.TextColorSelected
		}
		drawCentered(screen, option, fontFace, width, y+cfg.Pause.MenuItemHeight, textColor)
	}

	input := getOrCreateInput(e)
	drawCentered(screen, getPauseHint(input.LastInputMethod), fonts.Small.Get(), width, height-12, cfg.Pause.TextColorNormal)
}

// getPauseHint returns the appropriate hint for pause menu navigation
func getPauseHint(method components.InputMethod) string {
	switch method {
	case components.InputPlayStation:
		return "D-Pad: Navigate   Cross: Select   Options: Resume"
	case components.InputXbox:
		return "D-Pad: Navigate   A: Select   Start: Resume"
	}
	return "Arrows: Navigate   Enter: Select   Esc: Resume"
}

// GetOrCreatePause returns the singleton Pause component, creating if needed
func GetOrCreatePause(e *ecs.ECS) *components.PauseData {
	entry, ok := components.Pause.First(e.World)
	if !ok {
		entry = e.World.Entry(e.World.Create(components.Pause))
	}
	return components.Pause.Get(entry)
}
