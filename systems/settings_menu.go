package systems

import (
	"fmt"
	"strings"

	"github.com/automoto/butterfly-flight/components"
	cfg "github.com/automoto/butterfly-flight/config"
	"github.com/automoto/butterfly-flight/fonts"
	"github.com/automoto/butterfly-flight/sound"
	"github.com/automoto/butterfly-flight/synth"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text" //nolint:staticcheck // TODO: migrate to text/v2
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/yohamta/donburi/ecs"
)

const numSettingsOptions = int(components.SettingsOptBack) + 1

// UpdateSettingsMenu handles settings navigation and value changes. Every
// change goes straight to the audio engine, which persists it.
func UpdateSettingsMenu(e *ecs.ECS) {
	settings := GetOrCreateSettingsMenu(e)
	if !settings.IsOpen {
		return
	}
	input := getOrCreateInput(e)

	if GetAction(input, cfg.ActionMenuUp).JustPressed {
		settings.SelectedOption = components.SettingsMenuOption(
			(int(settings.SelectedOption) - 1 + numSettingsOptions) % numSettingsOptions,
		)
		PlaySFX(e, synth.UIHover)
	}
	if GetAction(input, cfg.ActionMenuDown).JustPressed {
		settings.SelectedOption = components.SettingsMenuOption(
			(int(settings.SelectedOption) + 1) % numSettingsOptions,
		)
		PlaySFX(e, synth.UIHover)
	}

	if GetAction(input, cfg.ActionMenuLeft).JustPressed {
		adjustValue(e, settings, -1)
	}
	if GetAction(input, cfg.ActionMenuRight).JustPressed {
		adjustValue(e, settings, +1)
	}

	if GetAction(input, cfg.ActionMenuSelect).JustPressed {
		handleSelect(e, settings)
	}

	if GetAction(input, cfg.ActionMenuBack).JustPressed {
		closeSettings(e, settings)
	}
}

// adjustValue changes the value for the selected option
func adjustValue(e *ecs.ECS, s *components.SettingsMenuData, direction int) {
	engine := Engine(e)
	if engine == nil {
		return
	}
	current := engine.Settings()

	switch s.SelectedOption {
	case components.SettingsOptMasterVolume:
		engine.SetMasterVolume(adjustVolumeStep(current.MasterVolume, direction))
		PlaySFX(e, synth.UIClick)
	case components.SettingsOptMusicVolume:
		engine.SetMusicVolume(adjustVolumeStep(current.MusicVolume, direction))
		PlaySFX(e, synth.UIHover)
	case components.SettingsOptSFXVolume:
		engine.SetSFXVolume(adjustVolumeStep(current.SFXVolume, direction))
		// Preview at the new level
		PlaySFX(e, synth.Coin)
	case components.SettingsOptMusicEnabled, components.SettingsOptSFXEnabled:
		handleSelect(e, s)
	}
}

// handleSelect handles the select/enter action
func handleSelect(e *ecs.ECS, s *components.SettingsMenuData) {
	engine := Engine(e)

	switch s.SelectedOption {
	case components.SettingsOptMusicEnabled:
		if engine == nil {
			return
		}
		if engine.ToggleMusic() {
			resumeThemeMusic(e)
		}
		PlaySFX(e, synth.UIClick)

	case components.SettingsOptSFXEnabled:
		if engine == nil {
			return
		}
		// The click is only audible when effects come back on
		if engine.ToggleSFX() {
			PlaySFX(e, synth.UIClick)
		}

	case components.SettingsOptBack:
		closeSettings(e, s)
	}
}

// resumeThemeMusic restarts the theme track after music is re-enabled.
func resumeThemeMusic(e *ecs.ECS) {
	engine := Engine(e)
	if engine == nil || engine.CurrentMusic() != nil {
		return
	}
	if run := GetRun(e); run != nil && run.State == cfg.RunReady {
		return
	}
	PlayMusic(e, currentTheme(e).Music)
}

// closeSettings closes the settings menu
func closeSettings(e *ecs.ECS, s *components.SettingsMenuData) {
	s.IsOpen = false
	PlaySFX(e, synth.UIClick)
}

// adjustVolumeStep adjusts volume by stepping through predefined values
func adjustVolumeStep(current float64, direction int) float64 {
	steps := cfg.SettingsMenu.VolumeSteps
	currentIdx := findClosestStepIndex(current, steps)
	newIdx := currentIdx + direction
	if newIdx < 0 {
		newIdx = 0
	}
	if newIdx >= len(steps) {
		newIdx = len(steps) - 1
	}
	return steps[newIdx]
}

// findClosestStepIndex finds the closest step index for a volume value
func findClosestStepIndex(value float64, steps []float64) int {
	closest := 0
	minDiff := 2.0 // Start with a large difference
	for i, step := range steps {
		diff := value - step
		if diff < 0 {
			diff = -diff
		}
		if diff < minDiff {
			minDiff = diff
			closest = i
		}
	}
	return closest
}

// DrawSettingsMenu renders the settings overlay.
func DrawSettingsMenu(e *ecs.ECS, screen *ebiten.Image) {
	settings := GetOrCreateSettingsMenu(e)
	if !settings.IsOpen {
		return
	}

	width := float64(screen.Bounds().Dx())
	height := float64(screen.Bounds().Dy())

	vector.FillRect(
		screen,
		0, 0,
		float32(width), float32(height),
		cfg.Menu.BackgroundColor,
		false,
	)

	fontFace := fonts.Bold.Get()
	drawCentered(screen, "SETTINGS", fonts.Title.Get(), width, 90, cfg.Menu.TitleColor)

	current := AudioSettings(e)
	menuItemHeight := 24.0
	menuItemGap := 14.0
	totalMenuHeight := float64(numSettingsOptions) * (menuItemHeight + menuItemGap)
	startY := (height-totalMenuHeight)/2 + 20

	for i := 0; i < numSettingsOptions; i++ {
		opt := components.SettingsMenuOption(i)
		y := startY + float64(i)*(menuItemHeight+menuItemGap)

		textColor := cfg.Pause.TextColorNormal
		if opt == settings.SelectedOption {
			textColor = cfg.Pause.TextColorSelected
		}

		label, value := getOptionDisplay(current, opt)
		text.Draw(screen, label, fontFace, int(width/2)-180, int(y+menuItemHeight), textColor)
		if value != "" {
			text.Draw(screen, value, fontFace, int(width/2)+40, int(y+menuItemHeight), textColor)
		}
	}

	input := getOrCreateInput(e)
	drawCentered(screen, getSettingsHint(input.LastInputMethod), fonts.Small.Get(), width, height-12, cfg.Pause.TextColorNormal)
}

// getSettingsHint returns the appropriate hint for settings menu
func getSettingsHint(method components.InputMethod) string {
	switch method {
	case components.InputPlayStation:
		return "D-Pad: Navigate   Left/Right: Change   Cross: Select   Circle: Back"
	case components.InputXbox:
		return "D-Pad: Navigate   Left/Right: Change   A: Select   B: Back"
	}
	return "Arrows: Navigate   Left/Right: Change   Enter: Select   Esc: Back"
}

// getOptionDisplay returns the label and value display for an option
func getOptionDisplay(s sound.Settings, opt components.SettingsMenuOption) (string, string) {
	switch opt {
	case components.SettingsOptMasterVolume:
		return "Master Volume", formatVolumeBar(s.MasterVolume)
	case components.SettingsOptMusicVolume:
		return "Music Volume", formatVolumeBar(s.MusicVolume)
	case components.SettingsOptSFXVolume:
		return "SFX Volume", formatVolumeBar(s.SFXVolume)
	case components.SettingsOptMusicEnabled:
		return "Music", formatToggle(s.MusicEnabled)
	case components.SettingsOptSFXEnabled:
		return "Sound Effects", formatToggle(s.SFXEnabled)
	case components.SettingsOptBack:
		return "< Back", ""
	default:
		return "", ""
	}
}

// formatVolumeBar creates a visual volume bar
func formatVolumeBar(volume float64) string {
	percentage := int(volume*100 + 0.5)
	filled := int(volume*10 + 0.5)
	return fmt.Sprintf("[%s%s] %d%%", strings.Repeat("|", filled), strings.Repeat(".", 10-filled), percentage)
}

// formatToggle formats a boolean as On/Off
func formatToggle(value bool) string {
	if value {
		return "[X] On"
	}
	return "[ ] Off"
}

// GetOrCreateSettingsMenu returns the singleton SettingsMenu component, creating if needed.
func GetOrCreateSettingsMenu(e *ecs.ECS) *components.SettingsMenuData {
	entry, ok := components.SettingsMenu.First(e.World)
	if !ok {
		entry = e.World.Entry(e.World.Create(components.SettingsMenu))
	}
	return components.SettingsMenu.Get(entry)
}

// OpenSettings opens the settings menu from a specific origin
func OpenSettings(e *ecs.ECS, fromPause bool) {
	settings := GetOrCreateSettingsMenu(e)
	settings.IsOpen = true
	settings.OpenedFromPause = fromPause
	settings.SelectedOption = components.SettingsOptMasterVolume
}

// IsSettingsOpen returns true if the settings menu is currently open
func IsSettingsOpen(e *ecs.ECS) bool {
	return GetOrCreateSettingsMenu(e).IsOpen
}
