package components

import (
	"github.com/yohamta/donburi"
)

// SettingsMenuOption represents menu items in the settings menu
type SettingsMenuOption int

const (
	SettingsOptMasterVolume SettingsMenuOption = iota
	SettingsOptMusicVolume
	SettingsOptSFXVolume
	SettingsOptMusicEnabled
	SettingsOptSFXEnabled
	SettingsOptBack
)

// SettingsMenuData stores the current state of the settings menu overlay.
// Values live in the audio engine; the menu only tracks navigation.
type SettingsMenuData struct {
	IsOpen          bool
	SelectedOption  SettingsMenuOption
	OpenedFromPause bool
}

// SettingsMenu is the component type for settings menu state
var SettingsMenu = donburi.NewComponentType[SettingsMenuData]()
