package components

import "github.com/yohamta/donburi"

// MainMenuOption represents the available main menu selections
type MainMenuOption int

const (
	MainMenuPlay MainMenuOption = iota
	MainMenuTheme
	MainMenuShop
	MainMenuSettings
	MainMenuExit
)

// MenuData stores the current state of the main menu
type MenuData struct {
	SelectedOption MainMenuOption
	HighScore      int
	TotalCoins     int
	Theme          string
}

// Menu is the component type for main menu state
var Menu = donburi.NewComponentType[MenuData]()
