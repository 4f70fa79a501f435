package components

import (
	"slices"

	cfg "github.com/automoto/butterfly-flight/config"
	"github.com/yohamta/donburi"
)

// ShopItemKind tells skins and themes apart in the shop list
type ShopItemKind int

const (
	ShopSkin ShopItemKind = iota
	ShopTheme
)

// Inventory is what the player has bought in the shop and the skin they
// fly with. Free items are always owned.
type Inventory struct {
	Skin        string
	OwnedSkins  []string
	OwnedThemes []string
}

// OwnsSkin reports whether the skin is unlocked.
func (inv Inventory) OwnsSkin(id string) bool {
	return cfg.SkinByID(id).Price == 0 || slices.Contains(inv.OwnedSkins, id)
}

// OwnsTheme reports whether the theme is unlocked.
func (inv Inventory) OwnsTheme(id string) bool {
	return cfg.ThemeByID(id).Price == 0 || slices.Contains(inv.OwnedThemes, id)
}

// Owns reports whether the shop item of the given kind is unlocked.
func (inv Inventory) Owns(kind ShopItemKind, id string) bool {
	if kind == ShopTheme {
		return inv.OwnsTheme(id)
	}
	return inv.OwnsSkin(id)
}

// ShopData stores the shop overlay state
type ShopData struct {
	IsOpen        bool
	SelectedIndex int
	// JustOpened swallows the select press that opened the shop.
	JustOpened bool
	// Inventory mirrors the saved unlocks while the shop is open.
	Inventory Inventory

	Message      string
	MessageTimer float64
}

// Shop is the component type for the shop overlay
var Shop = donburi.NewComponentType[ShopData]()
