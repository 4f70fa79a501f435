package systems

import (
	"fmt"
	"image/color"

	"github.com/automoto/butterfly-flight/components"
	cfg "github.com/automoto/butterfly-flight/config"
	"github.com/automoto/butterfly-flight/fonts"
	"github.com/automoto/butterfly-flight/synth"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text" //nolint:staticcheck // TODO: migrate to text/v2
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/yohamta/donburi/ecs"
)

// shopItem is one row of the shop: a skin or a theme with its price.
type shopItem struct {
	kind  components.ShopItemKind
	id    string
	name  string
	price int
}

// shopItems lists skins then themes in catalog order.
func shopItems() []shopItem {
	items := make([]shopItem, 0, len(cfg.Shop.Skins)+len(cfg.Themes.Themes))
	for _, s := range cfg.Shop.Skins {
		items = append(items, shopItem{kind: components.ShopSkin, id: s.ID, name: s.Name, price: s.Price})
	}
	for _, t := range cfg.Themes.Themes {
		items = append(items, shopItem{kind: components.ShopTheme, id: t.ID, name: t.Name, price: t.Price})
	}
	return items
}

// UpdateShop handles shop navigation, purchases and equipping. The row
// after the last item closes the shop.
func UpdateShop(e *ecs.ECS) {
	shop := GetOrCreateShop(e)
	if shop.MessageTimer > 0 {
		shop.MessageTimer -= frameTime()
		if shop.MessageTimer <= 0 {
			shop.Message = ""
		}
	}
	if !shop.IsOpen {
		return
	}
	if shop.JustOpened {
		shop.JustOpened = false
		return
	}

	input := getOrCreateInput(e)
	items := shopItems()
	rows := len(items) + 1

	if GetAction(input, cfg.ActionMenuUp).JustPressed {
		shop.SelectedIndex = (shop.SelectedIndex - 1 + rows) % rows
		PlaySFX(e, synth.UIHover)
	}
	if GetAction(input, cfg.ActionMenuDown).JustPressed {
		shop.SelectedIndex = (shop.SelectedIndex + 1) % rows
		PlaySFX(e, synth.UIHover)
	}

	if GetAction(input, cfg.ActionMenuSelect).JustPressed {
		if shop.SelectedIndex >= len(items) {
			closeShop(e, shop)
			return
		}
		activateShopItem(e, shop, items[shop.SelectedIndex])
	}

	if GetAction(input, cfg.ActionMenuBack).JustPressed {
		closeShop(e, shop)
	}
}

// activateShopItem equips an owned item or tries to buy a locked one.
// A purchase that goes through equips the item as well.
func activateShopItem(e *ecs.ECS, shop *components.ShopData, item shopItem) {
	menu := GetOrCreateMenu(e)

	switch Purchase(item.kind, item.id, item.price) {
	case PurchaseOK:
		PlaySFX(e, synth.UIClick)
		PlaySFX(e, synth.Achievement)
		menu.TotalCoins = LoadProgress().TotalCoins
		shop.Inventory = LoadInventory()
		setShopMessage(shop, fmt.Sprintf("Unlocked %s!", item.name))
		equipShopItem(e, shop, menu, item)
	case PurchaseOwned:
		PlaySFX(e, synth.UIClick)
		equipShopItem(e, shop, menu, item)
	case PurchaseTooExpensive:
		PlaySFX(e, synth.UIHover)
		setShopMessage(shop, fmt.Sprintf("Need %d more coins", item.price-menu.TotalCoins))
	}
}

func equipShopItem(e *ecs.ECS, shop *components.ShopData, menu *components.MenuData, item shopItem) {
	if item.kind == components.ShopTheme {
		previewMenuTheme(e, menu, item.id)
		return
	}
	SaveSkin(item.id)
	shop.Inventory.Skin = item.id
}

func setShopMessage(shop *components.ShopData, msg string) {
	shop.Message = msg
	shop.MessageTimer = cfg.Shop.MessageTime
}

func closeShop(e *ecs.ECS, shop *components.ShopData) {
	PlaySFX(e, synth.UIClick)
	shop.IsOpen = false
}

// DrawShop renders the shop overlay with a preview of the selected item
func DrawShop(e *ecs.ECS, screen *ebiten.Image) {
	shop := GetOrCreateShop(e)
	if !shop.IsOpen {
		return
	}

	width := float64(screen.Bounds().Dx())
	height := float64(screen.Bounds().Dy())

	vector.FillRect(screen, 0, 0, float32(width), float32(height), cfg.Shop.BackgroundColor, false)

	drawCentered(screen, "SHOP", fonts.Title.Get(), width, 60, cfg.Menu.TitleColor)
	menu := GetOrCreateMenu(e)
	drawCentered(screen, fmt.Sprintf("Coins %d", menu.TotalCoins), fonts.Bold.Get(), width, 88, cfg.HUD.CoinColor)

	inv := shop.Inventory
	items := shopItems()
	face := fonts.Regular.Get()
	left := int(width/2) - 320
	right := int(width/2) - 40

	for i := 0; i <= len(items); i++ {
		y := int(cfg.Shop.ListStartY + float64(i)*(cfg.Shop.ItemHeight+cfg.Shop.ItemGap) + cfg.Shop.ItemHeight)

		if i == len(items) {
			clr := cfg.Menu.TextColorNormal
			if shop.SelectedIndex == i {
				clr = cfg.Menu.TextColorSelected
			}
			text.Draw(screen, "< Back", face, left, y, clr)
			continue
		}

		item := items[i]
		label, status, clr := shopRowDisplay(item, inv, menu.Theme)
		if shop.SelectedIndex == i {
			clr = cfg.Menu.TextColorSelected
		}
		text.Draw(screen, label, face, left, y, clr)
		text.Draw(screen, status, face, right, y, clr)
	}

	if shop.SelectedIndex < len(items) {
		drawShopPreview(screen, items[shop.SelectedIndex], width/2+200, 260)
	}

	if shop.Message != "" {
		drawCentered(screen, shop.Message, fonts.Bold.Get(), width, height-48, cfg.Menu.TextColorSelected)
	}

	input := getOrCreateInput(e)
	drawCentered(screen, getShopHint(input.LastInputMethod), fonts.Small.Get(), width, height-12, cfg.Menu.TextColorNormal)
}

// shopRowDisplay returns the label, status text and color for an item row.
func shopRowDisplay(item shopItem, inv components.Inventory, menuTheme string) (string, string, color.RGBA) {
	label := "Skin: " + item.name
	equipped := inv.Skin == item.id
	if item.kind == components.ShopTheme {
		label = "Theme: " + item.name
		equipped = menuTheme == item.id
	}

	switch {
	case equipped:
		return label, "Equipped", cfg.Shop.OwnedColor
	case inv.Owns(item.kind, item.id):
		return label, "Owned", cfg.Shop.OwnedColor
	}
	return label, fmt.Sprintf("%d coins", item.price), cfg.Shop.LockedColor
}

// drawShopPreview shows the selected skin as a butterfly or the selected
// theme as a row of swatches.
func drawShopPreview(screen *ebiten.Image, item shopItem, x, y float64) {
	if item.kind == components.ShopSkin {
		drawButterflyShape(screen, x, y, 120, 0, 1.2, cfg.SkinByID(item.id).Colors)
		return
	}

	c := cfg.ThemeByID(item.id).Colors
	swatches := []color.RGBA{c.Background, c.Primary, c.Secondary, c.Accent, c.Text}
	const size = 28
	startX := x - float64(len(swatches))*size/2
	for i, clr := range swatches {
		vector.FillRect(screen, float32(startX+float64(i)*size), float32(y-size/2), size-4, size, clr, false)
	}
}

// getShopHint returns the appropriate hint for shop navigation
func getShopHint(method components.InputMethod) string {
	switch method {
	case components.InputPlayStation:
		return "D-Pad: Navigate   Cross: Buy / Equip   Circle: Back"
	case components.InputXbox:
		return "D-Pad: Navigate   A: Buy / Equip   B: Back"
	}
	return "Arrows: Navigate   Enter: Buy / Equip   Esc: Back"
}

// GetOrCreateShop returns the singleton Shop component, creating if needed.
func GetOrCreateShop(e *ecs.ECS) *components.ShopData {
	entry, ok := components.Shop.First(e.World)
	if !ok {
		entry = e.World.Entry(e.World.Create(components.Shop))
	}
	return components.Shop.Get(entry)
}

// OpenShop opens the shop overlay at the first row
func OpenShop(e *ecs.ECS) {
	shop := GetOrCreateShop(e)
	shop.IsOpen = true
	shop.JustOpened = true
	shop.SelectedIndex = 0
	shop.Inventory = LoadInventory()
}

// IsShopOpen returns true if the shop overlay is currently open
func IsShopOpen(e *ecs.ECS) bool {
	return GetOrCreateShop(e).IsOpen
}
