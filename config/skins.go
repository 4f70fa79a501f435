package config

import "image/color"

// SkinColors paints the butterfly
type SkinColors struct {
	Primary   color.RGBA // upper wings
	Secondary color.RGBA // lower wings
	Body      color.RGBA
}

// Skin is a butterfly color scheme sold in the shop
type Skin struct {
	ID     string
	Name   string
	Colors SkinColors
	Price  int
}

// ShopConfig lists the skins in shop order and the overlay layout
type ShopConfig struct {
	Skins       []Skin
	DefaultSkin string

	BackgroundColor color.RGBA
	OwnedColor      color.RGBA
	LockedColor     color.RGBA
	ListStartY      float64
	ItemHeight      float64
	ItemGap         float64
	MessageTime     float64 // seconds a purchase message stays up
}

var Shop ShopConfig

// SkinByID returns the skin with the given id, or the default skin.
func SkinByID(id string) Skin {
	for _, s := range Shop.Skins {
		if s.ID == id {
			return s
		}
	}
	return Shop.Skins[0]
}

func init() {
	Shop = ShopConfig{
		DefaultSkin: "default",
		Skins: []Skin{
			{ID: "default", Name: "Classic", Colors: SkinColors{rgb(0xFF, 0x6B, 0x9D), rgb(0x4E, 0xCD, 0xC4), rgb(0x2C, 0x3E, 0x50)}},
			{ID: "monarch", Name: "Monarch", Colors: SkinColors{rgb(0xFF, 0x8C, 0x00), rgb(0x00, 0x00, 0x00), rgb(0x8B, 0x45, 0x13)}, Price: 100},
			{ID: "rainbow", Name: "Rainbow", Colors: SkinColors{rgb(0xFF, 0x00, 0x80), rgb(0x00, 0xFF, 0x80), rgb(0x80, 0x00, 0xFF)}, Price: 250},
			{ID: "crystal", Name: "Crystal", Colors: SkinColors{rgb(0xE0, 0xE0, 0xE0), rgb(0xB0, 0xE0, 0xE6), rgb(0x70, 0x80, 0x90)}, Price: 500},
			{ID: "fire", Name: "Fire", Colors: SkinColors{rgb(0xFF, 0x45, 0x00), rgb(0xFF, 0xD7, 0x00), rgb(0x8B, 0x00, 0x00)}, Price: 750},
			{ID: "ice", Name: "Ice", Colors: SkinColors{rgb(0x87, 0xCE, 0xEB), rgb(0xFF, 0xFF, 0xFF), rgb(0x46, 0x82, 0xB4)}, Price: 1000},
		},

		BackgroundColor: color.RGBA{R: 30, G: 20, B: 60, A: 240},
		OwnedColor:      color.RGBA{R: 152, G: 251, B: 152, A: 255},
		LockedColor:     color.RGBA{R: 150, G: 150, B: 170, A: 255},
		ListStartY:      110,
		ItemHeight:      22,
		ItemGap:         8,
		MessageTime:     2,
	}
}
