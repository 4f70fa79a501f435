package config

import (
	"image/color"

	"github.com/automoto/butterfly-flight/synth"
)

// ThemeColors is the palette a theme paints the world with
type ThemeColors struct {
	Primary    color.RGBA
	Secondary  color.RGBA
	Accent     color.RGBA
	Background color.RGBA
	Text       color.RGBA
}

// Theme pairs a palette with the music track that plays under it
type Theme struct {
	ID     string
	Name   string
	Colors ThemeColors
	Music  string
	Price  int // coins to unlock in the shop, zero means owned from the start
}

// ThemeConfig lists the themes in cycling order
type ThemeConfig struct {
	Themes  []Theme
	Default string
}

var Themes ThemeConfig

// ThemeByID returns the theme with the given id, or the default theme.
func ThemeByID(id string) Theme {
	for _, t := range Themes.Themes {
		if t.ID == id {
			return t
		}
	}
	return Themes.Themes[0]
}

// NextTheme returns the theme after id, wrapping around.
func NextTheme(id string) Theme {
	for i, t := range Themes.Themes {
		if t.ID == id {
			return Themes.Themes[(i+1)%len(Themes.Themes)]
		}
	}
	return Themes.Themes[0]
}

func rgb(r, g, b uint8) color.RGBA {
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

func init() {
	Themes = ThemeConfig{
		Default: synth.PastelClouds,
		Themes: []Theme{
			{
				ID:   synth.PastelClouds,
				Name: "Pastel Clouds",
				Colors: ThemeColors{
					Primary:    rgb(0xFF, 0xB6, 0xC1),
					Secondary:  rgb(0xE6, 0xE6, 0xFA),
					Accent:     rgb(0x98, 0xFB, 0x98),
					Background: rgb(0xF0, 0xF8, 0xFF),
					Text:       rgb(0x4B, 0x00, 0x82),
				},
				Music: synth.PastelClouds,
			},
			{
				ID:   synth.NeonCyberpunk,
				Name: "Neon Cyberpunk",
				Colors: ThemeColors{
					Primary:    rgb(0xFF, 0x14, 0x93),
					Secondary:  rgb(0x00, 0xFF, 0xFF),
					Accent:     rgb(0xFF, 0xFF, 0x00),
					Background: rgb(0x0D, 0x0D, 0x0D),
					Text:       rgb(0xFF, 0xFF, 0xFF),
				},
				Music: synth.NeonCyberpunk,
				Price: 200,
			},
			{
				ID:   synth.EgyptianDusk,
				Name: "Egyptian Dusk",
				Colors: ThemeColors{
					Primary:    rgb(0xDA, 0xA5, 0x20),
					Secondary:  rgb(0xCD, 0x85, 0x3F),
					Accent:     rgb(0xFF, 0x45, 0x00),
					Background: rgb(0x2F, 0x1B, 0x14),
					Text:       rgb(0xF5, 0xDE, 0xB3),
				},
				Music: synth.EgyptianDusk,
				Price: 300,
			},
			{
				ID:   synth.WatercolorForest,
				Name: "Watercolor Forest",
				Colors: ThemeColors{
					Primary:    rgb(0x22, 0x8B, 0x22),
					Secondary:  rgb(0x32, 0xCD, 0x32),
					Accent:     rgb(0xFF, 0xD7, 0x00),
					Background: rgb(0xF0, 0xFF, 0xF0),
					Text:       rgb(0x00, 0x64, 0x00),
				},
				Music: synth.WatercolorForest,
				Price: 400,
			},
		},
	}
}
