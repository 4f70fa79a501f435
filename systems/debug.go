package systems

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/automoto/butterfly-flight/components"
	cfg "github.com/automoto/butterfly-flight/config"
	"github.com/automoto/butterfly-flight/fonts"
	"github.com/automoto/butterfly-flight/synth"
	"github.com/automoto/butterfly-flight/systems/factory"
	"github.com/automoto/butterfly-flight/tags"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text" //nolint:staticcheck // TODO: migrate to text/v2
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/yohamta/donburi/ecs"
)

// UpdateDebug toggles the overlay on F3.
func UpdateDebug(e *ecs.ECS) {
	if GetAction(getOrCreateInput(e), cfg.ActionDebug).JustPressed {
		d := getOrCreateDebug(e)
		d.Visible = !d.Visible
	}
}

// DrawDebug outlines collision boxes and lists the mixer state.
func DrawDebug(e *ecs.ECS, screen *ebiten.Image) {
	if !getOrCreateDebug(e).Visible {
		return
	}

	if space := factory.GetSpace(e); space != nil {
		ox, oy := cameraOffset(e)
		for _, obj := range space.Objects() {
			c := color.RGBA{0, 255, 255, 255} // Cyan default
			switch {
			case obj.HasTags(tags.ResolvSolid):
				c = color.RGBA{100, 100, 100, 255}
			case obj.HasTags(tags.ResolvButterfly):
				c = color.RGBA{0, 0, 255, 255}
			case obj.HasTags(tags.ResolvCoin):
				c = color.RGBA{255, 215, 0, 255}
			}
			x, y := float32(obj.X)+ox, float32(obj.Y)+oy
			vector.StrokeRect(screen, x, y, float32(obj.W), float32(obj.H), 1, c, false)
		}
	}

	lines := audioDebugLines(e)
	face := fonts.Small.Get()
	vector.FillRect(screen, 8, 90, 260, float32(len(lines)*14+8), color.RGBA{0, 0, 0, 160}, false)
	for i, line := range lines {
		text.Draw(screen, line, face, 14, 104+i*14, color.White)
	}
}

// audioDebugLines summarizes the engine for the overlay.
func audioDebugLines(e *ecs.ECS) []string {
	engine := Engine(e)
	if engine == nil {
		return []string{"audio: no engine"}
	}
	if !engine.Enabled() {
		return []string{"audio: disabled"}
	}

	s := engine.Settings()
	lines := []string{
		fmt.Sprintf("clock %.2fs", engine.Now()),
		fmt.Sprintf("master %.1f  music %.1f  sfx %.1f", s.MasterVolume, s.MusicVolume, s.SFXVolume),
	}

	track := "none"
	if cur := engine.CurrentMusic(); cur != nil && cur.Asset != nil {
		track = cur.Asset.ID
	}
	lines = append(lines, fmt.Sprintf("music %s (%s)", track, engine.MusicState()))

	var voices []string
	for _, id := range []string{synth.Flap, synth.Coin, synth.PowerUp, synth.UIClick} {
		voices = append(voices, fmt.Sprintf("%s:%d", id, engine.ActiveVoices(id)))
	}
	lines = append(lines, "voices "+strings.Join(voices, " "))

	if g := engine.Graph(); g != nil {
		if c := g.Compressor(); c != nil {
			lines = append(lines, fmt.Sprintf("compressor %.1f dB", c.Reduction()))
		}
		lines = append(lines, fmt.Sprintf("reverb %v", g.HasReverb()))
	}
	return lines
}

func getOrCreateDebug(e *ecs.ECS) *components.DebugData {
	entry, ok := components.Debug.First(e.World)
	if !ok {
		entry = e.World.Entry(e.World.Create(components.Debug))
	}
	return components.Debug.Get(entry)
}
