package scenes

import (
	"image/color"
	"sync"

	cfg "github.com/automoto/butterfly-flight/config"
	"github.com/automoto/butterfly-flight/sound"
	"github.com/automoto/butterfly-flight/systems"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// SceneChanger allows scenes to trigger transitions
type SceneChanger interface {
	ChangeScene(scene interface{})
}

// MenuScene displays the main menu
type MenuScene struct {
	ecs          *ecs.ECS
	sceneChanger SceneChanger
	engine       *sound.Engine
	once         sync.Once
}

// NewMenuScene creates a new menu scene
func NewMenuScene(sc SceneChanger, engine *sound.Engine) *MenuScene {
	return &MenuScene{sceneChanger: sc, engine: engine}
}

func (ms *MenuScene) Update() {
	ms.once.Do(ms.configure)
	ms.ecs.Update()
}

func (ms *MenuScene) Draw(screen *ebiten.Image) {
	// Always clear screen to prevent white flashes from OS window background
	screen.Fill(color.Black)

	if ms.ecs == nil {
		return
	}
	ms.ecs.Draw(screen)
}

func (ms *MenuScene) configure() {
	ms.ecs = ecs.NewECS(donburi.NewWorld())
	systems.AttachAudio(ms.ecs, ms.engine)

	createFlightScene := func() interface{} {
		return NewFlightScene(ms.sceneChanger, ms.engine)
	}

	// Audio system (runs first so queued cues play the same frame)
	ms.ecs.AddSystem(systems.UpdateAudio)

	ms.ecs.AddSystem(systems.UpdateInput)
	ms.ecs.AddSystem(systems.NewUpdateMenu(ms.sceneChanger, createFlightScene))
	ms.ecs.AddSystem(systems.UpdateSettingsMenu)
	ms.ecs.AddSystem(systems.UpdateShop)
	ms.ecs.AddSystem(systems.UpdateEffects)

	// Renderers (overlays draw on top of menu)
	ms.ecs.AddRenderer(cfg.Default, systems.DrawBackground)
	ms.ecs.AddRenderer(cfg.Default, systems.DrawEffects)
	ms.ecs.AddRenderer(cfg.Default, systems.DrawMenu)
	ms.ecs.AddRenderer(cfg.Default, systems.DrawSettingsMenu)
	ms.ecs.AddRenderer(cfg.Default, systems.DrawShop)

	// Start the saved theme's music
	menu := systems.GetOrCreateMenu(ms.ecs)
	systems.PlayMusic(ms.ecs, cfg.ThemeByID(menu.Theme).Music)
}
