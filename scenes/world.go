package scenes

import (
	"image/color"
	"sync"

	cfg "github.com/automoto/butterfly-flight/config"
	"github.com/automoto/butterfly-flight/sound"
	"github.com/automoto/butterfly-flight/systems"
	"github.com/automoto/butterfly-flight/systems/factory"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// FlightScene is a single run: the butterfly, the scrolling pipes and the
// in-world pause, settings and game over overlays.
type FlightScene struct {
	ecs          *ecs.ECS
	sceneChanger SceneChanger
	engine       *sound.Engine
	once         sync.Once
}

// NewFlightScene creates a new flight scene
func NewFlightScene(sc SceneChanger, engine *sound.Engine) *FlightScene {
	return &FlightScene{sceneChanger: sc, engine: engine}
}

func (fs *FlightScene) Update() {
	fs.once.Do(fs.configure)
	fs.ecs.Update()
}

func (fs *FlightScene) Draw(screen *ebiten.Image) {
	// Always clear screen to prevent white flashes from OS window background
	screen.Fill(color.Black)

	if fs.ecs == nil {
		return
	}
	fs.ecs.Draw(screen)
}

func (fs *FlightScene) configure() {
	ecs := ecs.NewECS(donburi.NewWorld())
	systems.AttachAudio(ecs, fs.engine)

	createFlightScene := func() interface{} {
		return NewFlightScene(fs.sceneChanger, fs.engine)
	}
	createMenuScene := func() interface{} {
		return NewMenuScene(fs.sceneChanger, fs.engine)
	}

	// Audio system (runs first, even when paused for menu sounds)
	ecs.AddSystem(systems.UpdateAudio)

	// Systems that always run
	ecs.AddSystem(systems.UpdateInput)
	ecs.AddSystem(systems.UpdateDebug)
	ecs.AddSystem(systems.NewUpdatePause(fs.sceneChanger, createMenuScene))
	ecs.AddSystem(systems.UpdateSettingsMenu)
	ecs.AddSystem(systems.UpdateTheme)

	// Gameplay systems check the run state themselves
	ecs.AddSystem(systems.UpdateRun)
	ecs.AddSystem(systems.UpdateButterfly)
	ecs.AddSystem(systems.UpdatePhysics)
	ecs.AddSystem(systems.UpdateObstacles)
	ecs.AddSystem(systems.UpdateObjects)
	ecs.AddSystem(systems.CheckCollisions)
	ecs.AddSystem(systems.UpdateEffects)
	ecs.AddSystem(systems.UpdateCamera)
	ecs.AddSystem(systems.NewUpdateGameOver(fs.sceneChanger, createFlightScene, createMenuScene))

	// Add renderers
	ecs.AddRenderer(cfg.Default, systems.DrawBackground)
	ecs.AddRenderer(cfg.Default, systems.DrawWorld)
	ecs.AddRenderer(cfg.Default, systems.DrawButterfly)
	ecs.AddRenderer(cfg.Default, systems.DrawEffects)
	ecs.AddRenderer(cfg.Default, systems.DrawHUD)
	ecs.AddRenderer(cfg.Default, systems.DrawDebug)
	ecs.AddRenderer(cfg.Default, systems.DrawPause)
	ecs.AddRenderer(cfg.Default, systems.DrawGameOver)
	ecs.AddRenderer(cfg.Default, systems.DrawSettingsMenu)

	fs.ecs = ecs

	factory.CreateFlightSpace(fs.ecs)
	factory.CreateCamera(fs.ecs)
	factory.CreateGround(fs.ecs)
	factory.CreateRun(fs.ecs, cfg.ThemeByID(systems.LoadProgress().Theme).ID, systems.LoadInventory().Skin)
	factory.CreateButterfly(fs.ecs, cfg.Player.StartX, cfg.Player.StartY)
}
