package main

import (
	"image"
	"log"
	"os"

	"github.com/automoto/butterfly-flight/assets"
	"github.com/automoto/butterfly-flight/config"
	"github.com/automoto/butterfly-flight/fonts"
	"github.com/automoto/butterfly-flight/scenes"
	"github.com/automoto/butterfly-flight/sound"
	"github.com/automoto/butterfly-flight/systems"
	"github.com/hajimehoshi/ebiten/v2"
)

type Scene interface {
	Update()
	Draw(screen *ebiten.Image)
}

type Game struct {
	bounds image.Rectangle
	scene  Scene
}

// ChangeScene switches to a new scene
func (g *Game) ChangeScene(scene interface{}) {
	g.scene = scene.(Scene)
}

func NewGame(engine *sound.Engine) *Game {
	g := &Game{
		bounds: image.Rectangle{},
	}
	g.scene = scenes.NewMenuScene(g, engine)
	return g
}

func (g *Game) Update() error {
	g.scene.Update()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.scene.Draw(screen)
}

func (g *Game) Layout(width, height int) (int, int) {
	g.bounds = image.Rect(0, 0, config.C.Width, config.C.Height)
	return config.C.Width, config.C.Height
}

// newAudioEngine builds the engine on ebiten's audio context, reading music
// files from the working directory.
func newAudioEngine() *sound.Engine {
	opts := []sound.Option{
		sound.WithDevice(sound.NewEbitenDevice(config.Audio.BufferSize)),
		sound.WithLoader(assets.NewAudioLoader(os.DirFS("."))),
	}
	if store := systems.SettingsStore(); store != nil {
		opts = append(opts, sound.WithStore(store))
	}

	engine := sound.New(config.Audio.EngineConfig(), opts...)
	if err := engine.Initialize(); err != nil {
		log.Printf("Warning: Could not initialize audio: %v", err)
	}
	systems.LoadAudioCatalog(engine)
	return engine
}

func main() {
	if err := fonts.LoadDefaults(); err != nil {
		log.Fatalf("Failed to load fonts: %v", err)
	}

	ebiten.SetWindowSize(config.C.Width, config.C.Height)
	ebiten.SetWindowTitle("Butterfly Flight")
	ebiten.SetTPS(config.C.TPS)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeOnlyFullscreenEnabled)

	// Initialize persistence before the engine reads its saved settings
	if err := systems.InitPersistence(); err != nil {
		log.Printf("Warning: Could not initialize persistence: %v", err)
	}

	engine := newAudioEngine()
	defer engine.Close()

	if err := ebiten.RunGame(NewGame(engine)); err != nil {
		log.Fatal(err)
	}
}
