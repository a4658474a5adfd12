// Command astraea is the constellation quiz in a window.
package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/plus3/astraea/internal/audio"
	"github.com/plus3/astraea/internal/config"
	"github.com/plus3/astraea/internal/debugui"
	"github.com/plus3/astraea/internal/game"
	"github.com/plus3/astraea/internal/input/ebiteninput"
	"github.com/plus3/astraea/internal/render"
	"github.com/plus3/astraea/internal/save"
	"github.com/plus3/astraea/internal/sky"
)

// App implements ebiten.Game.
type App struct {
	game     *game.Game
	renderer *render.Renderer
	overlay  *debugui.Backend
	music    *audio.Music
}

func main() {
	configPath := flag.String("config", "", "Path to a YAML configuration file.")
	debug := flag.Bool("debug", false, "Show the debug overlay at start (F3 toggles it).")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	catalog, err := sky.LoadFiles(cfg.Catalog.Stars, cfg.Catalog.Constellations)
	if err != nil {
		log.Fatalf("Failed to load catalog: %v", err)
	}
	log.Printf("[Sky] %d stars, %d constellations", len(catalog.Stars), len(catalog.Constellations))

	store := save.Open(cfg.Save.AppName)
	records := store.Records()
	log.Printf("[Save] best score %d over %d games", records.BestScore, records.GamesPlayed)

	source := &ebiteninput.Source{}
	g := game.New(catalog, source, game.OptionsFrom(cfg, store))

	renderer, err := render.New(g.Storage)
	if err != nil {
		log.Fatalf("Failed to create renderer: %v", err)
	}

	overlay := debugui.NewBackend(g.Storage, cfg.Window.Title, cfg.Window.Width, cfg.Window.Height, *debug || cfg.Debug)
	debugui.Install(g, renderer.Scheduler())
	source.CaptureMouse = overlay.CaptureMouse

	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	app := &App{
		game:     g,
		renderer: renderer,
		overlay:  overlay,
		music:    audio.Start(cfg.Audio.Music, cfg.Audio.Volume),
	}
	if err := ebiten.RunGame(app); err != nil {
		log.Fatalf("Game exited: %v", err)
	}
}

func (a *App) Update() error {
	switch focused := ebiten.IsFocused(); {
	case !focused && a.music.Playing():
		a.music.Pause()
	case focused && a.music != nil && !a.music.Playing():
		a.music.Play()
	}

	a.overlay.BeginFrame()
	a.game.Step()
	a.overlay.EndFrame()
	return nil
}

func (a *App) Draw(screen *ebiten.Image) {
	a.renderer.Draw(screen)
	a.overlay.DrawOverlay(screen)
}

func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	a.game.Resize(outsideWidth, outsideHeight)
	a.overlay.Layout(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}
