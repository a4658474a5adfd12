// Package game wires the catalog, camera and quiz into an ECS world with
// four screens: Start, Explo, Play and End.
package game

import (
	"log"
	"math/rand/v2"

	"github.com/plus3/astraea/ecs"
	"github.com/plus3/astraea/internal/camera"
	"github.com/plus3/astraea/internal/input"
	"github.com/plus3/astraea/internal/quiz"
	"github.com/plus3/astraea/internal/save"
	"github.com/plus3/astraea/internal/sky"
	"github.com/plus3/astraea/internal/ui"
)

const (
	DefaultHome = "Ursa Minor"
	// FrameTime is the fixed step the update scheduler advances by.
	FrameTime = 1.0 / 60
)

// Game owns the world and the update scheduler.
type Game struct {
	Storage     *ecs.Storage
	Update      *ecs.Scheduler
	Transitions *ecs.StateTransitions[Screen]

	catalog *sky.Catalog
	rng     *rand.Rand
	store   *save.Store
	home    *sky.Constellation

	markers *ecs.View[struct{ *Marker }]
}

// New builds the world, spawns the star field and registers every update
// system. source fills the input snapshot each frame.
func New(catalog *sky.Catalog, source input.Source, opts Options) *Game {
	opts.defaults()

	registry := ecs.NewComponentRegistry()
	registerComponents(registry)
	storage := ecs.NewStorage(registry)

	g := &Game{
		Storage: storage,
		Update:  ecs.NewScheduler(storage),
		catalog: catalog,
		rng:     rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x9e3779b97f4a7c15)),
		store:   opts.Store,
	}
	g.markers = ecs.NewView[struct{ *Marker }](storage)

	if home, ok := catalog.Lookup(opts.Home); ok {
		g.home = home
	} else if len(catalog.Constellations) > 0 {
		g.home = &catalog.Constellations[0]
		log.Printf("[Game] Warning: home constellation %q not found, using %s", opts.Home, g.home.Name)
	}

	view := camera.NewView(opts.FovY, opts.Width, opts.Height)
	view.Follow, view.Settle, view.Gain = opts.Follow, opts.Settle, opts.DragGain

	storage.AddSingleton(input.State{Width: opts.Width, Height: opts.Height})
	storage.AddSingleton(ui.Pointer{Clicked: -1})
	storage.AddSingleton(view)
	storage.AddSingleton(quiz.NewSession())
	storage.AddSingleton(Explore{})
	storage.AddSingleton(Drag{})

	g.spawnStars(opts.MagnitudeLimit)

	g.Transitions = ecs.NewStateTransitions(storage, Start)
	g.installHooks()

	g.Update.Register(&input.PollSystem{Source: source})
	g.Update.Register(g.Transitions)
	g.Update.Register(&ui.LayoutSystem{})
	g.Update.Register(&ui.InteractionSystem{})
	g.Update.RegisterIf(ecs.InState(Start), &StartSystem{})
	g.Update.RegisterIf(ecs.InState(Explo), &ExploSystem{game: g})
	g.Update.RegisterIf(ecs.InState(Play), &QuizSystem{game: g})
	g.Update.RegisterIf(ecs.InState(End), &EndSystem{})
	g.Update.RegisterIf(anyScreen(Explo, Play), &DragSystem{})
	g.Update.Register(&CameraSystem{})
	g.Update.RegisterIf(ecs.InState(Play), &HudSystem{})

	log.Printf("[Game] %d stars, %d constellations, seed %d", len(catalog.Stars), len(catalog.Constellations), opts.Seed)
	return g
}

func anyScreen(screens ...Screen) ecs.Condition {
	conds := make([]ecs.Condition, len(screens))
	for i, s := range screens {
		conds[i] = ecs.InState(s)
	}
	return func(storage *ecs.Storage) bool {
		for _, cond := range conds {
			if cond(storage) {
				return true
			}
		}
		return false
	}
}

// Step runs one update frame.
func (g *Game) Step() {
	g.Update.Once(FrameTime)
}

func (g *Game) Catalog() *sky.Catalog {
	return g.catalog
}

func (g *Game) Store() *save.Store {
	return g.store
}

// Home is the constellation W flies to.
func (g *Game) Home() *sky.Constellation {
	return g.home
}

func (g *Game) Screen() Screen {
	var machine *ecs.State[Screen]
	if !g.Storage.ReadSingleton(&machine) {
		return Start
	}
	return machine.Current()
}

// SetScreen requests a screen change for the next frame.
func (g *Game) SetScreen(s Screen) {
	var machine *ecs.State[Screen]
	if g.Storage.ReadSingleton(&machine) {
		machine.Set(s)
	}
}

func (g *Game) Session() *quiz.Session {
	var session *quiz.Session
	g.Storage.ReadSingleton(&session)
	return session
}

func (g *Game) View() *camera.View {
	var view *camera.View
	g.Storage.ReadSingleton(&view)
	return view
}

func (g *Game) Input() *input.State {
	var state *input.State
	g.Storage.ReadSingleton(&state)
	return state
}

// FlyTo eases the camera onto the named constellation.
func (g *Game) FlyTo(name string) bool {
	c, ok := g.catalog.Lookup(name)
	if !ok {
		return false
	}
	g.View().SetTarget(camera.CentreOf(c))
	return true
}

// Resize tells the world about a new viewport size.
func (g *Game) Resize(width, height int) {
	state := g.Input()
	state.Width, state.Height = width, height
}

func (g *Game) spawnStars(limit float64) {
	stars := g.catalog.Stars
	if limit > 0 {
		stars = g.catalog.Brighter(limit)
	}
	for _, star := range stars {
		c := sky.Tint(star.Temperature)
		c.A = sky.Brightness(star.Magnitude)
		g.Storage.Spawn(StarSprite{
			Position: star.Position,
			Size:     sky.StarSize(star.Magnitude),
			Color:    c,
			Label:    star.Label(),
		})
	}
}

func spawnLines(dst *ecs.Commands, c *sky.Constellation, owner Screen) {
	for _, seg := range c.Segments() {
		dst.Spawn(Line{Constellation: c.Name, From: seg[0], To: seg[1]}, Marker{Screen: owner})
	}
}

// despawn deletes every entity owned by screen.
func (g *Game) despawn(screen Screen) {
	var ids []ecs.EntityId
	for id, m := range g.markers.Iter() {
		if m.Screen == screen {
			ids = append(ids, id)
		}
	}
	for _, id := range ids {
		g.Storage.Delete(id)
	}
}

func (g *Game) spawnLabel(owner Screen, label ui.Label, extra ...any) {
	components := append([]any{label, Marker{Screen: owner}}, extra...)
	g.Storage.Spawn(components...)
}
