// Package debugui is the F3 Dear ImGui overlay: windows over the quiz, the
// catalog, the schedulers and the world storage.
package debugui

import (
	ebitenbackend "github.com/AllenDang/cimgui-go/backend/ebiten-backend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/plus3/astraea/ecs"
	"github.com/plus3/astraea/internal/input"
)

// Item holds one window's render function.
type Item struct {
	Render func()
}

// State is the overlay singleton.
type State struct {
	Visible             bool
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

func RegisterComponents(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[Item](registry)
}

// System toggles the overlay on F3, mirrors imgui's capture flags and
// queues every Item's render to run once the frame's commands flush.
type System struct {
	Input ecs.Singleton[input.State]
	State ecs.Singleton[State]
	Items ecs.Query[struct{ *Item }]
}

func (s *System) Execute(frame *ecs.UpdateFrame) {
	state := s.State.Get()
	if in := s.Input.Get(); in != nil && in.JustPressed(input.KeyF3) {
		state.Visible = !state.Visible
	}

	if !state.Visible {
		state.WantCaptureMouse = false
		state.WantCaptureKeyboard = false
		return
	}
	io := imgui.CurrentIO()
	state.WantCaptureMouse = io.WantCaptureMouse()
	state.WantCaptureKeyboard = io.WantCaptureKeyboard()

	for item := range s.Items.Values() {
		frame.Commands.Defer(item.Render)
	}
}

// Backend drives imgui inside an ebiten game loop.
type Backend struct {
	*ebitenbackend.EbitenBackend
	state *ecs.Singleton[State]
}

// NewBackend creates the imgui context and its ebiten window.
func NewBackend(storage *ecs.Storage, title string, width, height int, visible bool) *Backend {
	b := ebitenbackend.NewEbitenBackend()
	b.CreateWindow(title, width, height)
	imgui.CurrentIO().SetIniFilename("")

	return &Backend{
		EbitenBackend: b,
		state:         ecs.NewSingleton(storage, State{Visible: visible}),
	}
}

// CaptureMouse reports whether imgui owns the pointer this frame.
func (b *Backend) CaptureMouse() bool {
	if b == nil {
		return false
	}
	state := b.state.Get()
	return state.Visible && state.WantCaptureMouse
}

// DrawOverlay paints the imgui frame over dst while the overlay is shown.
func (b *Backend) DrawOverlay(dst *ebiten.Image) {
	if b.state.Get().Visible {
		b.Draw(dst)
	}
}
