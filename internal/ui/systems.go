package ui

import (
	"github.com/plus3/astraea/ecs"
	"github.com/plus3/astraea/internal/input"
)

// Pointer tells other systems whether the cursor is over a widget this
// frame.
type Pointer struct {
	OverWidget bool
	// Clicked is the index of the button clicked this frame, or -1.
	Clicked int
}

// LayoutSystem places buttons in a bottom-centred row sized to the
// viewport.
type LayoutSystem struct {
	Input   ecs.Singleton[input.State]
	Buttons ecs.Query[struct{ *Button }]
}

func (s *LayoutSystem) Execute(frame *ecs.UpdateFrame) {
	state := s.Input.Get()
	if state == nil {
		return
	}
	n := s.Buttons.Len()
	if n == 0 {
		return
	}
	rects := ButtonRow(n, float32(state.Width), float32(state.Height))
	for b := range s.Buttons.Values() {
		if b.Index >= 0 && b.Index < n {
			b.Rect = rects[b.Index]
		}
	}
}

// InteractionSystem hit-tests the cursor against every button.
type InteractionSystem struct {
	Input   ecs.Singleton[input.State]
	Pointer ecs.Singleton[Pointer]
	Buttons ecs.Query[struct{ *Button }]
}

func (s *InteractionSystem) Execute(frame *ecs.UpdateFrame) {
	state := s.Input.Get()
	pointer := s.Pointer.Get()
	if state == nil || pointer == nil {
		return
	}

	pointer.OverWidget = false
	pointer.Clicked = -1
	for b := range s.Buttons.Values() {
		b.Hovered = !state.Captured && b.Rect.Contains(state.CursorX, state.CursorY)
		b.Clicked = b.Hovered && state.MouseJustPressed
		if b.Hovered {
			pointer.OverWidget = true
		}
		if b.Clicked {
			pointer.Clicked = b.Index
		}
	}
}
