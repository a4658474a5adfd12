// Package ebiteninput fills an input snapshot from ebiten's device state.
package ebiteninput

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/plus3/astraea/internal/input"
)

var keymap = map[input.Key]ebiten.Key{
	input.KeySpace:  ebiten.KeySpace,
	input.KeyEscape: ebiten.KeyEscape,
	input.KeyA:      ebiten.KeyA,
	input.KeyD:      ebiten.KeyD,
	input.KeyE:      ebiten.KeyE,
	input.KeyI:      ebiten.KeyI,
	input.KeyL:      ebiten.KeyL,
	input.KeyR:      ebiten.KeyR,
	input.KeyW:      ebiten.KeyW,
	input.Key1:      ebiten.KeyDigit1,
	input.Key2:      ebiten.KeyDigit2,
	input.Key3:      ebiten.KeyDigit3,
	input.Key4:      ebiten.KeyDigit4,
	input.KeyF3:     ebiten.KeyF3,
}

// Source polls the keyboard and left mouse button. CaptureMouse, when set,
// is asked whether an overlay owns the pointer this frame.
type Source struct {
	CaptureMouse func() bool
}

func (s *Source) Poll(state *input.State) {
	for k, ek := range keymap {
		state.SetKeyEdge(k, ebiten.IsKeyPressed(ek), inpututil.IsKeyJustPressed(ek))
	}

	x, y := ebiten.CursorPosition()
	state.SetMouseEdge(
		ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
		inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft),
		inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft),
		float32(x), float32(y),
	)

	state.Captured = s.CaptureMouse != nil && s.CaptureMouse()
}
