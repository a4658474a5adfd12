package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/astraea/ecs"
	"github.com/plus3/astraea/internal/input"
)

func TestRect(t *testing.T) {
	r := Rect{X: 10, Y: 20, W: 100, H: 50}
	assert.True(t, r.Contains(10, 20))
	assert.True(t, r.Contains(109, 69))
	assert.False(t, r.Contains(110, 20))
	assert.False(t, r.Contains(9, 30))

	assert.Equal(t, Rect{X: 15, Y: 25, W: 90, H: 40}, r.Inset(5))
	assert.Equal(t, float32(0), r.Inset(60).W)

	x, y := r.Centre()
	assert.Equal(t, float32(60), x)
	assert.Equal(t, float32(45), y)
}

func TestPlace(t *testing.T) {
	tests := []struct {
		anchor Anchor
		x, y   float32
	}{
		{TopLeft, 10, 10},
		{TopCentre, 360, 10},
		{TopRight, 690, 10},
		{Centre, 360, 300},
		{BottomCentre, 360, 570},
	}
	for _, tt := range tests {
		x, y := Place(tt.anchor, 10, 10, 800, 600, 100, 20)
		assert.Equal(t, tt.x, x, "anchor %d", tt.anchor)
		assert.Equal(t, tt.y, y, "anchor %d", tt.anchor)
	}
}

func TestButtonRow(t *testing.T) {
	rects := ButtonRow(4, 1280, 720)
	require.Len(t, rects, 4)

	// 4 cells of 170 px centred in 1280 start at 300, plus the margin.
	assert.Equal(t, Rect{X: 310, Y: 635, W: 150, H: 65}, rects[0])
	assert.Equal(t, float32(310+3*170), rects[3].X)

	for i := 1; i < len(rects); i++ {
		assert.Equal(t, 2*ButtonMargin, rects[i].X-(rects[i-1].X+rects[i-1].W))
	}
}

func TestLighten(t *testing.T) {
	c := Lighten(NormalButton, 0.5)
	assert.Greater(t, c.R, NormalButton.R)
	assert.Equal(t, uint8(255), c.A)
	assert.Equal(t, White, Lighten(Black, 1))
	assert.Equal(t, Black, Lighten(Black, 0))
}

func newWorld(t *testing.T) (*ecs.Storage, *ecs.Scheduler, *input.State) {
	t.Helper()
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Button](registry)
	storage := ecs.NewStorage(registry)
	storage.AddSingleton(input.State{Width: 1280, Height: 720})
	storage.AddSingleton(Pointer{Clicked: -1})

	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(&LayoutSystem{})
	scheduler.Register(&InteractionSystem{})

	var state *input.State
	require.True(t, storage.ReadSingleton(&state))
	return storage, scheduler, state
}

func TestInteraction(t *testing.T) {
	storage, scheduler, state := newWorld(t)
	for i := range 4 {
		storage.Spawn(Button{Index: i, Label: "b"})
	}

	var pointer *Pointer
	require.True(t, storage.ReadSingleton(&pointer))

	// First frame lays out; the cursor is nowhere near.
	scheduler.Once(0)
	assert.False(t, pointer.OverWidget)
	assert.Equal(t, -1, pointer.Clicked)

	// Hover the third button.
	state.Begin()
	state.SetMouse(false, 310+2*170+5, 650)
	scheduler.Once(0)
	assert.True(t, pointer.OverWidget)
	assert.Equal(t, -1, pointer.Clicked)

	state.Begin()
	state.SetMouse(true, 310+2*170+5, 650)
	scheduler.Once(0)
	assert.Equal(t, 2, pointer.Clicked)

	// Holding does not click again.
	state.Begin()
	state.SetMouse(true, 310+2*170+5, 650)
	scheduler.Once(0)
	assert.Equal(t, -1, pointer.Clicked)

	// An overlay owning the mouse hides the buttons.
	state.Begin()
	state.SetMouse(false, 310+2*170+5, 650)
	state.Captured = true
	scheduler.Once(0)
	assert.False(t, pointer.OverWidget)
}
