package game

import (
	"fmt"
	"image/color"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/plus3/astraea/ecs"
	"github.com/plus3/astraea/internal/ui"
)

// Screen is the top-level game state.
type Screen uint8

const (
	Start Screen = iota
	Explo
	Play
	End
)

func (s Screen) String() string {
	switch s {
	case Start:
		return "start"
	case Explo:
		return "explo"
	case Play:
		return "game"
	case End:
		return "end"
	}
	return fmt.Sprintf("Screen(%d)", uint8(s))
}

// StarSprite is a star placed on the unit sphere.
type StarSprite struct {
	Position mgl32.Vec3
	Size     float32
	Color    color.RGBA
	Label    string
}

// Line is one segment of a constellation's line art.
type Line struct {
	Constellation string
	From, To      mgl32.Vec3
}

// Marker ties an entity to the screen that spawned it. It is despawned
// when that screen exits.
type Marker struct {
	Screen Screen
}

type HudKind uint8

const (
	HealthText HudKind = iota
	ScoreText
	HintText
	HoverText
)

// Hud tags a label whose text is rewritten every frame.
type Hud struct {
	Kind HudKind
}

// Explore is the free-look screen's state.
type Explore struct {
	ShowLines bool
	Hover     string
}

// Drag follows a mouse drag across frames.
type Drag struct {
	Active  bool
	Blocked bool
	X, Y    float32
}

// DragThreshold is how far in pixels the cursor must move before a drag
// rotates the sky.
const DragThreshold float32 = 3

func registerComponents(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[StarSprite](registry)
	ecs.RegisterComponent[Line](registry)
	ecs.RegisterComponent[Marker](registry)
	ecs.RegisterComponent[Hud](registry)
	ecs.RegisterComponent[ui.Label](registry)
	ecs.RegisterComponent[ui.Button](registry)
}
