// Package render draws the world with ebiten: the star field and line art
// first, then labels and buttons on top.
package render

import (
	"bytes"
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/plus3/astraea/ecs"
)

var Background = color.RGBA{3, 5, 14, 255}

// Target is the image the draw systems paint this frame.
type Target struct {
	Image *ebiten.Image
}

// Fonts caches faces of one source by size.
type Fonts struct {
	source *text.GoTextFaceSource
	faces  map[float32]*text.GoTextFace
}

func NewFonts() (*Fonts, error) {
	source, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, fmt.Errorf("load font: %w", err)
	}
	return &Fonts{source: source, faces: make(map[float32]*text.GoTextFace)}, nil
}

func (f *Fonts) Face(size float32) *text.GoTextFace {
	face, ok := f.faces[size]
	if !ok {
		face = &text.GoTextFace{Source: f.source, Size: float64(size)}
		f.faces[size] = face
	}
	return face
}

// Renderer runs the draw systems against a world.
type Renderer struct {
	draw   *ecs.Scheduler
	target *ecs.Singleton[Target]
}

func New(storage *ecs.Storage) (*Renderer, error) {
	fonts, err := NewFonts()
	if err != nil {
		return nil, err
	}

	r := &Renderer{
		draw:   ecs.NewScheduler(storage),
		target: ecs.NewSingleton[Target](storage),
	}
	r.draw.Register(&SkySystem{})
	r.draw.Register(&WidgetSystem{fonts: fonts})
	return r, nil
}

// Register adds a system that runs after the built-in ones, such as an
// overlay.
func (r *Renderer) Register(system ecs.System) {
	r.draw.Register(system)
}

func (r *Renderer) Scheduler() *ecs.Scheduler {
	return r.draw
}

// Draw paints one frame onto dst.
func (r *Renderer) Draw(dst *ebiten.Image) {
	r.target.Get().Image = dst
	r.draw.Once(0)
	r.target.Get().Image = nil
}
