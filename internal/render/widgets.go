package render

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/plus3/astraea/ecs"
	"github.com/plus3/astraea/internal/ui"
)

const buttonTextSize float32 = 15

// WidgetSystem draws labels and buttons over the sky.
type WidgetSystem struct {
	fonts *Fonts
	op    text.DrawOptions

	Target  ecs.Singleton[Target]
	Labels  ecs.Query[struct{ *ui.Label }]
	Buttons ecs.Query[struct{ *ui.Button }]
}

func (s *WidgetSystem) Execute(frame *ecs.UpdateFrame) {
	dst := s.Target.Get().Image
	if dst == nil {
		return
	}
	bounds := dst.Bounds()
	viewW, viewH := float32(bounds.Dx()), float32(bounds.Dy())

	for b := range s.Buttons.Values() {
		s.drawButton(dst, b.Button)
	}

	for l := range s.Labels.Values() {
		if l.Text == "" {
			continue
		}
		face := s.fonts.Face(l.Size)
		w, h := text.Measure(l.Text, face, 0)
		x, y := ui.Place(l.Anchor, l.OffsetX, l.OffsetY, viewW, viewH, float32(w), float32(h))
		s.text(dst, l.Text, face, x, y, l.Label.Color)
	}
}

func (s *WidgetSystem) drawButton(dst *ebiten.Image, b *ui.Button) {
	r := b.Rect
	vector.DrawFilledRect(dst, r.X, r.Y, r.W, r.H, b.Border, false)
	inner := r.Inset(ui.ButtonBorder)
	vector.DrawFilledRect(dst, inner.X, inner.Y, inner.W, inner.H, b.Background, false)

	if b.Label == "" {
		return
	}
	face := s.fonts.Face(buttonTextSize)
	w, h := text.Measure(b.Label, face, 0)
	cx, cy := r.Centre()
	s.text(dst, b.Label, face, cx-float32(w)/2, cy-float32(h)/2, ui.ButtonText)
}

func (s *WidgetSystem) text(dst *ebiten.Image, str string, face text.Face, x, y float32, clr color.Color) {
	s.op.GeoM.Reset()
	s.op.GeoM.Translate(float64(x), float64(y))
	s.op.ColorScale.Reset()
	s.op.ColorScale.ScaleWithColor(clr)
	text.Draw(dst, str, face, &s.op)
}
