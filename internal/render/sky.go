package render

import (
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/plus3/astraea/ecs"
	"github.com/plus3/astraea/internal/camera"
	"github.com/plus3/astraea/internal/game"
	"github.com/plus3/astraea/internal/ui"
)

const lineWidth float32 = 1.5

// SkySystem clears the frame and draws line art then stars. Anything
// behind the camera is skipped.
type SkySystem struct {
	Target  ecs.Singleton[Target]
	View    ecs.Singleton[camera.View]
	Explore ecs.Singleton[game.Explore]
	Stars   ecs.Query[struct{ *game.StarSprite }]
	Lines   ecs.Query[struct{ *game.Line }]
}

func (s *SkySystem) Execute(frame *ecs.UpdateFrame) {
	dst := s.Target.Get().Image
	view := s.View.Get()
	if dst == nil || view == nil {
		return
	}
	dst.Fill(Background)

	hover := ""
	if explore := s.Explore.Get(); explore != nil {
		hover = explore.Hover
	}

	for l := range s.Lines.Values() {
		x0, y0, ok0 := view.ProjectWorld(l.From)
		x1, y1, ok1 := view.ProjectWorld(l.To)
		if !ok0 || !ok1 {
			continue
		}
		if !view.Visible(x0, y0, 0) && !view.Visible(x1, y1, 0) {
			continue
		}
		clr := ui.LineColor
		if hover != "" && l.Constellation == hover {
			clr = ui.FocusColor
		}
		vector.StrokeLine(dst, x0, y0, x1, y1, lineWidth, clr, true)
	}

	for star := range s.Stars.Values() {
		x, y, ok := view.ProjectWorld(star.Position)
		if !ok || !view.Visible(x, y, star.Size) {
			continue
		}
		half := star.Size / 2
		vector.DrawFilledRect(dst, x-half, y-half, star.Size, star.Size, star.Color, false)
	}
}
