package game

import (
	"image/color"
	"strconv"
	"strings"

	"github.com/plus3/astraea/ecs"
	"github.com/plus3/astraea/internal/quiz"
	"github.com/plus3/astraea/internal/ui"
)

// HudSystem mirrors the session into the Play screen's labels and buttons.
type HudSystem struct {
	Session ecs.Singleton[quiz.Session]
	Labels  ecs.Query[struct {
		*ui.Label
		*Hud
	}]
	Buttons ecs.Query[struct{ *ui.Button }]
}

func (s *HudSystem) Execute(frame *ecs.UpdateFrame) {
	session := s.Session.Get()

	for l := range s.Labels.Values() {
		switch l.Hud.Kind {
		case HealthText:
			l.Label.Text = strings.Repeat("# ", max(session.Health, 0))
		case ScoreText:
			l.Label.Text = strconv.Itoa(session.Score)
		case HintText:
			if session.Round.Progress == quiz.Answered {
				l.Label.Text = NextPrompt
			} else {
				l.Label.Text = HintPrompt
			}
		}
	}

	round := &session.Round
	for b := range s.Buttons.Values() {
		b.Button.Label = ""
		if b.Index < len(round.Choices) {
			b.Button.Label = round.Choices[b.Index]
		}
		b.Button.Background, b.Button.Border = buttonColors(round, b.Button)
	}
}

func buttonColors(round *quiz.Round, b *ui.Button) (background, border color.RGBA) {
	outcome, selected := round.Outcome(b.Label)
	switch outcome {
	case quiz.Right:
		background = ui.RightButton
	case quiz.Wrong:
		background = ui.WrongButton
	default:
		background = ui.NormalButton
		if b.Hovered {
			background = ui.HoverButton
		}
	}
	border = ui.Black
	if selected {
		border = ui.White
	}
	return background, border
}
