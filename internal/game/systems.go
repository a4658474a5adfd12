package game

import (
	"log"
	"math"
	"strings"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/plus3/astraea/ecs"
	"github.com/plus3/astraea/internal/camera"
	"github.com/plus3/astraea/internal/input"
	"github.com/plus3/astraea/internal/quiz"
	"github.com/plus3/astraea/internal/sky"
	"github.com/plus3/astraea/internal/ui"
)

const (
	DriftYaw   float32 = math.Pi / 6000
	DriftPitch float32 = -math.Pi / 2000
)

// hoverCos is the cosine of the widest angle between the cursor ray and a
// member star that still names its constellation.
var hoverCos = float32(math.Cos(5 * math.Pi / 180))

var answerKeys = [quiz.Choices]input.Key{input.Key1, input.Key2, input.Key3, input.Key4}

type StartSystem struct {
	Input  ecs.Singleton[input.State]
	View   ecs.Singleton[camera.View]
	Screen ecs.Singleton[ecs.State[Screen]]
}

func (s *StartSystem) Execute(frame *ecs.UpdateFrame) {
	state, view, screen := s.Input.Get(), s.View.Get(), s.Screen.Get()

	view.Drift(DriftYaw, DriftPitch)

	switch {
	case state.JustPressed(input.KeySpace):
		screen.Set(Play)
	case state.JustPressed(input.KeyE):
		screen.Set(Explo)
	}
}

type EndSystem struct {
	Input  ecs.Singleton[input.State]
	Screen ecs.Singleton[ecs.State[Screen]]
}

func (s *EndSystem) Execute(frame *ecs.UpdateFrame) {
	if s.Input.Get().JustPressed(input.KeySpace) {
		s.Screen.Get().Set(Start)
	}
}

// steer applies the look keys shared by Explo and Play.
func steer(state *input.State, view *camera.View, g *Game) {
	if state.Pressed(input.KeyA) {
		view.Turn(camera.TurnStep)
	}
	if state.Pressed(input.KeyD) {
		view.Turn(-camera.TurnStep)
	}
	if state.Pressed(input.KeyW) && g.home != nil {
		view.SetTarget(camera.CentreOf(g.home))
	}
}

type ExploSystem struct {
	game *Game

	Input   ecs.Singleton[input.State]
	View    ecs.Singleton[camera.View]
	Screen  ecs.Singleton[ecs.State[Screen]]
	Explore ecs.Singleton[Explore]
	Lines   ecs.Query[struct {
		*Line
		*Marker
	}]
	Labels ecs.Query[struct {
		*ui.Label
		*Hud
	}]
}

func (s *ExploSystem) Execute(frame *ecs.UpdateFrame) {
	state, view, explore := s.Input.Get(), s.View.Get(), s.Explore.Get()

	if state.JustPressed(input.KeyEscape) {
		s.Screen.Get().Set(Start)
		return
	}

	steer(state, view, s.game)

	if state.JustPressed(input.KeyL) {
		explore.ShowLines = !explore.ShowLines
		if explore.ShowLines {
			for i := range s.game.catalog.Constellations {
				spawnLines(frame.Commands, &s.game.catalog.Constellations[i], Explo)
			}
		} else {
			for id, line := range s.Lines.Iter() {
				if line.Marker.Screen == Explo {
					frame.Commands.Delete(id)
				}
			}
		}
	}

	if !state.MouseDown {
		explore.Hover = s.nearest(view.RayAt(state.CursorX, state.CursorY))
	}
	for label := range s.Labels.Values() {
		if label.Hud.Kind == HoverText {
			label.Label.Text = explore.Hover
		}
	}
}

// nearest names the constellation with a member star closest to ray, or
// "" when none is within 5 degrees.
func (s *ExploSystem) nearest(ray mgl32.Vec3) string {
	best, name := hoverCos, ""
	for _, c := range s.game.catalog.Constellations {
		for _, m := range c.Stars {
			if d := m.Position().Dot(ray); d > best {
				best, name = d, c.Name
			}
		}
	}
	return name
}

// QuizSystem runs the Play screen: dealing rounds, hints, answers and the
// look keys.
type QuizSystem struct {
	game       *Game
	dealFailed bool

	Input   ecs.Singleton[input.State]
	Pointer ecs.Singleton[ui.Pointer]
	View    ecs.Singleton[camera.View]
	Screen  ecs.Singleton[ecs.State[Screen]]
	Session ecs.Singleton[quiz.Session]
	Lines   ecs.Query[struct {
		*Line
		*Marker
	}]
}

func (s *QuizSystem) Execute(frame *ecs.UpdateFrame) {
	state, view, session := s.Input.Get(), s.View.Get(), s.Session.Get()

	if state.JustPressed(input.KeyEscape) {
		s.Screen.Get().Set(Start)
		return
	}

	if !session.Dealt() {
		s.deal(frame, session, view)
		return
	}

	// Space skips to a new round at any point, unanswered rounds included.
	if state.JustPressed(input.KeySpace) {
		if session.Over() {
			s.Screen.Get().Set(End)
			return
		}
		s.deal(frame, session, view)
		return
	}

	steer(state, view, s.game)

	target, _ := s.game.catalog.Lookup(session.Round.Target)

	if state.JustPressed(input.KeyI) && session.Hint() {
		log.Printf("[Quiz] hint for round %d", session.Rounds)
		s.reveal(frame, target)
	}

	if state.Pressed(input.KeyR) && target != nil {
		view.SetTarget(camera.CentreOf(target))
	}

	choice := s.Pointer.Get().Clicked
	for i, k := range answerKeys {
		if state.JustPressed(k) {
			choice = i
		}
	}
	if choice < 0 {
		return
	}
	if res, ok := session.AnswerIndex(choice); ok {
		verdict := "wrong"
		if res.Correct {
			verdict = "right"
		}
		log.Printf("[Quiz] %s: %q is %s, score %d, health %d",
			verdict, session.Round.Selected, session.Round.Target, session.Score, session.Health)
		if res.Reveal {
			s.reveal(frame, target)
		}
	}
}

func (s *QuizSystem) reveal(frame *ecs.UpdateFrame, target *sky.Constellation) {
	if target != nil {
		spawnLines(frame.Commands, target, Play)
	}
}

func (s *QuizSystem) deal(frame *ecs.UpdateFrame, session *quiz.Session, view *camera.View) {
	if err := session.Deal(s.game.rng, s.game.catalog.Names()); err != nil {
		if !s.dealFailed {
			log.Printf("[Quiz] cannot deal a round: %v", err)
		}
		s.dealFailed = true
		return
	}
	s.dealFailed = false

	for id, line := range s.Lines.Iter() {
		if line.Marker.Screen == Play {
			frame.Commands.Delete(id)
		}
	}

	if target, ok := s.game.catalog.Lookup(session.Round.Target); ok {
		view.SetTarget(camera.CentreOf(target))
	}
	log.Printf("[Quiz] round %d: %s among %s", session.Rounds, session.Round.Target, strings.Join(session.Round.Choices, ", "))
}

// DragSystem turns a left-button drag into a camera target.
type DragSystem struct {
	Input   ecs.Singleton[input.State]
	Pointer ecs.Singleton[ui.Pointer]
	View    ecs.Singleton[camera.View]
	Drag    ecs.Singleton[Drag]
}

func (s *DragSystem) Execute(frame *ecs.UpdateFrame) {
	state, drag := s.Input.Get(), s.Drag.Get()

	if !state.MouseDown || state.Captured {
		*drag = Drag{}
		return
	}
	if drag.Blocked {
		return
	}
	if !drag.Active {
		if state.MouseJustPressed && s.Pointer.Get().OverWidget {
			drag.Blocked = true
			return
		}
		drag.Active = true
		drag.X, drag.Y = state.CursorX, state.CursorY
		return
	}

	dx, dy := state.CursorX-drag.X, state.CursorY-drag.Y
	if dx*dx+dy*dy < DragThreshold*DragThreshold {
		return
	}
	s.View.Get().Drag(drag.X, drag.Y, state.CursorX, state.CursorY)
	drag.X, drag.Y = state.CursorX, state.CursorY
}

// CameraSystem keeps the projector sized to the viewport and eases the
// rotation toward its target.
type CameraSystem struct {
	Input ecs.Singleton[input.State]
	View  ecs.Singleton[camera.View]
}

func (s *CameraSystem) Execute(frame *ecs.UpdateFrame) {
	state, view := s.Input.Get(), s.View.Get()
	if state.Width > 0 && state.Height > 0 &&
		(int(view.Width) != state.Width || int(view.Height) != state.Height) {
		view.Resize(state.Width, state.Height)
	}
	view.Step()
}
