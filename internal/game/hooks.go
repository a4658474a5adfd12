package game

import (
	"fmt"
	"log"

	"github.com/plus3/astraea/ecs"
	"github.com/plus3/astraea/internal/quiz"
	"github.com/plus3/astraea/internal/ui"
)

const (
	TitleText    = "Astraea"
	SubtitleText = "Press Space to Begin"
	ExploreText  = "drag to look around, L for lines, W for home, Esc to leave"
	HintPrompt   = "press i to get an hint"
	NextPrompt   = "press space to continue"
	GameOverText = "Game Over"
)

func (g *Game) installHooks() {
	t := g.Transitions

	for _, screen := range []Screen{Start, Explo, Play, End} {
		t.OnExit(screen, func(*ecs.UpdateFrame) { g.despawn(screen) })
	}

	t.OnEnter(Start, func(*ecs.UpdateFrame) {
		g.View().Target = nil
		g.spawnLabel(Start, ui.Label{Text: TitleText, Size: 50, Color: ui.White, Anchor: ui.Centre, OffsetY: -25})
		g.spawnLabel(Start, ui.Label{Text: SubtitleText, Size: 30, Color: ui.White, Anchor: ui.Centre, OffsetY: 25})
	})

	t.OnEnter(Explo, func(*ecs.UpdateFrame) {
		var explore *Explore
		g.Storage.ReadSingleton(&explore)
		*explore = Explore{}
		g.spawnLabel(Explo, ui.Label{Text: ExploreText, Size: 20, Color: ui.Grey, Anchor: ui.TopCentre, OffsetY: 20})
		g.spawnLabel(Explo, ui.Label{Size: 30, Color: ui.White, Anchor: ui.BottomCentre, OffsetY: 30}, Hud{Kind: HoverText})
	})

	t.OnEnter(Play, func(*ecs.UpdateFrame) {
		g.Session().Reset()
		g.spawnHud()
		log.Printf("[Quiz] new game")
	})

	t.OnEnter(End, func(*ecs.UpdateFrame) {
		score := g.Session().Score
		best := g.store.RecordGame(score)
		log.Printf("[Quiz] game over, score %d, best %d", score, best)

		g.spawnLabel(End, ui.Label{Text: GameOverText, Size: 50, Color: ui.White, Anchor: ui.Centre, OffsetY: -40})
		g.spawnLabel(End, ui.Label{Text: fmt.Sprintf("final score : %d", score), Size: 30, Color: ui.White, Anchor: ui.Centre, OffsetY: 15})
		g.spawnLabel(End, ui.Label{Text: fmt.Sprintf("best score : %d", best), Size: 20, Color: ui.Grey, Anchor: ui.Centre, OffsetY: 55})
	})
}

func (g *Game) spawnHud() {
	g.spawnLabel(Play, ui.Label{Size: 30, Color: ui.White, Anchor: ui.TopLeft, OffsetX: 10, OffsetY: 10}, Hud{Kind: HealthText})
	g.spawnLabel(Play, ui.Label{Size: 30, Color: ui.White, Anchor: ui.TopRight, OffsetX: 10, OffsetY: 10}, Hud{Kind: ScoreText})
	g.spawnLabel(Play, ui.Label{Text: HintPrompt, Size: 20, Color: ui.Grey, Anchor: ui.TopCentre, OffsetY: 20}, Hud{Kind: HintText})

	for i := range quiz.Choices {
		g.Storage.Spawn(
			ui.Button{Index: i, Background: ui.NormalButton, Border: ui.Black},
			Marker{Screen: Play},
		)
	}
}
