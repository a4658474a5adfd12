package main

import (
	"math/rand/v2"
	"slices"

	"github.com/plus3/astraea/internal/game"
	"github.com/plus3/astraea/internal/input"
	"github.com/plus3/astraea/internal/quiz"
)

var answerKeys = [quiz.Choices]input.Key{input.Key1, input.Key2, input.Key3, input.Key4}

// Bot plays the quiz through the input snapshot, one key tap at a time
// with a pause between taps.
type Bot struct {
	Game     *game.Game
	Accuracy float64
	HintRate float64
	Think    int
	Games    int

	rng    *rand.Rand
	down   bool
	wait   int
	scores []int
	hints  int
	onEnd  bool
}

func NewBot(rng *rand.Rand, games int) *Bot {
	return &Bot{Accuracy: 0.7, HintRate: 0.2, Think: 6, Games: games, rng: rng}
}

// Done reports whether the bot has finished every game it was asked to
// play and is back on the title screen.
func (b *Bot) Done() bool {
	return len(b.scores) >= b.Games && b.Game.Screen() == game.Start
}

func (b *Bot) Scores() []int {
	return b.scores
}

func (b *Bot) Poll(state *input.State) {
	for _, k := range input.Keys() {
		state.SetKey(k, false)
	}
	if b.down {
		b.down = false
		return
	}
	if b.wait > 0 {
		b.wait--
		return
	}

	key, ok := b.next()
	if !ok {
		return
	}
	state.SetKey(key, true)
	b.down = true
	b.wait = b.Think
}

func (b *Bot) next() (input.Key, bool) {
	switch b.Game.Screen() {
	case game.Start:
		b.onEnd = false
		if len(b.scores) >= b.Games {
			return 0, false
		}
		return input.KeySpace, true

	case game.Explo:
		return input.KeyEscape, true

	case game.End:
		if !b.onEnd {
			b.onEnd = true
			b.scores = append(b.scores, b.Game.Session().Score)
		}
		return input.KeySpace, true

	case game.Play:
		session := b.Game.Session()
		if !session.Dealt() {
			return 0, false
		}
		round := session.Round
		switch round.Progress {
		case quiz.Answered:
			return input.KeySpace, true
		case quiz.Playing:
			if b.rng.Float64() < b.HintRate {
				b.hints++
				return input.KeyI, true
			}
		}
		target := slices.Index(round.Choices, round.Target)
		pick := target
		if b.rng.Float64() >= b.Accuracy {
			pick = (target + 1 + b.rng.IntN(len(round.Choices)-1)) % len(round.Choices)
		}
		return answerKeys[pick], true
	}
	return 0, false
}
