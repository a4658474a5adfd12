package quiz

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var names = []string{"Orion", "Lyra", "Crux", "Leo", "Cygnus", "Taurus"}

func newRand() *rand.Rand {
	return rand.New(rand.NewPCG(1, 2))
}

func dealt(t *testing.T) Session {
	t.Helper()
	s := NewSession()
	require.NoError(t, s.Deal(newRand(), names))
	return s
}

func wrongChoice(r Round) string {
	for _, c := range r.Choices {
		if c != r.Target {
			return c
		}
	}
	return ""
}

func TestDeal(t *testing.T) {
	rng := newRand()
	for i := 0; i < 50; i++ {
		round, err := Deal(rng, names, Choices)
		require.NoError(t, err)
		assert.Len(t, round.Choices, Choices)
		assert.Contains(t, round.Choices, round.Target)
		assert.Equal(t, Playing, round.Progress)

		seen := map[string]bool{}
		for _, c := range round.Choices {
			assert.False(t, seen[c], "duplicate choice %s", c)
			seen[c] = true
			assert.Contains(t, names, c)
		}
	}
	assert.Equal(t, []string{"Orion", "Lyra", "Crux", "Leo", "Cygnus", "Taurus"}, names, "input untouched")
}

func TestDealNotEnough(t *testing.T) {
	_, err := Deal(newRand(), names[:3], Choices)
	assert.ErrorIs(t, err, ErrNotEnoughConstellations)

	s := dealt(t)
	before := s.Round
	err = s.Deal(newRand(), names[:2])
	assert.ErrorIs(t, err, ErrNotEnoughConstellations)
	assert.Equal(t, before, s.Round, "current round kept")
	assert.Equal(t, 1, s.Rounds)
}

func TestAnswerCorrect(t *testing.T) {
	s := dealt(t)

	res, ok := s.Answer(s.Round.Target)
	require.True(t, ok)
	assert.True(t, res.Correct)
	assert.True(t, res.Reveal)
	assert.Equal(t, CorrectPoints, res.Points)
	assert.Equal(t, 100, s.Score)
	assert.Equal(t, StartHealth, s.Health)
	assert.Equal(t, Answered, s.Round.Progress)
}

func TestAnswerAfterHint(t *testing.T) {
	s := dealt(t)

	require.True(t, s.Hint())
	assert.False(t, s.Hint(), "hint only once")
	assert.Equal(t, Hinted, s.Round.Progress)

	res, ok := s.Answer(s.Round.Target)
	require.True(t, ok)
	assert.False(t, res.Reveal, "lines already shown")
	assert.Equal(t, 20, s.Score)
}

func TestAnswerWrong(t *testing.T) {
	s := dealt(t)

	res, ok := s.Answer(wrongChoice(s.Round))
	require.True(t, ok)
	assert.False(t, res.Correct)
	assert.Zero(t, s.Score)
	assert.Equal(t, StartHealth-1, s.Health)
}

func TestAnswerIgnoredOnceAnswered(t *testing.T) {
	s := dealt(t)
	s.Answer(wrongChoice(s.Round))

	_, ok := s.Answer(s.Round.Target)
	assert.False(t, ok)
	assert.Zero(t, s.Score)
	assert.Equal(t, StartHealth-1, s.Health)
	assert.False(t, s.Hint())

	fresh := dealt(t)
	_, ok = fresh.Answer("Andromeda")
	assert.False(t, ok, "not one of the labels")
}

func TestAnswerIndex(t *testing.T) {
	s := dealt(t)
	_, ok := s.AnswerIndex(Choices)
	assert.False(t, ok)

	_, ok = s.AnswerIndex(0)
	require.True(t, ok)
	assert.Equal(t, s.Round.Choices[0], s.Round.Selected)
}

func TestOutcome(t *testing.T) {
	s := dealt(t)
	wrong := wrongChoice(s.Round)

	o, sel := s.Round.Outcome(s.Round.Target)
	assert.Equal(t, Undecided, o)
	assert.False(t, sel)

	s.Answer(wrong)
	o, sel = s.Round.Outcome(s.Round.Target)
	assert.Equal(t, Right, o)
	assert.False(t, sel)

	o, sel = s.Round.Outcome(wrong)
	assert.Equal(t, Wrong, o)
	assert.True(t, sel)
}

func TestGameOver(t *testing.T) {
	s := NewSession()
	rng := newRand()
	for i := 0; i < StartHealth; i++ {
		require.False(t, s.Over())
		require.NoError(t, s.Deal(rng, names))
		s.Answer(wrongChoice(s.Round))
	}
	assert.True(t, s.Over())
	assert.Zero(t, s.Health)

	s.Reset()
	assert.False(t, s.Dealt())
	assert.Equal(t, StartHealth, s.Health)
	assert.Zero(t, s.Rounds)
}

func TestProgressString(t *testing.T) {
	assert.Equal(t, "hinted", Hinted.String())
	assert.Equal(t, "Progress(9)", Progress(9).String())
}
