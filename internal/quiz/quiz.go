// Package quiz is the scoring state of a constellation quiz, independent of
// how it is drawn or driven.
package quiz

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"
)

const (
	Choices       = 4
	StartHealth   = 3
	CorrectPoints = 100
	HintedPoints  = 20
)

var ErrNotEnoughConstellations = errors.New("not enough constellations")

type Progress uint8

const (
	Playing Progress = iota
	Hinted
	Answered
)

func (p Progress) String() string {
	switch p {
	case Playing:
		return "playing"
	case Hinted:
		return "hinted"
	case Answered:
		return "answered"
	}
	return fmt.Sprintf("Progress(%d)", uint8(p))
}

// Round is one question: the labels on the buttons and the one that is
// right.
type Round struct {
	Choices  []string
	Target   string
	Progress Progress
	Selected string
}

// Deal shuffles names, keeps the first n as choices and picks one of them
// as the target.
func Deal(rng *rand.Rand, names []string, n int) (Round, error) {
	if n <= 0 || len(names) < n {
		return Round{}, fmt.Errorf("need %d, have %d: %w", n, len(names), ErrNotEnoughConstellations)
	}
	pool := slices.Clone(names)
	rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
	pool = pool[:n]
	return Round{
		Choices: pool,
		Target:  pool[rng.IntN(n)],
	}, nil
}

// Outcome is how one answer button should look.
type Outcome uint8

const (
	Undecided Outcome = iota
	Right
	Wrong
)

// Outcome reports the colour class of label and whether it was the
// player's pick. Before an answer every label is Undecided.
func (r *Round) Outcome(label string) (Outcome, bool) {
	if r.Progress != Answered {
		return Undecided, false
	}
	selected := label == r.Selected
	if label == r.Target {
		return Right, selected
	}
	return Wrong, selected
}

// Session is the per-game record: score, health and the current round.
type Session struct {
	Score  int
	Health int
	Round  Round
	Rounds int
}

func NewSession() Session {
	return Session{Health: StartHealth}
}

// Reset starts a new game. The round is cleared so the next frame deals.
func (s *Session) Reset() {
	*s = NewSession()
}

// Dealt reports whether a round is in progress.
func (s *Session) Dealt() bool {
	return s.Round.Target != ""
}

// Deal replaces the current round. On error the current round is kept.
func (s *Session) Deal(rng *rand.Rand, names []string) error {
	round, err := Deal(rng, names, Choices)
	if err != nil {
		return err
	}
	s.Round = round
	s.Rounds++
	return nil
}

// Hint reveals the target's line art. It reports false when the round is
// not in Playing.
func (s *Session) Hint() bool {
	if !s.Dealt() || s.Round.Progress != Playing {
		return false
	}
	s.Round.Progress = Hinted
	return true
}

// Result describes an accepted answer.
type Result struct {
	Correct bool
	Points  int
	// Reveal is set when the line art was hidden until now.
	Reveal bool
}

// Answer scores choice. It is ignored (ok false) once the round is
// answered or when choice is not one of the labels.
func (s *Session) Answer(choice string) (res Result, ok bool) {
	if !s.Dealt() || s.Round.Progress == Answered || !slices.Contains(s.Round.Choices, choice) {
		return Result{}, false
	}

	res.Reveal = s.Round.Progress == Playing
	if choice == s.Round.Target {
		res.Correct = true
		res.Points = CorrectPoints
		if s.Round.Progress == Hinted {
			res.Points = HintedPoints
		}
		s.Score += res.Points
	} else if s.Health > 0 {
		s.Health--
	}

	s.Round.Progress = Answered
	s.Round.Selected = choice
	return res, true
}

// AnswerIndex answers with the i-th label, 0-based.
func (s *Session) AnswerIndex(i int) (Result, bool) {
	if i < 0 || i >= len(s.Round.Choices) {
		return Result{}, false
	}
	return s.Answer(s.Round.Choices[i])
}

// Over reports that health has run out.
func (s *Session) Over() bool {
	return s.Health <= 0
}
