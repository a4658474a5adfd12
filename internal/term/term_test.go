package term

import (
	"math/rand/v2"
	"slices"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/astraea/internal/quiz"
	"github.com/plus3/astraea/internal/save"
	"github.com/plus3/astraea/internal/sky"
)

func testConstellation() *sky.Constellation {
	return &sky.Constellation{
		Name: "Test",
		Abbr: "Tst",
		Stars: []sky.Member{
			{RA: 6.0, Dec: 0, Magnitude: 1.0},
			{RA: 6.4, Dec: 5, Magnitude: 2.0},
			{RA: 6.8, Dec: -5, Magnitude: 4.0},
		},
		Lines: [][2]int{{0, 1}, {1, 2}},
	}
}

func TestChartPlot(t *testing.T) {
	chart := Chart{Width: 40, Height: 20}
	chart.Plot(testConstellation())

	assert.Equal(t, 1, chart.Count(glyphStarBright))
	assert.Equal(t, 1, chart.Count(glyphStarMedium))
	assert.Equal(t, 1, chart.Count(glyphStarDim))
	assert.Zero(t, chart.Count(glyphLine), "lines hidden")

	chart.ShowLines = true
	chart.Plot(testConstellation())
	assert.Positive(t, chart.Count(glyphLine))
	assert.Equal(t, 1, chart.Count(glyphStarBright), "stars drawn over lines")

	rows := strings.Split(chart.String(), "\n")
	assert.Len(t, rows, 20)
}

func TestChartEmpty(t *testing.T) {
	chart := Chart{}
	chart.Plot(testConstellation())
	assert.Empty(t, chart.String())
	assert.Zero(t, chart.Rune(0, 0))
}

func TestStarGlyph(t *testing.T) {
	g, _ := starGlyph(-1.4)
	assert.Equal(t, glyphStarBright, g)
	g, _ = starGlyph(2.2)
	assert.Equal(t, glyphStarMedium, g)
	g, _ = starGlyph(5.5)
	assert.Equal(t, glyphStarDim, g)
}

func newModel(t *testing.T, store *save.Store) Model {
	t.Helper()
	catalog, err := sky.Default()
	require.NoError(t, err)
	return New(catalog, rand.New(rand.NewPCG(1, 2)), store)
}

func press(t *testing.T, m Model, key string) (Model, tea.Cmd) {
	t.Helper()
	var msg tea.KeyMsg
	switch key {
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEscape}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	require.True(t, ok)
	return model, cmd
}

func targetKey(m Model) string {
	round := m.Session().Round
	return string(rune('1' + slices.Index(round.Choices, round.Target)))
}

func wrongKey(m Model) string {
	round := m.Session().Round
	i := (slices.Index(round.Choices, round.Target) + 1) % quiz.Choices
	return string(rune('1' + i))
}

func TestModelDeals(t *testing.T) {
	m := newModel(t, nil)
	session := m.Session()
	require.True(t, session.Dealt())
	assert.NoError(t, m.Err())

	view := m.View()
	assert.Contains(t, view, HintPrompt)
	assert.Contains(t, view, "score : 0")
	for _, label := range m.Session().Round.Choices {
		assert.Contains(t, view, label)
	}
}

func TestModelAnswerAndNext(t *testing.T) {
	m := newModel(t, nil)

	m, _ = press(t, m, targetKey(m))
	assert.Equal(t, quiz.CorrectPoints, m.Session().Score)
	assert.Equal(t, quiz.Answered, m.Session().Round.Progress)
	assert.Contains(t, m.View(), NextPrompt)

	m, _ = press(t, m, " ")
	assert.Equal(t, 2, m.Session().Rounds)
	assert.Equal(t, quiz.Playing, m.Session().Round.Progress)
}

func TestModelSkipRound(t *testing.T) {
	m := newModel(t, nil)
	m, _ = press(t, m, "i")
	require.Equal(t, quiz.Hinted, m.Session().Round.Progress)

	m, _ = press(t, m, " ")
	assert.Equal(t, 2, m.Session().Rounds)
	assert.Equal(t, quiz.Playing, m.Session().Round.Progress)
	assert.Zero(t, m.Session().Score)
	assert.Equal(t, quiz.StartHealth, m.Session().Health)
	assert.False(t, m.Over())
}

func TestModelHint(t *testing.T) {
	m := newModel(t, nil)
	m, _ = press(t, m, "i")
	assert.Equal(t, quiz.Hinted, m.Session().Round.Progress)

	m, _ = press(t, m, targetKey(m))
	assert.Equal(t, quiz.HintedPoints, m.Session().Score)
}

func TestModelGameOver(t *testing.T) {
	store := save.NewStore(nil)
	m := newModel(t, store)

	for range quiz.StartHealth {
		m, _ = press(t, m, wrongKey(m))
		m, _ = press(t, m, " ")
	}
	require.True(t, m.Over())
	assert.Equal(t, 1, store.Records().GamesPlayed)

	view := m.View()
	assert.Contains(t, view, "Game Over")
	assert.Contains(t, view, "final score : 0")

	m, _ = press(t, m, "1")
	assert.True(t, m.Over(), "answers ignored on the game over screen")

	m, _ = press(t, m, " ")
	assert.False(t, m.Over())
	assert.Equal(t, quiz.StartHealth, m.Session().Health)
	session := m.Session()
	assert.True(t, session.Dealt())
}

func TestModelQuit(t *testing.T) {
	m := newModel(t, nil)
	for _, key := range []string{"q", "esc"} {
		_, cmd := press(t, m, key)
		require.NotNil(t, cmd)
		assert.IsType(t, tea.QuitMsg{}, cmd())
	}
}

func TestModelNotEnoughConstellations(t *testing.T) {
	full, err := sky.Default()
	require.NoError(t, err)
	small, err := sky.NewCatalog(full.Stars, full.Constellations[:3])
	require.NoError(t, err)

	m := New(small, rand.New(rand.NewPCG(1, 2)), nil)
	assert.ErrorIs(t, m.Err(), quiz.ErrNotEnoughConstellations)
	session := m.Session()
	assert.False(t, session.Dealt())
	assert.Contains(t, m.View(), "not enough constellations")
}

func TestModelResize(t *testing.T) {
	m := newModel(t, nil)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m = next.(Model)
	assert.Equal(t, 120, m.width)
	assert.Equal(t, 40, m.height)
}
