// Package term is a terminal version of the constellation quiz.
package term

import (
	"fmt"
	"log"
	"math/rand/v2"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/plus3/astraea/internal/quiz"
	"github.com/plus3/astraea/internal/save"
	"github.com/plus3/astraea/internal/sky"
)

const (
	HintPrompt = "press i to get an hint"
	NextPrompt = "press space to continue"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("255"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	rightStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("28")).Padding(0, 1)
	wrongStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("124")).Padding(0, 1)
	normalStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Background(lipgloss.Color("236")).Padding(0, 1)
	chosenStyle = lipgloss.NewStyle().Underline(true).Bold(true)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
)

// Model is the bubbletea model of one quiz sitting.
type Model struct {
	catalog *sky.Catalog
	rng     *rand.Rand
	store   *save.Store

	session quiz.Session
	over    bool
	best    int
	err     error

	width, height int
}

// New deals the first round. A nil store keeps records in memory only.
func New(catalog *sky.Catalog, rng *rand.Rand, store *save.Store) Model {
	if store == nil {
		store = save.NewStore(nil)
	}
	m := Model{
		catalog: catalog,
		rng:     rng,
		store:   store,
		session: quiz.NewSession(),
		width:   80,
		height:  24,
	}
	m.deal()
	return m
}

func (m Model) Session() quiz.Session { return m.session }
func (m Model) Over() bool            { return m.over }
func (m Model) Err() error            { return m.err }

func (m *Model) deal() {
	if err := m.session.Deal(m.rng, m.catalog.Names()); err != nil {
		if m.err == nil {
			log.Printf("[Quiz] Error: %v", err)
		}
		m.err = err
		return
	}
	m.err = nil
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		switch key := msg.String(); key {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit

		case " ", "enter":
			m.next()

		case "i":
			m.session.Hint()

		case "1", "2", "3", "4":
			if !m.over {
				m.session.AnswerIndex(int(key[0] - '1'))
			}
		}
	}
	return m, nil
}

// next deals a new round, answered or not. With no health left it shows
// the game over screen, and from there starts a new game.
func (m *Model) next() {
	switch {
	case m.over:
		m.session.Reset()
		m.over = false
		m.deal()
	case m.session.Over():
		m.over = true
		m.best = m.store.RecordGame(m.session.Score)
		log.Printf("[Quiz] game over, score %d", m.session.Score)
	default:
		m.deal()
	}
}

// View implements tea.Model.
func (m Model) View() string {
	if m.over {
		return m.viewOver()
	}

	var b strings.Builder
	b.WriteString(m.header())
	b.WriteString("\n\n")

	round := &m.session.Round
	if target, ok := m.catalog.Lookup(round.Target); ok {
		chart := Chart{
			Width:     max(m.width, 10),
			Height:    max(m.height-8, 5),
			ShowLines: round.Progress != quiz.Playing,
		}
		chart.Plot(target)
		b.WriteString(chart.String())
		b.WriteString("\n\n")
	}
	if m.err != nil {
		b.WriteString(errorStyle.Render(m.err.Error()))
		b.WriteString("\n")
	}

	b.WriteString(m.choices())
	b.WriteString("\n")
	return b.String()
}

func (m Model) header() string {
	health := strings.Repeat("# ", m.session.Health)
	score := fmt.Sprintf("score : %d", m.session.Score)
	prompt := HintPrompt
	if m.session.Round.Progress == quiz.Answered {
		prompt = NextPrompt
	}

	gap := max(m.width-lipgloss.Width(health)-lipgloss.Width(score), 1)
	top := titleStyle.Render(health) + strings.Repeat(" ", gap) + titleStyle.Render(score)
	return top + "\n" + lipgloss.PlaceHorizontal(m.width, lipgloss.Center, dimStyle.Render(prompt))
}

func (m Model) choices() string {
	round := &m.session.Round
	buttons := make([]string, 0, len(round.Choices))
	for i, label := range round.Choices {
		style := normalStyle
		outcome, selected := round.Outcome(label)
		switch outcome {
		case quiz.Right:
			style = rightStyle
		case quiz.Wrong:
			style = wrongStyle
		}
		if selected {
			style = style.Inherit(chosenStyle)
		}
		buttons = append(buttons, style.Render(fmt.Sprintf("%d %s", i+1, label)))
	}
	row := strings.Join(buttons, "  ")
	return lipgloss.PlaceHorizontal(m.width, lipgloss.Center, row)
}

func (m Model) viewOver() string {
	lines := []string{
		titleStyle.Render("Game Over"),
		"",
		fmt.Sprintf("final score : %d", m.session.Score),
		fmt.Sprintf("best score : %d", m.best),
		"",
		dimStyle.Render(NextPrompt),
	}
	body := lipgloss.JoinVertical(lipgloss.Center, lines...)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, body)
}
