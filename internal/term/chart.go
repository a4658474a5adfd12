package term

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/plus3/astraea/internal/camera"
	"github.com/plus3/astraea/internal/sky"
)

const (
	glyphStarBright = '✶'
	glyphStarMedium = '✸'
	glyphStarDim    = '·'
	glyphLine       = '∙'

	colorBackground = lipgloss.Color("236")
	colorStarBright = lipgloss.Color("231")
	colorStarMedium = lipgloss.Color("253")
	colorStarDim    = lipgloss.Color("245")
	colorLine       = lipgloss.Color("210")
)

// chartFovs are tried in order until every member star fits.
var chartFovs = []float32{40, 60, 80, 100, 120, 140}

// Chart is a character star chart of one constellation, seen from its
// centre.
type Chart struct {
	Width, Height int
	ShowLines     bool

	cells  [][]rune
	colors [][]lipgloss.Color
}

type point struct{ x, y int }

// Plot projects the constellation onto the grid. Terminal cells are about
// twice as tall as they are wide, so the projection runs on a grid of
// double height.
func (ch *Chart) Plot(c *sky.Constellation) {
	ch.clear()
	if ch.Width <= 0 || ch.Height <= 0 || len(c.Stars) == 0 {
		return
	}

	rotation := camera.CentreOf(c)
	points := ch.project(rotation, c)
	if points == nil {
		return
	}

	if ch.ShowLines {
		for _, line := range c.Lines {
			a, b := points[line[0]], points[line[1]]
			ch.line(a, b)
		}
	}
	for i, m := range c.Stars {
		glyph, color := starGlyph(m.Magnitude)
		ch.set(points[i], glyph, color)
	}
}

func (ch *Chart) project(rotation mgl32.Quat, c *sky.Constellation) []point {
	for _, deg := range chartFovs {
		proj := camera.NewProjector(mgl32.DegToRad(deg), ch.Width, ch.Height*2)
		points := make([]point, len(c.Stars))
		fits := true
		for i, m := range c.Stars {
			x, y, ok := proj.Project(rotation, m.Position())
			if !ok || !proj.Visible(x, y, 0) {
				fits = false
				break
			}
			points[i] = point{
				x: min(int(x), ch.Width-1),
				y: min(int(y/2), ch.Height-1),
			}
		}
		if fits {
			return points
		}
	}
	return nil
}

func (ch *Chart) clear() {
	ch.cells = make([][]rune, ch.Height)
	ch.colors = make([][]lipgloss.Color, ch.Height)
	for y := range ch.cells {
		ch.cells[y] = []rune(strings.Repeat(" ", ch.Width))
		ch.colors[y] = make([]lipgloss.Color, ch.Width)
		for x := range ch.colors[y] {
			ch.colors[y][x] = colorBackground
		}
	}
}

func (ch *Chart) set(p point, glyph rune, color lipgloss.Color) {
	if p.y < 0 || p.y >= ch.Height || p.x < 0 || p.x >= ch.Width {
		return
	}
	ch.cells[p.y][p.x] = glyph
	ch.colors[p.y][p.x] = color
}

// line draws a Bresenham segment, leaving the endpoints for the stars.
func (ch *Chart) line(a, b point) {
	dx := int(math.Abs(float64(b.x - a.x)))
	dy := -int(math.Abs(float64(b.y - a.y)))
	sx, sy := 1, 1
	if a.x > b.x {
		sx = -1
	}
	if a.y > b.y {
		sy = -1
	}
	err := dx + dy
	p := a
	for p != b {
		if p != a {
			ch.set(p, glyphLine, colorLine)
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			p.x += sx
		}
		if e2 <= dx {
			err += dx
			p.y += sy
		}
	}
}

// Rune returns the glyph at (x, y), or 0 outside the grid.
func (ch *Chart) Rune(x, y int) rune {
	if y < 0 || y >= len(ch.cells) || x < 0 || x >= len(ch.cells[y]) {
		return 0
	}
	return ch.cells[y][x]
}

// Count returns how many cells hold glyph.
func (ch *Chart) Count(glyph rune) int {
	n := 0
	for _, row := range ch.cells {
		for _, r := range row {
			if r == glyph {
				n++
			}
		}
	}
	return n
}

func (ch *Chart) String() string {
	var b strings.Builder
	for y, row := range ch.cells {
		for x, r := range row {
			style := lipgloss.NewStyle().Foreground(ch.colors[y][x])
			b.WriteString(style.Render(string(r)))
		}
		if y < len(ch.cells)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func starGlyph(mag float64) (rune, lipgloss.Color) {
	switch {
	case mag < 1.5:
		return glyphStarBright, colorStarBright
	case mag < 3.0:
		return glyphStarMedium, colorStarMedium
	default:
		return glyphStarDim, colorStarDim
	}
}
