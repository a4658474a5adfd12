package debugui

import (
	"fmt"
	"strings"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/AllenDang/cimgui-go/implot"

	"github.com/plus3/astraea/ecs"
	"github.com/plus3/astraea/internal/game"
)

const historyFrames = 120

// Install spawns the overlay windows and registers the overlay system on
// the game's update scheduler. draw, when set, is shown next to the update
// timings.
func Install(g *game.Game, draw *ecs.Scheduler) {
	RegisterComponents(g.Storage.Registry())
	g.Update.Register(&System{})

	g.Storage.Spawn(Item{Render: func() { quizWindow(g) }})

	catalog := &catalogWindow{game: g}
	g.Storage.Spawn(Item{Render: catalog.render})

	timings := newTimingWindow(g.Update, draw)
	g.Storage.Spawn(Item{Render: timings.render})

	storage := &storageWindow{storage: g.Storage}
	g.Storage.Spawn(Item{Render: storage.render})
}

func quizWindow(g *game.Game) {
	imgui.SetNextWindowPosV(imgui.NewVec2(10, 60), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(280, 230), imgui.CondOnce)
	if !imgui.BeginV("Quiz", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	session := g.Session()
	imgui.Text(fmt.Sprintf("Screen: %s", g.Screen()))
	imgui.Text(fmt.Sprintf("Score: %d  Health: %d", session.Score, session.Health))
	imgui.Text(fmt.Sprintf("Round %d: %s", session.Rounds, session.Round.Progress))
	if session.Dealt() {
		imgui.Text("Target: " + session.Round.Target)
		imgui.Text("Choices: " + strings.Join(session.Round.Choices, ", "))
	}

	imgui.Separator()
	view := g.View()
	forward := view.Forward()
	imgui.Text(fmt.Sprintf("Forward: %.3f %.3f %.3f", forward.X(), forward.Y(), forward.Z()))
	imgui.Text(fmt.Sprintf("Easing: %t", view.Target != nil))

	imgui.Separator()
	records := g.Store().Records()
	imgui.Text(fmt.Sprintf("Best: %d  Played: %d  Saved: %t", records.BestScore, records.GamesPlayed, g.Store().Persistent()))

	if imgui.Button("Start") {
		g.SetScreen(game.Start)
	}
	imgui.SameLine()
	if imgui.Button("Explore") {
		g.SetScreen(game.Explo)
	}
	imgui.End()
}

type catalogWindow struct {
	game     *game.Game
	selected string
}

func (w *catalogWindow) render() {
	imgui.SetNextWindowPosV(imgui.NewVec2(10, 300), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(280, 300), imgui.CondOnce)
	if !imgui.BeginV("Catalog", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	catalog := w.game.Catalog()
	imgui.Text(fmt.Sprintf("%d stars, %d constellations", len(catalog.Stars), len(catalog.Constellations)))
	imgui.Separator()

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsScrollY
	if imgui.BeginTableV("Constellations", 3, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Name")
		imgui.TableSetupColumn("Abbr")
		imgui.TableSetupColumn("Stars")
		imgui.TableHeadersRow()

		for _, c := range catalog.Constellations {
			imgui.TableNextRow()
			imgui.TableNextColumn()
			if imgui.SelectableBoolV(c.Name, w.selected == c.Name, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				w.selected = c.Name
				w.game.FlyTo(c.Name)
			}
			imgui.TableNextColumn()
			imgui.Text(c.Abbr)
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", len(c.Stars)))
		}
		imgui.EndTable()
	}
	imgui.End()
}

type timingWindow struct {
	schedulers []*ecs.Scheduler
	names      []string
	frames     []float32
	offset     int
	last       time.Time
}

func newTimingWindow(update, draw *ecs.Scheduler) *timingWindow {
	w := &timingWindow{
		schedulers: []*ecs.Scheduler{update},
		names:      []string{"Update"},
		frames:     make([]float32, historyFrames),
	}
	if draw != nil {
		w.schedulers = append(w.schedulers, draw)
		w.names = append(w.names, "Draw")
	}
	return w
}

func (w *timingWindow) sample() {
	now := time.Now()
	if !w.last.IsZero() {
		w.frames[w.offset] = float32(now.Sub(w.last).Seconds() * 1000)
		w.offset = (w.offset + 1) % len(w.frames)
	}
	w.last = now
}

// ordered returns the frame history oldest first.
func (w *timingWindow) ordered() []float32 {
	out := make([]float32, 0, len(w.frames))
	out = append(out, w.frames[w.offset:]...)
	return append(out, w.frames[:w.offset]...)
}

func (w *timingWindow) render() {
	w.sample()

	imgui.SetNextWindowPosV(imgui.NewVec2(900, 10), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(370, 360), imgui.CondOnce)
	if !imgui.BeginV("Schedulers", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	var sum float32
	for _, ft := range w.frames {
		sum += ft
	}
	avg := sum / float32(len(w.frames))
	if avg > 0 {
		imgui.Text(fmt.Sprintf("Avg Frame Time: %.2f ms (%.0f FPS)", avg, 1000/avg))
	}

	samples := w.ordered()
	if implot.BeginPlotV("Frame Time", imgui.NewVec2(-1, 120), 0) {
		implot.SetupAxesV("Frame", "ms", 0, implot.AxisFlagsAutoFit)
		implot.PlotLineFloatPtrInt("frame", &samples[0], int32(len(samples)))
		implot.EndPlot()
	}

	for i, scheduler := range w.schedulers {
		stats := scheduler.GetStats()
		if !imgui.TreeNodeStr(fmt.Sprintf("%s (%d frames)", w.names[i], stats.Frames)) {
			continue
		}
		const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
		if imgui.BeginTableV(w.names[i]+"Systems", 4, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("System")
			imgui.TableSetupColumn("Runs")
			imgui.TableSetupColumn("Skips")
			imgui.TableSetupColumn("Avg µs")
			imgui.TableHeadersRow()
			for _, sys := range stats.Systems {
				imgui.TableNextRow()
				imgui.TableNextColumn()
				imgui.Text(sys.Name)
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%d", sys.ExecutionCount))
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%d", sys.SkipCount))
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%.1f", float64(sys.AvgDuration.Nanoseconds())/1000))
			}
			imgui.EndTable()
		}
		imgui.TreePop()
	}
	imgui.End()
}

type storageWindow struct {
	storage *ecs.Storage
}

func (w *storageWindow) render() {
	imgui.SetNextWindowPosV(imgui.NewVec2(900, 380), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(370, 320), imgui.CondOnce)
	if !imgui.BeginV("Storage", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	stats := w.storage.CollectStats()
	imgui.Text(fmt.Sprintf("Entities: %d  Archetypes: %d  Singletons: %d",
		stats.TotalEntityCount, stats.ArchetypeCount, stats.SingletonCount))

	largest := 0
	for _, arch := range stats.ArchetypeBreakdown {
		largest = max(largest, arch.EntityCount)
	}

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
	if imgui.BeginTableV("Archetypes", 3, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("ID")
		imgui.TableSetupColumn("Components")
		imgui.TableSetupColumn("Entities")
		imgui.TableHeadersRow()

		for _, arch := range stats.ArchetypeBreakdown {
			imgui.TableNextRow()
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("0x%X", arch.ID))
			imgui.TableNextColumn()
			imgui.Text(strings.Join(arch.ComponentTypes, ", "))
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", arch.EntityCount))

			if largest > 0 {
				width := float32(arch.EntityCount) / float32(largest) * 60
				imgui.SameLine()
				pos := imgui.CursorScreenPos()
				clr := imgui.ColorU32Vec4(imgui.NewVec4(0.2, 0.6, 0.8, 0.6))
				imgui.WindowDrawList().AddRectFilled(pos, imgui.NewVec2(pos.X+width, pos.Y+10), clr)
			}
		}
		imgui.EndTable()
	}

	if imgui.TreeNodeStr("Singletons") {
		for _, name := range stats.SingletonTypes {
			imgui.BulletText(name)
		}
		imgui.TreePop()
	}
	imgui.End()
}
