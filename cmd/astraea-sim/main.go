// Command astraea-sim plays the quiz headlessly with a scripted bot and
// prints a score and timing report.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand/v2"
	"os"
	"runtime"
	"time"

	"github.com/plus3/astraea/internal/config"
	"github.com/plus3/astraea/internal/game"
	"github.com/plus3/astraea/internal/sky"
)

type simOptions struct {
	Games          int
	Accuracy       float64
	HintRate       float64
	Seed           uint64
	MaxFrames      uint64
	Duration       time.Duration
	GCPauseMetrics bool
}

func main() {
	configPath := flag.String("config", "", "Path to a YAML configuration file.")
	games := flag.Int("games", 10, "Number of games the bot plays.")
	accuracy := flag.Float64("accuracy", 0.7, "Probability the bot answers correctly.")
	hints := flag.Float64("hints", 0.2, "Probability the bot asks for a hint.")
	seed := flag.Uint64("seed", 1, "Seed for rounds and the bot.")
	maxFrames := flag.Uint64("max-frames", 1_000_000, "Stop after this many frames.")
	duration := flag.Duration("duration", time.Minute, "Stop after this much wall time.")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	catalog, err := sky.LoadFiles(cfg.Catalog.Stars, cfg.Catalog.Constellations)
	if err != nil {
		log.Fatalf("Failed to load catalog: %v", err)
	}

	log.SetOutput(io.Discard)
	report := simulate(catalog, cfg, simOptions{
		Games:          *games,
		Accuracy:       *accuracy,
		HintRate:       *hints,
		Seed:           *seed,
		MaxFrames:      *maxFrames,
		Duration:       *duration,
		GCPauseMetrics: *gcPauseMetrics,
	})
	log.SetOutput(os.Stderr)

	fmt.Println("\n--- Simulation Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		log.Fatalf("Failed to generate report: %v", err)
	}
	fmt.Println("--- End of Report ---")

	if !report.Finished {
		os.Exit(1)
	}
}

func simulate(catalog *sky.Catalog, cfg config.Config, opts simOptions) *Report {
	rng := rand.New(rand.NewPCG(opts.Seed, opts.Seed+1))
	bot := NewBot(rng, opts.Games)
	bot.Accuracy, bot.HintRate = opts.Accuracy, opts.HintRate

	gameOpts := game.OptionsFrom(cfg, nil)
	gameOpts.Seed = opts.Seed
	g := game.New(catalog, bot, gameOpts)
	bot.Game = g

	report := &Report{
		Seed:           opts.Seed,
		Games:          opts.Games,
		Accuracy:       opts.Accuracy,
		HintRate:       opts.HintRate,
		GCPauseMetrics: opts.GCPauseMetrics,
	}
	runtime.ReadMemStats(&report.MemStatsStart)

	ctx, cancel := context.WithTimeout(context.Background(), opts.Duration)
	defer cancel()

	start := time.Now()
	var frames uint64
Loop:
	for frames < opts.MaxFrames && !bot.Done() {
		select {
		case <-ctx.Done():
			break Loop
		default:
		}
		t := time.Now()
		g.Step()
		report.UpdateTime.Samples = append(report.UpdateTime.Samples, time.Since(t))
		frames++
	}

	report.TotalTime = time.Since(start)
	report.Frames = frames
	report.Finished = bot.Done()
	report.Scores = bot.Scores()
	report.Hints = bot.hints
	report.Rounds = g.Session().Rounds
	report.Score()
	report.UpdateTime.Finalize()
	report.Systems = g.Update.GetStats().Systems
	report.Storage = g.Storage.CollectStats()
	runtime.ReadMemStats(&report.MemStatsEnd)
	return report
}
