// Command astraea-term is the constellation quiz in a terminal.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand/v2"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/plus3/astraea/internal/config"
	"github.com/plus3/astraea/internal/save"
	"github.com/plus3/astraea/internal/sky"
	"github.com/plus3/astraea/internal/term"
)

func main() {
	configPath := flag.String("config", "", "Path to a YAML configuration file.")
	logPath := flag.String("log", "", "Write log output to this file.")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	catalog, err := sky.LoadFiles(cfg.Catalog.Stars, cfg.Catalog.Constellations)
	if err != nil {
		log.Fatalf("Failed to load catalog: %v", err)
	}

	// The log must not write over the alternate screen.
	if *logPath != "" {
		f, err := tea.LogToFile(*logPath, "astraea")
		if err != nil {
			log.Fatalf("Failed to open log: %v", err)
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	seed := cfg.Quiz.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))

	model := term.New(catalog, rng, save.Open(cfg.Save.AppName))
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running program: %v\n", err)
		os.Exit(1)
	}
}
