package main

import (
	"fmt"
	"io"
	"runtime"
	"text/template"
	"time"

	"github.com/plus3/astraea/ecs"
)

type Report struct {
	// Configuration
	Seed     uint64
	Games    int
	Accuracy float64
	HintRate float64

	// Results
	Frames     uint64
	Finished   bool
	Scores     []int
	Best       int
	Mean       float64
	Hints      int
	Rounds     int
	TotalTime  time.Duration
	UpdateTime Stats
	Systems    []ecs.SystemStats
	Storage    ecs.StorageStats

	GCPauseMetrics bool
	MemStatsStart  runtime.MemStats
	MemStatsEnd    runtime.MemStats
}

type Stats struct {
	Min     time.Duration
	Max     time.Duration
	Avg     time.Duration
	Samples []time.Duration
}

func (s *Stats) Finalize() {
	if len(s.Samples) == 0 {
		return
	}

	var total time.Duration
	s.Min = s.Samples[0]
	s.Max = s.Samples[0]

	for _, sample := range s.Samples {
		s.Min = min(s.Min, sample)
		s.Max = max(s.Max, sample)
		total += sample
	}
	s.Avg = total / time.Duration(len(s.Samples))
}

// Score fills Best and Mean from Scores.
func (r *Report) Score() {
	if len(r.Scores) == 0 {
		return
	}
	total := 0
	for _, s := range r.Scores {
		r.Best = max(r.Best, s)
		total += s
	}
	r.Mean = float64(total) / float64(len(r.Scores))
}

const reportTemplate = `
# Astraea Simulation Report

## Configuration
- **Seed:** {{.Seed}}
- **Games:** {{.Games}}
- **Accuracy:** {{printf "%.2f" .Accuracy}}
- **Hint Rate:** {{printf "%.2f" .HintRate}}

## Quiz
- **Finished:** {{.Finished}}
- **Games Played:** {{len .Scores}}
- **Rounds Dealt:** {{.Rounds}}
- **Hints Taken:** {{.Hints}}
- **Scores:** {{range $i, $s := .Scores}}{{if $i}}, {{end}}{{$s}}{{end}}
- **Best:** {{.Best}}
- **Mean:** {{printf "%.1f" .Mean}}

## Performance
- **Frames:** {{.Frames}}
- **Total Time:** {{.TotalTime}}
- **Update Time (Frame):**
  - **Avg:** {{.UpdateTime.Avg}}
  - **Min:** {{.UpdateTime.Min}}
  - **Max:** {{.UpdateTime.Max}}

| System | Runs | Skips | Avg | Max |
|---|---|---|---|---|
{{range .Systems}}| {{.Name}} | {{.ExecutionCount}} | {{.SkipCount}} | {{.AvgDuration}} | {{.MaxDuration}} |
{{end}}
## Storage
- **Entities:** {{.Storage.TotalEntityCount}}
- **Archetypes:** {{.Storage.ArchetypeCount}}
- **Singletons:** {{.Storage.SingletonCount}}

## Memory Usage (Raw Bytes)
- Heap Alloc:     {{.MemStatsStart.HeapAlloc}} (start) -> {{.MemStatsEnd.HeapAlloc}} (end) -> delta: {{bsub .MemStatsEnd.HeapAlloc .MemStatsStart.HeapAlloc}}
- Total Alloc:    {{.MemStatsStart.TotalAlloc}} (start) -> {{.MemStatsEnd.TotalAlloc}} (end) -> delta: {{bsub .MemStatsEnd.TotalAlloc .MemStatsStart.TotalAlloc}}
- Num GC:         {{.MemStatsStart.NumGC}} (start) -> {{.MemStatsEnd.NumGC}} (end) -> delta: {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}
{{if .GCPauseMetrics}}
## GC Pause Durations
- **Total GC Pause:** {{.MemStatsEnd.PauseTotalNs | ns}}
{{end}}`

func (r *Report) Generate(w io.Writer) error {
	fm := template.FuncMap{
		"bsub": func(a, b uint64) int64 {
			return int64(a) - int64(b)
		},
		"usub": func(a, b uint32) uint32 {
			return a - b
		},
		"ns": func(ns uint64) string {
			return time.Duration(ns).String()
		},
	}

	tmpl, err := template.New("report").Funcs(fm).Parse(reportTemplate)
	if err != nil {
		return fmt.Errorf("parse report template: %w", err)
	}
	return tmpl.Execute(w, r)
}
