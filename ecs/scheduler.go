package ecs

import (
	"context"
	"reflect"
	"strings"
	"time"
)

// SchedulerStats summarises scheduler execution.
type SchedulerStats struct {
	SystemCount     int
	TotalExecutions int64
	Frames          uint64
	Systems         []SystemStats
}

// SystemStats holds execution timings for one system.
type SystemStats struct {
	Name           string
	ExecutionCount int64
	SkipCount      int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

type executor interface {
	Execute()
}

type initializer interface {
	Init(storage *Storage)
}

type scheduledSystem struct {
	system    System
	condition Condition
	queries   []executor

	name           string
	executionCount int64
	skipCount      int64
	minDuration    time.Duration
	maxDuration    time.Duration
	totalDuration  time.Duration
	lastDuration   time.Duration
}

// Scheduler runs registered systems in registration order.
type Scheduler struct {
	storage *Storage
	systems []*scheduledSystem
	frames  uint64
}

// NewScheduler creates a scheduler over storage.
func NewScheduler(storage *Storage) *Scheduler {
	return &Scheduler{storage: storage}
}

// Storage returns the world this scheduler drives.
func (s *Scheduler) Storage() *Storage {
	return s.storage
}

// Register adds a system that runs every frame.
func (s *Scheduler) Register(system System) {
	s.RegisterIf(nil, system)
}

// RegisterIf adds a system that only runs on frames where cond holds.
// A nil cond always holds.
func (s *Scheduler) RegisterIf(cond Condition, system System) {
	entry := &scheduledSystem{
		system:      system,
		condition:   cond,
		name:        systemName(system),
		minDuration: time.Duration(1<<63 - 1),
	}
	entry.queries = s.initializeFields(system)
	s.systems = append(s.systems, entry)
}

func systemName(system System) string {
	t := reflect.TypeOf(system)
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Name() == "" {
		return t.String()
	}
	return t.Name()
}

// initializeFields binds exported Query and Singleton fields to the storage
// and returns the queries so they can be refreshed before each run.
func (s *Scheduler) initializeFields(system System) []executor {
	value := reflect.ValueOf(system)
	if value.Kind() != reflect.Pointer || value.Elem().Kind() != reflect.Struct {
		return nil
	}
	value = value.Elem()

	var queries []executor
	for i := 0; i < value.NumField(); i++ {
		field := value.Field(i)
		if !field.CanSet() || field.Kind() != reflect.Struct {
			continue
		}

		typeName := field.Type().Name()
		isQuery := strings.HasPrefix(typeName, "Query[")
		if !isQuery && !strings.HasPrefix(typeName, "Singleton[") {
			continue
		}

		addr := field.Addr().Interface()
		init, ok := addr.(initializer)
		if !ok {
			panic("Init method not found on field: " + value.Type().Field(i).Name)
		}
		init.Init(s.storage)

		if isQuery {
			queries = append(queries, addr.(executor))
		}
	}
	return queries
}

// Once runs one frame: every system whose condition holds, then the frame's
// command buffer.
func (s *Scheduler) Once(dt float64) {
	s.frames++
	frame := newUpdateFrame(dt, s.frames, s.storage)

	for _, entry := range s.systems {
		if entry.condition != nil && !entry.condition(s.storage) {
			entry.skipCount++
			continue
		}

		for _, q := range entry.queries {
			q.Execute()
		}

		start := time.Now()
		entry.system.Execute(frame)
		duration := time.Since(start)

		entry.executionCount++
		entry.lastDuration = duration
		entry.totalDuration += duration
		entry.minDuration = min(entry.minDuration, duration)
		entry.maxDuration = max(entry.maxDuration, duration)
	}

	frame.Commands.Flush(s.storage)
}

// Run calls Once at the given interval until ctx is cancelled.
func (s *Scheduler) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	lastTime := time.Now()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			dt := now.Sub(lastTime).Seconds()
			lastTime = now
			s.Once(dt)
		}
	}
}

// GetStats returns a copy of the per-system timings.
func (s *Scheduler) GetStats() *SchedulerStats {
	stats := &SchedulerStats{
		SystemCount: len(s.systems),
		Frames:      s.frames,
		Systems:     make([]SystemStats, len(s.systems)),
	}

	for i, entry := range s.systems {
		var avg time.Duration
		if entry.executionCount > 0 {
			avg = entry.totalDuration / time.Duration(entry.executionCount)
		}
		minDuration := entry.minDuration
		if entry.executionCount == 0 {
			minDuration = 0
		}

		stats.Systems[i] = SystemStats{
			Name:           entry.name,
			ExecutionCount: entry.executionCount,
			SkipCount:      entry.skipCount,
			MinDuration:    minDuration,
			MaxDuration:    entry.maxDuration,
			AvgDuration:    avg,
			LastDuration:   entry.lastDuration,
			TotalDuration:  entry.totalDuration,
		}
		stats.TotalExecutions += entry.executionCount
	}

	return stats
}
