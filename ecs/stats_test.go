package ecs_test

import (
	"testing"
	"time"

	"github.com/plus3/astraea/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStorageStats(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	stats := storage.CollectStats()
	assert.Zero(t, stats.ArchetypeCount)
	assert.Zero(t, stats.TotalEntityCount)
	assert.Zero(t, stats.SingletonCount)

	storage.Spawn(int32(42), "hello")
	storage.Spawn(int32(100), "world")
	storage.Spawn(200.0, "test")
	ecs.NewSingleton[float64](storage, 3.14)
	ecs.NewSingleton[string](storage, "singleton")

	stats = storage.CollectStats()
	assert.Equal(t, 2, stats.ArchetypeCount)
	assert.Equal(t, 3, stats.TotalEntityCount)
	assert.Equal(t, 2, stats.SingletonCount)
	assert.Equal(t, []string{"float64", "string"}, stats.SingletonTypes)

	require.Len(t, stats.ArchetypeBreakdown, 2)
	assert.Equal(t, 2, stats.ArchetypeBreakdown[0].EntityCount)
	assert.ElementsMatch(t, []string{"int32", "string"}, stats.ArchetypeBreakdown[0].ComponentTypes)
	assert.Equal(t, 1, stats.ArchetypeBreakdown[1].EntityCount)
}

type sleepySystem struct {
	executeCount int
	sleepDur     time.Duration
}

func (s *sleepySystem) Execute(frame *ecs.UpdateFrame) {
	s.executeCount++
	time.Sleep(s.sleepDur)
}

func TestSchedulerStats(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	scheduler := ecs.NewScheduler(storage)

	fast := &sleepySystem{}
	slow := &sleepySystem{sleepDur: 2 * time.Millisecond}
	scheduler.Register(fast)
	scheduler.Register(slow)

	for i := 0; i < 3; i++ {
		scheduler.Once(1.0 / 60)
	}

	stats := scheduler.GetStats()
	assert.Equal(t, 2, stats.SystemCount)
	assert.Equal(t, int64(6), stats.TotalExecutions)
	assert.Equal(t, uint64(3), stats.Frames)

	require.Len(t, stats.Systems, 2)
	assert.Equal(t, "sleepySystem", stats.Systems[0].Name)
	assert.Equal(t, int64(3), stats.Systems[1].ExecutionCount)
	assert.GreaterOrEqual(t, stats.Systems[1].MinDuration, 2*time.Millisecond)
	assert.LessOrEqual(t, stats.Systems[1].MinDuration, stats.Systems[1].AvgDuration)
	assert.LessOrEqual(t, stats.Systems[1].AvgDuration, stats.Systems[1].MaxDuration)
	assert.Equal(t, 3, fast.executeCount)
}
