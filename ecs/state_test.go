package ecs_test

import (
	"testing"

	"github.com/plus3/astraea/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type screen int

const (
	screenTitle screen = iota
	screenPlay
	screenOver
)

type screenMarker struct{ Screen screen }

func newStateWorld(t *testing.T) (*ecs.Storage, *ecs.Scheduler, *ecs.StateTransitions[screen], *[]string) {
	t.Helper()
	registry := newTestRegistry()
	ecs.RegisterComponent[screenMarker](registry)
	storage := ecs.NewStorage(registry)
	scheduler := ecs.NewScheduler(storage)

	var log []string
	transitions := ecs.NewStateTransitions(storage, screenTitle)
	for _, s := range []screen{screenTitle, screenPlay, screenOver} {
		transitions.OnEnter(s, func(frame *ecs.UpdateFrame) {
			log = append(log, "enter", []string{"title", "play", "over"}[s])
		})
		transitions.OnExit(s, func(frame *ecs.UpdateFrame) {
			log = append(log, "exit", []string{"title", "play", "over"}[s])
		})
	}
	scheduler.Register(transitions)
	return storage, scheduler, transitions, &log
}

func TestStateInitialEnter(t *testing.T) {
	storage, scheduler, _, log := newStateWorld(t)

	var machine *ecs.State[screen]
	require.True(t, storage.ReadSingleton(&machine))
	assert.False(t, machine.JustEntered())

	scheduler.Once(0)
	assert.Equal(t, []string{"enter", "title"}, *log)
	assert.True(t, machine.JustEntered())

	scheduler.Once(0)
	assert.False(t, machine.JustEntered())
	assert.Len(t, *log, 2)
}

func TestStateTransitionAppliedNextFrame(t *testing.T) {
	storage, scheduler, _, log := newStateWorld(t)

	var seen []screen
	scheduler.Register(ecs.SystemFunc(func(frame *ecs.UpdateFrame) {
		var machine *ecs.State[screen]
		frame.Storage.ReadSingleton(&machine)
		seen = append(seen, machine.Current())
		if frame.Frame == 1 {
			machine.Set(screenOver)
			machine.Set(screenPlay)
		}
	}))

	scheduler.Once(0)
	scheduler.Once(0)
	scheduler.Once(0)

	assert.Equal(t, []screen{screenTitle, screenPlay, screenPlay}, seen)
	assert.Equal(t, []string{"enter", "title", "exit", "title", "enter", "play"}, *log)

	var machine *ecs.State[screen]
	storage.ReadSingleton(&machine)
	_, pending := machine.Pending()
	assert.False(t, pending)
}

func TestStateSetCurrentIsIgnored(t *testing.T) {
	storage, scheduler, _, log := newStateWorld(t)
	scheduler.Once(0)

	var machine *ecs.State[screen]
	storage.ReadSingleton(&machine)

	machine.Set(screenPlay)
	machine.Set(screenTitle)
	scheduler.Once(0)

	assert.Equal(t, screenTitle, machine.Current())
	assert.Equal(t, []string{"enter", "title"}, *log)
}

func TestInStateCondition(t *testing.T) {
	storage, scheduler, _, _ := newStateWorld(t)

	var titleFrames, playFrames int
	scheduler.RegisterIf(ecs.InState(screenTitle), ecs.SystemFunc(func(frame *ecs.UpdateFrame) {
		titleFrames++
		var machine *ecs.State[screen]
		frame.Storage.ReadSingleton(&machine)
		machine.Set(screenPlay)
	}))
	scheduler.RegisterIf(ecs.InState(screenPlay), ecs.SystemFunc(func(*ecs.UpdateFrame) {
		playFrames++
	}))

	scheduler.Once(0)
	scheduler.Once(0)
	scheduler.Once(0)

	assert.Equal(t, 1, titleFrames)
	assert.Equal(t, 2, playFrames)
	assert.False(t, ecs.InState(screenOver)(storage))
	assert.False(t, ecs.InState("other")(storage), "missing machine never matches")
}

func TestStateHooksDespawnMarkedEntities(t *testing.T) {
	storage, scheduler, transitions, _ := newStateWorld(t)
	view := ecs.NewView[struct {
		ecs.EntityId
		*screenMarker
	}](storage)

	transitions.OnEnter(screenPlay, func(frame *ecs.UpdateFrame) {
		frame.Storage.Spawn(screenMarker{Screen: screenPlay}, Name{Value: "hud"})
	})
	transitions.OnExit(screenPlay, func(frame *ecs.UpdateFrame) {
		for _, v := range view.Iter() {
			if v.Screen == screenPlay {
				frame.Commands.Delete(v.EntityId)
			}
		}
	})

	var machine *ecs.State[screen]
	storage.ReadSingleton(&machine)

	machine.Set(screenPlay)
	scheduler.Once(0)
	assert.Equal(t, 1, storage.CollectStats().TotalEntityCount)

	machine.Set(screenOver)
	scheduler.Once(0)
	assert.Equal(t, 0, storage.CollectStats().TotalEntityCount)
}
