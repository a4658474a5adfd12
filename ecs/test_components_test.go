package ecs_test

import "github.com/plus3/astraea/ecs"

type Position struct {
	X, Y, Z float32
}

type Velocity struct {
	DX, DY, DZ float32
}

type Name struct {
	Value string
}

type Health struct {
	Current int
	Max     int
}

type Player struct{}

type Magnitude float32
type Label string

type Lines struct {
	Pairs [][2]int
}

func newTestRegistry() *ecs.ComponentRegistry {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Position](registry)
	ecs.RegisterComponent[Velocity](registry)
	ecs.RegisterComponent[Name](registry)
	ecs.RegisterComponent[Health](registry)
	ecs.RegisterComponent[Player](registry)
	ecs.RegisterComponent[Magnitude](registry)
	ecs.RegisterComponent[Label](registry)
	ecs.RegisterComponent[Lines](registry)
	ecs.RegisterComponent[int32](registry)
	ecs.RegisterComponent[string](registry)
	ecs.RegisterComponent[float64](registry)
	return registry
}
