package ecs_test

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/plus3/astraea/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntityIdEncoding(t *testing.T) {
	tests := []struct {
		archetypeId uint32
		index       uint32
	}{
		{0, 0},
		{0xFFFFFFFF, 0xFFFFFFFF},
		{1, 0},
		{0, 1},
		{0x12345678, 0x9ABCDEF0},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("archetype=%d,index=%d", tt.archetypeId, tt.index), func(t *testing.T) {
			id := ecs.NewEntityId(tt.archetypeId, tt.index)
			assert.Equal(t, tt.archetypeId, id.ArchetypeId())
			assert.Equal(t, tt.index, id.Index())
		})
	}
}

func TestSpawnAndGetComponent(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	id := storage.Spawn(&Position{X: 1, Y: 2, Z: 3}, Name{Value: "Polaris"}, Magnitude(2.02))
	require.NotEqual(t, ecs.EntityId(0), id)

	pos := ecs.ReadComponent[Position](storage, id)
	require.NotNil(t, pos)
	assert.Equal(t, Position{X: 1, Y: 2, Z: 3}, *pos)

	name := ecs.ReadComponent[Name](storage, id)
	require.NotNil(t, name)
	assert.Equal(t, "Polaris", name.Value)

	mag := ecs.ReadComponent[Magnitude](storage, id)
	require.NotNil(t, mag)
	assert.InDelta(t, 2.02, float64(*mag), 1e-6)

	assert.Nil(t, ecs.ReadComponent[Velocity](storage, id))
}

func TestSpawnSharesArchetype(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	a := storage.Spawn(Position{}, Name{Value: "a"})
	b := storage.Spawn(Name{Value: "b"}, Position{})
	c := storage.Spawn(Position{})

	assert.Equal(t, a.ArchetypeId(), b.ArchetypeId(), "component order must not matter")
	assert.NotEqual(t, a.ArchetypeId(), c.ArchetypeId())
	assert.Len(t, storage.GetArchetypes(), 2)

	archetype := storage.GetArchetype(Position{}, Name{})
	require.NotNil(t, archetype)
	assert.Equal(t, 2, archetype.Len())
}

func TestSpawnPanics(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	assert.Panics(t, func() { storage.Spawn() })
	assert.Panics(t, func() { storage.Spawn(struct{ Unregistered int }{}) })
}

func TestComponentPointerStable(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	first := storage.Spawn(Position{X: 7})
	ptr := ecs.ReadComponent[Position](storage, first)

	for i := 0; i < 500; i++ {
		storage.Spawn(Position{X: float32(i)})
	}

	assert.Same(t, ptr, ecs.ReadComponent[Position](storage, first))
	assert.Equal(t, float32(7), ptr.X)
}

func TestDeleteKeepsOtherEntities(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	a := storage.Spawn(Name{Value: "a"})
	b := storage.Spawn(Name{Value: "b"})
	c := storage.Spawn(Name{Value: "c"})

	storage.Delete(b)

	assert.True(t, storage.Alive(a))
	assert.False(t, storage.Alive(b))
	assert.True(t, storage.Alive(c))
	assert.Nil(t, ecs.ReadComponent[Name](storage, b))
	assert.Equal(t, "c", ecs.ReadComponent[Name](storage, c).Value)

	d := storage.Spawn(Name{Value: "d"})
	assert.Equal(t, b.Index(), d.Index(), "freed slots are reused")

	storage.Delete(ecs.NewEntityId(0xdead, 3))
}

func TestAddComponent(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	id := storage.Spawn(Position{X: 1})
	moved := storage.AddComponent(id, Velocity{DX: 2})

	assert.NotEqual(t, id.ArchetypeId(), moved.ArchetypeId())
	assert.False(t, storage.Alive(id))
	assert.Equal(t, float32(1), ecs.ReadComponent[Position](storage, moved).X)
	assert.Equal(t, float32(2), ecs.ReadComponent[Velocity](storage, moved).DX)

	same := storage.AddComponent(moved, &Velocity{DX: 5})
	assert.Equal(t, moved, same, "existing component is overwritten in place")
	assert.Equal(t, float32(5), ecs.ReadComponent[Velocity](storage, same).DX)

	assert.Equal(t, ecs.EntityId(0), storage.AddComponent(id, Name{}))
}

func TestRemoveComponent(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	id := storage.Spawn(Position{X: 1}, Velocity{DX: 2})
	moved := storage.RemoveComponent(id, reflect.TypeFor[Velocity]())

	assert.True(t, storage.HasComponent(moved, reflect.TypeFor[Position]()))
	assert.False(t, storage.HasComponent(moved, reflect.TypeFor[Velocity]()))
	assert.Equal(t, float32(1), ecs.ReadComponent[Position](storage, moved).X)

	assert.Equal(t, moved, storage.RemoveComponent(moved, reflect.TypeFor[Name]()))

	last := storage.RemoveComponent(moved, reflect.TypeFor[Position]())
	assert.Equal(t, ecs.EntityId(0), last)
	assert.False(t, storage.Alive(moved))
}

func TestArchetypeCompact(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	var ids []ecs.EntityId
	for i := 0; i < 5; i++ {
		ids = append(ids, storage.Spawn(Health{Current: i}))
	}
	ref := storage.CreateEntityRef(ids[4])
	storage.Delete(ids[0])
	storage.Delete(ids[2])

	archetype := storage.GetArchetype(Health{})
	moved := archetype.Compact()

	assert.Equal(t, 3, archetype.Len())
	assert.Equal(t, map[uint32]uint32{1: 0, 3: 1, 4: 2}, moved)
	require.True(t, ref.Valid())
	assert.Equal(t, 4, ecs.ReadComponent[Health](storage, ref.Id).Current)
}
