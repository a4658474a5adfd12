package ecs

import (
	"reflect"
	"slices"
	"weak"

	"github.com/kamstrup/intmap"
)

type byTypeName []reflect.Type

func (a byTypeName) Len() int           { return len(a) }
func (a byTypeName) Swap(i, j int)      { a[i], a[j] = a[j], a[i] }
func (a byTypeName) Less(i, j int) bool { return a[i].String() < a[j].String() }

// Archetype stores every entity that has exactly one particular set of
// component types. Slot indices are stable until Compact is called.
type Archetype struct {
	id      uint32
	types   []reflect.Type
	columns []iComponentStorage
	refs    *intmap.Map[EntityId, weak.Pointer[EntityRef]]

	alive []bool
	free  []uint32
	count int
}

// NewArchetype creates an archetype for the given sorted component types.
// It panics if any type is missing from the registry.
func NewArchetype(id uint32, types []reflect.Type, registry *ComponentRegistry) *Archetype {
	a := &Archetype{
		id:      id,
		types:   types,
		columns: make([]iComponentStorage, len(types)),
		refs:    intmap.New[EntityId, weak.Pointer[EntityRef]](64),
	}

	for i, typ := range types {
		factory := registry.getFactory(typ)
		if factory == nil {
			panic("component type " + typ.String() + " not registered")
		}
		a.columns[i] = factory()
	}

	return a
}

func (a *Archetype) allocate() uint32 {
	if n := len(a.free); n > 0 {
		index := a.free[n-1]
		a.free = a.free[:n-1]
		a.alive[index] = true
		a.count++
		return index
	}
	a.alive = append(a.alive, true)
	a.count++
	return uint32(len(a.alive) - 1)
}

// Spawn stores components in a fresh slot and returns the slot index.
// Every archetype type must be present in components.
func (a *Archetype) Spawn(components []any) uint32 {
	index := a.allocate()
	for _, comp := range components {
		col := a.columnFor(componentType(comp))
		if col == nil {
			continue
		}
		col.Set(int(index), comp)
	}
	return index
}

func (a *Archetype) columnIndex(compType reflect.Type) int {
	for i, typ := range a.types {
		if typ == compType {
			return i
		}
	}
	return -1
}

func (a *Archetype) columnFor(compType reflect.Type) iComponentStorage {
	if i := a.columnIndex(compType); i >= 0 {
		return a.columns[i]
	}
	return nil
}

// Alive reports whether the slot holds a live entity.
func (a *Archetype) Alive(index uint32) bool {
	return int(index) < len(a.alive) && a.alive[index]
}

// GetComponent returns a pointer to the component or nil.
func (a *Archetype) GetComponent(index uint32, compType reflect.Type) any {
	if !a.Alive(index) {
		return nil
	}
	col := a.columnFor(compType)
	if col == nil {
		return nil
	}
	return col.Get(int(index))
}

// Delete frees the slot and invalidates any EntityRef pointing at it.
func (a *Archetype) Delete(index uint32) {
	if !a.Alive(index) {
		return
	}

	id := NewEntityId(a.id, index)
	if weakPtr, ok := a.refs.Get(id); ok {
		if ref := weakPtr.Value(); ref != nil {
			ref.Id = 0
			ref.Archetype = nil
		}
		a.refs.Del(id)
	}

	for _, col := range a.columns {
		col.Delete(int(index))
	}
	a.alive[index] = false
	a.free = append(a.free, index)
	a.count--
}

// detach frees the slot without touching refs; used when an entity moves to
// another archetype and its ref has already been re-pointed.
func (a *Archetype) detach(index uint32) {
	if !a.Alive(index) {
		return
	}
	for _, col := range a.columns {
		col.Delete(int(index))
	}
	a.alive[index] = false
	a.free = append(a.free, index)
	a.count--
}

// HasComponent reports whether compType is part of this archetype.
func (a *Archetype) HasComponent(compType reflect.Type) bool {
	return slices.Contains(a.types, compType)
}

// ID returns the archetype's identifier.
func (a *Archetype) ID() uint32 {
	return a.id
}

// Types returns the sorted component types.
func (a *Archetype) Types() []reflect.Type {
	return a.types
}

// Len returns the number of live entities.
func (a *Archetype) Len() int {
	return a.count
}

// Compact packs live entities into the lowest slots. EntityRefs are updated;
// raw EntityIds held elsewhere become stale.
func (a *Archetype) Compact() map[uint32]uint32 {
	moved := make(map[uint32]uint32)
	write := uint32(0)

	for read := uint32(0); int(read) < len(a.alive); read++ {
		if !a.alive[read] {
			continue
		}
		if read != write {
			for _, col := range a.columns {
				col.Move(int(read), int(write))
			}
			moved[read] = write

			oldId := NewEntityId(a.id, read)
			if weakPtr, ok := a.refs.Get(oldId); ok {
				a.refs.Del(oldId)
				if ref := weakPtr.Value(); ref != nil {
					ref.Id = NewEntityId(a.id, write)
					a.refs.Put(ref.Id, weakPtr)
				}
			}
		}
		write++
	}

	a.alive = a.alive[:write]
	for i := range a.alive {
		a.alive[i] = true
	}
	a.free = a.free[:0]
	for _, col := range a.columns {
		col.Truncate(int(write))
	}
	return moved
}

// Iter yields every live EntityId in slot order.
func (a *Archetype) Iter() func(yield func(EntityId) bool) {
	return func(yield func(EntityId) bool) {
		for index, alive := range a.alive {
			if !alive {
				continue
			}
			if !yield(NewEntityId(a.id, uint32(index))) {
				return
			}
		}
	}
}
