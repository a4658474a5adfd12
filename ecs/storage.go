package ecs

import (
	"reflect"
	"sort"
	"unsafe"
	"weak"
)

// Storage owns every archetype and singleton of one world.
type Storage struct {
	archetypes map[uint32]*Archetype
	order      []*Archetype
	registry   *ComponentRegistry
	singletons map[reflect.Type]*singletonEntry
	singleList []reflect.Type
}

// NewStorage creates an empty world backed by registry.
func NewStorage(registry *ComponentRegistry) *Storage {
	return &Storage{
		archetypes: make(map[uint32]*Archetype),
		registry:   registry,
		singletons: make(map[reflect.Type]*singletonEntry),
	}
}

// Registry returns the component registry this storage was built with.
func (s *Storage) Registry() *ComponentRegistry {
	return s.registry
}

// GetArchetypes returns archetypes in creation order.
func (s *Storage) GetArchetypes() []*Archetype {
	return s.order
}

func (s *Storage) archetypeFor(types []reflect.Type) *Archetype {
	id := hashTypesToUint32(types)
	archetype, ok := s.archetypes[id]
	if !ok {
		archetype = NewArchetype(id, types, s.registry)
		s.archetypes[id] = archetype
		s.order = append(s.order, archetype)
	}
	return archetype
}

// GetArchetype returns the archetype for the given component values, or nil.
func (s *Storage) GetArchetype(components ...any) *Archetype {
	return s.archetypes[hashTypesToUint32(extractComponentTypes(components))]
}

// GetArchetypeByTypes returns the archetype for the given types, or nil.
func (s *Storage) GetArchetypeByTypes(types []reflect.Type) *Archetype {
	sorted := slicesCloneSorted(types)
	return s.archetypes[hashTypesToUint32(sorted)]
}

// Spawn creates an entity from component values (T or *T).
func (s *Storage) Spawn(components ...any) EntityId {
	if len(components) == 0 {
		panic("cannot spawn entity without components")
	}
	types := extractComponentTypes(components)
	archetype := s.archetypeFor(types)
	return NewEntityId(archetype.id, archetype.Spawn(components))
}

// Delete removes the entity. Unknown ids are ignored.
func (s *Storage) Delete(id EntityId) {
	if archetype, ok := s.archetypes[id.ArchetypeId()]; ok {
		archetype.Delete(id.Index())
	}
}

// Alive reports whether id names a live entity.
func (s *Storage) Alive(id EntityId) bool {
	archetype, ok := s.archetypes[id.ArchetypeId()]
	return ok && archetype.Alive(id.Index())
}

// AddComponent attaches component to the entity and returns its new id.
// If the entity already has that type the value is overwritten in place.
func (s *Storage) AddComponent(id EntityId, component any) EntityId {
	old, ok := s.archetypes[id.ArchetypeId()]
	if !ok || !old.Alive(id.Index()) {
		return 0
	}

	compType := componentType(component)
	if col := old.columnFor(compType); col != nil {
		col.Set(int(id.Index()), component)
		return id
	}

	types := make([]reflect.Type, 0, len(old.types)+1)
	types = append(types, old.types...)
	types = append(types, compType)
	sort.Sort(byTypeName(types))

	components := make([]any, 0, len(types))
	for _, typ := range old.types {
		components = append(components, old.GetComponent(id.Index(), typ))
	}
	components = append(components, component)

	return s.move(id, old, s.archetypeFor(types), components)
}

// RemoveComponent detaches compType and returns the entity's new id.
// Removing the last component deletes the entity and returns 0.
func (s *Storage) RemoveComponent(id EntityId, compType reflect.Type) EntityId {
	old, ok := s.archetypes[id.ArchetypeId()]
	if !ok || !old.Alive(id.Index()) {
		return 0
	}
	if !old.HasComponent(compType) {
		return id
	}

	types := make([]reflect.Type, 0, len(old.types)-1)
	for _, typ := range old.types {
		if typ != compType {
			types = append(types, typ)
		}
	}
	if len(types) == 0 {
		old.Delete(id.Index())
		return 0
	}

	components := make([]any, 0, len(types))
	for _, typ := range types {
		components = append(components, old.GetComponent(id.Index(), typ))
	}

	return s.move(id, old, s.archetypeFor(types), components)
}

func (s *Storage) move(id EntityId, from, to *Archetype, components []any) EntityId {
	newId := NewEntityId(to.id, to.Spawn(components))

	if weakPtr, ok := from.refs.Get(id); ok {
		from.refs.Del(id)
		if ref := weakPtr.Value(); ref != nil {
			ref.Id = newId
			ref.Archetype = to
			to.refs.Put(newId, weakPtr)
		}
	}

	from.detach(id.Index())
	return newId
}

// GetComponent returns a pointer to the component or nil.
func (s *Storage) GetComponent(id EntityId, compType reflect.Type) any {
	archetype, ok := s.archetypes[id.ArchetypeId()]
	if !ok {
		return nil
	}
	return archetype.GetComponent(id.Index(), compType)
}

// HasComponent reports whether the entity's archetype includes compType.
func (s *Storage) HasComponent(id EntityId, compType reflect.Type) bool {
	archetype, ok := s.archetypes[id.ArchetypeId()]
	return ok && archetype.Alive(id.Index()) && archetype.HasComponent(compType)
}

// CreateEntityRef returns the shared ref for id, creating it if needed.
func (s *Storage) CreateEntityRef(id EntityId) *EntityRef {
	archetype := s.archetypes[id.ArchetypeId()]
	if archetype == nil || !archetype.Alive(id.Index()) {
		return nil
	}

	if weakPtr, ok := archetype.refs.Get(id); ok {
		if ref := weakPtr.Value(); ref != nil {
			return ref
		}
		archetype.refs.Del(id)
	}

	ref := &EntityRef{Id: id, Archetype: archetype}
	archetype.refs.Put(id, weak.Make(ref))
	return ref
}

// ResolveEntityRef returns the current id behind ref.
func (s *Storage) ResolveEntityRef(ref *EntityRef) (EntityId, bool) {
	if !ref.Valid() {
		return 0, false
	}
	return ref.Id, true
}

// InvalidateEntityRef detaches ref from its entity without deleting it.
func (s *Storage) InvalidateEntityRef(ref *EntityRef) bool {
	if !ref.Valid() {
		return false
	}
	if archetype := s.archetypes[ref.Id.ArchetypeId()]; archetype != nil {
		archetype.refs.Del(ref.Id)
	}
	ref.Id = 0
	ref.Archetype = nil
	return true
}

func componentType(component any) reflect.Type {
	t := reflect.TypeOf(component)
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}

// extractComponentTypes returns the sorted component types of values.
// Pointers are dereferenced once; maps, channels and funcs are rejected.
func extractComponentTypes(components []any) []reflect.Type {
	types := make([]reflect.Type, 0, len(components))
	for _, comp := range components {
		t := componentType(comp)
		switch t.Kind() {
		case reflect.Pointer, reflect.Map, reflect.Chan, reflect.Func:
			panic("components cannot be pointers, maps, channels, or functions")
		}
		types = append(types, t)
	}
	sort.Sort(byTypeName(types))
	return types
}

func slicesCloneSorted(types []reflect.Type) []reflect.Type {
	sorted := make([]reflect.Type, len(types))
	copy(sorted, types)
	sort.Sort(byTypeName(sorted))
	return sorted
}

// hashTypesToUint32 is FNV-1a over the runtime type descriptors.
func hashTypesToUint32(types []reflect.Type) uint32 {
	var h uint32 = 2166136261
	const prime uint32 = 16777619

	for _, t := range types {
		ptr := uintptr((*iface)(unsafe.Pointer(&t)).data)
		val := uint32(ptr)
		if unsafe.Sizeof(ptr) == 8 {
			val ^= uint32(uint64(ptr) >> 32)
		}
		h ^= val
		h *= prime
	}

	return h
}

// ComponentReader is anything that can look up components by entity.
type ComponentReader interface {
	GetComponent(EntityId, reflect.Type) any
}

// ReadComponent returns the entity's T or nil.
func ReadComponent[T any](reader ComponentReader, entityId EntityId) *T {
	comp := reader.GetComponent(entityId, reflect.TypeFor[T]())
	if comp == nil {
		return nil
	}
	return comp.(*T)
}
