package ecs

import (
	"iter"
	"reflect"
	"unsafe"
)

var entityIdType = reflect.TypeFor[EntityId]()

type viewField struct {
	typ      reflect.Type
	offset   uintptr
	optional bool
}

// View reads entities through a struct of component pointers.
//
// Every pointer field names a component type. Embedded pointer fields are
// required; named ones may be tagged `ecs:"optional"` and are nil when the
// entity lacks them. A field of type EntityId (embedded or named) receives
// the entity's id.
type View[T any] struct {
	storage  *Storage
	fields   []viewField
	idOffset []uintptr
}

// NewView builds a view over storage for the struct type T.
func NewView[T any](storage *Storage) *View[T] {
	structType := reflect.TypeFor[T]()
	if structType.Kind() != reflect.Struct {
		panic("View type parameter must be a struct")
	}

	v := &View[T]{storage: storage}
	for i := 0; i < structType.NumField(); i++ {
		field := structType.Field(i)

		if field.Type == entityIdType {
			v.idOffset = append(v.idOffset, field.Offset)
			continue
		}
		if field.Type.Kind() != reflect.Pointer {
			panic("View struct fields must be pointer types or EntityId")
		}

		optional := false
		if tag := field.Tag.Get("ecs"); tag != "" && !field.Anonymous {
			if tag != "optional" {
				panic("invalid ecs tag value: \"" + tag + "\" (only \"optional\" is supported)")
			}
			optional = true
		}

		v.fields = append(v.fields, viewField{
			typ:      field.Type.Elem(),
			offset:   field.Offset,
			optional: optional,
		})
	}

	return v
}

func (v *View[T]) matchesArchetype(archetype *Archetype) bool {
	for _, f := range v.fields {
		if !f.optional && !archetype.HasComponent(f.typ) {
			return false
		}
	}
	return true
}

// columnsFor resolves each view field to an archetype column, nil if absent.
func (v *View[T]) columnsFor(archetype *Archetype) []iComponentStorage {
	cols := make([]iComponentStorage, len(v.fields))
	for i, f := range v.fields {
		cols[i] = archetype.columnFor(f.typ)
	}
	return cols
}

func (v *View[T]) populate(dst unsafe.Pointer, id EntityId, cols []iComponentStorage) bool {
	index := int(id.Index())
	for i, f := range v.fields {
		slot := (*unsafe.Pointer)(unsafe.Add(dst, f.offset))
		var comp any
		if cols[i] != nil {
			comp = cols[i].Get(index)
		}
		if comp == nil {
			if !f.optional {
				return false
			}
			*slot = nil
			continue
		}
		*slot = dataPointer(comp)
	}
	for _, off := range v.idOffset {
		*(*EntityId)(unsafe.Add(dst, off)) = id
	}
	return true
}

// Fill populates dst for the given entity. It returns false when the entity
// is gone or lacks a required component.
func (v *View[T]) Fill(id EntityId, dst *T) bool {
	archetype, ok := v.storage.archetypes[id.ArchetypeId()]
	if !ok || !archetype.Alive(id.Index()) || !v.matchesArchetype(archetype) {
		return false
	}
	return v.populate(unsafe.Pointer(dst), id, v.columnsFor(archetype))
}

// Get returns the populated view for id, or nil.
func (v *View[T]) Get(id EntityId) *T {
	var result T
	if !v.Fill(id, &result) {
		return nil
	}
	return &result
}

// GetRef is Get through an EntityRef.
func (v *View[T]) GetRef(ref *EntityRef) *T {
	id, ok := v.storage.ResolveEntityRef(ref)
	if !ok {
		return nil
	}
	return v.Get(id)
}

func (v *View[T]) iterArchetype(archetype *Archetype, yield func(EntityId, T) bool) bool {
	cols := v.columnsFor(archetype)
	var result T
	for id := range archetype.Iter() {
		if !v.populate(unsafe.Pointer(&result), id, cols) {
			continue
		}
		if !yield(id, result) {
			return false
		}
	}
	return true
}

// Iter yields every matching entity, archetypes in creation order.
func (v *View[T]) Iter() iter.Seq2[EntityId, T] {
	return func(yield func(EntityId, T) bool) {
		for _, archetype := range v.storage.order {
			if !v.matchesArchetype(archetype) {
				continue
			}
			if !v.iterArchetype(archetype, yield) {
				return
			}
		}
	}
}

// Values is Iter without the ids.
func (v *View[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, value := range v.Iter() {
			if !yield(value) {
				return
			}
		}
	}
}

// Spawn creates an entity from the non-nil component pointers in data.
func (v *View[T]) Spawn(data T) EntityId {
	base := unsafe.Pointer(&data)
	components := make([]any, 0, len(v.fields))
	for _, f := range v.fields {
		ptr := *(*unsafe.Pointer)(unsafe.Add(base, f.offset))
		if ptr == nil {
			if !f.optional {
				panic("required component is nil in View.Spawn")
			}
			continue
		}
		components = append(components, reflect.NewAt(f.typ, ptr).Interface())
	}
	return v.storage.Spawn(components...)
}
