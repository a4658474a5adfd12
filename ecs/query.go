package ecs

import (
	"iter"
	"unsafe"
)

// Query is a View that caches its matching archetypes and snapshots the
// matching entities once per Execute. The Scheduler calls Execute right
// before each system that owns the query runs.
type Query[T any] struct {
	view               *View[T]
	storage            *Storage
	cachedArchetypes   []*Archetype
	lastArchetypeCount int

	cachedEntities   []EntityId
	cachedComponents []T
	cacheValid       bool
}

// NewQuery creates a query bound to storage.
func NewQuery[T any](storage *Storage) *Query[T] {
	q := &Query[T]{}
	q.Init(storage)
	return q
}

// Init binds or rebinds the query to storage.
func (q *Query[T]) Init(storage *Storage) {
	q.view = NewView[T](storage)
	q.storage = storage
	q.cachedArchetypes = nil
	q.lastArchetypeCount = -1
	q.cacheValid = false
}

// Execute refreshes the snapshot.
func (q *Query[T]) Execute() {
	if n := len(q.storage.order); n != q.lastArchetypeCount {
		q.cachedArchetypes = q.cachedArchetypes[:0]
		for _, archetype := range q.storage.order {
			if q.view.matchesArchetype(archetype) {
				q.cachedArchetypes = append(q.cachedArchetypes, archetype)
			}
		}
		q.lastArchetypeCount = n
	}

	q.cachedEntities = q.cachedEntities[:0]
	q.cachedComponents = q.cachedComponents[:0]

	var result T
	for _, archetype := range q.cachedArchetypes {
		cols := q.view.columnsFor(archetype)
		for id := range archetype.Iter() {
			if !q.view.populate(unsafe.Pointer(&result), id, cols) {
				continue
			}
			q.cachedEntities = append(q.cachedEntities, id)
			q.cachedComponents = append(q.cachedComponents, result)
		}
	}

	q.cacheValid = true
}

func (q *Query[T]) mustBeValid(method string) {
	if !q.cacheValid {
		panic("Query." + method + "() called before Query.Execute()")
	}
}

// Iter yields the snapshot. Panics before the first Execute.
func (q *Query[T]) Iter() iter.Seq2[EntityId, T] {
	q.mustBeValid("Iter")
	return func(yield func(EntityId, T) bool) {
		for i := range q.cachedEntities {
			if !yield(q.cachedEntities[i], q.cachedComponents[i]) {
				return
			}
		}
	}
}

// Values yields the snapshot without ids.
func (q *Query[T]) Values() iter.Seq[T] {
	q.mustBeValid("Values")
	return func(yield func(T) bool) {
		for i := range q.cachedComponents {
			if !yield(q.cachedComponents[i]) {
				return
			}
		}
	}
}

// Len returns the snapshot size.
func (q *Query[T]) Len() int {
	q.mustBeValid("Len")
	return len(q.cachedEntities)
}

// Single returns the only match. ok is false for zero or several matches.
func (q *Query[T]) Single() (item T, ok bool) {
	q.mustBeValid("Single")
	if len(q.cachedComponents) != 1 {
		return item, false
	}
	return q.cachedComponents[0], true
}
