package ecs

import "reflect"

// Commands buffers structural changes made while systems iterate. The
// Scheduler flushes them once every system of the frame has run.
type Commands struct {
	spawns  []spawnCommand
	deletes []EntityId
	adds    []addComponentCommand
	removes []removeComponentCommand
	defers  []func()
}

func newCommands() *Commands {
	return &Commands{}
}

type spawnCommand struct {
	components []any
}

type addComponentCommand struct {
	entity    EntityId
	component any
}

type removeComponentCommand struct {
	entity   EntityId
	compType reflect.Type
}

// Spawn queues an entity spawn.
func (c *Commands) Spawn(components ...any) {
	c.spawns = append(c.spawns, spawnCommand{components: components})
}

// Delete queues an entity deletion.
func (c *Commands) Delete(entity EntityId) {
	c.deletes = append(c.deletes, entity)
}

// AddComponent queues a component addition.
func (c *Commands) AddComponent(entity EntityId, component any) {
	c.adds = append(c.adds, addComponentCommand{entity: entity, component: component})
}

// RemoveComponent queues a component removal.
func (c *Commands) RemoveComponent(entity EntityId, compType reflect.Type) {
	c.removes = append(c.removes, removeComponentCommand{entity: entity, compType: compType})
}

// Defer queues fn to run after every other queued command.
func (c *Commands) Defer(fn func()) {
	c.defers = append(c.defers, fn)
}

// Pending returns the number of queued operations.
func (c *Commands) Pending() int {
	return len(c.spawns) + len(c.deletes) + len(c.adds) + len(c.removes) + len(c.defers)
}

// Flush applies the buffer in the order deletes, removes, adds, spawns,
// defers, then resets it. Adds and removes aimed at an entity deleted in the
// same flush are dropped.
func (c *Commands) Flush(storage *Storage) {
	deleted := make(map[EntityId]bool, len(c.deletes))
	for _, id := range c.deletes {
		storage.Delete(id)
		deleted[id] = true
	}

	// Adds and removes move entities between archetypes, so they are applied
	// through refs that follow each move.
	refs := make(map[EntityId]*EntityRef)
	refFor := func(id EntityId) *EntityRef {
		ref, ok := refs[id]
		if !ok {
			ref = storage.CreateEntityRef(id)
			refs[id] = ref
		}
		return ref
	}
	for _, cmd := range c.removes {
		if !deleted[cmd.entity] {
			refFor(cmd.entity)
		}
	}
	for _, cmd := range c.adds {
		if !deleted[cmd.entity] {
			refFor(cmd.entity)
		}
	}

	for _, cmd := range c.removes {
		if ref := refs[cmd.entity]; ref.Valid() {
			storage.RemoveComponent(ref.Id, cmd.compType)
		}
	}

	for _, cmd := range c.adds {
		if ref := refs[cmd.entity]; ref.Valid() {
			storage.AddComponent(ref.Id, cmd.component)
		}
	}

	for _, cmd := range c.spawns {
		storage.Spawn(cmd.components...)
	}

	for _, fn := range c.defers {
		fn()
	}

	c.spawns = c.spawns[:0]
	c.deletes = c.deletes[:0]
	c.adds = c.adds[:0]
	c.removes = c.removes[:0]
	c.defers = c.defers[:0]
}
