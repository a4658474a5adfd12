package ecs

import "math/bits"

const pageSize = 64

// iComponentStorage is a type-erased column of one component type.
// Slot indices are allocated by the owning archetype, not the column.
type iComponentStorage interface {
	Set(index int, item any) bool
	Get(index int) any
	Has(index int) bool
	Delete(index int)
	Move(from, to int)
	Truncate(n int)
}

type page[T any] struct {
	items [pageSize]T
	used  uint64
}

// column stores components in fixed pages that are never reallocated, so a
// pointer returned by Get stays valid until that slot is deleted.
type column[T any] struct {
	pages []*page[T]
}

func (c *column[T]) locate(index int) (*page[T], int) {
	if index < 0 {
		return nil, 0
	}
	p := index / pageSize
	if p >= len(c.pages) {
		return nil, 0
	}
	return c.pages[p], index % pageSize
}

// Set stores item at index, growing the column as needed.
// item may be a T or a *T; anything else is rejected.
func (c *column[T]) Set(index int, item any) bool {
	var value T
	switch v := item.(type) {
	case T:
		value = v
	case *T:
		if v == nil {
			return false
		}
		value = *v
	default:
		return false
	}
	if index < 0 {
		return false
	}

	for index/pageSize >= len(c.pages) {
		c.pages = append(c.pages, &page[T]{})
	}
	pg, slot := c.locate(index)
	pg.items[slot] = value
	pg.used |= 1 << slot
	return true
}

// Get returns a *T for the slot, or nil when the slot is empty.
func (c *column[T]) Get(index int) any {
	pg, slot := c.locate(index)
	if pg == nil || pg.used&(1<<slot) == 0 {
		return nil
	}
	return &pg.items[slot]
}

func (c *column[T]) Has(index int) bool {
	pg, slot := c.locate(index)
	return pg != nil && pg.used&(1<<slot) != 0
}

func (c *column[T]) Delete(index int) {
	pg, slot := c.locate(index)
	if pg == nil {
		return
	}
	var zero T
	pg.items[slot] = zero
	pg.used &^= 1 << slot
}

func (c *column[T]) Move(from, to int) {
	if from == to {
		return
	}
	src, srcSlot := c.locate(from)
	if src == nil || src.used&(1<<srcSlot) == 0 {
		return
	}
	c.Set(to, src.items[srcSlot])
	c.Delete(from)
}

// Truncate drops every page that holds no slot below n.
func (c *column[T]) Truncate(n int) {
	keep := (n + pageSize - 1) / pageSize
	if keep < len(c.pages) {
		for i := keep; i < len(c.pages); i++ {
			c.pages[i] = nil
		}
		c.pages = c.pages[:keep]
	}
}

func (c *column[T]) count() int {
	total := 0
	for _, pg := range c.pages {
		total += bits.OnesCount64(pg.used)
	}
	return total
}
