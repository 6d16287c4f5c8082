// Package pool provides a fixed-capacity pool of reusable objects.
// Items are allocated once, up front, and handed out by pointer; the pool
// never grows and never allocates after construction.
package pool

import (
	"errors"
	"fmt"
)

// DefaultCapacity is the slot count used by the game's obstacle pool.
const DefaultCapacity = 10

// ErrExhausted is returned by Acquire when every slot is in use.
var ErrExhausted = errors.New("pool: exhausted")

type slot[T any] struct {
	item T
	used bool
}

// Pool is a fixed set of reusable items of type T.
// It is not safe for concurrent use.
type Pool[T any] struct {
	slots []slot[T]
	inUse int
}

// New creates a pool with the given capacity. The optional init function
// runs once per item at construction and never again on reuse.
// A non-positive capacity is a programming error and panics.
func New[T any](capacity int, init func(*T)) *Pool[T] {
	if capacity <= 0 {
		panic(fmt.Sprintf("pool: invalid capacity %d", capacity))
	}

	p := &Pool[T]{slots: make([]slot[T], capacity)}
	if init != nil {
		for i := range p.slots {
			init(&p.slots[i].item)
		}
	}
	return p
}

// Acquire hands out the first free item in slot order.
func (p *Pool[T]) Acquire() (*T, error) {
	for i := range p.slots {
		if !p.slots[i].used {
			p.slots[i].used = true
			p.inUse++
			return &p.slots[i].item, nil
		}
	}
	return nil, fmt.Errorf("acquire from %d slots: %w", len(p.slots), ErrExhausted)
}

// Release returns an item to the pool. The item is matched by identity;
// pointers the pool did not hand out, and free items, are ignored.
func (p *Pool[T]) Release(item *T) {
	for i := range p.slots {
		if &p.slots[i].item == item {
			if p.slots[i].used {
				p.slots[i].used = false
				p.inUse--
			}
			return
		}
	}
}

// ReleaseAll marks every item as free.
func (p *Pool[T]) ReleaseAll() {
	for i := range p.slots {
		p.slots[i].used = false
	}
	p.inUse = 0
}

// Cap returns the fixed number of slots.
func (p *Pool[T]) Cap() int {
	return len(p.slots)
}

// InUse returns how many items are currently handed out.
func (p *Pool[T]) InUse() int {
	return p.inUse
}

// Each calls fn for every item, used or not, in slot order.
func (p *Pool[T]) Each(fn func(item *T, used bool)) {
	for i := range p.slots {
		fn(&p.slots[i].item, p.slots[i].used)
	}
}
