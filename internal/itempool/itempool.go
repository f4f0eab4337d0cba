// Copyright (c) 2024, ircore authors.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package itempool provides a bounded, channel-backed object pool for
// short-lived, high-churn values such as parsed protocol messages, with
// hit/miss counters so a long-running server can tell whether its pool
// is sized for the connection load it is actually carrying.
package itempool

import "sync/atomic"

// Scrubbable is implemented by values that can clear their own state
// before being returned to a Pool for reuse.
type Scrubbable interface {
	Scrub()
}

// InitFunc allocates a new zero-value item when a Pool is empty.
type InitFunc[T Scrubbable] func() T

// Pool is a bounded pool of items backed by a buffered channel. Unlike
// sync.Pool, the capacity is fixed and explicit: Put past capacity
// drops the item instead of growing the backing store, which bounds
// memory held by idle pools. Get/Put outcomes are tallied so Stats can
// report whether the configured capacity is actually keeping up.
type Pool[T Scrubbable] struct {
	queue chan T
	init  InitFunc[T]

	hits   atomic.Uint64
	misses atomic.Uint64
	drops  atomic.Uint64
}

// New constructs a Pool with the given capacity and item factory.
func New[T Scrubbable](capacity int, init InitFunc[T]) *Pool[T] {
	return &Pool[T]{
		queue: make(chan T, capacity),
		init:  init,
	}
}

// Warmup pre-allocates up to num items, stopping early once the pool
// reaches capacity.
func (p *Pool[T]) Warmup(num int) {
	for i := 0; i < num; i++ {
		select {
		case p.queue <- p.init():
		default:
			return
		}
	}
}

// Get takes an item from the pool, allocating a new one if it is empty.
func (p *Pool[T]) Get() (item T) {
	select {
	case item = <-p.queue:
		p.hits.Add(1)
	default:
		item = p.init()
		p.misses.Add(1)
	}
	return
}

// Put scrubs the item's state and returns it to the pool. If the pool
// is at capacity, the item is discarded instead of blocking.
func (p *Pool[T]) Put(item T) {
	item.Scrub()
	select {
	case p.queue <- item:
	default:
		p.drops.Add(1)
	}
}

// Len reports the number of items currently idle in the pool.
func (p *Pool[T]) Len() int {
	return len(p.queue)
}

// Stats reports cumulative Get/Put outcomes since the pool was
// created: hits served straight from the queue, misses that required
// allocating a fresh item, and drops where Put found the queue already
// full. A rising miss or drop rate under steady load is the signal
// that the pool's capacity no longer matches the traffic it is
// absorbing.
func (p *Pool[T]) Stats() (hits, misses, drops uint64) {
	return p.hits.Load(), p.misses.Load(), p.drops.Load()
}
