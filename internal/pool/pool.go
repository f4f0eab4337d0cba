// Copyright (c) 2024, ircore authors.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package pool wraps sync.Pool for values that don't want to implement
// a shared reset interface, such as *bytes.Buffer.
package pool

import "sync"

// Pool is a generic wrapper around sync.Pool that resets each item
// with a caller-supplied function before it is handed back out, rather
// than requiring T to implement a reset method of its own.
type Pool[T any] struct {
	reset func(T)
	inner sync.Pool
}

// New creates a Pool whose items are produced by factory and cleared
// by reset before reuse.
func New[T any](factory func() T, reset func(T)) *Pool[T] {
	return &Pool[T]{
		reset: reset,
		inner: sync.Pool{New: func() any { return factory() }},
	}
}

// Get takes an item from the pool, allocating one via factory if empty.
func (p *Pool[T]) Get() T {
	return p.inner.Get().(T)
}

// Put resets the item and returns it to the pool.
func (p *Pool[T]) Put(item T) {
	p.reset(item)
	p.inner.Put(item)
}
