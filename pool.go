// Copyright (c) 2024, ircore authors.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ircore

import (
	"bytes"

	"github.com/nullwave/ircore/internal/itempool"
	"github.com/nullwave/ircore/internal/pool"
)

// messagePool holds short-lived parsed/outbound Message values. It is
// bounded (see internal/itempool) because Messages churn at wire
// speed and a fixed ceiling keeps idle memory flat across load spikes.
var messagePool = itempool.New[*Message](MessagePoolCapacity, func() *Message {
	return &Message{}
})

// bufPool holds *bytes.Buffer values used to render outbound lines. It
// wraps sync.Pool (see internal/pool) rather than itempool because a
// buffer's right size is workload-dependent; sync.Pool's elastic
// growth and GC-driven shrink fit that better than a fixed channel.
var bufPool = pool.New(
	func() *bytes.Buffer { return new(bytes.Buffer) },
	func(b *bytes.Buffer) { b.Reset() },
)

func init() {
	messagePool.Warmup(MessagePoolCapacity)
}

// newMessage takes a scrubbed Message from the pool.
func newMessage() *Message {
	return messagePool.Get()
}

// releaseMessage returns msg to the pool. Callers must not touch msg
// afterward.
func releaseMessage(msg *Message) {
	messagePool.Put(msg)
}

// messagePoolStats reports the shared message pool's cumulative
// hit/miss/drop counts, logged at shutdown as a coarse signal of
// whether MessagePoolCapacity matches the traffic this server carried.
func messagePoolStats() (hits, misses, drops uint64) {
	return messagePool.Stats()
}
