// Copyright (c) 2024, ircore authors.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ircore

import "time"

// Limiter constants.
const (
	// MaxMsgLength is the maximum size in bytes of one line, CRLF
	// included.
	MaxMsgLength = 512

	// MaxNickLength bounds stored nicknames; the codec does not
	// enforce it itself, but Session's NICK handler rejects a longer
	// nickname with ERR_ERRONEUSNICKNAME.
	MaxNickLength = 32
)

// Default timing and sizing, used directly by the Session, the
// Supervisor and the pools; none of these is set through options.go.
const (
	// DefaultKeepAlivePeriod is the TCP keep-alive probe interval set
	// on accepted connections.
	DefaultKeepAlivePeriod time.Duration = 2 * time.Minute

	// DefaultWriteTimeout bounds a single outbound write.
	DefaultWriteTimeout time.Duration = 5 * time.Second

	// DefaultSinkCapacity is the size of each session's inbound
	// delivery queue.
	DefaultSinkCapacity = 32

	// MessagePoolCapacity bounds the shared Message object pool.
	MessagePoolCapacity = 1000

	// BufferPoolCapacity is not applied to the shared bytes.Buffer
	// pool: bufPool wraps sync.Pool, which has no capacity, grows
	// under load and shrinks back on GC.
	BufferPoolCapacity = 1000

	// MinAcceptBackoff is the initial sleep after a transient accept
	// error.
	MinAcceptBackoff time.Duration = 5 * time.Millisecond

	// MaxAcceptBackoff is the ceiling accept backoff may grow to
	// before it is treated as fatal.
	MaxAcceptBackoff time.Duration = 64 * time.Second

	// PingInterval is how long a Session waits for client activity
	// before probing it with a server-initiated PING. The core spec
	// leaves read/write timeouts unspecified and permits an
	// implementation to add one; this is that addition.
	PingInterval time.Duration = 30 * time.Second
)
