// Copyright (c) 2024, ircore authors.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ircore

// Error is a workaround to allow for immutable error strings which
// satisfy the error interface.
type Error string

func (err Error) Error() string {
	return string(err)
}

func (err Error) String() string {
	return string(err)
}

// Registry/session errors.
const (
	ErrNickInUse    Error = "irc: nickname is already in use"
	ErrAddressInUse Error = "irc: address key already present in registry"
	ErrServerClosed Error = "irc: server closed"
)
