// Copyright (c) 2024, ircore authors.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package randtoken generates short opaque tokens for protocol
// round-trips such as a server-initiated PING.
package randtoken

import (
	"crypto/rand"
	"encoding/hex"
)

// String returns a random lowercase hex token n bytes of entropy wide.
// It panics if the system entropy source fails, which in practice only
// happens on a broken OS install.
func String(n int) string {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		panic("randtoken: failed to read entropy: " + err.Error())
	}
	return hex.EncodeToString(buf)
}
