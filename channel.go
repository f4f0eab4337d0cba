// Copyright (c) 2024, ircore authors.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ircore

// Channel holds one channel's membership. All access happens under the
// Registry's single lock; Channel itself has no lock of its own.
type Channel struct {
	Name    string
	Members []string
	Flags   []byte
}

// has reports whether nick is already a member.
func (c *Channel) has(nick string) bool {
	for _, m := range c.Members {
		if m == nick {
			return true
		}
	}
	return false
}

// add appends nick if not already present, preserving join order.
func (c *Channel) add(nick string) {
	if !c.has(nick) {
		c.Members = append(c.Members, nick)
	}
}

// remove drops nick from the membership list, if present.
func (c *Channel) remove(nick string) {
	for i, m := range c.Members {
		if m == nick {
			c.Members = append(c.Members[:i], c.Members[i+1:]...)
			return
		}
	}
}

// snapshot returns a copy of the member list safe to read outside the
// registry lock.
func (c *Channel) snapshot() []string {
	out := make([]string, len(c.Members))
	copy(out, c.Members)
	return out
}
