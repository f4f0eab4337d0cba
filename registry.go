// Copyright (c) 2024, ircore authors.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ircore

import "sync"

// Registry is the process-wide map of nickname/address to delivery
// sink and channel name to membership. A single lock guards both
// maps: the source this core is grounded on takes the channel lock
// and then the sinks lock separately, which can deadlock against a
// concurrent operation taking them in the other order. One lock makes
// that ordering problem impossible. Lookups that need to enqueue onto
// a sink resolve the handle under the lock and send after releasing
// it, so no goroutine ever awaits while holding the lock.
type Registry struct {
	mu       sync.RWMutex
	sinks    map[string]*Sink
	channels map[string]*Channel
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		sinks:    make(map[string]*Sink),
		channels: make(map[string]*Channel),
	}
}

// InsertAddress places a newly accepted connection's sink under its
// peer address key. It only fails if the key is already taken, which
// a correct Supervisor never triggers (addresses are unique per live
// TCP connection).
func (r *Registry) InsertAddress(addr string, s *Sink) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.sinks[addr]; exists {
		return ErrAddressInUse
	}
	r.sinks[addr] = s
	return nil
}

// RenameToNick atomically moves a sink from addr to nick. If nick is
// already taken the registry is left untouched and ErrNickInUse is
// returned; the caller emits ERR_NICKNAMEINUSE.
func (r *Registry) RenameToNick(addr, nick string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.sinks[nick]; exists {
		return ErrNickInUse
	}

	s, exists := r.sinks[addr]
	if !exists {
		return ErrNickInUse
	}

	delete(r.sinks, addr)
	r.sinks[nick] = s
	return nil
}

// Remove deletes the sink entry under key, if present.
func (r *Registry) Remove(key string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sinks, key)
}

// Lookup returns the sink registered under key, if any.
func (r *Registry) Lookup(key string) (*Sink, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sinks[key]
	return s, ok
}

// ChannelAddMember creates chanName if absent, with nick as sole
// member, or appends nick to it if not already present. It returns a
// snapshot of the resulting membership.
func (r *Registry) ChannelAddMember(chanName, nick string) []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	ch, exists := r.channels[chanName]
	if !exists {
		ch = &Channel{Name: chanName}
		r.channels[chanName] = ch
	}
	ch.add(nick)
	return ch.snapshot()
}

// ChannelLookup returns a membership snapshot for chanName, if it
// exists.
func (r *Registry) ChannelLookup(chanName string) ([]string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ch, exists := r.channels[chanName]
	if !exists {
		return nil, false
	}
	return ch.snapshot(), true
}

// Fanout resolves target names (nicknames or channel names) to the
// concrete set of recipient sinks, excluding senderNick, in one
// critical section. It returns bare handles so the caller can enqueue
// onto them after releasing the registry lock, per the no-nested-await
// rule in the concurrency model.
func (r *Registry) Fanout(targets []string, senderNick string) []*Sink {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[string]bool)
	var out []*Sink

	add := func(nick string) {
		if nick == senderNick || seen[nick] {
			return
		}
		if s, ok := r.sinks[nick]; ok {
			seen[nick] = true
			out = append(out, s)
		}
	}

	for _, target := range targets {
		if ch, ok := r.channels[target]; ok {
			for _, member := range ch.Members {
				add(member)
			}
			continue
		}
		add(target)
	}

	return out
}
