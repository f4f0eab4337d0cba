// Copyright (c) 2024, ircore authors.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ircore

import (
	"context"
	"net"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sourcegraph/conc"
)

// Server holds the state of one IRC server instance: its identity,
// the shared Router registry, and the bookkeeping needed to accept
// connections and shut down cleanly.
type Server struct {
	mu sync.RWMutex

	name       string
	network    string
	password   string
	listenAddr string
	motd       []string

	logger *logrus.Logger
	log    *logrus.Entry

	registry *Registry

	shutdownCtx     context.Context
	shutdownTimeout time.Duration

	listener net.Listener
	wg       conc.WaitGroup
}

// NewServer constructs a Server from functional options. See
// options.go for the available With* options.
func NewServer(opts ...Option) (*Server, error) {
	server := &Server{
		registry:        NewRegistry(),
		shutdownCtx:     context.Background(),
		shutdownTimeout: 30 * time.Second,
	}

	for _, opt := range opts {
		if err := opt(server); err != nil {
			return nil, err
		}
	}

	if server.logger == nil {
		server.logger = newDefaultLogger()
	}
	server.log = server.logger.WithField("component", "ircore")

	return server, nil
}

// Name returns the configured server name used as :source on
// server-originated numerics and PONG replies.
func (s *Server) Name() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.nameLocked()
}

// nameLocked returns the server name; callers must already hold s.mu
// for reading.
func (s *Server) nameLocked() string {
	if s.name == "" {
		if s.listener != nil {
			return s.listener.Addr().String()
		}
		return "irc"
	}
	return s.name
}

// Network returns the configured network name, falling back to Name.
func (s *Server) Network() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.network == "" {
		return s.nameLocked()
	}
	return s.network
}

// Password returns the configured connection password. An empty
// password means any PASS value is accepted; PASS itself is still
// needed to begin registration.
func (s *Server) Password() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.password
}

// Address returns the configured listen address.
func (s *Server) Address() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.listenAddr == "" {
		return ":6667"
	}
	return s.listenAddr
}

// MOTD returns the configured message-of-the-day lines.
func (s *Server) MOTD() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.motd
}

// Registry returns the server's shared routing registry.
func (s *Server) Registry() *Registry {
	return s.registry
}
