// Copyright (c) 2024, ircore authors.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ircore

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

// Option configures a Server at construction time. See NewServer.
type Option func(*Server) error

// WithHostname sets the server's identity, used as :source on
// server-originated numerics and PONG replies.
func WithHostname(name string) Option {
	return func(s *Server) error {
		s.name = name
		return nil
	}
}

// WithNetwork sets the network name advertised in RPL_ISUPPORT-style
// responses. Defaults to the hostname if unset.
func WithNetwork(name string) Option {
	return func(s *Server) error {
		s.network = name
		return nil
	}
}

// WithPassword sets the single connection password checked during
// PASS. Leaving it unset makes PASS accept any password; a PASS is
// still needed before NICK and USER advance registration.
func WithPassword(password string) Option {
	return func(s *Server) error {
		s.password = password
		return nil
	}
}

// WithListenAddress sets the TCP address ListenAndServe binds to.
// Defaults to ":6667".
func WithListenAddress(addr string) Option {
	return func(s *Server) error {
		s.listenAddr = addr
		return nil
	}
}

// WithMOTD sets the message-of-the-day lines sent to clients on
// registration.
func WithMOTD(lines []string) Option {
	return func(s *Server) error {
		s.motd = lines
		return nil
	}
}

// WithLogger supplies a preconfigured logger instead of the package
// default.
func WithLogger(logger *logrus.Logger) Option {
	return func(s *Server) error {
		s.logger = logger
		return nil
	}
}

// WithLogLevel sets the logger's level. Only meaningful alongside
// WithLogger or WithDefaultLogFormatter.
func WithLogLevel(level logrus.Level) Option {
	return func(s *Server) error {
		if s.logger == nil {
			s.logger = newDefaultLogger()
		}
		s.logger.SetLevel(level)
		return nil
	}
}

// WithDefaultLogFormatter installs this package's nested-field log
// formatter on the server's logger, constructing a default logger
// first if one has not already been supplied.
func WithDefaultLogFormatter() Option {
	return func(s *Server) error {
		if s.logger == nil {
			s.logger = newDefaultLogger()
			return nil
		}
		s.logger.SetFormatter(newDefaultLogger().Formatter)
		return nil
	}
}

// WithGracefulShutdown wires a context whose cancellation triggers an
// orderly shutdown: the accept loop stops, every live Session is
// notified to close, and the server waits up to timeout for all of
// them to drain before returning.
func WithGracefulShutdown(ctx context.Context, timeout time.Duration) Option {
	return func(s *Server) error {
		s.shutdownCtx = ctx
		s.shutdownTimeout = timeout
		return nil
	}
}
