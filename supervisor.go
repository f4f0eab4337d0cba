// Copyright (c) 2024, ircore authors.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ircore

import (
	"fmt"
	"net"
	"time"

	"github.com/sirupsen/logrus"
)

// ListenAndServe listens on the server's configured address and then
// calls Serve to accept and run sessions. ListenAndServe always
// returns a non-nil error: ErrServerClosed after a graceful shutdown,
// or the fatal accept error otherwise.
func (s *Server) ListenAndServe() error {
	ln, err := net.Listen("tcp4", s.Address())
	if err != nil {
		return err
	}
	return s.Serve(ln)
}

// Serve runs the accept loop over an already-bound listener: on each
// accepted connection it registers a delivery sink, spawns a Session,
// and continues. A transient accept error backs off exponentially
// (see settings.go); a backoff that would exceed MaxAcceptBackoff is
// treated as fatal. On shutdown signal the listener is closed, which
// unblocks Accept with an error Serve recognizes as the shutdown path,
// and Serve waits for every live Session to drain before returning.
func (s *Server) Serve(ln net.Listener) error {
	s.mu.Lock()
	s.listener = ln
	s.mu.Unlock()
	defer ln.Close()

	log := s.log.WithField("sub-component", "supervisor")
	log.Infof("starting IRC server listener at %s", ln.Addr())

	go func() {
		<-s.shutdownCtx.Done()
		log.Info("shutdown signal received, closing listener")
		ln.Close()
	}()

	var backoff time.Duration
	for {
		conn, err := ln.Accept()
		if err != nil {
			select {
			case <-s.shutdownCtx.Done():
				s.drain(log)
				return ErrServerClosed
			default:
			}

			if ne, ok := err.(net.Error); !ok || !ne.Temporary() {
				return err
			}

			if backoff == 0 {
				backoff = MinAcceptBackoff
			} else {
				backoff *= 2
			}
			if backoff > MaxAcceptBackoff {
				return fmt.Errorf("irc: accept backoff exceeded %s, giving up: %w", MaxAcceptBackoff, err)
			}

			sleep := backoff
			if sleep > MaxAcceptBackoff {
				sleep = MaxAcceptBackoff
			}
			log.Errorf("error accepting connection: %v; retrying in %s", err, sleep)
			time.Sleep(sleep)
			continue
		}

		backoff = 0
		s.spawn(conn, log)
	}
}

// drain waits up to shutdownTimeout for all spawned Sessions to
// return.
func (s *Server) drain(log *logrus.Entry) {
	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(s.shutdownTimeout):
		log.Warn("graceful shutdown timed out waiting for sessions to drain")
	}

	hits, misses, drops := messagePoolStats()
	log.Debugf("message pool stats at shutdown: %d hits, %d misses, %d drops", hits, misses, drops)
}

func (s *Server) spawn(conn net.Conn, log *logrus.Entry) {
	if tc, ok := conn.(*net.TCPConn); ok {
		tc.SetKeepAlive(true)
		tc.SetKeepAlivePeriod(DefaultKeepAlivePeriod)
	}

	addr := conn.RemoteAddr().String()
	sink := newSink(DefaultSinkCapacity)

	if err := s.registry.InsertAddress(addr, sink); err != nil {
		log.Errorf("could not register connection from %s: %v", addr, err)
		conn.Close()
		return
	}

	session := NewSession(s, conn, sink, addr)
	log.Debugf("accepted connection from %s", addr)

	s.wg.Go(func() {
		session.Run(s.shutdownCtx)
	})
}
