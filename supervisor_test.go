// Copyright (c) 2024, ircore authors.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ircore

import (
	"context"
	"errors"
	"io"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// temporaryError satisfies net.Error with Temporary() == true, the
// condition the accept loop retries on instead of giving up.
type temporaryError struct{}

func (temporaryError) Error() string   { return "temporary accept error" }
func (temporaryError) Timeout() bool   { return false }
func (temporaryError) Temporary() bool { return true }

// scriptedListener replays a fixed sequence of Accept results: errors
// first, then real connections from a net.Pipe, then blocks until
// Close is called.
type scriptedListener struct {
	errs   []error
	conns  []net.Conn
	closed chan struct{}
}

func newScriptedListener(errs []error, conns []net.Conn) *scriptedListener {
	return &scriptedListener{errs: errs, conns: conns, closed: make(chan struct{})}
}

func (l *scriptedListener) Accept() (net.Conn, error) {
	if len(l.errs) > 0 {
		err := l.errs[0]
		l.errs = l.errs[1:]
		return nil, err
	}
	if len(l.conns) > 0 {
		c := l.conns[0]
		l.conns = l.conns[1:]
		return c, nil
	}
	<-l.closed
	return nil, errors.New("listener closed")
}

func (l *scriptedListener) Close() error {
	select {
	case <-l.closed:
	default:
		close(l.closed)
	}
	return nil
}

func (l *scriptedListener) Addr() net.Addr { return testAddr{} }

type testAddr struct{}

func (testAddr) Network() string { return "tcp" }
func (testAddr) String() string  { return "127.0.0.1:0" }

func TestServeRetriesTemporaryAcceptErrors(t *testing.T) {
	serverConn, clientConn := net.Pipe()
	defer clientConn.Close()

	ln := newScriptedListener([]error{temporaryError{}, temporaryError{}}, []net.Conn{serverConn})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	srv, err := NewServer(WithHostname("server1"), WithGracefulShutdown(ctx, time.Second))
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() { done <- srv.Serve(ln) }()

	_, err = clientConn.Write([]byte("PING token\r\n"))
	require.NoError(t, err)

	buf := make([]byte, 64)
	clientConn.SetReadDeadline(time.Now().Add(time.Second))
	n, err := clientConn.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, ":server1 PONG token\r\n", string(buf[:n]))

	// Keep reading so the session's shutdown ERROR write does not block
	// on the unbuffered pipe and hold up the drain.
	clientConn.SetReadDeadline(time.Time{})
	go io.Copy(io.Discard, clientConn)

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, ErrServerClosed)
	case <-time.After(time.Second):
		t.Fatal("Serve did not return after shutdown")
	}
}

func TestServeDrainsSessionsOnShutdown(t *testing.T) {
	serverConn, clientConn := net.Pipe()
	defer clientConn.Close()
	go io.Copy(io.Discard, clientConn)

	ln := newScriptedListener(nil, []net.Conn{serverConn})

	ctx, cancel := context.WithCancel(context.Background())

	srv, err := NewServer(WithHostname("server1"), WithGracefulShutdown(ctx, time.Second))
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() { done <- srv.Serve(ln) }()

	// Give Serve a moment to accept and spawn the session before
	// triggering shutdown.
	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, ErrServerClosed)
	case <-time.After(time.Second):
		t.Fatal("Serve did not drain and return after shutdown")
	}
}
