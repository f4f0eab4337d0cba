// Copyright (c) 2024, ircore authors.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ircore

import (
	"bufio"
	"context"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/nullwave/ircore/internal/randtoken"
	"github.com/nullwave/ircore/internal/stringutils"
)

// RegState is a Session's position in the registration state machine.
type RegState int

const (
	StateNone RegState = iota
	StatePassSeen
	StateNickSeen
	StateUserSeen
	StateRegistered
)

// Session owns one client TCP connection: its socket, its framer and
// write buffer, and its registration/identity fields. The registry
// delivery sink is shared — the Session owns the receive end and a
// clone of the send end lives in the Registry under the session's
// current key.
type Session struct {
	server *Server
	conn   net.Conn
	framer *Framer
	writer *bufio.Writer
	sink   *Sink
	log    *logrus.Entry

	key   string // current registry key: peer address, then nickname
	state RegState

	nickname string
	username string
	realname string

	heartbeat    *time.Timer
	lastPingSent string
	lastPingRecv string
}

// NewSession constructs a Session for a freshly accepted connection.
// The caller is responsible for inserting sink into the registry
// under addr before the Session starts reading.
func NewSession(server *Server, conn net.Conn, sink *Sink, addr string) *Session {
	return &Session{
		server:    server,
		conn:      conn,
		framer:    NewFramer(),
		writer:    bufio.NewWriter(conn),
		sink:      sink,
		key:       addr,
		log:       server.log.WithField("remote", addr),
		heartbeat: time.NewTimer(PingInterval),
	}
}

// Run drives the session until the peer disconnects, a fatal write
// error occurs, or ctx is canceled for shutdown. It always removes the
// session's registry entry before returning.
func (s *Session) Run(ctx context.Context) {
	defer s.cleanup()

	lines := make(chan []byte)
	readErr := make(chan error, 1)
	closeReader := make(chan struct{})
	defer close(closeReader)

	go s.readLoop(lines, readErr, closeReader)

	for {
		select {
		case <-ctx.Done():
			s.writeCommand("", ErrorCommand{Reason: "Server shutting down."})
			s.flush()
			return

		case err := <-readErr:
			if err != nil {
				s.log.Debugf("connection closed: %v", err)
			}
			return

		case line, ok := <-lines:
			if !ok {
				return
			}
			s.heartbeat.Reset(PingInterval)
			if s.handleLine(line) {
				s.flush()
				return
			}
			s.flush()

		case msg, ok := <-s.sink.Messages():
			if !ok {
				return
			}
			s.deliver(msg)
			s.flush()

		case <-s.heartbeat.C:
			if s.doHeartbeat() {
				s.flush()
				return
			}
			s.flush()
		}
	}
}

// doHeartbeat probes an idle connection with a server-initiated PING.
// It returns true if the previous probe went unanswered, in which case
// the caller should terminate the session.
func (s *Session) doHeartbeat() bool {
	if s.lastPingSent != "" && s.lastPingRecv != s.lastPingSent {
		s.writeCommand("", ErrorCommand{Reason: "Ping timeout."})
		return true
	}

	s.lastPingSent = randtoken.String(8)
	s.writeCommand(s.server.Name(), PingCommand{Data: s.lastPingSent})
	s.heartbeat.Reset(PingInterval)
	return false
}

// readLoop feeds socket reads through the Framer and publishes
// complete lines on lines. It exits when the socket errors or
// closeReader is closed by Run on its way out.
func (s *Session) readLoop(lines chan<- []byte, errCh chan<- error, closeReader <-chan struct{}) {
	defer close(lines)

	buf := make([]byte, 4096)
	for {
		n, err := s.conn.Read(buf)
		if n > 0 {
			s.framer.Feed(buf[:n])
			for {
				line, outcome := s.framer.Next()
				switch outcome {
				case Line:
					select {
					case lines <- line:
					case <-closeReader:
						return
					}
					continue
				case TooLong:
					continue
				default: // Incomplete
				}
				break
			}
		}
		if err != nil {
			errCh <- err
			return
		}
	}
}

// handleLine parses and dispatches one line. It returns true if the
// session should terminate, which only a QUIT causes.
func (s *Session) handleLine(line []byte) bool {
	msg, outcome, command := Parse(line)

	switch outcome {
	case OutcomeSilentDiscard:
		return false
	case OutcomeNeedMoreParams:
		s.replyNumeric(ErrNeedMoreParams, command)
		return false
	case OutcomeNoTextToSend:
		s.replyNumeric(ErrNoTextToSend)
		return false
	case OutcomeNoNicknameGiven:
		s.replyNumeric(ErrNoNicknameGiven)
		return false
	}

	defer releaseMessage(msg)
	return s.dispatch(msg.Command)
}

// dispatch applies the registration FSM and the commands that are
// legal at any point in a connection's life (QUIT, CAP, PING/PONG,
// and the registration commands themselves); channel and messaging
// commands are only reachable once Registered.
func (s *Session) dispatch(cmd Command) bool {
	switch c := cmd.(type) {
	case QuitCommand:
		s.handleQuit(c)
		return true
	case CapCommand:
		s.handleCap(c)
		return false
	case PongCommand:
		s.lastPingRecv = c.Data
		return false
	case PingCommand:
		s.handlePing(c)
		return false
	case PassCommand:
		s.handlePass(c)
		return false
	case NickCommand:
		s.handleNick(c)
		return false
	case UserCommand:
		s.handleUser(c)
		return false
	}

	if s.state != StateRegistered {
		return false
	}

	switch c := cmd.(type) {
	case JoinCommand:
		s.handleJoin(c)
	case PrivmsgCommand:
		s.handlePrivmsg(c)
	case WhoCommand:
		s.handleWho(c)
	case OperCommand, ErrorCommand:
		// acknowledged implicitly: this core grants no privileges for
		// OPER, and a client never legitimately sends ERROR.
	}
	return false
}

func (s *Session) handlePass(c PassCommand) {
	switch s.state {
	case StateNone:
		if s.server.Password() == "" || c.Password == s.server.Password() {
			s.state = StatePassSeen
		} else {
			s.replyNumeric(ErrPasswdMismatch)
		}
	default:
		s.replyNumeric(ErrAlreadyRegistered)
	}
}

func (s *Session) handleNick(c NickCommand) {
	if len(c.Nickname) > MaxNickLength {
		s.replyNumeric(ErrErroneusNickname, c.Nickname)
		return
	}
	switch s.state {
	case StateNone:
		// No PASS observed yet; out-of-order NICK yields no advancement.
	case StatePassSeen:
		s.nickname = c.Nickname
		s.state = StateNickSeen
	case StateNickSeen:
		s.nickname = c.Nickname
	case StateUserSeen:
		s.nickname = c.Nickname
		s.completeRegistration()
	case StateRegistered:
		if err := s.server.Registry().RenameToNick(s.key, c.Nickname); err != nil {
			s.replyNumeric(ErrNicknameInUse, c.Nickname)
			return
		}
		s.nickname = c.Nickname
		s.key = c.Nickname
	}
}

func (s *Session) handleUser(c UserCommand) {
	switch s.state {
	case StateNone:
		// Out-of-order USER before PASS yields no advancement.
	case StatePassSeen:
		s.username, s.realname = c.User, c.Realname
		s.state = StateUserSeen
	case StateNickSeen:
		s.username, s.realname = c.User, c.Realname
		s.completeRegistration()
	default:
		s.replyNumeric(ErrAlreadyRegistered)
	}
}

// completeRegistration performs the atomic address->nickname rename
// and, on success, advances the session to Registered and sends the
// welcome burst. On NickInUse the session waits in UserSeen, keeping
// its PASS and USER progress, so the client's next NICK retries the
// registration.
func (s *Session) completeRegistration() {
	if err := s.server.Registry().RenameToNick(s.key, s.nickname); err != nil {
		s.replyNumeric(ErrNicknameInUse, s.nickname)
		s.state = StateUserSeen
		return
	}
	s.key = s.nickname
	s.state = StateRegistered
	s.sendWelcome()
}

// isupportTokens are the RPL_ISUPPORT tokens this core advertises.
// Kept short and static: this core has no channel modes or prefixes
// to negotiate (see Non-goals), so the token set never grows per
// connection.
var isupportTokens = []string{"CASEMAPPING=ascii", "NICKLEN=" + strconv.Itoa(MaxNickLength), "CHANTYPES=#"}

func (s *Session) sendWelcome() {
	s.writeCommand(s.server.Name(), NumericReply{
		Code:     RplWelcome,
		Client:   s.displayName(),
		Trailing: "Welcome to " + s.server.Network() + ", " + s.displayName(),
	})

	header := ":" + s.server.Name() + " 005 " + s.displayName() + " "
	budget := MaxMsgLength - len(header) - len(" :are supported by this server\r\n")
	for _, chunk := range stringutils.ChunkJoin(isupportTokens, " ", budget) {
		s.writeCommand(s.server.Name(), NumericReply{
			Code:     RplISupport,
			Client:   s.displayName(),
			Params:   strings.Fields(chunk),
			Trailing: "are supported by this server",
		})
	}

	motd := s.server.MOTD()
	if len(motd) == 0 {
		return
	}
	s.writeCommand(s.server.Name(), NumericReply{
		Code:     RplMOTDStart,
		Client:   s.displayName(),
		Trailing: "- " + s.server.Name() + " Message of the day -",
	})
	for _, line := range motd {
		s.writeCommand(s.server.Name(), NumericReply{
			Code:     RplMOTD,
			Client:   s.displayName(),
			Trailing: line,
		})
	}
	s.replyNumeric(RplEndOfMOTD)
}

func (s *Session) handleCap(c CapCommand) {
	s.writeCommand("", CapCommand{Sub: "ACK"})
}

func (s *Session) handlePing(c PingCommand) {
	s.writeCommand(s.server.Name(), PongCommand{Data: c.Data})
}

func (s *Session) handleQuit(c QuitCommand) {
	reason := c.Reason
	if reason == "" {
		reason = "Client Quit"
	}
	s.writeCommand("", ErrorCommand{Reason: "Closing Link: " + s.displayName() + " (" + reason + ")"})
}

func (s *Session) handleJoin(c JoinCommand) {
	for _, name := range c.Channels {
		if name == "" {
			continue
		}
		s.server.Registry().ChannelAddMember(name, s.nickname)
		s.writeCommand(s.nickname, JoinCommand{Channels: []string{name}})
	}
}

func (s *Session) handlePrivmsg(c PrivmsgCommand) {
	if len(c.Targets) == 0 || c.Text == "" {
		return
	}
	sinks := s.server.Registry().Fanout(c.Targets, s.nickname)
	if len(sinks) == 0 {
		return
	}
	out := buildMessage(s.nickname, PrivmsgCommand{Targets: c.Targets, Text: c.Text})
	for _, sink := range sinks {
		sink.Send(out)
	}
}

func (s *Session) handleWho(c WhoCommand) {
	members, ok := s.server.Registry().ChannelLookup(c.Mask)
	if ok {
		for _, nick := range members {
			s.writeCommand(s.server.Name(), NumericReply{
				Code:     RplWhoReply,
				Client:   s.displayName(),
				Params:   []string{c.Mask, nick, nick, s.server.Name(), nick, "H"},
				Trailing: "0 " + nick,
			})
		}
	}
	s.replyNumeric(RplEndOfWho, c.Mask)
}

// deliver writes an inbound routed Message to the socket unchanged;
// the registry already stamped the correct source.
func (s *Session) deliver(msg *Message) {
	buf := msg.RenderBuffer()
	defer bufPool.Put(buf)
	s.writer.Write(buf.Bytes())
}

// writeCommand serializes and buffers one locally constructed
// command, to be flushed at the end of the current event.
func (s *Session) writeCommand(source string, cmd Command) {
	if source == "" {
		source = s.server.Name()
	}
	msg := &Message{Source: source, Command: cmd}
	buf := msg.RenderBuffer()
	defer bufPool.Put(buf)
	s.writer.Write(buf.Bytes())
}

func (s *Session) replyNumeric(code Numeric, params ...string) {
	s.writeCommand("", numericf(code, s.displayName(), params...))
}

func (s *Session) displayName() string {
	if s.nickname == "" {
		return "*"
	}
	return s.nickname
}

func (s *Session) flush() {
	s.conn.SetWriteDeadline(time.Now().Add(DefaultWriteTimeout))
	if err := s.writer.Flush(); err != nil {
		s.log.Debugf("write error, closing session: %v", err)
		s.conn.Close()
	}
}

func (s *Session) cleanup() {
	s.heartbeat.Stop()
	reg := s.server.Registry()
	if _, ok := reg.Lookup(s.key); !ok {
		s.log.Warnf("no registry entry under %q to remove", s.key)
	}
	reg.Remove(s.key)
	s.conn.Close()
}

// buildMessage constructs an outbound Message bound for one or more
// sinks. Fan-out Messages are deliberately not pool-backed: several
// Session goroutines may read the same instance concurrently, which
// would race against returning it to messagePool for reuse.
func buildMessage(source string, cmd Command) *Message {
	return &Message{Source: source, Command: cmd}
}
