// Copyright (c) 2024, ircore authors.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ircore

import (
	"fmt"
	"strings"
)

// trailingMode tells the codec how to decide whether a command's
// trailing field needs its leading colon. Most commands whose last
// field is free text (message bodies, reasons, numeric-reply phrases)
// always mark it, since a future edit could introduce a space; a
// couple of single-token fields like PING/PONG's token omit the colon
// unless the content actually requires it, matching on-the-wire
// convention for those two commands specifically.
type trailingMode int

const (
	noTrailing trailingMode = iota
	bareTrailing
	forcedTrailing
)

// Command is the tagged variant carried by a Message. Every recognized
// client command and every server numeric reply implements it. The
// interface is sealed by an unexported method: only types declared in
// this package may be a Command, which keeps Message.Command an
// exhaustive switch at every call site.
type Command interface {
	// Token returns the wire command token: a verb like "PING" or a
	// zero-padded three digit numeric like "433".
	Token() string

	// wireParams splits the command's fields into positional
	// parameters and an optional trailing parameter, the shape the
	// codec needs to serialize a line.
	wireParams() (params []string, trailing string, mode trailingMode)

	ircCommand()
}

// CapCommand is the IRCv3 capability negotiation envelope. This core
// only ever acknowledges it; see Session.handleCap.
type CapCommand struct {
	Sub  string
	Args []string
}

func (CapCommand) Token() string { return "CAP" }
func (CapCommand) ircCommand()   {}

func (c CapCommand) wireParams() ([]string, string, trailingMode) {
	if len(c.Args) == 0 {
		return []string{c.Sub}, "", noTrailing
	}
	return []string{c.Sub}, strings.Join(c.Args, " "), forcedTrailing
}

// PassCommand carries the connection password sent before registration.
type PassCommand struct {
	Password string
}

func (PassCommand) Token() string { return "PASS" }
func (PassCommand) ircCommand()   {}

func (c PassCommand) wireParams() ([]string, string, trailingMode) {
	return []string{c.Password}, "", noTrailing
}

// NickCommand requests a nickname, at registration or afterward.
type NickCommand struct {
	Nickname string
}

func (NickCommand) Token() string { return "NICK" }
func (NickCommand) ircCommand()   {}

func (c NickCommand) wireParams() ([]string, string, trailingMode) {
	return []string{c.Nickname}, "", noTrailing
}

// UserCommand supplies the remaining registration identity fields.
// Mode and Unused are accepted but unused beyond storage, matching
// RFC 2812's historical USER grammar.
type UserCommand struct {
	User     string
	Mode     string
	Unused   string
	Realname string
}

func (UserCommand) Token() string { return "USER" }
func (UserCommand) ircCommand()   {}

func (c UserCommand) wireParams() ([]string, string, trailingMode) {
	return []string{c.User, c.Mode, c.Unused}, c.Realname, forcedTrailing
}

// PingCommand is a liveness probe that must be answered with PONG
// carrying the same token.
type PingCommand struct {
	Data string
}

func (PingCommand) Token() string { return "PING" }
func (PingCommand) ircCommand()   {}

func (c PingCommand) wireParams() ([]string, string, trailingMode) {
	return nil, c.Data, bareTrailing
}

// PongCommand answers a PING, or is sent unsolicited by a client.
type PongCommand struct {
	Server string
	Data   string
}

func (PongCommand) Token() string { return "PONG" }
func (PongCommand) ircCommand()   {}

func (c PongCommand) wireParams() ([]string, string, trailingMode) {
	if c.Server == "" {
		return nil, c.Data, bareTrailing
	}
	return []string{c.Server}, c.Data, bareTrailing
}

// OperCommand requests operator privileges. This core parses and
// acknowledges it but grants no privilege (see spec Non-goals).
type OperCommand struct {
	Name     string
	Password string
}

func (OperCommand) Token() string { return "OPER" }
func (OperCommand) ircCommand()   {}

func (c OperCommand) wireParams() ([]string, string, trailingMode) {
	return []string{c.Name, c.Password}, "", noTrailing
}

// QuitCommand requests an orderly disconnect.
type QuitCommand struct {
	Reason string
}

func (QuitCommand) Token() string { return "QUIT" }
func (QuitCommand) ircCommand()   {}

func (c QuitCommand) wireParams() ([]string, string, trailingMode) {
	if c.Reason == "" {
		return nil, "", noTrailing
	}
	return nil, c.Reason, forcedTrailing
}

// ErrorCommand is the server-to-client fatal notice sent immediately
// before closing a connection.
type ErrorCommand struct {
	Reason string
}

func (ErrorCommand) Token() string { return "ERROR" }
func (ErrorCommand) ircCommand()   {}

func (c ErrorCommand) wireParams() ([]string, string, trailingMode) {
	return nil, c.Reason, forcedTrailing
}

// JoinCommand requests membership in one or more channels. Keys is
// parallel to Channels when present; this core does not enforce keys
// (no channel modes, see spec Non-goals) but retains the field for
// round-trip fidelity.
type JoinCommand struct {
	Channels []string
	Keys     []string
}

func (JoinCommand) Token() string { return "JOIN" }
func (JoinCommand) ircCommand()   {}

func (c JoinCommand) wireParams() ([]string, string, trailingMode) {
	params := []string{strings.Join(c.Channels, ",")}
	if len(c.Keys) > 0 {
		params = append(params, strings.Join(c.Keys, ","))
	}
	return params, "", noTrailing
}

// PrivmsgCommand delivers Text to every name in Targets, each of which
// may be a nickname or a channel name.
type PrivmsgCommand struct {
	Targets []string
	Text    string
}

func (PrivmsgCommand) Token() string { return "PRIVMSG" }
func (PrivmsgCommand) ircCommand()   {}

func (c PrivmsgCommand) wireParams() ([]string, string, trailingMode) {
	return []string{strings.Join(c.Targets, ",")}, c.Text, forcedTrailing
}

// WhoCommand requests a membership listing for a channel mask.
type WhoCommand struct {
	Mask string
}

func (WhoCommand) Token() string { return "WHO" }
func (WhoCommand) ircCommand()   {}

func (c WhoCommand) wireParams() ([]string, string, trailingMode) {
	return []string{c.Mask}, "", noTrailing
}

// NumericReply is the single variant realizing every server numeric:
// a three-digit code, the client it addresses (the first parameter of
// every numeric reply per RFC 2812), any additional positional
// parameters, and an optional trailing parameter.
type NumericReply struct {
	Code     Numeric
	Client   string
	Params   []string
	Trailing string
}

func (r NumericReply) Token() string { return fmt.Sprintf("%03d", r.Code) }
func (NumericReply) ircCommand()     {}

func (r NumericReply) wireParams() ([]string, string, trailingMode) {
	params := append([]string{r.Client}, r.Params...)
	if r.Trailing == "" {
		return params, "", noTrailing
	}
	return params, r.Trailing, forcedTrailing
}

// numericf builds a NumericReply whose trailing text is the canonical
// fixed phrase for code, with params as the positional parameters
// after the client. Used for the error/info numerics whose text never
// varies with context.
func numericf(code Numeric, client string, params ...string) NumericReply {
	return NumericReply{
		Code:     code,
		Client:   client,
		Params:   params,
		Trailing: replyText[code],
	}
}
