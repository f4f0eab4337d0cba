// Copyright (c) 2024, ircore authors.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ircore

import (
	"bytes"
	"strings"
)

// Message is the wire unit exchanged with a client: an optional
// source, a tagged Command, and an optional tag set. See command.go
// for the set of recognized Command variants.
type Message struct {
	Source  string
	Command Command
	Tags    map[string]string
}

// String returns the IRC-formatted string form of the message.
func (msg *Message) String() string {
	return msg.Render()
}

// Render returns the IRC-formatted string form of the message.
func (msg *Message) Render() string {
	buf := msg.RenderBuffer()
	defer bufPool.Put(buf)
	return buf.String()
}

// RenderBuffer serializes the message into a pooled *bytes.Buffer.
// Callers that do not immediately consume the buffer's bytes should
// return it to the pool themselves with bufPool.Put once done.
func (msg *Message) RenderBuffer() *bytes.Buffer {
	buf := bufPool.Get()

	if len(msg.Tags) > 0 {
		buf.WriteByte('@')
		first := true
		for k, v := range msg.Tags {
			if !first {
				buf.WriteByte(';')
			}
			first = false
			buf.WriteString(k)
			if v != "" {
				buf.WriteByte('=')
				buf.WriteString(v)
			}
		}
		buf.WriteByte(' ')
	}

	if msg.Source != "" {
		buf.WriteByte(':')
		buf.WriteString(msg.Source)
		buf.WriteByte(' ')
	}

	buf.WriteString(msg.Command.Token())

	params, trailing, mode := msg.Command.wireParams()
	for _, p := range params {
		buf.WriteByte(' ')
		buf.WriteString(p)
	}

	switch mode {
	case forcedTrailing:
		buf.WriteByte(' ')
		buf.WriteByte(':')
		buf.WriteString(trailing)
	case bareTrailing:
		buf.WriteByte(' ')
		if trailing == "" || strings.Contains(trailing, " ") || strings.HasPrefix(trailing, ":") {
			buf.WriteByte(':')
		}
		buf.WriteString(trailing)
	case noTrailing:
	}

	buf.WriteString("\r\n")
	return buf
}

// Scrub clears the message so it is safe to reuse from messagePool.
func (msg *Message) Scrub() {
	msg.Source = ""
	msg.Command = nil
	msg.Tags = nil
}
