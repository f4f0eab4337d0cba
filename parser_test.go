// Copyright (c) 2024, ircore authors.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ircore

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseOutcomes(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		outcome ParseOutcome
		command string
	}{
		{"empty line", "", OutcomeSilentDiscard, ""},
		{"whitespace only", "   ", OutcomeSilentDiscard, ""},
		{"unknown command", "FROB a b c", OutcomeSilentDiscard, ""},
		{"invalid utf8", string([]byte{0xff, 0xfe, 0xfd}), OutcomeSilentDiscard, ""},
		{"nick missing argument", "NICK", OutcomeNoNicknameGiven, ""},
		{"ping missing argument", "PING", OutcomeNeedMoreParams, "PING"},
		{"privmsg no text", "PRIVMSG nick2", OutcomeNoTextToSend, ""},
		{"user missing fields", "USER only_one_field", OutcomeSilentDiscard, ""},
		{"valid privmsg", "PRIVMSG nick2 :hello", OutcomeMessage, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, outcome, command := Parse([]byte(tt.line))
			assert.Equal(t, tt.outcome, outcome)
			assert.Equal(t, tt.command, command)
			if outcome == OutcomeMessage {
				assert.NotNil(t, msg)
				defer releaseMessage(msg)
			} else {
				assert.Nil(t, msg)
			}
		})
	}
}

func TestParseStripsSourcePrefix(t *testing.T) {
	msg, outcome, _ := Parse([]byte(":nick1 PRIVMSG nick2 :hello"))
	assert.Equal(t, OutcomeMessage, outcome)
	assert.Equal(t, "nick1", msg.Source)
	assert.Equal(t, PrivmsgCommand{Targets: []string{"nick2"}, Text: "hello"}, msg.Command)
	releaseMessage(msg)
}

func TestParseCollapsesRepeatedSpaces(t *testing.T) {
	// Tokenizing on single spaces drops the empty tokens a run of
	// spaces produces, so repeated spaces collapse throughout the
	// line, trailing text included, before it is rejoined.
	msg, outcome, _ := Parse([]byte("PRIVMSG  nick2   :hello  there"))
	assert.Equal(t, OutcomeMessage, outcome)
	assert.Equal(t, PrivmsgCommand{Targets: []string{"nick2"}, Text: "hello there"}, msg.Command)
	releaseMessage(msg)
}
