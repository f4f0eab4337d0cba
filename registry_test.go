// Copyright (c) 2024, ircore authors.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ircore

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestRegistry(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Registry Suite")
}

func newTestSink() *Sink {
	return newSink(DefaultSinkCapacity)
}

var _ = Describe("Registry", func() {
	var reg *Registry

	BeforeEach(func() {
		reg = NewRegistry()
	})

	Describe("InsertAddress", func() {
		It("accepts a fresh address key", func() {
			Expect(reg.InsertAddress("1.2.3.4:5", newTestSink())).To(Succeed())
		})

		It("rejects a second insert under the same address", func() {
			addr := "1.2.3.4:5"
			Expect(reg.InsertAddress(addr, newTestSink())).To(Succeed())
			Expect(reg.InsertAddress(addr, newTestSink())).To(MatchError(ErrAddressInUse))
		})
	})

	Describe("RenameToNick", func() {
		It("moves the sink from its address key to the nickname", func() {
			addr := "1.2.3.4:5"
			sink := newTestSink()
			Expect(reg.InsertAddress(addr, sink)).To(Succeed())

			Expect(reg.RenameToNick(addr, "nick1")).To(Succeed())

			_, stillAtAddr := reg.Lookup(addr)
			Expect(stillAtAddr).To(BeFalse())

			found, ok := reg.Lookup("nick1")
			Expect(ok).To(BeTrue())
			Expect(found).To(BeIdenticalTo(sink))
		})

		It("fails and leaves state untouched when the nickname is taken", func() {
			Expect(reg.InsertAddress("addr1", newTestSink())).To(Succeed())
			Expect(reg.InsertAddress("addr2", newTestSink())).To(Succeed())
			Expect(reg.RenameToNick("addr1", "nick1")).To(Succeed())

			err := reg.RenameToNick("addr2", "nick1")
			Expect(err).To(MatchError(ErrNickInUse))

			_, stillAtAddr2 := reg.Lookup("addr2")
			Expect(stillAtAddr2).To(BeTrue())
		})
	})

	Describe("channel membership", func() {
		It("creates a channel on first add and accumulates members in order", func() {
			members := reg.ChannelAddMember("#c", "nick1")
			Expect(members).To(Equal([]string{"nick1"}))

			members = reg.ChannelAddMember("#c", "nick2")
			Expect(members).To(Equal([]string{"nick1", "nick2"}))
		})

		It("reports no channel for an unknown name", func() {
			_, ok := reg.ChannelLookup("#nope")
			Expect(ok).To(BeFalse())
		})
	})

	Describe("Fanout", func() {
		It("resolves a direct nickname excluding the sender", func() {
			s1, s2 := newTestSink(), newTestSink()
			Expect(reg.InsertAddress("a1", s1)).To(Succeed())
			Expect(reg.RenameToNick("a1", "nick1")).To(Succeed())
			Expect(reg.InsertAddress("a2", s2)).To(Succeed())
			Expect(reg.RenameToNick("a2", "nick2")).To(Succeed())

			sinks := reg.Fanout([]string{"nick2"}, "nick1")
			Expect(sinks).To(ConsistOf(s2))

			sinks = reg.Fanout([]string{"nick1"}, "nick1")
			Expect(sinks).To(BeEmpty())
		})

		It("resolves a channel to its members, excluding the sender, deduplicated", func() {
			s1, s2 := newTestSink(), newTestSink()
			Expect(reg.InsertAddress("a1", s1)).To(Succeed())
			Expect(reg.RenameToNick("a1", "nick1")).To(Succeed())
			Expect(reg.InsertAddress("a2", s2)).To(Succeed())
			Expect(reg.RenameToNick("a2", "nick2")).To(Succeed())

			reg.ChannelAddMember("#c", "nick1")
			reg.ChannelAddMember("#c", "nick2")

			sinks := reg.Fanout([]string{"#c"}, "nick1")
			Expect(sinks).To(ConsistOf(s2))

			sinks = reg.Fanout([]string{"#c", "nick2"}, "nick1")
			Expect(sinks).To(ConsistOf(s2))
		})
	})
})
