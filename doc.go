// Copyright (c) 2024, ircore authors.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package ircore implements the connection-handling, wire-protocol, and
// routing core of an IRC server: accepting TCP clients, framing and
// parsing the line-oriented protocol, driving each connection through
// registration, and fanning messages out to nicknames and channels
// through a shared registry. It does not implement channel modes, user
// modes, operator privileges, or server-to-server linking; see the
// package's design notes for the full list of what is in and out of
// scope.
package ircore
