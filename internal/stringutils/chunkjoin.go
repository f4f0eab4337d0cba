// Copyright (c) 2024, ircore authors.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package stringutils holds small text helpers shared by the wire
// protocol layer.
package stringutils

import "strings"

// ChunkJoin joins items with sep, splitting into multiple strings
// whenever appending the next item would push a chunk past maxLength.
// It is used to split the RPL_ISUPPORT token list across several
// lines that each fit within the protocol's line-length limit.
func ChunkJoin(items []string, sep string, maxLength int) []string {
	if len(items) == 0 {
		return nil
	}

	var chunks []string
	var b strings.Builder

	for i, item := range items {
		grow := len(item)
		if b.Len() > 0 {
			grow += len(sep)
		}

		if b.Len() > 0 && b.Len()+grow > maxLength {
			chunks = append(chunks, b.String())
			b.Reset()
		}

		if b.Len() > 0 {
			b.WriteString(sep)
		}
		b.WriteString(item)

		if i == len(items)-1 {
			chunks = append(chunks, b.String())
		}
	}

	return chunks
}
