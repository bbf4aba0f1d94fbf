// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package pae implements pre-authentication encoding: the canonical,
// length-prefixed serialization of an ordered list of byte strings that
// every token MAC, AEAD, and signature is computed over.
//
// The encoding is the little-endian 64-bit piece count followed, for
// each piece, by its little-endian 64-bit length and its raw bytes:
//
//	LE64(n) ‖ LE64(len(p1)) ‖ p1 ‖ … ‖ LE64(len(pn)) ‖ pn
//
// Because every boundary is explicit, two lists encode identically only
// if they have the same pieces in the same order. Concatenation of
// ("ab", "c") and ("a", "bc") collide; their encodings do not.
package pae

import "encoding/binary"

// Encode returns the pre-authentication encoding of pieces. A nil piece
// and an empty piece encode identically (length zero).
func Encode(pieces ...[]byte) []byte {
	size := 8 + 8*len(pieces)
	for _, piece := range pieces {
		size += len(piece)
	}

	output := make([]byte, 0, size)
	output = appendLE64(output, len(pieces))
	for _, piece := range pieces {
		output = appendLE64(output, len(piece))
		output = append(output, piece...)
	}
	return output
}

// appendLE64 appends n as an unsigned little-endian 64-bit integer with
// the most significant bit cleared, matching the reference encoding's
// guard for platforms without unsigned 64-bit integers.
func appendLE64(output []byte, n int) []byte {
	return binary.LittleEndian.AppendUint64(output, uint64(n)&^(1<<63))
}
