// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"errors"
	"io"
)

// ZeroReader returns a reader that yields an endless stream of zero
// bytes. Published null-key vectors are generated with an all-zero
// nonce seed, so encrypting with ZeroReader reproduces them exactly.
func ZeroReader() io.Reader { return zeroReader{} }

type zeroReader struct{}

func (zeroReader) Read(buffer []byte) (int, error) {
	clear(buffer)
	return len(buffer), nil
}

// ErrExhausted is returned by a FixedReader once its bytes are used up.
var ErrExhausted = errors.New("testutil: fixed reader exhausted")

// FixedReader returns a reader that yields exactly data and then fails
// with [ErrExhausted]. Use it to pin a nonce seed, and to check that a
// short randomness source surfaces as an error instead of a weak nonce.
func FixedReader(data []byte) io.Reader {
	return &fixedReader{remaining: append([]byte(nil), data...)}
}

type fixedReader struct {
	remaining []byte
}

func (r *fixedReader) Read(buffer []byte) (int, error) {
	if len(r.remaining) == 0 {
		return 0, ErrExhausted
	}
	count := copy(buffer, r.remaining)
	r.remaining = r.remaining[count:]
	return count, nil
}
