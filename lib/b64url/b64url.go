// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package b64url encodes and decodes token segments: the URL-safe base64
// alphabet with no padding.
//
// Decoding is strict. The standard-alphabet characters '+' and '/', any
// '=' padding, embedded line breaks (which encoding/base64 would
// otherwise skip silently), impossible lengths, and non-zero trailing
// bits are all rejected with an error wrapping [ErrMalformedEncoding].
// A segment therefore has exactly one accepted spelling, which matters
// because segments are compared and authenticated as bytes.
package b64url

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

// ErrMalformedEncoding is wrapped by every Decode failure.
var ErrMalformedEncoding = errors.New("b64url: malformed encoding")

var encoding = base64.RawURLEncoding.Strict()

// Encode returns the unpadded URL-safe base64 encoding of data.
func Encode(data []byte) string {
	return encoding.EncodeToString(data)
}

// EncodedLen returns the length of Encode's output for n input bytes.
func EncodedLen(n int) int {
	return encoding.EncodedLen(n)
}

// Decode decodes an unpadded URL-safe base64 string. It never returns
// partial output: on error the returned slice is nil.
func Decode(segment string) ([]byte, error) {
	if index := strings.IndexAny(segment, "\r\n"); index >= 0 {
		return nil, fmt.Errorf("%w: line break at offset %d", ErrMalformedEncoding, index)
	}
	if len(segment)%4 == 1 {
		return nil, fmt.Errorf("%w: impossible length %d", ErrMalformedEncoding, len(segment))
	}

	decoded, err := encoding.DecodeString(segment)
	if err != nil {
		var corrupt base64.CorruptInputError
		if errors.As(err, &corrupt) {
			return nil, fmt.Errorf("%w: invalid input at offset %d", ErrMalformedEncoding, int64(corrupt))
		}
		return nil, fmt.Errorf("%w: %v", ErrMalformedEncoding, err)
	}
	return decoded, nil
}
