// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"bytes"
	"encoding/hex"
	"fmt"
)

// MustHex decodes a hex fixture, failing the test on malformed input.
//
//	key := testutil.MustHex(t, "707172737475767778797a7b7c7d7e7f808182838485868788898a8b8c8d8e8f")
func MustHex(t interface {
	Helper()
	Fatalf(format string, args ...any)
}, encoded string) []byte {
	t.Helper()
	decoded, err := hex.DecodeString(encoded)
	if err != nil {
		t.Fatalf("decoding hex fixture: %v", err)
	}
	return decoded
}

// RequireBytesEqual fails the test when got and want differ, printing
// both in hex.
//
//	testutil.RequireBytesEqual(t, plaintext, want, "decrypting %s", name)
func RequireBytesEqual(t interface {
	Helper()
	Fatalf(format string, args ...any)
}, got, want []byte, msgAndArgs ...any) {
	t.Helper()
	if !bytes.Equal(got, want) {
		t.Fatalf("%s: got %x, want %x", formatMessage(msgAndArgs), got, want)
	}
}

// formatMessage formats optional message arguments into a string.
// Accepts either a single string or a format string followed by args.
func formatMessage(msgAndArgs []any) string {
	if len(msgAndArgs) == 0 {
		return "(no message)"
	}
	if len(msgAndArgs) == 1 {
		if s, ok := msgAndArgs[0].(string); ok {
			return s
		}
		return fmt.Sprintf("%v", msgAndArgs[0])
	}
	if format, ok := msgAndArgs[0].(string); ok {
		return fmt.Sprintf(format, msgAndArgs[1:]...)
	}
	return fmt.Sprintf("%v", msgAndArgs)
}
