// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides shared test helpers for token packages.
//
// [ZeroReader] and [FixedReader] are deterministic randomness sources
// for known-answer tests. Production code draws randomness from
// crypto/rand; the engines accept an io.Reader so that tests can pin
// the nonce seed and compare tokens byte for byte against published
// vectors.
//
// [MustHex] decodes hex fixtures and [RequireBytesEqual] compares
// byte slices with a readable hex diff.
//
// [WriteFile] places fixtures in a per-test directory with explicit
// permissions, for key loading tests that check mode bits.
//
// [UniqueID] generates monotonically increasing identifiers for test
// disambiguation (token IDs, issuers, revocation entries).
//
// All helpers call t.Fatalf on failure rather than returning errors,
// since test setup failures are not recoverable.
//
// This package has no dependencies inside this module.
package testutil
