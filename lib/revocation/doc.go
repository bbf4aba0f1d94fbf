// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package revocation tracks revoked token IDs (the jti claim) until the
// tokens they name would have expired anyway.
//
// A [List] is a thread-safe in-memory set consulted by the
// claims.NotRevoked rule. Entries carry the token's natural expiry so
// that [List.Cleanup] can drop them once keeping them is pointless:
// an expired token is rejected by claims.NotExpired regardless.
//
// Lists persist as a deterministic CBOR file via [Save] and [Load], so
// the command-line tool can maintain one across invocations.
package revocation
