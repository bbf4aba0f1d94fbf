// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package tokenerr defines the failure taxonomy shared by every stage of
// token parsing and construction.
//
// Each failure is an [*Error] carrying a [Kind] (what went wrong) and a
// stage name (where it went wrong: "split", "version", "payload",
// "crypto", "claims", ...). Callers match on kind with errors.Is against
// the exported sentinels:
//
//	token, err := parser.Parse(raw)
//	if errors.Is(err, tokenerr.ErrDecryption) {
//	    // wrong key or tampered token; the two are indistinguishable
//	}
//
// Decryption and Verification errors deliberately carry no detail beyond
// the stage: they never wrap the primitive's error, never include nonce,
// tag, or key bytes, and never distinguish a wrong key from a modified
// token.
//
// Rejected is the one kind raised after authentication succeeded: a
// claim rule (expiry, issuer, audience, revocation) refused the token.
// It wraps the rule's error so callers can match claims.ErrExpired and
// friends through the same chain.
//
// This package has no dependencies outside the standard library.
package tokenerr
