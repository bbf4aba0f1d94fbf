// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package public implements the asymmetric ("public") token purpose:
// the payload is the plaintext message followed by a signature over
// the pre-authentication encoding of header, message, and footer.
//
// v1 signs with RSASSA-PSS (SHA-384, MGF1-SHA-384, 48-byte salt) under
// a 2048-bit RSA key. v2 signs with Ed25519. For v2 an optional
// implicit assertion (bytes the verifier knows out of band, never
// transmitted) is appended as a fourth PAE piece when non-empty. v1
// defines no implicit assertion and rejects one.
//
// The message in a public token is readable by anyone. Only its
// integrity and origin are protected.
package public
