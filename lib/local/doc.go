// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package local implements the symmetric ("local") token purpose:
// authenticated encryption of a payload under a 32-byte shared key,
// with the token header and footer bound as authenticated data.
//
// Each protocol version is a [Suite]. A suite owns its cipher
// construction, nonce derivation, and payload layout; [SuiteFor]
// selects one by version and nothing outside this package branches on
// version to do cryptography.
//
// v1 derives a 32-byte nonce as HMAC-SHA384(random, plaintext)
// truncated, splits the key with HKDF-SHA384 (salted with the first
// half of the nonce) into an AES-256-CTR key and an HMAC-SHA384 key,
// and authenticates PAE(header, nonce, ciphertext, footer). The tag is
// checked in constant time before any decryption.
//
// v2 derives a 24-byte nonce as keyed BLAKE2b(random, plaintext) and
// seals with XChaCha20-Poly1305 using PAE(header, nonce, footer) as
// additional data.
//
// Deriving the nonce from the plaintext as well as fresh randomness
// means a broken random source degrades to deterministic encryption
// rather than nonce reuse across distinct messages.
//
// Every authentication failure is reported as the same
// [tokenerr.ErrDecryption]. No partial plaintext is ever returned.
package local
