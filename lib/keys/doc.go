// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package keys generates, encodes, parses, identifies, and stores the
// key material each token version and purpose uses:
//
//	v1.local, v2.local   32-byte symmetric key, hex
//	v1.public            RSA-2048, PKCS#8 / PKIX PEM
//	v2.public            Ed25519, hex (64-byte secret key, 32-byte public key)
//
// [ID] derives a short public fingerprint for a key with BLAKE3 in
// derive-key mode, suitable for a "kid" footer. Fingerprints of
// different keys never reveal the key material and are stable across
// encodings.
//
// Key files follow the usual split: the secret half is written with
// 0600 permissions (optionally sealed to age recipients via
// lib/sealed) and the public half with 0644.
package keys
