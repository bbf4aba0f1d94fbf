// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec provides the claim-body encodings a token payload can
// carry.
//
// A [Codec] turns a claim set into payload bytes and back. Two are
// provided:
//
//   - [JSON] is the default and the only encoding other token
//     implementations will understand. Timestamps are RFC 3339
//     strings.
//   - [CBOR] is for deployments where both ends are this module and
//     payload size matters. The encoder uses Core Deterministic
//     Encoding (RFC 8949 §4.2): sorted map keys, smallest integer
//     encoding, no indefinite-length items. Same logical claims always
//     produce identical bytes.
//
// Both decoders produce map[string]any for untyped targets so that
// claim lookup code is encoding-agnostic.
//
// The codec never sees keys or ciphertext. It runs only on payload
// bytes that have already been authenticated.
package codec
