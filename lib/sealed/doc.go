// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package sealed encrypts token key files at rest with age.
//
// A sealed key file is an ASCII-armored age file ("-----BEGIN AGE
// ENCRYPTED FILE-----") whose plaintext is the key exactly as the
// unsealed file would hold it (hex for symmetric and Ed25519 keys, PEM
// for RSA). The command-line tool seals secret keys at generation time
// when given recipients, and transparently unseals them on load when
// an age identity file is configured.
//
// Identities and unsealed plaintext are handled as *secret.Buffer
// values: mmap-backed, locked against swap, zeroed on close.
package sealed
