// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package secret holds token key material in memory the garbage
// collector never sees.
//
// [Buffer] allocates outside the Go heap via mmap(MAP_ANONYMOUS), locks
// the pages into RAM with mlock (no swap), and marks them
// MADV_DONTDUMP (no core dumps). Close zeroes, unlocks, and unmaps. A
// symmetric key or private key read from disk by the command-line tool
// goes straight into a Buffer and is borrowed from there for each
// cryptographic call.
//
// [ReadFromPath] loads a key file, or standard input for "-", into a
// Buffer with surrounding whitespace trimmed.
//
// Depends on golang.org/x/sys/unix. No dependencies inside this module.
package secret
