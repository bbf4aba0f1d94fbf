// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package local

import (
	"fmt"
	"io"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/chacha20poly1305"

	"github.com/bureau-foundation/paseto/lib/pae"
	"github.com/bureau-foundation/paseto/lib/tokenerr"
	"github.com/bureau-foundation/paseto/lib/wire"
)

var v2Header = wire.Header(wire.V2, wire.Local)

type v2Suite struct{}

func (v2Suite) Version() wire.Version { return wire.V2 }
func (v2Suite) NonceSize() int        { return chacha20poly1305.NonceSizeX }
func (v2Suite) TagSize() int          { return chacha20poly1305.Overhead }

func (v2Suite) Seal(key, plaintext, footer []byte, random io.Reader) ([]byte, error) {
	if err := checkKey(key); err != nil {
		return nil, err
	}
	seed, err := readSeed(random, chacha20poly1305.NonceSizeX)
	if err != nil {
		return nil, err
	}

	hash, err := blake2b.New(chacha20poly1305.NonceSizeX, seed)
	if err != nil {
		return nil, fmt.Errorf("creating BLAKE2b nonce hash: %w", err)
	}
	hash.Write(plaintext)
	nonce := hash.Sum(nil)

	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, fmt.Errorf("creating XChaCha20-Poly1305 cipher: %w", err)
	}

	// Seal appends ciphertext ‖ tag after the nonce prefix.
	output := make([]byte, chacha20poly1305.NonceSizeX, chacha20poly1305.NonceSizeX+len(plaintext)+aead.Overhead())
	copy(output, nonce)
	return aead.Seal(output, nonce, plaintext, pae.Encode(v2Header, nonce, footer)), nil
}

func (suite v2Suite) Open(key, payload, footer []byte) ([]byte, error) {
	if err := checkKey(key); err != nil {
		return nil, err
	}
	if err := checkPayload(payload, suite); err != nil {
		return nil, err
	}

	nonce := payload[:chacha20poly1305.NonceSizeX]
	ciphertext := payload[chacha20poly1305.NonceSizeX:]

	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, fmt.Errorf("creating XChaCha20-Poly1305 cipher: %w", err)
	}
	plaintext, err := aead.Open(nil, nonce, ciphertext, pae.Encode(v2Header, nonce, footer))
	if err != nil {
		return nil, tokenerr.New(tokenerr.Decryption, "crypto", err)
	}
	if plaintext == nil {
		plaintext = []byte{}
	}
	return plaintext, nil
}
