// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package local

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/hmac"
	"crypto/sha512"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"

	"github.com/bureau-foundation/paseto/lib/pae"
	"github.com/bureau-foundation/paseto/lib/tokenerr"
	"github.com/bureau-foundation/paseto/lib/wire"
)

const (
	v1NonceSize = 32
	v1TagSize   = sha512.Size384
	v1SaltSize  = 16
)

// HKDF info strings for the v1 key split. Changing either invalidates
// every v1 local token.
var (
	v1InfoEncryption     = []byte("paseto-encryption-key")
	v1InfoAuthentication = []byte("paseto-auth-key-for-aead")
)

var v1Header = wire.Header(wire.V1, wire.Local)

type v1Suite struct{}

func (v1Suite) Version() wire.Version { return wire.V1 }
func (v1Suite) NonceSize() int        { return v1NonceSize }
func (v1Suite) TagSize() int          { return v1TagSize }

func (v1Suite) Seal(key, plaintext, footer []byte, random io.Reader) ([]byte, error) {
	if err := checkKey(key); err != nil {
		return nil, err
	}
	seed, err := readSeed(random, v1NonceSize)
	if err != nil {
		return nil, err
	}

	nonce := hmacSHA384(seed, plaintext)[:v1NonceSize]
	encryptionKey, authenticationKey, err := v1SplitKey(key, nonce[:v1SaltSize])
	if err != nil {
		return nil, err
	}
	block, err := aes.NewCipher(encryptionKey)
	if err != nil {
		return nil, fmt.Errorf("creating AES-256 cipher: %w", err)
	}

	// Output layout: nonce ‖ ciphertext ‖ tag.
	output := make([]byte, v1NonceSize+len(plaintext), v1NonceSize+len(plaintext)+v1TagSize)
	copy(output, nonce)
	ciphertext := output[v1NonceSize:]
	cipher.NewCTR(block, nonce[v1SaltSize:]).XORKeyStream(ciphertext, plaintext)

	tag := hmacSHA384(authenticationKey, pae.Encode(v1Header, nonce, ciphertext, footer))
	return append(output, tag...), nil
}

func (suite v1Suite) Open(key, payload, footer []byte) ([]byte, error) {
	if err := checkKey(key); err != nil {
		return nil, err
	}
	if err := checkPayload(payload, suite); err != nil {
		return nil, err
	}

	nonce := payload[:v1NonceSize]
	ciphertext := payload[v1NonceSize : len(payload)-v1TagSize]
	tag := payload[len(payload)-v1TagSize:]

	encryptionKey, authenticationKey, err := v1SplitKey(key, nonce[:v1SaltSize])
	if err != nil {
		return nil, err
	}
	expected := hmacSHA384(authenticationKey, pae.Encode(v1Header, nonce, ciphertext, footer))
	if !hmac.Equal(expected, tag) {
		return nil, tokenerr.New(tokenerr.Decryption, "crypto", nil)
	}

	block, err := aes.NewCipher(encryptionKey)
	if err != nil {
		return nil, fmt.Errorf("creating AES-256 cipher: %w", err)
	}
	plaintext := make([]byte, len(ciphertext))
	cipher.NewCTR(block, nonce[v1SaltSize:]).XORKeyStream(plaintext, ciphertext)
	return plaintext, nil
}

// v1SplitKey derives the encryption and authentication keys from the
// shared key, salted with the first half of the nonce.
func v1SplitKey(key, salt []byte) (encryptionKey, authenticationKey []byte, err error) {
	encryptionKey = make([]byte, KeySize)
	if _, err := io.ReadFull(hkdf.New(sha512.New384, key, salt, v1InfoEncryption), encryptionKey); err != nil {
		return nil, nil, fmt.Errorf("deriving v1 encryption key: %w", err)
	}
	authenticationKey = make([]byte, KeySize)
	if _, err := io.ReadFull(hkdf.New(sha512.New384, key, salt, v1InfoAuthentication), authenticationKey); err != nil {
		return nil, nil, fmt.Errorf("deriving v1 authentication key: %w", err)
	}
	return encryptionKey, authenticationKey, nil
}

func hmacSHA384(key, message []byte) []byte {
	mac := hmac.New(sha512.New384, key)
	mac.Write(message)
	return mac.Sum(nil)
}
