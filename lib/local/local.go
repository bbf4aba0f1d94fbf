// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package local

import (
	"crypto/rand"
	"fmt"
	"io"

	"github.com/bureau-foundation/paseto/lib/b64url"
	"github.com/bureau-foundation/paseto/lib/tokenerr"
	"github.com/bureau-foundation/paseto/lib/wire"
)

// KeySize is the required symmetric key length for every version.
const KeySize = 32

// Suite is the per-version local construction. Payloads passed to and
// returned from a Suite are raw bytes (nonce ‖ ciphertext ‖ tag), not
// base64url.
type Suite interface {
	Version() wire.Version

	// Seal encrypts plaintext and authenticates it together with the
	// version's local header and footer. random supplies the nonce
	// seed; it must not be nil.
	Seal(key, plaintext, footer []byte, random io.Reader) ([]byte, error)

	// Open authenticates and decrypts payload. It returns either the
	// full plaintext or an error, never both.
	Open(key, payload, footer []byte) ([]byte, error)

	// NonceSize is the length of the nonce prefix of a payload.
	NonceSize() int

	// TagSize is the length of the authentication tag suffix.
	TagSize() int
}

// SuiteFor returns the local suite for version.
func SuiteFor(version wire.Version) (Suite, error) {
	switch version {
	case wire.V1:
		return v1Suite{}, nil
	case wire.V2:
		return v2Suite{}, nil
	default:
		return nil, tokenerr.Newf(tokenerr.UnknownVersion, "version", "no local suite for %v", version)
	}
}

// Encrypt seals plaintext under key and returns the base64url payload
// segment. A nil random uses crypto/rand.
func Encrypt(key, plaintext, footer []byte, version wire.Version, random io.Reader) (string, error) {
	suite, err := SuiteFor(version)
	if err != nil {
		return "", err
	}
	if random == nil {
		random = rand.Reader
	}
	payload, err := suite.Seal(key, plaintext, footer, random)
	if err != nil {
		return "", err
	}
	return b64url.Encode(payload), nil
}

// Decrypt decodes a base64url payload segment and opens it under key.
func Decrypt(key []byte, segment string, footer []byte, version wire.Version) ([]byte, error) {
	suite, err := SuiteFor(version)
	if err != nil {
		return nil, err
	}
	payload, err := b64url.Decode(segment)
	if err != nil {
		return nil, tokenerr.New(tokenerr.Encoding, "payload", err)
	}
	return suite.Open(key, payload, footer)
}

func checkKey(key []byte) error {
	if len(key) != KeySize {
		return tokenerr.Newf(tokenerr.InvalidKey, "key", "local key is %d bytes, want %d", len(key), KeySize)
	}
	return nil
}

func checkPayload(payload []byte, suite Suite) error {
	minimum := suite.NonceSize() + suite.TagSize()
	if len(payload) < minimum {
		return tokenerr.Newf(tokenerr.Malformed, "payload",
			"%s local payload is %d bytes, minimum is %d (nonce + tag)", suite.Version(), len(payload), minimum)
	}
	return nil
}

func readSeed(random io.Reader, size int) ([]byte, error) {
	seed := make([]byte, size)
	if _, err := io.ReadFull(random, seed); err != nil {
		return nil, fmt.Errorf("reading nonce seed: %w", err)
	}
	return seed, nil
}
