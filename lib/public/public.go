// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package public

import (
	"bytes"
	"crypto"
	"crypto/ed25519"
	"crypto/rand"
	"crypto/rsa"
	"fmt"
	"io"

	"github.com/bureau-foundation/paseto/lib/b64url"
	"github.com/bureau-foundation/paseto/lib/tokenerr"
	"github.com/bureau-foundation/paseto/lib/wire"
)

// Suite is the per-version public construction. Payloads are raw
// message ‖ signature bytes.
type Suite interface {
	Version() wire.Version

	// Sign returns message ‖ signature. random is used only where the
	// signature scheme is randomized (v1 PSS salt).
	Sign(privateKey crypto.PrivateKey, message, footer, assertion []byte, random io.Reader) ([]byte, error)

	// Open verifies payload and returns the signed message. It returns
	// either the message or an error, never both.
	Open(publicKey crypto.PublicKey, payload, footer, assertion []byte) ([]byte, error)

	// SignatureSize is the signature length for publicKey, or an
	// InvalidKey error if the key does not fit this version.
	SignatureSize(publicKey crypto.PublicKey) (int, error)
}

// SuiteFor returns the public suite for version.
func SuiteFor(version wire.Version) (Suite, error) {
	switch version {
	case wire.V1:
		return v1Suite{}, nil
	case wire.V2:
		return v2Suite{}, nil
	default:
		return nil, tokenerr.Newf(tokenerr.UnknownVersion, "version", "no public suite for %v", version)
	}
}

// Sign signs message and returns the base64url payload segment. A nil
// random uses crypto/rand.
func Sign(privateKey crypto.PrivateKey, message, footer, assertion []byte, version wire.Version, random io.Reader) (string, error) {
	suite, err := SuiteFor(version)
	if err != nil {
		return "", err
	}
	if random == nil {
		random = rand.Reader
	}
	payload, err := suite.Sign(privateKey, message, footer, assertion, random)
	if err != nil {
		return "", err
	}
	return b64url.Encode(payload), nil
}

// Verify decodes a payload segment, checks its signature, and returns
// the signed message.
func Verify(publicKey crypto.PublicKey, segment string, footer, assertion []byte, version wire.Version) ([]byte, error) {
	suite, err := SuiteFor(version)
	if err != nil {
		return nil, err
	}
	payload, err := b64url.Decode(segment)
	if err != nil {
		return nil, tokenerr.New(tokenerr.Encoding, "payload", err)
	}
	return suite.Open(publicKey, payload, footer, assertion)
}

// splitPayload separates message and signature after checking that
// payload can hold a signature of size bytes.
func splitPayload(payload []byte, size int, version wire.Version) (message, signature []byte, err error) {
	if len(payload) < size {
		return nil, nil, tokenerr.Newf(tokenerr.Malformed, "payload",
			"%s public payload is %d bytes, minimum is %d (signature)", version, len(payload), size)
	}
	split := len(payload) - size
	return payload[:split], payload[split:], nil
}

// IsNilKey reports whether key holds no key material: an untyped nil,
// a nil *rsa.PrivateKey or *rsa.PublicKey, or an empty Ed25519 key.
// Such keys satisfy a type assertion and a != nil check but cannot
// sign or verify.
func IsNilKey(key any) bool {
	switch typed := key.(type) {
	case nil:
		return true
	case *rsa.PrivateKey:
		return typed == nil
	case *rsa.PublicKey:
		return typed == nil
	case ed25519.PrivateKey:
		return len(typed) == 0
	case ed25519.PublicKey:
		return len(typed) == 0
	default:
		return false
	}
}

// describeKey names a key's type for error messages, distinguishing a
// typed nil from a populated key.
func describeKey(key any) string {
	if key != nil && IsNilKey(key) {
		return fmt.Sprintf("a nil %T", key)
	}
	return fmt.Sprintf("%T", key)
}

func concat(message, signature []byte) []byte {
	output := make([]byte, 0, len(message)+len(signature))
	output = append(output, message...)
	return append(output, signature...)
}

func cloneMessage(message []byte) []byte {
	if len(message) == 0 {
		return []byte{}
	}
	return bytes.Clone(message)
}
