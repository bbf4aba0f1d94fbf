// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package public

import (
	"crypto"
	"crypto/ed25519"
	"io"

	"github.com/bureau-foundation/paseto/lib/pae"
	"github.com/bureau-foundation/paseto/lib/tokenerr"
	"github.com/bureau-foundation/paseto/lib/wire"
)

var v2Header = wire.Header(wire.V2, wire.Public)

type v2Suite struct{}

func (v2Suite) Version() wire.Version { return wire.V2 }

func (v2Suite) Sign(privateKey crypto.PrivateKey, message, footer, assertion []byte, _ io.Reader) ([]byte, error) {
	key, ok := privateKey.(ed25519.PrivateKey)
	if !ok {
		return nil, tokenerr.Newf(tokenerr.InvalidKey, "key", "v2 signing key is %s, want ed25519.PrivateKey", describeKey(privateKey))
	}
	if len(key) != ed25519.PrivateKeySize {
		return nil, tokenerr.Newf(tokenerr.InvalidKey, "key", "v2 signing key is %d bytes, want %d", len(key), ed25519.PrivateKeySize)
	}
	signature := ed25519.Sign(key, v2Input(message, footer, assertion))
	return concat(message, signature), nil
}

func (suite v2Suite) Open(publicKey crypto.PublicKey, payload, footer, assertion []byte) ([]byte, error) {
	size, err := suite.SignatureSize(publicKey)
	if err != nil {
		return nil, err
	}
	message, signature, err := splitPayload(payload, size, wire.V2)
	if err != nil {
		return nil, err
	}
	if !ed25519.Verify(publicKey.(ed25519.PublicKey), v2Input(message, footer, assertion), signature) {
		return nil, tokenerr.New(tokenerr.Verification, "crypto", nil)
	}
	return cloneMessage(message), nil
}

func (v2Suite) SignatureSize(publicKey crypto.PublicKey) (int, error) {
	key, ok := publicKey.(ed25519.PublicKey)
	if !ok {
		return 0, tokenerr.Newf(tokenerr.InvalidKey, "key", "v2 verification key is %s, want ed25519.PublicKey", describeKey(publicKey))
	}
	if len(key) != ed25519.PublicKeySize {
		return 0, tokenerr.Newf(tokenerr.InvalidKey, "key", "v2 verification key is %d bytes, want %d", len(key), ed25519.PublicKeySize)
	}
	return ed25519.SignatureSize, nil
}

// v2Input is the signed byte string. An empty assertion leaves the
// three-piece encoding unchanged so tokens without one interoperate.
func v2Input(message, footer, assertion []byte) []byte {
	if len(assertion) == 0 {
		return pae.Encode(v2Header, message, footer)
	}
	return pae.Encode(v2Header, message, footer, assertion)
}
