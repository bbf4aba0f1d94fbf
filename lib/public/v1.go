// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package public

import (
	"crypto"
	"crypto/rsa"
	"crypto/sha512"
	"fmt"
	"io"

	"github.com/bureau-foundation/paseto/lib/pae"
	"github.com/bureau-foundation/paseto/lib/tokenerr"
	"github.com/bureau-foundation/paseto/lib/wire"
)

// RSAModulusBits is the only modulus size v1 accepts.
const RSAModulusBits = 2048

var v1Header = wire.Header(wire.V1, wire.Public)

var v1PSSOptions = &rsa.PSSOptions{
	SaltLength: rsa.PSSSaltLengthEqualsHash,
	Hash:       crypto.SHA384,
}

type v1Suite struct{}

func (v1Suite) Version() wire.Version { return wire.V1 }

func (v1Suite) Sign(privateKey crypto.PrivateKey, message, footer, assertion []byte, random io.Reader) ([]byte, error) {
	key, ok := privateKey.(*rsa.PrivateKey)
	if !ok || key == nil {
		return nil, tokenerr.Newf(tokenerr.InvalidKey, "key", "v1 signing key is %s, want *rsa.PrivateKey", describeKey(privateKey))
	}
	if err := checkRSAModulus(&key.PublicKey); err != nil {
		return nil, err
	}
	if err := rejectAssertion(assertion); err != nil {
		return nil, err
	}

	digest := sha512.Sum384(pae.Encode(v1Header, message, footer))
	signature, err := rsa.SignPSS(random, key, crypto.SHA384, digest[:], v1PSSOptions)
	if err != nil {
		return nil, fmt.Errorf("signing v1 token: %w", err)
	}
	return concat(message, signature), nil
}

func (suite v1Suite) Open(publicKey crypto.PublicKey, payload, footer, assertion []byte) ([]byte, error) {
	size, err := suite.SignatureSize(publicKey)
	if err != nil {
		return nil, err
	}
	if err := rejectAssertion(assertion); err != nil {
		return nil, err
	}
	message, signature, err := splitPayload(payload, size, wire.V1)
	if err != nil {
		return nil, err
	}

	digest := sha512.Sum384(pae.Encode(v1Header, message, footer))
	if err := rsa.VerifyPSS(publicKey.(*rsa.PublicKey), crypto.SHA384, digest[:], signature, v1PSSOptions); err != nil {
		return nil, tokenerr.New(tokenerr.Verification, "crypto", err)
	}
	return cloneMessage(message), nil
}

func (v1Suite) SignatureSize(publicKey crypto.PublicKey) (int, error) {
	key, ok := publicKey.(*rsa.PublicKey)
	if !ok || key == nil {
		return 0, tokenerr.Newf(tokenerr.InvalidKey, "key", "v1 verification key is %s, want *rsa.PublicKey", describeKey(publicKey))
	}
	if err := checkRSAModulus(key); err != nil {
		return 0, err
	}
	return key.Size(), nil
}

func checkRSAModulus(key *rsa.PublicKey) error {
	if key.N == nil || key.N.BitLen() != RSAModulusBits {
		bits := 0
		if key.N != nil {
			bits = key.N.BitLen()
		}
		return tokenerr.Newf(tokenerr.InvalidKey, "key", "v1 RSA modulus is %d bits, want %d", bits, RSAModulusBits)
	}
	return nil
}

func rejectAssertion(assertion []byte) error {
	if len(assertion) > 0 {
		return tokenerr.Newf(tokenerr.Malformed, "assertion", "implicit assertions are not defined for v1")
	}
	return nil
}
