// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package keys

import (
	"bytes"
	"crypto"
	"crypto/ed25519"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/hex"
	"encoding/pem"
	"fmt"

	"github.com/zeebo/blake3"

	"github.com/bureau-foundation/paseto/lib/tokenerr"
	"github.com/bureau-foundation/paseto/lib/wire"
)

// SymmetricSize is the length of a local-purpose key.
const SymmetricSize = 32

// keyIDContext is the BLAKE3 derive-key context string. Changing it
// changes every key ID.
const keyIDContext = "paseto key identifier v1"

// Symmetric is a local-purpose key. The zero value is not a valid key.
type Symmetric struct {
	material []byte
}

// NewSymmetric copies material into a Symmetric key. The material must
// be exactly 32 bytes.
func NewSymmetric(material []byte) (Symmetric, error) {
	if len(material) != SymmetricSize {
		return Symmetric{}, tokenerr.Newf(tokenerr.InvalidKey, "key", "symmetric key is %d bytes, want %d", len(material), SymmetricSize)
	}
	return Symmetric{material: bytes.Clone(material)}, nil
}

// GenerateSymmetric returns a fresh random key.
func GenerateSymmetric() (Symmetric, error) {
	material := make([]byte, SymmetricSize)
	if _, err := rand.Read(material); err != nil {
		return Symmetric{}, fmt.Errorf("generating symmetric key: %w", err)
	}
	return Symmetric{material: material}, nil
}

// Bytes returns the key material. Callers must not modify it.
func (k Symmetric) Bytes() []byte { return k.material }

// IsZero reports whether k holds no key.
func (k Symmetric) IsZero() bool { return len(k.material) == 0 }

// ID returns the key's public fingerprint.
func (k Symmetric) ID() string { return ID(k.material) }

// ID returns the 16-byte BLAKE3 derive-key fingerprint of material,
// hex encoded.
func ID(material []byte) string {
	var out [16]byte
	blake3.DeriveKey(keyIDContext, material, out[:])
	return hex.EncodeToString(out[:])
}

// PublicID fingerprints a public key over its PKIX DER encoding, so an
// issuer and a verifier holding the same key in different file formats
// agree on the ID.
func PublicID(publicKey crypto.PublicKey) (string, error) {
	der, err := x509.MarshalPKIXPublicKey(publicKey)
	if err != nil {
		return "", tokenerr.New(tokenerr.InvalidKey, "key", err)
	}
	return ID(der), nil
}

// GenerateEd25519 returns a fresh v2 public-purpose key pair.
func GenerateEd25519() (ed25519.PublicKey, ed25519.PrivateKey, error) {
	public, private, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, nil, fmt.Errorf("generating Ed25519 key pair: %w", err)
	}
	return public, private, nil
}

// GenerateRSA returns a fresh v1 public-purpose key (2048-bit).
func GenerateRSA() (*rsa.PrivateKey, error) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		return nil, fmt.Errorf("generating RSA-2048 key: %w", err)
	}
	return key, nil
}

// ParseSymmetricHex parses a hex-encoded 32-byte key.
func ParseSymmetricHex(text []byte) (Symmetric, error) {
	material, err := decodeHex(text)
	if err != nil {
		return Symmetric{}, err
	}
	return NewSymmetric(material)
}

// ParseEd25519PrivateHex parses a hex Ed25519 secret key: either the
// 64-byte seed‖public form or a bare 32-byte seed.
func ParseEd25519PrivateHex(text []byte) (ed25519.PrivateKey, error) {
	material, err := decodeHex(text)
	if err != nil {
		return nil, err
	}
	switch len(material) {
	case ed25519.PrivateKeySize:
		key := ed25519.PrivateKey(material)
		derived := ed25519.NewKeyFromSeed(key.Seed())
		if !bytes.Equal(derived[ed25519.SeedSize:], material[ed25519.SeedSize:]) {
			return nil, tokenerr.Newf(tokenerr.InvalidKey, "key", "Ed25519 secret key has inconsistent public half")
		}
		return key, nil
	case ed25519.SeedSize:
		return ed25519.NewKeyFromSeed(material), nil
	default:
		return nil, tokenerr.Newf(tokenerr.InvalidKey, "key", "Ed25519 secret key is %d bytes, want %d or %d",
			len(material), ed25519.PrivateKeySize, ed25519.SeedSize)
	}
}

// ParseEd25519PublicHex parses a hex 32-byte Ed25519 public key.
func ParseEd25519PublicHex(text []byte) (ed25519.PublicKey, error) {
	material, err := decodeHex(text)
	if err != nil {
		return nil, err
	}
	if len(material) != ed25519.PublicKeySize {
		return nil, tokenerr.Newf(tokenerr.InvalidKey, "key", "Ed25519 public key is %d bytes, want %d", len(material), ed25519.PublicKeySize)
	}
	return ed25519.PublicKey(material), nil
}

// ParseRSAPrivatePEM parses a PKCS#8 or PKCS#1 RSA private key.
func ParseRSAPrivatePEM(text []byte) (*rsa.PrivateKey, error) {
	block, err := decodePEM(text)
	if err != nil {
		return nil, err
	}
	switch block.Type {
	case "PRIVATE KEY":
		parsed, err := x509.ParsePKCS8PrivateKey(block.Bytes)
		if err != nil {
			return nil, tokenerr.New(tokenerr.InvalidKey, "key", err)
		}
		key, ok := parsed.(*rsa.PrivateKey)
		if !ok {
			return nil, tokenerr.Newf(tokenerr.InvalidKey, "key", "PKCS#8 key is %T, want RSA", parsed)
		}
		return key, nil
	case "RSA PRIVATE KEY":
		key, err := x509.ParsePKCS1PrivateKey(block.Bytes)
		if err != nil {
			return nil, tokenerr.New(tokenerr.InvalidKey, "key", err)
		}
		return key, nil
	default:
		return nil, tokenerr.Newf(tokenerr.InvalidKey, "key", "unexpected PEM block %q for RSA private key", block.Type)
	}
}

// ParseRSAPublicPEM parses a PKIX or PKCS#1 RSA public key.
func ParseRSAPublicPEM(text []byte) (*rsa.PublicKey, error) {
	block, err := decodePEM(text)
	if err != nil {
		return nil, err
	}
	switch block.Type {
	case "PUBLIC KEY":
		parsed, err := x509.ParsePKIXPublicKey(block.Bytes)
		if err != nil {
			return nil, tokenerr.New(tokenerr.InvalidKey, "key", err)
		}
		key, ok := parsed.(*rsa.PublicKey)
		if !ok {
			return nil, tokenerr.Newf(tokenerr.InvalidKey, "key", "PKIX key is %T, want RSA", parsed)
		}
		return key, nil
	case "RSA PUBLIC KEY":
		key, err := x509.ParsePKCS1PublicKey(block.Bytes)
		if err != nil {
			return nil, tokenerr.New(tokenerr.InvalidKey, "key", err)
		}
		return key, nil
	default:
		return nil, tokenerr.Newf(tokenerr.InvalidKey, "key", "unexpected PEM block %q for RSA public key", block.Type)
	}
}

// MarshalRSAPrivatePEM encodes key as PKCS#8 PEM.
func MarshalRSAPrivatePEM(key *rsa.PrivateKey) ([]byte, error) {
	der, err := x509.MarshalPKCS8PrivateKey(key)
	if err != nil {
		return nil, fmt.Errorf("encoding RSA private key: %w", err)
	}
	return pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: der}), nil
}

// MarshalRSAPublicPEM encodes key as PKIX PEM.
func MarshalRSAPublicPEM(key *rsa.PublicKey) ([]byte, error) {
	der, err := x509.MarshalPKIXPublicKey(key)
	if err != nil {
		return nil, fmt.Errorf("encoding RSA public key: %w", err)
	}
	return pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der}), nil
}

// ParseSigningKey parses the secret half of a public-purpose key in
// the encoding keygen writes for version.
func ParseSigningKey(version wire.Version, text []byte) (crypto.PrivateKey, error) {
	switch version {
	case wire.V1:
		return ParseRSAPrivatePEM(text)
	case wire.V2:
		return ParseEd25519PrivateHex(text)
	default:
		return nil, tokenerr.Newf(tokenerr.UnknownVersion, "version", "no signing key format for %v", version)
	}
}

// ParseVerifyingKey parses the public half of a public-purpose key.
func ParseVerifyingKey(version wire.Version, text []byte) (crypto.PublicKey, error) {
	switch version {
	case wire.V1:
		return ParseRSAPublicPEM(text)
	case wire.V2:
		return ParseEd25519PublicHex(text)
	default:
		return nil, tokenerr.Newf(tokenerr.UnknownVersion, "version", "no verifying key format for %v", version)
	}
}

func decodeHex(text []byte) ([]byte, error) {
	trimmed := bytes.TrimSpace(text)
	material := make([]byte, hex.DecodedLen(len(trimmed)))
	if _, err := hex.Decode(material, trimmed); err != nil {
		return nil, tokenerr.Newf(tokenerr.InvalidKey, "key", "key is not valid hex")
	}
	return material, nil
}

func decodePEM(text []byte) (*pem.Block, error) {
	block, _ := pem.Decode(bytes.TrimSpace(text))
	if block == nil {
		return nil, tokenerr.Newf(tokenerr.InvalidKey, "key", "no PEM block found")
	}
	return block, nil
}
