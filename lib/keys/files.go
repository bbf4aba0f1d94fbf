// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package keys

import (
	"crypto"
	"encoding/hex"
	"fmt"
	"os"

	"github.com/bureau-foundation/paseto/lib/sealed"
	"github.com/bureau-foundation/paseto/lib/secret"
	"github.com/bureau-foundation/paseto/lib/wire"
)

// File name suffixes appended to the prefix given to Save.
const (
	SecretSuffix = ".key"
	PublicSuffix = ".pub"
)

// Pair is freshly generated key material in its file encoding. Public
// is nil for the local purpose, which has no public half.
type Pair struct {
	Version wire.Version
	Purpose wire.Purpose
	Secret  []byte
	Public  []byte

	// ID fingerprints the key: the symmetric material for local, the
	// public key for public.
	ID string
}

// Generate creates a key for version and purpose.
func Generate(version wire.Version, purpose wire.Purpose) (*Pair, error) {
	pair := &Pair{Version: version, Purpose: purpose}
	switch {
	case purpose == wire.Local:
		key, err := GenerateSymmetric()
		if err != nil {
			return nil, err
		}
		pair.Secret = []byte(hex.EncodeToString(key.Bytes()) + "\n")
		pair.ID = key.ID()
		secret.Zero(key.material)

	case purpose == wire.Public && version == wire.V1:
		key, err := GenerateRSA()
		if err != nil {
			return nil, err
		}
		if pair.Secret, err = MarshalRSAPrivatePEM(key); err != nil {
			return nil, err
		}
		if pair.Public, err = MarshalRSAPublicPEM(&key.PublicKey); err != nil {
			return nil, err
		}
		if pair.ID, err = PublicID(&key.PublicKey); err != nil {
			return nil, err
		}

	case purpose == wire.Public && version == wire.V2:
		public, private, err := GenerateEd25519()
		if err != nil {
			return nil, err
		}
		pair.Secret = []byte(hex.EncodeToString(private) + "\n")
		pair.Public = []byte(hex.EncodeToString(public) + "\n")
		if pair.ID, err = PublicID(public); err != nil {
			return nil, err
		}

	default:
		return nil, fmt.Errorf("cannot generate a key for %v.%v", version, purpose)
	}
	return pair, nil
}

// Save writes prefix+".key" with 0600 permissions and, when the pair
// has one, prefix+".pub" with 0644. When recipients is non-empty the
// secret file is sealed to them with age. Existing files are never
// overwritten.
func (p *Pair) Save(prefix string, recipients []string) error {
	secretData := p.Secret
	if len(recipients) > 0 {
		sealedData, err := sealed.Seal(p.Secret, recipients)
		if err != nil {
			return err
		}
		secretData = sealedData
	}

	if err := writeExclusive(prefix+SecretSuffix, secretData, 0600); err != nil {
		return fmt.Errorf("writing secret key: %w", err)
	}
	if p.Public != nil {
		if err := writeExclusive(prefix+PublicSuffix, p.Public, 0644); err != nil {
			return fmt.Errorf("writing public key: %w", err)
		}
	}
	return nil
}

// Close zeroes the secret half.
func (p *Pair) Close() {
	secret.Zero(p.Secret)
}

// LoadSecret reads a secret key file into locked memory, unsealing it
// with identities when the file is age-armored. identities may be nil
// for unsealed files. The caller must Close the returned Buffer.
func LoadSecret(path string, identities *secret.Buffer) (*secret.Buffer, error) {
	buffer, err := secret.ReadFromPath(path)
	if err != nil {
		return nil, fmt.Errorf("reading key %s: %w", path, err)
	}
	if !sealed.IsSealed(buffer.Bytes()) {
		return buffer, nil
	}
	defer buffer.Close()

	unsealed, err := sealed.Unseal(buffer.Bytes(), identities)
	if err != nil {
		return nil, fmt.Errorf("unsealing key %s: %w", path, err)
	}
	return unsealed, nil
}

// LoadPublic reads a public key file for version.
func LoadPublic(version wire.Version, path string) (crypto.PublicKey, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading public key %s: %w", path, err)
	}
	return ParseVerifyingKey(version, data)
}

func writeExclusive(path string, data []byte, perm os.FileMode) error {
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, perm)
	if err != nil {
		return err
	}
	if _, err := file.Write(data); err != nil {
		file.Close()
		return err
	}
	if err := file.Chmod(perm); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
