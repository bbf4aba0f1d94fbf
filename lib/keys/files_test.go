// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package keys

import (
	"crypto/ed25519"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"filippo.io/age"

	"github.com/bureau-foundation/paseto/lib/sealed"
	"github.com/bureau-foundation/paseto/lib/secret"
	"github.com/bureau-foundation/paseto/lib/wire"
)

func TestGenerateSaveLoad(t *testing.T) {
	tests := []struct {
		version wire.Version
		purpose wire.Purpose
	}{
		{wire.V1, wire.Local},
		{wire.V2, wire.Local},
		{wire.V1, wire.Public},
		{wire.V2, wire.Public},
	}
	for _, tt := range tests {
		t.Run(tt.version.String()+"."+tt.purpose.String(), func(t *testing.T) {
			pair, err := Generate(tt.version, tt.purpose)
			if err != nil {
				t.Fatalf("Generate: %v", err)
			}
			prefix := filepath.Join(t.TempDir(), "signing")
			if err := pair.Save(prefix, nil); err != nil {
				t.Fatalf("Save: %v", err)
			}

			info, err := os.Stat(prefix + SecretSuffix)
			if err != nil {
				t.Fatalf("Stat secret: %v", err)
			}
			if mode := info.Mode().Perm(); mode != 0600 {
				t.Errorf("secret key permissions = %o, want 0600", mode)
			}

			loaded, err := LoadSecret(prefix+SecretSuffix, nil)
			if err != nil {
				t.Fatalf("LoadSecret: %v", err)
			}
			defer loaded.Close()

			if tt.purpose == wire.Local {
				key, err := ParseSymmetricHex(loaded.Bytes())
				if err != nil {
					t.Fatalf("ParseSymmetricHex: %v", err)
				}
				if key.ID() != pair.ID {
					t.Error("loaded key ID differs from generated")
				}
				if _, err := os.Stat(prefix + PublicSuffix); !errors.Is(err, os.ErrNotExist) {
					t.Errorf("local key wrote a public file (stat error %v)", err)
				}
				return
			}

			if _, err := ParseSigningKey(tt.version, loaded.Bytes()); err != nil {
				t.Fatalf("ParseSigningKey: %v", err)
			}
			info, err = os.Stat(prefix + PublicSuffix)
			if err != nil {
				t.Fatalf("Stat public: %v", err)
			}
			if mode := info.Mode().Perm(); mode != 0644 {
				t.Errorf("public key permissions = %o, want 0644", mode)
			}
			public, err := LoadPublic(tt.version, prefix+PublicSuffix)
			if err != nil {
				t.Fatalf("LoadPublic: %v", err)
			}
			if id, _ := PublicID(public); id != pair.ID {
				t.Error("public key ID differs from generated")
			}
		})
	}
}

func TestSaveRefusesOverwrite(t *testing.T) {
	pair, err := Generate(wire.V2, wire.Local)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	prefix := filepath.Join(t.TempDir(), "local")
	if err := pair.Save(prefix, nil); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := pair.Save(prefix, nil); !errors.Is(err, os.ErrExist) {
		t.Errorf("second Save error = %v, want ErrExist", err)
	}
}

func TestSealedSecretFile(t *testing.T) {
	identity, err := age.GenerateX25519Identity()
	if err != nil {
		t.Fatalf("GenerateX25519Identity: %v", err)
	}
	identities, err := secret.NewFromBytes([]byte(identity.String()))
	if err != nil {
		t.Fatalf("NewFromBytes: %v", err)
	}
	defer identities.Close()

	pair, err := Generate(wire.V2, wire.Public)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	prefix := filepath.Join(t.TempDir(), "sealed")
	if err := pair.Save(prefix, []string{identity.Recipient().String()}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	raw, err := os.ReadFile(prefix + SecretSuffix)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !sealed.IsSealed(raw) {
		t.Fatal("secret key file is not sealed")
	}

	if _, err := LoadSecret(prefix+SecretSuffix, nil); !errors.Is(err, sealed.ErrNoIdentity) {
		t.Errorf("LoadSecret without identity: error = %v, want ErrNoIdentity", err)
	}

	loaded, err := LoadSecret(prefix+SecretSuffix, identities)
	if err != nil {
		t.Fatalf("LoadSecret: %v", err)
	}
	defer loaded.Close()
	private, err := ParseEd25519PrivateHex(loaded.Bytes())
	if err != nil {
		t.Fatalf("ParseEd25519PrivateHex: %v", err)
	}
	if id, _ := PublicID(private.Public().(ed25519.PublicKey)); id != pair.ID {
		t.Error("unsealed key does not match generated key")
	}
}
