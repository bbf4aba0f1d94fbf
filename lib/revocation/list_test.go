// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package revocation

import (
	"bytes"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/bureau-foundation/paseto/lib/claims"
	"github.com/bureau-foundation/paseto/lib/testutil"
)

func TestRevokeAndCheck(t *testing.T) {
	list := NewList()
	list.Revoke("token-1", time.Date(2039, 1, 1, 0, 0, 0, 0, time.UTC))

	if !list.IsRevoked("token-1") {
		t.Error("token-1 should be revoked")
	}
	if list.IsRevoked("token-2") {
		t.Error("token-2 should not be revoked")
	}
	if list.Len() != 1 {
		t.Errorf("Len = %d, want 1", list.Len())
	}
}

func TestCleanup(t *testing.T) {
	list := NewList()

	t1 := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	t2 := time.Date(2026, 3, 1, 10, 5, 0, 0, time.UTC)
	t3 := time.Date(2026, 3, 1, 10, 10, 0, 0, time.UTC)
	list.Revoke("token-1", t1)
	list.Revoke("token-2", t2)
	list.Revoke("token-3", t3)

	// At 10:05 exactly, token-2 has reached its expiry and goes too.
	if removed := list.Cleanup(t2); removed != 2 {
		t.Errorf("Cleanup at 10:05 removed %d, want 2", removed)
	}
	if list.IsRevoked("token-1") || list.IsRevoked("token-2") {
		t.Error("expired entries survived cleanup")
	}
	if !list.IsRevoked("token-3") {
		t.Error("token-3 should still be revoked")
	}
	if removed := list.Cleanup(t2); removed != 0 {
		t.Errorf("second Cleanup removed %d, want 0", removed)
	}
}

func TestRevokeKeepsLaterExpiry(t *testing.T) {
	list := NewList()
	later := time.Date(2039, 1, 1, 0, 0, 0, 0, time.UTC)
	list.Revoke("token-1", later)
	list.Revoke("token-1", later.Add(-time.Hour))

	if removed := list.Cleanup(later.Add(-time.Minute)); removed != 0 {
		t.Errorf("entry dropped before its later expiry (removed %d)", removed)
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "revocations.cbor")
	list := NewList()
	expiry := time.Date(2039, 1, 1, 0, 0, 0, 0, time.UTC)
	list.Revoke("token-b", expiry)
	list.Revoke("token-a", expiry.Add(time.Hour))

	if err := list.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("mode = %o, want 600", info.Mode().Perm())
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Len() != 2 || !loaded.IsRevoked("token-a") || !loaded.IsRevoked("token-b") {
		t.Errorf("loaded list has %d entries", loaded.Len())
	}
	if removed := loaded.Cleanup(expiry); removed != 1 {
		t.Errorf("expiry not preserved: Cleanup removed %d, want 1", removed)
	}

	// Deterministic encoding: saving the same list twice is byte-identical.
	first, _ := os.ReadFile(path)
	if err := list.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	second, _ := os.ReadFile(path)
	if !bytes.Equal(first, second) {
		t.Error("Save is not deterministic")
	}
}

func TestLoadMissingFile(t *testing.T) {
	list, err := Load(filepath.Join(t.TempDir(), "absent"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if list.Len() != 0 {
		t.Errorf("Len = %d, want 0", list.Len())
	}
}

func TestLoadCorruptFile(t *testing.T) {
	path := testutil.WriteFile(t, "revocations.cbor", []byte{0xff, 0x00}, 0600)
	if _, err := Load(path); err == nil {
		t.Error("Load accepted corrupt file")
	}
}

func TestListSatisfiesRevocationChecker(t *testing.T) {
	var _ claims.RevocationChecker = NewList()
}

func TestConcurrentAccess(t *testing.T) {
	list := NewList()
	expiry := time.Date(2039, 1, 1, 0, 0, 0, 0, time.UTC)
	var wg sync.WaitGroup
	for range 16 {
		wg.Add(2)
		tokenID := testutil.UniqueID("jti")
		go func() {
			defer wg.Done()
			list.Revoke(tokenID, expiry)
		}()
		go func() {
			defer wg.Done()
			_ = list.IsRevoked(tokenID)
		}()
	}
	wg.Wait()
	if list.Len() != 16 {
		t.Errorf("Len = %d, want 16", list.Len())
	}
}
