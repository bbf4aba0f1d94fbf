// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package revocation

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/bureau-foundation/paseto/lib/codec"
)

// List is a thread-safe set of revoked token IDs.
type List struct {
	mu      sync.RWMutex
	entries map[string]time.Time
}

// NewList creates an empty revocation list.
func NewList() *List {
	return &List{entries: make(map[string]time.Time)}
}

// Revoke adds a token ID. tokenExpiresAt is the token's own exp; the
// entry is removed by Cleanup after that time. Revoking an ID twice
// keeps the later expiry.
func (l *List) Revoke(tokenID string, tokenExpiresAt time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if existing, ok := l.entries[tokenID]; ok && existing.After(tokenExpiresAt) {
		return
	}
	l.entries[tokenID] = tokenExpiresAt
}

// IsRevoked reports whether tokenID has been revoked.
func (l *List) IsRevoked(tokenID string) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	_, exists := l.entries[tokenID]
	return exists
}

// Cleanup removes entries whose token expiry is at or before now and
// returns how many were removed.
func (l *List) Cleanup(now time.Time) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	removed := 0
	for tokenID, expiresAt := range l.entries {
		if !now.Before(expiresAt) {
			delete(l.entries, tokenID)
			removed++
		}
	}
	return removed
}

// Len returns the number of entries.
func (l *List) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}

// entry is the on-disk form of one revocation.
type entry struct {
	TokenID string `cbor:"1,keyasint"`

	// ExpiresAt is Unix seconds.
	ExpiresAt int64 `cbor:"2,keyasint"`
}

type file struct {
	Entries []entry `cbor:"1,keyasint"`
}

// Save writes the list to path atomically (temporary file plus rename)
// with 0600 permissions. Entries are sorted by token ID so that the
// same list always produces the same bytes.
func (l *List) Save(path string) error {
	l.mu.RLock()
	contents := file{Entries: make([]entry, 0, len(l.entries))}
	for tokenID, expiresAt := range l.entries {
		contents.Entries = append(contents.Entries, entry{TokenID: tokenID, ExpiresAt: expiresAt.Unix()})
	}
	l.mu.RUnlock()
	sort.Slice(contents.Entries, func(i, j int) bool {
		return contents.Entries[i].TokenID < contents.Entries[j].TokenID
	})

	data, err := codec.CBOR.Marshal(contents)
	if err != nil {
		return fmt.Errorf("encoding revocation list: %w", err)
	}

	temporary, err := os.CreateTemp(filepath.Dir(path), ".revocations-*")
	if err != nil {
		return fmt.Errorf("creating temporary revocation file: %w", err)
	}
	temporaryPath := temporary.Name()
	defer os.Remove(temporaryPath)

	if err := temporary.Chmod(0600); err != nil {
		temporary.Close()
		return fmt.Errorf("setting revocation file permissions: %w", err)
	}
	if _, err := temporary.Write(data); err != nil {
		temporary.Close()
		return fmt.Errorf("writing revocation file: %w", err)
	}
	if err := temporary.Close(); err != nil {
		return fmt.Errorf("closing revocation file: %w", err)
	}
	if err := os.Rename(temporaryPath, path); err != nil {
		return fmt.Errorf("replacing revocation file: %w", err)
	}
	return nil
}

// Load reads a list written by Save. A missing file yields an empty
// list, so a fresh deployment needs no bootstrap step.
func Load(path string) (*List, error) {
	list := NewList()
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return list, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading revocation file: %w", err)
	}

	var contents file
	if err := codec.CBOR.Unmarshal(data, &contents); err != nil {
		return nil, fmt.Errorf("decoding revocation file %s: %w", path, err)
	}
	for _, revoked := range contents.Entries {
		if revoked.TokenID == "" {
			return nil, fmt.Errorf("revocation file %s contains an entry without a token ID", path)
		}
		list.entries[revoked.TokenID] = time.Unix(revoked.ExpiresAt, 0).UTC()
	}
	return list, nil
}
