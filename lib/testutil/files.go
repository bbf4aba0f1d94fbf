// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// WriteFile writes data to name inside a fresh per-test directory and
// returns the absolute path. The file is created with exactly perm,
// independent of the process umask.
func WriteFile(t *testing.T, name string, data []byte, perm os.FileMode) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, perm); err != nil {
		t.Fatalf("writing fixture %s: %v", name, err)
	}
	if err := os.Chmod(path, perm); err != nil {
		t.Fatalf("setting mode on fixture %s: %v", name, err)
	}
	return path
}
