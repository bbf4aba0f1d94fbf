// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/bureau-foundation/paseto/lib/testutil"
	"github.com/bureau-foundation/paseto/lib/wire"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	return testutil.WriteFile(t, "paseto.yaml", []byte(content), 0644)
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Environment != Development {
		t.Errorf("expected environment=development, got %s", cfg.Environment)
	}
	if cfg.Tokens.Version != "v2" {
		t.Errorf("expected version=v2, got %s", cfg.Tokens.Version)
	}
	if !cfg.Tokens.AllowV1 {
		t.Error("expected allow_v1=true for development")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestLoad_RequiresPasetoConfig(t *testing.T) {
	t.Setenv(EnvVar, "")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error when PASETO_CONFIG not set, got nil")
	}
	if !strings.HasPrefix(err.Error(), "PASETO_CONFIG environment variable not set") {
		t.Errorf("unexpected error message %q", err.Error())
	}
}

func TestLoad_WithPasetoConfig(t *testing.T) {
	t.Setenv(EnvVar, writeConfig(t, `
environment: staging
paths:
  root: /test/root
tokens:
  issuer: auth.example
`))

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Environment != Staging {
		t.Errorf("expected environment=staging, got %s", cfg.Environment)
	}
	if cfg.Paths.Root != "/test/root" {
		t.Errorf("expected root=/test/root, got %s", cfg.Paths.Root)
	}
	if cfg.Tokens.Issuer != "auth.example" {
		t.Errorf("expected issuer=auth.example, got %s", cfg.Tokens.Issuer)
	}
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
environment: staging

paths:
  root: /custom/root

tokens:
  version: v1
  codec: cbor
  allow_v1: true
  audience: api
  ttl: 15m
  leeway: 5s

keys:
  local: ${PASETO_ROOT}/local.key
  identity: /etc/paseto/identity.txt

revocation:
  list: ${PASETO_ROOT}/revoked.cbor
`)

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	version, err := cfg.DefaultVersion()
	if err != nil || version != wire.V1 {
		t.Errorf("DefaultVersion = %v, %v; want v1", version, err)
	}
	if cfg.Tokens.Codec != "cbor" {
		t.Errorf("expected codec=cbor, got %s", cfg.Tokens.Codec)
	}
	if cfg.TTL() != 15*time.Minute {
		t.Errorf("TTL = %v", cfg.TTL())
	}
	if cfg.Leeway() != 5*time.Second {
		t.Errorf("Leeway = %v", cfg.Leeway())
	}
	if cfg.Keys.Local != "/custom/root/local.key" {
		t.Errorf("expected expanded local key path, got %s", cfg.Keys.Local)
	}
	if cfg.Revocation.List != "/custom/root/revoked.cbor" {
		t.Errorf("expected expanded revocation path, got %s", cfg.Revocation.List)
	}
	if cfg.Keys.Identity != "/etc/paseto/identity.txt" {
		t.Errorf("identity = %s", cfg.Keys.Identity)
	}
}

func TestLoadFileRejectsBadYAML(t *testing.T) {
	_, err := LoadFile(writeConfig(t, "tokens: [unterminated"))
	if err == nil {
		t.Fatal("expected parse error")
	}
	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml")); !os.IsNotExist(err) {
		t.Errorf("missing file: error = %v, want not-exist", err)
	}
}

func TestProductionDefaults(t *testing.T) {
	cfg, err := LoadFile(writeConfig(t, `
environment: production
paths:
  root: /srv/paseto
`))
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if cfg.Tokens.AllowV1 {
		t.Error("production should refuse v1 by default")
	}
	if !cfg.Tokens.RequireExpiration {
		t.Error("production should require exp by default")
	}
	if got := cfg.AcceptedVersions(); len(got) != 1 || got[0] != wire.V2 {
		t.Errorf("AcceptedVersions = %v, want [v2]", got)
	}
}

func TestProductionV1RequiresOptIn(t *testing.T) {
	cfg, err := LoadFile(writeConfig(t, `
environment: production
tokens:
  version: v1
`))
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	err = cfg.Validate()
	if err == nil || !strings.Contains(err.Error(), "allow_v1") {
		t.Errorf("Validate() = %v, want allow_v1 error", err)
	}

	cfg, err = LoadFile(writeConfig(t, `
environment: production
tokens:
  version: v1
production:
  tokens:
    allow_v1: true
    require_expiration: true
`))
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("explicit allow_v1: %v", err)
	}
}

func TestEnvironmentOverrides(t *testing.T) {
	cfg, err := LoadFile(writeConfig(t, `
environment: staging

paths:
  root: /default/root

tokens:
  issuer: base.example
  ttl: 1h

keys:
  secret: /default/signing.key

staging:
  paths:
    root: /staging/root
  tokens:
    issuer: staging.example
    ttl: 5m
  keys:
    secret: /staging/signing.key
  revocation:
    list: /staging/revoked.cbor
`))
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}

	if cfg.Paths.Root != "/staging/root" {
		t.Errorf("expected root=/staging/root, got %s", cfg.Paths.Root)
	}
	if cfg.Tokens.Issuer != "staging.example" {
		t.Errorf("expected issuer=staging.example, got %s", cfg.Tokens.Issuer)
	}
	if cfg.TTL() != 5*time.Minute {
		t.Errorf("expected ttl=5m, got %v", cfg.TTL())
	}
	if cfg.Keys.Secret != "/staging/signing.key" {
		t.Errorf("expected staging signing key, got %s", cfg.Keys.Secret)
	}
	if cfg.Revocation.List != "/staging/revoked.cbor" {
		t.Errorf("expected staging revocation list, got %s", cfg.Revocation.List)
	}
}

func TestEnvVarsDoNotOverride(t *testing.T) {
	t.Setenv("PASETO_ROOT", "/env/root")
	t.Setenv("PASETO_ENVIRONMENT", "staging")

	cfg, err := LoadFile(writeConfig(t, `
environment: development
paths:
  root: /file/root
`))
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if cfg.Environment != Development {
		t.Errorf("expected environment=development from file, got %s", cfg.Environment)
	}
	if cfg.Paths.Root != "/file/root" {
		t.Errorf("expected root=/file/root from file, got %s", cfg.Paths.Root)
	}
}

func TestExpandVars(t *testing.T) {
	tests := []struct {
		input    string
		vars     map[string]string
		expected string
	}{
		{
			input:    "${HOME}/keys",
			vars:     map[string]string{"HOME": "/home/user"},
			expected: "/home/user/keys",
		},
		{
			input:    "${PASETO_TEST_MISSING:-default}",
			vars:     map[string]string{},
			expected: "default",
		},
		{
			input:    "${PRESENT:-default}",
			vars:     map[string]string{"PRESENT": "value"},
			expected: "value",
		},
		{
			input:    "${A}/${B}",
			vars:     map[string]string{"A": "first", "B": "second"},
			expected: "first/second",
		},
		{
			input:    "no variables here",
			vars:     map[string]string{},
			expected: "no variables here",
		},
	}

	for _, tt := range tests {
		result := expandVars(tt.input, tt.vars)
		if result != tt.expected {
			t.Errorf("expandVars(%q) = %q, want %q", tt.input, result, tt.expected)
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr string
	}{
		{name: "valid default config", modify: func(c *Config) {}},
		{
			name:    "invalid environment",
			modify:  func(c *Config) { c.Environment = "invalid" },
			wantErr: "invalid environment",
		},
		{
			name:    "empty root path",
			modify:  func(c *Config) { c.Paths.Root = "" },
			wantErr: "paths.root",
		},
		{
			name:    "unknown version",
			modify:  func(c *Config) { c.Tokens.Version = "v4" },
			wantErr: "tokens.version",
		},
		{
			name:    "unknown codec",
			modify:  func(c *Config) { c.Tokens.Codec = "msgpack" },
			wantErr: "tokens.codec",
		},
		{
			name:    "bad ttl",
			modify:  func(c *Config) { c.Tokens.TTL = "forever" },
			wantErr: "tokens.ttl",
		},
		{
			name:    "zero ttl",
			modify:  func(c *Config) { c.Tokens.TTL = "0s" },
			wantErr: "tokens.ttl",
		},
		{
			name:    "negative leeway",
			modify:  func(c *Config) { c.Tokens.Leeway = "-1s" },
			wantErr: "tokens.leeway",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() = %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() = %v, want error mentioning %q", err, tt.wantErr)
			}
		})
	}
}

func TestValidateReportsEveryError(t *testing.T) {
	cfg := Default()
	cfg.Paths.Root = ""
	cfg.Tokens.Codec = "xml"
	cfg.Tokens.TTL = "soon"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected errors")
	}
	for _, field := range []string{"paths.root", "tokens.codec", "tokens.ttl"} {
		if !strings.Contains(err.Error(), field) {
			t.Errorf("error %q does not mention %s", err, field)
		}
	}
}

func TestEnsurePaths(t *testing.T) {
	cfg := Default()
	cfg.Paths.Root = filepath.Join(t.TempDir(), "paseto", "state")

	if err := cfg.EnsurePaths(); err != nil {
		t.Fatalf("EnsurePaths failed: %v", err)
	}

	info, err := os.Stat(cfg.Paths.Root)
	if err != nil {
		t.Fatalf("root not created: %v", err)
	}
	if !info.IsDir() {
		t.Errorf("root is not a directory")
	}
	if info.Mode().Perm() != 0700 {
		t.Errorf("root mode = %o, want 0700", info.Mode().Perm())
	}
}
