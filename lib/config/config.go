// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/bureau-foundation/paseto/lib/wire"
)

// EnvVar names the environment variable [Load] reads.
const EnvVar = "PASETO_CONFIG"

// Environment represents the deployment environment.
type Environment string

const (
	// Development is for local development machines.
	Development Environment = "development"
	// Staging is for pre-production testing.
	Staging Environment = "staging"
	// Production is for production deployments.
	Production Environment = "production"
)

// Config is the master configuration for the paseto command.
type Config struct {
	// Environment identifies the deployment type (development, staging, production).
	Environment Environment `yaml:"environment"`

	// Paths configures directory locations.
	Paths PathsConfig `yaml:"paths"`

	// Tokens configures how tokens are built and which are accepted.
	Tokens TokensConfig `yaml:"tokens"`

	// Keys names key files.
	Keys KeysConfig `yaml:"keys"`

	// Revocation configures the revoked token list.
	Revocation RevocationConfig `yaml:"revocation"`

	// Per-environment overrides, applied after the base config is loaded.
	Development *ConfigOverrides `yaml:"development,omitempty"`
	Staging     *ConfigOverrides `yaml:"staging,omitempty"`
	Production  *ConfigOverrides `yaml:"production,omitempty"`
}

// ConfigOverrides contains fields that can be overridden per environment.
type ConfigOverrides struct {
	Paths      *PathsConfig      `yaml:"paths,omitempty"`
	Tokens     *TokensConfig     `yaml:"tokens,omitempty"`
	Keys       *KeysConfig       `yaml:"keys,omitempty"`
	Revocation *RevocationConfig `yaml:"revocation,omitempty"`
}

// PathsConfig configures directory locations.
type PathsConfig struct {
	// Root is the base directory for keys and state.
	Root string `yaml:"root"`
}

// TokensConfig sets token defaults and acceptance policy.
type TokensConfig struct {
	// Version is the protocol version new tokens use: "v1" or "v2".
	// Default: v2
	Version string `yaml:"version"`

	// Codec is the claim encoding: "json" or "cbor".
	// Default: json
	Codec string `yaml:"codec"`

	// AllowV1 permits v1 tokens. Always true outside production
	// unless set false explicitly in an override.
	AllowV1 bool `yaml:"allow_v1"`

	// RequireExpiration rejects tokens without an exp claim.
	// Default: false (development), true (production)
	RequireExpiration bool `yaml:"require_expiration"`

	// Issuer is written as iss when building and required when parsing.
	Issuer string `yaml:"issuer"`

	// Audience is written as aud when building and required when parsing.
	Audience string `yaml:"audience"`

	// TTL is the lifetime of built tokens, as a Go duration.
	// Default: 1h
	TTL string `yaml:"ttl"`

	// Leeway is the clock skew tolerated when checking exp and nbf.
	// Default: 30s
	Leeway string `yaml:"leeway"`
}

// KeysConfig names key files. Secret key files may be age-encrypted;
// Identity names the age identity file that opens them.
type KeysConfig struct {
	// Local is the symmetric key for local tokens.
	Local string `yaml:"local"`

	// Secret is the signing key for public tokens.
	Secret string `yaml:"secret"`

	// Public is the verification key for public tokens.
	Public string `yaml:"public"`

	// Identity is the age identity file for sealed key files.
	Identity string `yaml:"identity"`
}

// RevocationConfig configures the revoked token list.
type RevocationConfig struct {
	// List is the CBOR revocation file. Empty disables revocation checks.
	List string `yaml:"list"`
}

// Default returns the default configuration.
// These defaults are used as a base before loading the config file.
// They exist primarily to ensure all fields have sensible zero-values,
// not as a fallback - the config file is required.
func Default() *Config {
	homeDir, _ := os.UserHomeDir()
	defaultRoot := filepath.Join(homeDir, ".cache", "paseto")

	return &Config{
		Environment: Development,
		Paths: PathsConfig{
			Root: defaultRoot,
		},
		Tokens: TokensConfig{
			Version: wire.V2.String(),
			Codec:   "json",
			AllowV1: true,
			TTL:     "1h",
			Leeway:  "30s",
		},
	}
}

// Load loads configuration from the PASETO_CONFIG environment variable.
//
// There are no fallbacks or defaults - if PASETO_CONFIG is not set, this fails.
func Load() (*Config, error) {
	configPath := os.Getenv(EnvVar)
	if configPath == "" {
		return nil, fmt.Errorf("%s environment variable not set; "+
			"set it to the path of your paseto.yaml config file, or use --config flag", EnvVar)
	}

	return LoadFile(configPath)
}

// LoadFile loads configuration from a specific file path.
//
// The config file is the single source of truth. Environment variables do not
// override config values. The only expansion performed is ${HOME} and similar
// path variables for portability.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	if err := cfg.loadFile(path); err != nil {
		return nil, err
	}

	cfg.applyEnvironmentOverrides()
	cfg.expandVariables()

	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	return nil
}

// applyEnvironmentOverrides applies the environment-specific overrides.
func (c *Config) applyEnvironmentOverrides() {
	var overrides *ConfigOverrides

	switch c.Environment {
	case Development:
		overrides = c.Development
	case Staging:
		overrides = c.Staging
	case Production:
		overrides = c.Production
		// Production defaults: no v1 and no immortal tokens.
		if overrides == nil {
			overrides = &ConfigOverrides{
				Tokens: &TokensConfig{
					AllowV1:           false,
					RequireExpiration: true,
				},
			}
		}
	}

	if overrides == nil {
		return
	}

	if overrides.Paths != nil && overrides.Paths.Root != "" {
		c.Paths.Root = overrides.Paths.Root
	}

	if tokens := overrides.Tokens; tokens != nil {
		if tokens.Version != "" {
			c.Tokens.Version = tokens.Version
		}
		if tokens.Codec != "" {
			c.Tokens.Codec = tokens.Codec
		}
		// Booleans cannot be told apart from unset, so an override
		// section always applies them.
		c.Tokens.AllowV1 = tokens.AllowV1
		c.Tokens.RequireExpiration = tokens.RequireExpiration
		if tokens.Issuer != "" {
			c.Tokens.Issuer = tokens.Issuer
		}
		if tokens.Audience != "" {
			c.Tokens.Audience = tokens.Audience
		}
		if tokens.TTL != "" {
			c.Tokens.TTL = tokens.TTL
		}
		if tokens.Leeway != "" {
			c.Tokens.Leeway = tokens.Leeway
		}
	}

	if keys := overrides.Keys; keys != nil {
		if keys.Local != "" {
			c.Keys.Local = keys.Local
		}
		if keys.Secret != "" {
			c.Keys.Secret = keys.Secret
		}
		if keys.Public != "" {
			c.Keys.Public = keys.Public
		}
		if keys.Identity != "" {
			c.Keys.Identity = keys.Identity
		}
	}

	if overrides.Revocation != nil && overrides.Revocation.List != "" {
		c.Revocation.List = overrides.Revocation.List
	}
}

// expandVariables expands ${VAR} and ${VAR:-default} patterns in paths.
func (c *Config) expandVariables() {
	vars := map[string]string{
		"PASETO_ROOT": c.Paths.Root,
		"HOME":        os.Getenv("HOME"),
	}

	c.Paths.Root = expandVars(c.Paths.Root, vars)
	vars["PASETO_ROOT"] = c.Paths.Root

	c.Keys.Local = expandVars(c.Keys.Local, vars)
	c.Keys.Secret = expandVars(c.Keys.Secret, vars)
	c.Keys.Public = expandVars(c.Keys.Public, vars)
	c.Keys.Identity = expandVars(c.Keys.Identity, vars)
	c.Revocation.List = expandVars(c.Revocation.List, vars)
}

var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

// expandVars expands ${VAR} and ${VAR:-default} patterns.
func expandVars(s string, vars map[string]string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}

		name := parts[1]
		defaultValue := ""
		if len(parts) >= 3 {
			defaultValue = parts[2]
		}

		if value, ok := vars[name]; ok && value != "" {
			return value
		}
		if value := os.Getenv(name); value != "" {
			return value
		}
		return defaultValue
	})
}

// Validate checks the configuration for errors. It reports every
// problem at once rather than stopping at the first.
func (c *Config) Validate() error {
	var errs []error

	if c.Environment != Development && c.Environment != Staging && c.Environment != Production {
		errs = append(errs, fmt.Errorf("invalid environment: %s", c.Environment))
	}

	if c.Paths.Root == "" {
		errs = append(errs, errors.New("paths.root is required"))
	}

	version, err := wire.ParseVersion(c.Tokens.Version)
	if err != nil {
		errs = append(errs, fmt.Errorf("tokens.version must be one of: %v", wire.Versions()))
	} else if version == wire.V1 && !c.Tokens.AllowV1 {
		errs = append(errs, errors.New("tokens.version is v1 but tokens.allow_v1 is false"))
	}

	codecs := []string{"json", "cbor"}
	if !slices.Contains(codecs, c.Tokens.Codec) {
		errs = append(errs, fmt.Errorf("tokens.codec must be one of: %v", codecs))
	}

	if ttl, err := time.ParseDuration(c.Tokens.TTL); err != nil {
		errs = append(errs, fmt.Errorf("tokens.ttl: %w", err))
	} else if ttl <= 0 {
		errs = append(errs, errors.New("tokens.ttl must be positive"))
	}
	if leeway, err := time.ParseDuration(c.Tokens.Leeway); err != nil {
		errs = append(errs, fmt.Errorf("tokens.leeway: %w", err))
	} else if leeway < 0 {
		errs = append(errs, errors.New("tokens.leeway must not be negative"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// DefaultVersion returns tokens.version parsed. Call Validate first.
func (c *Config) DefaultVersion() (wire.Version, error) {
	return wire.ParseVersion(c.Tokens.Version)
}

// AcceptedVersions returns the versions a parser should accept.
func (c *Config) AcceptedVersions() []wire.Version {
	if c.Tokens.AllowV1 {
		return wire.Versions()
	}
	return []wire.Version{wire.V2}
}

// TTL returns tokens.ttl parsed. Call Validate first.
func (c *Config) TTL() time.Duration {
	ttl, _ := time.ParseDuration(c.Tokens.TTL)
	return ttl
}

// Leeway returns tokens.leeway parsed. Call Validate first.
func (c *Config) Leeway() time.Duration {
	leeway, _ := time.ParseDuration(c.Tokens.Leeway)
	return leeway
}

// EnsurePaths creates the root directory if it doesn't exist. Key
// material lives there, so it is created private.
func (c *Config) EnsurePaths() error {
	if c.Paths.Root == "" {
		return nil
	}
	if err := os.MkdirAll(c.Paths.Root, 0700); err != nil {
		return fmt.Errorf("creating %s: %w", c.Paths.Root, err)
	}
	return nil
}
