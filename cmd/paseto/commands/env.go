// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"bytes"
	"crypto"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/paseto/cmd/paseto/cli"
	"github.com/bureau-foundation/paseto/lib/config"
	"github.com/bureau-foundation/paseto/lib/keys"
	"github.com/bureau-foundation/paseto/lib/secret"
	"github.com/bureau-foundation/paseto/lib/wire"
)

// purposeBinding ties a subcommand to one token purpose and the config
// field naming its key.
type purposeBinding struct {
	purpose wire.Purpose
	// issueKey and checkKey select the default key path from config.
	issueKey func(*config.Config) string
	checkKey func(*config.Config) string
}

var (
	localPurpose = purposeBinding{
		purpose:  wire.Local,
		issueKey: func(c *config.Config) string { return c.Keys.Local },
		checkKey: func(c *config.Config) string { return c.Keys.Local },
	}
	publicPurpose = purposeBinding{
		purpose:  wire.Public,
		issueKey: func(c *config.Config) string { return c.Keys.Secret },
		checkKey: func(c *config.Config) string { return c.Keys.Public },
	}
)

// configFlags is embedded by every subcommand's params.
type configFlags struct {
	ConfigPath string `flag:"config" desc:"config file (default: $PASETO_CONFIG)"`
	Verbose    bool   `flag:"verbose" desc:"log debug detail to stderr"`
}

// load reads and validates the configuration. Without --config or
// PASETO_CONFIG the built-in defaults apply and keys must come from
// flags.
func (f configFlags) load() (*config.Config, error) {
	path := f.ConfigPath
	if path == "" {
		path = os.Getenv(config.EnvVar)
	}
	cfg := config.Default()
	if path != "" {
		loaded, err := config.LoadFile(path)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
		cfg = loaded
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func (f configFlags) logger(env Env, command string) *slog.Logger {
	return cli.NewCommandLogger(env.Stderr, f.Verbose).With("command", command)
}

// keyFlags names the key file and the age identity that unseals it.
type keyFlags struct {
	Key      string `flag:"key,k" desc:"key file (default from config)"`
	Identity string `flag:"identity,i" desc:"age identity file for sealed secret keys"`
}

func (f keyFlags) keyPath(fallback string) (string, error) {
	if f.Key != "" {
		return f.Key, nil
	}
	if fallback != "" {
		return fallback, nil
	}
	return "", cli.Usagef("--key is required (no key configured)")
}

// openIdentity loads the age identity file into locked memory. It
// returns nil when no identity is configured.
func (f keyFlags) openIdentity(cfg *config.Config) (*secret.Buffer, error) {
	path := f.Identity
	if path == "" {
		path = cfg.Keys.Identity
	}
	if path == "" {
		return nil, nil
	}
	identity, err := secret.ReadFromPath(path)
	if err != nil {
		return nil, fmt.Errorf("reading identity: %w", err)
	}
	return identity, nil
}

// withSecret loads the secret key file at path, unsealing it if
// needed, and passes its bytes to use. The bytes are only valid inside
// use.
func (f keyFlags) withSecret(cfg *config.Config, path string, use func([]byte) error) error {
	identity, err := f.openIdentity(cfg)
	if err != nil {
		return err
	}
	if identity != nil {
		defer identity.Close()
	}

	material, err := keys.LoadSecret(path, identity)
	if err != nil {
		return err
	}
	defer material.Close()
	return use(material.Bytes())
}

func (f keyFlags) symmetricKey(cfg *config.Config, path string) (keys.Symmetric, error) {
	var key keys.Symmetric
	err := f.withSecret(cfg, path, func(material []byte) error {
		var err error
		key, err = keys.ParseSymmetricHex(material)
		return err
	})
	return key, err
}

func (f keyFlags) signingKey(cfg *config.Config, path string, version wire.Version) (crypto.PrivateKey, error) {
	var key crypto.PrivateKey
	err := f.withSecret(cfg, path, func(material []byte) error {
		var err error
		key, err = keys.ParseSigningKey(version, material)
		return err
	})
	return key, err
}

// resolveVersion picks the protocol version from a flag or the config
// and enforces the config's v1 policy.
func resolveVersion(flag string, cfg *config.Config) (wire.Version, error) {
	name := flag
	if name == "" {
		name = cfg.Tokens.Version
	}
	version, err := wire.ParseVersion(name)
	if err != nil {
		return 0, cli.Usagef("unknown protocol version %q (want v1 or v2)", name)
	}
	if version == wire.V1 && !cfg.Tokens.AllowV1 {
		return 0, fmt.Errorf("v1 tokens are disabled by configuration (tokens.allow_v1)")
	}
	return version, nil
}

// flagOr returns value when the named flag was given on the command
// line, zero values included, and fallback otherwise.
func flagOr[T any](flags *pflag.FlagSet, name string, value, fallback T) T {
	if flags != nil && flags.Changed(name) {
		return value
	}
	return fallback
}

// readToken takes the token from the single positional argument or,
// without one, from stdin.
func readToken(args []string, stdin io.Reader) (string, error) {
	switch len(args) {
	case 0:
		data, err := io.ReadAll(io.LimitReader(stdin, 1<<20))
		if err != nil {
			return "", fmt.Errorf("reading token from stdin: %w", err)
		}
		token := string(bytes.TrimSpace(data))
		if token == "" {
			return "", cli.Usagef("no token given on stdin or as an argument")
		}
		return token, nil
	case 1:
		return strings.TrimSpace(args[0]), nil
	default:
		return "", cli.Usagef("expected at most one token argument, got %d", len(args))
	}
}
