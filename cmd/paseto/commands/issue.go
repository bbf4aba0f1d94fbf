// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/tidwall/jsonc"

	"github.com/bureau-foundation/paseto/cmd/paseto/cli"
	"github.com/bureau-foundation/paseto/lib/claims"
	"github.com/bureau-foundation/paseto/lib/codec"
	"github.com/bureau-foundation/paseto/lib/paseto"
	"github.com/bureau-foundation/paseto/lib/wire"
)

type issueParams struct {
	configFlags
	keyFlags
	Version    string        `flag:"version" desc:"protocol version, v1 or v2 (default from config)"`
	Footer     string        `flag:"footer" desc:"footer to bind to the token (visible in plaintext)"`
	KeyID      bool          `flag:"kid" desc:"write the key id as a JSON footer when --footer is empty"`
	Raw        bool          `flag:"raw" desc:"read an opaque payload from stdin instead of building a claim set"`
	ClaimsFile string        `flag:"claims" desc:"JSON or JSONC file of custom claims"`
	Claims     []string      `flag:"claim" desc:"custom claim NAME=VALUE; VALUE is parsed as JSON when it is valid JSON (repeatable)"`
	Subject    string        `flag:"subject,s" desc:"sub claim"`
	Issuer     string        `flag:"issuer" desc:"iss claim (default from config)"`
	Audience   []string      `flag:"audience" desc:"aud claim (default from config, repeatable)"`
	TTL        time.Duration `flag:"ttl" desc:"lifetime; sets exp (default from config)"`
	NoExpiry   bool          `flag:"no-expiry" desc:"omit exp"`
	Codec      string        `flag:"codec" desc:"claim encoding, json or cbor (default from config)"`
	Assertion  string        `flag:"assertion" desc:"implicit assertion bound to the signature (v2 sign only)"`

	flags *pflag.FlagSet
}

func issueCommand(env Env, name string, binding purposeBinding) *cli.Command {
	var params issueParams

	summary := "Encrypt a claim set into a local token"
	keyHelp := "a local key (paseto keygen --purpose local)"
	if binding.purpose == wire.Public {
		summary = "Sign a claim set into a public token"
		keyHelp = "a secret signing key (paseto keygen --purpose public)"
	}

	return &cli.Command{
		Name:    name,
		Summary: summary,
		Description: summary + `.

The key is ` + keyHelp + `. Unless --raw is given, the payload is a
claim set: iat is the current time, exp is iat plus --ttl, jti is a
fresh UUID, and iss, sub and aud come from flags or the config. Custom
claims come from --claims (a JSON object, comments allowed) and
--claim flags, with flags winning.`,
		Usage: "paseto " + name + " [flags]",
		Examples: []cli.Example{
			{Description: "Issue a token for alice valid for 15 minutes", Command: "paseto " + name + " -k keys/session.key -s alice --ttl 15m"},
			{Description: "Custom claims with a key id footer", Command: "paseto " + name + " --claims grant.jsonc --claim role=admin --kid"},
		},
		Flags: func() *pflag.FlagSet {
			params.flags = cli.FlagsFromParams(name, &params)
			return params.flags
		},
		Run: func(args []string) error {
			if len(args) > 0 {
				return cli.Usagef("unexpected argument %q", args[0])
			}
			if params.Raw && (params.ClaimsFile != "" || len(params.Claims) > 0 || params.Subject != "") {
				return cli.Usagef("--raw cannot be combined with claim flags")
			}

			cfg, err := params.load()
			if err != nil {
				return err
			}
			version, err := resolveVersion(params.Version, cfg)
			if err != nil {
				return err
			}
			keyPath, err := params.keyPath(binding.issueKey(cfg))
			if err != nil {
				return err
			}
			claimCodec, err := codec.ByName(flagOr(params.flags, "codec", params.Codec, cfg.Tokens.Codec))
			if err != nil {
				return cli.Usagef("--codec: %v", err)
			}

			logger := params.logger(env, name)
			options := []paseto.BuilderOption{
				paseto.WithClaimCodec(claimCodec),
				paseto.WithBuilderLogger(logger),
			}
			if params.KeyID {
				options = append(options, paseto.WithKeyIDFooter())
			}
			switch binding.purpose {
			case wire.Local:
				key, err := params.symmetricKey(cfg, keyPath)
				if err != nil {
					return err
				}
				options = append(options, paseto.WithSymmetricKey(key))
			case wire.Public:
				key, err := params.signingKey(cfg, keyPath, version)
				if err != nil {
					return err
				}
				options = append(options, paseto.WithSigningKey(key))
				if params.Assertion != "" {
					options = append(options, paseto.WithAssertion([]byte(params.Assertion)))
				}
			}

			builder, err := paseto.NewBuilder(version, binding.purpose, options...)
			if err != nil {
				return err
			}

			var token string
			if params.Raw {
				payload, err := io.ReadAll(env.Stdin)
				if err != nil {
					return fmt.Errorf("reading payload: %w", err)
				}
				token, err = builder.Build(payload, []byte(params.Footer))
				if err != nil {
					return err
				}
			} else {
				set, err := params.claimSet(cfg.Tokens.Issuer, cfg.Tokens.Audience, cfg.TTL(), env.Clock.Now())
				if err != nil {
					return err
				}
				token, err = builder.BuildClaims(set, []byte(params.Footer))
				if err != nil {
					return err
				}
			}

			logger.Debug("token built", "version", version.String(), "purpose", binding.purpose.String(), "key_id", builder.KeyID())
			_, err = fmt.Fprintln(env.Stdout, token)
			return err
		},
	}
}

// claimSet assembles the registered and custom claims.
func (p *issueParams) claimSet(issuer, audience string, ttl time.Duration, now time.Time) (claims.Set, error) {
	now = now.UTC().Truncate(time.Second)
	set := claims.Set{
		Issuer:   issuer,
		Subject:  p.Subject,
		IssuedAt: now,
		TokenID:  claims.NewTokenID(),
	}
	if p.Issuer != "" {
		set.Issuer = p.Issuer
	}
	switch {
	case len(p.Audience) > 0:
		set.Audience = p.Audience
	case audience != "":
		set.Audience = []string{audience}
	}
	ttl = flagOr(p.flags, "ttl", p.TTL, ttl)
	if !p.NoExpiry {
		if ttl <= 0 {
			return claims.Set{}, cli.Usagef("--ttl must be positive")
		}
		set.Expiration = now.Add(ttl)
	}

	custom := map[string]any{}
	if p.ClaimsFile != "" {
		data, err := os.ReadFile(p.ClaimsFile)
		if err != nil {
			return claims.Set{}, fmt.Errorf("reading claims file: %w", err)
		}
		if err := json.Unmarshal(jsonc.ToJSON(data), &custom); err != nil {
			return claims.Set{}, fmt.Errorf("parsing claims file %s: %w", p.ClaimsFile, err)
		}
	}
	for _, assignment := range p.Claims {
		name, value, err := parseClaimFlag(assignment)
		if err != nil {
			return claims.Set{}, err
		}
		custom[name] = value
	}
	if len(custom) > 0 {
		set.Custom = custom
	}
	return set, nil
}

// parseClaimFlag splits NAME=VALUE. A VALUE that is valid JSON (a
// number, boolean, array, object or quoted string) is decoded; any
// other VALUE is taken as a literal string.
func parseClaimFlag(assignment string) (string, any, error) {
	name, raw, found := strings.Cut(assignment, "=")
	if !found || name == "" {
		return "", nil, cli.Usagef("--claim %q: want NAME=VALUE", assignment)
	}
	var value any
	if err := json.Unmarshal([]byte(raw), &value); err != nil {
		return name, raw, nil
	}
	return name, value, nil
}
