// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"
	"slices"
	"time"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/paseto/cmd/paseto/cli"
	"github.com/bureau-foundation/paseto/lib/claims"
	"github.com/bureau-foundation/paseto/lib/codec"
	"github.com/bureau-foundation/paseto/lib/config"
	"github.com/bureau-foundation/paseto/lib/keys"
	"github.com/bureau-foundation/paseto/lib/paseto"
	"github.com/bureau-foundation/paseto/lib/revocation"
	"github.com/bureau-foundation/paseto/lib/tokenerr"
	"github.com/bureau-foundation/paseto/lib/wire"
)

type checkParams struct {
	configFlags
	keyFlags
	cli.JSONOutput
	Footer      string        `flag:"footer" desc:"require this exact footer"`
	NoFooter    bool          `flag:"no-footer" desc:"require the token to have no footer"`
	Raw         bool          `flag:"raw" desc:"print the payload as-is and skip claim checks"`
	Issuer      string        `flag:"issuer" desc:"required iss (default from config)"`
	Audience    string        `flag:"audience" desc:"required aud entry (default from config)"`
	Subject     string        `flag:"subject,s" desc:"required sub"`
	Leeway      time.Duration `flag:"leeway" desc:"clock skew allowed for exp, nbf and iat (default from config)"`
	Revocations string        `flag:"revocations" desc:"revocation list to consult (default from config)"`
	Codec       string        `flag:"codec" desc:"claim encoding, json or cbor (default from config)"`
	Assertion   string        `flag:"assertion" desc:"implicit assertion the token was signed with (v2 verify only)"`

	flags *pflag.FlagSet
}

// checkResult is the --json output of decrypt and verify.
type checkResult struct {
	Version string        `json:"version"`
	Purpose string        `json:"purpose"`
	Footer  string        `json:"footer,omitempty"`
	Claims  claims.Claims `json:"claims,omitempty"`
}

func checkCommand(env Env, name string, binding purposeBinding) *cli.Command {
	var params checkParams

	summary := "Decrypt and validate a local token"
	if binding.purpose == wire.Public {
		summary = "Verify and validate a public token"
	}

	return &cli.Command{
		Name:    name,
		Summary: summary,
		Description: summary + `.

The token is read from the argument or, without one, from stdin. On
success the claims are printed as JSON (or the raw payload with --raw)
and the exit code is 0. A token that fails authentication or a claim
check prints the reason to stderr and exits 1.

exp, nbf and iat are always checked. iss and aud are checked when given
by flag or config; jti is checked against the revocation list when one
is configured.`,
		Usage: "paseto " + name + " [flags] [token]",
		Examples: []cli.Example{
			{Description: "Check a token from a file", Command: "paseto " + name + " -k keys/session.key < token.txt"},
			{Description: "Require an audience and print details as JSON", Command: "paseto " + name + " --audience api --json TOKEN"},
		},
		Flags: func() *pflag.FlagSet {
			params.flags = cli.FlagsFromParams(name, &params)
			return params.flags
		},
		Run: func(args []string) error {
			raw, err := readToken(args, env.Stdin)
			if err != nil {
				return err
			}
			if params.Footer != "" && params.NoFooter {
				return cli.Usagef("--footer and --no-footer are mutually exclusive")
			}

			cfg, err := params.load()
			if err != nil {
				return err
			}
			logger := params.logger(env, name)

			// Verification keys are version specific, so the header is
			// read before the key is loaded.
			parts, err := wire.Split(raw)
			if err != nil {
				return rejected(env, err)
			}
			tokenVersion, err := wire.ParseVersion(parts.VersionTag)
			if err != nil {
				return rejected(env, err)
			}
			if !slices.Contains(cfg.AcceptedVersions(), tokenVersion) {
				return rejected(env, tokenerr.Newf(tokenerr.UnknownVersion, "version", "%v tokens are not accepted", tokenVersion))
			}

			options, err := params.parserOptions(cfg, binding, tokenVersion)
			if err != nil {
				return err
			}
			options = append(options,
				paseto.WithPurposes(binding.purpose),
				paseto.WithVersions(cfg.AcceptedVersions()...),
				paseto.WithClock(env.Clock),
				paseto.WithLogger(logger),
			)

			parser, err := paseto.NewParser(options...)
			if err != nil {
				return err
			}
			token, err := parser.Parse(raw)
			if err != nil {
				return rejected(env, err)
			}

			if params.Raw {
				_, err := env.Stdout.Write(token.Payload())
				return err
			}

			set, err := token.Claims()
			if err != nil {
				return err
			}
			result := checkResult{
				Version: token.Version().String(),
				Purpose: token.Purpose().String(),
				Footer:  string(token.Footer()),
				Claims:  set,
			}
			if done, err := params.EmitJSON(env.Stdout, result); done {
				return err
			}
			return cli.WriteJSON(env.Stdout, set)
		},
	}
}

// rejected reports a token failure on stderr and exits 1. Errors that
// are not about the token pass through unchanged.
func rejected(env Env, err error) error {
	if tokenerr.KindOf(err) == 0 {
		return err
	}
	fmt.Fprintf(env.Stderr, "token rejected: %v\n", err)
	return &cli.ExitError{Code: cli.ExitRejected}
}

// parserOptions builds the key, footer and claim policy options.
func (p *checkParams) parserOptions(cfg *config.Config, binding purposeBinding, version wire.Version) ([]paseto.ParserOption, error) {
	keyPath, err := p.keyPath(binding.checkKey(cfg))
	if err != nil {
		return nil, err
	}

	var options []paseto.ParserOption
	switch binding.purpose {
	case wire.Local:
		key, err := p.symmetricKey(cfg, keyPath)
		if err != nil {
			return nil, err
		}
		options = append(options, paseto.WithLocalKey(key))
	case wire.Public:
		key, err := keys.LoadPublic(version, keyPath)
		if err != nil {
			return nil, err
		}
		options = append(options, paseto.WithPublicKey(key))
		if p.Assertion != "" {
			options = append(options, paseto.WithImplicitAssertion([]byte(p.Assertion)))
		}
	}

	switch {
	case p.Footer != "":
		options = append(options, paseto.WithExpectedFooter([]byte(p.Footer)))
	case p.NoFooter:
		options = append(options, paseto.WithExpectedFooter(nil))
	}

	if p.Raw {
		return append(options, paseto.WithoutClaims()), nil
	}

	claimCodec, err := codec.ByName(flagOr(p.flags, "codec", p.Codec, cfg.Tokens.Codec))
	if err != nil {
		return nil, cli.Usagef("--codec: %v", err)
	}
	options = append(options, paseto.WithCodec(claimCodec))

	rules, err := p.rules(cfg)
	if err != nil {
		return nil, err
	}
	return append(options, paseto.WithRules(rules...)), nil
}

func (p *checkParams) rules(cfg *config.Config) ([]claims.Rule, error) {
	leeway := flagOr(p.flags, "leeway", p.Leeway, cfg.Leeway())
	rules := []claims.Rule{claims.NotExpired(leeway), claims.ValidAt(leeway)}
	if cfg.Tokens.RequireExpiration {
		rules = append(rules, claims.RequireExpiration())
	}

	issuer := p.Issuer
	if issuer == "" {
		issuer = cfg.Tokens.Issuer
	}
	if issuer != "" {
		rules = append(rules, claims.IssuedBy(issuer))
	}
	audience := p.Audience
	if audience == "" {
		audience = cfg.Tokens.Audience
	}
	if audience != "" {
		rules = append(rules, claims.ForAudience(audience))
	}
	if p.Subject != "" {
		rules = append(rules, claims.Subject(p.Subject))
	}

	listPath := p.Revocations
	if listPath == "" {
		listPath = cfg.Revocation.List
	}
	if listPath != "" {
		list, err := revocation.Load(listPath)
		if err != nil {
			return nil, err
		}
		rules = append(rules, claims.NotRevoked(list))
	}
	return rules, nil
}
