// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package paseto

import (
	"crypto"
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/bureau-foundation/paseto/lib/b64url"
	"github.com/bureau-foundation/paseto/lib/claims"
	"github.com/bureau-foundation/paseto/lib/clock"
	"github.com/bureau-foundation/paseto/lib/codec"
	"github.com/bureau-foundation/paseto/lib/keys"
	"github.com/bureau-foundation/paseto/lib/local"
	"github.com/bureau-foundation/paseto/lib/public"
	"github.com/bureau-foundation/paseto/lib/tokenerr"
	"github.com/bureau-foundation/paseto/lib/wire"
)

// Parser verifies tokens against a fixed configuration. It is
// immutable after NewParser and safe for concurrent use.
type Parser struct {
	localKey       keys.Symmetric
	publicKey      crypto.PublicKey
	versions       []wire.Version
	purposes       []wire.Purpose
	assertion      []byte
	expectedFooter []byte
	checkFooter    bool
	codec          codec.Codec
	rules          []claims.Rule
	rulesSet       bool
	skipClaims     bool
	clock          clock.Clock
	logger         *slog.Logger
}

// ParserOption configures a Parser.
type ParserOption func(*Parser)

// WithLocalKey sets the symmetric key for local tokens.
func WithLocalKey(key keys.Symmetric) ParserOption {
	return func(p *Parser) { p.localKey = key }
}

// WithPublicKey sets the verification key for public tokens: an
// *rsa.PublicKey for v1 or an ed25519.PublicKey for v2.
func WithPublicKey(key crypto.PublicKey) ParserOption {
	return func(p *Parser) { p.publicKey = key }
}

// WithVersions restricts the accepted versions. The default accepts
// every version for which a usable key is configured.
func WithVersions(versions ...wire.Version) ParserOption {
	return func(p *Parser) { p.versions = slices.Clone(versions) }
}

// WithPurposes restricts the accepted purposes.
func WithPurposes(purposes ...wire.Purpose) ParserOption {
	return func(p *Parser) { p.purposes = slices.Clone(purposes) }
}

// WithImplicitAssertion sets bytes the token must have been signed
// with but that are not carried in it (v2.public only).
func WithImplicitAssertion(assertion []byte) ParserOption {
	return func(p *Parser) { p.assertion = slices.Clone(assertion) }
}

// WithExpectedFooter requires the token's footer to equal footer
// exactly. An empty footer requires the token to have none.
func WithExpectedFooter(footer []byte) ParserOption {
	return func(p *Parser) {
		p.expectedFooter = slices.Clone(footer)
		p.checkFooter = true
	}
}

// WithCodec sets the claim codec (JSON by default).
func WithCodec(claimCodec codec.Codec) ParserOption {
	return func(p *Parser) { p.codec = claimCodec }
}

// WithRules replaces the claim rules. Without this option the parser
// applies claims.NotExpired(0). Passing no rules disables claim policy
// while still requiring the payload to be a claim set.
func WithRules(rules ...claims.Rule) ParserOption {
	return func(p *Parser) {
		p.rules = slices.Clone(rules)
		p.rulesSet = true
	}
}

// WithoutClaims skips the claims stage entirely, for tokens whose
// payload is not a claim set.
func WithoutClaims() ParserOption {
	return func(p *Parser) { p.skipClaims = true }
}

// WithClock sets the time source for claim rules.
func WithClock(source clock.Clock) ParserOption {
	return func(p *Parser) { p.clock = source }
}

// WithLogger sets the logger for rejection diagnostics. The default
// discards.
func WithLogger(logger *slog.Logger) ParserOption {
	return func(p *Parser) { p.logger = logger }
}

// NewParser builds a Parser. At least one key is required.
func NewParser(options ...ParserOption) (*Parser, error) {
	p := &Parser{
		codec:  codec.JSON,
		clock:  clock.Real(),
		logger: slog.New(slog.DiscardHandler),
	}
	for _, option := range options {
		option(p)
	}

	if p.publicKey != nil && public.IsNilKey(p.publicKey) {
		return nil, tokenerr.Newf(tokenerr.InvalidKey, "key", "public key is a nil %T", p.publicKey)
	}
	if p.localKey.IsZero() && p.publicKey == nil {
		return nil, errors.New("paseto: parser needs a local key, a public key, or both")
	}
	if p.codec == nil {
		p.codec = codec.JSON
	}
	if !p.rulesSet {
		p.rules = []claims.Rule{claims.NotExpired(0)}
	}
	if len(p.versions) == 0 {
		p.versions = wire.Versions()
	}
	if len(p.purposes) == 0 {
		if !p.localKey.IsZero() {
			p.purposes = append(p.purposes, wire.Local)
		}
		if p.publicKey != nil {
			p.purposes = append(p.purposes, wire.Public)
		}
	}
	for _, purpose := range p.purposes {
		if purpose == wire.Local && p.localKey.IsZero() {
			return nil, errors.New("paseto: local purpose accepted but no local key configured")
		}
		if purpose == wire.Public && p.publicKey == nil {
			return nil, errors.New("paseto: public purpose accepted but no public key configured")
		}
	}
	return p, nil
}

// Parse verifies raw and returns the authenticated token.
func (p *Parser) Parse(raw string) (*Token, error) {
	token, err := p.parse(raw)
	if err != nil {
		p.logger.Debug("token rejected",
			"stage", tokenerr.StageOf(err),
			"kind", tokenerr.KindOf(err).String(),
		)
		return nil, err
	}
	p.logger.Debug("token accepted",
		"version", token.version.String(),
		"purpose", token.purpose.String(),
	)
	return token, nil
}

func (p *Parser) parse(raw string) (*Token, error) {
	parts, err := wire.Split(raw)
	if err != nil {
		return nil, err
	}

	version, err := wire.ParseVersion(parts.VersionTag)
	if err != nil {
		return nil, err
	}
	if !slices.Contains(p.versions, version) {
		return nil, tokenerr.Newf(tokenerr.UnknownVersion, "version", "version %s is not accepted", version)
	}

	purpose, err := wire.ParsePurpose(parts.PurposeTag)
	if err != nil {
		return nil, err
	}
	if !slices.Contains(p.purposes, purpose) {
		return nil, tokenerr.Newf(tokenerr.UnknownPurpose, "purpose", "purpose %s is not accepted", purpose)
	}

	footer, err := b64url.Decode(parts.Footer)
	if err != nil {
		return nil, tokenerr.New(tokenerr.Encoding, "footer", err)
	}

	var payload []byte
	switch purpose {
	case wire.Local:
		if len(p.assertion) > 0 {
			return nil, tokenerr.Newf(tokenerr.Malformed, "assertion", "implicit assertions are not defined for local tokens")
		}
		payload, err = local.Decrypt(p.localKey.Bytes(), parts.Payload, footer, version)
	case wire.Public:
		payload, err = public.Verify(p.publicKey, parts.Payload, footer, p.assertion, version)
	default:
		err = tokenerr.Newf(tokenerr.UnknownPurpose, "purpose", "no engine for purpose %v", purpose)
	}
	if err != nil {
		return nil, err
	}

	if p.checkFooter && subtle.ConstantTimeCompare(footer, p.expectedFooter) != 1 {
		return nil, tokenerr.Newf(tokenerr.Malformed, "footer", "footer does not match the expected value")
	}

	token := newToken(version, purpose, payload, footer, p.codec)
	if p.skipClaims {
		return token, nil
	}

	decoded, err := claims.Parse(payload, p.codec)
	if err != nil {
		return nil, err
	}
	if err := claims.Validate(decoded, p.clock.Now(), p.rules...); err != nil {
		if tokenerr.KindOf(err) != 0 {
			return nil, err
		}
		return nil, tokenerr.New(tokenerr.Rejected, "claims", err)
	}
	token.setClaims(decoded)
	return token, nil
}

// String describes the parser's accepted versions and purposes for
// diagnostics. It never includes key material.
func (p *Parser) String() string {
	return fmt.Sprintf("paseto.Parser{versions: %v, purposes: %v, rules: %d}", p.versions, p.purposes, len(p.rules))
}
