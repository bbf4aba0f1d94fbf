// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package paseto

import (
	"crypto"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/bureau-foundation/paseto/lib/b64url"
	"github.com/bureau-foundation/paseto/lib/claims"
	"github.com/bureau-foundation/paseto/lib/codec"
	"github.com/bureau-foundation/paseto/lib/keys"
	"github.com/bureau-foundation/paseto/lib/local"
	"github.com/bureau-foundation/paseto/lib/public"
	"github.com/bureau-foundation/paseto/lib/tokenerr"
	"github.com/bureau-foundation/paseto/lib/wire"
)

// Builder produces tokens for one version and purpose. It is immutable
// after NewBuilder and safe for concurrent use as long as its random
// source is.
type Builder struct {
	version    wire.Version
	purpose    wire.Purpose
	localKey   keys.Symmetric
	signingKey crypto.PrivateKey
	random     io.Reader
	assertion  []byte
	codec      codec.Codec
	keyID      string
	logger     *slog.Logger

	withKeyID bool
}

// BuilderOption configures a Builder.
type BuilderOption func(*Builder)

// WithSymmetricKey sets the key for local tokens.
func WithSymmetricKey(key keys.Symmetric) BuilderOption {
	return func(b *Builder) { b.localKey = key }
}

// WithSigningKey sets the private key for public tokens: an
// *rsa.PrivateKey for v1 or an ed25519.PrivateKey for v2.
func WithSigningKey(key crypto.PrivateKey) BuilderOption {
	return func(b *Builder) { b.signingKey = key }
}

// WithRandom replaces crypto/rand as the nonce and signature entropy
// source. Only deterministic tests should need this.
func WithRandom(random io.Reader) BuilderOption {
	return func(b *Builder) { b.random = random }
}

// WithAssertion binds tokens to bytes the verifier must supply
// out of band (v2.public only).
func WithAssertion(assertion []byte) BuilderOption {
	return func(b *Builder) { b.assertion = slices.Clone(assertion) }
}

// WithClaimCodec sets the codec BuildClaims encodes with.
func WithClaimCodec(claimCodec codec.Codec) BuilderOption {
	return func(b *Builder) { b.codec = claimCodec }
}

// WithKeyIDFooter writes {"kid":"<key id>"} as the footer whenever
// Build is called without one. The id is keys.ID of the symmetric key
// or keys.PublicID of the signing key's public half.
func WithKeyIDFooter() BuilderOption {
	return func(b *Builder) { b.withKeyID = true }
}

// WithBuilderLogger sets the logger. The default discards.
func WithBuilderLogger(logger *slog.Logger) BuilderOption {
	return func(b *Builder) { b.logger = logger }
}

// NewBuilder returns a Builder for version and purpose. The key for
// the purpose must be set through options.
func NewBuilder(version wire.Version, purpose wire.Purpose, options ...BuilderOption) (*Builder, error) {
	if !slices.Contains(wire.Versions(), version) {
		return nil, fmt.Errorf("paseto: unsupported version %v", version)
	}
	b := &Builder{
		version: version,
		purpose: purpose,
		codec:   codec.JSON,
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, option := range options {
		option(b)
	}
	if b.codec == nil {
		b.codec = codec.JSON
	}

	switch purpose {
	case wire.Local:
		if b.localKey.IsZero() {
			return nil, errors.New("paseto: local builder needs a symmetric key")
		}
		if len(b.assertion) > 0 {
			return nil, errors.New("paseto: implicit assertions are not defined for local tokens")
		}
		if b.withKeyID {
			b.keyID = b.localKey.ID()
		}
	case wire.Public:
		if b.signingKey == nil {
			return nil, errors.New("paseto: public builder needs a signing key")
		}
		if public.IsNilKey(b.signingKey) {
			return nil, tokenerr.Newf(tokenerr.InvalidKey, "key", "signing key is a nil %T", b.signingKey)
		}
		if b.withKeyID {
			signer, ok := b.signingKey.(crypto.Signer)
			if !ok {
				return nil, fmt.Errorf("paseto: signing key %T cannot report its public key", b.signingKey)
			}
			id, err := keys.PublicID(signer.Public())
			if err != nil {
				return nil, fmt.Errorf("paseto: computing key id: %w", err)
			}
			b.keyID = id
		}
	default:
		return nil, fmt.Errorf("paseto: unsupported purpose %v", purpose)
	}
	return b, nil
}

// Build seals or signs payload with footer and returns the token.
func (b *Builder) Build(payload, footer []byte) (string, error) {
	if len(footer) == 0 && b.keyID != "" {
		footer = keyIDFooter(b.keyID)
	}

	var (
		segment string
		err     error
	)
	switch b.purpose {
	case wire.Local:
		segment, err = local.Encrypt(b.localKey.Bytes(), payload, footer, b.version, b.random)
	case wire.Public:
		segment, err = public.Sign(b.signingKey, payload, footer, b.assertion, b.version, b.random)
	}
	if err != nil {
		b.logger.Debug("token build failed",
			"version", b.version.String(),
			"purpose", b.purpose.String(),
			"error", err,
		)
		return "", err
	}

	var footerSegment string
	if len(footer) > 0 {
		footerSegment = b64url.Encode(footer)
	}
	return wire.Join(b.version, b.purpose, segment, footerSegment), nil
}

// BuildClaims encodes set with the builder's codec and builds a token
// from it.
func (b *Builder) BuildClaims(set claims.Set, footer []byte) (string, error) {
	payload, err := set.Marshal(b.codec)
	if err != nil {
		return "", err
	}
	return b.Build(payload, footer)
}

// Version returns the version tokens are built for.
func (b *Builder) Version() wire.Version { return b.version }

// Purpose returns the purpose tokens are built for.
func (b *Builder) Purpose() wire.Purpose { return b.purpose }

// KeyID returns the id written to footers, or "" if WithKeyIDFooter
// was not given.
func (b *Builder) KeyID() string { return b.keyID }
