// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package paseto

import (
	"bytes"
	"sync"
	"time"

	"github.com/bureau-foundation/paseto/lib/claims"
	"github.com/bureau-foundation/paseto/lib/codec"
	"github.com/bureau-foundation/paseto/lib/wire"
)

// Token is an authenticated token. Accessors return copies, so callers
// cannot alter a Token shared between goroutines.
type Token struct {
	version wire.Version
	purpose wire.Purpose
	payload []byte
	footer  []byte
	codec   codec.Codec

	claimsOnce sync.Once
	claims     claims.Claims
	claimsErr  error
}

func newToken(version wire.Version, purpose wire.Purpose, payload, footer []byte, claimCodec codec.Codec) *Token {
	return &Token{
		version: version,
		purpose: purpose,
		payload: payload,
		footer:  footer,
		codec:   claimCodec,
	}
}

// Version returns the token's protocol version.
func (t *Token) Version() wire.Version { return t.version }

// Purpose returns the token's purpose.
func (t *Token) Purpose() wire.Purpose { return t.purpose }

// Payload returns the decrypted or verified message bytes.
func (t *Token) Payload() []byte { return bytes.Clone(t.payload) }

// Footer returns the authenticated footer, empty if the token has none.
func (t *Token) Footer() []byte {
	if len(t.footer) == 0 {
		return []byte{}
	}
	return bytes.Clone(t.footer)
}

// Claims decodes the payload as a claim set. The decode happens once;
// each call returns a deep copy, so nested arrays and maps can be
// modified freely.
func (t *Token) Claims() (claims.Claims, error) {
	t.claimsOnce.Do(func() {
		t.claims, t.claimsErr = claims.Parse(t.payload, t.codec)
	})
	if t.claimsErr != nil {
		return nil, t.claimsErr
	}
	return cloneValue(map[string]any(t.claims)).(map[string]any), nil
}

// cloneValue copies the containers a claim codec can produce. Scalars
// are immutable and returned as is.
func cloneValue(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		copied := make(map[string]any, len(typed))
		for name, entry := range typed {
			copied[name] = cloneValue(entry)
		}
		return copied
	case map[any]any:
		copied := make(map[any]any, len(typed))
		for name, entry := range typed {
			copied[name] = cloneValue(entry)
		}
		return copied
	case []any:
		copied := make([]any, len(typed))
		for index, entry := range typed {
			copied[index] = cloneValue(entry)
		}
		return copied
	case []byte:
		return bytes.Clone(typed)
	default:
		return value
	}
}

// IsExpired reports whether the token's exp claim is more than leeway
// before now.
func (t *Token) IsExpired(now time.Time, leeway time.Duration) (bool, error) {
	set, err := t.Claims()
	if err != nil {
		return false, err
	}
	return set.IsExpired(now, leeway)
}

// setClaims records claims the parser already decoded, so Claims does
// not decode the payload a second time.
func (t *Token) setClaims(decoded claims.Claims) {
	t.claimsOnce.Do(func() {
		t.claims = decoded
	})
}
