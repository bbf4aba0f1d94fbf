// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package claims

import (
	"time"

	"github.com/bureau-foundation/paseto/lib/codec"
	"github.com/bureau-foundation/paseto/lib/tokenerr"
)

// Registered claim names.
const (
	IssuerClaim     = "iss"
	SubjectClaim    = "sub"
	AudienceClaim   = "aud"
	ExpirationClaim = "exp"
	NotBeforeClaim  = "nbf"
	IssuedAtClaim   = "iat"
	TokenIDClaim    = "jti"
)

// Claims is a decoded claim set.
type Claims map[string]any

// Parse decodes payload with c (JSON when nil). The payload must
// decode to a map; anything else is a ClaimFormat error.
func Parse(payload []byte, c codec.Codec) (Claims, error) {
	if c == nil {
		c = codec.JSON
	}
	var decoded any
	if err := c.Unmarshal(payload, &decoded); err != nil {
		return nil, tokenerr.Newf(tokenerr.ClaimFormat, "claims", "decoding %s claim set: %w", c.Name(), err)
	}
	values, ok := decoded.(map[string]any)
	if !ok {
		return nil, tokenerr.Newf(tokenerr.ClaimFormat, "claims", "claim set is %s, want a map", describe(decoded))
	}
	return Claims(values), nil
}

// Claim returns the raw value of a claim.
func (c Claims) Claim(name string) (any, bool) {
	value, ok := c[name]
	return value, ok
}

// String returns a claim's value if it is present and a string.
func (c Claims) String(name string) (string, bool) {
	value, ok := c[name].(string)
	return value, ok
}

// Issuer returns the iss claim.
func (c Claims) Issuer() (string, bool, error) { return c.registeredString(IssuerClaim) }

// Subject returns the sub claim.
func (c Claims) Subject() (string, bool, error) { return c.registeredString(SubjectClaim) }

// TokenID returns the jti claim.
func (c Claims) TokenID() (string, bool, error) { return c.registeredString(TokenIDClaim) }

// Audience returns the aud claim. A single string and an array of
// strings are both accepted; either way the result is a slice.
func (c Claims) Audience() ([]string, bool, error) {
	value, ok := c[AudienceClaim]
	if !ok {
		return nil, false, nil
	}
	switch audience := value.(type) {
	case string:
		return []string{audience}, true, nil
	case []any:
		result := make([]string, 0, len(audience))
		for index, entry := range audience {
			text, ok := entry.(string)
			if !ok {
				return nil, true, tokenerr.Newf(tokenerr.ClaimFormat, "claims", "aud[%d] is %s, want string", index, describe(entry))
			}
			result = append(result, text)
		}
		return result, true, nil
	default:
		return nil, true, tokenerr.Newf(tokenerr.ClaimFormat, "claims", "aud is %s, want string or array", describe(value))
	}
}

// Expiration returns the exp claim. The boolean is false when exp is
// absent; a present but non-string or non-RFC 3339 exp is a
// ClaimFormat error.
func (c Claims) Expiration() (time.Time, bool, error) { return c.registeredTime(ExpirationClaim) }

// NotBefore returns the nbf claim.
func (c Claims) NotBefore() (time.Time, bool, error) { return c.registeredTime(NotBeforeClaim) }

// IssuedAt returns the iat claim.
func (c Claims) IssuedAt() (time.Time, bool, error) { return c.registeredTime(IssuedAtClaim) }

// IsExpired reports whether now is strictly after exp + leeway. A
// claim set without exp never expires.
func (c Claims) IsExpired(now time.Time, leeway time.Duration) (bool, error) {
	expiration, ok, err := c.Expiration()
	if err != nil || !ok {
		return false, err
	}
	return now.After(expiration.Add(leeway)), nil
}

func (c Claims) registeredString(name string) (string, bool, error) {
	value, ok := c[name]
	if !ok {
		return "", false, nil
	}
	text, isString := value.(string)
	if !isString {
		return "", true, tokenerr.Newf(tokenerr.ClaimFormat, "claims", "%s is %s, want string", name, describe(value))
	}
	return text, true, nil
}

func (c Claims) registeredTime(name string) (time.Time, bool, error) {
	value, ok := c[name]
	if !ok {
		return time.Time{}, false, nil
	}
	text, isString := value.(string)
	if !isString {
		return time.Time{}, true, tokenerr.Newf(tokenerr.ClaimFormat, "claims", "%s is %s, want RFC 3339 string", name, describe(value))
	}
	parsed, err := time.Parse(time.RFC3339, text)
	if err != nil {
		return time.Time{}, true, tokenerr.Newf(tokenerr.ClaimFormat, "claims", "%s is not an RFC 3339 timestamp", name)
	}
	return parsed, true, nil
}

// describe names a decoded value's shape without echoing its content.
func describe(value any) string {
	switch value.(type) {
	case nil:
		return "null"
	case string:
		return "a string"
	case bool:
		return "a boolean"
	case []any:
		return "an array"
	case map[string]any:
		return "a map"
	case float64, int64, uint64, int, uint, float32, int32:
		return "a number"
	default:
		return "an unsupported value"
	}
}
