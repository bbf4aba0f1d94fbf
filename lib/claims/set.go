// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package claims

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/bureau-foundation/paseto/lib/codec"
)

// Set is a claim set under construction. Zero-valued registered
// fields are omitted from the encoding.
type Set struct {
	Issuer     string
	Subject    string
	Audience   []string
	Expiration time.Time
	NotBefore  time.Time
	IssuedAt   time.Time
	TokenID    string

	// Custom holds application claims. Keys must not collide with the
	// registered claim names.
	Custom map[string]any
}

// NewTokenID returns a random UUIDv4 suitable for jti.
func NewTokenID() string {
	return uuid.NewString()
}

// Map flattens the set into the map that is encoded. Timestamps are
// RFC 3339 in UTC. A single audience is written as a string, several
// as an array.
func (s Set) Map() (map[string]any, error) {
	values := make(map[string]any, len(s.Custom)+7)
	for name, value := range s.Custom {
		switch name {
		case IssuerClaim, SubjectClaim, AudienceClaim, ExpirationClaim, NotBeforeClaim, IssuedAtClaim, TokenIDClaim:
			return nil, fmt.Errorf("custom claim %q collides with a registered claim", name)
		}
		values[name] = value
	}

	putString(values, IssuerClaim, s.Issuer)
	putString(values, SubjectClaim, s.Subject)
	putString(values, TokenIDClaim, s.TokenID)
	putTime(values, ExpirationClaim, s.Expiration)
	putTime(values, NotBeforeClaim, s.NotBefore)
	putTime(values, IssuedAtClaim, s.IssuedAt)
	switch len(s.Audience) {
	case 0:
	case 1:
		values[AudienceClaim] = s.Audience[0]
	default:
		values[AudienceClaim] = append([]string(nil), s.Audience...)
	}
	return values, nil
}

// Marshal encodes the set with c (JSON when nil).
func (s Set) Marshal(c codec.Codec) ([]byte, error) {
	if c == nil {
		c = codec.JSON
	}
	values, err := s.Map()
	if err != nil {
		return nil, err
	}
	data, err := c.Marshal(values)
	if err != nil {
		return nil, fmt.Errorf("encoding %s claim set: %w", c.Name(), err)
	}
	return data, nil
}

func putString(values map[string]any, name, value string) {
	if value != "" {
		values[name] = value
	}
}

func putTime(values map[string]any, name string, value time.Time) {
	if !value.IsZero() {
		values[name] = value.UTC().Format(time.RFC3339)
	}
}
