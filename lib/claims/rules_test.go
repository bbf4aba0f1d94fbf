// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package claims

import (
	"errors"
	"testing"
	"time"

	"github.com/bureau-foundation/paseto/lib/tokenerr"
)

type revokedSet map[string]bool

func (r revokedSet) IsRevoked(tokenID string) bool { return r[tokenID] }

func TestValidate(t *testing.T) {
	claims := mustParse(t, `{
		"iss": "auth.example",
		"sub": "alice",
		"aud": ["api", "admin"],
		"exp": "2039-01-01T00:00:00Z",
		"nbf": "2030-01-01T00:00:00Z",
		"iat": "2030-01-01T00:00:00Z",
		"jti": "token-1"
	}`)
	now := time.Date(2035, 6, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		now   time.Time
		rules []Rule
		want  error
	}{
		{"all pass", now, []Rule{
			NotExpired(0), RequireExpiration(), ValidAt(0), IssuedBy("auth.example"),
			ForAudience("admin"), Subject("alice"), NotRevoked(revokedSet{}),
		}, nil},
		{"expired", time.Date(2040, 1, 1, 0, 0, 0, 0, time.UTC), []Rule{NotExpired(time.Minute)}, ErrExpired},
		{"not yet valid", time.Date(2029, 12, 31, 0, 0, 0, 0, time.UTC), []Rule{ValidAt(time.Minute)}, ErrNotYetValid},
		{"nbf within leeway", time.Date(2029, 12, 31, 23, 59, 30, 0, time.UTC), []Rule{ValidAt(time.Minute)}, nil},
		{"wrong issuer", now, []Rule{IssuedBy("other.example")}, ErrIssuerMismatch},
		{"wrong audience", now, []Rule{ForAudience("billing")}, ErrAudienceMismatch},
		{"wrong subject", now, []Rule{Subject("bob")}, ErrSubjectMismatch},
		{"revoked", now, []Rule{NotRevoked(revokedSet{"token-1": true})}, ErrRevoked},
		{"first failure wins", now, []Rule{IssuedBy("x"), Subject("y")}, ErrIssuerMismatch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(claims, tt.now, tt.rules...)
			if tt.want == nil {
				if err != nil {
					t.Fatalf("Validate: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("Validate error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestRulesOnAbsentClaims(t *testing.T) {
	claims := mustParse(t, `{}`)
	now := time.Date(2035, 1, 1, 0, 0, 0, 0, time.UTC)

	if err := Validate(claims, now, NotExpired(0), ValidAt(0), NotRevoked(revokedSet{})); err != nil {
		t.Errorf("optional-claim rules on empty set: %v", err)
	}
	if err := Validate(claims, now, RequireExpiration()); !errors.Is(err, ErrExpired) {
		t.Errorf("RequireExpiration error = %v, want ErrExpired", err)
	}
	if err := Validate(claims, now, IssuedBy("auth.example")); !errors.Is(err, ErrIssuerMismatch) {
		t.Errorf("IssuedBy error = %v, want ErrIssuerMismatch", err)
	}
	if err := Validate(claims, now, ForAudience("api")); !errors.Is(err, ErrAudienceMismatch) {
		t.Errorf("ForAudience error = %v, want ErrAudienceMismatch", err)
	}
}

func TestRulesSurfaceClaimFormat(t *testing.T) {
	claims := mustParse(t, `{"exp":"soon","nbf":false}`)
	now := time.Now()
	if err := Validate(claims, now, NotExpired(0)); !errors.Is(err, tokenerr.ErrClaimFormat) {
		t.Errorf("NotExpired error = %v, want ClaimFormat", err)
	}
	if err := Validate(claims, now, ValidAt(0)); !errors.Is(err, tokenerr.ErrClaimFormat) {
		t.Errorf("ValidAt error = %v, want ClaimFormat", err)
	}
}
