// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package claims

import (
	"errors"
	"slices"
	"testing"
	"time"

	"github.com/bureau-foundation/paseto/lib/codec"
	"github.com/bureau-foundation/paseto/lib/tokenerr"
)

const vectorMessage = `{"data":"this is a signed message","exp":"2039-01-01T00:00:00+00:00"}`

func mustParse(t *testing.T, payload string) Claims {
	t.Helper()
	claims, err := Parse([]byte(payload), nil)
	if err != nil {
		t.Fatalf("Parse(%s): %v", payload, err)
	}
	return claims
}

func TestParse(t *testing.T) {
	claims := mustParse(t, vectorMessage)
	data, ok := claims.String("data")
	if !ok || data != "this is a signed message" {
		t.Errorf("String(data) = %q, %v", data, ok)
	}
	if _, ok := claims.Claim("missing"); ok {
		t.Error("Claim(missing) reported present")
	}
}

func TestParseRejectsNonMap(t *testing.T) {
	for _, payload := range []string{`[]`, `"text"`, `42`, `null`, `{`, ``, `{"a":1} trailing`} {
		_, err := Parse([]byte(payload), codec.JSON)
		if !errors.Is(err, tokenerr.ErrClaimFormat) {
			t.Errorf("Parse(%q) error = %v, want ClaimFormat", payload, err)
		}
	}
}

func TestExpirationVector(t *testing.T) {
	claims := mustParse(t, vectorMessage)

	expiration, ok, err := claims.Expiration()
	if err != nil || !ok {
		t.Fatalf("Expiration = %v, %v, %v", expiration, ok, err)
	}
	if want := time.Date(2039, 1, 1, 0, 0, 0, 0, time.UTC); !expiration.Equal(want) {
		t.Errorf("Expiration = %v, want %v", expiration, want)
	}

	tests := []struct {
		now  time.Time
		want bool
	}{
		{time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC), false},
		{time.Date(2039, 1, 1, 0, 0, 0, 0, time.UTC), false},
		{time.Date(2039, 1, 1, 0, 0, 1, 0, time.UTC), true},
		{time.Date(2040, 1, 1, 0, 0, 0, 0, time.UTC), true},
	}
	for _, tt := range tests {
		expired, err := claims.IsExpired(tt.now, 0)
		if err != nil {
			t.Fatalf("IsExpired: %v", err)
		}
		if expired != tt.want {
			t.Errorf("IsExpired(%v) = %v, want %v", tt.now, expired, tt.want)
		}
	}
}

func TestIsExpiredLeeway(t *testing.T) {
	claims := mustParse(t, `{"exp":"2039-01-01T00:00:00Z"}`)
	now := time.Date(2039, 1, 1, 0, 0, 30, 0, time.UTC)
	if expired, _ := claims.IsExpired(now, time.Minute); expired {
		t.Error("expired within leeway")
	}
	if expired, _ := claims.IsExpired(now, 10*time.Second); !expired {
		t.Error("not expired beyond leeway")
	}
}

func TestNoExpirationNeverExpires(t *testing.T) {
	claims := mustParse(t, `{"data":"x"}`)
	expired, err := claims.IsExpired(time.Date(9999, 1, 1, 0, 0, 0, 0, time.UTC), 0)
	if err != nil || expired {
		t.Errorf("IsExpired = %v, %v; want false, nil", expired, err)
	}
}

func TestMalformedExpiration(t *testing.T) {
	for _, payload := range []string{
		`{"exp":"tomorrow"}`,
		`{"exp":"2039-01-01"}`,
		`{"exp":2208988800}`,
		`{"exp":null}`,
	} {
		claims := mustParse(t, payload)
		if _, _, err := claims.Expiration(); !errors.Is(err, tokenerr.ErrClaimFormat) {
			t.Errorf("%s: Expiration error = %v, want ClaimFormat", payload, err)
		}
		if _, err := claims.IsExpired(time.Now(), 0); !errors.Is(err, tokenerr.ErrClaimFormat) {
			t.Errorf("%s: IsExpired error = %v, want ClaimFormat", payload, err)
		}
	}
}

func TestRegisteredAccessors(t *testing.T) {
	claims := mustParse(t, `{
		"iss": "auth.example",
		"sub": "alice",
		"aud": ["api", "admin"],
		"nbf": "2030-01-01T00:00:00Z",
		"iat": "2029-12-31T23:59:00Z",
		"jti": "87e1b5c4-0000-4000-8000-000000000000"
	}`)

	if issuer, ok, err := claims.Issuer(); err != nil || !ok || issuer != "auth.example" {
		t.Errorf("Issuer = %q, %v, %v", issuer, ok, err)
	}
	if subject, ok, err := claims.Subject(); err != nil || !ok || subject != "alice" {
		t.Errorf("Subject = %q, %v, %v", subject, ok, err)
	}
	if audience, ok, err := claims.Audience(); err != nil || !ok || !slices.Equal(audience, []string{"api", "admin"}) {
		t.Errorf("Audience = %v, %v, %v", audience, ok, err)
	}
	if tokenID, ok, err := claims.TokenID(); err != nil || !ok || tokenID == "" {
		t.Errorf("TokenID = %q, %v, %v", tokenID, ok, err)
	}
	if notBefore, ok, err := claims.NotBefore(); err != nil || !ok || notBefore.Year() != 2030 {
		t.Errorf("NotBefore = %v, %v, %v", notBefore, ok, err)
	}
	if issuedAt, ok, err := claims.IssuedAt(); err != nil || !ok || issuedAt.Year() != 2029 {
		t.Errorf("IssuedAt = %v, %v, %v", issuedAt, ok, err)
	}
}

func TestRegisteredAccessorsRejectWrongShape(t *testing.T) {
	claims := mustParse(t, `{"iss": 7, "aud": [1], "sub": {"name": "alice"}}`)
	if _, _, err := claims.Issuer(); !errors.Is(err, tokenerr.ErrClaimFormat) {
		t.Errorf("Issuer error = %v, want ClaimFormat", err)
	}
	if _, _, err := claims.Audience(); !errors.Is(err, tokenerr.ErrClaimFormat) {
		t.Errorf("Audience error = %v, want ClaimFormat", err)
	}
	if _, _, err := claims.Subject(); !errors.Is(err, tokenerr.ErrClaimFormat) {
		t.Errorf("Subject error = %v, want ClaimFormat", err)
	}
}

func TestAudienceSingleString(t *testing.T) {
	audience, ok, err := mustParse(t, `{"aud":"api"}`).Audience()
	if err != nil || !ok || !slices.Equal(audience, []string{"api"}) {
		t.Errorf("Audience = %v, %v, %v", audience, ok, err)
	}
}

func TestParseCBOR(t *testing.T) {
	set := Set{Issuer: "auth.example", Expiration: time.Date(2039, 1, 1, 0, 0, 0, 0, time.UTC)}
	payload, err := set.Marshal(codec.CBOR)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	claims, err := Parse(payload, codec.CBOR)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	expiration, ok, err := claims.Expiration()
	if err != nil || !ok || !expiration.Equal(set.Expiration) {
		t.Errorf("Expiration = %v, %v, %v", expiration, ok, err)
	}
}
