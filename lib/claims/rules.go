// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package claims

import (
	"errors"
	"fmt"
	"slices"
	"time"
)

// Policy failures. A claim present in the wrong shape is reported as
// tokenerr.ErrClaimFormat instead.
var (
	ErrExpired          = errors.New("token has expired")
	ErrNotYetValid      = errors.New("token is not yet valid")
	ErrIssuerMismatch   = errors.New("token issuer mismatch")
	ErrAudienceMismatch = errors.New("token audience mismatch")
	ErrSubjectMismatch  = errors.New("token subject mismatch")
	ErrRevoked          = errors.New("token has been revoked")
)

// Rule checks one policy against a claim set at time now.
type Rule func(claims Claims, now time.Time) error

// Validate runs rules in order and returns the first failure.
func Validate(claims Claims, now time.Time, rules ...Rule) error {
	for _, rule := range rules {
		if err := rule(claims, now); err != nil {
			return err
		}
	}
	return nil
}

// NotExpired rejects a claim set whose exp is more than leeway in the
// past. A claim set without exp passes.
func NotExpired(leeway time.Duration) Rule {
	return func(claims Claims, now time.Time) error {
		expiration, ok, err := claims.Expiration()
		if err != nil || !ok {
			return err
		}
		if now.After(expiration.Add(leeway)) {
			return fmt.Errorf("%w: expired at %s", ErrExpired, expiration.UTC().Format(time.RFC3339))
		}
		return nil
	}
}

// RequireExpiration rejects a claim set without exp. Combine with
// NotExpired for issuers that must never mint non-expiring tokens.
func RequireExpiration() Rule {
	return func(claims Claims, _ time.Time) error {
		_, ok, err := claims.Expiration()
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%w: no exp claim", ErrExpired)
		}
		return nil
	}
}

// ValidAt rejects a claim set whose nbf or iat is more than leeway in
// the future.
func ValidAt(leeway time.Duration) Rule {
	return func(claims Claims, now time.Time) error {
		limit := now.Add(leeway)
		notBefore, ok, err := claims.NotBefore()
		if err != nil {
			return err
		}
		if ok && notBefore.After(limit) {
			return fmt.Errorf("%w: not before %s", ErrNotYetValid, notBefore.UTC().Format(time.RFC3339))
		}
		issuedAt, ok, err := claims.IssuedAt()
		if err != nil {
			return err
		}
		if ok && issuedAt.After(limit) {
			return fmt.Errorf("%w: issued at %s", ErrNotYetValid, issuedAt.UTC().Format(time.RFC3339))
		}
		return nil
	}
}

// IssuedBy requires iss to equal issuer.
func IssuedBy(issuer string) Rule {
	return func(claims Claims, _ time.Time) error {
		actual, ok, err := claims.Issuer()
		if err != nil {
			return err
		}
		if !ok || actual != issuer {
			return fmt.Errorf("%w: want %q", ErrIssuerMismatch, issuer)
		}
		return nil
	}
}

// ForAudience requires audience to appear in aud.
func ForAudience(audience string) Rule {
	return func(claims Claims, _ time.Time) error {
		actual, _, err := claims.Audience()
		if err != nil {
			return err
		}
		if !slices.Contains(actual, audience) {
			return fmt.Errorf("%w: want %q", ErrAudienceMismatch, audience)
		}
		return nil
	}
}

// Subject requires sub to equal subject.
func Subject(subject string) Rule {
	return func(claims Claims, _ time.Time) error {
		actual, ok, err := claims.Subject()
		if err != nil {
			return err
		}
		if !ok || actual != subject {
			return fmt.Errorf("%w: want %q", ErrSubjectMismatch, subject)
		}
		return nil
	}
}

// RevocationChecker reports whether a token ID has been revoked.
// revocation.List implements it.
type RevocationChecker interface {
	IsRevoked(tokenID string) bool
}

// NotRevoked rejects a claim set whose jti is in checker. A claim set
// without jti cannot be revoked individually and passes.
func NotRevoked(checker RevocationChecker) Rule {
	return func(claims Claims, _ time.Time) error {
		tokenID, ok, err := claims.TokenID()
		if err != nil || !ok {
			return err
		}
		if checker.IsRevoked(tokenID) {
			return fmt.Errorf("%w: jti %q", ErrRevoked, tokenID)
		}
		return nil
	}
}
