// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tokenerr

import (
	"errors"
	"fmt"
)

// Kind classifies a token failure.
type Kind uint8

const (
	// UnknownVersion is an unrecognized version tag in the wire format.
	UnknownVersion Kind = iota + 1

	// UnknownPurpose is an unrecognized purpose tag in the wire format.
	UnknownPurpose

	// Malformed covers wrong segment counts and segments too short to
	// hold their fixed-size fields.
	Malformed

	// Encoding is invalid base64url content.
	Encoding

	// ClaimFormat is a payload that cannot be read as a claim set, or a
	// registered claim present in the wrong shape.
	ClaimFormat

	// InvalidKey is key material of the wrong size or type for the
	// requested version and purpose.
	InvalidKey

	// Decryption is a failed authentication tag check (local purpose).
	Decryption

	// Verification is a failed signature check (public purpose).
	Verification

	// Rejected is an authentic token whose claims fail a validation
	// rule (expired, wrong audience, revoked). The rule's error is kept
	// as the cause.
	Rejected
)

// String returns the kind name used in error messages and logs.
func (k Kind) String() string {
	switch k {
	case UnknownVersion:
		return "unknown version"
	case UnknownPurpose:
		return "unknown purpose"
	case Malformed:
		return "malformed"
	case Encoding:
		return "encoding"
	case ClaimFormat:
		return "claim format"
	case InvalidKey:
		return "invalid key"
	case Decryption:
		return "decryption"
	case Verification:
		return "verification"
	case Rejected:
		return "rejected"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Sentinels for errors.Is matching. A sentinel matches any *Error of
// the same kind regardless of stage or wrapped cause.
var (
	ErrUnknownVersion = &Error{Kind: UnknownVersion}
	ErrUnknownPurpose = &Error{Kind: UnknownPurpose}
	ErrMalformed      = &Error{Kind: Malformed}
	ErrEncoding       = &Error{Kind: Encoding}
	ErrClaimFormat    = &Error{Kind: ClaimFormat}
	ErrInvalidKey     = &Error{Kind: InvalidKey}
	ErrDecryption     = &Error{Kind: Decryption}
	ErrVerification   = &Error{Kind: Verification}
	ErrRejected       = &Error{Kind: Rejected}
)

// Error is a tagged token failure.
type Error struct {
	// Kind is the failure class.
	Kind Kind

	// Stage names the pipeline stage or token segment that rejected
	// the input (for example "split", "payload", "footer", "claims").
	Stage string

	// Err is the underlying cause, if any. Always nil for Decryption
	// and Verification.
	Err error
}

// New returns an *Error of the given kind at stage, wrapping cause.
// Causes passed with Decryption or Verification are dropped so that a
// primitive's error text can never leak through.
func New(kind Kind, stage string, cause error) *Error {
	if kind == Decryption || kind == Verification {
		cause = nil
	}
	return &Error{Kind: kind, Stage: stage, Err: cause}
}

// Newf is New with a formatted cause.
func Newf(kind Kind, stage, format string, args ...any) *Error {
	return New(kind, stage, fmt.Errorf(format, args...))
}

func (e *Error) Error() string {
	message := "token: " + e.Kind.String()
	if e.Stage != "" {
		message += " (" + e.Stage + ")"
	}
	if e.Err != nil {
		message += ": " + e.Err.Error()
	}
	return message
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is an *Error sentinel of the same kind. A
// target with a non-empty Stage must match the stage as well.
func (e *Error) Is(target error) bool {
	other, ok := target.(*Error)
	if !ok {
		return false
	}
	if other.Kind != e.Kind {
		return false
	}
	return other.Stage == "" || other.Stage == e.Stage
}

// KindOf returns the kind of the first *Error in err's chain, or zero
// if there is none.
func KindOf(err error) Kind {
	var tokenError *Error
	if errors.As(err, &tokenError) {
		return tokenError.Kind
	}
	return 0
}

// StageOf returns the stage of the first *Error in err's chain.
func StageOf(err error) string {
	var tokenError *Error
	if errors.As(err, &tokenError) {
		return tokenError.Stage
	}
	return ""
}
