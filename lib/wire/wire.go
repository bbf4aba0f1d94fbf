// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package wire splits and joins the dot-delimited token format:
//
//	version.purpose.payload[.footer]
//
// It validates segment structure and the version and purpose tags but
// performs no base64 decoding and no cryptography. The header returned
// by [Parts.Header] is rebuilt from the validated tags so that it is
// byte-identical to what the sender authenticated.
package wire

import (
	"strings"

	"github.com/bureau-foundation/paseto/lib/tokenerr"
)

// Version is a protocol version. The set is closed: adding a version
// means adding a case to every switch over Version in this module.
type Version uint8

const (
	V1 Version = iota + 1
	V2
)

// String returns the wire tag ("v1", "v2").
func (v Version) String() string {
	switch v {
	case V1:
		return "v1"
	case V2:
		return "v2"
	default:
		return "v?"
	}
}

// Versions lists every supported version in ascending order.
func Versions() []Version { return []Version{V1, V2} }

// ParseVersion maps an exact wire tag to a Version. Tags are
// case-sensitive.
func ParseVersion(tag string) (Version, error) {
	switch tag {
	case "v1":
		return V1, nil
	case "v2":
		return V2, nil
	default:
		return 0, tokenerr.Newf(tokenerr.UnknownVersion, "version", "unrecognized version tag %q", truncate(tag))
	}
}

// Purpose selects symmetric encryption (Local) or asymmetric signing
// (Public).
type Purpose uint8

const (
	Local Purpose = iota + 1
	Public
)

// String returns the wire tag ("local", "public").
func (p Purpose) String() string {
	switch p {
	case Local:
		return "local"
	case Public:
		return "public"
	default:
		return "?"
	}
}

// Purposes lists every supported purpose.
func Purposes() []Purpose { return []Purpose{Local, Public} }

// ParsePurpose maps an exact wire tag to a Purpose.
func ParsePurpose(tag string) (Purpose, error) {
	switch tag {
	case "local":
		return Local, nil
	case "public":
		return Public, nil
	default:
		return 0, tokenerr.Newf(tokenerr.UnknownPurpose, "purpose", "unrecognized purpose tag %q", truncate(tag))
	}
}

// Header returns the authenticated header "<version>.<purpose>." for
// a token being built.
func Header(version Version, purpose Purpose) []byte {
	return []byte(version.String() + "." + purpose.String() + ".")
}

// Parts is a token split into its segments. VersionTag and PurposeTag
// are the literal strings from the token; Payload and Footer are still
// base64url-encoded. Footer is empty when the token has three segments.
type Parts struct {
	VersionTag string
	PurposeTag string
	Payload    string
	Footer     string
}

// Split breaks a token into segments. It requires three or four
// segments, a non-empty payload, and, when a fourth segment is present,
// a non-empty footer. Tags are not interpreted; use [ParseVersion] and
// [ParsePurpose] on the returned Parts.
func Split(token string) (Parts, error) {
	segments := strings.SplitN(token, ".", 5)
	switch len(segments) {
	case 1:
		return Parts{}, tokenerr.Newf(tokenerr.Malformed, "split", "missing purpose segment")
	case 2:
		return Parts{}, tokenerr.Newf(tokenerr.Malformed, "split", "missing payload segment")
	case 3, 4:
	default:
		return Parts{}, tokenerr.Newf(tokenerr.Malformed, "split", "too many segments")
	}

	parts := Parts{
		VersionTag: segments[0],
		PurposeTag: segments[1],
		Payload:    segments[2],
	}
	if parts.Payload == "" {
		return Parts{}, tokenerr.Newf(tokenerr.Malformed, "payload", "empty payload segment")
	}
	if len(segments) == 4 {
		if segments[3] == "" {
			return Parts{}, tokenerr.Newf(tokenerr.Malformed, "footer", "empty footer segment")
		}
		parts.Footer = segments[3]
	}
	return parts, nil
}

// Header returns the literal header "<version>.<purpose>." as it
// appeared in the token.
func (p Parts) Header() []byte {
	return []byte(p.VersionTag + "." + p.PurposeTag + ".")
}

// Join assembles a token. The footer segment is omitted when empty.
func Join(version Version, purpose Purpose, payloadSegment, footerSegment string) string {
	var builder strings.Builder
	builder.Grow(len(version.String()) + len(purpose.String()) + len(payloadSegment) + len(footerSegment) + 3)
	builder.WriteString(version.String())
	builder.WriteByte('.')
	builder.WriteString(purpose.String())
	builder.WriteByte('.')
	builder.WriteString(payloadSegment)
	if footerSegment != "" {
		builder.WriteByte('.')
		builder.WriteString(footerSegment)
	}
	return builder.String()
}

// truncate bounds attacker-controlled tags echoed into error messages.
func truncate(tag string) string {
	const limit = 16
	if len(tag) <= limit {
		return tag
	}
	return tag[:limit] + "..."
}
