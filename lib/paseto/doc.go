// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package paseto is the entry point for building and parsing tokens.
//
// A [Parser] is configured once with the keys and policy a service
// accepts and is then safe for concurrent use:
//
//	parser, err := paseto.NewParser(
//	    paseto.WithLocalKey(key),
//	    paseto.WithVersions(wire.V2),
//	    paseto.WithRules(claims.NotExpired(30*time.Second), claims.IssuedBy("auth.example")),
//	    paseto.WithLogger(logger),
//	)
//	token, err := parser.Parse(raw)
//
// Parse runs a fixed pipeline: split, version, purpose, crypto, claims.
// The first stage to reject the token ends the pipeline, and the error
// is a *tokenerr.Error naming that stage. A [Token] is only ever
// constructed from a payload that passed authentication.
//
// A [Builder] produces tokens for one version and purpose:
//
//	builder, err := paseto.NewBuilder(wire.V2, wire.Public, paseto.WithSigningKey(private))
//	raw, err := builder.BuildClaims(claims.Set{Subject: "alice", Expiration: exp}, nil)
//
// Neither side logs key material, nonces, tags, or payloads. Rejections
// are logged at debug level with the stage and error kind only.
package paseto
