// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package claims reads and checks the claim set carried in a verified
// token payload.
//
// [Parse] decodes a payload into [Claims], a string-keyed map. The
// registered claims (iss, sub, aud, exp, nbf, iat, jti) have typed
// accessors; a registered claim present in the wrong shape is a
// [tokenerr.ErrClaimFormat] error rather than being silently treated
// as absent. Timestamps are RFC 3339 strings.
//
// Policy lives in [Rule] functions composed by [Validate]:
//
//	err := claims.Validate(set, now,
//	    claims.NotExpired(30*time.Second),
//	    claims.ValidAt(30*time.Second),
//	    claims.IssuedBy("auth.example"),
//	    claims.ForAudience("https://api.example"),
//	)
//
// Policy failures return this package's sentinels ([ErrExpired],
// [ErrNotYetValid], and so on), so callers can distinguish "the token
// is genuine but no longer acceptable" from "the token is not genuine".
//
// [Set] is the builder side: typed registered claims plus custom
// values, marshaled through a [codec.Codec].
package claims
