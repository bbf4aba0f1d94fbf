// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package clock provides an injectable time source for expiry checks.
//
// Claim validation compares token timestamps against "now". Code that
// needs the current time accepts a Clock instead of calling time.Now
// directly. In production, Real() provides the standard library
// behavior. In tests, Fake() provides a clock that moves only when the
// test moves it, so expiry boundaries can be checked to the second.
//
//	fake := clock.Fake(time.Date(2039, 1, 1, 0, 0, 0, 0, time.UTC))
//	parser, _ := paseto.NewParser(paseto.WithClock(fake), ...)
//	fake.Advance(time.Second) // now one second past exp
package clock
