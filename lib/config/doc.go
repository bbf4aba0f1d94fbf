// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides YAML configuration loading for the paseto
// command.
//
// Configuration is loaded from a single file specified by either the
// PASETO_CONFIG environment variable (via [Load]) or a --config flag
// (via [LoadFile]). There are no fallbacks, no ~/.config discovery,
// and no automatic file search.
//
// The configuration file supports environment-specific sections
// (development, staging, production) that override base values when
// [Config].Environment matches. Production is stricter by default:
// v1 tokens are refused unless tokens.allow_v1 is set, and tokens must
// carry an expiration.
//
// Variable expansion is performed on path fields after loading:
// ${HOME}, ${PASETO_ROOT}, and ${VAR:-default} patterns are expanded.
// No other environment variables override config values.
//
// Key exports:
//
//   - [Config] -- master struct with Paths, Tokens, Keys, Revocation
//   - [Default] -- returns a Config with development defaults
//   - [Load] and [LoadFile] -- the two entry points for loading
//
// This package depends on no other packages in this module except
// lib/wire for version names.
package config
