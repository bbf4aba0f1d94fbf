// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands assembles the paseto command tree.
//
// Every subcommand reads defaults from the YAML file named by --config
// or PASETO_CONFIG (see lib/config); flags override file values. Secret
// key files may be sealed with age, in which case --identity (or
// keys.identity in the config) names the identity that opens them.
// Secret material is held in lib/secret buffers for as long as the
// command needs it.
package commands
