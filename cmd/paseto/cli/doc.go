// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli is the command tree behind the paseto binary.
//
// A [Command] either dispatches to Subcommands by its first positional
// argument or parses its flags and calls Run. Flags come from tagged
// parameter structs through [FlagsFromParams]:
//
//	var params struct {
//	    Key string `flag:"key,k" desc:"key file"`
//	}
//	command := &cli.Command{
//	    Name:  "decrypt",
//	    Flags: func() *pflag.FlagSet { return cli.FlagsFromParams("decrypt", &params) },
//	    Run:   func(args []string) error { ... },
//	}
//
// Commands report outcomes through their error: an [*ExitError] carries
// an exit code for an outcome the command already explained, and a
// [*UsageError] marks bad invocations (exit 2). Anything else exits 1.
package cli
