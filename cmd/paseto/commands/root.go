// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/paseto/cmd/paseto/cli"
	"github.com/bureau-foundation/paseto/lib/clock"
	"github.com/bureau-foundation/paseto/lib/version"
)

// Env is everything a command touches besides its flags and files.
type Env struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Clock  clock.Clock
}

// ProcessEnv returns the Env of the running process.
func ProcessEnv() Env {
	return Env{
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Clock:  clock.Real(),
	}
}

// Root returns the top-level paseto command.
func Root(env Env) *cli.Command {
	var params struct {
		Version bool `flag:"version" desc:"print build information and exit"`
	}

	return &cli.Command{
		Name:    "paseto",
		Summary: "Build, parse and manage PASETO tokens",
		Description: `Build, parse and manage PASETO tokens.

Local tokens (v1.local, v2.local) are encrypted with a shared 32-byte
key. Public tokens (v1.public, v2.public) are signed with RSA-PSS (v1)
or Ed25519 (v2) and readable by anyone.

Defaults come from the YAML file named by --config or PASETO_CONFIG.`,
		HelpOutput: env.Stderr,
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("paseto", &params)
		},
		Subcommands: []*cli.Command{
			keygenCommand(env),
			issueCommand(env, "encrypt", localPurpose),
			checkCommand(env, "decrypt", localPurpose),
			issueCommand(env, "sign", publicPurpose),
			checkCommand(env, "verify", publicPurpose),
			inspectCommand(env),
			revokeCommand(env),
		},
		Run: func(args []string) error {
			if params.Version {
				fmt.Fprintln(env.Stdout, version.Full())
				return nil
			}
			if len(args) > 0 {
				return cli.Usagef("unexpected argument %q\n\nRun 'paseto --help' for usage.", args[0])
			}
			return cli.Usagef("subcommand required\n\nRun 'paseto --help' for usage.")
		},
	}
}
