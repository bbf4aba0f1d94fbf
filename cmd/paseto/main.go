// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"os"

	"github.com/bureau-foundation/paseto/cmd/paseto/cli"
	"github.com/bureau-foundation/paseto/cmd/paseto/commands"
)

func main() {
	if err := run(); err != nil {
		// decrypt and verify explain a rejected token themselves and
		// return an ExitError. Don't print a redundant "error:" line
		// for those.
		if _, ok := err.(interface{ ExitCode() int }); !ok {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		os.Exit(cli.ExitCodeOf(err))
	}
}

func run() error {
	return commands.Root(commands.ProcessEnv()).Execute(os.Args[1:])
}
