// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"encoding/hex"
	"fmt"
	"unicode/utf8"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/paseto/cmd/paseto/cli"
	"github.com/bureau-foundation/paseto/lib/b64url"
	"github.com/bureau-foundation/paseto/lib/codec"
	"github.com/bureau-foundation/paseto/lib/paseto"
	"github.com/bureau-foundation/paseto/lib/tokenerr"
	"github.com/bureau-foundation/paseto/lib/wire"
)

type inspectParams struct {
	cli.JSONOutput
}

type inspectResult struct {
	Version      string `json:"version"`
	Purpose      string `json:"purpose"`
	PayloadBytes int    `json:"payload_bytes"`
	Footer       string `json:"footer,omitempty"`
	// FooterFormat is "text", "cbor" (diagnostic notation) or "hex".
	FooterFormat string `json:"footer_format,omitempty"`
	KeyID        string `json:"kid,omitempty"`
}

func inspectCommand(env Env) *cli.Command {
	var params inspectParams

	return &cli.Command{
		Name:    "inspect",
		Summary: "Show a token's header and footer without a key",
		Description: `Show a token's header and footer without a key.

Nothing is authenticated: the footer shown is whatever the token
carries and may have been forged. Use it to pick a key, then decrypt or
verify. The payload is never shown, only its encoded size.`,
		Usage: "paseto inspect [flags] [token]",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("inspect", &params)
		},
		Run: func(args []string) error {
			raw, err := readToken(args, env.Stdin)
			if err != nil {
				return err
			}
			result, err := inspect(raw)
			if err != nil {
				return rejected(env, err)
			}
			if done, err := params.EmitJSON(env.Stdout, result); done {
				return err
			}

			fmt.Fprintf(env.Stdout, "header:   %s.%s\n", result.Version, result.Purpose)
			fmt.Fprintf(env.Stdout, "payload:  %d bytes\n", result.PayloadBytes)
			if result.FooterFormat != "" {
				fmt.Fprintf(env.Stdout, "footer:   %s (%s)\n", result.Footer, result.FooterFormat)
			}
			if result.KeyID != "" {
				fmt.Fprintf(env.Stdout, "kid:      %s\n", result.KeyID)
			}
			return nil
		},
	}
}

func inspect(raw string) (inspectResult, error) {
	parts, err := wire.Split(raw)
	if err != nil {
		return inspectResult{}, err
	}
	version, err := wire.ParseVersion(parts.VersionTag)
	if err != nil {
		return inspectResult{}, err
	}
	purpose, err := wire.ParsePurpose(parts.PurposeTag)
	if err != nil {
		return inspectResult{}, err
	}
	payload, err := b64url.Decode(parts.Payload)
	if err != nil {
		return inspectResult{}, tokenerr.New(tokenerr.Encoding, "payload", err)
	}
	footer, err := paseto.ExtractFooter(raw)
	if err != nil {
		return inspectResult{}, err
	}

	result := inspectResult{
		Version:      version.String(),
		Purpose:      purpose.String(),
		PayloadBytes: len(payload),
	}
	if len(footer) == 0 {
		return result, nil
	}
	result.Footer, result.FooterFormat = describeFooter(footer)
	result.KeyID, _ = paseto.FooterKeyID(footer)
	return result, nil
}

// describeFooter renders footer bytes for display: as text when they
// are UTF-8, as CBOR diagnostic notation when they decode as CBOR,
// otherwise as hex.
func describeFooter(footer []byte) (string, string) {
	if utf8.Valid(footer) {
		return string(footer), "text"
	}
	if notation, err := codec.Diagnose(footer); err == nil {
		return notation, "cbor"
	}
	return hex.EncodeToString(footer), "hex"
}
