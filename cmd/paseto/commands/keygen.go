// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/paseto/cmd/paseto/cli"
	"github.com/bureau-foundation/paseto/lib/keys"
	"github.com/bureau-foundation/paseto/lib/sealed"
	"github.com/bureau-foundation/paseto/lib/wire"
)

type keygenResult struct {
	Version    string `json:"version"`
	Purpose    string `json:"purpose"`
	KeyID      string `json:"key_id"`
	SecretPath string `json:"secret_path"`
	PublicPath string `json:"public_path,omitempty"`
	Sealed     bool   `json:"sealed"`
}

func keygenCommand(env Env) *cli.Command {
	var params struct {
		configFlags
		cli.JSONOutput
		Version    string   `flag:"version" desc:"protocol version, v1 or v2 (default from config)"`
		Purpose    string   `flag:"purpose,p" desc:"local or public"`
		Out        string   `flag:"out,o" desc:"output path prefix; writes PREFIX.key and, for public, PREFIX.pub"`
		Recipients []string `flag:"recipient,r" desc:"age recipient to seal the secret key to (repeatable)"`
	}

	return &cli.Command{
		Name:    "keygen",
		Summary: "Generate a key",
		Description: `Generate a key for one protocol version and purpose.

Local keys are 32 random bytes, written as hex. v1 public keys are
2048-bit RSA in PEM; v2 public keys are Ed25519 in hex. Secret files
are created with mode 0600 and never overwrite an existing file.

With --recipient, the secret file is encrypted to the given age
recipients and can only be used with a matching --identity.`,
		Usage: "paseto keygen --purpose local|public --out PREFIX [flags]",
		Examples: []cli.Example{
			{Description: "Generate a v2 local key", Command: "paseto keygen --purpose local --out keys/session"},
			{Description: "Generate a sealed v2 signing key", Command: "paseto keygen -p public -o keys/signer -r age1..."},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("keygen", &params)
		},
		Run: func(args []string) error {
			if len(args) > 0 {
				return cli.Usagef("unexpected argument %q", args[0])
			}
			if params.Out == "" {
				return cli.Usagef("--out is required")
			}
			purpose, err := wire.ParsePurpose(params.Purpose)
			if err != nil {
				return cli.Usagef("--purpose must be local or public")
			}
			for _, recipient := range params.Recipients {
				if err := sealed.ParseRecipient(recipient); err != nil {
					return cli.Usagef("--recipient: %v", err)
				}
			}

			cfg, err := params.load()
			if err != nil {
				return err
			}
			version, err := resolveVersion(params.Version, cfg)
			if err != nil {
				return err
			}

			pair, err := keys.Generate(version, purpose)
			if err != nil {
				return err
			}
			defer pair.Close()
			if err := pair.Save(params.Out, params.Recipients); err != nil {
				return err
			}

			params.logger(env, "keygen").Info("key generated",
				"version", version.String(),
				"purpose", purpose.String(),
				"key_id", pair.ID,
			)

			result := keygenResult{
				Version:    version.String(),
				Purpose:    purpose.String(),
				KeyID:      pair.ID,
				SecretPath: params.Out + keys.SecretSuffix,
				Sealed:     len(params.Recipients) > 0,
			}
			if pair.Public != nil {
				result.PublicPath = params.Out + keys.PublicSuffix
			}
			if done, err := params.EmitJSON(env.Stdout, result); done {
				return err
			}

			fmt.Fprintf(env.Stdout, "key id:  %s\n", result.KeyID)
			fmt.Fprintf(env.Stdout, "secret:  %s\n", result.SecretPath)
			if result.PublicPath != "" {
				fmt.Fprintf(env.Stdout, "public:  %s\n", result.PublicPath)
			}
			return nil
		},
	}
}
