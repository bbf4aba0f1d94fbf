// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"
	"time"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/paseto/cmd/paseto/cli"
	"github.com/bureau-foundation/paseto/lib/revocation"
)

type revokeParams struct {
	configFlags
	cli.JSONOutput
	List    string   `flag:"list" desc:"revocation list file (default from config)"`
	TokenID []string `flag:"jti" desc:"token id to revoke (repeatable)"`
	Expires string   `flag:"expires" desc:"RFC 3339 expiry of the revoked tokens (default: now plus the configured ttl)"`
	Cleanup bool     `flag:"cleanup" desc:"drop entries whose tokens have expired"`
}

type revokeResult struct {
	List    string   `json:"list"`
	Revoked []string `json:"revoked"`
	Removed int      `json:"removed"`
	Entries int      `json:"entries"`
}

func revokeCommand(env Env) *cli.Command {
	var params revokeParams

	return &cli.Command{
		Name:    "revoke",
		Summary: "Add token ids to a revocation list",
		Description: `Add token ids to a revocation list.

decrypt and verify reject tokens whose jti is on the list. An entry is
only needed until the token would have expired anyway, so each entry
records that expiry and --cleanup drops the stale ones.`,
		Usage: "paseto revoke [flags]",
		Examples: []cli.Example{
			{Description: "Revoke a token that expires tonight", Command: "paseto revoke --jti 6f1c... --expires 2026-10-19T23:00:00Z"},
			{Description: "Prune expired entries", Command: "paseto revoke --cleanup"},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("revoke", &params)
		},
		Run: func(args []string) error {
			if len(args) > 0 {
				return cli.Usagef("unexpected argument %q", args[0])
			}
			if len(params.TokenID) == 0 && !params.Cleanup {
				return cli.Usagef("nothing to do: give --jti or --cleanup")
			}

			cfg, err := params.load()
			if err != nil {
				return err
			}
			path := params.List
			if path == "" {
				path = cfg.Revocation.List
			}
			if path == "" {
				return cli.Usagef("--list is required (no revocation list configured)")
			}

			now := env.Clock.Now()
			expires := now.Add(cfg.TTL())
			if params.Expires != "" {
				expires, err = time.Parse(time.RFC3339, params.Expires)
				if err != nil {
					return cli.Usagef("--expires: %v", err)
				}
			}

			list, err := revocation.Load(path)
			if err != nil {
				return err
			}
			for _, tokenID := range params.TokenID {
				if tokenID == "" {
					return cli.Usagef("--jti must not be empty")
				}
				list.Revoke(tokenID, expires)
			}
			result := revokeResult{List: path, Revoked: append([]string{}, params.TokenID...)}
			if params.Cleanup {
				result.Removed = list.Cleanup(now)
			}
			if err := list.Save(path); err != nil {
				return err
			}
			result.Entries = list.Len()

			params.logger(env, "revoke").Info("revocation list updated",
				"list", path,
				"revoked", len(result.Revoked),
				"removed", result.Removed,
				"entries", result.Entries,
			)

			if done, err := params.EmitJSON(env.Stdout, result); done {
				return err
			}
			fmt.Fprintf(env.Stdout, "revoked %d, removed %d, %d entries in %s\n",
				len(result.Revoked), result.Removed, result.Entries, path)
			return nil
		},
	}
}
