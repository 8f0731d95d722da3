// Copyright 2026 The Buybot Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands builds the complete buybot command tree.
package commands

import (
	"context"
	"log/slog"

	"github.com/spf13/pflag"

	"github.com/zinc-io/buybot/cmd/buybot/cli"
	orderscmd "github.com/zinc-io/buybot/cmd/buybot/orders"
	productscmd "github.com/zinc-io/buybot/cmd/buybot/products"
	"github.com/zinc-io/buybot/lib/version"
)

// Root builds the command tree for app. The global flags appear in the
// root help only; main parses them before dispatch.
func Root(app *cli.App) *cli.Command {
	var global cli.GlobalOptions

	return &cli.Command{
		Name: "buybot",
		Description: `buybot: review and purchase requested products from the terminal.

Log in once with "buybot login"; the token is saved to the config file
($BUYBOT_CONFIG overrides its location) and sent with every request.
Set BUYBOT_URL to talk to a different service.`,
		Usage: "buybot [-v] <command> [flags]",
		Flags: func() *pflag.FlagSet {
			return cli.GlobalFlags(&global)
		},
		HelpOutput: app.Stderr,
		Subcommands: []*cli.Command{
			cli.LoginCommand(app),
			cli.LogoutCommand(app),
			cli.WhoAmICommand(app),
			productscmd.Command(app),
			orderscmd.Command(app),
			{
				Name:    "version",
				Summary: "Print version information",
				Run: func(_ context.Context, args []string, _ *slog.Logger) error {
					if len(args) > 0 {
						return cli.Validation("unexpected argument: %s", args[0])
					}
					app.Printf("buybot %s\n", version.Full())
					return nil
				},
			},
		},
		Examples: []cli.Example{
			{
				Description: "Authorize this machine (opens the approval page)",
				Command:     "buybot login --open",
			},
			{
				Description: "List your products awaiting approval",
				Command:     "buybot products ls",
			},
			{
				Description: "Approve two products",
				Command:     "buybot products approve p_123 p_456",
			},
			{
				Description: "Start a purchase on Amazon",
				Command:     "buybot orders attempt amazon",
			},
		},
	}
}
