// Copyright 2026 The Buybot Authors
// SPDX-License-Identifier: Apache-2.0

package orders

import (
	"context"
	"log/slog"

	"github.com/spf13/pflag"

	"github.com/zinc-io/buybot/cmd/buybot/cli"
)

type listParams struct {
	cli.OutputFormat
}

func listCommand(app *cli.App) *cli.Command {
	var params listParams

	return &cli.Command{
		Name:    "ls",
		Summary: "List orders",
		Description: `List orders, or only the named ones, with the state of their most
recent attempt. Rows keep the order the service returns them in.`,
		Usage: "buybot orders ls [ids...] [flags]",
		Examples: []cli.Example{
			{Command: "buybot orders ls"},
			{
				Description: "Show one order as YAML",
				Command:     "buybot orders ls o_123 -o yaml",
			},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("ls", &params)
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if _, err := params.Format(); err != nil {
				return err
			}

			rows, err := app.Lister().Orders(ctx, args)
			if err != nil {
				return cli.ServiceError(err)
			}
			logger.Debug("listed orders", "rows", len(rows), "ids", len(args))

			return writeRows(app, &params.OutputFormat, rows)
		},
	}
}
