// Copyright 2026 The Buybot Authors
// SPDX-License-Identifier: Apache-2.0

package products

import (
	"context"
	"log/slog"

	"github.com/spf13/pflag"

	"github.com/zinc-io/buybot/cmd/buybot/cli"
	"github.com/zinc-io/buybot/lib/listing"
)

type listParams struct {
	cli.OutputFormat
	All bool `flag:"all,a" desc:"list every user's products, not only your own"`
}

func listCommand(app *cli.App) *cli.Command {
	var params listParams

	return &cli.Command{
		Name:    "ls",
		Summary: "List products",
		Description: `List products with their approval state, owner, price, and title.

By default only products owned by the logged-in user are shown. Naming
ids lists exactly those products regardless of owner. Rows keep the
order the service returns them in.`,
		Usage: "buybot products ls [ids...] [flags]",
		Examples: []cli.Example{
			{Command: "buybot products ls"},
			{
				Description: "List every user's products as JSON",
				Command:     "buybot products ls --all --json",
			},
			{
				Description: "Show two specific products",
				Command:     "buybot products ls p_123 p_456",
			},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("ls", &params)
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if _, err := params.Format(); err != nil {
				return err
			}

			rows, err := app.Lister().Products(ctx, listing.ProductFilter{
				IDs:    args,
				All:    params.All,
				UserID: app.Credential.UserID,
			})
			if err != nil {
				return cli.ServiceError(err)
			}
			logger.Debug("listed products", "rows", len(rows), "all", params.All, "ids", len(args))

			return writeRows(app, &params.OutputFormat, rows)
		},
	}
}

// writeRows emits rows in the selected format, defaulting to a table.
func writeRows(app *cli.App, format *cli.OutputFormat, rows []listing.ProductRow) error {
	if done, err := format.Emit(app.Stdout, rows); done {
		return err
	}
	return app.RenderTable(listing.ProductHeaders, listing.ProductGrid(rows), statusColumn)
}
