// Copyright 2026 The Buybot Authors
// SPDX-License-Identifier: Apache-2.0

package orders

import (
	"github.com/zinc-io/buybot/cmd/buybot/cli"
	"github.com/zinc-io/buybot/lib/listing"
)

const statusColumn = "STATE"

// Command returns the "orders" subcommand group.
func Command(app *cli.App) *cli.Command {
	return &cli.Command{
		Name:    "orders",
		Summary: "List orders and attempt purchases",
		Description: `Work with orders.

An order collects every purchase attempt made for it. Listings show the
state, price, and tracking details of the most recent attempt; an order
with no attempts is shown as "ready".`,
		Subcommands: []*cli.Command{
			listCommand(app),
			attemptCommand(app),
		},
	}
}

// writeRows emits rows in the selected format, defaulting to a table.
func writeRows(app *cli.App, format *cli.OutputFormat, rows []listing.OrderRow) error {
	if done, err := format.Emit(app.Stdout, rows); done {
		return err
	}
	return app.RenderTable(listing.OrderHeaders, listing.OrderGrid(rows), statusColumn)
}
