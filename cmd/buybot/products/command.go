// Copyright 2026 The Buybot Authors
// SPDX-License-Identifier: Apache-2.0

package products

import "github.com/zinc-io/buybot/cmd/buybot/cli"

// statusColumn is colored by approval state.
const statusColumn = "APPROVAL"

// Command returns the "products" subcommand group.
func Command(app *cli.App) *cli.Command {
	return &cli.Command{
		Name:    "products",
		Summary: "List, approve, and reject products",
		Description: `Work with products awaiting purchase.

Products are requested purchases. Each one must be approved before an
order can be attempted for it, or rejected to drop it.`,
		Subcommands: []*cli.Command{
			listCommand(app),
			approveCommand(app),
			rejectCommand(app),
		},
	}
}
