// Copyright 2026 The Buybot Authors
// SPDX-License-Identifier: Apache-2.0

package products

import (
	"context"
	"log/slog"

	"github.com/charmbracelet/x/ansi"
	"github.com/spf13/pflag"

	"github.com/zinc-io/buybot/cmd/buybot/cli"
	"github.com/zinc-io/buybot/lib/action"
)

type reviewParams struct {
	cli.OutputFormat
}

func approveCommand(app *cli.App) *cli.Command {
	return reviewCommand(app, "approve", "Approve products for purchase",
		`Approve one or more products so orders can be attempted for them.

After the service accepts the request, the approved products are listed
again to show their new state. If the service refuses (for example, a
product is already approved), its message is printed and nothing else
happens.`,
		(*action.Invoker).Approve)
}

func rejectCommand(app *cli.App) *cli.Command {
	return reviewCommand(app, "reject", "Reject products",
		`Reject one or more products so they are not purchased.

After the service accepts the request, the rejected products are listed
again to show their new state. If the service refuses, its message is
printed and nothing else happens.`,
		(*action.Invoker).Reject)
}

func reviewCommand(app *cli.App, name, summary, description string, invoke func(*action.Invoker, context.Context, []string) (action.Outcome, error)) *cli.Command {
	var params reviewParams

	return &cli.Command{
		Name:        name,
		Summary:     summary,
		Description: description,
		Usage:       "buybot products " + name + " <ids...> [flags]",
		Examples: []cli.Example{
			{Command: "buybot products " + name + " p_123"},
			{Command: "buybot products " + name + " p_123 p_456 --output yaml"},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams(name, &params)
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) == 0 {
				return cli.Validation("at least one product id is required\n\nUsage: buybot products %s <ids...>", name)
			}
			if _, err := params.Format(); err != nil {
				return err
			}

			outcome, err := invoke(app.Invoker(logger), ctx, args)
			if err != nil {
				return cli.ServiceError(err)
			}
			if outcome.Refused() {
				app.Errorf("%s\n", ansi.Strip(outcome.Validation))
				return nil
			}

			logger.Info("products updated", "action", name, "ids", args)
			return writeRows(app, &params.OutputFormat, outcome.Products)
		},
	}
}
