// Copyright 2026 The Buybot Authors
// SPDX-License-Identifier: Apache-2.0

package orders

import (
	"context"
	"log/slog"

	"github.com/charmbracelet/x/ansi"
	"github.com/spf13/pflag"

	"github.com/zinc-io/buybot/cmd/buybot/cli"
	"github.com/zinc-io/buybot/lib/buybot"
)

type attemptParams struct {
	cli.OutputFormat
	OrderID string `flag:"order-id" desc:"add the attempt to this existing order instead of creating one"`
}

func attemptCommand(app *cli.App) *cli.Command {
	var params attemptParams

	return &cli.Command{
		Name:    "attempt",
		Summary: "Attempt a purchase through a retailer",
		Description: `Ask the service to attempt a purchase through RETAILER.

Without --order-id a new order is created. With it, the attempt is added
to that order. The resulting order is listed afterwards. If the service
refuses the attempt, its message is printed and nothing else happens.

Known retailers are ` + buybot.RetailerAmazon + ` and ` + buybot.RetailerAmazonFresh + `; the service decides
which are accepted.`,
		Usage: "buybot orders attempt <retailer> [flags]",
		Examples: []cli.Example{
			{
				Description: "Start a new order on Amazon",
				Command:     "buybot orders attempt amazon",
			},
			{
				Description: "Retry an existing order",
				Command:     "buybot orders attempt amazon_fresh --order-id o_123",
			},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("attempt", &params)
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) != 1 || args[0] == "" {
				return cli.Validation("exactly one retailer is required\n\nUsage: buybot orders attempt <retailer> [--order-id ID]")
			}
			if _, err := params.Format(); err != nil {
				return err
			}
			retailer := args[0]

			outcome, err := app.Invoker(logger).AttemptOrder(ctx, retailer, params.OrderID)
			if err != nil {
				return cli.ServiceError(err)
			}
			if outcome.Refused() {
				app.Errorf("%s\n", ansi.Strip(outcome.Validation))
				return nil
			}

			logger.Info("order attempted", "retailer", retailer, "order", params.OrderID)
			return writeRows(app, &params.OutputFormat, outcome.Orders)
		},
	}
}
