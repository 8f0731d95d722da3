// Copyright 2026 The Buybot Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/spf13/pflag"

	"github.com/zinc-io/buybot/lib/devicelogin"
)

type loginParams struct {
	Open bool          `flag:"open" desc:"also open the authorization URL in the default browser"`
	Wait time.Duration `flag:"wait" desc:"give up if authorization is not completed within this long (0 waits until interrupted)" default:"15m"`
}

// LoginCommand returns the "login" command, which runs the device
// authorization flow and saves the issued credential.
func LoginCommand(app *App) *Command {
	var params loginParams

	return &Command{
		Name:    "login",
		Summary: "Authorize this machine with buybot",
		Description: `Log in by approving this machine in a browser.

buybot prints a URL to open in any browser where you are signed in to the
buybot service. After you approve the request there, the issued token is
saved to the config file and used by every other command.

The command polls every 5 seconds until the request is approved or
rejected, --wait elapses, or it is interrupted.`,
		Usage: "buybot login [flags]",
		Examples: []Example{
			{
				Description: "Log in, opening the approval page automatically",
				Command:     "buybot login --open",
			},
			{
				Description: "Wait at most two minutes for approval",
				Command:     "buybot login --wait 2m",
			},
		},
		Flags: func() *pflag.FlagSet {
			return FlagsFromParams("login", &params)
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) > 0 {
				return Validation("unexpected argument: %s", args[0])
			}
			if params.Wait < 0 {
				return Validation("--wait must not be negative")
			}

			hostname, err := app.Hostname()
			if err != nil {
				return Internal("determining hostname: %w", err)
			}

			progress := newLoginProgress(app.Stdout, app.Interactive, app.Clock, logger)
			if params.Open {
				progress.open = app.OpenURL
			}

			flow, err := devicelogin.New(devicelogin.Config{
				API:      app.Client,
				Store:    app.Store,
				Observer: progress,
				Hostname: hostname,
				Clock:    app.Clock,
				Deadline: params.Wait,
				Logger:   logger,
			})
			if err != nil {
				return Internal("%w", err)
			}

			result, err := flow.Run(ctx)
			if err != nil {
				progress.Abort()
				switch {
				case errors.Is(err, context.Canceled):
					app.Printf("Login cancelled.\n")
					return &ExitError{Code: ExitCanceled}
				case errors.Is(err, devicelogin.ErrSave):
					return Internal("%w", err)
				default:
					return ServiceError(err)
				}
			}

			logger.Debug("device login finished", "state", result.State, "polls", result.Polls, "anomalies", result.Anomalies)
			switch result.State {
			case devicelogin.StateAuthorized:
				app.Credential = result.Credential
				progress.Finish("Login complete!")
				return nil
			case devicelogin.StateRejected:
				progress.Finish("Authorization rejected :(")
				return nil
			case devicelogin.StateTimedOut:
				progress.Abort()
				return Transient("authorization was not completed within %s; run \"buybot login\" again", params.Wait)
			default:
				progress.Abort()
				return Internal("device login ended in unexpected state %s", result.State)
			}
		},
	}
}
