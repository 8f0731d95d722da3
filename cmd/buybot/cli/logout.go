// Copyright 2026 The Buybot Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"context"
	"log/slog"

	"github.com/zinc-io/buybot/lib/credential"
)

// LogoutCommand returns the "logout" command, which removes the saved
// credential. The token is not revoked server-side.
func LogoutCommand(app *App) *Command {
	return &Command{
		Name:    "logout",
		Summary: "Forget the saved credential",
		Usage:   "buybot logout",
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) > 0 {
				return Validation("unexpected argument: %s", args[0])
			}
			wasLoggedIn := !app.Credential.IsZero()
			if err := app.Store.Clear(); err != nil {
				return Internal("clearing credential: %w", err)
			}
			app.Credential = credential.Credential{}
			logger.Debug("credential cleared", "config", app.Store.Path())

			if wasLoggedIn {
				app.Printf("Logged out.\n")
			} else {
				app.Printf("Not logged in.\n")
			}
			return nil
		},
	}
}
