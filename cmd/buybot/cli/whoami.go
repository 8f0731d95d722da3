// Copyright 2026 The Buybot Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"context"
	"log/slog"

	"github.com/charmbracelet/x/ansi"
	"github.com/spf13/pflag"
)

type whoamiParams struct {
	OutputFormat
	Local bool `flag:"local" desc:"show the saved user id without contacting the service"`
}

type whoamiOutput struct {
	Name       string `json:"name,omitempty"  yaml:"name,omitempty"`
	Email      string `json:"email,omitempty" yaml:"email,omitempty"`
	UserID     string `json:"user_id"         yaml:"user_id"`
	ConfigFile string `json:"config_file"     yaml:"config_file"`
}

// WhoAmICommand returns the "whoami" command. By default it asks the
// service who the saved token belongs to; with --local it only reads
// the config file.
func WhoAmICommand(app *App) *Command {
	var params whoamiParams

	return &Command{
		Name:    "whoami",
		Summary: "Show the logged-in user",
		Description: `Show which buybot account the saved token belongs to.

Without --local the token is checked against the service, so a revoked
or expired token is reported as an error. With --local only the config
file is read.`,
		Usage: "buybot whoami [flags]",
		Examples: []Example{
			{Command: "buybot whoami"},
			{
				Description: "Show the saved user id without a network call",
				Command:     "buybot whoami --local --json",
			},
		},
		Flags: func() *pflag.FlagSet {
			return FlagsFromParams("whoami", &params)
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) > 0 {
				return Validation("unexpected argument: %s", args[0])
			}
			if _, err := params.Format(); err != nil {
				return err
			}

			output := whoamiOutput{
				UserID:     app.Credential.UserID,
				ConfigFile: app.Store.Path(),
			}

			if params.Local {
				if !app.Credential.Complete() {
					return Forbidden("not logged in; run \"buybot login\"")
				}
				if done, err := params.Emit(app.Stdout, output); done {
					return err
				}
				app.Printf("User ID: %s\n", output.UserID)
				return nil
			}

			identity, err := app.Client.CurrentUser(ctx)
			if err != nil {
				return ServiceError(err)
			}
			output.Name = identity.Name
			output.Email = identity.Email
			if identity.ID != "" {
				output.UserID = identity.ID
			}

			if done, err := params.Emit(app.Stdout, output); done {
				return err
			}
			app.Printf("You are: %s\n", ansi.Strip(identity.Name))
			return nil
		},
	}
}
