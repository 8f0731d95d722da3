// Copyright 2026 The Buybot Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/zinc-io/buybot/cmd/buybot/cli"
	"github.com/zinc-io/buybot/cmd/buybot/commands"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes one invocation and returns the process exit code.
// Commands that print their own outcome return a *cli.ExitError; no
// "error:" line is added for those.
func run(args []string, stdout, stderr io.Writer) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := execute(ctx, args, stdout, stderr)
	if err != nil && !cli.Silent(err) {
		fmt.Fprintf(stderr, "error: %v\n", err)
	}
	return cli.ExitCode(err)
}

func execute(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	global, rest, err := cli.ParseGlobal(args)
	if err != nil {
		return err
	}

	logger := cli.NewCommandLogger(stderr, cli.LogLevel(global.Verbose))
	app, err := cli.NewApp(cli.AppConfig{
		Stdout: stdout,
		Stderr: stderr,
		Logger: logger,
	})
	if err != nil {
		return err
	}
	logger.Debug("starting", "config", app.Store.Path(), "url", app.Client.BaseURL())

	return commands.Root(app).Execute(ctx, rest, logger)
}
