// Copyright 2026 The Buybot Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"golang.org/x/term"

	"github.com/zinc-io/buybot/lib/action"
	"github.com/zinc-io/buybot/lib/browser"
	"github.com/zinc-io/buybot/lib/buybot"
	"github.com/zinc-io/buybot/lib/clock"
	"github.com/zinc-io/buybot/lib/credential"
	"github.com/zinc-io/buybot/lib/listing"
	"github.com/zinc-io/buybot/lib/render"
)

// App is the client context every command runs against: the credential
// loaded at startup, the API client carrying it, and the process's
// output streams. It is built once per invocation and passed to each
// command constructor.
type App struct {
	Store      *credential.Store
	Credential credential.Credential
	Client     *buybot.Client

	Stdout io.Writer
	Stderr io.Writer

	// Interactive is true when Stdout is a terminal. It enables the
	// login spinner.
	Interactive bool
	// Color enables styled table output.
	Color bool

	Clock    clock.Clock
	Hostname func() (string, error)
	OpenURL  func(string) error
}

// AppConfig configures NewApp. Zero fields take process defaults.
type AppConfig struct {
	// ConfigPath is the credential file. Empty means
	// credential.DefaultPath().
	ConfigPath string
	// BaseURL is the service root. Empty means buybot.DefaultBaseURL().
	BaseURL string

	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger
}

// NewApp loads the credential and builds the API client.
func NewApp(config AppConfig) (*App, error) {
	path := config.ConfigPath
	if path == "" {
		defaultPath, err := credential.DefaultPath()
		if err != nil {
			return nil, Internal("locating config file: %w", err)
		}
		path = defaultPath
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	store := credential.NewStore(path, logger)
	loaded := store.Load()
	client, err := buybot.NewClient(buybot.Config{
		BaseURL: config.BaseURL,
		Token:   loaded.Token,
		Logger:  logger,
	})
	if err != nil {
		return nil, Validation("%w (check BUYBOT_URL)", err)
	}

	stdout := config.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}
	stderr := config.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}

	return &App{
		Store:       store,
		Credential:  loaded,
		Client:      client,
		Stdout:      stdout,
		Stderr:      stderr,
		Interactive: isTerminal(stdout),
		Color:       render.ColorEnabled(stdout),
		Clock:       clock.Real(),
		Hostname:    os.Hostname,
		OpenURL:     browser.Open,
	}, nil
}

// Lister returns a ResourceLister backed by the app's client.
func (a *App) Lister() *listing.Lister {
	return listing.New(a.Client)
}

// Invoker returns an ActionInvoker backed by the app's client.
func (a *App) Invoker(logger *slog.Logger) *action.Invoker {
	return action.New(a.Client, a.Lister(), logger)
}

// RenderTable writes a table to Stdout, coloring statusColumn by value
// when color is enabled.
func (a *App) RenderTable(headers []string, rows [][]string, statusColumn string) error {
	if err := render.Table(a.Stdout, headers, rows, render.Options{Color: a.Color, StatusColumn: statusColumn}); err != nil {
		return Internal("rendering table: %w", err)
	}
	return nil
}

// Printf writes to Stdout.
func (a *App) Printf(format string, args ...any) {
	fmt.Fprintf(a.Stdout, format, args...)
}

// Errorf writes to Stderr.
func (a *App) Errorf(format string, args ...any) {
	fmt.Fprintf(a.Stderr, format, args...)
}

func isTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	return ok && term.IsTerminal(int(file.Fd()))
}
