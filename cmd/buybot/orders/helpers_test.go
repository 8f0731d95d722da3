// Copyright 2026 The Buybot Authors
// SPDX-License-Identifier: Apache-2.0

package orders

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/zinc-io/buybot/cmd/buybot/cli"
	"github.com/zinc-io/buybot/lib/buybot"
	"github.com/zinc-io/buybot/lib/buybottest"
	"github.com/zinc-io/buybot/lib/credential"
	"github.com/zinc-io/buybot/lib/testutil"
)

const testToken = "test-token"

type harness struct {
	app    *cli.App
	server *buybottest.Server
	stdout *bytes.Buffer
	stderr *bytes.Buffer
}

func newHarness(t *testing.T, orders ...buybot.Order) *harness {
	t.Helper()
	server := buybottest.New(t, testToken)
	server.SetOrders(orders...)

	path := testutil.ConfigPath(t)
	if err := credential.NewStore(path, nil).Save(credential.Credential{UserID: "u1", Token: testToken}); err != nil {
		t.Fatal(err)
	}

	h := &harness{server: server, stdout: &bytes.Buffer{}, stderr: &bytes.Buffer{}}
	app, err := cli.NewApp(cli.AppConfig{
		ConfigPath: path,
		BaseURL:    server.URL,
		Stdout:     h.stdout,
		Stderr:     h.stderr,
	})
	if err != nil {
		t.Fatal(err)
	}
	h.app = app
	return h
}

// run executes "orders <args...>".
func (h *harness) run(args ...string) error {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return Command(h.app).Execute(context.Background(), args, logger)
}

func requireCategory(t *testing.T, err error, category cli.ErrorCategory) {
	t.Helper()
	var toolError *cli.ToolError
	if !errors.As(err, &toolError) || toolError.Category != category {
		t.Fatalf("err = %v, want ToolError with category %s", err, category)
	}
}

var epoch = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

// attempt builds an attempt created minutes after epoch.
func attempt(minutes int, state string, total int64, carrier, tracking string) buybot.Attempt {
	a := buybot.Attempt{
		CreatedTime: buybot.Timestamp{Time: epoch.Add(time.Duration(minutes) * time.Minute)},
		State:       state,
	}
	if total != 0 {
		a.PriceComponents = &buybot.PriceComponents{Total: &total}
	}
	if carrier != "" {
		a.TrackingCarrier = &carrier
	}
	if tracking != "" {
		a.TrackingNumber = &tracking
	}
	return a
}
