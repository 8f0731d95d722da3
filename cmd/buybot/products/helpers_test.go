// Copyright 2026 The Buybot Authors
// SPDX-License-Identifier: Apache-2.0

package products

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

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

// newHarness returns an App logged in as u1 against a fake service
// holding products.
func newHarness(t *testing.T, products ...buybot.Product) *harness {
	t.Helper()
	server := buybottest.New(t, testToken)
	server.SetProducts(products...)

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

// run executes "products <args...>".
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

func product(id, state, userID string, price int64, title string) buybot.Product {
	p := buybot.Product{
		ID:        id,
		State:     state,
		User:      buybot.User{ID: userID, Email: userID + "@example.com"},
		Price:     price,
		ProductID: "B00" + id,
	}
	if title != "" {
		p.Details = &buybot.Details{Value: &buybot.DetailsValue{Title: &title}}
	}
	return p
}
