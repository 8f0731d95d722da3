// Copyright 2026 The Buybot Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/zinc-io/buybot/lib/buybottest"
	"github.com/zinc-io/buybot/lib/clock"
	"github.com/zinc-io/buybot/lib/credential"
	"github.com/zinc-io/buybot/lib/testutil"
)

const testToken = "test-token"

// testLogger returns a logger that discards all output.
func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// lockedBuffer is a bytes.Buffer safe for a writer goroutine and a
// reading test.
type lockedBuffer struct {
	mu     sync.Mutex
	buffer bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buffer.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buffer.String()
}

type testApp struct {
	*App
	server *buybottest.Server
	clock  *clock.FakeClock
	stdout *lockedBuffer
	stderr *lockedBuffer
	opened []string
}

// newTestApp builds an App against a fresh fake service. A non-zero
// saved credential is written to the config file before the App loads
// it.
func newTestApp(t *testing.T, saved credential.Credential) *testApp {
	t.Helper()
	server := buybottest.New(t, testToken)
	path := testutil.ConfigPath(t)
	if saved.Complete() {
		if err := credential.NewStore(path, nil).Save(saved); err != nil {
			t.Fatalf("saving test credential: %v", err)
		}
	}

	stdout := &lockedBuffer{}
	stderr := &lockedBuffer{}
	app, err := NewApp(AppConfig{
		ConfigPath: path,
		BaseURL:    server.URL,
		Stdout:     stdout,
		Stderr:     stderr,
		Logger:     testLogger(),
	})
	if err != nil {
		t.Fatalf("NewApp: %v", err)
	}

	harness := &testApp{
		App:    app,
		server: server,
		clock:  clock.Fake(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)),
		stdout: stdout,
		stderr: stderr,
	}
	app.Clock = harness.clock
	app.Hostname = func() (string, error) { return "test-host", nil }
	app.OpenURL = func(url string) error {
		harness.opened = append(harness.opened, url)
		return nil
	}
	return harness
}

// requireCategory fails unless err is a ToolError of category.
func requireCategory(t *testing.T, err error, category ErrorCategory) {
	t.Helper()
	var toolError *ToolError
	if !errors.As(err, &toolError) {
		t.Fatalf("err = %v (%T), want ToolError with category %s", err, err, category)
	}
	if toolError.Category != category {
		t.Fatalf("category = %s, want %s (err: %v)", toolError.Category, category, err)
	}
}
