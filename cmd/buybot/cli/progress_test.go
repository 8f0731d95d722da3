// Copyright 2026 The Buybot Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/x/ansi"

	"github.com/zinc-io/buybot/lib/clock"
)

// waitForOutput polls out until it contains want.
func waitForOutput(t *testing.T, out *lockedBuffer, want string) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for !strings.Contains(out.String(), want) {
		if time.Now().After(deadline) {
			t.Fatalf("output never contained %q:\n%q", want, out.String())
		}
		time.Sleep(time.Millisecond)
	}
}

func TestLoginProgress_SpinnerFrames(t *testing.T) {
	out := &lockedBuffer{}
	fake := clock.Fake(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	progress := newLoginProgress(out, true, fake, testLogger())

	progress.AuthorizationStarted("https://buybot.example/cli/browser/s")
	progress.Pending()

	frames := spinner.Dot.Frames
	fake.Advance(spinner.Dot.FPS)
	waitForOutput(t, out, "\r"+pendingLine+" "+frames[0])
	fake.Advance(spinner.Dot.FPS)
	waitForOutput(t, out, "\r"+pendingLine+" "+frames[1])

	progress.Finish("Login complete!")
	got := out.String()
	blank := strings.Repeat(" ", ansi.StringWidth(frames[1]))
	if !strings.HasSuffix(got, "\r"+pendingLine+" "+blank+"\nLogin complete!\n") {
		t.Errorf("output did not end with cleared frame and message: %q", got)
	}
	if strings.Contains(got, pendingLine+".") {
		t.Errorf("interactive progress printed a pending dot: %q", got)
	}
	if fake.PendingCount() != 0 {
		t.Errorf("spinner ticker still registered after Finish")
	}
}

func TestLoginProgress_AbortClearsFrame(t *testing.T) {
	out := &lockedBuffer{}
	fake := clock.Fake(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	progress := newLoginProgress(out, true, fake, testLogger())

	progress.AuthorizationStarted("https://buybot.example/cli/browser/s")
	frames := spinner.Dot.Frames
	fake.Advance(spinner.Dot.FPS)
	waitForOutput(t, out, frames[0])

	progress.Abort()
	want := "\r" + pendingLine + " " + strings.Repeat(" ", ansi.StringWidth(frames[0])) + "\n"
	if got := out.String(); !strings.HasSuffix(got, want) {
		t.Errorf("output = %q, want suffix %q", got, want)
	}
}

func TestLoginProgress_Dots(t *testing.T) {
	out := &lockedBuffer{}
	fake := clock.Fake(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	progress := newLoginProgress(out, false, fake, testLogger())

	progress.AuthorizationStarted("https://buybot.example/cli/browser/s")
	progress.Pending()
	progress.Pending()
	progress.Anomaly("status 502")
	progress.Pending()
	progress.Abort()

	want := "Please open the following URL in your browser:\n" +
		"    https://buybot.example/cli/browser/s\n\n" +
		pendingLine + ".." +
		"\nUnknown error. Trying again...\n" +
		".\n"
	if got := out.String(); got != want {
		t.Errorf("output:\n%q\nwant:\n%q", got, want)
	}
	if fake.PendingCount() != 0 {
		t.Errorf("non-interactive progress registered a timer")
	}
}

func TestLoginProgress_AbortBeforeStart(t *testing.T) {
	out := &lockedBuffer{}
	progress := newLoginProgress(out, false, clock.Real(), testLogger())
	progress.Abort()
	progress.Abort()
	if out.String() != "" {
		t.Errorf("output = %q, want nothing", out.String())
	}
}
