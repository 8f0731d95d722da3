// Copyright 2026 The Buybot Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/x/ansi"

	"github.com/zinc-io/buybot/lib/clock"
)

const pendingLine = "Authorization pending..."

// loginProgress shows device-login progress. On a terminal a spinner
// animates the pending line on its own ticker; otherwise each pending
// poll appends a dot. All writes hold mu so the spinner goroutine and
// the flow goroutine never interleave mid-line.
type loginProgress struct {
	mu          sync.Mutex
	out         io.Writer
	interactive bool
	clock       clock.Clock
	logger      *slog.Logger

	// open, if set, is called with the browser URL.
	open func(string) error

	started  bool
	spinner  spinner.Spinner
	frame    int
	ticker   *clock.Ticker
	done     chan struct{}
	finished sync.WaitGroup
	stopOnce sync.Once
}

func newLoginProgress(out io.Writer, interactive bool, progressClock clock.Clock, logger *slog.Logger) *loginProgress {
	return &loginProgress{
		out:         out,
		interactive: interactive,
		clock:       progressClock,
		logger:      logger,
		spinner:     spinner.Dot,
		done:        make(chan struct{}),
	}
}

func (p *loginProgress) AuthorizationStarted(browserURL string) {
	p.mu.Lock()
	fmt.Fprintf(p.out, "Please open the following URL in your browser:\n    %s\n\n", browserURL)
	fmt.Fprint(p.out, pendingLine)
	p.started = true
	p.mu.Unlock()

	if p.open != nil {
		if err := p.open(browserURL); err != nil {
			p.logger.Warn("could not open browser", "error", err)
		}
	}
	if p.interactive {
		p.startSpinner()
	}
}

func (p *loginProgress) Pending() {
	if p.interactive {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprint(p.out, ".")
}

func (p *loginProgress) Anomaly(string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprint(p.out, "\nUnknown error. Trying again...\n")
	if p.interactive {
		fmt.Fprint(p.out, pendingLine)
	}
}

func (p *loginProgress) startSpinner() {
	p.ticker = p.clock.NewTicker(p.spinner.FPS)
	p.finished.Add(1)
	go func() {
		defer p.finished.Done()
		for {
			select {
			case <-p.done:
				return
			case <-p.ticker.C:
				p.drawFrame()
			}
		}
	}()
}

func (p *loginProgress) drawFrame() {
	p.mu.Lock()
	defer p.mu.Unlock()
	frames := p.spinner.Frames
	fmt.Fprintf(p.out, "\r%s %s", pendingLine, frames[p.frame%len(frames)])
	p.frame++
}

// Finish stops the spinner and prints message on a fresh line.
func (p *loginProgress) Finish(message string) {
	p.stop()
	p.mu.Lock()
	defer p.mu.Unlock()
	p.clearFrame()
	fmt.Fprintf(p.out, "\n%s\n", message)
}

// Abort stops the spinner and ends the pending line, if one was
// started, so a following error message starts on its own line.
func (p *loginProgress) Abort() {
	p.stop()
	p.mu.Lock()
	defer p.mu.Unlock()
	p.clearFrame()
	if p.started {
		fmt.Fprintln(p.out)
	}
}

// clearFrame blanks the widest spinner frame after the pending line.
// Callers hold mu.
func (p *loginProgress) clearFrame() {
	if !p.interactive || p.ticker == nil {
		return
	}
	fmt.Fprintf(p.out, "\r%s %s", pendingLine, strings.Repeat(" ", frameWidth(p.spinner)))
}

func frameWidth(s spinner.Spinner) int {
	width := 0
	for _, frame := range s.Frames {
		width = max(width, ansi.StringWidth(frame))
	}
	return width
}

func (p *loginProgress) stop() {
	p.stopOnce.Do(func() {
		close(p.done)
		if p.ticker != nil {
			p.ticker.Stop()
		}
		p.finished.Wait()
	})
}
