// Copyright 2026 The Buybot Authors
// SPDX-License-Identifier: Apache-2.0

// Package browser opens URLs with the operating system's default
// handler.
package browser

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"os/exec"
	"runtime"
	"strings"
)

// Open asks the OS to open an http or https URL. $BROWSER, if set,
// names the command to use instead of the platform default. Open does
// not wait for the browser to exit.
func Open(target string) error {
	if target == "" {
		return errors.New("browser: empty URL")
	}
	parsed, err := url.Parse(target)
	if err != nil {
		return fmt.Errorf("browser: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("browser: refusing to open %q: not an http(s) URL", target)
	}

	command := Command(target)
	if err := command.Start(); err != nil {
		return fmt.Errorf("browser: starting %s: %w", command.Path, err)
	}
	go command.Wait()
	return nil
}

// Command returns the command Open would run for target.
func Command(target string) *exec.Cmd {
	if override := strings.Fields(os.Getenv("BROWSER")); len(override) > 0 {
		return exec.Command(override[0], append(override[1:], target)...)
	}
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", target)
	case "windows":
		// start requires a window title argument; empty string is fine.
		return exec.Command("cmd", "/c", "start", "", target)
	default:
		return exec.Command("xdg-open", target)
	}
}
