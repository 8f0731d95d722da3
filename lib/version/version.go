// Copyright 2026 The Buybot Authors
// SPDX-License-Identifier: Apache-2.0

// Package version reports build information for the buybot binary.
//
// Values are injected at build time, for example:
//
//	go build -ldflags "-X github.com/zinc-io/buybot/lib/version.GitCommit=$(git rev-parse --short HEAD)"
package version

import (
	"fmt"
	"runtime"
)

// These variables are set via -ldflags at build time.
var (
	GitCommit = "unknown"
	BuildTime = "unknown"
	Version   = "0.1.0-dev"
)

// Info returns "<version> (<commit>, <build time>)".
func Info() string {
	return fmt.Sprintf("%s (%s, %s)", Version, GitCommit, BuildTime)
}

// Full returns Info plus the Go toolchain and platform.
func Full() string {
	return fmt.Sprintf("%s %s %s/%s", Info(), runtime.Version(), runtime.GOOS, runtime.GOARCH)
}

// UserAgent is sent on every request to the remote service.
func UserAgent() string {
	return "buybot-cli/" + Version
}
