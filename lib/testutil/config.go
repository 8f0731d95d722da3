// Copyright 2026 The Buybot Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"path/filepath"
	"testing"
)

// ConfigPath returns a config.ini path inside a fresh temporary
// directory. The file itself is not created.
func ConfigPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "buybot-cli", "config.ini")
}
