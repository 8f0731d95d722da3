// Copyright 2026 The Buybot Authors
// SPDX-License-Identifier: Apache-2.0

//go:build !unix

package credential

// lockFile is a no-op where flock is unavailable. The atomic rename
// still keeps the file whole; concurrent saves race last-writer-wins.
func lockFile(string) (func(), error) {
	return func() {}, nil
}
