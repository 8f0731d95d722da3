// Copyright 2026 The Buybot Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides shared test helpers for buybot packages.
package testutil
