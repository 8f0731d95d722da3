// Copyright 2026 The Buybot Authors
// SPDX-License-Identifier: Apache-2.0

// Package orders implements the "buybot orders" subcommand group:
// listing orders by their most recent attempt, and asking the service
// to attempt a purchase through a retailer.
package orders
