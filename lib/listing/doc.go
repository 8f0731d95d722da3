// Copyright 2026 The Buybot Authors
// SPDX-License-Identifier: Apache-2.0

// Package listing projects fetched products and orders into display
// rows.
//
// [ProductRows] and [OrderRows] are pure: they format already-fetched
// data and never touch the network, so listing the same data twice
// yields identical rows. [Lister] pairs them with a fetch.
//
// Every string that came from the service is passed through
// ansi.Strip before it reaches a row, so a product title cannot move
// the cursor or recolor the terminal.
package listing
