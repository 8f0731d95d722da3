// Copyright 2026 The Buybot Authors
// SPDX-License-Identifier: Apache-2.0

// Package products implements the "buybot products" subcommand group.
//
// "ls" lists products as a table (or JSON/YAML). "approve" and
// "reject" change the approval state of the named products and then
// list them again so the new state is visible immediately. A request
// the service refuses with a message prints that message and exits
// cleanly.
package products
