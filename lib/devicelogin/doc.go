// Copyright 2026 The Buybot Authors
// SPDX-License-Identifier: Apache-2.0

// Package devicelogin drives the browser-mediated device authorization
// handshake.
//
// The flow asks the service for a browser URL and a poll URL, hands the
// browser URL to an [Observer] for display, then polls on a fixed
// interval until the service answers:
//
//	404                     -> Rejected (terminal)
//	{"token","user_id"}     -> Authorized (terminal, credential saved)
//	{"pending": true}       -> keep polling
//	anything else           -> Error, reported, then back to Polling
//
// A failed poll request (network error, or the per-request timeout)
// ends the flow with an error. The loop is bounded by an optional
// overall deadline and by the caller's context, both checked at the top
// of every tick.
package devicelogin
