// Copyright 2026 The Buybot Authors
// SPDX-License-Identifier: Apache-2.0

// Package buybot is a client for the buybot purchasing-automation
// service.
//
// [Client] wraps a single resty session per process. Relative paths are
// resolved against the base URL ($BUYBOT_URL, or the production root)
// and every authenticated call carries "Authorization: Bearer <token>"
// even when no token is loaded: the service, not the client, decides
// whether a token is acceptable. Calls are never retried.
//
// Non-2xx responses come back as [*APIError]. Use [ValidationMessage]
// to recognize the recoverable 400-with-message case and
// [IsUnauthorized] for a rejected token.
//
// The device-login endpoints ([Client.StartDeviceLogin] and
// [Client.PollDeviceLogin]) are unauthenticated. The poll URL is
// absolute and is used as-is, bypassing the base URL.
package buybot
