// Copyright 2026 The Buybot Authors
// SPDX-License-Identifier: Apache-2.0

// Package credential persists the buybot login credential.
//
// The credential lives in the [auth] section of an INI file:
//
//	[auth]
//	user_id = u_123
//	token   = 5f1c...
//
// The file path is $BUYBOT_CONFIG if set, otherwise
// <user config dir>/buybot-cli/config.ini. Other sections in the file
// belong to nobody in this package and are carried through a save
// untouched.
//
// [Store.Load] never fails: a missing, unreadable, or malformed file
// reads as "not logged in". [Store.Save] replaces the file atomically
// (temporary file in the same directory, then rename) while holding an
// advisory lock on unix, so a crash or a concurrent login cannot leave
// a token on disk without its user id.
package credential
