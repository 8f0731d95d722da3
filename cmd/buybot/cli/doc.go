// Copyright 2026 The Buybot Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli provides the command-line framework for buybot.
//
// The central type is [Command], which represents a named subcommand with
// optional nested [Command.Subcommands], a [pflag.FlagSet] factory, and a
// Run function. Commands are assembled into a tree by the commands
// package and dispatched via [Command.Execute], which handles flag
// parsing, subcommand routing, per-command logger scoping, and help
// output with examples. Unknown commands and flags get a Levenshtein
// "did you mean" suggestion.
//
// Flags are usually declared as tagged params structs bound by
// [FlagsFromParams]. Embedding [OutputFormat] adds --output and --json.
//
// [App] is the client context: the credential loaded once at startup,
// the API client built from it, and the output streams. Every command
// constructor takes the App rather than reaching for process globals.
//
// Errors returned by commands are categorized with [ToolError].
// [ServiceError] maps service failures (a 401 becomes "run buybot
// login") and [ExitCode] maps categories to exit codes.
//
// The package also holds the account commands: [LoginCommand],
// [LogoutCommand], and [WhoAmICommand].
package cli
