// Copyright 2026 The Buybot Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/zinc-io/buybot/lib/buybot"
)

// ErrorCategory classifies command errors so callers (and the exit code
// mapping) can decide what to do without parsing message text.
type ErrorCategory string

const (
	// CategoryValidation indicates the caller provided invalid input:
	// missing arguments, unknown flags, unparseable values. The caller
	// should fix the input and retry.
	CategoryValidation ErrorCategory = "validation"

	// CategoryNotFound indicates a referenced resource does not exist.
	CategoryNotFound ErrorCategory = "not_found"

	// CategoryForbidden indicates the service refused the credential.
	// The caller should log in again.
	CategoryForbidden ErrorCategory = "forbidden"

	// CategoryTransient indicates a network failure, timeout, or server
	// error. Retrying later may help.
	CategoryTransient ErrorCategory = "transient"

	// CategoryInternal indicates an unexpected error: bugs, local I/O
	// failures, malformed data.
	CategoryInternal ErrorCategory = "internal"
)

// ToolError is a categorized error returned by CLI commands. It wraps
// an inner error, preserving the chain for errors.Is and errors.As.
// Use the category constructors rather than building one directly.
type ToolError struct {
	Category ErrorCategory
	Err      error
}

func (e *ToolError) Error() string { return e.Err.Error() }

func (e *ToolError) Unwrap() error { return e.Err }

// Validation creates a validation error: the caller provided bad input.
func Validation(format string, args ...any) *ToolError {
	return &ToolError{Category: CategoryValidation, Err: fmt.Errorf(format, args...)}
}

// NotFound creates a not-found error.
func NotFound(format string, args ...any) *ToolError {
	return &ToolError{Category: CategoryNotFound, Err: fmt.Errorf(format, args...)}
}

// Forbidden creates a forbidden error.
func Forbidden(format string, args ...any) *ToolError {
	return &ToolError{Category: CategoryForbidden, Err: fmt.Errorf(format, args...)}
}

// Transient creates a transient error.
func Transient(format string, args ...any) *ToolError {
	return &ToolError{Category: CategoryTransient, Err: fmt.Errorf(format, args...)}
}

// Internal creates an internal error.
func Internal(format string, args ...any) *ToolError {
	return &ToolError{Category: CategoryInternal, Err: fmt.Errorf(format, args...)}
}

// ServiceError categorizes an error returned while talking to the
// buybot service. A rejected token becomes a forbidden error telling
// the user to log in; other HTTP failures and network errors are
// transient. Cancellation and already-categorized errors pass through.
func ServiceError(err error) error {
	if err == nil {
		return nil
	}
	var toolError *ToolError
	if errors.As(err, &toolError) || errors.Is(err, context.Canceled) {
		return err
	}
	if buybot.IsUnauthorized(err) {
		return &ToolError{
			Category: CategoryForbidden,
			Err:      fmt.Errorf("not logged in or token rejected; run \"buybot login\": %w", err),
		}
	}
	if buybot.IsNotFound(err) {
		return &ToolError{Category: CategoryNotFound, Err: err}
	}
	var apiError *buybot.APIError
	if errors.As(err, &apiError) {
		return &ToolError{
			Category: CategoryTransient,
			Err:      fmt.Errorf("buybot service error (HTTP %d): %w", apiError.StatusCode, err),
		}
	}
	return &ToolError{
		Category: CategoryTransient,
		Err:      fmt.Errorf("cannot reach buybot service: %w", err),
	}
}
