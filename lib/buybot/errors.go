// Copyright 2026 The Buybot Authors
// SPDX-License-Identifier: Apache-2.0

package buybot

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// APIError is a non-2xx response from the service.
type APIError struct {
	// Method and Path identify the failed request.
	Method string
	Path   string
	// StatusCode is the HTTP status code of the response.
	StatusCode int
	// Message is the service-supplied "message" field, if the body
	// carried one.
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("buybot: %s %s: %d %s: %s", e.Method, e.Path, e.StatusCode, http.StatusText(e.StatusCode), e.Message)
	}
	return fmt.Sprintf("buybot: %s %s: %d %s", e.Method, e.Path, e.StatusCode, http.StatusText(e.StatusCode))
}

func newAPIError(method, path string, statusCode int, body []byte) *APIError {
	apiError := &APIError{Method: method, Path: path, StatusCode: statusCode}
	var envelope struct {
		Message string `json:"message"`
	}
	if json.Unmarshal(body, &envelope) == nil {
		apiError.Message = envelope.Message
	}
	return apiError
}

// ValidationMessage returns the service-supplied message when err is a
// 400 response that carries one. A 400 without a message is not a
// validation failure.
func ValidationMessage(err error) (string, bool) {
	var apiError *APIError
	if !errors.As(err, &apiError) {
		return "", false
	}
	if apiError.StatusCode != http.StatusBadRequest || apiError.Message == "" {
		return "", false
	}
	return apiError.Message, true
}

// IsUnauthorized reports whether err is a 401 response.
func IsUnauthorized(err error) bool {
	var apiError *APIError
	return errors.As(err, &apiError) && apiError.StatusCode == http.StatusUnauthorized
}

// IsNotFound reports whether err is a 404 response.
func IsNotFound(err error) bool {
	var apiError *APIError
	return errors.As(err, &apiError) && apiError.StatusCode == http.StatusNotFound
}
