// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api implements the HTTP client for the docchat backend.
package api

import (
	"errors"
	"fmt"
)

// Error variables for common backend errors.
var (
	// ErrNotConfigured indicates the backend base URL is not set.
	ErrNotConfigured = errors.New("backend URL not configured")

	// ErrAuthFailed indicates the session token was rejected (invalid or expired).
	ErrAuthFailed = errors.New("authentication failed")

	// ErrQuotaExceeded indicates the chat quota for the account is exhausted.
	ErrQuotaExceeded = errors.New("chat quota exceeded")

	// ErrNotFound indicates the requested conversation does not exist.
	ErrNotFound = errors.New("conversation not found")

	// ErrUnavailable indicates the backend could not be reached or returned 5xx.
	ErrUnavailable = errors.New("backend unavailable")

	// ErrPaymentFailed indicates order creation or verification was rejected.
	ErrPaymentFailed = errors.New("payment failed")
)

// APIError represents a structured error response from the backend.
type APIError struct {
	Code    string
	Message string
	Status  int
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("backend error [%s] (HTTP %d): %s", e.Code, e.Status, e.Message)
	}
	return fmt.Sprintf("backend error (HTTP %d): %s", e.Status, e.Message)
}

// Is maps the HTTP status onto the sentinel errors so callers can use
// errors.Is without inspecting status codes.
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrAuthFailed:
		return e.Status == 401
	case ErrQuotaExceeded:
		return e.Status == 403 || e.Status == 429
	case ErrNotFound:
		return e.Status == 404
	case ErrUnavailable:
		return e.Status >= 500
	}
	return false
}
