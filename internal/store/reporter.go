// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package store maintains the client-side view of conversations and messages.
package store

// Reporter receives structured failure and event notifications from the
// state-owning components. Read failures are deliberately not surfaced to
// the user (the UI keeps showing stale state), so the reporter is the only
// place they become observable.
type Reporter interface {
	// Event records a notable non-error occurrence, e.g. "conversation_deleted".
	Event(op string, detail string)

	// Error records a failed operation. The store has already decided how the
	// failure degrades (stale state, empty list, pending message); the
	// reporter must not trigger retries.
	Error(op string, err error)
}

// NopReporter discards all notifications.
type NopReporter struct{}

func (NopReporter) Event(op string, detail string) {}
func (NopReporter) Error(op string, err error)     {}
