// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package store maintains the client-side view of conversations and messages.
//
// Store is an explicit state container with unidirectional flow: the UI
// dispatches operations, the store mutates its two maps (conversation id to
// metadata, conversation id to ordered message list) under a mutex, and
// presentation reads copies back out. ViewModel sits on top of it and derives
// the list actually displayed, including the welcome-placeholder policy.
//
// # Consistency model
//
// The backend is the source of truth, reconciled lazily. All local mutations
// are last-writer-wins; a listing fetch racing a local optimistic append is
// not sequenced, the most recent write wins. Optimistic user messages carry
// a pending/confirmed/failed status instead of being rolled back on send
// failure, which makes the accepted local/remote divergence visible rather
// than silent.
//
// # Failure policy
//
// Read failures keep the prior (stale) state and are not surfaced to the
// user; write failures keep the optimistic state and mark the message
// failed. Every failure is handed to the injected Reporter.
package store
