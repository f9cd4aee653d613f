// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package send implements the gated message send pipeline.
//
// The gate order is fixed: authenticated, then quota, then connection. A
// blocked gate appends a bot-authored notice to the view model and performs
// no network call; the quota gate additionally raises the upgrade prompt,
// at most once per session.
//
// When all gates pass, the user message is appended optimistically (status
// pending) to both the view model and the conversation store before the
// backend call. Success decrements the quota by one, confirms the message,
// and appends the bot reply; failure marks the message failed and reports
// the error. Optimistic appends are never rolled back.
package send
