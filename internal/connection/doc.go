// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package connection tracks reachability of the backend endpoint.
//
// Monitor keeps a tri-state status (unknown, connected, disconnected) plus
// the error detail of the last failed probe. It re-evaluates on a periodic
// tick, on explicit request (rate limited), and resets to unknown when the
// configured endpoint changes. The send pipeline consults the state as one
// of its gates; nothing else reacts to it automatically.
package connection
