// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api implements the HTTP client for the docchat backend.
//
// The backend is the single remote collaborator of this client: it owns
// authentication, document retrieval, model inference, conversation storage,
// and payment settlement. This package only speaks JSON over HTTP to it.
//
// # Key Types
//
//   - Client: HTTP client with a shared pooled transport and TLS 1.2+
//   - ChatRequest / ChatReply: message submission and the bot's answer
//   - Session: sign-in result (token, user identity, chat limits)
//   - Order / VerifyRequest: payment order lifecycle
//
// # Usage
//
// Create a client and submit a message:
//
//	client := api.NewClient(cfg.Backend.URL, authState.Headers)
//	reply, err := client.Chat(ctx, api.ChatRequest{
//	    Message:        "What does section 3 cover?",
//	    ConversationID: convID,
//	})
//
// # Failure policy
//
// Every call is a single attempt; there is no retry loop. Callers decide
// whether a failure degrades to stale local state (reads) or to a marked
// pending message (writes). Sentinel errors (ErrAuthFailed, ErrQuotaExceeded,
// ErrNotFound, ErrUnavailable) support errors.Is dispatch.
package api
