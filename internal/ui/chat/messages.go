// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view component for the TUI.
//
// This file defines the Bubble Tea message types used by the chat interface.
// Messages are organized into the following categories:
//   - Auth: session exchange and limits refresh
//   - Conversations: listing, switching, creation, deletion
//   - Send: send pipeline results
//   - Payment: upgrade flow results
//
// Connection probe messages (TickMsg, StatusMsg) live in internal/connection;
// component-level messages (PaymentSubmitMsg, ConversationSelectedMsg, toast
// messages) live in internal/ui/components.
package chat

import (
	"github.com/jeranaias/docchat-tui/internal/api"
	"github.com/jeranaias/docchat-tui/internal/model"
	"github.com/jeranaias/docchat-tui/internal/payment"
	"github.com/jeranaias/docchat-tui/internal/send"
)

// =============================================================================
// AUTH MESSAGES
// =============================================================================

// SignInResultMsg reports the outcome of the startup token exchange.
type SignInResultMsg struct {
	Session *api.Session
	Err     error
}

// LimitsRefreshedMsg carries a fresh quota snapshot from the backend.
type LimitsRefreshedMsg struct {
	Limits model.ChatLimits
	Err    error
}

// =============================================================================
// CONVERSATION MESSAGES
// =============================================================================

// ConversationsLoadedMsg signals that the listing fetch finished. The store
// already holds the result (or kept its prior state on failure).
type ConversationsLoadedMsg struct{}

// ConversationSwitchedMsg reports an atomic switch to another conversation.
type ConversationSwitchedMsg struct {
	ConversationID string
	Messages       []*model.Message
}

// ConversationDeletedMsg signals that a delete round trip finished. A
// non-nil Err means the backend refused and the conversation was kept.
type ConversationDeletedMsg struct {
	ConversationID string
	Err            error
}

// =============================================================================
// SEND MESSAGES
// =============================================================================

// SendResultMsg carries the outcome of one send-pipeline run.
type SendResultMsg struct {
	Result send.Result
}

// =============================================================================
// PAYMENT MESSAGES
// =============================================================================

// PaymentResultMsg reports the outcome of an upgrade payment attempt.
type PaymentResultMsg struct {
	Result payment.Result
	Err    error
}
