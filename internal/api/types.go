// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api implements the HTTP client for the docchat backend.
package api

import (
	"github.com/jeranaias/docchat-tui/internal/model"
)

// =============================================================================
// CHAT
// =============================================================================

// ChatRequest is the payload for submitting a message.
type ChatRequest struct {
	Message        string `json:"message"`
	ConversationID string `json:"conversation_id,omitempty"`
}

// ChatReply is the backend's answer to a submitted message.
type ChatReply struct {
	MessageID      string   `json:"message_id"`
	Response       string   `json:"response"`
	Sources        []string `json:"sources,omitempty"`
	ConversationID string   `json:"conversation_id"`
}

// BotMessage converts the reply into a display message.
func (r *ChatReply) BotMessage() *model.Message {
	msg := model.NewBotMessage(r.Response, r.Sources)
	if r.MessageID != "" {
		msg.ID = r.MessageID
	}
	return msg
}

// =============================================================================
// HISTORY
// =============================================================================

// historyResponse is the wire shape of the conversation listing.
type historyResponse struct {
	Conversations []*model.Conversation `json:"conversations"`
}

// messagesResponse is the wire shape of one conversation's message list.
type messagesResponse struct {
	Messages []*model.Message `json:"messages"`
}

// =============================================================================
// AUTH
// =============================================================================

// LoginRequest carries a Google ID token to exchange for a session.
type LoginRequest struct {
	IDToken string `json:"id_token"`
}

// Session is the backend's answer to a successful sign-in.
type Session struct {
	Token  string           `json:"token"`
	User   model.User       `json:"user"`
	Limits model.ChatLimits `json:"limits"`
}

// =============================================================================
// PAYMENT
// =============================================================================

// OrderRequest asks the backend to create a payment order.
type OrderRequest struct {
	Amount   int    `json:"amount"`   // smallest currency unit (paise)
	Currency string `json:"currency"` // e.g. "INR"
}

// Order is a created payment order awaiting completion.
type Order struct {
	OrderID  string `json:"order_id"`
	Amount   int    `json:"amount"`
	Currency string `json:"currency"`
}

// VerifyRequest asks the backend to verify a completed payment. The
// signature covers "order_id|payment_id" and is checked server-side against
// the gateway secret.
type VerifyRequest struct {
	OrderID   string `json:"order_id"`
	PaymentID string `json:"payment_id"`
	Signature string `json:"signature"`
}

// verifyResponse is the wire shape of the verification result.
type verifyResponse struct {
	Verified bool `json:"verified"`
}

// apiErrorResponse represents an error response from the backend.
type apiErrorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
	Detail string `json:"detail,omitempty"`
}
