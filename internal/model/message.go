// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for conversations and messages.
package model

import (
	"crypto/rand"
	"encoding/hex"
	"strconv"
	"time"
)

// =============================================================================
// MESSAGE TYPE
// =============================================================================

// MessageType identifies the author of a message.
type MessageType string

const (
	TypeUser MessageType = "user"
	TypeBot  MessageType = "bot"
)

// String returns the string representation of the message type.
func (t MessageType) String() string {
	return string(t)
}

// DisplayName returns a human-readable name for the message type.
func (t MessageType) DisplayName() string {
	switch t {
	case TypeUser:
		return "You"
	case TypeBot:
		return "Assistant"
	default:
		return string(t)
	}
}

// =============================================================================
// MESSAGE STATUS
// =============================================================================

// MessageStatus tracks the delivery state of an optimistically appended
// message. Messages created locally start as Pending; the send pipeline
// moves them to Confirmed on backend success or Failed on error. A message
// is never removed from its list on failure, only marked.
type MessageStatus string

const (
	StatusPending   MessageStatus = "pending"
	StatusConfirmed MessageStatus = "confirmed"
	StatusFailed    MessageStatus = "failed"
)

// =============================================================================
// MESSAGE
// =============================================================================

// Message is a single message in a conversation. Messages are never mutated
// after creation except for id backfill and status transitions.
type Message struct {
	ID        string        `json:"id"`
	Type      MessageType   `json:"type"`
	Content   string        `json:"content"`
	Timestamp time.Time     `json:"timestamp"`
	Sources   []string      `json:"sources,omitempty"`
	Status    MessageStatus `json:"-"`
}

// NewMessage creates a new message with a generated ID.
func NewMessage(t MessageType, content string) *Message {
	return &Message{
		ID:        GenerateMessageID(),
		Type:      t,
		Content:   content,
		Timestamp: time.Now(),
		Status:    StatusConfirmed,
	}
}

// NewUserMessage creates a pending user message for an optimistic send.
func NewUserMessage(content string) *Message {
	msg := NewMessage(TypeUser, content)
	msg.Status = StatusPending
	return msg
}

// NewBotMessage creates a bot message, optionally carrying source citations.
func NewBotMessage(content string, sources []string) *Message {
	msg := NewMessage(TypeBot, content)
	msg.Sources = sources
	return msg
}

// NewNoticeMessage creates a bot-authored local notice. Notices are produced
// by gate failures and never leave the client, so they are born confirmed.
func NewNoticeMessage(content string) *Message {
	return NewMessage(TypeBot, content)
}

// =============================================================================
// MESSAGE METHODS
// =============================================================================

// Preview returns a truncated preview of the message content.
// Uses rune-based truncation to handle Unicode correctly.
func (m *Message) Preview(maxLen int) string {
	runes := []rune(m.Content)
	if len(runes) <= maxLen {
		return m.Content
	}
	return string(runes[:maxLen-3]) + "..."
}

// Excerpt returns the first maxLen runes of the content, with no ellipsis.
func (m *Message) Excerpt(maxLen int) string {
	runes := []rune(m.Content)
	if len(runes) <= maxLen {
		return m.Content
	}
	return string(runes[:maxLen])
}

// IsEmpty returns true if the message has no content.
func (m *Message) IsEmpty() bool {
	return len(m.Content) == 0
}

// HasSources returns true if the message carries citation strings.
func (m *Message) HasSources() bool {
	return len(m.Sources) > 0
}

// IsPending returns true while the message awaits backend confirmation.
func (m *Message) IsPending() bool {
	return m.Status == StatusPending
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// GenerateMessageID creates a unique message ID. Client-generated ids carry
// a millisecond timestamp plus a random suffix; backend-supplied ids use a
// different shape, so the two spaces stay disjoint by construction.
func GenerateMessageID() string {
	bytes := make([]byte, 6)
	rand.Read(bytes)
	return "msg_" + strconv.FormatInt(time.Now().UnixMilli(), 10) + "_" + hex.EncodeToString(bytes)
}
