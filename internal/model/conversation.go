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

// LastMessageLen is the number of runes of the most recent message kept as
// the conversation's preview string.
const LastMessageLen = 100

// TitleLen is the number of runes of the first user message used as an
// auto-generated conversation title.
const TitleLen = 50

// =============================================================================
// CONVERSATION TYPE
// =============================================================================

// Conversation holds the metadata of one chat conversation. The ordered
// message list lives in the conversation store's message map, keyed by ID;
// Conversation itself only carries the derived bookkeeping fields.
type Conversation struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	MessageCount int       `json:"message_count"`
	LastMessage  string    `json:"last_message"`
}

// NewConversation creates an empty local conversation with a generated ID.
// No backend call happens until the first message is sent.
func NewConversation() *Conversation {
	now := time.Now()
	return &Conversation{
		ID:        GenerateConversationID(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// =============================================================================
// CONVERSATION METHODS
// =============================================================================

// RecordAppend updates the bookkeeping fields after a message was appended
// to this conversation's list. Best-effort: the counters mirror the local
// list, not backend state.
func (c *Conversation) RecordAppend(msg *Message) {
	c.MessageCount++
	c.LastMessage = msg.Excerpt(LastMessageLen)
	c.UpdatedAt = time.Now()
	if c.Title == "" && msg.Type == TypeUser {
		c.Title = msg.Preview(TitleLen)
	}
}

// GetTitle returns the conversation title or a default.
func (c *Conversation) GetTitle() string {
	if c.Title != "" {
		return c.Title
	}
	return "New Conversation"
}

// IsEmpty returns true if no message has been recorded yet.
func (c *Conversation) IsEmpty() bool {
	return c.MessageCount == 0
}

// Clone returns a copy of the conversation metadata.
func (c *Conversation) Clone() *Conversation {
	clone := *c
	return &clone
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// GenerateConversationID creates a unique conversation ID from a millisecond
// timestamp and a random suffix.
func GenerateConversationID() string {
	bytes := make([]byte, 6)
	rand.Read(bytes)
	return "conv_" + strconv.FormatInt(time.Now().UnixMilli(), 10) + "_" + hex.EncodeToString(bytes)
}
