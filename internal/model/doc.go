// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for conversations and messages.
//
// This package defines the core domain types used throughout the application
// for representing chat conversations, messages, users, and chat quotas.
//
// # Key Types
//
//   - Conversation: Metadata of a chat session (title, timestamps, counters)
//   - Message: Single message with type, content, timestamp, and optional sources
//   - MessageType: Author enumeration (user, bot)
//   - ChatLimits: Quota gate for the send pipeline
//   - User: Signed-in account identity
//
// # Usage
//
// Create a new local conversation:
//
//	conv := model.NewConversation()
//
// Create an optimistic user message and record it:
//
//	msg := model.NewUserMessage("What does section 3 say?")
//	conv.RecordAppend(msg)
package model
