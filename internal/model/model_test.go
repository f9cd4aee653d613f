// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for conversations and messages.
package model

import (
	"strings"
	"testing"
)

// =============================================================================
// MESSAGE TESTS
// =============================================================================

func TestNewUserMessage(t *testing.T) {
	msg := NewUserMessage("hello")

	if msg.Type != TypeUser {
		t.Errorf("Type = %q, want %q", msg.Type, TypeUser)
	}
	if msg.Status != StatusPending {
		t.Errorf("Status = %q, want %q", msg.Status, StatusPending)
	}
	if !strings.HasPrefix(msg.ID, "msg_") {
		t.Errorf("ID = %q, want msg_ prefix", msg.ID)
	}
	if msg.Timestamp.IsZero() {
		t.Error("Timestamp should be set")
	}
}

func TestNewBotMessage_Sources(t *testing.T) {
	msg := NewBotMessage("see section 3", []string{"handbook.pdf p.12"})

	if msg.Type != TypeBot {
		t.Errorf("Type = %q, want %q", msg.Type, TypeBot)
	}
	if msg.Status != StatusConfirmed {
		t.Errorf("Status = %q, want %q", msg.Status, StatusConfirmed)
	}
	if !msg.HasSources() {
		t.Error("HasSources() = false, want true")
	}

	empty := NewBotMessage("no citations", nil)
	if empty.HasSources() {
		t.Error("HasSources() = true for nil sources, want false")
	}
}

func TestMessage_Preview(t *testing.T) {
	tests := []struct {
		name    string
		content string
		maxLen  int
		want    string
	}{
		{
			name:    "short content unchanged",
			content: "hello",
			maxLen:  10,
			want:    "hello",
		},
		{
			name:    "long content truncated with ellipsis",
			content: strings.Repeat("a", 20),
			maxLen:  10,
			want:    strings.Repeat("a", 7) + "...",
		},
		{
			name:    "unicode content counts runes not bytes",
			content: strings.Repeat("日", 10),
			maxLen:  10,
			want:    strings.Repeat("日", 10),
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			msg := NewMessage(TypeUser, tc.content)
			if got := msg.Preview(tc.maxLen); got != tc.want {
				t.Errorf("Preview(%d) = %q, want %q", tc.maxLen, got, tc.want)
			}
		})
	}
}

func TestMessageType_DisplayName(t *testing.T) {
	if got := TypeUser.DisplayName(); got != "You" {
		t.Errorf("TypeUser.DisplayName() = %q, want %q", got, "You")
	}
	if got := TypeBot.DisplayName(); got != "Assistant" {
		t.Errorf("TypeBot.DisplayName() = %q, want %q", got, "Assistant")
	}
}

func TestGenerateMessageID_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := GenerateMessageID()
		if seen[id] {
			t.Fatalf("duplicate message ID generated: %q", id)
		}
		seen[id] = true
	}
}

// =============================================================================
// CONVERSATION TESTS
// =============================================================================

func TestNewConversation(t *testing.T) {
	conv := NewConversation()

	if !strings.HasPrefix(conv.ID, "conv_") {
		t.Errorf("ID = %q, want conv_ prefix", conv.ID)
	}
	if !conv.IsEmpty() {
		t.Error("new conversation should be empty")
	}
	if conv.GetTitle() != "New Conversation" {
		t.Errorf("GetTitle() = %q, want default", conv.GetTitle())
	}
}

func TestConversation_RecordAppend(t *testing.T) {
	conv := NewConversation()
	before := conv.UpdatedAt

	msg := NewUserMessage("what is the refund policy?")
	conv.RecordAppend(msg)

	if conv.MessageCount != 1 {
		t.Errorf("MessageCount = %d, want 1", conv.MessageCount)
	}
	if conv.LastMessage != "what is the refund policy?" {
		t.Errorf("LastMessage = %q", conv.LastMessage)
	}
	if conv.Title != "what is the refund policy?" {
		t.Errorf("Title = %q, want first user message", conv.Title)
	}
	if conv.UpdatedAt.Before(before) {
		t.Error("UpdatedAt should not move backwards")
	}
}

func TestConversation_RecordAppend_PreviewTruncation(t *testing.T) {
	conv := NewConversation()
	long := strings.Repeat("x", 300)
	conv.RecordAppend(NewUserMessage(long))

	// The preview keeps the first 100 runes verbatim, no ellipsis.
	if conv.LastMessage != strings.Repeat("x", LastMessageLen) {
		t.Errorf("LastMessage = %q, want first %d runes unmodified", conv.LastMessage, LastMessageLen)
	}
}

func TestMessage_Excerpt(t *testing.T) {
	msg := NewUserMessage(strings.Repeat("日", 150))

	got := msg.Excerpt(100)
	if got != strings.Repeat("日", 100) {
		t.Errorf("Excerpt(100) = %q, want first 100 runes", got)
	}

	short := NewUserMessage("brief")
	if short.Excerpt(100) != "brief" {
		t.Error("Excerpt() should return short content unchanged")
	}
}

func TestConversation_TitleOnlyFromUserMessage(t *testing.T) {
	conv := NewConversation()
	conv.RecordAppend(NewBotMessage("welcome", nil))

	if conv.Title != "" {
		t.Errorf("Title = %q, bot messages must not set the title", conv.Title)
	}

	conv.RecordAppend(NewUserMessage("first question"))
	if conv.Title != "first question" {
		t.Errorf("Title = %q, want %q", conv.Title, "first question")
	}
}

// =============================================================================
// CHAT LIMITS TESTS
// =============================================================================

func TestChatLimits_Consume(t *testing.T) {
	tests := []struct {
		name          string
		limits        ChatLimits
		wantRemaining int
		wantCanChat   bool
	}{
		{
			name:          "decrements remaining",
			limits:        ChatLimits{CanChat: true, Remaining: 3},
			wantRemaining: 2,
			wantCanChat:   true,
		},
		{
			name:          "last chat flips canChat",
			limits:        ChatLimits{CanChat: true, Remaining: 1},
			wantRemaining: 0,
			wantCanChat:   false,
		},
		{
			name:          "floors at zero",
			limits:        ChatLimits{CanChat: false, Remaining: 0},
			wantRemaining: 0,
			wantCanChat:   false,
		},
		{
			name:          "premium never decremented",
			limits:        PremiumLimits(),
			wantRemaining: -1,
			wantCanChat:   true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.limits.Consume()
			if got.Remaining != tc.wantRemaining {
				t.Errorf("Remaining = %d, want %d", got.Remaining, tc.wantRemaining)
			}
			if got.CanChat != tc.wantCanChat {
				t.Errorf("CanChat = %v, want %v", got.CanChat, tc.wantCanChat)
			}
		})
	}
}

func TestFreeLimits(t *testing.T) {
	l := FreeLimits()
	if l.Remaining != FreeChatLimit || !l.CanChat || l.IsPremium {
		t.Errorf("FreeLimits() = %+v", l)
	}
}

// =============================================================================
// USER TESTS
// =============================================================================

func TestUser_DisplayName(t *testing.T) {
	tests := []struct {
		name string
		user *User
		want string
	}{
		{"nil user", nil, ""},
		{"named user", &User{Name: "Priya", Email: "priya@example.com"}, "Priya"},
		{"email fallback", &User{Email: "priya@example.com"}, "priya"},
		{"bare string fallback", &User{Email: "priya"}, "priya"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.user.DisplayName(); got != tc.want {
				t.Errorf("DisplayName() = %q, want %q", got, tc.want)
			}
		})
	}
}
