// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package store maintains the client-side view of conversations and messages.
package store

import (
	"strconv"

	"github.com/google/uuid"

	"github.com/jeranaias/docchat-tui/internal/model"
)

// =============================================================================
// VIEW MODEL
// =============================================================================

// ViewModel derives the displayed message list from the store's state plus a
// welcome-placeholder policy. It is only touched from the UI event loop, so
// it carries no lock of its own; the store remains the synchronized owner of
// the underlying data.
type ViewModel struct {
	displayed []*model.Message
}

// NewViewModel creates an empty view model.
func NewViewModel() *ViewModel {
	return &ViewModel{displayed: []*model.Message{}}
}

// Recompute re-derives the display list. Called on every change to the
// selection, the message mapping, or the user:
//
//  1. Selected conversation with cached messages: show them, each with a
//     display id derived by the fallback chain id -> timestamp+index ->
//     generated.
//  2. Selected conversation with no cached messages: one synthesized
//     greeting, personalized when the user is known.
//  3. No selection: one synthesized welcome message, personalized when the
//     user is known.
func (v *ViewModel) Recompute(selected bool, cached []*model.Message, user *model.User) {
	switch {
	case selected && len(cached) > 0:
		out := make([]*model.Message, len(cached))
		for i, m := range cached {
			msg := *m
			msg.ID = displayID(m, i)
			out[i] = &msg
		}
		v.displayed = out
	case selected:
		v.displayed = []*model.Message{greetingMessage(user)}
	default:
		v.displayed = []*model.Message{welcomeMessage(user)}
	}
}

// Messages returns the displayed list. The slice is a copy.
func (v *ViewModel) Messages() []*model.Message {
	out := make([]*model.Message, len(v.displayed))
	copy(out, v.displayed)
	return out
}

// AddMessage appends one message to the display list. Used for local
// optimistic echoes and gate-failure notices.
func (v *ViewModel) AddMessage(msg *model.Message) {
	v.displayed = append(v.displayed, msg)
}

// ClearMessages empties the display list outright. No placeholder is
// re-synthesized until the next Recompute.
func (v *ViewModel) ClearMessages() {
	v.displayed = []*model.Message{}
}

// Len returns the number of displayed messages.
func (v *ViewModel) Len() int {
	return len(v.displayed)
}

// =============================================================================
// PLACEHOLDER MESSAGES
// =============================================================================

func greetingMessage(user *model.User) *model.Message {
	name := user.DisplayName()
	if name != "" {
		return model.NewNoticeMessage("Hi " + name + "! This conversation is empty. Ask me anything about your documents.")
	}
	return model.NewNoticeMessage("This conversation is empty. Ask me anything about your documents.")
}

func welcomeMessage(user *model.User) *model.Message {
	name := user.DisplayName()
	if name != "" {
		return model.NewNoticeMessage("Welcome back, " + name + "! Pick a conversation or start a new one.")
	}
	return model.NewNoticeMessage("Welcome! Sign in and ask your first question to get started.")
}

// =============================================================================
// DISPLAY ID
// =============================================================================

// displayID resolves the id shown for a message: the message's own id when
// present, otherwise a timestamp+index synthetic id, otherwise a generated
// one for messages that carry neither.
func displayID(msg *model.Message, index int) string {
	if msg.ID != "" {
		return msg.ID
	}
	if !msg.Timestamp.IsZero() {
		return "ts_" + strconv.FormatInt(msg.Timestamp.Unix(), 10) + "_" + strconv.Itoa(index)
	}
	return uuid.NewString()
}
