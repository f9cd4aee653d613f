// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for conversations and messages.
package model

// FreeChatLimit is the number of chats a free-tier user may send before an
// upgrade is required.
const FreeChatLimit = 3

// =============================================================================
// USER TYPE
// =============================================================================

// User identifies the signed-in account, as reported by the backend after a
// Google sign-in exchange.
type User struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture,omitempty"`
}

// DisplayName returns the user's name, falling back to the email local part.
func (u *User) DisplayName() string {
	if u == nil {
		return ""
	}
	if u.Name != "" {
		return u.Name
	}
	for i := 0; i < len(u.Email); i++ {
		if u.Email[i] == '@' {
			return u.Email[:i]
		}
	}
	return u.Email
}

// =============================================================================
// CHAT LIMITS
// =============================================================================

// ChatLimits is the quota gate for the send pipeline. Remaining never goes
// negative; once CanChat is false no further optimistic sends are allowed.
type ChatLimits struct {
	CanChat   bool `json:"can_chat"`
	Remaining int  `json:"remaining"`
	IsPremium bool `json:"is_premium"`
}

// FreeLimits returns the default quota for a fresh free-tier user.
func FreeLimits() ChatLimits {
	return ChatLimits{CanChat: true, Remaining: FreeChatLimit}
}

// PremiumLimits returns the unlimited quota of an upgraded user.
func PremiumLimits() ChatLimits {
	return ChatLimits{CanChat: true, Remaining: -1, IsPremium: true}
}

// Consume decrements the quota after a successful send and returns the
// updated limits. Premium users are never decremented; the counter floors
// at zero and CanChat flips to false when it gets there.
func (l ChatLimits) Consume() ChatLimits {
	if l.IsPremium {
		return l
	}
	if l.Remaining > 0 {
		l.Remaining--
	}
	l.CanChat = l.Remaining > 0
	return l
}
