// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package auth holds the client-side authentication state.
package auth

import (
	"sync"
	"time"

	"github.com/jeranaias/docchat-tui/internal/model"
)

// =============================================================================
// STATE TYPE
// =============================================================================

// State is the authentication state holder: the signed-in user, the session
// token, and the chat quota. All access is mutex-guarded; reads hand out
// copies so callers never observe a partially updated state.
//
// Token acquisition (the Google sign-in dance) happens elsewhere; State only
// stores the result and produces auth headers for outgoing requests.
type State struct {
	mu         sync.Mutex
	user       *model.User
	token      string
	limits     model.ChatLimits
	signedInAt time.Time
}

// Snapshot is a read-only copy of the authentication state.
type Snapshot struct {
	User            *model.User
	IsAuthenticated bool
	Limits          model.ChatLimits
	SignedInAt      time.Time
}

// NewState creates an empty, signed-out state.
func NewState() *State {
	return &State{}
}

// =============================================================================
// SESSION LIFECYCLE
// =============================================================================

// SignIn stores a successful sign-in result.
func (s *State) SignIn(user model.User, token string, limits model.ChatLimits) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := user
	s.user = &u
	s.token = token
	s.limits = limits
	s.signedInAt = time.Now()
}

// SignOut clears the session. The quota resets to zero rather than to the
// free default; a fresh sign-in brings the authoritative numbers back.
func (s *State) SignOut() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = nil
	s.token = ""
	s.limits = model.ChatLimits{}
	s.signedInAt = time.Time{}
}

// IsAuthenticated returns true while a session token is held.
func (s *State) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token != ""
}

// Snapshot returns a copy of the current state for display.
func (s *State) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		IsAuthenticated: s.token != "",
		Limits:          s.limits,
		SignedInAt:      s.signedInAt,
	}
	if s.user != nil {
		u := *s.user
		snap.User = &u
	}
	return snap
}

// User returns a copy of the signed-in user, or nil.
func (s *State) User() *model.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// =============================================================================
// AUTH HEADERS
// =============================================================================

// Headers returns the auth headers for outgoing requests. Empty when signed
// out, so unauthenticated probes (health checks) stay header-free.
func (s *State) Headers() map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.token == "" {
		return map[string]string{}
	}
	return map[string]string{
		"Authorization": "Bearer " + s.token,
	}
}

// =============================================================================
// QUOTA
// =============================================================================

// Limits returns the current chat quota.
func (s *State) Limits() model.ChatLimits {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.limits
}

// SetLimits replaces the quota with backend-reported numbers.
func (s *State) SetLimits(limits model.ChatLimits) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.limits = limits
}

// ConsumeChat decrements the quota after a successful send and returns the
// updated limits. The counter never goes negative.
func (s *State) ConsumeChat() model.ChatLimits {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.limits = s.limits.Consume()
	return s.limits
}

// CanChat reports whether the quota gate is open.
func (s *State) CanChat() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.limits.CanChat
}
