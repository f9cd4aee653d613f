// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package auth

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/docchat-tui/internal/model"
)

func signedInState() *State {
	s := NewState()
	s.SignIn(model.User{ID: "u1", Name: "Priya", Email: "priya@example.com"}, "tok-123", model.FreeLimits())
	return s
}

func TestState_SignInSignOut(t *testing.T) {
	s := NewState()
	assert.False(t, s.IsAuthenticated())
	assert.Empty(t, s.Headers())

	s.SignIn(model.User{ID: "u1", Name: "Priya"}, "tok-123", model.FreeLimits())
	assert.True(t, s.IsAuthenticated())
	assert.Equal(t, "Bearer tok-123", s.Headers()["Authorization"])

	snap := s.Snapshot()
	require.NotNil(t, snap.User)
	assert.Equal(t, "Priya", snap.User.Name)
	assert.Equal(t, model.FreeChatLimit, snap.Limits.Remaining)

	s.SignOut()
	assert.False(t, s.IsAuthenticated())
	assert.Empty(t, s.Headers())
	assert.Nil(t, s.User())
	assert.False(t, s.CanChat())
}

func TestState_SnapshotIsACopy(t *testing.T) {
	s := signedInState()

	snap := s.Snapshot()
	snap.User.Name = "Someone Else"

	assert.Equal(t, "Priya", s.User().Name, "mutating a snapshot must not touch state")
}

func TestState_ConsumeChat(t *testing.T) {
	s := signedInState()

	limits := s.ConsumeChat()
	assert.Equal(t, model.FreeChatLimit-1, limits.Remaining)
	assert.True(t, limits.CanChat)

	s.ConsumeChat()
	limits = s.ConsumeChat()
	assert.Equal(t, 0, limits.Remaining)
	assert.False(t, limits.CanChat)

	// Floor: further consumption never goes negative.
	limits = s.ConsumeChat()
	assert.Equal(t, 0, limits.Remaining)
	assert.False(t, s.CanChat())
}

func TestState_ConsumeChat_Premium(t *testing.T) {
	s := NewState()
	s.SignIn(model.User{ID: "u1"}, "tok", model.PremiumLimits())

	for i := 0; i < 10; i++ {
		s.ConsumeChat()
	}
	assert.True(t, s.CanChat(), "premium users are never gated")
}

func TestState_ConcurrentConsume(t *testing.T) {
	s := NewState()
	s.SignIn(model.User{ID: "u1"}, "tok", model.ChatLimits{CanChat: true, Remaining: 100})

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.ConsumeChat()
		}()
	}
	wg.Wait()

	limits := s.Limits()
	assert.Equal(t, 0, limits.Remaining)
	assert.False(t, limits.CanChat)
}

func TestState_SetLimits(t *testing.T) {
	s := signedInState()
	s.SetLimits(model.PremiumLimits())
	assert.True(t, s.Limits().IsPremium)
}
