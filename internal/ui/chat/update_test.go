// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/docchat-tui/internal/api"
	"github.com/jeranaias/docchat-tui/internal/connection"
	"github.com/jeranaias/docchat-tui/internal/model"
	"github.com/jeranaias/docchat-tui/internal/payment"
	"github.com/jeranaias/docchat-tui/internal/send"
	"github.com/jeranaias/docchat-tui/internal/ui/components"
)

// =============================================================================
// WELCOME
// =============================================================================

func TestWelcome_AnyKeyEntersChat(t *testing.T) {
	f := newFixture(t, false, model.ChatLimits{})
	require.Equal(t, ModeWelcome, f.model.mode)

	f.drive(t, keyRunes("x"))

	assert.Equal(t, ModeChat, f.model.mode)
}

func TestWelcome_QuitStillQuits(t *testing.T) {
	f := newFixture(t, false, model.ChatLimits{})

	cmd := f.drive(t, tea.KeyMsg{Type: tea.KeyCtrlC})

	require.NotNil(t, cmd)
	assert.Equal(t, ModeWelcome, f.model.mode)
}

// =============================================================================
// SUBMIT
// =============================================================================

func TestSubmit_StartsSendAndEchoesQuestion(t *testing.T) {
	f := newFixture(t, true, model.FreeLimits())
	f.drive(t, keyRunes("x")) // leave welcome

	f.model.input.SetValue("what is the refund policy?")
	cmd := f.drive(t, tea.KeyMsg{Type: tea.KeyEnter})

	require.NotNil(t, cmd)
	assert.True(t, f.model.sending)
	assert.Equal(t, "what is the refund policy?", f.model.inFlightText)
	assert.Empty(t, f.model.input.Value(), "input clears on submit")
}

func TestSubmit_EmptyInputIsIgnored(t *testing.T) {
	f := newFixture(t, true, model.FreeLimits())
	f.drive(t, keyRunes("x"))

	f.model.input.SetValue("   ")
	cmd := f.drive(t, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd)
	assert.False(t, f.model.sending)
}

func TestSubmit_BlockedWhileSendInFlight(t *testing.T) {
	f := newFixture(t, true, model.FreeLimits())
	f.drive(t, keyRunes("x"))
	f.model.sending = true

	f.model.input.SetValue("second question")
	cmd := f.drive(t, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd)
	assert.Equal(t, "second question", f.model.input.Value(), "input keeps its text")
}

// =============================================================================
// SEND RESULTS
// =============================================================================

func sentResult(limits model.ChatLimits) send.Result {
	return send.Result{
		Outcome:        send.OutcomeSent,
		Limits:         limits,
		ConversationID: "c1",
	}
}

func TestSendResult_SentClearsInFlightState(t *testing.T) {
	f := newFixture(t, true, model.FreeLimits())
	f.drive(t, keyRunes("x"))
	f.model.sending = true
	f.model.inFlightText = "question"

	cmd := f.drive(t, SendResultMsg{Result: sentResult(model.ChatLimits{CanChat: true, Remaining: 2})})

	assert.False(t, f.model.sending)
	assert.Empty(t, f.model.inFlightText)
	assert.Equal(t, 2, f.model.statusBar.Limits.Remaining)
	assert.NotNil(t, cmd, "listing refresh scheduled after a send")
}

func TestSendResult_QuotaExhaustedRaisesUpgrade(t *testing.T) {
	f := newFixture(t, true, model.ChatLimits{CanChat: false, Remaining: 0})
	f.drive(t, keyRunes("x"))
	f.model.sending = true

	f.drive(t, SendResultMsg{Result: send.Result{
		Outcome:     send.OutcomeQuotaExhausted,
		ShowUpgrade: true,
		Limits:      model.ChatLimits{CanChat: false, Remaining: 0},
	}})

	assert.Equal(t, ModeUpgrade, f.model.mode)
}

func TestSendResult_QuotaExhaustedWithoutPromptStaysInChat(t *testing.T) {
	f := newFixture(t, true, model.ChatLimits{CanChat: false, Remaining: 0})
	f.drive(t, keyRunes("x"))
	f.model.sending = true

	f.drive(t, SendResultMsg{Result: send.Result{
		Outcome: send.OutcomeQuotaExhausted,
		Limits:  model.ChatLimits{CanChat: false, Remaining: 0},
	}})

	assert.Equal(t, ModeChat, f.model.mode)
}

func TestSendResult_FailureRaisesToast(t *testing.T) {
	f := newFixture(t, true, model.FreeLimits())
	f.drive(t, keyRunes("x"))
	f.model.sending = true

	f.drive(t, SendResultMsg{Result: send.Result{
		Outcome: send.OutcomeSendFailed,
		Limits:  model.FreeLimits(),
	}})

	assert.True(t, f.model.toasts.HasToasts())
}

// =============================================================================
// AUTH
// =============================================================================

func TestSignInResult_SuccessPopulatesAuth(t *testing.T) {
	f := newFixture(t, false, model.ChatLimits{})

	cmd := f.drive(t, SignInResultMsg{Session: &api.Session{
		Token:  "tok",
		User:   model.User{ID: "u1", Name: "Priya"},
		Limits: model.FreeLimits(),
	}})

	assert.True(t, f.auth.IsAuthenticated())
	assert.Equal(t, "Priya", f.model.statusBar.UserName)
	assert.NotNil(t, cmd, "listing fetch scheduled after sign-in")
}

func TestSignInResult_FailureRaisesToast(t *testing.T) {
	f := newFixture(t, false, model.ChatLimits{})

	f.drive(t, SignInResultMsg{Err: errors.New("401")})

	assert.False(t, f.auth.IsAuthenticated())
	assert.True(t, f.model.toasts.HasToasts())
}

func TestLimitsRefreshed_UpdatesQuota(t *testing.T) {
	f := newFixture(t, true, model.FreeLimits())

	f.drive(t, LimitsRefreshedMsg{Limits: model.PremiumLimits()})

	assert.True(t, f.model.statusBar.Limits.IsPremium)
	assert.True(t, f.auth.Limits().IsPremium)
}

func TestLimitsRefreshed_ErrorKeepsPriorQuota(t *testing.T) {
	f := newFixture(t, true, model.FreeLimits())

	f.drive(t, LimitsRefreshedMsg{Err: errors.New("boom")})

	assert.Equal(t, model.FreeChatLimit, f.auth.Limits().Remaining)
}

// =============================================================================
// CONNECTION
// =============================================================================

func TestConnectionStatus_UpdatesStatusBar(t *testing.T) {
	f := newFixture(t, false, model.ChatLimits{})

	f.drive(t, connection.StatusMsg{Status: connection.Status{State: connection.StateConnected}})

	assert.Equal(t, connection.StateConnected, f.model.statusBar.Connection)
}

func TestConnectionStatus_ToastOnlyOnDisconnectTransition(t *testing.T) {
	f := newFixture(t, false, model.ChatLimits{})

	// unknown -> disconnected: no toast
	f.drive(t, connection.StatusMsg{Status: connection.Status{State: connection.StateDisconnected}})
	assert.False(t, f.model.toasts.HasToasts())

	// connected -> disconnected: toast
	f.drive(t, connection.StatusMsg{Status: connection.Status{State: connection.StateConnected}})
	f.drive(t, connection.StatusMsg{Status: connection.Status{State: connection.StateDisconnected}})
	assert.True(t, f.model.toasts.HasToasts())
}

// =============================================================================
// HISTORY
// =============================================================================

func TestHistory_OpensListAndSchedulesFetch(t *testing.T) {
	f := newFixture(t, true, model.FreeLimits())
	f.drive(t, keyRunes("x"))

	cmd := f.drive(t, tea.KeyMsg{Type: tea.KeyCtrlL})

	assert.Equal(t, ModeHistory, f.model.mode)
	assert.NotNil(t, cmd)
}

func TestHistory_SelectionSwitchesConversation(t *testing.T) {
	f := newFixture(t, true, model.FreeLimits())
	f.drive(t, keyRunes("x"))
	f.model.mode = ModeHistory

	cmd := f.drive(t, components.ConversationSelectedMsg{ID: "c1"})

	assert.Equal(t, ModeChat, f.model.mode)
	assert.NotNil(t, cmd)
}

func TestHistory_CancelReturnsToChat(t *testing.T) {
	f := newFixture(t, true, model.FreeLimits())
	f.drive(t, keyRunes("x"))
	f.model.mode = ModeHistory

	f.drive(t, components.ConversationListCancelMsg{})

	assert.Equal(t, ModeChat, f.model.mode)
}

func TestConversationSwitched_ShowsFetchedMessages(t *testing.T) {
	f := newFixture(t, true, model.FreeLimits())
	f.drive(t, keyRunes("x"))

	msgs := []*model.Message{
		model.NewMessage(model.TypeUser, "hello"),
		model.NewMessage(model.TypeBot, "hi"),
	}
	f.drive(t, ConversationSwitchedMsg{ConversationID: "c1", Messages: msgs})

	assert.Equal(t, ModeChat, f.model.mode)
	require.Len(t, f.model.transcript, 2)
	assert.Equal(t, "hello", f.model.transcript[0].Content)
}

func TestConversationDeleted_SuccessRefreshesList(t *testing.T) {
	f := newFixture(t, true, model.FreeLimits())
	f.drive(t, keyRunes("x"))

	id := f.store.StartNewConversation()
	f.drive(t, ConversationDeletedMsg{ConversationID: id})

	toasts := f.model.toasts.GetToasts()
	require.NotEmpty(t, toasts)
	assert.Equal(t, "Deleted", toasts[len(toasts)-1].Title)
}

func TestConversationDeleted_FailureKeepsConversation(t *testing.T) {
	f := newFixture(t, true, model.FreeLimits())
	f.drive(t, keyRunes("x"))

	id := f.store.StartNewConversation()
	f.drive(t, ConversationDeletedMsg{ConversationID: id, Err: errors.New("server error")})

	assert.NotNil(t, f.store.Conversation(id), "failed delete keeps the conversation")
	toasts := f.model.toasts.GetToasts()
	require.NotEmpty(t, toasts)
	assert.Equal(t, "Delete failed", toasts[len(toasts)-1].Title)
}

func TestNewConversation_ResetsToGreeting(t *testing.T) {
	f := newFixture(t, true, model.FreeLimits())
	f.drive(t, keyRunes("x"))

	f.drive(t, tea.KeyMsg{Type: tea.KeyCtrlN})

	assert.NotEmpty(t, f.store.CurrentID())
	require.NotEmpty(t, f.model.transcript)
	assert.Equal(t, model.TypeBot, f.model.transcript[0].Type)
}

func TestNewConversation_BlockedWhileSending(t *testing.T) {
	f := newFixture(t, true, model.FreeLimits())
	f.drive(t, keyRunes("x"))
	f.model.sending = true

	f.drive(t, tea.KeyMsg{Type: tea.KeyCtrlN})

	assert.Empty(t, f.store.CurrentID())
}

// =============================================================================
// UPGRADE AND PAYMENT
// =============================================================================

func TestUpgradeKey_OpensPaymentForm(t *testing.T) {
	f := newFixture(t, true, model.ChatLimits{CanChat: false, Remaining: 0})
	f.drive(t, keyRunes("x"))

	f.drive(t, tea.KeyMsg{Type: tea.KeyCtrlU})

	assert.Equal(t, ModePayment, f.model.mode)
}

func TestUpgradeOverlay_UContinuesEscCancels(t *testing.T) {
	f := newFixture(t, true, model.ChatLimits{CanChat: false, Remaining: 0})
	f.drive(t, keyRunes("x"))
	f.model.mode = ModeUpgrade

	f.drive(t, keyRunes("u"))
	assert.Equal(t, ModePayment, f.model.mode)

	f.model.mode = ModeUpgrade
	f.drive(t, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, ModeChat, f.model.mode)
}

func TestPaymentSubmit_StartsProcessing(t *testing.T) {
	f := newFixture(t, true, model.ChatLimits{CanChat: false, Remaining: 0})
	f.drive(t, keyRunes("x"))
	f.model.mode = ModePayment

	cmd := f.drive(t, components.PaymentSubmitMsg{Details: payment.Details{
		Method: payment.MethodUPI,
		UPIID:  "asha@okbank",
	}})

	assert.True(t, f.model.paying)
	require.NotNil(t, cmd)
}

func TestPaymentResult_SuccessReturnsToChat(t *testing.T) {
	f := newFixture(t, true, model.ChatLimits{CanChat: false, Remaining: 0})
	f.drive(t, keyRunes("x"))
	f.model.mode = ModePayment
	f.model.paying = true

	cmd := f.drive(t, PaymentResultMsg{Result: payment.Result{OrderID: "o1", PaymentID: "p1"}})

	assert.False(t, f.model.paying)
	assert.Equal(t, ModeChat, f.model.mode)
	assert.True(t, f.model.toasts.HasToasts())
	assert.NotNil(t, cmd, "limits refresh scheduled after upgrade")
}

func TestPaymentResult_FailureStaysOnForm(t *testing.T) {
	f := newFixture(t, true, model.ChatLimits{CanChat: false, Remaining: 0})
	f.drive(t, keyRunes("x"))
	f.model.mode = ModePayment
	f.model.paying = true

	f.drive(t, PaymentResultMsg{Err: errors.New("gateway down")})

	assert.False(t, f.model.paying)
	assert.Equal(t, ModePayment, f.model.mode)
	assert.True(t, f.model.toasts.HasToasts())
}

func TestPaymentKeys_IgnoredWhileProcessing(t *testing.T) {
	f := newFixture(t, true, model.ChatLimits{CanChat: false, Remaining: 0})
	f.drive(t, keyRunes("x"))
	f.model.mode = ModePayment
	f.model.paying = true

	cmd := f.drive(t, tea.KeyMsg{Type: tea.KeyEsc})

	assert.Nil(t, cmd)
	assert.Equal(t, ModePayment, f.model.mode)
}

// =============================================================================
// SOURCES TOGGLE
// =============================================================================

func TestToggleSources_Flips(t *testing.T) {
	f := newFixture(t, true, model.FreeLimits())
	f.drive(t, keyRunes("x"))
	initial := f.model.showSources

	f.drive(t, tea.KeyMsg{Type: tea.KeyCtrlS})

	assert.Equal(t, !initial, f.model.showSources)
}

// =============================================================================
// TOASTS
// =============================================================================

func TestToastTick_StopsWhenEmpty(t *testing.T) {
	f := newFixture(t, true, model.FreeLimits())

	cmd := f.drive(t, components.ToastTickMsg{})

	assert.Nil(t, cmd, "no re-tick without live toasts")
}

func TestToastTick_ContinuesWhileToastsLive(t *testing.T) {
	f := newFixture(t, true, model.FreeLimits())
	f.model.toasts.AddToast(components.NewStatusToast("Hi", "there"))

	cmd := f.drive(t, components.ToastTickMsg{})

	assert.NotNil(t, cmd)
}

func TestToastExpiry_DropsOldToasts(t *testing.T) {
	f := newFixture(t, true, model.FreeLimits())
	toast := components.NewStatusToast("Old", "news")
	toast.CreatedAt = time.Now().Add(-time.Minute)
	f.model.toasts.AddToast(toast)

	f.drive(t, components.ToastTickMsg{})

	assert.False(t, f.model.toasts.HasToasts())
}
