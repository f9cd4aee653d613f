// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view component for the TUI.
//
// This file builds the tea commands that perform blocking work off the UI
// goroutine: the token exchange, listing and switch fetches, the send
// pipeline, connection probes, and the payment flow.
package chat

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/docchat-tui/internal/connection"
	"github.com/jeranaias/docchat-tui/internal/payment"
)

// =============================================================================
// AUTH COMMANDS
// =============================================================================

// signInCmd exchanges the configured ID token for a session.
func (m Model) signInCmd(idToken string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		session, err := client.GoogleLogin(context.Background(), idToken)
		return SignInResultMsg{Session: session, Err: err}
	}
}

// refreshLimitsCmd re-reads the quota from the backend, e.g. after a
// successful upgrade.
func (m Model) refreshLimitsCmd() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		limits, err := client.Limits(context.Background())
		return LimitsRefreshedMsg{Limits: limits, Err: err}
	}
}

// =============================================================================
// CONVERSATION COMMANDS
// =============================================================================

// fetchConversationsCmd refreshes the listing. The store applies the
// most-recent-3 truncation and keeps prior state on failure.
func (m Model) fetchConversationsCmd() tea.Cmd {
	st := m.store
	return func() tea.Msg {
		st.FetchConversations(context.Background())
		return ConversationsLoadedMsg{}
	}
}

// switchConversationCmd performs the atomic switch: cached messages are
// reused, otherwise one fetch fills the cache.
func (m Model) switchConversationCmd(conversationID string) tea.Cmd {
	st := m.store
	return func() tea.Msg {
		msgs := st.SwitchToConversation(context.Background(), conversationID)
		return ConversationSwitchedMsg{ConversationID: conversationID, Messages: msgs}
	}
}

// deleteConversationCmd deletes remotely; the store drops local state only
// when the backend confirmed the delete.
func (m Model) deleteConversationCmd(conversationID string) tea.Cmd {
	st := m.store
	return func() tea.Msg {
		err := st.DeleteConversation(context.Background(), conversationID)
		return ConversationDeletedMsg{ConversationID: conversationID, Err: err}
	}
}

// =============================================================================
// SEND COMMAND
// =============================================================================

// sendCmd runs the full gated pipeline for one line of input. The pipeline
// owns the view model until the result message lands back in Update.
func (m Model) sendCmd(text string) tea.Cmd {
	p := m.pipeline
	return func() tea.Msg {
		return SendResultMsg{Result: p.Send(context.Background(), text)}
	}
}

// =============================================================================
// CONNECTION COMMANDS
// =============================================================================

// checkConnectionCmd probes the backend once.
func (m Model) checkConnectionCmd() tea.Cmd {
	mon := m.monitor
	if mon == nil {
		return nil
	}
	return func() tea.Msg {
		return connection.StatusMsg{Status: mon.Check(context.Background())}
	}
}

// manualCheckCmd is the user-triggered, rate-limited probe.
func (m Model) manualCheckCmd() tea.Cmd {
	mon := m.monitor
	if mon == nil {
		return nil
	}
	return func() tea.Msg {
		status, _ := mon.RequestCheck(context.Background())
		return connection.StatusMsg{Status: status}
	}
}

// =============================================================================
// PAYMENT COMMAND
// =============================================================================

// processPaymentCmd runs the mock payment flow for validated form details.
func (m Model) processPaymentCmd(details payment.Details) tea.Cmd {
	proc := m.processor
	return func() tea.Msg {
		result, err := proc.Process(context.Background(), details)
		return PaymentResultMsg{Result: result, Err: err}
	}
}
