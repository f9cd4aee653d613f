// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view component for the TUI.
//
// This file is the update loop: message routing, per-mode key handling, and
// the state transitions for send, history, connection, and payment flows.
package chat

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/docchat-tui/internal/connection"
	"github.com/jeranaias/docchat-tui/internal/model"
	"github.com/jeranaias/docchat-tui/internal/payment"
	"github.com/jeranaias/docchat-tui/internal/send"
	"github.com/jeranaias/docchat-tui/internal/ui/components"
)

// =============================================================================
// UPDATE
// =============================================================================

// Update routes messages to the active mode and the background flows.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.handleResize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	// Connection
	case connection.TickMsg:
		if m.monitor == nil {
			return m, nil
		}
		return m, m.monitor.HandleTick()

	case connection.StatusMsg:
		return m.handleConnectionStatus(msg)

	// Auth
	case SignInResultMsg:
		return m.handleSignInResult(msg)

	case LimitsRefreshedMsg:
		return m.handleLimitsRefreshed(msg)

	// Conversations
	case ConversationsLoadedMsg:
		m.convList.SetConversations(m.listedConversations())
		return m, nil

	case ConversationSwitchedMsg:
		return m.handleConversationSwitched(msg)

	case ConversationDeletedMsg:
		if msg.Err != nil {
			m.toasts.AddToast(components.NewErrorToast("Delete failed", "Conversation was kept"))
			return m, components.ToastTickCmd()
		}
		m.toasts.AddToast(components.NewStatusToast("Deleted", "Conversation removed"))
		m.recompute()
		m.renderTranscript()
		m.convList.SetConversations(m.listedConversations())
		return m, components.ToastTickCmd()

	case components.ConversationSelectedMsg:
		if m.sending {
			return m, nil
		}
		m.mode = ModeChat
		return m, m.switchConversationCmd(msg.ID)

	case components.ConversationListCancelMsg:
		m.mode = ModeChat
		return m, m.input.Focus()

	// Send
	case SendResultMsg:
		return m.handleSendResult(msg)

	// Payment
	case components.PaymentSubmitMsg:
		m.paying = true
		m.statusBar.SetStatus(components.StatusLoading)
		return m, tea.Batch(m.processPaymentCmd(msg.Details), m.spinner.Start())

	case components.PaymentCancelMsg:
		m.mode = ModeChat
		return m, m.input.Focus()

	case PaymentResultMsg:
		return m.handlePaymentResult(msg)

	// Toasts
	case components.ToastTickMsg:
		if m.toasts.TickToasts() {
			return m, components.ToastTickCmd()
		}
		return m, nil

	case components.ToastDismissMsg:
		m.toasts.Dismiss(msg.ID)
		return m, nil

	case components.ToastAddMsg:
		m.toasts.AddToast(msg.Toast)
		return m, components.ToastTickCmd()
	}

	// Everything else feeds the animated components.
	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)
	return m, cmd
}

// =============================================================================
// KEYS
// =============================================================================

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keyMap.Quit) {
		return m, tea.Quit
	}

	switch m.mode {
	case ModeWelcome:
		// Any key dismisses the splash.
		m.mode = ModeChat
		m.renderTranscript()
		return m, m.input.Focus()

	case ModeHistory:
		return m.handleHistoryKey(msg)

	case ModeUpgrade:
		return m.handleUpgradeKey(msg)

	case ModePayment:
		return m.handlePaymentKey(msg)
	}

	return m.handleChatKey(msg)
}

func (m Model) handleChatKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keyMap.Submit):
		return m.submitInput()

	case key.Matches(msg, m.keyMap.NewConversation):
		if m.sending {
			return m, nil
		}
		m.store.StartNewConversation()
		m.recompute()
		m.renderTranscript()
		return m, nil

	case key.Matches(msg, m.keyMap.History):
		if m.sending {
			return m, nil
		}
		m.convList.SetConversations(m.listedConversations())
		m.mode = ModeHistory
		m.input.Blur()
		return m, m.fetchConversationsCmd()

	case key.Matches(msg, m.keyMap.CheckConnection):
		m.statusBar.SetStatus(components.StatusLoading)
		return m, m.manualCheckCmd()

	case key.Matches(msg, m.keyMap.ToggleSources):
		m.showSources = !m.showSources
		m.renderTranscript()
		return m, nil

	case key.Matches(msg, m.keyMap.Upgrade):
		m.openPaymentForm()
		return m, nil

	case key.Matches(msg, m.keyMap.Cancel):
		if m.toasts.HasToasts() {
			m.toasts.DismissNewest()
		}
		return m, nil

	case key.Matches(msg, m.keyMap.Up),
		key.Matches(msg, m.keyMap.Down),
		key.Matches(msg, m.keyMap.PageUp),
		key.Matches(msg, m.keyMap.PageDown),
		key.Matches(msg, m.keyMap.Home),
		key.Matches(msg, m.keyMap.End):
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleHistoryKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// 'n' starts a fresh conversation straight from the list.
	if msg.Type == tea.KeyRunes && string(msg.Runes) == "n" {
		m.store.StartNewConversation()
		m.recompute()
		m.renderTranscript()
		m.mode = ModeChat
		return m, m.input.Focus()
	}
	if msg.Type == tea.KeyRunes && string(msg.Runes) == "d" {
		if conv := m.convList.Selected(); conv != nil {
			return m, m.deleteConversationCmd(conv.ID)
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.convList, cmd = m.convList.Update(msg)
	return m, cmd
}

func (m Model) handleUpgradeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyRunes && string(msg.Runes) == "u" {
		m.openPaymentForm()
		return m, nil
	}
	if key.Matches(msg, m.keyMap.Cancel) {
		m.mode = ModeChat
		return m, m.input.Focus()
	}
	return m, nil
}

func (m Model) handlePaymentKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.paying {
		return m, nil
	}
	var cmd tea.Cmd
	m.paymentForm, cmd = m.paymentForm.Update(msg)
	return m, cmd
}

// openPaymentForm resets the form to a blank state and switches mode.
func (m *Model) openPaymentForm() {
	m.paymentForm = components.NewPaymentForm(m.theme, m.planAmount(), m.planCurrency())
	m.paymentForm.SetWidth(m.width - 10)
	m.mode = ModePayment
	m.input.Blur()
}

// =============================================================================
// SEND FLOW
// =============================================================================

// submitInput kicks off the send pipeline for the current input line. The
// view model belongs to the pipeline until SendResultMsg comes back.
func (m Model) submitInput() (tea.Model, tea.Cmd) {
	if m.sending || !m.input.HasContent() {
		return m, nil
	}
	text := strings.TrimSpace(m.input.Value())
	m.input.Reset()

	m.sending = true
	m.inFlightText = text
	m.statusBar.SetStatus(components.StatusSending)
	m.renderTranscript()

	return m, tea.Batch(m.sendCmd(text), m.spinner.Start())
}

func (m Model) handleSendResult(msg SendResultMsg) (tea.Model, tea.Cmd) {
	m.sending = false
	m.inFlightText = ""
	m.spinner.Stop()
	m.statusBar.SetStatus(components.StatusReady)

	m.refreshTranscript()
	m.renderTranscript()
	m.viewport.GotoBottom()
	m.auth.SetLimits(msg.Result.Limits)
	m.syncStatusBar()

	var cmds []tea.Cmd
	switch msg.Result.Outcome {
	case send.OutcomeSent:
		// The append may have created a new conversation; refresh the
		// listing so it shows up.
		cmds = append(cmds, m.fetchConversationsCmd())

	case send.OutcomeAuthRequired:
		m.toasts.AddToast(components.NewWarningToast("Sign in required", "Configure a token to start chatting"))
		cmds = append(cmds, components.ToastTickCmd())

	case send.OutcomeQuotaExhausted:
		if msg.Result.ShowUpgrade {
			m.upgradePrompt.SetLimits(msg.Result.Limits)
			m.mode = ModeUpgrade
			m.input.Blur()
		}

	case send.OutcomeDisconnected:
		m.toasts.AddToast(components.NewErrorToast("Offline", "Backend unreachable; check the connection with ^R"))
		cmds = append(cmds, components.ToastTickCmd())

	case send.OutcomeSendFailed:
		m.toasts.AddToast(components.NewErrorToast("Send failed", "The message could not be delivered"))
		cmds = append(cmds, components.ToastTickCmd())
	}

	return m, tea.Batch(cmds...)
}

// =============================================================================
// AUTH FLOW
// =============================================================================

func (m Model) handleSignInResult(msg SignInResultMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil || msg.Session == nil {
		m.toasts.AddToast(components.NewErrorToast("Sign-in failed", "The token exchange was rejected"))
		return m, components.ToastTickCmd()
	}

	sess := msg.Session
	m.auth.SignIn(sess.User, sess.Token, sess.Limits)
	m.welcome.SetUserName(sess.User.DisplayName())
	m.recompute()
	m.renderTranscript()
	m.syncStatusBar()

	return m, m.fetchConversationsCmd()
}

func (m Model) handleLimitsRefreshed(msg LimitsRefreshedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		return m, nil
	}
	m.auth.SetLimits(msg.Limits)
	m.upgradePrompt.SetLimits(msg.Limits)
	m.syncStatusBar()
	return m, nil
}

// =============================================================================
// CONNECTION FLOW
// =============================================================================

func (m Model) handleConnectionStatus(msg connection.StatusMsg) (tea.Model, tea.Cmd) {
	previous := m.statusBar.Connection
	m.statusBar.SetConnection(msg.Status.State)
	if m.statusBar.Status == components.StatusLoading {
		m.statusBar.SetStatus(components.StatusReady)
	}

	// Only toast on the transition, not on every probe.
	if msg.Status.State == connection.StateDisconnected && previous == connection.StateConnected {
		m.toasts.AddToast(components.NewWarningToast("Disconnected", "Lost contact with the backend"))
		return m, components.ToastTickCmd()
	}
	return m, nil
}

// =============================================================================
// CONVERSATION FLOW
// =============================================================================

func (m Model) handleConversationSwitched(msg ConversationSwitchedMsg) (tea.Model, tea.Cmd) {
	m.viewModel.Recompute(true, msg.Messages, m.auth.User())
	m.refreshTranscript()
	m.renderTranscript()
	m.viewport.GotoBottom()
	m.mode = ModeChat
	return m, m.input.Focus()
}

// listedConversations dereferences the store listing for the picker.
func (m Model) listedConversations() []model.Conversation {
	ptrs := m.store.Conversations()
	convs := make([]model.Conversation, 0, len(ptrs))
	for _, c := range ptrs {
		if c != nil {
			convs = append(convs, *c)
		}
	}
	return convs
}

// =============================================================================
// PAYMENT FLOW
// =============================================================================

func (m Model) handlePaymentResult(msg PaymentResultMsg) (tea.Model, tea.Cmd) {
	m.paying = false
	m.spinner.Stop()
	m.statusBar.SetStatus(components.StatusReady)

	if msg.Err != nil {
		m.toasts.AddToast(components.NewErrorToast("Payment failed", "The payment could not be completed"))
		return m, components.ToastTickCmd()
	}

	m.pipeline.ResetUpgradePrompt()
	m.mode = ModeChat
	m.toasts.AddToast(components.NewSuccessToast("Upgraded", "Welcome to Premium"))

	return m, tea.Batch(
		m.input.Focus(),
		m.refreshLimitsCmd(),
		components.ToastTickCmd(),
	)
}

// planAmount returns the plan price the processor will actually charge.
func (m Model) planAmount() int {
	if m.processor != nil {
		return m.processor.Amount()
	}
	return payment.PlanAmount
}

func (m Model) planCurrency() string {
	if m.processor != nil {
		return m.processor.Currency()
	}
	return payment.PlanCurrency
}
