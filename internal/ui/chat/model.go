// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view component for the TUI.
package chat

import (
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/docchat-tui/internal/api"
	"github.com/jeranaias/docchat-tui/internal/auth"
	"github.com/jeranaias/docchat-tui/internal/config"
	"github.com/jeranaias/docchat-tui/internal/connection"
	"github.com/jeranaias/docchat-tui/internal/model"
	"github.com/jeranaias/docchat-tui/internal/payment"
	"github.com/jeranaias/docchat-tui/internal/send"
	"github.com/jeranaias/docchat-tui/internal/store"
	"github.com/jeranaias/docchat-tui/internal/ui/components"
	"github.com/jeranaias/docchat-tui/internal/ui/styles"
)

// =============================================================================
// MODE
// =============================================================================

// Mode selects which screen the chat model renders.
type Mode int

const (
	// ModeWelcome is the first-run splash; any key moves to chat.
	ModeWelcome Mode = iota
	// ModeChat is the transcript plus input.
	ModeChat
	// ModeHistory overlays the conversation list.
	ModeHistory
	// ModeUpgrade overlays the quota-exhausted prompt.
	ModeUpgrade
	// ModePayment overlays the payment form.
	ModePayment
)

// =============================================================================
// CHAT MODEL
// =============================================================================

// Deps carries the wired collaborators into the chat model. Everything here
// is constructed once in the CLI layer and shared for the session.
type Deps struct {
	Client    *api.Client
	Auth      *auth.State
	Store     *store.Store
	ViewModel *store.ViewModel
	Pipeline  *send.Pipeline
	Monitor   *connection.Monitor
	Processor *payment.Processor
	Config    *config.Config

	// IDToken is the startup credential exchanged for a session. Empty
	// means the user stays signed out until one is configured.
	IDToken string

	Version string
}

// Model is the Bubble Tea model for the docchat TUI.
type Model struct {
	mode   Mode
	theme  *styles.Theme
	keyMap KeyMap

	width  int
	height int

	// UI components
	viewport      viewport.Model
	input         *components.InputArea
	statusBar     *components.StatusBar
	welcome       components.Welcome
	convList      *components.ConversationList
	paymentForm   *components.PaymentForm
	upgradePrompt *components.UpgradePrompt
	spinner       components.Spinner
	toasts        *components.ToastManager
	markdown      *components.MarkdownRenderer

	// Collaborators
	client    *api.Client
	auth      *auth.State
	store     *store.Store
	viewModel *store.ViewModel
	pipeline  *send.Pipeline
	monitor   *connection.Monitor
	processor *payment.Processor
	cfg       *config.Config
	idToken   string

	// transcript is the rendered snapshot of the view model. It is only
	// refreshed inside Update, never read while a send command owns the
	// view model.
	transcript []*model.Message

	// In-flight guards. While sending, the view model belongs to the
	// pipeline command; conversation switches and recomputes wait.
	sending bool
	paying  bool

	// inFlightText echoes the submitted question while the pipeline runs.
	inFlightText string

	showSources bool
}

// New creates the chat model. The welcome splash is shown first.
func New(theme *styles.Theme, deps Deps) Model {
	vp := viewport.New(80, 20)
	vp.SetContent("")

	input := components.NewInputArea(theme)

	statusBar := components.NewStatusBar(theme)
	statusBar.ShowShortcuts = true

	welcome := components.NewWelcome(theme)
	welcome.SetVersion(deps.Version)
	if deps.Config != nil {
		welcome.SetBackend(deps.Config.Backend.BaseURL)
	}

	// The displayed price must match what the processor will charge.
	amount := payment.PlanAmount
	currency := payment.PlanCurrency
	if deps.Processor != nil {
		amount = deps.Processor.Amount()
		currency = deps.Processor.Currency()
	}

	m := Model{
		mode:          ModeWelcome,
		theme:         theme,
		keyMap:        DefaultKeyMap(),
		viewport:      vp,
		input:         input,
		statusBar:     statusBar,
		welcome:       welcome,
		convList:      components.NewConversationList(theme),
		paymentForm:   components.NewPaymentForm(theme, amount, currency),
		upgradePrompt: components.NewUpgradePrompt(theme, amount, currency),
		spinner:       components.NewThinkingSpinner(),
		toasts:        components.NewToastManager(),
		markdown:      components.NewMarkdownRenderer(76),
		client:        deps.Client,
		auth:          deps.Auth,
		store:         deps.Store,
		viewModel:     deps.ViewModel,
		pipeline:      deps.Pipeline,
		monitor:       deps.Monitor,
		processor:     deps.Processor,
		cfg:           deps.Config,
		idToken:       deps.IDToken,
		showSources:   true,
	}
	if deps.Config != nil {
		m.showSources = deps.Config.UI.ShowSources
	}

	m.refreshTranscript()
	return m
}

// Init starts the session: focus the input, kick off the first connection
// probe, exchange the configured token, and schedule the periodic tick.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		m.input.Focus(),
		m.checkConnectionCmd(),
	}
	if m.monitor != nil {
		cmds = append(cmds, m.monitor.TickCmd())
	}
	if m.idToken != "" {
		cmds = append(cmds, m.signInCmd(m.idToken))
	}
	return tea.Batch(cmds...)
}

// =============================================================================
// STATE HELPERS
// =============================================================================

// refreshTranscript snapshots the view model for rendering. Callers must
// hold the UI goroutine and have no send in flight.
func (m *Model) refreshTranscript() {
	if m.viewModel == nil {
		return
	}
	m.transcript = m.viewModel.Messages()
}

// recompute re-derives the view model for the current selection and
// refreshes the transcript.
func (m *Model) recompute() {
	if m.viewModel == nil || m.store == nil {
		return
	}
	current := m.store.CurrentID()
	m.viewModel.Recompute(current != "", m.store.Messages(current), m.auth.User())
	m.refreshTranscript()
}

// syncStatusBar pushes auth, quota, and connection state into the status bar.
func (m *Model) syncStatusBar() {
	snap := m.auth.Snapshot()
	if snap.IsAuthenticated {
		m.statusBar.SetUser(snap.User.DisplayName())
	} else {
		m.statusBar.SetUser("")
	}
	m.statusBar.SetLimits(snap.Limits)
	if m.monitor != nil {
		m.statusBar.SetConnection(m.monitor.State())
	}
}

// handleResize propagates a terminal resize to every component.
func (m *Model) handleResize(width, height int) {
	m.width = width
	m.height = height

	m.theme.SetSize(width, height)
	m.input.SetWidth(width)
	m.statusBar.SetWidth(width)
	m.welcome.SetSize(width, height)
	m.convList.SetWidth(width - 10)
	m.paymentForm.SetWidth(width - 10)
	m.upgradePrompt.SetWidth(width - 16)

	contentWidth := width - 4
	if contentWidth < 20 {
		contentWidth = 20
	}
	m.markdown.SetWidth(contentWidth)

	m.viewport.Width = width
	m.viewport.Height = m.viewportHeight()
	m.renderTranscript()
}
