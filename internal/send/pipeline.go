// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package send implements the gated message send pipeline.
package send

import (
	"context"
	"strings"

	"github.com/jeranaias/docchat-tui/internal/api"
	"github.com/jeranaias/docchat-tui/internal/auth"
	"github.com/jeranaias/docchat-tui/internal/model"
	"github.com/jeranaias/docchat-tui/internal/store"
)

// =============================================================================
// OUTCOME TYPE
// =============================================================================

// Outcome classifies what the pipeline did with the input.
type Outcome int

const (
	// OutcomeSent: all gates passed, the backend answered.
	OutcomeSent Outcome = iota

	// OutcomeEmpty: blank input, nothing happened.
	OutcomeEmpty

	// OutcomeAuthRequired: blocked at the authentication gate.
	OutcomeAuthRequired

	// OutcomeQuotaExhausted: blocked at the quota gate.
	OutcomeQuotaExhausted

	// OutcomeDisconnected: blocked at the connection gate.
	OutcomeDisconnected

	// OutcomeSendFailed: gates passed, the backend call failed. The
	// optimistic user message stays appended, marked failed.
	OutcomeSendFailed
)

// Result is what the UI needs to render after a send attempt.
type Result struct {
	Outcome Outcome

	// UserMessage is the optimistically appended message (nil when a gate
	// blocked before the append).
	UserMessage *model.Message

	// BotReply is the backend's answer (only set for OutcomeSent).
	BotReply *model.Message

	// Notice is the bot-authored local notice appended on gate failure.
	Notice *model.Message

	// ShowUpgrade asks the UI to raise the upgrade prompt. Raised at most
	// once per session for the quota gate.
	ShowUpgrade bool

	// Limits is the quota after the attempt.
	Limits model.ChatLimits

	// ConversationID is where the messages landed.
	ConversationID string
}

// =============================================================================
// PIPELINE
// =============================================================================

// Sender performs the backend chat call. Satisfied by api.Client.
type Sender interface {
	Chat(ctx context.Context, req api.ChatRequest) (*api.ChatReply, error)
}

// Config wires the pipeline's collaborators.
type Config struct {
	Auth      *auth.State
	Store     *store.Store
	ViewModel *store.ViewModel
	Sender    Sender

	// Connected reports the connection monitor's gate.
	Connected func() bool

	// Reporter receives send failures. Defaults to NopReporter.
	Reporter store.Reporter
}

// Pipeline applies the gate order (authenticated, quota, connected), performs
// the optimistic local append, forwards the message, and reconciles the
// reply. Gate failures append a local bot-authored notice instead of
// sending; network failures mark the optimistic message failed and are
// otherwise only reported, never rolled back.
type Pipeline struct {
	auth      *auth.State
	store     *store.Store
	viewModel *store.ViewModel
	sender    Sender
	connected func() bool
	reporter  store.Reporter

	upgradeShown bool
}

// New creates a send pipeline.
func New(cfg Config) *Pipeline {
	if cfg.Reporter == nil {
		cfg.Reporter = store.NopReporter{}
	}
	if cfg.Connected == nil {
		cfg.Connected = func() bool { return false }
	}
	return &Pipeline{
		auth:      cfg.Auth,
		store:     cfg.Store,
		viewModel: cfg.ViewModel,
		sender:    cfg.Sender,
		connected: cfg.Connected,
		reporter:  cfg.Reporter,
	}
}

// Send runs the full pipeline for one line of user input.
func (p *Pipeline) Send(ctx context.Context, text string) Result {
	text = strings.TrimSpace(text)
	if text == "" {
		return Result{Outcome: OutcomeEmpty, Limits: p.auth.Limits()}
	}

	// Gate 1: authentication.
	if !p.auth.IsAuthenticated() {
		notice := model.NewNoticeMessage("Please sign in to ask questions about your documents.")
		p.viewModel.AddMessage(notice)
		return Result{Outcome: OutcomeAuthRequired, Notice: notice, Limits: p.auth.Limits()}
	}

	// Gate 2: quota. Raises the upgrade prompt the first time it blocks;
	// no optimistic append happens past this point until all gates pass.
	if !p.auth.CanChat() {
		notice := model.NewNoticeMessage("You've used all your free chats. Upgrade to keep asking questions.")
		p.viewModel.AddMessage(notice)
		show := !p.upgradeShown
		p.upgradeShown = true
		return Result{
			Outcome:     OutcomeQuotaExhausted,
			Notice:      notice,
			ShowUpgrade: show,
			Limits:      p.auth.Limits(),
		}
	}

	// Gate 3: connection.
	if !p.connected() {
		notice := model.NewNoticeMessage("Can't reach the server right now. Check your connection and try again.")
		p.viewModel.AddMessage(notice)
		return Result{Outcome: OutcomeDisconnected, Notice: notice, Limits: p.auth.Limits()}
	}

	// All gates passed: optimistic append, then the backend call.
	convID := p.store.CurrentID()
	if convID == "" {
		convID = p.store.StartNewConversation()
	}

	userMsg := model.NewUserMessage(text)
	p.viewModel.AddMessage(userMsg)
	p.store.AddMessageToConversation(convID, userMsg)

	reply, err := p.sender.Chat(ctx, api.ChatRequest{
		Message:        text,
		ConversationID: convID,
	})
	if err != nil {
		p.store.FailMessage(convID, userMsg.ID)
		userMsg.Status = model.StatusFailed
		p.reporter.Error("send_message", err)
		return Result{
			Outcome:        OutcomeSendFailed,
			UserMessage:    userMsg,
			Limits:         p.auth.Limits(),
			ConversationID: convID,
		}
	}

	limits := p.auth.ConsumeChat()
	p.store.ConfirmMessage(convID, userMsg.ID)
	userMsg.Status = model.StatusConfirmed

	botMsg := reply.BotMessage()
	p.store.AddMessageToConversation(convID, botMsg)
	p.viewModel.AddMessage(botMsg)

	return Result{
		Outcome:        OutcomeSent,
		UserMessage:    userMsg,
		BotReply:       botMsg,
		Limits:         limits,
		ConversationID: convID,
	}
}

// ResetUpgradePrompt re-arms the once-per-session upgrade prompt, e.g. after
// a successful upgrade followed by a later quota change.
func (p *Pipeline) ResetUpgradePrompt() {
	p.upgradeShown = false
}
