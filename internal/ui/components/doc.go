// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package components provides reusable UI components for the docchat TUI.

This package contains a collection of styled, interactive components built on
top of the Bubble Tea and Lip Gloss libraries. Each component is designed to
be visually consistent with the docchat design language.

# Core Components

## Input Components

InputArea (input.go) - Styled question input with a character counter.
PaymentForm (paymentform.go) - Upgrade-payment form with card, UPI, and
net-banking methods and inline validation.

## Display Components

StatusBar (statusbar.go) - Bottom status bar with connection state, quota,
and shortcuts.
MessageBubble (message.go) - Styled chat bubbles with delivery markers and
source citations.
MarkdownRenderer (markdown.go) - Glamour-backed markdown rendering with
Chroma syntax highlighting for inline snippets.
ConversationList (conversations.go) - Selectable panel over recent
conversations.

## Progress and Feedback

Spinner (spinner.go) - Animated ASCII spinner with an elapsed timer.
ErrorToast (error_toast.go) - Auto-dismissing corner notifications.
UpgradePrompt (upgrade.go) - Quota-exhausted upsell box.

## Specialized Views

Welcome (welcome.go) - First-run welcome screen.

# Key Types

## Theme Integration

All components accept a *styles.Theme for consistent styling:

	theme := styles.NewTheme()
	bar := components.NewStatusBar(theme)
	bar.SetWidth(80)
	view := bar.View()

## Bubble Tea Integration

Interactive components follow the Bubble Tea update pattern:

	form, cmd := form.Update(msg)

and emit package-level messages (PaymentSubmitMsg, ConversationSelectedMsg,
ToastTickMsg, ...) that the chat model routes.

# Helper Functions

The package includes shared helper functions in helpers.go:
  - toStr() - Integer to string conversion without fmt
  - fmtNumber() - Thousand-separated number formatting
*/
package components
