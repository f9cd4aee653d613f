// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/docchat-tui/internal/model"
	"github.com/jeranaias/docchat-tui/internal/ui/styles"
	"github.com/jeranaias/docchat-tui/internal/util"
)

// =============================================================================
// UPGRADE PROMPT COMPONENT
// =============================================================================
// Shown when the free-chat quota runs out. Gives the remaining-chat context
// and the plan price, and points at the payment form.

// UpgradePrompt renders the quota-exhausted upsell box.
type UpgradePrompt struct {
	limits   model.ChatLimits
	amount   int
	currency string
	width    int
	theme    *styles.Theme
}

// NewUpgradePrompt creates the prompt for the given plan price in minor units.
func NewUpgradePrompt(theme *styles.Theme, amount int, currency string) *UpgradePrompt {
	return &UpgradePrompt{
		limits:   model.FreeLimits(),
		amount:   amount,
		currency: currency,
		width:    56,
		theme:    theme,
	}
}

// SetLimits updates the quota shown in the prompt.
func (u *UpgradePrompt) SetLimits(limits model.ChatLimits) {
	u.limits = limits
}

// SetWidth adjusts the box width.
func (u *UpgradePrompt) SetWidth(width int) {
	if width < 40 {
		width = 40
	}
	if width > 64 {
		width = 64
	}
	u.width = width
}

// View renders the upgrade box.
func (u *UpgradePrompt) View() string {
	var b strings.Builder

	b.WriteString(u.theme.UpgradeTitle.Render("Free chats used up"))
	b.WriteString("\n\n")

	detail := "You have used all your free chats. Upgrade to Premium for " +
		util.FormatMinorUnits(u.amount, u.currency) + "/month to keep asking questions."
	if u.limits.Remaining > 0 {
		detail = toStr(u.limits.Remaining) + " free " + chatWord(u.limits.Remaining) +
			" left. Upgrade to Premium for " +
			util.FormatMinorUnits(u.amount, u.currency) + "/month for unlimited chats."
	}
	b.WriteString(u.theme.UpgradeDetail.Render(detail))
	b.WriteString("\n\n")

	keyStyle := lipgloss.NewStyle().Foreground(styles.Gold).Bold(true)
	hintStyle := lipgloss.NewStyle().Foreground(styles.TextMuted)
	b.WriteString(keyStyle.Render("[u]"))
	b.WriteString(hintStyle.Render(" Upgrade now   "))
	b.WriteString(keyStyle.Render("[esc]"))
	b.WriteString(hintStyle.Render(" Not now"))

	return u.theme.UpgradeBox.Width(u.width).Render(b.String())
}

func chatWord(n int) string {
	if n == 1 {
		return "chat"
	}
	return "chats"
}
