// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/docchat-tui/internal/model"
	"github.com/jeranaias/docchat-tui/internal/ui/styles"
	"github.com/jeranaias/docchat-tui/internal/util"
)

// =============================================================================
// CONVERSATION LIST COMPONENT
// =============================================================================
// A selectable panel over the most recent conversations. The backend caps
// the listing at three, so the panel never scrolls; selection wraps.

// ConversationSelectedMsg is emitted when the user picks a conversation.
type ConversationSelectedMsg struct {
	ID string
}

// ConversationListCancelMsg is emitted when the panel is dismissed.
type ConversationListCancelMsg struct{}

// ConversationList renders recent conversations with keyboard selection.
type ConversationList struct {
	conversations []model.Conversation
	selected      int
	width         int
	theme         *styles.Theme
}

// NewConversationList creates an empty list.
func NewConversationList(theme *styles.Theme) *ConversationList {
	return &ConversationList{
		width: 60,
		theme: theme,
	}
}

// SetConversations replaces the listing, newest first, and clamps the
// selection.
func (c *ConversationList) SetConversations(convs []model.Conversation) {
	c.conversations = convs
	if c.selected >= len(convs) {
		c.selected = 0
	}
}

// SetWidth adjusts the panel width.
func (c *ConversationList) SetWidth(width int) {
	if width < 30 {
		width = 30
	}
	if width > 80 {
		width = 80
	}
	c.width = width
}

// Selected returns the currently highlighted conversation, or nil when the
// list is empty.
func (c *ConversationList) Selected() *model.Conversation {
	if len(c.conversations) == 0 {
		return nil
	}
	return &c.conversations[c.selected]
}

// Update handles selection keys.
func (c *ConversationList) Update(msg tea.Msg) (*ConversationList, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, nil
	}

	switch keyMsg.String() {
	case "up", "k":
		if len(c.conversations) > 0 {
			c.selected = (c.selected - 1 + len(c.conversations)) % len(c.conversations)
		}
	case "down", "j":
		if len(c.conversations) > 0 {
			c.selected = (c.selected + 1) % len(c.conversations)
		}
	case "enter":
		if sel := c.Selected(); sel != nil {
			id := sel.ID
			return c, func() tea.Msg { return ConversationSelectedMsg{ID: id} }
		}
	case "esc", "q":
		return c, func() tea.Msg { return ConversationListCancelMsg{} }
	}
	return c, nil
}

// View renders the panel.
func (c *ConversationList) View() string {
	var b strings.Builder
	b.WriteString(c.theme.ConversationTitle.Render("Recent conversations"))
	b.WriteString("\n")

	if len(c.conversations) == 0 {
		b.WriteString(c.theme.ConversationMeta.Render("No conversations yet."))
	}

	for i, conv := range c.conversations {
		b.WriteString("\n")
		b.WriteString(c.renderItem(conv, i == c.selected))
	}

	b.WriteString("\n\n")
	b.WriteString(c.theme.ConversationMeta.Render("enter open · n new · esc close"))

	return c.theme.ConversationList.Width(c.width).Render(b.String())
}

func (c *ConversationList) renderItem(conv model.Conversation, selected bool) string {
	itemStyle := c.theme.ConversationItem
	marker := "  "
	if selected {
		itemStyle = c.theme.ConversationItemSelected
		marker = "> "
	}

	title := conv.Title
	if title == "" {
		title = "(untitled)"
	}
	title = util.TruncateRunes(title, c.width-14)

	meta := relativeTime(conv.UpdatedAt) + " · " +
		toStr(conv.MessageCount) + " " + messageWord(conv.MessageCount)

	line := marker + title + "\n" +
		"  " + c.theme.ConversationMeta.Render(meta)
	if conv.LastMessage != "" {
		line += "\n  " + c.theme.ConversationMeta.Render(
			util.TruncateRunes(conv.LastMessage, c.width-10))
	}
	return itemStyle.Render(line)
}

func messageWord(n int) string {
	if n == 1 {
		return "message"
	}
	return "messages"
}

// relativeTime formats an age like "2h ago". Falls back to the date for
// anything older than a week.
func relativeTime(t time.Time) string {
	if t.IsZero() {
		return "unknown"
	}
	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return toStr(int(d.Minutes())) + "m ago"
	case d < 24*time.Hour:
		return toStr(int(d.Hours())) + "h ago"
	case d < 7*24*time.Hour:
		return toStr(int(d.Hours()/24)) + "d ago"
	default:
		return t.Format("Jan 2, 2006")
	}
}
