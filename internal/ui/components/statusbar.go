// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the visual UI components for the docchat TUI.
package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/jeranaias/docchat-tui/internal/connection"
	"github.com/jeranaias/docchat-tui/internal/model"
	"github.com/jeranaias/docchat-tui/internal/ui/styles"
	"github.com/jeranaias/docchat-tui/internal/util"
)

// =============================================================================
// STATUS BAR COMPONENT - Bottom status bar
// =============================================================================

// Status represents the current application status
type Status int

const (
	StatusReady Status = iota
	StatusThinking
	StatusSending
	StatusLoading
	StatusError
	StatusIdle
)

// String returns the display string for the status
func (s Status) String() string {
	switch s {
	case StatusReady:
		return "Ready"
	case StatusThinking:
		return "Thinking..."
	case StatusSending:
		return "Sending..."
	case StatusLoading:
		return "Loading..."
	case StatusError:
		return "Error"
	case StatusIdle:
		return "Idle"
	default:
		return "Unknown"
	}
}

// Icon returns an icon for the status
// ACCESSIBILITY: Uses distinct shapes alongside colors for colorblind users
func (s Status) Icon() string {
	switch s {
	case StatusReady:
		return styles.StatusIndicators.Success
	case StatusThinking, StatusSending, StatusLoading:
		return styles.StatusIndicators.Pending
	case StatusError:
		return styles.StatusIndicators.Error
	case StatusIdle:
		return "-"
	default:
		return "?"
	}
}

// StatusBar represents the bottom status bar
type StatusBar struct {
	Connection    connection.State // Backend reachability
	UserName      string           // Signed-in display name, empty when anonymous
	Limits        model.ChatLimits // Chat quota snapshot
	Status        Status           // Current status
	Width         int              // Available width
	ShowShortcuts bool             // Show keyboard shortcuts
	theme         *styles.Theme
}

// NewStatusBar creates a new StatusBar component
func NewStatusBar(theme *styles.Theme) *StatusBar {
	return &StatusBar{
		Connection:    connection.StateUnknown,
		Limits:        model.FreeLimits(),
		Status:        StatusReady,
		Width:         80,
		ShowShortcuts: true,
		theme:         theme,
	}
}

// SetWidth updates the status bar width
func (s *StatusBar) SetWidth(width int) {
	s.Width = width
}

// SetStatus updates the current status
func (s *StatusBar) SetStatus(status Status) {
	s.Status = status
}

// SetConnection updates the backend reachability display
func (s *StatusBar) SetConnection(state connection.State) {
	s.Connection = state
}

// SetUser updates the signed-in user display. Empty means anonymous.
func (s *StatusBar) SetUser(name string) {
	s.UserName = name
}

// SetLimits updates the chat quota display
func (s *StatusBar) SetLimits(limits model.ChatLimits) {
	s.Limits = limits
}

// View renders the status bar
func (s *StatusBar) View() string {
	if s.Width < 60 {
		return s.viewNarrow()
	}
	if s.Width < 100 {
		return s.viewMedium()
	}
	return s.viewWide()
}

// viewNarrow renders a compact status bar for narrow terminals
// Format: [C|3] Status
func (s *StatusBar) viewNarrow() string {
	parts := []string{}

	// Connection indicator (first letter only)
	connStyle := s.connectionStyle()
	parts = append(parts, connStyle.Render(strings.ToUpper(s.Connection.String()[:1])))

	// Quota (count only)
	parts = append(parts, s.renderQuotaShort())

	section := "[" + strings.Join(parts, "|") + "]"

	statusStyle := s.statusStyle()
	statusText := statusStyle.Render(s.Status.Icon())

	separator := lipgloss.NewStyle().Foreground(styles.Overlay).Render(" ")
	result := section + separator + statusText

	return lipgloss.NewStyle().
		Background(styles.SurfaceDim).
		Foreground(styles.TextSecondary).
		Width(s.Width).
		Render(result)
}

// viewMedium renders a medium-width status bar
// Format: connected | user | chats: 2 | Status
func (s *StatusBar) viewMedium() string {
	separator := lipgloss.NewStyle().
		Foreground(styles.Overlay).
		Render(" | ")

	parts := []string{}

	// Connection badge
	parts = append(parts, s.renderConnection())

	// User cell is fixed-width so the quota column does not shift between
	// short and long names.
	if s.UserName != "" {
		userStyle := lipgloss.NewStyle().Foreground(styles.TextSecondary)
		parts = append(parts, userStyle.Render(userCell(s.UserName, 15)))
	}

	// Quota
	parts = append(parts, s.renderQuota())

	// Status
	statusStyle := s.statusStyle()
	parts = append(parts, statusStyle.Render(s.Status.String()))

	result := strings.Join(parts, separator)

	return lipgloss.NewStyle().
		Background(styles.SurfaceDim).
		Foreground(styles.TextSecondary).
		Padding(0, 1).
		Width(s.Width).
		Render(result)
}

// viewWide renders a full-featured status bar for wide terminals
// Format: connected | alice@example.com | chats left: 2 | Status    shortcuts
func (s *StatusBar) viewWide() string {
	separator := lipgloss.NewStyle().
		Foreground(styles.Overlay).
		Render(" | ")

	leftParts := []string{}

	leftParts = append(leftParts, s.renderConnection())

	if s.UserName != "" {
		userStyle := lipgloss.NewStyle().Foreground(styles.TextSecondary)
		leftParts = append(leftParts, userStyle.Render(util.TruncateRunes(s.UserName, 30)))
	} else {
		anonStyle := lipgloss.NewStyle().Foreground(styles.TextMuted).Italic(true)
		leftParts = append(leftParts, anonStyle.Render("not signed in"))
	}

	leftParts = append(leftParts, s.renderQuota())

	statusStyle := s.statusStyle()
	leftParts = append(leftParts, statusStyle.Render(s.Status.Icon()+" "+s.Status.String()))

	left := strings.Join(leftParts, separator)

	// Right section: shortcuts
	right := ""
	if s.ShowShortcuts {
		right = s.renderShortcuts()
	}

	// Pad the middle
	gap := s.Width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}

	result := left + strings.Repeat(" ", gap) + right

	return lipgloss.NewStyle().
		Background(styles.SurfaceDim).
		Foreground(styles.TextSecondary).
		Padding(0, 1).
		Width(s.Width).
		Render(result)
}

// ==========================================================================
// SECTION RENDERERS
// ==========================================================================

// renderConnection renders the connection badge with a shape indicator.
// ACCESSIBILITY: Shape indicators alongside color for colorblind users.
func (s *StatusBar) renderConnection() string {
	style := s.connectionStyle()
	switch s.Connection {
	case connection.StateConnected:
		return style.Render(styles.StatusIndicators.Active + " connected")
	case connection.StateDisconnected:
		return style.Render(styles.StatusIndicators.Error + " disconnected")
	default:
		return style.Render("? checking")
	}
}

// renderQuota renders the remaining free chats or the premium badge.
func (s *StatusBar) renderQuota() string {
	if s.Limits.IsPremium {
		return s.theme.PremiumBadge.Render("PRO")
	}

	label := "chats left: " + toStr(s.Limits.Remaining)
	if s.Limits.Remaining <= 1 {
		return s.theme.QuotaBadgeLow.Render(label)
	}
	return s.theme.QuotaBadge.Render(label)
}

// renderQuotaShort renders a compact quota indicator for narrow layouts.
func (s *StatusBar) renderQuotaShort() string {
	if s.Limits.IsPremium {
		return s.theme.PremiumBadge.Render("P")
	}
	if s.Limits.Remaining <= 1 {
		return s.theme.QuotaBadgeLow.Render(toStr(s.Limits.Remaining))
	}
	return s.theme.QuotaBadge.Render(toStr(s.Limits.Remaining))
}

// renderShortcuts renders the keyboard shortcut hints.
func (s *StatusBar) renderShortcuts() string {
	shortcuts := []struct {
		key  string
		desc string
	}{
		{"^N", "new"},
		{"^L", "list"},
		{"^R", "retry conn"},
		{"^C", "quit"},
	}

	var parts []string
	for _, sc := range shortcuts {
		parts = append(parts, s.theme.ShortcutKey.Render(sc.key)+" "+s.theme.ShortcutDesc.Render(sc.desc))
	}
	return strings.Join(parts, "  ")
}

// ==========================================================================
// STYLE HELPERS
// ==========================================================================

func (s *StatusBar) connectionStyle() lipgloss.Style {
	switch s.Connection {
	case connection.StateConnected:
		return s.theme.ConnConnected
	case connection.StateDisconnected:
		return s.theme.ConnDisconnected
	default:
		return s.theme.ConnUnknown
	}
}

func (s *StatusBar) statusStyle() lipgloss.Style {
	switch s.Status {
	case StatusError:
		return s.theme.ErrorStyle
	case StatusThinking, StatusSending, StatusLoading:
		return s.theme.WarningStyle
	default:
		return s.theme.SuccessStyle
	}
}

// userCell truncates and pads a display name to a fixed column width.
// Measured in display columns, so CJK names never overrun the cell.
func userCell(name string, width int) string {
	name = util.TruncateRunes(name, width)
	for util.StringWidth(name) > width && util.RuneLen(name) > 0 {
		name = util.TruncateRunes(name, util.RuneLen(name)-1)
	}
	return util.PadRight(name, width)
}
