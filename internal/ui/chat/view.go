// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view component for the TUI.
//
// This file contains the rendering logic: the main chat layout (transcript
// viewport + input + status bar), the full-screen welcome splash, the
// centered history/upgrade/payment overlays, and the toast compositing.
package chat

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/docchat-tui/internal/model"
	"github.com/jeranaias/docchat-tui/internal/ui/components"
	"github.com/jeranaias/docchat-tui/internal/ui/styles"
)

// =============================================================================
// MAIN VIEW
// =============================================================================

// View renders the active mode.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	switch m.mode {
	case ModeWelcome:
		return m.welcome.View()
	case ModeHistory:
		return m.renderOverlay(m.convList.View())
	case ModeUpgrade:
		return m.renderOverlay(m.upgradePrompt.View())
	case ModePayment:
		return m.renderOverlay(m.paymentForm.View())
	}
	return m.renderChat()
}

// renderChat renders the chat layout. The viewport is sized in handleResize
// so the stack fills the terminal exactly; a mismatch is corrected here as a
// fallback.
func (m Model) renderChat() string {
	input := m.input.View()
	status := m.statusBar.View()

	availableHeight := m.height - lipgloss.Height(input) - lipgloss.Height(status)
	if availableHeight < 1 {
		availableHeight = 1
	}

	transcript := m.viewport.View()
	if lipgloss.Height(transcript) != availableHeight {
		transcript = lipgloss.NewStyle().
			Height(availableHeight).
			MaxHeight(availableHeight).
			Width(m.width).
			Render(transcript)
	}

	base := lipgloss.JoinVertical(lipgloss.Left, transcript, input, status)

	if m.toasts.HasToasts() {
		overlay := components.RenderToastStack(m.toasts, m.width, m.height)
		return m.overlayToasts(base, overlay)
	}
	return base
}

// renderOverlay centers a panel over a dimmed-out screen. The chat behind
// it is not drawn; the panel owns the terminal until dismissed.
func (m Model) renderOverlay(panel string) string {
	status := m.statusBar.View()
	body := lipgloss.Place(
		m.width, m.height-lipgloss.Height(status),
		lipgloss.Center, lipgloss.Center,
		panel,
	)
	return lipgloss.JoinVertical(lipgloss.Left, body, status)
}

// =============================================================================
// TRANSCRIPT
// =============================================================================

// viewportHeight computes the rows left for the transcript after the fixed
// components take theirs.
func (m Model) viewportHeight() int {
	h := m.height - lipgloss.Height(m.input.View()) - lipgloss.Height(m.statusBar.View())
	if h < 1 {
		return 1
	}
	return h
}

// renderTranscript rebuilds the viewport content from the transcript
// snapshot. While a send is in flight the submitted question is echoed after
// the snapshot with a pending marker, followed by the thinking spinner.
func (m *Model) renderTranscript() {
	width := m.viewport.Width
	if width < 20 {
		width = 80
	}

	var blocks []string
	for i, msg := range m.transcript {
		bubble := components.NewMessageBubble(m.displayMessage(msg), m.theme)
		bubble.SetWidth(width)
		bubble.SetIsLatest(i == len(m.transcript)-1 && !m.sending)
		bubble.ShowSources = m.showSources
		blocks = append(blocks, bubble.View())
	}

	if m.sending {
		echo := &model.Message{
			Type:    model.TypeUser,
			Content: m.inFlightText,
			Status:  model.StatusPending,
		}
		bubble := components.NewMessageBubble(echo, m.theme)
		bubble.SetWidth(width)
		bubble.ShowTimestamp = false
		blocks = append(blocks, bubble.View(), "  "+m.spinner.View())
	}

	if len(blocks) == 0 {
		m.viewport.SetContent(m.renderEmptyState())
		return
	}

	m.viewport.SetContent(strings.Join(blocks, "\n\n"))
	m.viewport.GotoBottom()
}

// displayMessage returns the message to render. Bot answers that carry
// markdown are pre-rendered through glamour; everything else passes through
// untouched.
func (m *Model) displayMessage(msg *model.Message) *model.Message {
	if msg == nil || msg.Type != model.TypeBot || !looksLikeMarkdown(msg.Content) {
		return msg
	}
	rendered := *msg
	rendered.Content = strings.TrimRight(m.markdown.Render(msg.Content), "\n")
	return &rendered
}

// looksLikeMarkdown is a cheap cue check so plain one-line answers skip the
// glamour pass.
func looksLikeMarkdown(content string) bool {
	for _, cue := range []string{"```", "\n# ", "\n## ", "\n- ", "\n* ", "\n1. ", "**", "`"} {
		if strings.Contains(content, cue) {
			return true
		}
	}
	return strings.HasPrefix(content, "# ") || strings.HasPrefix(content, "- ")
}

func (m Model) renderEmptyState() string {
	text := lipgloss.NewStyle().
		Foreground(styles.TextMuted).
		Italic(true).
		Render("No messages yet. Ask a question about your documents.")
	return lipgloss.Place(
		m.viewport.Width, m.viewport.Height,
		lipgloss.Center, lipgloss.Center,
		text,
	)
}

// =============================================================================
// TOAST COMPOSITING
// =============================================================================

// overlayToasts layers the toast stack over the bottom-right of the base
// view without blocking the rest of the UI.
func (m Model) overlayToasts(baseView, toastView string) string {
	baseLines := strings.Split(baseView, "\n")
	toastLines := strings.Split(toastView, "\n")

	toastHeight := len(toastLines)

	// Leave the status bar visible under the stack.
	startRow := m.height - toastHeight - 2
	if startRow < 0 {
		startRow = 0
	}

	result := make([]string, len(baseLines))
	for i, baseLine := range baseLines {
		toastLineIdx := i - startRow
		if toastLineIdx < 0 || toastLineIdx >= len(toastLines) {
			result[i] = baseLine
			continue
		}

		toastLine := toastLines[toastLineIdx]
		toastLineWidth := lipgloss.Width(toastLine)
		if toastLineWidth == 0 {
			result[i] = baseLine
			continue
		}

		cutPoint := m.width - toastLineWidth - 1
		baseWidth := lipgloss.Width(baseLine)
		if baseWidth > cutPoint {
			baseLine = truncateToWidth(baseLine, cutPoint)
			baseWidth = lipgloss.Width(baseLine)
		}
		if baseWidth < cutPoint {
			baseLine += strings.Repeat(" ", cutPoint-baseWidth)
		}

		result[i] = baseLine + toastLine
	}

	return strings.Join(result, "\n")
}

// truncateToWidth truncates a string to fit within a given visible width.
func truncateToWidth(s string, width int) string {
	if width <= 0 {
		return ""
	}
	currentWidth := 0
	var result strings.Builder
	for _, r := range s {
		runeWidth := lipgloss.Width(string(r))
		if currentWidth+runeWidth > width {
			break
		}
		result.WriteRune(r)
		currentWidth += runeWidth
	}
	return result.String()
}
