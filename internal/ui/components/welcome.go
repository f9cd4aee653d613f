// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/docchat-tui/internal/ui/styles"
)

// =============================================================================
// WELCOME SCREEN MODEL
// =============================================================================

// Welcome is the welcome screen component.
type Welcome struct {
	// Display info
	version  string
	backend  string
	userName string // Empty when not signed in

	// Dimensions
	width  int
	height int

	// Theme
	theme *styles.Theme
}

// NewWelcome creates a new welcome screen.
func NewWelcome(theme *styles.Theme) Welcome {
	return Welcome{
		version: "dev",
		theme:   theme,
	}
}

// SetVersion sets the version string.
func (w *Welcome) SetVersion(version string) {
	w.version = version
}

// SetBackend sets the backend URL shown in the info block.
func (w *Welcome) SetBackend(url string) {
	w.backend = url
}

// SetUserName sets the signed-in user's display name.
func (w *Welcome) SetUserName(name string) {
	w.userName = name
}

// SetSize updates the dimensions.
func (w *Welcome) SetSize(width, height int) {
	w.width = width
	w.height = height
}

// =============================================================================
// BUBBLE TEA INTERFACE
// =============================================================================

// Init initializes the welcome screen.
func (w Welcome) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (w Welcome) Update(msg tea.Msg) (Welcome, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		w.width = msg.Width
		w.height = msg.Height
	}
	return w, nil
}

// View renders the welcome screen.
// Responsive: adapts to terminal size, minimum 80x24 supported.
func (w Welcome) View() string {
	width := w.width
	if width == 0 {
		width = 80
	}
	height := w.height
	if height == 0 {
		height = 24
	}

	// Calculate box width - responsive to terminal width
	boxWidth := 62
	if width < 70 {
		boxWidth = width - 8
	}
	if boxWidth < 40 {
		boxWidth = 40
	}
	if boxWidth > width-4 {
		boxWidth = width - 4
	}

	horizontalPadding := 4
	verticalPadding := 1
	if width < 70 {
		horizontalPadding = 2
	}

	boxOverhead := 2 + 2*verticalPadding
	availableContentLines := height - boxOverhead

	var content string
	if availableContentLines >= 16 {
		content = w.renderLogo()
		content += "\n\n" + w.renderVersion()
		content += "\n\n" + w.renderInfo()
		content += "\n\n" + w.renderPressKey()
	} else if availableContentLines >= 11 {
		content = w.renderLogo()
		content += "\n" + w.renderVersion()
		content += "\n" + w.renderInfo()
		content += "\n" + w.renderPressKey()
	} else {
		content = w.renderLogoCompact()
		content += "\n" + w.renderInfo()
		content += "\n" + w.renderPressKey()
	}

	box := lipgloss.NewStyle().
		BorderStyle(lipgloss.DoubleBorder()).
		BorderForeground(styles.Indigo).
		Padding(verticalPadding, horizontalPadding).
		Width(boxWidth).
		Align(lipgloss.Center).
		Render(content)

	boxHeight := lipgloss.Height(box)

	// Align top when the box is taller than the terminal so the logo
	// stays visible; otherwise center it.
	if boxHeight >= height {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Top, box)
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}

// =============================================================================
// RENDER HELPERS
// =============================================================================

// renderLogo renders the ASCII art logo.
func (w Welcome) renderLogo() string {
	logoStyle := lipgloss.NewStyle().
		Foreground(styles.Teal).
		Bold(true)

	if w.width >= 60 {
		return logoStyle.Render(`     _                _           _
  __| | ___   ___ ___| |__   __ _| |_
 / _' |/ _ \ / __/ __| '_ \ / _' | __|
| (_| | (_) | (__ (__| | | | (_| | |_
 \__,_|\___/ \___\___|_| |_|\__,_|\__|`)
	}
	return w.renderLogoCompact()
}

// renderLogoCompact renders a one-line logo for tight layouts.
func (w Welcome) renderLogoCompact() string {
	return lipgloss.NewStyle().
		Foreground(styles.Teal).
		Bold(true).
		Render("docchat")
}

func (w Welcome) renderVersion() string {
	return w.theme.WelcomeVersion.Render("v" + w.version)
}

// renderInfo renders the backend and sign-in state block.
func (w Welcome) renderInfo() string {
	backend := w.backend
	if backend == "" {
		backend = "not configured"
	}

	user := w.userName
	if user == "" {
		user = "not signed in (3 free chats)"
	}

	lines := w.theme.WelcomeInfo.Render("backend: "+backend) + "\n" +
		w.theme.WelcomeInfo.Render("account: "+user)
	return lines
}

func (w Welcome) renderPressKey() string {
	return w.theme.WelcomeKey.Render("Press any key") +
		w.theme.WelcomeInfo.Render(" to start chatting")
}
