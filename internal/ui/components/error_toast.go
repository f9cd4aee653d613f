// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/docchat-tui/internal/ui/styles"
)

// =============================================================================
// TOAST NOTIFICATIONS
// =============================================================================
// Transient notifications rendered in the bottom-right corner. Toasts
// auto-dismiss after a kind-specific duration and can be dismissed early
// with the x key.

// ToastKind determines the visual style and default duration of a toast.
type ToastKind int

const (
	// ToastStatus is an informational notice (connection restored, etc).
	ToastStatus ToastKind = iota
	// ToastError is an error notice. Errors linger longest.
	ToastError
	// ToastWarning is a cautionary notice (quota nearly exhausted).
	ToastWarning
	// ToastSuccess confirms a completed action (payment accepted).
	ToastSuccess
)

const (
	// DefaultToastDuration applies to status and success toasts.
	DefaultToastDuration = 4 * time.Second
	// ErrorToastDuration gives the user time to read error details.
	ErrorToastDuration = 8 * time.Second
	// WarningToastDuration sits between the two.
	WarningToastDuration = 6 * time.Second

	// maxToasts caps the visible stack so notifications never swallow
	// the chat view.
	maxToasts = 5

	toastWidth = 44
)

// ErrorToast is a single notification with an expiry deadline.
type ErrorToast struct {
	ID        string
	Kind      ToastKind
	Title     string
	Message   string
	CreatedAt time.Time
	Duration  time.Duration
}

// NewStatusToast creates an informational toast.
func NewStatusToast(title, message string) ErrorToast {
	return newToast(ToastStatus, title, message, DefaultToastDuration)
}

// NewErrorToast creates an error toast.
func NewErrorToast(title, message string) ErrorToast {
	return newToast(ToastError, title, message, ErrorToastDuration)
}

// NewWarningToast creates a warning toast.
func NewWarningToast(title, message string) ErrorToast {
	return newToast(ToastWarning, title, message, WarningToastDuration)
}

// NewSuccessToast creates a success toast.
func NewSuccessToast(title, message string) ErrorToast {
	return newToast(ToastSuccess, title, message, DefaultToastDuration)
}

func newToast(kind ToastKind, title, message string, d time.Duration) ErrorToast {
	return ErrorToast{
		ID:        generateToastID(),
		Kind:      kind,
		Title:     title,
		Message:   message,
		CreatedAt: time.Now(),
		Duration:  d,
	}
}

// IsExpired reports whether the toast has outlived its duration.
func (t ErrorToast) IsExpired() bool {
	return time.Since(t.CreatedAt) >= t.Duration
}

// TimeRemaining returns how long until the toast auto-dismisses.
// Returns zero once expired.
func (t ErrorToast) TimeRemaining() time.Duration {
	remaining := t.Duration - time.Since(t.CreatedAt)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// =============================================================================
// TOAST MANAGER
// =============================================================================

// ToastManager owns the active toast stack. Safe for concurrent use;
// commands produced by the update loop may add toasts from goroutines.
type ToastManager struct {
	mu     sync.Mutex
	toasts []ErrorToast
}

// NewToastManager creates an empty manager.
func NewToastManager() *ToastManager {
	return &ToastManager{}
}

// AddToast pushes a toast onto the stack, newest first. The oldest toast
// is evicted when the stack is full.
func (m *ToastManager) AddToast(t ErrorToast) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.toasts = append([]ErrorToast{t}, m.toasts...)
	if len(m.toasts) > maxToasts {
		m.toasts = m.toasts[:maxToasts]
	}
}

// Dismiss removes the toast with the given ID.
func (m *ToastManager) Dismiss(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, t := range m.toasts {
		if t.ID == id {
			m.toasts = append(m.toasts[:i], m.toasts[i+1:]...)
			return
		}
	}
}

// DismissNewest removes the most recent toast, if any.
func (m *ToastManager) DismissNewest() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.toasts) > 0 {
		m.toasts = m.toasts[1:]
	}
}

// TickToasts drops expired toasts and reports whether any remain.
func (m *ToastManager) TickToasts() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	kept := m.toasts[:0]
	for _, t := range m.toasts {
		if !t.IsExpired() {
			kept = append(kept, t)
		}
	}
	m.toasts = kept
	return len(m.toasts) > 0
}

// GetToasts returns a snapshot of the active stack, newest first.
func (m *ToastManager) GetToasts() []ErrorToast {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]ErrorToast, len(m.toasts))
	copy(out, m.toasts)
	return out
}

// HasToasts reports whether any toasts are visible.
func (m *ToastManager) HasToasts() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.toasts) > 0
}

// Clear removes all toasts.
func (m *ToastManager) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.toasts = nil
}

// =============================================================================
// BUBBLE TEA MESSAGES
// =============================================================================

// ToastTickMsg drives toast expiry while any toast is visible.
type ToastTickMsg struct{}

// ToastDismissMsg requests removal of a specific toast.
type ToastDismissMsg struct {
	ID string
}

// ToastAddMsg carries a new toast into the update loop.
type ToastAddMsg struct {
	Toast ErrorToast
}

// ToastTickCmd schedules the next expiry tick. 100ms keeps the countdown
// display smooth without noticeable CPU cost.
func ToastTickCmd() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(time.Time) tea.Msg {
		return ToastTickMsg{}
	})
}

// =============================================================================
// RENDERING
// =============================================================================

// RenderToast renders a single toast box.
func RenderToast(t ErrorToast, width int) string {
	if width <= 0 || width > toastWidth {
		width = toastWidth
	}

	var accent lipgloss.AdaptiveColor
	var icon string
	switch t.Kind {
	case ToastError:
		accent = styles.Rose
		icon = "[X]"
	case ToastWarning:
		accent = styles.Amber
		icon = "[!]"
	case ToastSuccess:
		accent = styles.Emerald
		icon = "[*]"
	default:
		accent = styles.Teal
		icon = "[i]"
	}

	titleStyle := lipgloss.NewStyle().
		Foreground(accent).
		Bold(true)
	msgStyle := lipgloss.NewStyle().
		Foreground(styles.TextPrimary)
	hintStyle := lipgloss.NewStyle().
		Foreground(styles.TextMuted)

	var b strings.Builder
	b.WriteString(titleStyle.Render(icon + " " + t.Title))
	if t.Message != "" {
		b.WriteString("\n")
		b.WriteString(msgStyle.Render(wrapToastText(t.Message, width-4)))
	}
	b.WriteString("\n")
	b.WriteString(hintStyle.Render("[x] Dismiss · " + formatSeconds(t.TimeRemaining())))

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(accent).
		Padding(0, 1).
		Width(width)

	return boxStyle.Render(b.String())
}

// RenderToastStack renders the active toasts anchored to the bottom-right
// of the terminal.
func RenderToastStack(m *ToastManager, termWidth, termHeight int) string {
	toasts := m.GetToasts()
	if len(toasts) == 0 {
		return ""
	}

	rendered := make([]string, 0, len(toasts))
	for _, t := range toasts {
		rendered = append(rendered, RenderToast(t, toastWidth))
	}

	stack := lipgloss.JoinVertical(lipgloss.Right, rendered...)
	return lipgloss.Place(termWidth, termHeight, lipgloss.Right, lipgloss.Bottom, stack)
}

// =============================================================================
// HELPERS
// =============================================================================

var toastCounter struct {
	mu sync.Mutex
	n  int
}

func generateToastID() string {
	toastCounter.mu.Lock()
	defer toastCounter.mu.Unlock()
	toastCounter.n++
	return "toast-" + toStr(toastCounter.n) + "-" + toStr(int(time.Now().UnixNano()%100000))
}

// wrapToastText wraps text at word boundaries to fit the toast width.
func wrapToastText(text string, width int) string {
	if width < 10 {
		width = 10
	}
	words := strings.Fields(text)
	if len(words) == 0 {
		return text
	}

	var lines []string
	var line strings.Builder
	for _, w := range words {
		if line.Len() > 0 && line.Len()+1+len(w) > width {
			lines = append(lines, line.String())
			line.Reset()
		}
		if line.Len() > 0 {
			line.WriteString(" ")
		}
		line.WriteString(w)
	}
	if line.Len() > 0 {
		lines = append(lines, line.String())
	}
	return strings.Join(lines, "\n")
}

// formatSeconds renders a countdown like "3s".
func formatSeconds(d time.Duration) string {
	secs := int(d.Seconds())
	if secs < 0 {
		secs = 0
	}
	return toStr(secs) + "s"
}
