// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"testing"
	"time"
)

func TestNewErrorToast(t *testing.T) {
	toast := NewErrorToast("Send failed", "The backend rejected the message")

	if toast.Title != "Send failed" {
		t.Errorf("Expected title 'Send failed', got '%s'", toast.Title)
	}
	if toast.Kind != ToastError {
		t.Errorf("Expected ToastError, got %d", toast.Kind)
	}
	if toast.Duration != ErrorToastDuration {
		t.Errorf("Expected duration %v, got %v", ErrorToastDuration, toast.Duration)
	}
	if toast.ID == "" {
		t.Error("Expected non-empty toast ID")
	}
}

func TestToastKindDurations(t *testing.T) {
	tests := []struct {
		name     string
		toast    ErrorToast
		kind     ToastKind
		duration time.Duration
	}{
		{"status", NewStatusToast("Connected", ""), ToastStatus, DefaultToastDuration},
		{"warning", NewWarningToast("Low quota", ""), ToastWarning, WarningToastDuration},
		{"success", NewSuccessToast("Payment accepted", ""), ToastSuccess, DefaultToastDuration},
	}

	for _, tc := range tests {
		if tc.toast.Kind != tc.kind {
			t.Errorf("%s: expected kind %d, got %d", tc.name, tc.kind, tc.toast.Kind)
		}
		if tc.toast.Duration != tc.duration {
			t.Errorf("%s: expected duration %v, got %v", tc.name, tc.duration, tc.toast.Duration)
		}
	}
}

func TestToastIsExpired(t *testing.T) {
	toast := NewStatusToast("Test", "")
	toast.Duration = 10 * time.Millisecond
	toast.CreatedAt = time.Now().Add(-20 * time.Millisecond)

	if !toast.IsExpired() {
		t.Error("Toast should be expired")
	}

	fresh := NewStatusToast("Fresh", "")
	if fresh.IsExpired() {
		t.Error("Fresh toast should not be expired")
	}
	if fresh.TimeRemaining() <= 0 {
		t.Error("Fresh toast should have time remaining")
	}
	if toast.TimeRemaining() != 0 {
		t.Error("Expired toast should have zero time remaining")
	}
}

func TestToastManager(t *testing.T) {
	manager := NewToastManager()

	if manager.HasToasts() {
		t.Error("New manager should have no toasts")
	}

	errToast := NewErrorToast("Error 1", "")
	manager.AddToast(errToast)
	manager.AddToast(NewWarningToast("Warning 1", ""))

	if !manager.HasToasts() {
		t.Error("Manager should have toasts after adding")
	}

	toasts := manager.GetToasts()
	if len(toasts) != 2 {
		t.Errorf("Expected 2 toasts, got %d", len(toasts))
	}
	if toasts[0].Title != "Warning 1" {
		t.Error("Newest toast should be first")
	}

	manager.Dismiss(errToast.ID)
	if len(manager.GetToasts()) != 1 {
		t.Errorf("Expected 1 toast after dismiss, got %d", len(manager.GetToasts()))
	}

	manager.Clear()
	if manager.HasToasts() {
		t.Error("Manager should have no toasts after clear")
	}
}

func TestToastManagerMaxToasts(t *testing.T) {
	manager := NewToastManager()

	for i := 0; i < maxToasts+2; i++ {
		manager.AddToast(NewStatusToast("Toast "+toStr(i+1), ""))
	}

	toasts := manager.GetToasts()
	if len(toasts) != maxToasts {
		t.Errorf("Expected max %d toasts, got %d", maxToasts, len(toasts))
	}
	if toasts[0].Title != "Toast "+toStr(maxToasts+2) {
		t.Errorf("Newest toast should be first, got '%s'", toasts[0].Title)
	}
}

func TestToastManagerDismissNewest(t *testing.T) {
	manager := NewToastManager()
	manager.DismissNewest() // no-op on empty stack

	manager.AddToast(NewStatusToast("Old", ""))
	manager.AddToast(NewStatusToast("New", ""))

	manager.DismissNewest()
	toasts := manager.GetToasts()
	if len(toasts) != 1 || toasts[0].Title != "Old" {
		t.Errorf("Expected only 'Old' to remain, got %v", toasts)
	}
}

func TestToastTickExpiry(t *testing.T) {
	manager := NewToastManager()

	expired := NewStatusToast("Expired", "")
	expired.Duration = 10 * time.Millisecond
	expired.CreatedAt = time.Now().Add(-100 * time.Millisecond)
	manager.AddToast(expired)
	manager.AddToast(NewStatusToast("Fresh", ""))

	if !manager.TickToasts() {
		t.Error("TickToasts should report remaining toasts")
	}
	toasts := manager.GetToasts()
	if len(toasts) != 1 {
		t.Errorf("Expected 1 remaining toast after tick, got %d", len(toasts))
	}
	if toasts[0].Title != "Fresh" {
		t.Error("Fresh toast should remain")
	}
}

func TestFormatSeconds(t *testing.T) {
	tests := []struct {
		input    time.Duration
		expected string
	}{
		{0, "0s"},
		{-time.Second, "0s"},
		{time.Second, "1s"},
		{5 * time.Second, "5s"},
		{59 * time.Second, "59s"},
	}

	for _, tc := range tests {
		result := formatSeconds(tc.input)
		if result != tc.expected {
			t.Errorf("formatSeconds(%v) = %s, expected %s", tc.input, result, tc.expected)
		}
	}
}

func TestRenderToast(t *testing.T) {
	toast := NewErrorToast("Send failed", "quota exhausted")
	rendered := RenderToast(toast, 80)

	if rendered == "" {
		t.Error("Rendered toast should not be empty")
	}
	if !strings.Contains(rendered, "Send failed") {
		t.Error("Rendered toast should contain the title")
	}
	if !strings.Contains(rendered, "Dismiss") {
		t.Error("Rendered toast should show the dismiss hint")
	}
}

func TestRenderToastStack(t *testing.T) {
	manager := NewToastManager()
	manager.AddToast(NewErrorToast("Error 1", ""))
	manager.AddToast(NewWarningToast("Warning 1", ""))

	rendered := RenderToastStack(manager, 100, 40)
	if rendered == "" {
		t.Error("Rendered toast stack should not be empty")
	}
}

func TestRenderToastStackEmpty(t *testing.T) {
	rendered := RenderToastStack(NewToastManager(), 100, 40)
	if rendered != "" {
		t.Error("Empty toast stack should render empty string")
	}
}

func TestWrapToastText(t *testing.T) {
	wrapped := wrapToastText("one two three four five six seven", 12)
	for _, line := range strings.Split(wrapped, "\n") {
		if len(line) > 12 {
			t.Errorf("Line exceeds width: %q", line)
		}
	}
}
