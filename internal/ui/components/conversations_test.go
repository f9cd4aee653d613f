// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/docchat-tui/internal/model"
)

func sampleConversations() []model.Conversation {
	now := time.Now()
	return []model.Conversation{
		{ID: "c3", Title: "Lease agreement", UpdatedAt: now, MessageCount: 6, LastMessage: "Thanks"},
		{ID: "c2", Title: "Invoice dispute", UpdatedAt: now.Add(-2 * time.Hour), MessageCount: 4},
		{ID: "c1", Title: "Onboarding docs", UpdatedAt: now.Add(-3 * 24 * time.Hour), MessageCount: 2},
	}
}

func TestConversationList_Empty(t *testing.T) {
	list := NewConversationList(testTheme())

	if list.Selected() != nil {
		t.Error("Empty list should have no selection")
	}
	if !strings.Contains(list.View(), "No conversations yet") {
		t.Error("Empty list should render the empty-state hint")
	}
}

func TestConversationList_RendersTitles(t *testing.T) {
	list := NewConversationList(testTheme())
	list.SetConversations(sampleConversations())
	list.SetWidth(60)

	view := list.View()
	for _, title := range []string{"Lease agreement", "Invoice dispute", "Onboarding docs"} {
		if !strings.Contains(view, title) {
			t.Errorf("View() should contain title %q", title)
		}
	}
}

func TestConversationList_Navigation(t *testing.T) {
	list := NewConversationList(testTheme())
	list.SetConversations(sampleConversations())

	if list.Selected().ID != "c3" {
		t.Errorf("Initial selection = %s, want c3", list.Selected().ID)
	}

	list, _ = list.Update(tea.KeyMsg{Type: tea.KeyDown})
	if list.Selected().ID != "c2" {
		t.Errorf("Down should select c2, got %s", list.Selected().ID)
	}

	list, _ = list.Update(tea.KeyMsg{Type: tea.KeyUp})
	list, _ = list.Update(tea.KeyMsg{Type: tea.KeyUp})
	if list.Selected().ID != "c1" {
		t.Errorf("Up from the top should wrap to c1, got %s", list.Selected().ID)
	}
}

func TestConversationList_EnterEmitsSelection(t *testing.T) {
	list := NewConversationList(testTheme())
	list.SetConversations(sampleConversations())

	_, cmd := list.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("enter should emit a selection command")
	}
	msg, ok := cmd().(ConversationSelectedMsg)
	if !ok {
		t.Fatalf("Expected ConversationSelectedMsg, got %T", cmd())
	}
	if msg.ID != "c3" {
		t.Errorf("Selected ID = %s, want c3", msg.ID)
	}
}

func TestConversationList_EnterOnEmptyIsNoop(t *testing.T) {
	list := NewConversationList(testTheme())

	_, cmd := list.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Error("enter on an empty list should not emit a command")
	}
}

func TestConversationList_EscCancels(t *testing.T) {
	list := NewConversationList(testTheme())

	_, cmd := list.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatal("esc should emit a cancel command")
	}
	if _, ok := cmd().(ConversationListCancelMsg); !ok {
		t.Error("esc should emit ConversationListCancelMsg")
	}
}

func TestConversationList_SelectionClampsOnReload(t *testing.T) {
	list := NewConversationList(testTheme())
	list.SetConversations(sampleConversations())
	list, _ = list.Update(tea.KeyMsg{Type: tea.KeyDown})
	list, _ = list.Update(tea.KeyMsg{Type: tea.KeyDown})

	list.SetConversations(sampleConversations()[:1])
	if list.Selected().ID != "c3" {
		t.Errorf("Shrinking the list should reset the selection, got %s", list.Selected().ID)
	}
}

func TestRelativeTime(t *testing.T) {
	now := time.Now()
	tests := []struct {
		name string
		t    time.Time
		want string
	}{
		{"zero", time.Time{}, "unknown"},
		{"just now", now.Add(-10 * time.Second), "just now"},
		{"minutes", now.Add(-5 * time.Minute), "5m ago"},
		{"hours", now.Add(-3 * time.Hour), "3h ago"},
		{"days", now.Add(-2 * 24 * time.Hour), "2d ago"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := relativeTime(tc.t); got != tc.want {
				t.Errorf("relativeTime() = %q, want %q", got, tc.want)
			}
		})
	}
}
