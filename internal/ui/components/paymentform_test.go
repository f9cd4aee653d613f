// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/docchat-tui/internal/payment"
)

func newTestForm() *PaymentForm {
	return NewPaymentForm(testTheme(), 49900, "INR")
}

func typeInto(f *PaymentForm, text string) *PaymentForm {
	for _, r := range text {
		f, _ = f.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return f
}

func pressKey(f *PaymentForm, key string) (*PaymentForm, tea.Cmd) {
	var msg tea.KeyMsg
	switch key {
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		msg = tea.KeyMsg{Type: tea.KeyTab}
	case "shift+right":
		msg = tea.KeyMsg{Type: tea.KeyShiftRight}
	case "shift+left":
		msg = tea.KeyMsg{Type: tea.KeyShiftLeft}
	case "down":
		msg = tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		msg = tea.KeyMsg{Type: tea.KeyUp}
	}
	return f.Update(msg)
}

func TestPaymentForm_DefaultsToCard(t *testing.T) {
	f := newTestForm()

	if f.Method() != payment.MethodCard {
		t.Errorf("New form should start on card, got %s", f.Method())
	}
}

func TestPaymentForm_MethodSwitching(t *testing.T) {
	f := newTestForm()

	f, _ = pressKey(f, "shift+right")
	if f.Method() != payment.MethodUPI {
		t.Errorf("shift+right should move to UPI, got %s", f.Method())
	}

	f, _ = pressKey(f, "shift+right")
	if f.Method() != payment.MethodNetBanking {
		t.Errorf("shift+right should move to net banking, got %s", f.Method())
	}

	f, _ = pressKey(f, "shift+right")
	if f.Method() != payment.MethodCard {
		t.Errorf("Method switching should wrap back to card, got %s", f.Method())
	}

	f, _ = pressKey(f, "shift+left")
	if f.Method() != payment.MethodNetBanking {
		t.Errorf("shift+left should wrap to net banking, got %s", f.Method())
	}
}

func TestPaymentForm_SubmitInvalidCardShowsErrors(t *testing.T) {
	f := newTestForm()

	f, cmd := pressKey(f, "enter")
	if cmd != nil {
		t.Error("Submitting an empty card form should not emit a message")
	}
	if len(f.Errors()) == 0 {
		t.Error("Submitting an empty card form should record field errors")
	}
	if _, ok := f.Errors()["card_number"]; !ok {
		t.Error("Empty card number should have an inline error")
	}

	view := f.View()
	if !strings.Contains(view, "!") {
		t.Error("View() should render inline error markers after a failed submit")
	}
}

func TestPaymentForm_SubmitValidCard(t *testing.T) {
	f := newTestForm()

	f = typeInto(f, "4539148803436467")
	f, _ = pressKey(f, "tab")
	f = typeInto(f, "Asha Rao")
	f, _ = pressKey(f, "tab")
	f = typeInto(f, "1227")
	f, _ = pressKey(f, "tab")
	f = typeInto(f, "123")

	f, cmd := pressKey(f, "enter")
	if cmd == nil {
		t.Fatal("Valid card details should emit a submit command")
	}

	msg := cmd()
	submit, ok := msg.(PaymentSubmitMsg)
	if !ok {
		t.Fatalf("Expected PaymentSubmitMsg, got %T", msg)
	}
	if submit.Details.Method != payment.MethodCard {
		t.Errorf("Submitted method = %s, want card", submit.Details.Method)
	}
	if submit.Details.CardName != "Asha Rao" {
		t.Errorf("Submitted name = %q", submit.Details.CardName)
	}
	if len(f.Errors()) != 0 {
		t.Errorf("Valid submit should leave no errors, got %v", f.Errors())
	}
}

func TestPaymentForm_SubmitUPI(t *testing.T) {
	f := newTestForm()
	f, _ = pressKey(f, "shift+right")
	f = typeInto(f, "asha@okbank")

	f, cmd := pressKey(f, "enter")
	if cmd == nil {
		t.Fatal("Valid UPI ID should emit a submit command")
	}
	submit := cmd().(PaymentSubmitMsg)
	if submit.Details.UPIID != "asha@okbank" {
		t.Errorf("Submitted UPI ID = %q", submit.Details.UPIID)
	}
}

func TestPaymentForm_NetBankingSelection(t *testing.T) {
	f := newTestForm()
	f, _ = pressKey(f, "shift+left") // wraps to net banking

	f, _ = pressKey(f, "down")
	f, _ = pressKey(f, "down")

	f, cmd := pressKey(f, "enter")
	if cmd == nil {
		t.Fatal("Bank selection should emit a submit command")
	}
	submit := cmd().(PaymentSubmitMsg)
	if submit.Details.Bank != payment.PopularBanks[2] {
		t.Errorf("Submitted bank = %q, want %q", submit.Details.Bank, payment.PopularBanks[2])
	}
}

func TestPaymentForm_BankSelectionClamps(t *testing.T) {
	f := newTestForm()
	f, _ = pressKey(f, "shift+left")

	f, _ = pressKey(f, "up") // already at the top
	if f.bankIndex != 0 {
		t.Errorf("Selection should clamp at 0, got %d", f.bankIndex)
	}

	for i := 0; i < len(payment.PopularBanks)+3; i++ {
		f, _ = pressKey(f, "down")
	}
	if f.bankIndex != len(payment.PopularBanks)-1 {
		t.Errorf("Selection should clamp at the last bank, got %d", f.bankIndex)
	}
}

func TestPaymentForm_EscCancels(t *testing.T) {
	f := newTestForm()

	_, cmd := pressKey(f, "esc")
	if cmd == nil {
		t.Fatal("esc should emit a cancel command")
	}
	if _, ok := cmd().(PaymentCancelMsg); !ok {
		t.Error("esc should emit PaymentCancelMsg")
	}
}

func TestPaymentForm_SwitchingMethodClearsErrors(t *testing.T) {
	f := newTestForm()
	f, _ = pressKey(f, "enter") // record card errors
	if len(f.Errors()) == 0 {
		t.Fatal("Expected errors before switching")
	}

	f, _ = pressKey(f, "shift+right")
	if len(f.Errors()) != 0 {
		t.Error("Switching methods should clear stale errors")
	}
}

func TestPaymentForm_ViewShowsPlanPrice(t *testing.T) {
	f := newTestForm()
	view := f.View()

	if !strings.Contains(view, "₹499.00") {
		t.Error("View() should show the plan price")
	}
	if !strings.Contains(view, "Upgrade to Premium") {
		t.Error("View() should carry the form title")
	}
}
