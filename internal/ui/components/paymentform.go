// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/docchat-tui/internal/payment"
	"github.com/jeranaias/docchat-tui/internal/ui/styles"
	"github.com/jeranaias/docchat-tui/internal/util"
)

// =============================================================================
// PAYMENT FORM COMPONENT
// =============================================================================
// Collects upgrade-payment details for one of three methods: card, UPI, or
// net banking. Tab cycles fields, left/right switch methods, enter submits.
// Validation errors render inline under the offending field and the form
// refuses to submit while any remain.

// Card field indexes.
const (
	fieldCardNumber = iota
	fieldCardName
	fieldCardExpiry
	fieldCardCVV
	cardFieldCount
)

var methodOrder = []payment.Method{
	payment.MethodCard,
	payment.MethodUPI,
	payment.MethodNetBanking,
}

var methodLabels = map[payment.Method]string{
	payment.MethodCard:       "Card",
	payment.MethodUPI:        "UPI",
	payment.MethodNetBanking: "Net Banking",
}

// PaymentSubmitMsg is emitted when the form passes validation and the user
// confirms submission.
type PaymentSubmitMsg struct {
	Details payment.Details
}

// PaymentCancelMsg is emitted when the user backs out of the form.
type PaymentCancelMsg struct{}

// PaymentForm is the interactive upgrade-payment form.
type PaymentForm struct {
	method     payment.Method
	cardInputs [cardFieldCount]textinput.Model
	upiInput   textinput.Model
	bankIndex  int
	focus      int

	amount   int
	currency string

	errors map[string]string
	width  int
	theme  *styles.Theme
}

// NewPaymentForm creates a form for the given plan amount in minor units.
func NewPaymentForm(theme *styles.Theme, amount int, currency string) *PaymentForm {
	f := &PaymentForm{
		method:   payment.MethodCard,
		amount:   amount,
		currency: currency,
		errors:   map[string]string{},
		width:    64,
		theme:    theme,
	}

	mk := func(placeholder string, limit int) textinput.Model {
		ti := textinput.New()
		ti.Placeholder = placeholder
		ti.CharLimit = limit
		ti.Width = 30
		ti.Prompt = ""
		ti.PlaceholderStyle = lipgloss.NewStyle().
			Foreground(styles.TextMuted).
			Italic(true)
		ti.TextStyle = lipgloss.NewStyle().
			Foreground(styles.TextPrimary)
		ti.Cursor.Style = lipgloss.NewStyle().
			Foreground(styles.Teal)
		return ti
	}

	f.cardInputs[fieldCardNumber] = mk("1234 5678 9012 3456", 23)
	f.cardInputs[fieldCardName] = mk("Name on card", 60)
	f.cardInputs[fieldCardExpiry] = mk("MM/YY", 5)
	f.cardInputs[fieldCardCVV] = mk("CVV", 4)
	f.cardInputs[fieldCardCVV].EchoMode = textinput.EchoPassword
	f.cardInputs[fieldCardCVV].EchoCharacter = '*'

	f.upiInput = mk("yourname@bank", 80)

	f.focusField(0)
	return f
}

// Method returns the currently selected payment method.
func (f *PaymentForm) Method() payment.Method {
	return f.method
}

// SetWidth adjusts the form width.
func (f *PaymentForm) SetWidth(width int) {
	if width < 40 {
		width = 40
	}
	if width > 72 {
		width = 72
	}
	f.width = width
}

// Details assembles the raw form input for validation and submission.
func (f *PaymentForm) Details() payment.Details {
	d := payment.Details{Method: f.method}
	switch f.method {
	case payment.MethodCard:
		d.CardNumber = f.cardInputs[fieldCardNumber].Value()
		d.CardName = f.cardInputs[fieldCardName].Value()
		d.Expiry = f.cardInputs[fieldCardExpiry].Value()
		d.CVV = f.cardInputs[fieldCardCVV].Value()
	case payment.MethodUPI:
		d.UPIID = f.upiInput.Value()
	case payment.MethodNetBanking:
		if f.bankIndex >= 0 && f.bankIndex < len(payment.PopularBanks) {
			d.Bank = payment.PopularBanks[f.bankIndex]
		}
	}
	return d
}

// Errors returns the inline validation messages keyed by field name.
func (f *PaymentForm) Errors() map[string]string {
	return f.errors
}

// Update handles key input. Submission only emits PaymentSubmitMsg once
// validation passes.
func (f *PaymentForm) Update(msg tea.Msg) (*PaymentForm, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return f.updateInputs(msg)
	}

	switch keyMsg.String() {
	case "esc":
		return f, func() tea.Msg { return PaymentCancelMsg{} }

	case "shift+left":
		f.switchMethod(-1)
		return f, nil

	case "shift+right":
		f.switchMethod(1)
		return f, nil

	case "left":
		// Text fields keep the arrow for cursor movement.
		if !f.editingText() {
			f.switchMethod(-1)
			return f, nil
		}

	case "right":
		if !f.editingText() {
			f.switchMethod(1)
			return f, nil
		}

	case "tab":
		f.nextField()
		return f, nil

	case "shift+tab":
		f.prevField()
		return f, nil

	case "up":
		if f.method == payment.MethodNetBanking {
			f.moveBank(-1)
			return f, nil
		}

	case "down":
		if f.method == payment.MethodNetBanking {
			f.moveBank(1)
			return f, nil
		}

	case "enter":
		return f.submit()
	}

	return f.updateInputs(msg)
}

// editingText reports whether the focused widget consumes arrow keys.
func (f *PaymentForm) editingText() bool {
	switch f.method {
	case payment.MethodCard, payment.MethodUPI:
		return true
	default:
		return false
	}
}

func (f *PaymentForm) switchMethod(delta int) {
	cur := 0
	for i, m := range methodOrder {
		if m == f.method {
			cur = i
			break
		}
	}
	cur = (cur + delta + len(methodOrder)) % len(methodOrder)
	f.method = methodOrder[cur]
	f.errors = map[string]string{}
	f.focusField(0)
}

func (f *PaymentForm) fieldCount() int {
	switch f.method {
	case payment.MethodCard:
		return cardFieldCount
	case payment.MethodUPI:
		return 1
	default:
		return 1
	}
}

func (f *PaymentForm) nextField() {
	f.focusField((f.focus + 1) % f.fieldCount())
}

func (f *PaymentForm) prevField() {
	f.focusField((f.focus - 1 + f.fieldCount()) % f.fieldCount())
}

func (f *PaymentForm) focusField(idx int) {
	f.focus = idx
	for i := range f.cardInputs {
		f.cardInputs[i].Blur()
	}
	f.upiInput.Blur()

	switch f.method {
	case payment.MethodCard:
		f.cardInputs[idx].Focus()
	case payment.MethodUPI:
		f.upiInput.Focus()
	}
}

func (f *PaymentForm) moveBank(delta int) {
	f.bankIndex += delta
	if f.bankIndex < 0 {
		f.bankIndex = 0
	}
	if f.bankIndex >= len(payment.PopularBanks) {
		f.bankIndex = len(payment.PopularBanks) - 1
	}
}

func (f *PaymentForm) submit() (*PaymentForm, tea.Cmd) {
	details := f.Details()
	fieldErrs := payment.Validate(details)
	f.errors = map[string]string{}
	if len(fieldErrs) > 0 {
		for _, fe := range fieldErrs {
			f.errors[fe.Field] = fe.Message
		}
		return f, nil
	}
	return f, func() tea.Msg { return PaymentSubmitMsg{Details: details} }
}

func (f *PaymentForm) updateInputs(msg tea.Msg) (*PaymentForm, tea.Cmd) {
	var cmd tea.Cmd
	switch f.method {
	case payment.MethodCard:
		f.cardInputs[f.focus], cmd = f.cardInputs[f.focus].Update(msg)
		// Reformat as the user types so the display stays grouped.
		if f.focus == fieldCardNumber {
			v := f.cardInputs[fieldCardNumber].Value()
			formatted := payment.FormatCardNumber(v)
			if formatted != v {
				f.cardInputs[fieldCardNumber].SetValue(formatted)
				f.cardInputs[fieldCardNumber].CursorEnd()
			}
		}
		if f.focus == fieldCardExpiry {
			v := f.cardInputs[fieldCardExpiry].Value()
			formatted := payment.FormatExpiry(v)
			if formatted != v {
				f.cardInputs[fieldCardExpiry].SetValue(formatted)
				f.cardInputs[fieldCardExpiry].CursorEnd()
			}
		}
	case payment.MethodUPI:
		f.upiInput, cmd = f.upiInput.Update(msg)
	}
	return f, cmd
}

// =============================================================================
// RENDERING
// =============================================================================

// View renders the full form box.
func (f *PaymentForm) View() string {
	var b strings.Builder

	b.WriteString(f.theme.FormTitle.Render("Upgrade to Premium"))
	b.WriteString("\n")
	b.WriteString(f.renderPlan())
	b.WriteString("\n\n")
	b.WriteString(f.renderMethodTabs())
	b.WriteString("\n\n")

	switch f.method {
	case payment.MethodCard:
		b.WriteString(f.renderCardFields())
	case payment.MethodUPI:
		b.WriteString(f.renderUPIField())
	case payment.MethodNetBanking:
		b.WriteString(f.renderBankList())
	}

	b.WriteString("\n")
	b.WriteString(f.renderFooter())

	return f.theme.FormBox.Width(f.width).Render(b.String())
}

func (f *PaymentForm) renderPlan() string {
	price := f.theme.PlanPrice.Render(util.FormatMinorUnits(f.amount, f.currency))
	perks := []string{
		"Unlimited chats",
		"Priority answers",
		"Source citations on every reply",
	}
	var b strings.Builder
	b.WriteString(price + " / month")
	for _, p := range perks {
		b.WriteString("\n")
		b.WriteString(f.theme.PlanPerk.Render("+ " + p))
	}
	return f.theme.PlanBox.Render(b.String())
}

func (f *PaymentForm) renderMethodTabs() string {
	tabs := make([]string, 0, len(methodOrder))
	for _, m := range methodOrder {
		label := " " + methodLabels[m] + " "
		if m == f.method {
			tabs = append(tabs, f.theme.MethodTabActive.Render(label))
		} else {
			tabs = append(tabs, f.theme.MethodTab.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (f *PaymentForm) renderCardFields() string {
	labels := [cardFieldCount]string{"Card number", "Name on card", "Expiry", "CVV"}
	fields := [cardFieldCount]string{"card_number", "card_name", "expiry", "cvv"}

	var b strings.Builder
	for i := 0; i < cardFieldCount; i++ {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(f.renderLabeledInput(labels[i], f.cardInputs[i].View(), i == f.focus, fields[i]))
	}
	return b.String()
}

func (f *PaymentForm) renderUPIField() string {
	return f.renderLabeledInput("UPI ID", f.upiInput.View(), true, "upi_id")
}

func (f *PaymentForm) renderBankList() string {
	var b strings.Builder
	b.WriteString(f.theme.FormLabel.Render("Select your bank (up/down):"))
	for i, bank := range payment.PopularBanks {
		b.WriteString("\n")
		if i == f.bankIndex {
			b.WriteString(f.theme.FormInputFocused.Render("> " + bank))
		} else {
			b.WriteString(f.theme.FormInput.Render("  " + bank))
		}
	}
	if msg, ok := f.errors["bank"]; ok {
		b.WriteString("\n")
		b.WriteString(f.theme.FormFieldError.Render("! " + msg))
	}
	return b.String()
}

func (f *PaymentForm) renderLabeledInput(label, inputView string, focused bool, field string) string {
	var b strings.Builder
	b.WriteString(f.theme.FormLabel.Render(label))
	b.WriteString("\n")
	inputStyle := f.theme.FormInput
	if focused {
		inputStyle = f.theme.FormInputFocused
	}
	b.WriteString(inputStyle.Render(inputView))
	if msg, ok := f.errors[field]; ok {
		b.WriteString("\n")
		b.WriteString(f.theme.FormFieldError.Render("! " + msg))
	}
	b.WriteString("\n")
	return b.String()
}

func (f *PaymentForm) renderFooter() string {
	hintStyle := lipgloss.NewStyle().Foreground(styles.TextMuted)
	pay := f.theme.FormButtonActive.Render(" Pay " + util.FormatMinorUnits(f.amount, f.currency) + " ")
	hints := hintStyle.Render("enter pay · tab next field · shift+←/→ method · esc cancel")
	return pay + "\n" + hints
}
