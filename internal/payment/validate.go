// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package payment implements upgrade-payment form validation and the mock
// payment processor.
package payment

import (
	"regexp"
	"strings"
)

// =============================================================================
// METHOD TYPE
// =============================================================================

// Method selects which payment details are collected and validated.
type Method string

const (
	MethodCard       Method = "card"
	MethodUPI        Method = "upi"
	MethodNetBanking Method = "netbanking"
)

// =============================================================================
// FORM DETAILS
// =============================================================================

// Details carries the raw form input for one payment attempt. Only the
// fields of the selected method are validated.
type Details struct {
	Method Method

	// Card fields
	CardNumber string
	CardName   string
	Expiry     string
	CVV        string

	// UPI field
	UPIID string

	// Net banking field
	Bank string
}

// FieldError is one per-field validation failure.
type FieldError struct {
	Field   string
	Message string
}

func (e FieldError) Error() string {
	return e.Field + ": " + e.Message
}

// =============================================================================
// VALIDATION
// =============================================================================

var (
	nameRe   = regexp.MustCompile(`^[A-Za-z ]+$`)
	expiryRe = regexp.MustCompile(`^(0[1-9]|1[0-2])/\d{2}$`)
	cvvRe    = regexp.MustCompile(`^\d{3,4}$`)
	upiRe    = regexp.MustCompile(`^[\w.\-]+@[\w.\-]+$`)
)

// Validate checks the details of the selected method. A nil return means the
// form may be submitted; otherwise every failing field gets one entry, so
// the UI can render inline messages.
func Validate(d Details) []FieldError {
	switch d.Method {
	case MethodCard:
		return validateCard(d)
	case MethodUPI:
		return validateUPI(d)
	case MethodNetBanking:
		return validateNetBanking(d)
	default:
		return []FieldError{{Field: "method", Message: "select a payment method"}}
	}
}

func validateCard(d Details) []FieldError {
	var errs []FieldError

	if !ValidCardNumber(d.CardNumber) {
		errs = append(errs, FieldError{Field: "card_number", Message: "enter a valid card number"})
	}
	name := strings.TrimSpace(d.CardName)
	if len(name) < 3 || !nameRe.MatchString(name) {
		errs = append(errs, FieldError{Field: "card_name", Message: "enter the name as printed on the card"})
	}
	if !expiryRe.MatchString(d.Expiry) {
		errs = append(errs, FieldError{Field: "expiry", Message: "use MM/YY"})
	}
	if !cvvRe.MatchString(d.CVV) {
		errs = append(errs, FieldError{Field: "cvv", Message: "3 or 4 digits"})
	}
	return errs
}

func validateUPI(d Details) []FieldError {
	if !upiRe.MatchString(strings.TrimSpace(d.UPIID)) {
		return []FieldError{{Field: "upi_id", Message: "enter a valid UPI id (name@bank)"}}
	}
	return nil
}

func validateNetBanking(d Details) []FieldError {
	if !IsKnownBank(d.Bank) {
		return []FieldError{{Field: "bank", Message: "select a bank"}}
	}
	return nil
}

// =============================================================================
// LUHN
// =============================================================================

// ValidCardNumber reports whether the input is a plausible card number:
// digits only after stripping spaces, 13 to 19 digits, and a passing Luhn
// checksum.
func ValidCardNumber(number string) bool {
	digits := strings.ReplaceAll(number, " ", "")
	if len(digits) < 13 || len(digits) > 19 {
		return false
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return false
		}
	}
	return luhn(digits)
}

// luhn runs the modulo-10 checksum: double every second digit from the
// right, subtract 9 from anything above 9, and require the sum to divide
// by 10.
func luhn(digits string) bool {
	sum := 0
	double := false
	for i := len(digits) - 1; i >= 0; i-- {
		d := int(digits[i] - '0')
		if double {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		double = !double
	}
	return sum%10 == 0
}
