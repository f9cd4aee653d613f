// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package payment implements upgrade-payment form validation and the mock
// payment processor.
package payment

import "strings"

// =============================================================================
// CARD TYPE DETECTION
// =============================================================================

// CardType is a recognized card network.
type CardType string

const (
	CardUnknown    CardType = ""
	CardVisa       CardType = "Visa"
	CardMastercard CardType = "Mastercard"
	CardAmex       CardType = "Amex"
	CardDiscover   CardType = "Discover"
)

// DetectCardType identifies the network from the leading digits. Unknown
// prefixes return CardUnknown; detection is display-only and never gates
// validation.
func DetectCardType(number string) CardType {
	digits := strings.ReplaceAll(number, " ", "")
	switch {
	case digits == "":
		return CardUnknown
	case digits[0] == '4':
		return CardVisa
	case len(digits) >= 2 && digits[0] == '5' && digits[1] >= '1' && digits[1] <= '5':
		return CardMastercard
	case len(digits) >= 2 && digits[0] == '3' && (digits[1] == '4' || digits[1] == '7'):
		return CardAmex
	case strings.HasPrefix(digits, "6011") || (len(digits) >= 2 && digits[0] == '6' && digits[1] == '5'):
		return CardDiscover
	default:
		return CardUnknown
	}
}

// =============================================================================
// INPUT FORMATTERS
// =============================================================================

// FormatCardNumber groups the digits in blocks of four for display while the
// user types. Non-digits are dropped; input is capped at 19 digits.
func FormatCardNumber(input string) string {
	var digits strings.Builder
	for _, r := range input {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
			if digits.Len() == 19 {
				break
			}
		}
	}

	var out strings.Builder
	for i, r := range digits.String() {
		if i > 0 && i%4 == 0 {
			out.WriteByte(' ')
		}
		out.WriteRune(r)
	}
	return out.String()
}

// FormatExpiry strips non-digits and re-inserts the MM/YY separator as the
// user types.
func FormatExpiry(input string) string {
	var digits strings.Builder
	for _, r := range input {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
			if digits.Len() == 4 {
				break
			}
		}
	}

	s := digits.String()
	if len(s) <= 2 {
		return s
	}
	return s[:2] + "/" + s[2:]
}
