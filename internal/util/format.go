// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package util

import (
	"fmt"
	"strings"
)

// currencySymbols maps ISO currency codes to display symbols.
var currencySymbols = map[string]string{
	"INR": "₹",
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
}

// FormatMinorUnits formats an amount given in a currency's smallest unit
// (paise, cents) as a display string, e.g. 49900 INR -> "₹499.00".
// Unknown currencies render as "499.00 XYZ".
func FormatMinorUnits(amount int, currency string) string {
	major := amount / 100
	minor := amount % 100
	if minor < 0 {
		minor = -minor
	}

	code := strings.ToUpper(currency)
	if sym, ok := currencySymbols[code]; ok {
		return fmt.Sprintf("%s%d.%02d", sym, major, minor)
	}
	return fmt.Sprintf("%d.%02d %s", major, minor, code)
}

// MaskCardNumber masks all but the last four digits of a card number,
// e.g. "4539148803436467" -> "**** **** **** 6467".
func MaskCardNumber(number string) string {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, number)

	if len(digits) < 4 {
		return strings.Repeat("*", len(digits))
	}

	last4 := digits[len(digits)-4:]
	masked := strings.Repeat("*", len(digits)-4) + last4

	// Regroup in blocks of four for readability
	var b strings.Builder
	for i, r := range masked {
		if i > 0 && i%4 == 0 {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	return b.String()
}
