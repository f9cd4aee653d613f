// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package payment implements upgrade-payment form validation and the mock
// payment processor.
package payment

// PopularBanks is the fixed net-banking selection list.
var PopularBanks = []string{
	"State Bank of India",
	"HDFC Bank",
	"ICICI Bank",
	"Axis Bank",
	"Punjab National Bank",
	"Bank of Baroda",
	"Kotak Mahindra Bank",
	"IndusInd Bank",
}

// IsKnownBank reports whether the bank is on the selection list.
func IsKnownBank(name string) bool {
	for _, b := range PopularBanks {
		if b == name {
			return true
		}
	}
	return false
}
