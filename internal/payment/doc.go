// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package payment implements upgrade-payment form validation and the mock
// payment processor.
//
// Validation is stateless and per-field: card numbers run through the Luhn
// checksum, expiry must be MM/YY, CVV 3-4 digits, UPI ids a local@domain
// shape, and net banking requires a bank from the fixed list. Card-type
// detection and the input formatters exist for display only.
//
// Processor mocks settlement: it creates an order on the backend, waits a
// simulated processing delay, and submits the payment for server-side
// signature verification. Real gateway checkout is an external collaborator.
package payment
