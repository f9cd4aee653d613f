// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides utility functions for the docchat application.
//
// This package contains common helper functions used throughout the
// application for string manipulation, display formatting, and file
// operations.
//
// # Key Functions
//
// String Utilities:
//   - TruncateRunes: UTF-8 safe string truncation with ellipsis
//   - TruncateWidth, StringWidth: display-width aware helpers (CJK safe)
//
// Display Formatting:
//   - FormatMinorUnits: paise/cents to a currency display string
//   - MaskCardNumber: mask all but the last four card digits
//
// File Operations:
//   - AtomicWriteFile: Crash-safe file writing with fsync
//
// # Usage
//
//	// Truncate long strings safely for display
//	display := util.TruncateRunes(longText, 50)
//
//	// Format a plan price
//	price := util.FormatMinorUnits(49900, "INR") // "₹499.00"
//
//	// Write files atomically to prevent data loss
//	err := util.AtomicWriteFile(path, data, 0644)
package util
