// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"testing"
)

// =============================================================================
// HELPER FUNCTION TESTS
// =============================================================================

func TestToStr(t *testing.T) {
	tests := []struct {
		name  string
		input int
		want  string
	}{
		{"zero remaining chats", 0, "0"},
		{"one remaining chat", 1, "1"},
		{"free chat quota", 3, "3"},
		{"message count", 42, "42"},
		{"plan price in paise", 49900, "49900"},
		{"negative delta", -1, "-1"},
		{"min int64", -9223372036854775808, "-9223372036854775808"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := toStr(tc.input); got != tc.want {
				t.Errorf("toStr(%d) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestFmtNumber(t *testing.T) {
	tests := []struct {
		name  string
		input int
		want  string
	}{
		{"quota count", 3, "3"},
		{"below separator threshold", 999, "999"},
		{"plan price in paise", 49900, "49,900"},
		{"yearly plan in paise", 598800, "598,800"},
		{"large document corpus", 1234567, "1,234,567"},
		{"negative amount", -49900, "-49,900"},
		{"min int64", -9223372036854775808, "-9,223,372,036,854,775,808"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := fmtNumber(tc.input); got != tc.want {
				t.Errorf("fmtNumber(%d) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}
