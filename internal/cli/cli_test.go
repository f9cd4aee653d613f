// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseArgs_DefaultsToTUI(t *testing.T) {
	cmd, _ := ParseArgs(nil)
	assert.Equal(t, CmdTUI, cmd)
}

func TestParseArgs_AskJoinsWords(t *testing.T) {
	cmd, args := ParseArgs([]string{"ask", "what", "is", "the", "refund", "policy?"})

	assert.Equal(t, CmdAsk, cmd)
	assert.Equal(t, "what is the refund policy?", args.Query)
}

func TestParseArgs_GlobalFlags(t *testing.T) {
	cmd, args := ParseArgs([]string{"--json", "-q", "--backend", "https://api.example.com", "status"})

	assert.Equal(t, CmdStatus, cmd)
	assert.True(t, args.JSON)
	assert.True(t, args.Quiet)
	assert.Equal(t, "https://api.example.com", args.Backend)
}

func TestParseArgs_EqualsFormFlags(t *testing.T) {
	_, args := ParseArgs([]string{"--backend=https://api.example.com", "--token=tok123", "status"})

	assert.Equal(t, "https://api.example.com", args.Backend)
	assert.Equal(t, "tok123", args.Token)
}

func TestParseArgs_StatusAlias(t *testing.T) {
	cmd, _ := ParseArgs([]string{"s"})
	assert.Equal(t, CmdStatus, cmd)
}

func TestParseArgs_HistorySubcommand(t *testing.T) {
	cmd, args := ParseArgs([]string{"history", "show", "c123"})

	assert.Equal(t, CmdHistory, cmd)
	assert.Equal(t, "show", args.Subcommand)
	assert.Equal(t, []string{"c123"}, args.Raw)
}

func TestParseArgs_ConfigSet(t *testing.T) {
	cmd, args := ParseArgs([]string{"config", "set", "backend.base_url", "https://chat.example.com"})

	assert.Equal(t, CmdConfig, cmd)
	assert.Equal(t, "set", args.Subcommand)
	assert.Equal(t, "backend.base_url", args.ConfigKey)
	assert.Equal(t, "https://chat.example.com", args.ConfigVal)
}

func TestParseArgs_ConfigDefaultsToShow(t *testing.T) {
	_, args := ParseArgs([]string{"config"})
	assert.Equal(t, "show", args.Subcommand)
}

func TestParseArgs_UnknownCommandFallsBackToHelp(t *testing.T) {
	cmd, _ := ParseArgs([]string{"frobnicate"})
	assert.Equal(t, CmdHelp, cmd)
}

func TestParseArgs_VersionForms(t *testing.T) {
	for _, form := range []string{"version", "--version", "-V"} {
		cmd, _ := ParseArgs([]string{form})
		assert.Equal(t, CmdVersion, cmd, form)
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{30 * time.Second, "30s"},
		{5 * time.Minute, "5m"},
		{3 * time.Hour, "3h"},
		{48 * time.Hour, "2d"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatDuration(tt.d))
	}
}

func TestTruncateString(t *testing.T) {
	assert.Equal(t, "short", truncateString("short", 10))
	assert.Equal(t, "a very l...", truncateString("a very long title here", 11))
	assert.Equal(t, "abc", truncateString("abc", 3))
}
