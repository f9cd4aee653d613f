// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli provides command-line interface parsing and execution for
// docchat.
//
// This package implements all non-TUI commands for the docchat client,
// sharing the same API layer, auth state, and configuration as the TUI.
//
// # Key Types
//
//   - Command: Enumeration of available CLI commands
//   - Args: Parsed command-line arguments with global and command-specific flags
//
// # Usage
//
// Parse and dispatch commands:
//
//	cmd, args := cli.Parse()
//	switch cmd {
//	case cli.CmdAsk:
//	    os.Exit(cli.HandleAsk(cfg, args))
//	case cli.CmdStatus:
//	    os.Exit(cli.HandleStatus(cfg, args))
//	// ... other commands
//	}
//
// # Commands Overview
//
//   - ask: Single question, rendered answer with source citations
//   - status: Backend reachability, auth, and quota display
//   - history: Recent conversation listing and transcript display
//   - config: Configuration management (show, get, set, path)
//   - version: Version information
//
// Listing and ask commands support --json for scripted use.
package cli
