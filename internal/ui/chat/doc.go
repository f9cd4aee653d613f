// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package chat provides the main chat view component for the docchat TUI.

The chat package implements a terminal-based document-QA chat interface
using the Bubble Tea framework. It wires the conversation store, the send
pipeline, the connection monitor, and the payment flow into a single
Bubble Tea model.

# Key Components

## Model (model.go)

The Model struct is the central Bubble Tea model:
  - Mode selection (welcome, chat, history, upgrade, payment)
  - The transcript snapshot of the view model
  - In-flight guards for the send and payment commands
  - All wired collaborators (client, auth, store, pipeline, monitor)

## Update Loop (update.go)

Handles all Bubble Tea messages and user interactions:
  - Per-mode keyboard routing
  - Send pipeline results and gate outcomes
  - Connection probe ticks and status transitions
  - Conversation listing, switching, and deletion
  - Payment submission and settlement results

## View Rendering (view.go)

Rendering logic for the full interface:
  - Transcript viewport with markdown-rendered answers
  - Input area and status bar
  - Centered overlays for history, upgrade, and payment
  - Toast compositing in the bottom-right corner

## Commands (commands.go)

tea.Cmd builders for blocking work off the UI goroutine: the token
exchange, listing and switch fetches, the send pipeline, connection
probes, and the payment flow.

# Usage

Create a chat model and run it as a Bubble Tea program:

	m := chat.New(theme, chat.Deps{
		Client:    client,
		Auth:      authState,
		Store:     convStore,
		ViewModel: viewModel,
		Pipeline:  pipeline,
		Monitor:   monitor,
		Processor: processor,
		Config:    cfg,
	})
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		log.Fatal(err)
	}
*/
package chat
