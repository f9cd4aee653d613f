// docchat TUI - a terminal client for your document chat backend.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"fmt"
	"os"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/docchat-tui/internal/api"
	"github.com/jeranaias/docchat-tui/internal/auth"
	"github.com/jeranaias/docchat-tui/internal/cli"
	"github.com/jeranaias/docchat-tui/internal/config"
	"github.com/jeranaias/docchat-tui/internal/connection"
	"github.com/jeranaias/docchat-tui/internal/payment"
	"github.com/jeranaias/docchat-tui/internal/send"
	"github.com/jeranaias/docchat-tui/internal/store"
	"github.com/jeranaias/docchat-tui/internal/ui/chat"
	"github.com/jeranaias/docchat-tui/internal/ui/styles"
)

// programRef lets background callbacks (config reload) talk to the running
// Bubble Tea program.
var (
	programMu  sync.Mutex
	programRef *tea.Program
)

func main() {
	cmd, args := cli.Parse()

	cfg := config.Global()
	cfg.ApplyEnvOverrides()

	switch cmd {
	case cli.CmdTUI:
		runTUI(cfg, args)
	case cli.CmdAsk:
		os.Exit(cli.HandleAsk(cfg, args))
	case cli.CmdStatus:
		os.Exit(cli.HandleStatus(cfg, args))
	case cli.CmdHistory:
		os.Exit(cli.HandleHistory(cfg, args))
	case cli.CmdConfig:
		os.Exit(cli.HandleConfig(cfg, args))
	case cli.CmdVersion:
		cli.PrintVersion()
	case cli.CmdHelp:
		cli.PrintUsage()
	}
}

// runTUI wires the collaborators and runs the Bubble Tea program.
func runTUI(cfg *config.Config, args cli.Args) {
	baseURL := cfg.Backend.BaseURL
	if args.Backend != "" {
		baseURL = args.Backend
	}

	token := cfg.Backend.Token
	if env := os.Getenv("DOCCHAT_TOKEN"); env != "" {
		token = env
	}
	if args.Token != "" {
		token = args.Token
	}

	authState := auth.NewState()

	client := api.NewClient(baseURL, authState.Headers)
	if cfg.Backend.TimeoutSecs > 0 {
		client = client.WithTimeout(time.Duration(cfg.Backend.TimeoutSecs) * time.Second)
	}

	convStore := store.New(store.Config{
		Backend:       client,
		Authenticated: authState.IsAuthenticated,
	})
	viewModel := store.NewViewModel()

	monitor := connection.NewMonitor(connection.Config{
		Prober:           client,
		Interval:         time.Duration(cfg.Connection.ProbeIntervalSecs) * time.Second,
		ProbeTimeout:     time.Duration(cfg.Connection.ProbeTimeoutSecs) * time.Second,
		ManualCheckEvery: time.Duration(cfg.Connection.ManualCheckSecs) * time.Second,
	})

	pipeline := send.New(send.Config{
		Auth:      authState,
		Store:     convStore,
		ViewModel: viewModel,
		Sender:    client,
		Connected: monitor.IsConnected,
	})

	processor := payment.NewProcessor(payment.Config{
		Gateway:  client,
		Amount:   cfg.Payment.PlanAmount,
		Currency: cfg.Payment.Currency,
	})

	theme := styles.NewTheme()
	m := chat.New(theme, chat.Deps{
		Client:    client,
		Auth:      authState,
		Store:     convStore,
		ViewModel: viewModel,
		Pipeline:  pipeline,
		Monitor:   monitor,
		Processor: processor,
		Config:    cfg,
		IDToken:   token,
		Version:   cli.Version,
	})

	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
	)

	programMu.Lock()
	programRef = p
	programMu.Unlock()

	// Watch the config file so a backend URL edit takes effect without a
	// restart: repoint the shared client, reset the monitor, and force a
	// fresh probe. The store, send pipeline, and sign-in all share this
	// client, so every subsequent request targets the new endpoint.
	if path, err := config.ConfigPath(); err == nil {
		watcher, werr := config.NewWatcher(path, func(updated *config.Config) {
			if updated.Backend.BaseURL == client.BaseURL() {
				return
			}
			client.SetBaseURL(updated.Backend.BaseURL)
			monitor.EndpointChanged(client)

			programMu.Lock()
			prog := programRef
			programMu.Unlock()
			if prog != nil {
				prog.Send(connection.TickMsg{Time: time.Now()})
			}
		})
		if werr == nil {
			if err := watcher.Watch(); err == nil {
				defer watcher.Close()
			}
		}
	}

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running docchat: %v\n", err)
		os.Exit(1)
	}
}
