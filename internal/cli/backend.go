// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// backend.go - Shared backend wiring for docchat CLI commands.
//
// Every non-TUI command needs the same pair: an authenticated API client
// and the session state. This file builds them once from the config plus
// command-line overrides.
package cli

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/jeranaias/docchat-tui/internal/api"
	"github.com/jeranaias/docchat-tui/internal/auth"
	"github.com/jeranaias/docchat-tui/internal/config"
)

// cliRequestTimeout bounds a single API call from a CLI command.
const cliRequestTimeout = 30 * time.Second

// runtime bundles the API client with the session it authenticates as.
type runtime struct {
	client *api.Client
	auth   *auth.State
	token  string
}

// newRuntime builds the client from the config, applying --backend and
// --token overrides. The token falls back to DOCCHAT_TOKEN.
func newRuntime(cfg *config.Config, args Args) (*runtime, error) {
	baseURL := cfg.Backend.BaseURL
	if args.Backend != "" {
		baseURL = args.Backend
	}
	if baseURL == "" {
		return nil, errors.New("no backend configured; set backend.base_url or pass --backend")
	}

	token := cfg.Backend.Token
	if env := os.Getenv("DOCCHAT_TOKEN"); env != "" {
		token = env
	}
	if args.Token != "" {
		token = args.Token
	}

	authState := auth.NewState()
	client := api.NewClient(baseURL, authState.Headers).
		WithTimeout(cliRequestTimeout)

	return &runtime{client: client, auth: authState, token: token}, nil
}

// signIn exchanges the configured token for a session. Fails when no token
// is configured; commands that work anonymously should not call it.
func (rt *runtime) signIn(ctx context.Context) error {
	if rt.token == "" {
		return errors.New("no token configured")
	}
	session, err := rt.client.GoogleLogin(ctx, rt.token)
	if err != nil {
		return err
	}
	rt.auth.SignIn(session.User, session.Token, session.Limits)
	return nil
}
