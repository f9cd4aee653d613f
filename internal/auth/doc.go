// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package auth holds the client-side authentication state.
//
// State tracks the signed-in user, the backend session token, and the chat
// quota. It produces the auth headers attached to outgoing requests and owns
// the quota decrement performed by the send pipeline.
//
// # Usage
//
//	state := auth.NewState()
//	state.SignIn(sess.User, sess.Token, sess.Limits)
//	client := api.NewClient(baseURL, state.Headers)
//
// The actual token exchange (Google sign-in) is a backend collaborator; see
// api.Client.GoogleLogin.
package auth
