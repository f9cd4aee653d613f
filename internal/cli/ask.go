// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// ask.go - Single question command handler for docchat.
//
// Handles the "docchat ask" command which sends one question to the
// document-QA backend and prints the rendered answer to stdout.
//
// Command: ask [question]
// Short:   Ask a single question
//
// Examples:
//   docchat ask "what is the refund policy?"
//   docchat ask --json "summarize the onboarding doc"
//   echo "question" | docchat ask
package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"

	"github.com/jeranaias/docchat-tui/internal/api"
	"github.com/jeranaias/docchat-tui/internal/config"
	"github.com/jeranaias/docchat-tui/internal/ui/components"
)

// askTimeout bounds the whole ask flow: sign-in plus one chat call.
const askTimeout = 60 * time.Second

// markdownRenderer is the glamour renderer for answer output.
var markdownRenderer *glamour.TermRenderer

func init() {
	var err error
	markdownRenderer, err = glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		// Fall back to plain text output.
		markdownRenderer = nil
	}
}

// HandleAsk runs the one-shot question flow.
func HandleAsk(cfg *config.Config, args Args) int {
	question := strings.TrimSpace(args.Query)
	if question == "" && !IsTTY() {
		// Read the question from a pipe.
		scanner := bufio.NewScanner(os.Stdin)
		var lines []string
		for scanner.Scan() {
			lines = append(lines, scanner.Text())
		}
		question = strings.TrimSpace(strings.Join(lines, "\n"))
	}
	if question == "" {
		fmt.Fprintln(os.Stderr, ErrorStyle.Render("No question given."))
		fmt.Fprintln(os.Stderr, "Usage: docchat ask \"your question\"")
		return 1
	}

	ctx, cancel := context.WithTimeout(context.Background(), askTimeout)
	defer cancel()

	rt, err := newRuntime(cfg, args)
	if err != nil {
		fmt.Fprintln(os.Stderr, ErrorStyle.Render(err.Error()))
		return 1
	}

	if err := rt.signIn(ctx); err != nil {
		fmt.Fprintln(os.Stderr, ErrorStyle.Render("Sign-in failed: "+err.Error()))
		fmt.Fprintln(os.Stderr, "Set DOCCHAT_TOKEN or backend.token in the config.")
		return 1
	}

	reply, err := rt.client.Chat(ctx, api.ChatRequest{Message: question})
	if err != nil {
		fmt.Fprintln(os.Stderr, ErrorStyle.Render("Request failed: "+err.Error()))
		return 1
	}

	if args.JSON {
		if err := outputJSON(reply); err != nil {
			fmt.Fprintln(os.Stderr, ErrorStyle.Render(err.Error()))
			return 1
		}
		return 0
	}

	printAnswer(reply, args.Quiet)
	return 0
}

// printAnswer renders the reply, markdown first, plain on fallback.
func printAnswer(reply *api.ChatReply, quiet bool) {
	answer := reply.Response
	if IsStdoutTTY() && ColorsEnabled() {
		if markdownRenderer != nil {
			if rendered, err := markdownRenderer.Render(answer); err == nil {
				answer = strings.TrimRight(rendered, "\n") + "\n"
			}
		} else {
			// Glamour unavailable: still highlight code excerpts.
			answer = components.HighlightFences(answer)
		}
	}
	fmt.Print(answer)
	if !strings.HasSuffix(answer, "\n") {
		fmt.Println()
	}

	if quiet || len(reply.Sources) == 0 {
		return
	}
	fmt.Println()
	fmt.Println(SectionStyle.Render("Sources"))
	for _, src := range reply.Sources {
		fmt.Println(ValueStyle.Render("  - " + src))
	}
}
