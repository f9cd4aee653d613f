// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// history.go - Conversation history command for docchat.
//
// Command: history
// Short:   List recent conversations
// Aliases: conversations
//
// Examples:
//   docchat history               List the most recent conversations
//   docchat history show <id>     Print a conversation transcript
//   docchat history --json        Listing in JSON format
package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jeranaias/docchat-tui/internal/config"
	"github.com/jeranaias/docchat-tui/internal/model"
	"github.com/jeranaias/docchat-tui/internal/store"
)

// HandleHistory runs the history command and its subcommands.
func HandleHistory(cfg *config.Config, args Args) int {
	ctx, cancel := context.WithTimeout(context.Background(), cliRequestTimeout)
	defer cancel()

	rt, err := newRuntime(cfg, args)
	if err != nil {
		fmt.Fprintln(os.Stderr, ErrorStyle.Render(err.Error()))
		return 1
	}
	if err := rt.signIn(ctx); err != nil {
		fmt.Fprintln(os.Stderr, ErrorStyle.Render("Sign-in failed: "+err.Error()))
		return 1
	}

	switch args.Subcommand {
	case "", "list":
		return listConversations(ctx, rt, args)
	case "show":
		if len(args.Raw) == 0 {
			fmt.Fprintln(os.Stderr, ErrorStyle.Render("Usage: docchat history show <id>"))
			return 1
		}
		return showConversation(ctx, rt, args, args.Raw[0])
	default:
		fmt.Fprintf(os.Stderr, "docchat history: unknown subcommand %q\n", args.Subcommand)
		return 1
	}
}

func listConversations(ctx context.Context, rt *runtime, args Args) int {
	convs, err := rt.client.History(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, ErrorStyle.Render("Listing failed: "+err.Error()))
		return 1
	}
	// Same truncation the TUI applies: most recent conversations only.
	if len(convs) > store.MaxListed {
		convs = convs[:store.MaxListed]
	}

	if args.JSON {
		if err := outputJSON(convs); err != nil {
			fmt.Fprintln(os.Stderr, ErrorStyle.Render(err.Error()))
			return 1
		}
		return 0
	}

	if len(convs) == 0 {
		fmt.Println(ValueStyle.Render("No conversations yet."))
		return 0
	}

	fmt.Println(TitleStyle.Render("Recent conversations"))
	for _, conv := range convs {
		title := truncateString(conv.Title, 48)
		if title == "" {
			title = "Untitled"
		}
		fmt.Println(ValueStyle.Render("  "+title) +
			MutedStyle.Render(fmt.Sprintf("  (%s, %s)", conv.ID, conversationAge(conv.UpdatedAt))))
	}
	return 0
}

func showConversation(ctx context.Context, rt *runtime, args Args, id string) int {
	msgs, err := rt.client.ConversationMessages(ctx, id)
	if err != nil {
		fmt.Fprintln(os.Stderr, ErrorStyle.Render("Fetch failed: "+err.Error()))
		return 1
	}

	if args.JSON {
		if err := outputJSON(msgs); err != nil {
			fmt.Fprintln(os.Stderr, ErrorStyle.Render(err.Error()))
			return 1
		}
		return 0
	}

	for _, msg := range msgs {
		prefix := "you"
		style := ValueStyle
		if msg.Type == model.TypeBot {
			prefix = "assistant"
			style = MutedStyle
		}
		fmt.Println(SectionStyle.Render(prefix))
		fmt.Println(style.Render(msg.Content))
		fmt.Println()
	}
	return 0
}

// conversationAge renders how long ago a conversation was touched.
func conversationAge(t time.Time) string {
	if t.IsZero() {
		return "unknown"
	}
	return formatDuration(time.Since(t)) + " ago"
}
