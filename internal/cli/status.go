// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// status.go - Status command implementation for docchat.
//
// Command: status
// Short:   Display backend, auth, and quota status
// Aliases: s
//
// Examples:
//   docchat status                Show status
//   docchat s                     Show status (short alias)
//   docchat status --json         Status in JSON format
//
// Status Sections:
//   Backend:   Base URL, reachability, probe latency
//   Account:   Signed-in user, plan, remaining free chats
//   Config:    Config file path
package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jeranaias/docchat-tui/internal/config"
	"github.com/jeranaias/docchat-tui/internal/model"
	"github.com/jeranaias/docchat-tui/internal/util"
)

// statusReport is the JSON shape of the status command.
type statusReport struct {
	Backend       string `json:"backend"`
	Reachable     bool   `json:"reachable"`
	LatencyMillis int64  `json:"latency_ms"`
	SignedIn      bool   `json:"signed_in"`
	User          string `json:"user,omitempty"`
	Premium       bool   `json:"premium"`
	Remaining     int    `json:"remaining"`
	ConfigPath    string `json:"config_path,omitempty"`
	Version       string `json:"version"`
}

// HandleStatus runs the status command.
func HandleStatus(cfg *config.Config, args Args) int {
	ctx, cancel := context.WithTimeout(context.Background(), cliRequestTimeout)
	defer cancel()

	rt, err := newRuntime(cfg, args)
	if err != nil {
		fmt.Fprintln(os.Stderr, ErrorStyle.Render(err.Error()))
		return 1
	}

	report := statusReport{
		Backend: rt.client.BaseURL(),
		Version: Version,
	}
	if path, err := config.ConfigPath(); err == nil {
		report.ConfigPath = path
	}

	start := time.Now()
	if err := rt.client.Health(ctx); err == nil {
		report.Reachable = true
		report.LatencyMillis = time.Since(start).Milliseconds()
	}

	var limits model.ChatLimits
	if report.Reachable && rt.token != "" {
		if err := rt.signIn(ctx); err == nil {
			snap := rt.auth.Snapshot()
			report.SignedIn = true
			report.User = snap.User.DisplayName()
			limits = snap.Limits
			report.Premium = limits.IsPremium
			report.Remaining = limits.Remaining
		}
	}

	if args.JSON {
		if err := outputJSON(report); err != nil {
			fmt.Fprintln(os.Stderr, ErrorStyle.Render(err.Error()))
			return 1
		}
		return 0
	}

	printStatus(report, limits)
	return 0
}

func printStatus(report statusReport, limits model.ChatLimits) {
	fmt.Println(TitleStyle.Render("docchat status"))

	fmt.Println(SectionStyle.Render("Backend"))
	fmt.Println(LabelStyle.Render("  URL") + ValueStyle.Render(report.Backend))
	if report.Reachable {
		fmt.Println(LabelStyle.Render("  Connection") +
			SuccessStyle.Render("connected") +
			ValueStyle.Render(fmt.Sprintf(" (%dms)", report.LatencyMillis)))
	} else {
		fmt.Println(LabelStyle.Render("  Connection") + ErrorStyle.Render("unreachable"))
	}

	fmt.Println(SectionStyle.Render("Account"))
	if report.SignedIn {
		fmt.Println(LabelStyle.Render("  User") + ValueStyle.Render(report.User))
		if report.Premium {
			fmt.Println(LabelStyle.Render("  Plan") + SuccessStyle.Render("Premium"))
		} else {
			fmt.Println(LabelStyle.Render("  Plan") + ValueStyle.Render("Free"))
			fmt.Println(LabelStyle.Render("  Chats left") + quotaStyle(limits).Render(fmt.Sprintf("%d of %d", report.Remaining, model.FreeChatLimit)))
			if !limits.CanChat {
				price := util.FormatMinorUnits(49900, "INR")
				fmt.Println(ValueStyle.Render("  Upgrade to Premium for " + price + "/month: run docchat and press ctrl+u"))
			}
		}
	} else {
		fmt.Println(LabelStyle.Render("  User") + WarningStyle.Render("not signed in"))
		fmt.Println(ValueStyle.Render("  Set DOCCHAT_TOKEN or backend.token to sign in."))
	}

	if report.ConfigPath != "" {
		fmt.Println(SectionStyle.Render("Config"))
		fmt.Println(LabelStyle.Render("  File") + ValueStyle.Render(report.ConfigPath))
	}
}

// quotaStyle colors the remaining count by how close the quota is to empty.
func quotaStyle(limits model.ChatLimits) interface{ Render(...string) string } {
	switch {
	case !limits.CanChat:
		return ErrorStyle
	case limits.Remaining == 1:
		return WarningStyle
	default:
		return ValueStyle
	}
}
