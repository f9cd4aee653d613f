// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// config.go - Config command implementation for docchat.
//
// Command: config [subcommand]
// Short:   View and modify configuration
//
// Subcommands:
//   show (default)      Display current configuration
//   get <key>           Print one value
//   set <key> <value>   Set and save a value
//   path                Show configuration file path
//
// Examples:
//   docchat config                          Show current config
//   docchat config show --json              Config in JSON format
//   docchat config get backend.base_url
//   docchat config set backend.base_url https://chat.example.com
//   docchat config set ui.show_sources false
//   docchat config set connection.interval_seconds 60
//   docchat config path
package cli

import (
	"fmt"
	"os"

	"github.com/jeranaias/docchat-tui/internal/config"
)

// HandleConfig runs the config command and its subcommands.
func HandleConfig(cfg *config.Config, args Args) int {
	switch args.Subcommand {
	case "", "show":
		return configShow(cfg, args)
	case "get":
		return configGet(cfg, args)
	case "set":
		return configSet(cfg, args)
	case "path":
		return configPath()
	default:
		fmt.Fprintf(os.Stderr, "docchat config: unknown subcommand %q\n", args.Subcommand)
		fmt.Fprintln(os.Stderr, "Usage: docchat config [show|get|set|path]")
		return 1
	}
}

func configShow(cfg *config.Config, args Args) int {
	if args.JSON {
		if err := outputJSON(cfg); err != nil {
			fmt.Fprintln(os.Stderr, ErrorStyle.Render(err.Error()))
			return 1
		}
		return 0
	}

	fmt.Println(TitleStyle.Render("docchat configuration"))
	for _, key := range config.GetAllKeys() {
		value, err := cfg.Get(key)
		if err != nil {
			continue
		}
		display := fmt.Sprintf("%v", value)
		if key == "backend.token" && display != "" {
			display = "(set)"
		}
		fmt.Println(LabelStyle.Render("  "+key) + ValueStyle.Render(display))
	}
	if path, err := config.ConfigPath(); err == nil {
		fmt.Println()
		fmt.Println(MutedStyle.Render("File: " + path))
	}
	return 0
}

func configGet(cfg *config.Config, args Args) int {
	if args.ConfigKey == "" {
		fmt.Fprintln(os.Stderr, ErrorStyle.Render("Usage: docchat config get <key>"))
		return 1
	}
	value, err := cfg.Get(args.ConfigKey)
	if err != nil {
		fmt.Fprintln(os.Stderr, ErrorStyle.Render(err.Error()))
		return 1
	}
	fmt.Printf("%v\n", value)
	return 0
}

func configSet(cfg *config.Config, args Args) int {
	if args.ConfigKey == "" || args.ConfigVal == "" {
		fmt.Fprintln(os.Stderr, ErrorStyle.Render("Usage: docchat config set <key> <value>"))
		return 1
	}
	if err := cfg.Set(args.ConfigKey, args.ConfigVal); err != nil {
		fmt.Fprintln(os.Stderr, ErrorStyle.Render(err.Error()))
		return 1
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, ErrorStyle.Render(err.Error()))
		return 1
	}
	if err := config.Save(cfg); err != nil {
		fmt.Fprintln(os.Stderr, ErrorStyle.Render("Save failed: "+err.Error()))
		return 1
	}
	fmt.Println(SuccessStyle.Render("Saved ") + ValueStyle.Render(args.ConfigKey+" = "+args.ConfigVal))
	return 0
}

func configPath() int {
	path, err := config.ConfigPath()
	if err != nil {
		fmt.Fprintln(os.Stderr, ErrorStyle.Render(err.Error()))
		return 1
	}
	fmt.Println(path)
	return 0
}
