// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// cli.go - CLI parsing and command handlers for docchat.
package cli

import (
	"fmt"
	"os"
	"strings"
)

// Version information (can be overridden at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command represents the CLI command to execute.
type Command int

const (
	CmdTUI Command = iota
	CmdAsk
	CmdStatus
	CmdHistory
	CmdConfig
	CmdVersion
	CmdHelp
)

// Args holds parsed CLI arguments.
type Args struct {
	// Global flags
	Quiet   bool
	Verbose bool
	JSON    bool // Output in JSON format
	Backend string
	Token   string

	// Command-specific
	Query      string
	ConfigKey  string
	ConfigVal  string
	Subcommand string

	// Raw args (remaining after flag parsing)
	Raw []string
}

const usageText = `docchat - terminal client for your document chat backend

Docchat is a terminal front end for a document-QA chat service. It talks to
the same HTTP API as the web client: ask questions about your uploaded
documents, browse recent conversations, and upgrade to Premium from the
terminal.

Usage:
  docchat                    Start TUI (default)
  docchat ask "question"     Ask a single question and print the answer
  docchat status, s          Show backend, auth, and quota status
  docchat history            List recent conversations
  docchat config [show|get|set|path]  Configuration
  docchat version            Show version information
  docchat help               Show this help

Ask:
  docchat ask "what is the refund policy?"
    --json                   Print the raw reply as JSON
    -q, --quiet              Answer text only, no sources

History:
  docchat history            List the most recent conversations
  docchat history show <id>  Print a conversation transcript

Config:
  docchat config show        Print the active configuration
  docchat config get KEY     Print one value (e.g. backend.base_url)
  docchat config set KEY VAL Set and save one value
  docchat config path        Print the config file location

Global flags:
  --backend URL              Override the backend base URL
  --token TOKEN              Override the sign-in token (or set DOCCHAT_TOKEN)
  --json                     JSON output where supported
  -q, --quiet                Minimal output
  -v, --verbose              Verbose output

Environment:
  DOCCHAT_BACKEND_URL        Backend base URL
  DOCCHAT_TOKEN              Sign-in token

Version: %s
`

// PrintUsage prints the usage/help text.
func PrintUsage() {
	fmt.Printf(usageText, Version)
}

// PrintVersion prints version information.
func PrintVersion() {
	fmt.Printf("docchat version %s\n", Version)
	fmt.Printf("  Git commit: %s\n", GitCommit)
	fmt.Printf("  Build date: %s\n", BuildDate)
}

// Parse parses command-line arguments and returns the command and args.
func Parse() (Command, Args) {
	return ParseArgs(os.Args[1:])
}

// ParseArgs parses the given argument list. Split out from Parse for tests.
func ParseArgs(args []string) (Command, Args) {
	remaining, parsed := parseGlobalFlags(args)

	// No remaining args: default to the TUI.
	if len(remaining) == 0 {
		return CmdTUI, parsed
	}

	cmd := strings.ToLower(remaining[0])
	remaining = remaining[1:]
	parsed.Raw = remaining

	switch cmd {
	case "tui":
		return CmdTUI, parsed

	case "ask":
		parseAskArgs(&parsed, remaining)
		return CmdAsk, parsed

	case "status", "s":
		return CmdStatus, parsed

	case "history", "conversations":
		if len(remaining) > 0 {
			parsed.Subcommand = remaining[0]
			parsed.Raw = remaining[1:]
		}
		return CmdHistory, parsed

	case "config":
		parseConfigArgs(&parsed, remaining)
		return CmdConfig, parsed

	case "version", "-V", "--version":
		return CmdVersion, parsed

	case "help", "-h", "--help":
		return CmdHelp, parsed
	}

	// Unknown command: print usage and exit non-zero from the caller.
	fmt.Fprintf(os.Stderr, "docchat: unknown command %q\n\n", cmd)
	return CmdHelp, parsed
}

// parseGlobalFlags strips global flags from the argument list.
func parseGlobalFlags(args []string) ([]string, Args) {
	var parsed Args
	var remaining []string

	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch arg {
		case "-q", "--quiet":
			parsed.Quiet = true
		case "-v", "--verbose":
			parsed.Verbose = true
		case "--json":
			parsed.JSON = true
		case "--backend":
			if i+1 < len(args) {
				i++
				parsed.Backend = args[i]
			}
		case "--token":
			if i+1 < len(args) {
				i++
				parsed.Token = args[i]
			}
		default:
			if strings.HasPrefix(arg, "--backend=") {
				parsed.Backend = strings.TrimPrefix(arg, "--backend=")
				continue
			}
			if strings.HasPrefix(arg, "--token=") {
				parsed.Token = strings.TrimPrefix(arg, "--token=")
				continue
			}
			remaining = append(remaining, arg)
		}
	}

	return remaining, parsed
}

// parseAskArgs joins the remaining words into the question.
func parseAskArgs(parsed *Args, remaining []string) {
	var words []string
	for _, arg := range remaining {
		if strings.HasPrefix(arg, "-") {
			continue
		}
		words = append(words, arg)
	}
	parsed.Query = strings.Join(words, " ")
}

// parseConfigArgs handles config's positional subcommand and key/value.
func parseConfigArgs(parsed *Args, remaining []string) {
	if len(remaining) == 0 {
		parsed.Subcommand = "show"
		return
	}
	parsed.Subcommand = strings.ToLower(remaining[0])
	if len(remaining) > 1 {
		parsed.ConfigKey = remaining[1]
	}
	if len(remaining) > 2 {
		parsed.ConfigVal = strings.Join(remaining[2:], " ")
	}
}
