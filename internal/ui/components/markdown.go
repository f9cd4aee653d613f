// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"sync"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	chromaStyles "github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/glamour"
)

// =============================================================================
// MARKDOWN RENDERER
// =============================================================================

// USABILITY: Renders markdown replies with syntax highlighting and formatting.

// MarkdownRenderer wraps a glamour renderer with width-aware re-creation.
// Assistant replies are markdown; document excerpts inside them pass through
// glamour's built-in code fence highlighting.
type MarkdownRenderer struct {
	mu       sync.Mutex
	renderer *glamour.TermRenderer
	width    int
}

// NewMarkdownRenderer creates a renderer wrapping at the given width.
func NewMarkdownRenderer(width int) *MarkdownRenderer {
	m := &MarkdownRenderer{}
	m.SetWidth(width)
	return m
}

// SetWidth rebuilds the underlying renderer when the terminal is resized.
func (m *MarkdownRenderer) SetWidth(width int) {
	if width < 20 {
		width = 20
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.renderer != nil && m.width == width {
		return
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		// Fallback to plain text if renderer initialization fails
		m.renderer = nil
		return
	}
	m.renderer = renderer
	m.width = width
}

// Render renders markdown content for terminal display.
// When glamour is unavailable the content passes through as-is, except that
// fenced code blocks still get chroma highlighting.
func (m *MarkdownRenderer) Render(content string) string {
	m.mu.Lock()
	renderer := m.renderer
	m.mu.Unlock()

	if renderer == nil {
		return HighlightFences(content)
	}

	out, err := renderer.Render(content)
	if err != nil {
		return HighlightFences(content)
	}
	return strings.TrimRight(out, "\n")
}

// HighlightFences highlights the bodies of fenced code blocks in otherwise
// plain text. Fence markers are dropped from the output.
func HighlightFences(content string) string {
	if !strings.Contains(content, "```") {
		return content
	}

	var (
		out      []string
		block    []string
		language string
		inFence  bool
	)
	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "```") {
			if inFence {
				out = append(out, strings.TrimRight(
					HighlightSnippet(strings.Join(block, "\n"), language), "\n"))
				block = nil
			} else {
				language = strings.TrimPrefix(trimmed, "```")
			}
			inFence = !inFence
			continue
		}
		if inFence {
			block = append(block, line)
		} else {
			out = append(out, line)
		}
	}
	// Unterminated fence: keep the lines rather than dropping them.
	if inFence && len(block) > 0 {
		out = append(out, block...)
	}
	return strings.Join(out, "\n")
}

// =============================================================================
// SYNTAX HIGHLIGHTING (Chroma-based)
// =============================================================================

// HighlightSnippet applies syntax highlighting to a standalone code or
// document excerpt using the chroma library. Language may be empty, in
// which case chroma analyses the content.
func HighlightSnippet(code, language string) string {
	lexer := lexers.Get(language)
	if lexer == nil {
		lexer = lexers.Analyse(code)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	style := chromaStyles.Get("monokai")
	if style == nil {
		style = chromaStyles.Fallback
	}

	formatter := formatters.Get("terminal256")
	if formatter == nil {
		formatter = formatters.Fallback
	}

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return code // Fallback to plain text
	}

	var buf strings.Builder
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return code
	}

	return buf.String()
}
