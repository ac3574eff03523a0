// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/openapi2md

package openapi2md

import (
	"encoding/json"
	"fmt"
	"strings"
)

// mustJSONInline marshals values as single-line JSON text for markdown snippets.
func mustJSONInline(value any) string {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Sprintf("%v", value)
	}

	return string(data)
}

// inlineCode wraps scalar text in a code span; empty values render as nothing.
// Text containing backticks gets a fence one backtick longer than its longest
// run, padded with a space on each side.
func inlineCode(value any) string {
	text := toText(value)
	if text == "" {
		return ""
	}

	longest := longestBacktickRun(text)
	if longest == 0 {
		return "`" + text + "`"
	}

	fence := strings.Repeat("`", longest+1)
	return fence + " " + text + " " + fence
}

// longestBacktickRun returns the length of the longest run of consecutive backticks.
func longestBacktickRun(text string) int {
	longest, run := 0, 0
	for _, r := range text {
		if r != '`' {
			run = 0
			continue
		}

		run++
		longest = max(longest, run)
	}

	return longest
}

// escapeCell keeps text on one table row: pipes are escaped, line breaks become spaces.
func escapeCell(value string) string {
	value = normalizeLineEndings(value)
	value = strings.ReplaceAll(value, "|", "\\|")
	return strings.Join(strings.Fields(strings.ReplaceAll(value, "\n", " ")), " ")
}

// normalizeLineEndings converts CRLF/CR to LF.
func normalizeLineEndings(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return text
}

// normalizeMarkdownOutput collapses extra blank lines outside fenced blocks.
func normalizeMarkdownOutput(text string) string {
	text = normalizeLineEndings(text)
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))

	inFence := false
	blankCount := 0
	for _, rawLine := range lines {
		line := strings.TrimRight(rawLine, " \t")
		trimmed := strings.TrimSpace(line)

		if strings.HasPrefix(trimmed, "```") {
			inFence = !inFence
			out = append(out, line)
			blankCount = 0
			continue
		}

		if !inFence && trimmed == "" {
			if blankCount == 0 {
				out = append(out, "")
			}

			blankCount++
			continue
		}

		blankCount = 0
		out = append(out, line)
	}

	return strings.Trim(strings.Join(out, "\n"), "\n")
}

// ensureTrailingNewline guarantees exactly one trailing newline in output.
func ensureTrailingNewline(value string) string {
	value = strings.TrimRight(value, "\n")
	return value + "\n"
}
