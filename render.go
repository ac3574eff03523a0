// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/openapi2md

package openapi2md

import (
	"fmt"
	"strings"
)

// Options controls markdown rendering.
type Options struct {
	// Title overrides the document heading taken from info.title.
	Title string
	// TemplateText replaces the built-in "main" template when not empty.
	// Built-in partials stay available to it.
	TemplateText string
	// Example enables generated example payloads for models without an "example".
	Example ExampleOptions
}

// RenderFile reads a specification from file and renders markdown documentation.
func RenderFile(path string, opt Options) (string, error) {
	spec, err := LoadFile(path)
	if err != nil {
		return "", err
	}

	return Convert(spec, opt)
}

// Render converts specification bytes (JSON or YAML) into markdown.
func Render(data []byte, opt Options) (string, error) {
	spec, err := ParseSpecification(data)
	if err != nil {
		return "", err
	}

	return Convert(spec, opt)
}

// Convert renders a decoded specification into markdown. It performs no I/O.
func Convert(spec *Specification, opt Options) (string, error) {
	markdownTemplate, err := resolveTemplate(opt)
	if err != nil {
		return "", err
	}

	view, err := buildRenderView(spec, opt)
	if err != nil {
		return "", err
	}

	var out strings.Builder
	if err := markdownTemplate.ExecuteTemplate(&out, mainTemplateName, view); err != nil {
		return "", fmt.Errorf("%w: %w", ErrExecuteMarkdownTemplate, err)
	}

	return ensureTrailingNewline(normalizeMarkdownOutput(out.String())), nil
}
