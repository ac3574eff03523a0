// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/openapi2md

package openapi2md

import (
	"strings"
)

// defaultTitle is used when neither options nor info carry a title.
const defaultTitle = "API Reference"

// renderView is the root value passed to markdown templates.
// Document fields (Root, Info, Tags, Paths, ShowTagSummary) are promoted.
type renderView struct {
	*Document
	// Title is the document heading.
	Title string
	// Example selects generated example payloads for models; zero disables them.
	Example ExampleOptions
}

// buildRenderView preprocesses spec and resolves render settings.
func buildRenderView(spec *Specification, opt Options) (renderView, error) {
	if opt.Example.Enabled() {
		format, err := normalizeExampleFormat(opt.Example.Format)
		if err != nil {
			return renderView{}, err
		}

		mode, err := normalizeExampleMode(opt.Example.Mode)
		if err != nil {
			return renderView{}, err
		}

		opt.Example = ExampleOptions{Format: format, Mode: mode}
	}

	doc := Preprocess(spec)

	return renderView{
		Document: doc,
		Title:    resolveTitle(opt.Title, doc.Info),
		Example:  opt.Example,
	}, nil
}

// resolveTitle picks the caller title, then info.title, then the default.
func resolveTitle(title string, info map[string]any) string {
	for _, candidate := range []string{title, asString(info["title"])} {
		if candidate = strings.Join(strings.Fields(candidate), " "); candidate != "" {
			return candidate
		}
	}

	return defaultTitle
}
