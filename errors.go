// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/openapi2md

package openapi2md

import "errors"

var (
	// ErrReadSpecFile is returned when specification file loading fails.
	ErrReadSpecFile = errors.New("read specification file")
	// ErrEmptySpec is returned when specification input has no content.
	ErrEmptySpec = errors.New("empty specification")
	// ErrDecodeSpec is returned when YAML or JSON decoding fails.
	ErrDecodeSpec = errors.New("decode specification")
	// ErrSpecRootType is returned when specification root is not a mapping.
	ErrSpecRootType = errors.New("specification root must be an object")
	// ErrFetchSpec is returned when HTTP transport fails while fetching a specification.
	ErrFetchSpec = errors.New("fetch specification")
	// ErrUnexpectedStatus is returned when remote specification responds with non-200 status.
	ErrUnexpectedStatus = errors.New("unexpected status code")
	// ErrResolveReference is returned when a local $ref cannot be walked to its target.
	ErrResolveReference = errors.New("resolve reference")
	// ErrExecuteMarkdownTemplate is returned when markdown template execution fails.
	ErrExecuteMarkdownTemplate = errors.New("execute markdown template")
	// ErrParseTemplate is returned when built-in or custom template parsing fails.
	ErrParseTemplate = errors.New("parse template")
	// ErrUnknownBuiltinTemplate is returned when requested built-in template name is not registered.
	ErrUnknownBuiltinTemplate = errors.New("unknown built-in template")
	// ErrUnknownExampleMode is returned when example mode is not supported.
	ErrUnknownExampleMode = errors.New("unknown example mode")
	// ErrUnknownExampleFormat is returned when example output format is not supported.
	ErrUnknownExampleFormat = errors.New("unknown example format")
	// ErrEncodeExample is returned when generated example payload encoding fails.
	ErrEncodeExample = errors.New("encode example")
	// ErrReadBuiltinTemplate is returned when built-in template file loading fails.
	ErrReadBuiltinTemplate = errors.New("read built-in template")
)
