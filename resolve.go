// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/openapi2md

package openapi2md

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
)

// ResolveRef resolves a local JSON pointer reference ("#/a/b/c") against root.
//
// Remote references are not supported: a warning is logged and an empty
// object is returned so rendering can continue. A missing final segment
// yields nil with no error. A missing intermediate segment, or a step into a
// scalar, is an error wrapping ErrResolveReference.
func ResolveRef(ref string, root map[string]any) (any, error) {
	ref = strings.TrimSpace(ref)
	if !strings.HasPrefix(ref, "#") {
		slog.Warn("remote references are not supported, reference must start with \"#\"", "ref", ref)
		return map[string]any{}, nil
	}

	_, fragment, _ := strings.Cut(ref, "#")
	fragment, _, _ = strings.Cut(fragment, "#")

	var tokens []string
	for token := range strings.SplitSeq(fragment, "/") {
		if strings.TrimSpace(token) != "" {
			tokens = append(tokens, decodePointerToken(token))
		}
	}

	var current any = root
	for index, token := range tokens {
		last := index == len(tokens)-1

		switch typed := current.(type) {
		case map[string]any:
			next, ok := typed[token]
			if !ok {
				if last {
					slog.Debug("reference target is undefined", "ref", ref)
					return nil, nil
				}

				return nil, fmt.Errorf("%w %q: %q is undefined", ErrResolveReference, ref, token)
			}

			current = next
		case []any:
			position, err := strconv.Atoi(token)
			if err != nil || position < 0 || position >= len(typed) {
				if last {
					slog.Debug("reference target is undefined", "ref", ref)
					return nil, nil
				}

				return nil, fmt.Errorf("%w %q: index %q is out of range", ErrResolveReference, ref, token)
			}

			current = typed[position]
		default:
			return nil, fmt.Errorf("%w %q: cannot traverse %T at %q", ErrResolveReference, ref, current, token)
		}
	}

	return current, nil
}

// SubschemaName extracts the definition name from a "#/definitions/..." reference.
func SubschemaName(ref string) string {
	return strings.Replace(ref, "#/definitions/", "", 1)
}

// decodePointerToken unescapes one JSON pointer token.
func decodePointerToken(token string) string {
	token = strings.ReplaceAll(token, "~1", "/")
	token = strings.ReplaceAll(token, "~0", "~")
	return token
}
