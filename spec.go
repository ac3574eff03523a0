// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/openapi2md

package openapi2md

import (
	"bytes"
	"fmt"
	"slices"
	"sort"

	"gopkg.in/yaml.v3"
)

// httpMethods lists operation keys recognized on a path item, in canonical order.
var httpMethods = []string{"get", "put", "post", "delete", "options", "head", "patch"}

// Specification is a decoded OpenAPI 2.0 document.
//
// Raw holds the whole document as a JSON-like tree where every mapping key
// is a string. Paths keeps path items in source key order, which the
// preprocessor uses as traversal order.
type Specification struct {
	Raw   map[string]any
	Paths []PathEntry
}

// PathEntry is one entry of the "paths" object with its keys in source order.
type PathEntry struct {
	Path   string
	Keys   []string
	Fields map[string]any
}

// NewSpecification wraps an already decoded document.
//
// Plain Go maps carry no key order, so paths are taken in sorted order and
// path item keys in canonical HTTP method order followed by remaining keys sorted.
func NewSpecification(raw map[string]any) *Specification {
	if raw == nil {
		raw = map[string]any{}
	}

	spec := &Specification{Raw: raw}

	paths, _ := raw["paths"].(map[string]any)
	for _, path := range sortedKeys(paths) {
		item, ok := paths[path].(map[string]any)
		if !ok {
			continue
		}

		spec.Paths = append(spec.Paths, PathEntry{
			Path:   path,
			Keys:   canonicalPathItemKeys(item),
			Fields: item,
		})
	}

	return spec
}

// ParseSpecification decodes YAML or JSON specification bytes.
func ParseSpecification(data []byte) (*Specification, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, ErrEmptySpec
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecodeSpec, err)
	}

	root := unwrapNode(&doc)
	if root == nil {
		return nil, ErrEmptySpec
	}

	if root.Kind != yaml.MappingNode {
		return nil, ErrSpecRootType
	}

	rawValues, err := decodeMapping(root)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecodeSpec, err)
	}

	spec := &Specification{Raw: rawValues}

	pathsNode := mappingValue(root, "paths")
	if pathsNode == nil || pathsNode.Kind != yaml.MappingNode {
		return spec, nil
	}

	rawPaths, _ := rawValues["paths"].(map[string]any)
	for _, path := range mappingKeys(pathsNode) {
		item, ok := rawPaths[path].(map[string]any)
		if !ok {
			continue
		}

		spec.Paths = append(spec.Paths, PathEntry{
			Path:   path,
			Keys:   mappingKeys(mappingValue(pathsNode, path)),
			Fields: item,
		})
	}

	return spec, nil
}

// DeclaredTags returns the top-level "tags" objects in declared order.
func (spec *Specification) DeclaredTags() []map[string]any {
	if spec == nil {
		return nil
	}

	items, _ := spec.Raw["tags"].([]any)
	out := make([]map[string]any, 0, len(items))
	for _, item := range items {
		if tag, ok := item.(map[string]any); ok {
			out = append(out, tag)
		}
	}

	return out
}

// unwrapNode follows document and alias nodes to the content node.
func unwrapNode(node *yaml.Node) *yaml.Node {
	for node != nil {
		switch node.Kind {
		case yaml.DocumentNode:
			if len(node.Content) == 0 {
				return nil
			}

			node = node.Content[0]
		case yaml.AliasNode:
			node = node.Alias
		default:
			return node
		}
	}

	return nil
}

// mappingValue finds the value node for key, the last duplicate wins over merged keys.
func mappingValue(node *yaml.Node, key string) *yaml.Node {
	node = unwrapNode(node)
	if node == nil || node.Kind != yaml.MappingNode {
		return nil
	}

	for i := len(node.Content) - 2; i >= 0; i -= 2 {
		if node.Content[i].Value == key && node.Content[i].ShortTag() != "!!merge" {
			return unwrapNode(node.Content[i+1])
		}
	}

	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].ShortTag() != "!!merge" {
			continue
		}

		for _, merged := range mergeSources(node.Content[i+1]) {
			if found := mappingValue(merged, key); found != nil {
				return found
			}
		}
	}

	return nil
}

// mappingKeys lists mapping keys in source order, merged keys after own keys.
func mappingKeys(node *yaml.Node) []string {
	node = unwrapNode(node)
	if node == nil || node.Kind != yaml.MappingNode {
		return nil
	}

	out := make([]string, 0, len(node.Content)/2)
	var merges []*yaml.Node
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].ShortTag() == "!!merge" {
			merges = append(merges, node.Content[i+1])
			continue
		}

		if !slices.Contains(out, node.Content[i].Value) {
			out = append(out, node.Content[i].Value)
		}
	}

	for _, mergeNode := range merges {
		for _, source := range mergeSources(mergeNode) {
			for _, key := range mappingKeys(source) {
				if !slices.Contains(out, key) {
					out = append(out, key)
				}
			}
		}
	}

	return out
}

// decodeNode converts a YAML node into JSON-like Go values.
func decodeNode(node *yaml.Node) (any, error) {
	node = unwrapNode(node)
	if node == nil {
		return nil, nil
	}

	switch node.Kind {
	case yaml.MappingNode:
		return decodeMapping(node)
	case yaml.SequenceNode:
		out := make([]any, 0, len(node.Content))
		for _, child := range node.Content {
			value, err := decodeNode(child)
			if err != nil {
				return nil, err
			}

			out = append(out, value)
		}

		return out, nil
	case yaml.ScalarNode:
		var value any
		if err := node.Decode(&value); err != nil {
			return nil, fmt.Errorf("line %d: %w", node.Line, err)
		}

		return value, nil
	default:
		return nil, fmt.Errorf("line %d: unsupported yaml node kind %d", node.Line, node.Kind)
	}
}

// decodeMapping decodes a mapping node into string-keyed values.
// Non-string keys (for example integer response codes) use their literal text.
func decodeMapping(node *yaml.Node) (map[string]any, error) {
	node = unwrapNode(node)
	if node == nil || node.Kind != yaml.MappingNode {
		return map[string]any{}, nil
	}

	values := make(map[string]any, len(node.Content)/2)
	var merges []*yaml.Node

	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode := node.Content[i]
		if keyNode.ShortTag() == "!!merge" {
			merges = append(merges, node.Content[i+1])
			continue
		}

		value, err := decodeNode(node.Content[i+1])
		if err != nil {
			return nil, err
		}

		values[keyNode.Value] = value
	}

	for _, mergeNode := range merges {
		for _, source := range mergeSources(mergeNode) {
			merged, err := decodeMapping(source)
			if err != nil {
				return nil, err
			}

			for key, value := range merged {
				if _, exists := values[key]; !exists {
					values[key] = value
				}
			}
		}
	}

	return values, nil
}

// mergeSources expands a "<<" value into the mapping nodes it refers to.
func mergeSources(node *yaml.Node) []*yaml.Node {
	node = unwrapNode(node)
	if node == nil {
		return nil
	}

	if node.Kind == yaml.SequenceNode {
		out := make([]*yaml.Node, 0, len(node.Content))
		for _, child := range node.Content {
			if resolved := unwrapNode(child); resolved != nil {
				out = append(out, resolved)
			}
		}

		return out
	}

	return []*yaml.Node{node}
}

// canonicalPathItemKeys orders path item keys for maps without source order.
func canonicalPathItemKeys(item map[string]any) []string {
	out := make([]string, 0, len(item))
	for _, method := range httpMethods {
		if _, ok := item[method]; ok {
			out = append(out, method)
		}
	}

	for _, key := range sortedKeys(item) {
		if !slices.Contains(httpMethods, key) {
			out = append(out, key)
		}
	}

	return out
}

// sortedKeys returns map keys in byte order.
func sortedKeys(values map[string]any) []string {
	out := make([]string, 0, len(values))
	for key := range values {
		out = append(out, key)
	}

	sort.Strings(out)
	return out
}

// cloneValue deep-copies maps and slices of a JSON-like tree.
func cloneValue(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		out := make(map[string]any, len(typed))
		for key, item := range typed {
			out[key] = cloneValue(item)
		}

		return out
	case []any:
		out := make([]any, 0, len(typed))
		for _, item := range typed {
			out = append(out, cloneValue(item))
		}

		return out
	case []string:
		return slices.Clone(typed)
	default:
		return typed
	}
}
