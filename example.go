// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/openapi2md

package openapi2md

import (
	"bytes"
	"encoding/json"
	"fmt"
	"maps"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// ExampleModeAll builds example with all declared properties.
	ExampleModeAll ExampleMode = "all"
	// ExampleModeRequired builds example with required properties only.
	ExampleModeRequired ExampleMode = "required"
)

// ExampleMode configures example generation property coverage.
type ExampleMode string

const (
	// ExampleFormatJSON encodes example payload as JSON.
	ExampleFormatJSON ExampleFormat = "json"
	// ExampleFormatYAML encodes example payload as YAML.
	ExampleFormatYAML ExampleFormat = "yaml"
)

// ExampleFormat configures output format for generated example payload.
type ExampleFormat string

// ExampleOptions enables generated example payloads for models without an "example".
// The zero value disables them.
type ExampleOptions struct {
	Format ExampleFormat
	// Mode defaults to ExampleModeAll.
	Mode ExampleMode
}

// Enabled reports whether examples should be generated.
func (opt ExampleOptions) Enabled() bool {
	return strings.TrimSpace(string(opt.Format)) != ""
}

// exampleScalarPlaceholders provides fallback values for scalar schema types.
var exampleScalarPlaceholders = map[string]any{
	"string":  "<string>",
	"number":  0,
	"integer": 0,
	"boolean": false,
	"file":    "<binary>",
}

// exampleFormatPlaceholders refines string placeholders by Swagger 2.0 "format".
var exampleFormatPlaceholders = map[string]any{
	"byte":      "<base64>",
	"binary":    "<binary>",
	"date":      "2006-01-02",
	"date-time": "2006-01-02T15:04:05Z",
	"password":  "<password>",
	"email":     "user@example.com",
	"uuid":      "00000000-0000-0000-0000-000000000000",
	"uri":       "https://example.com",
}

// exampleBuilder converts schema objects into example values.
type exampleBuilder struct {
	root       map[string]any
	activeRefs map[string]int
	mode       ExampleMode
}

// GenerateExample builds an example payload for schema. References are
// resolved against root; a reference cycle yields null at the repeated node.
func GenerateExample(schema any, root map[string]any, mode ExampleMode) (any, error) {
	builder, err := newExampleBuilder(root, mode)
	if err != nil {
		return nil, err
	}

	return builder.buildNode(schema)
}

// RenderExample builds an example payload for schema and encodes it as a fenced code block.
// YAML output carries property descriptions as comments.
func RenderExample(schema any, root map[string]any, opt ExampleOptions) (string, error) {
	format, err := normalizeExampleFormat(opt.Format)
	if err != nil {
		return "", err
	}

	builder, err := newExampleBuilder(root, opt.Mode)
	if err != nil {
		return "", err
	}

	value, err := builder.buildNode(schema)
	if err != nil {
		return "", err
	}

	if format == ExampleFormatJSON {
		data, err := marshalExampleJSON(value)
		if err != nil {
			return "", fmt.Errorf("%w: %w", ErrEncodeExample, err)
		}

		return "```json\n" + strings.TrimRight(string(data), "\n") + "\n```", nil
	}

	rootNode, err := yamlNodeForValue(value)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrEncodeExample, err)
	}

	builder.annotateYAMLNode(rootNode, schema)

	data, err := marshalExampleYAMLNode(rootNode)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrEncodeExample, err)
	}

	return "```yaml\n" + strings.TrimRight(string(data), "\n") + "\n```", nil
}

// newExampleBuilder validates mode and prepares reference tracking.
func newExampleBuilder(root map[string]any, mode ExampleMode) (*exampleBuilder, error) {
	mode, err := normalizeExampleMode(mode)
	if err != nil {
		return nil, err
	}

	return &exampleBuilder{
		root:       root,
		mode:       mode,
		activeRefs: make(map[string]int),
	}, nil
}

// normalizeExampleMode validates and normalizes caller mode value.
func normalizeExampleMode(mode ExampleMode) (ExampleMode, error) {
	normalized := ExampleMode(strings.ToLower(strings.TrimSpace(string(mode))))
	switch normalized {
	case "":
		return ExampleModeAll, nil
	case ExampleModeAll, ExampleModeRequired:
		return normalized, nil
	default:
		return "", fmt.Errorf("%w %q", ErrUnknownExampleMode, mode)
	}
}

// normalizeExampleFormat validates and normalizes caller format value.
func normalizeExampleFormat(format ExampleFormat) (ExampleFormat, error) {
	normalized := ExampleFormat(strings.ToLower(strings.TrimSpace(string(format))))
	switch normalized {
	case ExampleFormatJSON, ExampleFormatYAML:
		return normalized, nil
	default:
		return "", fmt.Errorf("%w %q", ErrUnknownExampleFormat, format)
	}
}

// buildNode recursively builds example value for one schema node.
func (builder *exampleBuilder) buildNode(schema any) (any, error) {
	object, ok := schema.(map[string]any)
	if !ok {
		return nil, nil
	}

	resolved, release, err := builder.resolveReference(object)
	if err != nil {
		return nil, err
	}
	if release != nil {
		defer release()
	}
	if resolved == nil {
		return nil, nil
	}

	return builder.buildFromObject(resolved)
}

// buildFromObject builds example from a schema object without "$ref".
func (builder *exampleBuilder) buildFromObject(object map[string]any) (any, error) {
	if value, ok := explicitExampleValue(object); ok {
		return cloneValue(value), nil
	}

	if values, ok := object["enum"].([]any); ok && len(values) > 0 {
		return cloneValue(values[0]), nil
	}

	schemaType := asString(object["type"])
	properties, required, err := builder.collectObjectShape(object)
	if err != nil {
		return nil, err
	}

	if schemaType == "object" || len(properties) > 0 || len(required) > 0 {
		return builder.buildObjectFromShape(object, properties, required)
	}

	if schemaType == "array" {
		return builder.buildArrayFromObject(object)
	}

	if schemaType == "" {
		if _, ok := object["additionalProperties"].(map[string]any); ok {
			return builder.buildObjectFromShape(object, nil, nil)
		}
	}

	if schemaType == "string" {
		if value, ok := exampleFormatPlaceholders[asString(object["format"])]; ok {
			return value, nil
		}
	}

	if value, ok := exampleScalarPlaceholders[schemaType]; ok {
		return value, nil
	}

	return nil, nil
}

// buildObjectFromShape materializes object value from collected property shape.
func (builder *exampleBuilder) buildObjectFromShape(object map[string]any, properties map[string]any, required []string) (map[string]any, error) {
	out := make(map[string]any)

	order := sortedKeys(properties)
	if builder.mode == ExampleModeRequired {
		order = requiredPropertyOrder(required, properties)
	}

	for _, key := range order {
		value, err := builder.buildNode(properties[key])
		if err != nil {
			return nil, err
		}

		out[key] = value
	}

	if builder.mode == ExampleModeAll {
		if additional, ok := object["additionalProperties"].(map[string]any); ok {
			value, err := builder.buildNode(additional)
			if err != nil {
				return nil, err
			}

			out["<key>"] = value
		}
	}

	return out, nil
}

// buildArrayFromObject materializes array value with one item built from "items".
func (builder *exampleBuilder) buildArrayFromObject(object map[string]any) ([]any, error) {
	items, ok := object["items"].(map[string]any)
	if !ok {
		return []any{}, nil
	}

	item, err := builder.buildNode(items)
	if err != nil {
		return nil, err
	}

	return []any{item}, nil
}

// collectObjectShape returns merged object properties and required keys,
// including properties contributed by "allOf" members.
func (builder *exampleBuilder) collectObjectShape(object map[string]any) (map[string]any, []string, error) {
	properties, _ := object["properties"].(map[string]any)
	required := asStringSlice(object["required"])

	members, _ := object["allOf"].([]any)
	for _, member := range members {
		memberObject, ok := member.(map[string]any)
		if !ok {
			continue
		}

		resolved, release, err := builder.resolveReference(memberObject)
		if err != nil {
			return nil, nil, err
		}
		if resolved == nil {
			continue
		}

		nestedProperties, nestedRequired, err := builder.collectObjectShape(resolved)
		if release != nil {
			release()
		}
		if err != nil {
			return nil, nil, err
		}

		properties = mergePropertySchemas(properties, nestedProperties)
		required = mergeRequiredKeys(required, nestedRequired)
	}

	return properties, required, nil
}

// mergePropertySchemas merges schema property maps while preserving existing keys.
func mergePropertySchemas(left, right map[string]any) map[string]any {
	if len(left) == 0 && len(right) == 0 {
		return nil
	}

	out := make(map[string]any, len(left)+len(right))
	maps.Copy(out, left)

	for key, value := range right {
		if _, exists := out[key]; exists {
			continue
		}

		out[key] = value
	}

	return out
}

// mergeRequiredKeys appends unique required keys while preserving first-seen order.
func mergeRequiredKeys(left, right []string) []string {
	if len(left) == 0 && len(right) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(left)+len(right))
	out := make([]string, 0, len(left)+len(right))

	for _, key := range append(append([]string{}, left...), right...) {
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}

		if _, exists := seen[key]; exists {
			continue
		}

		seen[key] = struct{}{}
		out = append(out, key)
	}

	return out
}

// requiredPropertyOrder returns declared properties listed in required, in required order.
func requiredPropertyOrder(required []string, properties map[string]any) []string {
	if len(required) == 0 || len(properties) == 0 {
		return nil
	}

	out := make([]string, 0, len(required))
	seen := make(map[string]struct{}, len(required))
	for _, key := range required {
		if _, exists := properties[key]; !exists {
			continue
		}

		if _, exists := seen[key]; exists {
			continue
		}

		seen[key] = struct{}{}
		out = append(out, key)
	}

	return out
}

// resolveReference follows "$ref" of object and merges sibling keywords over the target.
// A nil object with nil error means the reference is already being expanded.
func (builder *exampleBuilder) resolveReference(object map[string]any) (map[string]any, func(), error) {
	ref := refOf(object)
	if ref == "" {
		return object, nil, nil
	}

	if builder.activeRefs[ref] > 0 {
		return nil, nil, nil
	}

	target, err := ResolveRef(ref, builder.root)
	if err != nil {
		return nil, nil, err
	}

	builder.activeRefs[ref]++
	release := func() {
		builder.activeRefs[ref]--
		if builder.activeRefs[ref] <= 0 {
			delete(builder.activeRefs, ref)
		}
	}

	return mergeSchemaObjects(asObject(target), object), release, nil
}

// explicitExampleValue returns preferred explicit example value from schema object.
func explicitExampleValue(object map[string]any) (any, bool) {
	if value, ok := object["example"]; ok {
		return value, true
	}

	if value, ok := object["default"]; ok {
		return value, true
	}

	return nil, false
}

// mergeSchemaObjects merges resolved reference object with sibling keyword overrides.
func mergeSchemaObjects(base, overlay map[string]any) map[string]any {
	out := make(map[string]any, len(base)+len(overlay))
	maps.Copy(out, base)

	for key, value := range overlay {
		if key == "$ref" {
			continue
		}

		out[key] = value
	}

	return out
}

// marshalExampleJSON serializes example payload as pretty JSON.
func marshalExampleJSON(value any) ([]byte, error) {
	var out bytes.Buffer
	encoder := json.NewEncoder(&out)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "    ")

	if err := encoder.Encode(value); err != nil {
		return nil, err
	}

	return out.Bytes(), nil
}

// marshalExampleYAMLNode serializes example payload as YAML.
func marshalExampleYAMLNode(node *yaml.Node) ([]byte, error) {
	document := &yaml.Node{
		Kind:    yaml.DocumentNode,
		Content: []*yaml.Node{node},
	}

	var out bytes.Buffer
	encoder := yaml.NewEncoder(&out)
	encoder.SetIndent(2)

	if err := encoder.Encode(document); err != nil {
		return nil, err
	}

	if err := encoder.Close(); err != nil {
		return nil, err
	}

	return out.Bytes(), nil
}

// annotateYAMLNode assigns property title/description comments to YAML map keys.
func (builder *exampleBuilder) annotateYAMLNode(node *yaml.Node, schema any) {
	object, ok := schema.(map[string]any)
	if !ok {
		return
	}

	resolved, release, err := builder.resolveReference(object)
	if err != nil || resolved == nil {
		return
	}
	if release != nil {
		defer release()
	}

	switch node.Kind {
	case yaml.MappingNode:
		properties, _, err := builder.collectObjectShape(resolved)
		if err != nil {
			return
		}

		for index := 0; index+1 < len(node.Content); index += 2 {
			keyNode := node.Content[index]
			valueNode := node.Content[index+1]

			property, ok := properties[keyNode.Value].(map[string]any)
			if !ok {
				continue
			}

			if comment := schemaKeyComment(builder.describedSchema(property)); comment != "" {
				keyNode.HeadComment = comment
			}

			builder.annotateYAMLNode(valueNode, property)
		}
	case yaml.SequenceNode:
		for _, item := range node.Content {
			builder.annotateYAMLNode(item, resolved["items"])
		}
	}
}

// describedSchema returns the property schema itself when it carries a
// description, otherwise its reference target.
func (builder *exampleBuilder) describedSchema(property map[string]any) map[string]any {
	if asString(property["title"]) != "" || asString(property["description"]) != "" {
		return property
	}

	ref := refOf(property)
	if ref == "" || builder.activeRefs[ref] > 0 {
		return property
	}

	target, err := ResolveRef(ref, builder.root)
	if err != nil {
		return property
	}

	return asObject(target)
}

// schemaKeyComment builds YAML key comment from schema title and description.
func schemaKeyComment(object map[string]any) string {
	title := strings.TrimSpace(asString(object["title"]))
	description := strings.TrimSpace(asString(object["description"]))

	switch {
	case title == "" && description == "":
		return ""
	case title == "":
		return normalizeYAMLComment(description)
	case description == "":
		return normalizeYAMLComment(title)
	default:
		if title == description {
			return normalizeYAMLComment(title)
		}

		return normalizeYAMLComment(title + "\n" + description)
	}
}

// normalizeYAMLComment drops blank lines from comment body.
func normalizeYAMLComment(comment string) string {
	lines := strings.Split(normalizeLineEndings(comment), "\n")
	normalized := make([]string, 0, len(lines))
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}

		normalized = append(normalized, line)
	}

	return strings.Join(normalized, "\n")
}

// yamlNodeForValue builds deterministic yaml.Node tree from JSON-like value.
func yamlNodeForValue(value any) (*yaml.Node, error) {
	switch typed := value.(type) {
	case nil:
		return yamlScalarNode("!!null", "null"), nil

	case bool:
		return yamlScalarNode("!!bool", strconv.FormatBool(typed)), nil

	case string:
		return yamlScalarNode("!!str", typed), nil

	case int:
		return yamlScalarNode("!!int", strconv.Itoa(typed)), nil

	case int64:
		return yamlScalarNode("!!int", strconv.FormatInt(typed, 10)), nil

	case uint64:
		return yamlScalarNode("!!int", strconv.FormatUint(typed, 10)), nil

	case float64:
		return yamlScalarNode("!!float", strconv.FormatFloat(typed, 'g', -1, 64)), nil

	case map[string]any:
		node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, key := range sortedKeys(typed) {
			valueNode, err := yamlNodeForValue(typed[key])
			if err != nil {
				return nil, err
			}
			node.Content = append(node.Content, yamlScalarNode("!!str", key), valueNode)
		}
		return node, nil

	case []any:
		node := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, item := range typed {
			valueNode, err := yamlNodeForValue(item)
			if err != nil {
				return nil, err
			}
			node.Content = append(node.Content, valueNode)
		}
		return node, nil

	default:
		data, err := json.Marshal(typed)
		if err != nil {
			return nil, err
		}
		var normalized any
		if err := json.Unmarshal(data, &normalized); err != nil {
			return nil, err
		}
		return yamlNodeForValue(normalized)
	}
}

// yamlScalarNode creates one scalar yaml.Node with explicit tag.
func yamlScalarNode(tag, value string) *yaml.Node {
	return &yaml.Node{
		Kind:  yaml.ScalarNode,
		Tag:   tag,
		Value: value,
	}
}
