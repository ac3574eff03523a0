// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/openapi2md

package openapi2md

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
)

const (
	// integerSet is ELEMENT OF, DOUBLE-STRUCK CAPITAL Z.
	integerSet = "∈ ℤ"
	// realSet is ELEMENT OF, DOUBLE-STRUCK CAPITAL R.
	realSet = "∈ ℝ"
)

// DataType returns a descriptive type label such as "string[]" or "object[][]".
//
// ok is false when schema is absent. Compositions (anyOf, allOf, oneOf) have
// no primitive label and yield an empty string.
func DataType(schema any) (label string, ok bool) {
	object, isObject := schema.(map[string]any)
	if !isObject || object == nil {
		return "", false
	}

	for _, keyword := range []string{"anyOf", "allOf", "oneOf"} {
		if truthy(object[keyword]) {
			return "", true
		}
	}

	schemaType := asString(object["type"])
	if schemaType == "" {
		return "object", true
	}

	if schemaType != "array" {
		return schemaType, true
	}

	items, hasItems := object["items"].(map[string]any)
	if !hasItems {
		if truthy(object["items"]) {
			return "object[]", true
		}

		return "array", true
	}

	if asString(items["type"]) == "" {
		return "object[]", true
	}

	inner, _ := DataType(items)
	return inner + "[]", true
}

// Range renders minimum/maximum constraints in set-builder notation,
// for example ", { x ∈ ℤ | 0 ≤ x < 10 }". It is empty without bounds.
func Range(schema any) string {
	object, ok := schema.(map[string]any)
	if !ok {
		return ""
	}

	minimum, hasMinimum := object["minimum"]
	maximum, hasMaximum := object["maximum"]
	hasMinimum = hasMinimum && minimum != nil
	hasMaximum = hasMaximum && maximum != nil

	if !hasMinimum && !hasMaximum {
		return ""
	}

	variable := "x"
	switch asString(object["type"]) {
	case "integer":
		variable = "x " + integerSet
	case "number":
		variable = "x " + realSet
	}

	minExclusive := flagSet(object, "minimumExclusive", "exclusiveMinimum")
	maxExclusive := flagSet(object, "maximumExclusive", "exclusiveMaximum")

	switch {
	case hasMinimum && !hasMaximum:
		return fmt.Sprintf(", { %s | x %s %s }", variable, pick(minExclusive, ">", "≥"), formatNumber(minimum))
	case hasMaximum && !hasMinimum:
		return fmt.Sprintf(", { %s | x %s %s }", variable, pick(maxExclusive, "<", "≤"), formatNumber(maximum))
	default:
		return fmt.Sprintf(", { %s | %s %s x %s %s }",
			variable,
			formatNumber(minimum),
			pick(minExclusive, "<", "≤"),
			pick(maxExclusive, "<", "≤"),
			formatNumber(maximum))
	}
}

// constraintKeywords lists validation keywords summarized by Constraints, in output order.
var constraintKeywords = []string{
	"format",
	"enum",
	"default",
	"pattern",
	"minLength",
	"maxLength",
	"minItems",
	"maxItems",
	"uniqueItems",
	"multipleOf",
}

// Constraints lists validation keywords of schema as "keyword: value" items.
// Numeric bounds are covered by Range and are not repeated here.
func Constraints(schema any) []string {
	object, ok := schema.(map[string]any)
	if !ok {
		return nil
	}

	out := make([]string, 0, len(constraintKeywords))
	for _, keyword := range constraintKeywords {
		value, exists := object[keyword]
		if !exists || value == nil {
			continue
		}

		switch keyword {
		case "format":
			out = append(out, keyword+": "+asString(value))
		case "enum":
			items, _ := value.([]any)
			parts := make([]string, 0, len(items))
			for _, item := range items {
				parts = append(parts, inlineCode(mustJSONInline(item)))
			}

			out = append(out, keyword+": "+strings.Join(parts, ", "))
		default:
			out = append(out, keyword+": "+inlineCode(mustJSONInline(value)))
		}
	}

	return out
}

// PropertyOrder returns required properties first in declared order, then the rest sorted.
func PropertyOrder(schema any) []string {
	object, ok := schema.(map[string]any)
	if !ok {
		return nil
	}

	properties, _ := object["properties"].(map[string]any)
	if len(properties) == 0 {
		return nil
	}

	out := make([]string, 0, len(properties))
	for _, name := range asStringSlice(object["required"]) {
		if _, exists := properties[name]; !exists || slices.Contains(out, name) {
			continue
		}

		out = append(out, name)
	}

	for _, name := range sortedKeys(properties) {
		if !slices.Contains(out, name) {
			out = append(out, name)
		}
	}

	return out
}

// IsRequired reports whether property name is listed in schema "required".
func IsRequired(schema any, name string) bool {
	object, ok := schema.(map[string]any)
	if !ok {
		return false
	}

	return slices.Contains(asStringSlice(object["required"]), name)
}

// flagSet reports whether any of the boolean keywords is true.
func flagSet(object map[string]any, keywords ...string) bool {
	for _, keyword := range keywords {
		if value, ok := object[keyword].(bool); ok && value {
			return true
		}
	}

	return false
}

// pick returns a when cond holds, otherwise b.
func pick(cond bool, a, b string) string {
	if cond {
		return a
	}

	return b
}

// formatNumber renders a JSON number without exponent or trailing zeros.
func formatNumber(value any) string {
	number, ok := toFloat(value)
	if !ok {
		return fmt.Sprintf("%v", value)
	}

	if number == math.Trunc(number) && math.Abs(number) < 1e15 {
		return strconv.FormatInt(int64(number), 10)
	}

	return strconv.FormatFloat(number, 'f', -1, 64)
}

// toFloat converts numeric values produced by YAML/JSON decoding.
func toFloat(value any) (float64, bool) {
	switch typed := value.(type) {
	case int:
		return float64(typed), true
	case int8:
		return float64(typed), true
	case int16:
		return float64(typed), true
	case int32:
		return float64(typed), true
	case int64:
		return float64(typed), true
	case uint:
		return float64(typed), true
	case uint8:
		return float64(typed), true
	case uint16:
		return float64(typed), true
	case uint32:
		return float64(typed), true
	case uint64:
		return float64(typed), true
	case float32:
		return float64(typed), true
	case float64:
		return typed, true
	default:
		return 0, false
	}
}

// truthy mirrors loose truthiness of JSON values: nil, false, 0 and "" are false.
func truthy(value any) bool {
	switch typed := value.(type) {
	case nil:
		return false
	case bool:
		return typed
	case string:
		return typed != ""
	default:
		if number, ok := toFloat(value); ok {
			return number != 0
		}

		return true
	}
}

// asString returns value when it is a string.
func asString(value any) string {
	text, _ := value.(string)
	return text
}

// asStringSlice returns string items of a JSON array.
func asStringSlice(value any) []string {
	switch typed := value.(type) {
	case []string:
		return typed
	case []any:
		out := make([]string, 0, len(typed))
		for _, item := range typed {
			if text, ok := item.(string); ok {
				out = append(out, text)
			}
		}

		return out
	default:
		return nil
	}
}
