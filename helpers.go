// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/openapi2md

package openapi2md

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Entry is one item of a sorted map iteration with its position metadata.
type Entry struct {
	Key    string
	Value  any
	Index  int
	Length int
	First  bool
	Last   bool
}

// htmlIDInvalid matches characters that may not appear in HTML id attributes.
var htmlIDInvalid = regexp.MustCompile(`[^A-Za-z0-9\-_:.]`)

// collectionFormats describes array serialization styles of Swagger 2.0 parameters.
var collectionFormats = map[string]string{
	"csv":   "comma separated (`%[1]s=aaa,bbb`)",
	"ssv":   "space separated (`%[1]s=aaa bbb`)",
	"tsv":   "tab separated (`%[1]s=aaa\\tbbb`)",
	"pipes": "pipe separated (`%[1]s=aaa|bbb`)",
	"multi": "multiple parameters (`%[1]s=aaa&%[1]s=bbb`)",
}

// Upper converts text to upper case.
func Upper(value string) string {
	if value == "" {
		return ""
	}

	return cases.Upper(language.Und).String(value)
}

// SortedEntries returns map entries ordered by case-insensitive key.
// Keys that fold to the same text keep byte order. Non-map values yield nil.
func SortedEntries(value any) []Entry {
	object, ok := value.(map[string]any)
	if !ok || len(object) == 0 {
		return nil
	}

	folder := cases.Fold()
	folded := make(map[string]string, len(object))
	keys := make([]string, 0, len(object))
	for key := range object {
		keys = append(keys, key)
		folded[key] = folder.String(key)
	}

	sort.Slice(keys, func(i, j int) bool {
		left, right := folded[keys[i]], folded[keys[j]]
		if left != right {
			return left < right
		}

		return keys[i] < keys[j]
	})

	out := make([]Entry, 0, len(keys))
	for index, key := range keys {
		out = append(out, Entry{
			Key:    key,
			Value:  object[key],
			Index:  index,
			Length: len(keys),
			First:  index == 0,
			Last:   index == len(keys)-1,
		})
	}

	return out
}

// LooseEqual compares values the way loosely typed documents expect:
// numbers compare numerically and a numeric string equals the same number.
// A bool against a number counts as 1 or 0; against a string it compares by
// text, so true equals "true" but not "1". Other scalars compare by their
// text form.
func LooseEqual(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	leftNumber, leftIsNumber := looseNumber(a)
	rightNumber, rightIsNumber := looseNumber(b)

	if flag, ok := a.(bool); ok && rightIsNumber {
		if _, isString := b.(string); !isString {
			return boolNumber(flag) == rightNumber
		}
	}
	if flag, ok := b.(bool); ok && leftIsNumber {
		if _, isString := a.(string); !isString {
			return boolNumber(flag) == leftNumber
		}
	}

	if leftIsNumber && rightIsNumber {
		_, leftIsString := a.(string)
		_, rightIsString := b.(string)
		if !leftIsString || !rightIsString {
			return leftNumber == rightNumber
		}
	}

	if !isScalar(a) || !isScalar(b) {
		return false
	}

	return fmt.Sprint(a) == fmt.Sprint(b)
}

func boolNumber(flag bool) float64 {
	if flag {
		return 1
	}

	return 0
}

// Contains reports whether sequence holds an item strictly equal to value.
func Contains(sequence, value any) bool {
	switch typed := sequence.(type) {
	case []any:
		for _, item := range typed {
			if strictEqual(item, value) {
				return true
			}
		}
	case []string:
		text, ok := value.(string)
		if !ok {
			return false
		}

		for _, item := range typed {
			if item == text {
				return true
			}
		}
	}

	return false
}

// HTMLID replaces every character not allowed in HTML id attributes with "-".
// A legal leading character is not enforced.
func HTMLID(value string) string {
	return htmlIDInvalid.ReplaceAllString(value, "-")
}

// StableJSON renders value as sorted, 4-space indented JSON in a fenced code block.
func StableJSON(value any) (string, error) {
	if !truthy(value) {
		return "", nil
	}

	var out bytes.Buffer
	encoder := json.NewEncoder(&out)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "    ")
	if err := encoder.Encode(value); err != nil {
		return "", fmt.Errorf("encode json: %w", err)
	}

	return "```json\n" + strings.TrimRight(out.String(), "\n") + "\n```", nil
}

// StatusText returns the reason phrase for an HTTP status code such as "404".
// Unknown codes and "default" yield an empty string.
func StatusText(code any) string {
	text := strings.TrimSpace(fmt.Sprint(code))
	number, err := strconv.Atoi(text)
	if err != nil {
		return ""
	}

	if number == 306 {
		return "(Unused)"
	}

	return http.StatusText(number)
}

// CollectionFormat describes how array parameter values are serialized.
func CollectionFormat(format, paramName string) string {
	pattern, ok := collectionFormats[format]
	if !ok {
		return ""
	}

	return fmt.Sprintf(pattern, paramName)
}

// looseNumber converts numbers and numeric strings to float64.
func looseNumber(value any) (float64, bool) {
	if number, ok := toFloat(value); ok {
		return number, true
	}

	text, ok := value.(string)
	if !ok {
		return 0, false
	}

	number, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil {
		return 0, false
	}

	return number, true
}

// strictEqual compares scalars of the same kind; maps and slices never match.
func strictEqual(a, b any) bool {
	switch typed := a.(type) {
	case nil:
		return b == nil
	case string:
		other, ok := b.(string)
		return ok && typed == other
	case bool:
		other, ok := b.(bool)
		return ok && typed == other
	default:
		left, leftOK := toFloat(a)
		right, rightOK := toFloat(b)
		return leftOK && rightOK && left == right
	}
}

// isScalar reports whether value is a JSON scalar.
func isScalar(value any) bool {
	switch value.(type) {
	case map[string]any, []any, []string:
		return false
	default:
		return true
	}
}
