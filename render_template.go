// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/openapi2md

package openapi2md

import (
	"embed"
	"errors"
	"fmt"
	"path"
	"slices"
	"sort"
	"strings"
	"sync"
	"text/template"
)

// templateFS stores built-in markdown templates embedded into the package.
//
//go:embed templates/*.md.gotmpl templates/partials/*.md.gotmpl
var templateFS embed.FS

const (
	mainTemplateName = "main"
	mainTemplateFile = "templates/main.md.gotmpl"
	partialsPattern  = "templates/partials/*.md.gotmpl"
	templateSuffix   = ".md.gotmpl"
)

// partialNames lists the sub-templates rendered by the main template.
var partialNames = []string{
	"datatype",
	"list-of-labels",
	"model",
	"operation",
	"parameter-row",
	"parameters",
	"path",
	"paths",
	"request-body",
	"response",
	"responses",
	"security",
}

// builtinTemplateSet parses partials and main template once per process.
// The result is read-only; renders execute it directly or a clone of it.
var builtinTemplateSet = sync.OnceValues(func() (*template.Template, error) {
	mainText, err := templateFS.ReadFile(mainTemplateFile)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadBuiltinTemplate, err)
	}

	set, err := template.New(mainTemplateName).Funcs(templateFuncs()).ParseFS(templateFS, partialsPattern)
	if err != nil {
		return nil, fmt.Errorf("%w: partials: %w", ErrParseTemplate, err)
	}

	if _, err := set.Parse(string(mainText)); err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrParseTemplate, mainTemplateName, err)
	}

	for _, name := range partialNames {
		if set.Lookup(name) == nil {
			return nil, fmt.Errorf("%w: partial %q is not defined", ErrParseTemplate, name)
		}
	}

	return set, nil
})

// resolveTemplate returns the built-in template set, with main replaced by custom text when given.
func resolveTemplate(opt Options) (*template.Template, error) {
	set, err := builtinTemplateSet()
	if err != nil {
		return nil, err
	}

	customText := strings.TrimSpace(opt.TemplateText)
	if customText == "" {
		return set, nil
	}

	custom, err := set.Clone()
	if err != nil {
		return nil, fmt.Errorf("%w: clone built-in set: %w", ErrParseTemplate, err)
	}

	if _, err := custom.Parse(opt.TemplateText); err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrParseTemplate, "custom", err)
	}

	return custom, nil
}

// BuiltinTemplateNames returns the main template name followed by partial names, sorted.
func BuiltinTemplateNames() []string {
	names := append([]string{}, partialNames...)
	sort.Strings(names)
	return append([]string{mainTemplateName}, names...)
}

// BuiltinTemplate returns the source text of one built-in template by name.
func BuiltinTemplate(name string) (string, error) {
	name = normalizeTemplateName(name)
	if name == "" {
		name = mainTemplateName
	}

	file := mainTemplateFile
	if name != mainTemplateName {
		if !slices.Contains(partialNames, name) {
			return "", fmt.Errorf("%w %q", ErrUnknownBuiltinTemplate, name)
		}

		file = path.Join("templates", "partials", name+templateSuffix)
	}

	data, err := templateFS.ReadFile(file)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrReadBuiltinTemplate, err)
	}

	return string(data), nil
}

// normalizeTemplateName normalizes built-in template identifiers.
func normalizeTemplateName(name string) string {
	return strings.TrimSuffix(strings.ToLower(strings.TrimSpace(name)), templateSuffix)
}

// templateFuncs provides the helpers available inside markdown templates.
// Arguments are loosely typed because document values come from decoded YAML or JSON.
func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"upper":         func(value any) string { return Upper(toText(value)) },
		"sortedEntries": SortedEntries,
		"equal":         LooseEqual,
		"ifEqual": func(a, b, then, otherwise any) any {
			return pickValue(LooseEqual(a, b), then, otherwise)
		},
		"contains": Contains,
		"ifContains": func(sequence, value, then, otherwise any) any {
			return pickValue(Contains(sequence, value), then, otherwise)
		},
		"htmlId":     func(value any) string { return HTMLID(toText(value)) },
		"json":       StableJSON,
		"statusText": StatusText,
		"collectionFormat": func(format, name any) string {
			return CollectionFormat(toText(format), toText(name))
		},
		"dataType": func(schema any) string {
			label, _ := DataType(schema)
			return label
		},
		"numberRange":   Range,
		"constraints":   Constraints,
		"propertyOrder": PropertyOrder,
		"isRequired":    func(schema, name any) bool { return IsRequired(schema, toText(name)) },
		"property":      schemaProperty,
		"resolveRef":    resolveRefFunc,
		"resolveSchema": resolveSchema,
		"refOf":         refOf,
		"subschemaName": func(ref any) string { return SubschemaName(toText(ref)) },
		"asObject":      asObject,
		"dict":          dict,
		"code":          inlineCode,
		"escapeCell":    func(value any) string { return escapeCell(toText(value)) },
		"yesNo":         func(value any) string { return yesNo(truthy(value)) },
		"example":       renderExampleFunc,
	}
}

// resolveRefFunc resolves a reference against the document root passed by the template.
func resolveRefFunc(ref any, root any) (any, error) {
	return ResolveRef(toText(ref), asObject(root))
}

// renderExampleFunc renders a generated example block for schema with settings from the view.
func renderExampleFunc(schema any, root any, settings any) (string, error) {
	opt, _ := settings.(ExampleOptions)
	if !opt.Enabled() {
		return "", nil
	}

	return RenderExample(schema, asObject(root), opt)
}

// resolveSchema follows a "$ref" of schema when present and always returns an object.
func resolveSchema(schema any, root any) (map[string]any, error) {
	object := asObject(schema)
	ref := refOf(object)
	if ref == "" {
		return object, nil
	}

	resolved, err := ResolveRef(ref, asObject(root))
	if err != nil {
		return nil, err
	}

	return asObject(resolved), nil
}

// schemaProperty returns the named property schema of an object schema.
func schemaProperty(schema any, name any) map[string]any {
	properties, _ := asObject(schema)["properties"].(map[string]any)
	return asObject(properties[toText(name)])
}

// refOf returns the "$ref" value of a schema-like object.
func refOf(schema any) string {
	object, ok := schema.(map[string]any)
	if !ok {
		return ""
	}

	return strings.TrimSpace(asString(object["$ref"]))
}

// asObject returns value as object, or an empty object for anything else.
func asObject(value any) map[string]any {
	object, ok := value.(map[string]any)
	if !ok || object == nil {
		return map[string]any{}
	}

	return object
}

// dict builds a map from alternating key/value arguments for passing several values to a partial.
func dict(pairs ...any) (map[string]any, error) {
	if len(pairs)%2 != 0 {
		return nil, errors.New("dict requires an even number of arguments")
	}

	out := make(map[string]any, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		key, ok := pairs[i].(string)
		if !ok {
			return nil, fmt.Errorf("dict key %d must be a string, got %T", i/2, pairs[i])
		}

		out[key] = pairs[i+1]
	}

	return out, nil
}

// pickValue returns then when cond holds, otherwise the alternative.
func pickValue(cond bool, then, otherwise any) any {
	if cond {
		return then
	}

	return otherwise
}

// toText renders scalar template arguments; nil becomes empty text.
func toText(value any) string {
	switch typed := value.(type) {
	case nil:
		return ""
	case string:
		return typed
	default:
		if number, ok := toFloat(value); ok {
			return formatNumber(number)
		}

		return fmt.Sprint(typed)
	}
}

// yesNo renders bool as "yes" or "no".
func yesNo(value bool) string {
	if value {
		return "yes"
	}

	return "no"
}
