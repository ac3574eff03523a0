// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/openapi2md

package openapi2md

import (
	"log/slog"
	"slices"
)

// defaultTagName files operations that declare no "tags" field.
const defaultTagName = "default"

// Keys stamped into every preprocessed operation object, so templates walking
// .Root.paths see the extracted body parameter.
const (
	requestBodyField     = "_request_body"
	showRequestBodyField = "_show_request_body_section"
)

// Document is the denormalized specification consumed by markdown templates.
type Document struct {
	// Root is a deep copy of the source document with non-method keys
	// removed from path items. Top-level metadata is reachable from here.
	Root map[string]any
	// Info is the "info" object of Root.
	Info map[string]any
	// Tags lists declared tags followed by implicitly referenced tags in first-seen order.
	Tags []*Tag
	// Paths lists path items in source order.
	Paths []*PathItem
	// ShowTagSummary is set when more than one tag exists.
	ShowTagSummary bool
}

// Tag groups operations under one name.
type Tag struct {
	Name         string
	Description  string
	ExternalDocs map[string]any
	// Fields is the declared tag object, nil for implicit tags.
	Fields     map[string]any
	Operations []*Operation
}

// PathItem holds the operations declared under one path.
type PathItem struct {
	Path       string
	Operations []*Operation
}

// Operation is one HTTP method handler of a path with merged parameters.
type Operation struct {
	Path   string
	Method string
	Tags   []string
	// Parameters are operation parameters followed by path parameters, body excluded.
	Parameters []map[string]any
	// RequestBody is the "in: body" parameter, nil when absent.
	RequestBody            map[string]any
	ShowRequestBodySection bool
	Consumes               []string
	Produces               []string
	// Fields is the full operation object (summary, responses, security, ...)
	// with path, method, filtered parameters, _request_body and
	// _show_request_body_section stamped in.
	Fields map[string]any
}

// tagIndex is an ordered name lookup for tags.
type tagIndex struct {
	byName map[string]*Tag
	order  []*Tag
}

// Preprocess builds the denormalized document for rendering.
//
// The argument is never mutated; the result owns all of its values. This is a
// one-shot transform: running it on a document rebuilt from its own output is
// not equivalent, because path-level parameters are already merged away.
func Preprocess(spec *Specification) *Document {
	if spec == nil {
		spec = NewSpecification(nil)
	}

	root, _ := cloneValue(spec.Raw).(map[string]any)
	if root == nil {
		root = map[string]any{}
	}

	info, _ := root["info"].(map[string]any)
	doc := &Document{
		Root: root,
		Info: info,
	}

	tags := newTagIndex(spec.DeclaredTags())

	rootPaths, _ := root["paths"].(map[string]any)
	covered := make(map[string]struct{}, len(spec.Paths))
	for _, entry := range spec.Paths {
		item, ok := rootPaths[entry.Path].(map[string]any)
		if !ok {
			continue
		}

		covered[entry.Path] = struct{}{}
		doc.Paths = append(doc.Paths, preprocessPath(entry, item, tags))
	}

	// Paths missing from spec.Paths (for example a Specification built as a
	// struct literal) follow in sorted order.
	for _, path := range sortedKeys(rootPaths) {
		if _, ok := covered[path]; ok {
			continue
		}

		item, ok := rootPaths[path].(map[string]any)
		if !ok {
			continue
		}

		entry := PathEntry{Path: path, Keys: canonicalPathItemKeys(item), Fields: item}
		doc.Paths = append(doc.Paths, preprocessPath(entry, item, tags))
	}

	doc.Tags = tags.order
	if doc.Tags == nil {
		doc.Tags = []*Tag{}
	}

	doc.ShowTagSummary = len(doc.Tags) > 1

	slog.Debug("preprocessed specification",
		"paths", len(doc.Paths),
		"tags", len(doc.Tags))

	return doc
}

// preprocessPath turns one cloned path item into its operations and drops non-method keys from it.
func preprocessPath(entry PathEntry, item map[string]any, tags *tagIndex) *PathItem {
	pathParameters := asObjectSlice(item["parameters"])
	pathItem := &PathItem{Path: entry.Path}

	keys := slices.Clone(entry.Keys)
	for _, key := range sortedKeys(item) {
		if !slices.Contains(keys, key) {
			keys = append(keys, key)
		}
	}

	for _, key := range keys {
		if !slices.Contains(httpMethods, key) {
			delete(item, key)
			continue
		}

		fields, ok := item[key].(map[string]any)
		if !ok {
			delete(item, key)
			continue
		}

		operation := newOperation(entry.Path, key, fields, pathParameters)
		for _, name := range operation.Tags {
			tag := tags.lookupOrCreate(name)
			tag.Operations = append(tag.Operations, operation)
		}

		pathItem.Operations = append(pathItem.Operations, operation)
	}

	return pathItem
}

// newOperation stamps path and method, merges parameters and extracts the body parameter.
func newOperation(path, method string, fields map[string]any, pathParameters []map[string]any) *Operation {
	fields["path"] = path
	fields["method"] = method

	operation := &Operation{
		Path:     path,
		Method:   method,
		Consumes: asStringSlice(fields["consumes"]),
		Produces: asStringSlice(fields["produces"]),
		Fields:   fields,
	}

	if declared, ok := fields["tags"]; ok && declared != nil {
		operation.Tags = asStringSlice(declared)
	} else {
		operation.Tags = []string{defaultTagName}
	}

	merged := append(asObjectSlice(fields["parameters"]), clonedObjects(pathParameters)...)
	operation.Parameters = make([]map[string]any, 0, len(merged))
	for _, parameter := range merged {
		if asString(parameter["in"]) == "body" {
			// Swagger 2.0 allows one body parameter; with several, the last one wins.
			operation.RequestBody = parameter
			continue
		}

		operation.Parameters = append(operation.Parameters, parameter)
	}

	parameters := make([]any, 0, len(operation.Parameters))
	for _, parameter := range operation.Parameters {
		parameters = append(parameters, parameter)
	}

	fields["parameters"] = parameters

	_, hasConsumes := fields["consumes"]
	operation.ShowRequestBodySection = operation.RequestBody != nil || (hasConsumes && fields["consumes"] != nil)

	if operation.RequestBody != nil {
		fields[requestBodyField] = operation.RequestBody
	}
	fields[showRequestBodyField] = operation.ShowRequestBodySection

	return operation
}

// newTagIndex seeds the tag lookup from declared tags.
// A name declared twice keeps both entries; lookups go to the later one.
func newTagIndex(declared []map[string]any) *tagIndex {
	index := &tagIndex{byName: make(map[string]*Tag, len(declared))}
	for _, fields := range declared {
		fields = cloneValue(fields).(map[string]any)
		name := asString(fields["name"])

		externalDocs, _ := fields["externalDocs"].(map[string]any)
		tag := &Tag{
			Name:         name,
			Description:  asString(fields["description"]),
			ExternalDocs: externalDocs,
			Fields:       fields,
		}

		index.byName[name] = tag
		index.order = append(index.order, tag)
	}

	return index
}

// lookupOrCreate returns the named tag, appending an implicit declaration when unknown.
func (index *tagIndex) lookupOrCreate(name string) *Tag {
	if tag, ok := index.byName[name]; ok {
		return tag
	}

	tag := &Tag{Name: name, Operations: []*Operation{}}
	index.byName[name] = tag
	index.order = append(index.order, tag)
	return tag
}

// asObjectSlice returns object items of a JSON array.
func asObjectSlice(value any) []map[string]any {
	items, _ := value.([]any)
	out := make([]map[string]any, 0, len(items))
	for _, item := range items {
		if object, ok := item.(map[string]any); ok {
			out = append(out, object)
		}
	}

	return out
}

// clonedObjects deep-copies objects so operations sharing path parameters do not alias.
func clonedObjects(objects []map[string]any) []map[string]any {
	out := make([]map[string]any, 0, len(objects))
	for _, object := range objects {
		out = append(out, cloneValue(object).(map[string]any))
	}

	return out
}
