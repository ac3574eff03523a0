// SPDX-License-Identifier: AGPL-3.0-only
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/openapi2md

package openapi2md

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, text string) *Specification {
	t.Helper()

	spec, err := ParseSpecification([]byte(text))
	require.NoError(t, err)
	return spec
}

func tagNames(tags []*Tag) []string {
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		out = append(out, tag.Name)
	}

	return out
}

func TestPreprocessWithoutTagsOrPaths(t *testing.T) {
	t.Parallel()

	doc := Preprocess(mustParse(t, "swagger: \"2.0\"\ninfo:\n  title: Empty\n"))

	require.NotNil(t, doc.Tags)
	assert.Empty(t, doc.Tags)
	assert.Empty(t, doc.Paths)
	assert.False(t, doc.ShowTagSummary)
	assert.Equal(t, "Empty", doc.Info["title"])
}

func TestPreprocessNilSpecification(t *testing.T) {
	t.Parallel()

	doc := Preprocess(nil)

	assert.NotNil(t, doc.Root)
	assert.NotNil(t, doc.Tags)
	assert.False(t, doc.ShowTagSummary)
}

func TestPreprocessDefaultTag(t *testing.T) {
	t.Parallel()

	doc := Preprocess(mustParse(t, `paths:
  /health:
    get: {}
  /ready:
    get:
      tags: null
`))

	require.Len(t, doc.Tags, 1)
	assert.Equal(t, "default", doc.Tags[0].Name)
	assert.Nil(t, doc.Tags[0].Fields)
	require.Len(t, doc.Tags[0].Operations, 2)
	assert.Equal(t, "/health", doc.Tags[0].Operations[0].Path)
	assert.Equal(t, "/ready", doc.Tags[0].Operations[1].Path)
	assert.False(t, doc.ShowTagSummary)
}

func TestPreprocessEmptyTagListFilesNowhere(t *testing.T) {
	t.Parallel()

	doc := Preprocess(mustParse(t, `paths:
  /hidden:
    get:
      tags: []
`))

	assert.Empty(t, doc.Tags)
	require.Len(t, doc.Paths, 1)
	require.Len(t, doc.Paths[0].Operations, 1)
	assert.Empty(t, doc.Paths[0].Operations[0].Tags)
}

func TestPreprocessDropsNonMethodKeys(t *testing.T) {
	t.Parallel()

	doc := Preprocess(mustParse(t, `paths:
  /pets:
    summary: path summary
    $ref: "#/x-paths/pets"
    x-internal: true
    parameters:
      - name: id
        in: path
    get: {}
    trace: {}
    post: {}
`))

	item := doc.Root["paths"].(map[string]any)["/pets"].(map[string]any)
	assert.Len(t, item, 2)
	assert.Contains(t, item, "get")
	assert.Contains(t, item, "post")

	require.Len(t, doc.Paths, 1)
	methods := make([]string, 0, 2)
	for _, operation := range doc.Paths[0].Operations {
		methods = append(methods, operation.Method)
	}
	assert.Equal(t, []string{"get", "post"}, methods)
}

func TestPreprocessStampsPathAndMethod(t *testing.T) {
	t.Parallel()

	doc := Preprocess(mustParse(t, `paths:
  /pets/{id}:
    delete:
      summary: Remove
`))

	operation := doc.Paths[0].Operations[0]
	assert.Equal(t, "/pets/{id}", operation.Path)
	assert.Equal(t, "delete", operation.Method)
	assert.Equal(t, "/pets/{id}", operation.Fields["path"])
	assert.Equal(t, "delete", operation.Fields["method"])
	assert.Equal(t, "Remove", operation.Fields["summary"])
}

func TestPreprocessMergesParameters(t *testing.T) {
	t.Parallel()

	doc := Preprocess(mustParse(t, `paths:
  /pets/{id}:
    parameters:
      - name: id
        in: path
        required: true
    get:
      parameters:
        - name: fields
          in: query
    put:
      parameters:
        - name: id
          in: path
          description: operation level
`))

	get := doc.Paths[0].Operations[0]
	put := doc.Paths[0].Operations[1]

	require.Len(t, get.Parameters, 2)
	assert.Equal(t, "fields", get.Parameters[0]["name"])
	assert.Equal(t, "id", get.Parameters[1]["name"])

	require.Len(t, put.Parameters, 2)
	assert.Equal(t, "operation level", put.Parameters[0]["description"])
	assert.Equal(t, "id", put.Parameters[1]["name"])
	assert.Len(t, put.Fields["parameters"], 2)

	get.Parameters[1]["description"] = "changed"
	assert.NotContains(t, put.Parameters[1], "description")
}

func TestPreprocessExtractsBodyParameter(t *testing.T) {
	t.Parallel()

	doc := Preprocess(mustParse(t, `paths:
  /pets:
    post:
      parameters:
        - name: trace
          in: header
        - name: pet
          in: body
          schema:
            $ref: "#/definitions/Pet"
`))

	operation := doc.Paths[0].Operations[0]
	require.NotNil(t, operation.RequestBody)
	assert.Equal(t, "pet", operation.RequestBody["name"])
	assert.True(t, operation.ShowRequestBodySection)

	require.Len(t, operation.Parameters, 1)
	assert.Equal(t, "trace", operation.Parameters[0]["name"])
	assert.Len(t, operation.Fields["parameters"], 1)
	assert.Equal(t, operation.RequestBody, operation.Fields["_request_body"])
	assert.Equal(t, true, operation.Fields["_show_request_body_section"])
}

func TestPreprocessOperationWithoutBodyFields(t *testing.T) {
	t.Parallel()

	doc := Preprocess(mustParse(t, `paths:
  /pets:
    get:
      parameters:
        - name: limit
          in: query
`))

	operation := doc.Paths[0].Operations[0]
	assert.Nil(t, operation.RequestBody)
	assert.NotContains(t, operation.Fields, "_request_body")
	assert.Equal(t, false, operation.Fields["_show_request_body_section"])
}

func TestPreprocessLastBodyParameterWins(t *testing.T) {
	t.Parallel()

	doc := Preprocess(mustParse(t, `paths:
  /pets:
    parameters:
      - name: shared
        in: body
    post:
      parameters:
        - name: own
          in: body
`))

	operation := doc.Paths[0].Operations[0]
	require.NotNil(t, operation.RequestBody)
	assert.Equal(t, "shared", operation.RequestBody["name"])
	assert.Empty(t, operation.Parameters)
}

func TestPreprocessRequestBodySection(t *testing.T) {
	t.Parallel()

	doc := Preprocess(mustParse(t, `paths:
  /upload:
    put:
      consumes: [multipart/form-data]
    get: {}
    patch:
      consumes: null
`))

	operations := doc.Paths[0].Operations
	require.Len(t, operations, 3)

	assert.True(t, operations[0].ShowRequestBodySection)
	assert.Nil(t, operations[0].RequestBody)
	assert.Equal(t, []string{"multipart/form-data"}, operations[0].Consumes)
	assert.False(t, operations[1].ShowRequestBodySection)
	assert.False(t, operations[2].ShowRequestBodySection)
}

func TestPreprocessImplicitTags(t *testing.T) {
	t.Parallel()

	doc := Preprocess(mustParse(t, `tags:
  - name: a
    description: declared
paths:
  /x:
    get:
      tags: [a, b]
  /y:
    post:
      tags: [c, b]
`))

	assert.Equal(t, []string{"a", "b", "c"}, tagNames(doc.Tags))
	assert.True(t, doc.ShowTagSummary)
	assert.Equal(t, "declared", doc.Tags[0].Description)
	assert.NotNil(t, doc.Tags[0].Fields)
	assert.Nil(t, doc.Tags[1].Fields)

	get := doc.Paths[0].Operations[0]
	post := doc.Paths[1].Operations[0]

	require.Len(t, doc.Tags[0].Operations, 1)
	assert.Same(t, get, doc.Tags[0].Operations[0])
	require.Len(t, doc.Tags[1].Operations, 2)
	assert.Same(t, get, doc.Tags[1].Operations[0])
	assert.Same(t, post, doc.Tags[1].Operations[1])
	assert.Same(t, post, doc.Tags[2].Operations[0])
}

func TestPreprocessDuplicateDeclaredTags(t *testing.T) {
	t.Parallel()

	doc := Preprocess(mustParse(t, `tags:
  - name: a
    description: first
  - name: a
    description: second
paths:
  /x:
    get:
      tags: [a]
`))

	require.Len(t, doc.Tags, 2)
	assert.Empty(t, doc.Tags[0].Operations)
	require.Len(t, doc.Tags[1].Operations, 1)
	assert.Equal(t, "second", doc.Tags[1].Description)
}

func TestPreprocessDoesNotMutateInput(t *testing.T) {
	t.Parallel()

	spec := mustParse(t, `tags:
  - name: pets
paths:
  /pets:
    summary: kept in source
    parameters:
      - name: id
        in: path
    post:
      parameters:
        - name: body
          in: body
`)
	before := cloneValue(spec.Raw)

	doc := Preprocess(spec)

	assert.Equal(t, before, spec.Raw)

	doc.Root["info"] = map[string]any{"title": "changed"}
	doc.Tags[0].Fields["name"] = "changed"
	assert.Equal(t, before, spec.Raw)
}

func TestPreprocessPlainMapSpecification(t *testing.T) {
	t.Parallel()

	doc := Preprocess(NewSpecification(map[string]any{
		"paths": map[string]any{
			"/b": map[string]any{"post": map[string]any{}, "get": map[string]any{}},
			"/a": map[string]any{"get": map[string]any{}},
		},
	}))

	require.Len(t, doc.Paths, 2)
	assert.Equal(t, "/a", doc.Paths[0].Path)
	assert.Equal(t, "get", doc.Paths[1].Operations[0].Method)
	assert.Equal(t, "post", doc.Paths[1].Operations[1].Method)
}

func TestPreprocessStructLiteralSpecification(t *testing.T) {
	t.Parallel()

	spec := &Specification{Raw: map[string]any{
		"paths": map[string]any{
			"/pets": map[string]any{
				"summary": "x",
				"get":     map[string]any{"tags": []any{"pets"}},
			},
		},
	}}

	doc := Preprocess(spec)

	require.Len(t, doc.Paths, 1)
	assert.Equal(t, "/pets", doc.Paths[0].Path)
	require.Len(t, doc.Paths[0].Operations, 1)
	assert.Equal(t, "get", doc.Paths[0].Operations[0].Method)
	assert.Equal(t, []string{"pets"}, tagNames(doc.Tags))

	paths := doc.Root["paths"].(map[string]any)
	assert.NotContains(t, paths["/pets"], "summary")
	assert.Contains(t, spec.Raw["paths"].(map[string]any)["/pets"], "summary")
}
