// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/openapi2md

/*
Package openapi2md renders CommonMark documentation from OpenAPI/Swagger 2.0 documents.

A conversion decodes the document (YAML or JSON), denormalizes it with
Preprocess (operations grouped under tags, path-level parameters merged,
body parameters extracted) and executes a text/template set made of a
"main" template and named partials. The core transform performs no I/O and
never mutates its input.

Basic render from specification bytes:

	data, err := os.ReadFile("swagger.yaml")
	if err != nil {
		return err
	}

	md, err := openapi2md.Render(data, openapi2md.Options{
		Title: "Petstore Reference",
	})
	if err != nil {
		return err
	}

	fmt.Println(md)

Render an already decoded document:

	spec := openapi2md.NewSpecification(raw)
	md, err := openapi2md.Convert(spec, openapi2md.Options{})

Fetch a remote document:

	spec, err := openapi2md.Fetch(ctx, http.DefaultClient, "https://example.com/swagger.json")
	if err != nil {
		return err
	}

Replace the main template, built-in partials stay callable:

	md, err := openapi2md.RenderFile("swagger.yaml", openapi2md.Options{
		TemplateText: `# {{ .Title }}{{ template "paths" . }}`,
	})

Use built-in templates:

	names := openapi2md.BuiltinTemplateNames()
	fmt.Println(strings.Join(names, ", "))

	tpl, err := openapi2md.BuiltinTemplate("operation")
	if err != nil {
		return err
	}

Generate example payloads for models that declare no "example":

	md, err := openapi2md.RenderFile("swagger.yaml", openapi2md.Options{
		Example: openapi2md.ExampleOptions{
			Format: openapi2md.ExampleFormatYAML,
			Mode:   openapi2md.ExampleModeRequired,
		},
	})

A local reference whose final segment is undefined resolves to nil and the
render continues. A reference that steps through a missing or scalar
segment fails the render with ErrResolveReference. Remote references log a
warning and render as empty objects.
*/
package openapi2md
