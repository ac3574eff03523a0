// SPDX-License-Identifier: AGPL-3.0-only
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/openapi2md

package openapi2md

import (
	"os"
	"path/filepath"
	"testing"
)

// BenchmarkParseSpecification measures YAML decoding with source order tracking.
func BenchmarkParseSpecification(b *testing.B) {
	specBytes := readBenchmarkFile(b, filepath.Join("testdata", "petstore.yaml"))

	b.ReportAllocs()
	b.SetBytes(int64(len(specBytes)))

	for i := 0; i < b.N; i++ {
		if _, err := ParseSpecification(specBytes); err != nil {
			b.Fatalf("ParseSpecification: %v", err)
		}
	}
}

// BenchmarkPreprocess measures the denormalization pass alone.
func BenchmarkPreprocess(b *testing.B) {
	spec, err := ParseSpecification(readBenchmarkFile(b, filepath.Join("testdata", "petstore.yaml")))
	if err != nil {
		b.Fatalf("ParseSpecification: %v", err)
	}

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = Preprocess(spec)
	}
}

// BenchmarkRender measures full in-memory render flow with the built-in template.
func BenchmarkRender(b *testing.B) {
	benchmarkRender(b, Options{})
}

// BenchmarkRenderWithExamples measures render flow with generated model examples.
func BenchmarkRenderWithExamples(b *testing.B) {
	benchmarkRender(b, Options{Example: ExampleOptions{Format: ExampleFormatYAML}})
}

// BenchmarkRenderFile measures read + render flow from file path.
func BenchmarkRenderFile(b *testing.B) {
	specPath := filepath.Join("testdata", "petstore.yaml")

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := RenderFile(specPath, Options{Title: "Petstore Reference"}); err != nil {
			b.Fatalf("RenderFile: %v", err)
		}
	}
}

// benchmarkRender runs common in-memory benchmark for selected options.
func benchmarkRender(b *testing.B, options Options) {
	specBytes := readBenchmarkFile(b, filepath.Join("testdata", "petstore.yaml"))

	b.ReportAllocs()
	b.SetBytes(int64(len(specBytes)))

	for i := 0; i < b.N; i++ {
		if _, err := Render(specBytes, options); err != nil {
			b.Fatalf("Render: %v", err)
		}
	}
}

// readBenchmarkFile loads benchmark fixture file and fails benchmark on read errors.
func readBenchmarkFile(b *testing.B, path string) []byte {
	b.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		b.Fatalf("read benchmark file %q: %v", path, err)
	}

	if len(data) == 0 {
		b.Fatalf("empty benchmark file: %s", path)
	}

	return data
}
