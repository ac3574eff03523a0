// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/openapi2md

package openapi2md

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"regexp"
)

// remoteSourcePattern matches inputs fetched over HTTP instead of read from disk.
var remoteSourcePattern = regexp.MustCompile(`^https?://`)

// IsRemoteSource reports whether input argument is an HTTP(S) URL.
func IsRemoteSource(source string) bool {
	return remoteSourcePattern.MatchString(source)
}

// LoadFile reads and decodes specification from file path.
func LoadFile(path string) (*Specification, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadSpecFile, err)
	}

	return ParseSpecification(data)
}

// ReadSpecification reads all bytes from reader and decodes specification.
func ReadSpecification(reader io.Reader) (*Specification, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadSpecFile, err)
	}

	return ParseSpecification(data)
}

// Fetch downloads specification with GET and decodes the body.
// Any status other than 200 is an error.
func Fetch(ctx context.Context, client *http.Client, url string) (*Specification, error) {
	if client == nil {
		client = http.DefaultClient
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetchSpec, err)
	}

	request.Header.Set("Accept", "application/json, application/yaml;q=0.9, */*;q=0.8")

	response, err := client.Do(request)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetchSpec, err)
	}
	defer func() {
		_ = response.Body.Close()
	}()

	if response.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w %d", ErrUnexpectedStatus, response.StatusCode)
	}

	data, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %w", ErrFetchSpec, err)
	}

	return ParseSpecification(data)
}
