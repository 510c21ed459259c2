package site

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultContent []byte

// Default returns a fresh copy of the built-in page content
func Default() *Page {
	page, err := Parse(defaultContent)
	if err != nil {
		panic(fmt.Sprintf("built-in content is invalid: %v", err))
	}
	return page
}

// Load reads page content from path, or returns the built-in content when
// path is empty
func Load(path string) (*Page, error) {
	if path == "" {
		return Default(), nil
	}

	if err := validateContentPath(path); err != nil {
		return nil, fmt.Errorf("invalid content path: %w", err)
	}

	// #nosec G304 - path is validated by validateContentPath() before reaching here
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read content file: %w", err)
	}

	page, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load content from %s: %w", path, err)
	}
	return page, nil
}

// Parse decodes YAML page content and validates it
func Parse(data []byte) (*Page, error) {
	var page Page
	if err := yaml.Unmarshal(data, &page); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	for i := range page.Sections {
		if page.Sections[i].Label == "" {
			page.Sections[i].Label = page.Sections[i].ID.DefaultLabel()
		}
	}

	if err := page.Validate(); err != nil {
		return nil, err
	}
	return &page, nil
}

func validateContentPath(path string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("empty file path")
	}

	cleanPath := filepath.Clean(path)
	if strings.Contains(cleanPath, "..") {
		return fmt.Errorf("path traversal not allowed")
	}

	ext := strings.ToLower(filepath.Ext(cleanPath))
	if ext != ".yaml" && ext != ".yml" {
		return fmt.Errorf("content file must have .yaml or .yml extension")
	}
	return nil
}
