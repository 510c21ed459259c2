package web

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/yildizm/vss-site/internal/disclosure"
	"github.com/yildizm/vss-site/internal/logger"
	"github.com/yildizm/vss-site/internal/site"
)

// Render writes page in its initial state: home active, every panel
// closed, idle forms
func Render(w io.Writer, page *site.Page, basePath string) error {
	if basePath == "" {
		basePath = "/"
	}
	return renderPage(w, &renderState{
		page:       page,
		base:       basePath,
		query:      parseQuery(nil),
		disclosure: disclosure.New(disclosure.ScopeShared),
		log:        logger.Discard(),
	})
}

// Export renders page into dir/index.html and returns the written path
func Export(dir string, page *site.Page, basePath string) (string, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	path := filepath.Join(dir, "index.html")
	// #nosec G304 - path is built from the operator-supplied output directory
	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", path, err)
	}

	if err := Render(file, page, basePath); err != nil {
		_ = file.Close()
		return "", err
	}
	if err := file.Close(); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}
