// Package formatter exports the page content as text, JSON, Markdown or CSV.
package formatter

import (
	"fmt"

	"github.com/yildizm/vss-site/internal/site"
)

// Formatter defines the interface for output formatting
type Formatter interface {
	Format(page *site.Page) ([]byte, error)
}

// New returns the formatter for format; "" means text
func New(format string, color bool) (Formatter, error) {
	switch format {
	case "json":
		return NewJSON(), nil
	case "markdown":
		return NewMarkdown(), nil
	case "csv":
		return NewCSV(), nil
	case "text", "":
		return NewTerminal(color), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}
