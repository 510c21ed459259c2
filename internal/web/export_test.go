package web

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/yildizm/vss-site/internal/site"
)

func TestExportWritesIndex(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "public")

	path, err := Export(dir, site.Default(), "/vss-site/")
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	if path != filepath.Join(dir, "index.html") {
		t.Errorf("Expected index.html in %s, got %s", dir, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	html := string(data)
	if !strings.Contains(html, "<title>Venture Scholar Studio</title>") {
		t.Error("Expected the brand name as the title")
	}
	if !strings.Contains(html, `action="/vss-site/contact"`) {
		t.Error("Expected forms to post under the base path")
	}
}

func TestRenderDefaultsToRoot(t *testing.T) {
	var buf bytes.Buffer
	if err := Render(&buf, site.Default(), ""); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if !strings.Contains(buf.String(), `action="/contact"`) {
		t.Error("Expected forms to post to /contact")
	}
}

func TestParseQuery(t *testing.T) {
	q := parseQuery(map[string][]string{
		"open":     {"faq-1", "m-0"},
		"section":  {"nope"},
		"audience": {"investors"},
	})
	if len(q.Open) != 2 {
		t.Errorf("Expected two open ids, got %v", q.Open)
	}
	if q.Section != "" {
		t.Errorf("Expected unknown section ignored, got %s", q.Section)
	}
	if q.Audience != "entrepreneurs" {
		t.Errorf("Expected the default audience, got %s", q.Audience)
	}
	if q.Menu {
		t.Error("Expected the menu closed")
	}
}
