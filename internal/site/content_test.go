package site

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultContent(t *testing.T) {
	page := Default()

	if len(page.Sections) != len(Order()) {
		t.Fatalf("Expected %d sections, got %d", len(Order()), len(page.Sections))
	}
	for i, id := range Order() {
		if page.Sections[i].ID != id {
			t.Errorf("Section %d: expected %s, got %s", i, id, page.Sections[i].ID)
		}
	}

	faq, ok := page.Section(SectionFAQ)
	if !ok || faq.Accordion == nil {
		t.Fatal("Expected FAQ section with an accordion")
	}
	if len(faq.Accordion.Items) != 7 {
		t.Errorf("Expected 7 FAQ entries, got %d", len(faq.Accordion.Items))
	}
	if faq.Accordion.Prefix != "faq" {
		t.Errorf("Expected FAQ prefix faq, got %s", faq.Accordion.Prefix)
	}

	students, _ := page.Section(SectionStudents)
	if students.Accordion == nil || len(students.Accordion.Items) != 5 {
		t.Fatal("Expected 5 curriculum modules in the students section")
	}
	if students.Accordion.Prefix != "m" {
		t.Errorf("Expected module prefix m, got %s", students.Accordion.Prefix)
	}

	programme, _ := page.Section(SectionProgramme)
	if len(programme.Steps) != 4 {
		t.Errorf("Expected 4 journey steps, got %d", len(programme.Steps))
	}

	if got := len(page.Accordions()); got != 2 {
		t.Errorf("Expected 2 accordions, got %d", got)
	}
}

func TestDefaultReturnsIndependentCopies(t *testing.T) {
	a := Default()
	b := Default()
	a.Sections[0].Heading = "changed"
	if b.Sections[0].Heading == "changed" {
		t.Error("Default should return a fresh copy on every call")
	}
}

func TestNavLabel(t *testing.T) {
	page := Default()
	if got := page.NavLabel(SectionEntrepreneurs); got != "For Entrepreneurs" {
		t.Errorf("Expected 'For Entrepreneurs', got %q", got)
	}

	page.Sections[0].Label = ""
	if got := page.NavLabel(SectionHome); got != "Home" {
		t.Errorf("Expected fallback label Home, got %q", got)
	}
}

func TestParseFillsLabels(t *testing.T) {
	page, err := Parse([]byte("sections:\n  - id: home\n    heading: Hi\n  - id: faq\n"))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if page.Sections[1].Label != "FAQ" {
		t.Errorf("Expected default label FAQ, got %q", page.Sections[1].Label)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name:    "unknown section",
			yaml:    "sections:\n  - id: pricing\n",
			wantErr: `unknown id "pricing"`,
		},
		{
			name:    "duplicate section",
			yaml:    "sections:\n  - id: faq\n  - id: faq\n",
			wantErr: `section "faq": duplicate`,
		},
		{
			name:    "out of order",
			yaml:    "sections:\n  - id: faq\n  - id: home\n",
			wantErr: "out of document order",
		},
		{
			name:    "unknown form",
			yaml:    "sections:\n  - id: contact\n    form: newsletter\n",
			wantErr: `unknown form "newsletter"`,
		},
		{
			name:    "bad next target",
			yaml:    "sections:\n  - id: home\n    next:\n      label: x\n      target: nowhere\n",
			wantErr: "next link targets unknown section",
		},
		{
			name:    "bad action target",
			yaml:    "sections:\n  - id: home\n    actions:\n      - label: x\n        target: nowhere\n",
			wantErr: `action "x" targets unknown section "nowhere"`,
		},
		{
			name:    "bad callout action target",
			yaml:    "sections:\n  - id: programme\n    callout:\n      title: t\n      action:\n        label: Apply Now\n        target: pricing\n",
			wantErr: `section "programme": callout action "Apply Now" targets unknown section "pricing"`,
		},
		{
			name:    "bad apply target",
			yaml:    "apply:\n  label: Apply\n  target: pricing\nsections:\n  - id: home\n",
			wantErr: `apply link targets unknown section "pricing"`,
		},
		{
			name:    "apply label without target",
			yaml:    "apply:\n  label: Apply\nsections:\n  - id: home\n",
			wantErr: `apply link targets unknown section ""`,
		},
		{
			name:    "duplicate prefix",
			yaml:    "sections:\n  - id: students\n    accordion:\n      prefix: q\n  - id: faq\n    accordion:\n      prefix: q\n",
			wantErr: `prefix "q" used twice`,
		},
		{
			name:    "dash in prefix",
			yaml:    "sections:\n  - id: faq\n    accordion:\n      prefix: f-a\n",
			wantErr: "must not contain '-'",
		},
		{
			name:    "malformed yaml",
			yaml:    "sections: [",
			wantErr: "failed to parse YAML",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			if err == nil {
				t.Fatal("Expected error but got none")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Expected error containing %q, got %q", tt.wantErr, err.Error())
			}
		})
	}
}

func TestLoad(t *testing.T) {
	t.Run("empty path uses built-in content", func(t *testing.T) {
		page, err := Load("")
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if page.Brand.Short != "VSS" {
			t.Errorf("Expected brand VSS, got %q", page.Brand.Short)
		}
	})

	t.Run("file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "site.yaml")
		content := "brand:\n  short: ABC\nsections:\n  - id: home\n    heading: Welcome\n"
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatalf("Failed to write content file: %v", err)
		}
		page, err := Load(path)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if page.Brand.Short != "ABC" || page.Sections[0].Heading != "Welcome" {
			t.Errorf("Unexpected page: %+v", page)
		}
	})

	t.Run("wrong extension", func(t *testing.T) {
		if _, err := Load("/tmp/site.json"); err == nil {
			t.Error("Expected error for non-yaml path")
		}
	})

	t.Run("traversal", func(t *testing.T) {
		if _, err := Load("../site.yaml"); err == nil {
			t.Error("Expected error for path traversal")
		}
	})

	t.Run("missing file", func(t *testing.T) {
		if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
			t.Error("Expected error for missing file")
		}
	})
}

func TestParseSectionID(t *testing.T) {
	if id, ok := ParseSectionID("mission"); !ok || id != SectionMission {
		t.Errorf("Expected mission to parse, got %q %v", id, ok)
	}
	if _, ok := ParseSectionID("blog"); ok {
		t.Error("Expected blog to be rejected")
	}
}

func TestOrderIsACopy(t *testing.T) {
	order := Order()
	order[0] = SectionContact
	if Order()[0] != SectionHome {
		t.Error("Order should not expose the internal slice")
	}
}
