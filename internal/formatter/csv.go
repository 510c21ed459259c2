package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/yildizm/vss-site/internal/site"
)

// csvFormatter flattens the page into one row per content block
type csvFormatter struct{}

// NewCSV creates a new CSV formatter
func NewCSV() Formatter {
	return &csvFormatter{}
}

func (f *csvFormatter) Format(page *site.Page) ([]byte, error) {
	var b bytes.Buffer
	writer := csv.NewWriter(&b)

	headers := []string{
		"Section",
		"Kind",
		"ID",
		"Title",
		"Detail",
	}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for i := range page.Sections {
		for _, row := range f.sectionRows(page, &page.Sections[i]) {
			if err := writer.Write(row); err != nil {
				return nil, fmt.Errorf("failed to write CSV row: %w", err)
			}
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush CSV writer: %w", err)
	}
	return b.Bytes(), nil
}

func (f *csvFormatter) sectionRows(page *site.Page, s *site.Section) [][]string {
	section := s.ID.String()
	rows := [][]string{{section, "section", section, s.Heading, s.Lead}}

	for _, group := range s.Groups {
		for _, card := range group.Cards {
			detail := card.Text
			if detail == "" {
				detail = strings.Join(card.Items, "; ")
			}
			rows = append(rows, []string{section, "card", card.Icon, card.Title, detail})
		}
	}
	for _, step := range s.Steps {
		rows = append(rows, []string{section, "step", step.When, step.Title, step.Text})
	}
	for _, stat := range s.Stats {
		rows = append(rows, []string{section, "stat", "", stat.Label, stat.Value})
	}
	if s.Accordion != nil {
		for i, id := range disclosureIDs(s.Accordion) {
			item := s.Accordion.Items[i]
			rows = append(rows, []string{section, "disclosure", id, item.Summary, item.Detail})
		}
	}
	if text, ok := formCopy(page, s.Form); ok {
		rows = append(rows, []string{section, "form", s.Form, text.Button, text.Consent})
	}
	return rows
}
