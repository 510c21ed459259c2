package formatter

import (
	"encoding/json"

	"github.com/yildizm/vss-site/internal/site"
)

// jsonFormatter formats output as JSON
type jsonFormatter struct{}

// NewJSON creates a new JSON formatter
func NewJSON() Formatter {
	return &jsonFormatter{}
}

func (f *jsonFormatter) Format(page *site.Page) ([]byte, error) {
	output := &ContentOutput{
		Brand:   page.Brand,
		Summary: countContent(page),
		Apply:   page.Apply,
		Contact: page.Contact,
		Footer:  page.Footer,
	}
	for i := range page.Sections {
		output.Sections = append(output.Sections, createSectionOutput(page, &page.Sections[i]))
	}
	return json.MarshalIndent(output, "", "  ")
}

// ContentOutput represents the exported page
type ContentOutput struct {
	Brand    site.Brand        `json:"brand"`
	Summary  Totals            `json:"summary"`
	Sections []*SectionOutput  `json:"sections"`
	Apply    site.Link         `json:"apply"`
	Contact  site.ContactLinks `json:"contact_links"`
	Footer   site.Footer       `json:"footer"`
}

// SectionOutput is one section with its disclosure identifiers resolved
type SectionOutput struct {
	ID          site.SectionID      `json:"id"`
	Label       string              `json:"label"`
	Heading     string              `json:"heading"`
	Lead        string              `json:"lead,omitempty"`
	Body        string              `json:"body,omitempty"`
	Actions     []site.Link         `json:"actions,omitempty"`
	Groups      []site.CardGroup    `json:"groups,omitempty"`
	Steps       []site.Step         `json:"steps,omitempty"`
	Stats       []site.Stat         `json:"stats,omitempty"`
	Disclosures []*DisclosureOutput `json:"disclosures,omitempty"`
	Callout     *site.Callout       `json:"callout,omitempty"`
	Form        *FormOutput         `json:"form,omitempty"`
	Next        *site.Link          `json:"next,omitempty"`
}

// DisclosureOutput is an accordion item with its identifier
type DisclosureOutput struct {
	ID      string `json:"id"`
	Summary string `json:"summary"`
	Detail  string `json:"detail"`
}

// FormOutput describes a hosted form
type FormOutput struct {
	Flow string        `json:"flow"`
	Copy site.FormCopy `json:"copy"`
}

func createSectionOutput(page *site.Page, s *site.Section) *SectionOutput {
	out := &SectionOutput{
		ID:      s.ID,
		Label:   s.Label,
		Heading: s.Heading,
		Lead:    s.Lead,
		Body:    s.Body,
		Actions: s.Actions,
		Groups:  s.Groups,
		Steps:   s.Steps,
		Stats:   s.Stats,
		Callout: s.Callout,
		Next:    s.Next,
	}
	if s.Accordion != nil {
		for i, id := range disclosureIDs(s.Accordion) {
			item := s.Accordion.Items[i]
			out.Disclosures = append(out.Disclosures, &DisclosureOutput{ID: id, Summary: item.Summary, Detail: item.Detail})
		}
	}
	if text, ok := formCopy(page, s.Form); ok {
		out.Form = &FormOutput{Flow: s.Form, Copy: text}
	}
	return out
}
