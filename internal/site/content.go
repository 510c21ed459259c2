package site

import (
	"fmt"
	"strings"
)

// Page holds the complete static copy of the landing page
type Page struct {
	Brand    Brand        `yaml:"brand" json:"brand"`
	Sections []Section    `yaml:"sections" json:"sections"`
	Forms    Forms        `yaml:"forms" json:"forms"`
	Contact  ContactLinks `yaml:"contact_links" json:"contact_links"`
	Footer   Footer       `yaml:"footer" json:"footer"`
	Apply    Link         `yaml:"apply" json:"apply"`
}

// Brand is the wordmark and motto shown in the navbar, hero and footer
type Brand struct {
	Short string `yaml:"short" json:"short"`
	Name  string `yaml:"name" json:"name"`
	Motto string `yaml:"motto" json:"motto"`
}

// Section is one scroll-anchored block of the page
type Section struct {
	ID        SectionID   `yaml:"id" json:"id"`
	Label     string      `yaml:"label" json:"label"`
	Heading   string      `yaml:"heading" json:"heading"`
	Lead      string      `yaml:"lead,omitempty" json:"lead,omitempty"`
	Body      string      `yaml:"body,omitempty" json:"body,omitempty"` // markdown
	Actions   []Link      `yaml:"actions,omitempty" json:"actions,omitempty"`
	Groups    []CardGroup `yaml:"groups,omitempty" json:"groups,omitempty"`
	Steps     []Step      `yaml:"steps,omitempty" json:"steps,omitempty"`
	Stats     []Stat      `yaml:"stats,omitempty" json:"stats,omitempty"`
	Accordion *Accordion  `yaml:"accordion,omitempty" json:"accordion,omitempty"`
	Callout   *Callout    `yaml:"callout,omitempty" json:"callout,omitempty"`
	Form      string      `yaml:"form,omitempty" json:"form,omitempty"` // eir|contact
	Next      *Link       `yaml:"next,omitempty" json:"next,omitempty"`
}

// Link is an in-page navigation affordance
type Link struct {
	Label  string    `yaml:"label" json:"label"`
	Target SectionID `yaml:"target" json:"target"`
}

// CardGroup is a titled grid of cards
type CardGroup struct {
	Title string `yaml:"title,omitempty" json:"title,omitempty"`
	Cards []Card `yaml:"cards" json:"cards"`
}

// Card is an icon, a title and either a text or a checklist
type Card struct {
	Icon  string   `yaml:"icon,omitempty" json:"icon,omitempty"`
	Title string   `yaml:"title" json:"title"`
	Text  string   `yaml:"text,omitempty" json:"text,omitempty"`
	Items []string `yaml:"items,omitempty" json:"items,omitempty"`
}

// Step is one entry of the programme journey timeline
type Step struct {
	When  string `yaml:"when" json:"when"`
	Title string `yaml:"title" json:"title"`
	Text  string `yaml:"text" json:"text"`
}

// Stat is a headline number
type Stat struct {
	Value string `yaml:"value" json:"value"`
	Label string `yaml:"label" json:"label"`
}

// Accordion is a disclosure list; item identifiers are Prefix-index
type Accordion struct {
	Title  string       `yaml:"title,omitempty" json:"title,omitempty"`
	Prefix string       `yaml:"prefix" json:"prefix"`
	Items  []Disclosure `yaml:"items" json:"items"`
}

// Disclosure is a summary label with a detail body
type Disclosure struct {
	Summary string `yaml:"summary" json:"summary"`
	Detail  string `yaml:"detail" json:"detail"`
}

// Callout is a highlighted block with an optional action
type Callout struct {
	Title  string `yaml:"title" json:"title"`
	Text   string `yaml:"text" json:"text"`
	Action *Link  `yaml:"action,omitempty" json:"action,omitempty"`
}

// Forms holds the copy of both request-more-info flows
type Forms struct {
	EIR     FormCopy `yaml:"eir" json:"eir"`
	Contact FormCopy `yaml:"contact" json:"contact"`
}

// FormCopy is the static text around a form
type FormCopy struct {
	Title   string `yaml:"title,omitempty" json:"title,omitempty"`
	Text    string `yaml:"text,omitempty" json:"text,omitempty"`
	Consent string `yaml:"consent" json:"consent"`
	Button  string `yaml:"button" json:"button"`
	Success string `yaml:"success" json:"success"`
	Failure string `yaml:"failure,omitempty" json:"failure,omitempty"`
}

// ContactLinks are the direct contact channels
type ContactLinks struct {
	Email    string `yaml:"email" json:"email"`
	LinkedIn string `yaml:"linkedin" json:"linkedin"`
}

// Footer is the closing line of the page
type Footer struct {
	Copyright string `yaml:"copyright" json:"copyright"`
}

// Section returns the section with the given id
func (p *Page) Section(id SectionID) (*Section, bool) {
	for i := range p.Sections {
		if p.Sections[i].ID == id {
			return &p.Sections[i], true
		}
	}
	return nil, false
}

// Accordions returns every disclosure list on the page in document order
func (p *Page) Accordions() []*Accordion {
	var lists []*Accordion
	for i := range p.Sections {
		if p.Sections[i].Accordion != nil {
			lists = append(lists, p.Sections[i].Accordion)
		}
	}
	return lists
}

// NavLabel returns the navigation label for id
func (p *Page) NavLabel(id SectionID) string {
	if s, ok := p.Section(id); ok && s.Label != "" {
		return s.Label
	}
	return id.DefaultLabel()
}

// Validate checks the structural rules the controllers rely on
func (p *Page) Validate() error {
	var problems []string

	seen := make(map[SectionID]bool, len(p.Sections))
	last := -1
	for i := range p.Sections {
		s := &p.Sections[i]
		if !s.ID.Valid() {
			problems = append(problems, fmt.Sprintf("section %d: unknown id %q", i, s.ID))
			continue
		}
		if seen[s.ID] {
			problems = append(problems, fmt.Sprintf("section %q: duplicate", s.ID))
			continue
		}
		seen[s.ID] = true

		pos := indexOf(s.ID)
		if pos < last {
			problems = append(problems, fmt.Sprintf("section %q: out of document order", s.ID))
		}
		last = pos

		if s.Form != "" && s.Form != "eir" && s.Form != "contact" {
			problems = append(problems, fmt.Sprintf("section %q: unknown form %q", s.ID, s.Form))
		}
		if s.Next != nil && !s.Next.Target.Valid() {
			problems = append(problems, fmt.Sprintf("section %q: next link targets unknown section %q", s.ID, s.Next.Target))
		}
		for _, a := range s.Actions {
			if !a.Target.Valid() {
				problems = append(problems, fmt.Sprintf("section %q: action %q targets unknown section %q", s.ID, a.Label, a.Target))
			}
		}
		if s.Callout != nil && s.Callout.Action != nil && !s.Callout.Action.Target.Valid() {
			problems = append(problems, fmt.Sprintf("section %q: callout action %q targets unknown section %q", s.ID, s.Callout.Action.Label, s.Callout.Action.Target))
		}
	}

	// apply is optional, but once set it must lead somewhere
	if (p.Apply.Label != "" || p.Apply.Target != "") && !p.Apply.Target.Valid() {
		problems = append(problems, fmt.Sprintf("apply link targets unknown section %q", p.Apply.Target))
	}

	prefixes := make(map[string]bool)
	for _, acc := range p.Accordions() {
		if acc.Prefix == "" {
			problems = append(problems, "accordion with empty prefix")
			continue
		}
		if strings.Contains(acc.Prefix, "-") {
			problems = append(problems, fmt.Sprintf("accordion prefix %q must not contain '-'", acc.Prefix))
		}
		if prefixes[acc.Prefix] {
			problems = append(problems, fmt.Sprintf("accordion prefix %q used twice", acc.Prefix))
		}
		prefixes[acc.Prefix] = true
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid page content: %s", strings.Join(problems, "; "))
	}
	return nil
}

func indexOf(id SectionID) int {
	for i, s := range sectionOrder {
		if s == id {
			return i
		}
	}
	return -1
}
