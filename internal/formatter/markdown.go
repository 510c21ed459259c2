package formatter

import (
	"fmt"
	"strings"

	"github.com/yildizm/vss-site/internal/site"
)

// markdownFormatter formats output as Markdown
type markdownFormatter struct{}

// NewMarkdown creates a new Markdown formatter
func NewMarkdown() Formatter {
	return &markdownFormatter{}
}

func (f *markdownFormatter) Format(page *site.Page) ([]byte, error) {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", page.Brand.Name)
	if page.Brand.Motto != "" {
		fmt.Fprintf(&b, "_%s_\n\n", page.Brand.Motto)
	}

	f.writeTableOfContents(&b, page)

	for i := range page.Sections {
		f.writeSection(&b, page, &page.Sections[i])
	}

	f.writeFooter(&b, page)

	return []byte(b.String()), nil
}

// writeTableOfContents links every section anchor
func (f *markdownFormatter) writeTableOfContents(b *strings.Builder, page *site.Page) {
	b.WriteString("## Table of Contents\n")
	for _, s := range page.Sections {
		fmt.Fprintf(b, "- [%s](#%s)\n", page.NavLabel(s.ID), s.ID)
	}
	b.WriteString("\n")
}

func (f *markdownFormatter) writeSection(b *strings.Builder, page *site.Page, s *site.Section) {
	fmt.Fprintf(b, "<a id=\"%s\"></a>\n\n## %s\n\n", s.ID, page.NavLabel(s.ID))
	if s.Heading != "" && s.Heading != s.Label {
		fmt.Fprintf(b, "**%s**\n\n", s.Heading)
	}
	if s.Lead != "" {
		fmt.Fprintf(b, "_%s_\n\n", s.Lead)
	}
	if body := strings.TrimSpace(s.Body); body != "" {
		b.WriteString(body + "\n\n")
	}

	if len(s.Actions) > 0 {
		links := make([]string, 0, len(s.Actions))
		for _, action := range s.Actions {
			links = append(links, fmt.Sprintf("[%s](#%s)", action.Label, action.Target))
		}
		b.WriteString(strings.Join(links, " · ") + "\n\n")
	}

	for _, group := range s.Groups {
		f.writeCards(b, group)
	}

	if len(s.Steps) > 0 {
		for i, step := range s.Steps {
			fmt.Fprintf(b, "%d. **%s: %s**  \n   %s\n", i+1, step.When, step.Title, step.Text)
		}
		b.WriteString("\n")
	}

	if len(s.Stats) > 0 {
		b.WriteString("| Metric | Value |\n|--------|-------|\n")
		for _, stat := range s.Stats {
			fmt.Fprintf(b, "| %s | %s |\n", stat.Label, stat.Value)
		}
		b.WriteString("\n")
	}

	if acc := s.Accordion; acc != nil {
		if acc.Title != "" {
			fmt.Fprintf(b, "### %s\n\n", acc.Title)
		}
		for i, id := range disclosureIDs(acc) {
			item := acc.Items[i]
			fmt.Fprintf(b, "<details id=\"%s\">\n<summary>%s</summary>\n\n%s\n\n</details>\n\n", id, item.Summary, item.Detail)
		}
	}

	if c := s.Callout; c != nil {
		fmt.Fprintf(b, "> **%s**\n", c.Title)
		if c.Text != "" {
			fmt.Fprintf(b, ">\n> %s\n", c.Text)
		}
		if c.Action != nil {
			fmt.Fprintf(b, ">\n> [%s](#%s)\n", c.Action.Label, c.Action.Target)
		}
		b.WriteString("\n")
	}

	if text, ok := formCopy(page, s.Form); ok {
		f.writeForm(b, s.Form, text)
	}

	if s.Next != nil {
		fmt.Fprintf(b, "→ [%s](#%s)\n\n", s.Next.Label, s.Next.Target)
	}
}

func (f *markdownFormatter) writeCards(b *strings.Builder, group site.CardGroup) {
	if group.Title != "" {
		fmt.Fprintf(b, "### %s\n\n", group.Title)
	}
	for _, card := range group.Cards {
		fmt.Fprintf(b, "#### %s\n\n", card.Title)
		if card.Text != "" {
			b.WriteString(card.Text + "\n\n")
		}
		for _, item := range card.Items {
			fmt.Fprintf(b, "- %s\n", item)
		}
		if len(card.Items) > 0 {
			b.WriteString("\n")
		}
	}
}

func (f *markdownFormatter) writeForm(b *strings.Builder, flow string, text site.FormCopy) {
	title := text.Title
	if title == "" {
		title = "Get in touch"
	}
	fmt.Fprintf(b, "### %s\n\n", title)
	if text.Text != "" {
		b.WriteString(text.Text + "\n\n")
	}
	fields := "Email"
	if flow == "contact" {
		fields = "Audience (Entrepreneurs / Students), Name, Email, Message"
	}
	fmt.Fprintf(b, "| Form | Fields | Button |\n|------|--------|--------|\n| %s | %s | %s |\n\n", flow, fields, text.Button)
	fmt.Fprintf(b, "- [ ] %s\n\n", text.Consent)
}

func (f *markdownFormatter) writeFooter(b *strings.Builder, page *site.Page) {
	b.WriteString("---\n\n")
	if page.Contact.Email != "" {
		fmt.Fprintf(b, "Email: <%s>  \n", page.Contact.Email)
	}
	if page.Contact.LinkedIn != "" {
		fmt.Fprintf(b, "LinkedIn: %s  \n", page.Contact.LinkedIn)
	}
	if page.Footer.Copyright != "" {
		fmt.Fprintf(b, "\n%s\n", page.Footer.Copyright)
	}
}
