package formatter

import (
	"fmt"
	"strings"

	"github.com/yildizm/go-termfmt"
	"github.com/yildizm/vss-site/internal/emoji"
	"github.com/yildizm/vss-site/internal/site"
)

// terminalFormatter formats output as plain text for terminal display using go-termfmt
type terminalFormatter struct {
	opts *termfmt.TerminalOptions
}

// NewTerminal creates a new terminal formatter with optional color support
func NewTerminal(color bool) Formatter {
	opts := termfmt.DefaultOptions()
	opts.Color = color
	opts.Emoji = !emoji.IsEmojiDisabled()
	return &terminalFormatter{opts: opts}
}

func (f *terminalFormatter) Format(page *site.Page) ([]byte, error) {
	var b strings.Builder

	f.writeHeader(&b, page)
	f.writeStatistics(&b, page)
	f.writeOutline(&b, page)
	f.writeContact(&b, page)

	return []byte(b.String()), nil
}

func (f *terminalFormatter) writeHeader(b *strings.Builder, page *site.Page) {
	title := fmt.Sprintf("%s (%s)", page.Brand.Name, page.Brand.Short)
	width := len([]rune(title)) + 4
	b.WriteString("╭" + strings.Repeat("─", width) + "╮\n")
	fmt.Fprintf(b, "│  %s  │\n", title)
	b.WriteString("╰" + strings.Repeat("─", width) + "╯\n")
	if page.Brand.Motto != "" {
		b.WriteString(page.Brand.Motto + "\n")
	}
	b.WriteString("\n")
}

// writeStatistics writes content totals as a tree
func (f *terminalFormatter) writeStatistics(b *strings.Builder, page *site.Page) {
	symbol := termfmt.GetEmoji("statistics", f.opts)
	b.WriteString(symbol + " Content\n")

	totals := countContent(page)
	items := []termfmt.TreeItem{
		{Label: "Sections", Value: fmt.Sprintf("%d", totals.Sections)},
		{Label: "Cards", Value: fmt.Sprintf("%d", totals.Cards)},
		{Label: "Timeline Steps", Value: fmt.Sprintf("%d", totals.Steps)},
		{Label: "Disclosure Panels", Value: fmt.Sprintf("%d", totals.Disclosures)},
		{Label: "Forms", Value: fmt.Sprintf("%d", totals.Forms), Last: true},
	}

	tree := termfmt.TreeViewWithOptions(items, f.opts)
	b.WriteString(tree + "\n\n")
}

// writeOutline writes every section with its blocks as children
func (f *terminalFormatter) writeOutline(b *strings.Builder, page *site.Page) {
	b.WriteString(f.icon("book") + " Sections\n")

	items := make([]termfmt.TreeItem, 0, len(page.Sections))
	for i := range page.Sections {
		s := &page.Sections[i]
		item := termfmt.TreeItem{
			Label:    fmt.Sprintf("%d. %s", i+1, page.NavLabel(s.ID)),
			Value:    s.Heading,
			Children: f.sectionChildren(page, s),
			Last:     i == len(page.Sections)-1,
		}
		items = append(items, item)
	}

	tree := termfmt.TreeViewWithOptions(items, f.opts)
	b.WriteString(tree + "\n\n")
}

func (f *terminalFormatter) sectionChildren(page *site.Page, s *site.Section) []termfmt.TreeItem {
	var children []termfmt.TreeItem

	for _, group := range s.Groups {
		for _, card := range group.Cards {
			label := card.Title
			if card.Icon != "" {
				label = f.icon(card.Icon) + " " + label
			}
			value := card.Text
			if value == "" && len(card.Items) > 0 {
				value = fmt.Sprintf("%d items", len(card.Items))
			}
			children = append(children, termfmt.TreeItem{Label: label, Value: value})
		}
	}
	for _, step := range s.Steps {
		children = append(children, termfmt.TreeItem{Label: step.When, Value: step.Title})
	}
	for _, stat := range s.Stats {
		children = append(children, termfmt.TreeItem{Label: stat.Label, Value: stat.Value})
	}
	if s.Accordion != nil {
		for i, id := range disclosureIDs(s.Accordion) {
			children = append(children, termfmt.TreeItem{Label: f.icon("closed") + " " + id, Value: s.Accordion.Items[i].Summary})
		}
	}
	if s.Callout != nil {
		children = append(children, termfmt.TreeItem{Label: f.icon("star") + " " + s.Callout.Title, Value: s.Callout.Text})
	}
	if text, ok := formCopy(page, s.Form); ok {
		children = append(children, termfmt.TreeItem{Label: f.icon("mail") + " Form (" + s.Form + ")", Value: text.Button})
	}
	if s.Next != nil {
		children = append(children, termfmt.TreeItem{Label: f.icon("arrow") + " " + s.Next.Label, Value: s.Next.Target.String()})
	}

	if n := len(children); n > 0 {
		children[n-1].Last = true
	}
	return children
}

func (f *terminalFormatter) writeContact(b *strings.Builder, page *site.Page) {
	if page.Contact.Email != "" {
		fmt.Fprintf(b, "%s %s\n", f.icon("mail"), page.Contact.Email)
	}
	if page.Contact.LinkedIn != "" {
		fmt.Fprintf(b, "%s %s\n", f.icon("link"), page.Contact.LinkedIn)
	}
	if page.Footer.Copyright != "" {
		b.WriteString(page.Footer.Copyright + "\n")
	}
}

// icon uses the site's own glyph set so --no-emoji applies
func (f *terminalFormatter) icon(key string) string {
	return emoji.GetEmoji(key)
}
