package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/yildizm/vss-site/internal/contact"
	"github.com/yildizm/vss-site/internal/disclosure"
	"github.com/yildizm/vss-site/internal/emoji"
	"github.com/yildizm/vss-site/internal/site"
	"github.com/yildizm/vss-site/internal/tracker"
)

// FocusKind identifies what activating a focusable element does
type FocusKind int

const (
	FocusLink FocusKind = iota
	FocusDisclosure
	FocusAudience
	FocusField
	FocusConsent
	FocusSubmit
)

// Focusable is an element reachable with tab
type Focusable struct {
	Kind    FocusKind
	Line    int
	Section site.SectionID

	Target     site.SectionID   // FocusLink
	Disclosure string           // FocusDisclosure
	Audience   contact.Audience // FocusAudience
	Flow       contact.Flow     // FocusField, FocusConsent, FocusSubmit
	Field      contact.Field    // FocusField
}

// Layout is the rendered document: its lines, where each section sits and
// what can be focused
type Layout struct {
	Lines   []string
	Extents tracker.Extents
	Focus   []Focusable
}

// pageState is everything a layout depends on
type pageState struct {
	Page       *site.Page
	Disclosure *disclosure.Controller
	Forms      map[contact.Flow]contact.State
	Invalid    map[contact.Flow]*contact.ValidationError
	Focused    int
	Editing    bool
	Width      int
}

const (
	minContentWidth = 24
	maxContentWidth = 110
	cardMinWidth    = 34
)

// renderLayout lays the whole page out at state.Width columns
func renderLayout(state pageState, styles *Styles) Layout {
	width := state.Width - 4
	if width > maxContentWidth {
		width = maxContentWidth
	}
	if width < minContentWidth {
		width = minContentWidth
	}

	b := &builder{
		state:   state,
		styles:  styles,
		width:   width,
		extents: make(tracker.Extents),
	}
	for i := range state.Page.Sections {
		b.section(&state.Page.Sections[i])
	}
	b.footer()

	return Layout{Lines: b.lines, Extents: b.extents, Focus: b.focus}
}

type builder struct {
	state   pageState
	styles  *Styles
	width   int
	lines   []string
	focus   []Focusable
	extents tracker.Extents
	current site.SectionID
}

func (b *builder) add(block string) {
	b.lines = append(b.lines, strings.Split(block, "\n")...)
}

func (b *builder) blank() {
	b.lines = append(b.lines, "")
}

func (b *builder) wrap(style lipgloss.Style, text string) {
	if strings.TrimSpace(text) == "" {
		return
	}
	b.add(style.Width(b.width).Render(text))
}

// mark registers f on the current line and returns text rendered with
// style, or with the focused style when f has focus
func (b *builder) mark(f Focusable, style lipgloss.Style, text string) string {
	return b.markWidth(f, style, 0, text)
}

func (b *builder) markWidth(f Focusable, style lipgloss.Style, width int, text string) string {
	f.Line = len(b.lines)
	f.Section = b.current
	if len(b.focus) == b.state.Focused {
		style = b.styles.Focused
	}
	if width > 0 {
		style = style.Width(width)
	}
	b.focus = append(b.focus, f)
	return style.Render(text)
}

// focusable adds a full-width focusable block
func (b *builder) focusable(f Focusable, style lipgloss.Style, text string) {
	b.add(b.markWidth(f, style, b.width, text))
}

func (b *builder) section(s *site.Section) {
	b.current = s.ID
	top := len(b.lines)

	if s.ID == site.SectionHome {
		brand := b.state.Page.Brand
		b.add(b.styles.Stat.Render(brand.Name))
		b.add(b.styles.Muted.Render(brand.Motto))
		b.blank()
	} else {
		b.add(b.styles.Muted.Render(strings.ToUpper(s.Label)))
	}
	b.wrap(b.styles.Heading, s.Heading)
	b.wrap(b.styles.Lead, s.Lead)
	b.blank()

	for _, paragraph := range site.Paragraphs(s.Body) {
		b.wrap(b.styles.Body, paragraph)
		b.blank()
	}

	if len(s.Actions) > 0 {
		parts := make([]string, 0, len(s.Actions))
		for _, action := range s.Actions {
			parts = append(parts, b.mark(Focusable{Kind: FocusLink, Target: action.Target}, b.styles.Button, action.Label))
		}
		b.add(strings.Join(parts, "  "))
		b.blank()
	}

	for _, group := range s.Groups {
		b.cards(group)
	}
	if len(s.Steps) > 0 {
		b.steps(s.Steps)
	}
	if len(s.Stats) > 0 {
		b.stats(s.Stats)
	}
	if s.Accordion != nil {
		b.accordion(s.Accordion)
	}
	if s.Callout != nil {
		b.callout(s.Callout)
	}
	switch s.Form {
	case string(contact.FlowEIR):
		b.form(contact.FlowEIR, b.state.Page.Forms.EIR)
	case string(contact.FlowContact):
		b.form(contact.FlowContact, b.state.Page.Forms.Contact)
	}
	if s.Next != nil {
		b.focusable(Focusable{Kind: FocusLink, Target: s.Next.Target}, b.styles.Link, emoji.GetEmoji("arrow")+" "+s.Next.Label)
	}

	b.blank()
	b.add(b.styles.NavRule.Render(strings.Repeat("─", b.width)))
	b.blank()

	b.extents[s.ID] = tracker.Extent{Top: top, Height: len(b.lines) - top}
}

func (b *builder) cards(group site.CardGroup) {
	if group.Title != "" {
		b.add(b.styles.Summary.Render(group.Title))
	}
	if len(group.Cards) == 0 {
		return
	}

	columns := b.width / cardMinWidth
	if columns < 1 {
		columns = 1
	}
	if columns > 3 {
		columns = 3
	}
	if columns > len(group.Cards) {
		columns = len(group.Cards)
	}
	cardWidth := b.width/columns - 2

	rendered := make([]string, 0, len(group.Cards))
	for _, card := range group.Cards {
		var content []string
		title := card.Title
		if card.Icon != "" {
			title = emoji.GetEmoji(card.Icon) + " " + title
		}
		content = append(content, b.styles.Summary.Render(title))
		if card.Text != "" {
			content = append(content, b.styles.Body.Render(card.Text))
		}
		for _, item := range card.Items {
			content = append(content, b.styles.Body.Render("• "+item))
		}
		rendered = append(rendered, b.styles.Card.Width(cardWidth).Render(strings.Join(content, "\n")))
	}

	for start := 0; start < len(rendered); start += columns {
		end := start + columns
		if end > len(rendered) {
			end = len(rendered)
		}
		b.add(lipgloss.JoinHorizontal(lipgloss.Top, rendered[start:end]...))
	}
	b.blank()
}

func (b *builder) steps(steps []site.Step) {
	for i, step := range steps {
		b.add(b.styles.Stat.Render(fmt.Sprintf("%d. %s", i+1, step.When)) + "  " + b.styles.Summary.Render(step.Title))
		b.add(b.styles.Detail.Width(b.width).Render(step.Text))
	}
	b.blank()
}

func (b *builder) stats(stats []site.Stat) {
	parts := make([]string, 0, len(stats))
	for _, stat := range stats {
		parts = append(parts, b.styles.Stat.Render(stat.Value)+" "+b.styles.Muted.Render(stat.Label))
	}
	b.wrap(lipgloss.NewStyle(), strings.Join(parts, "   "))
	b.blank()
}

func (b *builder) accordion(acc *site.Accordion) {
	if acc.Title != "" {
		b.add(b.styles.Heading.Render(acc.Title))
	}
	for i, item := range acc.Items {
		id := disclosure.ItemID(acc.Prefix, i)
		open := b.state.Disclosure.IsOpen(id)
		glyph := emoji.GetEmoji("closed")
		if open {
			glyph = emoji.GetEmoji("open")
		}
		b.focusable(Focusable{Kind: FocusDisclosure, Disclosure: id}, b.styles.Summary, glyph+" "+item.Summary)
		if open {
			b.add(b.styles.Detail.Width(b.width).Render(item.Detail))
		}
	}
	b.blank()
}

func (b *builder) callout(c *site.Callout) {
	content := b.styles.Summary.Render(c.Title)
	if c.Text != "" {
		content += "\n" + b.styles.Body.Render(c.Text)
	}
	b.add(b.styles.Callout.Width(b.width - 2).Render(content))
	if c.Action != nil {
		b.add(b.mark(Focusable{Kind: FocusLink, Target: c.Action.Target}, b.styles.Button, c.Action.Label))
	}
	b.blank()
}

func (b *builder) form(flow contact.Flow, text site.FormCopy) {
	state := b.state.Forms[flow]
	invalid := b.state.Invalid[flow]

	if text.Title != "" {
		b.add(b.styles.Heading.Render(text.Title))
	}
	b.wrap(b.styles.Muted, text.Text)

	if flow == contact.FlowContact {
		parts := []string{}
		for _, audience := range contact.Audiences() {
			style := b.styles.TabOff
			if audience == state.Audience {
				style = b.styles.TabOn
			}
			parts = append(parts, b.mark(Focusable{Kind: FocusAudience, Audience: audience, Flow: flow}, style, audience.Label()))
		}
		b.add(strings.Join(parts, " "))
	}

	for _, field := range flow.Fields() {
		if field == contact.FieldConsent {
			glyph := emoji.GetEmoji("unchecked")
			if state.Form.Consent {
				glyph = emoji.GetEmoji("checked")
			}
			b.focusable(Focusable{Kind: FocusConsent, Flow: flow}, b.styles.Body, glyph+" "+text.Consent)
		} else {
			b.focusable(Focusable{Kind: FocusField, Flow: flow, Field: field}, b.styles.Input, b.fieldText(flow, field, state))
		}
		if invalid != nil {
			if reason, ok := invalid.Fields[field]; ok {
				b.add(b.styles.Error.Render("  ! " + reason))
			}
		}
	}

	label := text.Button
	if state.Status == contact.StatusSending {
		label = "Sending..."
	}
	b.add(b.mark(Focusable{Kind: FocusSubmit, Flow: flow}, b.styles.Button, "[ "+label+" ]"))

	switch state.Status {
	case contact.StatusSending:
		b.add(b.styles.Warning.Render(emoji.GetEmoji("sending") + " Sending..."))
	case contact.StatusSuccess:
		b.wrap(b.styles.Success, emoji.GetEmoji("success")+" "+text.Success)
	case contact.StatusError:
		failure := text.Failure
		if failure == "" {
			failure = "Something went wrong. Please try again."
		}
		b.wrap(b.styles.Error, emoji.GetEmoji("error")+" "+failure)
		if state.Err != nil {
			b.wrap(b.styles.Muted, state.Err.Error())
		}
	}
	b.blank()
}

var fieldLabels = map[contact.Field]string{
	contact.FieldName:    "Name",
	contact.FieldEmail:   "Email",
	contact.FieldMessage: "Message",
}

func (b *builder) fieldText(flow contact.Flow, field contact.Field, state contact.State) string {
	value := state.Form.Text(field)
	editing := b.state.Editing && len(b.focus) == b.state.Focused

	display := value
	if editing {
		display += "▌"
	} else if value == "" {
		display = placeholder(field, state.Audience)
	}

	label := fieldLabels[field]
	if flow.Required(field) {
		label += "*"
	}
	return fmt.Sprintf("%-9s %s", label+":", display)
}

func placeholder(field contact.Field, audience contact.Audience) string {
	switch field {
	case contact.FieldName:
		return "Your name"
	case contact.FieldEmail:
		return "you@example.com"
	case contact.FieldMessage:
		if audience == "" {
			audience = contact.AudienceEntrepreneurs
		}
		return audience.Placeholder()
	}
	return ""
}

func (b *builder) footer() {
	links := b.state.Page.Contact
	if links.Email != "" {
		b.add(b.styles.Link.Render(emoji.GetEmoji("mail") + " " + links.Email))
	}
	if links.LinkedIn != "" {
		b.add(b.styles.Link.Render(emoji.GetEmoji("link") + " " + links.LinkedIn))
	}
	b.blank()
	b.wrap(b.styles.Muted, b.state.Page.Footer.Copyright)
}
