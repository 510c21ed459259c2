package ui

import (
	"strings"
	"testing"

	"github.com/yildizm/vss-site/internal/contact"
	"github.com/yildizm/vss-site/internal/disclosure"
	"github.com/yildizm/vss-site/internal/emoji"
	"github.com/yildizm/vss-site/internal/site"
)

func testState(page *site.Page, d *disclosure.Controller) pageState {
	return pageState{
		Page:       page,
		Disclosure: d,
		Forms:      map[contact.Flow]contact.State{},
		Invalid:    map[contact.Flow]*contact.ValidationError{},
		Focused:    -1,
		Width:      120,
	}
}

func TestLayoutExtentsFollowDocumentOrder(t *testing.T) {
	page := site.Default()
	layout := renderLayout(testState(page, disclosure.New(disclosure.ScopeShared)), GetStyles())

	next := 0
	for _, s := range page.Sections {
		extent, ok := layout.Extents[s.ID]
		if !ok {
			t.Fatalf("Expected extent for %s", s.ID)
		}
		if extent.Top != next {
			t.Errorf("Expected %s to start at line %d, got %d", s.ID, next, extent.Top)
		}
		if extent.Height <= 0 {
			t.Errorf("Expected %s to have a positive height, got %d", s.ID, extent.Height)
		}
		next = extent.Top + extent.Height
	}
	if next > len(layout.Lines) {
		t.Errorf("Extents end at %d but only %d lines were rendered", next, len(layout.Lines))
	}
}

func TestLayoutFocusables(t *testing.T) {
	page := site.Default()
	layout := renderLayout(testState(page, disclosure.New(disclosure.ScopeShared)), GetStyles())

	kinds := make(map[FocusKind]int)
	submits := make(map[contact.Flow]bool)
	previous := -1
	for _, f := range layout.Focus {
		if f.Line < previous {
			t.Errorf("Focusables out of order: line %d after %d", f.Line, previous)
		}
		if f.Line >= len(layout.Lines) {
			t.Errorf("Focusable line %d outside the document", f.Line)
		}
		extent := layout.Extents[f.Section]
		if f.Section != "" && !extent.Contains(f.Line) {
			t.Errorf("Focusable on line %d is not inside section %s", f.Line, f.Section)
		}
		kinds[f.Kind]++
		if f.Kind == FocusSubmit {
			submits[f.Flow] = true
		}
		previous = f.Line
	}

	items := 0
	for _, acc := range page.Accordions() {
		items += len(acc.Items)
	}
	if kinds[FocusDisclosure] != items {
		t.Errorf("Expected %d disclosure focusables, got %d", items, kinds[FocusDisclosure])
	}
	if kinds[FocusAudience] != len(contact.Audiences()) {
		t.Errorf("Expected %d audience tabs, got %d", len(contact.Audiences()), kinds[FocusAudience])
	}
	if !submits[contact.FlowEIR] || !submits[contact.FlowContact] {
		t.Errorf("Expected a submit button for both flows, got %v", submits)
	}
	if kinds[FocusLink] == 0 {
		t.Error("Expected in-page links")
	}
}

func TestLayoutOpenDisclosureAddsDetail(t *testing.T) {
	page := site.Default()
	accordions := page.Accordions()
	if len(accordions) == 0 {
		t.Skip("default content has no accordion")
	}
	id := disclosure.ItemID(accordions[0].Prefix, 0)

	d := disclosure.New(disclosure.ScopeShared)
	closed := renderLayout(testState(page, d), GetStyles())
	d.Toggle(id)
	open := renderLayout(testState(page, d), GetStyles())

	if len(open.Lines) <= len(closed.Lines) {
		t.Errorf("Expected more lines with %s open, got %d vs %d", id, len(open.Lines), len(closed.Lines))
	}
	if !strings.Contains(strings.Join(open.Lines, "\n"), emoji.GetEmoji("open")) {
		t.Error("Expected the open glyph for the expanded item")
	}
}

func TestLayoutShowsValidationProblems(t *testing.T) {
	page := site.Default()
	state := testState(page, disclosure.New(disclosure.ScopeShared))

	err := contact.Validate(contact.Form{}, contact.FlowEIR)
	verr, ok := err.(*contact.ValidationError)
	if !ok {
		t.Fatalf("Expected *ValidationError, got %T", err)
	}
	state.Invalid[contact.FlowEIR] = verr

	output := strings.Join(renderLayout(state, GetStyles()).Lines, "\n")
	for _, reason := range verr.Fields {
		if !strings.Contains(output, reason) {
			t.Errorf("Expected %q in the rendered form", reason)
		}
	}
}

func TestLayoutSendingLabel(t *testing.T) {
	page := site.Default()
	state := testState(page, disclosure.New(disclosure.ScopeShared))
	state.Forms[contact.FlowContact] = contact.State{Flow: contact.FlowContact, Status: contact.StatusSending}

	output := strings.Join(renderLayout(state, GetStyles()).Lines, "\n")
	if !strings.Contains(output, "Sending...") {
		t.Error("Expected the submit button to read Sending... while sending")
	}
}

func TestLayoutNarrowWidthClamps(t *testing.T) {
	page := site.Default()
	state := testState(page, disclosure.New(disclosure.ScopeShared))
	state.Width = 10

	layout := renderLayout(state, GetStyles())
	if len(layout.Lines) == 0 {
		t.Fatal("Expected a layout at tiny widths")
	}
	if len(layout.Extents) != len(page.Sections) {
		t.Errorf("Expected %d extents, got %d", len(page.Sections), len(layout.Extents))
	}
}
