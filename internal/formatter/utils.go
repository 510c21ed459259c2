package formatter

import (
	"github.com/yildizm/vss-site/internal/disclosure"
	"github.com/yildizm/vss-site/internal/site"
)

// Totals counts the content blocks of a page
type Totals struct {
	Sections    int `json:"sections"`
	Cards       int `json:"cards"`
	Steps       int `json:"steps"`
	Disclosures int `json:"disclosures"`
	Forms       int `json:"forms"`
}

func countContent(page *site.Page) Totals {
	var t Totals
	for _, s := range page.Sections {
		t.Sections++
		for _, group := range s.Groups {
			t.Cards += len(group.Cards)
		}
		t.Steps += len(s.Steps)
		if s.Accordion != nil {
			t.Disclosures += len(s.Accordion.Items)
		}
		if s.Form != "" {
			t.Forms++
		}
	}
	return t
}

// disclosureIDs returns the identifiers of an accordion's items
func disclosureIDs(acc *site.Accordion) []string {
	ids := make([]string, len(acc.Items))
	for i := range acc.Items {
		ids[i] = disclosure.ItemID(acc.Prefix, i)
	}
	return ids
}

// formCopy returns the copy of the form a section hosts
func formCopy(page *site.Page, form string) (site.FormCopy, bool) {
	switch form {
	case "eir":
		return page.Forms.EIR, true
	case "contact":
		return page.Forms.Contact, true
	}
	return site.FormCopy{}, false
}
