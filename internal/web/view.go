package web

import (
	"fmt"
	"html/template"
	"net/url"

	"github.com/yildizm/vss-site/internal/contact"
	"github.com/yildizm/vss-site/internal/disclosure"
	"github.com/yildizm/vss-site/internal/emoji"
	"github.com/yildizm/vss-site/internal/logger"
	"github.com/yildizm/vss-site/internal/navigator"
	"github.com/yildizm/vss-site/internal/site"
)

// pageQuery is the page state carried in the URL
type pageQuery struct {
	Open     []string
	Section  site.SectionID
	Audience contact.Audience
	Menu     bool
}

// parseQuery reads page state from query or form values. Unknown values
// fall back to the initial state.
func parseQuery(v url.Values) pageQuery {
	q := pageQuery{
		Open:     v["open"],
		Audience: contact.AudienceEntrepreneurs,
		Menu:     v.Get("menu") == "open",
	}
	if id, ok := site.ParseSectionID(v.Get("section")); ok {
		q.Section = id
	}
	if a, err := contact.ParseAudience(v.Get("audience")); err == nil {
		q.Audience = a
	}
	return q
}

type link struct {
	Label string
	Href  string
}

type navItem struct {
	Label  string
	Href   string
	Active bool
}

type pageView struct {
	Title    string
	Base     string
	Brand    site.Brand
	Apply    link
	Nav      []navItem
	MenuOpen bool
	MenuHref string
	Sections []sectionView
	Contact  site.ContactLinks
	Footer   site.Footer
}

type sectionView struct {
	ID        string
	Home      bool
	Label     string
	Heading   string
	Lead      string
	Body      template.HTML
	Actions   []link
	Groups    []site.CardGroup
	Steps     []site.Step
	Stats     []site.Stat
	Accordion *accordionView
	Callout   *calloutView
	Form      *formView
	Next      *link
}

type accordionView struct {
	Title string
	Items []itemView
}

type itemView struct {
	ID      string
	Summary string
	Detail  string
	Href    string
	Open    bool
}

type calloutView struct {
	Title  string
	Text   string
	Action *link
}

type tabView struct {
	Value  string
	Label  string
	Href   string
	Active bool
}

type formView struct {
	Flow        string
	Action      string
	Copy        site.FormCopy
	Form        contact.Form
	Audience    string
	Tabs        []tabView
	Full        bool // name and message inputs
	Placeholder string
	Problems    map[contact.Field]string
	Open        []string
	Sending     bool
	Success     bool
	Failed      bool
	Error       string
	Receipt     string
}

// renderState is everything one page render depends on
type renderState struct {
	page       *site.Page
	base       string
	query      pageQuery
	disclosure *disclosure.Controller
	forms      map[contact.Flow]contact.State
	invalid    map[contact.Flow]*contact.ValidationError
	log        *logger.Logger
}

// href builds a link to the page in the given state, anchored at fragment
func (st *renderState) href(open []string, section site.SectionID, audience contact.Audience, menu bool, fragment string) string {
	v := url.Values{}
	for _, id := range open {
		v.Add("open", id)
	}
	if section != "" && section != site.SectionHome {
		v.Set("section", section.String())
	}
	if audience != "" && audience != contact.AudienceEntrepreneurs {
		v.Set("audience", string(audience))
	}
	if menu {
		v.Set("menu", "open")
	}

	target := st.base
	if encoded := v.Encode(); encoded != "" {
		target += "?" + encoded
	}
	if fragment != "" {
		target += "#" + fragment
	}
	return target
}

// buildView resolves the URL state through the controllers and assembles
// the template data
func buildView(st *renderState) (*pageView, error) {
	q := st.query
	page := st.page

	menu := &navigator.Menu{}
	if q.Menu {
		menu.Open()
	}
	active := site.SectionHome
	if q.Section != "" {
		nav := navigator.New(navigator.ScrollerFunc(func(id site.SectionID, _ bool) bool {
			if _, ok := page.Section(id); !ok {
				return false
			}
			active = id
			return true
		}), menu, st.log)
		nav.Goto(q.Section)
	}

	open := st.disclosure.Open()
	view := &pageView{
		Title:    page.Brand.Name,
		Base:     st.base,
		Brand:    page.Brand,
		MenuOpen: menu.IsOpen(),
		MenuHref: st.href(open, active, q.Audience, !menu.IsOpen(), ""),
		Contact:  page.Contact,
		Footer:   page.Footer,
	}
	view.Apply = link{Label: page.Apply.Label, Href: st.href(open, page.Apply.Target, q.Audience, false, page.Apply.Target.String())}

	for i := range page.Sections {
		s := &page.Sections[i]
		view.Nav = append(view.Nav, navItem{
			Label:  page.NavLabel(s.ID),
			Href:   st.href(open, s.ID, q.Audience, false, s.ID.String()),
			Active: s.ID == active,
		})

		sv, err := st.section(s, open)
		if err != nil {
			return nil, err
		}
		view.Sections = append(view.Sections, sv)
	}
	return view, nil
}

func (st *renderState) section(s *site.Section, open []string) (sectionView, error) {
	body, err := site.RenderHTML(s.Body)
	if err != nil {
		return sectionView{}, fmt.Errorf("section %s: %w", s.ID, err)
	}

	audience := st.query.Audience
	sv := sectionView{
		ID:      s.ID.String(),
		Home:    s.ID == site.SectionHome,
		Label:   s.Label,
		Heading: s.Heading,
		Lead:    s.Lead,
		Body:    body,
		Groups:  s.Groups,
		Steps:   s.Steps,
		Stats:   s.Stats,
	}
	for _, action := range s.Actions {
		sv.Actions = append(sv.Actions, link{Label: action.Label, Href: st.href(open, action.Target, audience, false, action.Target.String())})
	}
	if s.Next != nil {
		sv.Next = &link{Label: s.Next.Label, Href: st.href(open, s.Next.Target, audience, false, s.Next.Target.String())}
	}

	if acc := s.Accordion; acc != nil {
		av := &accordionView{Title: acc.Title}
		for i, item := range acc.Items {
			id := disclosure.ItemID(acc.Prefix, i)
			av.Items = append(av.Items, itemView{
				ID:      id,
				Summary: item.Summary,
				Detail:  item.Detail,
				Href:    st.href(st.disclosure.NextFor(id), s.ID, audience, false, id),
				Open:    st.disclosure.IsOpen(id),
			})
		}
		sv.Accordion = av
	}

	if c := s.Callout; c != nil {
		cv := &calloutView{Title: c.Title, Text: c.Text}
		if c.Action != nil {
			cv.Action = &link{Label: c.Action.Label, Href: st.href(open, c.Action.Target, audience, false, c.Action.Target.String())}
		}
		sv.Callout = cv
	}

	if s.Form != "" {
		flow, err := contact.ParseFlow(s.Form)
		if err != nil {
			return sectionView{}, fmt.Errorf("section %s: %w", s.ID, err)
		}
		sv.Form = st.form(flow, s.ID, open)
	}
	return sv, nil
}

func (st *renderState) form(flow contact.Flow, section site.SectionID, open []string) *formView {
	text := st.page.Forms.EIR
	if flow == contact.FlowContact {
		text = st.page.Forms.Contact
	}

	state := st.forms[flow]
	audience := st.query.Audience
	if state.Audience != "" {
		audience = state.Audience
	}

	fv := &formView{
		Flow:        string(flow),
		Action:      st.base + "contact",
		Copy:        text,
		Form:        state.Form,
		Full:        flow == contact.FlowContact,
		Placeholder: audience.Placeholder(),
		Open:        open,
		Sending:     state.Status == contact.StatusSending,
		Success:     state.Status == contact.StatusSuccess,
		Failed:      state.Status == contact.StatusError,
		Receipt:     state.Receipt.ID,
	}
	if fv.Full {
		fv.Audience = string(audience)
		for _, a := range contact.Audiences() {
			fv.Tabs = append(fv.Tabs, tabView{
				Value:  string(a),
				Label:  a.Label(),
				Href:   st.href(open, section, a, false, section.String()),
				Active: a == audience,
			})
		}
	}
	if fv.Failed {
		fv.Error = text.Failure
		if fv.Error == "" {
			fv.Error = "Something went wrong. Please try again."
		}
	}
	if invalid := st.invalid[flow]; invalid != nil {
		fv.Problems = invalid.Fields
	}
	return fv
}

var templateFuncs = template.FuncMap{
	"icon": emoji.GetEmoji,
	"problem": func(problems map[contact.Field]string, field string) string {
		return problems[contact.Field(field)]
	},
	"inc": func(i int) int { return i + 1 },
}
