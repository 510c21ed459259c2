package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/yildizm/vss-site/internal/contact"
	"github.com/yildizm/vss-site/internal/disclosure"
	"github.com/yildizm/vss-site/internal/emoji"
	"github.com/yildizm/vss-site/internal/logger"
	"github.com/yildizm/vss-site/internal/navigator"
	"github.com/yildizm/vss-site/internal/site"
	"github.com/yildizm/vss-site/internal/tracker"
)

// Options configures the terminal browser
type Options struct {
	Page            *site.Page
	ContentPath     string // watched for changes when Watch is set
	Watch           bool
	Submitter       contact.Submitter
	SubmitTimeout   time.Duration
	ClearOnSuccess  bool
	DisclosureScope disclosure.Scope
	ScrollOffset    int // lines hidden under the nav bar
	SmoothScroll    bool
	ScrollFrame     time.Duration
	NarrowWidth     int
	Logger          *logger.Logger
}

const (
	navHeight        = 2
	defaultFrame     = 16 * time.Millisecond
	wheelStep        = 3
	fallbackWidth    = 80
	fallbackHeight   = 24
	maxScrollDivisor = 4
)

// BrowserModel renders the page into a scrollable viewport below a sticky
// navigation bar
type BrowserModel struct {
	opts   Options
	page   *site.Page
	styles *Styles
	log    *logger.Logger

	width    int
	height   int
	ready    bool
	quitting bool

	layout    Layout
	y         int
	targetY   int
	animating bool
	ticking   bool

	feed      *tracker.Feed
	tracker   *tracker.Tracker
	detach    func()
	navigator *navigator.Navigator

	disclosure *disclosure.Controller
	audience   *contact.Selector
	forms      map[contact.Flow]*contact.Controller
	invalid    map[contact.Flow]*contact.ValidationError

	focused int
	editing bool
	notice  string

	ctx    context.Context
	cancel context.CancelFunc
}

// NewBrowserModel creates a browser for opts.Page. Submissions run under ctx.
func NewBrowserModel(ctx context.Context, opts Options) *BrowserModel {
	if opts.Page == nil {
		opts.Page = site.Default()
	}
	if opts.ScrollFrame <= 0 {
		opts.ScrollFrame = defaultFrame
	}
	if opts.Logger == nil {
		opts.Logger = logger.Discard()
	}
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithCancel(ctx)

	m := &BrowserModel{
		opts:       opts,
		page:       opts.Page,
		styles:     GetStyles(),
		log:        opts.Logger.WithComponent("browse"),
		width:      fallbackWidth,
		height:     fallbackHeight,
		feed:       tracker.NewFeed(),
		tracker:    tracker.New(nil, opts.ScrollOffset),
		disclosure: disclosure.New(opts.DisclosureScope),
		audience:   contact.NewSelector(),
		invalid:    make(map[contact.Flow]*contact.ValidationError),
		focused:    -1,
		ctx:        ctx,
		cancel:     cancel,
	}

	m.navigator = navigator.New(m, nil, m.log)
	m.navigator.SetSmooth(opts.SmoothScroll)

	common := []contact.Option{
		contact.WithTimeout(opts.SubmitTimeout),
		contact.WithLogger(opts.Logger.WithComponent("contact")),
		contact.WithClearOnSuccess(opts.ClearOnSuccess),
	}
	m.forms = map[contact.Flow]*contact.Controller{
		contact.FlowEIR:     contact.NewController(contact.FlowEIR, opts.Submitter, common...),
		contact.FlowContact: contact.NewController(contact.FlowContact, opts.Submitter, append(common, contact.WithAudience(m.audience))...),
	}

	m.tracker.OnChange(func(id site.SectionID) {
		m.log.DebugWithFields("active section changed", []logger.Field{logger.Section(id)})
	})

	m.relayout()
	return m
}

// Init attaches the section tracker to the viewport's scroll feed
func (m *BrowserModel) Init() tea.Cmd {
	if m.detach == nil {
		m.detach = m.tracker.Attach(m.feed)
	}
	return nil
}

// Update handles messages and relays the page afterwards
func (m *BrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	model, cmd := m.dispatch(msg)
	if !m.quitting {
		m.relayout()
	}
	return model, cmd
}

func (m *BrowserModel) dispatch(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleWindowResize(msg)
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	case tea.MouseMsg:
		return m.handleMouse(msg)
	case scrollFrameMsg:
		return m.handleScrollFrame()
	case submitResultMsg:
		return m.handleSubmitResult(msg)
	case contentReloadedMsg:
		return m.handleContentReloaded(msg)
	case contentErrorMsg:
		m.notice = emoji.GetEmoji("error") + " content reload failed"
		m.log.WarnWithFields("content reload failed", []logger.Field{logger.Error(msg.err)})
	}
	return m, nil
}

// Active returns the highlighted section
func (m *BrowserModel) Active() site.SectionID {
	return m.tracker.Active()
}

// ScrollY returns the document line at the top of the viewport
func (m *BrowserModel) ScrollY() int {
	return m.y
}

// Layout returns the current document layout
func (m *BrowserModel) Layout() Layout {
	return m.layout
}

// Disclosure returns the accordion state
func (m *BrowserModel) Disclosure() *disclosure.Controller {
	return m.disclosure
}

// Form returns the controller of a flow
func (m *BrowserModel) Form(flow contact.Flow) *contact.Controller {
	return m.forms[flow]
}

// MenuOpen reports whether the collapsed navigation menu is expanded
func (m *BrowserModel) MenuOpen() bool {
	return m.navigator.Menu().IsOpen()
}

// ScrollIntoView implements navigator.Scroller
func (m *BrowserModel) ScrollIntoView(id site.SectionID, smooth bool) bool {
	extent, ok := m.layout.Extents[id]
	if !ok {
		return false
	}
	m.scrollTo(extent.Top, smooth)
	return true
}

func (m *BrowserModel) relayout() {
	forms := make(map[contact.Flow]contact.State, len(m.forms))
	for flow, c := range m.forms {
		forms[flow] = c.State()
	}

	m.layout = renderLayout(pageState{
		Page:       m.page,
		Disclosure: m.disclosure,
		Forms:      forms,
		Invalid:    m.invalid,
		Focused:    m.focused,
		Editing:    m.editing,
		Width:      m.width,
	}, m.styles)
	m.tracker.SetGeometry(m.layout.Extents)

	if m.focused >= len(m.layout.Focus) {
		m.focused = -1
		m.editing = false
	}
	m.targetY = m.clamp(m.targetY)
	m.setY(m.y)
}

func (m *BrowserModel) viewHeight() int {
	h := m.height - navHeight - 1
	if h < 1 {
		return 1
	}
	return h
}

// maxScroll lets the last section reach the top of the view even when it is
// shorter than the view; the rows below it render blank
func (m *BrowserModel) maxScroll() int {
	limit := len(m.layout.Lines) - m.viewHeight()
	if n := len(m.page.Sections); n > 0 {
		if extent, ok := m.layout.Extents[m.page.Sections[n-1].ID]; ok && extent.Top > limit {
			limit = extent.Top
		}
	}
	if limit < 0 {
		return 0
	}
	return limit
}

func (m *BrowserModel) clamp(y int) int {
	if y > m.maxScroll() {
		y = m.maxScroll()
	}
	if y < 0 {
		y = 0
	}
	return y
}

// setY moves the viewport and reports the new position to the scroll feed
func (m *BrowserModel) setY(y int) {
	y = m.clamp(y)
	if y == m.y {
		return
	}
	m.y = y
	m.feed.Scroll(y)
}

func (m *BrowserModel) scrollBy(delta int) {
	m.animating = false
	m.setY(m.y + delta)
}

func (m *BrowserModel) scrollTo(target int, smooth bool) {
	target = m.clamp(target)
	if !smooth {
		m.animating = false
		m.setY(target)
		return
	}
	m.targetY = target
	m.animating = target != m.y
}

// animation returns the frame command when a smooth scroll is pending
func (m *BrowserModel) animation() tea.Cmd {
	if !m.animating || m.ticking {
		return nil
	}
	m.ticking = true
	return scrollFrame(m.opts.ScrollFrame)
}

func (m *BrowserModel) narrow() bool {
	return m.width < m.opts.NarrowWidth
}

// Handler functions for Update method

// handleWindowResize handles window resize events
func (m *BrowserModel) handleWindowResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.ready = true
	if !m.narrow() {
		m.navigator.Menu().Close()
	}
	return m, nil
}

// handleScrollFrame advances a smooth scroll by a fraction of the distance
func (m *BrowserModel) handleScrollFrame() (tea.Model, tea.Cmd) {
	m.ticking = false
	if !m.animating {
		return m, nil
	}

	diff := m.targetY - m.y
	step := diff / maxScrollDivisor
	if step == 0 {
		switch {
		case diff > 0:
			step = 1
		case diff < 0:
			step = -1
		}
	}
	m.setY(m.y + step)

	if m.y == m.targetY || step == 0 {
		m.animating = false
		return m, nil
	}
	return m, m.animation()
}

// handleKeyPress handles keyboard input
func (m *BrowserModel) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.editing {
		return m.handleEditKey(msg)
	}

	key := msg.String()
	switch key {
	case "q", "ctrl+c":
		return m.handleQuit()
	case "esc":
		return m.handleEscape()
	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		return m.handleNumberKey(key)
	case "m":
		m.navigator.Menu().Toggle()
	case "a":
		m.navigator.Goto(m.page.Apply.Target)
		return m, m.animation()
	case "tab":
		m.moveFocus(1)
	case "shift+tab":
		m.moveFocus(-1)
	case "enter":
		return m.handleSelection()
	case " ":
		if m.focused >= 0 {
			return m.handleSelection()
		}
		m.scrollBy(m.viewHeight() - 1)
	case "down", "j":
		m.scrollBy(1)
	case "up", "k":
		m.scrollBy(-1)
	case "pgdown", "f":
		m.scrollBy(m.viewHeight() - 1)
	case "pgup", "b":
		m.scrollBy(-(m.viewHeight() - 1))
	case "home", "g":
		m.scrollTo(0, false)
	case "end", "G":
		m.scrollTo(m.maxScroll(), false)
	}
	return m, nil
}

// handleEditKey edits the focused text field
func (m *BrowserModel) handleEditKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.focused < 0 || m.focused >= len(m.layout.Focus) {
		m.editing = false
		return m, nil
	}
	f := m.layout.Focus[m.focused]
	c := m.forms[f.Flow]
	value := c.Form().Text(f.Field)

	switch msg.Type {
	case tea.KeyCtrlC:
		return m.handleQuit()
	case tea.KeyEnter, tea.KeyEsc:
		m.editing = false
		return m, nil
	case tea.KeyTab:
		m.editing = false
		m.moveFocus(1)
		return m, nil
	case tea.KeyShiftTab:
		m.editing = false
		m.moveFocus(-1)
		return m, nil
	case tea.KeyBackspace:
		runes := []rune(value)
		if len(runes) == 0 {
			return m, nil
		}
		value = string(runes[:len(runes)-1])
	case tea.KeySpace:
		value += " "
	case tea.KeyRunes:
		value += string(msg.Runes)
	default:
		return m, nil
	}

	if err := c.UpdateField(f.Field, value); err != nil {
		m.log.WarnWithFields("field update rejected", []logger.Field{logger.Error(err)})
	}
	delete(m.invalid, f.Flow)
	return m, nil
}

// handleMouse scrolls on wheel events
func (m *BrowserModel) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action != tea.MouseActionPress {
		return m, nil
	}
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.scrollBy(-wheelStep)
	case tea.MouseButtonWheelDown:
		m.scrollBy(wheelStep)
	}
	return m, nil
}

// handleQuit tears the browser down
func (m *BrowserModel) handleQuit() (tea.Model, tea.Cmd) {
	m.quitting = true
	m.teardown()
	return m, tea.Quit
}

func (m *BrowserModel) teardown() {
	if m.detach != nil {
		m.detach()
		m.detach = nil
	}
	for _, c := range m.forms {
		c.Cancel()
	}
	m.cancel()
}

// handleEscape closes the menu, or else drops focus
func (m *BrowserModel) handleEscape() (tea.Model, tea.Cmd) {
	if m.navigator.Menu().IsOpen() {
		m.navigator.Menu().Close()
		return m, nil
	}
	m.focused = -1
	return m, nil
}

// handleNumberKey jumps to the n-th section
func (m *BrowserModel) handleNumberKey(key string) (tea.Model, tea.Cmd) {
	index := int(key[0] - '1')
	if index < 0 || index >= len(m.page.Sections) {
		return m, nil
	}
	m.navigator.Goto(m.page.Sections[index].ID)
	m.focused = -1
	return m, m.animation()
}

func (m *BrowserModel) visible(line int) bool {
	return line >= m.y && line < m.y+m.viewHeight()
}

// moveFocus steps focus forward or back, starting from the viewport when
// nothing visible has focus
func (m *BrowserModel) moveFocus(delta int) {
	n := len(m.layout.Focus)
	if n == 0 {
		return
	}

	if m.focused < 0 || !m.visible(m.layout.Focus[m.focused].Line) {
		m.focused = -1
		if delta > 0 {
			for i, f := range m.layout.Focus {
				if f.Line >= m.y {
					m.focused = i
					break
				}
			}
			if m.focused < 0 {
				m.focused = 0
			}
		} else {
			for i := n - 1; i >= 0; i-- {
				if m.layout.Focus[i].Line < m.y+m.viewHeight() {
					m.focused = i
					break
				}
			}
			if m.focused < 0 {
				m.focused = n - 1
			}
		}
	} else {
		m.focused = (m.focused + delta + n) % n
	}

	line := m.layout.Focus[m.focused].Line
	switch {
	case line < m.y:
		m.scrollBy(line - m.y)
	case line >= m.y+m.viewHeight():
		m.scrollBy(line - (m.y + m.viewHeight()) + 2)
	}
}

// handleSelection activates the focused element
func (m *BrowserModel) handleSelection() (tea.Model, tea.Cmd) {
	if m.focused < 0 || m.focused >= len(m.layout.Focus) {
		return m, nil
	}
	f := m.layout.Focus[m.focused]

	switch f.Kind {
	case FocusLink:
		m.navigator.Goto(f.Target)
		m.focused = -1
		return m, m.animation()
	case FocusDisclosure:
		m.disclosure.Toggle(f.Disclosure)
	case FocusAudience:
		m.audience.Select(f.Audience)
	case FocusField:
		m.editing = true
	case FocusConsent:
		c := m.forms[f.Flow]
		c.SetConsent(!c.Form().Consent)
		delete(m.invalid, f.Flow)
	case FocusSubmit:
		return m, m.submit(f.Flow)
	}
	return m, nil
}

// submit validates the flow's form and starts sending it
func (m *BrowserModel) submit(flow contact.Flow) tea.Cmd {
	c := m.forms[flow]
	if err := contact.Validate(c.Form(), flow); err != nil {
		var verr *contact.ValidationError
		if errors.As(err, &verr) {
			m.invalid[flow] = verr
		}
		return nil
	}
	delete(m.invalid, flow)

	done, err := c.Submit(m.ctx)
	if err != nil {
		m.notice = "A submission is already being sent"
		return nil
	}
	m.notice = ""
	return waitForOutcome(flow, done)
}

// handleSubmitResult reports a finished submission
func (m *BrowserModel) handleSubmitResult(msg submitResultMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.outcome.Stale:
		m.log.DebugWithFields("ignoring stale submission", []logger.Field{logger.F("flow", msg.flow)})
	case msg.outcome.Err != nil:
		m.notice = emoji.GetEmoji("error") + " submission failed"
	default:
		m.notice = emoji.GetEmoji("success") + " submission received"
	}
	return m, nil
}

// handleContentReloaded swaps in freshly loaded content
func (m *BrowserModel) handleContentReloaded(msg contentReloadedMsg) (tea.Model, tea.Cmd) {
	if msg.page == nil {
		return m, nil
	}
	m.page = msg.page
	m.notice = "content reloaded"
	m.log.Info("content reloaded")
	return m, nil
}

// View renders the nav bar, the visible part of the page and a help line
func (m *BrowserModel) View() string {
	if !m.ready {
		return lipgloss.Place(fallbackWidth, fallbackHeight, lipgloss.Center, lipgloss.Center,
			m.styles.Brand.Render("Loading "+m.page.Brand.Name+"..."))
	}
	if m.quitting {
		return ""
	}

	body := make([]string, 0, m.viewHeight())
	for i := m.y; i < m.y+m.viewHeight(); i++ {
		line := ""
		if i < len(m.layout.Lines) {
			line = "  " + m.layout.Lines[i]
		}
		body = append(body, line)
	}
	if m.narrow() && m.navigator.Menu().IsOpen() {
		for i, line := range strings.Split(m.renderMenu(), "\n") {
			if i < len(body) {
				body[i] = line
			}
		}
	}

	clip := lipgloss.NewStyle().MaxWidth(m.width)
	lines := append(strings.Split(m.renderNav(), "\n"), body...)
	lines = append(lines, m.renderHelp())
	for i := range lines {
		lines[i] = clip.Render(lines[i])
	}
	return strings.Join(lines, "\n")
}

func (m *BrowserModel) renderNav() string {
	active := m.tracker.Active()
	brand := m.styles.Brand.Render(m.page.Brand.Short)

	var bar string
	if m.narrow() {
		current := m.styles.NavActive.Render(m.page.NavLabel(active))
		menu := m.styles.NavItem.Render(emoji.GetEmoji("menu") + " Menu (m)")
		bar = brand + current + menu
	} else {
		items := make([]string, 0, len(m.page.Sections)+2)
		items = append(items, brand)
		for i, s := range m.page.Sections {
			style := m.styles.NavItem
			if s.ID == active {
				style = m.styles.NavActive
			}
			items = append(items, style.Render(fmt.Sprintf("%d %s", i+1, m.page.NavLabel(s.ID))))
		}
		items = append(items, m.styles.Button.Render(m.page.Apply.Label+" (a)"))
		bar = strings.Join(items, "")
	}

	return bar + "\n" + m.styles.NavRule.Render(strings.Repeat("─", m.width))
}

func (m *BrowserModel) renderMenu() string {
	active := m.tracker.Active()
	entries := make([]string, 0, len(m.page.Sections)+1)
	for i, s := range m.page.Sections {
		style := m.styles.NavItem
		if s.ID == active {
			style = m.styles.NavActive
		}
		entries = append(entries, style.Render(fmt.Sprintf("%d  %s", i+1, m.page.NavLabel(s.ID))))
	}
	entries = append(entries, m.styles.Button.Render(m.page.Apply.Label+" (a)"))
	return m.styles.Card.Render(strings.Join(entries, "\n"))
}

func (m *BrowserModel) renderHelp() string {
	var help string
	if m.editing {
		help = "type to edit • enter/esc done • tab next field"
	} else {
		help = fmt.Sprintf("1-%d jump • tab focus • enter select • j/k scroll • m menu • q quit", len(m.page.Sections))
	}
	if m.notice != "" {
		help = m.notice + "  " + help
	}
	return m.styles.HelpLine.Render(help)
}

// Run starts the browser and blocks until the user quits or ctx ends
func Run(ctx context.Context, opts Options) error {
	model := NewBrowserModel(ctx, opts)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))

	if opts.Watch && opts.ContentPath != "" {
		watchCtx, cancel := context.WithCancel(ctx)
		defer cancel()

		watcher := site.NewWatcher(opts.ContentPath,
			func(page *site.Page) { program.Send(ContentReloaded(page)) },
			func(err error) { program.Send(ContentError(err)) },
		)
		go func() {
			if err := watcher.Run(watchCtx); err != nil {
				model.log.WarnWithFields("content watcher stopped", []logger.Field{logger.Error(err)})
			}
		}()
	}

	_, err := program.Run()
	model.teardown()
	if err != nil && ctx.Err() != nil {
		return nil
	}
	return err
}
