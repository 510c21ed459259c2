// Package navigator moves the viewport to a page section on request.
package navigator

import (
	"sync"

	"github.com/yildizm/vss-site/internal/logger"
	"github.com/yildizm/vss-site/internal/site"
)

// Scroller is the rendering layer's scroll-into-view primitive. It returns
// false when the section is not rendered.
type Scroller interface {
	ScrollIntoView(id site.SectionID, smooth bool) bool
}

// ScrollerFunc adapts a function to Scroller
type ScrollerFunc func(id site.SectionID, smooth bool) bool

// ScrollIntoView implements Scroller
func (f ScrollerFunc) ScrollIntoView(id site.SectionID, smooth bool) bool {
	return f(id, smooth)
}

// Menu is the open/closed state of the collapsed (narrow viewport) navigation
type Menu struct {
	mu   sync.Mutex
	open bool
}

// IsOpen reports whether the menu is expanded
func (m *Menu) IsOpen() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.open
}

// Toggle flips the menu and returns the new state
func (m *Menu) Toggle() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.open = !m.open
	return m.open
}

// Open expands the menu
func (m *Menu) Open() {
	m.mu.Lock()
	m.open = true
	m.mu.Unlock()
}

// Close collapses the menu
func (m *Menu) Close() {
	m.mu.Lock()
	m.open = false
	m.mu.Unlock()
}

// Navigator handles nav-bar clicks and in-content "next section" links
type Navigator struct {
	scroller Scroller
	menu     *Menu
	smooth   bool
	log      *logger.Logger
}

// New creates a navigator. A nil log discards diagnostics.
func New(scroller Scroller, menu *Menu, log *logger.Logger) *Navigator {
	if menu == nil {
		menu = &Menu{}
	}
	return &Navigator{
		scroller: scroller,
		menu:     menu,
		smooth:   true,
		log:      log,
	}
}

// SetSmooth selects animated (default) or instant scrolling
func (n *Navigator) SetSmooth(smooth bool) {
	n.smooth = smooth
}

// Menu returns the navigation menu state
func (n *Navigator) Menu() *Menu {
	return n.menu
}

// Goto scrolls id into view and closes the menu. Unknown or unrendered
// sections leave the viewport where it is; the menu is closed either way.
func (n *Navigator) Goto(id site.SectionID) bool {
	scrolled := false
	if id.Valid() && n.scroller != nil {
		scrolled = n.scroller.ScrollIntoView(id, n.smooth)
	}
	if !scrolled && n.log != nil {
		n.log.DebugWithFields("section not rendered, not scrolling", []logger.Field{logger.F("section", id)})
	}
	n.menu.Close()
	return scrolled
}
