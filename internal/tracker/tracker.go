// Package tracker decides which page section is in view for a scroll position.
package tracker

import (
	"sync"

	"github.com/yildizm/vss-site/internal/site"
)

// DefaultForwardOffset is added to the scroll position so the highlight
// switches slightly before a section's top edge reaches the viewport top,
// compensating for the sticky navbar
const DefaultForwardOffset = 100

// Extent is the vertical position of a rendered section
type Extent struct {
	Top    int
	Height int
}

// Contains reports whether y falls within [Top, Top+Height)
func (e Extent) Contains(y int) bool {
	return y >= e.Top && y < e.Top+e.Height
}

// Geometry resolves section positions from the rendering layer. ok is false
// while a section is not rendered yet.
type Geometry interface {
	Extent(id site.SectionID) (Extent, bool)
}

// Extents is a Geometry backed by a map
type Extents map[site.SectionID]Extent

// Extent implements Geometry
func (m Extents) Extent(id site.SectionID) (Extent, bool) {
	e, ok := m[id]
	return e, ok
}

// GeometryFunc adapts a function to Geometry
type GeometryFunc func(id site.SectionID) (Extent, bool)

// Extent implements Geometry
func (f GeometryFunc) Extent(id site.SectionID) (Extent, bool) {
	return f(id)
}

// Resolve returns the first section in order whose extent contains
// y+offset. Sections without geometry are skipped. ok is false when no
// section matches.
func Resolve(y, offset int, order []site.SectionID, geometry Geometry) (site.SectionID, bool) {
	if geometry == nil {
		return "", false
	}
	point := y + offset
	for _, id := range order {
		extent, ok := geometry.Extent(id)
		if !ok {
			continue
		}
		if extent.Contains(point) {
			return id, true
		}
	}
	return "", false
}

// ScrollSource delivers scroll positions to subscribers
type ScrollSource interface {
	// ScrollY returns the current scroll position
	ScrollY() int
	// Subscribe registers fn for every scroll and returns a function that
	// removes the subscription
	Subscribe(fn func(y int)) (unsubscribe func())
}

// Tracker holds the active section and updates it from scroll events
type Tracker struct {
	mu        sync.Mutex
	order     []site.SectionID
	offset    int
	geometry  Geometry
	active    site.SectionID
	listeners []func(site.SectionID)
}

// New creates a tracker starting at the home section
func New(geometry Geometry, offset int) *Tracker {
	return &Tracker{
		order:    site.Order(),
		offset:   offset,
		geometry: geometry,
		active:   site.SectionHome,
	}
}

// Active returns the currently highlighted section
func (t *Tracker) Active() site.SectionID {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.active
}

// Offset returns the forward offset applied to scroll positions
func (t *Tracker) Offset() int {
	return t.offset
}

// SetGeometry replaces the geometry source, e.g. after a re-layout
func (t *Tracker) SetGeometry(geometry Geometry) {
	t.mu.Lock()
	t.geometry = geometry
	t.mu.Unlock()
}

// OnChange registers fn to be called with the new section whenever the
// active section changes
func (t *Tracker) OnChange(fn func(site.SectionID)) {
	t.mu.Lock()
	t.listeners = append(t.listeners, fn)
	t.mu.Unlock()
}

// OnScroll handles one scroll event and returns the active section
func (t *Tracker) OnScroll(y int) site.SectionID {
	t.mu.Lock()
	id, ok := Resolve(y, t.offset, t.order, t.geometry)
	if !ok || id == t.active {
		active := t.active
		t.mu.Unlock()
		return active
	}
	t.active = id
	listeners := make([]func(site.SectionID), len(t.listeners))
	copy(listeners, t.listeners)
	t.mu.Unlock()

	for _, fn := range listeners {
		fn(id)
	}
	return id
}

// Attach subscribes the tracker to source and evaluates the current
// position once. The returned function detaches it and must be called when
// the view is torn down.
func (t *Tracker) Attach(source ScrollSource) (detach func()) {
	unsubscribe := source.Subscribe(func(y int) {
		t.OnScroll(y)
	})
	t.OnScroll(source.ScrollY())

	var once sync.Once
	return func() {
		once.Do(unsubscribe)
	}
}
