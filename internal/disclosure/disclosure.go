// Package disclosure tracks which accordion panel is expanded.
package disclosure

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
)

// Scope selects whether disclosure lists share one open slot
type Scope string

const (
	// ScopeShared keeps at most one panel open across every list
	ScopeShared Scope = "shared"
	// ScopePerList keeps at most one panel open per list prefix
	ScopePerList Scope = "per_list"
)

// sharedSlot is the slot key used by ScopeShared
const sharedSlot = ""

// ItemID builds the identifier of the index-th item of a list
func ItemID(prefix string, index int) string {
	return prefix + "-" + strconv.Itoa(index)
}

// ParseItemID splits an identifier built by ItemID. ok is false when id has
// no numeric suffix.
func ParseItemID(id string) (prefix string, index int, ok bool) {
	i := strings.LastIndexByte(id, '-')
	if i <= 0 || i == len(id)-1 {
		return "", 0, false
	}
	n, err := strconv.Atoi(id[i+1:])
	if err != nil || n < 0 {
		return "", 0, false
	}
	return id[:i], n, true
}

// ParseScope converts a configuration value into a Scope
func ParseScope(s string) (Scope, error) {
	switch Scope(s) {
	case ScopeShared, "":
		return ScopeShared, nil
	case ScopePerList:
		return ScopePerList, nil
	default:
		return "", fmt.Errorf("invalid disclosure scope: %s (must be one of: shared, per_list)", s)
	}
}

// Controller holds the open panel identifier(s). It never owns panel content.
type Controller struct {
	mu    sync.Mutex
	scope Scope
	open  map[string]string
}

// New creates a controller with nothing open
func New(scope Scope) *Controller {
	if scope != ScopePerList {
		scope = ScopeShared
	}
	return &Controller{
		scope: scope,
		open:  make(map[string]string),
	}
}

// Scope returns the controller's scope
func (c *Controller) Scope() Scope {
	return c.scope
}

func (c *Controller) slot(id string) string {
	if c.scope == ScopeShared {
		return sharedSlot
	}
	if prefix, _, ok := ParseItemID(id); ok {
		return prefix
	}
	return id
}

// Toggle closes id if it is open, otherwise opens it and closes whatever
// else occupied its slot. It returns whether id is open afterwards.
func (c *Controller) Toggle(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	slot := c.slot(id)
	if c.open[slot] == id {
		delete(c.open, slot)
		return false
	}
	c.open[slot] = id
	return true
}

// IsOpen reports whether id is the open identifier of its slot
func (c *Controller) IsOpen(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	current, ok := c.open[c.slot(id)]
	return ok && current == id
}

// Open returns the open identifiers, sorted
func (c *Controller) Open() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	ids := make([]string, 0, len(c.open))
	for _, id := range c.open {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Restore replaces the state with ids, applied in order as openings. Empty
// identifiers are ignored.
func (c *Controller) Restore(ids ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.open = make(map[string]string)
	for _, id := range ids {
		if id == "" {
			continue
		}
		c.open[c.slot(id)] = id
	}
}

// CloseAll clears every slot
func (c *Controller) CloseAll() {
	c.mu.Lock()
	c.open = make(map[string]string)
	c.mu.Unlock()
}

// NextFor returns the open identifiers a Toggle(id) would produce, without
// changing the controller. Stateless renderers use it to build toggle links.
func (c *Controller) NextFor(id string) []string {
	c.mu.Lock()
	next := &Controller{scope: c.scope, open: make(map[string]string, len(c.open))}
	for k, v := range c.open {
		next.open[k] = v
	}
	c.mu.Unlock()

	next.Toggle(id)
	return next.Open()
}
