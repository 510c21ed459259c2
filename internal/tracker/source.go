package tracker

import "sync"

// Feed is a ScrollSource that rendering layers push positions into
type Feed struct {
	mu     sync.Mutex
	y      int
	nextID int
	subs   map[int]func(int)
}

// NewFeed creates an empty feed at position 0
func NewFeed() *Feed {
	return &Feed{subs: make(map[int]func(int))}
}

// ScrollY implements ScrollSource
func (f *Feed) ScrollY() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.y
}

// Subscribe implements ScrollSource
func (f *Feed) Subscribe(fn func(y int)) func() {
	f.mu.Lock()
	id := f.nextID
	f.nextID++
	f.subs[id] = fn
	f.mu.Unlock()

	return func() {
		f.mu.Lock()
		delete(f.subs, id)
		f.mu.Unlock()
	}
}

// Subscribers returns the number of active subscriptions
func (f *Feed) Subscribers() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.subs)
}

// Scroll records a new position and notifies every subscriber
func (f *Feed) Scroll(y int) {
	f.mu.Lock()
	f.y = y
	subs := make([]func(int), 0, len(f.subs))
	for _, fn := range f.subs {
		subs = append(subs, fn)
	}
	f.mu.Unlock()

	for _, fn := range subs {
		fn(y)
	}
}
