package ui

import "sync"

// ScrollFunc receives the scroll offset and the viewport height.
type ScrollFunc func(y, viewportHeight int)

// ScrollFeed fans scroll positions out to subscribers. Subscriptions are
// scoped: each Subscribe hands back its own teardown.
type ScrollFeed struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]ScrollFunc
}

// NewScrollFeed creates an empty feed.
func NewScrollFeed() *ScrollFeed {
	return &ScrollFeed{subs: make(map[int]ScrollFunc)}
}

// Subscribe registers fn and returns a function that unregisters it.
// Calling the returned function more than once is a no-op.
func (f *ScrollFeed) Subscribe(fn ScrollFunc) (cancel func()) {
	f.mu.Lock()
	id := f.nextID
	f.nextID++
	f.subs[id] = fn
	f.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			f.mu.Lock()
			delete(f.subs, id)
			f.mu.Unlock()
		})
	}
}

// Publish delivers a scroll position to every current subscriber.
func (f *ScrollFeed) Publish(y, viewportHeight int) {
	f.mu.Lock()
	fns := make([]ScrollFunc, 0, len(f.subs))
	for _, fn := range f.subs {
		fns = append(fns, fn)
	}
	f.mu.Unlock()

	for _, fn := range fns {
		fn(y, viewportHeight)
	}
}

// Len reports the number of live subscriptions.
func (f *ScrollFeed) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.subs)
}
