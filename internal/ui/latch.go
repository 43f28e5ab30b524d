package ui

import "time"

// EntranceMargin shrinks the viewport on every side before testing
// intersection, so sections trigger slightly after they scroll in.
const EntranceMargin = 100

// EntranceLatch flips from hidden to visible the first time its section
// intersects the viewport and never flips back.
type EntranceLatch struct {
	visible bool
}

// Visible reports the latch state.
func (l *EntranceLatch) Visible() bool { return l.visible }

// Observe checks a section spanning [top, bottom) in viewport coordinates.
// It returns true only on the call that flips the latch.
func (l *EntranceLatch) Observe(top, bottom, viewportHeight int) bool {
	if l.visible {
		return false
	}
	if top < viewportHeight-EntranceMargin && bottom > EntranceMargin {
		l.visible = true
		return true
	}
	return false
}

// Watch ties the latch to a section at a fixed document offset. The
// subscription releases itself once the latch has fired; the returned
// function releases it early.
func (l *EntranceLatch) Watch(feed *ScrollFeed, offset, height int, onVisible func()) (cancel func()) {
	var unsubscribe func()
	fired := false
	unsubscribe = feed.Subscribe(func(y, vh int) {
		if fired {
			return
		}
		if l.Observe(offset-y, offset-y+height, vh) {
			fired = true
			unsubscribe()
			if onVisible != nil {
				onVisible()
			}
		}
	})
	return unsubscribe
}

// Stagger returns the entrance delay for the index-th item of a list.
func Stagger(index int, base, step time.Duration) time.Duration {
	if index < 0 {
		index = 0
	}
	return base + time.Duration(index)*step
}

// Entrance delays used by the page sections.
const (
	SkillStep   = 100 * time.Millisecond
	ProjectStep = 150 * time.Millisecond
	TagBase     = 500 * time.Millisecond
	TagStep     = 50 * time.Millisecond
)
