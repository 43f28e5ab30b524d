package ui

import (
	"testing"
	"time"
)

func TestNavigationScrollThreshold(t *testing.T) {
	tests := []struct {
		y    int
		want bool
	}{
		{0, false},
		{50, false},
		{51, true},
		{400, true},
	}
	var n Navigation
	for _, tt := range tests {
		n.OnScroll(tt.y)
		if n.Scrolled() != tt.want {
			t.Errorf("OnScroll(%d): scrolled = %v, want %v", tt.y, n.Scrolled(), tt.want)
		}
	}
	// Scrolling back up clears the flag.
	n.OnScroll(10)
	if n.Scrolled() {
		t.Error("expected scrolled to clear after scrolling up")
	}
}

func TestNavigationMenu(t *testing.T) {
	var n Navigation
	if n.MenuOpen() {
		t.Fatal("menu should start closed")
	}
	n.ToggleMenu()
	if !n.MenuOpen() {
		t.Fatal("toggle should open menu")
	}
	n.OnScroll(200)
	if !n.MenuOpen() {
		t.Error("scrolling must not affect the menu flag")
	}
	n.SelectLink("#projects")
	if n.MenuOpen() {
		t.Error("selecting a link should close the menu")
	}
	n.SelectLink("#about")
	if n.MenuOpen() {
		t.Error("selecting a link on a closed menu keeps it closed")
	}
}

func TestScrollFeedSubscribeAndCancel(t *testing.T) {
	feed := NewScrollFeed()
	var got []int
	cancel := feed.Subscribe(func(y, _ int) { got = append(got, y) })

	feed.Publish(10, 600)
	cancel()
	cancel()
	feed.Publish(20, 600)

	if len(got) != 1 || got[0] != 10 {
		t.Errorf("got %v, want [10]", got)
	}
	if feed.Len() != 0 {
		t.Errorf("expected no subscribers, got %d", feed.Len())
	}
}

func TestNavigationFollow(t *testing.T) {
	feed := NewScrollFeed()
	var n Navigation
	cancel := n.Follow(feed)

	feed.Publish(80, 600)
	if !n.Scrolled() {
		t.Error("expected scrolled after publish")
	}
	cancel()
	feed.Publish(0, 600)
	if !n.Scrolled() {
		t.Error("torn-down subscription should not update the flag")
	}
}

func TestEntranceLatchIsOneWay(t *testing.T) {
	var l EntranceLatch
	const vh = 600

	// Below the fold, and inside the pre-trigger margin.
	if l.Observe(550, 900, vh) {
		t.Fatal("section within the bottom margin should not trigger")
	}
	if l.Visible() {
		t.Fatal("latch should still be hidden")
	}
	if !l.Observe(400, 900, vh) {
		t.Fatal("expected latch to fire")
	}
	if l.Observe(300, 800, vh) {
		t.Error("latch must fire at most once")
	}
	// Scrolled fully out of view again.
	l.Observe(-2000, -1500, vh)
	if !l.Visible() {
		t.Error("latch must never revert")
	}
}

func TestEntranceLatchTopMargin(t *testing.T) {
	var l EntranceLatch
	if l.Observe(-500, 90, 600) {
		t.Error("section ending inside the top margin should not trigger")
	}
	if !l.Observe(-500, 120, 600) {
		t.Error("section crossing the top margin should trigger")
	}
}

func TestEntranceLatchWatch(t *testing.T) {
	feed := NewScrollFeed()
	var l EntranceLatch
	fired := 0
	l.Watch(feed, 1000, 400, func() { fired++ })

	feed.Publish(0, 600)
	if l.Visible() {
		t.Fatal("section at 1000 should be hidden at scroll 0")
	}
	feed.Publish(600, 600)
	feed.Publish(700, 600)
	if fired != 1 {
		t.Errorf("expected one callback, got %d", fired)
	}
	if feed.Len() != 0 {
		t.Errorf("fired latch should release its subscription, %d left", feed.Len())
	}
}

func TestStagger(t *testing.T) {
	if got := Stagger(3, 0, SkillStep); got != 300*time.Millisecond {
		t.Errorf("skill stagger: got %v", got)
	}
	if got := Stagger(2, TagBase, TagStep); got != 600*time.Millisecond {
		t.Errorf("tag stagger: got %v", got)
	}
	if got := Stagger(-4, 0, ProjectStep); got != 0 {
		t.Errorf("negative index: got %v", got)
	}
}
