// Package ui models the page's local interaction state: the navigation bar,
// scroll subscriptions and one-way section entrance latches.
package ui

import "github.com/shyamraj/portfolio/internal/content"

// ScrollThreshold is the offset past which the navigation bar switches to
// its compact style.
const ScrollThreshold = 50

// NavLinks are the in-page anchors shown in the navigation bar.
var NavLinks = []content.Link{
	{Label: "About", Href: "#about"},
	{Label: "Projects", Href: "#projects"},
	{Label: "Contact", Href: "#contact"},
}

// CallToAction is the highlighted navigation button.
var CallToAction = content.Link{Label: "Get in Touch", Href: "#contact"}

// Navigation holds two independent flags owned by one navigation bar.
type Navigation struct {
	scrolled bool
	menuOpen bool
}

// OnScroll recomputes the scrolled flag for every scroll position, without debouncing.
func (n *Navigation) OnScroll(y int) {
	n.scrolled = y > ScrollThreshold
}

// ToggleMenu flips the mobile menu.
func (n *Navigation) ToggleMenu() {
	n.menuOpen = !n.menuOpen
}

// SelectLink closes the mobile menu; navigation itself is the browser's job.
func (n *Navigation) SelectLink(href string) {
	n.menuOpen = false
}

// Scrolled reports whether the page is past ScrollThreshold.
func (n *Navigation) Scrolled() bool { return n.scrolled }

// MenuOpen reports whether the mobile menu is expanded.
func (n *Navigation) MenuOpen() bool { return n.menuOpen }

// Follow subscribes the navigation bar to a scroll feed. The returned
// function releases the subscription.
func (n *Navigation) Follow(feed *ScrollFeed) (cancel func()) {
	return feed.Subscribe(func(y, _ int) { n.OnScroll(y) })
}
