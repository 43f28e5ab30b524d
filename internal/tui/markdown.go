package tui

import (
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
)

// proseCache holds rendered markdown; the page is re-rendered on every
// scroll step.
var proseCache = struct {
	sync.Mutex
	entries map[string]string
}{entries: make(map[string]string)}

// renderProse renders markdown for the terminal. Muted prose uses the plain
// style so the fade is not fighting the theme colors.
func renderProse(md string, width int, muted bool) string {
	style := "dark"
	if muted {
		style = "notty"
	}
	key := fmt.Sprintf("%s:%d:%s", style, width, md)

	proseCache.Lock()
	defer proseCache.Unlock()
	if out, ok := proseCache.entries[key]; ok {
		return out
	}

	out := plainMarkdown.Replace(md)
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err == nil {
		if rendered, err := r.Render(md); err == nil {
			out = strings.Trim(rendered, "\n")
		}
	}
	proseCache.entries[key] = out
	return out
}
