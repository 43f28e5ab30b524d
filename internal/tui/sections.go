package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/shyamraj/portfolio/internal/content"
)

// rowHeight is the nominal pixel height of a terminal row. Scroll positions
// are published in pixels so the page thresholds keep their meaning.
const rowHeight = 16

// section is the row span of one anchored block of the page.
type section struct {
	anchor string
	offset int
	height int
}

var plainMarkdown = strings.NewReplacer("**", "", "__", "", "`", "", "\n", " ")

// renderPage lays out the About, Projects and Contact sections for the given
// width. hidden reports the sections still waiting for their entrance.
func renderPage(c *content.Content, width int, year int, hidden func(anchor string) bool) (string, []section) {
	if width < 20 {
		width = 20
	}
	blocks := []struct {
		anchor string
		render func(c *content.Content, width, year int, hidden bool) string
	}{
		{"#about", renderAbout},
		{"#projects", renderProjects},
		{"#contact", renderContact},
	}

	var (
		out   []string
		spans []section
		row   int
	)
	for _, b := range blocks {
		block := b.render(c, width, year, hidden(b.anchor))
		h := lipgloss.Height(block)
		spans = append(spans, section{anchor: b.anchor, offset: row, height: h})
		out = append(out, block)
		row += h + 1
	}
	return strings.Join(out, "\n\n"), spans
}

func renderAbout(c *content.Content, width, _ int, hidden bool) string {
	wrap := lipgloss.NewStyle().Width(width)
	lines := []string{
		faded(headingStyle, hidden).Render("About Me"),
		wrap.Render(faded(bodyStyle, hidden).Render(renderProse(c.Profile.About, width, hidden))),
		"",
	}
	for _, s := range c.Skills {
		lines = append(lines,
			faded(titleStyle, hidden).Render("▸ "+s.Title),
			wrap.Render(faded(bodyStyle, hidden).Render("  "+s.Description)),
		)
	}

	tags := make([]string, len(c.TechStack))
	for i, t := range c.TechStack {
		tags[i] = string(t)
	}
	lines = append(lines, "",
		faded(titleStyle, hidden).Render("Technologies I Work With"),
		wrap.Render(faded(tagStyle, hidden).Render(strings.Join(tags, " · "))),
	)
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderProjects(c *content.Content, width, _ int, hidden bool) string {
	wrap := lipgloss.NewStyle().Width(width)
	lines := []string{faded(headingStyle, hidden).Render("Featured Projects")}
	for i, p := range c.Projects {
		if i > 0 {
			lines = append(lines, "")
		}
		title := faded(titleStyle, hidden).Render(p.Title)
		if p.Featured {
			title = faded(featuredStyle, hidden).Render("★ " + p.Title)
		}
		lines = append(lines,
			title,
			wrap.Render(faded(bodyStyle, hidden).Render(p.Description)),
			wrap.Render(faded(tagStyle, hidden).Render(strings.Join(p.Tags, " · "))),
		)
	}
	if c.Profile.ProjectsURL != "" {
		lines = append(lines, "", faded(hintStyle, hidden).Render("More: "+c.Profile.ProjectsURL))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderContact(c *content.Content, width, year int, hidden bool) string {
	wrap := lipgloss.NewStyle().Width(width)
	lines := []string{
		faded(headingStyle, hidden).Render("Get in Touch"),
		wrap.Render(faded(bodyStyle, hidden).Render(
			"Have a project in mind? Use the AI Message Refiner below to craft a professional message, or reach out directly.")),
		"",
	}
	for _, l := range c.ContactLinks() {
		lines = append(lines, faded(linkStyle, hidden).Render(fmt.Sprintf("%-10s %s", l.Label, strings.TrimPrefix(l.Href, "mailto:"))))
	}
	lines = append(lines, "",
		faded(hintStyle, hidden).Render(c.Copyright(year)),
		faded(hintStyle, hidden).Render(c.Profile.BuiltWith),
	)
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
