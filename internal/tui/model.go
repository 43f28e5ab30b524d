package tui

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/shyamraj/portfolio/internal/content"
	"github.com/shyamraj/portfolio/internal/refiner"
	"github.com/shyamraj/portfolio/internal/ui"
)

// Message types for the TUI
type (
	refinedMsg struct {
		outcome refiner.Outcome
		err     error
	}
	copyResetMsg struct{}
)

type focus int

const (
	focusPage focus = iota
	focusDraft
)

// Model is the terminal portfolio: a scrollable page with the navigation
// bar on top and the message refiner docked below.
type Model struct {
	ctx     context.Context
	content *content.Content
	session *refiner.Session
	year    int

	feed     *ui.ScrollFeed
	nav      *ui.Navigation
	latches  map[string]*ui.EntranceLatch
	unfollow func()
	cancels  []func()
	sections []section

	// UI components
	viewport viewport.Model
	textarea textarea.Model
	spinner  spinner.Model

	// State
	focus    focus
	ready    bool
	refining bool
	notice   *refiner.Notice

	// Dimensions
	width  int
	height int
}

// NewModel creates the model. The session's clipboard receives copies.
func NewModel(ctx context.Context, c *content.Content, session *refiner.Session) Model {
	ta := textarea.New()
	ta.Placeholder = "Type a quick message... e.g., 'Hey, I saw your portfolio. Want to talk about a project.'"
	ta.CharLimit = 4000
	ta.ShowLineNumbers = false
	ta.SetHeight(3)
	ta.FocusedStyle.CursorLine = lipgloss.NewStyle()
	ta.FocusedStyle.Base = lipgloss.NewStyle().Foreground(colorText)
	ta.FocusedStyle.Placeholder = lipgloss.NewStyle().Foreground(colorTextDim)
	ta.BlurredStyle = ta.FocusedStyle

	s := spinner.New()
	s.Spinner = spinner.Points
	s.Style = loadingStyle

	m := Model{
		ctx:      ctx,
		content:  c,
		session:  session,
		year:     time.Now().Year(),
		feed:     ui.NewScrollFeed(),
		nav:      &ui.Navigation{},
		latches:  make(map[string]*ui.EntranceLatch),
		textarea: ta,
		spinner:  s,
	}
	for _, l := range ui.NavLinks {
		m.latches[l.Href] = &ui.EntranceLatch{}
	}
	m.unfollow = m.nav.Follow(m.feed)
	return m
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return textarea.Blink
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.viewport = viewport.New(m.width, 1)
			m.ready = true
		}
		m.textarea.SetWidth(m.width - 6)

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.release()
			return m, tea.Quit
		case "tab":
			m.toggleFocus()
			return m, nil
		case "ctrl+y":
			cmds = append(cmds, m.copy())
		case "ctrl+s":
			cmds = append(cmds, m.submit())
		default:
			if m.focus == focusDraft {
				if msg.String() == "esc" {
					m.toggleFocus()
					return m, nil
				}
				var cmd tea.Cmd
				m.textarea, cmd = m.textarea.Update(msg)
				cmds = append(cmds, cmd)
			} else {
				if quit := m.pageKey(msg); quit {
					m.release()
					return m, tea.Quit
				}
			}
		}

	case tea.MouseMsg:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		cmds = append(cmds, cmd)

	case spinner.TickMsg:
		if m.refining {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}

	case refinedMsg:
		m.refining = false
		if msg.err != nil && !errors.Is(msg.err, refiner.ErrEmptyDraft) && !errors.Is(msg.err, refiner.ErrBusy) {
			log.Printf("Unexpected refine error: %v", msg.err)
		}
		m.collectNotices()

	case copyResetMsg:
		// Nothing to change: the session already cleared the indicator.
	}

	if m.ready {
		m.refresh()
	}
	return m, tea.Batch(cmds...)
}

// pageKey handles keys while the page has focus. It reports whether to quit.
func (m *Model) pageKey(msg tea.KeyMsg) bool {
	switch key := msg.String(); key {
	case "q":
		return true
	case "m":
		m.nav.ToggleMenu()
	case "1", "2", "3", "4":
		if !m.nav.MenuOpen() {
			break
		}
		links := append(append([]content.Link{}, ui.NavLinks...), ui.CallToAction)
		i := int(key[0] - '1')
		if i < len(links) {
			m.nav.SelectLink(links[i].Href)
			m.jumpTo(links[i].Href)
		}
	case "esc":
		if m.nav.MenuOpen() {
			m.nav.ToggleMenu()
		}
	default:
		m.viewport, _ = m.viewport.Update(msg)
	}
	return false
}

func (m *Model) jumpTo(anchor string) {
	for _, s := range m.sections {
		if s.anchor == anchor {
			m.viewport.SetYOffset(s.offset)
			return
		}
	}
}

func (m *Model) toggleFocus() {
	if m.focus == focusPage {
		m.focus = focusDraft
		m.textarea.Focus()
	} else {
		m.focus = focusPage
		m.textarea.Blur()
	}
}

func (m *Model) submit() tea.Cmd {
	if m.refining {
		return nil
	}
	m.notice = nil
	m.session.SetDraft(m.textarea.Value())
	refine := refineCmd(m.ctx, m.session)
	if !m.session.CanSubmit() {
		return refine
	}
	m.refining = true
	return tea.Batch(m.spinner.Tick, refine)
}

func refineCmd(ctx context.Context, session *refiner.Session) tea.Cmd {
	return func() tea.Msg {
		out, err := session.Refine(ctx)
		return refinedMsg{outcome: out, err: err}
	}
}

func (m *Model) copy() tea.Cmd {
	m.notice = nil
	err := m.session.Copy()
	if errors.Is(err, refiner.ErrNothingToCopy) {
		return nil
	}
	if err != nil {
		log.Printf("Error copying refined message: %v", err)
	}
	m.collectNotices()
	if err != nil {
		return nil
	}
	return tea.Tick(refiner.CopyResetDelay+50*time.Millisecond, func(time.Time) tea.Msg {
		return copyResetMsg{}
	})
}

func (m *Model) collectNotices() {
	if n := m.session.Notices(); len(n) > 0 {
		last := n[len(n)-1]
		m.notice = &last
	}
}

// refresh sizes the viewport, re-renders the page and publishes the
// scroll position to the navigation bar and the entrance latches.
func (m *Model) refresh() {
	vh := m.height - lipgloss.Height(m.renderNav()) - lipgloss.Height(m.renderRefiner()) - lipgloss.Height(m.renderStatusBar())
	if vh < 3 {
		vh = 3
	}
	m.viewport.Width = m.width
	m.viewport.Height = vh

	body, spans := renderPage(m.content, m.width-2, m.year, m.hidden)
	if !sameSpans(spans, m.sections) {
		m.sections = spans
		m.watch()
	}
	m.viewport.SetContent(body)

	m.feed.Publish(m.viewport.YOffset*rowHeight, m.viewport.Height*rowHeight)

	body, _ = renderPage(m.content, m.width-2, m.year, m.hidden)
	m.viewport.SetContent(body)
}

func (m *Model) hidden(anchor string) bool {
	l, ok := m.latches[anchor]
	return ok && !l.Visible()
}

// watch (re)subscribes the latches that have not fired to the current
// section offsets.
func (m *Model) watch() {
	for _, cancel := range m.cancels {
		cancel()
	}
	m.cancels = m.cancels[:0]
	for _, s := range m.sections {
		l, ok := m.latches[s.anchor]
		if !ok || l.Visible() {
			continue
		}
		m.cancels = append(m.cancels, l.Watch(m.feed, s.offset*rowHeight, s.height*rowHeight, nil))
	}
}

func (m *Model) release() {
	m.unfollow()
	for _, cancel := range m.cancels {
		cancel()
	}
	m.cancels = nil
}

func sameSpans(a, b []section) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// View renders the TUI
func (m Model) View() string {
	if !m.ready {
		return "\n  Loading..."
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderNav(),
		m.viewport.View(),
		m.renderRefiner(),
		m.renderStatusBar(),
	)
}

func (m Model) renderNav() string {
	items := []string{brandStyle.Render(m.content.Profile.Initials + ".")}
	for _, l := range ui.NavLinks {
		items = append(items, linkStyle.Render(l.Label))
	}
	items = append(items, ctaStyle.Render(ui.CallToAction.Label))
	bar := strings.Join(items, "   ")

	style := navStyle
	if m.nav.Scrolled() {
		style = navScrolledStyle
	}
	bar = style.Width(m.width).Render(bar)

	if !m.nav.MenuOpen() {
		return bar
	}
	menu := make([]string, 0, len(ui.NavLinks)+1)
	for i, l := range append(append([]content.Link{}, ui.NavLinks...), ui.CallToAction) {
		menu = append(menu, fmt.Sprintf("%d  %s", i+1, l.Label))
	}
	return lipgloss.JoinVertical(lipgloss.Left, bar, menuStyle.Render(strings.Join(menu, "\n")))
}

func (m Model) renderRefiner() string {
	lines := []string{titleStyle.Render("AI Message Refiner"), m.textarea.View()}

	if m.refining {
		lines = append(lines, m.spinner.View()+" "+loadingStyle.Render("Refining..."))
	}
	if result := m.session.Result(); result != "" {
		label := hintStyle.Render("[ctrl+y] Copy")
		if m.session.Copied() {
			label = copiedStyle.Render("✓ Copied")
		}
		lines = append(lines,
			bodyStyle.Render("Refined Message")+"  "+label,
			resultStyle.Width(max(m.width-6, 10)).Render(result),
		)
	}

	style := panelStyle
	if m.focus == focusDraft {
		style = panelFocusedStyle
	}
	return style.Width(max(m.width-2, 10)).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (m Model) renderStatusBar() string {
	hints := "tab compose · ↑/↓ scroll · m menu · q quit"
	if m.focus == focusDraft {
		hints = "ctrl+s refine · ctrl+y copy · tab/esc back"
	}
	if m.notice == nil {
		return hintStyle.Render(hints)
	}
	style, ok := noticeStyles[string(m.notice.Level)]
	if !ok {
		style = bodyStyle
	}
	return style.Render(m.notice.Text) + "  " + hintStyle.Render(hints)
}

// Run starts the terminal portfolio and blocks until the user quits.
func Run(ctx context.Context, c *content.Content, session *refiner.Session) error {
	p := tea.NewProgram(
		NewModel(ctx, c, session),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)
	_, err := p.Run()
	return err
}
